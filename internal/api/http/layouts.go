package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nounsos/desktop/backend/internal/domain/session"
	"github.com/nounsos/desktop/backend/internal/shared/utils"
)

// SaveLayoutRequest names a layout snapshot
type SaveLayoutRequest struct {
	Name string `json:"name"`
}

// ListLayouts lists saved layouts, newest first
func (h *Handlers) ListLayouts(c *gin.Context) {
	layouts := h.layouts.List()
	c.JSON(http.StatusOK, gin.H{
		"layouts": layouts,
		"stats":   h.layouts.Stats(),
	})
}

// SaveLayout captures the current arrangement
func (h *Handlers) SaveLayout(c *gin.Context) {
	var req SaveLayoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := utils.ValidateName(req.Name, "name"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	l, err := h.layouts.Save(c.Request.Context(), req.Name)
	if err != nil {
		h.logger.Error("Failed to save layout", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"layout":  l,
	})
}

// GetLayout returns a saved layout
func (h *Handlers) GetLayout(c *gin.Context) {
	layoutID, ok := h.layoutID(c)
	if !ok {
		return
	}

	l, err := h.layouts.Get(layoutID)
	if err != nil {
		h.layoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// RestoreLayout replaces the open panels with a saved layout
func (h *Handlers) RestoreLayout(c *gin.Context) {
	layoutID, ok := h.layoutID(c)
	if !ok {
		return
	}

	if err := h.layouts.Restore(c.Request.Context(), layoutID); err != nil {
		h.layoutError(c, err)
		return
	}
	h.respondState(c)
}

// DeleteLayout removes a saved layout
func (h *Handlers) DeleteLayout(c *gin.Context) {
	layoutID, ok := h.layoutID(c)
	if !ok {
		return
	}

	if err := h.layouts.Delete(c.Request.Context(), layoutID); err != nil {
		h.layoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": layoutID})
}

func (h *Handlers) layoutID(c *gin.Context) (string, bool) {
	layoutID := c.Param("id")
	if err := utils.ValidateID(layoutID, "id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return layoutID, true
}

func (h *Handlers) layoutError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.logger.Error("Layout operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}
