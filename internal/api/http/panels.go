package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nounsos/desktop/backend/internal/shared/types"
	"github.com/nounsos/desktop/backend/internal/shared/utils"
)

// CreatePanelRequest opens a window or mini-app
type CreatePanelRequest struct {
	AppID     string                 `json:"app_id" binding:"required"`
	ProcessID string                 `json:"process_id"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// Validate checks ids and metadata limits
func (r *CreatePanelRequest) Validate() error {
	if err := utils.ValidateID(r.AppID, "app_id", true); err != nil {
		return err
	}
	if err := utils.ValidateID(r.ProcessID, "process_id", false); err != nil {
		return err
	}
	return utils.ValidateMetadata(r.Metadata)
}

// ListPanels returns the full panel snapshot and statistics
func (h *Handlers) ListPanels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state": h.windows.Snapshot(),
		"stats": h.windows.Stats(),
	})
}

// GetPanel returns a single panel
func (h *Handlers) GetPanel(c *gin.Context) {
	panelID, ok := h.panelID(c)
	if !ok {
		return
	}

	panel, found := h.windows.GetWindow(panelID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "panel not found"})
		return
	}
	c.JSON(http.StatusOK, panel)
}

// FocusHistory returns focused panel ids, most recent last
func (h *Handlers) FocusHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"focus_history": h.windows.GetFocusHistory()})
}

// CreateWindow opens a window
func (h *Handlers) CreateWindow(c *gin.Context) {
	h.createPanel(c, types.KindWindow)
}

// CreateMiniApp opens a mini-app
func (h *Handlers) CreateMiniApp(c *gin.Context) {
	h.createPanel(c, types.KindMiniApp)
}

func (h *Handlers) createPanel(c *gin.Context, kind types.PanelKind) {
	var req CreatePanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var panelID string
	if kind == types.KindMiniApp {
		panelID = h.windows.CreateMiniApp(req.AppID, req.ProcessID, req.Metadata)
	} else {
		panelID = h.windows.CreateWindow(req.AppID, req.ProcessID, req.Metadata)
	}

	h.logger.Info("Panel opened",
		zap.String("panel_id", panelID),
		zap.String("app_id", req.AppID),
	)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      panelID,
		"state":   h.windows.Snapshot(),
	})
}

// CloseWindow closes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.withPanel(c, h.windows.CloseWindow)
}

// CloseMiniApp closes the first open instance of a mini-app
func (h *Handlers) CloseMiniApp(c *gin.Context) {
	h.withApp(c, h.windows.CloseMiniApp)
}

// PinMiniApp pins the first open instance of a mini-app
func (h *Handlers) PinMiniApp(c *gin.Context) {
	h.withApp(c, h.windows.PinMiniApp)
}

// UnpinMiniApp unpins the first open instance of a mini-app
func (h *Handlers) UnpinMiniApp(c *gin.Context) {
	h.withApp(c, h.windows.UnpinMiniApp)
}

// FocusPanel brings a panel to the front
func (h *Handlers) FocusPanel(c *gin.Context) {
	h.withPanel(c, h.windows.FocusWindow)
}

// BlurPanel drops focus from a panel
func (h *Handlers) BlurPanel(c *gin.Context) {
	h.withPanel(c, h.windows.BlurWindow)
}

// MinimizePanel hides a panel
func (h *Handlers) MinimizePanel(c *gin.Context) {
	h.withPanel(c, h.windows.MinimizeWindow)
}

// MaximizePanel maximizes a window
func (h *Handlers) MaximizePanel(c *gin.Context) {
	h.withPanel(c, h.windows.MaximizeWindow)
}

// RestorePanel returns a panel to its normal state
func (h *Handlers) RestorePanel(c *gin.Context) {
	h.withPanel(c, h.windows.RestoreWindow)
}

// MovePanel sets a panel's position
func (h *Handlers) MovePanel(c *gin.Context) {
	panelID, ok := h.panelID(c)
	if !ok {
		return
	}

	var pos types.Position
	if err := c.ShouldBindJSON(&pos); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.windows.MoveWindow(panelID, pos)
	h.respondState(c)
}

// ResizePanel sets a panel's size
func (h *Handlers) ResizePanel(c *gin.Context) {
	panelID, ok := h.panelID(c)
	if !ok {
		return
	}

	var size types.Size
	if err := c.ShouldBindJSON(&size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if size.Width.Unit == "" {
		size.Width.Unit = types.UnitPx
	}
	if size.Height.Unit == "" {
		size.Height.Unit = types.UnitPx
	}
	if err := utils.ValidateSize(size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.windows.ResizeWindow(panelID, size)
	h.respondState(c)
}

// SwitchFocus alternates between the two most recently focused panels
func (h *Handlers) SwitchFocus(c *gin.Context) {
	h.windows.SwitchFocus()
	h.respondState(c)
}

// ClearFocus unfocuses every panel
func (h *Handlers) ClearFocus(c *gin.Context) {
	h.windows.ClearFocus()
	h.respondState(c)
}

func (h *Handlers) withPanel(c *gin.Context, op func(string)) {
	panelID, ok := h.panelID(c)
	if !ok {
		return
	}
	op(panelID)
	h.respondState(c)
}

func (h *Handlers) withApp(c *gin.Context, op func(string)) {
	appID := c.Param("app_id")
	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	op(appID)
	h.respondState(c)
}

func (h *Handlers) panelID(c *gin.Context) (string, bool) {
	panelID := c.Param("id")
	if err := utils.ValidateID(panelID, "id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return panelID, true
}

// respondState answers mutations with the resulting snapshot. Unknown ids
// are no-ops, so the snapshot is simply unchanged.
func (h *Handlers) respondState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"state":   h.windows.Snapshot(),
	})
}
