package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nounsos/desktop/backend/internal/domain/catalog"
	"github.com/nounsos/desktop/backend/internal/domain/layout"
	"github.com/nounsos/desktop/backend/internal/domain/session"
	"github.com/nounsos/desktop/backend/internal/domain/window"
	"github.com/nounsos/desktop/backend/internal/infrastructure/monitoring"
	"github.com/nounsos/desktop/backend/internal/shared/utils"
)

// Version is reported by the health endpoints
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	windows  *window.Manager
	layouts  *session.Manager
	catalog  *catalog.Catalog
	viewport *layout.Viewport
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	windows *window.Manager,
	layouts *session.Manager,
	apps *catalog.Catalog,
	viewport *layout.Viewport,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		windows:  windows,
		layouts:  layouts,
		catalog:  apps,
		viewport: viewport,
		metrics:  metrics,
		logger:   logger,
	}
}

// Register mounts every REST route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/apps", h.ListApps)
	r.GET("/viewport", h.GetViewport)
	r.PUT("/viewport", h.SetViewport)

	panels := r.Group("/panels")
	{
		panels.GET("", h.ListPanels)
		panels.GET("/focus-history", h.FocusHistory)
		panels.GET("/:id", h.GetPanel)
		panels.POST("/:id/focus", h.FocusPanel)
		panels.POST("/:id/blur", h.BlurPanel)
		panels.POST("/:id/minimize", h.MinimizePanel)
		panels.POST("/:id/maximize", h.MaximizePanel)
		panels.POST("/:id/restore", h.RestorePanel)
		panels.PUT("/:id/position", h.MovePanel)
		panels.PUT("/:id/size", h.ResizePanel)
	}

	r.POST("/windows", h.CreateWindow)
	r.DELETE("/windows/:id", h.CloseWindow)

	r.POST("/miniapps", h.CreateMiniApp)
	r.DELETE("/miniapps/:app_id", h.CloseMiniApp)
	r.POST("/miniapps/:app_id/pin", h.PinMiniApp)
	r.POST("/miniapps/:app_id/unpin", h.UnpinMiniApp)

	r.POST("/focus/switch", h.SwitchFocus)
	r.POST("/focus/clear", h.ClearFocus)

	layouts := r.Group("/layouts")
	{
		layouts.GET("", h.ListLayouts)
		layouts.POST("", h.SaveLayout)
		layouts.GET("/:id", h.GetLayout)
		layouts.POST("/:id/restore", h.RestoreLayout)
		layouts.DELETE("/:id", h.DeleteLayout)
	}

	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
		r.GET("/metrics/summary", h.MetricsSummary)
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "NounsOS Desktop Service",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": Version,
		"panels":  h.windows.Stats(),
		"layouts": h.layouts.Stats(),
		"apps":    h.catalog.Len(),
	})
}

// ListApps lists the application catalog
func (h *Handlers) ListApps(c *gin.Context) {
	apps := h.catalog.List()
	c.JSON(http.StatusOK, gin.H{
		"apps":  apps,
		"count": len(apps),
	})
}

// ViewportRequest reports the client's viewport metrics
type ViewportRequest struct {
	Width        int     `json:"width" binding:"required"`
	Height       int     `json:"height" binding:"required"`
	RootFontSize float64 `json:"root_font_size"`
}

// GetViewport returns the metrics used for placement
func (h *Handlers) GetViewport(c *gin.Context) {
	c.JSON(http.StatusOK, layout.Read(h.viewport))
}

// SetViewport records the client's viewport metrics
func (h *Handlers) SetViewport(c *gin.Context) {
	var req ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateViewport(req.Width, req.Height, req.RootFontSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.viewport.Apply(req.Width, req.Height, req.RootFontSize)
	c.JSON(http.StatusOK, layout.Read(h.viewport))
}

// MetricsSummary returns a JSON digest of service health
func (h *Handlers) MetricsSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"http":    h.metrics.Snapshot(),
		"panels":  h.windows.Stats(),
		"layouts": h.layouts.Stats(),
	})
}
