package ws

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nounsos/desktop/backend/internal/domain/layout"
	"github.com/nounsos/desktop/backend/internal/domain/session"
	"github.com/nounsos/desktop/backend/internal/domain/window"
	"github.com/nounsos/desktop/backend/internal/infrastructure/monitoring"
	"github.com/nounsos/desktop/backend/internal/shared/types"
	"github.com/nounsos/desktop/backend/internal/shared/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS middleware governs origins
	},
}

// Handler streams panel events to clients and accepts commands from them
type Handler struct {
	windows  *window.Manager
	layouts  *session.Manager
	viewport *layout.Viewport
	metrics  *monitoring.Metrics
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[string]*client
}

// NewHandler creates a new WebSocket handler
func NewHandler(windows *window.Manager, layouts *session.Manager, viewport *layout.Viewport) *Handler {
	return &Handler{
		windows:  windows,
		layouts:  layouts,
		viewport: viewport,
		logger:   zap.NewNop(),
		clients:  make(map[string]*client),
	}
}

// WithLogger sets the handler's logger
func (h *Handler) WithLogger(logger *zap.Logger) *Handler {
	h.logger = logger
	return h
}

// WithMetrics adds metrics tracking to the handler
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// Clients returns the number of connected clients
func (h *Handler) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// CloseAll disconnects every client
func (h *Handler) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		c.close()
	}
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	cl := newClient(uuid.New().String(), conn, h.logger)
	h.register(cl)
	defer h.unregister(cl)

	go cl.writePump()

	h.reply(cl, ServerMessage{
		Type:     TypeSystem,
		Message:  "Connected to NounsOS desktop",
		ClientID: cl.id,
	})

	subID := h.windows.Subscribe(func(ev types.Event) {
		if cl.enqueue(EventMessage{
			Type:      ev.Type,
			PanelID:   ev.PanelID,
			State:     ev.State,
			Timestamp: ev.Timestamp.UnixMilli(),
		}) {
			h.recordOut(string(ev.Type))
		}
	})
	defer h.windows.Unsubscribe(subID)

	// Events racing the connect may precede the state frame. Each carries
	// the full state, so the client can apply whichever arrives last.
	h.sendState(cl)

	conn.SetReadLimit(utils.MaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx := c.Request.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("WebSocket read error", zap.String("client_id", cl.id), zap.Error(err))
			}
			return
		}

		var msg ClientMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.sendError(cl, "malformed message")
			continue
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case TypeCommand:
			h.handleCommand(ctx, cl, msg)
		case TypeViewport:
			h.handleViewport(cl, msg)
		case TypePing:
			h.reply(cl, ServerMessage{Type: TypePong})
		default:
			h.sendError(cl, "unknown message type")
		}
	}
}

func (h *Handler) handleViewport(cl *client, msg ClientMessage) {
	if err := utils.ValidateViewport(msg.Width, msg.Height, msg.RootFontSize); err != nil {
		h.sendError(cl, err.Error())
		return
	}

	h.viewport.Apply(msg.Width, msg.Height, msg.RootFontSize)
	h.reply(cl, ServerMessage{Type: TypeAck, Op: TypeViewport})
}

func (h *Handler) handleCommand(ctx context.Context, cl *client, msg ClientMessage) {
	resultID, err := h.execute(ctx, msg)
	if err != nil {
		h.sendError(cl, err.Error())
		return
	}
	h.reply(cl, ServerMessage{Type: TypeAck, Op: msg.Op, ID: resultID})
}

// execute runs one command. Unknown panel ids are no-ops, as over REST.
func (h *Handler) execute(ctx context.Context, msg ClientMessage) (string, error) {
	switch msg.Op {
	case OpCreateWindow, OpCreateMiniApp:
		if err := utils.ValidateID(msg.AppID, "app_id", true); err != nil {
			return "", err
		}
		if err := utils.ValidateID(msg.ProcessID, "process_id", false); err != nil {
			return "", err
		}
		if err := utils.ValidateMetadata(msg.Metadata); err != nil {
			return "", err
		}
		if msg.Op == OpCreateMiniApp {
			return h.windows.CreateMiniApp(msg.AppID, msg.ProcessID, msg.Metadata), nil
		}
		return h.windows.CreateWindow(msg.AppID, msg.ProcessID, msg.Metadata), nil

	case OpCloseMiniApp, OpPin, OpUnpin:
		if err := utils.ValidateID(msg.AppID, "app_id", true); err != nil {
			return "", err
		}
		switch msg.Op {
		case OpCloseMiniApp:
			h.windows.CloseMiniApp(msg.AppID)
		case OpPin:
			h.windows.PinMiniApp(msg.AppID)
		default:
			h.windows.UnpinMiniApp(msg.AppID)
		}
		return msg.AppID, nil

	case OpCloseWindow, OpFocus, OpBlur, OpMinimize, OpMaximize, OpRestore:
		if err := utils.ValidateID(msg.ID, "id", true); err != nil {
			return "", err
		}
		switch msg.Op {
		case OpCloseWindow:
			h.windows.CloseWindow(msg.ID)
		case OpFocus:
			h.windows.FocusWindow(msg.ID)
		case OpBlur:
			h.windows.BlurWindow(msg.ID)
		case OpMinimize:
			h.windows.MinimizeWindow(msg.ID)
		case OpMaximize:
			h.windows.MaximizeWindow(msg.ID)
		default:
			h.windows.RestoreWindow(msg.ID)
		}
		return msg.ID, nil

	case OpMove:
		if err := utils.ValidateID(msg.ID, "id", true); err != nil {
			return "", err
		}
		if msg.Position == nil {
			return "", fmt.Errorf("position is required")
		}
		h.windows.MoveWindow(msg.ID, *msg.Position)
		return msg.ID, nil

	case OpResize:
		if err := utils.ValidateID(msg.ID, "id", true); err != nil {
			return "", err
		}
		if msg.Size == nil {
			return "", fmt.Errorf("size is required")
		}
		size := *msg.Size
		if size.Width.Unit == "" {
			size.Width.Unit = types.UnitPx
		}
		if size.Height.Unit == "" {
			size.Height.Unit = types.UnitPx
		}
		if err := utils.ValidateSize(size); err != nil {
			return "", err
		}
		h.windows.ResizeWindow(msg.ID, size)
		return msg.ID, nil

	case OpSwitchFocus:
		h.windows.SwitchFocus()
		return "", nil

	case OpClearFocus:
		h.windows.ClearFocus()
		return "", nil

	case OpSaveLayout:
		if err := utils.ValidateName(msg.Name, "name"); err != nil {
			return "", err
		}
		l, err := h.layouts.Save(ctx, msg.Name)
		if err != nil {
			return "", err
		}
		return l.ID, nil

	case OpRestoreLayout:
		if err := utils.ValidateID(msg.ID, "id", true); err != nil {
			return "", err
		}
		return msg.ID, h.layouts.Restore(ctx, msg.ID)

	default:
		return "", fmt.Errorf("unknown op %q", msg.Op)
	}
}

func (h *Handler) sendState(cl *client) {
	state := h.windows.Snapshot()
	h.reply(cl, ServerMessage{Type: TypeState, State: &state})
}

func (h *Handler) sendError(cl *client, message string) {
	h.reply(cl, ServerMessage{Type: TypeError, Message: message})
}

func (h *Handler) reply(cl *client, msg ServerMessage) {
	msg.Timestamp = time.Now().UnixMilli()
	if cl.enqueue(msg) {
		h.recordOut(msg.Type)
	}
}

func (h *Handler) recordOut(msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", msgType)
	}
}

func (h *Handler) register(cl *client) {
	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
	}
	h.logger.Info("Client connected", zap.String("client_id", cl.id))
}

func (h *Handler) unregister(cl *client) {
	cl.close()

	h.mu.Lock()
	delete(h.clients, cl.id)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.DecWSConnections()
	}
	h.logger.Info("Client disconnected", zap.String("client_id", cl.id))
}
