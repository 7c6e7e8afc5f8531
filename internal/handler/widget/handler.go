package widget

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	widgetsvc "github.com/AbdulManan133/chatbot-Ui/internal/widget"
	"github.com/AbdulManan133/chatbot-Ui/pkg/utils"
)

// Handler exposes the widget controller over HTTP.
type Handler struct {
	controller *widgetsvc.Controller
	surface    *WebSurface
	upgrader   websocket.Upgrader
	log        zerolog.Logger
}

// New wires the handler to a controller and its web surface.
func New(controller *widgetsvc.Controller, surface *WebSurface, log zerolog.Logger) *Handler {
	return &Handler{
		controller: controller,
		surface:    surface,
		log:        log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the widget API.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/widget/send", h.handleSend)
	r.Get("/widget/history", h.handleHistory)
	r.Get("/widget/state", h.handleState)
	r.Post("/widget/open", h.handleOpen)
	r.Post("/widget/close", h.handleClose)
	r.Post("/widget/toggle", h.handleToggle)
	r.Post("/widget/clear", h.handleClear)
	r.Patch("/widget/options", h.handleOptions)
	r.Get("/widget/ws", h.handleSocket)
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.surface.SetInput(payload.Message)
	reply := h.controller.Send(r.Context())
	if reply == nil {
		// Empty input is a silent no-op, not an error.
		utils.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "ignored"})
		return
	}
	utils.RespondJSON(w, http.StatusOK, reply)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.controller.History())
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	opts := h.controller.Options()
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"state":   h.controller.State().String(),
		"surface": h.surface.State(),
		"botName": opts.BotName,
		"theme":   opts.Theme,
	})
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	h.controller.Open()
	utils.RespondJSON(w, http.StatusOK, map[string]string{"state": h.controller.State().String()})
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	h.controller.Close()
	utils.RespondJSON(w, http.StatusOK, map[string]string{"state": h.controller.State().String()})
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	h.controller.Toggle()
	utils.RespondJSON(w, http.StatusOK, map[string]string{"state": h.controller.State().String()})
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	h.controller.Clear(r.Context())
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	var overrides widgetsvc.Overrides
	if err := json.NewDecoder(r.Body).Decode(&overrides); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid options payload")
		return
	}

	merged := h.controller.UpdateOptions(overrides)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"botName":        merged.BotName,
		"welcomeMessage": merged.WelcomeMessage,
		"apiEndpoint":    merged.APIEndpoint,
		"responses":      merged.Responses,
		"typingDelay":    merged.TypingDelay.Milliseconds(),
		"messageDelay":   merged.MessageDelay.Milliseconds(),
		"autoOpen":       merged.AutoOpen,
		"theme":          merged.Theme,
	})
}

func (h *Handler) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	h.surface.attach(conn)
}

// HandlePage serves the embedded demo page hosting the widget markup.
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(widgetPage))
}
