package widget

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/AbdulManan133/chatbot-Ui/internal/model/chat"
	widgetsvc "github.com/AbdulManan133/chatbot-Ui/internal/widget"
)

// WebSurface implements the widget's presentation port for browser
// clients: rendered messages are buffered for polling, and every surface
// mutation is mirrored to websocket subscribers as an event.
type WebSurface struct {
	log zerolog.Logger

	mu          sync.RWMutex
	rendered    []chat.Message
	open        bool
	typing      bool
	input       string
	sendEnabled bool
	inputHeight int
	removed     bool
	handler     widgetsvc.InputHandler
	subscribers map[*websocket.Conn]struct{}
}

// SurfaceEvent is one presentation mutation pushed to websocket clients.
type SurfaceEvent struct {
	Kind    string        `json:"kind"` // message, typing, open, clear, scroll
	Message *chat.Message `json:"message,omitempty"`
	Open    *bool         `json:"open,omitempty"`
	Typing  *bool         `json:"typing,omitempty"`
}

// SurfaceState is the poll-friendly view of the surface.
type SurfaceState struct {
	Open        bool `json:"open"`
	Typing      bool `json:"typing"`
	SendEnabled bool `json:"sendEnabled"`
	InputHeight int  `json:"inputHeight"`
}

// NewWebSurface returns an empty surface with no subscribers.
func NewWebSurface(log zerolog.Logger) *WebSurface {
	return &WebSurface{
		log:         log,
		subscribers: make(map[*websocket.Conn]struct{}),
	}
}

// Has reports true for every slot: the embedded page ships the full
// widget markup.
func (s *WebSurface) Has(slot widgetsvc.Slot) bool {
	for _, known := range widgetsvc.RequiredSlots {
		if slot == known {
			return true
		}
	}
	return false
}

// Subscribe registers the interaction handler delivering browser events
// to the controller.
func (s *WebSurface) Subscribe(h widgetsvc.InputHandler) func() {
	s.mu.Lock()
	s.handler = h
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		if s.handler == h {
			s.handler = nil
		}
		s.mu.Unlock()
	}
}

func (s *WebSurface) SetOpen(open bool) {
	s.mu.Lock()
	s.open = open
	s.mu.Unlock()
	s.broadcast(SurfaceEvent{Kind: "open", Open: &open})
}

func (s *WebSurface) RenderMessage(msg chat.Message) {
	s.mu.Lock()
	s.rendered = append(s.rendered, msg)
	s.mu.Unlock()
	s.broadcast(SurfaceEvent{Kind: "message", Message: &msg})
}

func (s *WebSurface) ClearMessages() {
	s.mu.Lock()
	s.rendered = nil
	s.mu.Unlock()
	s.broadcast(SurfaceEvent{Kind: "clear"})
}

func (s *WebSurface) ScrollToEnd() {
	s.broadcast(SurfaceEvent{Kind: "scroll"})
}

func (s *WebSurface) SetTyping(on bool) {
	s.mu.Lock()
	s.typing = on
	s.mu.Unlock()
	s.broadcast(SurfaceEvent{Kind: "typing", Typing: &on})
}

func (s *WebSurface) Input() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.input
}

func (s *WebSurface) SetInput(text string) {
	s.mu.Lock()
	s.input = text
	s.mu.Unlock()
}

func (s *WebSurface) SetSendEnabled(enabled bool) {
	s.mu.Lock()
	s.sendEnabled = enabled
	s.mu.Unlock()
}

func (s *WebSurface) SetInputHeight(px int) {
	s.mu.Lock()
	s.inputHeight = px
	s.mu.Unlock()
}

// Remove drops all subscribers and marks the surface gone. Safe to call
// repeatedly.
func (s *WebSurface) Remove() {
	s.mu.Lock()
	if s.removed {
		s.mu.Unlock()
		return
	}
	s.removed = true
	conns := make([]*websocket.Conn, 0, len(s.subscribers))
	for conn := range s.subscribers {
		conns = append(conns, conn)
	}
	s.subscribers = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}

// Messages returns the rendered message list for polling clients.
func (s *WebSurface) Messages() []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]chat.Message(nil), s.rendered...)
}

// State returns the current visual state for polling clients.
func (s *WebSurface) State() SurfaceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SurfaceState{
		Open:        s.open,
		Typing:      s.typing,
		SendEnabled: s.sendEnabled,
		InputHeight: s.inputHeight,
	}
}

// broadcast pushes an event to every websocket subscriber, dropping
// connections that fail to accept the write.
func (s *WebSurface) broadcast(ev SurfaceEvent) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.subscribers))
	for conn := range s.subscribers {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(ev); err != nil {
			s.log.Debug().Err(err).Msg("dropping websocket subscriber")
			s.drop(conn)
		}
	}
}

func (s *WebSurface) attach(conn *websocket.Conn) {
	s.mu.Lock()
	if s.removed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.subscribers[conn] = struct{}{}
	s.mu.Unlock()

	go s.readLoop(conn)
}

func (s *WebSurface) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.subscribers, conn)
	s.mu.Unlock()
	conn.Close()
}
