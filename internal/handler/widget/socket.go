package widget

import (
	"github.com/gorilla/websocket"

	widgetsvc "github.com/AbdulManan133/chatbot-Ui/internal/widget"
)

// clientEvent is an interaction reported by the browser side of the
// surface over the websocket.
type clientEvent struct {
	Kind  string `json:"kind"` // toggle, send, close, refresh, emoji, key, input
	Key   string `json:"key,omitempty"`
	Shift bool   `json:"shift,omitempty"`
	Mod   bool   `json:"mod,omitempty"`
	Text  string `json:"text,omitempty"`
}

// readLoop consumes interaction events from one websocket client and
// forwards them to the subscribed handler until the connection dies.
func (s *WebSurface) readLoop(conn *websocket.Conn) {
	defer s.drop(conn)
	for {
		var ev clientEvent
		if err := conn.ReadJSON(&ev); err != nil {
			return
		}
		s.dispatch(ev)
	}
}

func (s *WebSurface) dispatch(ev clientEvent) {
	s.mu.RLock()
	h := s.handler
	s.mu.RUnlock()
	if h == nil {
		return
	}

	switch ev.Kind {
	case "toggle":
		h.ToggleClicked()
	case "send":
		h.SendClicked()
	case "close":
		h.CloseClicked()
	case "refresh":
		h.RefreshClicked()
	case "emoji":
		h.EmojiClicked()
	case "key":
		h.KeyPressed(widgetsvc.KeyEvent{Key: ev.Key, Shift: ev.Shift, Mod: ev.Mod})
	case "input":
		s.SetInput(ev.Text)
		h.InputChanged(ev.Text)
	default:
		s.log.Debug().Str("kind", ev.Kind).Msg("ignoring unknown client event")
	}
}
