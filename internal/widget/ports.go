package widget

import (
	"context"

	"github.com/AbdulManan133/chatbot-Ui/internal/model/chat"
)

// Slot names one fixed element of the widget surface. The controller
// binds every required slot at initialization and refuses to start when
// one is missing.
type Slot string

const (
	SlotRoot     Slot = "root"
	SlotToggle   Slot = "toggle"
	SlotPanel    Slot = "panel"
	SlotMessages Slot = "messages"
	SlotInput    Slot = "input"
	SlotSend     Slot = "send"
	SlotRefresh  Slot = "refresh"
	SlotClose    Slot = "close"
	SlotTyping   Slot = "typing"
	SlotEmoji    Slot = "emoji"
)

// RequiredSlots lists every element the controller binds at init time.
var RequiredSlots = []Slot{
	SlotRoot, SlotToggle, SlotPanel, SlotMessages, SlotInput,
	SlotSend, SlotRefresh, SlotClose, SlotTyping, SlotEmoji,
}

// KeyEvent is a keystroke captured by the surface's input element.
type KeyEvent struct {
	Key   string
	Shift bool
	// Mod is the platform modifier (ctrl or cmd depending on host).
	Mod bool
}

// InputHandler receives user interactions captured by the surface. The
// controller implements it; surfaces deliver events to whatever handler
// is currently subscribed.
type InputHandler interface {
	ToggleClicked()
	SendClicked()
	CloseClicked()
	RefreshClicked()
	EmojiClicked()
	KeyPressed(KeyEvent)
	InputChanged(text string)
}

// Surface is the presentation port. The controller mutates it but never
// creates its structure; a test double can implement it entirely in
// memory.
type Surface interface {
	// Has reports whether the surface provides the named slot.
	Has(Slot) bool
	// Subscribe registers the interaction handler and returns a cancel
	// function that unregisters it. At most one handler is active.
	Subscribe(InputHandler) (cancel func())

	SetOpen(open bool)
	RenderMessage(chat.Message)
	ClearMessages()
	ScrollToEnd()
	SetTyping(on bool)

	Input() string
	SetInput(text string)
	SetSendEnabled(enabled bool)
	SetInputHeight(px int)

	// Remove tears the widget out of its presentation context. Must be
	// safe to call when the surface is already gone.
	Remove()
}

// Store is a string-keyed persistence slot for serialized snapshots.
// Implementations return plain errors; the controller treats every
// failure as best-effort and recovers locally.
type Store interface {
	Write(ctx context.Context, key, value string) error
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Delete(ctx context.Context, key string) error
}

// Responder produces a bot reply from the user's message and recent
// history. Any error means the caller falls back to the keyword policy.
type Responder interface {
	Reply(ctx context.Context, message string, history []chat.Message) (string, error)
}

// Recorder receives fire-and-forget widget events (open, close, refresh,
// message_sent). Implementations must never fail the chat flow.
type Recorder interface {
	Record(event string, fields map[string]any)
}

type nopRecorder struct{}

func (nopRecorder) Record(string, map[string]any) {}
