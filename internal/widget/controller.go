package widget

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/AbdulManan133/chatbot-Ui/internal/model/chat"
)

// State is the widget's open/closed dimension.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

const (
	// autoOpenDelay decouples the deferred auto-open transition from the
	// rest of initialization.
	autoOpenDelay = 500 * time.Millisecond

	inputBaseHeight = 24
	inputLineHeight = 20
	inputMaxHeight  = 120
)

// Key names as reported by surfaces.
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

var emojiSet = []string{"😊", "👍", "❤️", "🎉", "🤖"}

// Controller owns the conversation for the lifetime of the process: it
// merges configuration, drives the presentation surface, runs the message
// lifecycle and persists history snapshots. It implements InputHandler so
// a surface can deliver user interactions straight to it.
type Controller struct {
	surface   Surface
	store     Store
	responder Responder
	recorder  Recorder
	log       zerolog.Logger

	mu        sync.Mutex
	opts      Options
	state     State
	history   []chat.Message
	destroyed bool

	ctx           context.Context
	unsubscribe   func()
	autoOpenTimer *time.Timer

	// UnreadHook, when set, observes messages added while the widget is
	// closed. It is an extension point with intentionally no default
	// behavior.
	UnreadHook func(chat.Message)
}

// New builds a controller with the defaults shallow-overridden by the
// supplied options. Responder may be nil (keyword policy only); a nil
// recorder discards events.
func New(surface Surface, store Store, responder Responder, recorder Recorder, log zerolog.Logger, overrides Overrides) *Controller {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Controller{
		surface:   surface,
		store:     store,
		responder: responder,
		recorder:  recorder,
		log:       log,
		opts:      DefaultOptions().Merge(overrides),
		state:     StateClosed,
		ctx:       context.Background(),
	}
}

// Init runs the one-pass initialization protocol: verify surface slots,
// attach the interaction handler, rehydrate persisted history, schedule
// auto-open, and synthesize the welcome message when history is empty.
// A surface missing required slots is an integration error: Init aborts
// before attaching anything.
func (c *Controller) Init(ctx context.Context) error {
	var missing []string
	for _, slot := range RequiredSlots {
		if !c.surface.Has(slot) {
			missing = append(missing, string(slot))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("widget: surface is missing required slots: %s", strings.Join(missing, ", "))
	}

	c.mu.Lock()
	c.ctx = ctx
	opts := c.opts
	c.mu.Unlock()

	c.unsubscribe = c.surface.Subscribe(c)
	c.surface.SetSendEnabled(false)

	restored := c.loadHistory(ctx)
	if len(restored) > 0 {
		c.mu.Lock()
		c.history = append([]chat.Message(nil), restored...)
		c.mu.Unlock()
		for _, msg := range restored {
			c.surface.RenderMessage(msg)
		}
		c.surface.ScrollToEnd()
	}

	if opts.AutoOpen {
		c.autoOpenTimer = time.AfterFunc(autoOpenDelay, c.Open)
	}

	if len(restored) == 0 {
		c.addMessage(ctx, chat.NewMessage(chat.SenderBot, opts.WelcomeMessage))
	}

	c.log.Debug().Int("restored", len(restored)).Msg("widget initialized")
	return nil
}

// State returns the current open/closed state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Options returns the live configuration value.
func (c *Controller) Options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

// UpdateOptions shallow-merges a partial configuration into the live one
// and returns the result.
func (c *Controller) UpdateOptions(ov Overrides) Options {
	c.mu.Lock()
	c.opts = c.opts.Merge(ov)
	merged := c.opts
	c.mu.Unlock()
	return merged
}

// History returns a copy of the in-memory conversation.
func (c *Controller) History() []chat.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]chat.Message(nil), c.history...)
}

// Open transitions to the open state. No-op when already open.
func (c *Controller) Open() {
	c.mu.Lock()
	if c.state == StateOpen || c.destroyed {
		c.mu.Unlock()
		return
	}
	c.state = StateOpen
	c.mu.Unlock()

	c.surface.SetOpen(true)
	c.surface.ScrollToEnd()
	c.recorder.Record("open", nil)
}

// Close transitions to the closed state. No-op when already closed.
// Closing does not cancel an in-flight resolution; its reply still
// arrives and is persisted while closed.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.state == StateClosed || c.destroyed {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	c.mu.Unlock()

	c.surface.SetOpen(false)
	c.recorder.Record("close", nil)
}

// Toggle flips between open and closed.
func (c *Controller) Toggle() {
	if c.State() == StateOpen {
		c.Close()
	} else {
		c.Open()
	}
}

// Send runs the send-message protocol on the current input content and
// returns the bot reply. An empty or whitespace-only input is a silent
// no-op (nil return) and never reaches the resolver. Concurrent sends
// are not serialized; each runs its own lifecycle independently.
func (c *Controller) Send(ctx context.Context) *chat.Message {
	text := strings.TrimSpace(c.surface.Input())
	if text == "" {
		return nil
	}

	c.surface.SetInput("")
	c.surface.SetSendEnabled(false)
	c.surface.SetInputHeight(inputBaseHeight)

	c.addMessage(ctx, chat.NewMessage(chat.SenderUser, text))

	opts := c.Options()
	c.surface.SetTyping(true)
	wait(ctx, opts.TypingDelay)
	reply := c.resolve(ctx, text)
	c.surface.SetTyping(false)

	// The reveal delay stacks on top of resolution time so a fast
	// resolution still reads as a reply, not an echo.
	wait(ctx, opts.MessageDelay)

	bot := chat.NewMessage(chat.SenderBot, reply)
	c.addMessage(ctx, bot)

	c.recorder.Record("message_sent", map[string]any{"length": len(text)})
	return &bot
}

// Clear resets the conversation: drop history, delete the snapshot, clear
// the rendered list, then re-add the welcome message through the normal
// add path. Equivalent to a fresh start, not a separate lifecycle.
func (c *Controller) Clear(ctx context.Context) {
	c.mu.Lock()
	c.history = nil
	opts := c.opts
	c.mu.Unlock()

	c.clearSnapshot(ctx)
	c.surface.ClearMessages()
	c.addMessage(ctx, chat.NewMessage(chat.SenderBot, opts.WelcomeMessage))
	c.recorder.Record("refresh", nil)
}

// Destroy detaches the interaction handler and removes the widget from
// its surface. Idempotent.
func (c *Controller) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	timer := c.autoOpenTimer
	unsub := c.unsubscribe
	c.autoOpenTimer = nil
	c.unsubscribe = nil
	c.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
	if unsub != nil {
		unsub()
	}
	c.surface.Remove()
}

// addMessage is the single path for user, bot and welcome messages:
// append to history, persist write-through, render, scroll. The unread
// hook fires here when the widget is closed.
func (c *Controller) addMessage(ctx context.Context, msg chat.Message) {
	c.mu.Lock()
	c.history = append(c.history, msg)
	history := append([]chat.Message(nil), c.history...)
	closed := c.state == StateClosed
	hook := c.UnreadHook
	c.mu.Unlock()

	c.saveHistory(ctx, history)
	c.surface.RenderMessage(msg)
	c.surface.ScrollToEnd()

	if closed && hook != nil {
		hook(msg)
	}
}

func (c *Controller) baseCtx() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctx
}

// ToggleClicked implements InputHandler.
func (c *Controller) ToggleClicked() { c.Toggle() }

// SendClicked implements InputHandler.
func (c *Controller) SendClicked() { c.Send(c.baseCtx()) }

// CloseClicked implements InputHandler.
func (c *Controller) CloseClicked() { c.Close() }

// RefreshClicked implements InputHandler.
func (c *Controller) RefreshClicked() { c.Clear(c.baseCtx()) }

// EmojiClicked appends a random pick from the fixed emoji set to the
// input. Purely content insertion, no semantic effect.
func (c *Controller) EmojiClicked() {
	text := c.surface.Input() + emojiSet[rand.Intn(len(emojiSet))]
	c.surface.SetInput(text)
	c.InputChanged(text)
}

// KeyPressed implements the keyboard contract: Enter without shift sends,
// Escape closes an open widget, modifier+K toggles.
func (c *Controller) KeyPressed(ev KeyEvent) {
	switch {
	case ev.Key == KeyEnter && !ev.Shift:
		c.Send(c.baseCtx())
	case ev.Key == KeyEscape:
		if c.State() == StateOpen {
			c.Close()
		}
	case ev.Mod && strings.EqualFold(ev.Key, "k"):
		c.Toggle()
	}
}

// InputChanged keeps the send affordance and the auto-grown input height
// in sync with the current text.
func (c *Controller) InputChanged(text string) {
	c.surface.SetSendEnabled(strings.TrimSpace(text) != "")
	c.surface.SetInputHeight(InputHeight(text))
}

// InputHeight computes the input's visual height in pixels for the given
// content, clamped to the maximum.
func InputHeight(text string) int {
	lines := strings.Count(text, "\n") + 1
	h := inputBaseHeight + (lines-1)*inputLineHeight
	if h > inputMaxHeight {
		return inputMaxHeight
	}
	return h
}

func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
