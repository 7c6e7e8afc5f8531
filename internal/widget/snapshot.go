package widget

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AbdulManan133/chatbot-Ui/internal/model/chat"
)

const (
	// historyKey is the fixed persistence slot for the conversation.
	historyKey = "chatbot_history"
	// maxPersisted bounds the snapshot, not the in-memory history.
	maxPersisted = 50
	// snapshotTTL is the freshness window past which a stored snapshot
	// is treated as absent.
	snapshotTTL = 7 * 24 * time.Hour
)

// saveHistory writes the newest maxPersisted messages through to the
// store. Persistence is best-effort: failures are logged and swallowed.
func (c *Controller) saveHistory(ctx context.Context, history []chat.Message) {
	tail := history
	if len(tail) > maxPersisted {
		tail = tail[len(tail)-maxPersisted:]
	}
	snap := chat.Snapshot{Messages: tail, Timestamp: time.Now().UTC()}
	payload, err := json.Marshal(snap)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to encode history snapshot")
		return
	}
	if err := c.store.Write(ctx, historyKey, string(payload)); err != nil {
		c.log.Warn().Err(err).Msg("failed to write history snapshot")
	}
}

// loadHistory returns the persisted history, or nil when the snapshot is
// absent, unreadable, or older than the freshness window. Never errors:
// a broken store only costs persistence, not the chat.
func (c *Controller) loadHistory(ctx context.Context) []chat.Message {
	payload, ok, err := c.store.Read(ctx, historyKey)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to read history snapshot")
		return nil
	}
	if !ok {
		return nil
	}
	var snap chat.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		c.log.Warn().Err(err).Msg("discarding malformed history snapshot")
		return nil
	}
	if time.Since(snap.Timestamp) > snapshotTTL {
		return nil
	}
	return snap.Messages
}

// clearSnapshot removes the persisted slot, logging failures only.
func (c *Controller) clearSnapshot(ctx context.Context) {
	if err := c.store.Delete(ctx, historyKey); err != nil {
		c.log.Warn().Err(err).Msg("failed to delete history snapshot")
	}
}
