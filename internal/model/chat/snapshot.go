package chat

import "time"

// Snapshot is the serialized form of conversation history held in the
// persistence store. Timestamp records when the snapshot was written;
// snapshots past their freshness window are treated as absent on load.
type Snapshot struct {
	Messages  []Message `json:"messages"`
	Timestamp time.Time `json:"timestamp"`
}
