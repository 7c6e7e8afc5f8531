// Package telemetry records widget events for local diagnostics.
// Integrators can point the widget at any Recorder implementation
// without touching the rest of the contract.
package telemetry

import "github.com/rs/zerolog"

// LogRecorder writes widget events to the diagnostic log. Recording is
// fire-and-forget: there is no error path back into the chat flow.
type LogRecorder struct {
	log zerolog.Logger
}

// NewLogRecorder wraps the given logger.
func NewLogRecorder(log zerolog.Logger) *LogRecorder {
	return &LogRecorder{log: log}
}

// Record logs one event with its optional payload fields.
func (r *LogRecorder) Record(event string, fields map[string]any) {
	r.log.Info().Str("event", event).Fields(fields).Msg("widget event")
}
