package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes capture events to an slog.Logger.
// Useful for development when events should show up on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Path != "" {
		attrs = append(attrs, slog.String("path", event.Path))
	}
	if event.Kind != "" {
		attrs = append(attrs, slog.String("kind", event.Kind))
	}

	switch {
	case event.Envelope != nil:
		attrs = append(attrs,
			slog.String("callback", event.Envelope.CallBack),
			slog.Bool("delivered", event.Envelope.Delivered),
		)
		if event.Envelope.Key != "" {
			attrs = append(attrs, slog.String("key", event.Envelope.Key))
		}
		if event.Envelope.Latitude != nil && event.Envelope.Longitude != nil {
			attrs = append(attrs,
				slog.Float64("lat", *event.Envelope.Latitude),
				slog.Float64("lng", *event.Envelope.Longitude),
			)
		}
		if event.Envelope.Keys != nil {
			attrs = append(attrs, slog.Int("keys", len(event.Envelope.Keys)))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != "" {
			attrs = append(attrs, slog.String("error_code", event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "capture", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
