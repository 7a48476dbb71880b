// Package commands implements the geobridge-log CLI commands.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/geobridge/geobridge-go/pkg/envelope"
	"github.com/geobridge/geobridge-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer    *log.Layer
	Category *log.Category
	Kind     string
	Key      string
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{
		Layer:    f.Layer,
		Category: f.Category,
		Kind:     f.Kind,
		Key:      f.Key,
	}
}

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session:id] LAYER kind Type
	ts := event.Timestamp.UTC().Format(timestampLayout)
	sessionID := shortenID(event.SessionID)

	kind := event.Kind
	if kind == "" {
		kind = "-"
	}

	fmt.Fprintf(w, "%s [session:%s] %s %s %s\n", ts, sessionID, event.Layer.String(), kind, typeLabel(event))

	if event.Path != "" {
		fmt.Fprintf(w, "  Path: %s\n", event.Path)
	}

	switch {
	case event.Envelope != nil:
		formatEnvelopeDetails(w, event.Envelope)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// typeLabel names the payload carried by the event.
func typeLabel(event log.Event) string {
	switch {
	case event.Envelope != nil:
		return event.Envelope.CallBack
	case event.StateChange != nil:
		return "State"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatEnvelopeDetails(w io.Writer, env *log.EnvelopeEvent) {
	if env.Key != "" {
		fmt.Fprintf(w, "  Key: %s\n", env.Key)
	}
	if env.Latitude != nil && env.Longitude != nil {
		fmt.Fprintf(w, "  Location: %g,%g\n", *env.Latitude, *env.Longitude)
	}
	if env.Data != nil {
		data, err := json.Marshal(env.Data)
		if err == nil {
			fmt.Fprintf(w, "  Data: %s\n", string(data))
		}
	}
	if env.CallBack == envelope.CallBackGeoQueryReady {
		fmt.Fprintf(w, "  Keys: [%s]\n", strings.Join(env.Keys, ", "))
	}
	if !env.Delivered {
		fmt.Fprintln(w, "  Dropped: no consumer")
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != "" {
		fmt.Fprintf(w, "  Code: %s\n", err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// ParseLayerFlag parses a layer string from command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "backend":
		return log.LayerBackend, nil
	case "bridge":
		return log.LayerBridge, nil
	case "stream":
		return log.LayerStream, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be backend, bridge, or stream)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "envelope":
		return log.CategoryEnvelope, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be envelope, state, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
