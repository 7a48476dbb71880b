package commands

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/geobridge/geobridge-go/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

var csvHeader = []string{"timestamp", "session_id", "layer", "category", "path", "kind", "type", "key", "latitude", "longitude", "delivered", "detail"}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := cw.Write(csvRow(event)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return cw.Error()
}

func csvRow(event log.Event) []string {
	var key, lat, lng, delivered, detail string
	switch {
	case event.Envelope != nil:
		key = event.Envelope.Key
		if event.Envelope.Latitude != nil {
			lat = strconv.FormatFloat(*event.Envelope.Latitude, 'g', -1, 64)
		}
		if event.Envelope.Longitude != nil {
			lng = strconv.FormatFloat(*event.Envelope.Longitude, 'g', -1, 64)
		}
		delivered = strconv.FormatBool(event.Envelope.Delivered)
	case event.StateChange != nil:
		detail = event.StateChange.Entity.String() + " " + event.StateChange.NewState
	case event.Error != nil:
		detail = event.Error.Message
	}

	return []string{
		event.Timestamp.UTC().Format(timestampLayout),
		event.SessionID,
		event.Layer.String(),
		event.Category.String(),
		event.Path,
		event.Kind,
		typeLabel(event),
		key,
		lat,
		lng,
		delivered,
		detail,
	}
}
