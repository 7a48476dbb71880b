package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/geobridge/geobridge-go/pkg/envelope"
	"github.com/geobridge/geobridge-go/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.glog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

const testSession = "5f1c2a9e-0b7d-4c3e-9a61-2d8f0e4b7c11"

func enteredEvent(ts time.Time, key string, lat, lng float64) log.Event {
	return log.Event{
		Timestamp: ts,
		SessionID: testSession,
		Layer:     log.LayerStream,
		Category:  log.CategoryEnvelope,
		Path:      "locations",
		Kind:      "key",
		Envelope:  log.NewEnvelopeEvent(envelope.Entered(key, envelope.Location{Latitude: lat, Longitude: lng}), true),
	}
}
