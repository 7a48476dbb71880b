package wire

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/geobridge/geobridge-go/pkg/envelope"
)

// Format selects the stream encoding.
type Format uint8

const (
	// FormatJSONL writes one JSON record per line.
	FormatJSONL Format = iota
	// FormatCBOR writes a sequence of CBOR records.
	FormatCBOR
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSONL:
		return "jsonl"
	case FormatCBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "jsonl", "json":
		return FormatJSONL, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want jsonl or cbor)", s)
	}
}

// RecordWriter writes envelope records to an io.Writer.
// It is safe for concurrent use.
type RecordWriter struct {
	mu   sync.Mutex
	json *json.Encoder
	cbor *cbor.Encoder
}

// NewRecordWriter creates a RecordWriter for the given format.
func NewRecordWriter(w io.Writer, format Format) *RecordWriter {
	rw := &RecordWriter{}
	if format == FormatCBOR {
		rw.cbor = NewEncoder(w)
	} else {
		rw.json = json.NewEncoder(w)
	}
	return rw
}

// Write encodes one envelope.
func (rw *RecordWriter) Write(env envelope.Envelope) error {
	rec, err := env.Record()
	if err != nil {
		return err
	}

	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.cbor != nil {
		return rw.cbor.Encode(rec)
	}
	return rw.json.Encode(rec)
}

// MaxRecordSize bounds one JSON-lines record.
const MaxRecordSize = 16 << 20

// RecordReader reads envelope records written by RecordWriter.
type RecordReader struct {
	scanner *bufio.Scanner
	cbor    *cbor.Decoder
}

// NewRecordReader creates a RecordReader for the given format.
func NewRecordReader(r io.Reader, format Format) *RecordReader {
	if format == FormatCBOR {
		return &RecordReader{cbor: NewDecoder(r)}
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxRecordSize)
	return &RecordReader{scanner: scanner}
}

// Next returns the next envelope. Returns io.EOF at the end of the stream.
func (rr *RecordReader) Next() (envelope.Envelope, error) {
	var rec map[string]any

	if rr.cbor != nil {
		if err := rr.cbor.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return envelope.Envelope{}, io.EOF
			}
			return envelope.Envelope{}, fmt.Errorf("failed to decode record: %w", err)
		}
	} else {
		for {
			if !rr.scanner.Scan() {
				if err := rr.scanner.Err(); err != nil {
					return envelope.Envelope{}, err
				}
				return envelope.Envelope{}, io.EOF
			}
			line := strings.TrimSpace(rr.scanner.Text())
			if line == "" {
				continue
			}
			if err := json.Unmarshal([]byte(line), &rec); err != nil {
				return envelope.Envelope{}, fmt.Errorf("failed to decode record: %w", err)
			}
			break
		}
	}

	env, err := envelope.FromRecord(rec)
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("invalid record: %w", err)
	}
	return env, nil
}
