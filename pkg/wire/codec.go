package wire

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/geobridge/geobridge-go/pkg/envelope"
)

// encMode is the CBOR encoder mode for stream records.
// Configured for deterministic encoding.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for stream records.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical, // Deterministic key ordering
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeUnix,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	// Lenient for forward compatibility; nested maps decode with string keys
	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
		DefaultMapType:    reflect.TypeOf(map[string]any(nil)),
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// Marshal encodes a value to CBOR bytes.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR bytes into a value.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// NewEncoder creates a new CBOR encoder that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder creates a new CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}

// EncodeEnvelope encodes the record form of env to CBOR bytes.
func EncodeEnvelope(env envelope.Envelope) ([]byte, error) {
	rec, err := env.Record()
	if err != nil {
		return nil, fmt.Errorf("failed to build record: %w", err)
	}
	return Marshal(rec)
}

// DecodeEnvelope decodes CBOR bytes into an envelope.
func DecodeEnvelope(data []byte) (envelope.Envelope, error) {
	var rec map[string]any
	if err := Unmarshal(data, &rec); err != nil {
		return envelope.Envelope{}, fmt.Errorf("failed to decode record: %w", err)
	}
	env, err := envelope.FromRecord(rec)
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("invalid record: %w", err)
	}
	return env, nil
}

// EncodeEnvelopeJSON encodes the record form of env to JSON bytes.
func EncodeEnvelopeJSON(env envelope.Envelope) ([]byte, error) {
	rec, err := env.Record()
	if err != nil {
		return nil, fmt.Errorf("failed to build record: %w", err)
	}
	return json.Marshal(rec)
}

// DecodeEnvelopeJSON decodes JSON bytes into an envelope.
func DecodeEnvelopeJSON(data []byte) (envelope.Envelope, error) {
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return envelope.Envelope{}, fmt.Errorf("failed to decode record: %w", err)
	}
	env, err := envelope.FromRecord(rec)
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("invalid record: %w", err)
	}
	return env, nil
}
