package subscription

import (
	"fmt"

	"github.com/geobridge/geobridge-go/pkg/envelope"
)

// Kind selects the event shape of a region listener.
type Kind uint8

const (
	// KindKeyEvents emits bare key membership events.
	KindKeyEvents Kind = iota
	// KindDataEvents emits membership events with the point payload.
	KindDataEvents

	numKinds = 2
)

// Kinds lists every listener kind.
var Kinds = []Kind{KindKeyEvents, KindDataEvents}

// String returns the kind label used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindKeyEvents:
		return "key"
	case KindDataEvents:
		return "data"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k < numKinds
}

// ParseKind parses a kind label.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "key", "keys", "key_events":
		return KindKeyEvents, nil
	case "data", "data_events":
		return KindDataEvents, nil
	default:
		return 0, fmt.Errorf("%w: unknown listener kind %q", ErrInvalidArgument, s)
	}
}

// KindOf returns the listener kind that produces envelopes of type t.
// Ready and error envelopes are reported as KindKeyEvents.
func KindOf(t envelope.Type) Kind {
	if t.HasData() {
		return KindDataEvents
	}
	return KindKeyEvents
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid listener kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
