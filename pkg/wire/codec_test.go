package wire

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geobridge/geobridge-go/pkg/envelope"
)

func TestEnvelopeCBORRoundTrip(t *testing.T) {
	loc := envelope.Location{Latitude: 10.5, Longitude: -20.25}
	tests := []struct {
		name string
		env  envelope.Envelope
	}{
		{"entered", envelope.Entered("a", loc)},
		{"exited", envelope.Exited("a")},
		{"data moved", envelope.DataMoved("b", loc, map[string]any{"line": "M10", "seats": map[string]any{"free": true}})},
		{"ready", envelope.Ready([]string{"a", "b"})},
		{"empty ready", envelope.Ready(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeEnvelope(tt.env)
			require.NoError(t, err)

			got, err := DecodeEnvelope(data)
			require.NoError(t, err)

			assert.Equal(t, tt.env.Type(), got.Type())
			assert.Equal(t, tt.env.Key(), got.Key())
			assert.Equal(t, tt.env.Location(), got.Location())
			assert.Equal(t, tt.env.Data(), got.Data())
			assert.Equal(t, tt.env.Keys(), got.Keys())
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	env := envelope.DataChanged("a", envelope.Location{Latitude: 1, Longitude: 2}, map[string]any{"z": 1, "a": 2, "m": 3})

	first, err := EncodeEnvelope(env)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := EncodeEnvelope(env)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEncodeErrorEnvelope(t *testing.T) {
	_, err := EncodeEnvelope(envelope.Error("boom"))
	assert.ErrorIs(t, err, envelope.ErrNotRecord)

	_, err = EncodeEnvelopeJSON(envelope.Error("boom"))
	assert.ErrorIs(t, err, envelope.ErrNotRecord)
}

func TestEnvelopeJSON(t *testing.T) {
	data, err := EncodeEnvelopeJSON(envelope.Entered("a", envelope.Location{Latitude: 10, Longitude: 20}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"callBack":"onKeyEntered","key":"a","latitude":10,"longitude":20}`, string(data))

	got, err := DecodeEnvelopeJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Key())
}

func TestDecodeUnknownCallBack(t *testing.T) {
	data, err := Marshal(map[string]any{"callBack": "onSomethingElse"})
	require.NoError(t, err)

	_, err = DecodeEnvelope(data)
	assert.ErrorIs(t, err, envelope.ErrUnknownCallBack)
}

func TestRecordStream(t *testing.T) {
	envs := []envelope.Envelope{
		envelope.Entered("a", envelope.Location{Latitude: 1, Longitude: 2}),
		envelope.DataExited("b", map[string]any{"value": "x"}),
		envelope.Ready([]string{"a"}),
	}

	for _, format := range []Format{FormatJSONL, FormatCBOR} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w := NewRecordWriter(&buf, format)
			for _, env := range envs {
				require.NoError(t, w.Write(env))
			}

			r := NewRecordReader(&buf, format)
			for _, want := range envs {
				got, err := r.Next()
				require.NoError(t, err)
				assert.Equal(t, want.Type(), got.Type())
				assert.Equal(t, want.Key(), got.Key())
			}
			_, err := r.Next()
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestRecordStreamLargePayload(t *testing.T) {
	payload := strings.Repeat("x", 256*1024)
	want := envelope.DataEntered("a", envelope.Location{Latitude: 1, Longitude: 2}, map[string]any{"blob": payload})

	for _, format := range []Format{FormatJSONL, FormatCBOR} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w := NewRecordWriter(&buf, format)
			require.NoError(t, w.Write(want))
			require.NoError(t, w.Write(envelope.Exited("b")))

			r := NewRecordReader(&buf, format)
			got, err := r.Next()
			require.NoError(t, err)
			assert.Equal(t, envelope.TypeDataEntered, got.Type())
			assert.Equal(t, payload, got.Data()["blob"])

			got, err = r.Next()
			require.NoError(t, err)
			assert.Equal(t, "b", got.Key())
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CBOR")
	require.NoError(t, err)
	assert.Equal(t, FormatCBOR, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSONL, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
