package envelope

import (
	"errors"
	"fmt"
)

// Record field names.
const (
	FieldCallBack  = "callBack"
	FieldKey       = "key"
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
	FieldData      = "data"
	FieldResult    = "result"
)

// Record errors.
var (
	ErrNotRecord       = errors.New("error envelopes have no record form")
	ErrUnknownCallBack = errors.New("unknown callBack")
	ErrMissingField    = errors.New("missing record field")
	ErrFieldType       = errors.New("invalid record field type")
)

// Record returns the tagged record form of the envelope.
// Error envelopes have no record form and return ErrNotRecord.
func (e Envelope) Record() (map[string]any, error) {
	if e.typ == TypeError {
		return nil, ErrNotRecord
	}
	callBack := e.typ.CallBack()
	if callBack == "" {
		return nil, fmt.Errorf("%w: type %d", ErrUnknownCallBack, e.typ)
	}

	rec := map[string]any{FieldCallBack: callBack}
	if e.typ == TypeReady {
		rec[FieldResult] = e.Keys()
		return rec, nil
	}

	rec[FieldKey] = e.key
	if e.typ.HasLocation() {
		rec[FieldLatitude] = e.location.Latitude
		rec[FieldLongitude] = e.location.Longitude
	}
	if e.typ.HasData() {
		rec[FieldData] = copyData(e.data)
	}
	return rec, nil
}

// FromRecord rebuilds an envelope from its record form.
// Numeric fields accept any integer or float representation since JSON and
// CBOR decoders differ in what they produce.
func FromRecord(rec map[string]any) (Envelope, error) {
	cb, ok := rec[FieldCallBack].(string)
	if !ok {
		return Envelope{}, fmt.Errorf("%w: %s", ErrMissingField, FieldCallBack)
	}
	typ, ok := ParseCallBack(cb)
	if !ok {
		return Envelope{}, fmt.Errorf("%w: %q", ErrUnknownCallBack, cb)
	}

	if typ == TypeReady {
		keys, err := stringList(rec[FieldResult])
		if err != nil {
			return Envelope{}, err
		}
		return Ready(keys), nil
	}

	key, ok := rec[FieldKey].(string)
	if !ok {
		return Envelope{}, fmt.Errorf("%w: %s", ErrMissingField, FieldKey)
	}

	var loc Location
	if typ.HasLocation() {
		lat, err := number(rec, FieldLatitude)
		if err != nil {
			return Envelope{}, err
		}
		lng, err := number(rec, FieldLongitude)
		if err != nil {
			return Envelope{}, err
		}
		loc = Location{Latitude: lat, Longitude: lng}
	}

	var data map[string]any
	if typ.HasData() {
		raw, present := rec[FieldData]
		if !present {
			return Envelope{}, fmt.Errorf("%w: %s", ErrMissingField, FieldData)
		}
		switch raw.(type) {
		case nil, map[string]any, map[any]any:
			data = NormalizeData(raw)
		default:
			return Envelope{}, fmt.Errorf("%w: %s is %s", ErrFieldType, FieldData, describe(raw))
		}
	}

	switch typ {
	case TypeEntered:
		return Entered(key, loc), nil
	case TypeExited:
		return Exited(key), nil
	case TypeMoved:
		return Moved(key, loc), nil
	case TypeDataEntered:
		return DataEntered(key, loc, data), nil
	case TypeDataExited:
		return DataExited(key, data), nil
	case TypeDataMoved:
		return DataMoved(key, loc, data), nil
	default:
		return DataChanged(key, loc, data), nil
	}
}

func number(rec map[string]any, field string) (float64, error) {
	raw, present := rec[field]
	if !present {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %s is %s", ErrFieldType, field, describe(raw))
	}
}

func stringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s element is %s", ErrFieldType, FieldResult, describe(item))
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s is %s", ErrFieldType, FieldResult, describe(raw))
	}
}
