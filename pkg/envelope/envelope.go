package envelope

import (
	"fmt"
	"math"
)

// Location is a WGS 84 coordinate in degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether the coordinate lies within the WGS 84 ranges.
func (l Location) Valid() bool {
	if math.IsNaN(l.Latitude) || math.IsNaN(l.Longitude) {
		return false
	}
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// String returns the coordinate as "lat,lng".
func (l Location) String() string {
	return fmt.Sprintf("%g,%g", l.Latitude, l.Longitude)
}

// Type identifies the envelope variant.
type Type uint8

const (
	TypeEntered Type = iota + 1
	TypeExited
	TypeMoved
	TypeDataEntered
	TypeDataExited
	TypeDataMoved
	TypeDataChanged
	TypeReady
	TypeError
)

// CallBack names used in the record form.
const (
	CallBackKeyEntered     = "onKeyEntered"
	CallBackKeyExited      = "onKeyExited"
	CallBackKeyMoved       = "onKeyMoved"
	CallBackDataKeyEntered = "onDataKeyEntered"
	CallBackDataKeyExited  = "onDataKeyExited"
	CallBackDataKeyMoved   = "onDataKeyMoved"
	CallBackDataKeyChanged = "onDataKeyChanged"
	CallBackGeoQueryReady  = "onGeoQueryReady"
	CallBackGeoQueryError  = "onGeoQueryError"
)

// CallBack returns the record discriminator for the type.
func (t Type) CallBack() string {
	switch t {
	case TypeEntered:
		return CallBackKeyEntered
	case TypeExited:
		return CallBackKeyExited
	case TypeMoved:
		return CallBackKeyMoved
	case TypeDataEntered:
		return CallBackDataKeyEntered
	case TypeDataExited:
		return CallBackDataKeyExited
	case TypeDataMoved:
		return CallBackDataKeyMoved
	case TypeDataChanged:
		return CallBackDataKeyChanged
	case TypeReady:
		return CallBackGeoQueryReady
	case TypeError:
		return CallBackGeoQueryError
	default:
		return ""
	}
}

// String returns a human-readable type name.
func (t Type) String() string {
	switch t {
	case TypeEntered:
		return "ENTERED"
	case TypeExited:
		return "EXITED"
	case TypeMoved:
		return "MOVED"
	case TypeDataEntered:
		return "DATA_ENTERED"
	case TypeDataExited:
		return "DATA_EXITED"
	case TypeDataMoved:
		return "DATA_MOVED"
	case TypeDataChanged:
		return "DATA_CHANGED"
	case TypeReady:
		return "READY"
	case TypeError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// HasLocation reports whether envelopes of this type carry a location.
func (t Type) HasLocation() bool {
	switch t {
	case TypeEntered, TypeMoved, TypeDataEntered, TypeDataMoved, TypeDataChanged:
		return true
	default:
		return false
	}
}

// HasData reports whether envelopes of this type carry a data payload.
func (t Type) HasData() bool {
	switch t {
	case TypeDataEntered, TypeDataExited, TypeDataMoved, TypeDataChanged:
		return true
	default:
		return false
	}
}

// typeByCallBack maps record discriminators back to types.
var typeByCallBack = map[string]Type{
	CallBackKeyEntered:     TypeEntered,
	CallBackKeyExited:      TypeExited,
	CallBackKeyMoved:       TypeMoved,
	CallBackDataKeyEntered: TypeDataEntered,
	CallBackDataKeyExited:  TypeDataExited,
	CallBackDataKeyMoved:   TypeDataMoved,
	CallBackDataKeyChanged: TypeDataChanged,
	CallBackGeoQueryReady:  TypeReady,
}

// ParseCallBack returns the type for a record discriminator.
func ParseCallBack(callBack string) (Type, bool) {
	t, ok := typeByCallBack[callBack]
	return t, ok
}

// Envelope is a single region event. Construct envelopes with the
// variant constructors; the zero value is not a valid envelope.
type Envelope struct {
	typ      Type
	key      string
	location Location
	data     map[string]any
	keys     []string
	message  string
}

// Entered reports that key moved into the region.
func Entered(key string, loc Location) Envelope {
	return Envelope{typ: TypeEntered, key: key, location: loc}
}

// Exited reports that key left the region.
func Exited(key string) Envelope {
	return Envelope{typ: TypeExited, key: key}
}

// Moved reports that key moved while staying inside the region.
func Moved(key string, loc Location) Envelope {
	return Envelope{typ: TypeMoved, key: key, location: loc}
}

// DataEntered is Entered with the key's payload attached.
func DataEntered(key string, loc Location, data map[string]any) Envelope {
	return Envelope{typ: TypeDataEntered, key: key, location: loc, data: copyData(data)}
}

// DataExited is Exited with the key's payload attached.
func DataExited(key string, data map[string]any) Envelope {
	return Envelope{typ: TypeDataExited, key: key, data: copyData(data)}
}

// DataMoved is Moved with the key's payload attached.
func DataMoved(key string, loc Location, data map[string]any) Envelope {
	return Envelope{typ: TypeDataMoved, key: key, location: loc, data: copyData(data)}
}

// DataChanged reports that the payload of a key inside the region changed.
func DataChanged(key string, loc Location, data map[string]any) Envelope {
	return Envelope{typ: TypeDataChanged, key: key, location: loc, data: copyData(data)}
}

// Ready marks the end of the initial scan. keys is copied.
func Ready(keys []string) Envelope {
	k := make([]string, len(keys))
	copy(k, keys)
	return Envelope{typ: TypeReady, keys: k}
}

// Error reports a region query failure.
func Error(message string) Envelope {
	return Envelope{typ: TypeError, message: message}
}

// Type returns the variant.
func (e Envelope) Type() Type { return e.typ }

// Key returns the affected key. Empty for Ready and Error.
func (e Envelope) Key() string { return e.key }

// Location returns the key location for variants that carry one.
func (e Envelope) Location() Location { return e.location }

// Message returns the error message of an Error envelope.
func (e Envelope) Message() string { return e.message }

// Data returns a copy of the payload for data variants, nil otherwise.
func (e Envelope) Data() map[string]any {
	if !e.typ.HasData() {
		return nil
	}
	return copyData(e.data)
}

// Keys returns a copy of the key list of a Ready envelope.
func (e Envelope) Keys() []string {
	if e.typ != TypeReady {
		return nil
	}
	k := make([]string, len(e.keys))
	copy(k, e.keys)
	return k
}

// String returns a compact description for logs.
func (e Envelope) String() string {
	switch {
	case e.typ == TypeReady:
		return fmt.Sprintf("%s keys=%v", e.typ, e.keys)
	case e.typ == TypeError:
		return fmt.Sprintf("%s %s", e.typ, e.message)
	case e.typ.HasLocation():
		return fmt.Sprintf("%s %s @%s", e.typ, e.key, e.location)
	default:
		return fmt.Sprintf("%s %s", e.typ, e.key)
	}
}

// copyData returns a shallow copy of data; nil yields an empty map.
func copyData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
