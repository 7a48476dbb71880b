package envelope

import "fmt"

// ValueKey wraps payloads that are not mappings.
const ValueKey = "value"

// NormalizeData converts a backend payload into a key-value mapping.
//
// A map[string]any is returned as a shallow copy. A map[any]any whose keys
// are all strings (the shape CBOR decoding produces) is converted. nil
// yields an empty map. Any other payload is wrapped as {"value": payload}.
func NormalizeData(payload any) map[string]any {
	switch v := payload.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return copyData(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			ks, ok := k.(string)
			if !ok {
				return map[string]any{ValueKey: payload}
			}
			out[ks] = val
		}
		return out
	default:
		return map[string]any{ValueKey: payload}
	}
}

// describe renders a payload for error messages.
func describe(v any) string {
	return fmt.Sprintf("%T", v)
}
