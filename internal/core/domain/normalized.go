package domain

import "encoding/json"

// NormalizedValue is the plain, serialisation-ready form of a field value.
// Variants: NormalizedText, NormalizedList and NormalizedMap. A field that
// cannot be represented has no NormalizedValue at all.
type NormalizedValue interface {
	json.Marshaler
	isNormalizedValue()
}

// NormalizedText is a plain string.
type NormalizedText string

// NormalizedList is an ordered list of normalised values.
type NormalizedList []NormalizedValue

// NormalizedMap is a flat string-to-string mapping.
type NormalizedMap map[string]string

func (NormalizedText) isNormalizedValue() {}
func (NormalizedList) isNormalizedValue() {}
func (NormalizedMap) isNormalizedValue()  {}

// MarshalJSON encodes the text as a JSON string.
func (t NormalizedText) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// MarshalJSON encodes the list as a JSON array. A nil list encodes as [].
func (l NormalizedList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]NormalizedValue(l))
}

// MarshalJSON encodes the mapping as a JSON object. A nil map encodes as {}.
func (m NormalizedMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]string(m))
}

// Plain converts a normalised value into plain Go values
// (string, []any, map[string]string), for callers that do not want the
// typed variants.
func Plain(v NormalizedValue) any {
	switch val := v.(type) {
	case NormalizedText:
		return string(val)
	case NormalizedList:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, Plain(item))
		}
		return out
	case NormalizedMap:
		out := make(map[string]string, len(val))
		for k, s := range val {
			out[k] = s
		}
		return out
	default:
		return nil
	}
}
