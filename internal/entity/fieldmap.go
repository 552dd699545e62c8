package entity

import "strings"

// FieldMap is a reviewed extraction: canonical field name -> value.
// Values are JSON-shaped (string or float64); a key is simply absent when
// the document did not yield it.
type FieldMap map[string]any

// String returns the trimmed string value for key, or false when the key is
// absent or not a string.
func (f FieldMap) String(key string) (string, bool) {
	v, ok := f[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// Has reports whether key is present.
func (f FieldMap) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Clone returns a shallow copy. The pipeline hands the review stage a copy
// so an aborted review leaves the original extraction intact.
func (f FieldMap) Clone() FieldMap {
	out := make(FieldMap, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
