package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
)

// Props is an insertion-ordered property map.
//
// Order matters: the code generator writes attributes in the order they were
// set, and that order survives a JSON round trip. Values are stored in their
// JSON-native form (string, float64, bool, nil, []any) with nested objects
// held as Props, so a decoded tree compares equal to the tree that produced
// it and keeps the key order of its source at every level.
//
// The zero value is an empty, ready-to-use map.
type Props struct {
	keys []string
	vals map[string]any
}

// NewProps builds Props from alternating key/value pairs.
// It panics on an odd argument count or a non-string key; it is meant for
// literals in presets and tests.
func NewProps(kv ...any) Props {
	if len(kv)%2 != 0 {
		panic("ir.NewProps: odd number of arguments")
	}
	var p Props
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("ir.NewProps: key %v is not a string", kv[i]))
		}
		p.Set(k, kv[i+1])
	}
	return p
}

// Len returns the number of properties.
func (p Props) Len() int { return len(p.keys) }

// Keys returns the property keys in insertion order.
func (p Props) Keys() []string { return slices.Clone(p.keys) }

// Has reports whether key is set.
func (p Props) Has(key string) bool {
	_, ok := p.vals[key]
	return ok
}

// Get returns the raw value for key.
func (p Props) Get(key string) (any, bool) {
	v, ok := p.vals[key]
	return v, ok
}

// Set stores value under key. Existing keys keep their position; new keys are
// appended. Go numeric types are normalized to float64.
func (p *Props) Set(key string, value any) {
	if p.vals == nil {
		p.vals = make(map[string]any)
	}
	if _, exists := p.vals[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.vals[key] = normalize(value)
}

// Delete removes key if present.
func (p *Props) Delete(key string) {
	if _, ok := p.vals[key]; !ok {
		return
	}
	delete(p.vals, key)
	p.keys = slices.DeleteFunc(p.keys, func(k string) bool { return k == key })
	if len(p.keys) == 0 {
		p.keys, p.vals = nil, nil
	}
}

// All iterates over key/value pairs in insertion order.
func (p Props) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range p.keys {
			if !yield(k, p.vals[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of p.
func (p Props) Clone() Props {
	if len(p.keys) == 0 {
		return Props{}
	}
	out := Props{keys: slices.Clone(p.keys), vals: make(map[string]any, len(p.vals))}
	for k, v := range p.vals {
		out.vals[k] = cloneValue(v)
	}
	return out
}

// Merge sets every property of other on p, in other's order.
func (p *Props) Merge(other Props) {
	for k, v := range other.All() {
		p.Set(k, cloneValue(v))
	}
}

// String returns the string value for key, or def when the key is missing or
// not a string. Numbers and bools are formatted rather than rejected.
func (p Props) String(key, def string) string {
	switch v := p.vals[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return def
}

// Float returns the numeric value for key, or def when missing or malformed.
// Numeric strings are accepted.
func (p Props) Float(key string, def float64) float64 {
	switch v := p.vals[key].(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// Bool returns the boolean value for key, or def when missing or malformed.
func (p Props) Bool(key string, def bool) bool {
	switch v := p.vals[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Strings returns a string slice for key. Non-string elements are skipped;
// a missing or malformed value yields an empty slice.
func (p Props) Strings(key string) []string {
	arr, ok := p.vals[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Rows returns the object elements of an array property, the shape tables and
// lists read their data from. Each row is a copy. A missing or malformed value
// yields an empty slice, never nil.
func (p Props) Rows(key string) []map[string]any {
	arr, ok := p.vals[key].([]any)
	if !ok {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if obj, ok := v.(Props); ok {
			out = append(out, obj.Map())
		}
	}
	return out
}

// Map returns the properties as a plain map. Nested objects stay Props.
func (p Props) Map() map[string]any {
	out := make(map[string]any, len(p.keys))
	for k, v := range p.vals {
		out[k] = cloneValue(v)
	}
	return out
}

// MarshalJSON writes the properties as a JSON object in insertion order.
func (p Props) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, p.vals[k]); err != nil {
			return nil, fmt.Errorf("prop %s: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeValue writes v without HTML escaping. An enclosing encoder applies
// its own escaping setting to the result.
func encodeValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// UnmarshalJSON reads a JSON object, keeping the key order of the input.
// Nested objects decode to Props, so their order is kept too.
func (p *Props) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = Props{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("props: expected object, got %v", tok)
	}
	out, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*p = out
	return nil
}

// decodeObject reads the members of an object whose opening brace has
// already been consumed, through the closing brace.
func decodeObject(dec *json.Decoder) (Props, error) {
	var out Props
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Props{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Props{}, fmt.Errorf("props: expected key, got %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return Props{}, fmt.Errorf("prop %s: %w", key, err)
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return Props{}, err
	}
	return out, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		return decodeObject(dec)
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("props: unexpected %v", d)
}

// normalize converts Go literal types to the JSON-native representation.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case uint:
		return float64(x)
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, m := range x {
			out[i] = normalize(m)
		}
		return out
	case []Props:
		out := make([]any, len(x))
		for i, m := range x {
			out[i] = m.Clone()
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	case map[string]any:
		var out Props
		for _, k := range slices.Sorted(maps.Keys(x)) {
			out.Set(k, x[k])
		}
		return out
	}
	return v
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	case Props:
		return x.Clone()
	}
	return v
}
