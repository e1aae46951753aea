package coinfolio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter writes a JSON object with fields in insertion order.
// The zero value is an empty object. The first error sticks and is returned
// by MarshalJSON.
type jsonObjectWriter struct {
	fields [][]byte // `"key":value` or a run of fields from Embed
	err    error
}

func (w *jsonObjectWriter) add(field []byte) *jsonObjectWriter {
	if len(field) > 0 {
		w.fields = append(w.fields, field)
	}
	return w
}

// Embed inlines the fields of the JSON object raw.
func (w *jsonObjectWriter) Embed(raw []byte) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	inner := bytes.TrimSpace(raw)
	inner = bytes.TrimPrefix(inner, []byte("{"))
	inner = bytes.TrimSuffix(inner, []byte("}"))
	return w.add(bytes.TrimSpace(inner))
}

// EmbedFrom inlines the fields of v, that must marshal to a JSON object.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("cannot embed %T: %w", v, err)
		return w
	}
	return w.Embed(raw)
}

// Append writes key with value encoded by json.Marshal.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	k, _ := json.Marshal(key)
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot encode %q: %w", key, err)
		return w
	}
	return w.add(append(append(k, ':'), v...))
}

// Optional is Append, skipped when value is the zero value of its type.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := []byte{'{'}
	out = append(out, bytes.Join(w.fields, []byte{','})...)
	return append(out, '}'), nil
}
