package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Insertion-ordered attribute map. Setting an existing key keeps its position.
type Attributes struct {
	keys   []string
	values map[string]any
}

func NewAttributes() (attrs *Attributes) {
	attrs = &Attributes{values: make(map[string]any)}
	return
}

func (attrs *Attributes) Set(key string, value any) {
	if _, exists := attrs.values[key]; !exists {
		attrs.keys = append(attrs.keys, key)
	}
	attrs.values[key] = value
}

func (attrs *Attributes) Get(key string) (value any, ok bool) {
	value, ok = attrs.values[key]
	return
}

func (attrs *Attributes) Has(key string) (ok bool) {
	_, ok = attrs.values[key]
	return
}

func (attrs *Attributes) Delete(key string) {
	if _, exists := attrs.values[key]; !exists {
		return
	}
	delete(attrs.values, key)
	for index, existing := range attrs.keys {
		if existing == key {
			attrs.keys = append(attrs.keys[:index], attrs.keys[index+1:]...)
			break
		}
	}
}

// Keys in insertion order
func (attrs *Attributes) Keys() (keys []string) {
	keys = append([]string(nil), attrs.keys...)
	return
}

func (attrs *Attributes) Len() (length int) {
	length = len(attrs.keys)
	return
}

// Shallow copy; values are scalars
func (attrs *Attributes) Clone() (clone *Attributes) {
	clone = NewAttributes()
	if attrs == nil {
		return
	}
	for _, key := range attrs.keys {
		clone.Set(key, attrs.values[key])
	}
	return
}

// Decodes a JSON object keeping the key order of the input.
// Numbers become int64 when integral, float64 otherwise; nested values are kept as raw JSON.
func ParseAttributes(data []byte) (attrs *Attributes, err error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		err = fmt.Errorf("failed to read attributes: %w", err)
		return
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		err = fmt.Errorf("attributes must be a JSON object")
		return
	}

	attrs = NewAttributes()
	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			err = fmt.Errorf("failed to read attribute key: %w", err)
			return
		}
		key, ok := token.(string)
		if !ok {
			err = fmt.Errorf("invalid attribute key %v", token)
			return
		}

		var raw json.RawMessage
		err = decoder.Decode(&raw)
		if err != nil {
			err = fmt.Errorf("failed to read attribute %q: %w", key, err)
			return
		}

		var value any
		value, err = scalarFromJSON(raw)
		if err != nil {
			err = fmt.Errorf("failed to decode attribute %q: %w", key, err)
			return
		}
		attrs.Set(key, value)
	}

	// Closing brace
	_, err = decoder.Token()
	if err != nil {
		err = fmt.Errorf("failed to read attributes end: %w", err)
		return
	}
	_, err = decoder.Token()
	if err != io.EOF {
		err = fmt.Errorf("unexpected data after attributes object")
		return
	}
	err = nil
	return
}

func scalarFromJSON(raw json.RawMessage) (value any, err error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var decoded any
	err = decoder.Decode(&decoded)
	if err != nil {
		return
	}

	switch v := decoded.(type) {
	case json.Number:
		if integer, intErr := v.Int64(); intErr == nil {
			value = integer
		} else {
			value, err = v.Float64()
		}
	case map[string]any, []any:
		value = raw
	default:
		value = v
	}
	return
}
