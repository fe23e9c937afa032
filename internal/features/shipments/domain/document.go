package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotAnObject is returned when a payload is valid JSON but not an object.
var ErrNotAnObject = errors.New("payload is not a JSON object")

// Document is a loosely-typed JSON object as sent by BasitKargo.
// Fields are only read through Lookup so every access is shape-safe.
type Document map[string]any

// ParseDocument decodes a JSON object. An empty body yields an empty Document.
func ParseDocument(body []byte) (Document, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Document{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotAnObject
	}
	return Document(obj), nil
}

// Get walks a dotted path ("content.shipmentInfo.trackingCode") and returns the raw value.
func (d Document) Get(path string) (any, bool) {
	var cur any = map[string]any(d)
	for _, key := range strings.Split(path, ".") {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// Lookup returns the value at path coerced to a trimmed, non-empty string.
// Strings and numbers qualify; objects, arrays, booleans and nulls do not.
func (d Document) Lookup(path string) (string, bool) {
	v, ok := d.Get(path)
	if !ok {
		return "", false
	}
	return CoerceString(v)
}

// Object returns the nested object at path, if any.
func (d Document) Object(path string) (Document, bool) {
	v, ok := d.Get(path)
	if !ok {
		return nil, false
	}
	obj, ok := asObject(v)
	if !ok {
		return nil, false
	}
	return Document(obj), true
}

// CoerceString converts scalar JSON values to their textual form.
func CoerceString(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			s = strconv.FormatInt(int64(t), 10)
		} else {
			s = strconv.FormatFloat(t, 'f', -1, 64)
		}
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Document:
		return t, true
	default:
		return nil, false
	}
}
