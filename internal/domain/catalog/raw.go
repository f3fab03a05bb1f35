package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RawProduct is a product or variant payload exactly as a platform returned it.
// Nested objects are map[string]any and nested lists are []any, as produced by
// encoding/json (numbers may be float64 or json.Number).
type RawProduct map[string]any

// Lookup walks path through nested maps (string keys) and lists (int indices).
// It returns nil as soon as a step is missing or has the wrong shape.
func (r RawProduct) Lookup(path ...any) any {
	var cur any = map[string]any(r)
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := asMap(cur)
			if !ok {
				return nil
			}
			cur = m[key]
		case int:
			list, ok := cur.([]any)
			if !ok || key < 0 || key >= len(list) {
				return nil
			}
			cur = list[key]
		default:
			return nil
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}

// List returns the nested objects found at key, skipping entries that are not objects.
func (r RawProduct) List(key string) []RawProduct {
	list, ok := r[key].([]any)
	if !ok {
		if typed, ok := r[key].([]RawProduct); ok {
			return typed
		}
		return nil
	}
	out := make([]RawProduct, 0, len(list))
	for _, item := range list {
		if m, ok := asMap(item); ok {
			out = append(out, RawProduct(m))
		}
	}
	return out
}

// JSON serializes the payload for the json_object column
func (r RawProduct) JSON() []byte {
	if r == nil {
		return []byte("{}")
	}
	b, err := json.Marshal(map[string]any(r))
	if err != nil {
		return []byte("{}")
	}
	return b
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RawProduct:
		return m, true
	default:
		return nil, false
	}
}

// coerceString renders scalar identifiers and titles as strings.
// Platforms send numeric ids as JSON numbers; they are kept in integer form.
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// coerceDecimal converts numbers and numeric strings; ok is false when v is absent or not numeric.
func coerceDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	default:
		return decimal.Zero, false
	}
}
