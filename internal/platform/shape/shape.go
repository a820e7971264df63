// Package shape coerces loosely typed feed trees into predictable Go values.
//
// The upstream feeds are XML documents converted to JSON, so a repeated element
// arrives as an array while a single element arrives as a bare object and an
// absent element is missing or null. Attribute values arrive as strings, numbers
// or null depending on the converter. Every ingestion point goes through this
// package instead of inspecting the raw tree directly.
package shape

import (
	"strconv"
	"strings"
)

// Normalize returns v as a list of objects: nil or an empty object yields an
// empty list, an object yields a one element list and a list yields its object
// elements in order. Non-object elements are dropped.
func Normalize(v any) []map[string]any {
	switch typed := v.(type) {
	case map[string]any:
		if len(typed) == 0 {
			return []map[string]any{}
		}
		return []map[string]any{typed}
	case []map[string]any:
		out := make([]map[string]any, 0, len(typed))
		for _, item := range typed {
			if item != nil {
				out = append(out, item)
			}
		}
		return out
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for _, item := range typed {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	default:
		return []map[string]any{}
	}
}

// Object returns v when it is an object and nil otherwise.
func Object(v any) map[string]any {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return obj
}

// Child returns the object stored under key, or nil.
func Child(node map[string]any, key string) map[string]any {
	if node == nil {
		return nil
	}
	return Object(node[key])
}

// Children normalizes the value stored under key.
func Children(node map[string]any, key string) []map[string]any {
	if node == nil {
		return []map[string]any{}
	}
	return Normalize(node[key])
}

// Has reports whether key is present with a non-null value.
func Has(node map[string]any, key string) bool {
	if node == nil {
		return false
	}
	v, ok := node[key]
	return ok && v != nil
}

// String returns the scalar under key as text, or "" when absent.
func String(node map[string]any, key string) string {
	if node == nil {
		return ""
	}
	return Text(node[key])
}

// StringOr returns the scalar under key as text, or fallback when the key is
// absent or null. A present empty string is returned as is.
func StringOr(node map[string]any, key, fallback string) string {
	if !Has(node, key) {
		return fallback
	}
	return Text(node[key])
}

// Text renders a scalar node as a string. Objects, lists and nil render as "".
func Text(v any) string {
	switch typed := v.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

// Int coerces a scalar node to an integer. nil, "", "?" and anything
// non-numeric yield 0.
func Int(v any) int {
	switch typed := v.(type) {
	case float64:
		return int(typed)
	case int:
		return typed
	case int64:
		return int(typed)
	case string:
		return ParseInt(typed)
	default:
		return 0
	}
}

// ParseInt parses a decimal integer, returning 0 for empty, "?" or malformed input.
func ParseInt(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "?" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
