package vdom

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// StyleProperty converts a style key to its CSS property name. camelCase
// keys become kebab-case; custom properties ("--accent") and keys that are
// already kebab-case are returned unchanged.
func StyleProperty(key string) string {
	if strings.HasPrefix(key, "--") {
		return key
	}
	var b strings.Builder
	for i, r := range key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StyleEntry is one resolved declaration of a style mapping.
type StyleEntry struct {
	Property string
	Value    string
}

// StyleEntries resolves a style mapping into declarations sorted by
// property name. Entries whose value is nil are omitted.
func StyleEntries(style map[string]any) []StyleEntry {
	out := make([]StyleEntry, 0, len(style))
	for k, v := range style {
		if v == nil {
			continue
		}
		out = append(out, StyleEntry{Property: StyleProperty(k), Value: FormatValue(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Property < out[j].Property })
	return out
}

// StyleMap returns the mapping held by a style prop value, if it is one.
func StyleMap(v any) (map[string]any, bool) {
	switch s := v.(type) {
	case Style:
		return s, true
	case map[string]any:
		return s, true
	case map[string]string:
		m := make(map[string]any, len(s))
		for k, v := range s {
			m[k] = v
		}
		return m, true
	}
	return nil, false
}

// FormatValue converts a prop value to its attribute text.
func FormatValue(v any) string {
	if s, ok := numberText(v); ok {
		return s
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
