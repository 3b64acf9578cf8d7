// Package normalization maps loosely written enum strings from configuration
// files (mixed case, stray whitespace) onto canonical typed values.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer knows the accepted spellings of one configuration field.
type Normalizer[T ~string] struct {
	field  string
	values map[string]T
	keys   []string
}

// NewNormalizer builds a normalizer for field. Spellings are matched after
// trimming and case folding.
func NewNormalizer[T ~string](field string, values map[string]T) *Normalizer[T] {
	n := &Normalizer[T]{
		field:  field,
		values: make(map[string]T, len(values)),
	}
	for k, v := range values {
		key := fold(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	sort.Strings(n.keys)
	return n
}

// Field is the configuration key this normalizer is for.
func (n *Normalizer[T]) Field() string { return n.field }

// Lookup reports whether raw is an accepted spelling.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	v, ok := n.values[fold(raw)]
	return v, ok
}

// Parse is Lookup with an error listing the accepted spellings.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	if v, ok := n.Lookup(raw); ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid %s %q, valid options: %s", n.field, raw, strings.Join(n.keys, ", "))
}

// Respell returns the canonical spelling of raw and a note when it differs.
// Unknown values are returned unchanged with an empty note, so validation
// can report them.
func (n *Normalizer[T]) Respell(raw T) (T, string) {
	v, ok := n.Lookup(string(raw))
	if !ok || v == raw {
		return raw, ""
	}
	return v, fmt.Sprintf("normalized %s from '%s' to '%s'", n.field, raw, v)
}

// ValidKeys returns the accepted spellings, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	return append([]string(nil), n.keys...)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
