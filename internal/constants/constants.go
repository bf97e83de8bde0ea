// Package constants resolves @name placeholders inside loaded configuration
// data against a flat table of constants.
//
// A placeholder is the marker "@" followed by one or more word characters
// ([A-Za-z0-9_]). Resolution walks the configuration tree and substitutes
// placeholders in string values and string mapping keys. Every placeholder
// must name a defined constant; a single unknown name fails the whole call.
package constants

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// Marker is the sigil that starts a placeholder.
const Marker = "@"

// RootName is the constant every table starts with: the installation root.
const RootName = "SHORTSTROKES_ROOT"

// tokenPattern is greedy, so a match always ends at a non-word character or
// at the end of the string. "@ed" can never match inside "@editor".
var tokenPattern = regexp.MustCompile(regexp.QuoteMeta(Marker) + `\w+`)

// ErrUndefinedConstant is matched by every *UndefinedError.
var ErrUndefinedConstant = errors.New("undefined constant")

// ErrKeyCollision is returned when substitution maps two keys of one mapping
// to the same string.
var ErrKeyCollision = errors.New("keys collide after substitution")

// ErrNotScalar is returned when a declared constant is a mapping or sequence.
var ErrNotScalar = errors.New("constant value must be a scalar")

// UndefinedError reports the first placeholder that names no constant.
type UndefinedError struct {
	Token string // placeholder including the marker, e.g. "@editor"
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("constant '%s' hasn't been defined", e.Token)
}

// Is makes errors.Is(err, ErrUndefinedConstant) hold.
func (e *UndefinedError) Is(target error) bool {
	return target == ErrUndefinedConstant
}

// Table maps constant names (without the marker) to replacement text.
// Treat a Table as immutable; With and Merge return copies.
type Table map[string]string

// NewTable builds a table from scalar values, stringifying numbers and bools.
func NewTable(values map[string]any) (Table, error) {
	t := make(Table, len(values))
	for name, v := range values {
		s, ok := scalarString(v)
		if !ok {
			return nil, fmt.Errorf("constant %q: %w", name, ErrNotScalar)
		}
		t[name] = s
	}
	return t, nil
}

// Lookup returns the value for name.
func (t Table) Lookup(name string) (string, bool) {
	v, ok := t[name]
	return v, ok
}

// With returns a copy of t with name set to value.
func (t Table) With(name, value string) Table {
	out := make(Table, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[name] = value
	return out
}

// Merge returns a copy of t overlaid with other; other wins on conflicts.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t)+len(other))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Bootstrap resolves the user-declared constants against defaults and merges
// the result over defaults. Declared constants may reference defaults (for
// example @SHORTSTROKES_ROOT) but not each other.
func Bootstrap(defaults Table, declared map[string]any) (Table, error) {
	if len(declared) == 0 {
		return defaults.Merge(nil), nil
	}
	resolved, err := Resolve(defaults, declared)
	if err != nil {
		return nil, err
	}
	user, err := NewTable(resolved.(map[string]any))
	if err != nil {
		return nil, err
	}
	return defaults.Merge(user), nil
}

// Resolve returns a copy of node with every placeholder substituted.
// Nothing is substituted unless every placeholder in node is defined.
func Resolve(t Table, node any) (any, error) {
	for _, tok := range Tokens(node) {
		if _, ok := t[tok[len(Marker):]]; !ok {
			return nil, &UndefinedError{Token: tok}
		}
	}
	return substitute(t, node)
}

// ResolveString is Resolve for a single string.
func ResolveString(t Table, s string) (string, error) {
	out, err := Resolve(t, s)
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// Tokens returns the distinct placeholders in node in first-seen order.
// Mapping keys are visited in sorted order so the result is deterministic.
func Tokens(node any) []string {
	var (
		seen = make(map[string]bool)
		out  []string
	)
	walkStrings(node, func(s string) {
		for _, tok := range tokenPattern.FindAllString(s, -1) {
			if !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
		}
	})
	return out
}

func walkStrings(node any, visit func(string)) {
	switch n := node.(type) {
	case string:
		visit(n)
	case []any:
		for _, v := range n {
			walkStrings(v, visit)
		}
	case map[string]any:
		for _, k := range sortedKeys(n) {
			visit(k)
			walkStrings(n[k], visit)
		}
	case map[any]any:
		keys := make([]string, 0, len(n))
		byName := make(map[string]any, len(n))
		for k, v := range n {
			name := fmt.Sprint(k)
			keys = append(keys, name)
			byName[name] = v
		}
		sort.Strings(keys)
		for _, k := range keys {
			visit(k)
			walkStrings(byName[k], visit)
		}
	}
}

func substitute(t Table, node any) (any, error) {
	switch n := node.(type) {
	case string:
		return substituteString(t, n), nil
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			sub, err := substitute(t, v)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(n))
		from := make(map[string]string, len(n))
		for _, k := range sortedKeys(n) {
			key := substituteString(t, k)
			if prev, ok := from[key]; ok {
				return nil, fmt.Errorf("%w: %q and %q both become %q", ErrKeyCollision, prev, k, key)
			}
			from[key] = k
			sub, err := substitute(t, n[k])
			if err != nil {
				return nil, err
			}
			out[key] = sub
		}
		return out, nil
	case map[any]any:
		out := make(map[any]any, len(n))
		from := make(map[any]any, len(n))
		for k, v := range n {
			key := k
			if ks, ok := k.(string); ok {
				key = substituteString(t, ks)
			}
			if prev, ok := from[key]; ok {
				return nil, fmt.Errorf("%w: %v and %v both become %v", ErrKeyCollision, prev, k, key)
			}
			from[key] = k
			sub, err := substitute(t, v)
			if err != nil {
				return nil, err
			}
			out[key] = sub
		}
		return out, nil
	default:
		return node, nil
	}
}

func substituteString(t Table, s string) string {
	return tokenPattern.ReplaceAllStringFunc(s, func(tok string) string {
		return t[tok[len(Marker):]]
	})
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
