package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the type a config value was coerced to.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	}
	return "string"
}

// Value is a config scalar after coercion. Config files and command-line
// flags both produce text; coercion happens once, here, so consumers never
// sniff strings themselves.
type Value struct {
	Kind Kind
	Str  string
	Int  int
	Bool bool
}

var digits = regexp.MustCompile(`^[0-9]+$`)

// ParseValue coerces a scalar: all-digit text becomes an Int, "true" and
// "false" (any case) become a Bool, everything else stays a String.
// Negative and fractional numbers stay strings.
func ParseValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return Value{Kind: KindString}
	case bool:
		return Value{Kind: KindBool, Bool: val}
	case int:
		if val >= 0 {
			return Value{Kind: KindInt, Int: val}
		}
		return Value{Kind: KindString, Str: strconv.Itoa(val)}
	case string:
		return parseText(val)
	case float64:
		return Value{Kind: KindString, Str: strconv.FormatFloat(val, 'f', -1, 64)}
	default:
		return parseText(fmt.Sprintf("%v", val))
	}
}

func parseText(s string) Value {
	if digits.MatchString(s) {
		if n, err := strconv.Atoi(s); err == nil {
			return Value{Kind: KindInt, Int: n}
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return Value{Kind: KindBool, Bool: true}
	case "false":
		return Value{Kind: KindBool, Bool: false}
	}
	return Value{Kind: KindString, Str: s}
}

// Native returns the value as an int, bool or string.
func (v Value) Native() any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindBool:
		return v.Bool
	}
	return v.Str
}

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	}
	return v.Str
}
