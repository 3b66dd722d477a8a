package core

import (
	"bytes"
	"strconv"
)

// Number holds a JSON field that may arrive as a number, a quoted numeric
// string or null. Decoding never fails on a bad token; coercion is deferred
// to validation so the caller can report a type error for the field instead
// of failing the whole bind.
type Number struct {
	set bool
	raw string
}

func (n *Number) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "" || s == "null" {
		*n = Number{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*n = Number{set: true, raw: s}
	return nil
}

// IsSet reports whether the field was present and non-null.
func (n Number) IsSet() bool { return n.set }

func (n Number) String() string { return n.raw }

func (n Number) Int() (int, error) {
	return strconv.Atoi(n.raw)
}

func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(n.raw, 64)
}
