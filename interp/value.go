package interp

import (
	"math"
	"strconv"
	"strings"

	"github.com/lixenwraith/blockstage/block"
)

type valueKind uint8

const (
	kindNum valueKind = iota
	kindStr
	kindBool
)

// Value is a dynamically typed script value. The zero Value is the number 0.
type Value struct {
	kind valueKind
	num  float64
	str  string
}

// Num wraps a number
func Num(f float64) Value {
	return Value{kind: kindNum, num: f}
}

// Str wraps a string
func Str(s string) Value {
	return Value{kind: kindStr, str: s}
}

// Bool wraps a truth value
func Bool(b bool) Value {
	v := Value{kind: kindBool}
	if b {
		v.num = 1
	}
	return v
}

// Number coerces to a number. Unparsable text is 0.
func (v Value) Number() float64 {
	switch v.kind {
	case kindStr:
		f, ok := parseNumber(v.str)
		if !ok {
			return 0
		}
		return f
	}
	if math.IsNaN(v.num) {
		return 0
	}
	return v.num
}

// String renders the value the way it shows in a bubble or variable
func (v Value) String() string {
	switch v.kind {
	case kindStr:
		return v.str
	case kindBool:
		if v.num != 0 {
			return "true"
		}
		return "false"
	}
	return block.FormatNumber(v.num)
}

// Truthy coerces to a truth value. Text is false when empty, "0" or "false".
func (v Value) Truthy() bool {
	switch v.kind {
	case kindStr:
		s := strings.ToLower(strings.TrimSpace(v.str))
		return s != "" && s != "0" && s != "false"
	}
	return v.num != 0
}

// Compare orders two values numerically when both read as numbers, else as
// case-insensitive text
func Compare(a, b Value) int {
	an, aok := a.numeric()
	bn, bok := b.numeric()
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(a.String()), strings.ToLower(b.String()))
}

func (v Value) numeric() (float64, bool) {
	switch v.kind {
	case kindStr:
		return parseNumber(v.str)
	case kindBool:
		return 0, false
	}
	return v.num, !math.IsNaN(v.num)
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
