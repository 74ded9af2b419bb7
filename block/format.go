package block

import (
	"math"
	"strconv"
)

// FormatNumber renders a literal the way capsules and string coercion show
// it: integers without a fraction, others in shortest form
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "0"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e15:
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
