package twi

import (
	"math"
	"strconv"
)

// PrefixSI picks the SI prefix and divider for a frequency in hertz.
func PrefixSI(hz float64) (prefix string, divider float64) {
	switch {
	case hz >= 1e6:
		return "M", 1e6
	case hz >= 1e3:
		return "k", 1e3
	}
	return "", 1
}

// FriendlyFrequency formats hz as a whole number of Hz, kHz or MHz, dropping
// any fraction: 100000 is "100 kHz", 1500000 is "1 MHz". Non-finite values
// read as a browser prints them, so +Inf is "Infinity MHz".
func FriendlyFrequency(hz float64) string {
	prefix, divider := PrefixSI(hz)
	return formatWhole(math.Trunc(hz/divider)) + " " + prefix + "Hz"
}

func formatWhole(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0" // no "-0"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}
