package twi

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseNumber converts form text to a number the way a browser's parseFloat
// does: leading white space is skipped and the longest prefix that reads as a
// decimal literal is used, so "4." is 4 and "3.3V" is 3.3. Text without such a
// prefix yields NaN; literals too large for float64 yield ±Inf.
func ParseNumber(text string) float64 {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	n := numericPrefix(s)
	if n == 0 {
		return infinityPrefix(s)
	}
	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

// numericPrefix returns the length of the decimal literal at the start of s,
// or 0 if there is none.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		start := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > start {
			i = j
		}
	}
	return i
}

func infinityPrefix(s string) float64 {
	sign := 1.0
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = -1, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if strings.HasPrefix(s, "Infinity") {
		return math.Inf(int(sign))
	}
	return math.NaN()
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// coerceNumber converts text the way a browser's Number() does, which is how
// the validity checks read the form: the whole trimmed text must be a
// literal, so "4.7k" is NaN, and empty text is 0.
func coerceNumber(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0
	}
	if base := radix(s); base != 0 {
		n, err := strconv.ParseUint(s[2:], base, 64)
		switch {
		case errors.Is(err, strconv.ErrRange):
			return math.Inf(1)
		case err != nil:
			return math.NaN()
		}
		return float64(n)
	}
	if numericPrefix(s) != len(s) {
		switch s {
		case "Infinity", "+Infinity":
			return math.Inf(1)
		case "-Infinity":
			return math.Inf(-1)
		}
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

// radix returns the base of an unsigned 0x, 0o or 0b literal, or 0.
func radix(s string) int {
	if len(s) < 3 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}
