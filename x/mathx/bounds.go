package mathx

import "golang.org/x/exp/constraints"

// Exceeds reports v > limit. An unordered operand (NaN) never exceeds.
func Exceeds[T constraints.Ordered](v, limit T) bool {
	return v > limit
}

// Below reports v < limit. An unordered operand (NaN) is never below.
func Below[T constraints.Ordered](v, limit T) bool {
	return v < limit
}

// Outside reports v < lo || v > hi. Bounds are not swapped; an inverted
// window (lo > hi) flags every ordered value.
func Outside[T constraints.Ordered](v, lo, hi T) bool {
	return Below(v, lo) || Exceeds(v, hi)
}
