package utils

import (
	"math"

	"golang.org/x/exp/constraints"
)

// SaturatingMul multiplies a and b, returning limit if the product reaches or exceeds limit.
// Both values must be non-negative.
func SaturatingMul[T constraints.Integer](a, b, limit T) T {
	if a == 0 || b == 0 {
		return 0
	}
	if a >= limit || b >= limit || a > limit/b {
		return limit
	}
	if p := a * b; p < limit {
		return p
	}
	return limit
}

// CeilDiv returns ceil(a/b) for non-negative a and positive b.
func CeilDiv[T constraints.Integer](a, b T) T {
	return (a + b - 1) / b
}

// AlignUp rounds a up to the next multiple of factor.
func AlignUp[T constraints.Integer](a, factor T) T {
	return CeilDiv(a, factor) * factor
}

// MaxInt is used as the "unbounded" marker for ranges.
const MaxInt = math.MaxInt
