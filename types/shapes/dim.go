package shapes

import (
	"fmt"

	"github.com/gomlx/dynshape/internal/utils"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

const (
	// Unknown is the raw dimension value for a dimension only known at runtime.
	Unknown = -1

	// UnknownRank is the raw sentinel dimension for a shape whose rank is only known at runtime.
	// It must be the only dimension of the raw shape.
	UnknownRank = -2

	// Inf is the upper bound of an unbounded range.
	Inf = utils.MaxInt

	// DefaultLo is the lower bound of an unknown dimension given without a range.
	DefaultLo = 1
)

// Dim describes one dimension: either a fixed value (Lo == Hi) or an unknown value within the
// inclusive range [Lo, Hi]. Hi may be Inf.
//
// The zero value is the fixed dimension 0.
type Dim struct {
	Lo, Hi int
}

// Fixed returns a static dimension. It panics if value is negative.
func Fixed(value int) Dim {
	if value < 0 {
		exceptions.Panicf("shapes.Fixed(%d): dimension cannot be negative", value)
	}
	return Dim{Lo: value, Hi: value}
}

// Dynamic returns an unknown dimension in the range [lo, hi]. Use Inf for an unbounded hi.
// It panics for a malformed range: use FromRaw to get an error instead.
func Dynamic(lo, hi int) Dim {
	d := Dim{Lo: lo, Hi: hi}
	if err := d.Validate(); err != nil {
		exceptions.Panicf("shapes.Dynamic(%d, %d): %v", lo, hi, err)
	}
	return d
}

// AnyDim returns an unknown dimension with the default range [1, Inf].
func AnyDim() Dim {
	return Dim{Lo: DefaultLo, Hi: Inf}
}

// Validate returns an error if the range is malformed.
func (d Dim) Validate() error {
	if d.Lo < 0 {
		return errors.Errorf("range lower bound %d is negative", d.Lo)
	}
	if d.Lo > d.Hi {
		return errors.Errorf("range [%d, %s] has lower bound greater than upper bound", d.Lo, boundString(d.Hi))
	}
	return nil
}

// IsStatic returns whether the dimension is known at compile time.
func (d Dim) IsStatic() bool { return d.Lo == d.Hi }

// IsUnbounded returns whether the dimension has no upper bound.
func (d Dim) IsUnbounded() bool { return d.Hi == Inf }

// Value returns the static value of the dimension, or Unknown.
func (d Dim) Value() int {
	if d.IsStatic() {
		return d.Lo
	}
	return Unknown
}

// IsOne returns whether the dimension is statically 1.
func (d Dim) IsOne() bool { return d.Lo == 1 && d.Hi == 1 }

// MayBeOne returns whether the dimension can be 1 at runtime.
func (d Dim) MayBeOne() bool { return d.Contains(1) }

// MayBeZero returns whether the dimension can be 0 at runtime.
func (d Dim) MayBeZero() bool { return d.Lo == 0 }

// Overflows returns whether the lower bound saturated at Inf, that is, the smallest runtime value of the
// dimension is not representable.
func (d Dim) Overflows() bool { return d.Lo == Inf }

// Contains returns whether value is a possible runtime value of the dimension.
func (d Dim) Contains(value int) bool { return d.Lo <= value && value <= d.Hi }

// Intersect returns the dimension whose runtime values are possible for both d and other.
// It returns false if the intersection is empty.
func (d Dim) Intersect(other Dim) (Dim, bool) {
	res := Dim{Lo: max(d.Lo, other.Lo), Hi: min(d.Hi, other.Hi)}
	if res.Lo > res.Hi {
		return Dim{}, false
	}
	return res, true
}

// Hull returns the smallest range containing both d and other.
func (d Dim) Hull(other Dim) Dim {
	return Dim{Lo: min(d.Lo, other.Lo), Hi: max(d.Hi, other.Hi)}
}

// Mul returns the dimension resulting from merging d and other into one axis: the range of the product.
// Bounds saturate at Inf: see Overflows.
func (d Dim) Mul(other Dim) Dim {
	return Dim{
		Lo: utils.SaturatingMul(d.Lo, other.Lo, Inf),
		Hi: utils.SaturatingMul(d.Hi, other.Hi, Inf),
	}
}

// Add returns the range of the sum of d and other, used for concatenated axes. Bounds saturate at Inf.
func (d Dim) Add(other Dim) Dim {
	return Dim{Lo: saturatingAdd(d.Lo, other.Lo), Hi: saturatingAdd(d.Hi, other.Hi)}
}

func saturatingAdd(a, b int) int {
	if a >= Inf-b {
		return Inf
	}
	return a + b
}

// AtLeast returns d with its lower bound raised to lo. It returns false if no value of d is >= lo.
func (d Dim) AtLeast(lo int) (Dim, bool) {
	return d.Intersect(Dim{Lo: lo, Hi: Inf})
}

// Raw returns the raw dimension value (Unknown for dynamic dimensions) and the raw range, where an
// unbounded upper bound is reported as -1.
func (d Dim) Raw() (value int, rng [2]int) {
	hi := d.Hi
	if hi == Inf {
		hi = -1
	}
	return d.Value(), [2]int{d.Lo, hi}
}

// String implements fmt.Stringer: static dimensions are printed as their value, unknown ones
// as "-1[lo,hi]".
func (d Dim) String() string {
	if d.IsStatic() {
		return fmt.Sprintf("%d", d.Lo)
	}
	return fmt.Sprintf("%d[%d,%s]", Unknown, d.Lo, boundString(d.Hi))
}

func boundString(b int) string {
	if b == Inf {
		return "inf"
	}
	return fmt.Sprintf("%d", b)
}

// Product returns the merged dimension of all the given dimensions. The product of no dimensions is 1.
func Product(dims ...Dim) Dim {
	p := Fixed(1)
	for _, d := range dims {
		p = p.Mul(d)
	}
	return p
}
