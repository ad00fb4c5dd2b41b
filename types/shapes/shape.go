// Package shapes defines Shape and Dim, the descriptors of (possibly partially unknown) operand shapes, and
// the range algebra and axis fusion utilities used by the classifiers.
//
// A Shape is a DType plus an ordered list of Dim. A Dim is either a fixed value or an unknown value within
// an inclusive range [Lo, Hi] (Hi may be Inf). A Shape may also have an unknown rank, in which case it has
// no dimensions at all: classifiers resolve it into one or more shapes of fixed rank.
//
// ## Glossary
//
//   - Rank: number of axes of a tensor.
//   - Axis: the index of a dimension. We refer to a dimension index as "axis" (plural axes), and to its size
//     as its dimension.
//   - Static: a dimension (or shape) whose value is known at compile time.
//   - Fusion: merging a run of contiguous axes into one axis whose dimension is the product of the run.
//
// Example: `shapes.Make(dtypes.Float16, 24, -1, 512)` is a rank-3 shape whose axis 1 is only known at runtime,
// with the default range [1, inf]. It is printed as `(Float16)[24 -1[1,inf] 512]`.
package shapes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Shape describes an operand: its dtype and dimensions.
//
// Use Make, MakeDims or FromRaw to create a new shape.
type Shape struct {
	DType dtypes.DType
	Dims  []Dim

	// UnknownRank is set for shapes whose rank is only known at runtime. Dims is empty in that case.
	UnknownRank bool
}

// Make returns a Shape with the given raw dimensions: non-negative values are static, Unknown (-1) is an unknown
// dimension with the default range, and a single UnknownRank (-2) makes a shape of unknown rank.
//
// It panics for invalid dimensions; see FromRaw for a version that returns an error and accepts ranges.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	s, err := FromRaw(dtype, dimensions, nil)
	if err != nil {
		exceptions.Panicf("shapes.Make(%s, %v): %v", dtype, dimensions, err)
	}
	return s
}

// MakeDims returns a Shape with the given dimensions.
func MakeDims(dtype dtypes.DType, dims ...Dim) Shape {
	for axis, d := range dims {
		if err := d.Validate(); err != nil {
			exceptions.Panicf("shapes.MakeDims(%s): axis #%d: %v", dtype, axis, err)
		}
	}
	return Shape{DType: dtype, Dims: slices.Clone(dims)}
}

// MakeUnknownRank returns a shape whose rank is only known at runtime.
func MakeUnknownRank(dtype dtypes.DType) Shape {
	return Shape{DType: dtype, UnknownRank: true}
}

// Rank of the shape, that is, the number of dimensions. It is 0 for shapes with unknown rank.
func (s Shape) Rank() int { return len(s.Dims) }

// IsScalar returns whether the shape has a known rank of 0.
func (s Shape) IsScalar() bool { return !s.UnknownRank && len(s.Dims) == 0 }

// IsStatic returns whether all dimensions are known at compile time.
func (s Shape) IsStatic() bool {
	if s.UnknownRank {
		return false
	}
	for _, d := range s.Dims {
		if !d.IsStatic() {
			return false
		}
	}
	return true
}

// Dim returns the dimension of the given axis. axis can take negative numbers, in which
// case it counts as starting from the end -- so axis=-1 refers to the last axis.
// Like with a slice indexing, it panics for an out-of-bound axis.
func (s Shape) Dim(axis int) Dim {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dims[adjustedAxis]
}

// Dimensions returns the raw dimensions: static values, or Unknown for dynamic dimensions.
// For unknown rank shapes it returns []int{UnknownRank}.
func (s Shape) Dimensions() []int {
	if s.UnknownRank {
		return []int{UnknownRank}
	}
	dims := make([]int, len(s.Dims))
	for axis, d := range s.Dims {
		dims[axis] = d.Value()
	}
	return dims
}

// Ranges returns the raw ranges of the dimensions, with -1 for an unbounded upper bound.
func (s Shape) Ranges() [][2]int {
	ranges := make([][2]int, len(s.Dims))
	for axis, d := range s.Dims {
		_, ranges[axis] = d.Raw()
	}
	return ranges
}

// Size returns the merged dimension of all axes: the range of the number of elements.
func (s Shape) Size() Dim {
	return Product(s.Dims...)
}

// MayBeEmpty returns whether some dimension may be 0 at runtime.
func (s Shape) MayBeEmpty() bool {
	for _, d := range s.Dims {
		if d.MayBeZero() {
			return true
		}
	}
	return false
}

// String implements stringer, pretty-prints the shape.
func (s Shape) String() string {
	if s.UnknownRank {
		return fmt.Sprintf("(%s)[..]", s.DType)
	}
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)", s.DType)
	}
	parts := make([]string, len(s.Dims))
	for axis, d := range s.Dims {
		parts[axis] = d.String()
	}
	return fmt.Sprintf("(%s)[%s]", s.DType, strings.Join(parts, " "))
}

// Equal compares two shapes for equality: dtype, rank and dimension ranges are compared.
func (s Shape) Equal(s2 Shape) bool {
	return s.DType == s2.DType && s.EqualDims(s2)
}

// EqualDims compares the dimension ranges of two shapes, dtypes can be different.
func (s Shape) EqualDims(s2 Shape) bool {
	if s.UnknownRank || s2.UnknownRank {
		return s.UnknownRank == s2.UnknownRank
	}
	return slices.Equal(s.Dims, s2.Dims)
}

// Clone returns a new deep copy of the shape.
func (s Shape) Clone() Shape {
	return Shape{DType: s.DType, Dims: slices.Clone(s.Dims), UnknownRank: s.UnknownRank}
}

// WithDims returns a copy of the shape's dtype with the given dimensions.
func (s Shape) WithDims(dims ...Dim) Shape {
	return Shape{DType: s.DType, Dims: slices.Clone(dims)}
}

// Check that the shape has the given dtype and raw dimensions: static values must match exactly, and
// Unknown matches any dynamic dimension.
func (s Shape) Check(dtype dtypes.DType, dimensions ...int) error {
	if s.DType != dtype {
		return errors.Errorf("shape %s has dtype %s, expected %s", s, s.DType, dtype)
	}
	if !slices.Equal(s.Dimensions(), dimensions) {
		return errors.Errorf("shape %s has dimensions %v, expected %v", s, s.Dimensions(), dimensions)
	}
	return nil
}

// Intersect returns the shape whose runtime values are possible for both shapes: they must have the same rank.
// On failure, it returns the offending axis (or -1 if the ranks differ) and false.
func Intersect(s1, s2 Shape) (Shape, int, bool) {
	if s1.Rank() != s2.Rank() || s1.UnknownRank != s2.UnknownRank {
		return Shape{}, -1, false
	}
	res := s1.Clone()
	for axis := range res.Dims {
		d, ok := s1.Dims[axis].Intersect(s2.Dims[axis])
		if !ok {
			return Shape{}, axis, false
		}
		res.Dims[axis] = d
	}
	return res, 0, true
}

// Accepts returns whether the concrete runtime dimensions are consistent with the shape.
func (s Shape) Accepts(dimensions []int) bool {
	if s.UnknownRank {
		for _, v := range dimensions {
			if v < 0 {
				return false
			}
		}
		return true
	}
	if len(dimensions) != s.Rank() {
		return false
	}
	for axis, v := range dimensions {
		if !s.Dims[axis].Contains(v) {
			return false
		}
	}
	return true
}
