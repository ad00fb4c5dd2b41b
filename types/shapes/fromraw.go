package shapes

import (
	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/gopjrt/dtypes"
)

// FromRaw converts a raw input descriptor to a Shape.
//
//   - dimensions: one value per axis, with Unknown (-1) for dimensions only known at runtime. A single
//     UnknownRank (-2) value describes a shape of unknown rank.
//   - ranges: optional, one inclusive range (lo, hi) per axis, with hi == -1 for an unbounded range.
//     Ranges of static dimensions must contain the dimension. Unknown dimensions without a range get [1, inf].
//
// It returns an error of kind types.KindInvalidShape for malformed descriptors.
//
// Example:
//
//	shape, err := shapes.FromRaw(dtypes.Float16, []int{-1, 512}, [][2]int{{1, 1024}, {512, 512}})
//	// shape is (Float16)[-1[1,1024] 512]
func FromRaw(dtype dtypes.DType, dimensions []int, ranges [][2]int) (shape Shape, err error) {
	shape.DType = dtype
	if dtype == dtypes.InvalidDType {
		err = types.ErrInvalidShape(types.PatternInvalid, types.NoAxis, "invalid dtype for shape %v", dimensions)
		return
	}
	if len(dimensions) == 1 && dimensions[0] == UnknownRank {
		shape.UnknownRank = true
		return
	}
	if len(ranges) > 0 && len(ranges) != len(dimensions) {
		err = types.ErrInvalidShape(types.PatternInvalid, types.NoAxis,
			"shape %v has %d dimensions but %d ranges were given", dimensions, len(dimensions), len(ranges))
		return
	}
	shape.Dims = make([]Dim, len(dimensions))
	for axis, value := range dimensions {
		var d Dim
		switch {
		case value >= 0:
			d = Fixed(value)
		case value == Unknown:
			d = AnyDim()
		case value == UnknownRank:
			err = types.ErrInvalidShape(types.PatternInvalid, axis,
				"unknown rank marker %d must be the only dimension, got shape %v", UnknownRank, dimensions)
			return
		default:
			err = types.ErrInvalidShape(types.PatternInvalid, axis, "invalid dimension %d in shape %v", value, dimensions)
			return
		}
		if len(ranges) > 0 {
			lo, hi := ranges[axis][0], ranges[axis][1]
			if hi == -1 {
				hi = Inf
			}
			rng := Dim{Lo: lo, Hi: hi}
			if vErr := rng.Validate(); vErr != nil {
				err = types.ErrInvalidShape(types.PatternInvalid, axis, "malformed range of shape %v: %v", dimensions, vErr)
				return
			}
			if value == Unknown {
				d = rng
			} else if !rng.Contains(value) {
				err = types.ErrInvalidShape(types.PatternInvalid, axis,
					"dimension %d of shape %v is outside its range [%d, %s]", value, dimensions, lo, boundString(hi))
				return
			}
		}
		shape.Dims[axis] = d
	}
	return
}
