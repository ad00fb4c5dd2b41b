package shapes

import (
	"slices"
)

// Run is a run of contiguous axes [Start, End).
type Run struct {
	Start, End int
}

// Len returns the number of axes in the run.
func (r Run) Len() int { return r.End - r.Start }

// Axes returns the axes of the run.
func (r Run) Axes() []int {
	axes := make([]int, 0, r.Len())
	for axis := r.Start; axis < r.End; axis++ {
		axes = append(axes, axis)
	}
	return axes
}

// Runs splits the axes into maximal runs of contiguous axes with equal keys.
//
// If canFuse is not nil, it is also consulted for each pair of adjacent axes with equal keys: a run
// is broken where it returns false.
func Runs[K comparable](keys []K, canFuse func(axis int) bool) []Run {
	var runs []Run
	for axis := range keys {
		if axis > 0 && keys[axis] == keys[axis-1] && (canFuse == nil || canFuse(axis)) {
			runs[len(runs)-1].End = axis + 1
			continue
		}
		runs = append(runs, Run{Start: axis, End: axis + 1})
	}
	return runs
}

// SingletonRuns returns one run per axis, for rank axes. Used when fusion is disabled.
func SingletonRuns(rank int) []Run {
	runs := make([]Run, rank)
	for axis := range runs {
		runs[axis] = Run{Start: axis, End: axis + 1}
	}
	return runs
}

// Fuse returns the shape where each run of axes is merged into one axis with the product of its dimensions.
func (s Shape) Fuse(runs []Run) Shape {
	dims := make([]Dim, len(runs))
	for ii, run := range runs {
		dims[ii] = Product(s.Dims[run.Start:run.End]...)
	}
	return s.WithDims(dims...)
}

// AxisToRun maps each original axis to the index of the run containing it, for a shape of the given rank.
// Axes not covered by any run are mapped to -1.
func AxisToRun(rank int, runs []Run) []int {
	mapping := make([]int, rank)
	for axis := range mapping {
		mapping[axis] = -1
	}
	for ii, run := range runs {
		for axis := run.Start; axis < run.End; axis++ {
			mapping[axis] = ii
		}
	}
	return mapping
}

// RemapAxes converts original axes to fused axes, given the runs used for fusion.
// The result is sorted and without duplicates; axes not covered by any run are dropped.
func RemapAxes(axes []int, rank int, runs []Run) []int {
	mapping := AxisToRun(rank, runs)
	fused := make([]int, 0, len(axes))
	for _, axis := range axes {
		if axis < 0 || axis >= rank || mapping[axis] < 0 {
			continue
		}
		fused = append(fused, mapping[axis])
	}
	slices.Sort(fused)
	return slices.Compact(fused)
}

// Squeeze returns the shape without the axes for which drop returns true, plus the list of kept original axes.
func (s Shape) Squeeze(drop func(axis int, d Dim) bool) (Shape, []int) {
	dims := make([]Dim, 0, s.Rank())
	kept := make([]int, 0, s.Rank())
	for axis, d := range s.Dims {
		if drop(axis, d) {
			continue
		}
		dims = append(dims, d)
		kept = append(kept, axis)
	}
	return s.WithDims(dims...), kept
}

// PadLeft returns the shape left-padded with static 1 dimensions up to the given rank, following the
// broadcasting alignment rule.
func (s Shape) PadLeft(rank int) Shape {
	if s.Rank() >= rank {
		return s.Clone()
	}
	dims := make([]Dim, rank)
	offset := rank - s.Rank()
	for axis := range offset {
		dims[axis] = Fixed(1)
	}
	copy(dims[offset:], s.Dims)
	return s.WithDims(dims...)
}
