package classify

import (
	"slices"
	"strings"

	"github.com/gomlx/dynshape/internal/utils"
	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/shapes"
)

// Format is a storage format converted by transdata.
type Format string

const (
	FormatND        Format = "ND"
	FormatNCHW      Format = "NCHW"
	FormatNHWC      Format = "NHWC"
	FormatNC1HWC0   Format = "NC1HWC0"
	FormatFractalNZ Format = "FRACTAL_NZ"
)

// FractalRows is the number of rows (M0) of a FRACTAL_NZ block.
const FractalRows = 16

// supportedConversions lists the (source, destination) formats transdata converts.
var supportedConversions = [][2]Format{
	{FormatND, FormatFractalNZ},
	{FormatFractalNZ, FormatND},
	{FormatNCHW, FormatNC1HWC0},
	{FormatNC1HWC0, FormatNCHW},
	{FormatNHWC, FormatNC1HWC0},
	{FormatNC1HWC0, FormatNHWC},
}

// layout describes how the axes of the input of a conversion are grouped: each run is fused, except for
// blocked runs (factors[run] > 0), which are kept as a single axis.
type layout struct {
	runs    []shapes.Run
	factors []int

	// packed is set when the blocked axes are the inner dimensions of a blocked format, and so must be
	// static and equal to their factor.
	packed bool
}

func axisRun(start, end int) shapes.Run {
	return shapes.Run{Start: start, End: end}
}

// transdataLayout returns the layout of the input for the src format, and its rank.
func transdataLayout(src Format, rank, c0 int) (layout, error) {
	pattern := types.PatternTransdata
	fixedRank := func(want int) error {
		if rank != want {
			return types.ErrInvalidShape(pattern, types.NoAxis, "format %s requires rank %d, got %d", src, want, rank)
		}
		return nil
	}
	switch src {
	case FormatNCHW:
		if err := fixedRank(4); err != nil {
			return layout{}, err
		}
		return layout{runs: []shapes.Run{axisRun(0, 1), axisRun(1, 2), axisRun(2, 4)}, factors: []int{0, c0, 0}}, nil
	case FormatNHWC:
		if err := fixedRank(4); err != nil {
			return layout{}, err
		}
		return layout{runs: []shapes.Run{axisRun(0, 1), axisRun(1, 3), axisRun(3, 4)}, factors: []int{0, 0, c0}}, nil
	case FormatNC1HWC0:
		if err := fixedRank(5); err != nil {
			return layout{}, err
		}
		return layout{runs: []shapes.Run{axisRun(0, 1), axisRun(1, 2), axisRun(2, 4), axisRun(4, 5)}, factors: []int{0, 0, 0, c0}, packed: true}, nil
	case FormatND:
		if rank < 2 {
			return layout{}, types.ErrInvalidShape(pattern, types.NoAxis, "format %s requires rank >= 2, got %d", src, rank)
		}
		l := layout{runs: []shapes.Run{axisRun(rank-2, rank-1), axisRun(rank-1, rank)}, factors: []int{FractalRows, c0}}
		if rank > 2 {
			l.runs = slices.Insert(l.runs, 0, shapes.Run{Start: 0, End: rank - 2})
			l.factors = slices.Insert(l.factors, 0, 0)
		}
		return l, nil
	case FormatFractalNZ:
		if rank < 4 {
			return layout{}, types.ErrInvalidShape(pattern, types.NoAxis, "format %s requires rank >= 4, got %d", src, rank)
		}
		l := layout{
			runs:    []shapes.Run{axisRun(rank-4, rank-3), axisRun(rank-3, rank-2), axisRun(rank-2, rank-1), axisRun(rank-1, rank)},
			factors: []int{0, 0, FractalRows, c0},
			packed:  true,
		}
		if rank > 4 {
			l.runs = slices.Insert(l.runs, 0, shapes.Run{Start: 0, End: rank - 4})
			l.factors = slices.Insert(l.factors, 0, 0)
		}
		return l, nil
	}
	return layout{}, types.ErrInvalidConfig(pattern, OptSrcFormat, "unknown format %q", src)
}

// formatRank returns the rank required by the format, or 0 if it accepts several ranks.
func formatRank(f Format) int {
	switch f {
	case FormatNCHW, FormatNHWC:
		return 4
	case FormatNC1HWC0:
		return 5
	}
	return 0
}

// transdata classifies storage format conversions. The blocked axes are never fused. If a blocked axis of
// a plain format is unknown, one group is emitted for the case where it is aligned to its block factor and
// another where it is not.
func transdata(inputs []shapes.Shape, cfg Config) ([]Group, error) {
	pattern := types.PatternTransdata
	if len(inputs) != 1 {
		return nil, types.ErrInvalidShape(pattern, types.NoAxis, "transdata takes exactly one input, got %d", len(inputs))
	}
	src, dst := Format(strings.ToUpper(cfg.SrcFormat)), Format(strings.ToUpper(cfg.DstFormat))
	if !slices.Contains(supportedConversions, [2]Format{src, dst}) {
		return nil, types.ErrInvalidConfig(pattern, OptDstFormat, "conversion from %q to %q is not supported",
			cfg.SrcFormat, cfg.DstFormat)
	}
	input := inputs[0]
	c0 := utils.BlockElems(input.DType)
	if c0 == 0 {
		return nil, types.ErrInvalidShape(pattern, types.NoAxis, "invalid dtype %s", input.DType)
	}
	if input.UnknownRank {
		rank := formatRank(src)
		if rank == 0 || src == FormatNC1HWC0 {
			return nil, types.ErrInvalidShape(pattern, types.NoAxis, "format %s requires a known rank", src)
		}
		input = withRank(input, rank)
	}
	rank := input.Rank()
	l, err := transdataLayout(src, rank, c0)
	if err != nil {
		return nil, err
	}

	roles := make([]types.AxisRole, len(l.runs))
	var unknownBlocked []int // Indices of runs.
	for jj, run := range l.runs {
		roles[jj] = types.RolePlain
		if l.factors[jj] == 0 {
			continue
		}
		roles[jj] = types.RoleBlocked
		d := input.Dims[run.Start]
		if l.packed {
			if d.Value() != l.factors[jj] {
				return nil, types.ErrInvalidAxisRole(pattern, run.Start, types.RoleBlocked,
					"format %s requires dimension %d, got %s", src, l.factors[jj], d)
			}
			continue
		}
		if !d.IsStatic() && l.factors[jj] > 1 {
			unknownBlocked = append(unknownBlocked, jj)
		}
	}
	fused := input.Fuse(l.runs)

	newTransdataGroup := func(conditions []AxisGuard) Group {
		g := newGroup(pattern, staticOrNormal(fused), 1)
		g.Operands[0] = fused
		g.Roles[0] = slices.Clone(roles)
		g.Attrs.BlockFactor = c0
		g.Attrs.SrcFormat, g.Attrs.DstFormat = string(src), string(dst)
		g.Guard.Rank = rank
		g.Guard.Conditions = conditions
		return g
	}
	if len(unknownBlocked) == 0 {
		return []Group{newTransdataGroup(nil)}, nil
	}

	var groups []Group
	for branch := range broadcastBranches(len(unknownBlocked)) {
		conditions := make([]AxisGuard, 0, len(unknownBlocked))
		feasible := true
		for kk, jj := range unknownBlocked {
			axis := l.runs[jj].Start
			factor := l.factors[jj]
			d := input.Dims[axis]
			cond := AxisGuard{Operand: 0, Axes: []int{axis}, Factor: factor}
			// Branches are enumerated "aligned" first.
			if !branch[kk] {
				cond.Cond = types.CondAligned
				feasible = feasible && utils.AlignUp(max(d.Lo, 1), factor) <= d.Hi
			} else {
				cond.Cond = types.CondUnaligned
			}
			conditions = append(conditions, cond)
		}
		if feasible {
			groups = append(groups, newTransdataGroup(conditions))
		}
	}
	return groups, nil
}
