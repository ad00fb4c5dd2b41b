// Package classify partitions the runtime shapes of an operator into a small, finite, ordered list of
// classified groups, one compiled kernel variant each.
//
// There is one classifier per pattern (see types.Pattern), all reached through Classify. Each classifier
// fuses the contiguous axes that the pattern cannot tell apart, assigns a role to each remaining axis,
// and, where the runtime shape may fall on different sides of a structural decision (a broadcast dimension
// that may or may not be 1, an unknown rank), emits one group per side, each with a Guard the runtime
// dispatch evaluates.
//
// The guards of the groups of one call partition the runtime shapes consistent with the inputs: exactly
// one group accepts any such shape.
package classify

import (
	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/opctx"
	"github.com/gomlx/dynshape/types/shapes"
	"k8s.io/klog/v2"
)

const (
	// MaxRank is the default largest runtime rank supported for operands of unknown rank, when their
	// classification depends on the rank. Runtime shapes of larger rank are rejected: no group accepts them.
	MaxRank = 8

	// MaxBroadcastGroups is the default bound on the number of groups enumerated for ambiguous broadcast axes.
	MaxBroadcastGroups = 1024
)

// Classify the inputs of an operator with the given pattern and configuration.
//
// The opCtx may be nil. If it carries the empty marker, or if any input has a dimension statically 0,
// the pattern specific algorithm is bypassed and exactly one group of mode Empty is returned. Its extra
// parameters ExtraMaxRank and ExtraMaxBroadcastGroups override MaxRank and MaxBroadcastGroups.
//
// Errors are of kind types.KindInvalidConfig, types.KindInvalidKeepdims, types.KindInvalidShape or
// types.KindUnsupportedPattern.
func Classify(pattern types.Pattern, inputs []shapes.Shape, cfg Config, opCtx *opctx.Context) ([]Group, error) {
	if err := cfg.Validate(pattern); err != nil {
		return nil, err
	}
	lim, err := limitsOf(pattern, opCtx)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, types.ErrInvalidShape(pattern, types.NoAxis, "%s requires at least one input", pattern.OpName())
	}
	for ii, input := range inputs {
		for axis, d := range input.Dims {
			if err := d.Validate(); err != nil {
				return nil, types.ErrInvalidShape(pattern, axis, "input #%d: %v", ii, err)
			}
		}
	}
	if opCtx.IsEmpty() || anyStaticZero(inputs) {
		return []Group{emptyGroup(pattern, inputs)}, nil
	}

	var groups []Group
	switch pattern {
	case types.PatternElementwise:
		groups, err = elementwise(inputs, cfg, lim)
	case types.PatternBroadcast:
		groups, err = broadcast(inputs, cfg, lim)
	case types.PatternReduce, types.PatternTupleReduce:
		groups, err = reduce(pattern, inputs, cfg, lim)
	case types.PatternTranspose:
		groups, err = transpose(inputs, cfg)
	case types.PatternTransdata:
		groups, err = transdata(inputs, cfg)
	case types.PatternGather:
		groups, err = gather(inputs, cfg)
	case types.PatternSlice, types.PatternConcat:
		groups, err = boundary(pattern, inputs, cfg)
	default:
		return nil, types.ErrUnsupportedPattern("pattern %s has no classifier", pattern)
	}
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, types.ErrInternal(pattern, "classifier returned no groups for %v", inputs)
	}
	if err := checkOverflow(pattern, groups); err != nil {
		return nil, err
	}
	if klog.V(1).Enabled() {
		klog.Infof("classify %s: %d group(s) for inputs %v", pattern.OpName(), len(groups), inputs)
		for ii := range groups {
			klog.V(2).Infof("  group #%d: %s", ii, &groups[ii])
		}
	}
	return groups, nil
}

// checkOverflow returns an error if a fused dimension of some group overflows, see shapes.Dim.Overflows.
func checkOverflow(pattern types.Pattern, groups []Group) error {
	for ii := range groups {
		g := &groups[ii]
		for jj, operand := range g.Operands {
			for axis, d := range operand.Dims {
				if d.Overflows() {
					return types.ErrInvalidShape(pattern, axis,
						"group #%d: operand #%d has fused dimensions %s whose size overflows", ii, jj, operand)
				}
			}
		}
		for axis, d := range g.Attrs.OutputShape.Dims {
			if d.Overflows() {
				return types.ErrInvalidShape(pattern, axis,
					"group #%d: output shape %s overflows", ii, g.Attrs.OutputShape)
			}
		}
	}
	return nil
}

func anyStaticZero(inputs []shapes.Shape) bool {
	for _, input := range inputs {
		for _, d := range input.Dims {
			if d.IsStatic() && d.Lo == 0 {
				return true
			}
		}
	}
	return false
}

// emptyGroup returns the single group for operators with zero elements.
func emptyGroup(pattern types.Pattern, inputs []shapes.Shape) Group {
	g := newGroup(pattern, types.Empty(), len(inputs))
	for ii, input := range inputs {
		g.Operands[ii] = input.Clone()
		g.Roles[ii] = uniformRoles(input.Rank(), types.RolePlain)
	}
	return g
}

// newGroup returns a group with room for numOperands operands and roles, and an accept-all guard.
func newGroup(pattern types.Pattern, mode types.Mode, numOperands int) Group {
	return Group{
		Pattern:  pattern,
		Operands: make([]shapes.Shape, numOperands),
		Roles:    make([][]types.AxisRole, numOperands),
		Mode:     mode,
		Attrs:    Attrs{Axis: types.NoAxis},
		Guard:    Guard{Rank: AnyRank},
	}
}

// staticOrNormal returns Const if all the shapes are static, Normal otherwise.
func staticOrNormal(operands ...shapes.Shape) types.Mode {
	for _, op := range operands {
		if !op.IsStatic() {
			return types.Normal()
		}
	}
	return types.Const()
}

func uniformRoles(rank int, role types.AxisRole) []types.AxisRole {
	roles := make([]types.AxisRole, rank)
	for axis := range roles {
		roles[axis] = role
	}
	return roles
}

// knownRank returns the rank shared by all inputs of known rank, or UnknownRank if all have unknown rank.
func knownRank(pattern types.Pattern, inputs []shapes.Shape) (int, error) {
	rank := shapes.UnknownRank
	for ii, input := range inputs {
		if input.UnknownRank {
			continue
		}
		if rank == shapes.UnknownRank {
			rank = input.Rank()
			continue
		}
		if input.Rank() != rank {
			return 0, types.ErrInvalidShape(pattern, types.NoAxis,
				"%s requires inputs of the same rank, input #0 has rank %d and input #%d has rank %d",
				pattern.OpName(), rank, ii, input.Rank())
		}
	}
	return rank, nil
}

// withRank returns the input itself if its rank is known, or the shape of the given rank with AnyDim dimensions.
func withRank(input shapes.Shape, rank int) shapes.Shape {
	if !input.UnknownRank {
		return input
	}
	dims := make([]shapes.Dim, rank)
	for axis := range dims {
		dims[axis] = shapes.AnyDim()
	}
	return input.WithDims(dims...)
}

// intersectAll returns the intersection of the dimensions of all inputs, which must have the same known rank.
// The dtype of the result is the one of the first input.
func intersectAll(pattern types.Pattern, inputs []shapes.Shape) (shapes.Shape, error) {
	common := inputs[0]
	for ii, input := range inputs[1:] {
		var axis int
		var ok bool
		common, axis, ok = shapes.Intersect(common, input)
		if !ok {
			if axis < 0 {
				return shapes.Shape{}, types.ErrInvalidShape(pattern, types.NoAxis,
					"input #%d has rank %d, expected %d", ii+1, input.Rank(), inputs[0].Rank())
			}
			return shapes.Shape{}, types.ErrInvalidShape(pattern, axis,
				"input #%d dimension %s is incompatible with the other inputs", ii+1, input.Dims[axis])
		}
	}
	return common, nil
}

// normalizeAxis converts a negative axis to its positive equivalent.
func normalizeAxis(pattern types.Pattern, key string, axis, rank int) (int, error) {
	if axis < -rank || axis >= rank {
		return 0, types.ErrInvalidConfig(pattern, key, "axis %d is out of range for rank %d", axis, rank)
	}
	if axis < 0 {
		axis += rank
	}
	return axis, nil
}
