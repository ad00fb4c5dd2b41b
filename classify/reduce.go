package classify

import (
	"slices"
	"strings"

	"github.com/gomlx/dynshape/internal/utils"
	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/shapes"
)

// reduce classifies reductions of one or more (tuple-reduce) inputs of the same shape over cfg.ReduceAxes.
//
// Static 1 axes are dropped, and contiguous axes with the same role (reduced or kept) are fused. For a
// dynamic shape whose last fused axis is kept and may be 1, a second group without that axis is emitted:
// the first one is guarded by "> 1" and the second by "== 1".
func reduce(pattern types.Pattern, inputs []shapes.Shape, cfg Config, lim limits) ([]Group, error) {
	if len(cfg.ReduceAxes) == 0 {
		return nil, types.ErrInvalidConfig(pattern, OptReduceAxes, "at least one axis must be reduced")
	}
	rank, err := knownRank(pattern, inputs)
	if err != nil {
		return nil, err
	}
	if rank == shapes.UnknownRank {
		return reduceUnknownRank(pattern, inputs, cfg, lim)
	}
	if rank == 0 {
		return nil, types.ErrInvalidConfig(pattern, OptReduceAxes, "cannot reduce axes %v of scalars", cfg.ReduceAxes)
	}
	resolved := make([]shapes.Shape, len(inputs))
	for ii, input := range inputs {
		resolved[ii] = withRank(input, rank)
	}
	common, err := intersectAll(pattern, resolved)
	if err != nil {
		return nil, err
	}
	isReduced := make([]bool, rank)
	for _, axis := range cfg.ReduceAxes {
		adjusted, err := normalizeAxis(pattern, OptReduceAxes, axis, rank)
		if err != nil {
			return nil, err
		}
		isReduced[adjusted] = true
	}

	// Drop static 1 axes, but keep at least one reduced axis.
	firstReduced := slices.Index(isReduced, true)
	squeezed, kept := common.Squeeze(func(axis int, d shapes.Dim) bool {
		return d.IsOne() && axis != firstReduced
	})
	hasReduced := false
	for _, axis := range kept {
		if isReduced[axis] && axis != firstReduced {
			hasReduced = true
			break
		}
	}
	if hasReduced && common.Dims[firstReduced].IsOne() {
		squeezed, kept = common.Squeeze(func(axis int, d shapes.Dim) bool { return d.IsOne() })
	}

	roles := make([]types.AxisRole, len(kept))
	for jj, axis := range kept {
		roles[jj] = types.RoleKeep
		if isReduced[axis] {
			roles[jj] = types.RoleReduce
		}
	}
	runs := shapes.Runs(roles, nil)
	fused := squeezed.Fuse(runs)
	fusedRoles := make([]types.AxisRole, len(runs))
	for jj, run := range runs {
		fusedRoles[jj] = roles[run.Start]
	}

	if fused.IsStatic() {
		g := reduceGroup(pattern, inputs, fused, fusedRoles, types.Const(), cfg)
		g.Guard.Rank = rank
		return []Group{g}, nil
	}

	last := len(runs) - 1
	if last == 0 || fusedRoles[last] != types.RoleKeep || !fused.Dims[last].MayBeOne() {
		g := reduceGroup(pattern, inputs, fused, fusedRoles, types.Ranked(len(runs)), cfg)
		g.Guard.Rank = rank
		return []Group{g}, nil
	}

	// The last kept run may be 1: split into "> 1" and "== 1".
	lastAxes := kept[runs[last].Start:runs[last].End]
	var groups []Group
	if d, ok := fused.Dims[last].AtLeast(2); ok {
		dims := slices.Clone(fused.Dims)
		dims[last] = d
		g := reduceGroup(pattern, inputs, fused.WithDims(dims...), fusedRoles, types.Ranked(len(runs)), cfg)
		g.Guard.Rank = rank
		g.Guard.Conditions = []AxisGuard{{Operand: 0, Axes: slices.Clone(lastAxes), Cond: types.CondGreaterThanOne}}
		groups = append(groups, g)
	}
	g := reduceGroup(pattern, inputs, fused.WithDims(fused.Dims[:last]...), fusedRoles[:last], types.Ranked(last), cfg)
	g.Guard.Rank = rank
	g.Guard.Conditions = []AxisGuard{{Operand: 0, Axes: slices.Clone(lastAxes), Cond: types.CondEqualOne}}
	groups = append(groups, g)
	return groups, nil
}

// reduceGroup builds a group for the fused shape with the given roles.
func reduceGroup(pattern types.Pattern, inputs []shapes.Shape, fused shapes.Shape, roles []types.AxisRole,
	mode types.Mode, cfg Config) Group {
	g := newGroup(pattern, mode, len(inputs))
	for ii, input := range inputs {
		g.Operands[ii] = input.WithDims(fused.Dims...)
		g.Roles[ii] = slices.Clone(roles)
	}
	g.Attrs.Keepdims = *cfg.Keepdims
	g.Attrs.ReduceAxes = []int{}
	outDims := make([]shapes.Dim, 0, len(roles))
	for axis, role := range roles {
		if role == types.RoleReduce {
			g.Attrs.ReduceAxes = append(g.Attrs.ReduceAxes, axis)
			if g.Attrs.Keepdims {
				outDims = append(outDims, shapes.Fixed(1))
			}
			continue
		}
		outDims = append(outDims, fused.Dims[axis])
	}
	g.Attrs.OutputShape = fused.WithDims(outDims...)
	return g
}

// reduceUnknownRank enumerates the distinct fused role patterns that cfg.ReduceAxes produce on runtime ranks
// 1 to lim.maxRank: each becomes a group of mode Ranked(n), n being the length of the pattern, guarded by it.
func reduceUnknownRank(pattern types.Pattern, inputs []shapes.Shape, cfg Config, lim limits) ([]Group, error) {
	for _, axis := range cfg.ReduceAxes {
		if axis < -lim.maxRank || axis >= lim.maxRank {
			return nil, types.ErrInvalidConfig(pattern, OptReduceAxes,
				"axis %d is out of range for any rank up to %d", axis, lim.maxRank)
		}
	}
	var groups []Group
	seen := utils.MakeSet[string]()
	for rank := 1; rank <= lim.maxRank; rank++ {
		rolePattern, ok := reduceRolePattern(rank, cfg.ReduceAxes)
		if !ok || seen.Has(rolePattern) {
			continue
		}
		seen.Insert(rolePattern)
		n := len(rolePattern)
		roles := make([]types.AxisRole, n)
		dims := make([]shapes.Dim, n)
		for axis := range n {
			roles[axis] = types.RoleKeep
			if rolePattern[axis] == 'R' {
				roles[axis] = types.RoleReduce
			}
			dims[axis] = shapes.AnyDim()
		}
		fused := inputs[0].WithDims(dims...)
		g := reduceGroup(pattern, inputs, fused, roles, types.Ranked(n), cfg)
		g.Guard.RolePattern = rolePattern
		g.Guard.ReduceAxes = slices.Clone(cfg.ReduceAxes)
		groups = append(groups, g)
	}
	return groups, nil
}

// rolePatternString returns the role pattern of fused reduce roles: "R" for reduced, "K" for kept axes.
func rolePatternString(roles []types.AxisRole) string {
	var sb strings.Builder
	for _, role := range roles {
		if role == types.RoleReduce {
			sb.WriteByte('R')
		} else {
			sb.WriteByte('K')
		}
	}
	return sb.String()
}

// reduceRolePattern returns the fused role pattern of a runtime shape of the given rank reduced over axes.
// It returns false if the axes are not valid for the rank.
func reduceRolePattern(rank int, axes []int) (string, bool) {
	if rank == 0 {
		return "", false
	}
	roles := make([]types.AxisRole, rank)
	for axis := range roles {
		roles[axis] = types.RoleKeep
	}
	for _, axis := range axes {
		if axis < -rank || axis >= rank {
			return "", false
		}
		if axis < 0 {
			axis += rank
		}
		roles[axis] = types.RoleReduce
	}
	return rolePatternString(slices.Compact(roles)), true
}
