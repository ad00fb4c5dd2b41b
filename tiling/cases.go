package tiling

import (
	"github.com/gomlx/dynshape/classify"
	"github.com/gomlx/dynshape/types"
)

// BlockAxisLegal reports whether the fused axis of the group can be split across cores:
//
//   - Reduce, TupleReduce: only kept axes (reduced axes need atomic accumulation, see AtomicLegal).
//   - Transdata: any axis but the blocked ones.
//   - Concat: only the axes before the concatenated one.
//   - All other patterns: any axis.
func BlockAxisLegal(group *classify.Group, axis int) bool {
	roles := group.AxisRoles()
	if axis < 0 || axis >= len(roles) {
		return false
	}
	switch group.Pattern {
	case types.PatternReduce, types.PatternTupleReduce:
		return roles[axis] == types.RoleKeep
	case types.PatternTransdata:
		return roles[axis] != types.RoleBlocked
	case types.PatternConcat:
		return axis < group.Attrs.Axis
	}
	return true
}

// AtomicLegal reports whether the group can be split across cores along its reduced axes, accumulating
// the partial results with atomic adds.
func (g *Generator) AtomicLegal(group *classify.Group) bool {
	return group.Pattern == types.PatternReduce && len(group.Attrs.ReduceAxes) > 0 &&
		g.platform.SupportsAtomicAdd(group.Operands[0].DType)
}

// ubAlign returns the alignment of the UB factor for the group.
func ubAlign(group *classify.Group) int {
	if group.Pattern == types.PatternTransdata {
		return group.Attrs.BlockFactor
	}
	return 1
}

// dynamicCases enumerates every legal (block, UB) pair with UB >= block.
func (g *Generator) dynamicCases(group *classify.Group) ([]Case, error) {
	pattern := group.Pattern
	rank := len(group.AxisRoles())
	align := ubAlign(group)
	var cases []Case
	addCase := func(strategy types.Strategy, block, ub int, atomic bool) error {
		key, err := g.takeKey(pattern, false)
		if err != nil {
			return err
		}
		cases = append(cases, Case{
			Key:       key,
			Strategy:  strategy,
			BlockAxis: block,
			UBAxis:    ub,
			Extra:     Extra{Atomic: atomic, UBAlign: align},
		})
		return nil
	}

	if pattern == types.PatternConcat && group.Attrs.Axis == 0 {
		// Nothing before the concatenated axis: single core.
		for ub := range rank {
			if err := addCase(types.StrategyDynamic, NoAxis, ub, false); err != nil {
				return nil, err
			}
		}
		return cases, nil
	}

	for block := range rank {
		if !BlockAxisLegal(group, block) {
			continue
		}
		for ub := block; ub < rank; ub++ {
			if err := addCase(types.StrategyDynamic, block, ub, false); err != nil {
				return nil, err
			}
		}
	}
	if g.AtomicLegal(group) {
		for block := range rank {
			if group.AxisRoles()[block] != types.RoleReduce {
				continue
			}
			for ub := block; ub < rank; ub++ {
				if err := addCase(types.StrategySpecial, block, ub, true); err != nil {
					return nil, err
				}
			}
		}
	}
	if len(cases) == 0 {
		return nil, types.ErrNoLegalTiling(pattern, "no legal block axis for group %s on %s", group, g.platform)
	}
	return cases, nil
}

// staticDims returns the static size of each fused axis of the group: the largest among the operands with
// the group's rank.
func staticDims(group *classify.Group) []int {
	rank := len(group.AxisRoles())
	dims := make([]int, rank)
	for _, operand := range group.Operands {
		if operand.Rank() != rank {
			continue
		}
		for axis, d := range operand.Dims {
			dims[axis] = max(dims[axis], d.Hi)
		}
	}
	return dims
}

// constCase computes the splits of a static group from its sizes: the block axis is the largest legal one
// whose size is divisible by the number of cores (or the largest legal one if none is), and the UB axis is
// the innermost one.
func (g *Generator) constCase(group *classify.Group) (Case, error) {
	key, err := g.takeKey(group.Pattern, true)
	if err != nil {
		return Case{}, err
	}
	c := Case{Key: key, Strategy: types.StrategyConst, BlockAxis: NoAxis, UBAxis: NoAxis}
	dims := staticDims(group)
	rank := len(dims)
	if rank == 0 {
		c.Extra.BlockDim = 1
		return c, nil
	}

	coreNum := g.platform.CoreNum()
	bestDivisible, bestAny := NoAxis, NoAxis
	for axis, size := range dims {
		if !BlockAxisLegal(group, axis) {
			continue
		}
		if bestAny == NoAxis || size > dims[bestAny] {
			bestAny = axis
		}
		if size%coreNum == 0 && (bestDivisible == NoAxis || size > dims[bestDivisible]) {
			bestDivisible = axis
		}
	}
	c.BlockAxis = bestDivisible
	if c.BlockAxis == NoAxis {
		c.BlockAxis = bestAny
	}
	c.Extra.BlockDim = 1
	if c.BlockAxis != NoAxis {
		c.Extra.BlockFactor, c.Extra.BlockDim = g.platform.BlockDistribution(dims[c.BlockAxis])
	}

	c.UBAxis = rank - 1
	ubDim := dims[c.UBAxis]
	if c.UBAxis == c.BlockAxis {
		ubDim = c.Extra.BlockFactor
	}
	ubElems := g.platform.UBElems(group.Operands[0].DType, len(group.Operands)+1)
	c.Extra.UBFactor = max(min(ubDim, ubElems), 1)
	c.Extra.UBAlign = ubAlign(group)
	if c.Extra.UBAlign > 1 && c.Extra.UBFactor > c.Extra.UBAlign {
		c.Extra.UBFactor -= c.Extra.UBFactor % c.Extra.UBAlign
	}
	return c, nil
}
