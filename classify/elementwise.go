package classify

import (
	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/shapes"
)

// elementwise classifies position-wise operators: all inputs have the same shape, so all axes are fused
// into one, unless cfg.DisableOptimization is set.
func elementwise(inputs []shapes.Shape, cfg Config, lim limits) ([]Group, error) {
	pattern := types.PatternElementwise
	rank, err := knownRank(pattern, inputs)
	if err != nil {
		return nil, err
	}

	if rank == shapes.UnknownRank {
		if !cfg.DisableOptimization {
			// Any rank fuses into one axis.
			g := newGroup(pattern, types.Normal(), len(inputs))
			for ii, input := range inputs {
				g.Operands[ii] = input.WithDims(shapes.AnyDim())
				g.Roles[ii] = []types.AxisRole{types.RolePlain}
			}
			g.Attrs.OutputShape = g.Operands[0].Clone()
			return []Group{g}, nil
		}
		// One group per rank up to lim.maxRank. Scalars have no axis, so their group is static.
		groups := make([]Group, 0, lim.maxRank+1)
		for n := 0; n <= lim.maxRank; n++ {
			mode := types.Ranked(n)
			if n == 0 {
				mode = types.Const()
			}
			g := newGroup(pattern, mode, len(inputs))
			for ii, input := range inputs {
				g.Operands[ii] = withRank(input, n)
				g.Roles[ii] = uniformRoles(n, types.RolePlain)
			}
			g.Attrs.OutputShape = g.Operands[0].Clone()
			g.Guard.Rank = n
			groups = append(groups, g)
		}
		return groups, nil
	}

	resolved := make([]shapes.Shape, len(inputs))
	for ii, input := range inputs {
		resolved[ii] = withRank(input, rank)
	}
	common, err := intersectAll(pattern, resolved)
	if err != nil {
		return nil, err
	}
	runs := shapes.SingletonRuns(rank)
	if !cfg.DisableOptimization {
		runs = []shapes.Run{{Start: 0, End: rank}}
	}
	fused := common.Fuse(runs)
	g := newGroup(pattern, staticOrNormal(fused), len(inputs))
	for ii, input := range inputs {
		g.Operands[ii] = input.WithDims(fused.Dims...)
		g.Roles[ii] = uniformRoles(fused.Rank(), types.RolePlain)
	}
	g.Attrs.OutputShape = fused
	g.Guard.Rank = rank
	return []Group{g}, nil
}
