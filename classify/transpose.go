package classify

import (
	"slices"

	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/shapes"
)

// transpose classifies a permutation of the axes of one input: static 1 axes are dropped, and source axes
// that stay adjacent (and in the same order) in the output are fused. The permutation is renumbered to the
// fused axes.
func transpose(inputs []shapes.Shape, cfg Config) ([]Group, error) {
	pattern := types.PatternTranspose
	if len(inputs) != 1 {
		return nil, types.ErrInvalidShape(pattern, types.NoAxis, "transpose takes exactly one input, got %d", len(inputs))
	}
	rank := len(cfg.Perm)
	input := withRank(inputs[0], rank)
	if input.Rank() != rank {
		return nil, types.ErrInvalidConfig(pattern, OptPerm, "permutation %v has %d axes, but the input has rank %d",
			cfg.Perm, rank, input.Rank())
	}
	// outPos[srcAxis] is the output position of the source axis.
	outPos := make([]int, rank)
	seen := make([]bool, rank)
	for outAxis, srcAxis := range cfg.Perm {
		if srcAxis < 0 || srcAxis >= rank || seen[srcAxis] {
			return nil, types.ErrInvalidConfig(pattern, OptPerm,
				"invalid permutation %v, each axis must appear exactly once", cfg.Perm)
		}
		seen[srcAxis] = true
		outPos[srcAxis] = outAxis
	}

	squeezed, kept := input.Squeeze(func(_ int, d shapes.Dim) bool { return d.IsOne() })
	if len(kept) == 0 && rank > 0 {
		kept = []int{rank - 1}
		squeezed = input.WithDims(input.Dims[rank-1])
	}
	// Renumber the output positions of the kept axes to 0..len(kept)-1.
	byPos := slices.Clone(kept)
	slices.SortFunc(byPos, func(a, b int) int { return outPos[a] - outPos[b] })
	keptPos := make([]int, len(kept))
	for newPos, axis := range byPos {
		keptPos[slices.Index(kept, axis)] = newPos
	}

	runs := shapes.Runs(make([]int, len(kept)), func(jj int) bool {
		return keptPos[jj] == keptPos[jj-1]+1
	})
	fused := squeezed.Fuse(runs)
	perm := make([]int, len(runs))
	for ii := range perm {
		perm[ii] = ii
	}
	slices.SortFunc(perm, func(a, b int) int { return keptPos[runs[a].Start] - keptPos[runs[b].Start] })
	outDims := make([]shapes.Dim, len(perm))
	for outAxis, srcAxis := range perm {
		outDims[outAxis] = fused.Dims[srcAxis]
	}

	g := newGroup(pattern, staticOrNormal(fused), 1)
	g.Operands[0] = fused
	g.Roles[0] = uniformRoles(fused.Rank(), types.RolePlain)
	g.Attrs.Perm = perm
	g.Attrs.OutputShape = fused.WithDims(outDims...)
	g.Guard.Rank = rank
	return []Group{g}, nil
}
