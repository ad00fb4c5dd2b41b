package classify

import (
	"slices"

	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/shapes"
)

// boundaryRuns splits the axes of a shape of the given rank around the boundary axis: the axes before it are
// fused, the axes after it are fused, and the boundary axis is kept alone. Empty runs are omitted.
//
// It returns the runs, their roles and the index of the boundary run.
func boundaryRuns(start, rank, axis int) (runs []shapes.Run, roles []types.AxisRole, boundaryIdx int) {
	if axis > start {
		runs = append(runs, shapes.Run{Start: start, End: axis})
		roles = append(roles, types.RoleBefore)
	}
	boundaryIdx = len(runs)
	runs = append(runs, shapes.Run{Start: axis, End: axis + 1})
	roles = append(roles, types.RoleBoundary)
	if axis < rank-1 {
		runs = append(runs, shapes.Run{Start: axis + 1, End: rank})
		roles = append(roles, types.RoleAfter)
	}
	return
}

// boundary classifies slice (one input) and concat (any number of inputs) around cfg.Axis. Concat inputs
// must agree on all the other axes.
func boundary(pattern types.Pattern, inputs []shapes.Shape, cfg Config) ([]Group, error) {
	if pattern == types.PatternSlice && len(inputs) != 1 {
		return nil, types.ErrInvalidShape(pattern, types.NoAxis, "slice takes exactly one input, got %d", len(inputs))
	}
	rank, err := knownRank(pattern, inputs)
	if err != nil {
		return nil, err
	}
	if rank == shapes.UnknownRank {
		return nil, types.ErrInvalidShape(pattern, types.NoAxis, "%s requires inputs of known rank", pattern.OpName())
	}
	axis, err := normalizeAxis(pattern, OptAxis, *cfg.Axis, rank)
	if err != nil {
		return nil, err
	}

	dims := make([][]shapes.Dim, len(inputs))
	for ii, input := range inputs {
		dims[ii] = slices.Clone(withRank(input, rank).Dims)
	}
	runs, roles, boundaryIdx := boundaryRuns(0, rank, axis)
	for a := range rank {
		if a == axis {
			continue
		}
		common := dims[0][a]
		for ii := 1; ii < len(inputs); ii++ {
			var ok bool
			if common, ok = common.Intersect(dims[ii][a]); !ok {
				role := types.RoleBefore
				if a > axis {
					role = types.RoleAfter
				}
				return nil, types.ErrInvalidAxisRole(pattern, a, role,
					"input #%d dimension %s doesn't match the other inputs", ii, dims[ii][a])
			}
		}
		for ii := range inputs {
			dims[ii][a] = common
		}
	}

	g := newGroup(pattern, types.Normal(), len(inputs))
	for ii, input := range inputs {
		g.Operands[ii] = input.WithDims(dims[ii]...).Fuse(runs)
		g.Roles[ii] = slices.Clone(roles)
	}
	if pattern == types.PatternConcat {
		outDims := slices.Clone(dims[0])
		for ii := 1; ii < len(inputs); ii++ {
			outDims[axis] = outDims[axis].Add(dims[ii][axis])
		}
		g.Attrs.OutputShape = inputs[0].WithDims(outDims...).Fuse(runs)
	}
	g.Attrs.Axis = boundaryIdx
	g.Mode = staticOrNormal(g.Operands...)
	g.Guard.Rank = rank
	return []Group{g}, nil
}

// gather classifies gathers of params (inputs[0]) along cfg.Axis with indices (inputs[1]). The leading
// cfg.BatchDims axes are shared by params and indices and fused together; the other indices axes are fused
// into one.
func gather(inputs []shapes.Shape, cfg Config) ([]Group, error) {
	pattern := types.PatternGather
	if len(inputs) != 2 {
		return nil, types.ErrInvalidShape(pattern, types.NoAxis, "gather takes params and indices, got %d inputs",
			len(inputs))
	}
	params, indices := inputs[0], inputs[1]
	if params.UnknownRank {
		return nil, types.ErrInvalidShape(pattern, types.NoAxis, "gather params must have a known rank")
	}
	rank := params.Rank()
	axis, err := normalizeAxis(pattern, OptAxis, *cfg.Axis, rank)
	if err != nil {
		return nil, err
	}
	batchDims := cfg.BatchDims
	if indices.UnknownRank {
		if batchDims != 0 {
			return nil, types.ErrInvalidConfig(pattern, OptBatchDims, "indices of unknown rank can't have batch dims")
		}
		// Any rank fuses into one axis.
		indices = indices.WithDims(shapes.AnyDim())
	}
	if batchDims < 0 || batchDims > axis || batchDims > indices.Rank() {
		return nil, types.ErrInvalidConfig(pattern, OptBatchDims,
			"batch_dims=%d must be between 0 and min(axis=%d, indices rank=%d)", batchDims, axis, indices.Rank())
	}

	pDims, iDims := slices.Clone(params.Dims), slices.Clone(indices.Dims)
	for a := range batchDims {
		d, ok := pDims[a].Intersect(iDims[a])
		if !ok {
			return nil, types.ErrInvalidAxisRole(pattern, a, types.RoleBatch,
				"params dimension %s doesn't match indices dimension %s", pDims[a], iDims[a])
		}
		pDims[a], iDims[a] = d, d
	}

	var pRuns, iRuns []shapes.Run
	var pRoles, iRoles []types.AxisRole
	if batchDims > 0 {
		pRuns = append(pRuns, shapes.Run{Start: 0, End: batchDims})
		pRoles = append(pRoles, types.RoleBatch)
		iRuns = append(iRuns, shapes.Run{Start: 0, End: batchDims})
		iRoles = append(iRoles, types.RoleBatch)
	}
	runs, roles, boundaryIdx := boundaryRuns(batchDims, rank, axis)
	pRuns = append(pRuns, runs...)
	pRoles = append(pRoles, roles...)
	boundaryIdx += len(pRuns) - len(runs)
	if indices.Rank() > batchDims {
		iRuns = append(iRuns, shapes.Run{Start: batchDims, End: indices.Rank()})
		iRoles = append(iRoles, types.RolePlain)
	}

	fusedParams := params.WithDims(pDims...).Fuse(pRuns)
	fusedIndices := indices.WithDims(iDims...).Fuse(iRuns)

	// Output: params[:axis] + indices[batchDims:] + params[axis+1:], fused.
	var outDims []shapes.Dim
	outDims = append(outDims, fusedParams.Dims[:boundaryIdx]...)
	if indices.Rank() > batchDims {
		outDims = append(outDims, fusedIndices.Dims[len(iRuns)-1])
	}
	outDims = append(outDims, fusedParams.Dims[boundaryIdx+1:]...)

	g := newGroup(pattern, staticOrNormal(fusedParams, fusedIndices), 2)
	g.Operands[0], g.Operands[1] = fusedParams, fusedIndices
	g.Roles[0], g.Roles[1] = pRoles, iRoles
	g.Attrs.Axis = boundaryIdx
	if batchDims > 0 {
		g.Attrs.BatchDims = 1
	}
	g.Attrs.OutputShape = params.WithDims(outDims...)
	g.Guard.Rank = rank
	return []Group{g}, nil
}
