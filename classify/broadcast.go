package classify

import (
	"iter"
	"slices"

	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/shapes"
)

// broadcastEntry is an (operand, padded axis) pair whose dimension may or may not be 1 at runtime.
type broadcastEntry struct {
	operand, axis int
}

// broadcast classifies operators that broadcast their inputs to a common output shape.
//
// Inputs are right-aligned. Each (operand, axis) gets a role: RoleSingleton for a static 1, RoleReal for
// dimensions that can't be 1, and for those that may be 1 either RoleBroadcast (if cfg.PureBroadcast) or
// one group per branch (== 1 and > 1), guarded at runtime. At most lim.maxBroadcastGroups branches are
// enumerated.
func broadcast(inputs []shapes.Shape, cfg Config, lim limits) ([]Group, error) {
	pattern := types.PatternBroadcast
	rank := 0
	for ii, input := range inputs {
		if input.UnknownRank {
			return nil, types.ErrInvalidShape(pattern, types.NoAxis, "input #%d has unknown rank", ii)
		}
		rank = max(rank, input.Rank())
	}

	padded := make([]shapes.Shape, len(inputs))
	offsets := make([]int, len(inputs))
	roles := make([][]types.AxisRole, len(inputs))
	var ambiguous []broadcastEntry
	for ii, input := range inputs {
		padded[ii] = input.PadLeft(rank)
		offsets[ii] = rank - input.Rank()
		roles[ii] = make([]types.AxisRole, rank)
		for axis, d := range padded[ii].Dims {
			switch {
			case d.IsOne():
				roles[ii][axis] = types.RoleSingleton
			case d.MayBeOne():
				roles[ii][axis] = types.RoleBroadcast
				ambiguous = append(ambiguous, broadcastEntry{operand: ii, axis: axis})
			default:
				roles[ii][axis] = types.RoleReal
			}
		}
	}

	if cfg.PureBroadcast || len(ambiguous) == 0 {
		g, axis, ok := broadcastGroup(padded, roles)
		if !ok {
			return nil, types.ErrInvalidAxisRole(pattern, axis, types.RoleReal,
				"inputs %v cannot be broadcast together", inputs)
		}
		g.Guard.Rank = inputs[0].Rank()
		return []Group{g}, nil
	}

	if len(ambiguous) >= 31 || 1<<len(ambiguous) > lim.maxBroadcastGroups {
		return nil, types.ErrInvalidShape(pattern, types.NoAxis,
			"%d dimensions may or may not be broadcast, which would require more than %d groups: "+
				"consider setting %q", len(ambiguous), lim.maxBroadcastGroups, OptPureBroadcast)
	}
	var groups []Group
	for branch := range broadcastBranches(len(ambiguous)) {
		branchShapes := make([]shapes.Shape, len(padded))
		branchRoles := make([][]types.AxisRole, len(roles))
		for ii := range padded {
			branchShapes[ii] = padded[ii].Clone()
			branchRoles[ii] = slices.Clone(roles[ii])
		}
		conditions := make([]AxisGuard, 0, len(ambiguous))
		feasible := true
		for jj, entry := range ambiguous {
			cond := AxisGuard{Operand: entry.operand, Axes: []int{entry.axis - offsets[entry.operand]}}
			if branch[jj] {
				branchShapes[entry.operand].Dims[entry.axis] = shapes.Fixed(1)
				branchRoles[entry.operand][entry.axis] = types.RoleSingleton
				cond.Cond = types.CondEqualOne
			} else {
				d, ok := branchShapes[entry.operand].Dims[entry.axis].AtLeast(2)
				if !ok {
					feasible = false
					break
				}
				branchShapes[entry.operand].Dims[entry.axis] = d
				branchRoles[entry.operand][entry.axis] = types.RoleReal
				cond.Cond = types.CondGreaterThanOne
			}
			conditions = append(conditions, cond)
		}
		if !feasible {
			continue
		}
		g, _, ok := broadcastGroup(branchShapes, branchRoles)
		if !ok {
			// No runtime shape broadcasts with this assignment.
			continue
		}
		g.Guard.Rank = inputs[0].Rank()
		g.Guard.Conditions = conditions
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return nil, types.ErrInvalidShape(pattern, types.NoAxis, "inputs %v cannot be broadcast together", inputs)
	}
	return groups, nil
}

// broadcastBranches enumerates the assignments of n ambiguous dimensions: true means the dimension is 1.
// The first assignment has no dimension equal to 1.
func broadcastBranches(n int) iter.Seq[[]bool] {
	return func(yield func([]bool) bool) {
		for mask := range 1 << n {
			branch := make([]bool, n)
			for jj := range n {
				branch[jj] = mask&(1<<jj) != 0
			}
			if !yield(branch) {
				return
			}
		}
	}
}

// broadcastGroup builds the group for padded operands with the given roles: it intersects the RoleReal
// dimensions of each axis, drops axes that are singleton for all operands and fuses contiguous axes with
// the same roles, except those with RoleBroadcast.
//
// If the RoleReal dimensions of an axis don't intersect, it returns that axis and false.
func broadcastGroup(padded []shapes.Shape, roles [][]types.AxisRole) (Group, int, bool) {
	rank := padded[0].Rank()
	dims := make([][]shapes.Dim, len(padded))
	for ii := range padded {
		dims[ii] = slices.Clone(padded[ii].Dims)
	}
	output := make([]shapes.Dim, rank)
	var kept []int
	for axis := range rank {
		var realDim, brcDim shapes.Dim
		hasReal, hasBrc := false, false
		for ii := range padded {
			d := dims[ii][axis]
			switch roles[ii][axis] {
			case types.RoleReal:
				if !hasReal {
					realDim, hasReal = d, true
					continue
				}
				var ok bool
				if realDim, ok = realDim.Intersect(d); !ok {
					return Group{}, axis, false
				}
			case types.RoleBroadcast:
				if !hasBrc {
					brcDim, hasBrc = d, true
				} else {
					brcDim = brcDim.Hull(d)
				}
			}
		}
		switch {
		case hasReal:
			output[axis] = realDim
			for ii := range padded {
				if roles[ii][axis] == types.RoleReal {
					dims[ii][axis] = realDim
				}
			}
		case hasBrc:
			output[axis] = brcDim
		default:
			output[axis] = shapes.Fixed(1)
		}
		if hasReal || hasBrc {
			kept = append(kept, axis)
		}
	}
	if len(kept) == 0 && rank > 0 {
		kept = []int{rank - 1}
	}

	// One key per kept axis: the tuple of roles across operands.
	keys := make([]string, len(kept))
	for jj, axis := range kept {
		key := make([]byte, len(padded))
		for ii := range padded {
			key[ii] = byte('a' + roles[ii][axis])
		}
		keys[jj] = string(key)
	}
	runs := shapes.Runs(keys, func(jj int) bool {
		for ii := range padded {
			if roles[ii][kept[jj]] == types.RoleBroadcast {
				return false
			}
		}
		return true
	})

	g := newGroup(types.PatternBroadcast, types.Normal(), len(padded))
	for ii := range padded {
		squeezed := make([]shapes.Dim, len(kept))
		for jj, axis := range kept {
			squeezed[jj] = dims[ii][axis]
		}
		g.Operands[ii] = padded[ii].WithDims(squeezed...).Fuse(runs)
		g.Roles[ii] = make([]types.AxisRole, len(runs))
		for jj, run := range runs {
			g.Roles[ii][jj] = roles[ii][kept[run.Start]]
		}
	}
	squeezedOutput := make([]shapes.Dim, len(kept))
	for jj, axis := range kept {
		squeezedOutput[jj] = output[axis]
	}
	g.Attrs.OutputShape = padded[0].WithDims(squeezedOutput...).Fuse(runs)
	g.Mode = staticOrNormal(g.Operands...)
	return g, types.NoAxis, true
}
