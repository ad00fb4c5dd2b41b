package classify

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/shapes"
)

// AnyRank is used in Guard.Rank when the group accepts runtime shapes of any rank.
const AnyRank = -1

// Group is one classified group: an equivalence class of runtime shapes compiled into one kernel variant.
//
// Groups are created by Classify and are not modified afterwards.
type Group struct {
	Pattern types.Pattern

	// Operands are the (fused) shapes of the operands, all with the same rank except for gather's indices.
	Operands []shapes.Shape

	// Roles of each axis of each operand: Roles[operand][axis].
	Roles [][]types.AxisRole

	Mode  types.Mode
	Attrs Attrs
	Guard Guard
}

// Attrs are the pattern specific attributes adjusted to the fused axes of a Group.
type Attrs struct {
	// ReduceAxes are the reduced axes of the fused operands, sorted.
	ReduceAxes []int

	// Keepdims is the keepdims option of the reduce patterns.
	Keepdims bool

	// OutputShape is the fused output shape, for the patterns that define it. It has DType
	// dtypes.InvalidDType when not set.
	OutputShape shapes.Shape

	// Axis is the fused boundary axis of gather, slice and concat, or types.NoAxis.
	Axis int

	// BatchDims is the number of fused batch axes of gather.
	BatchDims int

	// Perm is the transpose permutation of the fused axes.
	Perm []int

	// BlockFactor is the number of elements per block (C0) of transdata's blocked axis.
	BlockFactor int

	SrcFormat, DstFormat string
}

// AxisGuard is a runtime condition on the product of some axes of one operand.
type AxisGuard struct {
	Operand int

	// Axes of the operand as given to Classify, before any fusion.
	Axes []int

	Cond types.Condition

	// Factor is the block factor for types.CondAligned and types.CondUnaligned.
	Factor int
}

// Guard is the data-only runtime condition that selects a Group for concrete runtime shapes.
// The guards of the groups returned by one call to Classify are mutually exclusive.
type Guard struct {
	// Rank of the first operand at runtime, or AnyRank.
	Rank int

	// Conditions that must all hold.
	Conditions []AxisGuard

	// RolePattern, if set, is the fused reduce role pattern (e.g. "RKR") that the first operand must
	// have at runtime when reducing ReduceAxes.
	RolePattern string
	ReduceAxes  []int
}

// Accepts returns whether the guard selects the given runtime dimensions, one slice per operand.
// Zero-sized runtime shapes are expected to be routed by the empty marker and are not considered.
func (g Guard) Accepts(runtime [][]int) bool {
	if g.Rank != AnyRank && (len(runtime) == 0 || len(runtime[0]) != g.Rank) {
		return false
	}
	for _, cond := range g.Conditions {
		if cond.Operand >= len(runtime) {
			return false
		}
		dims := runtime[cond.Operand]
		product := 1
		for _, axis := range cond.Axes {
			if axis >= len(dims) {
				return false
			}
			product *= dims[axis]
		}
		if !cond.Cond.Eval(product, cond.Factor) {
			return false
		}
	}
	if g.RolePattern != "" {
		if len(runtime) == 0 {
			return false
		}
		pattern, ok := reduceRolePattern(len(runtime[0]), g.ReduceAxes)
		if !ok || pattern != g.RolePattern {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (g Guard) String() string {
	var parts []string
	if g.Rank != AnyRank {
		parts = append(parts, fmt.Sprintf("rank=%d", g.Rank))
	}
	for _, cond := range g.Conditions {
		part := fmt.Sprintf("#%d%v:%s", cond.Operand, cond.Axes, cond.Cond)
		if cond.Factor > 0 {
			part += fmt.Sprintf("(%d)", cond.Factor)
		}
		parts = append(parts, part)
	}
	if g.RolePattern != "" {
		parts = append(parts, "roles="+g.RolePattern)
	}
	if len(parts) == 0 {
		return "always"
	}
	return strings.Join(parts, ", ")
}

// Rank returns the rank of the first operand.
func (g *Group) Rank() int {
	if len(g.Operands) == 0 {
		return 0
	}
	return g.Operands[0].Rank()
}

// IsStatic returns whether all operands are static.
func (g *Group) IsStatic() bool {
	for _, op := range g.Operands {
		if !op.IsStatic() {
			return false
		}
	}
	return true
}

// AxisRoles returns the roles of the axes of the first operand, or nil.
func (g *Group) AxisRoles() []types.AxisRole {
	if len(g.Roles) == 0 {
		return nil
	}
	return g.Roles[0]
}

// Equal returns whether both groups are structurally equal.
func (g *Group) Equal(other *Group) bool {
	if g.Pattern != other.Pattern || g.Mode != other.Mode || len(g.Operands) != len(other.Operands) ||
		len(g.Roles) != len(other.Roles) {
		return false
	}
	for ii := range g.Operands {
		if !g.Operands[ii].Equal(other.Operands[ii]) {
			return false
		}
	}
	for ii := range g.Roles {
		if !slices.Equal(g.Roles[ii], other.Roles[ii]) {
			return false
		}
	}
	a, b := g.Attrs, other.Attrs
	if !slices.Equal(a.ReduceAxes, b.ReduceAxes) || a.Keepdims != b.Keepdims || a.Axis != b.Axis ||
		a.BatchDims != b.BatchDims || !slices.Equal(a.Perm, b.Perm) || a.BlockFactor != b.BlockFactor ||
		a.SrcFormat != b.SrcFormat || a.DstFormat != b.DstFormat || !a.OutputShape.Equal(b.OutputShape) {
		return false
	}
	return g.Guard.String() == other.Guard.String() && slices.Equal(g.Guard.ReduceAxes, other.Guard.ReduceAxes)
}

// String implements fmt.Stringer.
func (g *Group) String() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "%s %s:", g.Pattern, g.Mode)
	for ii, op := range g.Operands {
		_, _ = fmt.Fprintf(&sb, " %s", op)
		if ii < len(g.Roles) {
			_, _ = fmt.Fprintf(&sb, "%v", g.Roles[ii])
		}
	}
	if g.Attrs.ReduceAxes != nil {
		_, _ = fmt.Fprintf(&sb, " reduce_axes=%v", g.Attrs.ReduceAxes)
	}
	if g.Attrs.Axis != types.NoAxis {
		_, _ = fmt.Fprintf(&sb, " axis=%d", g.Attrs.Axis)
	}
	if g.Attrs.Perm != nil {
		_, _ = fmt.Fprintf(&sb, " perm=%v", g.Attrs.Perm)
	}
	if g.Attrs.BlockFactor > 0 {
		_, _ = fmt.Fprintf(&sb, " c0=%d", g.Attrs.BlockFactor)
	}
	_, _ = fmt.Fprintf(&sb, " guard={%s}", g.Guard)
	return sb.String()
}
