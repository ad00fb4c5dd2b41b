// Package types defines the closed enums shared by the pattern registry, the shape classifiers and the
// tiling case generators, and the structured error returned by all of them.
package types

import (
	"fmt"

	"github.com/gomlx/dynshape/internal/utils"
)

// Pattern is the structural category of an operator's compute graph.
type Pattern int

//go:generate go tool enumer -type=Pattern -trimprefix=Pattern -output=gen_pattern_enumer.go types.go

const (
	PatternInvalid Pattern = iota
	PatternElementwise
	PatternBroadcast
	PatternReduce
	PatternTupleReduce
	PatternTranspose
	PatternTransdata
	PatternGather
	PatternSlice
	PatternConcat
)

// OpName returns the snake case name of the pattern, as used in kernel names (e.g.: "tuple_reduce").
func (p Pattern) OpName() string {
	return utils.ToSnakeCase(p.String())
}

// ModeKind enumerates the kinds of classified groups. See Mode.
type ModeKind int

//go:generate go tool enumer -type=ModeKind -trimprefix=Mode -output=gen_modekind_enumer.go types.go

const (
	// ModeNormal groups have at least one unknown dimension and are tiled dynamically.
	ModeNormal ModeKind = iota

	// ModeConst groups have every operand dimension statically known.
	ModeConst

	// ModeEmpty groups stand for operators whose tensors have zero elements.
	ModeEmpty

	// ModeRanked groups are dynamic groups selected at runtime by their (fused) rank. See Mode.Rank.
	ModeRanked
)

// Mode of a classified group: one of Normal, Const, Empty or Ranked(n).
type Mode struct {
	Kind ModeKind

	// Rank is only set for ModeRanked.
	Rank int
}

// Normal returns the mode of dynamic groups.
func Normal() Mode { return Mode{Kind: ModeNormal} }

// Const returns the mode of fully static groups.
func Const() Mode { return Mode{Kind: ModeConst} }

// Empty returns the mode of zero-sized operators.
func Empty() Mode { return Mode{Kind: ModeEmpty} }

// Ranked returns the mode of dynamic groups selected by rank n.
func Ranked(n int) Mode { return Mode{Kind: ModeRanked, Rank: n} }

// IsDynamic returns whether groups with this mode need dynamically enumerated tiling cases.
func (m Mode) IsDynamic() bool {
	return m.Kind == ModeNormal || m.Kind == ModeRanked
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m.Kind == ModeRanked {
		return fmt.Sprintf("Ranked(%d)", m.Rank)
	}
	return m.Kind.String()
}

// Strategy of a tiling case.
type Strategy int

//go:generate go tool enumer -type=Strategy -trimprefix=Strategy -output=gen_strategy_enumer.go types.go

const (
	// StrategyConst cases have all split factors computed at compile time.
	StrategyConst Strategy = iota

	// StrategyDynamic cases have split factors computed at runtime by the tiling function.
	StrategyDynamic

	// StrategySpecial cases use a pattern specific schedule, e.g.: atomic accumulation across cores.
	StrategySpecial
)

// AxisRole tags each axis of a classified group.
//
// Roles are assigned by the classifiers, never by the caller.
type AxisRole int

//go:generate go tool enumer -type=AxisRole -trimprefix=Role -output=gen_axisrole_enumer.go types.go

const (
	// RolePlain is used by patterns where all axes are interchangeable (elementwise, transpose).
	RolePlain AxisRole = iota

	// RoleKeep and RoleReduce are used by the reduce patterns.
	RoleKeep
	RoleReduce

	// RoleReal, RoleBroadcast and RoleSingleton are used by broadcast, per operand: RoleReal if the operand
	// dimension is the output dimension and is > 1, RoleSingleton if it is 1, and RoleBroadcast if it is unknown
	// whether it is 1 or not.
	RoleReal
	RoleBroadcast
	RoleSingleton

	// RoleBefore, RoleBoundary and RoleAfter are used by gather, slice and concat: the boundary axis is the
	// gathered/sliced/concatenated axis.
	RoleBefore
	RoleBoundary
	RoleAfter

	// RoleBatch is used by gather for its batch axes.
	RoleBatch

	// RoleBlocked is used by transdata for the axis that is split into blocks of the format's block factor.
	RoleBlocked
)

// Condition is a runtime condition over the product of a run of axes, used by dispatch guards.
type Condition int

//go:generate go tool enumer -type=Condition -trimprefix=Cond -output=gen_condition_enumer.go types.go

const (
	// CondEqualOne requires the product of the axes to be 1.
	CondEqualOne Condition = iota

	// CondGreaterThanOne requires the product of the axes to be > 1.
	CondGreaterThanOne

	// CondAligned requires the product of the axes to be a multiple of the block factor.
	CondAligned

	// CondUnaligned requires the product of the axes not to be a multiple of the block factor.
	CondUnaligned
)

// Eval evaluates the condition for the given concrete value. factor is only used by CondAligned and
// CondUnaligned.
func (c Condition) Eval(value, factor int) bool {
	switch c {
	case CondEqualOne:
		return value == 1
	case CondGreaterThanOne:
		return value > 1
	case CondAligned:
		return factor > 0 && value%factor == 0
	case CondUnaligned:
		return factor > 0 && value%factor != 0
	}
	return false
}
