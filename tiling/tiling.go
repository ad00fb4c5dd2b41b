// Package tiling enumerates the tiling cases of classified groups: the ways a group's tensors are split
// across the accelerator cores (the "block" axis) and the on-chip unified buffer (the "UB" axis).
//
// Each case gets a tiling key, the value the compiled kernel's dispatch table uses to select it at runtime.
// Keys are unique per operator instance, so one Generator must be used for all the groups of an operator.
package tiling

import (
	"fmt"
	"strings"

	"github.com/gomlx/dynshape/classify"
	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/opctx"
	"github.com/gomlx/dynshape/types/platform"
	"k8s.io/klog/v2"
)

// ConstKey is the tiling key reserved for the fast path of static and empty groups. It is never used by a
// dynamic case.
const ConstKey uint32 = 1<<31 - 1

// NoAxis is used for the block or UB axis of cases that don't split that level.
const NoAxis = types.NoAxis

// Extra holds the pattern specific parameters of a case.
type Extra struct {
	// BlockFactor is the number of elements of the block axis per core, and BlockDim the number of cores
	// used. Only set for static cases.
	BlockFactor, BlockDim int

	// UBFactor is the number of elements of the UB axis per buffer iteration. Only set for static cases.
	UBFactor int

	// Atomic is set for reductions split across cores along a reduced axis, whose partial results are
	// accumulated atomically.
	Atomic bool

	// UBAlign is the alignment, in elements, of the UB factor.
	UBAlign int
}

// Case is one tiling case of a classified group.
type Case struct {
	Key      uint32
	Strategy types.Strategy

	// BlockAxis and UBAxis are axes of the fused operands of the group, or NoAxis.
	BlockAxis, UBAxis int

	Extra Extra
}

// String implements fmt.Stringer.
func (c Case) String() string {
	var sb strings.Builder
	if c.Key == ConstKey {
		sb.WriteString("key=const")
	} else {
		_, _ = fmt.Fprintf(&sb, "key=%d", c.Key)
	}
	_, _ = fmt.Fprintf(&sb, " %s block=%s ub=%s", c.Strategy, axisString(c.BlockAxis), axisString(c.UBAxis))
	if c.Extra.BlockDim > 0 {
		_, _ = fmt.Fprintf(&sb, " block_factor=%d cores=%d ub_factor=%d",
			c.Extra.BlockFactor, c.Extra.BlockDim, c.Extra.UBFactor)
	}
	if c.Extra.Atomic {
		sb.WriteString(" atomic")
	}
	if c.Extra.UBAlign > 1 {
		_, _ = fmt.Fprintf(&sb, " ub_align=%d", c.Extra.UBAlign)
	}
	return sb.String()
}

func axisString(axis int) string {
	if axis == NoAxis {
		return "none"
	}
	return fmt.Sprintf("%d", axis)
}

// Generator generates the tiling cases of the groups of one operator instance, and owns its key sequence.
//
// It is not safe for concurrent use, and must not be shared across operators.
type Generator struct {
	platform *platform.Platform
	opCtx    *opctx.Context

	nextKey   uint32
	constUsed bool
}

// NewGenerator returns a generator for one operator instance. The opCtx may be nil.
func NewGenerator(p *platform.Platform, opCtx *opctx.Context) *Generator {
	return &Generator{platform: p, opCtx: opCtx}
}

// Platform returns the platform the generator tiles for.
func (g *Generator) Platform() *platform.Platform {
	return g.platform
}

// Generate returns the tiling cases of the group.
//
//   - Empty groups (or any group when the context is marked empty) have one Const case without splits.
//   - Const groups have one Const case, with the splits chosen from the static sizes.
//   - Dynamic groups have one Dynamic (or Special) case per legal (block, UB) pair, see Legality.
//
// The first Const case of the operator gets ConstKey; in the rare case an operator has more than one static
// group, the following ones get regular keys. It returns an error of kind types.KindNoLegalTiling if a dynamic
// group has no legal split.
func (g *Generator) Generate(group *classify.Group) ([]Case, error) {
	var cases []Case
	var err error
	switch {
	case g.opCtx.IsEmpty() || group.Mode.Kind == types.ModeEmpty:
		var c Case
		c, err = g.emptyCase(group.Pattern)
		cases = []Case{c}
	case group.Mode.Kind == types.ModeConst:
		var c Case
		c, err = g.constCase(group)
		cases = []Case{c}
	case group.Mode.IsDynamic():
		cases, err = g.dynamicCases(group)
	default:
		err = types.ErrInternal(group.Pattern, "unknown group mode %s", group.Mode)
	}
	if err != nil {
		return nil, err
	}
	if klog.V(2).Enabled() {
		klog.Infof("tiling %s %s: %d case(s)", group.Pattern.OpName(), group.Mode, len(cases))
		for _, c := range cases {
			klog.Infof("  %s", c)
		}
	}
	return cases, nil
}

// takeKey returns the next key of the operator: ConstKey for the first static case if isConst.
func (g *Generator) takeKey(pattern types.Pattern, isConst bool) (uint32, error) {
	if isConst && !g.constUsed {
		g.constUsed = true
		return ConstKey, nil
	}
	if g.nextKey >= ConstKey {
		return 0, types.ErrInternal(pattern, "tiling keys exhausted")
	}
	key := g.nextKey
	g.nextKey++
	return key, nil
}

func (g *Generator) emptyCase(pattern types.Pattern) (Case, error) {
	key, err := g.takeKey(pattern, true)
	if err != nil {
		return Case{}, err
	}
	return Case{Key: key, Strategy: types.StrategyConst, BlockAxis: NoAxis, UBAxis: NoAxis}, nil
}
