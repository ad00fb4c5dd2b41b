// Package dynshape classifies the shapes of dynamic-shape tensor operators and enumerates the tiling cases
// the kernel generator must emit for them.
//
// Among its features:
//
// - Recognizes the structural pattern of an operator from the summary of its compute graph (see package pattern).
// - Partitions the runtime shapes consistent with the operator inputs into a small set of classified groups,
// one compiled kernel each, with fused axes and data-only dispatch guards (see package classify).
// - Enumerates the block (cores) and UB (unified buffer) splits of each group, each with its tiling key
// (see package tiling).
// - Written purely in Go, with no side effects: classification of different operators can run concurrently.
//
// Use Classify to only classify the inputs of an operator, or New to create a Builder that also generates
// the tiling cases for a platform.
package dynshape

import (
	"github.com/gomlx/dynshape/classify"
	"github.com/gomlx/dynshape/internal/utils"
	"github.com/gomlx/dynshape/pattern"
	"github.com/gomlx/dynshape/types/opctx"
	"github.com/gomlx/dynshape/types/shapes"
)

// Classify resolves the pattern of an operator from the summary of its compute graph (operation kind name to
// count, e.g.: {"placeholder": 2, "elewise": 1}) with the default registry, and classifies its inputs.
//
// The opCtx may be nil. See classify.Classify for details on the returned groups.
func Classify(summary map[string]int, inputs []shapes.Shape, cfg classify.Config, opCtx *opctx.Context) (
	[]classify.Group, error) {
	s, err := pattern.ParseSummary(summary)
	if err != nil {
		return nil, err
	}
	p, err := pattern.Default().Resolve(s)
	if err != nil {
		return nil, err
	}
	return classify.Classify(p, inputs, cfg, opCtx)
}

// NormalizeIdentifier converts the name of an operator to a valid kernel identifier: only letters, digits, and
// underscores are allowed.
//
// Invalid characters are replaced with underscores.
// If the name starts with a digit, it is prefixed with an underscore.
func NormalizeIdentifier(name string) string {
	return utils.NormalizeIdentifier(name)
}
