package classify

import (
	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/opctx"
)

// Extra parameters of the operator context read by Classify, see opctx.Context.SetExtra.
const (
	// ExtraMaxRank overrides MaxRank for the operator.
	ExtraMaxRank = "max_rank"

	// ExtraMaxBroadcastGroups overrides MaxBroadcastGroups for the operator.
	ExtraMaxBroadcastGroups = "max_broadcast_groups"
)

// limits bound the enumerations of one Classify call.
type limits struct {
	maxRank, maxBroadcastGroups int
}

// limitsOf returns the limits registered in opCtx, or the package defaults.
func limitsOf(pattern types.Pattern, opCtx *opctx.Context) (limits, error) {
	lim := limits{
		maxRank:            opCtx.ExtraInt(ExtraMaxRank, MaxRank),
		maxBroadcastGroups: opCtx.ExtraInt(ExtraMaxBroadcastGroups, MaxBroadcastGroups),
	}
	if lim.maxRank < 1 {
		return lim, types.ErrInvalidConfig(pattern, ExtraMaxRank, "must be positive, got %d", lim.maxRank)
	}
	if lim.maxBroadcastGroups < 1 {
		return lim, types.ErrInvalidConfig(pattern, ExtraMaxBroadcastGroups,
			"must be positive, got %d", lim.maxBroadcastGroups)
	}
	return lim, nil
}
