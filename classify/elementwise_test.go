package classify

import (
	"testing"

	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/opctx"
	"github.com/gomlx/dynshape/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementwise(t *testing.T) {
	x := shapes.MakeDims(F32, shapes.Fixed(4), shapes.Dynamic(1, 100), shapes.Fixed(2))
	y := shapes.MakeDims(F32, shapes.Fixed(4), shapes.Dynamic(10, shapes.Inf), shapes.Fixed(2))

	t.Run("fused", func(t *testing.T) {
		groups := classifyOK(t, types.PatternElementwise, Config{}, x, y)
		require.Len(t, groups, 1)
		g := groups[0]
		assert.Equal(t, types.Normal(), g.Mode)
		require.Len(t, g.Operands, 2)
		for _, op := range g.Operands {
			assert.Equal(t, []shapes.Dim{shapes.Dynamic(80, 800)}, op.Dims)
		}
		assert.Equal(t, []types.AxisRole{types.RolePlain}, g.AxisRoles())
		assert.Equal(t, 3, g.Guard.Rank)
		assert.True(t, g.Guard.Accepts([][]int{{4, 20, 2}, {4, 20, 2}}))
		assert.False(t, g.Guard.Accepts([][]int{{80}, {80}}))
	})

	t.Run("static", func(t *testing.T) {
		groups := classifyOK(t, types.PatternElementwise, Config{}, S(dtypes.Float16, 2, 3), S(dtypes.Float16, 2, 3))
		require.Len(t, groups, 1)
		assert.Equal(t, types.Const(), groups[0].Mode)
		assert.NoError(t, groups[0].Operands[1].Check(dtypes.Float16, 6))
	})

	t.Run("scalars", func(t *testing.T) {
		groups := classifyOK(t, types.PatternElementwise, Config{}, S(F32), S(F32))
		require.Len(t, groups, 1)
		assert.NoError(t, groups[0].Operands[0].Check(F32, 1))
	})

	t.Run("rank mismatch", func(t *testing.T) {
		_, err := Classify(types.PatternElementwise, []shapes.Shape{S(F32, 2, 3), S(F32, 3)}, Config{}, nil)
		requireKind(t, err, types.KindInvalidShape)
	})

	t.Run("disjoint ranges", func(t *testing.T) {
		_, err := Classify(types.PatternElementwise, []shapes.Shape{S(F32, 2, 3), S(F32, 2, 4)}, Config{}, nil)
		e := requireKind(t, err, types.KindInvalidShape)
		assert.Equal(t, 1, e.Axis)
	})

	t.Run("disable_optimization", func(t *testing.T) {
		groups := classifyOK(t, types.PatternElementwise, Config{DisableOptimization: true}, x, y)
		require.Len(t, groups, 1)
		assert.Equal(t,
			[]shapes.Dim{shapes.Fixed(4), shapes.Dynamic(10, 100), shapes.Fixed(2)},
			groups[0].Operands[0].Dims)
		assert.Len(t, groups[0].AxisRoles(), 3)
	})

	t.Run("unknown rank", func(t *testing.T) {
		u := shapes.MakeUnknownRank(F32)
		groups := classifyOK(t, types.PatternElementwise, Config{}, u, u)
		require.Len(t, groups, 1)
		assert.Equal(t, []shapes.Dim{shapes.AnyDim()}, groups[0].Operands[0].Dims)
		assert.Equal(t, AnyRank, groups[0].Guard.Rank)

		// Known rank inputs resolve the unknown rank ones.
		groups = classifyOK(t, types.PatternElementwise, Config{}, u, S(F32, 3, 5))
		require.Len(t, groups, 1)
		assert.NoError(t, groups[0].Operands[0].Check(F32, 15))
	})

	t.Run("unknown rank with disable_optimization", func(t *testing.T) {
		u := shapes.MakeUnknownRank(F32)
		groups := classifyOK(t, types.PatternElementwise, Config{DisableOptimization: true}, u)
		require.Len(t, groups, MaxRank+1)
		assert.Equal(t, types.Const(), groups[0].Mode)
		assert.Equal(t, 0, groups[0].Operands[0].Rank())
		assert.True(t, groups[0].Guard.Accepts([][]int{{}}))
		for n, g := range groups[1:] {
			assert.Equal(t, types.Ranked(n+1), g.Mode)
			assert.Equal(t, n+1, g.Operands[0].Rank())
			assert.Equal(t, n+1, g.Guard.Rank)
		}
		assert.False(t, groups[MaxRank].Guard.Accepts([][]int{make([]int, MaxRank+1)}))

		opCtx := opctx.New("add").SetExtra(ExtraMaxRank, 3)
		groups, err := Classify(types.PatternElementwise, []shapes.Shape{u}, Config{DisableOptimization: true}, opCtx)
		require.NoError(t, err)
		require.Len(t, groups, 4)
		assert.Equal(t, 3, groups[3].Guard.Rank)
	})
}
