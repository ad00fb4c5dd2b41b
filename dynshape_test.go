package dynshape

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gomlx/dynshape/classify"
	"github.com/gomlx/dynshape/tiling"
	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/opctx"
	"github.com/gomlx/dynshape/types/platform"
	"github.com/gomlx/dynshape/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var S = shapes.Make

const F32 = dtypes.Float32

var (
	broadcastSummary   = map[string]int{"placeholder": 2, "broadcast": 1, "elewise": 1}
	reduceSummary      = map[string]int{"placeholder": 1, "reduce": 1}
	tupleReduceSummary = map[string]int{"placeholder": 2, "elewise": 2, "reduce": 2}
)

func reduceConfig(axes ...int) classify.Config {
	return classify.Config{Keepdims: classify.Bool(false), ReduceAxes: axes}
}

func TestClassify(t *testing.T) {
	t.Run("tuple reduce static", func(t *testing.T) {
		x := S(F32, 24, 512, 102400)
		groups, err := Classify(tupleReduceSummary, []shapes.Shape{x, x}, reduceConfig(0, 1), nil)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		for _, op := range groups[0].Operands {
			assert.Equal(t, []int{12288, 102400}, op.Dimensions())
			assert.Equal(t, [][2]int{{12288, 12288}, {102400, 102400}}, op.Ranges())
		}
		assert.Equal(t, []int{0}, groups[0].Attrs.ReduceAxes)
	})

	t.Run("tuple reduce unknown dims", func(t *testing.T) {
		x := S(F32, -1, -1, -1, -1, -1)
		groups, err := Classify(tupleReduceSummary, []shapes.Shape{x}, reduceConfig(0, 2, 3), nil)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, types.Ranked(4), groups[0].Mode)
		assert.Equal(t, []int{-1, -1, -1, -1}, groups[0].Operands[0].Dimensions())
		assert.Equal(t, []int{0, 2}, groups[0].Attrs.ReduceAxes)
		assert.Equal(t, types.Ranked(3), groups[1].Mode)
		assert.Equal(t, []int{-1, -1, -1}, groups[1].Operands[0].Dimensions())
		assert.Equal(t, []int{0, 2}, groups[1].Attrs.ReduceAxes)
	})

	t.Run("pure broadcast", func(t *testing.T) {
		groups, err := Classify(broadcastSummary, []shapes.Shape{S(F32, -1, -1), S(F32, -1)},
			classify.Config{PureBroadcast: true}, nil)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, types.Normal(), groups[0].Mode)
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []shapes.Shape{S(F32, -1, 1, 8), S(F32, -1, -1, 8)}
		first, err := Classify(broadcastSummary, inputs, classify.Config{}, nil)
		require.NoError(t, err)
		second, err := Classify(broadcastSummary, inputs, classify.Config{}, nil)
		require.NoError(t, err)
		require.Len(t, second, len(first))
		for ii := range first {
			assert.Truef(t, first[ii].Equal(&second[ii]), "group #%d: %s != %s", ii, &first[ii], &second[ii])
		}
	})

	t.Run("errors", func(t *testing.T) {
		x := []shapes.Shape{S(F32, -1, 4)}
		_, err := Classify(map[string]int{"matmul": 1}, x, classify.Config{}, nil)
		assert.True(t, types.IsKind(err, types.KindUnsupportedPattern), "got %+v", err)

		_, err = Classify(map[string]int{"placeholder": 1}, x, classify.Config{}, nil)
		assert.True(t, types.IsKind(err, types.KindUnsupportedPattern), "got %+v", err)

		cfg := reduceConfig(0)
		cfg.DisableOptimization = true
		_, err = Classify(reduceSummary, x, cfg, nil)
		assert.True(t, types.IsKind(err, types.KindInvalidConfig), "got %+v", err)
		assert.Equal(t, classify.OptDisableOptimization, types.AsError(err).ConfigKey)
	})
}

func TestBuilder(t *testing.T) {
	p := must.M1(platform.New("test", 8, 4096))

	t.Run("broadcast", func(t *testing.T) {
		plan, err := New("my add").
			WithSummary(broadcastSummary).
			Input(S(F32, -1, 16)).
			RawInput(F32, []int{16}, nil).
			WithPlatform(p).
			Build()
		require.NoError(t, err)
		fmt.Printf("%s", plan)
		assert.Equal(t, types.PatternBroadcast, plan.Pattern)
		require.Len(t, plan.Groups, 2)
		assert.Equal(t, types.Normal(), plan.Groups[0].Mode)
		assert.Equal(t, types.Const(), plan.Groups[1].Mode)
		assert.Empty(t, plan.Failures)

		assert.Equal(t, 4, plan.NumKernels())
		assert.Equal(t, []uint32{0, 1, 2, tiling.ConstKey}, plan.Keys())
		assert.Equal(t, "my_add_broadcast_0", plan.KernelName(plan.Cases[0][0]))
		assert.Equal(t, "my_add_broadcast_const", plan.KernelName(plan.Cases[1][0]))

		assert.Equal(t, 0, plan.Select([][]int{{4, 16}, {16}}))
		assert.Equal(t, 1, plan.Select([][]int{{1, 16}, {16}}))
		assert.Equal(t, -1, plan.Select([][]int{{4, 16, 1}, {16}}))

		text := plan.String()
		assert.True(t, strings.HasPrefix(text, `plan "my add" (Broadcast) on Platform(test: cores=8`), text)
		assert.Contains(t, text, "2 group(s), 4 kernel(s), inputs [float32 float32]\n")
		assert.Contains(t, text, "\n  group #1: Broadcast Const:")
		assert.Contains(t, text, "\n    my_add_broadcast_const: key=const Const")
	})

	t.Run("keys are unique", func(t *testing.T) {
		plan, err := New("argmax").
			WithSummary(reduceSummary).
			Input(shapes.MakeUnknownRank(F32)).
			WithConfig(reduceConfig(0)).
			WithPlatformPreset("ascend910").
			Build()
		require.NoError(t, err)
		require.Len(t, plan.Groups, 2)
		assert.Empty(t, plan.Failures)
		seen := make(map[uint32]bool)
		for _, key := range plan.Keys() {
			require.False(t, seen[key], "key %d used twice", key)
			require.NotEqual(t, tiling.ConstKey, key)
			seen[key] = true
		}
	})

	t.Run("context extra parameters", func(t *testing.T) {
		plan, err := New("argmax").
			WithSummary(reduceSummary).
			Input(shapes.MakeUnknownRank(F32)).
			WithConfig(reduceConfig(2)).
			WithContext(opctx.New("argmax").SetExtra(classify.ExtraMaxRank, 3)).
			Build()
		require.NoError(t, err)
		require.Len(t, plan.Groups, 1)
		assert.Equal(t, "KR", plan.Groups[0].Guard.RolePattern)

		_, err = New("argmax").
			WithSummary(reduceSummary).
			Input(shapes.MakeUnknownRank(F32)).
			WithConfig(reduceConfig(2)).
			WithContext(opctx.New("argmax").SetExtra(classify.ExtraMaxRank, 2)).
			Build()
		require.True(t, types.IsKind(err, types.KindInvalidConfig))
	})

	t.Run("empty context", func(t *testing.T) {
		plan, err := New("my_add").
			WithPattern(types.PatternElementwise).
			Input(S(F32, -1, 4)).
			Input(S(F32, -1, 4)).
			WithContext(opctx.New("my_add").WithMode(opctx.ModeEmpty)).
			WithPlatform(p).
			Build()
		require.NoError(t, err)
		require.Len(t, plan.Groups, 1)
		assert.Equal(t, types.Empty(), plan.Groups[0].Mode)
		require.Len(t, plan.Cases[0], 1)
		c := plan.Cases[0][0]
		assert.Equal(t, tiling.ConstKey, c.Key)
		assert.Equal(t, types.StrategyConst, c.Strategy)
		assert.Equal(t, tiling.NoAxis, c.BlockAxis)
		assert.Equal(t, tiling.NoAxis, c.UBAxis)
	})

	t.Run("no legal tiling", func(t *testing.T) {
		plan, err := New("sum").
			WithSummary(reduceSummary).
			Input(S(F32, -1, -1)).
			WithConfig(reduceConfig(0, 1)).
			WithPlatform(p).
			Build()
		require.NoError(t, err)
		require.Len(t, plan.Groups, 1)
		require.Contains(t, plan.Failures, 0)
		assert.True(t, types.IsKind(plan.Failures[0], types.KindNoLegalTiling))
		assert.Equal(t, 0, plan.NumKernels())
		assert.Contains(t, plan.String(), "no legal tiling")
	})

	t.Run("errors", func(t *testing.T) {
		_, err := New("x").Input(S(F32, 4)).Build()
		assert.True(t, types.IsKind(err, types.KindUnsupportedPattern), "got %+v", err)

		_, err = New("x").WithPattern(types.PatternElementwise).RawInput(F32, []int{-3}, nil).Build()
		assert.True(t, types.IsKind(err, types.KindInvalidShape), "got %+v", err)

		_, err = New("x").WithPattern(types.PatternElementwise).Input(S(F32, 4)).
			WithPlatformPreset("tpu").Build()
		assert.ErrorContains(t, err, "unknown platform preset")

		cfg := reduceConfig(0)
		cfg.DisableOptimization = true
		_, err = New("x").WithSummary(reduceSummary).Input(S(F32, -1, 4)).WithConfig(cfg).Build()
		assert.True(t, types.IsKind(err, types.KindInvalidConfig), "got %+v", err)
		assert.ErrorContains(t, err, `operator "x"`)
	})
}
