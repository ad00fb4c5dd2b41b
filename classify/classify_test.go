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

// S is an alias to shapes.Make, to simplify the tests.
var S = shapes.Make

const F32 = dtypes.Float32

func classifyOK(t *testing.T, pattern types.Pattern, cfg Config, inputs ...shapes.Shape) []Group {
	t.Helper()
	groups, err := Classify(pattern, inputs, cfg, nil)
	require.NoError(t, err)
	return groups
}

func requireKind(t *testing.T, err error, kind types.ErrorKind) *types.Error {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, types.IsKind(err, kind), "expected error of kind %s, got %+v", kind, err)
	return types.AsError(err)
}

func TestConfigValidation(t *testing.T) {
	x := S(F32, 4, -1)
	testCases := []struct {
		name    string
		pattern types.Pattern
		cfg     Config
		kind    types.ErrorKind
		key     string
	}{
		{"disable_optimization on reduce", types.PatternReduce,
			Config{Keepdims: Bool(false), ReduceAxes: []int{0}, DisableOptimization: true},
			types.KindInvalidConfig, OptDisableOptimization},
		{"disable_optimization on broadcast", types.PatternBroadcast, Config{DisableOptimization: true},
			types.KindInvalidConfig, OptDisableOptimization},
		{"pure_brc on elementwise", types.PatternElementwise, Config{PureBroadcast: true},
			types.KindInvalidConfig, OptPureBroadcast},
		{"keepdims missing", types.PatternReduce, Config{ReduceAxes: []int{0}},
			types.KindInvalidKeepdims, OptKeepdims},
		{"keepdims missing for tuple reduce", types.PatternTupleReduce, Config{ReduceAxes: []int{0}},
			types.KindInvalidKeepdims, OptKeepdims},
		{"axes missing", types.PatternReduce, Config{Keepdims: Bool(true)}, types.KindInvalidConfig, OptReduceAxes},
		{"axes empty", types.PatternReduce, Config{Keepdims: Bool(true), ReduceAxes: []int{}},
			types.KindInvalidConfig, OptReduceAxes},
		{"axes out of range", types.PatternReduce, Config{Keepdims: Bool(true), ReduceAxes: []int{2}},
			types.KindInvalidConfig, OptReduceAxes},
		{"perm missing", types.PatternTranspose, Config{}, types.KindInvalidConfig, OptPerm},
		{"perm on gather", types.PatternGather, Config{Axis: Int(0), Perm: []int{1, 0}},
			types.KindInvalidConfig, OptPerm},
		{"axis missing", types.PatternConcat, Config{}, types.KindInvalidConfig, OptAxis},
		{"formats missing", types.PatternTransdata, Config{SrcFormat: "NCHW"}, types.KindInvalidConfig, OptDstFormat},
		{"keepdims on elementwise", types.PatternElementwise, Config{Keepdims: Bool(true)},
			types.KindInvalidConfig, OptKeepdims},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Classify(tc.pattern, []shapes.Shape{x}, tc.cfg, nil)
			e := requireKind(t, err, tc.kind)
			assert.Equal(t, tc.key, e.ConfigKey)
			assert.Contains(t, err.Error(), types.InvalidConfigCode)
		})
	}

	t.Run("unsupported pattern", func(t *testing.T) {
		_, err := Classify(types.PatternInvalid, []shapes.Shape{x}, Config{}, nil)
		requireKind(t, err, types.KindUnsupportedPattern)
	})
	t.Run("no inputs", func(t *testing.T) {
		_, err := Classify(types.PatternElementwise, nil, Config{}, nil)
		requireKind(t, err, types.KindInvalidShape)
	})
	t.Run("size overflow", func(t *testing.T) {
		huge := S(F32, 1<<40, 1<<40)
		_, err := Classify(types.PatternElementwise, []shapes.Shape{huge}, Config{}, nil)
		requireKind(t, err, types.KindInvalidShape)

		// Not fused, each axis fits.
		groups := classifyOK(t, types.PatternElementwise, Config{DisableOptimization: true}, huge)
		require.Len(t, groups, 1)
		assert.Equal(t, types.Const(), groups[0].Mode)

		_, err = Classify(types.PatternReduce, []shapes.Shape{S(F32, 1<<40, 1<<40, 8)},
			Config{Keepdims: Bool(false), ReduceAxes: []int{2}}, nil)
		requireKind(t, err, types.KindInvalidShape)
	})
	t.Run("malformed range", func(t *testing.T) {
		bad := shapes.Shape{DType: F32, Dims: []shapes.Dim{{Lo: 5, Hi: 2}}}
		_, err := Classify(types.PatternElementwise, []shapes.Shape{bad}, Config{}, nil)
		e := requireKind(t, err, types.KindInvalidShape)
		assert.Equal(t, 0, e.Axis)
	})
}

func TestEmpty(t *testing.T) {
	ctx := opctx.New("reduce_sum").WithMode(opctx.ModeEmpty)
	cfg := Config{Keepdims: Bool(true), ReduceAxes: []int{1}}
	groups, err := Classify(types.PatternReduce, []shapes.Shape{S(F32, -1, -1, 8)}, cfg, ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, types.Empty(), groups[0].Mode)
	assert.True(t, groups[0].Guard.Accepts([][]int{{1, 2, 8}}))

	// Configuration errors are still reported.
	_, err = Classify(types.PatternReduce, []shapes.Shape{S(F32, -1)}, Config{ReduceAxes: []int{0}}, ctx)
	requireKind(t, err, types.KindInvalidKeepdims)

	// Statically empty inputs don't need the marker.
	groups = classifyOK(t, types.PatternElementwise, Config{}, S(F32, 0, -1), S(F32, 0, -1))
	require.Len(t, groups, 1)
	assert.Equal(t, types.Empty(), groups[0].Mode)
	assert.Len(t, groups[0].Operands, 2)
}

func TestIdempotence(t *testing.T) {
	testCases := []struct {
		pattern types.Pattern
		cfg     Config
		inputs  []shapes.Shape
	}{
		{types.PatternBroadcast, Config{}, []shapes.Shape{S(F32, -1, -1, 4), S(F32, -1, 4)}},
		{types.PatternReduce, Config{Keepdims: Bool(false), ReduceAxes: []int{0, 2, 3}},
			[]shapes.Shape{S(F32, -1, -1, -1, -1, -1)}},
		{types.PatternTupleReduce, Config{Keepdims: Bool(false), ReduceAxes: []int{1}},
			[]shapes.Shape{shapes.MakeUnknownRank(F32), shapes.MakeUnknownRank(F32)}},
		{types.PatternTransdata, Config{SrcFormat: "ND", DstFormat: "FRACTAL_NZ"}, []shapes.Shape{S(F32, -1, -1)}},
	}
	for _, tc := range testCases {
		t.Run(tc.pattern.String(), func(t *testing.T) {
			first, err := Classify(tc.pattern, tc.inputs, tc.cfg, nil)
			require.NoError(t, err)
			second, err := Classify(tc.pattern, tc.inputs, tc.cfg, nil)
			require.NoError(t, err)
			require.Equal(t, len(first), len(second))
			for ii := range first {
				assert.Truef(t, first[ii].Equal(&second[ii]), "group #%d differs: %s != %s",
					ii, &first[ii], &second[ii])
			}
		})
	}
}
