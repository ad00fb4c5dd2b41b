package main

import (
	"testing"

	"github.com/gomlx/dynshape/tiling"
	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/platform"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperator(t *testing.T) {
	op, err := parseOperator([]byte(`
name: my_add
summary: {placeholder: 2, broadcast: 1, elewise: 1}
inputs:
  - {dtype: float16, dims: [-1, 16], ranges: [[1, 1024], [16, 16]]}
  - {dtype: fp16, dims: [16]}
extra: {block_dim: 4}
`))
	require.NoError(t, err)
	assert.Equal(t, "my_add", op.Name)
	require.Len(t, op.Inputs, 2)
	assert.Equal(t, [][2]int{{1, 1024}, {16, 16}}, op.Inputs[0].Ranges)

	b, err := op.Builder()
	require.NoError(t, err)
	plan, err := b.WithPlatform(must.M1(platform.New("test", 8, 4096))).Build()
	require.NoError(t, err)
	assert.Equal(t, types.PatternBroadcast, plan.Pattern)
	require.Len(t, plan.Groups, 2)
	assert.Equal(t, 1, plan.Select([][]int{{1, 16}, {16}}))

	t.Run("extra", func(t *testing.T) {
		op, err := parseOperator([]byte(`
name: my_add
summary: {placeholder: 2, broadcast: 1, elewise: 1}
inputs: [{dtype: float16, dims: [-1, 16]}, {dtype: float16, dims: [16]}]
extra: {max_broadcast_groups: 1}
`))
		require.NoError(t, err)
		b, err := op.Builder()
		require.NoError(t, err)
		_, err = b.Build()
		require.True(t, types.IsKind(err, types.KindInvalidShape))
	})

	t.Run("pattern and config", func(t *testing.T) {
		op, err := parseOperator([]byte(`
name: argmax
pattern: tuple_reduce
inputs: [{dtype: float32, dims: [24, 512, 102400]}, {dtype: float32, dims: [24, 512, 102400]}]
config: {keepdims: false, axes: [0, 1]}
`))
		require.NoError(t, err)
		b, err := op.Builder()
		require.NoError(t, err)
		plan, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, types.PatternTupleReduce, plan.Pattern)
		require.Len(t, plan.Groups, 1)
		assert.Equal(t, []uint32{tiling.ConstKey}, plan.Keys())
	})

	t.Run("empty mode", func(t *testing.T) {
		op, err := parseOperator([]byte(`
name: add
pattern: elementwise
mode: empty
inputs: [{dtype: float32, dims: [-1]}]
`))
		require.NoError(t, err)
		b, err := op.Builder()
		require.NoError(t, err)
		plan, err := b.Build()
		require.NoError(t, err)
		assert.Equal(t, types.Empty(), plan.Groups[0].Mode)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := parseOperator([]byte(`inputs: []`))
		require.Error(t, err)
		_, err = parseOperator([]byte(`name: [`))
		require.Error(t, err)

		op, err := parseOperator([]byte("name: x\npattern: matmul\n"))
		require.NoError(t, err)
		_, err = op.Builder()
		require.Error(t, err)

		op, err = parseOperator([]byte("name: x\npattern: elementwise\ninputs: [{dtype: complex, dims: [2]}]\n"))
		require.NoError(t, err)
		_, err = op.Builder()
		require.Error(t, err)
	})
}

func TestParseRuntime(t *testing.T) {
	runtime, err := parseRuntime("4x16, 16")
	require.NoError(t, err)
	assert.Equal(t, [][]int{{4, 16}, {16}}, runtime)

	runtime, err = parseRuntime("3,")
	require.NoError(t, err)
	assert.Equal(t, [][]int{{3}, {}}, runtime)

	_, err = parseRuntime("4xa")
	require.Error(t, err)
	_, err = parseRuntime("-1")
	require.Error(t, err)
}
