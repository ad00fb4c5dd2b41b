package pattern

import (
	"sync"
	"testing"

	"github.com/gomlx/dynshape/internal/optypes"
	"github.com/gomlx/dynshape/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSummary(t *testing.T) {
	s, err := ParseSummary(map[string]int{"placeholder": 2, "elewise": 3, "Reduce": 1, "cast": 0})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count(optypes.Elementwise))
	assert.True(t, s.Has(optypes.Reduce))
	assert.False(t, s.Has(optypes.Cast))
	assert.Equal(t, "placeholder=2,elewise=3,reduce=1", s.Key())

	_, err = ParseSummary(map[string]int{"matmul": 1})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindUnsupportedPattern))
	assert.Contains(t, err.Error(), "matmul")
	_, err = ParseSummary(map[string]int{"elewise": -1})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindUnsupportedPattern))
}

func TestResolve(t *testing.T) {
	testCases := []struct {
		name    string
		summary Summary
		want    types.Pattern
	}{
		{"elementwise", Summary{optypes.Placeholder: 2, optypes.Elementwise: 1}, types.PatternElementwise},
		{"cast only", Summary{optypes.Placeholder: 1, optypes.Cast: 1}, types.PatternElementwise},
		{"broadcast", Summary{optypes.Placeholder: 2, optypes.Broadcast: 1, optypes.Elementwise: 1},
			types.PatternBroadcast},
		{"broadcast and reduce", Summary{optypes.Broadcast: 1, optypes.Reduce: 1}, types.PatternReduce},
		{"tuple reduce", Summary{optypes.Elementwise: 4, optypes.Reduce: 2}, types.PatternTupleReduce},
		{"transdata first", Summary{optypes.Transdata: 1, optypes.Transpose: 1}, types.PatternTransdata},
		{"transpose over elementwise", Summary{optypes.Transpose: 1, optypes.Elementwise: 1},
			types.PatternTranspose},
		{"gather", Summary{optypes.Gather: 1, optypes.Placeholder: 2}, types.PatternGather},
		{"concat over slice", Summary{optypes.Concat: 1, optypes.Slice: 1}, types.PatternConcat},
		{"slice", Summary{optypes.Slice: 1}, types.PatternSlice},
	}
	registry := Default()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := registry.Resolve(tc.summary)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		for _, s := range []Summary{{}, {optypes.Placeholder: 1}, {optypes.Elementwise: 1, optypes.Any: 1}} {
			_, err := registry.Resolve(s)
			require.Error(t, err)
			assert.True(t, types.IsKind(err, types.KindUnsupportedPattern), "summary %s", s)
		}
	})
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []types.Pattern{
		types.PatternTransdata, types.PatternTranspose, types.PatternGather, types.PatternConcat,
		types.PatternSlice, types.PatternTupleReduce, types.PatternReduce, types.PatternBroadcast,
		types.PatternElementwise,
	}, Default().Patterns())

	_, err := New()
	require.Error(t, err)
	_, err = New(ReduceParser, nil)
	require.Error(t, err)
	_, err = New(ReduceParser, ReduceParser)
	require.Error(t, err)

	// Custom registries can change the priorities: here any reduction is a plain reduce.
	anyReduce := NewParser(types.PatternReduce, func(s Summary) bool { return s.Has(optypes.Reduce) })
	r, err := New(anyReduce, ElementwiseParser)
	require.NoError(t, err)
	got, err := r.Resolve(Summary{optypes.Reduce: 3})
	require.NoError(t, err)
	assert.Equal(t, types.PatternReduce, got)
}

func TestCachedRegistry(t *testing.T) {
	cached := Default().Cached()
	var wg sync.WaitGroup
	for ii := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := Summary{optypes.Elementwise: 1 + ii%2}
			got, err := cached.Resolve(s)
			assert.NoError(t, err)
			assert.Equal(t, types.PatternElementwise, got)
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, cached.Len())

	_, err := cached.Resolve(Summary{optypes.Any: 1})
	require.Error(t, err)
	_, err = cached.Resolve(Summary{optypes.Any: 1})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindUnsupportedPattern))
	assert.Equal(t, 3, cached.Len())
}
