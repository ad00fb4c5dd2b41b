package utils

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := MakeSet[dtypes.DType](3)
	assert.Empty(t, s)
	s.Insert(dtypes.Float32, dtypes.Float16, dtypes.Float32)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(dtypes.Float16))
	assert.False(t, s.Has(dtypes.Int8))
	assert.False(t, MakeSet[int]().Has(0))
}

func TestSaturatingMul(t *testing.T) {
	assert.Equal(t, 12, SaturatingMul(3, 4, MaxInt))
	assert.Equal(t, 0, SaturatingMul(0, MaxInt, MaxInt))
	assert.Equal(t, MaxInt, SaturatingMul(MaxInt, 2, MaxInt))
	assert.Equal(t, MaxInt, SaturatingMul(1<<40, 1<<40, MaxInt))
	assert.Equal(t, 100, SaturatingMul(20, 10, 100))
}

func TestCeilDivAndAlign(t *testing.T) {
	assert.Equal(t, 3, CeilDiv(9, 4))
	assert.Equal(t, 2, CeilDiv(8, 4))
	assert.Equal(t, 0, CeilDiv(0, 4))
	assert.Equal(t, 32, AlignUp(17, 16))
	assert.Equal(t, 16, AlignUp(16, 16))
}

func TestDTypeNames(t *testing.T) {
	for _, dtype := range []dtypes.DType{dtypes.Float32, dtypes.Float16, dtypes.BFloat16, dtypes.Int8, dtypes.Uint8, dtypes.Bool} {
		name := DTypeToAccel(dtype)
		got, err := DTypeFromAccel(name)
		require.NoError(t, err)
		assert.Equal(t, dtype, got, "round trip of %q", name)
	}
	got, err := DTypeFromAccel("fp16")
	require.NoError(t, err)
	assert.Equal(t, dtypes.Float16, got)
	_, err = DTypeFromAccel("float8")
	require.Error(t, err)
}

func TestBlockElems(t *testing.T) {
	assert.Equal(t, 16, BlockElems(dtypes.Float16))
	assert.Equal(t, 8, BlockElems(dtypes.Float32))
	assert.Equal(t, 32, BlockElems(dtypes.Int8))
	assert.Equal(t, 4, BlockElems(dtypes.Int64))
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "tuple_reduce", ToSnakeCase("TupleReduce"))
	assert.Equal(t, "elementwise", ToSnakeCase("Elementwise"))
	assert.Equal(t, "nc1hwc0", ToSnakeCase("nc1hwc0"))
	assert.Equal(t, "nc1hwc0", ToSnakeCase("NC1HWC0"))
	assert.Equal(t, "ub_plain", ToSnakeCase("UBPlain"))
	assert.Equal(t, "placeholder", ToSnakeCase("Placeholder"))
}

func TestNormalizeIdentifier(t *testing.T) {
	assert.Equal(t, "add_relu", NormalizeIdentifier("add-relu"))
	assert.Equal(t, "_2d_conv", NormalizeIdentifier("2d_conv"))
	assert.Equal(t, "", NormalizeIdentifier(""))
	assert.Equal(t, "my_add", NormalizeIdentifier("my add"))
	assert.Equal(t, "ascend910", NormalizeIdentifier("ascend910"))
}
