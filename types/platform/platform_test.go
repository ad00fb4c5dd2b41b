package platform_test

import (
	"testing"

	"github.com/gomlx/dynshape/types/platform"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		p, err := platform.New("test_chip", 4, 1024)
		require.NoError(t, err)
		assert.Equal(t, "test_chip", p.Name())
		assert.Equal(t, 4, p.CoreNum())
		assert.Equal(t, 1024, p.UBSize())
		assert.Equal(t, 32, p.BlockSize())
		assert.False(t, p.SupportsAtomicAdd(dtypes.Float32))
		assert.Equal(t, "Platform(test_chip: cores=4, ub=1.0 KiB)", p.String())
	})

	t.Run("Invalid", func(t *testing.T) {
		tests := []struct {
			name    string
			pName   string
			cores   int
			ubSize  int
			wantErr string
		}{
			{"bad name", "my-chip", 4, 1024, "not a valid identifier"},
			{"empty name", "", 4, 1024, "not a valid identifier"},
			{"no cores", "chip", 0, 1024, "positive number of cores"},
			{"tiny ub", "chip", 2, 16, "at least one block"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := platform.New(tt.pName, tt.cores, tt.ubSize)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			})
		}
	})
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"ascend310", "ascend310p", "ascend910"}, platform.PresetNames())
	p, err := platform.Preset("Ascend910")
	require.NoError(t, err)
	assert.Equal(t, 32, p.CoreNum())
	assert.True(t, p.SupportsAtomicAdd(dtypes.Float32))
	assert.False(t, p.SupportsAtomicAdd(dtypes.Float16))
	assert.Contains(t, p.String(), "atomic_add={Float32}")

	_, err = platform.Preset("tpu")
	require.Error(t, err)
}

func TestSetAtomicAdd(t *testing.T) {
	p, err := platform.New("chip", 2, 4096)
	require.NoError(t, err)
	require.NoError(t, p.SetAtomicAdd(dtypes.Float32, dtypes.Float16))
	assert.True(t, p.SupportsAtomicAdd(dtypes.Float16))
	require.Error(t, p.SetAtomicAdd(dtypes.Float32, dtypes.Float32))
	require.Error(t, p.SetAtomicAdd(dtypes.InvalidDType))
	require.NoError(t, p.SetAtomicAdd())
	assert.False(t, p.SupportsAtomicAdd(dtypes.Float32))
}

func TestWithCoreNum(t *testing.T) {
	p, err := platform.Preset("ascend910")
	require.NoError(t, err)
	p2, err := p.WithCoreNum(4)
	require.NoError(t, err)
	assert.Equal(t, 4, p2.CoreNum())
	assert.Equal(t, 32, p.CoreNum())
	assert.Equal(t, p.UBSize(), p2.UBSize())
	assert.True(t, p2.SupportsAtomicAdd(dtypes.Float32))
	_, err = p.WithCoreNum(0)
	require.Error(t, err)
}

func TestBuffers(t *testing.T) {
	p, err := platform.New("chip", 8, 4096)
	require.NoError(t, err)
	// 4096 bytes / 2 buffers = 2048 bytes = 64 blocks of 8 float32.
	assert.Equal(t, 512, p.UBElems(dtypes.Float32, 2))
	assert.Equal(t, 1024, p.UBElems(dtypes.Float16, 2))
	// Never less than a block.
	assert.Equal(t, 8, p.UBElems(dtypes.Float32, 1000))

	factor, cores := p.BlockDistribution(20)
	assert.Equal(t, 3, factor)
	assert.Equal(t, 7, cores)
	factor, cores = p.BlockDistribution(64)
	assert.Equal(t, 8, factor)
	assert.Equal(t, 8, cores)
	factor, cores = p.BlockDistribution(3)
	assert.Equal(t, 1, factor)
	assert.Equal(t, 3, cores)
}
