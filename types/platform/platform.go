// Package platform describes the accelerator a kernel is tiled for: the number of cores a tensor can be split
// across ("block" split) and the size of each core's on-chip unified buffer ("UB" split).
package platform

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/dynshape/internal/utils"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
)

// Platform defines the parallel topology and buffer sizes of an accelerator.
//
// It is immutable after configuration and can be shared by concurrent classifications.
type Platform struct {
	name string

	// coreNum is the number of cores a kernel's "block" axis is split across.
	coreNum int

	// ubSize is the size in bytes of each core's unified buffer.
	ubSize int

	// blockSize is the size in bytes of the storage block: UB tiles are aligned to it.
	blockSize int

	// atomicDTypes are the dtypes for which the platform supports atomic accumulation into global memory.
	atomicDTypes utils.Set[dtypes.DType]
}

// New creates a new accelerator description.
//
//   - name: the name of the platform, it must be a valid identifier (letters, digits and underscores).
//   - coreNum: the number of cores, must be positive.
//   - ubSize: the size in bytes of each core's unified buffer, must hold at least one storage block per buffer.
//
// Atomic accumulation is not supported by default, see Platform.SetAtomicAdd.
func New(name string, coreNum, ubSize int) (*Platform, error) {
	if name == "" || name != utils.NormalizeIdentifier(name) {
		return nil, errors.Errorf("platform name %q is not a valid identifier, suggestion %q",
			name, utils.NormalizeIdentifier(name))
	}
	if coreNum <= 0 {
		return nil, errors.Errorf("platform %q must have a positive number of cores, got %d", name, coreNum)
	}
	if ubSize < utils.BlockBytes {
		return nil, errors.Errorf("platform %q unified buffer size must be at least one block (%d bytes), got %d",
			name, utils.BlockBytes, ubSize)
	}
	return &Platform{
		name:         name,
		coreNum:      coreNum,
		ubSize:       ubSize,
		blockSize:    utils.BlockBytes,
		atomicDTypes: utils.MakeSet[dtypes.DType](),
	}, nil
}

// ubSize910 is the unified buffer size of the Ascend 910/310 families, minus the space reserved by the runtime.
const ubSize910 = 256*1024 - 8*1024

var presets = map[string]func() *Platform{
	"ascend910": func() *Platform {
		p := must.M1(New("ascend910", 32, ubSize910))
		must.M(p.SetAtomicAdd(dtypes.Float32))
		return p
	},
	"ascend310p": func() *Platform {
		p := must.M1(New("ascend310p", 8, ubSize910))
		must.M(p.SetAtomicAdd(dtypes.Float32))
		return p
	},
	"ascend310": func() *Platform { return must.M1(New("ascend310", 2, ubSize910)) },
}

// Preset returns a new Platform for one of the known accelerators. See PresetNames.
func Preset(name string) (*Platform, error) {
	fn, found := presets[strings.ToLower(name)]
	if !found {
		return nil, errors.Errorf("unknown platform preset %q, valid values are %q", name, PresetNames())
	}
	return fn(), nil
}

// PresetNames returns the sorted names of the platform presets.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Name of the platform.
func (p *Platform) Name() string {
	return p.name
}

// CoreNum returns the number of cores.
func (p *Platform) CoreNum() int {
	return p.coreNum
}

// UBSize returns the size in bytes of each core's unified buffer.
func (p *Platform) UBSize() int {
	return p.ubSize
}

// BlockSize returns the size in bytes of a storage block.
func (p *Platform) BlockSize() int {
	return p.blockSize
}

// SetAtomicAdd sets the dtypes for which atomic accumulation is supported. An empty list disables it.
//
// It returns an error if a dtype is invalid or duplicated.
func (p *Platform) SetAtomicAdd(dtypeList ...dtypes.DType) error {
	seen := utils.MakeSet[dtypes.DType](len(dtypeList))
	for _, dtype := range dtypeList {
		if dtype == dtypes.InvalidDType {
			return errors.New("invalid dtype for atomic add")
		}
		if seen.Has(dtype) {
			return errors.Errorf("dtype %s is duplicated in atomic add list", dtype)
		}
		seen.Insert(dtype)
	}
	p.atomicDTypes = seen
	return nil
}

// WithCoreNum returns a copy of the platform with a different number of cores.
func (p *Platform) WithCoreNum(coreNum int) (*Platform, error) {
	if coreNum <= 0 {
		return nil, errors.Errorf("platform %q must have a positive number of cores, got %d", p.name, coreNum)
	}
	p2 := *p
	p2.coreNum = coreNum
	p2.atomicDTypes = maps.Clone(p.atomicDTypes)
	return &p2, nil
}

// SupportsAtomicAdd returns whether values of the given dtype can be accumulated atomically across cores.
func (p *Platform) SupportsAtomicAdd(dtype dtypes.DType) bool {
	return p.atomicDTypes.Has(dtype)
}

// UBElems returns the number of elements of dtype that fit in each of numBuffers equal partitions of the
// unified buffer, rounded down to whole storage blocks. It returns at least one block worth of elements.
func (p *Platform) UBElems(dtype dtypes.DType, numBuffers int) int {
	numBuffers = max(numBuffers, 1)
	blockElems := utils.BlockElems(dtype)
	if blockElems == 0 {
		return 0
	}
	bytesPerBuffer := p.ubSize / numBuffers
	blocks := max(bytesPerBuffer/p.blockSize, 1)
	return blocks * blockElems
}

// BlockDistribution returns how a dimension of the given size is split across the cores: the number of
// elements per core (factor) and the number of cores actually used.
func (p *Platform) BlockDistribution(size int) (factor, cores int) {
	if size <= 0 {
		return 0, 0
	}
	factor = utils.CeilDiv(size, p.coreNum)
	cores = utils.CeilDiv(size, factor)
	return
}

// String implements the fmt.Stringer interface.
func (p *Platform) String() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "Platform(%s: cores=%d, ub=%s", p.name, p.coreNum, humanize.IBytes(uint64(p.ubSize)))
	if len(p.atomicDTypes) > 0 {
		names := make([]string, 0, len(p.atomicDTypes))
		for dtype := range p.atomicDTypes {
			names = append(names, dtype.String())
		}
		slices.Sort(names)
		_, _ = fmt.Fprintf(&sb, ", atomic_add={%s}", strings.Join(names, ", "))
	}
	sb.WriteString(")")
	return sb.String()
}
