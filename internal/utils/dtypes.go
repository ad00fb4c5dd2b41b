package utils

import (
	"fmt"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// BlockBytes is the size of the accelerator's storage block: the innermost blocked dimension of the
// fractal formats (C0) always spans one block.
const BlockBytes = 32

// DTypeToAccel returns the name the accelerator toolchain uses for the dtype.
func DTypeToAccel(dtype dtypes.DType) string {
	switch dtype {
	case dtypes.Float64:
		return "float64"
	case dtypes.Float32:
		return "float32"
	case dtypes.Float16:
		return "float16"
	case dtypes.BFloat16:
		return "bfloat16"
	case dtypes.Int64:
		return "int64"
	case dtypes.Int32:
		return "int32"
	case dtypes.Int16:
		return "int16"
	case dtypes.Int8:
		return "int8"
	case dtypes.Uint64:
		return "uint64"
	case dtypes.Uint32:
		return "uint32"
	case dtypes.Uint16:
		return "uint16"
	case dtypes.Uint8:
		return "uint8"
	case dtypes.Bool:
		return "bool"
	default:
		return fmt.Sprintf("unknown_dtype<%s>", dtype.String())
	}
}

// DTypeFromAccel is the inverse of DTypeToAccel. It also accepts the short forms "fp16", "fp32" and "bf16".
func DTypeFromAccel(name string) (dtypes.DType, error) {
	switch strings.ToLower(name) {
	case "float64", "fp64":
		return dtypes.Float64, nil
	case "float32", "fp32", "float":
		return dtypes.Float32, nil
	case "float16", "fp16", "half":
		return dtypes.Float16, nil
	case "bfloat16", "bf16":
		return dtypes.BFloat16, nil
	case "int64":
		return dtypes.Int64, nil
	case "int32":
		return dtypes.Int32, nil
	case "int16":
		return dtypes.Int16, nil
	case "int8":
		return dtypes.Int8, nil
	case "uint64":
		return dtypes.Uint64, nil
	case "uint32":
		return dtypes.Uint32, nil
	case "uint16":
		return dtypes.Uint16, nil
	case "uint8":
		return dtypes.Uint8, nil
	case "bool":
		return dtypes.Bool, nil
	}
	return dtypes.InvalidDType, errors.Errorf("unknown accelerator dtype %q", name)
}

// BlockElems returns the number of elements of the given dtype that fit in one storage block (C0).
// It returns 0 for an invalid dtype.
func BlockElems(dtype dtypes.DType) int {
	size := dtype.Size()
	if size <= 0 {
		return 0
	}
	return max(BlockBytes/size, 1)
}
