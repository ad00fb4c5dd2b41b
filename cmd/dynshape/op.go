package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/gomlx/dynshape"
	"github.com/gomlx/dynshape/classify"
	"github.com/gomlx/dynshape/internal/utils"
	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/opctx"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Operator is the YAML description of one operator instance. Example:
//
//	name: my_add
//	summary: {placeholder: 2, broadcast: 1, elewise: 1}
//	inputs:
//	  - {dtype: float16, dims: [-1, 16], ranges: [[1, 1024], [16, 16]]}
//	  - {dtype: float16, dims: [16]}
//	config: {pure_brc: false}
type Operator struct {
	Name string `yaml:"name"`

	// Summary of the compute graph, resolved with the default registry. Ignored if Pattern is set.
	Summary map[string]int `yaml:"summary,omitempty"`

	// Pattern name (e.g.: "tuple_reduce"), bypassing the summary.
	Pattern string `yaml:"pattern,omitempty"`

	Inputs []Input          `yaml:"inputs"`
	Config classify.Config `yaml:"config,omitempty"`

	// Mode of the build context, e.g.: "empty".
	Mode string `yaml:"mode,omitempty"`

	// Extra parameters of the build context, e.g.: {max_rank: 4}. See classify.ExtraMaxRank.
	Extra map[string]any `yaml:"extra,omitempty"`
}

// Input is the raw descriptor of one operator input, see shapes.FromRaw.
type Input struct {
	DType  string   `yaml:"dtype"`
	Dims   []int    `yaml:"dims"`
	Ranges [][2]int `yaml:"ranges,omitempty"`
}

// parseOperator parses the YAML description of an operator.
func parseOperator(contents []byte) (*Operator, error) {
	op := &Operator{}
	if err := yaml.Unmarshal(contents, op); err != nil {
		return nil, errors.Wrap(err, "failed to parse operator description")
	}
	if op.Name == "" {
		return nil, errors.New("operator description is missing its name")
	}
	return op, nil
}

// loadOperator reads and parses the operator description file.
func loadOperator(filePath string) (*Operator, error) {
	contents, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", filePath)
	}
	op, err := parseOperator(contents)
	if err != nil {
		return nil, errors.WithMessagef(err, "file %q", filePath)
	}
	return op, nil
}

// Builder returns the dynshape.Builder configured for the operator. The platform is set by the caller.
func (op *Operator) Builder() (*dynshape.Builder, error) {
	b := dynshape.New(op.Name).WithConfig(op.Config)
	if op.Pattern != "" {
		p, err := types.PatternString(strings.ReplaceAll(op.Pattern, "_", ""))
		if err != nil || p == types.PatternInvalid {
			return nil, errors.Errorf("operator %q has an unknown pattern %q", op.Name, op.Pattern)
		}
		b.WithPattern(p)
	} else {
		b.WithSummary(op.Summary)
	}
	for ii, input := range op.Inputs {
		dtype, err := utils.DTypeFromAccel(input.DType)
		if err != nil {
			return nil, errors.WithMessagef(err, "operator %q input #%d", op.Name, ii)
		}
		b.RawInput(dtype, input.Dims, input.Ranges)
	}
	opCtx := opctx.New(op.Name)
	if op.Mode != "" {
		opCtx = opCtx.WithMode(op.Mode)
	}
	for key, value := range op.Extra {
		opCtx.SetExtra(key, value)
	}
	return b.WithContext(opCtx), nil
}

// parseRuntime parses runtime dimensions of all inputs: inputs separated by commas, dimensions by "x".
// E.g.: "4x16,16" for inputs of shapes [4, 16] and [16]. A scalar input is given by an empty string.
func parseRuntime(value string) ([][]int, error) {
	var runtime [][]int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		dims := []int{}
		if part != "" {
			for _, dimStr := range strings.Split(part, "x") {
				dim, err := strconv.Atoi(strings.TrimSpace(dimStr))
				if err != nil || dim < 0 {
					return nil, errors.Errorf("invalid runtime dimension %q in %q", dimStr, value)
				}
				dims = append(dims, dim)
			}
		}
		runtime = append(runtime, dims)
	}
	return runtime, nil
}
