package classify

import (
	"slices"

	"github.com/gomlx/dynshape/types"
)

// Names of the configuration options, as reported in types.Error.ConfigKey.
const (
	OptKeepdims            = "keepdims"
	OptDisableOptimization = "disable_optimization"
	OptPureBroadcast       = "pure_brc"
	OptReduceAxes          = "axes"
	OptAxis                = "axis"
	OptBatchDims           = "batch_dims"
	OptPerm                = "perm"
	OptSrcFormat           = "src_format"
	OptDstFormat           = "dst_format"
)

// Config is the pattern specific configuration of an operator.
//
// Only the options recognized by the pattern may be set: see Config.Validate.
type Config struct {
	// Keepdims is required by the reduce patterns. It only affects Attrs.OutputShape.
	Keepdims *bool `yaml:"keepdims,omitempty"`

	// DisableOptimization disables axis fusion for elementwise operators.
	DisableOptimization bool `yaml:"disable_optimization,omitempty"`

	// PureBroadcast attests that every unknown broadcast dimension is a genuine broadcast, collapsing
	// the broadcast classification into one group.
	PureBroadcast bool `yaml:"pure_brc,omitempty"`

	// ReduceAxes are the reduced axes of the reduce patterns. Negative values count from the end.
	ReduceAxes []int `yaml:"axes,omitempty"`

	// Axis is the boundary axis of gather, slice and concat.
	Axis *int `yaml:"axis,omitempty"`

	// BatchDims is the number of leading batch axes shared by the gather params and indices.
	BatchDims int `yaml:"batch_dims,omitempty"`

	// Perm is the transpose permutation: output axis i is input axis Perm[i].
	Perm []int `yaml:"perm,omitempty"`

	// SrcFormat and DstFormat are the storage formats of a transdata operator, see Format.
	SrcFormat string `yaml:"src_format,omitempty"`
	DstFormat string `yaml:"dst_format,omitempty"`
}

// Bool returns a pointer to v, for Config.Keepdims.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for Config.Axis.
func Int(v int) *int { return &v }

var (
	// patternOptions lists the options recognized by each pattern.
	patternOptions = map[types.Pattern][]string{
		types.PatternElementwise: {OptDisableOptimization},
		types.PatternBroadcast:   {OptPureBroadcast},
		types.PatternReduce:      {OptKeepdims, OptReduceAxes},
		types.PatternTupleReduce: {OptKeepdims, OptReduceAxes},
		types.PatternTranspose:   {OptPerm},
		types.PatternTransdata:   {OptSrcFormat, OptDstFormat},
		types.PatternGather:      {OptAxis, OptBatchDims},
		types.PatternSlice:       {OptAxis},
		types.PatternConcat:      {OptAxis},
	}

	// requiredOptions lists the options each pattern can't do without. keepdims is handled separately,
	// since it has its own error kind.
	requiredOptions = map[types.Pattern][]string{
		types.PatternReduce:      {OptReduceAxes},
		types.PatternTupleReduce: {OptReduceAxes},
		types.PatternTranspose:   {OptPerm},
		types.PatternTransdata:   {OptSrcFormat, OptDstFormat},
		types.PatternGather:      {OptAxis},
		types.PatternSlice:       {OptAxis},
		types.PatternConcat:      {OptAxis},
	}
)

// options returns the names of the options set.
func (c Config) options() []string {
	var opts []string
	if c.Keepdims != nil {
		opts = append(opts, OptKeepdims)
	}
	if c.DisableOptimization {
		opts = append(opts, OptDisableOptimization)
	}
	if c.PureBroadcast {
		opts = append(opts, OptPureBroadcast)
	}
	if c.ReduceAxes != nil {
		opts = append(opts, OptReduceAxes)
	}
	if c.Axis != nil {
		opts = append(opts, OptAxis)
	}
	if c.BatchDims != 0 {
		opts = append(opts, OptBatchDims)
	}
	if c.Perm != nil {
		opts = append(opts, OptPerm)
	}
	if c.SrcFormat != "" {
		opts = append(opts, OptSrcFormat)
	}
	if c.DstFormat != "" {
		opts = append(opts, OptDstFormat)
	}
	return opts
}

// Validate checks that only options recognized by the pattern are set, and that the required ones are given.
//
// It returns an error of kind types.KindInvalidConfig, or types.KindInvalidKeepdims if keepdims is missing for
// the reduce patterns.
func (c Config) Validate(pattern types.Pattern) error {
	allowed, found := patternOptions[pattern]
	if !found {
		return types.ErrUnsupportedPattern("pattern %s has no classifier", pattern)
	}
	for _, opt := range c.options() {
		if !slices.Contains(allowed, opt) {
			return types.ErrInvalidConfig(pattern, opt, "option %q is not supported by the %s pattern",
				opt, pattern.OpName())
		}
	}
	if (pattern == types.PatternReduce || pattern == types.PatternTupleReduce) && c.Keepdims == nil {
		return types.ErrInvalidKeepdims(pattern)
	}
	given := c.options()
	for _, opt := range requiredOptions[pattern] {
		if !slices.Contains(given, opt) {
			return types.ErrInvalidConfig(pattern, opt, "option %q is required by the %s pattern",
				opt, pattern.OpName())
		}
	}
	return nil
}
