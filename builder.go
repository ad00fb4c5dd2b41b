package dynshape

import (
	"github.com/gomlx/dynshape/classify"
	"github.com/gomlx/dynshape/pattern"
	"github.com/gomlx/dynshape/tiling"
	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/opctx"
	"github.com/gomlx/dynshape/types/platform"
	"github.com/gomlx/dynshape/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultPlatform is the name of the platform preset used by a Builder if none is configured.
const DefaultPlatform = "ascend910"

// Builder is used to classify one operator instance and generate the tiling cases of its groups.
// See details in New.
type Builder struct {
	name string

	summary map[string]int

	// pattern, if valid, bypasses the resolution of the summary.
	pattern types.Pattern

	resolver pattern.Resolver
	inputs   []shapes.Shape
	config   classify.Config
	opCtx    *opctx.Context
	platform *platform.Platform

	// err holds the first error of the configuration methods, returned by Build.
	err error
}

// New creates a new Builder for the operator with the given name.
//
// Configure the operator with the Builder methods: the summary of its compute graph (or directly its
// pattern), its inputs, its attributes (Config) and optionally its context and the platform. Then call
// Builder.Build to get the Plan: the classified groups and their tiling cases.
//
// Configuration errors are reported by Build.
func New(name string) *Builder {
	return &Builder{
		name:     name,
		resolver: pattern.Default(),
		opCtx:    opctx.New(name),
	}
}

// Name of the operator.
func (b *Builder) Name() string {
	return b.name
}

// WithSummary sets the summary of the operator's compute graph: operation kind name to count, e.g.:
// {"placeholder": 2, "elewise": 1}. It is resolved to a pattern by the Builder's resolver.
func (b *Builder) WithSummary(summary map[string]int) *Builder {
	b.summary = summary
	return b
}

// WithPattern sets the pattern of the operator, bypassing the resolution of the summary.
func (b *Builder) WithPattern(p types.Pattern) *Builder {
	b.pattern = p
	return b
}

// WithResolver sets the resolver of summaries to patterns. The default is pattern.Default().
func (b *Builder) WithResolver(resolver pattern.Resolver) *Builder {
	b.resolver = resolver
	return b
}

// Input adds the descriptors of one input of the operator.
func (b *Builder) Input(shape shapes.Shape) *Builder {
	b.inputs = append(b.inputs, shape)
	return b
}

// RawInput adds one input described by raw dimensions and ranges, see shapes.FromRaw.
func (b *Builder) RawInput(dtype dtypes.DType, dimensions []int, ranges [][2]int) *Builder {
	shape, err := shapes.FromRaw(dtype, dimensions, ranges)
	if err != nil {
		b.setErr(errors.WithMessagef(err, "input #%d of %q", len(b.inputs), b.name))
		return b
	}
	return b.Input(shape)
}

// WithConfig sets the attributes of the operator.
func (b *Builder) WithConfig(cfg classify.Config) *Builder {
	b.config = cfg
	return b
}

// WithContext sets the build context of the operator. The default is an empty context named after the operator.
func (b *Builder) WithContext(opCtx *opctx.Context) *Builder {
	b.opCtx = opCtx
	return b
}

// WithPlatform sets the platform the cases are generated for. The default is the preset DefaultPlatform.
func (b *Builder) WithPlatform(p *platform.Platform) *Builder {
	b.platform = p
	return b
}

// WithPlatformPreset sets the platform from one of the named presets, see platform.PresetNames.
func (b *Builder) WithPlatformPreset(name string) *Builder {
	p, err := platform.Preset(name)
	if err != nil {
		b.setErr(err)
		return b
	}
	return b.WithPlatform(p)
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// resolve returns the configured pattern or resolves the summary.
func (b *Builder) resolve() (types.Pattern, error) {
	if b.pattern != types.PatternInvalid {
		return b.pattern, nil
	}
	if b.summary == nil {
		return types.PatternInvalid, types.ErrUnsupportedPattern("operator %q has neither a pattern nor a summary", b.name)
	}
	s, err := pattern.ParseSummary(b.summary)
	if err != nil {
		return types.PatternInvalid, err
	}
	return b.resolver.Resolve(s)
}

// Build classifies the operator and generates the tiling cases of each of its groups.
//
// Groups without any legal tiling don't fail the build: they are recorded in Plan.Failures and the caller
// decides. All other errors are returned, as a *types.Error whenever the operator is invalid.
func (b *Builder) Build() (plan *Plan, err error) {
	if b.err != nil {
		return nil, b.err
	}
	p := b.platform
	if p == nil {
		p, err = platform.Preset(DefaultPlatform)
		if err != nil {
			return nil, err
		}
	}
	opPattern, err := b.resolve()
	if err != nil {
		return nil, errors.WithMessagef(err, "operator %q", b.name)
	}

	// Invalid values given directly to the shapes package panic: report them as errors.
	var buildErr error
	err = exceptions.TryCatch[error](func() {
		var groups []classify.Group
		groups, buildErr = classify.Classify(opPattern, b.inputs, b.config, b.opCtx)
		if buildErr != nil {
			return
		}
		plan = &Plan{
			Name:     b.name,
			Pattern:  opPattern,
			Platform: p,
			Groups:   groups,
			Cases:    make([][]tiling.Case, len(groups)),
			Failures: make(map[int]error),
		}
		gen := tiling.NewGenerator(p, b.opCtx)
		for ii := range groups {
			cases, genErr := gen.Generate(&groups[ii])
			if genErr != nil {
				if !types.IsKind(genErr, types.KindNoLegalTiling) {
					buildErr = genErr
					return
				}
				klog.V(1).Infof("operator %q group #%d: %v", b.name, ii, genErr)
				plan.Failures[ii] = genErr
				continue
			}
			plan.Cases[ii] = cases
		}
	})
	if err == nil {
		err = buildErr
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "operator %q", b.name)
	}
	return plan, nil
}
