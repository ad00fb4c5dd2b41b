// Package pattern recognizes the structural pattern of an operator's compute graph.
//
// A Registry is an ordered, immutable list of Parser: the first one whose Match accepts the Summary
// defines the pattern. The Default registry orders the parsers from the most specific to the most
// generic pattern.
package pattern

import (
	"github.com/gomlx/dynshape/internal/optypes"
	"github.com/gomlx/dynshape/types"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Parser recognizes one pattern. Match must be a pure function of the summary.
type Parser interface {
	Pattern() types.Pattern
	Match(s Summary) bool
}

// Resolver resolves a summary to its pattern. It is implemented by *Registry and *CachedRegistry.
type Resolver interface {
	Resolve(s Summary) (types.Pattern, error)
}

type funcParser struct {
	pattern types.Pattern
	match   func(s Summary) bool
}

func (p funcParser) Pattern() types.Pattern { return p.pattern }
func (p funcParser) Match(s Summary) bool   { return p.match(s) }

// NewParser returns a Parser for pattern that uses the given match function.
func NewParser(pattern types.Pattern, match func(s Summary) bool) Parser {
	return funcParser{pattern: pattern, match: match}
}

// Parsers of the default registry, in priority order.
var (
	TransdataParser = NewParser(types.PatternTransdata, func(s Summary) bool {
		return s.Has(optypes.Transdata)
	})
	TransposeParser = NewParser(types.PatternTranspose, func(s Summary) bool {
		return s.Has(optypes.Transpose)
	})
	GatherParser = NewParser(types.PatternGather, func(s Summary) bool {
		return s.Has(optypes.Gather)
	})
	ConcatParser = NewParser(types.PatternConcat, func(s Summary) bool {
		return s.Has(optypes.Concat)
	})
	SliceParser = NewParser(types.PatternSlice, func(s Summary) bool {
		return s.Has(optypes.Slice)
	})
	TupleReduceParser = NewParser(types.PatternTupleReduce, func(s Summary) bool {
		return s.Count(optypes.Reduce) > 1
	})
	ReduceParser = NewParser(types.PatternReduce, func(s Summary) bool {
		return s.Count(optypes.Reduce) == 1
	})

	// BroadcastParser owns graphs with broadcasts and no reduction: mixed broadcast and reduce graphs
	// belong to ReduceParser.
	BroadcastParser = NewParser(types.PatternBroadcast, func(s Summary) bool {
		return s.Has(optypes.Broadcast) && !s.Has(optypes.Reduce)
	})

	// ElementwiseParser is the fallback for graphs made only of elementwise operations and casts.
	ElementwiseParser = NewParser(types.PatternElementwise, func(s Summary) bool {
		return (s.Has(optypes.Elementwise) || s.Has(optypes.Cast)) &&
			s.onlyKinds(optypes.Placeholder, optypes.Elementwise, optypes.Cast)
	})
)

// Registry is an ordered list of parsers. It is immutable and safe for concurrent use.
type Registry struct {
	parsers []Parser
}

// New returns a registry that tries the given parsers in order.
func New(parsers ...Parser) (*Registry, error) {
	if len(parsers) == 0 {
		return nil, errors.New("pattern registry requires at least one parser")
	}
	seen := make(map[types.Pattern]int, len(parsers))
	for ii, p := range parsers {
		if p == nil {
			return nil, errors.Errorf("parser #%d is nil", ii)
		}
		if prev, found := seen[p.Pattern()]; found {
			return nil, errors.Errorf("parsers #%d and #%d both recognize pattern %s", prev, ii, p.Pattern())
		}
		seen[p.Pattern()] = ii
	}
	return &Registry{parsers: append([]Parser(nil), parsers...)}, nil
}

var defaultRegistry = func() *Registry {
	r, err := New(TransdataParser, TransposeParser, GatherParser, ConcatParser, SliceParser,
		TupleReduceParser, ReduceParser, BroadcastParser, ElementwiseParser)
	if err != nil {
		panic(err)
	}
	return r
}()

// Default returns the registry with all the patterns, most specific first:
// Transdata, Transpose, Gather, Concat, Slice, TupleReduce, Reduce, Broadcast, Elementwise.
func Default() *Registry {
	return defaultRegistry
}

// Patterns returns the patterns of the registry, in priority order.
func (r *Registry) Patterns() []types.Pattern {
	patterns := make([]types.Pattern, len(r.parsers))
	for ii, p := range r.parsers {
		patterns[ii] = p.Pattern()
	}
	return patterns
}

// Resolve returns the pattern of the first parser that matches the summary.
// It returns an error of kind types.KindUnsupportedPattern if none matches.
func (r *Registry) Resolve(s Summary) (types.Pattern, error) {
	for _, p := range r.parsers {
		if p.Match(s) {
			if klog.V(2).Enabled() {
				klog.Infof("pattern: summary %s resolved to %s", s, p.Pattern())
			}
			return p.Pattern(), nil
		}
	}
	return types.PatternInvalid, types.ErrUnsupportedPattern("no pattern matches compute graph summary %s", s)
}
