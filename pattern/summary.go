package pattern

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gomlx/dynshape/internal/optypes"
	"github.com/gomlx/dynshape/types"
)

// Summary is the structural summary of an operator's compute graph: the number of occurrences of each
// kind of operation.
//
// It is built by the tensor-expression builder; see ParseSummary.
type Summary map[optypes.OpKind]int

// ParseSummary converts a summary keyed by the operation kind names reported by the tensor-expression
// builder (e.g.: "placeholder", "elewise", "broadcast", "reduce") to a Summary.
//
// Negative counts and unknown names are errors of kind types.KindUnsupportedPattern; zero counts are dropped.
func ParseSummary(counts map[string]int) (Summary, error) {
	s := make(Summary, len(counts))
	for name, count := range counts {
		kind := optypes.FromSummaryName(strings.ToLower(name))
		if kind == optypes.Invalid {
			return nil, types.ErrUnsupportedPattern("unknown operation kind %q in compute graph summary", name)
		}
		if count < 0 {
			return nil, types.ErrUnsupportedPattern("negative count %d for operation kind %q", count, name)
		}
		if count > 0 {
			s[kind] += count
		}
	}
	return s, nil
}

// Count returns the number of occurrences of kind.
func (s Summary) Count(kind optypes.OpKind) int {
	return s[kind]
}

// Has returns whether there is at least one occurrence of kind.
func (s Summary) Has(kind optypes.OpKind) bool {
	return s[kind] > 0
}

// Key returns a canonical representation of the summary, e.g.: "placeholder=2,elewise=1".
// Summaries with the same non-zero counts have the same key.
func (s Summary) Key() string {
	parts := make([]string, 0, len(s))
	for _, kind := range slices.Sorted(maps.Keys(s)) {
		if s[kind] <= 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", kind.SummaryName(), s[kind]))
	}
	return strings.Join(parts, ",")
}

// String implements fmt.Stringer.
func (s Summary) String() string {
	return "{" + s.Key() + "}"
}

// onlyKinds returns whether all the kinds present in the summary are in the allowed list.
func (s Summary) onlyKinds(allowed ...optypes.OpKind) bool {
	for kind, count := range s {
		if count > 0 && !slices.Contains(allowed, kind) {
			return false
		}
	}
	return true
}
