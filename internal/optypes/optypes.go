// Package optypes defines OpKind, the structural tags of the compute-graph operations counted in a
// pattern summary.
package optypes

import (
	"github.com/gomlx/dynshape/internal/utils"
)

// OpKind is an enum of the operation categories the tensor-expression builder reports for an operator.
//
// Only the category matters for pattern matching: all elementwise operations (add, mul, exp, ...) are
// reported as Elementwise, all reductions (sum, max, ...) as Reduce and so on.
type OpKind int

//go:generate go tool enumer -type=OpKind optypes.go

const (
	Invalid OpKind = iota
	Placeholder
	Elementwise
	Broadcast
	Reduce
	Cast
	Transdata
	Transpose
	Gather
	Slice
	Concat
	Any

	// Last should always be kept the last, it is used as a counter/marker for the number of kinds.
	Last
)

var (
	// summaryNameMappings maps OpKind to the name used by the tensor-expression builder in its summaries,
	// when the default "snake case" doesn't work.
	summaryNameMappings = map[OpKind]string{
		Elementwise: "elewise",
		Transdata:   "transdata",
	}
)

// SummaryName returns the name of the kind as reported by the tensor-expression builder, e.g.: "elewise",
// "broadcast", "reduce".
func (k OpKind) SummaryName() string {
	name, ok := summaryNameMappings[k]
	if !ok {
		name = utils.ToSnakeCase(k.String())
	}
	return name
}

// FromSummaryName is the inverse of OpKind.SummaryName. It returns Invalid if the name is not known.
func FromSummaryName(name string) OpKind {
	for k := Invalid + 1; k < Last; k++ {
		if k.SummaryName() == name {
			return k
		}
	}
	if k, err := OpKindString(name); err == nil && k != Last {
		return k
	}
	return Invalid
}
