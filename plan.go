package dynshape

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/gomlx/dynshape/classify"
	"github.com/gomlx/dynshape/internal/utils"
	"github.com/gomlx/dynshape/tiling"
	"github.com/gomlx/dynshape/types"
	"github.com/gomlx/dynshape/types/platform"
)

// IndentationStep used by Plan.Write.
const IndentationStep = "  "

// Plan is the result of Builder.Build: the classified groups of an operator and the tiling cases of each group.
// Each (group, case) pair is one compiled kernel.
type Plan struct {
	Name     string
	Pattern  types.Pattern
	Platform *platform.Platform

	Groups []classify.Group

	// Cases of each group, indexed as Groups. Groups that failed have no cases.
	Cases [][]tiling.Case

	// Failures maps the index of a group without any legal tiling to its error (of kind types.KindNoLegalTiling).
	Failures map[int]error
}

// NumKernels returns the number of kernels to compile: the total number of cases.
func (p *Plan) NumKernels() int {
	var n int
	for _, cases := range p.Cases {
		n += len(cases)
	}
	return n
}

// Keys returns the tiling keys of all cases, in order.
func (p *Plan) Keys() []uint32 {
	keys := make([]uint32, 0, p.NumKernels())
	for _, cases := range p.Cases {
		for _, c := range cases {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// KernelName returns the name of the kernel compiled for the given case, e.g.: "my_add_broadcast_3" or
// "my_add_broadcast_const".
func (p *Plan) KernelName(c tiling.Case) string {
	suffix := fmt.Sprintf("%d", c.Key)
	if c.Key == tiling.ConstKey {
		suffix = "const"
	}
	return fmt.Sprintf("%s_%s_%s", NormalizeIdentifier(p.Name), p.Pattern.OpName(), suffix)
}

// Select returns the index of the group whose guard accepts the given runtime dimensions (one slice per input),
// or -1 if none does.
func (p *Plan) Select(runtime [][]int) int {
	return slices.IndexFunc(p.Groups, func(g classify.Group) bool {
		return g.Mode.Kind != types.ModeEmpty && g.Guard.Accepts(runtime)
	})
}

// Write a human-readable description of the plan to the given writer.
func (p *Plan) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}

	w("plan %q (%s) on %s: %d group(s), %d kernel(s), inputs %v\n", p.Name, p.Pattern, p.Platform,
		len(p.Groups), p.NumKernels(), p.DTypes())
	for ii := range p.Groups {
		g := &p.Groups[ii]
		w("%sgroup #%d: %s\n", IndentationStep, ii, g)
		if failure, found := p.Failures[ii]; found {
			w("%s%sno legal tiling: %v\n", IndentationStep, IndentationStep, failure)
			continue
		}
		for _, c := range p.Cases[ii] {
			w("%s%s%s: %s\n", IndentationStep, IndentationStep, p.KernelName(c), c)
		}
	}
	return err
}

// DTypes returns the accelerator toolchain names of the dtypes of the operator inputs.
func (p *Plan) DTypes() []string {
	if len(p.Groups) == 0 {
		return nil
	}
	names := make([]string, len(p.Groups[0].Operands))
	for ii, operand := range p.Groups[0].Operands {
		names[ii] = utils.DTypeToAccel(operand.DType)
	}
	return names
}

// String implements fmt.Stringer.
func (p *Plan) String() string {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return fmt.Sprintf("Plan(%q): failed to write: %v", p.Name, err)
	}
	return buf.String()
}
