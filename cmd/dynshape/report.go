package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/dynshape"
	"github.com/gomlx/dynshape/classify"
	"github.com/gomlx/dynshape/tiling"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	redRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}).
			Bold(true).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

// tableWithReds is a table where some rows are highlighted in red.
type tableWithReds struct {
	Table *lgtable.Table
	Count int
	Reds  map[int]bool
}

func (t *tableWithReds) Row(isRed bool, row ...string) {
	if isRed {
		t.Reds[t.Count] = true
	}
	t.Table.Row(row...)
	t.Count++
}

func newTable(headers ...string) *tableWithReds {
	t := &tableWithReds{Reds: make(map[int]bool)}
	t.Table = lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			switch {
			case row < 0:
				return headerRowStyle
			case t.Reds[row]:
				s = redRowStyle
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			if col == 0 {
				return s.Align(lipgloss.Right)
			}
			return s.Align(lipgloss.Left)
		})
	if len(headers) > 0 {
		t.Table.Headers(headers...)
	}
	return t
}

// report prints the summary, groups and cases tables of the plan.
func report(plan *dynshape.Plan) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("Operator %q", plan.Name)))
	summary := newTable()
	summary.Row(false, "pattern", plan.Pattern.String())
	summary.Row(false, "dtypes", strings.Join(plan.DTypes(), ", "))
	summary.Row(false, "platform", plan.Platform.Name())
	summary.Row(false, "cores", humanize.Comma(int64(plan.Platform.CoreNum())))
	summary.Row(false, "unified buffer", humanize.IBytes(uint64(plan.Platform.UBSize())))
	summary.Row(false, "# groups", humanize.Comma(int64(len(plan.Groups))))
	summary.Row(len(plan.Failures) > 0, "# failed groups", humanize.Comma(int64(len(plan.Failures))))
	summary.Row(false, "# kernels", humanize.Comma(int64(plan.NumKernels())))
	fmt.Println(summary.Table.Render())

	groups := newTable("#", "Mode", "Operands", "Roles", "Guard")
	for ii := range plan.Groups {
		g := &plan.Groups[ii]
		_, failed := plan.Failures[ii]
		groups.Row(failed, fmt.Sprintf("%d", ii), g.Mode.String(), operandsString(g), rolesString(g),
			g.Guard.String())
	}
	fmt.Println(groups.Table.Render())

	cases := newTable("Kernel", "Group", "Strategy", "Block", "UB", "Extra")
	for ii := range plan.Groups {
		if failure, found := plan.Failures[ii]; found {
			cases.Row(true, "-", fmt.Sprintf("%d", ii), "-", "-", "-", failure.Error())
			continue
		}
		for _, c := range plan.Cases[ii] {
			cases.Row(false, plan.KernelName(c), fmt.Sprintf("%d", ii), c.Strategy.String(),
				axisString(c.BlockAxis), axisString(c.UBAxis), extraString(c.Extra))
		}
	}
	fmt.Println(cases.Table.Render())
}

// reportCheck prints the group and kernels selected for the runtime dimensions.
func reportCheck(plan *dynshape.Plan, runtime [][]int) {
	idx := plan.Select(runtime)
	if idx < 0 {
		fmt.Printf("Runtime dimensions %v: no group accepts them\n", runtime)
		return
	}
	fmt.Printf("Runtime dimensions %v: group #%d (%s)\n", runtime, idx, plan.Groups[idx].Mode)
	for _, c := range plan.Cases[idx] {
		fmt.Printf("  %s\n", plan.KernelName(c))
	}
}

func operandsString(g *classify.Group) string {
	parts := make([]string, len(g.Operands))
	for ii, op := range g.Operands {
		parts[ii] = op.String()
	}
	return strings.Join(parts, " ")
}

func rolesString(g *classify.Group) string {
	parts := make([]string, len(g.Roles))
	for ii, roles := range g.Roles {
		parts[ii] = fmt.Sprintf("%v", roles)
	}
	return strings.Join(parts, " ")
}

func axisString(axis int) string {
	if axis == tiling.NoAxis {
		return "-"
	}
	return fmt.Sprintf("%d", axis)
}

func extraString(extra tiling.Extra) string {
	var parts []string
	if extra.BlockDim > 0 {
		parts = append(parts, fmt.Sprintf("block_factor=%s cores=%d ub_factor=%s",
			humanize.Comma(int64(extra.BlockFactor)), extra.BlockDim, humanize.Comma(int64(extra.UBFactor))))
	}
	if extra.Atomic {
		parts = append(parts, "atomic")
	}
	if extra.UBAlign > 1 {
		parts = append(parts, fmt.Sprintf("ub_align=%d", extra.UBAlign))
	}
	return strings.Join(parts, " ")
}
