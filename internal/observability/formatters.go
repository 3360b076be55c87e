// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/pair-overlap/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for table mode
type Printer struct {
	out      io.Writer
	maxItems int
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, maxItems: maxItemsToShow}
}

// WithMaxItems sets how many pairs and errors are listed before eliding the rest.
// Non-positive values list everything.
func (p *Printer) WithMaxItems(n int) *Printer {
	p.maxItems = n
	return p
}

func (p *Printer) limit(total int) int {
	if p.maxItems <= 0 {
		return total
	}
	return min(total, p.maxItems)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "...".
// fmt pads by runes too, so box edges stay aligned for non-ASCII text.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width-3]) + "..."
}

// PrintResult outputs the top pair, the ranked pairs and any collected errors.
func (p *Printer) PrintResult(result *types.EngineResult) {
	if result == nil {
		return
	}
	p.PrintTop(result.Top)
	p.PrintPairs(result.Pairs)
	p.PrintErrors(result.Errors)
}

// PrintTop outputs the pair with the longest total overlap and its per-project breakdown.
func (p *Printer) PrintTop(top *types.PairResult) {
	if top == nil {
		p.printBox("LONGEST COLLABORATION", "No overlapping pairs found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Employees:  %s and %s\n", top.EmpA, top.EmpB))
	sb.WriteString(fmt.Sprintf("Total days: %d\n", top.TotalDays))
	sb.WriteString("\n")
	sb.WriteString("Projects:\n")
	for _, proj := range top.Projects {
		sb.WriteString(fmt.Sprintf("  • %-30s %6d days\n", proj.Project, proj.Days))
	}

	p.printBox("LONGEST COLLABORATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPairs outputs the ranked pair list.
func (p *Printer) PrintPairs(pairs []types.PairResult) {
	if len(pairs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total pairs: %d\n\n", len(pairs)))
	sb.WriteString(fmt.Sprintf("%-4s %-12s %-12s %8s %9s\n", "#", "Employee A", "Employee B", "Projects", "Days"))

	count := p.limit(len(pairs))
	for i := 0; i < count; i++ {
		pair := pairs[i]
		sb.WriteString(fmt.Sprintf("%-4d %-12s %-12s %8d %9d\n",
			i+1, pair.EmpA, pair.EmpB, len(pair.Projects), pair.TotalDays))
	}

	if len(pairs) > count {
		sb.WriteString(fmt.Sprintf("... and %d more pairs", len(pairs)-count))
	}

	p.printBox("RANKED PAIRS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintErrors outputs error counts by kind followed by the first messages.
func (p *Printer) PrintErrors(errs []types.EngineError) {
	if len(errs) == 0 {
		return
	}

	var sb strings.Builder
	counts := make(map[types.ErrorKind]int)
	for _, e := range errs {
		counts[e.Kind]++
	}
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		sb.WriteString(fmt.Sprintf("%-14s %d\n", kind+":", counts[types.ErrorKind(kind)]))
	}
	sb.WriteString("\n")

	count := p.limit(len(errs))
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  ✗ %s\n", errs[i].Message))
	}
	if len(errs) > count {
		sb.WriteString(fmt.Sprintf("  ... and %d more errors\n", len(errs)-count))
	}

	p.printBox(fmt.Sprintf("ERRORS (%d)", len(errs)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRows outputs the flat per-project rows as an aligned table without a box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRows(rows []types.ProjectRow) {
	fmt.Fprintf(p.out, "%-12s %-12s %-20s %8s\n", "Employee A", "Employee B", "Project", "Days")
	for _, row := range rows {
		fmt.Fprintf(p.out, "%-12s %-12s %-20s %8d\n", row.EmpA, row.EmpB, row.Project, row.Days)
	}
}
