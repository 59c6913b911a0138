// Package tabulate renders the two-column (type, text) token table
// cmd/pyline prints under -debug-tokens.
package tabulate

import (
	"fmt"
	"strings"
)

// String renders rows as a left-aligned table, each column padded to
// its widest cell plus margin bytes. rows must all share the same
// column count.
//
// Column width is measured in bytes, not display cells — wide-character
// rendering is out of scope for this module.
func String(rows [][]string, margin int) string {
	if len(rows) == 0 {
		return ""
	}
	ncols := len(rows[0])
	width := make([]int, ncols)
	for _, row := range rows {
		if len(row) != ncols {
			panic(fmt.Sprintf("tabulate: row has %d columns, want %d", len(row), ncols))
		}
		for j, cell := range row {
			if w := len(cell) + margin; w > width[j] {
				width[j] = w
			}
		}
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for j, cell := range row {
			fmt.Fprintf(&b, "%-*s", width[j], cell)
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
