package display

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	defaultColumnsRowLength = DefaultWidth
	defaultColumnsRowCount  = 5
)

// Columns lays out a numbered list, filling columns top to bottom and then
// left to right. Empty rows and trailing spaces are dropped.
func Columns(items []string) []string {
	if len(items) == 0 {
		return nil
	}

	colWidth := 1
	for _, v := range items {
		l := utf8.RuneCountInString(v) + 7 // number and spacing: "nn. <val>  "
		if l > colWidth {
			colWidth = l
		}
	}

	// Use more rows than the default if the columns don't fit the width.
	numCols := max(defaultColumnsRowLength/colWidth, 1)
	numRows := (len(items) + numCols - 1) / numCols
	if numRows < defaultColumnsRowCount {
		numRows = min(defaultColumnsRowCount, len(items))
	}

	rows := make([]string, numRows)
	for i, v := range items {
		pad := colWidth - 5 - utf8.RuneCountInString(v)
		rows[i%numRows] += fmt.Sprintf("%2d. %s%*s  ", i+1, v, pad, "")
	}

	out := rows[:0]
	for _, r := range rows {
		if r != "" {
			out = append(out, strings.TrimRight(r, " "))
		}
	}
	return out
}
