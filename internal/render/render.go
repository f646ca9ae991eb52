// Package render formats worker records as a fixed-width text table.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/roach88/workers/internal/worker"
)

// EmptyMessage is written instead of a table when there are no records.
const EmptyMessage = "List is empty."

// column is one table column: its header and fixed width in display cells.
type column struct {
	header string
	width  int
}

var workerColumns = []column{
	{"No", 4},
	{"Surname", 30},
	{"Name", 20},
	{"Zodiac", 15},
	{"Year", 20},
}

var titleColumns = []column{
	{"Id", 4},
	{"Name", 20},
	{"Workers", 10},
}

// Table writes workers to w as a bordered table, numbering rows from 1.
// An empty slice produces EmptyMessage on a line of its own.
func Table(w io.Writer, workers []worker.Worker) error {
	rows := make([][]string, len(workers))
	for i, wk := range workers {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			wk.Surname,
			wk.Name,
			wk.Zodiac,
			strconv.Itoa(wk.Year),
		}
	}
	return writeTable(w, workerColumns, rows)
}

// Titles writes name lookup entries with their reference counts.
func Titles(w io.Writer, entries []worker.LookupEntry) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.FormatInt(e.ID, 10),
			e.Title,
			strconv.Itoa(e.Refs),
		}
	}
	return writeTable(w, titleColumns, rows)
}

func writeTable(w io.Writer, cols []column, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	border := borderLine(cols)

	var b strings.Builder
	b.WriteString(border)

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	b.WriteString(row(cols, headers))
	b.WriteString(border)

	for _, r := range rows {
		b.WriteString(row(cols, r))
	}
	b.WriteString(border)

	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the table Table would write.
func String(workers []worker.Worker) string {
	var b strings.Builder
	_ = Table(&b, workers) // strings.Builder never fails
	return b.String()
}

// borderLine returns "+-----+------ ... -+\n".
func borderLine(cols []column) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = strings.Repeat("-", c.width)
	}
	return "+-" + strings.Join(parts, "-+-") + "-+\n"
}

// row returns one "| a | b | ... |" line with every cell centered.
func row(cols []column, cells []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = center(cells[i], c.width)
	}
	return "| " + strings.Join(parts, " | ") + " |\n"
}

// center pads s to n display cells, putting the odd cell on the right.
// Values wider than n are left as they are.
func center(s string, n int) string {
	gap := n - displayWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// displayWidth counts terminal cells: East Asian wide and fullwidth runes
// take two, combining marks none, everything else one. s is measured in
// NFC so decomposed input lines up with its composed spelling.
func displayWidth(s string) int {
	n := 0
	for _, r := range norm.NFC.String(s) {
		switch {
		case unicode.In(r, unicode.Mn, unicode.Me):
		case isWide(r):
			n += 2
		default:
			n++
		}
	}
	return n
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}
