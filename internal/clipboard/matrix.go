// Package clipboard bridges the grid models to the platform clipboard and
// turns raw key events into focus, selection and data mutations.
package clipboard

import "strings"

// Split parses clipboard text into a clip matrix: rows separated by
// newline, cells by tab. The format matches what spreadsheet applications
// produce; embedded tabs or newlines inside a cell are not escaped, which
// is a known limitation of the interchange format. An empty string yields
// a one-row, one-column matrix holding an empty cell.
func Split(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	matrix := make([][]string, len(lines))
	for i, line := range lines {
		matrix[i] = strings.Split(line, "\t")
	}
	return matrix
}

// Join renders a clip matrix back into clipboard text.
func Join(matrix [][]string) string {
	rows := make([]string, len(matrix))
	for i, cells := range matrix {
		rows[i] = strings.Join(cells, "\t")
	}
	return strings.Join(rows, "\n")
}
