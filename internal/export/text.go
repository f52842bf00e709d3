package export

import (
	"fmt"
	"io"
	"strings"

	"pegboard/internal/board"
	"pegboard/internal/errors"
)

// EmptyCell marks a free hole in the text rendering.
const EmptyCell = '.'

const markers = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Marker returns the character used for the i-th item in placement order.
func Marker(i int) rune {
	if i < 0 || i >= len(markers) {
		return '#'
	}
	return rune(markers[i])
}

// Lines renders the board as one row of characters per grid row, followed by
// a blank line and a legend with one line per item. Selected items are
// flagged with '*' in the legend.
func Lines(s board.State) []string {
	rows := make([][]rune, s.Grid.Height)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(string(EmptyCell), s.Grid.Width))
	}
	for i, it := range s.Items {
		m := Marker(i)
		for _, p := range it.Cells() {
			if s.Grid.Contains(p) {
				rows[p.Y][p.X] = m
			}
		}
	}

	lines := make([]string, 0, len(rows)+len(s.Items)+1)
	for _, r := range rows {
		lines = append(lines, string(r))
	}
	if len(s.Items) == 0 {
		return lines
	}
	lines = append(lines, "")
	for i, it := range s.Items {
		sel := " "
		if s.IsSelected(it.ID) {
			sel = "*"
		}
		lines = append(lines, fmt.Sprintf("%c%s %s (%s) at %s", Marker(i), sel, it.Name, it.Type, it.Position))
	}
	return lines
}

// Text writes Lines to w.
func Text(w io.Writer, s board.State) error {
	for _, line := range Lines(s) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.Wrap(errors.ErrCodeExport, err, "write board text")
		}
	}
	return nil
}

// String returns the text rendering as a single string.
func String(s board.State) string {
	return strings.Join(Lines(s), "\n") + "\n"
}
