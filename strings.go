package properlist

import (
	"strings"

	"github.com/rivo/uniseg"
)

// StringWidth returns the number of cells text occupies on screen.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// WordWrap breaks text into lines no wider than width. Lines are broken at
// the last break opportunity that fits, words wider than width are split,
// and line breaks in text are kept. Whitespace at a wrap point is dropped.
func WordWrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var (
		lines      []string
		start, end int // text[start:end] is the current line
		lineWidth  int
		breakAt    = -1 // last break opportunity in the line
		breakWidth int
		state      = -1
	)
	for rest := text; rest != ""; {
		var (
			cluster    string
			boundaries int
		)
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)
		w := boundaries >> uniseg.ShiftWidth

		// Whitespace may hang past the edge; it is trimmed at the break.
		if lineWidth+w > width && end > start && strings.TrimSpace(cluster) != "" {
			cut, remaining := end, 0
			if breakAt > start {
				cut, remaining = breakAt, lineWidth-breakWidth
			}
			lines = append(lines, strings.TrimRight(text[start:cut], " \t"))
			start, lineWidth, breakAt = cut, remaining, -1
		}

		end += len(cluster)
		lineWidth += w

		switch boundaries & uniseg.MaskLine {
		case uniseg.LineMustBreak:
			if rest != "" {
				lines = append(lines, strings.TrimRight(text[start:end], "\r\n"))
				start, lineWidth, breakAt = end, 0, -1
			}
		case uniseg.LineCanBreak:
			breakAt, breakWidth = end, lineWidth
		}
	}
	return append(lines, strings.TrimRight(text[start:], "\r\n"))
}
