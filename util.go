package properlist

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// PrintStyled prints text into the single row box (x, y, maxWidth), using
// style including its background. It returns the number of bytes of text
// printed and the number of cells they took.
func PrintStyled(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	return printWithStyle(screen, text, x, y, maxWidth, alignment, style, false)
}

// printWithStyle prints text into (x, y, maxWidth). Centered and right
// aligned text that does not fit loses clusters on the left. With
// keepBackground, the background already on screen is kept.
func printWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style, keepBackground bool) (length, width int) {
	screenWidth, screenHeight := screen.Size()
	if maxWidth <= 0 || text == "" || y < 0 || y >= screenHeight {
		return 0, 0
	}

	textWidth := uniseg.StringWidth(text)
	switch alignment {
	case AlignmentRight:
		text, textWidth = dropCells(text, textWidth-maxWidth)
		x += maxWidth - textWidth
	case AlignmentCenter:
		text, textWidth = dropCells(text, (textWidth-maxWidth)/2)
		if textWidth < maxWidth {
			x += maxWidth/2 - textWidth/2
		}
	}

	right := min(x+maxWidth, screenWidth)
	state := -1
	for text != "" && x < right {
		var (
			cluster    string
			boundaries int
		)
		cluster, text, boundaries, state = uniseg.StepString(text, state)
		w := boundaries >> uniseg.ShiftWidth
		if x+w > right {
			break
		}

		if w > 0 {
			cellStyle := style
			if keepBackground {
				_, _, existing, _ := screen.GetContent(x, y)
				_, background, _ := existing.Decompose()
				cellStyle = cellStyle.Background(background)
			}
			// Trailing cells of wide clusters first, so the cluster itself
			// is set last.
			for offset := w - 1; offset > 0; offset-- {
				screen.SetContent(x+offset, y, ' ', nil, cellStyle)
			}
			runes := []rune(cluster)
			screen.SetContent(x, y, runes[0], runes[1:], cellStyle)
		}

		x += w
		length += len(cluster)
		width += w
	}
	return length, width
}

// dropCells removes clusters from the start of text until at least cells
// cells are gone and returns the rest with its width.
func dropCells(text string, cells int) (string, int) {
	state := -1
	for cells > 0 && text != "" {
		var boundaries int
		_, text, boundaries, state = uniseg.StepString(text, state)
		cells -= boundaries >> uniseg.ShiftWidth
	}
	return text, uniseg.StringWidth(text)
}
