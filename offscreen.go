package properlist

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

type offscreenCell struct {
	primary   rune
	combining []rune
	style     tcell.Style
	// gen marks the cell as written in the current pass.
	gen uint32
}

// offscreen is a cell buffer primitives can draw into instead of the real
// screen. Calls it does not override go to the embedded screen.
//
// Cells are generation-tagged so a new pass starts without clearing the
// backing slice.
type offscreen struct {
	tcell.Screen

	width, height int
	gen           uint32
	cells         []offscreenCell
}

func newOffscreen(screen tcell.Screen) *offscreen {
	return &offscreen{Screen: screen}
}

// begin starts a new pass over a buffer of the given size.
func (o *offscreen) begin(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if o.width != width || o.height != height {
		o.width, o.height = width, height
		o.cells = make([]offscreenCell, width*height)
		o.gen = 0
	}
	o.gen++
	if o.gen == 0 {
		for i := range o.cells {
			o.cells[i].gen = 0
		}
		o.gen = 1
	}
}

func (o *offscreen) Size() (int, int) {
	return o.width, o.height
}

func (o *offscreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= o.width || y >= o.height {
		return
	}
	c := &o.cells[y*o.width+x]
	c.primary = primary
	c.combining = append(c.combining[:0], combining...)
	c.style = style
	c.gen = o.gen
}

func (o *offscreen) GetContent(x, y int) (primary rune, combining []rune, style tcell.Style, width int) {
	c, ok := o.cell(x, y)
	if !ok {
		return ' ', nil, tcell.StyleDefault, 1
	}
	width = uniseg.StringWidth(string(c.primary) + string(c.combining))
	return c.primary, c.combining, c.style, max(width, 1)
}

func (o *offscreen) Clear() {
	o.begin(o.width, o.height)
}

func (o *offscreen) Fill(r rune, style tcell.Style) {
	for y := 0; y < o.height; y++ {
		for x := 0; x < o.width; x++ {
			o.SetContent(x, y, r, nil, style)
		}
	}
}

func (o *offscreen) ShowCursor(x, y int) {}

func (o *offscreen) HideCursor() {}

func (o *offscreen) Show() {}

func (o *offscreen) cell(x, y int) (offscreenCell, bool) {
	if x < 0 || y < 0 || x >= o.width || y >= o.height {
		return offscreenCell{}, false
	}
	c := o.cells[y*o.width+x]
	if c.gen != o.gen {
		return offscreenCell{}, false
	}
	return c, true
}
