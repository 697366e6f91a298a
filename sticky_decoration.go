package properlist

import (
	"reflect"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// StickyHeaderDecoration draws the active sticky header over the top edge of
// a render surface.
type StickyHeaderDecoration struct {
	surface    RenderSurface
	controller *StickyHeaderController

	buffer *offscreen
	state  StickyState
}

// NewStickyHeaderDecoration returns a decoration for surface. It is not
// registered; see [AttachStickyHeaderBehavior].
func NewStickyHeaderDecoration(surface RenderSurface, fade bool, predicate func(position int) bool) *StickyHeaderDecoration {
	return &StickyHeaderDecoration{
		surface:    surface,
		controller: NewStickyHeaderController(surface, fade, predicate),
		state:      idleState,
	}
}

// AttachStickyHeaderBehavior registers a sticky header decoration on surface
// unless the surface already has one. It returns the registered decoration,
// or nil if nothing was registered. A nil surface, including a nil *List, is
// a no-op.
func AttachStickyHeaderBehavior(surface RenderSurface, fade bool, predicate func(position int) bool) *StickyHeaderDecoration {
	if isNil(surface) || surface.HasDecoration() {
		return nil
	}
	decoration := NewStickyHeaderDecoration(surface, fade, predicate)
	surface.AddDecoration(decoration)
	return decoration
}

// Controller returns the controller deciding the overlay's position.
func (d *StickyHeaderDecoration) Controller() *StickyHeaderController {
	return d.controller
}

// State returns the state evaluated during the last draw.
func (d *StickyHeaderDecoration) State() StickyState {
	return d.state
}

// DrawOver draws the overlay into the given rectangle.
func (d *StickyHeaderDecoration) DrawOver(screen tcell.Screen, x, y, width, height int) {
	d.state = d.controller.Evaluate()
	state := d.state
	if state.Mode == StickyIdle || width <= 0 || height <= 0 {
		return
	}

	if d.buffer == nil {
		d.buffer = newOffscreen(screen)
	}
	d.buffer.Screen = screen
	d.buffer.begin(width, state.Height)
	d.surface.DrawRow(d.buffer, state.Active, 0, 0, width, state.Height)

	alpha := state.OutgoingOpacity()
	background := tcell.StyleDefault.Background(Styles.StickyHeaderBackgroundColor)
	for row := 0; row < state.Height; row++ {
		targetY := y + state.Offset + row
		if targetY < y || targetY >= y+height {
			continue
		}
		for column := 0; column < width; column++ {
			targetX := x + column
			primary, combining, style := ' ', []rune(nil), background
			if c, ok := d.buffer.cell(column, row); ok {
				primary, combining, style = c.primary, c.combining, c.style
			}
			if alpha < 1 {
				under, underCombining, underStyle, _ := screen.GetContent(targetX, targetY)
				if alpha < 0.5 {
					primary, combining = under, underCombining
				}
				style = blendStyles(underStyle, style, alpha)
			}
			screen.SetContent(targetX, targetY, primary, combining, style)
		}
	}
}

// blendStyles mixes the colors of two styles; t = 0 yields from, t = 1 yields
// to. Attributes are taken from the style with more weight.
func blendStyles(from, to tcell.Style, t float64) tcell.Style {
	fromFg, fromBg, fromAttr := from.Decompose()
	toFg, toBg, toAttr := to.Decompose()
	attr := toAttr
	if t < 0.5 {
		attr = fromAttr
	}
	return tcell.StyleDefault.
		Foreground(blendColors(fromFg, toFg, t, Styles.PrimaryTextColor)).
		Background(blendColors(fromBg, toBg, t, Styles.PrimitiveBackgroundColor)).
		Attributes(attr)
}

func blendColors(from, to tcell.Color, t float64, fallback tcell.Color) tcell.Color {
	a := toColorful(from, fallback)
	b := toColorful(to, fallback)
	r, g, bl := a.BlendRgb(b, t).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}

func toColorful(c tcell.Color, fallback tcell.Color) colorful.Color {
	if c == tcell.ColorDefault || !c.Valid() {
		c = fallback
	}
	r, g, b := c.RGB()
	if r < 0 {
		r, g, b = 0, 0, 0
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// isNil reports whether v is nil or a nil pointer stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
