package properlist

import "github.com/gdamore/tcell/v2"

// subcell is the number of thumb steps per cell.
const subcell = 8

// GlyphSet defines the track and fractional thumb glyphs of a [ScrollBar].
// Index i of a thumb array covers i+1 eighths of a cell.
type GlyphSet struct {
	Track      string
	ThumbLower [subcell]string
	ThumbUpper [subcell]string
}

// MinimalGlyphSet uses a blank track and standard block elements only.
func MinimalGlyphSet() GlyphSet {
	g := UnicodeGlyphSet()
	g.Track = " "
	return g
}

// UnicodeGlyphSet draws a line track with standard block elements.
func UnicodeGlyphSet() GlyphSet {
	return GlyphSet{
		Track:      "│",
		ThumbLower: [subcell]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbUpper: [subcell]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"},
	}
}

// LegacyComputingGlyphSet uses the legacy computing block for full 1/8
// precision at the upper thumb edge. Not every terminal font has them.
func LegacyComputingGlyphSet() GlyphSet {
	g := UnicodeGlyphSet()
	g.ThumbUpper = [subcell]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"}
	return g
}

// ScrollBar renders a vertical scroll bar. A [List] draws one along its right
// edge when enabled, with rows as the logical unit.
type ScrollBar struct {
	*Box

	autoHide    bool
	contentLen  int
	viewportLen int
	offset      int

	trackStyle tcell.Style
	thumbStyle tcell.Style

	glyphSet GlyphSet
}

// NewScrollBar returns a new vertical scroll bar.
func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:        NewBox(),
		autoHide:   true,
		trackStyle: tcell.StyleDefault.Dim(true),
		thumbStyle: tcell.StyleDefault.Foreground(Styles.GraphicsColor),
		glyphSet:   MinimalGlyphSet(),
	}
}

// SetLengths sets the content and viewport lengths.
func (s *ScrollBar) SetLengths(contentLen, viewportLen int) *ScrollBar {
	s.contentLen = max(contentLen, 0)
	s.viewportLen = max(viewportLen, 0)
	return s
}

// SetOffset sets the logical offset of the viewport into the content.
func (s *ScrollBar) SetOffset(offset int) *ScrollBar {
	s.offset = max(offset, 0)
	return s
}

func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	s.glyphSet = g
	return s
}

// SetAutoHide controls whether the scroll bar is hidden when there is nothing
// to scroll.
func (s *ScrollBar) SetAutoHide(autoHide bool) *ScrollBar {
	s.autoHide = autoHide
	return s
}

func (s *ScrollBar) SetThumbStyle(style tcell.Style) *ScrollBar {
	s.thumbStyle = style
	return s
}

func (s *ScrollBar) SetTrackStyle(style tcell.Style) *ScrollBar {
	s.trackStyle = style
	return s
}

// scrollMetrics is the scroll bar geometry in subcell units.
type scrollMetrics struct {
	trackCells int
	trackLen   int
	thumbLen   int
	thumbStart int
}

func computeScrollMetrics(trackCells int, contentLen int, viewportLen int, offset int) scrollMetrics {
	trackLen := trackCells * subcell
	if trackLen == 0 {
		return scrollMetrics{}
	}

	contentLen = max(contentLen, 1)
	viewportLen = min(max(viewportLen, 1), contentLen)
	maxOffset := max(contentLen-viewportLen, 0)
	offset = min(max(offset, 0), maxOffset)

	if maxOffset == 0 {
		return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: trackLen}
	}

	// The thumb stays proportional to viewport/content and moves in subcell
	// steps.
	thumbLen := min(max((trackLen*viewportLen)/contentLen, subcell), trackLen)
	thumbTravel := max(trackLen-thumbLen, 0)
	thumbStart := (thumbTravel * offset) / maxOffset
	return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: thumbLen, thumbStart: thumbStart}
}

// cellFill returns the thumb coverage of a cell as a cell-local start and
// length in subcells.
func cellFill(m scrollMetrics, cellIndex int) (start int, fillLen int) {
	if m.thumbLen == 0 {
		return 0, 0
	}
	cellStart := cellIndex * subcell
	start = max(m.thumbStart, cellStart)
	end := min(m.thumbStart+m.thumbLen, cellStart+subcell)
	if end <= start {
		return 0, 0
	}
	return start - cellStart, end - start
}

func (s *ScrollBar) glyph(start, fillLen int) (string, tcell.Style) {
	switch {
	case fillLen <= 0:
		return s.glyphSet.Track, s.trackStyle
	case fillLen >= subcell:
		return s.glyphSet.ThumbLower[subcell-1], s.thumbStyle
	case start == 0:
		return s.glyphSet.ThumbUpper[fillLen-1], s.thumbStyle
	default:
		return s.glyphSet.ThumbLower[fillLen-1], s.thumbStyle
	}
}

// Draw draws the scroll bar.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	x, y, _, height := s.GetInnerRect()
	if height <= 0 || s.contentLen <= 0 {
		return
	}
	viewportLen := s.viewportLen
	if viewportLen == 0 {
		viewportLen = height
	}
	if s.autoHide && s.contentLen <= viewportLen {
		return
	}

	m := computeScrollMetrics(height, s.contentLen, viewportLen, s.offset)
	for cell := 0; cell < m.trackCells; cell++ {
		glyph, style := s.glyph(cellFill(m, cell))
		runes := []rune(glyph)
		if len(runes) == 0 {
			runes = []rune{' '}
		}
		screen.SetContent(x, y+cell, runes[0], runes[1:], style)
	}
}

var _ Primitive = &ScrollBar{}
