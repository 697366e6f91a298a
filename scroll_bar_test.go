package properlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeScrollMetrics(t *testing.T) {
	tests := []struct {
		name                             string
		track, content, viewport, offset int
		want                             scrollMetrics
	}{
		{name: "no track", track: 0, content: 10, viewport: 5},
		{name: "fits", track: 4, content: 3, viewport: 4, want: scrollMetrics{trackCells: 4, trackLen: 32, thumbLen: 32}},
		{name: "half at start", track: 4, content: 8, viewport: 4, want: scrollMetrics{trackCells: 4, trackLen: 32, thumbLen: 16}},
		{name: "half at end", track: 4, content: 8, viewport: 4, offset: 4, want: scrollMetrics{trackCells: 4, trackLen: 32, thumbLen: 16, thumbStart: 16}},
		{name: "offset clamped", track: 4, content: 8, viewport: 4, offset: 99, want: scrollMetrics{trackCells: 4, trackLen: 32, thumbLen: 16, thumbStart: 16}},
		{name: "thumb at least one cell", track: 2, content: 1000, viewport: 1, want: scrollMetrics{trackCells: 2, trackLen: 16, thumbLen: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeScrollMetrics(tt.track, tt.content, tt.viewport, tt.offset))
		})
	}
}

func TestScrollBar_FractionalThumb(t *testing.T) {
	// A thumb of 12 subcells starting at 4 covers the lower half of cell 0
	// and all of cell 1.
	m := scrollMetrics{trackCells: 3, trackLen: 24, thumbLen: 12, thumbStart: 4}
	s := NewScrollBar()

	var glyphs []string
	for cell := 0; cell < m.trackCells; cell++ {
		glyph, _ := s.glyph(cellFill(m, cell))
		glyphs = append(glyphs, glyph)
	}
	assert.Equal(t, []string{"▄", "█", " "}, glyphs)

	s.SetGlyphSet(UnicodeGlyphSet())
	glyph, _ := s.glyph(cellFill(scrollMetrics{thumbLen: 3}, 0))
	assert.Equal(t, "▀", glyph)
	glyph, _ = s.glyph(0, 0)
	assert.Equal(t, "│", glyph)
}

func TestScrollBar_AutoHide(t *testing.T) {
	screen := newTestScreen(t, 1, 3)
	s := NewScrollBar().SetLengths(3, 3)
	s.SetRect(0, 0, 1, 3)
	s.SetGlyphSet(UnicodeGlyphSet())

	s.Draw(screen)
	assert.Equal(t, "", rowText(screen, 0))

	s.SetAutoHide(false).Draw(screen)
	assert.Equal(t, "█", rowText(screen, 0))
}
