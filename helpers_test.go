package properlist

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// blockContent is a test content with a fixed height.
type blockContent struct {
	Label string
	Rows  int
}

func (c blockContent) Height(width int) int {
	return c.Rows
}

func (c blockContent) Draw(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	for row := 0; row < height; row++ {
		PrintStyled(screen, c.Label, x, y+row, width, AlignmentLeft, style)
	}
}

func block(label string, rows int) AdapterItem {
	return NewItem("block", blockContent{Label: label, Rows: rows})
}

func header(label string, rows int) AdapterItem {
	return NewItem("header", blockContent{Label: label, Rows: rows}).WithStickyHeader(true)
}

func texts(items []AdapterItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		switch c := item.Content().(type) {
		case TextContent:
			out[i] = c.Text
		case SectionHeaderContent:
			out[i] = "#" + c.Title
		case blockContent:
			out[i] = c.Label
		}
	}
	return out
}

func textItems(values ...string) []AdapterItem {
	items := make([]AdapterItem, len(values))
	for i, value := range values {
		items[i] = TextItem(value)
	}
	return items
}

// mockNotifier records change notifications.
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyItemRangeInserted(position, count int) {
	m.Called(position, count)
}

func (m *mockNotifier) NotifyItemRangeRemoved(position, count int) {
	m.Called(position, count)
}

func (m *mockNotifier) NotifyItemMoved(from, to int) {
	m.Called(from, to)
}

func (m *mockNotifier) NotifyItemRangeChanged(position, count int) {
	m.Called(position, count)
}

func (m *mockNotifier) NotifyDataSetChanged() {
	m.Called()
}

// fakeLayout is a hand-set StickyLayout.
type fakeLayout struct {
	count   int
	first   int
	tops    map[int]int
	heights map[int]int
}

func (f *fakeLayout) FirstVisiblePosition() int {
	return f.first
}

func (f *fakeLayout) RowBounds(position int) (int, int, bool) {
	top, ok := f.tops[position]
	if !ok {
		return 0, 0, false
	}
	return top, f.RowHeight(position), true
}

func (f *fakeLayout) RowHeight(position int) int {
	if h, ok := f.heights[position]; ok {
		return h
	}
	return 1
}

func (f *fakeLayout) ItemCount() int {
	return f.count
}

func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

// rowText returns the characters of a screen row without trailing blanks.
func rowText(screen tcell.Screen, y int) string {
	width, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, combining, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
		for _, c := range combining {
			b.WriteRune(c)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
