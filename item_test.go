package properlist

import (
	"slices"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestAdapterItem_Height(t *testing.T) {
	tests := []struct {
		name  string
		item  AdapterItem
		width int
		want  int
	}{
		{name: "single line", item: TextItem("hello"), width: 20, want: 1},
		{name: "wrapped", item: TextItem("hello world"), width: 6, want: 2},
		{name: "vertical margins", item: TextItem("hello").WithTopBottomMargins(1), width: 20, want: 3},
		{name: "horizontal margins wrap", item: TextItem("hello world").WithLeftRightMargins(2), width: 10, want: 2},
		{name: "zero height content", item: block("x", 0), width: 10, want: 1},
		{name: "tall content", item: block("x", 4).WithMargins(1, 2, 0, 0), width: 10, want: 7},
		{name: "nil content", item: NewItem(ViewTypeText, nil), width: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.Height(tt.width))
		})
	}
}

func TestAdapterItem_NegativeMarginsClamp(t *testing.T) {
	item := TextItem("a").WithMargins(-1, -2, 3, -4)
	assert.Equal(t, Margins{Left: 3}, item.Directives().Margins)
}

func TestAdapterItem_MarginBuilders(t *testing.T) {
	item := TextItem("a").WithLeftRightMargins(2).WithTopBottomMargins(1)
	assert.Equal(t, Margins{Top: 1, Bottom: 1, Left: 2, Right: 2}, item.Directives().Margins)

	item = item.WithAllMargins(3)
	assert.Equal(t, Margins{Top: 3, Bottom: 3, Left: 3, Right: 3}, item.Directives().Margins)
}

func TestAdapterItem_BuildersReturnCopies(t *testing.T) {
	base := TextItem("a")
	keyed := base.WithKey(1).WithStickyHeader(true).WithViewTag("tag").WithAnimation("fade")

	assert.Nil(t, base.Key())
	assert.False(t, base.IsStickyHeader())
	assert.Nil(t, base.Directives().Tag)
	assert.Empty(t, base.Directives().Animation)

	assert.Equal(t, 1, keyed.Key())
	assert.True(t, keyed.IsStickyHeader())
	assert.Equal(t, "tag", keyed.Directives().Tag)
	assert.Equal(t, "fade", keyed.Directives().Animation)
}

func TestAdapterItem_SameIdentity(t *testing.T) {
	tests := []struct {
		name string
		a, b AdapterItem
		want bool
	}{
		{name: "equal content", a: TextItem("a"), b: TextItem("a"), want: true},
		{name: "different content", a: TextItem("a"), b: TextItem("b"), want: false},
		{name: "different view type", a: TextItem("a"), b: NewItem("other", TextContent{Text: "a"}), want: false},
		{name: "same key different content", a: TextItem("a").WithKey(1), b: TextItem("b").WithKey(1), want: true},
		{name: "different keys same content", a: TextItem("a").WithKey(1), b: TextItem("a").WithKey(2), want: false},
		{name: "keyed and unkeyed", a: TextItem("a").WithKey(1), b: TextItem("a"), want: false},
		{name: "same key different view type", a: TextItem("a").WithKey(1), b: SectionHeaderItem("a").WithKey(1), want: false},
		{name: "sticky flag ignored", a: SectionHeaderItem("a"), b: SectionHeaderItem("a").WithStickyHeader(true), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.SameIdentity(tt.b))
			assert.Equal(t, tt.want, tt.b.SameIdentity(tt.a))
		})
	}
}

func TestAdapterItem_SameContent(t *testing.T) {
	base := TextItem("a").WithKey(1)

	assert.True(t, base.SameContent(base.WithViewTag("x")))
	assert.True(t, base.SameContent(base.WithClickListener(func(int, AdapterItem) {})))
	assert.False(t, base.SameContent(base.WithStickyHeader(true)))
	assert.False(t, base.SameContent(base.WithAllMargins(1)))
	assert.False(t, base.SameContent(base.WithAnimation("fade")))
	assert.False(t, base.SameContent(TextItem("b").WithKey(1)))
}

type listContent struct {
	lines []string
}

func (c listContent) Height(width int) int {
	return len(c.lines)
}

func (c listContent) Draw(screen tcell.Screen, x, y, width, height int, style tcell.Style) {}

func (c listContent) EqualContent(other ItemContent) bool {
	o, ok := other.(listContent)
	return ok && slices.Equal(c.lines, o.lines)
}

func TestAdapterItem_ContentEqualer(t *testing.T) {
	a := NewItem("lines", listContent{lines: []string{"x", "y"}})
	b := NewItem("lines", listContent{lines: []string{"x", "y"}})
	c := NewItem("lines", listContent{lines: []string{"x"}})

	assert.True(t, a.SameIdentity(b))
	assert.True(t, a.SameContent(b))
	assert.False(t, a.SameIdentity(c))
}

func TestAdapterItem_DrawHonorsMargins(t *testing.T) {
	screen := newTestScreen(t, 10, 3)
	item := TextItem("abc").WithMargins(1, 0, 2, 0)

	item.Draw(screen, 0, 0, 10, item.Height(10), tcell.StyleDefault)

	assert.Equal(t, "", rowText(screen, 0))
	assert.Equal(t, "  abc", rowText(screen, 1))
}
