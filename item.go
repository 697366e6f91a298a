package properlist

import (
	"github.com/gdamore/tcell/v2"
)

// ViewType groups items which share rendering logic. Two items of the same
// kind must always report the same view type.
type ViewType string

// ItemContent renders the body of one adapter item. Content values are
// compared with == unless they implement [ContentEqualer]; uncomparable
// content without it is rejected with [ErrInvalidItem].
type ItemContent interface {
	// Height returns the number of rows the content needs at the given width.
	Height(width int) int
	// Draw draws the content into the given rectangle.
	Draw(screen tcell.Screen, x, y, width, height int, style tcell.Style)
}

// ContentEqualer is implemented by content values which are not comparable
// with == (for example because they hold slices).
type ContentEqualer interface {
	EqualContent(other ItemContent) bool
}

// Margins are blank cells the list reserves around an item.
type Margins struct {
	Top, Bottom, Left, Right int
}

// LayoutDirectives are passed through to the render surface untouched.
type LayoutDirectives struct {
	Margins Margins
	// Animation is an opaque reference to an enter animation.
	Animation string
	// OnClick is invoked by the list when the item is activated.
	OnClick func(position int, item AdapterItem)
	// Tag is an opaque value which can be looked up with
	// [Adapter.PositionOfTag].
	Tag any
}

// AdapterItem is one logical row of an [Adapter]. Items are values; the With*
// methods return modified copies.
type AdapterItem struct {
	viewType ViewType
	content  ItemContent
	key      any
	sticky   bool

	directives LayoutDirectives
}

// NewItem returns an item of the given view type rendering content.
func NewItem(viewType ViewType, content ItemContent) AdapterItem {
	return AdapterItem{viewType: viewType, content: content}
}

// ViewType returns the item's view type.
func (i AdapterItem) ViewType() ViewType {
	return i.viewType
}

// Content returns the item's content.
func (i AdapterItem) Content() ItemContent {
	return i.content
}

// Key returns the explicit identity key, or nil if the item is matched
// structurally.
func (i AdapterItem) Key() any {
	return i.key
}

// IsStickyHeader reports whether the item participates in sticky header
// selection.
func (i AdapterItem) IsStickyHeader() bool {
	return i.sticky
}

// Directives returns the item's layout directives.
func (i AdapterItem) Directives() LayoutDirectives {
	return i.directives
}

// WithKey sets an explicit identity key. The key must be comparable or the
// item is rejected with [ErrInvalidItem]. Keyed items are matched by key
// during reconciliation and reported as changed when their content differs.
func (i AdapterItem) WithKey(key any) AdapterItem {
	i.key = key
	return i
}

// WithStickyHeader marks the item as a sticky header.
func (i AdapterItem) WithStickyHeader(sticky bool) AdapterItem {
	i.sticky = sticky
	return i
}

// WithMargins sets all four margins.
func (i AdapterItem) WithMargins(top, bottom, left, right int) AdapterItem {
	i.directives.Margins = Margins{
		Top:    max(top, 0),
		Bottom: max(bottom, 0),
		Left:   max(left, 0),
		Right:  max(right, 0),
	}
	return i
}

// WithAllMargins sets the same margin on every side.
func (i AdapterItem) WithAllMargins(margin int) AdapterItem {
	return i.WithMargins(margin, margin, margin, margin)
}

// WithTopBottomMargins sets the vertical margins and keeps the horizontal ones.
func (i AdapterItem) WithTopBottomMargins(margin int) AdapterItem {
	m := i.directives.Margins
	return i.WithMargins(margin, margin, m.Left, m.Right)
}

// WithLeftRightMargins sets the horizontal margins and keeps the vertical ones.
func (i AdapterItem) WithLeftRightMargins(margin int) AdapterItem {
	m := i.directives.Margins
	return i.WithMargins(m.Top, m.Bottom, margin, margin)
}

// WithAnimation sets the enter animation reference.
func (i AdapterItem) WithAnimation(animation string) AdapterItem {
	i.directives.Animation = animation
	return i
}

// WithClickListener sets the callback invoked when the item is activated.
func (i AdapterItem) WithClickListener(onClick func(position int, item AdapterItem)) AdapterItem {
	i.directives.OnClick = onClick
	return i
}

// WithViewTag sets an opaque tag. The tag must be comparable.
func (i AdapterItem) WithViewTag(tag any) AdapterItem {
	i.directives.Tag = tag
	return i
}

// Height returns the item's height including vertical margins.
func (i AdapterItem) Height(width int) int {
	m := i.directives.Margins
	inner := max(width-m.Left-m.Right, 0)
	height := 1
	if i.content != nil {
		height = max(i.content.Height(inner), 1)
	}
	return height + m.Top + m.Bottom
}

// Draw draws the item's content inside its margins.
func (i AdapterItem) Draw(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	if i.content == nil {
		return
	}
	m := i.directives.Margins
	width -= m.Left + m.Right
	height -= m.Top + m.Bottom
	if width <= 0 || height <= 0 {
		return
	}
	i.content.Draw(screen, x+m.Left, y+m.Top, width, height, style)
}

// SameIdentity reports whether two items represent the same logical row.
func (i AdapterItem) SameIdentity(other AdapterItem) bool {
	if i.key != nil || other.key != nil {
		return i.viewType == other.viewType && i.key == other.key
	}
	return i.viewType == other.viewType && contentEqual(i.content, other.content)
}

// SameContent reports whether two items render identically. Click callbacks
// and tags are not compared.
func (i AdapterItem) SameContent(other AdapterItem) bool {
	return i.viewType == other.viewType &&
		i.sticky == other.sticky &&
		i.directives.Margins == other.directives.Margins &&
		i.directives.Animation == other.directives.Animation &&
		contentEqual(i.content, other.content)
}

func contentEqual(a, b ItemContent) bool {
	if eq, ok := a.(ContentEqualer); ok {
		return eq.EqualContent(b)
	}
	return a == b
}
