package properlist

import (
	"github.com/gdamore/tcell/v2"

	"github.com/xqrs/properlist/keybind"
)

// ListKeyMap holds the key bindings of a [List].
type ListKeyMap struct {
	Up       keybind.Keybind
	Down     keybind.Keybind
	PageUp   keybind.Keybind
	PageDown keybind.Keybind
	Home     keybind.Keybind
	End      keybind.Keybind
	Activate keybind.Keybind
}

// DefaultListKeyMap returns the default list bindings.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up:       keybind.NewKeybind(keybind.WithKeys("up", "k"), keybind.WithHelp("↑/k", "up")),
		Down:     keybind.NewKeybind(keybind.WithKeys("down", "j"), keybind.WithHelp("↓/j", "down")),
		PageUp:   keybind.NewKeybind(keybind.WithKeys("pgup", "ctrl+b"), keybind.WithHelp("pgup", "page up")),
		PageDown: keybind.NewKeybind(keybind.WithKeys("pgdn", "ctrl+f"), keybind.WithHelp("pgdn", "page down")),
		Home:     keybind.NewKeybind(keybind.WithKeys("home", "g"), keybind.WithHelp("home/g", "first item")),
		End:      keybind.NewKeybind(keybind.WithKeys("end", "G"), keybind.WithHelp("end/G", "last item")),
		Activate: keybind.NewKeybind(keybind.WithKeys("enter"), keybind.WithHelp("enter", "select")),
	}
}

// List displays the items of an [Adapter]. Rows have variable heights and
// scroll line by line. A List implements [RenderSurface]: it applies the
// adapter's change notifications, exposes its layout to decorations and
// draws registered decorations on top of its rows.
type List struct {
	*Box

	adapter *Adapter
	gap     int
	keys    ListKeyMap

	cursor int
	scroll listState

	itemStyle     tcell.Style
	selectedStyle tcell.Style

	scrollBar     *ScrollBar
	showScrollBar bool

	decorations []Decoration
	afterLayout []func()
	laidOut     bool
	relayout    bool

	changed func(index int)

	lastDraw  []listDrawnItem
	lastRect  listRect
	lastWidth int
}

type listState struct {
	// Index of the top item in the viewport.
	top int
	// Line offset into the top item; positive values mean the item is
	// scrolled up.
	offset int
	// Pending scroll delta in lines to apply on the next draw.
	pending int
	// Ensure the cursor is visible on the next draw.
	wantsCursor bool
}

type listDrawnItem struct {
	index  int
	row    int
	height int
}

type listRect struct {
	x      int
	y      int
	width  int
	height int
}

// NewList returns a new list without an adapter.
func NewList() *List {
	return &List{
		Box:           NewBox(),
		cursor:        -1,
		keys:          DefaultListKeyMap(),
		itemStyle:     tcell.StyleDefault.Foreground(Styles.PrimaryTextColor).Background(Styles.PrimitiveBackgroundColor),
		selectedStyle: tcell.StyleDefault.Foreground(Styles.PrimaryTextColor).Background(Styles.ContrastBackgroundColor),
		scrollBar:     NewScrollBar(),
	}
}

// SetAdapter sets the adapter whose items are shown and attaches the list to
// it. The previous adapter, if any, is detached.
func (l *List) SetAdapter(adapter *Adapter) *List {
	if l.adapter == adapter {
		return l
	}
	if l.adapter != nil {
		l.adapter.Attach(nil)
	}
	l.adapter = adapter
	if adapter != nil {
		adapter.Attach(l)
	}
	l.cursor = -1
	l.scroll = listState{}
	l.lastDraw = nil
	l.MarkDirty()
	return l
}

// Adapter returns the current adapter.
func (l *List) Adapter() *Adapter {
	return l.adapter
}

// SetKeyMap replaces the key bindings.
func (l *List) SetKeyMap(keys ListKeyMap) *List {
	l.keys = keys
	return l
}

// KeyMap returns the key bindings.
func (l *List) KeyMap() ListKeyMap {
	return l.keys
}

// SetGap sets the number of blank rows between items.
func (l *List) SetGap(gap int) *List {
	gap = max(gap, 0)
	if l.gap != gap {
		l.gap = gap
		l.MarkDirty()
	}
	return l
}

// SetItemStyle sets the base style handed to item content.
func (l *List) SetItemStyle(style tcell.Style) *List {
	if l.itemStyle != style {
		l.itemStyle = style
		l.MarkDirty()
	}
	return l
}

// SetSelectedStyle sets the style of the item under the cursor.
func (l *List) SetSelectedStyle(style tcell.Style) *List {
	if l.selectedStyle != style {
		l.selectedStyle = style
		l.MarkDirty()
	}
	return l
}

// SetScrollBarVisible toggles the scroll bar along the right edge.
func (l *List) SetScrollBarVisible(visible bool) *List {
	if l.showScrollBar != visible {
		l.showScrollBar = visible
		l.MarkDirty()
	}
	return l
}

// ScrollBar returns the scroll bar so it can be styled.
func (l *List) ScrollBar() *ScrollBar {
	return l.scrollBar
}

// ScrollToStart resets the scroll position to the top (index 0), without
// changing the cursor.
func (l *List) ScrollToStart() *List {
	if l.scroll.top != 0 || l.scroll.offset != 0 || l.scroll.wantsCursor {
		l.scroll.top = 0
		l.scroll.offset = 0
		l.scroll.wantsCursor = false
		l.MarkDirty()
	}
	return l
}

// ScrollToEnd scrolls the view so the last items are visible.
func (l *List) ScrollToEnd() *List {
	_, _, width, height := l.GetInnerRect()
	if width <= 0 || height <= 0 {
		return l
	}
	top, offset := l.endScrollState(l.rowWidth(width), height)
	if l.scroll.top != top || l.scroll.offset != offset || l.scroll.wantsCursor {
		l.scroll.top, l.scroll.offset = top, offset
		l.scroll.wantsCursor = false
		l.MarkDirty()
	}
	return l
}

// ScrollToPosition scrolls so that position is the top row.
func (l *List) ScrollToPosition(position int) *List {
	if position < 0 || position >= l.ItemCount() {
		return l
	}
	l.scroll.top = position
	l.scroll.offset = 0
	l.scroll.pending = 0
	l.scroll.wantsCursor = false
	l.MarkDirty()
	return l
}

// SetCursor sets the currently selected item index.
func (l *List) SetCursor(index int) *List {
	index = max(index, -1)
	if count := l.ItemCount(); index >= count {
		index = count - 1
	}
	if l.cursor != index {
		l.cursor = index
		l.ensureScroll()
		l.MarkDirty()
		if l.changed != nil {
			l.changed(l.cursor)
		}
	}
	return l
}

// Cursor returns the current cursor index.
func (l *List) Cursor() int {
	return l.cursor
}

// SetPendingScroll sets a pending scroll amount, in lines. Positive numbers
// scroll down.
func (l *List) SetPendingScroll(lines int) *List {
	if l.scroll.pending != lines {
		l.scroll.pending = lines
		l.MarkDirty()
	}
	return l
}

// ScrollUp scrolls the list up by one line.
func (l *List) ScrollUp() *List {
	l.scroll.pending--
	l.MarkDirty()
	return l
}

// ScrollDown scrolls the list down by one line.
func (l *List) ScrollDown() *List {
	l.scroll.pending++
	l.MarkDirty()
	return l
}

// NextItem moves the cursor to the next item, if any.
func (l *List) NextItem() bool {
	if l.cursor+1 >= l.ItemCount() {
		return false
	}
	l.SetCursor(l.cursor + 1)
	return true
}

// PrevItem moves the cursor to the previous item, if any.
func (l *List) PrevItem() bool {
	if l.cursor <= 0 {
		return false
	}
	l.SetCursor(l.cursor - 1)
	return true
}

// SetChangedFunc sets a handler that is called when the cursor changes.
func (l *List) SetChangedFunc(handler func(index int)) *List {
	l.changed = handler
	return l
}

// RunAfterLayout runs f once the rows have been laid out and drawn. If the
// list changes as a result, it is laid out and drawn again within the same
// frame. Callbacks registered while callbacks run wait for the next draw.
func (l *List) RunAfterLayout(f func()) {
	if f == nil {
		return
	}
	l.afterLayout = append(l.afterLayout, f)
	l.MarkDirty()
}

// IsLaidOut reports whether the list has been drawn with a non-empty inner
// rectangle at least once.
func (l *List) IsLaidOut() bool {
	return l.laidOut
}

// ItemCount returns the number of rows.
func (l *List) ItemCount() int {
	if l.adapter == nil {
		return 0
	}
	return l.adapter.ItemCount()
}

// FirstVisiblePosition returns the position of the topmost row intersecting
// the viewport during the last draw, or -1.
func (l *List) FirstVisiblePosition() int {
	for _, child := range l.lastDraw {
		if child.row+child.height > 0 {
			return child.index
		}
	}
	return -1
}

// RowBounds returns the top and height of a row laid out during the last
// draw. Tops are relative to the inner rectangle and may be negative.
func (l *List) RowBounds(position int) (top, height int, ok bool) {
	for _, child := range l.lastDraw {
		if child.index == position {
			return child.row, child.height, true
		}
	}
	return 0, 0, false
}

// RowHeight measures the row at position with the current row width.
func (l *List) RowHeight(position int) int {
	if l.adapter == nil {
		return 0
	}
	item, ok := l.adapter.ItemAt(position)
	if !ok {
		return 0
	}
	width := l.lastWidth
	if width <= 0 {
		_, _, width, _ = l.GetInnerRect()
		width = l.rowWidth(width)
	}
	return l.itemHeight(item, width)
}

// HasDecoration reports whether a decoration is registered.
func (l *List) HasDecoration() bool {
	return len(l.decorations) > 0
}

// AddDecoration registers a decoration drawn after the rows.
func (l *List) AddDecoration(decoration Decoration) {
	if decoration == nil {
		return
	}
	l.decorations = append(l.decorations, decoration)
	l.MarkDirty()
}

// Decorations returns the registered decorations in drawing order.
func (l *List) Decorations() []Decoration {
	return l.decorations
}

// DrawRow draws the row at position into the given rectangle of screen.
func (l *List) DrawRow(screen tcell.Screen, position, x, y, width, height int) {
	if l.adapter == nil {
		return
	}
	item, ok := l.adapter.ItemAt(position)
	if !ok {
		return
	}
	l.drawItem(screen, item, position, x, y, width, height)
}

// NotifyItemRangeInserted shifts the cursor and the scroll anchor past the
// inserted rows.
func (l *List) NotifyItemRangeInserted(position, count int) {
	if count <= 0 {
		return
	}
	if l.cursor >= position {
		l.cursor += count
	}
	if l.scroll.top > position {
		l.scroll.top += count
	}
	l.invalidate()
}

// NotifyItemRangeRemoved pulls the cursor and the scroll anchor back over the
// removed rows.
func (l *List) NotifyItemRangeRemoved(position, count int) {
	if count <= 0 {
		return
	}
	switch {
	case l.cursor >= position+count:
		l.cursor -= count
	case l.cursor >= position:
		l.cursor = min(position, l.ItemCount()-1)
	}
	switch {
	case l.scroll.top >= position+count:
		l.scroll.top -= count
	case l.scroll.top >= position:
		l.scroll.top = position
		l.scroll.offset = 0
	}
	l.invalidate()
}

// NotifyItemMoved keeps the cursor on the moved row.
func (l *List) NotifyItemMoved(from, to int) {
	switch {
	case l.cursor == from:
		l.cursor = to
	case from < l.cursor && l.cursor <= to:
		l.cursor--
	case to <= l.cursor && l.cursor < from:
		l.cursor++
	}
	l.invalidate()
}

// NotifyItemRangeChanged redraws the list.
func (l *List) NotifyItemRangeChanged(position, count int) {
	l.invalidate()
}

// NotifyDataSetChanged clamps the cursor and the scroll anchor to the new
// item count.
func (l *List) NotifyDataSetChanged() {
	l.invalidate()
}

func (l *List) invalidate() {
	count := l.ItemCount()
	l.cursor = min(l.cursor, count-1)
	if l.scroll.top >= count {
		l.scroll.top = max(count-1, 0)
		l.scroll.offset = 0
	}
	l.lastDraw = nil
	l.MarkDirty()
}

// Draw draws this primitive onto the screen.
func (l *List) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	usableWidth := l.rowWidth(width)
	l.lastWidth = usableWidth
	l.layout(usableWidth, height)
	l.lastRect = listRect{x: x, y: y, width: width, height: height}

	clipped := newClippedScreen(screen, x, y, usableWidth, height)
	for _, child := range l.lastDraw {
		item, _ := l.adapter.ItemAt(child.index)
		l.drawItem(clipped, item, child.index, x, y+child.row, usableWidth, child.height)
	}
	for _, decoration := range l.decorations {
		decoration.DrawOver(clipped, x, y, usableWidth, height)
	}

	if l.showScrollBar && usableWidth < width {
		l.drawScrollBar(screen, x+usableWidth, y, height)
	}

	l.laidOut = true
	if l.relayout {
		return
	}
	if pending := l.afterLayout; len(pending) > 0 {
		l.afterLayout = nil
		for _, f := range pending {
			f()
		}
		l.relayout = true
		l.Draw(screen)
		l.relayout = false
	}
}

func (l *List) layout(width, height int) {
	count := l.ItemCount()
	if count == 0 {
		l.scroll = listState{}
		l.lastDraw = nil
		return
	}
	l.scroll.top = min(max(l.scroll.top, 0), count-1)

	pendingDelta := l.scroll.pending
	ah := -(l.scroll.offset + pendingDelta)
	l.scroll.pending = 0

	if ah > 0 && l.scroll.top == 0 {
		ah = 0
		l.scroll.offset = 0
	}

	children := make([]listDrawnItem, 0, 16)
	startIndex := l.scroll.top
	if ah > 0 {
		// We scrolled upward into the previous top item; prepend enough items above.
		l.insertChildren(&children, width, ah)
		if len(children) > 0 {
			last := children[len(children)-1]
			ah = last.row + last.height + l.gap
		}
	}

	endReached := false
	for i := startIndex; ; i++ {
		if i >= count {
			endReached = true
			break
		}
		itemHeight := l.RowHeight(i)
		children = append(children, listDrawnItem{
			index:  i,
			row:    ah,
			height: itemHeight,
		})
		ah += itemHeight + l.gap

		if l.scroll.wantsCursor && i <= l.cursor {
			continue
		}
		if ah >= height {
			break
		}
	}

	// Never leave blank rows below the last item while rows above are hidden.
	if endReached {
		last := children[len(children)-1]
		if below := height - (last.row + last.height); below > 0 {
			for i := range children {
				children[i].row += below
			}
			l.fillAbove(&children)
			if shift := children[0].row; shift > 0 {
				for i := range children {
					children[i].row -= shift
				}
			}
		}
	}

	// Adjust rows so the cursor item is fully visible.
	if l.scroll.wantsCursor {
		for _, child := range children {
			if child.index != l.cursor {
				continue
			}
			adj := 0
			if bottom := child.row + child.height; bottom > height {
				adj = height - bottom
			}
			if child.row+adj < 0 {
				adj = -child.row
			}
			for i := range children {
				children[i].row += adj
			}
			break
		}
		l.scroll.wantsCursor = false
	}

	// Keep the first partially visible item as the top anchor.
	for _, child := range children {
		span := child.height + l.gap
		if child.row <= 0 && child.row+span > 0 {
			l.scroll.top = child.index
			l.scroll.offset = -child.row
			break
		}
	}

	visible := children[:0]
	for _, child := range children {
		if child.row+child.height > 0 && child.row < height {
			visible = append(visible, child)
		}
	}
	l.lastDraw = visible
}

// fillAbove prepends rows above children until the first one reaches the
// top edge or position 0.
func (l *List) fillAbove(children *[]listDrawnItem) {
	for {
		first := (*children)[0]
		if first.row <= 0 || first.index == 0 {
			return
		}
		height := l.RowHeight(first.index - 1)
		entry := listDrawnItem{
			index:  first.index - 1,
			row:    first.row - l.gap - height,
			height: height,
		}
		*children = append([]listDrawnItem{entry}, *children...)
	}
}

func (l *List) drawItem(screen tcell.Screen, item AdapterItem, position, x, y, width, height int) {
	style := l.itemStyle
	if position == l.cursor && l.HasFocus() {
		style = l.selectedStyle
		for row := y; row < y+height; row++ {
			for column := x; column < x+width; column++ {
				screen.SetContent(column, row, ' ', nil, style)
			}
		}
	}
	item.Draw(screen, x, y, width, height, style)
}

func (l *List) drawScrollBar(screen tcell.Screen, x, y, height int) {
	count := l.ItemCount()
	content, before := 0, 0
	for i := 0; i < count; i++ {
		span := l.RowHeight(i)
		if i < count-1 {
			span += l.gap
		}
		if i < l.scroll.top {
			before += span
		}
		content += span
	}
	l.scrollBar.SetRect(x, y, 1, height)
	l.scrollBar.SetLengths(content, height)
	l.scrollBar.SetOffset(before + l.scroll.offset)
	l.scrollBar.Draw(screen)
}

func (l *List) rowWidth(width int) int {
	if l.showScrollBar && width > 1 {
		return width - 1
	}
	return width
}

func (l *List) itemHeight(item AdapterItem, width int) int {
	return max(item.Height(width), 1)
}

func (l *List) insertChildren(children *[]listDrawnItem, width int, ah int) {
	if l.scroll.top <= 0 {
		return
	}

	l.scroll.top--
	for ah > 0 {
		// Account for the gap between the inserted item and the current top.
		ah -= l.gap
		height := l.RowHeight(l.scroll.top)
		ah -= height
		entry := listDrawnItem{
			index:  l.scroll.top,
			row:    ah,
			height: height,
		}
		*children = append([]listDrawnItem{entry}, *children...)

		if l.scroll.top == 0 {
			break
		}
		l.scroll.top--
	}

	l.scroll.offset = ah

	if l.scroll.top == 0 && ah > 0 {
		// We hit the absolute top; normalize rows to avoid overscrolling.
		l.scroll.offset = 0
		row := 0
		for i := range *children {
			(*children)[i].row = row
			row += (*children)[i].height + l.gap
		}
	}
}

func (l *List) ensureScroll() {
	if l.cursor < 0 {
		l.scroll.wantsCursor = false
		return
	}
	if l.cursor < l.scroll.top {
		l.scroll.top = l.cursor
		l.scroll.offset = 0
	}
	l.scroll.wantsCursor = true
}

func (l *List) endScrollState(width int, height int) (int, int) {
	count := l.ItemCount()
	if count == 0 || width <= 0 || height <= 0 {
		return 0, 0
	}

	// Walk upward from the last item until we fill a viewport.
	total := 0
	for i := count - 1; i >= 0; i-- {
		if total > 0 {
			total += l.gap
		}
		itemHeight := l.RowHeight(i)
		if total+itemHeight > height {
			return i, total + itemHeight - height
		}
		total += itemHeight
	}
	return 0, 0
}

// activate runs the click listener of the item at position.
func (l *List) activate(position int) Command {
	if l.adapter == nil {
		return nil
	}
	item, ok := l.adapter.ItemAt(position)
	if !ok {
		return nil
	}
	if onClick := item.Directives().OnClick; onClick != nil {
		onClick(position, item)
	}
	return ItemClickedCommand{Position: position, Item: item}
}

// InputHandler moves the cursor, scrolls and activates items.
func (l *List) InputHandler(event *tcell.EventKey) Command {
	_, _, _, height := l.GetInnerRect()
	height = max(height, 1)

	switch {
	case l.keys.Down.Matches(event):
		l.NextItem()
	case l.keys.Up.Matches(event):
		l.PrevItem()
	case l.keys.PageDown.Matches(event):
		l.scroll.pending += height
		l.MarkDirty()
	case l.keys.PageUp.Matches(event):
		l.scroll.pending -= height
		l.MarkDirty()
	case l.keys.Home.Matches(event):
		l.ScrollToStart()
		if l.ItemCount() > 0 {
			l.SetCursor(0)
		}
	case l.keys.End.Matches(event):
		if count := l.ItemCount(); count > 0 {
			l.SetCursor(count - 1)
		}
		l.ScrollToEnd()
	case l.keys.Activate.Matches(event):
		if l.cursor < 0 {
			return nil
		}
		return AppendCommand(l.activate(l.cursor), RedrawCommand{})
	default:
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler selects and activates clicked items and scrolls on the wheel.
func (l *List) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if !l.InRect(x, y) {
		return nil, nil
	}

	switch action {
	case MouseLeftDown:
		if l.HasFocus() {
			return nil, nil
		}
		return nil, SetFocusCommand{Target: l}
	case MouseLeftClick:
		index := l.indexAtPoint(x, y)
		if index < 0 {
			return nil, nil
		}
		l.SetCursor(index)
		return nil, AppendCommand(l.activate(index), RedrawCommand{})
	case MouseScrollUp:
		l.scroll.pending -= 3
		l.MarkDirty()
		return nil, RedrawCommand{}
	case MouseScrollDown:
		l.scroll.pending += 3
		l.MarkDirty()
		return nil, RedrawCommand{}
	}

	return nil, nil
}

func (l *List) indexAtPoint(x, y int) int {
	if len(l.lastDraw) == 0 {
		return -1
	}
	if x < l.lastRect.x || x >= l.lastRect.x+l.lastRect.width || y < l.lastRect.y || y >= l.lastRect.y+l.lastRect.height {
		return -1
	}

	row := y - l.lastRect.y
	for _, child := range l.lastDraw {
		if row >= child.row && row < child.row+child.height+l.gap {
			return child.index
		}
	}
	return -1
}

var (
	_ Primitive     = &List{}
	_ RenderSurface = &List{}
)

type clippedScreen struct {
	tcell.Screen
	x      int
	y      int
	width  int
	height int
}

func newClippedScreen(screen tcell.Screen, x, y, width, height int) *clippedScreen {
	return &clippedScreen{
		Screen: screen,
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}
}

func (s *clippedScreen) inBounds(x, y int) bool {
	return x >= s.x && x < s.x+s.width && y >= s.y && y < s.y+s.height
}

func (s *clippedScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	if !s.inBounds(x, y) {
		return
	}
	s.Screen.SetContent(x, y, primary, combining, style)
}

func (s *clippedScreen) ShowCursor(x int, y int) {
	if !s.inBounds(x, y) {
		s.Screen.HideCursor()
		return
	}
	s.Screen.ShowCursor(x, y)
}
