package properlist

import "github.com/gdamore/tcell/v2"

// StickyLayout exposes the laid-out state of a render surface.
type StickyLayout interface {
	// FirstVisiblePosition returns the position of the topmost visible row, or
	// -1 if nothing is laid out.
	FirstVisiblePosition() int
	// RowBounds returns the top offset (relative to the surface's top edge)
	// and height of a laid-out row. ok is false for rows which are not laid
	// out.
	RowBounds(position int) (top, height int, ok bool)
	// RowHeight measures a row whether it is laid out or not.
	RowHeight(position int) int
	// ItemCount returns the number of rows.
	ItemCount() int
}

// ChangeNotifier receives structural change notifications.
type ChangeNotifier interface {
	NotifyItemRangeInserted(position, count int)
	NotifyItemRangeRemoved(position, count int)
	NotifyItemMoved(from, to int)
	NotifyItemRangeChanged(position, count int)
	NotifyDataSetChanged()
}

// Decoration draws over a render surface after its rows were drawn.
type Decoration interface {
	DrawOver(screen tcell.Screen, x, y, width, height int)
}

// DecorationHost owns decoration slots.
type DecorationHost interface {
	HasDecoration() bool
	AddDecoration(decoration Decoration)
}

// RowDrawer draws a copy of a row anywhere on a screen.
type RowDrawer interface {
	DrawRow(screen tcell.Screen, position, x, y, width, height int)
}

// RenderSurface is the list widget an [Adapter] drives.
type RenderSurface interface {
	StickyLayout
	ChangeNotifier
	DecorationHost
	RowDrawer
}

// notify forwards op to n.
func notify(n ChangeNotifier, op Operation) {
	switch op.Kind {
	case OpInsert:
		n.NotifyItemRangeInserted(op.Position, op.Count)
	case OpRemove:
		n.NotifyItemRangeRemoved(op.Position, op.Count)
	case OpMove:
		n.NotifyItemMoved(op.Position, op.To)
	case OpChange:
		n.NotifyItemRangeChanged(op.Position, op.Count)
	}
}
