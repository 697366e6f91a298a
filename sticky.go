package properlist

// StickyMode is the state of the sticky header overlay for one frame.
type StickyMode int

const (
	// StickyIdle means no header is in force and nothing is drawn.
	StickyIdle StickyMode = iota
	// StickyPinned means the active header is drawn at the top edge.
	StickyPinned
	// StickyTransitioning means the next header is within one header height of
	// the top edge and is replacing the active one.
	StickyTransitioning
)

func (m StickyMode) String() string {
	switch m {
	case StickyPinned:
		return "pinned"
	case StickyTransitioning:
		return "transitioning"
	}
	return "idle"
}

// StickyState describes where the overlay sits in the current frame.
type StickyState struct {
	Mode StickyMode
	// Active is the position of the header in force, or -1.
	Active int
	// Pending is the position of the incoming header while transitioning, or
	// -1.
	Pending int
	// Offset is the row offset of the active header's overlay relative to the
	// top edge. It is zero or negative.
	Offset int
	// Height is the measured height of the active header.
	Height int
	// Progress is the fraction of the active header covered by the incoming
	// one, in [0,1]. A [List] never reports 1: once the incoming header's top
	// reaches the edge it is the first visible row and the next frame is
	// pinned on it.
	Progress float64
	// Fade is true if the transition cross-fades instead of pushing.
	Fade bool
}

// OutgoingOpacity returns the opacity of the active header's overlay.
func (s StickyState) OutgoingOpacity() float64 {
	if s.Mode != StickyTransitioning || !s.Fade {
		return 1
	}
	return 1 - s.Progress
}

// IncomingOpacity returns the opacity of the incoming header.
func (s StickyState) IncomingOpacity() float64 {
	if s.Mode != StickyTransitioning || !s.Fade {
		return 1
	}
	return s.Progress
}

var idleState = StickyState{Mode: StickyIdle, Active: -1, Pending: -1}

// StickyHeaderController decides, for the current layout, which item is the
// active sticky header and where its overlay goes. It never mutates the items
// it inspects.
type StickyHeaderController struct {
	layout    StickyLayout
	predicate func(position int) bool
	fade      bool
}

// NewStickyHeaderController returns a controller over layout. predicate
// reports whether the item at a position is a sticky header.
func NewStickyHeaderController(layout StickyLayout, fade bool, predicate func(position int) bool) *StickyHeaderController {
	return &StickyHeaderController{
		layout:    layout,
		predicate: predicate,
		fade:      fade,
	}
}

// SetFade switches between push (false) and cross-fade (true) transitions.
func (c *StickyHeaderController) SetFade(fade bool) *StickyHeaderController {
	c.fade = fade
	return c
}

// Fade reports whether transitions cross-fade.
func (c *StickyHeaderController) Fade() bool {
	return c.fade
}

// Evaluate computes the overlay state for the current layout.
func (c *StickyHeaderController) Evaluate() StickyState {
	if c.layout == nil || c.predicate == nil {
		return idleState
	}
	count := c.layout.ItemCount()
	first := c.layout.FirstVisiblePosition()
	if count == 0 || first < 0 || first >= count {
		return idleState
	}

	active := c.HeaderPositionFor(first)
	if active < 0 {
		return idleState
	}

	state := StickyState{
		Mode:    StickyPinned,
		Active:  active,
		Pending: -1,
		Height:  max(c.layout.RowHeight(active), 1),
		Fade:    c.fade,
	}

	next := c.nextHeaderPosition(active, count)
	if next < 0 {
		return state
	}
	top, _, ok := c.layout.RowBounds(next)
	if !ok || top < 0 || top >= state.Height {
		return state
	}

	// Headers without rows between them swap directly at the boundary. The
	// overlay follows the real row so the two never overlap.
	if next == active+1 {
		state.Offset = min(top-state.Height, 0)
		return state
	}

	state.Mode = StickyTransitioning
	state.Pending = next
	state.Progress = TransitionProgress(top, state.Height)
	if !c.fade {
		state.Offset = top - state.Height
	}
	return state
}

// HeaderPositionFor returns the nearest sticky header at or above position,
// or -1.
func (c *StickyHeaderController) HeaderPositionFor(position int) int {
	for p := position; p >= 0; p-- {
		if c.predicate(p) {
			return p
		}
	}
	return -1
}

func (c *StickyHeaderController) nextHeaderPosition(active, count int) int {
	for p := active + 1; p < count; p++ {
		if c.predicate(p) {
			return p
		}
	}
	return -1
}

// TransitionProgress returns how far an incoming header whose top edge sits
// at top has covered an outgoing header of the given height. It is 0 when the
// incoming header is a full height away and 1 when it reaches the top edge.
func TransitionProgress(top, height int) float64 {
	if height <= 0 {
		return 1
	}
	progress := float64(height-top) / float64(height)
	return min(max(progress, 0), 1)
}
