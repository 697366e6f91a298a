package properlist

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// The size of the queued updates channel.
const updatesQueueSize = 100

// DoubleClickInterval specifies the maximum time between clicks to register a
// double click rather than click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction indicates one of the actions the mouse is logically doing.
type MouseAction int16

// Available mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseMiddleDown
	MouseMiddleUp
	MouseMiddleClick
	MouseMiddleDoubleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseRightDoubleClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

// mouseButtons maps tcell buttons to the actions derived from them.
var mouseButtons = []struct {
	button                  tcell.ButtonMask
	down, up, click, dclick MouseAction
}{
	{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
	{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp, MouseMiddleClick, MouseMiddleDoubleClick},
	{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightDoubleClick},
}

var mouseWheels = []struct {
	button tcell.ButtonMask
	action MouseAction
}{
	{tcell.WheelUp, MouseScrollUp},
	{tcell.WheelDown, MouseScrollDown},
	{tcell.WheelLeft, MouseScrollLeft},
	{tcell.WheelRight, MouseScrollRight},
}

// queuedUpdate is a function to run on the event loop. If done is not nil,
// it receives exactly one element after f has executed.
type queuedUpdate struct {
	f    func()
	done chan struct{}
	draw bool
}

// Application owns the screen and runs the event loop. Key events go to the
// focused primitive, mouse events to the root, and the commands they return
// are executed by the loop. It implements [Poster], so a [Refresher] can
// schedule work on it.
//
// The following displays a primitive p until the application is stopped (for
// example via QuitCommand):
//
//	if err := properlist.NewApplication().SetRoot(p).Run(); err != nil {
//	    panic(err)
//	}
type Application struct {
	sync.RWMutex

	// The application's screen. Nil before Run and after Stop.
	screen tcell.Screen

	// The primitive which currently has the keyboard focus.
	focus Primitive

	// The root primitive to be seen on the screen.
	root Primitive

	// Closing quit ends the screen's event channel.
	quit chan struct{}

	// Functions queued from goroutines, used to serialize updates to primitives.
	updates chan queuedUpdate

	// Closed when Run returns.
	stopped chan struct{}

	logger *zap.Logger

	mouse mouseState

	// forceRedraw requests a full clear before the next frame.
	forceRedraw bool
}

type mouseState struct {
	capture      Primitive        // Receives follow-up mouse events until released.
	lastX, lastY int              // The last position of the mouse.
	downX, downY int              // The position of the mouse when a button was last pressed.
	lastClick    time.Time        // The time when a mouse button was last clicked.
	lastButton   tcell.ButtonMask // The last mouse button state.
}

// NewApplication creates and returns a new application.
func NewApplication() *Application {
	return &Application{
		updates: make(chan queuedUpdate, updatesQueueSize),
		stopped: make(chan struct{}),
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger used for event loop diagnostics.
func (a *Application) SetLogger(logger *zap.Logger) *Application {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// SetScreen sets the application's screen. It has no effect once a screen is
// set. Without a screen, Run creates and initializes the terminal screen.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

// Run starts the event loop and returns after [Application.Stop] was called
// or the terminal reported an error. While running, the application fully
// claims stdin and stdout.
func (a *Application) Run() error {
	screen, err := a.initScreen()
	if err != nil {
		return err
	}

	// Panics would leave the terminal in raw mode.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	a.draw()

	events := make(chan tcell.Event, updatesQueueSize)
	quit := make(chan struct{})
	a.Lock()
	a.quit = quit
	a.Unlock()
	go screen.ChannelEvents(events, quit)
	defer close(a.stopped)

	var loopErr error
	for {
		select {
		case event := <-events:
			if event == nil {
				a.logger.Debug("event loop stopped")
				return loopErr
			}
			if err := a.handleEvent(event); err != nil {
				loopErr = err
			}
		case update := <-a.updates:
			update.f()
			if update.draw {
				a.draw()
			}
			if update.done != nil {
				update.done <- struct{}{}
			}
		}
	}
}

func (a *Application) initScreen() (tcell.Screen, error) {
	a.Lock()
	defer a.Unlock()
	if a.screen != nil {
		return a.screen, nil
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	a.screen = screen
	return screen, nil
}

func (a *Application) handleEvent(event tcell.Event) error {
	switch event := event.(type) {
	case *tcell.EventKey:
		if focus := a.GetFocus(); focus != nil && a.executeCommand(focus.InputHandler(event)) {
			a.draw()
		}
	case *tcell.EventResize:
		// Resize events can imply terminal state changes even when the size
		// is unchanged.
		a.Lock()
		a.forceRedraw = true
		a.Unlock()
		a.draw()
	case *tcell.EventMouse:
		if a.fireMouseActions(event) {
			a.draw()
		}
	case *tcell.EventError:
		a.logger.Error("terminal error", zap.Error(event))
		a.Stop()
		return event
	}
	return nil
}

// fireMouseActions derives mouse actions from event and forwards them to the
// capturing primitive or the root. It reports whether a redraw is needed.
func (a *Application) fireMouseActions(event *tcell.EventMouse) (handled bool) {
	// Follow-up actions of the same event go to the same primitive.
	var target Primitive

	fire := func(action MouseAction) {
		primitive := a.mouse.capture
		switch {
		case primitive != nil:
			target = primitive
		case target != nil:
			primitive = target
		default:
			a.RLock()
			primitive = a.root
			a.RUnlock()
		}
		if primitive == nil {
			return
		}
		capture, cmd := primitive.MouseHandler(action, event)
		if a.executeCommand(cmd) {
			handled = true
		}
		a.mouse.capture = capture
	}

	x, y := event.Position()
	buttons := event.Buttons()
	moved := x != a.mouse.downX || y != a.mouse.downY
	changes := buttons ^ a.mouse.lastButton

	if x != a.mouse.lastX || y != a.mouse.lastY {
		fire(MouseMove)
		a.mouse.lastX, a.mouse.lastY = x, y
	}

	pressed := false
	for _, b := range mouseButtons {
		if changes&b.button == 0 {
			continue
		}
		if buttons&b.button != 0 {
			fire(b.down)
			pressed = true
			continue
		}
		fire(b.up)
		if moved {
			continue
		}
		if a.mouse.lastClick.Add(DoubleClickInterval).Before(time.Now()) {
			fire(b.click)
			a.mouse.lastClick = time.Now()
		} else {
			fire(b.dclick)
			a.mouse.lastClick = time.Time{}
		}
	}

	for _, w := range mouseWheels {
		if buttons&w.button != 0 {
			fire(w.action)
		}
	}

	a.mouse.lastButton = buttons
	if pressed {
		a.mouse.downX, a.mouse.downY = x, y
	}
	return handled
}

// Stop stops the application, causing Run() to return.
func (a *Application) Stop() {
	a.Lock()
	defer a.Unlock()
	screen := a.screen
	if screen == nil {
		return
	}
	if a.quit != nil {
		close(a.quit)
		a.quit = nil
	}
	screen.Fini()
	a.screen = nil
}

// draw lays out the root to the full screen and draws it.
func (a *Application) draw() {
	a.Lock()
	screen := a.screen
	root := a.root
	forceRedraw := a.forceRedraw
	a.forceRedraw = false
	a.Unlock()

	// Not ready yet or not anymore.
	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)

	// tcell keeps a back buffer and only emits deltas, so regular frames are
	// drawn over the previous one. Forced redraws start from a cleared screen.
	if forceRedraw {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()
}

// SetRoot sets the root primitive and focuses it. Nothing is displayed
// without a root.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	if a.screen != nil {
		a.forceRedraw = true
	}
	a.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus sets the focus to a new primitive. All key events are directed to
// it. Blur() is called on the previously focused primitive and Focus() on the
// new one, which may pass the focus on.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	if a.focus != nil {
		a.focus.Blur()
	}
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}

	return a
}

// GetFocus returns the primitive which has the current focus, or nil.
func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// QueueUpdate runs f on the event loop and returns after it has executed.
// The screen is not redrawn. It must not be called from the event loop itself.
// Once the application has stopped, f is dropped and QueueUpdate returns
// immediately.
func (a *Application) QueueUpdate(f func()) *Application {
	done := make(chan struct{}, 1)
	select {
	case a.updates <- queuedUpdate{f: f, done: done}:
	case <-a.stopped:
		return a
	}
	select {
	case <-done:
	case <-a.stopped:
	}
	return a
}

// Post queues f for execution on the event loop and returns without waiting.
// The screen is redrawn after f has run. Functions posted after the
// application stopped are dropped.
func (a *Application) Post(f func()) {
	update := queuedUpdate{f: f, draw: true}
	select {
	case a.updates <- update:
	case <-a.stopped:
	default:
		// The queue is full; hand off to a goroutine so the event loop itself
		// may post without blocking.
		go func() {
			select {
			case a.updates <- update:
			case <-a.stopped:
			}
		}()
	}
}

// PostDelayed queues f for execution on the event loop once d has elapsed.
func (a *Application) PostDelayed(d time.Duration, f func()) {
	time.AfterFunc(d, func() {
		a.Post(f)
	})
}

// executeCommand runs cmd and reports whether the screen needs a redraw.
func (a *Application) executeCommand(cmd Command) bool {
	if cmd == nil {
		return false
	}

	switch c := cmd.(type) {
	case BatchCommand:
		handled := false
		for _, item := range c {
			if a.executeCommand(item) {
				handled = true
			}
		}
		return handled
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
		return false
	case SetFocusCommand:
		if c.Target == nil {
			return false
		}
		changed := a.GetFocus() != c.Target
		a.SetFocus(c.Target)
		return changed
	case ItemClickedCommand:
		a.logger.Debug("item clicked",
			zap.Int("position", c.Position),
			zap.String("view_type", string(c.Item.ViewType())))
		return true
	}

	return false
}

var _ Poster = &Application{}
