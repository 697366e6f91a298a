// Package layers stacks primitives on top of each other, for example a
// modal panel above a list.
package layers

import (
	"github.com/gdamore/tcell/v2"

	"github.com/xqrs/properlist"
)

// layer represents one layer of a Layers object.
type layer struct {
	name    string               // The layer's name.
	item    properlist.Primitive // The layer's primitive.
	resize  bool                 // Whether to resize the layer to the container's inner rect.
	visible bool                 // Whether this layer is visible.
	enabled bool                 // Whether this layer can receive focus and input.
	overlay bool                 // Whether this layer applies a background style to layers behind it.

	// Fixed size of a centered layer. Zero means not centered.
	width, height int
}

// Layers is a container for other primitives laid out on top of each other.
// The layers are drawn from back to front. Key events go to the front-most
// visible and enabled layer.
type Layers struct {
	*properlist.Box

	// The contained layers. Visible layers are drawn from back to front.
	layers []*layer
	// The style applied to layers behind the active overlay layer.
	backgroundLayerStyle tcell.Style

	// An optional handler which is called whenever the visibility or the order of
	// layers changes.
	changed func()
}

// Option configures a layer on Add.
type Option func(*layer)

func WithName(name string) Option {
	return func(l *layer) {
		l.name = name
	}
}

// WithResize sets whether the layer is resized to the container's inner rect.
func WithResize(resize bool) Option {
	return func(l *layer) {
		l.resize = resize
	}
}

// WithCentered gives the layer a fixed size, centered in the container's
// inner rect and clamped to it.
func WithCentered(width, height int) Option {
	return func(l *layer) {
		l.width, l.height = width, height
	}
}

func WithVisible(visible bool) Option {
	return func(l *layer) {
		l.visible = visible
	}
}

// WithEnabled sets whether the layer can receive focus and input.
func WithEnabled(enabled bool) Option {
	return func(l *layer) {
		l.enabled = enabled
	}
}

// WithOverlay marks this layer as an overlay layer. Layers behind a visible
// overlay are drawn with the background layer style and get no mouse input.
func WithOverlay() Option {
	return func(l *layer) {
		l.overlay = true
	}
}

// New returns a new Layers object.
func New() *Layers {
	return &Layers{
		Box:                  properlist.NewBox(),
		backgroundLayerStyle: tcell.StyleDefault.Dim(true),
	}
}

// SetChangedFunc sets a handler which is called whenever the visibility or the
// order of any visible layers changes.
func (l *Layers) SetChangedFunc(handler func()) *Layers {
	l.changed = handler
	return l
}

// LayerCount returns the number of layers.
func (l *Layers) LayerCount() int {
	return len(l.layers)
}

// LayerNames returns all layer names ordered from front to back, optionally
// limited to visible layers.
func (l *Layers) LayerNames(visibleOnly bool) []string {
	var names []string
	for index := len(l.layers) - 1; index >= 0; index-- {
		if !visibleOnly || l.layers[index].visible {
			names = append(names, l.layers[index].name)
		}
	}
	return names
}

// Visible returns whether the given layer is visible.
func (l *Layers) Visible(name string) bool {
	if layer := l.find(name); layer != nil {
		return layer.visible
	}
	return false
}

// AddLayer adds a new layer in front of the others. A layer with the same
// name is replaced.
func (l *Layers) AddLayer(item properlist.Primitive, opts ...Option) *Layers {
	newLayer := &layer{
		item:    item,
		visible: true,
		enabled: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(newLayer)
		}
	}
	if newLayer.name != "" {
		for index, layer := range l.layers {
			if layer.name == newLayer.name {
				l.layers = append(l.layers[:index], l.layers[index+1:]...)
				break
			}
		}
	}
	l.layers = append(l.layers, newLayer)
	l.update(newLayer.visible)
	return l
}

// RemoveLayer removes the layer with the given name.
func (l *Layers) RemoveLayer(name string) *Layers {
	for index, layer := range l.layers {
		if layer.name == name {
			l.layers = append(l.layers[:index], l.layers[index+1:]...)
			if layer.item.HasFocus() {
				layer.item.Blur()
			}
			l.update(layer.visible)
			break
		}
	}
	return l
}

// HasLayer returns true if a layer with the given name exists.
func (l *Layers) HasLayer(name string) bool {
	return l.find(name) != nil
}

// ShowLayer makes a layer visible, in addition to any other visible layers.
func (l *Layers) ShowLayer(name string) *Layers {
	if layer := l.find(name); layer != nil && !layer.visible {
		layer.visible = true
		l.update(true)
	}
	return l
}

// HideLayer makes a layer invisible.
func (l *Layers) HideLayer(name string) *Layers {
	if layer := l.find(name); layer != nil && layer.visible {
		layer.visible = false
		l.update(true)
	}
	return l
}

// ToggleLayer flips the visibility of a layer and reports whether it is
// visible afterwards.
func (l *Layers) ToggleLayer(name string) bool {
	if l.Visible(name) {
		l.HideLayer(name)
		return false
	}
	l.ShowLayer(name)
	return l.Visible(name)
}

// SendToFront moves the layer so that it is drawn last.
func (l *Layers) SendToFront(name string) *Layers {
	for index, layer := range l.layers {
		if layer.name == name {
			if index < len(l.layers)-1 {
				l.layers = append(append(l.layers[:index], l.layers[index+1:]...), layer)
			}
			l.update(layer.visible)
			break
		}
	}
	return l
}

// FrontLayer returns the front-most visible layer. If there are no visible
// layers, ("", nil) is returned.
func (l *Layers) FrontLayer() (name string, item properlist.Primitive) {
	for index := len(l.layers) - 1; index >= 0; index-- {
		if l.layers[index].visible {
			return l.layers[index].name, l.layers[index].item
		}
	}
	return
}

// Layer returns the primitive of the named layer, or nil.
func (l *Layers) Layer(name string) properlist.Primitive {
	if layer := l.find(name); layer != nil {
		return layer.item
	}
	return nil
}

// SetBackgroundLayerStyle sets the style applied to layers behind the active
// overlay layer.
func (l *Layers) SetBackgroundLayerStyle(style tcell.Style) *Layers {
	if l.backgroundLayerStyle != style {
		l.backgroundLayerStyle = style
		l.update(true)
	}
	return l
}

// Focus is called by the application when the primitive receives focus. The
// front-most enabled layer is focused along with the container.
func (l *Layers) Focus(delegate func(p properlist.Primitive)) {
	l.Box.Focus(delegate)
	l.refocus()
}

// Blur is called by the application when the primitive loses focus.
func (l *Layers) Blur() {
	l.Box.Blur()
	for _, layer := range l.layers {
		if layer.item.HasFocus() {
			layer.item.Blur()
		}
	}
}

// Draw draws this primitive onto the screen.
func (l *Layers) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	overlayIndex := l.topOverlayIndex()
	for index, layer := range l.layers {
		if !layer.visible {
			continue
		}
		switch {
		case layer.width > 0 && layer.height > 0:
			w, h := min(layer.width, width), min(layer.height, height)
			layer.item.SetRect(x+(width-w)/2, y+(height-h)/2, w, h)
		case layer.resize:
			layer.item.SetRect(x, y, width, height)
		}
		layerScreen := screen
		if overlayIndex >= 0 && index < overlayIndex {
			layerScreen = &overlayScreen{Screen: screen, overlay: l.backgroundLayerStyle}
		}
		layer.item.Draw(layerScreen)
	}
}

// InputHandler passes key events to the front-most enabled layer.
func (l *Layers) InputHandler(event *tcell.EventKey) properlist.Command {
	if top := l.topLayer(); top != nil {
		return top.item.InputHandler(event)
	}
	return nil
}

// MouseHandler passes mouse events to the visible layers from front to back
// until one takes it, never reaching layers behind an active overlay.
func (l *Layers) MouseHandler(action properlist.MouseAction, event *tcell.EventMouse) (properlist.Primitive, properlist.Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}

	overlayIndex := l.topOverlayIndex()
	for index := len(l.layers) - 1; index >= 0; index-- {
		layer := l.layers[index]
		if !layer.visible || !layer.enabled {
			continue
		}
		if overlayIndex >= 0 && index < overlayIndex {
			break
		}
		if capture, cmd := layer.item.MouseHandler(action, event); capture != nil || cmd != nil {
			return capture, cmd
		}
	}
	return nil, nil
}

func (l *Layers) find(name string) *layer {
	for _, layer := range l.layers {
		if layer.name == name {
			return layer
		}
	}
	return nil
}

// update refocuses after a structural change and reports visible changes.
func (l *Layers) update(visibleChange bool) {
	l.MarkDirty()
	l.refocus()
	if visibleChange && l.changed != nil {
		l.changed()
	}
}

// refocus keeps exactly the front-most enabled layer focused while the
// container has focus.
func (l *Layers) refocus() {
	top := l.topLayer()
	for _, layer := range l.layers {
		switch {
		case layer == top && l.Box.HasFocus():
			if !layer.item.HasFocus() {
				layer.item.Focus(func(properlist.Primitive) {})
			}
		case layer.item.HasFocus():
			layer.item.Blur()
		}
	}
}

func (l *Layers) topLayer() *layer {
	for index := len(l.layers) - 1; index >= 0; index-- {
		layer := l.layers[index]
		if layer.visible && layer.enabled {
			return layer
		}
	}
	return nil
}

// topOverlayIndex returns the index of the front-most visible and enabled
// overlay layer, or -1. Only one overlay is applied at a time.
func (l *Layers) topOverlayIndex() int {
	for index := len(l.layers) - 1; index >= 0; index-- {
		layer := l.layers[index]
		if layer.visible && layer.enabled && layer.overlay {
			return index
		}
	}
	return -1
}

type overlayScreen struct {
	tcell.Screen
	overlay tcell.Style
}

func (s *overlayScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	s.Screen.SetContent(x, y, primary, combining, applyBackgroundStyle(style, s.overlay))
}

func applyBackgroundStyle(base tcell.Style, overlay tcell.Style) tcell.Style {
	overlayFg, overlayBg, overlayAttrs := overlay.Decompose()

	// Colors are only replaced when the overlay sets them explicitly.
	if overlayFg != tcell.ColorDefault {
		base = base.Foreground(overlayFg)
	}
	if overlayBg != tcell.ColorDefault {
		base = base.Background(overlayBg)
	}

	// Attributes are added, never removed.
	_, _, baseAttrs := base.Decompose()
	return base.Attributes(baseAttrs | overlayAttrs)
}
