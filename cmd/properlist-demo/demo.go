package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/xqrs/properlist"
	"github.com/xqrs/properlist/help"
	"github.com/xqrs/properlist/internal/config"
	"github.com/xqrs/properlist/keybind"
	"github.com/xqrs/properlist/layers"
)

const (
	bottomTag = "BOTTOM_ITEM"

	mainLayer = "main"
	helpLayer = "help"
)

type demoKeyMap struct {
	Fade    keybind.Keybind
	Shuffle keybind.Keybind
	Remove  keybind.Keybind
	Reset   keybind.Keybind
	Help    keybind.Keybind
	Close   keybind.Keybind
	Quit    keybind.Keybind
}

func defaultDemoKeyMap() demoKeyMap {
	return demoKeyMap{
		Fade:    keybind.NewKeybind(keybind.WithKeys("f"), keybind.WithHelp("f", "fade")),
		Shuffle: keybind.NewKeybind(keybind.WithKeys("s"), keybind.WithHelp("s", "shuffle")),
		Remove:  keybind.NewKeybind(keybind.WithKeys("r"), keybind.WithHelp("r", "remove")),
		Reset:   keybind.NewKeybind(keybind.WithKeys("R"), keybind.WithHelp("R", "reset"), keybind.WithDisabled()),
		Help:    keybind.NewKeybind(keybind.WithKeys("?"), keybind.WithHelp("?", "help")),
		Close:   keybind.NewKeybind(keybind.WithKeys("esc", "?"), keybind.WithHelp("esc", "close help")),
		Quit:    keybind.NewKeybind(keybind.WithKeys("q", "ctrl+c"), keybind.WithHelp("q", "quit")),
	}
}

type demo struct {
	cfg    config.Demo
	logger *zap.Logger
	keys   demoKeyMap

	list      *properlist.List
	refresher *properlist.Refresher
	root      *layers.Layers
	fullHelp  *help.Help

	// order holds the numbers of the text items currently shown.
	order []int
	rng   *rand.Rand
	fade  bool
}

func newDemo(poster properlist.Poster, cfg config.Demo, logger *zap.Logger) *demo {
	d := &demo{
		cfg:    cfg,
		logger: logger,
		keys:   defaultDemoKeyMap(),
		rng:    rand.New(rand.NewPCG(uint64(cfg.ItemCount), 7)),
		fade:   cfg.Fade,
	}
	d.resetOrder()
	d.updateKeys()

	d.list = properlist.NewList()
	d.list.SetScrollBarVisible(cfg.ScrollBar).SetGap(cfg.Gap)
	d.list.SetBorders(properlist.BordersAll).SetBorderSet(properlist.BorderSetRound())
	d.list.SetTitle(" properlist ")
	d.list.SetFooter(" loading… ")

	d.refresher = properlist.NewRefresher(poster, func() *properlist.List { return d.list }, properlist.RefreshConfig{
		Items:                d.items,
		OnRefreshed:          d.refreshed,
		FadeOutStickyHeaders: cfg.Fade,
		Logger:               logger,
	})

	shortHelp := help.New().SetKeyMap(d)
	d.fullHelp = help.New().SetKeyMap(d).SetShowAll(true)
	d.fullHelp.SetBorders(properlist.BordersAll).SetBorderSet(properlist.BorderSetRound())
	d.fullHelp.SetBorderPadding(0, 0, 1, 1)
	d.fullHelp.SetTitle(" keys ")

	d.root = layers.New().
		AddLayer(&demoView{List: d.list, demo: d, help: shortHelp},
			layers.WithName(mainLayer), layers.WithResize(true))
	return d
}

// start schedules the first refresh.
func (d *demo) start() {
	d.refresher.Refresh(properlist.SetDataAndRefresh, properlist.WithDelay(d.cfg.RefreshDelay))
}

func (d *demo) view() properlist.Primitive {
	return d.root
}

// ShortHelp returns the bindings shown below the list.
func (d *demo) ShortHelp() []keybind.Keybind {
	listKeys := d.list.KeyMap()
	return []keybind.Keybind{listKeys.Up, listKeys.Down, d.keys.Fade, d.keys.Shuffle, d.keys.Help, d.keys.Quit}
}

// FullHelp returns list navigation and demo actions as two columns.
func (d *demo) FullHelp() [][]keybind.Keybind {
	listKeys := d.list.KeyMap()
	return [][]keybind.Keybind{
		{listKeys.Up, listKeys.Down, listKeys.PageUp, listKeys.PageDown, listKeys.Home, listKeys.End, listKeys.Activate},
		{d.keys.Fade, d.keys.Shuffle, d.keys.Remove, d.keys.Reset, d.keys.Close, d.keys.Quit},
	}
}

func (d *demo) resetOrder() {
	d.order = make([]int, d.cfg.ItemCount)
	for i := range d.order {
		d.order[i] = i + 1
	}
}

// updateKeys enables the bindings which can change the current order.
func (d *demo) updateKeys() {
	d.keys.Remove.SetEnabled(len(d.order) >= 3)

	modified := len(d.order) != d.cfg.ItemCount
	for i, n := range d.order {
		if n != i+1 {
			modified = true
			break
		}
	}
	d.keys.Reset.SetEnabled(modified)
}

func (d *demo) items(adapter *properlist.Adapter) []properlist.AdapterItem {
	items := make([]properlist.AdapterItem, 0, len(d.order)+len(d.order)/max(d.cfg.SectionEvery, 1)+2)

	items = append(items, properlist.DividerItem('★', "properlist").
		WithKey("top").
		WithTopBottomMargins(1))

	for i, n := range d.order {
		if every := d.cfg.SectionEvery; every > 0 && (i+1)%every == 0 {
			section := (i + 1) / every
			items = append(items, properlist.SectionHeaderItem(fmt.Sprintf("SECTION HEADER %d", section)).
				WithKey(fmt.Sprintf("section-%d", section)).
				WithStickyHeader(true))
		}
		items = append(items, properlist.TextItem(fmt.Sprintf("Text item %d", n)).
			WithKey(n).
			WithLeftRightMargins(2).
			WithAnimation("item_fall_down").
			WithClickListener(d.clicked(n)))
	}

	items = append(items, properlist.DividerItem(0, "end").
		WithKey("bottom").
		WithMargins(0, 1, 0, 0).
		WithViewTag(bottomTag))
	return items
}

func (d *demo) clicked(n int) func(position int, item properlist.AdapterItem) {
	return func(position int, item properlist.AdapterItem) {
		d.list.SetFooter(fmt.Sprintf(" Clicked item %d ", n))
		d.logger.Info("item clicked", zap.Int("item", n), zap.Int("position", position))
	}
}

func (d *demo) refreshed() {
	adapter := d.refresher.Adapter()
	if adapter == nil {
		return
	}
	footer := fmt.Sprintf(" %d rows ", adapter.ItemCount())
	if position, ok := adapter.PositionOfTag(bottomTag); ok {
		footer = fmt.Sprintf(" %d rows, last at %d ", adapter.ItemCount(), position)
	}
	d.list.SetFooter(footer)
}

// handleKey runs demo actions. ok is false for keys the list should handle.
func (d *demo) handleKey(event *tcell.EventKey) (cmd properlist.Command, ok bool) {
	switch {
	case d.keys.Quit.Matches(event):
		return properlist.QuitCommand{}, true
	case d.keys.Help.Matches(event):
		d.toggleHelp()
	case d.keys.Fade.Matches(event):
		d.toggleFade()
	case d.keys.Shuffle.Matches(event):
		d.rng.Shuffle(len(d.order), func(i, j int) {
			d.order[i], d.order[j] = d.order[j], d.order[i]
		})
		d.refresher.Refresh(properlist.DispatchOnlyChanges)
	case d.keys.Remove.Matches(event):
		kept := d.order[:0]
		for i, n := range d.order {
			if i%3 != 2 {
				kept = append(kept, n)
			}
		}
		d.order = kept
		d.refresher.Refresh(properlist.DispatchOnlyChanges)
	case d.keys.Reset.Matches(event):
		d.resetOrder()
		d.refresher.Refresh(properlist.DispatchOnlyChanges)
	default:
		return nil, false
	}
	d.updateKeys()
	return properlist.RedrawCommand{}, true
}

func (d *demo) toggleFade() {
	d.fade = !d.fade
	for _, decoration := range d.list.Decorations() {
		if sticky, ok := decoration.(*properlist.StickyHeaderDecoration); ok {
			sticky.Controller().SetFade(d.fade)
		}
	}
	d.list.MarkDirty()
	d.logger.Debug("fade toggled", zap.Bool("fade", d.fade))
}

// toggleHelp shows the full help sized to the enabled bindings, or hides it.
func (d *demo) toggleHelp() {
	if d.root.Visible(helpLayer) {
		d.root.HideLayer(helpLayer)
		d.logger.Debug("help toggled", zap.Bool("visible", false))
		return
	}
	width, height := d.fullHelp.FullSize()
	d.root.AddLayer(&helpOverlay{Help: d.fullHelp, demo: d},
		layers.WithName(helpLayer), layers.WithOverlay(), layers.WithCentered(width+4, height+2))
	d.logger.Debug("help toggled", zap.Bool("visible", true))
}

// demoView shows the list above a single help line and routes demo keys
// before list navigation.
type demoView struct {
	*properlist.List
	demo *demo
	help *help.Help
}

func (v *demoView) GetRect() (int, int, int, int) {
	x, y, width, height := v.List.GetRect()
	_, _, _, helpHeight := v.help.GetRect()
	return x, y, width, height + helpHeight
}

func (v *demoView) SetRect(x, y, width, height int) {
	helpHeight := 0
	if height > 2 {
		helpHeight = 1
	}
	v.List.SetRect(x, y, width, height-helpHeight)
	v.help.SetRect(x, y+height-helpHeight, width, helpHeight)
}

func (v *demoView) Draw(screen tcell.Screen) {
	v.List.Draw(screen)
	v.help.Draw(screen)
}

func (v *demoView) InputHandler(event *tcell.EventKey) properlist.Command {
	if cmd, ok := v.demo.handleKey(event); ok {
		return cmd
	}
	return v.List.InputHandler(event)
}

// helpOverlay shows all bindings until it is closed.
type helpOverlay struct {
	*help.Help
	demo *demo
}

func (o *helpOverlay) InputHandler(event *tcell.EventKey) properlist.Command {
	switch {
	case o.demo.keys.Close.Matches(event):
		o.demo.toggleHelp()
		return properlist.RedrawCommand{}
	case o.demo.keys.Quit.Matches(event):
		return properlist.QuitCommand{}
	}
	return nil
}

// MouseHandler ignores clicks so the focus stays with the layers.
func (o *helpOverlay) MouseHandler(action properlist.MouseAction, event *tcell.EventMouse) (properlist.Primitive, properlist.Command) {
	return nil, nil
}
