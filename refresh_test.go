package properlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakePoster collects posted functions until run is called.
type fakePoster struct {
	delays  []time.Duration
	pending []func()
}

func (p *fakePoster) Post(f func()) {
	p.pending = append(p.pending, f)
}

func (p *fakePoster) PostDelayed(d time.Duration, f func()) {
	p.delays = append(p.delays, d)
	p.pending = append(p.pending, f)
}

func (p *fakePoster) run() {
	pending := p.pending
	p.pending = nil
	for _, f := range pending {
		f()
	}
}

type refreshHost struct {
	list      *List
	items     []AdapterItem
	valid     bool
	refreshes int
	fetches   int
}

func newRefreshHost(items ...AdapterItem) *refreshHost {
	list := NewList()
	list.SetRect(0, 0, 10, 4)
	return &refreshHost{list: list, items: items, valid: true}
}

func (h *refreshHost) config() RefreshConfig {
	return RefreshConfig{
		Items: func(*Adapter) []AdapterItem {
			h.fetches++
			return h.items
		},
		IsLifecycleValid: func() bool { return h.valid },
		OnRefreshed:      func() { h.refreshes++ },
	}
}

func (h *refreshHost) refresher(poster Poster, cfg RefreshConfig) *Refresher {
	return NewRefresher(poster, func() *List { return h.list }, cfg)
}

func TestRefresher_Refresh(t *testing.T) {
	host := newRefreshHost(textItems("a", "b")...)
	r := host.refresher(nil, host.config())
	assert.Nil(t, r.Adapter())

	r.Refresh(SetDataAndRefresh)

	adapter := r.Adapter()
	require.NotNil(t, adapter)
	assert.Same(t, adapter, host.list.Adapter())
	assert.Equal(t, []string{"a", "b"}, texts(adapter.Items()))
	assert.Equal(t, 1, host.refreshes)
	assert.False(t, host.list.HasDecoration())

	host.items = textItems("b", "c")
	r.Refresh(DispatchOnlyChanges)

	assert.Same(t, adapter, r.Adapter())
	assert.Equal(t, []string{"b", "c"}, texts(adapter.Items()))
	assert.Equal(t, 2, host.refreshes)
}

func TestRefresher_DispatchMethods(t *testing.T) {
	host := newRefreshHost(textItems("a", "b")...)
	r := host.refresher(nil, host.config())
	screen := newTestScreen(t, 10, 4)

	r.Refresh(SetDataAndRefresh)
	host.list.Draw(screen)
	require.Equal(t, 0, host.list.FirstVisiblePosition())

	host.items = textItems("x")
	r.Refresh(SetDataOnly)
	assert.Equal(t, []string{"x"}, texts(r.Adapter().Items()))
	assert.Equal(t, 0, host.list.FirstVisiblePosition(), "silent replace keeps the last layout")

	r.Refresh(SetDataAndRefresh)
	assert.Equal(t, -1, host.list.FirstVisiblePosition())

	host.list.Draw(screen)
	host.items = textItems("x", "y")
	r.Refresh(DispatchOnlyChanges)
	assert.Equal(t, -1, host.list.FirstVisiblePosition())
	assert.Equal(t, 2, host.list.ItemCount())
}

func TestRefresher_LifecycleInvalid(t *testing.T) {
	host := newRefreshHost(textItems("a")...)
	host.valid = false
	r := host.refresher(nil, host.config())

	r.Refresh(SetDataAndRefresh)

	assert.Nil(t, r.Adapter())
	assert.Zero(t, host.fetches)
	assert.Zero(t, host.refreshes)
}

func TestRefresher_LifecycleEndsBeforeLayout(t *testing.T) {
	host := newRefreshHost(textItems("a")...)
	r := host.refresher(nil, host.config())

	r.Refresh(SetDataAndRefresh, WithWaitForLayout())
	host.valid = false
	host.list.Draw(newTestScreen(t, 10, 4))

	assert.Nil(t, r.Adapter())
	assert.Zero(t, host.fetches)
}

func TestRefresher_Delay(t *testing.T) {
	host := newRefreshHost(textItems("a")...)
	poster := &fakePoster{}
	r := host.refresher(poster, host.config())

	r.Refresh(SetDataAndRefresh, WithDelay(250*time.Millisecond))

	assert.Equal(t, []time.Duration{250 * time.Millisecond}, poster.delays)
	assert.Nil(t, r.Adapter())

	poster.run()
	require.NotNil(t, r.Adapter())
	assert.Equal(t, 1, r.Adapter().ItemCount())
	assert.Equal(t, 1, host.refreshes)
}

func TestRefresher_DelayChecksLifecycleAgain(t *testing.T) {
	host := newRefreshHost(textItems("a")...)
	poster := &fakePoster{}
	r := host.refresher(poster, host.config())

	r.Refresh(SetDataAndRefresh, WithDelay(time.Second))
	host.valid = false
	poster.run()

	assert.Nil(t, r.Adapter())
	assert.Zero(t, host.fetches)
}

func TestRefresher_DelayWithoutPoster(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	host := newRefreshHost(textItems("a")...)
	cfg := host.config()
	cfg.Logger = zap.New(core)
	r := host.refresher(nil, cfg)

	r.Refresh(SetDataAndRefresh, WithDelay(time.Second))

	assert.Nil(t, r.Adapter())
	assert.Equal(t, 1, logs.FilterMessage("delayed refresh without poster").Len())
}

func TestRefresher_NoList(t *testing.T) {
	host := newRefreshHost(textItems("a")...)
	r := NewRefresher(nil, func() *List { return nil }, host.config())

	r.Refresh(SetDataAndRefresh)

	assert.Nil(t, r.Adapter())
	assert.Zero(t, host.fetches)

	r = NewRefresher(nil, nil, host.config())
	r.Refresh(DispatchOnlyChanges)
	assert.Nil(t, r.Adapter())
}

func TestRefresher_WaitForLayout(t *testing.T) {
	host := newRefreshHost(textItems("a", "b")...)
	r := host.refresher(nil, host.config())
	screen := newTestScreen(t, 10, 4)

	r.Refresh(SetDataAndRefresh, WithWaitForLayout())
	assert.Nil(t, r.Adapter())
	assert.Zero(t, host.fetches)

	host.list.Draw(screen)

	require.NotNil(t, r.Adapter())
	assert.Equal(t, 1, host.refreshes)
	assert.Equal(t, []string{"a", "b", "", ""}, screenRows(screen))
}

func TestRefresher_AttachesStickyHeadersOnce(t *testing.T) {
	host := newRefreshHost(textItems("a")...)
	cfg := host.config()
	cfg.FadeOutStickyHeaders = true
	r := host.refresher(nil, cfg)

	r.Refresh(SetDataAndRefresh)
	assert.False(t, host.list.HasDecoration())

	host.items = []AdapterItem{SectionHeaderItem("one").WithStickyHeader(true), TextItem("a")}
	r.Refresh(DispatchOnlyChanges)
	require.Len(t, host.list.Decorations(), 1)

	decoration, ok := host.list.Decorations()[0].(*StickyHeaderDecoration)
	require.True(t, ok)
	assert.True(t, decoration.Controller().Fade())

	host.items = append(host.items, SectionHeaderItem("two").WithStickyHeader(true))
	r.Refresh(DispatchOnlyChanges)
	assert.Len(t, host.list.Decorations(), 1)
}

func TestRefresher_NewAdapter(t *testing.T) {
	host := newRefreshHost(textItems("a")...)
	custom := NewAdapter()
	cfg := host.config()
	var passed *Adapter
	cfg.Items = func(adapter *Adapter) []AdapterItem {
		passed = adapter
		return host.items
	}
	cfg.NewAdapter = func() *Adapter { return custom }
	r := host.refresher(nil, cfg)

	r.Refresh(DispatchOnlyChanges)

	assert.Same(t, custom, passed)
	assert.Same(t, custom, r.Adapter())
}

func TestRefresher_InvalidItems(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	host := newRefreshHost(TextItem("a"), NewItem("", TextContent{Text: "b"}))
	cfg := host.config()
	cfg.Logger = zap.New(core)
	r := host.refresher(nil, cfg)

	r.Refresh(SetDataAndRefresh)

	assert.Nil(t, r.Adapter())
	assert.Zero(t, host.refreshes)
	entries := logs.FilterMessage("refresh failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "set_data_and_refresh", entries[0].ContextMap()["method"])
}

func TestDispatchMethod_String(t *testing.T) {
	assert.Equal(t, "dispatch_only_changes", DispatchOnlyChanges.String())
	assert.Equal(t, "set_data_and_refresh", SetDataAndRefresh.String())
	assert.Equal(t, "set_data_only", SetDataOnly.String())
	assert.Equal(t, "unknown", DispatchMethod(7).String())
}
