package properlist

import (
	"time"

	"go.uber.org/zap"
)

// DispatchMethod selects how a refresh hands new items to the adapter.
type DispatchMethod int

const (
	// DispatchOnlyChanges reconciles the new items against the current ones
	// and emits fine-grained notifications.
	DispatchOnlyChanges DispatchMethod = iota
	// SetDataAndRefresh replaces all items and notifies a full data change.
	SetDataAndRefresh
	// SetDataOnly replaces all items without notifying.
	SetDataOnly
)

func (m DispatchMethod) String() string {
	switch m {
	case DispatchOnlyChanges:
		return "dispatch_only_changes"
	case SetDataAndRefresh:
		return "set_data_and_refresh"
	case SetDataOnly:
		return "set_data_only"
	default:
		return "unknown"
	}
}

// Poster runs functions on the event loop. [Application] implements it.
type Poster interface {
	Post(f func())
	PostDelayed(d time.Duration, f func())
}

// RefreshConfig describes the host of a [Refresher]. Items is required;
// everything else is optional.
type RefreshConfig struct {
	// Items returns the items to show. The adapter is passed so it can be
	// tweaked before the items are applied.
	Items func(adapter *Adapter) []AdapterItem

	// IsLifecycleValid is consulted before every refresh step. A nil func
	// means always valid.
	IsLifecycleValid func() bool

	// OnRefreshed runs after each completed refresh.
	OnRefreshed func()

	// FadeOutStickyHeaders selects fade instead of push for sticky header
	// transitions.
	FadeOutStickyHeaders bool

	// NewAdapter creates the adapter on first refresh.
	NewAdapter func() *Adapter

	Logger *zap.Logger
}

// Refresher fills a [List] from a [RefreshConfig]: it creates the adapter on
// first use, dispatches new items and attaches the sticky header decoration
// once sticky headers appear.
type Refresher struct {
	poster Poster
	list   func() *List
	cfg    RefreshConfig
	logger *zap.Logger
}

// NewRefresher returns a refresher for the list returned by list. The func
// may return nil while the list does not exist yet; refreshes are no-ops
// then.
func NewRefresher(poster Poster, list func() *List, cfg RefreshConfig) *Refresher {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		poster: poster,
		list:   list,
		cfg:    cfg,
		logger: logger,
	}
}

// RefreshOption configures a single refresh.
type RefreshOption func(*refreshOptions)

type refreshOptions struct {
	delay         time.Duration
	waitForLayout bool
}

// WithDelay postpones the refresh by d. A delayed refresh does not wait for
// layout.
func WithDelay(d time.Duration) RefreshOption {
	return func(o *refreshOptions) {
		o.delay = d
	}
}

// WithWaitForLayout defers populating until the list has been laid out.
func WithWaitForLayout() RefreshOption {
	return func(o *refreshOptions) {
		o.waitForLayout = true
	}
}

// Adapter returns the adapter once it has been set on the list, or nil.
func (r *Refresher) Adapter() *Adapter {
	list := r.currentList()
	if list == nil {
		return nil
	}
	return list.Adapter()
}

// Refresh fetches new items and hands them to the adapter using method.
// Must be called from the event loop.
func (r *Refresher) Refresh(method DispatchMethod, opts ...RefreshOption) {
	var o refreshOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !r.lifecycleValid() {
		r.logger.Debug("refresh skipped", zap.String("reason", "lifecycle"))
		return
	}

	if o.delay > 0 {
		if r.poster == nil {
			r.logger.Warn("delayed refresh without poster", zap.Duration("delay", o.delay))
			return
		}
		r.poster.PostDelayed(o.delay, func() {
			r.Refresh(method)
		})
		return
	}

	list := r.currentList()
	if list == nil {
		r.logger.Debug("refresh skipped", zap.String("reason", "no list"))
		return
	}

	if o.waitForLayout {
		list.RunAfterLayout(func() {
			r.populate(list, method)
		})
		return
	}
	r.populate(list, method)
}

func (r *Refresher) populate(list *List, method DispatchMethod) {
	if !r.lifecycleValid() {
		r.logger.Debug("populate skipped", zap.String("reason", "lifecycle"))
		return
	}

	adapter := list.Adapter()
	if adapter == nil {
		adapter = r.newAdapter()
	}

	var items []AdapterItem
	if r.cfg.Items != nil {
		items = r.cfg.Items(adapter)
	}

	var err error
	switch method {
	case SetDataAndRefresh:
		err = adapter.SetItems(items, true)
	case SetDataOnly:
		err = adapter.SetItems(items, false)
	default:
		err = adapter.UpdateItems(items)
	}
	if err != nil {
		r.logger.Error("refresh failed",
			zap.Stringer("method", method),
			zap.Error(err))
		return
	}

	if adapter.HasStickyHeaders() && !list.HasDecoration() {
		AttachStickyHeaderBehavior(list, r.cfg.FadeOutStickyHeaders, adapter.IsStickyHeader)
	}

	if list.Adapter() == nil {
		list.SetAdapter(adapter)
	}

	r.logger.Debug("refreshed",
		zap.Stringer("method", method),
		zap.Int("count", adapter.ItemCount()))
	if r.cfg.OnRefreshed != nil {
		r.cfg.OnRefreshed()
	}
}

func (r *Refresher) newAdapter() *Adapter {
	if r.cfg.NewAdapter != nil {
		if adapter := r.cfg.NewAdapter(); adapter != nil {
			return adapter
		}
	}
	return NewAdapter(WithLogger(r.logger))
}

func (r *Refresher) lifecycleValid() bool {
	return r.cfg.IsLifecycleValid == nil || r.cfg.IsLifecycleValid()
}

func (r *Refresher) currentList() *List {
	if r.list == nil {
		return nil
	}
	return r.list()
}
