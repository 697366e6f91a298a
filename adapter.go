package properlist

import (
	"go.uber.org/zap"
)

// Adapter holds the items shown by a list and translates changes to them into
// structural notifications.
//
// An Adapter is not safe for concurrent use. Like every primitive it must only
// be touched from the application's event loop (see [Application.Post]).
type Adapter struct {
	items    registry
	notifier ChangeNotifier
	logger   *zap.Logger
}

// AdapterOption configures an [Adapter].
type AdapterOption func(*Adapter)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) AdapterOption {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAdapter returns an empty adapter.
func NewAdapter(opts ...AdapterOption) *Adapter {
	a := &Adapter{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Attach sets the receiver of change notifications. Passing nil detaches the
// current one; notifications are then dropped.
func (a *Adapter) Attach(notifier ChangeNotifier) *Adapter {
	a.notifier = notifier
	return a
}

// SetItems replaces all items; nil clears them. If notify is true the
// attached notifier is told that everything changed; otherwise the caller is
// responsible for a later refresh.
func (a *Adapter) SetItems(items []AdapterItem, notify bool) error {
	if err := validateItems(items); err != nil {
		return err
	}
	a.items.replace(items)
	a.logger.Debug("items set",
		zap.Int("count", len(items)),
		zap.Bool("notify", notify))
	if notify && a.notifier != nil {
		a.notifier.NotifyDataSetChanged()
	}
	return nil
}

// UpdateItems reconciles the current items with items and emits the
// resulting operations. On error nothing is changed. A nil slice is the empty
// sequence and removes every item.
func (a *Adapter) UpdateItems(items []AdapterItem) error {
	ops, err := Diff(a.items.items, items)
	if err != nil {
		return err
	}
	for _, op := range ops {
		a.items.apply(op)
		if a.notifier != nil {
			notify(a.notifier, op)
		}
	}
	if a.logger.Core().Enabled(zap.DebugLevel) {
		a.logger.Debug("items reconciled",
			zap.Int("count", a.items.len()),
			zap.Int("operations", len(ops)),
			zap.Stringers("ops", ops))
	}
	return nil
}

// ItemAt returns the item at position. ok is false if position is out of
// range.
func (a *Adapter) ItemAt(position int) (item AdapterItem, ok bool) {
	return a.items.at(position)
}

// ItemCount returns the number of items.
func (a *Adapter) ItemCount() int {
	return a.items.len()
}

// Items returns a copy of all items.
func (a *Adapter) Items() []AdapterItem {
	return a.items.snapshot()
}

// HasStickyHeaders reports whether at least one item is a sticky header.
func (a *Adapter) HasStickyHeaders() bool {
	return a.items.hasSticky()
}

// IsStickyHeader reports whether the item at position is a sticky header. It
// is false for positions out of range.
func (a *Adapter) IsStickyHeader(position int) bool {
	item, ok := a.items.at(position)
	return ok && item.sticky
}

// PositionOfTag returns the position of the first item tagged with tag.
func (a *Adapter) PositionOfTag(tag any) (int, bool) {
	if tag == nil {
		return -1, false
	}
	for position, item := range a.items.items {
		if item.directives.Tag == tag {
			return position, true
		}
	}
	return -1, false
}

// ViewTypes returns the distinct view types in order of first appearance.
func (a *Adapter) ViewTypes() []ViewType {
	seen := make(map[ViewType]struct{})
	var types []ViewType
	for _, item := range a.items.items {
		if _, ok := seen[item.viewType]; ok {
			continue
		}
		seen[item.viewType] = struct{}{}
		types = append(types, item.viewType)
	}
	return types
}
