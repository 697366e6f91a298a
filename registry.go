package properlist

// registry holds the adapter's ordered items. Positions are always
// 0..len(items)-1.
type registry struct {
	items []AdapterItem

	// Number of sticky header items, kept in step with every mutation.
	sticky int
}

func (r *registry) len() int {
	return len(r.items)
}

func (r *registry) at(position int) (AdapterItem, bool) {
	if position < 0 || position >= len(r.items) {
		return AdapterItem{}, false
	}
	return r.items[position], true
}

func (r *registry) snapshot() []AdapterItem {
	items := make([]AdapterItem, len(r.items))
	copy(items, r.items)
	return items
}

func (r *registry) replace(items []AdapterItem) {
	r.items = make([]AdapterItem, len(items))
	copy(r.items, items)
	r.recount()
}

func (r *registry) hasSticky() bool {
	return r.sticky > 0
}

func (r *registry) recount() {
	r.sticky = countSticky(r.items)
}

func countSticky(items []AdapterItem) int {
	n := 0
	for _, item := range items {
		if item.sticky {
			n++
		}
	}
	return n
}

// apply performs one operation. Operations produced by [Diff] are always in
// range; anything else is ignored.
func (r *registry) apply(op Operation) {
	switch op.Kind {
	case OpInsert:
		if op.Position < 0 || op.Position > len(r.items) {
			return
		}
		r.sticky += countSticky(op.Items)
		items := make([]AdapterItem, 0, len(r.items)+len(op.Items))
		items = append(items, r.items[:op.Position]...)
		items = append(items, op.Items...)
		r.items = append(items, r.items[op.Position:]...)
	case OpRemove:
		end := op.Position + op.Count
		if op.Position < 0 || end > len(r.items) {
			return
		}
		r.sticky -= countSticky(r.items[op.Position:end])
		r.items = append(r.items[:op.Position], r.items[end:]...)
	case OpMove:
		if op.Position < 0 || op.Position >= len(r.items) || op.To < 0 || op.To >= len(r.items) {
			return
		}
		item := r.items[op.Position]
		if op.Position < op.To {
			copy(r.items[op.Position:op.To], r.items[op.Position+1:op.To+1])
		} else {
			copy(r.items[op.To+1:op.Position+1], r.items[op.To:op.Position])
		}
		r.items[op.To] = item
	case OpChange:
		if op.Position < 0 || op.Position+len(op.Items) > len(r.items) {
			return
		}
		r.sticky -= countSticky(r.items[op.Position : op.Position+len(op.Items)])
		r.sticky += countSticky(op.Items)
		copy(r.items[op.Position:], op.Items)
	}
}
