package properlist

import "fmt"

// OpKind is the kind of a structural list operation.
type OpKind int

const (
	OpInsert OpKind = iota
	OpRemove
	OpMove
	OpChange
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpMove:
		return "move"
	case OpChange:
		return "change"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Operation is one structural change. Operations returned by [Diff] are meant
// to be applied in order: every position refers to the list as it is after
// all previous operations were applied.
type Operation struct {
	Kind OpKind
	// Position is the first affected position. For moves it is the source.
	Position int
	// Count is the number of affected items. Moves always have a count of 1.
	Count int
	// To is the destination of a move.
	To int
	// Items holds the new items of inserts and changes.
	Items []AdapterItem
}

func (o Operation) String() string {
	if o.Kind == OpMove {
		return fmt.Sprintf("move %d->%d", o.Position, o.To)
	}
	return fmt.Sprintf("%s %d+%d", o.Kind, o.Position, o.Count)
}

// Diff computes the operations transforming old into new. Items are matched
// by identity ([AdapterItem.SameIdentity]); when several old items share an
// identity, the first unconsumed one in positional order wins. Matched items
// keep their identity and are moved rather than removed and inserted again;
// matched items with different content are reported as changed.
//
// The result is sufficient but not necessarily minimal. An error is returned,
// before anything is computed, if new contains an invalid item.
func Diff(old, new []AdapterItem) ([]Operation, error) {
	if err := validateItems(new); err != nil {
		return nil, err
	}

	match, consumed := matchItems(old, new)

	var ops []Operation

	// Remove unmatched items from the back so earlier positions stay valid.
	for i := len(old) - 1; i >= 0; i-- {
		if !consumed[i] {
			ops = appendOperation(ops, Operation{Kind: OpRemove, Position: i, Count: 1})
		}
	}

	// Remaining old indices in their current order. Inserted items are marked
	// with -1; they only ever occupy finished positions.
	current := make([]int, 0, len(new))
	for i := range old {
		if consumed[i] {
			current = append(current, i)
		}
	}

	for j, item := range new {
		source := match[j]
		if source < 0 {
			ops = appendOperation(ops, Operation{Kind: OpInsert, Position: j, Count: 1, Items: []AdapterItem{item}})
			current = append(current, 0)
			copy(current[j+1:], current[j:])
			current[j] = -1
			continue
		}

		from := j
		for current[from] != source {
			from++
		}
		if from != j {
			ops = appendOperation(ops, Operation{Kind: OpMove, Position: from, Count: 1, To: j})
			copy(current[j+1:from+1], current[j:from])
			current[j] = source
		}

		if !old[source].SameContent(item) {
			ops = appendOperation(ops, Operation{Kind: OpChange, Position: j, Count: 1, Items: []AdapterItem{item}})
		}
	}

	return ops, nil
}

// matchItems pairs every new item with the first unconsumed old item of the
// same identity. match[j] is -1 for new items without a partner.
func matchItems(old, new []AdapterItem) (match []int, consumed []bool) {
	buckets := make(map[ViewType][]int)
	for i, item := range old {
		buckets[item.viewType] = append(buckets[item.viewType], i)
	}

	match = make([]int, len(new))
	consumed = make([]bool, len(old))
	for j, item := range new {
		match[j] = -1
		// Drop the consumed prefix so later scans start further in.
		candidates := buckets[item.viewType]
		for len(candidates) > 0 && consumed[candidates[0]] {
			candidates = candidates[1:]
		}
		buckets[item.viewType] = candidates

		for _, i := range candidates {
			if consumed[i] || !old[i].SameIdentity(item) {
				continue
			}
			match[j] = i
			consumed[i] = true
			break
		}
	}
	return match, consumed
}

// appendOperation appends op, merging it into the previous operation when
// both describe one contiguous range.
func appendOperation(ops []Operation, op Operation) []Operation {
	if len(ops) == 0 {
		return append(ops, op)
	}
	last := &ops[len(ops)-1]
	if last.Kind != op.Kind {
		return append(ops, op)
	}
	switch op.Kind {
	case OpInsert, OpChange:
		if last.Position+last.Count == op.Position {
			last.Items = append(last.Items, op.Items...)
			last.Count += op.Count
			return ops
		}
	case OpRemove:
		if op.Position+op.Count == last.Position {
			last.Position = op.Position
			last.Count += op.Count
			return ops
		}
	}
	return append(ops, op)
}
