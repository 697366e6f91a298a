package properlist

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidItem is returned when a candidate sequence contains an item which
// cannot be placed in the list. The adapter is left unchanged.
var ErrInvalidItem = errors.New("invalid adapter item")

// ItemError describes the offending item of a rejected sequence.
type ItemError struct {
	Position int
	Reason   string
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item at position %d: %s", e.Position, e.Reason)
}

func (e *ItemError) Unwrap() error {
	return ErrInvalidItem
}

func validateItems(items []AdapterItem) error {
	for position, item := range items {
		switch {
		case item.viewType == "":
			return &ItemError{Position: position, Reason: "empty view type"}
		case item.content == nil:
			return &ItemError{Position: position, Reason: "nil content"}
		case !isComparable(item.key):
			return &ItemError{Position: position, Reason: "key is not comparable"}
		case !isComparable(item.directives.Tag):
			return &ItemError{Position: position, Reason: "view tag is not comparable"}
		}
		if _, ok := item.content.(ContentEqualer); !ok && !isComparable(item.content) {
			return &ItemError{Position: position, Reason: "content is not comparable and has no EqualContent"}
		}
	}
	return nil
}

// isComparable reports whether v can be compared with == without panicking.
// Nil is comparable.
func isComparable(v any) bool {
	return v == nil || reflect.ValueOf(v).Comparable()
}
