package properlist

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyAll(old []AdapterItem, ops []Operation) []AdapterItem {
	var r registry
	r.replace(old)
	for _, op := range ops {
		r.apply(op)
	}
	return r.snapshot()
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		old  []string
		new  []string
		want []Operation
	}{
		{
			name: "empty to empty",
		},
		{
			name: "identical",
			old:  []string{"a", "b", "c"},
			new:  []string{"a", "b", "c"},
		},
		{
			name: "insert in the middle",
			old:  []string{"a", "b"},
			new:  []string{"a", "c", "b"},
			want: []Operation{{Kind: OpInsert, Position: 1, Count: 1, Items: textItems("c")}},
		},
		{
			name: "fill empty",
			new:  []string{"a", "b"},
			want: []Operation{{Kind: OpInsert, Position: 0, Count: 2, Items: textItems("a", "b")}},
		},
		{
			name: "clear",
			old:  []string{"a", "b", "c"},
			want: []Operation{{Kind: OpRemove, Position: 0, Count: 3}},
		},
		{
			name: "remove every other",
			old:  []string{"a", "b", "c", "d"},
			new:  []string{"a", "c"},
			want: []Operation{
				{Kind: OpRemove, Position: 3, Count: 1},
				{Kind: OpRemove, Position: 1, Count: 1},
			},
		},
		{
			name: "swap",
			old:  []string{"a", "b"},
			new:  []string{"b", "a"},
			want: []Operation{{Kind: OpMove, Position: 1, Count: 1, To: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := Diff(textItems(tt.old...), textItems(tt.new...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ops)
			assert.Equal(t, tt.new, emptyAsNil(texts(applyAll(textItems(tt.old...), ops))))
		})
	}
}

func emptyAsNil(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}

func TestDiff_Change(t *testing.T) {
	old := []AdapterItem{
		TextItem("one").WithKey(1),
		TextItem("two").WithKey(2),
	}
	new := []AdapterItem{
		TextItem("one").WithKey(1),
		TextItem("TWO").WithKey(2),
	}

	ops, err := Diff(old, new)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, OpChange, ops[0].Kind)
	assert.Equal(t, 1, ops[0].Position)
	assert.Equal(t, []string{"one", "TWO"}, texts(applyAll(old, ops)))
}

func TestDiff_StickyFlagIsContent(t *testing.T) {
	old := []AdapterItem{SectionHeaderItem("A")}
	new := []AdapterItem{SectionHeaderItem("A").WithStickyHeader(true)}

	ops, err := Diff(old, new)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, OpChange, ops[0].Kind)
	assert.True(t, applyAll(old, ops)[0].IsStickyHeader())
}

func TestDiff_Duplicates(t *testing.T) {
	old := textItems("x", "a", "x")
	new := textItems("x", "x")

	ops, err := Diff(old, new)
	require.NoError(t, err)
	// The first unconsumed duplicate wins, so only "a" goes away.
	assert.Equal(t, []Operation{{Kind: OpRemove, Position: 1, Count: 1}}, ops)
}

func TestDiff_InvalidItem(t *testing.T) {
	old := textItems("a")
	new := []AdapterItem{TextItem("b"), NewItem("", TextContent{Text: "c"})}

	ops, err := Diff(old, new)
	assert.Nil(t, ops)
	require.ErrorIs(t, err, ErrInvalidItem)

	var itemErr *ItemError
	require.True(t, errors.As(err, &itemErr))
	assert.Equal(t, 1, itemErr.Position)
	assert.Equal(t, "empty view type", itemErr.Reason)

	_, err = Diff(old, []AdapterItem{NewItem(ViewTypeText, nil)})
	require.ErrorIs(t, err, ErrInvalidItem)
}

// rowsContent holds a slice and cannot be compared with ==.
type rowsContent struct {
	rows []string
}

func (c rowsContent) Height(width int) int {
	return len(c.rows)
}

func (c rowsContent) Draw(screen tcell.Screen, x, y, width, height int, style tcell.Style) {}

func TestDiff_UncomparableItems(t *testing.T) {
	tests := []struct {
		name   string
		item   AdapterItem
		reason string
	}{
		{
			name:   "content",
			item:   NewItem("rows", rowsContent{rows: []string{"y"}}),
			reason: "content is not comparable and has no EqualContent",
		},
		{
			name:   "key",
			item:   TextItem("b").WithKey([]int{1}),
			reason: "key is not comparable",
		},
		{
			name:   "view tag",
			item:   TextItem("b").WithViewTag(map[string]int{}),
			reason: "view tag is not comparable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := Diff(textItems("a"), []AdapterItem{TextItem("a"), tt.item})
			assert.Nil(t, ops)
			require.ErrorIs(t, err, ErrInvalidItem)

			var itemErr *ItemError
			require.True(t, errors.As(err, &itemErr))
			assert.Equal(t, 1, itemErr.Position)
			assert.Equal(t, tt.reason, itemErr.Reason)
		})
	}
}

func TestAdapter_UncomparableUpdateIsRejected(t *testing.T) {
	adapter := NewAdapter()
	require.NoError(t, adapter.SetItems(textItems("a"), false))

	assert.NotPanics(t, func() {
		err := adapter.UpdateItems([]AdapterItem{NewItem("rows", rowsContent{rows: []string{"x"}})})
		assert.ErrorIs(t, err, ErrInvalidItem)
		err = adapter.UpdateItems([]AdapterItem{TextItem("a").WithKey([]int{1})})
		assert.ErrorIs(t, err, ErrInvalidItem)
	})
	assert.Equal(t, []string{"a"}, texts(adapter.Items()))

	// Slice content with EqualContent is fine.
	lines := NewItem("lines", listContent{lines: []string{"x"}})
	require.NoError(t, adapter.UpdateItems([]AdapterItem{lines}))
	require.NoError(t, adapter.UpdateItems([]AdapterItem{NewItem("lines", listContent{lines: []string{"y"}})}))
	assert.Equal(t, 1, adapter.ItemCount())
}

func TestDiff_ViewTypeSeparatesIdentity(t *testing.T) {
	old := []AdapterItem{TextItem("a")}
	new := []AdapterItem{NewItem("other", TextContent{Text: "a"})}

	ops, err := Diff(old, new)
	require.NoError(t, err)
	assert.Equal(t, []OpKind{OpRemove, OpInsert}, kinds(ops))
}

func kinds(ops []Operation) []OpKind {
	out := make([]OpKind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind
	}
	return out
}

func randomItems(rng *rand.Rand, n int) []AdapterItem {
	letters := []string{"a", "b", "c", "d", "e", "f"}
	items := make([]AdapterItem, n)
	for i := range items {
		label := letters[rng.IntN(len(letters))]
		if rng.IntN(4) == 0 {
			items[i] = SectionHeaderItem(label).WithStickyHeader(rng.IntN(2) == 0)
			continue
		}
		items[i] = TextItem(label)
	}
	return items
}

func TestDiff_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 500; round++ {
		old := randomItems(rng, rng.IntN(12))
		new := randomItems(rng, rng.IntN(12))

		ops, err := Diff(old, new)
		require.NoError(t, err)

		got := applyAll(old, ops)
		require.Len(t, got, len(new), "round %d", round)
		for i := range new {
			require.True(t, got[i].SameIdentity(new[i]), "round %d position %d", round, i)
			require.True(t, got[i].SameContent(new[i]), "round %d position %d", round, i)
		}
		assert.Equal(t, countSticky(new), countSticky(got))

		again, err := Diff(got, new)
		require.NoError(t, err)
		assert.Empty(t, again, "round %d", round)
	}
}

func TestDiff_IdentityStability(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for round := 0; round < 200; round++ {
		n := rng.IntN(10) + 1
		old := make([]AdapterItem, n)
		for i := range old {
			old[i] = TextItem("item").WithKey(i).WithViewTag(i)
		}

		// Keep a random subset in random order and add fresh items.
		var new []AdapterItem
		for _, i := range rng.Perm(n) {
			if rng.IntN(3) > 0 {
				new = append(new, TextItem("item").WithKey(i))
			}
		}
		extra := rng.IntN(3)
		for k := 0; k < extra; k++ {
			at := rng.IntN(len(new) + 1)
			fresh := TextItem("fresh").WithKey(100 + k)
			new = append(new[:at], append([]AdapterItem{fresh}, new[at:]...)...)
		}

		ops, err := Diff(old, new)
		require.NoError(t, err)

		got := applyAll(old, ops)
		require.Len(t, got, len(new))
		for i, item := range new {
			key, _ := item.Key().(int)
			if key >= 100 {
				assert.Nil(t, got[i].Directives().Tag)
				continue
			}
			// Matched items travel through moves; they are never re-inserted.
			assert.Equal(t, key, got[i].Directives().Tag, "round %d position %d", round, i)
		}
	}
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "insert 1+2", Operation{Kind: OpInsert, Position: 1, Count: 2}.String())
	assert.Equal(t, "move 3->0", Operation{Kind: OpMove, Position: 3, To: 0, Count: 1}.String())
	assert.Equal(t, "OpKind(9)", OpKind(9).String())
}
