package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestParseStroke(t *testing.T) {
	tests := []struct {
		in   string
		want stroke
		ok   bool
	}{
		{in: "g", want: stroke{key: tcell.KeyRune, r: 'g'}, ok: true},
		{in: "G", want: stroke{key: tcell.KeyRune, r: 'G'}, ok: true},
		{in: "shift+g", want: stroke{key: tcell.KeyRune, r: 'G'}, ok: true},
		{in: " Escape ", want: stroke{key: tcell.KeyEscape}, ok: true},
		{in: "Return", want: stroke{key: tcell.KeyEnter}, ok: true},
		{in: "PageDown", want: stroke{key: tcell.KeyPgDn}, ok: true},
		{in: "Ctrl+B", want: stroke{key: tcell.KeyCtrlB, mods: tcell.ModCtrl}, ok: true},
		{in: "control+shift+Up", want: stroke{key: tcell.KeyUp, mods: tcell.ModCtrl | tcell.ModShift}, ok: true},
		{in: "backtab", want: stroke{key: tcell.KeyTab, mods: tcell.ModShift}, ok: true},
		{in: "alt+space", want: stroke{key: tcell.KeyRune, r: ' ', mods: tcell.ModAlt}, ok: true},
		{in: "ctrl++", want: stroke{key: tcell.KeyRune, r: '+', mods: tcell.ModCtrl}, ok: true},
		{in: "+", want: stroke{key: tcell.KeyRune, r: '+'}, ok: true},
		{in: "f12", want: stroke{key: tcell.KeyF12}, ok: true},
		{in: "ctrl+", ok: false},
		{in: "hyper+a", ok: false},
		{in: "bb", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseStroke(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		event *tcell.EventKey
		want  bool
	}{
		{name: "rune", keys: []string{"j"}, event: tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), want: true},
		{name: "rune is case sensitive", keys: []string{"G"}, event: tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone), want: false},
		{name: "shifted rune", keys: []string{"?"}, event: tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModShift), want: true},
		{name: "named key", keys: []string{"down"}, event: tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), want: true},
		{name: "enter is not ctrl+m", keys: []string{"ctrl+m"}, event: tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), want: false},
		{name: "enter", keys: []string{"enter"}, event: tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), want: true},
		{name: "ctrl letter", keys: []string{"ctrl+f"}, event: tcell.NewEventKey(tcell.KeyCtrlF, 0, tcell.ModCtrl), want: true},
		{name: "ctrl letter without modifier", keys: []string{"ctrl+f"}, event: tcell.NewEventKey(tcell.KeyCtrlF, 0, tcell.ModNone), want: true},
		{name: "control character rune", keys: []string{"ctrl+b"}, event: tcell.NewEventKey(tcell.KeyRune, 2, tcell.ModNone), want: true},
		{name: "alt rune", keys: []string{"alt+x"}, event: tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), want: true},
		{name: "modified named key", keys: []string{"ctrl+up"}, event: tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModCtrl), want: true},
		{name: "missing modifier", keys: []string{"up"}, event: tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModCtrl), want: false},
		{name: "backtab", keys: []string{"shift+tab"}, event: tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), want: true},
		{name: "backspace", keys: []string{"backspace"}, event: tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), want: true},
		{name: "nil event", keys: []string{"j"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKeybind(WithKeys(tt.keys...))
			assert.Equal(t, tt.want, k.Matches(tt.event))
		})
	}
}

func TestMatches_AnyOf(t *testing.T) {
	up := NewKeybind(WithKeys("up", "k"))
	down := NewKeybind(WithKeys("down", "j"))

	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), down, up))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), down, up))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone)))
}

func TestKeybind_Enabled(t *testing.T) {
	k := NewKeybind(WithKeys("q", "", "nope", "ctrl+c"), WithHelp("q", "quit"))
	assert.Equal(t, []string{"q", "ctrl+c"}, k.Keys())
	assert.Equal(t, Help{Key: "q", Desc: "quit"}, k.Help())
	assert.True(t, k.Enabled())

	q := tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	k.SetEnabled(false)
	assert.False(t, k.Enabled())
	assert.False(t, k.Matches(q))

	k.SetEnabled(true)
	assert.True(t, k.Matches(q))

	assert.False(t, NewKeybind(WithKeys("q"), WithDisabled()).Matches(q))
	assert.False(t, NewKeybind(WithHelp("x", "no keys")).Enabled())
}
