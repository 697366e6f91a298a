// Package keybind binds human readable key names such as "ctrl+d", "pgdn" or
// "G" to actions and matches them against tcell key events.
package keybind

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Keybind is a set of key strokes triggering one action, plus the text shown
// for it in help views. A disabled binding matches nothing and is left out
// of help.
type Keybind struct {
	keys     []string
	strokes  []stroke
	help     Help
	disabled bool
}

// Help is the text of a binding in help views.
type Help struct {
	Key  string
	Desc string
}

type Option func(*Keybind)

// NewKeybind returns an enabled binding configured by options.
func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

// WithKeys sets the key names. Names which do not parse are dropped.
func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		k.keys, k.strokes = nil, nil
		for _, key := range keys {
			s, ok := parseStroke(key)
			if !ok {
				continue
			}
			k.keys = append(k.keys, strings.TrimSpace(key))
			k.strokes = append(k.strokes, s)
		}
	}
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.help = Help{Key: key, Desc: desc}
	}
}

// WithDisabled creates the binding disabled.
func WithDisabled() Option {
	return func(k *Keybind) {
		k.disabled = true
	}
}

// Keys returns the key names the binding was created with.
func (k Keybind) Keys() []string {
	return k.keys
}

func (k Keybind) Help() Help {
	return k.help
}

// Enabled reports whether the binding is enabled and has at least one key.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.strokes) > 0
}

// SetEnabled enables or disables the binding.
func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

// Matches reports whether event triggers k.
func (k Keybind) Matches(event *tcell.EventKey) bool {
	if event == nil || k.disabled {
		return false
	}
	s := eventStroke(event)
	for _, candidate := range k.strokes {
		if candidate == s {
			return true
		}
	}
	return false
}

// Matches reports whether event triggers any of keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	for _, k := range keybinds {
		if k.Matches(event) {
			return true
		}
	}
	return false
}

// stroke is one key combination in the form tcell reports it. r is only set
// for tcell.KeyRune.
type stroke struct {
	key  tcell.Key
	r    rune
	mods tcell.ModMask
}

var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"pgup":      tcell.KeyPgUp,
	"pageup":    tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"pagedown":  tcell.KeyPgDn,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"insert":    tcell.KeyInsert,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

var modifiers = map[string]tcell.ModMask{
	"ctrl":    tcell.ModCtrl,
	"control": tcell.ModCtrl,
	"alt":     tcell.ModAlt,
	"shift":   tcell.ModShift,
	"meta":    tcell.ModMeta,
}

// parseStroke parses names like "g", "G", "ctrl+f", "alt+x", "shift+tab" or
// "ctrl++". Modifier and key names are case insensitive; single characters
// are not.
func parseStroke(name string) (stroke, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return stroke{}, false
	}

	// The key is everything after the last separator, so "ctrl++" binds '+'.
	primary, prefix := name, ""
	if i := strings.LastIndex(name[:len(name)-1], "+"); i >= 0 {
		primary, prefix = name[i+1:], name[:i]
	}

	var mods tcell.ModMask
	if prefix != "" {
		for _, part := range strings.Split(prefix, "+") {
			mod, ok := modifiers[strings.ToLower(strings.TrimSpace(part))]
			if !ok {
				return stroke{}, false
			}
			mods |= mod
		}
	}

	switch lower := strings.ToLower(primary); {
	case lower == "backtab":
		return stroke{key: tcell.KeyTab, mods: mods | tcell.ModShift}, true
	case lower == "space":
		return runeStroke(' ', mods), true
	case len([]rune(primary)) == 1:
		return runeStroke([]rune(primary)[0], mods), true
	default:
		key, ok := namedKeys[lower]
		if !ok {
			return stroke{}, false
		}
		return stroke{key: key, mods: mods}, true
	}
}

func runeStroke(r rune, mods tcell.ModMask) stroke {
	if mods&tcell.ModCtrl != 0 {
		lower := r | 0x20
		if lower >= 'a' && lower <= 'z' {
			return stroke{key: tcell.KeyCtrlA + tcell.Key(lower-'a'), mods: mods}
		}
	}
	// Shift is part of the character itself.
	if mods&tcell.ModShift != 0 {
		r = []rune(strings.ToUpper(string(r)))[0]
	}
	return stroke{key: tcell.KeyRune, r: r, mods: mods &^ tcell.ModShift}
}

// eventStroke converts event into the form produced by parseStroke.
func eventStroke(event *tcell.EventKey) stroke {
	key, mods := event.Key(), event.Modifiers()
	switch {
	case key == tcell.KeyRune:
		return stroke{key: key, r: event.Rune(), mods: mods &^ tcell.ModShift}
	case key == tcell.KeyBacktab:
		return stroke{key: tcell.KeyTab, mods: mods | tcell.ModShift}
	case key == tcell.KeyBackspace:
		return stroke{key: tcell.KeyBackspace2, mods: mods}
	case isCtrlLetter(key):
		return stroke{key: key, mods: mods | tcell.ModCtrl}
	}
	return stroke{key: key, mods: mods}
}

// isCtrlLetter reports whether key is a control letter without a key of its
// own. Tab, enter and backspace share codes with ctrl+i, ctrl+m and ctrl+h.
func isCtrlLetter(key tcell.Key) bool {
	switch key {
	case tcell.KeyTab, tcell.KeyEnter, tcell.KeyBackspace:
		return false
	}
	return key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ
}
