// Package help renders key binding help from a [KeyMap], either as a single
// line or as aligned columns.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/xqrs/properlist"
	"github.com/xqrs/properlist/keybind"
)

// KeyMap supplies the bindings to show. Disabled bindings are skipped.
type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns keybind groups, where each top-level entry is a column.
	FullHelp() [][]keybind.Keybind
}

type Help struct {
	*properlist.Box
	Styles Styles

	keyMap         KeyMap
	showAll        bool
	shortSeparator string
	fullSeparator  string
	ellipsis       string
}

func New() *Help {
	return &Help{
		Box:            properlist.NewBox(),
		Styles:         DefaultStyles(),
		shortSeparator: " • ",
		fullSeparator:  "    ",
		ellipsis:       "…",
	}
}

// SetKeyMap sets the key map used by this help primitive.
func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	h.MarkDirty()
	return h
}

// SetShowAll switches between the single line and the column layout.
func (h *Help) SetShowAll(showAll bool) *Help {
	h.showAll = showAll
	h.MarkDirty()
	return h
}

func (h *Help) ShowAll() bool {
	return h.showAll
}

func (h *Help) SetShortSeparator(separator string) *Help {
	h.shortSeparator = separator
	return h
}

func (h *Help) SetFullSeparator(separator string) *Help {
	h.fullSeparator = separator
	return h
}

// SetEllipsis sets the marker appended when bindings are cut off.
func (h *Help) SetEllipsis(ellipsis string) *Help {
	h.ellipsis = ellipsis
	return h
}

// FullSize returns the inner width and height needed to show the full help
// without truncation.
func (h *Help) FullSize() (width, height int) {
	if h.keyMap == nil {
		return 0, 0
	}
	for _, line := range h.fullHelpSegments(h.keyMap.FullHelp(), 0) {
		width = max(width, segmentsWidth(line))
		height++
	}
	return width, height
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)

	if h.keyMap == nil {
		return
	}

	x, y, width, height := h.GetInnerRect()

	var lines [][]segment
	if h.showAll {
		lines = h.fullHelpSegments(h.keyMap.FullHelp(), width)
	} else {
		lines = [][]segment{h.shortHelpSegments(h.keyMap.ShortHelp(), width)}
	}

	for row := 0; row < len(lines) && row < height; row++ {
		drawSegments(screen, x, y+row, width, lines[row])
	}
}

// ShortHelpLine renders bindings as the single help line, without styles.
func (h *Help) ShortHelpLine(bindings []keybind.Keybind, maxWidth int) string {
	return plain(h.shortHelpSegments(bindings, maxWidth))
}

// FullHelpLines renders grouped help into full mode lines as plain text.
func (h *Help) FullHelpLines(groups [][]keybind.Keybind, maxWidth int) []string {
	styled := h.fullHelpSegments(groups, maxWidth)
	lines := make([]string, 0, len(styled))
	for _, line := range styled {
		lines = append(lines, plain(line))
	}
	return lines
}

type segment struct {
	text  string
	style tcell.Style
}

func (h *Help) shortHelpSegments(bindings []keybind.Keybind, maxWidth int) []segment {
	items := make([][]segment, 0, len(bindings))
	for _, kb := range bindings {
		if item := shortItemSegments(kb, h.Styles.ShortKeyStyle, h.Styles.ShortDescStyle); len(item) > 0 {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil
	}

	sepText := h.shortSeparator
	if sepText == "" {
		sepText = " "
	}
	sep := segment{text: sepText, style: h.Styles.ShortSeparatorStyle}

	out := cloneSegments(items[0])
	for i := 1; i < len(items); i++ {
		candidate := append(cloneSegments(out), sep)
		candidate = append(candidate, items[i]...)
		if maxWidth > 0 && segmentsWidth(candidate) > maxWidth {
			return append(out, h.truncationTail(out, maxWidth)...)
		}
		out = candidate
	}

	if maxWidth > 0 && segmentsWidth(out) > maxWidth {
		return nil
	}
	return out
}

type helpEntry struct {
	key  string
	desc string
}

type helpColumn struct {
	entries []helpEntry
	keyW    int
	colW    int
}

func helpColumns(groups [][]keybind.Keybind) []helpColumn {
	columns := make([]helpColumn, 0, len(groups))
	for _, group := range groups {
		var col helpColumn
		for _, kb := range group {
			hp := kb.Help()
			if !kb.Enabled() || (hp.Key == "" && hp.Desc == "") {
				continue
			}
			col.entries = append(col.entries, helpEntry{key: hp.Key, desc: hp.Desc})
			col.keyW = max(col.keyW, properlist.StringWidth(hp.Key))
		}
		if len(col.entries) == 0 {
			continue
		}
		for _, e := range col.entries {
			w := col.keyW + properlist.StringWidth(e.desc)
			if e.key != "" && e.desc != "" {
				w++
			}
			col.colW = max(col.colW, w)
		}
		columns = append(columns, col)
	}
	return columns
}

func (h *Help) fullHelpSegments(groups [][]keybind.Keybind, maxWidth int) [][]segment {
	columns := helpColumns(groups)
	if len(columns) == 0 {
		return nil
	}

	sepText := h.fullSeparator
	if sepText == "" {
		sepText = " "
	}
	sepW := properlist.StringWidth(sepText)

	// Columns are taken left to right until the next one would overflow.
	included, totalW := 0, 0
	for i, col := range columns {
		nextW := col.colW
		if i > 0 {
			nextW += sepW
		}
		if maxWidth > 0 && totalW+nextW > maxWidth {
			break
		}
		included++
		totalW += nextW
	}

	if included == 0 {
		return [][]segment{{{text: h.ellipsis, style: h.Styles.EllipsisStyle}}}
	}

	maxRows := 0
	for _, col := range columns[:included] {
		maxRows = max(maxRows, len(col.entries))
	}

	lines := make([][]segment, 0, maxRows)
	for row := 0; row < maxRows; row++ {
		line := make([]segment, 0, included*4)
		for i, c := range columns[:included] {
			if i > 0 {
				line = append(line, segment{text: sepText, style: h.Styles.FullSeparatorStyle})
			}
			last := i == included-1
			if row >= len(c.entries) {
				if !last {
					line = append(line, segment{text: strings.Repeat(" ", c.colW), style: h.Styles.FullDescStyle})
				}
				continue
			}
			line = append(line, h.fullCellSegments(c, c.entries[row], last)...)
		}
		lines = append(lines, line)
	}

	if included < len(columns) && len(lines) > 0 {
		lines[0] = append(lines[0], h.truncationTail(lines[0], maxWidth)...)
	}
	return lines
}

func (h *Help) fullCellSegments(c helpColumn, e helpEntry, last bool) []segment {
	cell := make([]segment, 0, 4)
	if e.key != "" {
		cell = append(cell, segment{text: e.key, style: h.Styles.FullKeyStyle})
	}
	if pad := c.keyW - properlist.StringWidth(e.key); pad > 0 {
		cell = append(cell, segment{text: strings.Repeat(" ", pad), style: h.Styles.FullKeyStyle})
	}
	if e.key != "" && e.desc != "" {
		cell = append(cell, segment{text: " ", style: h.Styles.FullDescStyle})
	}
	if e.desc != "" {
		cell = append(cell, segment{text: e.desc, style: h.Styles.FullDescStyle})
	}
	// Inner columns are padded so separators line up across rows.
	if !last {
		if pad := c.colW - segmentsWidth(cell); pad > 0 {
			cell = append(cell, segment{text: strings.Repeat(" ", pad), style: h.Styles.FullDescStyle})
		}
	}
	return cell
}

func (h *Help) truncationTail(current []segment, maxWidth int) []segment {
	if maxWidth <= 0 || h.ellipsis == "" {
		return nil
	}
	// The ellipsis is only added when it fits completely.
	tail := []segment{
		{text: " ", style: h.Styles.EllipsisStyle},
		{text: h.ellipsis, style: h.Styles.EllipsisStyle},
	}
	if segmentsWidth(current)+segmentsWidth(tail) <= maxWidth {
		return tail
	}
	return nil
}

func drawSegments(screen tcell.Screen, x, y, width int, segments []segment) {
	cursor, remaining := x, width
	for _, s := range segments {
		if s.text == "" || remaining <= 0 {
			continue
		}
		_, printed := properlist.PrintStyled(screen, s.text, cursor, y, remaining, properlist.AlignmentLeft, s.style)
		cursor += printed
		remaining -= printed
	}
}

func shortItemSegments(kb keybind.Keybind, keyStyle, descStyle tcell.Style) []segment {
	if !kb.Enabled() {
		return nil
	}
	help := kb.Help()
	switch {
	case help.Key == "" && help.Desc == "":
		return nil
	case help.Key == "":
		return []segment{{text: help.Desc, style: descStyle}}
	case help.Desc == "":
		return []segment{{text: help.Key, style: keyStyle}}
	default:
		return []segment{{text: help.Key, style: keyStyle}, {text: " ", style: descStyle}, {text: help.Desc, style: descStyle}}
	}
}

func segmentsWidth(segments []segment) int {
	width := 0
	for _, s := range segments {
		width += properlist.StringWidth(s.text)
	}
	return width
}

func cloneSegments(in []segment) []segment {
	out := make([]segment, len(in))
	copy(out, in)
	return out
}

func plain(segments []segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.text)
	}
	return b.String()
}
