package properlist

import (
	"github.com/gdamore/tcell/v2"
)

// View types of the built-in item kinds.
const (
	ViewTypeText          ViewType = "text"
	ViewTypeSectionHeader ViewType = "section_header"
	ViewTypeDivider       ViewType = "divider"
)

// TextContent is word-wrapped text.
type TextContent struct {
	Text string
}

// TextItem returns an item showing text.
func TextItem(text string) AdapterItem {
	return NewItem(ViewTypeText, TextContent{Text: text})
}

func (c TextContent) Height(width int) int {
	return max(len(WordWrap(c.Text, width)), 1)
}

func (c TextContent) Draw(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	for row, line := range WordWrap(c.Text, width) {
		if row >= height {
			break
		}
		printWithStyle(screen, line, x, y+row, width, AlignmentLeft, style, false)
	}
}

// SectionHeaderContent is a highlighted title row over a rule. Section
// headers are usually marked as sticky headers.
type SectionHeaderContent struct {
	Title string
}

// SectionHeaderItem returns a section header item. It is not sticky unless
// marked with [AdapterItem.WithStickyHeader].
func SectionHeaderItem(title string) AdapterItem {
	return NewItem(ViewTypeSectionHeader, SectionHeaderContent{Title: title})
}

func (c SectionHeaderContent) Height(width int) int {
	return 2
}

func (c SectionHeaderContent) Draw(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	style = style.
		Foreground(Styles.StickyHeaderTextColor).
		Background(Styles.StickyHeaderBackgroundColor)
	for column := x; column < x+width; column++ {
		screen.SetContent(column, y, ' ', nil, style)
	}
	printWithStyle(screen, c.Title, x+1, y, width-1, AlignmentLeft, style.Bold(true), false)

	if height < 2 {
		return
	}
	rule := style.Foreground(Styles.GraphicsColor)
	for column := x; column < x+width; column++ {
		screen.SetContent(column, y+1, BoxDrawingsLightHorizontal, nil, rule)
	}
}

// DividerContent is a horizontal rule with an optional centered label.
type DividerContent struct {
	Rune  rune
	Label string
}

// DividerItem returns a divider item drawn with r.
func DividerItem(r rune, label string) AdapterItem {
	return NewItem(ViewTypeDivider, DividerContent{Rune: r, Label: label})
}

func (c DividerContent) Height(width int) int {
	return 1
}

func (c DividerContent) Draw(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	r := c.Rune
	if r == 0 {
		r = BoxDrawingsLightHorizontal
	}
	style = style.Foreground(Styles.GraphicsColor)
	for column := x; column < x+width; column++ {
		screen.SetContent(column, y, r, nil, style)
	}
	if c.Label != "" {
		printWithStyle(screen, " "+c.Label+" ", x, y, width, AlignmentCenter, style, false)
	}
}
