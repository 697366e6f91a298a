package help

import (
	"github.com/gdamore/tcell/v2"

	"github.com/xqrs/properlist"
)

type Styles struct {
	ShortKeyStyle       tcell.Style
	ShortDescStyle      tcell.Style
	ShortSeparatorStyle tcell.Style

	FullKeyStyle       tcell.Style
	FullDescStyle      tcell.Style
	FullSeparatorStyle tcell.Style

	EllipsisStyle tcell.Style
}

// DefaultStyles derives the help styles from [properlist.Styles].
func DefaultStyles() Styles {
	background := tcell.StyleDefault.Background(properlist.Styles.PrimitiveBackgroundColor)
	key := background.Foreground(properlist.Styles.SecondaryTextColor)
	desc := background.Foreground(properlist.Styles.PrimaryTextColor)
	dim := desc.Dim(true)
	return Styles{
		ShortKeyStyle:       key,
		ShortDescStyle:      desc,
		ShortSeparatorStyle: dim,
		FullKeyStyle:        key,
		FullDescStyle:       desc,
		FullSeparatorStyle:  dim,
		EllipsisStyle:       dim,
	}
}
