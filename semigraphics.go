package properlist

// Box Drawing characters (U+2500-U+257F) used for frames and dividers.
const (
	BoxDrawingsLightHorizontal      rune = '─' // ─
	BoxDrawingsHeavyHorizontal      rune = '━' // ━
	BoxDrawingsLightVertical        rune = '│' // │
	BoxDrawingsHeavyVertical        rune = '┃' // ┃
	BoxDrawingsLightDownAndRight    rune = '┌' // ┌
	BoxDrawingsHeavyDownAndRight    rune = '┏' // ┏
	BoxDrawingsLightDownAndLeft     rune = '┐' // ┐
	BoxDrawingsHeavyDownAndLeft     rune = '┓' // ┓
	BoxDrawingsLightUpAndRight      rune = '└' // └
	BoxDrawingsHeavyUpAndRight      rune = '┗' // ┗
	BoxDrawingsLightUpAndLeft       rune = '┘' // ┘
	BoxDrawingsHeavyUpAndLeft       rune = '┛' // ┛
	BoxDrawingsLightArcDownAndRight rune = '╭' // ╭
	BoxDrawingsLightArcDownAndLeft  rune = '╮' // ╮
	BoxDrawingsLightArcUpAndLeft    rune = '╯' // ╯
	BoxDrawingsLightArcUpAndRight   rune = '╰' // ╰
)
