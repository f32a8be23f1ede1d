package common

// ANSI colour codes used by the terminal renderer
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

// PlayerColors defines the colour of each player, indexed by player id
var PlayerColors = []string{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorCyan}

// NeutralColor is used for hexes without an owner
const NeutralColor = ColorGray

// PlayerColor returns the colour of player, wrapping past the palette.
// Negative ids get NeutralColor.
func PlayerColor(player int) string {
	if player < 0 {
		return NeutralColor
	}
	return PlayerColors[player%len(PlayerColors)]
}
