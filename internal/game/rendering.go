package game

import (
	"strings"

	"github.com/mitchelldurbincs/openhex/internal/common"
	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// Board symbols
const (
	SymbolEmpty     = '.'
	SymbolTower     = 'T'
	SymbolCapital   = 'C'
	SymbolTree      = '^'
	SymbolGrave     = '+'
	SymbolHighlight = '*'
)

// RenderOptions controls Render
type RenderOptions struct {
	// Color wraps every hex in the ANSI colour of its owner
	Color bool
	// Highlight marks empty hexes with '*', typically a move zone
	Highlight []core.HexCoord
	// Legend appends the symbol key
	Legend bool
}

// Render draws w as offset rows, one row per r, each row indented by half
// a hex per step so neighbours line up diagonally.
func Render(w *core.World, opts RenderOptions) string {
	coords := w.Coords()
	if len(coords) == 0 {
		return ""
	}

	highlight := make(map[core.HexCoord]bool, len(opts.Highlight))
	for _, c := range opts.Highlight {
		highlight[c] = true
	}

	// doubled columns: x = 2q + r
	minX, maxX := 2*coords[0].Q+coords[0].R, 2*coords[0].Q+coords[0].R
	minR, maxR := coords[0].R, coords[0].R
	for _, c := range coords {
		x := 2*c.Q + c.R
		minX, maxX = common.Min(minX, x), common.Max(maxX, x)
		minR, maxR = common.Min(minR, c.R), common.Max(maxR, c.R)
	}

	width := maxX - minX + 1
	var sb strings.Builder
	sb.Grow((width*12 + 1) * (maxR - minR + 1))

	for r := minR; r <= maxR; r++ {
		line := make([]*core.Hex, width)
		for _, c := range coords {
			if c.R == r {
				line[2*c.Q+c.R-minX] = w.Hex(c)
			}
		}
		end := width
		for end > 0 && line[end-1] == nil {
			end--
		}
		for x := 0; x < end; x++ {
			h := line[x]
			if h == nil {
				sb.WriteByte(' ')
				continue
			}
			symbol := hexSymbol(h, highlight[h.Coord()])
			if opts.Color {
				sb.WriteString(common.PlayerColor(int(h.Owner())))
				sb.WriteByte(symbol)
				sb.WriteString(common.ColorReset)
			} else {
				sb.WriteByte(symbol)
			}
		}
		sb.WriteByte('\n')
	}

	if opts.Legend {
		sb.WriteString("\n1-4=unit T=tower C=capital ^=tree +=grave .=empty\n")
	}
	return sb.String()
}

func hexSymbol(h *core.Hex, highlighted bool) byte {
	e := h.Entity()
	switch e.Kind {
	case core.EntityUnit:
		return byte('0' + e.Level)
	case core.EntityTower:
		return SymbolTower
	case core.EntityCapital:
		return SymbolCapital
	case core.EntityTree:
		return SymbolTree
	case core.EntityGrave:
		return SymbolGrave
	}
	if highlighted {
		return SymbolHighlight
	}
	return SymbolEmpty
}
