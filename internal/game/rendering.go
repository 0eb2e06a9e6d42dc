package game

import (
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/grid"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"
)

// Board symbols, one rune each
const (
	EmptySymbol       = "·"
	HazardSymbol      = "X"
	RewardSymbol      = "R"
	PursuerSymbol     = "P"
	EvaderSymbol      = "E"
	CaughtSymbol      = "@"
	PursuerPathSymbol = "+"
	EvaderPathSymbol  = "*"
)

// RenderText draws the board as text: a column header, one row per y, and a
// legend. Agents take precedence over tiles, tiles over paths.
func RenderText(b *Board, useColor bool) string {
	width, height := b.Dimensions()

	pursuerPath := make(map[core.Cell]bool, len(b.pursuerPath))
	for _, c := range b.pursuerPath {
		pursuerPath[c] = true
	}
	evaderPath := make(map[core.Cell]bool, len(b.evaderPath))
	for _, c := range b.evaderPath {
		evaderPath[c] = true
	}

	var sb strings.Builder
	sb.Grow((width*12+6)*(height+3) + 80)

	sb.WriteString("   ")
	for x := 0; x < width; x++ {
		sb.WriteString(padInt(x))
	}
	sb.WriteString("\n")

	for y := 0; y < height; y++ {
		sb.WriteString(padInt(y))
		sb.WriteString(" ")
		for x := 0; x < width; x++ {
			symbol, color := cellDisplay(b, core.NewCell(x, y), pursuerPath, evaderPath)
			sb.WriteString(" ")
			if useColor && color != "" {
				sb.WriteString(color)
				sb.WriteString(symbol)
				sb.WriteString(ColorReset)
			} else {
				sb.WriteString(symbol)
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(PursuerSymbol + "=pursuer " + EvaderSymbol + "=evader " + HazardSymbol + "=hazard " +
		RewardSymbol + "=reward " + PursuerPathSymbol + "/" + EvaderPathSymbol + "=paths\n")

	return sb.String()
}

func cellDisplay(b *Board, c core.Cell, pursuerPath, evaderPath map[core.Cell]bool) (string, string) {
	switch {
	case c == b.pursuerPos && c == b.evaderPos:
		return CaughtSymbol, ColorRed
	case c == b.pursuerPos:
		return PursuerSymbol, ColorRed
	case c == b.evaderPos:
		return EvaderSymbol, ColorBlue
	case b.graph.HasTag(c, grid.TagHazard):
		return HazardSymbol, ColorYellow
	case b.graph.HasTag(c, grid.TagReward):
		return RewardSymbol, ColorGreen
	case evaderPath[c]:
		return EvaderPathSymbol, ColorBlue
	case pursuerPath[c]:
		return PursuerPathSymbol, ColorRed
	default:
		return EmptySymbol, ColorGray
	}
}

func padInt(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		return " " + s
	}
	return s
}
