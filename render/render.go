// Package render draws a board with a planned path laid over it, either as
// plain text for logs and observers or onto a terminal screen.
package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"vindinium-bot/models"
	"vindinium-bot/pathing"
)

// PathMark is drawn in place of tiles the path walks through
const PathMark = ".."

// Text renders the grid one row per line, two characters per tile
func Text(grid *pathing.Grid, path pathing.Path) string {
	var sb strings.Builder
	sb.Grow(grid.Size * (2*grid.Size + 1))
	for y := 0; y < grid.Size; y++ {
		for x := 0; x < grid.Size; x++ {
			sb.WriteString(tileText(grid, path, models.Position{X: x, Y: y}))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func tileText(grid *pathing.Grid, path pathing.Path, p models.Position) string {
	if path.Contains(p) {
		return PathMark
	}
	return grid.Tile(p).String()
}

// Palette holds the styles used by Draw
type Palette struct {
	Free   tcell.Style
	Wall   tcell.Style
	Tavern tcell.Style
	Mine   tcell.Style
	Hero   tcell.Style
	Path   tcell.Style
}

// DefaultPalette mirrors the colors of the game's own viewer
func DefaultPalette() Palette {
	base := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	return Palette{
		Free:   base,
		Wall:   base.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorBlack),
		Tavern: base.Foreground(tcell.ColorYellow),
		Mine:   base.Foreground(tcell.ColorOrange),
		Hero:   base.Foreground(tcell.ColorRed).Bold(true),
		Path:   base.Background(tcell.ColorGray).Foreground(tcell.ColorWhite),
	}
}

func (pal Palette) style(t models.Tile) tcell.Style {
	switch t.Kind {
	case models.TileWall:
		return pal.Wall
	case models.TileTavern:
		return pal.Tavern
	case models.TileMine:
		return pal.Mine
	case models.TileHero:
		return pal.Hero
	default:
		return pal.Free
	}
}

// Draw paints the grid at the top-left corner of screen. Each tile takes two
// columns. The caller is responsible for calling Show.
func Draw(s tcell.Screen, grid *pathing.Grid, path pathing.Path, pal Palette) {
	for y := 0; y < grid.Size; y++ {
		for x := 0; x < grid.Size; x++ {
			p := models.Position{X: x, Y: y}
			style := pal.style(grid.Tile(p))
			if path.Contains(p) {
				style = pal.Path
			}
			for i, c := range tileText(grid, path, p) {
				s.SetContent(2*x+i, y, c, nil, style)
			}
		}
	}
}

// DrawStatus writes a line of text below the board
func DrawStatus(s tcell.Screen, grid *pathing.Grid, msg string) {
	for i, c := range msg {
		s.SetContent(i, grid.Size+1, c, nil, tcell.StyleDefault)
	}
}
