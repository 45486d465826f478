package bomberman

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/bomberman/engine"
)

// hudRows is the height of the status bar above the map.
const hudRows = 2

// A tile is drawn as two columns by one row so it looks roughly square.
const tileCols = 2

var (
	wallGlyph   = "██"
	blockGlyph  = "▓▓"
	burnGlyphs  = []string{"▒▒", "░░", "..", "  "}
	exitGlyph   = "[]"
	bombGlyphs  = []string{"()", "{}"}
	remoteBomb  = "<>"
	playerGlyph = "@@"
	deathGlyphs = []string{"**", "++", ".."}
)

var flameGlyphs = map[string]string{
	"centre":     "##",
	"horizontal": "==",
	"vertical":   "||",
	"end_left":   "<=",
	"end_right":  "=>",
	"end_up":     "^^",
	"end_down":   "vv",
}

// Flames cool down as their animation advances.
var flameColors = []core.Color{core.ColorBrightYellow, core.ColorYellow, core.ColorOrange, core.ColorRed}

var powerUpGlyphs = map[engine.PowerUpKind]string{
	engine.PowerBombUp:    "B+",
	engine.PowerFireUp:    "F+",
	engine.PowerSpeedUp:   "S+",
	engine.PowerWallHack:  "W+",
	engine.PowerRemote:    "R+",
	engine.PowerBombPass:  "P+",
	engine.PowerFlamePass: "X+",
	engine.PowerInvisible: "I+",
}

type speciesLook struct {
	glyph string
	color core.Color
}

var speciesLooks = map[engine.Species]speciesLook{
	engine.Ballom: {"oo", core.ColorOrange},
	engine.Onil:   {"OO", core.ColorBlue},
	engine.Dahl:   {"&&", core.ColorMagenta},
	engine.Minvo:  {"%%", core.ColorRed},
	engine.Doria:  {"$$", core.ColorCyan},
	engine.Ovape:  {"~~", core.ColorBrightMagenta},
	engine.Pass:   {"§§", core.ColorBrightRed},
	engine.Pontan: {"**", core.ColorBrightCyan},
}

// viewportTiles returns how many whole tiles fit in the map area.
func viewportTiles(screenW, screenH int) (cols, rows int) {
	return max(screenW/tileCols, 1), max(screenH-hudRows, 1)
}

// view maps world coordinates to screen cells for one frame.
type view struct {
	dst     *core.Screen
	tile    engine.Fixed
	yOffset engine.Fixed
	ox, oy  engine.Fixed
}

func floorDiv(a, b engine.Fixed) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return int(q)
}

// tileAt returns the screen cell of a tile's top-left corner.
func (v view) tileAt(c engine.Coord) (int, int) {
	x := engine.Fixed(c.Col)*v.tile - v.ox
	y := engine.Fixed(c.Row)*v.tile - v.oy
	return floorDiv(x*tileCols, v.tile), hudRows + floorDiv(y, v.tile)
}

// bodyAt returns the screen cell of a body, rounded to the nearest half
// tile horizontally and the nearest tile vertically.
func (v view) bodyAt(b engine.Body) (int, int) {
	x := b.X - v.ox
	y := b.Y - v.yOffset - v.oy
	return floorDiv(x*tileCols+v.tile/2, v.tile), hudRows + floorDiv(y+v.tile/2, v.tile)
}

// put draws a glyph, clipped to the map area.
func (v view) put(x, y int, glyph string, c core.Color) {
	if y < hudRows || y >= v.dst.Height() {
		return
	}
	v.dst.DrawTextColored(x, y, glyph, c)
}

// Render draws the visible part of the map, the movers and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.world == nil {
		dst.DrawTextCentered(dst.Height()/2, "Cannot start game")
		if g.err != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.err.Error())
		}
		return
	}

	w := g.world
	ox, oy := w.Camera().Offset()
	v := view{dst: dst, tile: w.Rules().Grid.Tile, yOffset: w.Rules().Grid.YOffset, ox: ox, oy: oy}

	g.renderTiles(v)
	g.renderSegments(v)
	g.renderEnemies(v)
	g.renderPlayer(v)
	g.renderHUD(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH))
}

func (g *Game) renderTiles(v view) {
	grid := g.world.Grid()
	c0 := floorDiv(v.ox, v.tile)
	r0 := floorDiv(v.oy, v.tile)
	cols, rows := viewportTiles(v.dst.Width(), v.dst.Height())

	for row := r0; row <= r0+rows; row++ {
		for col := c0; col <= c0+cols; col++ {
			if !grid.InBounds(row, col) {
				continue
			}
			at := engine.Coord{Row: row, Col: col}
			x, y := v.tileAt(at)
			glyph, color := cellLook(grid.Occupant(at))
			if glyph != "" {
				v.put(x, y, glyph, color)
			}
		}
	}
}

func cellLook(c engine.Cell) (string, core.Color) {
	switch c.Kind {
	case engine.KindHardWall:
		return wallGlyph, core.ColorGray
	case engine.KindSoftBlock:
		if c.Soft != nil && c.Soft.Burning() {
			f := min(c.Soft.Frame(), len(burnGlyphs)-1)
			return burnGlyphs[f], core.ColorOrange
		}
		return blockGlyph, core.ColorBrown
	case engine.KindBomb:
		b := c.Bomb
		color := core.ColorRed
		if b.Remote {
			return remoteBomb, color
		}
		if b.Fuse() <= 3 {
			color = core.ColorBrightRed
		}
		return bombGlyphs[b.Frame()%len(bombGlyphs)], color
	case engine.KindPowerUp:
		if c.PowerUp.Kind == engine.PowerExit {
			return exitGlyph, core.ColorBrightGreen
		}
		return powerUpGlyphs[c.PowerUp.Kind], core.ColorBrightCyan
	}
	return "", core.ColorDefault
}

func (g *Game) renderSegments(v view) {
	for _, s := range g.world.Segments() {
		x, y := v.tileAt(s.Pos)
		color := flameColors[min(s.Frame(), len(flameColors)-1)]
		v.put(x, y, flameGlyphs[s.Role()], color)
	}
}

func (g *Game) renderEnemies(v view) {
	for _, e := range g.world.Enemies() {
		x, y := v.bodyAt(e.Body)
		if e.Destroyed() {
			v.put(x, y, deathGlyphs[min(e.Frame(), len(deathGlyphs)-1)], core.ColorGray)
			continue
		}
		look, ok := speciesLooks[e.Profile.Species]
		if !ok {
			look = speciesLook{"??", core.ColorWhite}
		}
		v.put(x, y, look.glyph, look.color)
	}
}

func (g *Game) renderPlayer(v view) {
	p := g.world.Player()
	x, y := v.bodyAt(p.Body)
	if !p.Alive() {
		v.put(x, y, deathGlyphs[min(p.Frame(), len(deathGlyphs)-1)], core.ColorBrightRed)
		return
	}
	v.put(x, y, playerGlyph, core.ColorBrightWhite)
}

func (g *Game) renderHUD(dst *core.Screen) {
	w := g.world
	secs := int(w.TimeLeft().Seconds())
	left := fmt.Sprintf("STAGE %d  SCORE %d  LIVES %d  TIME %d", w.Stage(), w.Score(), w.Lives(), secs)
	timeColor := core.ColorWhite
	if secs <= 30 {
		timeColor = core.ColorBrightRed
	}
	dst.DrawTextColored(0, 0, left, timeColor)

	right := powerSummary(w.Player())
	if x := dst.Width() - len([]rune(right)); x > len(left)+1 {
		dst.DrawTextColored(x, 0, right, core.ColorBrightCyan)
	}
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// powerSummary lists the player's current attributes.
func powerSummary(p *engine.Player) string {
	var b strings.Builder
	fmt.Fprintf(&b, "B%d F%d", p.BombLimit, p.Power)
	flags := []struct {
		on  bool
		tag string
	}{
		{p.Remote, "R"},
		{p.WallHack, "W"},
		{p.BombPass, "P"},
		{p.FlamePass, "X"},
		{p.Invisible, "I"},
	}
	for _, f := range flags {
		if f.on {
			b.WriteString(" " + f.tag)
		}
	}
	return b.String()
}

func (g *Game) renderOverlays(dst *core.Screen) {
	w := g.world
	y := hudRows + (dst.Height()-hudRows)/2
	switch {
	case w.Phase() == engine.PhaseVictory:
		dst.DrawTextCentered(y, "ALL STAGES CLEARED!")
		dst.DrawTextCentered(y+1, fmt.Sprintf("Final score %d - press R to play again", w.Score()))
	case w.Phase() == engine.PhaseGameOver:
		dst.DrawTextCentered(y, "GAME OVER")
		dst.DrawTextCentered(y+1, fmt.Sprintf("Score %d - press R to restart", w.Score()))
	case w.Phase() == engine.PhaseCleared:
		dst.DrawTextCentered(y, fmt.Sprintf("STAGE %d CLEAR", w.Stage()))
	case g.paused:
		dst.DrawTextCentered(y, "PAUSED")
		dst.DrawTextCentered(y+1, "press P to resume")
	}
}
