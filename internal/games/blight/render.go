package blight

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/blightsong/internal/config"
	"github.com/vovakirdan/blightsong/internal/core"
	"github.com/vovakirdan/blightsong/internal/corruption"
)

// glyph is how one thing is drawn.
type glyph struct {
	r rune
	c core.Color
}

// palette maps tile visuals and actors to glyphs.
type palette struct {
	tiles     map[string]glyph
	corrupted glyph
	player    glyph
	note      glyph
}

func newPalette(cfg config.BlightConfig) palette {
	p := palette{
		tiles:     make(map[string]glyph, len(cfg.Tiles)),
		corrupted: glyph{firstRune(cfg.Corruption.Glyph, '#'), core.ParseColor(cfg.Corruption.Color)},
		player:    glyph{firstRune(cfg.Player.Glyph, '@'), core.ParseColor(cfg.Player.Color)},
		note:      glyph{firstRune(cfg.Melody.NoteGlyph, '*'), core.ParseColor(cfg.Melody.NoteColor)},
	}
	for _, t := range cfg.Tiles {
		p.tiles[t.Visual] = glyph{firstRune(t.Glyph, '.'), core.ParseColor(t.Color)}
	}
	return p
}

// visual resolves an asset name; corrupted names the field's corrupted asset.
func (p palette) visual(name, corrupted string) glyph {
	if name == corrupted {
		return p.corrupted
	}
	if gl, ok := p.tiles[name]; ok {
		return gl
	}
	return glyph{'.', core.ColorGreen}
}

func firstRune(s string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return r
}

// Resize adapts the viewport to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.tooSmall = w < minW || h < minH
}

// viewport returns the visible stage window and where it lands on screen.
func (g *Game) viewport() (view core.Rect, offX, offY int) {
	field := g.stage.Field
	mapH := g.runtime.ScreenH - hudHeight
	w := core.Min(g.runtime.ScreenW, field.Width())
	h := core.Min(mapH, field.Height())

	bounds := core.NewRect(0, 0, field.Width(), field.Height())
	view = core.CenteredOn(g.player.X, g.player.Y, w, h, bounds)

	// Stages smaller than the screen are centered.
	offX = (g.runtime.ScreenW - w) / 2
	offY = hudHeight + (mapH-h)/2
	return view, offX, offY
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.stage == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	view, offX, offY := g.viewport()
	toScreen := func(c corruption.Coord) (int, int, bool) {
		if !view.Contains(c.X, c.Y) {
			return 0, 0, false
		}
		return offX + c.X - view.X, offY + c.Y - view.Y, true
	}

	corrupted := g.stage.Field.CorruptedVisual()
	for y := view.Y; y < view.Bottom(); y++ {
		for x := view.X; x < view.Right(); x++ {
			name := g.visualAt(x, y)
			if name == "" {
				continue
			}
			gl := g.palette.visual(name, corrupted)
			dst.SetColored(offX+x-view.X, offY+y-view.Y, gl.r, gl.c)
		}
	}

	for c := range g.notes {
		if sx, sy, ok := toScreen(c); ok {
			dst.SetColored(sx, sy, g.palette.note.r, g.palette.note.c)
		}
	}

	for _, e := range g.echoes {
		if sx, sy, ok := toScreen(e.at); ok {
			dst.SetColored(sx, sy, '♫', g.echoColor(e))
		}
	}

	if sx, sy, ok := toScreen(g.player); ok {
		dst.SetColored(sx, sy, g.palette.player.r, g.palette.player.c)
	}

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Engulfed by the blight", fmt.Sprintf("Score: %d  -  R to restart", g.score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// echoColor dims an echo as it fades.
func (g *Game) echoColor(e echo) core.Color {
	total := g.cfg.Melody.EchoSeconds
	switch {
	case total <= 0 || e.ttl > total*2/3:
		return core.ColorBrightYellow
	case e.ttl > total/3:
		return core.ColorYellow
	default:
		return core.ColorDarkGray
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Notes: %d/%d  Blight: %d  Next: %.2fs",
		g.Title(),
		g.score,
		g.performer.Collected(),
		g.noteTotal,
		g.stage.Field.CorruptedCount(),
		g.spreader.Clock().Remaining())
	dst.DrawText(0, 0, hud)

	if g.lost > 0 {
		lost := fmt.Sprintf("Lost: %d ", g.lost)
		dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(lost), 0, lost, core.ColorRed)
	}
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := core.Max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-5)/2, w, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
