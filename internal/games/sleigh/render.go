package sleigh

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/sleigh-run/internal/core"
)

// Visual characters for rendering
const (
	SleighChar   = '█'
	RunnerChar   = '▀'
	ChimneyChar  = '▓'
	SnowmanChar  = '●'
	TreeChar     = '▲'
	CloudChar    = '░'
	WindChar     = '~'
	GiftChar     = '■'
	SlowMoChar   = '◷'
	ShieldChar   = '◈'
	DoubleChar   = '✦'
	GroundChar   = '▔'
	SnowChar     = '·'
	StarChar     = '.'
	HatElfChar   = '^'
	HatDeerChar  = 'Y'
	ShieldRing   = '○'
	ForkBarFull  = '█'
	ForkBarEmpty = '░'
)

// viewport maps canvas coordinates to screen cells. Row 0 holds the HUD and
// the last row the status line.
type viewport struct {
	sx, sy float64
	top    int
	rows   int
	dx, dy int
}

func (g *Game) viewport(dst *core.Screen) viewport {
	rows := max(dst.Height()-2, 1)
	v := viewport{
		sx:   float64(dst.Width()) / g.cfg.Canvas.Width,
		sy:   float64(rows) / g.cfg.Canvas.Height,
		top:  1,
		rows: rows,
	}
	if g.shake != nil {
		ox, oy := g.shake.Offset()
		v.dx, v.dy = int(math.Round(ox)), int(math.Round(oy))
	}
	return v
}

// cells converts a canvas box to a screen rectangle at least one cell large.
func (v viewport) cells(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X*v.sx)) + v.dx
	y0 := int(math.Floor(b.Y*v.sy)) + v.top + v.dy
	x1 := int(math.Ceil(b.Right()*v.sx)) + v.dx
	y1 := int(math.Ceil(b.Bottom()*v.sy)) + v.top + v.dy
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

func (v viewport) point(x, y float64) (int, int) {
	return int(x*v.sx) + v.dx, int(y*v.sy) + v.top + v.dy
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}
	v := g.viewport(dst)

	g.renderBackground(dst, v)

	for _, o := range g.sim.Obstacles().Obstacles() {
		g.renderObstacle(dst, v, o)
	}
	for _, c := range g.sim.Collectibles().Collectibles() {
		g.renderCollectible(dst, v, c)
	}
	g.renderPlayer(dst, v)

	if vis := g.last.Modifiers.Visibility; vis > 0 && vis < 1 {
		g.renderSnowstorm(dst, v, vis)
	}

	g.renderHUD(dst)
	g.renderStatus(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		g.drawCenteredMessage(dst, "CRASHED", fmt.Sprintf("Score: %d  |  Press R to restart", g.scorer.Score()))
	}
}

func (g *Game) renderBackground(dst *core.Screen, v viewport) {
	if g.cosmetics.Night {
		// Sparse fixed star field
		for y := v.top; y < v.top+v.rows/2; y++ {
			for x := 0; x < dst.Width(); x++ {
				if hashCell(x, y, 0)%37 == 0 {
					dst.SetColored(x, y, StarChar, core.ColorBrightWhite)
				}
			}
		}
	}
	_, gy := v.point(0, g.cfg.Canvas.Ground())
	dst.DrawHLine(0, gy, dst.Width(), GroundChar, core.ColorWhite)
}

func (g *Game) renderObstacle(dst *core.Screen, v viewport, o *Obstacle) {
	if w, ok := o.Wind(); ok {
		for _, p := range w.Particles {
			x, y := v.point(p.X, p.Y)
			dst.SetColored(x, y, WindChar, core.ColorCyan)
		}
		return
	}

	glyph, color := obstacleGlyph(o.Type)
	r := v.cells(o.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, y, glyph, color)
		}
	}
	if o.Type == ObstacleChimney {
		// Smoke puff above the stack
		dst.SetColored(r.X+r.W/2, r.Y-1, CloudChar, core.ColorGray)
	}
}

func obstacleGlyph(t ObstacleType) (rune, core.Color) {
	switch t {
	case ObstacleChimney:
		return ChimneyChar, core.ColorRed
	case ObstacleSnowman:
		return SnowmanChar, core.ColorBrightWhite
	case ObstacleTree:
		return TreeChar, core.ColorGreen
	case ObstacleCloud:
		return CloudChar, core.ColorGray
	default:
		return WindChar, core.ColorCyan
	}
}

func (g *Game) renderCollectible(dst *core.Screen, v viewport, c *Collectible) {
	glyph, color := collectibleGlyph(c)
	r := v.cells(c.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, y, glyph, color)
		}
	}
}

func collectibleGlyph(c *Collectible) (rune, core.Color) {
	switch c.Type {
	case CollectibleGift:
		if c.Gold {
			return GiftChar, core.ColorBrightYellow
		}
		return GiftChar, core.ColorBrightMagenta
	case CollectibleSlowMotion:
		return SlowMoChar, core.ColorBrightCyan
	case CollectibleShield:
		return ShieldChar, core.ColorBrightBlue
	default:
		return DoubleChar, core.ColorYellow
	}
}

func (g *Game) renderPlayer(dst *core.Screen, v viewport) {
	r := v.cells(g.player.Bounds())
	color := g.cosmetics.SleighColor
	if color == core.ColorDefault {
		color = core.ColorBrightRed
	}

	for y := r.Y; y < r.Bottom()-1; y++ {
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, y, SleighChar, color)
		}
	}
	dst.DrawHLine(r.X, r.Bottom()-1, r.W, RunnerChar, core.ColorYellow)

	if g.cosmetics.Hat != 0 {
		dst.SetColored(r.X+r.W/2, r.Y-1, g.cosmetics.Hat, core.ColorGreen)
	}

	if g.shielded() {
		for y := r.Y - 1; y <= r.Bottom(); y++ {
			dst.SetColored(r.X-1, y, ShieldRing, core.ColorBrightBlue)
			dst.SetColored(r.Right(), y, ShieldRing, core.ColorBrightBlue)
		}
	}
	if g.sim.Ability().Active() && g.kind == AbilityDash {
		// Boost trail
		for i := 1; i <= 3; i++ {
			dst.SetColored(r.X-i, r.Y+r.H/2, '-', core.ColorOrange)
		}
	}
}

func (g *Game) shielded() bool {
	return g.sim.PowerUps().Active(PowerUpShield) || g.sim.Ability().Effects().Shield
}

// renderSnowstorm hides part of the play area behind snow. Lower visibility
// covers more cells.
func (g *Game) renderSnowstorm(dst *core.Screen, v viewport, visibility float64) {
	threshold := uint32((1 - visibility) * 100)
	frame := g.sim.Frame() / 4
	for y := v.top; y < v.top+v.rows; y++ {
		for x := 0; x < dst.Width(); x++ {
			if hashCell(x, y, frame)%100 < threshold {
				dst.SetColored(x, y, SnowChar, core.ColorBrightWhite)
			}
		}
	}
}

// hashCell is a cheap deterministic per-cell noise.
func hashCell(x, y, frame int) uint32 {
	h := uint32(x)*73856093 ^ uint32(y)*19349663 ^ uint32(frame)*83492791 //#nosec G115 -- hash computation
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return h
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Score: %d  Spd x%.1f ", g.scorer.Score(), g.sim.Difficulty())
	dst.DrawTextColored(1, 0, hud, core.ColorBrightWhite)

	x := 2 + len([]rune(hud))
	if r := g.sim.Route(); r.Route() != RouteNeutral {
		text := fmt.Sprintf(" Route: %s %ds ", r.Route(), r.Remaining()/g.tickRate())
		dst.DrawTextColored(x, 0, text, core.ColorBrightGreen)
		x += len([]rune(text))
	}
	if m := g.sim.Moments(); m.Active() != MomentNone {
		text := fmt.Sprintf(" %s %ds ", strings.ToUpper(m.Active().String()), m.Remaining()/g.tickRate())
		dst.DrawTextColored(x, 0, text, core.ColorBrightYellow)
	}

	ability := g.abilityText()
	dst.DrawTextColored(dst.Width()-len([]rune(ability))-1, 0, ability, core.ColorBrightCyan)
}

func (g *Game) abilityText() string {
	a := g.sim.Ability()
	switch {
	case a.Active():
		return fmt.Sprintf(" [E] %s ACTIVE ", a.Kind())
	case a.Ready():
		return fmt.Sprintf(" [E] %s READY ", a.Kind())
	default:
		return fmt.Sprintf(" [E] %s %d%% ", a.Kind(), int(a.Charge()*100))
	}
}

func (g *Game) renderStatus(dst *core.Screen) {
	y := dst.Height() - 1
	route := g.sim.Route()

	if route.Deciding() {
		const barW = 20
		filled := int(float64(barW) * (1 - route.WindowProgress()))
		bar := strings.Repeat(string(ForkBarFull), filled) + strings.Repeat(string(ForkBarEmpty), barW-filled)
		text := fmt.Sprintf(" FORK  <A left: risky, rich | right: calm D>  %s ", bar)
		dst.DrawTextColored(1, y, text, core.ColorBrightYellow)
		return
	}

	var parts []string
	p := g.sim.PowerUps()
	for _, k := range []PowerUpKind{PowerUpSlowMotion, PowerUpShield, PowerUpDoubleScore} {
		if p.Active(k) {
			parts = append(parts, fmt.Sprintf("%s %ds", k, p.Remaining(k)/g.tickRate()))
		}
	}
	if len(parts) > 0 {
		dst.DrawTextColored(1, y, " "+strings.Join(parts, " | ")+" ", core.ColorBrightMagenta)
	}

	if g.noticeTTL > 0 && g.notice != "" {
		text := " " + g.notice + " "
		dst.DrawTextColored(dst.Width()-len([]rune(text))-1, y, text, core.ColorOrange)
	}
}

func (g *Game) tickRate() int {
	if g.runtime.TickRate <= 0 {
		return 60
	}
	return g.runtime.TickRate
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextColored(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title, core.ColorBrightWhite)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}
