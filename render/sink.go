package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ringside/fight"
)

type drawCmd struct {
	fighter *fight.Fighter
	state   fight.State
	frame   int
}

// Renderer implements fight.Sink as a command buffer: the simulation records
// poses during its tick and Flush draws them during ebiten's draw pass.
type Renderer struct {
	sprites map[string]*SpriteSet
	cmds    []drawCmd
}

func NewRenderer() *Renderer {
	return &Renderer{sprites: make(map[string]*SpriteSet)}
}

// AddFighter associates a fighter name with its sprite set.
func (r *Renderer) AddFighter(name string, set *SpriteSet) {
	r.sprites[name] = set
}

// Begin clears the command buffer ahead of one simulation tick.
func (r *Renderer) Begin() {
	r.cmds = r.cmds[:0]
}

// DrawFighter records one pose. Called by the simulation once per fighter
// per tick.
func (r *Renderer) DrawFighter(f *fight.Fighter, st fight.State, frame int) {
	r.cmds = append(r.cmds, drawCmd{fighter: f, state: st, frame: frame})
}

// facingLeftState reports whether st is a left-facing variant; left states
// are drawn mirrored.
func facingLeftState(st fight.State) bool {
	switch st {
	case fight.StateIdleLeft, fight.StateRunLeft, fight.StateJumpLeft,
		fight.StateAttackLeft, fight.StateDodgeLeft:
		return true
	}
	return false
}

// Flush draws all recorded poses to the screen. The buffer survives until
// the next Begin so draw passes can outnumber simulation ticks.
func (r *Renderer) Flush(screen *ebiten.Image) {
	for _, cmd := range r.cmds {
		r.drawOne(screen, cmd)
	}
}

func (r *Renderer) drawOne(screen *ebiten.Image, cmd drawCmd) {
	f := cmd.fighter
	set := r.sprites[f.Name]

	var img *ebiten.Image
	if set != nil {
		img, _ = set.Frame(cmd.state, cmd.frame)
	}
	if img == nil {
		// missing sheet: draw the logical bounding box
		vector.DrawFilledRect(screen,
			float32(f.Pos.X), float32(f.Pos.Y),
			float32(f.Width), float32(f.Height),
			color.NRGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}, false)
		return
	}

	drawX := f.Pos.X + set.offsetX
	drawY := f.Pos.Y + set.offsetY

	op := &ebiten.DrawImageOptions{}
	if facingLeftState(cmd.state) {
		op.GeoM.Scale(-set.scale, set.scale)
		op.GeoM.Translate(math.Round(drawX+float64(set.frameW)*set.scale), math.Round(drawY))
	} else {
		op.GeoM.Scale(set.scale, set.scale)
		op.GeoM.Translate(math.Round(drawX), math.Round(drawY))
	}
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}

const (
	healthBarWidth  = 360
	healthBarHeight = 22
	healthBarMargin = 24
)

// DrawHealthBars draws both fighters' health bars at the top of the screen,
// widths proportional to health/maxHealth.
func (r *Renderer) DrawHealthBars(screen *ebiten.Image, player, enemy *fight.Fighter) {
	screenW := float64(screen.Bounds().Dx())
	r.drawHealthBar(screen, player, healthBarMargin,
		color.NRGBA{R: 0x2e, G: 0xc4, B: 0x5a, A: 0xff})
	r.drawHealthBar(screen, enemy, screenW-healthBarMargin-healthBarWidth,
		color.NRGBA{R: 0xd4, G: 0x3a, B: 0x3a, A: 0xff})
}

func (r *Renderer) drawHealthBar(screen *ebiten.Image, f *fight.Fighter, x float64, fill color.NRGBA) {
	vector.DrawFilledRect(screen,
		float32(x), healthBarMargin,
		healthBarWidth, healthBarHeight,
		color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xe0}, false)

	ratio := 0.0
	if f.MaxHealth > 0 {
		ratio = f.Health / f.MaxHealth
	}
	if ratio > 0 {
		vector.DrawFilledRect(screen,
			float32(x), healthBarMargin,
			float32(healthBarWidth*ratio), healthBarHeight,
			fill, false)
	}
}

// DrawGround draws the floor line of the arena.
func (r *Renderer) DrawGround(screen *ebiten.Image, groundY float64) {
	w := float32(screen.Bounds().Dx())
	vector.DrawFilledRect(screen, 0, float32(groundY), w, 3,
		color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}, false)
}
