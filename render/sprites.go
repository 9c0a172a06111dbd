package render

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"ringside/assets"
	"ringside/fight"
	"ringside/prefabs"
)

// SpriteSet maps a fighter's animation states onto rows of a single sprite
// sheet. Sheets hold right-facing frames; the left variants are mirrored at
// draw time. A nil sheet means the asset was missing and the fighter draws
// as a placeholder rectangle.
type SpriteSet struct {
	sheet   *ebiten.Image
	frameW  int
	frameH  int
	scale   float64
	offsetX float64
	offsetY float64
	rows    map[fight.State]prefabs.ClipSpec
}

// animKeyStates maps a prefab animation key to its facing state pair.
var animKeyStates = map[string][2]fight.State{
	"idle":   {fight.StateIdleRight, fight.StateIdleLeft},
	"run":    {fight.StateRunRight, fight.StateRunLeft},
	"jump":   {fight.StateJumpRight, fight.StateJumpLeft},
	"attack": {fight.StateAttackRight, fight.StateAttackLeft},
	"dodge":  {fight.StateDodgeRight, fight.StateDodgeLeft},
}

// NewSpriteSet builds the sprite set and the simulation clip set from one
// fighter prefab. A missing sheet image is tolerated (placeholder path);
// an invalid animation table is not.
func NewSpriteSet(spec *prefabs.FighterSpec) (*SpriteSet, *fight.ClipSet, error) {
	clips := make(map[fight.State]fight.Clip, 2*len(spec.Animations))
	rows := make(map[fight.State]prefabs.ClipSpec, 2*len(spec.Animations))
	for key, cs := range spec.Animations {
		states, ok := animKeyStates[key]
		if !ok {
			return nil, nil, fmt.Errorf("render: %s: unknown animation key %q", spec.Name, key)
		}
		clip := fight.Clip{Frames: cs.Frames, Hold: cs.Hold}
		for _, st := range states {
			clips[st] = clip
			rows[st] = cs
		}
	}

	clipSet, err := fight.NewClipSet(clips)
	if err != nil {
		return nil, nil, fmt.Errorf("render: %s: %w", spec.Name, err)
	}

	set := &SpriteSet{
		frameW:  spec.Sprite.FrameW,
		frameH:  spec.Sprite.FrameH,
		scale:   spec.Sprite.Scale,
		offsetX: spec.Sprite.OffsetX,
		offsetY: spec.Sprite.OffsetY,
		rows:    rows,
	}
	if set.scale <= 0 {
		set.scale = 1
	}

	if spec.Sprite.Sheet != "" {
		if sheet, err := assets.LoadImage(spec.Sprite.Sheet); err == nil {
			set.sheet = sheet
		}
	}
	return set, clipSet, nil
}

// Frame returns the sub-image for one animation frame, or false when the
// sheet is missing or the state has no row.
func (s *SpriteSet) Frame(st fight.State, idx int) (*ebiten.Image, bool) {
	if s.sheet == nil {
		return nil, false
	}
	cs, ok := s.rows[st]
	if !ok || cs.Frames <= 0 {
		return nil, false
	}
	if idx < 0 || idx >= cs.Frames {
		idx = 0
	}
	x := idx * s.frameW
	y := cs.Row * s.frameH
	rect := image.Rect(x, y, x+s.frameW, y+s.frameH)
	return s.sheet.SubImage(rect).(*ebiten.Image), true
}
