package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ringside/fight"
)

type keymap struct {
	left   ebiten.Key
	right  ebiten.Key
	jump   ebiten.Key
	attack ebiten.Key
	dodge  ebiten.Key
}

var playerKeymap = keymap{
	left:   ebiten.KeyA,
	right:  ebiten.KeyD,
	jump:   ebiten.KeyW,
	attack: ebiten.KeyJ,
	dodge:  ebiten.KeyK,
}

// enemyKeymap is only read in two-player mode.
var enemyKeymap = keymap{
	left:   ebiten.KeyLeft,
	right:  ebiten.KeyRight,
	jump:   ebiten.KeyUp,
	attack: ebiten.KeyComma,
	dodge:  ebiten.KeyPeriod,
}

// ReadIntent samples the keyboard once per tick. Movement and jump are
// level-triggered, attack and dodge fire on the key press edge only.
func ReadIntent(keys keymap) fight.Intent {
	return fight.Intent{
		MoveLeft:  ebiten.IsKeyPressed(keys.left),
		MoveRight: ebiten.IsKeyPressed(keys.right),
		Jump:      ebiten.IsKeyPressed(keys.jump),
		Attack:    inpututil.IsKeyJustPressed(keys.attack),
		Dodge:     inpututil.IsKeyJustPressed(keys.dodge),
	}
}
