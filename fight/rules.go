package fight

import "time"

// Gravity is the vertical acceleration applied per tick while airborne.
// There is no terminal velocity cap.
const Gravity = 0.7

// Rules carries the tunable combat constants of a match. Two presets exist:
// Classic (fixed long cooldown, no dodge or combos) and Extended (dodge,
// combo windows, shorter cooldowns).
type Rules struct {
	Name string

	AttackRange    float64
	AttackCooldown int

	ComboEnabled      bool
	ComboWindow       time.Duration
	ComboBaseCooldown int
	ComboStepDiscount int

	DodgeEnabled  bool
	DodgeDuration int
	DodgeCooldown int
	DodgeSpeed    float64
}

// Classic returns the base rule set: a 120-tick cooldown per attack and a
// 100-unit reach, with dodging and combos disabled.
func Classic() Rules {
	return Rules{
		Name:           "classic",
		AttackRange:    100,
		AttackCooldown: 120,
	}
}

// Extended returns the enhanced rule set: longer reach, dodges, and a combo
// window that shortens follow-up cooldowns (30, 25, 20 ticks).
func Extended() Rules {
	return Rules{
		Name:              "extended",
		AttackRange:       120,
		ComboEnabled:      true,
		ComboWindow:       500 * time.Millisecond,
		ComboBaseCooldown: 30,
		ComboStepDiscount: 5,
		DodgeEnabled:      true,
		DodgeDuration:     15,
		DodgeCooldown:     45,
		DodgeSpeed:        12,
	}
}
