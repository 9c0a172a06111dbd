package ai

import (
	"fmt"
	"time"
)

// Difficulty selects a tuning profile for the controller.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// ParseDifficulty maps a flag/config string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "", "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	}
	return Normal, fmt.Errorf("ai: unknown difficulty %q", s)
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	}
	return "normal"
}

// Profile holds the tuning values the decision policy reads each tick.
type Profile struct {
	// Attack ranges: a guaranteed attack inside the close box, a
	// probabilistic one inside the extended horizontal band.
	CloseRangeX          float64
	CloseRangeY          float64
	ExtendedRangeX       float64
	ExtendedAttackChance float64

	// Predictive extrapolation factors applied to the target's velocity.
	AttackLead float64
	ChaseLead  float64

	// Jump behavior while grounded.
	FarJumpDistance float64
	JumpChance      float64
	JumpBoost       float64

	// Corner-trap avoidance margin from either screen edge.
	EdgeMargin float64

	// Re-decision gates and the local attack throttle.
	AttackGate     time.Duration
	JumpGate       time.Duration
	DefaultGate    time.Duration
	AttackThrottle int
}

// ProfileFor returns the tuning profile for a difficulty. Normal is the
// reference behavior; Easy reacts slower and commits less, Hard reacts
// faster and attacks from further out.
func ProfileFor(d Difficulty) Profile {
	p := Profile{
		CloseRangeX:          150,
		CloseRangeY:          100,
		ExtendedRangeX:       200,
		ExtendedAttackChance: 0.3,
		AttackLead:           0.7,
		ChaseLead:            0.5,
		FarJumpDistance:      80,
		JumpChance:           0.4,
		JumpBoost:            1.8,
		EdgeMargin:           60,
		AttackGate:           50 * time.Millisecond,
		JumpGate:             30 * time.Millisecond,
		DefaultGate:          100 * time.Millisecond,
		AttackThrottle:       5,
	}
	switch d {
	case Easy:
		p.ExtendedAttackChance = 0.15
		p.JumpChance = 0.25
		p.AttackGate = 120 * time.Millisecond
		p.JumpGate = 80 * time.Millisecond
		p.DefaultGate = 220 * time.Millisecond
		p.AttackThrottle = 10
	case Hard:
		p.CloseRangeX = 170
		p.ExtendedRangeX = 230
		p.ExtendedAttackChance = 0.45
		p.AttackGate = 35 * time.Millisecond
		p.JumpGate = 20 * time.Millisecond
		p.DefaultGate = 60 * time.Millisecond
		p.AttackThrottle = 3
	}
	return p
}
