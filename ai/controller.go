package ai

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"ringside/fight"
)

// Controller drives one fighter against a target with a reactive
// rule-priority policy: attack, then corner-escape, then chase, then an
// opportunistic jump. It is not a planner: every eligible tick it looks at
// the current geometry and commits to one action.
//
// Decisions are gated on wall-clock time, not ticks, so cadence tracks real
// elapsed time. The controller borrows both fighter references and owns
// neither.
type Controller struct {
	fighter *fight.Fighter
	target  *fight.Fighter

	profile Profile
	clock   fight.Clock
	rng     *rand.Rand
	log     *zap.Logger
	script  *Script

	nextAction     time.Time
	attackThrottle int
}

// ControllerConfig wires a Controller. Fighter and Target are required;
// everything else has a usable default.
type ControllerConfig struct {
	Fighter    *fight.Fighter
	Target     *fight.Fighter
	Difficulty Difficulty
	Clock      fight.Clock
	Rand       *rand.Rand
	Logger     *zap.Logger
	Script     *Script
}

// NewController builds a controller for cfg.Fighter hunting cfg.Target.
func NewController(cfg ControllerConfig) *Controller {
	if cfg.Clock == nil {
		cfg.Clock = fight.SystemClock()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Controller{
		fighter: cfg.Fighter,
		target:  cfg.Target,
		profile: ProfileFor(cfg.Difficulty),
		clock:   cfg.Clock,
		rng:     cfg.Rand,
		log:     cfg.Logger,
		script:  cfg.Script,
	}
}

// Reset clears decision state between matches. The borrowed fighter
// references stay valid because the match resets fighters in place.
func (c *Controller) Reset() {
	c.nextAction = time.Time{}
	c.attackThrottle = 0
}

// Update makes at most one decision. It returns immediately while the
// wall-clock gate is unmet; this is a cadence limiter, not a suspension
// point.
func (c *Controller) Update() {
	if c.attackThrottle > 0 {
		c.attackThrottle--
	}

	now := c.clock.Now()
	if now.Before(c.nextAction) {
		return
	}

	f, t := c.fighter, c.target
	dx := t.Pos.X - f.Pos.X
	dy := t.Pos.Y - f.Pos.Y
	if dx >= 0 {
		f.SetFacing(fight.FacingRight)
	} else {
		f.SetFacing(fight.FacingLeft)
	}

	if c.script != nil {
		if done := c.runScript(now, dx, dy); done {
			return
		}
	}

	if c.decideAttack(now, dx, dy) {
		return
	}
	c.decideMovement(dx)
	if c.decideJump(now, dx) {
		return
	}
	c.nextAction = now.Add(c.profile.DefaultGate)
}

// decideAttack fires inside the close box always, inside the extended band
// probabilistically. A landed decision nudges the fighter toward the
// target's extrapolated position and sets a fast re-decision gate.
func (c *Controller) decideAttack(now time.Time, dx, dy float64) bool {
	p := c.profile
	inClose := math.Abs(dx) < p.CloseRangeX && math.Abs(dy) < p.CloseRangeY
	inExtended := math.Abs(dx) < p.ExtendedRangeX
	if !inClose && !(inExtended && c.rng.Float64() < p.ExtendedAttackChance) {
		return false
	}
	if c.attackThrottle > 0 {
		return false
	}

	f, t := c.fighter, c.target
	// A sheet without an attack row must not take the resolver down.
	f.EnsureClip(fight.AttackFor(f.Facing()))
	landed := f.Attack(t)
	c.attackThrottle = p.AttackThrottle
	c.nextAction = now.Add(p.AttackGate)

	predicted := t.Pos.X + t.Vel.X*p.AttackLead
	if predicted > f.Pos.X {
		f.Vel.X = f.MoveSpeed
	} else if predicted < f.Pos.X {
		f.Vel.X = -f.MoveSpeed
	}

	if landed {
		c.log.Debug("ai hit",
			zap.Float64("dx", dx),
			zap.Float64("target_health", t.Health))
	}
	return true
}

// decideMovement escapes a corner when pushed into one, otherwise chases
// the target's extrapolated position. The run animation follows the sign of
// the resulting velocity.
func (c *Controller) decideMovement(dx float64) {
	f, t := c.fighter, c.target
	p := c.profile

	nearLeft := f.Pos.X < p.EdgeMargin
	nearRight := f.Pos.X > f.ScreenWidth()-f.Width-p.EdgeMargin

	switch {
	case nearLeft && f.Vel.X < 0:
		f.Vel.X = f.MoveSpeed
		if f.Grounded() {
			f.Vel.Y = -f.JumpSpeed
		}
	case nearRight && f.Vel.X > 0:
		f.Vel.X = -f.MoveSpeed
		if f.Grounded() {
			f.Vel.Y = -f.JumpSpeed
		}
	default:
		predicted := dx + t.Vel.X*p.ChaseLead
		if predicted > 0 {
			f.Vel.X = f.MoveSpeed
		} else if predicted < 0 {
			f.Vel.X = -f.MoveSpeed
		} else {
			f.Vel.X = 0
		}
	}

	switch {
	case f.Vel.X > 0:
		f.SetAnimation(fight.RunFor(fight.FacingRight))
	case f.Vel.X < 0:
		f.SetAnimation(fight.RunFor(fight.FacingLeft))
	default:
		f.SetAnimation(fight.IdleFor(f.Facing()))
	}
}

// decideJump hops while grounded when far from the target, near an edge, or
// on a flat chance, boosting horizontal speed for the arc.
func (c *Controller) decideJump(now time.Time, dx float64) bool {
	f := c.fighter
	p := c.profile
	if !f.Grounded() {
		return false
	}

	nearEdge := f.Pos.X < p.EdgeMargin || f.Pos.X > f.ScreenWidth()-f.Width-p.EdgeMargin
	far := math.Abs(dx) > p.FarJumpDistance
	if !far && !nearEdge && c.rng.Float64() >= p.JumpChance {
		return false
	}

	f.Vel.Y = -f.JumpSpeed
	f.Vel.X *= p.JumpBoost
	f.SetAnimation(fight.JumpFor(f.Facing()))
	c.nextAction = now.Add(p.JumpGate)
	return true
}
