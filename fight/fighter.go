package fight

import "time"

// Vec2 is a 2D point or velocity. X grows rightward, Y grows downward.
type Vec2 struct {
	X float64
	Y float64
}

// Sink receives draw requests from the simulation. The core never touches a
// rendering API: it hands over the animation state, frame index and geometry
// and lets the view decide what that looks like.
type Sink interface {
	DrawFighter(f *Fighter, st State, frame int)
}

// Config is the static description of one combatant.
type Config struct {
	Name         string
	Width        float64
	Height       float64
	MaxHealth    float64
	AttackDamage float64
	MoveSpeed    float64
	JumpSpeed    float64
	SpawnX       float64
	SpawnY       float64
	Facing       Facing
}

// Fighter is one combatant: position, velocity, health, combat timers and
// the active animation. All timers are tick-counted except the combo window,
// which samples the injected clock.
type Fighter struct {
	Name   string
	Pos    Vec2
	Vel    Vec2
	Width  float64
	Height float64

	Health    float64
	MaxHealth float64

	AttackDamage float64
	MoveSpeed    float64
	JumpSpeed    float64

	facing Facing
	anim   Animator

	rules   Rules
	clock   Clock
	screenW float64
	screenH float64

	attackCooldown int
	attacking      bool

	dodging       bool
	dodgeTimer    int
	dodgeCooldown int

	canCombo   bool
	comboCount int
	lastAttack time.Time
}

// NewFighter creates a fighter at its spawn point with full health.
func NewFighter(cfg Config, clips *ClipSet, rules Rules, screenW, screenH float64, clock Clock) *Fighter {
	if clock == nil {
		clock = SystemClock()
	}
	return &Fighter{
		Name:         cfg.Name,
		Pos:          Vec2{X: cfg.SpawnX, Y: cfg.SpawnY},
		Width:        cfg.Width,
		Height:       cfg.Height,
		Health:       cfg.MaxHealth,
		MaxHealth:    cfg.MaxHealth,
		AttackDamage: cfg.AttackDamage,
		MoveSpeed:    cfg.MoveSpeed,
		JumpSpeed:    cfg.JumpSpeed,
		facing:       cfg.Facing,
		anim:         NewAnimator(clips, cfg.Facing),
		rules:        rules,
		clock:        clock,
		screenW:      screenW,
		screenH:      screenH,
	}
}

// Facing returns the fighter's current facing.
func (f *Fighter) Facing() Facing { return f.facing }

// SetFacing updates the fighter's facing.
func (f *Fighter) SetFacing(d Facing) { f.facing = d }

// Animation returns the active animation state and frame index.
func (f *Fighter) Animation() (State, int) { return f.anim.State(), f.anim.Frame() }

// SetAnimation switches the active animation state. Re-setting the active
// state leaves the frame untouched; a new state restarts at frame 0.
func (f *Fighter) SetAnimation(st State) { f.anim.SetState(st) }

// EnsureClip registers a short placeholder clip for st when the sheet layout
// didn't define one, so selecting it can never fail downstream.
func (f *Fighter) EnsureClip(st State) { f.anim.Clips().Ensure(st) }

// Grounded reports whether the fighter is standing on the floor.
func (f *Fighter) Grounded() bool { return f.Pos.Y+f.Height >= f.screenH }

// Alive reports whether the fighter has health left.
func (f *Fighter) Alive() bool { return f.Health > 0 }

// Attacking reports whether an attack cooldown from a started attack is
// still running.
func (f *Fighter) Attacking() bool { return f.attacking }

// Dodging reports whether the fighter is inside its dodge window.
func (f *Fighter) Dodging() bool { return f.dodging }

// ComboCount returns the current combo step in {0,1,2}.
func (f *Fighter) ComboCount() int { return f.comboCount }

// AttackCooldown returns the ticks remaining before another attack may start.
func (f *Fighter) AttackCooldown() int { return f.attackCooldown }

// Rules returns the rule set this fighter plays under.
func (f *Fighter) Rules() Rules { return f.rules }

// ScreenWidth returns the horizontal extent the fighter is clamped to.
func (f *Fighter) ScreenWidth() float64 { return f.screenW }

// ApplyIntent turns held input into velocity, facing and animation for this
// tick. Dodging fighters keep their forced velocity and ignore movement.
func (f *Fighter) ApplyIntent(in Intent) {
	if f.dodging {
		return
	}

	f.Vel.X = 0
	switch {
	case in.MoveLeft:
		f.Vel.X = -f.MoveSpeed
		f.facing = FacingLeft
	case in.MoveRight:
		f.Vel.X = f.MoveSpeed
		f.facing = FacingRight
	}

	if in.Jump && f.Grounded() {
		f.Vel.Y = -f.JumpSpeed
	}

	f.refreshAnimation()
}

// refreshAnimation picks the animation implied by the fighter's motion,
// keeping the attack clip on screen while its cooldown runs.
func (f *Fighter) refreshAnimation() {
	switch {
	case f.attacking:
		f.anim.SetState(AttackFor(f.facing))
	case !f.Grounded():
		f.anim.SetState(JumpFor(f.facing))
	case f.Vel.X != 0:
		f.anim.SetState(RunFor(f.facing))
	default:
		f.anim.SetState(IdleFor(f.facing))
	}
}

// StartDodge enters the timed dodge state: forced horizontal velocity in the
// facing direction and no attacking until it ends. It is silently ignored
// while attacking, already dodging, on dodge cooldown, or under rules
// without dodging.
func (f *Fighter) StartDodge() bool {
	if !f.rules.DodgeEnabled || f.dodging || f.attacking || f.dodgeCooldown > 0 {
		return false
	}
	f.dodging = true
	f.dodgeTimer = f.rules.DodgeDuration
	if f.facing == FacingLeft {
		f.Vel.X = -f.rules.DodgeSpeed
	} else {
		f.Vel.X = f.rules.DodgeSpeed
	}
	f.anim.SetState(DodgeFor(f.facing))
	return true
}

// ApplyDamage subtracts amount from health, clamped at zero.
func (f *Fighter) ApplyDamage(amount float64) {
	f.Health -= amount
	if f.Health < 0 {
		f.Health = 0
	}
}

// Update runs one simulation tick:
//
//  1. draw the current frame through the sink
//  2. advance the animation, falling back to the facing idle clip
//  3. integrate position (explicit Euler)
//  4. clamp x to the screen
//  5. ground snap or gravity
//  6. run attack and dodge cooldowns
//  7. clear the attacking flag when its cooldown expires (opening the
//     combo window under extended rules)
//  8. run the dodge timer and end the dodge
func (f *Fighter) Update(sink Sink) {
	if sink != nil {
		sink.DrawFighter(f, f.anim.State(), f.anim.Frame())
	}

	f.anim.Tick(f.facing)

	f.Pos.X += f.Vel.X
	f.Pos.Y += f.Vel.Y

	if f.Pos.X < 0 {
		f.Pos.X = 0
	}
	if max := f.screenW - f.Width; f.Pos.X > max {
		f.Pos.X = max
	}

	if f.Pos.Y+f.Height >= f.screenH {
		f.Pos.Y = f.screenH - f.Height
		f.Vel.Y = 0
	} else {
		f.Vel.Y += Gravity
	}

	if f.attackCooldown > 0 {
		f.attackCooldown--
		if f.attackCooldown == 0 && f.attacking {
			f.attacking = false
			if f.rules.ComboEnabled {
				f.canCombo = true
			}
		}
	}
	if f.dodgeCooldown > 0 {
		f.dodgeCooldown--
	}

	if f.dodging {
		f.dodgeTimer--
		if f.dodgeTimer <= 0 {
			f.dodging = false
			f.dodgeCooldown = f.rules.DodgeCooldown
			f.Vel.X = 0
			f.anim.SetState(IdleFor(f.facing))
		}
	}
}
