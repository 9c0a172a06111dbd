package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"ringside/fight"
)

// A tengo script can replace the verdict step of the policy. The script must
// define decide(arena, state) and return one of "attack", "chase", "retreat",
// "jump" or "pass"; "pass" (or anything unknown) falls through to the
// built-in policy. state is a persistent map the script may use for its own
// bookkeeping across calls.
const scriptDispatch = `
__verdict = decide(__arena, __state)
`

// Script is a compiled opponent policy.
type Script struct {
	compiled *tengo.Compiled
	state    *tengo.Map
}

// LoadScript compiles a policy script from source.
func LoadScript(src []byte) (*Script, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), scriptDispatch...))
	_ = script.Add("__arena", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__verdict", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile script: %w", err)
	}
	return &Script{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// arenaView is the read-only snapshot handed to decide().
type arenaView struct {
	DX           float64
	DY           float64
	SelfHealth   float64
	TargetHealth float64
	Grounded     bool
	CanAttack    bool
}

// Decide runs the script once and returns its verdict.
func (s *Script) Decide(v arenaView) (string, error) {
	arena := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"dx":            &tengo.Float{Value: v.DX},
		"dy":            &tengo.Float{Value: v.DY},
		"self_health":   &tengo.Float{Value: v.SelfHealth},
		"target_health": &tengo.Float{Value: v.TargetHealth},
		"grounded":      boolObject(v.Grounded),
		"can_attack":    boolObject(v.CanAttack),
	}}
	if err := s.compiled.Set("__arena", arena); err != nil {
		return "", err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return "", err
	}
	if err := s.compiled.Set("__verdict", ""); err != nil {
		return "", err
	}
	if err := s.compiled.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(s.compiled.Get("__verdict").String()), nil
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

// runScript consults the script verdict and executes it. It reports whether
// the verdict consumed this decision tick; script errors are logged and fall
// back to the built-in policy.
func (c *Controller) runScript(now time.Time, dx, dy float64) bool {
	f, t := c.fighter, c.target
	verdict, err := c.script.Decide(arenaView{
		DX:           dx,
		DY:           dy,
		SelfHealth:   f.Health,
		TargetHealth: t.Health,
		Grounded:     f.Grounded(),
		CanAttack:    f.AttackCooldown() == 0 && c.attackThrottle == 0,
	})
	if err != nil {
		c.log.Warn("ai script error", zap.Error(err))
		return false
	}

	p := c.profile
	switch verdict {
	case "attack":
		if c.attackThrottle > 0 {
			return true
		}
		f.EnsureClip(fight.AttackFor(f.Facing()))
		f.Attack(t)
		c.attackThrottle = p.AttackThrottle
		c.nextAction = now.Add(p.AttackGate)
		return true
	case "chase":
		if dx > 0 {
			f.Vel.X = f.MoveSpeed
		} else if dx < 0 {
			f.Vel.X = -f.MoveSpeed
		}
		c.setRunAnimation()
		c.nextAction = now.Add(p.DefaultGate)
		return true
	case "retreat":
		if dx > 0 {
			f.Vel.X = -f.MoveSpeed
		} else {
			f.Vel.X = f.MoveSpeed
		}
		c.setRunAnimation()
		c.nextAction = now.Add(p.DefaultGate)
		return true
	case "jump":
		if !f.Grounded() {
			return true
		}
		f.Vel.Y = -f.JumpSpeed
		f.Vel.X *= p.JumpBoost
		f.SetAnimation(fight.JumpFor(f.Facing()))
		c.nextAction = now.Add(p.JumpGate)
		return true
	}
	return false
}

func (c *Controller) setRunAnimation() {
	f := c.fighter
	switch {
	case f.Vel.X > 0:
		f.SetAnimation(fight.RunFor(fight.FacingRight))
	case f.Vel.X < 0:
		f.SetAnimation(fight.RunFor(fight.FacingLeft))
	default:
		f.SetAnimation(fight.IdleFor(f.Facing()))
	}
}
