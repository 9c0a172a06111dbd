package fight

import (
	"math"
	"testing"
)

const (
	testScreenW = 1024
	testScreenH = 576
)

func testConfig(name string, x float64) Config {
	return Config{
		Name:         name,
		Width:        50,
		Height:       150,
		MaxHealth:    100,
		AttackDamage: 10,
		MoveSpeed:    5,
		JumpSpeed:    20,
		SpawnX:       x,
		SpawnY:       testScreenH - 150,
		Facing:       FacingRight,
	}
}

func newTestFighter(t *testing.T, cfg Config, rules Rules, clock Clock) *Fighter {
	t.Helper()
	return NewFighter(cfg, testClips(t), rules, testScreenW, testScreenH, clock)
}

func TestGravityAccumulatesWhileAirborne(t *testing.T) {
	cfg := testConfig("faller", 200)
	cfg.SpawnY = 0
	f := newTestFighter(t, cfg, Classic(), nil)

	for i := 1; i <= 10; i++ {
		f.Update(nil)
		want := Gravity * float64(i)
		if math.Abs(f.Vel.Y-want) > 1e-9 {
			t.Fatalf("tick %d: vel.y = %v, want %v", i, f.Vel.Y, want)
		}
	}
}

func TestGroundSnapZeroesVerticalVelocity(t *testing.T) {
	cfg := testConfig("lander", 200)
	cfg.SpawnY = testScreenH - 160
	f := newTestFighter(t, cfg, Classic(), nil)
	f.Vel.Y = 50

	f.Update(nil)
	if !f.Grounded() {
		t.Fatalf("expected fighter on the ground, y=%v", f.Pos.Y)
	}
	if f.Pos.Y != testScreenH-f.Height {
		t.Fatalf("y = %v, want %v", f.Pos.Y, testScreenH-f.Height)
	}
	if f.Vel.Y != 0 {
		t.Fatalf("vertical velocity not zeroed on landing: %v", f.Vel.Y)
	}
}

func TestApplyIntentMovement(t *testing.T) {
	cases := []struct {
		name       string
		in         Intent
		wantVelX   float64
		wantFacing Facing
	}{
		{"left", Intent{MoveLeft: true}, -5, FacingLeft},
		{"right", Intent{MoveRight: true}, 5, FacingRight},
		{"idle", Intent{}, 0, FacingRight},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newTestFighter(t, testConfig("mover", 200), Classic(), nil)
			f.ApplyIntent(c.in)
			if f.Vel.X != c.wantVelX {
				t.Fatalf("vel.x = %v, want %v", f.Vel.X, c.wantVelX)
			}
			if f.Facing() != c.wantFacing {
				t.Fatalf("facing = %s, want %s", f.Facing(), c.wantFacing)
			}
		})
	}
}

func TestJumpRequiresGround(t *testing.T) {
	f := newTestFighter(t, testConfig("jumper", 200), Classic(), nil)

	f.ApplyIntent(Intent{Jump: true})
	if f.Vel.Y != -f.JumpSpeed {
		t.Fatalf("grounded jump: vel.y = %v, want %v", f.Vel.Y, -f.JumpSpeed)
	}

	f.Update(nil) // now airborne
	before := f.Vel.Y
	f.ApplyIntent(Intent{Jump: true})
	if f.Vel.Y != before {
		t.Fatalf("airborne jump must not re-launch: vel.y went %v -> %v", before, f.Vel.Y)
	}
}

func TestHorizontalClampAtScreenEdges(t *testing.T) {
	f := newTestFighter(t, testConfig("edge", 2), Classic(), nil)
	f.Vel.X = -100
	f.Update(nil)
	if f.Pos.X != 0 {
		t.Fatalf("left clamp: x = %v", f.Pos.X)
	}

	f.Pos.X = testScreenW - f.Width - 2
	f.Vel.X = 100
	f.Update(nil)
	if f.Pos.X != testScreenW-f.Width {
		t.Fatalf("right clamp: x = %v, want %v", f.Pos.X, testScreenW-f.Width)
	}
}

func TestRefreshAnimationPriority(t *testing.T) {
	f := newTestFighter(t, testConfig("anim", 200), Classic(), nil)

	f.ApplyIntent(Intent{MoveRight: true})
	if st, _ := f.Animation(); st != StateRunRight {
		t.Fatalf("moving: state = %s", st)
	}

	f.ApplyIntent(Intent{Jump: true})
	f.Update(nil)
	f.ApplyIntent(Intent{})
	if st, _ := f.Animation(); st != StateJumpRight {
		t.Fatalf("airborne: state = %s", st)
	}
}

func TestDodgeLifecycle(t *testing.T) {
	rules := Extended()
	f := newTestFighter(t, testConfig("dodger", 200), rules, nil)

	if !f.StartDodge() {
		t.Fatalf("dodge rejected from a clean state")
	}
	if !f.Dodging() || f.Vel.X != rules.DodgeSpeed {
		t.Fatalf("dodge start: dodging=%v vel.x=%v", f.Dodging(), f.Vel.X)
	}

	// movement input is ignored while the dodge runs
	f.ApplyIntent(Intent{MoveLeft: true})
	if f.Vel.X != rules.DodgeSpeed {
		t.Fatalf("dodge velocity overridden by intent: %v", f.Vel.X)
	}

	if f.StartDodge() {
		t.Fatalf("dodge restarted while already dodging")
	}

	for i := 0; i < rules.DodgeDuration; i++ {
		f.Update(nil)
	}
	if f.Dodging() {
		t.Fatalf("dodge still running after %d ticks", rules.DodgeDuration)
	}
	if f.Vel.X != 0 {
		t.Fatalf("dodge velocity not cleared: %v", f.Vel.X)
	}

	if f.StartDodge() {
		t.Fatalf("dodge restarted during cooldown")
	}
	for i := 0; i < rules.DodgeCooldown; i++ {
		f.Update(nil)
	}
	if !f.StartDodge() {
		t.Fatalf("dodge rejected after cooldown expired")
	}
}

func TestDodgeDisabledUnderClassicRules(t *testing.T) {
	f := newTestFighter(t, testConfig("classic", 200), Classic(), nil)
	if f.StartDodge() {
		t.Fatalf("classic rules must not allow dodging")
	}
}

func TestDodgeFacesLeft(t *testing.T) {
	cfg := testConfig("dodger", 400)
	cfg.Facing = FacingLeft
	f := newTestFighter(t, cfg, Extended(), nil)

	f.StartDodge()
	if f.Vel.X != -f.Rules().DodgeSpeed {
		t.Fatalf("left dodge: vel.x = %v", f.Vel.X)
	}
}

func TestApplyDamageClampsAtZero(t *testing.T) {
	f := newTestFighter(t, testConfig("victim", 200), Classic(), nil)
	f.ApplyDamage(250)
	if f.Health != 0 {
		t.Fatalf("health = %v, want 0", f.Health)
	}
	if f.Alive() {
		t.Fatalf("fighter at zero health must not be alive")
	}
}

func TestUpdateDrawsThroughSink(t *testing.T) {
	f := newTestFighter(t, testConfig("drawn", 200), Classic(), nil)
	var got []State
	sink := sinkFunc(func(_ *Fighter, st State, frame int) {
		got = append(got, st)
	})

	f.Update(sink)
	f.Update(sink)
	if len(got) != 2 {
		t.Fatalf("expected 2 draw calls, got %d", len(got))
	}
	if got[0] != StateIdleRight {
		t.Fatalf("first draw state = %s", got[0])
	}
}

type sinkFunc func(f *Fighter, st State, frame int)

func (fn sinkFunc) DrawFighter(f *Fighter, st State, frame int) { fn(f, st, frame) }
