package ai

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ringside/fight"
)

const (
	testScreenW = 1024
	testScreenH = 576
)

func testClips(t *testing.T) *fight.ClipSet {
	t.Helper()
	cs, err := fight.NewClipSet(map[fight.State]fight.Clip{
		fight.StateIdleRight: {Frames: 2},
		fight.StateIdleLeft:  {Frames: 2},
		fight.StateRunRight:  {Frames: 2},
		fight.StateRunLeft:   {Frames: 2},
		fight.StateJumpRight: {Frames: 2},
		fight.StateJumpLeft:  {Frames: 2},
	})
	require.NoError(t, err)
	return cs
}

func testFighter(t *testing.T, name string, x float64, rules fight.Rules, clock fight.Clock) *fight.Fighter {
	t.Helper()
	return fight.NewFighter(fight.Config{
		Name:         name,
		Width:        50,
		Height:       150,
		MaxHealth:    100,
		AttackDamage: 10,
		MoveSpeed:    5,
		JumpSpeed:    20,
		SpawnX:       x,
		SpawnY:       testScreenH - 150,
	}, testClips(t), rules, testScreenW, testScreenH, clock)
}

type fixture struct {
	controller *Controller
	fighter    *fight.Fighter
	target     *fight.Fighter
	clock      *fight.ManualClock
}

func newFixture(t *testing.T, fighterX, targetX float64) *fixture {
	t.Helper()
	clock := fight.NewManualClock(time.Unix(0, 0))
	rules := fight.Extended()
	f := testFighter(t, "enemy", fighterX, rules, clock)
	target := testFighter(t, "player", targetX, rules, clock)
	return &fixture{
		controller: NewController(ControllerConfig{
			Fighter: f,
			Target:  target,
			Clock:   clock,
			Rand:    rand.New(rand.NewSource(1)),
		}),
		fighter: f,
		target:  target,
		clock:   clock,
	}
}

func TestFacingFollowsTarget(t *testing.T) {
	fx := newFixture(t, 500, 200)
	fx.controller.Update()
	assert.Equal(t, fight.FacingLeft, fx.fighter.Facing())

	fx.clock.Advance(time.Second)
	fx.target.Pos.X = 900
	fx.controller.Update()
	assert.Equal(t, fight.FacingRight, fx.fighter.Facing())
}

func TestAttackInsideCloseBox(t *testing.T) {
	// dx = 60, dy = 0: inside the guaranteed close box and inside reach
	fx := newFixture(t, 500, 560)

	fx.controller.Update()
	assert.Equal(t, 90.0, fx.target.Health)
	assert.True(t, fx.fighter.Attacking())
}

func TestDecisionGateSuppressesFollowups(t *testing.T) {
	fx := newFixture(t, 500, 560)

	fx.controller.Update()
	require.Equal(t, 90.0, fx.target.Health)

	// inside the 50ms attack gate nothing happens at all
	fx.controller.Update()
	fx.controller.Update()
	assert.Equal(t, 90.0, fx.target.Health)
}

func TestAttackThrottleLimitsCadence(t *testing.T) {
	fx := newFixture(t, 500, 560)
	fx.controller.profile.JumpChance = 0 // keep the hop lottery out of the cadence

	fx.controller.Update()
	require.Equal(t, 90.0, fx.target.Health)

	// wall time passes but the tick throttle still blocks the next swing
	fx.clock.Advance(time.Second)
	fx.controller.Update()
	assert.Equal(t, 90.0, fx.target.Health)

	// drive ticks the way a match would, pinning the geometry so only the
	// throttle and the fighter's own cooldown decide when damage resumes
	ticks := 0
	for ; fx.target.Health > 80 && ticks < 200; ticks++ {
		fx.fighter.Update(nil)
		fx.fighter.Pos = fight.Vec2{X: 500, Y: testScreenH - 150}
		fx.fighter.Vel = fight.Vec2{}
		fx.clock.Advance(time.Second)
		fx.controller.Update()
	}
	assert.Equal(t, 80.0, fx.target.Health)
	assert.GreaterOrEqual(t, ticks, fx.controller.profile.AttackThrottle)
}

func TestChaseMovesTowardTarget(t *testing.T) {
	fx := newFixture(t, 500, 900) // dx = 400: outside every attack band
	fx.controller.Update()
	assert.Equal(t, fight.FacingRight, fx.fighter.Facing())
	assert.Greater(t, fx.fighter.Vel.X, 0.0)

	fx.clock.Advance(time.Second)
	fx.target.Pos.X = 100
	fx.controller.Update()
	assert.Less(t, fx.fighter.Vel.X, 0.0)
}

func TestFarTargetTriggersBoostedJump(t *testing.T) {
	fx := newFixture(t, 500, 900)
	fx.controller.Update()

	assert.Equal(t, -fx.fighter.JumpSpeed, fx.fighter.Vel.Y)
	assert.Equal(t, fx.fighter.MoveSpeed*fx.controller.profile.JumpBoost, fx.fighter.Vel.X)
}

func TestJumpSkippedWhileAirborne(t *testing.T) {
	fx := newFixture(t, 500, 900)
	fx.fighter.Pos.Y = 100 // airborne

	fx.controller.Update()
	assert.Equal(t, 0.0, fx.fighter.Vel.Y, "no jump impulse while off the ground")
}

func TestEdgeEscapeReversesAndHops(t *testing.T) {
	fx := newFixture(t, 10, 400) // cornered at the left wall, target out of attack range
	fx.fighter.Vel.X = -fx.fighter.MoveSpeed

	fx.controller.Update()
	assert.Greater(t, fx.fighter.Vel.X, 0.0, "escape pushes away from the wall")
	assert.Equal(t, -fx.fighter.JumpSpeed, fx.fighter.Vel.Y)
}

func TestProfilesDifferByDifficulty(t *testing.T) {
	easy := ProfileFor(Easy)
	normal := ProfileFor(Normal)
	hard := ProfileFor(Hard)

	assert.Greater(t, easy.DefaultGate, normal.DefaultGate)
	assert.Less(t, hard.DefaultGate, normal.DefaultGate)
	assert.Greater(t, hard.ExtendedAttackChance, normal.ExtendedAttackChance)
	assert.Equal(t, 150.0, normal.CloseRangeX)
	assert.Equal(t, 100.0, normal.CloseRangeY)
	assert.Equal(t, 200.0, normal.ExtendedRangeX)
	assert.Equal(t, 1.8, normal.JumpBoost)
}

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		in   string
		want Difficulty
		ok   bool
	}{
		{"easy", Easy, true},
		{"normal", Normal, true},
		{"hard", Hard, true},
		{"", Normal, true},
		{"nightmare", Normal, false},
	}
	for _, c := range cases {
		got, err := ParseDifficulty(c.in)
		if c.ok {
			require.NoError(t, err, c.in)
			assert.Equal(t, c.want, got, c.in)
		} else {
			assert.Error(t, err, c.in)
		}
	}
}

func TestResetClearsDecisionState(t *testing.T) {
	fx := newFixture(t, 500, 560)
	fx.controller.Update()
	require.Equal(t, 90.0, fx.target.Health)

	// without advancing the clock, only a reset clears the gate and throttle
	fx.controller.Reset()
	fx.fighter.Vel = fight.Vec2{}
	for fx.fighter.AttackCooldown() > 0 {
		fx.fighter.Update(nil)
	}
	fx.controller.Update()
	assert.Equal(t, 80.0, fx.target.Health)
}
