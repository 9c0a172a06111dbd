package fight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttackHitboxGeometry(t *testing.T) {
	f := newTestFighter(t, testConfig("attacker", 100), Classic(), nil)

	hb := f.AttackHitbox()
	assert.Equal(t, 150.0, hb.StartX, "right-facing hitbox starts at the right edge")
	assert.Equal(t, 250.0, hb.EndX)
	assert.Equal(t, f.Pos.Y, hb.Top)
	assert.Equal(t, f.Pos.Y+f.Height, hb.Bottom)

	f.SetFacing(FacingLeft)
	hb = f.AttackHitbox()
	assert.Equal(t, 0.0, hb.StartX, "left-facing hitbox extends from the left edge")
	assert.Equal(t, 100.0, hb.EndX)
}

func TestAttackRangeResolution(t *testing.T) {
	// attacker at x=100, width 50, classic range 100: reach spans (150, 250)
	cases := []struct {
		name    string
		targetX float64
		hit     bool
	}{
		{"well_inside", 200, true},
		{"out_of_reach", 260, false},
		{"last_overlapping_pixel", 249, true},
		{"exact_range_gap", 250, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			attacker := newTestFighter(t, testConfig("attacker", 100), Classic(), nil)
			target := newTestFighter(t, testConfig("target", c.targetX), Classic(), nil)

			landed := attacker.Attack(target)
			assert.Equal(t, c.hit, landed)
			if c.hit {
				assert.Equal(t, 90.0, target.Health)
			} else {
				assert.Equal(t, 100.0, target.Health, "a miss must not damage")
			}
			assert.True(t, attacker.Attacking(), "a miss still starts the attack")
			assert.Equal(t, 120, attacker.AttackCooldown())
		})
	}
}

func TestAttackMissesVertically(t *testing.T) {
	attacker := newTestFighter(t, testConfig("attacker", 100), Classic(), nil)
	target := newTestFighter(t, testConfig("target", 200), Classic(), nil)
	target.Pos.Y = attacker.Pos.Y - 300 // well above the attacker's span

	assert.False(t, attacker.Attack(target))
	assert.Equal(t, 100.0, target.Health)
}

func TestAttackBlockedDuringCooldown(t *testing.T) {
	attacker := newTestFighter(t, testConfig("attacker", 100), Classic(), nil)
	target := newTestFighter(t, testConfig("target", 200), Classic(), nil)

	require.True(t, attacker.Attack(target))
	assert.False(t, attacker.Attack(target), "second attack inside the cooldown")
	assert.Equal(t, 90.0, target.Health, "cooldown attack must not deal damage")
}

func TestAttackBlockedWhileDodging(t *testing.T) {
	attacker := newTestFighter(t, testConfig("attacker", 100), Extended(), nil)
	target := newTestFighter(t, testConfig("target", 200), Extended(), nil)

	require.True(t, attacker.StartDodge())
	assert.False(t, attacker.Attack(target))
	assert.Equal(t, 100.0, target.Health)
}

func TestDodgingTargetStillTakesDamage(t *testing.T) {
	attacker := newTestFighter(t, testConfig("attacker", 100), Extended(), nil)
	target := newTestFighter(t, testConfig("target", 200), Extended(), nil)

	require.True(t, target.StartDodge())
	assert.True(t, attacker.Attack(target))
	assert.Equal(t, 90.0, target.Health)
}

// expireCooldown runs updates until the attack cooldown clears, which also
// opens the combo window under extended rules.
func expireCooldown(f *Fighter) {
	for f.AttackCooldown() > 0 {
		f.Update(nil)
	}
}

func TestComboShortensCooldowns(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	attacker := newTestFighter(t, testConfig("attacker", 100), Extended(), clock)
	target := newTestFighter(t, testConfig("target", 200), Extended(), clock)

	require.True(t, attacker.Attack(target))
	assert.Equal(t, 0, attacker.ComboCount())
	assert.Equal(t, 30, attacker.AttackCooldown())

	expireCooldown(attacker)
	clock.Advance(100 * time.Millisecond)
	require.True(t, attacker.Attack(target))
	assert.Equal(t, 1, attacker.ComboCount())
	assert.Equal(t, 25, attacker.AttackCooldown())

	expireCooldown(attacker)
	clock.Advance(100 * time.Millisecond)
	require.True(t, attacker.Attack(target))
	assert.Equal(t, 2, attacker.ComboCount())
	assert.Equal(t, 20, attacker.AttackCooldown())

	// the fourth attack wraps back to step 0
	expireCooldown(attacker)
	clock.Advance(100 * time.Millisecond)
	require.True(t, attacker.Attack(target))
	assert.Equal(t, 0, attacker.ComboCount())
	assert.Equal(t, 30, attacker.AttackCooldown())
}

func TestComboWindowExpires(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	attacker := newTestFighter(t, testConfig("attacker", 100), Extended(), clock)
	target := newTestFighter(t, testConfig("target", 200), Extended(), clock)

	require.True(t, attacker.Attack(target))
	expireCooldown(attacker)

	clock.Advance(600 * time.Millisecond) // past the 500ms window
	require.True(t, attacker.Attack(target))
	assert.Equal(t, 0, attacker.ComboCount(), "a late follow-up restarts the combo")
	assert.Equal(t, 30, attacker.AttackCooldown())
}

func TestComboRequiresFullCooldownExpiry(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	attacker := newTestFighter(t, testConfig("attacker", 100), Extended(), clock)
	target := newTestFighter(t, testConfig("target", 200), Extended(), clock)

	require.True(t, attacker.Attack(target))

	// run the cooldown almost out, then let lots of wall time pass
	for i := 0; i < 29; i++ {
		attacker.Update(nil)
	}
	clock.Advance(100 * time.Millisecond)
	assert.False(t, attacker.Attack(target), "cooldown has one tick left")
}

func TestClassicRulesIgnoreCombos(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	attacker := newTestFighter(t, testConfig("attacker", 100), Classic(), clock)
	target := newTestFighter(t, testConfig("target", 200), Classic(), clock)

	require.True(t, attacker.Attack(target))
	expireCooldown(attacker)
	clock.Advance(100 * time.Millisecond)
	require.True(t, attacker.Attack(target))
	assert.Equal(t, 0, attacker.ComboCount())
	assert.Equal(t, 120, attacker.AttackCooldown(), "classic cooldown is fixed")
}

func TestOverkillClampsHealth(t *testing.T) {
	attacker := newTestFighter(t, testConfig("attacker", 100), Classic(), nil)
	target := newTestFighter(t, testConfig("target", 200), Classic(), nil)
	target.Health = 4

	require.True(t, attacker.Attack(target))
	assert.Equal(t, 0.0, target.Health)
	assert.False(t, target.Alive())
}
