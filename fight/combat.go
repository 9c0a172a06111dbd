package fight

// Hitbox is the axis-aligned rectangle an attack sweeps: it extends from the
// attacker's facing edge outward by the rule set's attack range and spans the
// attacker's own vertical extent.
type Hitbox struct {
	StartX float64
	EndX   float64
	Top    float64
	Bottom float64
}

// AttackHitbox computes the hitbox an attack by f would sweep right now.
func (f *Fighter) AttackHitbox() Hitbox {
	hb := Hitbox{Top: f.Pos.Y, Bottom: f.Pos.Y + f.Height}
	if f.facing == FacingLeft {
		hb.EndX = f.Pos.X
		hb.StartX = hb.EndX - f.rules.AttackRange
	} else {
		hb.StartX = f.Pos.X + f.Width
		hb.EndX = hb.StartX + f.rules.AttackRange
	}
	return hb
}

// Overlaps tests the hitbox against a target's full bounding box on both
// axes. Boundaries are strict: touching edges do not overlap.
func (hb Hitbox) Overlaps(t *Fighter) bool {
	return hb.EndX > t.Pos.X && hb.StartX < t.Pos.X+t.Width &&
		hb.Bottom > t.Pos.Y && hb.Top < t.Pos.Y+t.Height
}

// Attack resolves one attack by f against target. It is a silent no-op while
// the attack cooldown runs or f is mid-dodge. On success the attacking state
// starts, the cooldown is set (classic: fixed; extended: shortened by the
// combo step), and damage lands if the hitbox overlaps the target.
//
// The target's own dodge state is deliberately not consulted: dodging only
// blocks the dodger from attacking, it grants no invincibility.
func (f *Fighter) Attack(target *Fighter) bool {
	if f.attackCooldown > 0 || f.dodging {
		return false
	}

	f.attacking = true
	if f.rules.ComboEnabled {
		now := f.clock.Now()
		if f.canCombo && now.Sub(f.lastAttack) < f.rules.ComboWindow {
			f.comboCount = (f.comboCount + 1) % 3
		} else {
			f.comboCount = 0
		}
		f.attackCooldown = f.rules.ComboBaseCooldown - f.comboCount*f.rules.ComboStepDiscount
		f.lastAttack = now
		f.canCombo = false
	} else {
		f.attackCooldown = f.rules.AttackCooldown
	}

	f.EnsureClip(AttackFor(f.facing))
	f.anim.SetState(AttackFor(f.facing))

	if target == nil {
		return false
	}
	if f.AttackHitbox().Overlaps(target) {
		target.ApplyDamage(f.AttackDamage)
		return true
	}
	return false
}
