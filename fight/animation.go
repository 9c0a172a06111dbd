package fight

import "fmt"

// Facing is the horizontal direction a fighter last moved in. It picks the
// idle/attack/jump sprite variant and the side the attack hitbox extends from.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// State identifies one animation of a fighter. Exactly one state is active
// at a time.
type State int

const (
	StateIdleRight State = iota
	StateIdleLeft
	StateRunRight
	StateRunLeft
	StateJumpRight
	StateJumpLeft
	StateAttackRight
	StateAttackLeft
	StateDodgeRight
	StateDodgeLeft

	stateCount
)

var stateNames = [stateCount]string{
	"idle_right", "idle_left",
	"run_right", "run_left",
	"jump_right", "jump_left",
	"attack_right", "attack_left",
	"dodge_right", "dodge_left",
}

func (s State) String() string {
	if s < 0 || s >= stateCount {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// IdleFor returns the idle state matching a facing.
func IdleFor(f Facing) State {
	if f == FacingLeft {
		return StateIdleLeft
	}
	return StateIdleRight
}

// RunFor returns the run state matching a facing.
func RunFor(f Facing) State {
	if f == FacingLeft {
		return StateRunLeft
	}
	return StateRunRight
}

// JumpFor returns the jump state matching a facing.
func JumpFor(f Facing) State {
	if f == FacingLeft {
		return StateJumpLeft
	}
	return StateJumpRight
}

// AttackFor returns the attack state matching a facing.
func AttackFor(f Facing) State {
	if f == FacingLeft {
		return StateAttackLeft
	}
	return StateAttackRight
}

// DodgeFor returns the dodge state matching a facing.
func DodgeFor(f Facing) State {
	if f == FacingLeft {
		return StateDodgeLeft
	}
	return StateDodgeRight
}

// DefaultHold is the fighter-wide frame-hold duration (ticks per frame
// advance) used by clips that don't override it.
const DefaultHold = 10

// Clip is one animation's frame sequence. Frames counts the ordered frames;
// Hold overrides the per-frame tick duration when > 0.
type Clip struct {
	Frames int
	Hold   int
}

func (c Clip) hold() int {
	if c.Hold > 0 {
		return c.Hold
	}
	return DefaultHold
}

// ClipSet maps every animation state to its clip. Both idle clips must be
// present: they are the degraded-state fallback for everything else.
type ClipSet struct {
	clips [stateCount]Clip
	set   [stateCount]bool
}

// NewClipSet builds a ClipSet from the given per-state clips. It fails when
// either idle clip is missing or a clip has no frames, so a bad sheet layout
// surfaces at construction instead of at draw time.
func NewClipSet(clips map[State]Clip) (*ClipSet, error) {
	cs := &ClipSet{}
	for st, c := range clips {
		if st < 0 || st >= stateCount {
			return nil, fmt.Errorf("fight: unknown animation state %d", int(st))
		}
		if c.Frames <= 0 {
			return nil, fmt.Errorf("fight: clip %s has no frames", st)
		}
		cs.clips[st] = c
		cs.set[st] = true
	}
	if !cs.set[StateIdleRight] || !cs.set[StateIdleLeft] {
		return nil, fmt.Errorf("fight: clip set is missing an idle clip")
	}
	return cs, nil
}

// Clip returns the clip for a state, if present.
func (cs *ClipSet) Clip(st State) (Clip, bool) {
	if cs == nil || st < 0 || st >= stateCount || !cs.set[st] {
		return Clip{}, false
	}
	return cs.clips[st], true
}

// Ensure registers a single-frame placeholder clip for st if none exists.
// A missing clip must never reach the combat resolver as a crash.
func (cs *ClipSet) Ensure(st State) {
	if cs == nil || st < 0 || st >= stateCount || cs.set[st] {
		return
	}
	cs.clips[st] = Clip{Frames: 1, Hold: 5}
	cs.set[st] = true
}

// Animator tracks the active animation state and frame of one fighter.
type Animator struct {
	clips   *ClipSet
	state   State
	frame   int
	elapsed int
}

// NewAnimator creates an animator over cs, starting in the idle state for f.
func NewAnimator(cs *ClipSet, f Facing) Animator {
	return Animator{clips: cs, state: IdleFor(f)}
}

// State returns the active animation state.
func (a *Animator) State() State { return a.state }

// Frame returns the current frame index within the active clip.
func (a *Animator) Frame() int { return a.frame }

// Clips returns the underlying clip set.
func (a *Animator) Clips() *ClipSet { return a.clips }

// SetState switches the active animation. Setting the already-active state
// is a no-op; a new state resets the frame counter to 0.
func (a *Animator) SetState(st State) {
	if st == a.state {
		return
	}
	a.state = st
	a.frame = 0
	a.elapsed = 0
}

// Tick advances the frame-hold counter, stepping the frame cyclically when
// the hold expires. If the active clip is missing or the frame index ran
// past the clip, the animator degrades to the idle clip for facing.
func (a *Animator) Tick(facing Facing) {
	clip, ok := a.clips.Clip(a.state)
	if !ok || a.frame >= clip.Frames {
		a.SetState(IdleFor(facing))
		clip, ok = a.clips.Clip(a.state)
		if !ok {
			return
		}
	}

	a.elapsed++
	if a.elapsed >= clip.hold() {
		a.elapsed = 0
		a.frame++
		if a.frame >= clip.Frames {
			a.frame = 0
		}
	}
}
