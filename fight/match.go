package fight

import "go.uber.org/zap"

// Opponent drives the non-human fighter. Its Update runs once per tick after
// both fighters have moved; Reset clears any decision state between matches.
type Opponent interface {
	Update()
	Reset()
}

// MatchConfig describes one session: the two combatants, the rule set and
// the arena geometry.
type MatchConfig struct {
	Player  Config
	Enemy   Config
	Rules   Rules
	ScreenW float64
	ScreenH float64
	Clock   Clock
	Logger  *zap.Logger
}

// Match is the session context for one bout. It owns both fighters and runs
// the fixed per-frame order: apply intents, update player, update enemy,
// run the opponent controller, check the terminal condition. Once a winner
// is determined no further simulation runs until Reset.
type Match struct {
	Player *Fighter
	Enemy  *Fighter

	cfg        MatchConfig
	clock      Clock
	log        *zap.Logger
	controller Opponent

	playerIntent Intent
	enemyIntent  Intent

	tick   uint64
	winner *Fighter
}

// NewMatch builds a match with both fighters at their spawn points.
// clips are the animation sets for each side.
func NewMatch(cfg MatchConfig, playerClips, enemyClips *ClipSet) *Match {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	m := &Match{
		cfg:   cfg,
		clock: cfg.Clock,
		log:   cfg.Logger,
	}
	m.Player = NewFighter(cfg.Player, playerClips, cfg.Rules, cfg.ScreenW, cfg.ScreenH, cfg.Clock)
	m.Enemy = NewFighter(cfg.Enemy, enemyClips, cfg.Rules, cfg.ScreenW, cfg.ScreenH, cfg.Clock)
	return m
}

// SetController installs the opponent driver for the enemy fighter.
func (m *Match) SetController(c Opponent) { m.controller = c }

// SetPlayerIntent stores the player's input for the next tick.
func (m *Match) SetPlayerIntent(in Intent) { m.playerIntent = in }

// SetEnemyIntent stores manual input for the enemy fighter. Only meaningful
// when no controller is installed (two-player mode).
func (m *Match) SetEnemyIntent(in Intent) { m.enemyIntent = in }

// Rules returns the active rule set.
func (m *Match) Rules() Rules { return m.cfg.Rules }

// Ticks returns the number of simulation ticks run since the last reset.
func (m *Match) Ticks() uint64 { return m.tick }

// Winner returns the surviving fighter once the match is over, else nil.
func (m *Match) Winner() *Fighter { return m.winner }

// Over reports whether a terminal condition has been reached.
func (m *Match) Over() bool { return m.winner != nil }

// Tick runs one simulation step. The sink receives each fighter's current
// frame before its state advances; pass nil to simulate without drawing.
func (m *Match) Tick(sink Sink) {
	if m.winner != nil {
		return
	}
	m.tick++

	m.applyIntent(m.Player, m.Enemy, &m.playerIntent)
	if m.controller == nil {
		m.applyIntent(m.Enemy, m.Player, &m.enemyIntent)
	}

	m.Player.Update(sink)
	m.Enemy.Update(sink)

	if m.controller != nil {
		m.controller.Update()
	}

	switch {
	case !m.Enemy.Alive():
		m.winner = m.Player
	case !m.Player.Alive():
		m.winner = m.Enemy
	}
	if m.winner != nil {
		m.log.Info("knockout",
			zap.String("winner", m.winner.Name),
			zap.Uint64("tick", m.tick))
	}
}

// applyIntent feeds one fighter its held input and resolves the
// edge-triggered actions, consuming them.
func (m *Match) applyIntent(f, opponent *Fighter, in *Intent) {
	f.ApplyIntent(*in)
	if in.Attack {
		if f.Attack(opponent) {
			m.log.Debug("hit landed",
				zap.String("attacker", f.Name),
				zap.String("target", opponent.Name),
				zap.Float64("damage", f.AttackDamage),
				zap.Float64("target_health", opponent.Health))
		}
		in.Attack = false
	}
	if in.Dodge {
		f.StartDodge()
		in.Dodge = false
	}
}

// Reset rebuilds both fighters at their spawn points in place (the opponent
// controller keeps its borrowed references) and clears all session state.
func (m *Match) Reset() {
	*m.Player = *NewFighter(m.cfg.Player, m.Player.anim.Clips(), m.cfg.Rules, m.cfg.ScreenW, m.cfg.ScreenH, m.clock)
	*m.Enemy = *NewFighter(m.cfg.Enemy, m.Enemy.anim.Clips(), m.cfg.Rules, m.cfg.ScreenW, m.cfg.ScreenH, m.clock)
	m.playerIntent = Intent{}
	m.enemyIntent = Intent{}
	m.tick = 0
	m.winner = nil
	if m.controller != nil {
		m.controller.Reset()
	}
	m.log.Info("match reset")
}
