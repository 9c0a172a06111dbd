package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"ringside/ai"
	"ringside/common"
	"ringside/fight"
	"ringside/prefabs"
	"ringside/render"
)

// GameOptions selects the session setup. Empty strings defer to the prefab
// files.
type GameOptions struct {
	Rules      string
	Difficulty string
	Script     string
	TwoPlayer  bool
	Debug      bool
	Logger     *zap.Logger
}

type Game struct {
	match      *fight.Match
	controller *ai.Controller
	renderer   *render.Renderer

	gameOverUI *ebitenui.UI

	log       *zap.Logger
	debug     bool
	twoPlayer bool
	opts      GameOptions
	clock     fight.Clock

	watcher      *prefabs.Watcher
	clipboardOK  bool
	lastSnapshot time.Time
}

func NewGame(opts GameOptions) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	enemySpec, err := prefabs.LoadEnemySpec()
	if err != nil {
		return nil, err
	}

	rules, err := loadRules(opts.Rules)
	if err != nil {
		return nil, err
	}

	playerSprites, playerClips, err := render.NewSpriteSet(playerSpec)
	if err != nil {
		return nil, err
	}
	enemySprites, enemyClips, err := render.NewSpriteSet(enemySpec)
	if err != nil {
		return nil, err
	}

	renderer := render.NewRenderer()
	renderer.AddFighter(playerSpec.Name, playerSprites)
	renderer.AddFighter(enemySpec.Name, enemySprites)

	clock := fight.SystemClock()
	match := fight.NewMatch(fight.MatchConfig{
		Player:  fighterConfig(playerSpec),
		Enemy:   fighterConfig(enemySpec),
		Rules:   rules,
		ScreenW: common.BaseWidth,
		ScreenH: common.BaseHeight,
		Clock:   clock,
		Logger:  logger,
	}, playerClips, enemyClips)

	g := &Game{
		match:     match,
		renderer:  renderer,
		log:       logger,
		debug:     opts.Debug,
		twoPlayer: opts.TwoPlayer,
		opts:      opts,
		clock:     clock,
	}

	if !opts.TwoPlayer {
		controller, err := buildController(match, opts, clock, logger)
		if err != nil {
			return nil, err
		}
		g.controller = controller
		match.SetController(controller)
	}

	if opts.Debug {
		g.initDebug()
	}

	logger.Info("match ready",
		zap.String("rules", rules.Name),
		zap.String("player", playerSpec.Name),
		zap.String("enemy", enemySpec.Name),
		zap.Bool("two_player", opts.TwoPlayer))
	return g, nil
}

func buildController(match *fight.Match, opts GameOptions, clock fight.Clock, logger *zap.Logger) (*ai.Controller, error) {
	aiSpec, err := prefabs.LoadAISpec()
	if err != nil {
		return nil, err
	}

	name := opts.Difficulty
	if name == "" {
		name = aiSpec.Difficulty
	}
	difficulty, err := ai.ParseDifficulty(name)
	if err != nil {
		return nil, err
	}

	scriptPath := opts.Script
	if scriptPath == "" {
		scriptPath = aiSpec.Script
	}
	var script *ai.Script
	if scriptPath != "" {
		src, err := prefabs.LoadScript(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("load ai script %s: %w", scriptPath, err)
		}
		script, err = ai.LoadScript(src)
		if err != nil {
			return nil, err
		}
		logger.Info("opponent script loaded", zap.String("script", scriptPath))
	}

	return ai.NewController(ai.ControllerConfig{
		Fighter:    match.Enemy,
		Target:     match.Player,
		Difficulty: difficulty,
		Clock:      clock,
		Logger:     logger,
		Script:     script,
	}), nil
}

func loadRules(name string) (fight.Rules, error) {
	specs, err := prefabs.LoadRulesSpec()
	if err != nil {
		return fight.Rules{}, err
	}
	spec, ok := specs[name]
	if !ok {
		return fight.Rules{}, fmt.Errorf("unknown rule set %q", name)
	}
	return rulesFromSpec(name, spec), nil
}

func rulesFromSpec(name string, spec prefabs.RulesSpec) fight.Rules {
	r := fight.Rules{
		Name:           name,
		AttackRange:    spec.AttackRange,
		AttackCooldown: spec.AttackCooldown,
	}
	if spec.Combo != nil {
		r.ComboEnabled = true
		r.ComboWindow = time.Duration(spec.Combo.WindowMS) * time.Millisecond
		r.ComboBaseCooldown = spec.Combo.BaseCooldown
		r.ComboStepDiscount = spec.Combo.StepDiscount
	}
	if spec.Dodge != nil {
		r.DodgeEnabled = true
		r.DodgeDuration = spec.Dodge.Duration
		r.DodgeCooldown = spec.Dodge.Cooldown
		r.DodgeSpeed = spec.Dodge.Speed
	}
	return r
}

func fighterConfig(spec *prefabs.FighterSpec) fight.Config {
	facing := fight.FacingRight
	if spec.Facing == "left" {
		facing = fight.FacingLeft
	}
	return fight.Config{
		Name:         spec.Name,
		Width:        spec.Width,
		Height:       spec.Height,
		MaxHealth:    spec.Health,
		AttackDamage: spec.AttackDamage,
		MoveSpeed:    spec.MoveSpeed,
		JumpSpeed:    spec.JumpSpeed,
		SpawnX:       spec.Spawn.X,
		SpawnY:       spec.Spawn.Y,
		Facing:       facing,
	}
}

func (g *Game) Update() error {
	g.handleDebugKeys()
	g.drainWatcher()

	if g.match.Over() {
		if g.gameOverUI == nil {
			g.gameOverUI = NewGameOverUI(g)
		}
		g.gameOverUI.Update()
		g.recordStaticPoses()
		return nil
	}

	g.renderer.Begin()
	g.match.SetPlayerIntent(ReadIntent(playerKeymap))
	if g.twoPlayer {
		g.match.SetEnemyIntent(ReadIntent(enemyKeymap))
	}
	g.match.Tick(g.renderer)
	return nil
}

// recordStaticPoses keeps the final frame on screen after a knockout, when
// the simulation no longer ticks.
func (g *Game) recordStaticPoses() {
	g.renderer.Begin()
	for _, f := range []*fight.Fighter{g.match.Player, g.match.Enemy} {
		st, frame := f.Animation()
		g.renderer.DrawFighter(f, st, frame)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x16, G: 0x18, B: 0x22, A: 0xff})
	g.renderer.DrawGround(screen, common.BaseHeight-3)
	g.renderer.Flush(screen)
	g.renderer.DrawHealthBars(screen, g.match.Player, g.match.Enemy)

	if g.debug {
		ebitenutil.DebugPrint(screen, g.debugOverlay())
	}
	if g.match.Over() && g.gameOverUI != nil {
		g.gameOverUI.Draw(screen)
	}
}

// rematch resets the session and dismisses the game-over menu.
func (g *Game) rematch() {
	g.match.Reset()
	g.gameOverUI = nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
