package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
	"golang.design/x/clipboard"

	"ringside/fight"
	"ringside/prefabs"
)

func (g *Game) initDebug() {
	if err := clipboard.Init(); err != nil {
		g.log.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboardOK = true
	}

	watcher, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
	if err != nil {
		g.log.Warn("prefab watcher unavailable", zap.Error(err))
		return
	}
	g.watcher = watcher
}

func (g *Game) handleDebugKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}
	if !g.debug {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copySnapshot()
	}
}

type fighterSnapshot struct {
	Name           string  `json:"name"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	VelX           float64 `json:"vel_x"`
	VelY           float64 `json:"vel_y"`
	Health         float64 `json:"health"`
	Facing         string  `json:"facing"`
	Attacking      bool    `json:"attacking"`
	Dodging        bool    `json:"dodging"`
	AttackCooldown int     `json:"attack_cooldown"`
	ComboCount     int     `json:"combo_count"`
}

type matchSnapshot struct {
	Tick   uint64          `json:"tick"`
	Rules  string          `json:"rules"`
	Winner string          `json:"winner,omitempty"`
	Player fighterSnapshot `json:"player"`
	Enemy  fighterSnapshot `json:"enemy"`
}

// copySnapshot puts the current match state on the system clipboard as JSON,
// for pasting into bug reports.
func (g *Game) copySnapshot() {
	if !g.clipboardOK {
		g.log.Warn("snapshot skipped, clipboard unavailable")
		return
	}

	snap := matchSnapshot{
		Tick:   g.match.Ticks(),
		Rules:  g.match.Rules().Name,
		Player: snapshotFighter(g.match.Player),
		Enemy:  snapshotFighter(g.match.Enemy),
	}
	if w := g.match.Winner(); w != nil {
		snap.Winner = w.Name
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		g.log.Error("snapshot marshal failed", zap.Error(err))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.lastSnapshot = time.Now()
	g.log.Info("snapshot copied", zap.Uint64("tick", snap.Tick))
}

func snapshotFighter(f *fight.Fighter) fighterSnapshot {
	facing := "right"
	if f.Facing() == fight.FacingLeft {
		facing = "left"
	}
	return fighterSnapshot{
		Name:           f.Name,
		X:              f.Pos.X,
		Y:              f.Pos.Y,
		VelX:           f.Vel.X,
		VelY:           f.Vel.Y,
		Health:         f.Health,
		Facing:         facing,
		Attacking:      f.Attacking(),
		Dodging:        f.Dodging(),
		AttackCooldown: f.AttackCooldown(),
		ComboCount:     f.ComboCount(),
	}
}

func (g *Game) debugOverlay() string {
	p, e := g.match.Player, g.match.Enemy
	s := fmt.Sprintf("tps %0.0f  fps %0.0f  tick %d\n%s x=%0.1f y=%0.1f hp=%0.0f cd=%d\n%s x=%0.1f y=%0.1f hp=%0.0f cd=%d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), g.match.Ticks(),
		p.Name, p.Pos.X, p.Pos.Y, p.Health, p.AttackCooldown(),
		e.Name, e.Pos.X, e.Pos.Y, e.Health, e.AttackCooldown())
	if !g.lastSnapshot.IsZero() && time.Since(g.lastSnapshot) < 2*time.Second {
		s += "\nsnapshot copied"
	}
	return s
}

// drainWatcher applies prefab edits without blocking the tick.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.handlePrefabChange(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("prefab watch error", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) handlePrefabChange(path string) {
	base := filepath.Base(path)
	if g.twoPlayer || (base != "ai.yaml" && !strings.HasSuffix(base, ".tengo")) {
		// Fighter and rule prefabs are snapshotted at match start.
		g.log.Info("prefab changed, rematch to apply", zap.String("file", base))
		return
	}

	controller, err := buildController(g.match, g.opts, g.clock, g.log)
	if err != nil {
		g.log.Warn("opponent reload failed", zap.String("file", base), zap.Error(err))
		return
	}
	g.controller = controller
	g.match.SetController(controller)
	g.log.Info("opponent reloaded", zap.String("file", base))
}
