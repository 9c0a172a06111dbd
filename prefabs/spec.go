package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec reads and unmarshals a prefab yaml file into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SpriteSpec struct {
	Sheet   string  `yaml:"sheet"`
	FrameW  int     `yaml:"frame_w"`
	FrameH  int     `yaml:"frame_h"`
	Scale   float64 `yaml:"scale"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// ClipSpec describes one animation row of a sprite sheet. Hold is the tick
// count each frame stays on screen; 0 means the fighter-wide default.
type ClipSpec struct {
	Row    int `yaml:"row"`
	Frames int `yaml:"frames"`
	Hold   int `yaml:"hold"`
}

// FighterSpec is the full static description of one combatant. Animation
// keys are idle, run, jump, attack and dodge; sheets hold one facing and the
// renderer mirrors the other.
type FighterSpec struct {
	Name         string              `yaml:"name"`
	Width        float64             `yaml:"width"`
	Height       float64             `yaml:"height"`
	Health       float64             `yaml:"health"`
	AttackDamage float64             `yaml:"attack_damage"`
	MoveSpeed    float64             `yaml:"move_speed"`
	JumpSpeed    float64             `yaml:"jump_speed"`
	Facing       string              `yaml:"facing"`
	Spawn        PointSpec           `yaml:"spawn"`
	Sprite       SpriteSpec          `yaml:"sprite"`
	Animations   map[string]ClipSpec `yaml:"animations"`
}

// LoadPlayerSpec loads the player's fighter prefab.
func LoadPlayerSpec() (*FighterSpec, error) {
	return loadFighterSpec("player.yaml")
}

// LoadEnemySpec loads the enemy's fighter prefab.
func LoadEnemySpec() (*FighterSpec, error) {
	return loadFighterSpec("enemy.yaml")
}

func loadFighterSpec(filename string) (*FighterSpec, error) {
	spec, err := LoadSpec[FighterSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("prefabs: %s: fighter name is required", filename)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("prefabs: %s: fighter size must be positive", filename)
	}
	if spec.Health <= 0 {
		return nil, fmt.Errorf("prefabs: %s: fighter health must be positive", filename)
	}
	if _, ok := spec.Animations["idle"]; !ok {
		return nil, fmt.Errorf("prefabs: %s: idle animation is required", filename)
	}
	return &spec, nil
}

type ComboSpec struct {
	WindowMS     int `yaml:"window_ms"`
	BaseCooldown int `yaml:"base_cooldown"`
	StepDiscount int `yaml:"step_discount"`
}

type DodgeSpec struct {
	Duration int     `yaml:"duration"`
	Cooldown int     `yaml:"cooldown"`
	Speed    float64 `yaml:"speed"`
}

// RulesSpec tunes one rule set. Combo and Dodge are nil for rule sets that
// disable them.
type RulesSpec struct {
	AttackRange    float64    `yaml:"attack_range"`
	AttackCooldown int        `yaml:"attack_cooldown"`
	Combo          *ComboSpec `yaml:"combo"`
	Dodge          *DodgeSpec `yaml:"dodge"`
}

// LoadRulesSpec loads all named rule sets from rules.yaml.
func LoadRulesSpec() (map[string]RulesSpec, error) {
	return LoadSpec[map[string]RulesSpec]("rules.yaml")
}

// AISpec selects the opponent tuning and an optional policy script.
type AISpec struct {
	Difficulty string `yaml:"difficulty"`
	Script     string `yaml:"script"`
}

// LoadAISpec loads the opponent prefab.
func LoadAISpec() (*AISpec, error) {
	spec, err := LoadSpec[AISpec]("ai.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
