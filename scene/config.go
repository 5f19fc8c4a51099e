package scene

import (
	"log"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid scene config")

// Broad phase names accepted in Config.BroadPhase.
const (
	BroadPhaseGrid  = "grid"
	BroadPhaseSweep = "sweep"
	BroadPhaseTree  = "tree"
)

// Config describes a falling balls scene in screen space: x grows right and y grows down.
type Config struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Gravity is the downward acceleration in units/s².
	Gravity float64 `yaml:"gravity"`
	// TickRate is the number of fixed steps per second.
	TickRate int `yaml:"tick_rate"`
	// MaxSteps caps the steps taken for a single frame.
	MaxSteps   int `yaml:"max_steps"`
	Iterations int `yaml:"iterations"`

	BroadPhase string  `yaml:"broad_phase"`
	CellSize   float64 `yaml:"cell_size"`

	WallThickness float64    `yaml:"wall_thickness"`
	Platforms     []Platform `yaml:"platforms"`
	Balls         Balls      `yaml:"balls"`
}

// Platform is a static box given by its top left corner.
type Platform struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Balls struct {
	Count       int     `yaml:"count"`
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	Restitution float64 `yaml:"restitution"`
	Density     float64 `yaml:"density"`
	// SpawnHeight is the depth from the top of the arena balls are spawned in.
	SpawnHeight float64 `yaml:"spawn_height"`
}

// Default is the 1280x720 demo scene with 3400 balls.
func Default() Config {
	return Config{
		Width:         1280,
		Height:        720,
		Gravity:       255.81,
		TickRate:      60,
		MaxSteps:      5,
		Iterations:    4,
		BroadPhase:    BroadPhaseGrid,
		CellSize:      16,
		WallThickness: 50,
		Platforms: []Platform{
			{X: 150, Y: 480, Width: 350, Height: 20},
			{X: 760, Y: 380, Width: 380, Height: 20},
			{X: 450, Y: 610, Width: 400, Height: 15},
		},
		Balls: Balls{
			Count:       3400,
			MinRadius:   3,
			MaxRadius:   5,
			Restitution: 0.3,
			Density:     1,
			SpawnHeight: 360,
		},
	}
}

// Load reads a YAML config from path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("scene: %s not found, using the default scene", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "load %s", path)
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	positive := func(name string, v float64) error {
		if !(v > 0) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidConfig, "%s must be positive, got %v", name, v)
		}
		return nil
	}

	if err := positive("width", cfg.Width); err != nil {
		return err
	}
	if err := positive("height", cfg.Height); err != nil {
		return err
	}
	if math.IsNaN(cfg.Gravity) || math.IsInf(cfg.Gravity, 0) {
		return errors.Wrapf(ErrInvalidConfig, "gravity %v", cfg.Gravity)
	}
	if cfg.TickRate <= 0 || cfg.MaxSteps <= 0 || cfg.Iterations <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "tick_rate %d, max_steps %d and iterations %d must be positive",
			cfg.TickRate, cfg.MaxSteps, cfg.Iterations)
	}

	switch cfg.BroadPhase {
	case BroadPhaseGrid:
		if err := positive("cell_size", cfg.CellSize); err != nil {
			return err
		}
	case BroadPhaseSweep, BroadPhaseTree:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown broad_phase %q", cfg.BroadPhase)
	}

	if err := positive("wall_thickness", cfg.WallThickness); err != nil {
		return err
	}
	for i, p := range cfg.Platforms {
		if err := positive("platform width", p.Width); err != nil {
			return errors.WithMessagef(err, "platform %d", i)
		}
		if err := positive("platform height", p.Height); err != nil {
			return errors.WithMessagef(err, "platform %d", i)
		}
	}

	b := cfg.Balls
	if b.Count < 0 {
		return errors.Wrapf(ErrInvalidConfig, "ball count %d", b.Count)
	}
	if err := positive("min_radius", b.MinRadius); err != nil {
		return err
	}
	if b.MaxRadius < b.MinRadius || math.IsInf(b.MaxRadius, 0) {
		return errors.Wrapf(ErrInvalidConfig, "max_radius %v below min_radius %v", b.MaxRadius, b.MinRadius)
	}
	if !(b.Restitution >= 0 && b.Restitution <= 1) {
		return errors.Wrapf(ErrInvalidConfig, "restitution %v", b.Restitution)
	}
	if !(b.Density >= 0) || math.IsInf(b.Density, 0) {
		return errors.Wrapf(ErrInvalidConfig, "density %v", b.Density)
	}
	if b.SpawnHeight < 2*b.MaxRadius || b.SpawnHeight > cfg.Height {
		return errors.Wrapf(ErrInvalidConfig, "spawn_height %v", b.SpawnHeight)
	}
	if cfg.Width < 2*b.MaxRadius {
		return errors.Wrapf(ErrInvalidConfig, "arena too narrow for radius %v", b.MaxRadius)
	}
	return nil
}
