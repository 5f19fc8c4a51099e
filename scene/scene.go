// Package scene builds the falling balls demo on top of bp and drives it with a fixed timestep.
package scene

import (
	"math/rand"
	"time"

	"github.com/ballpit/bp"
	"github.com/ballpit/bp/entity"
)

// Scene is a walled arena with static platforms and falling balls.
// The hosts own the clock and the random source; a Scene only advances when Update is called.
type Scene struct {
	Config   Config
	World    *bp.World
	Entities *entity.Store
	Stepper  *bp.Stepper

	rng     *rand.Rand
	gravity bp.Vector
	balls   []bp.BodyHandle
}

// New builds the scene described by cfg, spawning cfg.Balls.Count balls from rng.
func New(cfg Config, rng *rand.Rand) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var broadPhase bp.BroadPhase
	switch cfg.BroadPhase {
	case BroadPhaseSweep:
		broadPhase = bp.NewSweepAndPrune()
	case BroadPhaseTree:
		broadPhase = bp.NewBBTree()
	default:
		broadPhase = bp.NewSpaceHash(cfg.CellSize, 1000)
	}

	world := bp.NewWorldWithBroadPhase(broadPhase)
	world.Resolver().Iterations = cfg.Iterations

	s := &Scene{
		Config:   cfg,
		World:    world,
		Entities: entity.NewStore(),
		Stepper:  bp.NewStepper(time.Second/time.Duration(cfg.TickRate), cfg.MaxSteps),
		rng:      rng,
		gravity:  bp.Vector{X: 0, Y: cfg.Gravity},
	}

	if err := s.addWalls(); err != nil {
		return nil, err
	}
	for _, p := range cfg.Platforms {
		if err := s.addPlatform(p.X, p.Y, p.Width, p.Height); err != nil {
			return nil, err
		}
	}
	for i := 0; i < cfg.Balls.Count; i++ {
		if _, err := s.SpawnBall(s.randomSpawnPoint()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// addWalls closes the arena on the left, right and bottom. The walls sit just outside the view.
func (s *Scene) addWalls() error {
	w, h, t := s.Config.Width, s.Config.Height, s.Config.WallThickness
	walls := []entity.Rect{
		{X: -t, Y: h, W: w + 2*t, H: t},
		{X: -t, Y: -h, W: t, H: 2 * h},
		{X: w, Y: -h, W: t, H: 2 * h},
	}
	for _, r := range walls {
		if err := s.addPlatform(r.X, r.Y, r.W, r.H); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scene) addPlatform(x, y, width, height float64) error {
	id := s.Entities.InsertPlatform(x, y, width, height)
	body, err := s.World.AddBody(bp.BodyDef{
		Type:     bp.BODY_STATIC,
		Position: s.Entities.Rect(id).Center(),
		Tag:      id,
	})
	if err != nil {
		return err
	}
	_, err = s.World.AddCollider(body, bp.NewBox(width, height), bp.ColliderProps{Restitution: s.Config.Balls.Restitution})
	return err
}

func (s *Scene) randomSpawnPoint() bp.Vector {
	r := s.Config.Balls.MaxRadius
	return bp.Vector{
		X: r + s.rng.Float64()*(s.Config.Width-2*r),
		Y: r + s.rng.Float64()*(s.Config.Balls.SpawnHeight-2*r),
	}
}

// SpawnBall adds a ball with a random radius and color at p.
func (s *Scene) SpawnBall(p bp.Vector) (bp.BodyHandle, error) {
	b := s.Config.Balls
	radius := b.MinRadius + s.rng.Float64()*(b.MaxRadius-b.MinRadius)
	id := s.Entities.InsertBall(radius, entity.RandomBallColor(s.rng))

	body, err := s.World.AddBody(bp.BodyDef{Position: p, Tag: id})
	if err != nil {
		return bp.BodyHandle{}, err
	}
	_, err = s.World.AddCollider(body, bp.NewCircle(radius, bp.Vector{}), bp.ColliderProps{
		Restitution: b.Restitution,
		Density:     b.Density,
	})
	if err != nil {
		return bp.BodyHandle{}, err
	}
	s.balls = append(s.balls, body)
	return body, nil
}

// Balls returns the handles of every ball spawned so far.
func (s *Scene) Balls() []bp.BodyHandle {
	return s.balls
}

func (s *Scene) Gravity() bp.Vector {
	return s.gravity
}

// Update advances the world by elapsed wall time in fixed steps and returns the number of steps taken.
func (s *Scene) Update(elapsed time.Duration) int {
	return s.Stepper.Advance(elapsed, s.step)
}

func (s *Scene) step(dt float64) {
	s.World.Step(dt, s.gravity)
}
