// Package entity keeps per-entity render data outside the physics world.
// Bodies refer to their entity through bp.Body.Tag.
package entity

import (
	"math/rand"

	"github.com/ballpit/bp"
	"github.com/lucasb-eyer/go-colorful"
)

type Kind int

const (
	KIND_NONE Kind = iota
	KIND_BALL
	KIND_PLATFORM
)

func (k Kind) String() string {
	switch k {
	case KIND_BALL:
		return "ball"
	case KIND_PLATFORM:
		return "platform"
	}
	return "none"
}

// Rect is an axis-aligned rectangle given by its top left corner in screen space.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() bp.Vector {
	return bp.Vector{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Defaults returned for ids the store knows nothing about.
var (
	DefaultRadius = 5.0
	DefaultRect   = Rect{0, 0, 15, 15}
	DefaultColor  = colorful.Color{R: 1, G: 1, B: 1}
)

// Store maps entity ids to their kind, size and color. Ids start at 1 so that
// the zero Tag of a body never names an entity.
type Store struct {
	nextID uint64

	kinds  map[uint64]Kind
	radii  map[uint64]float64
	rects  map[uint64]Rect
	colors map[uint64]colorful.Color
}

func NewStore() *Store {
	return &Store{
		nextID: 1,
		kinds:  map[uint64]Kind{},
		radii:  map[uint64]float64{},
		rects:  map[uint64]Rect{},
		colors: map[uint64]colorful.Color{},
	}
}

func (s *Store) next() uint64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) InsertBall(radius float64, color colorful.Color) uint64 {
	id := s.next()
	s.kinds[id] = KIND_BALL
	s.radii[id] = radius
	s.colors[id] = color
	return id
}

func (s *Store) InsertPlatform(x, y, width, height float64) uint64 {
	id := s.next()
	s.kinds[id] = KIND_PLATFORM
	s.rects[id] = Rect{x, y, width, height}
	return id
}

func (s *Store) Kind(id uint64) Kind {
	if kind, ok := s.kinds[id]; ok {
		return kind
	}
	return KIND_NONE
}

// Radius returns the ball radius for id, or DefaultRadius.
func (s *Store) Radius(id uint64) float64 {
	if r, ok := s.radii[id]; ok {
		return r
	}
	return DefaultRadius
}

func (s *Store) Rect(id uint64) Rect {
	if r, ok := s.rects[id]; ok {
		return r
	}
	return DefaultRect
}

func (s *Store) Color(id uint64) colorful.Color {
	if c, ok := s.colors[id]; ok {
		return c
	}
	return DefaultColor
}

func (s *Store) SetColor(id uint64, color colorful.Color) {
	s.colors[id] = color
}

func (s *Store) Len() int {
	return len(s.kinds)
}

// RandomBallColor picks a bright, saturated color from rng.
func RandomBallColor(rng *rand.Rand) colorful.Color {
	return colorful.Hsv(rng.Float64()*360, 0.5+rng.Float64()*0.3, 0.8+rng.Float64()*0.2)
}

// FColor converts c for the bp drawing API.
func FColor(c colorful.Color, alpha float32) bp.FColor {
	c = c.Clamped()
	return bp.FColor{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}
}
