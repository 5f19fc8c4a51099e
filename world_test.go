package bp

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

var testGravity = Vector{0, -100}

// newPlatformWorld makes a world with a static platform whose top is at y=10
// and a ball of radius 5 dropped from height.
func newPlatformWorld(t *testing.T, broadPhase BroadPhase) (*World, BodyHandle, BodyHandle) {
	w := NewWorldWithBroadPhase(broadPhase)
	platform, err := w.AddBody(BodyDef{Type: BODY_STATIC})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.AddCollider(platform, NewBox(200, 20), ColliderProps{}); err != nil {
		t.Fatal(err)
	}

	ball, err := w.AddBody(BodyDef{Position: Vector{3, 50}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.AddCollider(ball, NewCircle(5, Vector{}), ColliderProps{Density: 1}); err != nil {
		t.Fatal(err)
	}
	return w, platform, ball
}

func TestWorld_BallSettles(t *testing.T) {
	for _, broadPhase := range []BroadPhase{NewSpaceHash(DefaultCellSize, 100), NewSweepAndPrune()} {
		w, platform, ball := newPlatformWorld(t, broadPhase)
		for i := 0; i < 600; i++ {
			w.Step(1.0/60.0, testGravity)
		}

		b, _ := w.Body(ball)
		bottom := b.Position().Y - 5
		if math.Abs(bottom-10) > 0.1 {
			t.Errorf("Expected the ball to rest on the platform, bottom at %v", bottom)
		}
		if b.Velocity().Length() > 0.01 {
			t.Errorf("Expected the ball to be at rest, velocity %v", b.Velocity())
		}
		if b.Position().X != 3 {
			t.Errorf("Ball drifted sideways to %v", b.Position().X)
		}

		p, _ := w.Body(platform)
		if p.Position() != (Vector{}) || p.Velocity() != (Vector{}) {
			t.Error("The static platform moved")
		}
	}
}

func TestWorld_IdleBody(t *testing.T) {
	w := NewWorld()
	h, _ := w.AddBody(BodyDef{})
	w.AddCollider(h, NewCircle(1, Vector{}), ColliderProps{Density: 1})

	for i := 0; i < 100; i++ {
		w.Step(1.0/60.0, Vector{})
	}
	b, _ := w.Body(h)
	if b.Position() != (Vector{}) || b.Velocity() != (Vector{}) {
		t.Errorf("Body without forces moved to %v", b.Position())
	}
	if w.Stamp() != 100 {
		t.Errorf("Expected 100 steps, got %d", w.Stamp())
	}
}

func TestWorld_ElasticCollision(t *testing.T) {
	for _, speed := range []float64{0.1, 0.25, 0.4, 5} {
		w := NewWorld()
		add := func(p, v Vector) BodyHandle {
			h, err := w.AddBody(BodyDef{Position: p, Velocity: v, Mass: 1})
			if err != nil {
				t.Fatal(err)
			}
			if _, err := w.AddCollider(h, NewCircle(1, Vector{}), ColliderProps{Restitution: 1, Density: 1}); err != nil {
				t.Fatal(err)
			}
			return h
		}
		left := add(Vector{-1.5, 0}, Vector{speed, 0})
		right := add(Vector{1.5, 0}, Vector{-speed, 0})

		for i := 0; i < 600; i++ {
			w.Step(1.0/60.0, Vector{})
		}

		l, _ := w.Body(left)
		r, _ := w.Body(right)
		if !l.Velocity().Near(Vector{-speed, 0}, 1e-9) || !r.Velocity().Near(Vector{speed, 0}, 1e-9) {
			t.Errorf("Speed %v: expected velocities to be exchanged, got %v and %v", speed, l.Velocity(), r.Velocity())
		}
		if l.Position().X >= r.Position().X {
			t.Errorf("Speed %v: the balls passed through each other", speed)
		}
	}
}

func TestWorld_BouncyBallSettles(t *testing.T) {
	gravity := Vector{0, -255.81}
	for _, restitution := range []float64{0, 0.3, 0.5} {
		w := NewWorld()
		platform, _ := w.AddBody(BodyDef{Type: BODY_STATIC})
		if _, err := w.AddCollider(platform, NewBox(200, 20), ColliderProps{Restitution: restitution}); err != nil {
			t.Fatal(err)
		}
		ball, _ := w.AddBody(BodyDef{Position: Vector{3, 50}})
		if _, err := w.AddCollider(ball, NewCircle(10, Vector{}), ColliderProps{Restitution: restitution, Density: 0.5}); err != nil {
			t.Fatal(err)
		}

		for i := 0; i < 900; i++ {
			w.Step(1.0/60.0, gravity)
		}

		b, _ := w.Body(ball)
		lowest, highest := math.Inf(1), math.Inf(-1)
		for i := 0; i < 300; i++ {
			w.Step(1.0/60.0, gravity)
			bottom := b.Position().Y - 10
			lowest, highest = math.Min(lowest, bottom), math.Max(highest, bottom)
			if v := b.Velocity().Length(); v > 0.01 {
				t.Fatalf("Restitution %v: ball still moving at %v after settling", restitution, v)
			}
		}
		if math.Abs(lowest-10) > 0.05 || math.Abs(highest-10) > 0.05 {
			t.Errorf("Restitution %v: expected the bottom to rest at 10, ranged over [%v, %v]", restitution, lowest, highest)
		}
	}
}

func TestWorld_StepperDeterminism(t *testing.T) {
	stepper := NewStepper(time.Second/60, 5)
	w1, _, ball1 := newPlatformWorld(t, NewSpaceHash(DefaultCellSize, 100))
	w2, _, ball2 := newPlatformWorld(t, NewSpaceHash(DefaultCellSize, 100))

	steps := 0
	for i := 0; i < 200; i++ {
		steps += stepper.Advance(time.Second/60, func(dt float64) {
			w1.Step(dt, testGravity)
		})
	}
	for i := 0; i < steps; i++ {
		w2.Step(stepper.Dt(), testGravity)
	}

	b1, _ := w1.Body(ball1)
	b2, _ := w2.Body(ball2)
	if steps != 200 {
		t.Errorf("Expected 200 steps, got %d", steps)
	}
	if b1.Position() != b2.Position() || b1.Velocity() != b2.Velocity() {
		t.Errorf("Runs diverged: %v %v vs %v %v", b1.Position(), b1.Velocity(), b2.Position(), b2.Velocity())
	}
}

func TestWorld_Locked(t *testing.T) {
	w, _, ball := newPlatformWorld(t, NewSpaceHash(DefaultCellSize, 100))

	var calls int
	var addErr, removeErr error
	w.SetContactHandler(func(w *World, contact ContactPair) {
		calls++
		_, addErr = w.AddBody(BodyDef{})
		removeErr = w.RemoveBody(ball)
	})
	for i := 0; i < 120; i++ {
		w.Step(1.0/60.0, testGravity)
	}

	if calls == 0 {
		t.Fatal("Contact handler never ran")
	}
	if !errors.Is(addErr, ErrWorldLocked) || !errors.Is(removeErr, ErrWorldLocked) {
		t.Errorf("Expected ErrWorldLocked, got %v and %v", addErr, removeErr)
	}
	if w.IsLocked() {
		t.Error("World still locked after Step")
	}
	if w.Bodies().Len() != 2 {
		t.Errorf("Locked mutation changed the body count to %d", w.Bodies().Len())
	}
	if err := w.RemoveBody(ball); err != nil {
		t.Error(err)
	}
	if w.Colliders().Len() != 1 {
		t.Errorf("Expected the ball's collider to go with it, %d left", w.Colliders().Len())
	}
}

func TestWorld_Contacts(t *testing.T) {
	w, _, _ := newPlatformWorld(t, NewSpaceHash(DefaultCellSize, 100))
	for i := 0; i < 120 && len(w.Contacts()) == 0; i++ {
		w.Step(1.0/60.0, testGravity)
	}
	contacts := w.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("Expected one contact, got %d", len(contacts))
	}
	c := contacts[0]
	if c.Depth < 0 || math.Abs(c.Normal.Length()-1) > 1e-9 {
		t.Errorf("Bad contact %+v", c)
	}
	if !strings.Contains(DebugInfo(w), "Contacts: 1") {
		t.Errorf("Unexpected debug info:\n%s", DebugInfo(w))
	}
}

func TestWorld_NonPositiveDt(t *testing.T) {
	w, _, ball := newPlatformWorld(t, NewSweepAndPrune())
	w.Step(0, testGravity)
	w.Step(-1, testGravity)
	b, _ := w.Body(ball)
	if b.Position() != (Vector{3, 50}) || w.Stamp() != 0 {
		t.Error("Non-positive dt should not step")
	}
}

func TestWorld_BroadPhaseMargin(t *testing.T) {
	w, _, ball := newPlatformWorld(t, NewSpaceHash(DefaultCellSize, 100))
	w.SetBroadPhaseMargin(true)
	b, _ := w.Body(ball)
	b.SetVelocity(Vector{0, -60})
	w.Step(1.0/60.0, Vector{})

	c, _ := w.Collider(b.Colliders()[0])
	if c.BB().B > 50-5-1+1e-9 {
		t.Errorf("Expected the box to be swept down, got %v", c.BB())
	}
}

func BenchmarkWorldStep(b *testing.B) {
	w := NewWorld()
	floor, _ := w.AddBody(BodyDef{Type: BODY_STATIC})
	w.AddCollider(floor, NewBox(1280, 20), ColliderProps{})
	for i := 0; i < 3400; i++ {
		h, _ := w.AddBody(BodyDef{Position: Vector{float64(i%100)*12 - 600, 20 + float64(i/100)*12}})
		w.AddCollider(h, NewCircle(5, Vector{}), ColliderProps{Density: 1, Restitution: 0.5})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Step(1.0/60.0, testGravity)
	}
}
