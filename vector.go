package bp

import (
	"fmt"
	"math"
)

// Vector is a 2D vector or point.
type Vector struct {
	X, Y float64
}

func VectorZero() Vector {
	return Vector{}
}

func (v Vector) String() string {
	return fmt.Sprintf("%f,%f", v.X, v.Y)
}

func (v Vector) Equal(other Vector) bool {
	return v.X == other.X && v.Y == other.Y
}

func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y}
}

func (v Vector) Neg() Vector {
	return Vector{-v.X, -v.Y}
}

func (v Vector) Mult(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y
}

func (v Vector) ReversePerp() Vector {
	return Vector{v.Y, -v.X}
}

// ForAngle returns the unit length vector for the given angle (in radians).
func ForAngle(a float64) Vector {
	return Vector{math.Cos(a), math.Sin(a)}
}

// Rotate uses complex multiplication to rotate v by other. Scaling occurs if other is not a unit vector.
func (v Vector) Rotate(other Vector) Vector {
	return Vector{v.X*other.X - v.Y*other.Y, v.X*other.Y + v.Y*other.X}
}

func (v Vector) LengthSq() float64 {
	return v.Dot(v)
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vector) Lerp(other Vector, t float64) Vector {
	return v.Mult(1.0 - t).Add(other.Mult(t))
}

// Normalize returns a unit vector, or the zero vector when v is (nearly) zero.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l < MAGIC_EPSILON {
		return Vector{}
	}
	return v.Mult(1.0 / l)
}

// NormalizeOr is like Normalize but returns fallback for (nearly) zero vectors.
func (v Vector) NormalizeOr(fallback Vector) Vector {
	l := v.Length()
	if l < MAGIC_EPSILON {
		return fallback
	}
	return v.Mult(1.0 / l)
}

func (v Vector) DistanceSq(other Vector) float64 {
	return v.Sub(other).LengthSq()
}

// Near reports whether v is within d of other.
func (v Vector) Near(other Vector, d float64) bool {
	return v.DistanceSq(other) < d*d
}

func (v Vector) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func Clamp(f, min, max float64) float64 {
	return math.Min(math.Max(f, min), max)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

const (
	INFINITY = math.MaxFloat64

	// MAGIC_EPSILON is the length below which vectors are treated as zero.
	MAGIC_EPSILON = 1e-9
)
