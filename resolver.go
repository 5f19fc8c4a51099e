package bp

import "math"

// Resolver defaults.
const (
	DefaultIterations           = 4
	DefaultSlop                 = 0.01
	DefaultCorrectionPercent    = 0.8
	DefaultRestitutionThreshold = 0.0
)

// ContactResolver turns a step's contacts into velocity impulses and position corrections.
//
// Combined restitution is the average of the two colliders. A contact bounces off the
// approach speed the pair had before this step's gravity was applied, and only when that
// speed exceeds RestitutionThreshold plus the speed gravity adds in one step. Impulses are
// solved with sequential passes over all contacts and accumulated clamping, so a contact
// can push bodies apart but never pull them together. Impulses act through the center
// of mass; contacts never change angular velocity. Bouncing contacts get no positional
// correction in the step they bounce.
type ContactResolver struct {
	// Iterations is the number of velocity passes over all contacts. Must be non-zero.
	Iterations int
	// Slop is the penetration left uncorrected, which keeps resting contacts alive between steps.
	Slop float64
	// Percent of the remaining penetration removed per step, in (0, 1].
	Percent float64
	// RestitutionThreshold is an extra approach speed, on top of |gravity|·dt, below which contacts do not bounce.
	RestitutionThreshold float64

	constraints []contactConstraint
}

type contactConstraint struct {
	a, b  *Body
	n     Vector
	depth float64

	nMass  float64
	bounce float64
	jnAcc  float64
}

func NewContactResolver() *ContactResolver {
	return &ContactResolver{
		Iterations:           DefaultIterations,
		Slop:                 DefaultSlop,
		Percent:              DefaultCorrectionPercent,
		RestitutionThreshold: DefaultRestitutionThreshold,
	}
}

// CombineRestitution is the restitution used for a contact between two colliders.
func CombineRestitution(a, b float64) float64 {
	return (a + b) / 2
}

// Resolve applies impulses and positional correction for contacts found during a step of
// length dt under gravity. Contacts whose colliders or bodies no longer exist are skipped.
func (r *ContactResolver) Resolve(contacts []ContactPair, bodies *BodySet, colliders *ColliderSet, dt float64, gravity Vector) {
	r.preStep(contacts, bodies, colliders, gravity.Mult(dt), r.RestitutionThreshold+gravity.Length()*dt)

	for i := 0; i < r.Iterations; i++ {
		for j := range r.constraints {
			r.constraints[j].applyImpulse()
		}
	}

	for j := range r.constraints {
		r.constraints[j].correctPosition(r.Slop, r.Percent)
	}
}

func (r *ContactResolver) preStep(contacts []ContactPair, bodies *BodySet, colliders *ColliderSet, dv Vector, threshold float64) {
	r.constraints = r.constraints[:0]
	for _, c := range contacts {
		ca, okA := colliders.arena.get(c.A.Handle)
		cb, okB := colliders.arena.get(c.B.Handle)
		if !okA || !okB {
			continue
		}
		a, okA := bodies.arena.get(ca.body.Handle)
		b, okB := bodies.arena.get(cb.body.Handle)
		if !okA || !okB {
			continue
		}

		invSum := a.m_inv + b.m_inv
		if invSum == 0 {
			continue
		}

		con := contactConstraint{
			a:     a,
			b:     b,
			n:     c.Normal,
			depth: c.Depth,
			nMass: 1.0 / invSum,
		}

		// Calculate the target bounce velocity from the approach speed before gravity.
		vrn := normalRelativeVelocity(a, b, c.Normal) - gravityRelativeVelocity(a, b, c.Normal, dv)
		if vrn < -threshold {
			con.bounce = vrn * CombineRestitution(ca.restitution, cb.restitution)
		}

		r.constraints = append(r.constraints, con)
	}
}

func (con *contactConstraint) applyImpulse() {
	vrn := normalRelativeVelocity(con.a, con.b, con.n)

	jn := -(con.bounce + vrn) * con.nMass
	jnOld := con.jnAcc
	con.jnAcc = math.Max(jnOld+jn, 0)

	applyImpulses(con.a, con.b, con.n.Mult(con.jnAcc-jnOld))
}

func (con *contactConstraint) correctPosition(slop, percent float64) {
	if con.bounce != 0 {
		return
	}
	a, b := con.a, con.b
	corr := math.Max(con.depth-slop, 0) * percent / (a.m_inv + b.m_inv)
	if corr == 0 {
		return
	}
	if a.m_inv != 0 {
		a.SetPosition(a.p.Sub(con.n.Mult(corr * a.m_inv)))
	}
	if b.m_inv != 0 {
		b.SetPosition(b.p.Add(con.n.Mult(corr * b.m_inv)))
	}
}

// normalRelativeVelocity is negative when the bodies approach along n.
func normalRelativeVelocity(a, b *Body, n Vector) float64 {
	return b.v.Sub(a.v).Dot(n)
}

// gravityRelativeVelocity is the part of the normal relative velocity added by this step's gravity.
func gravityRelativeVelocity(a, b *Body, n, dv Vector) float64 {
	var g float64
	if b.kind == BODY_DYNAMIC {
		g += dv.Dot(n)
	}
	if a.kind == BODY_DYNAMIC {
		g -= dv.Dot(n)
	}
	return g
}

func applyImpulses(a, b *Body, j Vector) {
	a.v = a.v.Sub(j.Mult(a.m_inv))
	b.v = b.v.Add(j.Mult(b.m_inv))
}
