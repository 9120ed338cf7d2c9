package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vector is a 2D world-space vector.
type Vector struct {
	X, Y float64
}

// Length returns the Euclidean norm of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// World is the rigid-body simulation owned by the host. It exposes only what
// the game needs: insert bodies, read and write position and velocity, apply
// impulses and advance one fixed step.
type World struct {
	space  *cp.Space
	dt     float64
	bodies []*Body
}

// Body is a dynamic circular body inserted in a World.
type Body struct {
	body          *cp.Body
	radius        float64
	linearDamping float64
}

// BodyDef describes a dynamic circular body.
type BodyDef struct {
	X, Y          float64
	Radius        float64
	Mass          float64
	LinearDamping float64 // Per-second damping, v *= 1/(1 + dt*LinearDamping) each step
	Restitution   float64
	Group         Group
}

// NewWorld creates an empty world without gravity stepping by dt seconds.
func NewWorld(dt float64) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &World{space: space, dt: dt}
}

// Dt returns the fixed time increment of Step.
func (w *World) Dt() float64 {
	return w.dt
}

// AddStaticBox inserts an axis-aligned static rectangle centered on (cx, cy).
func (w *World) AddStaticBox(cx, cy, width, height, restitution float64, g Group) {
	bb := cp.BB{L: cx - width/2, B: cy - height/2, R: cx + width/2, T: cy + height/2}
	w.addStatic(cp.NewBox2(w.space.StaticBody, bb, 0), restitution, g)
}

// AddStaticCircle inserts a static circle centered on (x, y).
func (w *World) AddStaticCircle(x, y, radius, restitution float64, g Group) {
	w.addStatic(cp.NewCircle(w.space.StaticBody, radius, cp.Vector{X: x, Y: y}), restitution, g)
}

// AddStaticSegment inserts a zero-thickness static segment from a to b.
func (w *World) AddStaticSegment(a, b Vector, restitution float64, g Group) {
	shape := cp.NewSegment(w.space.StaticBody, cp.Vector{X: a.X, Y: a.Y}, cp.Vector{X: b.X, Y: b.Y}, 0)
	w.addStatic(shape, restitution, g)
}

func (w *World) addStatic(shape *cp.Shape, restitution float64, g Group) {
	shape.SetElasticity(restitution)
	shape.SetFriction(0)
	shape.SetFilter(g.filter())
	w.space.AddShape(shape)
}

// AddBody inserts a dynamic circle. Rotation is locked: bodies only translate.
func (w *World) AddBody(def BodyDef) *Body {
	body := w.space.AddBody(cp.NewBody(def.Mass, math.Inf(1)))
	body.SetPosition(cp.Vector{X: def.X, Y: def.Y})

	shape := w.space.AddShape(cp.NewCircle(body, def.Radius, cp.Vector{}))
	shape.SetElasticity(def.Restitution)
	shape.SetFriction(0)
	shape.SetFilter(def.Group.filter())

	b := &Body{body: body, radius: def.Radius, linearDamping: def.LinearDamping}
	w.bodies = append(w.bodies, b)
	return b
}

// Step applies linear damping and advances the world by one fixed increment.
func (w *World) Step() {
	for _, b := range w.bodies {
		if b.linearDamping <= 0 {
			continue
		}
		v := b.body.Velocity()
		b.body.SetVelocityVector(v.Mult(1 / (1 + w.dt*b.linearDamping)))
	}
	w.space.Step(w.dt)
}

// Radius returns the collider radius of b.
func (b *Body) Radius() float64 {
	return b.radius
}

// Mass returns the mass of b.
func (b *Body) Mass() float64 {
	return b.body.Mass()
}

// Position returns the center of b.
func (b *Body) Position() Vector {
	p := b.body.Position()
	return Vector{X: p.X, Y: p.Y}
}

// SetPosition teleports b to (x, y).
func (b *Body) SetPosition(x, y float64) {
	b.body.SetPosition(cp.Vector{X: x, Y: y})
}

// Velocity returns the linear velocity of b.
func (b *Body) Velocity() Vector {
	v := b.body.Velocity()
	return Vector{X: v.X, Y: v.Y}
}

// SetVelocity overwrites the linear velocity of b.
func (b *Body) SetVelocity(vx, vy float64) {
	b.body.SetVelocity(vx, vy)
}

// ApplyImpulse adds an impulse at the center of mass: velocity changes by
// impulse/mass, so it combines with whatever motion b already has.
func (b *Body) ApplyImpulse(ix, iy float64) {
	b.body.ApplyImpulseAtLocalPoint(cp.Vector{X: ix, Y: iy}, cp.Vector{})
}

// ClampSpeed rescales the velocity of b to topSpeed when it is exceeded and
// reports whether it did.
func (b *Body) ClampSpeed(topSpeed float64) bool {
	v := b.Velocity()
	speed := v.Length()
	if speed <= topSpeed || speed == 0 {
		return false
	}
	scale := topSpeed / speed
	b.SetVelocity(v.X*scale, v.Y*scale)
	return true
}

// Stop zeroes the velocity of b.
func (b *Body) Stop() {
	b.SetVelocity(0, 0)
}
