package physics

import (
	"math"
	"testing"
)

func TestInteractsMatrix(t *testing.T) {
	groups := []Group{PitchLines, GoalPosts, Players, StadiumWalls, Ball}
	want := map[[2]Group]bool{
		{PitchLines, Ball}:      true,
		{GoalPosts, Ball}:       true,
		{GoalPosts, Players}:    true,
		{Players, Players}:      true,
		{Players, StadiumWalls}: true,
		{Players, Ball}:         true,
		{Ball, Ball}:            true,
	}
	for _, a := range groups {
		for _, b := range groups {
			expected := want[[2]Group{a, b}] || want[[2]Group{b, a}]
			if got := Interacts(a, b); got != expected {
				t.Errorf("Interacts(%s, %s) = %v, want %v", a, b, got, expected)
			}
		}
	}
}

func TestApplyImpulseIsMassWeighted(t *testing.T) {
	w := NewWorld(1.0 / 60)
	b := w.AddBody(BodyDef{X: 100, Y: 100, Radius: 10, Mass: 4, Group: Ball})
	b.SetVelocity(1, 0)

	b.ApplyImpulse(8, -4)

	v := b.Velocity()
	if math.Abs(v.X-3) > 1e-9 || math.Abs(v.Y+1) > 1e-9 {
		t.Fatalf("velocity after impulse = %+v, want {3 -1}", v)
	}
}

func TestClampSpeed(t *testing.T) {
	w := NewWorld(1.0 / 60)
	b := w.AddBody(BodyDef{X: 0, Y: 0, Radius: 10, Mass: 1, Group: Players})

	b.SetVelocity(30, 40)
	if !b.ClampSpeed(10) {
		t.Fatal("expected clamp")
	}
	v := b.Velocity()
	if math.Abs(v.Length()-10) > 1e-9 {
		t.Fatalf("speed = %f, want 10", v.Length())
	}
	if math.Abs(v.X/v.Y-0.75) > 1e-9 {
		t.Fatalf("direction changed: %+v", v)
	}

	b.SetVelocity(3, 4)
	if b.ClampSpeed(10) {
		t.Fatal("unexpected clamp below top speed")
	}
}

func TestLinearDamping(t *testing.T) {
	dt := 1.0 / 60
	w := NewWorld(dt)
	b := w.AddBody(BodyDef{X: 0, Y: 0, Radius: 10, Mass: 1, LinearDamping: 1, Group: Players})
	b.SetVelocity(120, 0)

	w.Step()

	want := 120 / (1 + dt)
	if got := b.Velocity().X; math.Abs(got-want) > 1e-6 {
		t.Fatalf("damped velocity = %f, want %f", got, want)
	}
}

func TestPitchLinesStopBallOnly(t *testing.T) {
	w := NewWorld(1.0 / 60)
	w.AddStaticBox(200, 100, 400, 4, 0.5, PitchLines)

	ball := w.AddBody(BodyDef{X: 100, Y: 150, Radius: 10, Mass: 1, Restitution: 0.7, Group: Ball})
	player := w.AddBody(BodyDef{X: 300, Y: 150, Radius: 15, Mass: 1, Restitution: 0.7, Group: Players})
	ball.SetVelocity(0, -150)
	player.SetVelocity(0, -150)

	for i := 0; i < 60; i++ {
		w.Step()
	}

	if ball.Position().Y <= 100 {
		t.Errorf("ball crossed the line: y = %f", ball.Position().Y)
	}
	if ball.Velocity().Y <= 0 {
		t.Errorf("ball did not bounce: vy = %f", ball.Velocity().Y)
	}
	if player.Position().Y >= 100 {
		t.Errorf("player was stopped by the line: y = %f", player.Position().Y)
	}
}
