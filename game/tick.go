package game

import (
	"math"

	"footballers-server/config"
)

// Tick applies the buffered inputs and advances the world by one fixed step.
// It never fails: contradicting inputs are resolved by Impulse.
func (g *HostGame) Tick() {
	if !g.started {
		return
	}
	g.host.Input = g.hostInput.PlayerInput()

	for _, p := range g.players {
		g.shoot(p)
		g.move(p)
	}

	g.ball.ClampSpeed(config.BALL_TOP_SPEED)
	g.world.Step()

	// contacts may push bodies past their top speed
	for _, p := range g.players {
		p.Body.ClampSpeed(config.PLAYER_TOP_SPEED)
	}
	g.ball.ClampSpeed(config.BALL_TOP_SPEED)
	g.ticks++
}

// shoot kicks the ball at the first tick of a shoot press when the player is
// within shooting distance. The kick overwrites the ball's velocity.
func (g *HostGame) shoot(p *Player) {
	if !p.Input.Shoot {
		p.LastTickShot = false
		return
	}
	if p.LastTickShot {
		return
	}
	p.LastTickShot = true

	pp, bp := p.Body.Position(), g.ball.Position()
	dx, dy := bp.X-pp.X, bp.Y-pp.Y
	if dx*dx+dy*dy > config.SHOOTING_DISTANCE*config.SHOOTING_DISTANCE {
		return
	}
	angle := math.Atan2(dy, dx)
	g.ball.SetVelocity(config.BALL_TOP_SPEED*math.Cos(angle), config.BALL_TOP_SPEED*math.Sin(angle))
}

// move applies one impulse per axis and governs the player's speed.
func (g *HostGame) move(p *Player) {
	dx, dy := p.Input.Impulse()
	if dx != 0 || dy != 0 {
		p.Body.ApplyImpulse(dx*config.PLAYER_IMPULSE, dy*config.PLAYER_IMPULSE)
	}
	p.Body.ClampSpeed(config.PLAYER_TOP_SPEED)
}
