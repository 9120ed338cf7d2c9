package game

import (
	"footballers-server/config"
	"footballers-server/physics"
)

// Player is a controllable disc owned by one peer.
type Player struct {
	ID           string        // Connection id of the owning peer, "host" for the host's own player
	Body         *physics.Body // Physics body, owned by the host world
	Radius       float64
	Team         Team
	Number       int         // Display number, counted per team from 1
	Input        PlayerInput // Most recently received input
	LastTickShot bool        // Shoot was already handled for the current press
}

// Red reports whether p plays for the red team.
func (p *Player) Red() bool {
	return p.Team == Red
}

// Circle projects p for the wire and the renderer.
func (p *Player) Circle() Circle {
	pos := p.Body.Position()
	return Circle{X: pos.X, Y: pos.Y, Radius: p.Radius, Red: p.Red(), Number: p.Number}
}

// KickoffPosition returns where a player of team t with display number n
// stands at kickoff. Number 1 is centered on its half, further numbers are
// stacked below and above it. A full column continues one diameter closer to
// the center line, and numbers past the last column wrap to the first spot.
func KickoffPosition(t Team, number int) (float64, float64) {
	spacing := 2 * config.PLAYER_DIAMETER
	column := float64(config.PLAYER_DIAMETER)

	// rows keep every player inside the pitch lines, columns stop short of
	// the ball at the center spot
	rows := 2*int((config.PITCH_HEIGHT/2-config.PLAYER_RADIUS)/spacing) + 1
	reach := config.STADIUM_WIDTH/2 - config.BALL_RADIUS - config.PLAYER_RADIUS - (config.PITCH_LEFT_LINE + spacing)
	columns := int(reach/column) + 1

	i := 0
	if number > 1 {
		i = (number - 1) % (rows * columns)
	}
	row, col := i%rows, i/rows

	x := config.PITCH_LEFT_LINE + spacing + float64(col)*column
	if t == Blue {
		x = config.STADIUM_WIDTH - x
	}
	y := config.STADIUM_HEIGHT / 2
	offset := float64((row+1)/2) * spacing
	if row%2 == 1 {
		y += offset
	} else {
		y -= offset
	}
	return x, y
}

// resetPosition moves p back to its kickoff spot and stops it.
func (p *Player) resetPosition() {
	x, y := KickoffPosition(p.Team, p.Number)
	p.Body.SetPosition(x, y)
	p.Body.Stop()
}
