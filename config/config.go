package config

import (
	"math"
	"time"
)

// Entity Sizes
const (
	PLAYER_RADIUS   = 15.0              // Radius of every player disc in world units
	PLAYER_DIAMETER = 2 * PLAYER_RADIUS // Used as the spacing unit for the stadium layout
	BALL_RADIUS     = 10.0              // Radius of the ball and of every goal post
)

// Pitch and Stadium Geometry
const (
	PITCH_WIDTH      = 840.0 // Distance between the left and right pitch lines
	PITCH_HEIGHT     = 400.0 // Distance between the top and bottom pitch lines
	PITCH_LINE_WIDTH = 4.0   // Thickness of every pitch line collider
	GOAL_BREADTH     = 120.0 // Opening of the goal mouth
	GOAL_DEPTH       = PLAYER_DIAMETER

	STADIUM_WIDTH  = PITCH_WIDTH + 4*PLAYER_DIAMETER
	STADIUM_HEIGHT = PITCH_HEIGHT + 2*PLAYER_DIAMETER

	PITCH_LEFT_LINE   = 2 * PLAYER_DIAMETER
	PITCH_RIGHT_LINE  = PITCH_LEFT_LINE + PITCH_WIDTH
	PITCH_TOP_LINE    = PLAYER_DIAMETER
	PITCH_BOTTOM_LINE = PITCH_TOP_LINE + PITCH_HEIGHT

	// Height of each vertical pitch line segment above and below a goal mouth.
	PITCH_VERTICAL_LINE_HEIGHT = (PITCH_HEIGHT - GOAL_BREADTH) / 2
)

// Movement Tuning
const (
	PLAYER_TOP_SPEED    = 150.0 // Units per second
	BALL_TOP_SPEED      = 400.0 // Units per second, also the shot speed
	PLAYER_ACCELERATION = 12.0  // Velocity gained per tick from one directional impulse

	PLAYER_DENSITY = 1.0
	BALL_DENSITY   = 0.5
	PLAYER_MASS    = PLAYER_DENSITY * math.Pi * PLAYER_RADIUS * PLAYER_RADIUS
	BALL_MASS      = BALL_DENSITY * math.Pi * BALL_RADIUS * BALL_RADIUS

	// Impulse magnitude of one directional input, mass weighted.
	PLAYER_IMPULSE = PLAYER_ACCELERATION * PLAYER_MASS

	PLAYER_LINEAR_DAMPING = 1.0
	BALL_LINEAR_DAMPING   = 0.3
	RESTITUTION           = 0.7
	STATIC_RESTITUTION    = 0.5

	SHOOTING_MARGIN   = 5.0
	SHOOTING_DISTANCE = PLAYER_RADIUS + BALL_RADIUS + SHOOTING_MARGIN
)

// Simulation Timing
const (
	PHYSICS_DT = 1.0 / 60.0 // Fixed physics increment per tick, in seconds

	// Frame interval of the host and client drivers (60 frames per second).
	TICK_INTERVAL = time.Second / 60

	RESET_TIME = 120 // Ticks the pitch stays frozen on the goal celebration
	MAX_GOALS  = 3   // Goals needed to win
)

// Color represents a simplified RGB representation.
type Color struct {
	R, G, B, A uint8
}

// Predefined Colors
var (
	StadiumColor    = Color{0x71, 0x8C, 0x5A, 255}
	PitchColor      = Color{0x61, 0x9F, 0x5E, 255}
	PitchLineColor  = Color{0xC7, 0xE6, 0xBD, 255}
	BallColor       = Color{0xEE, 0xEE, 0xEE, 255}
	RedPlayerColor  = Color{0xE5, 0x6E, 0x56, 255}
	BluePlayerColor = Color{0x56, 0x89, 0xE5, 255}
	TextColor       = Color{0xFF, 0xFF, 0xFF, 255}
)
