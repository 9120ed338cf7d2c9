package game

import (
	"footballers-server/config"
	"footballers-server/physics"
)

// createPitchLines inserts the pitch boundary rectangles and returns their
// wire projection. Goal mouths are gaps in the vertical lines closed by a back
// line and two funnel segments at GOAL_DEPTH.
func createPitchLines(world *physics.World) []Edge {
	edges := make([]Edge, 0, 12)
	addLine := func(width, height, x, y float64, white bool) {
		world.AddStaticBox(x, y, width, height, config.STATIC_RESTITUTION, physics.PitchLines)
		edges = append(edges, NewEdge(x, y, width, height, white))
	}

	upperY := (config.STADIUM_HEIGHT - config.GOAL_BREADTH - config.PITCH_VERTICAL_LINE_HEIGHT) / 2
	lowerY := (config.STADIUM_HEIGHT + config.GOAL_BREADTH + config.PITCH_VERTICAL_LINE_HEIGHT) / 2
	mouthTop := (config.STADIUM_HEIGHT - config.GOAL_BREADTH) / 2
	mouthBottom := (config.STADIUM_HEIGHT + config.GOAL_BREADTH) / 2

	for _, side := range []struct {
		line      float64
		direction float64 // -1 goal extends left of the line, +1 right
	}{
		{config.PITCH_LEFT_LINE, -1},
		{config.PITCH_RIGHT_LINE, 1},
	} {
		addLine(config.PITCH_LINE_WIDTH, config.PITCH_VERTICAL_LINE_HEIGHT, side.line, upperY, true)
		addLine(config.PITCH_LINE_WIDTH, config.PITCH_VERTICAL_LINE_HEIGHT, side.line, lowerY, true)

		// goal
		back := side.line + side.direction*config.GOAL_DEPTH
		funnel := side.line + side.direction*config.GOAL_DEPTH/2
		addLine(config.PITCH_LINE_WIDTH, config.GOAL_BREADTH, back, config.STADIUM_HEIGHT/2, false)
		addLine(config.GOAL_DEPTH, config.PITCH_LINE_WIDTH, funnel, mouthTop, false)
		addLine(config.GOAL_DEPTH, config.PITCH_LINE_WIDTH, funnel, mouthBottom, false)
	}

	addLine(config.PITCH_WIDTH, config.PITCH_LINE_WIDTH, config.STADIUM_WIDTH/2, config.PITCH_TOP_LINE, true)
	addLine(config.PITCH_WIDTH, config.PITCH_LINE_WIDTH, config.STADIUM_WIDTH/2, config.PITCH_BOTTOM_LINE, true)

	return edges
}

// createGoalPosts inserts two posts per goal, flush with the mouth edges.
func createGoalPosts(world *physics.World) []Circle {
	posts := make([]Circle, 0, 4)
	centerY := config.PITCH_TOP_LINE + config.PITCH_HEIGHT/2
	for _, side := range []struct {
		x   float64
		red bool
	}{
		{config.PITCH_LEFT_LINE, true},
		{config.PITCH_RIGHT_LINE, false},
	} {
		for _, y := range []float64{centerY - config.GOAL_BREADTH/2, centerY + config.GOAL_BREADTH/2} {
			world.AddStaticCircle(side.x, y, config.BALL_RADIUS, config.STATIC_RESTITUTION, physics.GoalPosts)
			posts = append(posts, Circle{X: side.x, Y: y, Radius: config.BALL_RADIUS, Red: side.red, Number: -1})
		}
	}
	return posts
}

// createStadiumWalls closes the stadium for players. The ball is held by the
// pitch lines instead.
func createStadiumWalls(world *physics.World) {
	w, h := config.STADIUM_WIDTH, config.STADIUM_HEIGHT
	corners := []physics.Vector{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	for i := range corners {
		world.AddStaticSegment(corners[i], corners[(i+1)%len(corners)], config.STATIC_RESTITUTION, physics.StadiumWalls)
	}
}

// createBall inserts the ball at the kickoff spot.
func createBall(world *physics.World) *physics.Body {
	return world.AddBody(physics.BodyDef{
		X:             config.STADIUM_WIDTH / 2,
		Y:             config.STADIUM_HEIGHT / 2,
		Radius:        config.BALL_RADIUS,
		Mass:          config.BALL_MASS,
		LinearDamping: config.BALL_LINEAR_DAMPING,
		Restitution:   config.RESTITUTION,
		Group:         physics.Ball,
	})
}

// createPlayerBody inserts a player disc at its kickoff spot.
func createPlayerBody(world *physics.World, t Team, number int) *physics.Body {
	x, y := KickoffPosition(t, number)
	return world.AddBody(physics.BodyDef{
		X:             x,
		Y:             y,
		Radius:        config.PLAYER_RADIUS,
		Mass:          config.PLAYER_MASS,
		LinearDamping: config.PLAYER_LINEAR_DAMPING,
		Restitution:   config.RESTITUTION,
		Group:         physics.Players,
	})
}
