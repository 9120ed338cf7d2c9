package physics

import "github.com/jakecoffman/cp"

// Group is a collision category bit. The five groups are disjoint.
type Group uint

const (
	PitchLines Group = 1 << iota
	GoalPosts
	Players
	StadiumWalls
	Ball
)

// Mask returns the union of groups a member of g physically touches.
// Pitch lines only stop the ball and stadium walls only stop players, so the
// decorative geometry never interacts with itself.
func (g Group) Mask() Group {
	switch g {
	case PitchLines:
		return Ball
	case GoalPosts:
		return Ball | Players
	case Players:
		return Players | StadiumWalls | Ball | GoalPosts
	case StadiumWalls:
		return Players
	case Ball:
		return Ball | Players | PitchLines | GoalPosts
	}
	return 0
}

func (g Group) String() string {
	switch g {
	case PitchLines:
		return "pitch_lines"
	case GoalPosts:
		return "goal_posts"
	case Players:
		return "players"
	case StadiumWalls:
		return "stadium_walls"
	case Ball:
		return "ball"
	}
	return "unknown"
}

// Interacts reports whether shapes of groups a and b generate contacts.
// Both sides must accept each other, like the engine's own filter test.
func Interacts(a, b Group) bool {
	return a&b.Mask() != 0 && b&a.Mask() != 0
}

func (g Group) filter() cp.ShapeFilter {
	return cp.NewShapeFilter(0, uint(g), uint(g.Mask()))
}
