package game

// Display is the read-only projection handed to a renderer once per frame.
// Hosts and clients produce the same shape.
type Display struct {
	Players    []Circle
	Ball       Circle
	Edges      []Edge
	GoalPosts  []Circle
	Score      Score
	RedScored  bool
	BlueScored bool
	Ended      bool
}

// Renderer draws a display. It must not retain the slices past the call.
type Renderer interface {
	Render(Display)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(Display)

func (f RenderFunc) Render(d Display) {
	f(d)
}
