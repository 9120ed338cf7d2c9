package terminal

import (
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"footballers-server/config"
	"footballers-server/game"
)

func color(c config.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Renderer draws a display on a tcell screen, scaling the stadium to the
// screen and keeping the last row for the score line.
type Renderer struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewRenderer draws on screen. The screen must be initialized.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Cell maps a world position to a screen cell for a screen of w by h cells.
func Cell(x, y float64, w, h int) (int, int) {
	rows := h - 1
	if rows < 1 {
		rows = 1
	}
	cx := int(math.Floor(x / config.STADIUM_WIDTH * float64(w)))
	cy := int(math.Floor(y / config.STADIUM_HEIGHT * float64(rows)))
	return clamp(cx, 0, w-1), clamp(cy, 0, rows-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Render draws d and shows it.
func (r *Renderer) Render(d game.Display) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.screen
	w, h := s.Size()
	if w <= 0 || h <= 1 {
		return
	}
	s.Clear()

	stadium := tcell.StyleDefault.Background(color(config.StadiumColor))
	pitch := tcell.StyleDefault.Background(color(config.PitchColor))
	for y := 0; y < h-1; y++ {
		for x := 0; x < w; x++ {
			s.SetContent(x, y, ' ', nil, stadium)
		}
	}
	x0, y0 := Cell(config.PITCH_LEFT_LINE, config.PITCH_TOP_LINE, w, h)
	x1, y1 := Cell(config.PITCH_RIGHT_LINE, config.PITCH_BOTTOM_LINE, w, h)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.SetContent(x, y, ' ', nil, pitch)
		}
	}

	line := tcell.StyleDefault.Background(color(config.PitchLineColor))
	for _, e := range d.Edges {
		if !e.White {
			continue
		}
		ex0, ey0 := Cell(e.X, e.Y, w, h)
		ex1, ey1 := Cell(e.X+e.Width, e.Y+e.Height, w, h)
		for y := ey0; y <= ey1; y++ {
			for x := ex0; x <= ex1; x++ {
				s.SetContent(x, y, ' ', nil, line)
			}
		}
	}

	for _, p := range d.GoalPosts {
		x, y := Cell(p.X, p.Y, w, h)
		s.SetContent(x, y, 'o', nil, pitch.Foreground(color(config.BallColor)))
	}

	for _, p := range d.Players {
		x, y := Cell(p.X, p.Y, w, h)
		bg := config.BluePlayerColor
		if p.Red {
			bg = config.RedPlayerColor
		}
		s.SetContent(x, y, playerRune(p.Number), nil,
			tcell.StyleDefault.Background(color(bg)).Foreground(tcell.ColorWhite).Bold(true))
	}

	bx, by := Cell(d.Ball.X, d.Ball.Y, w, h)
	s.SetContent(bx, by, '●', nil, pitch.Foreground(color(config.BallColor)))

	drawText(s, 0, h-1, statusLine(d), tcell.StyleDefault.Foreground(color(config.TextColor)))
	s.Show()
}

func playerRune(number int) rune {
	if number >= 1 && number <= 9 {
		return rune('0' + number)
	}
	return '@'
}

func statusLine(d game.Display) string {
	status := fmt.Sprintf("RED %d - %d BLUE", d.Score.Red, d.Score.Blue)
	switch {
	case d.Ended:
		status += "  MATCH ENDED"
	case d.RedScored:
		status += "  RED SCORED!"
	case d.BlueScored:
		status += "  BLUE SCORED!"
	}
	return status
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
