package game

import "testing"

func TestClientGameCelebration(t *testing.T) {
	c := NewClientGame(3)
	c.ApplyGoal(Blue, Score{Blue: 1})

	d := c.Display()
	if !d.BlueScored || d.RedScored || d.Score.Blue != 1 {
		t.Fatalf("display after goal = %+v", d)
	}
	for i := 0; i < 3; i++ {
		c.Tick()
		if !c.Display().BlueScored {
			t.Fatalf("flag cleared after %d ticks", i+1)
		}
	}
	c.Tick()
	if d := c.Display(); d.BlueScored || d.Score.Blue != 1 {
		t.Fatalf("display after celebration = %+v", d)
	}
}

func TestClientGameInitReplaces(t *testing.T) {
	c := NewClientGame(0)
	c.ApplyInit([]Edge{{Width: 1}, {Width: 2}}, []Circle{{X: 1}}, []Circle{{X: 1}, {X: 2}, {X: 3}}, Circle{X: 9})
	c.ApplyInit([]Edge{{Width: 3}}, nil, []Circle{{X: 4}}, Circle{X: 5})

	d := c.Display()
	if len(d.Edges) != 1 || len(d.GoalPosts) != 0 || len(d.Players) != 1 || d.Ball.X != 5 {
		t.Fatalf("display after second init = %+v", d)
	}

	c.ApplyState([]Circle{{X: 7}, {X: 8}}, Circle{X: 6})
	d = c.Display()
	if len(d.Players) != 2 || d.Players[1].X != 8 || d.Ball.X != 6 || len(d.Edges) != 1 {
		t.Fatalf("display after state = %+v", d)
	}
}

func TestClientGameEnded(t *testing.T) {
	c := NewClientGame(0)
	c.ApplyEnded(Score{Red: 3, Blue: 1})
	if !c.Ended() || c.Display().Score != (Score{Red: 3, Blue: 1}) {
		t.Fatalf("display after end = %+v", c.Display())
	}
}

func TestClientGameAdoptsHostResetTime(t *testing.T) {
	c := NewClientGame(50)
	c.SetResetTime(0)
	c.SetResetTime(1)
	c.ApplyGoal(Red, Score{Red: 1})

	c.Tick()
	if !c.Display().RedScored {
		t.Fatal("flag cleared before the pause ran out")
	}
	c.Tick()
	if c.Display().RedScored {
		t.Fatal("flag still set after the host's one tick pause")
	}
}
