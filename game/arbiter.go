package game

import "footballers-server/config"

// Phase is the state of the match.
type Phase int

const (
	Playing   Phase = iota
	GoalPause       // frozen on a goal celebration until the timer runs out
	Ended
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case GoalPause:
		return "goal_pause"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// Arbiter tracks score, the goal pause and the end of the match.
type Arbiter struct {
	Score      Score
	RedScored  bool // Cleared when the pause runs out
	BlueScored bool
	Timer      int  // Ticks left in the current pause
	Pending    bool // The next broadcast announces the last goal
	Ended      bool

	goalTarget   int
	resetTime    int
	endAnnounced bool
}

// NewArbiter creates an arbiter for a match won at goalTarget goals with a
// pause of resetTime ticks after each goal. Non-positive values fall back to
// MAX_GOALS and RESET_TIME.
func NewArbiter(goalTarget, resetTime int) *Arbiter {
	if goalTarget <= 0 {
		goalTarget = config.MAX_GOALS
	}
	if resetTime <= 0 {
		resetTime = config.RESET_TIME
	}
	return &Arbiter{goalTarget: goalTarget, resetTime: resetTime}
}

// GoalTarget returns the number of goals that wins the match.
func (a *Arbiter) GoalTarget() int {
	return a.goalTarget
}

// ResetTime returns the length of the goal pause in ticks.
func (a *Arbiter) ResetTime() int {
	return a.resetTime
}

// Phase derives the current state from the record.
func (a *Arbiter) Phase() Phase {
	switch {
	case a.Ended:
		return Ended
	case a.Timer > 0:
		return GoalPause
	}
	return Playing
}

// Check advances the match by one tick given the ball's horizontal position.
// It reports true when the pause has just run out and the bodies must go back
// to kickoff.
func (a *Arbiter) Check(ballX float64) (reset bool) {
	if a.Ended {
		return false
	}

	if a.Timer > 0 {
		a.Timer--
		if a.Timer > 0 {
			return false
		}
		a.RedScored, a.BlueScored = false, false
		if a.Score.Red >= a.goalTarget || a.Score.Blue >= a.goalTarget {
			a.Ended = true
			return false
		}
		return true
	}

	switch {
	case ballX < config.PITCH_LEFT_LINE:
		a.goal(Blue)
	case ballX > config.PITCH_RIGHT_LINE:
		a.goal(Red)
	}
	return false
}

func (a *Arbiter) goal(t Team) {
	if t == Red {
		a.Score.Red++
		a.RedScored = true
	} else {
		a.Score.Blue++
		a.BlueScored = true
	}
	a.Pending = true
	a.Timer = a.resetTime
}

// Scorer returns the team that scored last while its goal is still being
// celebrated.
func (a *Arbiter) Scorer() (Team, bool) {
	switch {
	case a.RedScored:
		return Red, true
	case a.BlueScored:
		return Blue, true
	}
	return Red, false
}

// BroadcastKind selects the message a host sends for one frame.
type BroadcastKind int

const (
	BroadcastNone BroadcastKind = iota
	BroadcastState
	BroadcastGoal
	BroadcastEnded
)

func (k BroadcastKind) String() string {
	switch k {
	case BroadcastNone:
		return "none"
	case BroadcastState:
		return "state_update"
	case BroadcastGoal:
		return "goal_scored"
	case BroadcastEnded:
		return "match_ended"
	}
	return "unknown"
}

// NextBroadcast consumes the one-shot announcements: a single MatchEnded once
// the match is over and nothing afterwards, a single GoalScored after each
// goal, routine state updates otherwise.
func (a *Arbiter) NextBroadcast() BroadcastKind {
	if a.Ended {
		if a.endAnnounced {
			return BroadcastNone
		}
		a.endAnnounced = true
		a.Pending = false
		return BroadcastEnded
	}
	if a.Pending {
		a.Pending = false
		return BroadcastGoal
	}
	return BroadcastState
}
