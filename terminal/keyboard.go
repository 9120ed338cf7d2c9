// Package terminal is the local console front end: keyboard capture into
// player input and a character-cell view of the pitch.
package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"footballers-server/game"
)

// Terminals report key presses and auto-repeats but never releases, so a key
// counts as held until KEY_RELEASE after its last event.
const KEY_RELEASE = 150 * time.Millisecond

type action int

const (
	actionUp action = iota
	actionDown
	actionLeft
	actionRight
	actionShoot
	actionCount
)

// Keyboard turns terminal key events into PlayerInput. Arrows or WASD move,
// space or X shoots.
type Keyboard struct {
	mu      sync.Mutex
	pressed [actionCount]time.Time
	release time.Duration
	now     func() time.Time
	quit    chan struct{}
	once    sync.Once
}

// NewKeyboard creates a keyboard with the default release delay.
func NewKeyboard() *Keyboard {
	return &Keyboard{release: KEY_RELEASE, now: time.Now, quit: make(chan struct{})}
}

func keyAction(key tcell.Key, r rune) (action, bool) {
	switch key {
	case tcell.KeyUp:
		return actionUp, true
	case tcell.KeyDown:
		return actionDown, true
	case tcell.KeyLeft:
		return actionLeft, true
	case tcell.KeyRight:
		return actionRight, true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return actionUp, true
		case 's', 'S':
			return actionDown, true
		case 'a', 'A':
			return actionLeft, true
		case 'd', 'D':
			return actionRight, true
		case ' ', 'x', 'X':
			return actionShoot, true
		}
	}
	return 0, false
}

// HandleKey records a key event at the given instant. Escape, Ctrl-C and q
// request to quit.
func (k *Keyboard) HandleKey(key tcell.Key, r rune, at time.Time) {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC || (key == tcell.KeyRune && (r == 'q' || r == 'Q')) {
		k.once.Do(func() { close(k.quit) })
		return
	}
	a, ok := keyAction(key, r)
	if !ok {
		return
	}
	k.mu.Lock()
	k.pressed[a] = at
	k.mu.Unlock()
}

// PlayerInput reports the actions whose key was seen recently.
func (k *Keyboard) PlayerInput() game.PlayerInput {
	now := k.now()
	k.mu.Lock()
	defer k.mu.Unlock()
	held := func(a action) bool {
		t := k.pressed[a]
		return !t.IsZero() && now.Sub(t) < k.release
	}
	return game.PlayerInput{
		Up:    held(actionUp),
		Down:  held(actionDown),
		Left:  held(actionLeft),
		Right: held(actionRight),
		Shoot: held(actionShoot),
	}
}

// Quit is closed when the user asks to leave.
func (k *Keyboard) Quit() <-chan struct{} {
	return k.quit
}

// Listen feeds k from the screen's events until the screen is finalized.
func (k *Keyboard) Listen(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			k.HandleKey(ev.Key(), ev.Rune(), ev.When())
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
