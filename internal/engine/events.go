package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muurk/controlroom/internal/screen"
)

// State is the view currently shown
type State int

const (
	StateLoading State = iota
	StateMap
	StateDashboard
	StateDetail
)

// String returns the lowercase view name
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateMap:
		return "map"
	case StateDashboard:
		return "dashboard"
	case StateDetail:
		return "detail"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Key is a normalized remote-control key
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyBack
	KeyDigit0
	KeyDigit1
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyDigit5
	KeyDigit6
	KeyDigit7
	KeyDigit8
	KeyDigit9
)

// DigitKey returns the quick-select key for n (0..9)
func DigitKey(n int) Key {
	if n < 0 || n > 9 {
		return KeyNone
	}
	return KeyDigit0 + Key(n)
}

// Digit returns the quick-select number of k
func (k Key) Digit() (int, bool) {
	if k < KeyDigit0 || k > KeyDigit9 {
		return 0, false
	}
	return int(k - KeyDigit0), true
}

// String returns the key name used on the wire
func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyBack:
		return "back"
	case KeyNone:
		return "none"
	}
	if d, ok := k.Digit(); ok {
		return strconv.Itoa(d)
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// ParseKey converts a key name ("up", "enter", "7", ...) to a Key
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return KeyUp, nil
	case "down":
		return KeyDown, nil
	case "left":
		return KeyLeft, nil
	case "right":
		return KeyRight, nil
	case "enter", "ok", "select":
		return KeyEnter, nil
	case "back", "escape", "esc":
		return KeyBack, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n >= 0 && n <= 9 {
		return DigitKey(n), nil
	}
	return KeyNone, fmt.Errorf("unknown key: %q", s)
}

// Event is anything Dispatch accepts. The set is closed to this package.
type Event interface {
	event()
}

// Start begins the Loading phase and the startup timers
type Start struct{}

// Snapshot is one feed response. A non-nil Err is handled as an empty list.
type Snapshot struct {
	Screens []screen.Screen
	Err     error
}

// Input is one remote-control key press
type Input struct {
	Key Key
}

// MapReady reports that the map collaborator can be shown
type MapReady struct{}

// Render asks for the current frame to be emitted again
type Render struct{}

// timer events, delivered back through the Scheduler
type initialElapsed struct{}

type mapReadyTimeout struct{}

type transitionSettled struct{ gen uint64 }

type transitionDue struct {
	gen    uint64
	to     State
	reason string
}

func (Start) event()             {}
func (Snapshot) event()          {}
func (Input) event()             {}
func (MapReady) event()          {}
func (Render) event()            {}
func (initialElapsed) event()    {}
func (mapReadyTimeout) event()   {}
func (transitionSettled) event() {}
func (transitionDue) event()     {}

func eventName(ev Event) string {
	switch e := ev.(type) {
	case Start:
		return "start"
	case Snapshot:
		return "snapshot"
	case Input:
		return "input:" + e.Key.String()
	case MapReady:
		return "map-ready"
	case Render:
		return "render"
	case initialElapsed:
		return "initial-delay"
	case mapReadyTimeout:
		return "map-ready-timeout"
	case transitionSettled:
		return "transition-settled"
	case transitionDue:
		return "transition-due:" + e.to.String()
	default:
		return fmt.Sprintf("%T", ev)
	}
}
