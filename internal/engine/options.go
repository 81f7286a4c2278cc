package engine

import (
	"time"

	"github.com/muurk/controlroom/internal/layout"
)

// Timing holds every delay the engine uses
type Timing struct {
	InitialDelay    time.Duration // Loading to Map
	TransitionDelay time.Duration // scheduled Map to Dashboard, and the input block after a switch
	GraceWindow     time.Duration // no feed-driven switch this soon after Start
	Cooldown        time.Duration // at most one feed-driven switch per window
	InputDebounce   time.Duration // key presses closer than this are dropped
	MapReadyTimeout time.Duration // show the map anyway after this long
}

// DefaultTiming returns the stock delays
func DefaultTiming() Timing {
	return Timing{
		InitialDelay:    500 * time.Millisecond,
		TransitionDelay: 300 * time.Millisecond,
		GraceWindow:     3500 * time.Millisecond,
		Cooldown:        3 * time.Second,
		InputDebounce:   100 * time.Millisecond,
		MapReadyTimeout: 5 * time.Second,
	}
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Timer is a pending scheduled event
type Timer interface {
	// Stop cancels the timer. It reports whether the event was still pending.
	Stop() bool
}

// Scheduler delivers ev to the host after d. The host must dispatch it.
type Scheduler interface {
	Schedule(d time.Duration, ev Event) Timer
}

type timerScheduler struct {
	deliver func(Event)
}

// NewTimerScheduler returns a Scheduler backed by time.AfterFunc. deliver is
// called on the timer goroutine and must hand the event to the host loop
// (tea.Program.Send, a channel send) rather than dispatch it directly.
func NewTimerScheduler(deliver func(Event)) Scheduler {
	return &timerScheduler{deliver: deliver}
}

func (s *timerScheduler) Schedule(d time.Duration, ev Event) Timer {
	return time.AfterFunc(d, func() { s.deliver(ev) })
}

// Surface draws frames. It returns ErrRenderTargetMissing when it has nothing
// to draw on yet.
type Surface interface {
	Render(Frame) error
}

// MapView is the map collaborator. Readiness arrives as a MapReady event.
type MapView interface {
	Show()
	Hide()
	Pan(dx, dy int)
	ZoomIn()
}

// Observer receives engine activity, typically for metrics
type Observer interface {
	Snapshot(screens int, err error)
	Transition(from, to, reason string)
	Ignored(event string)
}

type nopObserver struct{}

func (nopObserver) Snapshot(int, error)              {}
func (nopObserver) Transition(string, string, string) {}
func (nopObserver) Ignored(string)                    {}

// Options configures a Context. Zero fields take defaults.
type Options struct {
	Timing    Timing
	Gap       float64 // layout gap in percent; 0 means layout.DefaultGap
	PanStep   int     // map pan distance per key press
	Clock     Clock
	Scheduler Scheduler
	Surface   Surface
	Map       MapView
	Observer  Observer
}

// DefaultPanStep is the map pan distance per directional key
const DefaultPanStep = 100

func (o Options) withDefaults() Options {
	if o.Timing == (Timing{}) {
		o.Timing = DefaultTiming()
	}
	if o.Gap <= 0 {
		o.Gap = layout.DefaultGap
	}
	if o.PanStep <= 0 {
		o.PanStep = DefaultPanStep
	}
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	return o
}
