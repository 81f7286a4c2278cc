package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/muurk/controlroom/internal/focus"
	"github.com/muurk/controlroom/internal/layout"
	"github.com/muurk/controlroom/internal/logging"
	"github.com/muurk/controlroom/internal/navigation"
	"github.com/muurk/controlroom/internal/screen"
)

// Context owns the view state, the canonical screen list and all timers
type Context struct {
	opts Options

	state     State
	mapLocked bool
	screens   []screen.Screen
	plan      *layout.Plan
	graph     *navigation.Graph
	focus     *focus.Controller
	detail    *Detail

	started          bool
	pageOpenedAt     time.Time
	lastAutoSwitchAt time.Time
	lastInputAt      time.Time
	limiter          *rate.Limiter

	mapReady      bool
	awaitingMap   bool
	initialTimer  Timer
	mapReadyTimer Timer
	pending       Timer
	generation    uint64
	parked        *transitionDue
	transitioning bool
	settleTimer   Timer
	settleGen     uint64
	inert         bool
	lastFrame     Frame
	rendered      bool
}

// New creates a Context in the Loading state. Dispatch Start to begin.
func New(opts Options) *Context {
	opts = opts.withDefaults()
	c := &Context{
		opts:  opts,
		state: StateLoading,
		focus: focus.New(),
		graph: navigation.Build(nil, nil),
	}
	c.limiter = newLimiter(opts.Timing.Cooldown)
	// no map collaborator means nothing to wait for
	c.mapReady = opts.Map == nil
	return c
}

func newLimiter(cooldown time.Duration) *rate.Limiter {
	if cooldown <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(cooldown), 1)
}

// cooldownOver reports whether a feed-driven switch may happen at now
func (c *Context) cooldownOver(now time.Time) bool {
	return c.limiter == nil || c.limiter.TokensAt(now) >= 1
}

// consumeCooldown records a feed-driven switch at now
func (c *Context) consumeCooldown(now time.Time) bool {
	if c.limiter != nil && !c.limiter.AllowN(now, 1) {
		return false
	}
	c.lastAutoSwitchAt = now
	return true
}

// State returns the current view
func (c *Context) State() State { return c.state }

// MapLocked reports whether the user explicitly opened the map
func (c *Context) MapLocked() bool { return c.mapLocked }

// Screens returns a copy of the canonical screen list
func (c *Context) Screens() []screen.Screen {
	out := make([]screen.Screen, len(c.screens))
	copy(out, c.screens)
	return out
}

// Plan returns the layout of the last render pass
func (c *Context) Plan() *layout.Plan { return c.plan }

// Graph returns the navigation graph of the last render pass
func (c *Context) Graph() *navigation.Graph { return c.graph }

// Focused returns the focused dashboard tile id
func (c *Context) Focused() (int, bool) { return c.focus.Focused() }

// FocusHistory returns recently focused tile ids, oldest first
func (c *Context) FocusHistory() []int { return c.focus.History() }

// Frame returns the last frame accepted by the surface
func (c *Context) Frame() (Frame, bool) { return c.lastFrame, c.rendered }

// Inert reports whether the last render found no render target
func (c *Context) Inert() bool { return c.inert }

// Pending reports whether a feed-driven switch is scheduled or parked
func (c *Context) Pending() bool { return c.pending != nil || c.parked != nil }

// Transitioning reports whether remote input is currently blocked
func (c *Context) Transitioning() bool { return c.transitioning }

// LastAutoSwitch returns when the last feed-driven switch was applied
func (c *Context) LastAutoSwitch() time.Time { return c.lastAutoSwitchAt }

// Dispatch applies one event. It never fails; events with no matching rule
// are logged and dropped.
func (c *Context) Dispatch(ev Event) {
	switch e := ev.(type) {
	case Start:
		c.start()
	case Snapshot:
		c.applySnapshot(e)
	case Input:
		c.applyInput(e.Key)
	case MapReady:
		c.applyMapReady()
	case Render:
		c.render()
	case initialElapsed:
		c.initialTimer = nil
		c.initialDelayElapsed()
	case mapReadyTimeout:
		c.mapReadyTimer = nil
		if c.state == StateLoading && c.awaitingMap {
			logging.Warn("Map not ready before timeout, showing it anyway",
				zap.Duration("timeout", c.opts.Timing.MapReadyTimeout),
			)
			c.enterInitialMap()
		}
	case transitionDue:
		c.applyDue(e)
	case transitionSettled:
		c.applySettled(e)
	default:
		c.ignore(ev, "unknown event")
	}
}

// Run dispatches events from the channel until ctx is done or the channel closes
func (c *Context) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				c.Stop()
				return nil
			}
			c.Dispatch(ev)
		}
	}
}

// Stop cancels every outstanding timer
func (c *Context) Stop() {
	for _, t := range []Timer{c.initialTimer, c.mapReadyTimer, c.pending, c.settleTimer} {
		if t != nil {
			t.Stop()
		}
	}
	c.initialTimer, c.mapReadyTimer, c.pending, c.settleTimer = nil, nil, nil, nil
	c.parked = nil
}

func (c *Context) start() {
	if c.started {
		c.ignore(Start{}, "already started")
		return
	}
	c.started = true
	c.pageOpenedAt = c.opts.Clock.Now()
	c.initialTimer = c.schedule(c.opts.Timing.InitialDelay, initialElapsed{})
	c.render()
}

func (c *Context) initialDelayElapsed() {
	if c.state != StateLoading {
		return
	}
	if c.mapReady {
		c.enterInitialMap()
		return
	}
	c.awaitingMap = true
	c.mapReadyTimer = c.schedule(c.opts.Timing.MapReadyTimeout, mapReadyTimeout{})
}

func (c *Context) applyMapReady() {
	c.mapReady = true
	if c.state == StateLoading && c.awaitingMap {
		c.enterInitialMap()
	}
}

func (c *Context) enterInitialMap() {
	c.awaitingMap = false
	if c.mapReadyTimer != nil {
		c.mapReadyTimer.Stop()
		c.mapReadyTimer = nil
	}
	c.mapLocked = false
	c.transition(StateMap, "startup")
}

func (c *Context) applySnapshot(s Snapshot) {
	c.opts.Observer.Snapshot(len(s.Screens), s.Err)
	logging.LogSnapshot(len(s.Screens), s.Err)

	screens := s.Screens
	if s.Err != nil {
		// fail open: an unreachable feed looks like an empty one
		screens = nil
	}
	c.screens = screen.EnsureMap(screens)

	// a newer snapshot always supersedes a scheduled switch
	c.cancelPending()
	c.rebuild()

	content := screen.HasContent(c.screens)

	switch c.state {
	case StateMap:
		if !content {
			break
		}
		if c.mapLocked {
			c.mapLocked = false
			logging.Info("Map lock released by feed update",
				zap.Int("screens", len(c.screens)),
			)
			break
		}
		if reason, ok := c.autoSwitchAllowed(); !ok {
			c.ignore(s, reason)
			break
		}
		c.scheduleDashboard()

	case StateDashboard:
		if content {
			break
		}
		if reason, ok := c.autoSwitchAllowed(); !ok {
			c.ignore(s, reason)
			break
		}
		c.consumeCooldown(c.opts.Clock.Now())
		c.transition(StateMap, "feed-empty")
		return
	}

	c.render()
}

// autoSwitchAllowed checks the grace window and cooldown without consuming
func (c *Context) autoSwitchAllowed() (string, bool) {
	now := c.opts.Clock.Now()
	if now.Sub(c.pageOpenedAt) < c.opts.Timing.GraceWindow {
		return "within startup grace window", false
	}
	if !c.cooldownOver(now) {
		return "auto-switch cooldown", false
	}
	return "", true
}

func (c *Context) scheduleDashboard() {
	due := transitionDue{gen: c.generation, to: StateDashboard, reason: "feed"}
	c.pending = c.schedule(c.opts.Timing.TransitionDelay, due)
	logging.Debug("Dashboard transition scheduled",
		zap.Uint64("generation", due.gen),
		zap.Duration("delay", c.opts.Timing.TransitionDelay),
	)
}

func (c *Context) cancelPending() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.parked = nil
	c.generation++
}

func (c *Context) applyDue(e transitionDue) {
	if e.gen != c.generation {
		c.ignore(e, "superseded by a newer snapshot")
		return
	}
	c.pending = nil
	if c.state != StateMap || c.mapLocked || !screen.HasContent(c.screens) {
		c.ignore(e, "no longer applicable")
		return
	}
	if c.transitioning {
		parked := e
		c.parked = &parked
		logging.Debug("Dashboard transition parked until current transition settles",
			zap.Uint64("generation", e.gen),
		)
		return
	}

	if !c.consumeCooldown(c.opts.Clock.Now()) {
		c.ignore(e, "auto-switch cooldown")
		return
	}
	c.transition(e.to, e.reason)
}

func (c *Context) applySettled(e transitionSettled) {
	if e.gen != c.settleGen {
		return
	}
	c.settleTimer = nil
	c.transitioning = false

	if parked := c.parked; parked != nil {
		c.parked = nil
		c.applyDue(*parked)
		return
	}
	c.render()
}

// transition switches views, raises the input block and renders
func (c *Context) transition(to State, reason string) {
	from := c.state
	if from == to {
		c.render()
		return
	}

	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
		c.generation++
	}

	if c.opts.Map != nil {
		if to == StateMap {
			c.opts.Map.Show()
		} else if from == StateMap {
			c.opts.Map.Hide()
		}
	}
	if to != StateDetail {
		c.detail = nil
	}

	c.state = to
	logging.LogTransition(from.String(), to.String(), reason)
	c.opts.Observer.Transition(from.String(), to.String(), reason)

	c.raiseTransitioning()
	if to == StateDashboard {
		c.rebuild()
	}
	c.render()
}

func (c *Context) raiseTransitioning() {
	if c.opts.Timing.TransitionDelay <= 0 {
		return
	}
	if c.settleTimer != nil {
		c.settleTimer.Stop()
	}
	c.settleGen++
	c.transitioning = true
	c.settleTimer = c.schedule(c.opts.Timing.TransitionDelay, transitionSettled{gen: c.settleGen})
}

// rebuild recomputes the derived layout and graph and re-anchors focus
func (c *Context) rebuild() {
	c.focus.BeforeRerender()
	c.plan = layout.ComputeGap(len(c.screens), c.opts.Gap)
	c.graph = navigation.Build(c.screens, c.plan)
	c.focus.AfterRerender(c.screens, c.graph)
}

func (c *Context) schedule(d time.Duration, ev Event) Timer {
	if c.opts.Scheduler == nil {
		return nil
	}
	return c.opts.Scheduler.Schedule(d, ev)
}

func (c *Context) frame() Frame {
	f := Frame{
		State:         c.state,
		MapLocked:     c.mapLocked,
		Transitioning: c.transitioning,
		Screens:       len(c.screens),
	}

	switch c.state {
	case StateDashboard:
		f.Plan = c.plan
		focused, hasFocus := c.focus.Focused()
		f.Tiles = make([]Tile, len(c.screens))
		for i, s := range c.screens {
			row, col := c.plan.Position(i)
			f.Tiles[i] = Tile{
				ID:      s.ID,
				Name:    s.DisplayName,
				Code:    s.Code,
				IsMap:   s.IsMap,
				Index:   i,
				Row:     row,
				Col:     col,
				Focused: hasFocus && s.ID == focused,
			}
		}
	case StateDetail:
		if c.detail != nil {
			d := *c.detail
			f.Detail = &d
		}
	}
	return f
}

func (c *Context) render() {
	f := c.frame()

	var err error
	if c.opts.Surface == nil {
		err = ErrRenderTargetMissing
	} else {
		err = c.opts.Surface.Render(f)
	}

	switch {
	case errors.Is(err, ErrRenderTargetMissing):
		if !c.inert {
			logging.Warn("Render target missing, skipping frame",
				zap.String("state", c.state.String()),
			)
		}
		c.inert = true
		return
	case err != nil:
		logging.Warn("Render failed", zap.Error(err))
		return
	}

	c.inert = false
	c.lastFrame = f
	c.rendered = true
}

func (c *Context) ignore(ev Event, reason string) {
	err := &UnknownTransitionError{Event: eventName(ev), State: c.state, Reason: reason}
	logging.LogIgnored(err.Event, err.State.String(), err.Reason)
	c.opts.Observer.Ignored(err.Event)
}
