// Package transition runs animated state changes and reports when they are
// logically complete.
//
// Two backends exist. The event backend drives frame ticks, exposes the
// reveal progress to renderers and emits DoneMsg when the last frame lands.
// The timer backend applies the change at once and emits DoneMsg after the
// same fixed Duration. Detect picks one at start-up.
package transition

import (
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Duration is the length of every transition, on both backends.
const Duration = 300 * time.Millisecond

const frameInterval = time.Second / 60

// Kind identifies a backend.
type Kind int

// Backend kinds.
const (
	KindEvent Kind = iota
	KindTimer
)

// String returns the configuration name of the backend.
func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// DoneMsg reports that transition ID is complete.
type DoneMsg struct {
	ID uint64
}

// FrameMsg advances the event backend.
type FrameMsg struct {
	ID uint64
	At time.Time
}

// Animator runs a state mutation as a transition of Duration.
type Animator interface {
	// Animate applies body immediately and returns the command that
	// eventually yields DoneMsg{ID: id}.
	Animate(id uint64, body func()) tea.Cmd
	// Advance consumes a frame and returns the next command, if any.
	Advance(msg FrameMsg) tea.Cmd
	// Progress reports how far the current transition is, from 0 to 1.
	Progress() float64
	// Kind identifies the backend.
	Kind() Kind
}

// Detect selects a backend for mode ("event", "timer" or "auto"). In auto
// mode frames are only driven when out is a terminal.
func Detect(mode string, out *os.File) Animator {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "event":
		return NewEventAnimator()
	case "timer":
		return NewTimerAnimator()
	}
	if out != nil && term.IsTerminal(int(out.Fd())) { //nolint:gosec
		return NewEventAnimator()
	}
	return NewTimerAnimator()
}

// EventAnimator drives a transition with frame ticks.
type EventAnimator struct {
	now      func() time.Time
	id       uint64
	start    time.Time
	progress float64
	active   bool
}

// NewEventAnimator returns an event backend using the wall clock.
func NewEventAnimator() *EventAnimator {
	return &EventAnimator{now: time.Now, progress: 1}
}

// Animate implements Animator. Starting a transition abandons the frames of
// any transition still running.
func (a *EventAnimator) Animate(id uint64, body func()) tea.Cmd {
	if body != nil {
		body()
	}
	a.id = id
	a.start = a.now()
	a.progress = 0
	a.active = true
	return frame(id)
}

// Advance implements Animator.
func (a *EventAnimator) Advance(msg FrameMsg) tea.Cmd {
	if !a.active || msg.ID != a.id {
		return nil
	}
	elapsed := msg.At.Sub(a.start)
	if elapsed >= Duration {
		a.progress = 1
		a.active = false
		id := a.id
		return func() tea.Msg { return DoneMsg{ID: id} }
	}
	if elapsed < 0 {
		elapsed = 0
	}
	a.progress = easeInOut(float64(elapsed) / float64(Duration))
	return frame(a.id)
}

// Progress implements Animator.
func (a *EventAnimator) Progress() float64 {
	return a.progress
}

// Kind implements Animator.
func (a *EventAnimator) Kind() Kind {
	return KindEvent
}

func frame(id uint64) tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, At: t}
	})
}

// easeInOut is the cubic ease-in-out curve over [0,1].
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f + 1
}

// TimerAnimator completes every transition after a fixed delay without
// intermediate frames.
type TimerAnimator struct{}

// NewTimerAnimator returns the timer backend.
func NewTimerAnimator() *TimerAnimator {
	return &TimerAnimator{}
}

// Animate implements Animator.
func (TimerAnimator) Animate(id uint64, body func()) tea.Cmd {
	if body != nil {
		body()
	}
	return tea.Tick(Duration, func(time.Time) tea.Msg {
		return DoneMsg{ID: id}
	})
}

// Advance implements Animator.
func (TimerAnimator) Advance(FrameMsg) tea.Cmd {
	return nil
}

// Progress implements Animator. The change is shown at once.
func (TimerAnimator) Progress() float64 {
	return 1
}

// Kind implements Animator.
func (TimerAnimator) Kind() Kind {
	return KindTimer
}
