// Package timer implements the start/pause/finish state machine behind the
// quick timer. The authoritative duration is always derived from captured
// instants; periodic ticks only refresh a display value.
package timer

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTransition is returned when an action is not legal in the
	// timer's current state. The timer is left unchanged.
	ErrInvalidTransition = errors.New("invalid timer transition")

	// ErrNothingToFinish is returned by Finish when no running time has been
	// recorded. Zero-length sessions are not worth logging from the timer.
	ErrNothingToFinish = errors.New("no elapsed time to record")
)

type State int

const (
	Idle State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Clock supplies wall-clock instants.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Completed is emitted by a successful Finish.
type Completed struct {
	ClientRef   string
	ProjectName string
	Duration    time.Duration
	FinishedAt  time.Time
}

// DurationMs returns the completed duration in whole milliseconds.
func (c Completed) DurationMs() int64 {
	return c.Duration.Milliseconds()
}

// Timer tracks a single in-progress work interval. It is not safe for
// concurrent use; one goroutine (a UI loop or a coordinator holding a lock)
// owns it.
type Timer struct {
	clock Clock
	state State

	// banked holds time from Running intervals already closed by Pause.
	banked   time.Duration
	runStart time.Time

	clientRef   string
	projectName string

	gen uint64
}

// New returns an idle timer reading instants from clock. A nil clock falls
// back to SystemClock.
func New(clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timer{clock: clock, state: Idle}
}

func (t *Timer) State() State { return t.state }

// Generation changes on every state transition. A tick scheduled under an
// older generation must be ignored by its receiver.
func (t *Timer) Generation() uint64 { return t.gen }

// SetTarget selects the client and project the timer bills against. It may
// be called in any state; the values are read when Finish emits.
func (t *Timer) SetTarget(clientRef, projectName string) {
	t.clientRef = clientRef
	t.projectName = projectName
}

// Target returns the selected client reference and project.
func (t *Timer) Target() (clientRef, projectName string) {
	return t.clientRef, t.projectName
}

// Start begins or resumes timing. Valid from Idle or Paused.
func (t *Timer) Start() error {
	if t.state != Idle && t.state != Paused {
		return fmt.Errorf("start while %s: %w", t.state, ErrInvalidTransition)
	}
	t.gen++
	t.runStart = t.clock.Now()
	t.state = Running
	return nil
}

// Pause banks the current running interval. Valid from Running only.
func (t *Timer) Pause() error {
	if t.state != Running {
		return fmt.Errorf("pause while %s: %w", t.state, ErrInvalidTransition)
	}
	t.gen++
	t.banked += t.sinceRunStart(t.clock.Now())
	t.runStart = time.Time{}
	t.state = Paused
	return nil
}

// Finish closes the interval and returns the completed event, then resets
// the timer to Idle with zero elapsed and the project selection cleared.
// Valid from Running or Paused; a zero total is rejected and leaves the
// timer as it was.
func (t *Timer) Finish() (Completed, error) {
	if t.state != Running && t.state != Paused {
		return Completed{}, fmt.Errorf("finish while %s: %w", t.state, ErrInvalidTransition)
	}

	now := t.clock.Now()
	total := t.banked
	if t.state == Running {
		total += t.sinceRunStart(now)
	}
	if total <= 0 {
		return Completed{}, ErrNothingToFinish
	}

	t.gen++
	t.state = Finished
	ev := Completed{
		ClientRef:   t.clientRef,
		ProjectName: t.projectName,
		Duration:    total,
		FinishedAt:  now,
	}
	t.reset()
	return ev, nil
}

// Elapsed returns the value to display right now: banked time plus the
// open interval while Running.
func (t *Timer) Elapsed() time.Duration {
	switch t.state {
	case Running:
		return t.banked + t.sinceRunStart(t.clock.Now())
	case Paused:
		return t.banked
	default:
		return 0
	}
}

// Tick reports the display value for a periodic refresh scheduled under
// gen. ok is false when the tick is stale or the timer is not running, in
// which case the caller should stop rescheduling.
func (t *Timer) Tick(gen uint64) (elapsed time.Duration, ok bool) {
	if gen != t.gen || t.state != Running {
		return t.Elapsed(), false
	}
	return t.Elapsed(), true
}

func (t *Timer) reset() {
	t.state = Idle
	t.banked = 0
	t.runStart = time.Time{}
	t.projectName = ""
}

func (t *Timer) sinceRunStart(now time.Time) time.Duration {
	d := now.Sub(t.runStart)
	if d < 0 {
		return 0
	}
	return d
}
