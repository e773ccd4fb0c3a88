// Package dashboard coordinates the per-user view: the client list, the
// hours summary, the timer and the transient result of the last action.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/hours"
	"github.com/alexanderramin/tempo/internal/record"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/timer"
)

// ErrClosed is returned by Load and Dispatch after Close.
var ErrClosed = errors.New("dashboard closed")

type CommandKind int

const (
	StartTimer CommandKind = iota
	PauseTimer
	FinishTimer
	SubmitSession
	CreateClient
	SelectTarget
)

func (k CommandKind) String() string {
	switch k {
	case StartTimer:
		return "start-timer"
	case PauseTimer:
		return "pause-timer"
	case FinishTimer:
		return "finish-timer"
	case SubmitSession:
		return "submit-session"
	case CreateClient:
		return "create-client"
	case SelectTarget:
		return "select-target"
	default:
		return "unknown"
	}
}

// Command is one user action. Only the fields for its Kind are read.
type Command struct {
	Kind CommandKind

	// SelectTarget
	ClientRef   string
	ProjectName string

	// SubmitSession
	Manual record.ManualInput

	// CreateClient
	Client service.ClientInput
}

// Message is the transient outcome of the last dispatched command.
type Message struct {
	Text    string
	Failure bool
}

// Snapshot is a consistent copy of the coordinator's state.
type Snapshot struct {
	// Ready is false until a load has published both clients and sessions.
	Ready       bool
	Clients     []*domain.Client
	Summary     []hours.ClientSummary
	LowCount    int
	TimerState  timer.State
	Elapsed     time.Duration
	ClientRef   string
	ProjectName string
	Message     Message
	// Stale is set when a write succeeded but the reload after it failed;
	// the next successful load clears it.
	Stale bool
}

// Coordinator is bound to one signed-in owner. Dispatch calls are
// serialized; Load may run concurrently with them and the most recently
// started load wins.
type Coordinator struct {
	ownerID  string
	clients  service.ClientService
	sessions service.SessionService

	dispatchMu sync.Mutex

	mu          sync.Mutex
	timer       *timer.Timer
	gen         uint64
	closed      bool
	ready       bool
	clientList  []*domain.Client
	sessionList []*domain.Session
	summary     []hours.ClientSummary
	msg         Message
	stale       bool
}

func NewCoordinator(ownerID string, clients service.ClientService, sessions service.SessionService, clock timer.Clock) *Coordinator {
	return &Coordinator{
		ownerID:  ownerID,
		clients:  clients,
		sessions: sessions,
		timer:    timer.New(clock),
	}
}

// Load fetches clients and sessions concurrently and publishes them only
// once both have arrived. A load superseded by a later one, or finishing
// after Close, is discarded.
func (c *Coordinator) Load(ctx context.Context) error {
	return c.reload(ctx, true, true)
}

func (c *Coordinator) reload(ctx context.Context, wantClients, wantSessions bool) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !c.ready {
		wantClients, wantSessions = true, true
	}
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	var (
		wg                 sync.WaitGroup
		clientList         []*domain.Client
		sessionList        []*domain.Session
		clientErr, sessErr error
	)
	if wantClients {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clientList, clientErr = c.clients.List(ctx, c.ownerID)
		}()
	}
	if wantSessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sessionList, sessErr = c.sessions.List(ctx, c.ownerID)
		}()
	}
	wg.Wait()

	if err := errors.Join(clientErr, sessErr); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if gen != c.gen {
		return nil
	}
	if wantClients {
		c.clientList = clientList
	}
	if wantSessions {
		c.sessionList = sessionList
	}
	c.summary = hours.Summarize(c.clientList, c.sessionList)
	c.ready = true
	c.stale = false
	return nil
}

// Close discards the results of any load still in flight and rejects
// further commands.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.gen++
	c.mu.Unlock()
}

// Dispatch applies cmd and returns the message it produced. Failures are
// reported in the message; the returned error is non-nil only when the
// coordinator is closed.
func (c *Coordinator) Dispatch(ctx context.Context, cmd Command) (Message, error) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Message{}, ErrClosed
	}
	c.msg = Message{}
	c.mu.Unlock()

	text, err := c.apply(ctx, cmd)
	msg := Message{Text: text}
	if err != nil {
		msg = Message{Text: domain.UserMessage(err), Failure: true}
		var lost *unloggedRunError
		if errors.As(err, &lost) {
			msg.Text += fmt.Sprintf(" (could not log %s)", formatClock(lost.Duration))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return msg, ErrClosed
	}
	c.msg = msg
	return msg, nil
}

func (c *Coordinator) apply(ctx context.Context, cmd Command) (string, error) {
	switch cmd.Kind {
	case SelectTarget:
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.timer.State() == timer.Running || c.timer.State() == timer.Paused {
			return "", domain.NewValidationError("target", "cannot change while the timer is active")
		}
		c.timer.SetTarget(strings.TrimSpace(cmd.ClientRef), strings.TrimSpace(cmd.ProjectName))
		return "Target selected", nil

	case StartTimer:
		c.mu.Lock()
		defer c.mu.Unlock()
		if ref, project := c.timer.Target(); ref == "" || project == "" {
			return "", domain.NewValidationError("target", "select a client and project first")
		}
		if err := c.timer.Start(); err != nil {
			return "", err
		}
		return "Timer started", nil

	case PauseTimer:
		c.mu.Lock()
		defer c.mu.Unlock()
		if err := c.timer.Pause(); err != nil {
			return "", err
		}
		return "Timer paused", nil

	case FinishTimer:
		return c.finishTimer(ctx)

	case SubmitSession:
		s, err := record.FromManual(cmd.Manual, c.ownerID)
		if err != nil {
			return "", err
		}
		if err := c.sessions.Log(ctx, s); err != nil {
			return "", err
		}
		return c.refreshAfterWrite(ctx, false, true, fmt.Sprintf("Logged %.2fh for %s", s.Hours, s.ClientName)), nil

	case CreateClient:
		cl, err := c.clients.Create(ctx, c.ownerID, cmd.Client)
		if err != nil {
			return "", err
		}
		return c.refreshAfterWrite(ctx, true, false, fmt.Sprintf("Client %s added", cl.Name)), nil
	}
	return "", fmt.Errorf("unknown command %d", cmd.Kind)
}

func (c *Coordinator) finishTimer(ctx context.Context) (string, error) {
	c.mu.Lock()
	ev, err := c.timer.Finish()
	c.mu.Unlock()
	if err != nil {
		return "", err
	}

	// The timer has already reset; from here on a failure loses the run, so
	// its duration goes into the message for manual re-entry.
	s, err := record.FromTimer(ev, c.ownerID)
	if err != nil {
		return "", &unloggedRunError{Duration: ev.Duration, Err: err}
	}
	if err := c.sessions.Log(ctx, s); err != nil {
		return "", &unloggedRunError{Duration: ev.Duration, Err: err}
	}
	return c.refreshAfterWrite(ctx, false, true, fmt.Sprintf("Logged %.2fh for %s", s.Hours, s.ClientName)), nil
}

// refreshAfterWrite reloads what a stored write touched. The write stands
// even if the reload fails, so the result stays a success and the snapshot
// is marked stale instead.
func (c *Coordinator) refreshAfterWrite(ctx context.Context, wantClients, wantSessions bool, text string) string {
	err := c.reload(ctx, wantClients, wantSessions)
	if err == nil || errors.Is(err, ErrClosed) {
		return text
	}
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
	return text + " (refresh failed)"
}

// unloggedRunError carries the duration of a finished run that was not
// stored.
type unloggedRunError struct {
	Duration time.Duration
	Err      error
}

func (e *unloggedRunError) Error() string {
	return fmt.Sprintf("logging %s run: %v", formatClock(e.Duration), e.Err)
}

func (e *unloggedRunError) Unwrap() error { return e.Err }

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, d/time.Second)
}

// Tick reports the running elapsed time for a tick scheduled at gen. A tick
// from before the last pause or finish reports ok=false.
func (c *Coordinator) Tick(gen uint64) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.Tick(gen)
}

// TimerGeneration returns the generation a newly scheduled tick should carry.
func (c *Coordinator) TimerGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.Generation()
}

func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	ref, project := c.timer.Target()
	snap := Snapshot{
		Ready:       c.ready,
		TimerState:  c.timer.State(),
		Elapsed:     c.timer.Elapsed(),
		ClientRef:   ref,
		ProjectName: project,
		Message:     c.msg,
		Stale:       c.stale,
	}
	if c.ready {
		snap.Clients = append([]*domain.Client(nil), c.clientList...)
		snap.Summary = append([]hours.ClientSummary(nil), c.summary...)
		snap.LowCount = hours.LowCount(c.summary)
	}
	return snap
}
