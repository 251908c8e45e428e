package coordinator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yildizm/textlens/internal/client"
	"github.com/yildizm/textlens/internal/logger"
	"github.com/yildizm/textlens/internal/stats"
)

// ErrBusy is returned when a submission arrives while another analysis is in flight
var ErrBusy = errors.New("analysis already in progress")

var errInterrupted = errors.New("analysis interrupted")

// Analyzer performs the remote analysis calls
type Analyzer interface {
	AnalyzeText(ctx context.Context, requestID, text string) (*stats.AnalysisResult, error)
	AnalyzeFile(ctx context.Context, requestID string, file *client.File) (*stats.AnalysisResult, error)
}

// Phase is the system-wide busy state. At most one analysis of either kind
// runs at a time.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunningText
	PhaseRunningFile
)

func (p Phase) String() string {
	switch p {
	case PhaseRunningText:
		return "running_text"
	case PhaseRunningFile:
		return "running_file"
	default:
		return "idle"
	}
}

func phaseFor(kind client.Kind) Phase {
	if kind == client.KindFile {
		return PhaseRunningFile
	}
	return PhaseRunningText
}

// Ticket identifies one started analysis
type Ticket struct {
	ID      string
	Kind    client.Kind
	Started time.Time
}

// Request is the payload of one analysis
type Request struct {
	Kind client.Kind
	Text string
	File *client.File
}

// Completion is the outcome of an analysis. Before Finish, Err is whatever
// the analyzer returned; after Finish it is nil or a *client.AnalysisError.
type Completion struct {
	Ticket Ticket
	Result *stats.AnalysisResult
	Err    error
}

// RequestState is the observable state of one request kind
type RequestState struct {
	Kind         client.Kind
	InFlight     bool
	ErrorMessage string
}

// Coordinator serializes analysis requests and owns their loading and error state
type Coordinator struct {
	mu       sync.Mutex
	analyzer Analyzer
	phase    Phase
	current  Ticket
	errors   map[client.Kind]string
	lastKind client.Kind
	newID    func() string
	now      func() time.Time
	log      *logger.Logger
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithLogger sets the coordinator logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Coordinator) {
		if log != nil {
			c.log = log.WithComponent("coordinator")
		}
	}
}

// WithIDGenerator replaces the ticket ID source
func WithIDGenerator(fn func() string) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates an idle coordinator
func New(analyzer Analyzer, opts ...Option) *Coordinator {
	c := &Coordinator{
		analyzer: analyzer,
		errors:   make(map[client.Kind]string, 2),
		newID:    uuid.NewString,
		now:      time.Now,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the current busy state
func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Busy reports whether any analysis is in flight
func (c *Coordinator) Busy() bool {
	return c.Phase() != PhaseIdle
}

// State returns the request state of one kind
func (c *Coordinator) State(kind client.Kind) RequestState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return RequestState{
		Kind:         kind,
		InFlight:     c.phase == phaseFor(kind),
		ErrorMessage: c.errors[kind],
	}
}

// ErrorMessage returns the error of the most recently attempted kind
func (c *Coordinator) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors[c.lastKind]
}

// Begin starts an analysis of kind. It returns false, changing nothing,
// when another analysis is already in flight.
func (c *Coordinator) Begin(kind client.Kind) (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseIdle {
		c.log.Debug("ignoring %s submission while %s", kind, c.phase)
		return Ticket{}, false
	}

	ticket := Ticket{ID: c.newID(), Kind: kind, Started: c.now()}
	c.phase = phaseFor(kind)
	c.current = ticket
	c.errors[kind] = ""
	c.lastKind = kind

	c.log.DebugWithFields("analysis started", []logger.Field{
		logger.F("kind", kind.String()),
		logger.F("request_id", ticket.ID),
	})
	return ticket, true
}

// RejectNoFile records a file analysis attempted without a file. No request
// is started. It returns false when another analysis is in flight.
func (c *Coordinator) RejectNoFile() (*client.AnalysisError, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseIdle {
		return nil, false
	}

	err := client.NoFileSelected()
	c.errors[client.KindFile] = err.UserMessage()
	c.lastKind = client.KindFile
	return err, true
}

// Execute performs the remote call for ticket. It does not touch
// coordinator state and may run off the event loop.
func (c *Coordinator) Execute(ctx context.Context, ticket Ticket, req Request) Completion {
	completion := Completion{Ticket: ticket}
	if req.Kind == client.KindFile {
		completion.Result, completion.Err = c.analyzer.AnalyzeFile(ctx, ticket.ID, req.File)
	} else {
		completion.Result, completion.Err = c.analyzer.AnalyzeText(ctx, ticket.ID, req.Text)
	}
	return completion
}

// Finish releases the busy state for ticket and records the outcome.
// Completions for any ticket other than the current one are rejected as stale.
func (c *Coordinator) Finish(ticket Ticket, result *stats.AnalysisResult, err error) (Completion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseIdle || ticket.ID != c.current.ID {
		c.log.WarnWithFields("discarding stale completion", []logger.Field{
			logger.F("request_id", ticket.ID),
			logger.F("current", c.current.ID),
		})
		return Completion{}, false
	}

	c.phase = PhaseIdle
	c.current = Ticket{}

	if err == nil && result == nil {
		err = client.NewAnalysisError(client.ErrKindMalformedResponse, client.MsgMalformedResponse)
	}

	done := Completion{Ticket: ticket}
	fields := []logger.Field{
		logger.F("kind", ticket.Kind.String()),
		logger.F("request_id", ticket.ID),
		logger.Duration(c.now().Sub(ticket.Started)),
	}

	if err != nil {
		ae := client.Classify(err, ticket.Kind)
		if ae.RequestID == "" {
			ae.RequestID = ticket.ID
		}
		c.errors[ticket.Kind] = ae.UserMessage()
		done.Err = ae
		c.log.WarnWithFields("analysis failed", append(fields, logger.Error(ae)))
		return done, true
	}

	done.Result = result
	c.log.DebugWithFields("analysis completed", fields)
	return done, true
}

// SubmitText runs a text analysis to completion
func (c *Coordinator) SubmitText(ctx context.Context, text string) (*stats.AnalysisResult, error) {
	return c.Submit(ctx, Request{Kind: client.KindText, Text: text})
}

// SubmitFile runs a file analysis to completion. A nil file fails fast
// without starting a request.
func (c *Coordinator) SubmitFile(ctx context.Context, file *client.File) (*stats.AnalysisResult, error) {
	if file == nil {
		ae, ok := c.RejectNoFile()
		if !ok {
			return nil, ErrBusy
		}
		return nil, ae
	}
	return c.Submit(ctx, Request{Kind: client.KindFile, File: file})
}

// Submit runs req through Begin, Execute and Finish. The busy state is
// released even if the analyzer panics.
func (c *Coordinator) Submit(ctx context.Context, req Request) (result *stats.AnalysisResult, err error) {
	ticket, ok := c.Begin(req.Kind)
	if !ok {
		return nil, ErrBusy
	}

	raw := Completion{Ticket: ticket, Err: errInterrupted}
	defer func() {
		done, _ := c.Finish(ticket, raw.Result, raw.Err)
		result, err = done.Result, done.Err
	}()

	raw = c.Execute(ctx, ticket, req)
	return raw.Result, raw.Err
}
