package dashboard

import (
	"context"

	"github.com/yildizm/textlens/internal/charts"
	"github.com/yildizm/textlens/internal/client"
	"github.com/yildizm/textlens/internal/coordinator"
	"github.com/yildizm/textlens/internal/logger"
	"github.com/yildizm/textlens/internal/stats"
	"github.com/yildizm/textlens/internal/table"
)

const defaultChartWidth = 40

// Dashboard holds the current analysis result and everything derived from
// it. It is driven from a single goroutine; only Job.Run may execute
// elsewhere.
type Dashboard struct {
	coord      *coordinator.Coordinator
	sorter     *table.Sorter
	board      *charts.Board
	result     *stats.AnalysisResult
	projection charts.Projection
	uniqueSort table.SortState
	stopSort   table.SortState
	log        *logger.Logger
}

type options struct {
	renderer  charts.Renderer
	sorter    *table.Sorter
	log       *logger.Logger
	coordOpts []coordinator.Option
}

// Option configures a Dashboard
type Option func(*options)

// WithRenderer sets the chart renderer
func WithRenderer(r charts.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithSorter sets the table sorter
func WithSorter(s *table.Sorter) Option {
	return func(o *options) { o.sorter = s }
}

// WithLogger sets the dashboard logger
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithCoordinatorOptions passes options through to the request coordinator
func WithCoordinatorOptions(opts ...coordinator.Option) Option {
	return func(o *options) { o.coordOpts = append(o.coordOpts, opts...) }
}

// New creates an empty dashboard backed by analyzer
func New(analyzer coordinator.Analyzer, opts ...Option) *Dashboard {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Discard()
	}
	if o.renderer == nil {
		o.renderer = charts.NewTerminalRenderer(defaultChartWidth)
	}
	if o.sorter == nil {
		o.sorter = table.DefaultSorter()
	}

	log := o.log.WithComponent("dashboard")
	coordOpts := append([]coordinator.Option{coordinator.WithLogger(o.log)}, o.coordOpts...)

	return &Dashboard{
		coord:      coordinator.New(analyzer, coordOpts...),
		sorter:     o.sorter,
		board:      charts.NewBoard(o.renderer, log),
		uniqueSort: table.DefaultSortState(),
		stopSort:   table.DefaultSortState(),
		log:        log,
	}
}

// Busy reports whether an analysis is in flight. Both triggers are
// disabled while it is true.
func (d *Dashboard) Busy() bool {
	return d.coord.Busy()
}

// Phase returns the coordinator phase
func (d *Dashboard) Phase() coordinator.Phase {
	return d.coord.Phase()
}

// ErrorMessage returns the message of the most recent failed attempt, or ""
func (d *Dashboard) ErrorMessage() string {
	return d.coord.ErrorMessage()
}

// State returns the request state of one kind
func (d *Dashboard) State(kind client.Kind) coordinator.RequestState {
	return d.coord.State(kind)
}

// Result returns the last successful result, or nil
func (d *Dashboard) Result() *stats.AnalysisResult {
	return d.result
}

// Job is one prepared analysis
type Job struct {
	coord  *coordinator.Coordinator
	ticket coordinator.Ticket
	req    coordinator.Request
}

// Ticket returns the ticket the job was started with
func (j *Job) Ticket() coordinator.Ticket {
	return j.ticket
}

// Run performs the remote call. It does not touch dashboard state.
func (j *Job) Run(ctx context.Context) (completion coordinator.Completion) {
	defer func() {
		if r := recover(); r != nil {
			completion = coordinator.Completion{
				Ticket: j.ticket,
				Err:    client.NewAnalysisError(client.ErrKindServerRejected, client.FallbackMessage(j.req.Kind)),
			}
		}
	}()
	return j.coord.Execute(ctx, j.ticket, j.req)
}

// PrepareText starts a text analysis. It returns false when busy.
func (d *Dashboard) PrepareText(text string) (*Job, bool) {
	return d.prepare(coordinator.Request{Kind: client.KindText, Text: text})
}

// PrepareFile starts a file analysis. It returns false when busy, and also
// when file is nil, in which case the no-file error is recorded.
func (d *Dashboard) PrepareFile(file *client.File) (*Job, bool) {
	if file == nil {
		d.coord.RejectNoFile()
		return nil, false
	}
	return d.prepare(coordinator.Request{Kind: client.KindFile, File: file})
}

func (d *Dashboard) prepare(req coordinator.Request) (*Job, bool) {
	ticket, ok := d.coord.Begin(req.Kind)
	if !ok {
		return nil, false
	}
	return &Job{coord: d.coord, ticket: ticket, req: req}, true
}

// Apply records a finished job. A successful result replaces the previous
// one and refreshes the charts; a failure keeps the previous result.
// Stale completions are ignored and reported as not applied.
func (d *Dashboard) Apply(c coordinator.Completion) (coordinator.Completion, bool) {
	done, ok := d.coord.Finish(c.Ticket, c.Result, c.Err)
	if !ok || done.Err != nil {
		return done, ok
	}

	d.result = done.Result
	d.projection, _ = charts.Project(done.Result)
	if err := d.board.Show(d.projection); err != nil {
		d.log.Warn("charts not fully rendered: %v", err)
	}

	d.log.InfoWithFields("analysis result applied", []logger.Field{
		logger.F("request_id", done.Ticket.ID),
		logger.F("words", done.Result.Words),
		logger.F("unique", len(done.Result.UniqueWords)),
	})
	return done, true
}

// AnalyzeText runs a text analysis to completion on the calling goroutine
func (d *Dashboard) AnalyzeText(ctx context.Context, text string) error {
	job, ok := d.PrepareText(text)
	if !ok {
		return coordinator.ErrBusy
	}
	return d.runJob(ctx, job)
}

// AnalyzeFile runs a file analysis to completion on the calling goroutine
func (d *Dashboard) AnalyzeFile(ctx context.Context, file *client.File) error {
	if file == nil {
		ae, ok := d.coord.RejectNoFile()
		if !ok {
			return coordinator.ErrBusy
		}
		return ae
	}
	job, ok := d.PrepareFile(file)
	if !ok {
		return coordinator.ErrBusy
	}
	return d.runJob(ctx, job)
}

func (d *Dashboard) runJob(ctx context.Context, job *Job) error {
	done, _ := d.Apply(job.Run(ctx))
	return done.Err
}

// ClickUnique applies a header click to the unique-words table
func (d *Dashboard) ClickUnique(column table.Column) {
	d.uniqueSort = table.Click(d.uniqueSort, column)
}

// ClickStop applies a header click to the stop-words table
func (d *Dashboard) ClickStop(column table.Column) {
	d.stopSort = table.Click(d.stopSort, column)
}

// SetUniqueSort replaces the unique-words sort state
func (d *Dashboard) SetUniqueSort(state table.SortState) {
	d.uniqueSort = state
}

// SetStopSort replaces the stop-words sort state
func (d *Dashboard) SetStopSort(state table.SortState) {
	d.stopSort = state
}

// UniqueSort returns the unique-words sort state
func (d *Dashboard) UniqueSort() table.SortState {
	return d.uniqueSort
}

// StopSort returns the stop-words sort state
func (d *Dashboard) StopSort() table.SortState {
	return d.stopSort
}

// UniqueRows returns the unique words in display order
func (d *Dashboard) UniqueRows() []stats.WordStat {
	if d.result == nil {
		return nil
	}
	return d.sorter.Sort(d.result.UniqueWords, d.uniqueSort)
}

// StopRows returns the stop words in display order
func (d *Dashboard) StopRows() []stats.WordStat {
	if d.result == nil {
		return nil
	}
	return d.sorter.Sort(d.result.Stopwords, d.stopSort)
}

// Charts returns the chart slots in display order
func (d *Dashboard) Charts() []*charts.Slot {
	return d.board.Slots()
}

// Close disposes every chart rendering
func (d *Dashboard) Close() error {
	return d.board.Close()
}
