package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/textlens/internal/client"
	"github.com/yildizm/textlens/internal/dashboard"
	"github.com/yildizm/textlens/internal/formatter"
	"github.com/yildizm/textlens/internal/logger"
	"github.com/yildizm/textlens/internal/stats"
	wordtable "github.com/yildizm/textlens/internal/table"
)

const (
	textPlaceholder = "Введите текст для анализа"
	pathPlaceholder = "путь к файлу (.txt, .pdf, .epub, .fb2)"

	countColumnWidth = 12
	freqColumnWidth  = 10
	minWordWidth     = 8
	defaultWidth     = 80
	defaultTableRows = 10
)

type focusArea int

const (
	focusText focusArea = iota
	focusPath
	focusUnique
	focusStop
	focusAreas
)

// Options configure the dashboard model
type Options struct {
	Text     string
	FilePath string
	Theme    Theme
	Color    bool
	Context  context.Context
	Logger   *logger.Logger
}

// Model is the interactive text analysis dashboard
type Model struct {
	dash   *dashboard.Dashboard
	ctx    context.Context
	keys   keyMap
	help   help.Model
	styles *Styles
	color  bool
	log    *logger.Logger

	text    textarea.Model
	path    textinput.Model
	unique  table.Model
	stop    table.Model
	spinner spinner.Model

	focus    focusArea
	width    int
	height   int
	quitting bool
}

// NewModel creates a dashboard model around dash
func NewModel(dash *dashboard.Dashboard, opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Theme.Name == "" {
		opts.Theme = DefaultTheme
	}
	styles := NewStyles(opts.Theme, opts.Color)

	ta := textarea.New()
	ta.Placeholder = textPlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(6)
	ta.SetValue(opts.Text)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = pathPlaceholder
	ti.Prompt = "› "
	ti.SetValue(opts.FilePath)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Busy

	m := &Model{
		dash:    dash,
		ctx:     opts.Context,
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  styles,
		color:   opts.Color,
		log:     opts.Logger.WithComponent("tui"),
		text:    ta,
		path:    ti,
		unique:  newWordTable(styles),
		stop:    newWordTable(styles),
		spinner: sp,
		width:   defaultWidth,
	}
	m.resize()
	m.refreshTables()
	return m
}

func newWordTable(styles *Styles) table.Model {
	t := table.New(
		table.WithFocused(false),
		table.WithHeight(defaultTableRows),
	)
	s := table.DefaultStyles()
	s.Header = styles.TableHeader
	s.Selected = styles.TableSelected
	t.SetStyles(s)
	return t
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}
	return m.updateFocused(msg)
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.resize()
	m.refreshTables()
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.AnalyzeText):
		return m, m.startText()
	case key.Matches(msg, m.keys.AnalyzeFile):
		return m, m.startFile()
	case key.Matches(msg, m.keys.NextFocus):
		return m, m.setFocus((m.focus + 1) % focusAreas)
	case key.Matches(msg, m.keys.PrevFocus):
		return m, m.setFocus((m.focus + focusAreas - 1) % focusAreas)
	}

	if m.focus == focusUnique || m.focus == focusStop {
		switch {
		case key.Matches(msg, m.keys.SortWord):
			m.sortFocused(wordtable.ColumnWord)
			return m, nil
		case key.Matches(msg, m.keys.SortCount):
			m.sortFocused(wordtable.ColumnCount)
			return m, nil
		case key.Matches(msg, m.keys.SortFreq):
			m.sortFocused(wordtable.ColumnFrequency)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

func (m *Model) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	done, applied := m.dash.Apply(msg.completion)
	if !applied {
		m.log.Debug("ignoring stale completion %s", msg.completion.Ticket.ID)
		return m, nil
	}
	if done.Err != nil {
		m.log.Warn("%s analysis failed: %v", done.Ticket.Kind, done.Err)
		return m, nil
	}

	m.refreshTables()
	m.unique.GotoTop()
	m.stop.GotoTop()
	return m, nil
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if !m.dash.Busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusText:
		m.text, cmd = m.text.Update(msg)
	case focusPath:
		m.path, cmd = m.path.Update(msg)
	case focusUnique:
		m.unique, cmd = m.unique.Update(msg)
	case focusStop:
		m.stop, cmd = m.stop.Update(msg)
	}
	return m, cmd
}

// startText begins a text analysis. While busy it does nothing.
func (m *Model) startText() tea.Cmd {
	job, ok := m.dash.PrepareText(m.text.Value())
	if !ok {
		return nil
	}
	m.log.Debug("text analysis %s started", job.Ticket().ID)
	return tea.Batch(runJobCommand(m.ctx, job), m.spinner.Tick)
}

// startFile begins a file analysis of the path field. An empty path
// records the no-file error; while busy it does nothing.
func (m *Model) startFile() tea.Cmd {
	var file *client.File
	if path := strings.TrimSpace(m.path.Value()); path != "" {
		file = client.FileFromPath(path)
	}

	job, ok := m.dash.PrepareFile(file)
	if !ok {
		return nil
	}
	m.log.Debug("file analysis %s started", job.Ticket().ID)
	return tea.Batch(runJobCommand(m.ctx, job), m.spinner.Tick)
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.text.Blur()
	m.path.Blur()
	m.unique.Blur()
	m.stop.Blur()

	switch f {
	case focusText:
		return m.text.Focus()
	case focusPath:
		return m.path.Focus()
	case focusUnique:
		m.unique.Focus()
	case focusStop:
		m.stop.Focus()
	}
	return nil
}

func (m *Model) sortFocused(column wordtable.Column) {
	if m.focus == focusStop {
		m.dash.ClickStop(column)
	} else {
		m.dash.ClickUnique(column)
	}
	m.refreshTables()
}

func (m *Model) tableWidth() int {
	if m.width >= 2*defaultWidth {
		return m.width/2 - 4
	}
	return max(m.width-4, minWordWidth+countColumnWidth+freqColumnWidth+6)
}

func (m *Model) resize() {
	inner := max(m.width-4, 20)
	m.text.SetWidth(inner)
	m.path.Width = inner - 2
	m.help.Width = m.width

	rows := defaultTableRows
	if m.height > 0 {
		rows = min(max(m.height/3, 3), 20)
	}
	for _, t := range []*table.Model{&m.unique, &m.stop} {
		t.SetWidth(m.tableWidth())
		t.SetHeight(rows)
	}
}

func (m *Model) refreshTables() {
	m.unique.SetColumns(m.columns(m.dash.UniqueSort()))
	m.unique.SetRows(toRows(m.dash.UniqueRows()))
	m.stop.SetColumns(m.columns(m.dash.StopSort()))
	m.stop.SetRows(toRows(m.dash.StopRows()))
}

func (m *Model) columns(state wordtable.SortState) []table.Column {
	titles := formatter.ColumnHeaders(state)
	wordWidth := max(m.tableWidth()-countColumnWidth-freqColumnWidth-6, minWordWidth)
	return []table.Column{
		{Title: titles[0], Width: wordWidth},
		{Title: titles[1], Width: countColumnWidth},
		{Title: titles[2], Width: freqColumnWidth},
	}
}

func toRows(words []stats.WordStat) []table.Row {
	rows := make([]table.Row, 0, len(words))
	for _, w := range words {
		rows = append(rows, table.Row(formatter.RowCells(w)))
	}
	return rows
}
