package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rusenback/sysmon/internal/logging"
	"github.com/rusenback/sysmon/internal/model"
	"github.com/rusenback/sysmon/internal/system"
)

const historyPoints = 30

// Sampler produces one cycle per call. Implemented by engine.Sampler.
type Sampler interface {
	Sample(ctx context.Context) (model.Cycle, error)
}

// TerminationObserver is told the outcome of every termination request
type TerminationObserver interface {
	ObserveTermination(err error)
}

// Config holds the control loop settings
type Config struct {
	Refresh  time.Duration
	TopN     int
	SortMode model.SortMode
	Host     string
	Logger   logging.Logger
	Observer TerminationObserver
}

// Model represents the TUI application state
type Model struct {
	ctx        context.Context
	sampler    Sampler
	terminator system.Terminator
	log        logging.Logger
	observer   TerminationObserver

	refresh  time.Duration
	topN     int
	host     string
	sortMode model.SortMode

	cycle    *model.Cycle
	err      error
	message  string
	msgIsErr bool

	// sampling is true while a cycle is in flight; at most one runs at a time
	sampling bool
	tickID   int

	cpuHistory    history
	healthHistory history

	input  textinput.Model
	keys   keyMap
	styles Styles
	width  int
}

// Message types for Bubbletea update loop
type tickMsg struct {
	id int
}

type cycleMsg struct {
	cycle model.Cycle
	err   error
}

type actionMsg struct {
	pid     int
	message string
	err     error
}

// NewModel creates a new TUI model. ctx bounds every sampling cycle.
func NewModel(ctx context.Context, sampler Sampler, terminator system.Terminator, cfg Config) Model {
	if cfg.Refresh <= 0 {
		cfg.Refresh = 3 * time.Second
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}

	ti := textinput.New()
	ti.Prompt = "Enter option: "
	ti.Placeholder = "0"
	ti.CharLimit = 10
	ti.Width = 12
	ti.Focus()

	return Model{
		ctx:           ctx,
		sampler:       sampler,
		terminator:    terminator,
		log:           cfg.Logger,
		observer:      cfg.Observer,
		refresh:       cfg.Refresh,
		topN:          cfg.TopN,
		host:          cfg.Host,
		sortMode:      cfg.SortMode,
		sampling:      true, // Init starts the first cycle
		cpuHistory:    newHistory(historyPoints),
		healthHistory: newHistory(historyPoints),
		input:         ti,
		keys:          defaultKeyMap(),
		styles:        DefaultStyles(),
	}
}

// Init starts the first sampling cycle
func (m Model) Init() tea.Cmd {
	return tea.Batch(sampleCmd(m.ctx, m.sampler), textinput.Blink)
}

// SortMode returns the current ranking
func (m Model) SortMode() model.SortMode {
	return m.sortMode
}
