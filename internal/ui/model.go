// Package ui implements the interactive terminal dashboard: an analyzing spinner followed by
// the risk matrix, legend and recommendations of a screening.
package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshsymonds/eyemap/internal/models"
	"github.com/joshsymonds/eyemap/internal/screening"
)

// Phase is the dashboard's current screen.
type Phase string

// Dashboard phases.
const (
	PhaseAnalyzing Phase = "analyzing"
	PhaseResults   Phase = "results"
	PhaseFailed    Phase = "failed"
)

// Model represents the dashboard state.
type Model struct {
	startTime time.Time
	parent    context.Context
	err       error
	analyzer  *screening.Analyzer
	screening *models.Screening
	result    *screening.Result
	events    *EventLog
	cancel    context.CancelFunc
	phase     Phase
	run       int
	frame     int
	selected  int
	width     int
	height    int
	details   bool
	stopped   bool
}

// NewModel creates a dashboard that analyzes s with analyzer once started.
func NewModel(ctx context.Context, analyzer *screening.Analyzer, s *models.Screening) Model {
	return Model{
		parent:    ctx,
		analyzer:  analyzer,
		screening: s,
		events:    NewEventLog(5),
		phase:     PhaseAnalyzing,
		startTime: time.Now(),
	}
}

// Phase returns the current phase.
func (m Model) Phase() Phase { return m.phase }

// Result returns the last completed result, if any.
func (m Model) Result() *screening.Result { return m.result }

// Err returns the error of the last failed run, if any.
func (m Model) Err() error { return m.err }

// Stopped reports whether the user quit the dashboard.
func (m Model) Stopped() bool { return m.stopped }

// Init starts the first analysis run and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), func() tea.Msg { return startAnalysisMsg{} })
}

// tickCmd returns a command that sends a tick message.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// startAnalysis cancels any run in flight and returns the command for a new one.
func (m *Model) startAnalysis() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}

	parent := m.parent
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	m.cancel = cancel
	m.run++
	m.phase = PhaseAnalyzing
	m.err = nil
	m.startTime = time.Now()
	m.addEvent(EventInfo, "Analyzing fundus image")

	run := m.run
	analyzer := m.analyzer
	s := m.screening
	return func() tea.Msg {
		result, err := analyzer.Analyze(ctx, s)
		return AnalysisDoneMsg{Result: result, Err: err, Run: run}
	}
}

func (m *Model) finishAnalysis(msg AnalysisDoneMsg) {
	if msg.Run != m.run {
		return
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	if msg.Err != nil {
		m.phase = PhaseFailed
		m.err = msg.Err
		m.addEvent(EventError, fmt.Sprintf("Analysis failed: %v", msg.Err))
		return
	}

	m.phase = PhaseResults
	m.result = msg.Result
	m.selected = 0
	m.details = false
	m.addEvent(EventInfo, fmt.Sprintf("Analysis complete: %s", recommendationCount(len(msg.Result.Recommendations))))
	if s := msg.Result.Summary; s.Reviewed > 0 {
		m.addEvent(EventWarn, fmt.Sprintf("%d clinician reviews applied, %d changed risk level", s.Reviewed, s.Overridden))
	}
}

func recommendationCount(n int) string {
	if n == 1 {
		return "1 recommendation"
	}
	return fmt.Sprintf("%d recommendations", n)
}

func (m *Model) addEvent(level EventLevel, message string) {
	if m.events == nil {
		m.events = NewEventLog(5)
	}
	m.events.Add(Event{Timestamp: time.Now(), Level: level, Message: message})
}

func (m *Model) quit() tea.Cmd {
	m.stopped = true
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	return tea.Quit
}

// Update handles all incoming messages and updates the model accordingly.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startAnalysisMsg:
		return m, m.startAnalysis()

	case AnalysisDoneMsg:
		m.finishAnalysis(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if m.phase == PhaseAnalyzing {
			m.frame = (m.frame + 1) % len(spinnerFrames)
		}
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, m.quit()
	case tea.KeyUp:
		m.moveSelection(-1)
		return m, nil
	case tea.KeyDown:
		m.moveSelection(1)
		return m, nil
	case tea.KeyEnter:
		if m.phase == PhaseResults {
			m.details = !m.details
		}
		return m, nil
	case tea.KeyEsc:
		m.details = false
		return m, nil
	}

	switch msg.String() {
	case "q", "Q":
		return m, m.quit()
	case "r", "R":
		if m.phase == PhaseAnalyzing {
			return m, nil
		}
		return m, m.startAnalysis()
	case "k":
		m.moveSelection(-1)
	case "j":
		m.moveSelection(1)
	}

	return m, nil
}

func (m *Model) moveSelection(delta int) {
	if m.phase != PhaseResults || m.result == nil || len(m.result.Findings) == 0 {
		return
	}
	m.selected = max(0, min(m.selected+delta, len(m.result.Findings)-1))
}

// Run starts the dashboard program and blocks until the user quits.
func Run(ctx context.Context, analyzer *screening.Analyzer, s *models.Screening, opts ...tea.ProgramOption) (Model, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(NewModel(ctx, analyzer, s), opts...).Run()
	if err != nil {
		return Model{}, fmt.Errorf("running dashboard: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("unexpected dashboard model %T", final)
	}
	return m, nil
}
