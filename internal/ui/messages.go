package ui

import (
	"time"

	"github.com/joshsymonds/eyemap/internal/screening"
)

// TickMsg is sent periodically to advance the spinner and elapsed time.
type TickMsg time.Time

// startAnalysisMsg begins a new analysis run.
type startAnalysisMsg struct{}

// AnalysisDoneMsg carries the outcome of an analysis run.
type AnalysisDoneMsg struct {
	Result *screening.Result
	Err    error
	Run    int
}

// EventLevel classifies dashboard log events.
type EventLevel int

// Event levels.
const (
	EventInfo EventLevel = iota
	EventWarn
	EventError
)

// Event is one entry in the dashboard activity log.
type Event struct {
	Timestamp time.Time
	Message   string
	Level     EventLevel
}
