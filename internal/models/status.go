package models

import (
	"fmt"
	"time"
)

// ScreeningStatus tracks the lifecycle of one screening pass.
type ScreeningStatus struct {
	StartTime   time.Time `json:"start_time"`
	ScreeningID string    `json:"screening_id"`
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	ElapsedTime string    `json:"elapsed_time,omitempty"`
}

// Screening status constants.
const (
	StatusPending   = "pending"
	StatusAnalyzing = "analyzing"
	StatusComplete  = "complete"
	StatusFailed    = "failed"
)

// NewScreeningStatus creates a pending status for a screening.
func NewScreeningStatus(screeningID string) *ScreeningStatus {
	return &ScreeningStatus{
		ScreeningID: screeningID,
		Status:      StatusPending,
		StartTime:   time.Now(),
	}
}

// SetAnalyzing marks the screening as in progress.
func (s *ScreeningStatus) SetAnalyzing(message string) {
	s.Status = StatusAnalyzing
	s.Message = message
	s.updateElapsedTime()
}

// SetCompleted marks the screening as done and records how many recommendations it produced.
func (s *ScreeningStatus) SetCompleted(recommendations int) {
	s.Status = StatusComplete
	switch recommendations {
	case 0:
		s.Message = "No recommendations"
	case 1:
		s.Message = "1 recommendation"
	default:
		s.Message = fmt.Sprintf("%d recommendations", recommendations)
	}
	s.updateElapsedTime()
}

// SetFailed marks the screening as failed.
func (s *ScreeningStatus) SetFailed(err error) {
	s.Status = StatusFailed
	if err != nil {
		s.Message = err.Error()
	}
	s.updateElapsedTime()
}

// IsTerminal reports whether the screening has finished, successfully or not.
func (s *ScreeningStatus) IsTerminal() bool {
	return s.Status == StatusComplete || s.Status == StatusFailed
}

func (s *ScreeningStatus) updateElapsedTime() {
	elapsed := time.Since(s.StartTime)
	if elapsed < time.Minute {
		s.ElapsedTime = elapsed.Round(time.Second).String()
	} else {
		minutes := int(elapsed.Minutes())
		seconds := int(elapsed.Seconds()) % 60
		s.ElapsedTime = fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}
