// Package models contains the data structures shared by the eyemap screening engine.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFinding is wrapped by every finding validation failure.
var ErrInvalidFinding = errors.New("invalid finding")

// Finding is one pathology's screening result as produced by an upstream grader.
type Finding struct {
	Name       string       `json:"name" yaml:"name"`
	Details    string       `json:"details,omitempty" yaml:"details,omitempty"`
	ReviewNote string       `json:"review_note,omitempty" yaml:"review_note,omitempty"`
	RiskLevel  RiskCategory `json:"risk_level" yaml:"risk_level"`
	// OriginalRiskLevel is the graded level, set once a clinician has reviewed the finding.
	OriginalRiskLevel RiskCategory `json:"original_risk_level,omitempty" yaml:"original_risk_level,omitempty"`
	Confidence        int          `json:"confidence" yaml:"confidence"`
}

// Validate checks that a finding satisfies the engine's input contract.
func (f *Finding) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: missing required field: name", ErrInvalidFinding)
	}
	if !f.RiskLevel.IsValid() {
		return fmt.Errorf("%w: %s: invalid risk level %s", ErrInvalidFinding, f.Name, f.RiskLevel)
	}
	if f.Confidence < 0 || f.Confidence > 100 {
		return fmt.Errorf("%w: %s: confidence %d outside [0, 100]", ErrInvalidFinding, f.Name, f.Confidence)
	}
	return nil
}

// HasDetails reports whether the finding carries a supplementary note.
func (f *Finding) HasDetails() bool {
	return f.Details != ""
}

// IsReviewed reports whether a clinician reviewed the finding, whether or not the level changed.
func (f *Finding) IsReviewed() bool {
	return f.OriginalRiskLevel.IsValid()
}

// IsOverridden reports whether a clinician override changed the risk level.
func (f *Finding) IsOverridden() bool {
	return f.OriginalRiskLevel.IsValid() && f.OriginalRiskLevel != f.RiskLevel
}

// ValidateFindings validates every finding and joins all failures.
func ValidateFindings(findings []Finding) error {
	var errs []error
	for i := range findings {
		if err := findings[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("finding %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
