package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient holds the demographic header shown alongside a screening.
type Patient struct {
	Name        string `json:"name" yaml:"name"`
	ID          string `json:"id" yaml:"id"`
	DateOfBirth string `json:"date_of_birth,omitempty" yaml:"date_of_birth,omitempty"`
	LastVisit   string `json:"last_visit,omitempty" yaml:"last_visit,omitempty"`
	Age         int    `json:"age,omitempty" yaml:"age,omitempty"`
}

// Screening is the finalized finding set of a single screening pass.
type Screening struct {
	AnalyzedAt time.Time `json:"analyzed_at" yaml:"analyzed_at"`
	ID         string    `json:"id" yaml:"id"`
	Patient    Patient   `json:"patient" yaml:"patient"`
	Findings   []Finding `json:"findings" yaml:"findings"`
}

// NewScreening creates a screening with a generated ID.
func NewScreening(patient Patient, findings []Finding) *Screening {
	return &Screening{
		ID:       uuid.NewString(),
		Patient:  patient,
		Findings: findings,
	}
}

// Summary provides per-category counts for a screening. Reviewed counts every finding a
// clinician looked at; Overridden only those whose level changed.
type Summary struct {
	ByRiskLevel map[string]int `json:"by_risk_level" yaml:"by_risk_level"`
	Total       int            `json:"total" yaml:"total"`
	Reviewed    int            `json:"reviewed" yaml:"reviewed"`
	Overridden  int            `json:"overridden" yaml:"overridden"`
	Highest     RiskCategory   `json:"highest,omitempty" yaml:"highest,omitempty"`
}

// Summarize counts findings per risk category and records the highest one present.
func Summarize(findings []Finding) Summary {
	summary := Summary{
		ByRiskLevel: make(map[string]int, len(riskCategoryNames)),
		Total:       len(findings),
	}
	for _, c := range RiskCategories() {
		summary.ByRiskLevel[c.String()] = 0
	}

	for i := range findings {
		f := &findings[i]
		summary.ByRiskLevel[f.RiskLevel.String()]++
		if f.RiskLevel.MoreSevereThan(summary.Highest) {
			summary.Highest = f.RiskLevel
		}
		if f.IsReviewed() {
			summary.Reviewed++
		}
		if f.IsOverridden() {
			summary.Overridden++
		}
	}

	return summary
}
