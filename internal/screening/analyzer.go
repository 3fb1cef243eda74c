// Package screening runs one screening pass: it finalizes the finding set, classifies
// every finding for display and generates the recommendation list.
package screening

import (
	"context"
	"fmt"
	"time"

	"github.com/joshsymonds/eyemap/internal/classifier"
	"github.com/joshsymonds/eyemap/internal/config"
	"github.com/joshsymonds/eyemap/internal/models"
	"github.com/joshsymonds/eyemap/internal/recommendation"
	"github.com/joshsymonds/eyemap/pkg/logger"
)

// Disclaimer accompanies every rendered result.
const Disclaimer = "This AI-powered analysis is intended to assist clinical decision-making and should not " +
	"replace professional medical judgment. Always confirm findings with comprehensive " +
	"clinical examination and additional diagnostic tests as needed."

// ClassifiedFinding is a finding paired with its display style.
type ClassifiedFinding struct {
	Style classifier.SeverityStyle `json:"style" yaml:"style"`
	models.Finding `yaml:",inline"`
}

// Result is the complete output of a screening pass.
type Result struct {
	Screening       *models.Screening       `json:"screening" yaml:"screening"`
	Summary         models.Summary          `json:"summary" yaml:"summary"`
	Disclaimer      string                  `json:"disclaimer" yaml:"disclaimer"`
	Findings        []ClassifiedFinding     `json:"findings" yaml:"findings"`
	Recommendations []models.Recommendation `json:"recommendations" yaml:"recommendations"`
}

// Analyzer orchestrates screening passes.
type Analyzer struct {
	logger    logger.Logger
	now       func() time.Time
	overrides []config.RiskOverride
	delay     time.Duration
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDelay makes Analyze wait d before producing results, mirroring grader latency.
func WithDelay(d time.Duration) Option {
	return func(a *Analyzer) { a.delay = d }
}

// WithOverrides applies clinician risk overrides before classification.
func WithOverrides(overrides []config.RiskOverride) Option {
	return func(a *Analyzer) { a.overrides = overrides }
}

// WithClock sets the time source used for AnalyzedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(log logger.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewAnalyzerFromConfig creates an analyzer using the screening file's analysis settings and overrides.
func NewAnalyzerFromConfig(cfg *config.Config, log logger.Logger, opts ...Option) *Analyzer {
	base := []Option{
		WithDelay(cfg.Analysis.Delay),
		WithOverrides(cfg.RiskOverrides),
	}
	return NewAnalyzer(log, append(base, opts...)...)
}

// ScreeningFromConfig builds the screening described by a screening file.
func ScreeningFromConfig(cfg *config.Config) *models.Screening {
	findings := make([]models.Finding, len(cfg.Findings))
	copy(findings, cfg.Findings)
	return models.NewScreening(cfg.Patient, findings)
}

// Analyze runs one screening pass. The input screening is not modified.
func (a *Analyzer) Analyze(ctx context.Context, s *models.Screening) (*Result, error) {
	log := logger.WithScreening(a.logger, s.ID, s.Patient.ID)
	status := models.NewScreeningStatus(s.ID)

	if err := models.ValidateFindings(s.Findings); err != nil {
		status.SetFailed(err)
		log.Error("Screening rejected", "error", err)
		return nil, fmt.Errorf("validating findings: %w", err)
	}

	status.SetAnalyzing("Analyzing fundus image")
	log.Info("Starting screening", "findings", len(s.Findings), "overrides", len(a.overrides))

	if err := a.wait(ctx); err != nil {
		status.SetFailed(err)
		log.Warn("Screening cancelled", "error", err)
		return nil, err
	}

	findings := ApplyOverrides(s.Findings, a.overrides, log)

	classified, err := Classify(findings)
	if err != nil {
		status.SetFailed(err)
		return nil, err
	}

	recs := recommendation.Generate(findings)

	finalized := *s
	finalized.Findings = findings
	finalized.AnalyzedAt = a.now()

	result := &Result{
		Screening:       &finalized,
		Findings:        classified,
		Recommendations: recs,
		Summary:         models.Summarize(findings),
		Disclaimer:      Disclaimer,
	}

	status.SetCompleted(len(recs))
	log.Info("Screening complete",
		"recommendations", len(recs),
		"highest_risk", result.Summary.Highest.String(),
		"elapsed", status.ElapsedTime)

	return result, nil
}

func (a *Analyzer) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(a.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Classify pairs every finding with its severity style, preserving order.
func Classify(findings []models.Finding) ([]ClassifiedFinding, error) {
	out := make([]ClassifiedFinding, 0, len(findings))
	for _, f := range findings {
		style, err := classifier.Classify(f.RiskLevel)
		if err != nil {
			return nil, fmt.Errorf("classifying %s: %w", f.Name, err)
		}
		out = append(out, ClassifiedFinding{Finding: f, Style: style})
	}
	return out, nil
}
