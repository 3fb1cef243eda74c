package screening

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/eyemap/internal/classifier"
	"github.com/joshsymonds/eyemap/internal/config"
	"github.com/joshsymonds/eyemap/internal/models"
	"github.com/joshsymonds/eyemap/pkg/logger"
)

func sampleScreening() *models.Screening {
	return models.NewScreening(
		models.Patient{Name: "Sarah Johnson", ID: "PT-2024-0847", Age: 56},
		[]models.Finding{
			{Name: "Age-Related Macular Degeneration (AMD)", RiskLevel: models.RiskLow, Confidence: 92},
			{Name: "Diabetic Retinopathy", RiskLevel: models.RiskModerate, Confidence: 78},
			{Name: "Hypertensive Angiopathy", RiskLevel: models.RiskVeryHigh, Confidence: 94},
			{Name: "Hypertensive Angiosclerosis", RiskLevel: models.RiskHigh, Confidence: 85},
		},
	)
}

func fixedClock() time.Time {
	return time.Date(2024, 12, 17, 10, 23, 0, 0, time.UTC)
}

func TestAnalyzer_Analyze(t *testing.T) {
	log := logger.NewMockLogger()
	analyzer := NewAnalyzer(log, WithClock(fixedClock))
	s := sampleScreening()

	result, err := analyzer.Analyze(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, fixedClock(), result.Screening.AnalyzedAt)
	assert.Equal(t, s.ID, result.Screening.ID)
	assert.True(t, s.AnalyzedAt.IsZero(), "input screening must not be modified")
	assert.Equal(t, Disclaimer, result.Disclaimer)

	require.Len(t, result.Findings, 4)
	assert.Equal(t, "Low Risk", result.Findings[0].Style.Label)
	assert.Equal(t, classifier.ColorRed, result.Findings[2].Style.Color)
	assert.Equal(t, "Hypertensive Angiopathy", result.Findings[2].Name)

	require.Len(t, result.Recommendations, 3)
	assert.Equal(t, models.PriorityUrgent, result.Recommendations[0].Priority)
	assert.Equal(t, models.PriorityHigh, result.Recommendations[1].Priority)
	assert.Equal(t, models.PriorityNormal, result.Recommendations[2].Priority)

	assert.Equal(t, 4, result.Summary.Total)
	assert.Equal(t, models.RiskVeryHigh, result.Summary.Highest)

	assert.True(t, log.HasMessage("INFO", "Starting screening"))
	assert.True(t, log.HasMessage("INFO", "Screening complete"))

	for _, msg := range *log.Messages {
		require.GreaterOrEqual(t, len(msg.Args), 4, msg.Msg)
		assert.Equal(t, []any{"screening_id", s.ID, "patient_id", s.Patient.ID}, msg.Args[:4], msg.Msg)
	}
}

func TestAnalyzer_EmptyScreening(t *testing.T) {
	analyzer := NewAnalyzer(logger.NewMockLogger())

	result, err := analyzer.Analyze(context.Background(), models.NewScreening(models.Patient{}, nil))
	require.NoError(t, err)

	assert.Empty(t, result.Findings)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "All pathologies within normal range", result.Recommendations[0].Title)
}

func TestAnalyzer_InvalidFinding(t *testing.T) {
	log := logger.NewMockLogger()
	analyzer := NewAnalyzer(log)

	s := models.NewScreening(models.Patient{}, []models.Finding{
		{Name: "Glaucoma", RiskLevel: models.RiskCategory(7), Confidence: 50},
	})

	result, err := analyzer.Analyze(context.Background(), s)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrInvalidFinding)
	assert.True(t, log.HasMessage("ERROR", "Screening rejected"))
}

func TestAnalyzer_Overrides(t *testing.T) {
	analyzer := NewAnalyzer(logger.NewMockLogger(), WithOverrides([]config.RiskOverride{
		{Name: "Diabetic Retinopathy", RiskLevel: models.RiskHigh, Reason: "Progression", ReviewedBy: "dr.lee"},
	}))

	s := sampleScreening()
	result, err := analyzer.Analyze(context.Background(), s)
	require.NoError(t, err)

	dr := result.Findings[1]
	assert.Equal(t, models.RiskHigh, dr.RiskLevel)
	assert.Equal(t, models.RiskModerate, dr.OriginalRiskLevel)
	assert.Equal(t, "Progression (dr.lee)", dr.ReviewNote)
	assert.Equal(t, "High Risk", dr.Style.Label)

	titles := make([]string, 0, len(result.Recommendations))
	for _, r := range result.Recommendations {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{
		"Immediate attention required for Hypertensive Angiopathy",
		"Follow-up required for Diabetic Retinopathy",
		"Follow-up required for Hypertensive Angiosclerosis",
	}, titles)
	assert.Equal(t, 1, result.Summary.Overridden)
	assert.Equal(t, 1, result.Summary.Reviewed)

	assert.Equal(t, models.RiskModerate, s.Findings[1].RiskLevel, "input findings must not be modified")
}

func TestAnalyzer_Delay(t *testing.T) {
	analyzer := NewAnalyzer(logger.NewMockLogger(), WithDelay(20*time.Millisecond))

	start := time.Now()
	_, err := analyzer.Analyze(context.Background(), sampleScreening())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestAnalyzer_CancelledDuringDelay(t *testing.T) {
	log := logger.NewMockLogger()
	analyzer := NewAnalyzer(log, WithDelay(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	result, err := analyzer.Analyze(ctx, sampleScreening())
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, log.HasMessage("WARN", "Screening cancelled"))
}

func TestAnalyzer_Idempotent(t *testing.T) {
	analyzer := NewAnalyzer(logger.NewMockLogger(), WithClock(fixedClock))
	s := sampleScreening()

	first, err := analyzer.Analyze(context.Background(), s)
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNewAnalyzerFromConfig(t *testing.T) {
	cfg := &config.Config{
		Patient: models.Patient{Name: "Sarah Johnson", ID: "PT-2024-0847"},
		Findings: []models.Finding{
			{Name: "Glaucoma", RiskLevel: models.RiskLow, Confidence: 88},
		},
		RiskOverrides: []config.RiskOverride{
			{Name: "Glaucoma", RiskLevel: models.RiskModerate, Reason: "Family history"},
		},
	}

	analyzer := NewAnalyzerFromConfig(cfg, logger.NewMockLogger())
	s := ScreeningFromConfig(cfg)
	assert.Equal(t, "PT-2024-0847", s.Patient.ID)
	assert.NotEmpty(t, s.ID)

	result, err := analyzer.Analyze(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Glaucoma showing moderate risk levels.", result.Recommendations[0].Description)

	assert.Equal(t, models.RiskLow, cfg.Findings[0].RiskLevel)
}

func TestClassify(t *testing.T) {
	classified, err := Classify([]models.Finding{
		{Name: "A", RiskLevel: models.RiskModerate},
		{Name: "B", RiskLevel: models.RiskLow},
	})
	require.NoError(t, err)
	require.Len(t, classified, 2)
	assert.Equal(t, classifier.IconWarning, classified[0].Style.Icon)
	assert.Equal(t, classifier.IconCheck, classified[1].Style.Icon)

	_, err = Classify([]models.Finding{{Name: "bad"}})
	assert.ErrorIs(t, err, classifier.ErrInvalidCategory)
}
