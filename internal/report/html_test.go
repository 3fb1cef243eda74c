package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/eyemap/internal/classifier"
	"github.com/joshsymonds/eyemap/internal/config"
	"github.com/joshsymonds/eyemap/internal/models"
	"github.com/joshsymonds/eyemap/internal/screening"
	"github.com/joshsymonds/eyemap/pkg/logger"
)

func TestHTMLGenerator_Render(t *testing.T) {
	gen := NewHTMLGenerator(logger.NewMockLogger())
	gen.now = func() time.Time { return time.Date(2024, 12, 18, 9, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	require.NoError(t, gen.Render(&buf, testResult(t)))
	html := buf.String()

	tests := []struct {
		name     string
		contains string
	}{
		{"patient name in title", "<title>Retinal Screening Report - Sarah Johnson</title>"},
		{"patient id", "PT-2024-0847"},
		{"last visit", "2024-06-12"},
		{"analyzed at", "2024-12-17 10:23"},
		{"generated at", "2024-12-18 09:00"},
		{"very high badge", `<span class="badge risk-red">✕ Very High</span>`},
		{"low badge", `<span class="badge risk-green">✓ Low Risk</span>`},
		{"confidence meter", "width: 94%"},
		{"details", "Microaneurysms in the superior arcade"},
		{"review note", "Confirmed on OCT (dr.lee)"},
		{"urgent priority class", `class="recommendation priority-urgent"`},
		{"normal priority class", `class="recommendation priority-normal"`},
		{"priority label", "Urgent"},
		{"moderate action", "Schedule routine follow-up in 3-6 months. Continue regular monitoring."},
		{"disclaimer", "should not replace professional medical judgment"},
		{"overridden count", "1 reviewed by clinician."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, html, tt.contains)
		})
	}

	for _, entry := range classifier.Legend() {
		assert.Contains(t, html, entry.Style.Label)
	}
}

func TestHTMLGenerator_RecommendationOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHTMLGenerator(logger.NewMockLogger()).Render(&buf, testResult(t)))
	html := buf.String()

	last := -1
	for _, title := range expectedTitles {
		idx := strings.Index(html, title)
		require.NotEqual(t, -1, idx, title)
		assert.Greater(t, idx, last, "%q out of order", title)
		last = idx
	}
}

func TestHTMLGenerator_ReviewNotes(t *testing.T) {
	tests := []struct {
		name       string
		overrides  []config.RiskOverride
		contains   []string
		notContain []string
	}{
		{
			name: "level confirmed",
			overrides: []config.RiskOverride{
				{Name: "Hypertensive Angiosclerosis", RiskLevel: models.RiskHigh, Reason: "Confirmed on OCT", ReviewedBy: "dr.lee"},
			},
			contains:   []string{"Confirmed: High. Confirmed on OCT (dr.lee)", "1 reviewed by clinician."},
			notContain: []string{"High &rarr; High"},
		},
		{
			name: "level changed",
			overrides: []config.RiskOverride{
				{Name: "Diabetic Retinopathy", RiskLevel: models.RiskHigh, Reason: "Progression", ReviewedBy: "dr.lee"},
				{Name: "Hypertensive Angiosclerosis", RiskLevel: models.RiskHigh, Reason: "Confirmed on OCT"},
			},
			contains: []string{
				"Reviewed: Moderate &rarr; High. Progression (dr.lee)",
				"Confirmed: High. Confirmed on OCT",
				"2 reviewed by clinician.",
			},
		},
		{
			name:       "no review",
			contains:   []string{"4 pathologies assessed."},
			notContain: []string{"reviewed by clinician", "Confirmed:", "Reviewed:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewHTMLGenerator(logger.NewMockLogger()).Render(&buf, testResultWithOverrides(t, tt.overrides)))
			html := buf.String()

			for _, s := range tt.contains {
				assert.Contains(t, html, s)
			}
			for _, s := range tt.notContain {
				assert.NotContains(t, html, s)
			}
		})
	}
}

func TestHTMLGenerator_EmptyScreening(t *testing.T) {
	result := &screening.Result{
		Screening:       models.NewScreening(models.Patient{Name: "Jane Doe"}, nil),
		Summary:         models.Summarize(nil),
		Disclaimer:      screening.Disclaimer,
		Recommendations: []models.Recommendation{{Title: "All pathologies within normal range", Priority: models.PriorityNormal}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewHTMLGenerator(logger.NewMockLogger()).Render(&buf, result))

	html := buf.String()
	assert.Contains(t, html, "No pathologies assessed.")
	assert.Contains(t, html, "All pathologies within normal range")
	assert.NotContains(t, html, "Highest risk")
}

func TestHTMLGenerator_EscapesInput(t *testing.T) {
	result := testResult(t)
	result.Screening.Patient.Name = "<script>alert(1)</script>"

	var buf bytes.Buffer
	require.NoError(t, NewHTMLGenerator(logger.NewMockLogger()).Render(&buf, result))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}

func TestIconGlyph(t *testing.T) {
	tests := []struct {
		icon classifier.IconKind
		want string
	}{
		{classifier.IconCheck, "✓"},
		{classifier.IconWarning, "⚠"},
		{classifier.IconCross, "✕"},
		{classifier.IconKind("unknown"), "•"},
	}

	for _, tt := range tests {
		t.Run(string(tt.icon), func(t *testing.T) {
			assert.Equal(t, tt.want, iconGlyph(tt.icon))
		})
	}
}
