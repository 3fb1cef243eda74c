package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshsymonds/eyemap/internal/config"
	"github.com/joshsymonds/eyemap/internal/models"
	"github.com/joshsymonds/eyemap/internal/screening"
	"github.com/joshsymonds/eyemap/internal/ui/testutil"
)

func TestView_Analyzing(t *testing.T) {
	view := testutil.CleanView(newTestModel(t).View())

	testutil.AssertViewContains(t, view, []string{
		"Retinal Screening · Sarah Johnson",
		"ID PT-2024-0847 · Age 56 · DOB 1968-03-15",
		"Analyzing fundus image...",
		"4 pathologies queued",
		"q quit",
	})
	testutil.AssertViewNotContains(t, view, []string{"Clinical Recommendations"})
}

func TestView_Results(t *testing.T) {
	m := runAnalysis(t, newTestModel(t))
	view := testutil.CleanView(m.View())

	testutil.AssertViewContains(t, view, []string{
		"Risk Assessment",
		"> Age-Related Macular Degeneration (AMD)",
		"✓ Low Risk",
		"⚠ Moderate",
		"⚠ High Risk",
		"✕ Very High",
		"94%",
		"Legend:",
		"Important:",
		"Analysis complete: 3 recommendations",
		"r re-run",
	})

	testutil.AssertContainsInOrder(t, view, []string{
		"[urgent] Immediate attention required for Hypertensive Angiopathy",
		"[high] Follow-up required for Hypertensive Angiosclerosis",
		"[normal] Monitor conditions with moderate risk",
		"Diabetic Retinopathy showing moderate risk levels.",
	})
}

func TestView_FindingDetails(t *testing.T) {
	m := newTestModel(t, screening.WithOverrides([]config.RiskOverride{
		{Name: "Diabetic Retinopathy", RiskLevel: models.RiskHigh, Reason: "Progression since last visit", ReviewedBy: "dr.lee"},
	}))
	m = runAnalysis(t, m)

	model, _ := testutil.SimulateKeyPress(m, "j")
	model, _ = testutil.SimulateKeyPress(model, "enter")
	view := testutil.CleanView(model.View())

	testutil.AssertViewContains(t, view, []string{
		"> Diabetic Retinopathy",
		"Risk level: high (weight 2)",
		"Reviewed: moderate -> high. Progression since last visit (dr.lee)",
		"1 clinician reviews applied, 1 changed risk level",
	})
}

func TestView_ConfirmedFinding(t *testing.T) {
	m := newTestModel(t, screening.WithOverrides([]config.RiskOverride{
		{Name: "Hypertensive Angiosclerosis", RiskLevel: models.RiskHigh, Reason: "Confirmed on OCT", ReviewedBy: "dr.lee"},
	}))
	m = runAnalysis(t, m)

	var model tea.Model = m
	for i := 0; i < 3; i++ {
		model, _ = testutil.SimulateKeyPress(model, "j")
	}
	model, _ = testutil.SimulateKeyPress(model, "enter")
	view := testutil.CleanView(model.View())

	testutil.AssertViewContains(t, view, []string{
		"> Hypertensive Angiosclerosis",
		"Confirmed: high. Confirmed on OCT (dr.lee)",
	})
	testutil.AssertViewNotContains(t, view, []string{"Reviewed: high -> high"})
}

func TestView_EmptyScreening(t *testing.T) {
	m := newTestModel(t)
	m.screening = models.NewScreening(models.Patient{Name: "Jane Doe", ID: "PT-1"}, nil)
	m = runAnalysis(t, m)

	view := testutil.CleanView(m.View())
	testutil.AssertViewContains(t, view, []string{
		"No pathologies assessed.",
		"All pathologies within normal range",
	})
}
