// Package testutil provides helpers for testing the terminal dashboard: building sample
// screenings, simulating key presses and asserting on rendered views.
package testutil

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshsymonds/eyemap/internal/models"
)

// SampleFindings returns the four-pathology screening shown on the reference dashboard.
func SampleFindings() []models.Finding {
	return []models.Finding{
		{Name: "Age-Related Macular Degeneration (AMD)", RiskLevel: models.RiskLow, Confidence: 92},
		{Name: "Diabetic Retinopathy", RiskLevel: models.RiskModerate, Confidence: 78},
		{Name: "Hypertensive Angiopathy", RiskLevel: models.RiskVeryHigh, Confidence: 94},
		{Name: "Hypertensive Angiosclerosis", RiskLevel: models.RiskHigh, Confidence: 85},
	}
}

// SampleScreening wraps SampleFindings in a screening for a fixed patient.
func SampleScreening() *models.Screening {
	return models.NewScreening(models.Patient{
		Name:        "Sarah Johnson",
		ID:          "PT-2024-0847",
		DateOfBirth: "1968-03-15",
		Age:         56,
	}, SampleFindings())
}

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(str string) string {
	var result strings.Builder
	ansi := false

	for _, r := range str {
		switch {
		case r == '\x1b':
			ansi = true
		case ansi:
			if r == 'm' {
				ansi = false
			}
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// NormalizeWhitespace trims every line, collapses runs of spaces and drops blank lines.
func NormalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	normalized := make([]string, 0, len(lines))

	for _, line := range lines {
		if fields := strings.Fields(line); len(fields) > 0 {
			normalized = append(normalized, strings.Join(fields, " "))
		}
	}

	return strings.Join(normalized, "\n")
}

// CleanView strips ANSI codes and normalizes whitespace.
func CleanView(view string) string {
	return NormalizeWhitespace(StripANSI(view))
}

// SimulateKeyPress simulates a key press and returns the resulting model and command.
func SimulateKeyPress(model tea.Model, key string) (tea.Model, tea.Cmd) {
	var msg tea.Msg

	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}

	return model.Update(msg)
}

// RunUpdate runs an update on a model and returns the updated model.
func RunUpdate(t *testing.T, model tea.Model, msg tea.Msg) tea.Model {
	t.Helper()

	updatedModel, _ := model.Update(msg)
	return updatedModel
}

// AssertViewContains checks that a view contains expected strings.
func AssertViewContains(t *testing.T, view string, expected []string) {
	t.Helper()

	for _, exp := range expected {
		if !strings.Contains(view, exp) {
			t.Errorf("Expected view to contain %q but it didn't.\nView:\n%s", exp, view)
		}
	}
}

// AssertViewNotContains checks that a view does not contain unexpected strings.
func AssertViewNotContains(t *testing.T, view string, unexpected []string) {
	t.Helper()

	for _, unexp := range unexpected {
		if strings.Contains(view, unexp) {
			t.Errorf("Expected view NOT to contain %q but it did.\nView:\n%s", unexp, view)
		}
	}
}

// AssertContainsInOrder checks that strings appear in the view in the specified order.
func AssertContainsInOrder(t *testing.T, view string, ordered []string) {
	t.Helper()

	offset := 0
	for _, str := range ordered {
		index := strings.Index(view[offset:], str)
		if index == -1 {
			t.Errorf("Expected to find %q after position %d but it wasn't found.\nView:\n%s", str, offset, view)
			return
		}
		offset += index + len(str)
	}
}
