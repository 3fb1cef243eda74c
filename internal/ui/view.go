package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshsymonds/eyemap/internal/classifier"
	"github.com/joshsymonds/eyemap/internal/report"
)

const defaultWidth = 100

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var (
	accent  = lipgloss.Color("#14B8A6")
	line    = lipgloss.Color("#1F2937")
	slate   = lipgloss.Color("#94A3B8")
	ink     = lipgloss.Color("#E5E7EB")
	warnCol = lipgloss.Color("#F59E0B")
	errCol  = lipgloss.Color("#EF4444")

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(line).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ink).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderTop(false).
			BorderRight(false).
			BorderBottom(false).
			BorderForeground(accent).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	grayStyle     = lipgloss.NewStyle().Foreground(slate)
	boldStyle     = lipgloss.NewStyle().Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(warnCol)
	errorStyle    = lipgloss.NewStyle().Foreground(errCol)
)

// View renders the dashboard.
func (m Model) View() string {
	sections := []string{m.renderHeader()}

	switch m.phase {
	case PhaseAnalyzing:
		sections = append(sections, m.renderAnalyzing())
	case PhaseFailed:
		sections = append(sections, m.renderFailed())
	case PhaseResults:
		sections = append(sections,
			m.renderRiskMatrix(),
			m.renderLegend(),
			m.renderRecommendations(),
			m.renderDisclaimer(),
		)
	}

	if m.events != nil && m.events.Len() > 0 {
		sections = append(sections, m.renderEvents())
	}
	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) boxWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return max(m.width-2, 40)
}

func (m Model) renderBox(title string, lines []string) string {
	return boxStyle.
		Width(m.boxWidth()).
		Render(titleStyle.Render(title) + "\n" + strings.Join(lines, "\n"))
}

func (m Model) renderHeader() string {
	if m.screening == nil {
		return headerStyle.Render("Retinal Screening")
	}
	p := m.screening.Patient
	header := headerStyle.Render("Retinal Screening · " + p.Name)

	details := []string{"ID " + p.ID}
	if p.Age > 0 {
		details = append(details, fmt.Sprintf("Age %d", p.Age))
	}
	if p.DateOfBirth != "" {
		details = append(details, "DOB "+p.DateOfBirth)
	}
	return header + "\n" + grayStyle.Render(strings.Join(details, " · "))
}

func (m Model) renderAnalyzing() string {
	elapsed := time.Since(m.startTime).Round(100 * time.Millisecond)
	findings := 0
	if m.screening != nil {
		findings = len(m.screening.Findings)
	}
	return m.renderBox("Analyzing", []string{
		fmt.Sprintf("%s Analyzing fundus image... %s", selectedStyle.Render(spinnerFrames[m.frame%len(spinnerFrames)]), grayStyle.Render(elapsed.String())),
		grayStyle.Render(fmt.Sprintf("%d pathologies queued", findings)),
	})
}

func (m Model) renderFailed() string {
	return m.renderBox("Analysis failed", []string{
		errorStyle.Render(fmt.Sprintf("%v", m.err)),
		"",
		grayStyle.Render("Press r to retry"),
	})
}

func (m Model) renderRiskMatrix() string {
	if m.result == nil || len(m.result.Findings) == 0 {
		return m.renderBox("Risk Assessment", []string{grayStyle.Render("No pathologies assessed.")})
	}

	nameWidth := 0
	for _, f := range m.result.Findings {
		nameWidth = max(nameWidth, lipgloss.Width(f.Name))
	}

	lines := make([]string, 0, len(m.result.Findings)+2)
	for i, f := range m.result.Findings {
		cursor := "  "
		name := fmt.Sprintf("%-*s", nameWidth, f.Name)
		if i == m.selected {
			cursor = selectedStyle.Render("> ")
			name = selectedStyle.Render(name)
		}
		bar := report.ConfidenceBar(f.Confidence, 20, report.RiskColor(f.Style.Color))
		lines = append(lines, fmt.Sprintf("%s%s  %s %3d%%  %s", cursor, name, bar, f.Confidence, report.RiskBadge(f.Style)))

		if m.details && i == m.selected {
			lines = append(lines, m.renderFindingDetails(i)...)
		}
	}

	return m.renderBox("Risk Assessment", lines)
}

func (m Model) renderFindingDetails(i int) []string {
	f := m.result.Findings[i]
	details := []string{
		grayStyle.Render(fmt.Sprintf("    Risk level: %s (weight %d)", f.RiskLevel, f.Style.Weight)),
	}
	if f.HasDetails() {
		details = append(details, grayStyle.Render("    "+f.Details))
	}
	switch {
	case f.IsOverridden():
		details = append(details, warnStyle.Render(fmt.Sprintf("    Reviewed: %s -> %s. %s", f.OriginalRiskLevel, f.RiskLevel, f.ReviewNote)))
	case f.IsReviewed():
		details = append(details, grayStyle.Render(fmt.Sprintf("    Confirmed: %s. %s", f.RiskLevel, f.ReviewNote)))
	}
	return details
}

func (m Model) renderLegend() string {
	entries := make([]string, 0, 4)
	for _, e := range classifier.Legend() {
		entries = append(entries, report.RiskBadge(e.Style))
	}
	return grayStyle.Render("Legend: ") + strings.Join(entries, "   ")
}

func (m Model) renderRecommendations() string {
	lines := make([]string, 0, len(m.result.Recommendations)*3)
	for _, rec := range m.result.Recommendations {
		marker := lipgloss.NewStyle().Bold(true).Foreground(report.PriorityColor(rec.Priority)).
			Render(fmt.Sprintf("[%s]", rec.Priority))
		lines = append(lines,
			fmt.Sprintf("%s %s", marker, boldStyle.Render(rec.Title)),
			"  "+rec.Description,
			"  "+grayStyle.Render(rec.Action),
		)
	}
	return m.renderBox("Clinical Recommendations", lines)
}

func (m Model) renderDisclaimer() string {
	return warnStyle.Width(m.boxWidth()).Render("Important: " + m.result.Disclaimer)
}

func (m Model) renderEvents() string {
	items := m.events.Items()
	lines := make([]string, 0, len(items))
	for _, e := range items {
		msg := e.Message
		switch e.Level {
		case EventWarn:
			msg = warnStyle.Render(msg)
		case EventError:
			msg = errorStyle.Render(msg)
		}
		lines = append(lines, fmt.Sprintf("%s %s", grayStyle.Render(e.Timestamp.Format("15:04:05")), msg))
	}
	return m.renderBox("Activity", lines)
}

func (m Model) renderHelp() string {
	keys := []string{"q quit"}
	switch m.phase {
	case PhaseResults:
		keys = append([]string{"↑/↓ select", "enter details", "r re-run"}, keys...)
	case PhaseFailed:
		keys = append([]string{"r retry"}, keys...)
	}
	return grayStyle.Render(strings.Join(keys, " · "))
}
