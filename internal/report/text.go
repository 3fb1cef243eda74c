package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshsymonds/eyemap/internal/classifier"
	"github.com/joshsymonds/eyemap/internal/models"
	"github.com/joshsymonds/eyemap/internal/screening"
	"github.com/joshsymonds/eyemap/pkg/logger"
)

var (
	green  = lipgloss.Color("#22C55E")
	yellow = lipgloss.Color("#F59E0B")
	orange = lipgloss.Color("#F97316")
	red    = lipgloss.Color("#EF4444")
	accent = lipgloss.Color("#14B8A6")
	slate  = lipgloss.Color("#94A3B8")
	ink    = lipgloss.Color("#E5E7EB")

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

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(slate)
	actionStyle  = lipgloss.NewStyle().Bold(true)

	disclaimerStyle = lipgloss.NewStyle().
			Foreground(slate).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(yellow).
			Padding(0, 1).
			MarginTop(1)
)

// RiskColor maps a palette token to its terminal color.
func RiskColor(token classifier.ColorToken) lipgloss.Color {
	switch token {
	case classifier.ColorGreen:
		return green
	case classifier.ColorYellow:
		return yellow
	case classifier.ColorOrange:
		return orange
	case classifier.ColorRed:
		return red
	default:
		return slate
	}
}

// RiskBadge renders a style's icon and label in its color.
func RiskBadge(style classifier.SeverityStyle) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(RiskColor(style.Color)).
		Render(iconGlyph(style.Icon) + " " + style.Label)
}

// PriorityColor returns the terminal color used for a recommendation priority.
func PriorityColor(p models.Priority) lipgloss.Color {
	switch p {
	case models.PriorityUrgent:
		return red
	case models.PriorityHigh:
		return orange
	default:
		return green
	}
}

// ConfidenceBar draws a fixed-width bar filled in proportion to confidence.
func ConfidenceBar(confidence, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	confidence = max(0, min(confidence, 100))
	filled := confidence * width / 100
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}

// TextRenderer renders the terminal report printed by `eyemap screen`.
type TextRenderer struct {
	logger   logger.Logger
	barWidth int
}

// NewTextRenderer creates a terminal report renderer.
func NewTextRenderer(log logger.Logger) *TextRenderer {
	return &TextRenderer{logger: log, barWidth: 20}
}

// Name returns the format identifier.
func (r *TextRenderer) Name() string { return "text" }

// Extension returns the file extension.
func (r *TextRenderer) Extension() string { return ".txt" }

// Description returns a human-readable description.
func (r *TextRenderer) Description() string {
	return "Terminal report with colored risk badges"
}

// Generate writes the text report to outputPath.
func (r *TextRenderer) Generate(result *screening.Result, outputPath string) error {
	return writeReport(r, result, outputPath, r.logger)
}

// Render writes the text report to w.
func (r *TextRenderer) Render(w io.Writer, result *screening.Result) error {
	var b strings.Builder

	p := result.Screening.Patient
	b.WriteString(headerStyle.Render("Retinal Screening · " + p.Name))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Patient ID %s · Screening %s", p.ID, result.Screening.ID)))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Risk Assessment"))
	b.WriteString("\n")
	if len(result.Findings) == 0 {
		b.WriteString(mutedStyle.Render("  No pathologies assessed."))
		b.WriteString("\n")
	}
	nameWidth := 0
	for _, f := range result.Findings {
		nameWidth = max(nameWidth, lipgloss.Width(f.Name))
	}
	for _, f := range result.Findings {
		fmt.Fprintf(&b, "  %-*s  %s %3d%%  %s\n",
			nameWidth, f.Name,
			ConfidenceBar(f.Confidence, r.barWidth, RiskColor(f.Style.Color)),
			f.Confidence,
			RiskBadge(f.Style))
		switch {
		case f.IsOverridden():
			b.WriteString(mutedStyle.Render(fmt.Sprintf("    reviewed: %s -> %s. %s",
				f.OriginalRiskLevel, f.RiskLevel, f.ReviewNote)))
			b.WriteString("\n")
		case f.IsReviewed():
			b.WriteString(mutedStyle.Render(fmt.Sprintf("    confirmed: %s. %s", f.RiskLevel, f.ReviewNote)))
			b.WriteString("\n")
		}
	}

	b.WriteString(sectionStyle.Render("Clinical Recommendations"))
	b.WriteString("\n")
	for _, rec := range result.Recommendations {
		marker := lipgloss.NewStyle().Bold(true).Foreground(PriorityColor(rec.Priority)).
			Render(fmt.Sprintf("[%s]", rec.Priority))
		fmt.Fprintf(&b, "  %s %s\n", marker, rec.Title)
		fmt.Fprintf(&b, "    %s\n", rec.Description)
		fmt.Fprintf(&b, "    %s\n", actionStyle.Render(rec.Action))
	}

	b.WriteString(disclaimerStyle.Render("Important: " + result.Disclaimer))
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing text report: %w", err)
	}
	return nil
}
