package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joshsymonds/eyemap/internal/classifier"
	"github.com/joshsymonds/eyemap/internal/models"
	"github.com/joshsymonds/eyemap/internal/screening"
	"github.com/joshsymonds/eyemap/pkg/logger"
)

//go:embed templates/*
var templateFS embed.FS

// HTMLGenerator renders the printable HTML screening report.
type HTMLGenerator struct {
	logger logger.Logger
	now    func() time.Time
}

// NewHTMLGenerator creates a new HTML report generator.
func NewHTMLGenerator(log logger.Logger) *HTMLGenerator {
	return &HTMLGenerator{logger: log, now: time.Now}
}

// Name returns the format identifier.
func (g *HTMLGenerator) Name() string { return "html" }

// Extension returns the file extension.
func (g *HTMLGenerator) Extension() string { return ".html" }

// Description returns a human-readable description.
func (g *HTMLGenerator) Description() string {
	return "Printable HTML report with risk matrix, legend and recommendations"
}

// Generate creates the HTML report at outputPath.
func (g *HTMLGenerator) Generate(result *screening.Result, outputPath string) error {
	return writeReport(g, result, outputPath, g.logger)
}

// Render executes the report template into w.
func (g *HTMLGenerator) Render(w io.Writer, result *screening.Result) error {
	tmpl, err := template.New("report").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	if err := tmpl.ExecuteTemplate(w, "report.html", g.prepareTemplateData(result)); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	title := cases.Title(language.English)
	return template.FuncMap{
		"riskClass": func(color classifier.ColorToken) string {
			return fmt.Sprintf("risk-%s", color)
		},
		"iconGlyph": iconGlyph,
		"priorityClass": func(p models.Priority) string {
			return fmt.Sprintf("priority-%s", p)
		},
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02 15:04")
		},
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("January 2, 2006")
		},
		"title": title.String,
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// iconGlyph maps an icon kind to the symbol drawn in reports.
func iconGlyph(icon classifier.IconKind) string {
	switch icon {
	case classifier.IconCheck:
		return "✓"
	case classifier.IconWarning:
		return "⚠"
	case classifier.IconCross:
		return "✕"
	default:
		return "•"
	}
}

// TemplateData holds all data for the report template.
type TemplateData struct {
	GeneratedAt     time.Time
	Screening       *models.Screening
	Disclaimer      string
	Findings        []screening.ClassifiedFinding
	Legend          []classifier.LegendEntry
	Recommendations []models.Recommendation
	Summary         models.Summary
	HighestStyle    classifier.SeverityStyle
	HasHighest      bool
}

// prepareTemplateData organizes data for the template.
func (g *HTMLGenerator) prepareTemplateData(result *screening.Result) *TemplateData {
	data := &TemplateData{
		GeneratedAt:     g.now(),
		Screening:       result.Screening,
		Disclaimer:      result.Disclaimer,
		Findings:        result.Findings,
		Legend:          classifier.Legend(),
		Recommendations: result.Recommendations,
		Summary:         result.Summary,
	}

	if style, err := classifier.Classify(result.Summary.Highest); err == nil {
		data.HighestStyle = style
		data.HasHighest = true
	}

	return data
}
