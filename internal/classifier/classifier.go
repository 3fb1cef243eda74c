// Package classifier maps risk categories to their fixed display attributes.
package classifier

import (
	"errors"
	"fmt"

	"github.com/joshsymonds/eyemap/internal/models"
)

// ErrInvalidCategory is returned when a value outside the risk category enumeration is classified.
// It indicates a caller defect and is never recovered from.
var ErrInvalidCategory = errors.New("invalid risk category")

// ColorToken is a categorical color name. Renderers map it to a concrete color.
type ColorToken string

// The four-entry palette.
const (
	ColorGreen  ColorToken = "green"
	ColorYellow ColorToken = "yellow"
	ColorOrange ColorToken = "orange"
	ColorRed    ColorToken = "red"
)

// IconKind selects the icon drawn next to a finding.
type IconKind string

// Icon kinds.
const (
	IconCheck   IconKind = "check"
	IconWarning IconKind = "warning"
	IconCross   IconKind = "cross"
)

// SeverityStyle is the visual classification of a risk category.
type SeverityStyle struct {
	Color  ColorToken `json:"color" yaml:"color"`
	Icon   IconKind   `json:"icon" yaml:"icon"`
	Label  string     `json:"label" yaml:"label"`
	Weight int        `json:"weight" yaml:"weight"`
}

// styles is indexed by models.RiskCategory. Index 0 is the invalid zero value.
var styles = [...]SeverityStyle{
	models.RiskLow:      {Color: ColorGreen, Icon: IconCheck, Label: "Low Risk", Weight: 0},
	models.RiskModerate: {Color: ColorYellow, Icon: IconWarning, Label: "Moderate", Weight: 1},
	models.RiskHigh:     {Color: ColorOrange, Icon: IconWarning, Label: "High Risk", Weight: 2},
	models.RiskVeryHigh: {Color: ColorRed, Icon: IconCross, Label: "Very High", Weight: 3},
}

// Classify returns the style for category.
func Classify(category models.RiskCategory) (SeverityStyle, error) {
	if !category.IsValid() {
		return SeverityStyle{}, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}
	return styles[category], nil
}

// MustClassify is like Classify but panics on an invalid category.
// Use it only where the category has already been validated.
func MustClassify(category models.RiskCategory) SeverityStyle {
	style, err := Classify(category)
	if err != nil {
		panic(err)
	}
	return style
}

// LegendEntry pairs a category with its style.
type LegendEntry struct {
	Style    SeverityStyle
	Category models.RiskCategory
}

// Legend returns every category's style, lowest severity first.
func Legend() []LegendEntry {
	categories := models.RiskCategories()
	legend := make([]LegendEntry, 0, len(categories))
	for _, c := range categories {
		legend = append(legend, LegendEntry{Category: c, Style: styles[c]})
	}
	return legend
}
