package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRiskCategory is returned when a risk category string cannot be parsed.
var ErrUnknownRiskCategory = errors.New("unknown risk category")

// RiskCategory is the closed, ordered severity tier of a finding.
// The zero value is not a valid category.
type RiskCategory int

// Risk categories in increasing order of severity.
const (
	RiskLow RiskCategory = iota + 1
	RiskModerate
	RiskHigh
	RiskVeryHigh
)

var riskCategoryNames = map[RiskCategory]string{
	RiskLow:      "low",
	RiskModerate: "moderate",
	RiskHigh:     "high",
	RiskVeryHigh: "very-high",
}

// RiskCategories returns every valid category, lowest severity first.
func RiskCategories() []RiskCategory {
	return []RiskCategory{RiskLow, RiskModerate, RiskHigh, RiskVeryHigh}
}

// IsValid reports whether c is one of the four defined categories.
func (c RiskCategory) IsValid() bool {
	return c >= RiskLow && c <= RiskVeryHigh
}

// String returns the canonical name ("low", "moderate", "high", "very-high").
func (c RiskCategory) String() string {
	if name, ok := riskCategoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("RiskCategory(%d)", int(c))
}

// MoreSevereThan reports whether c ranks above other.
func (c RiskCategory) MoreSevereThan(other RiskCategory) bool {
	return c > other
}

// ParseRiskCategory converts a category name into a RiskCategory.
// Matching is case-insensitive and accepts the spellings used by upstream graders.
func ParseRiskCategory(s string) (RiskCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, nil
	case "moderate", "medium":
		return RiskModerate, nil
	case "high":
		return RiskHigh, nil
	case "very-high", "very high", "very_high", "veryhigh":
		return RiskVeryHigh, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRiskCategory, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c RiskCategory) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRiskCategory, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RiskCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseRiskCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
