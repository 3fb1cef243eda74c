// Package recommendation turns a screening's findings into a prioritized list of clinical recommendations.
//
// Generation is a fixed pipeline: findings are partitioned into one bucket per risk
// category (keeping input order), each rule reads the buckets and emits zero or more
// recommendations, and the rule outputs are concatenated in pipeline order. Rule order
// therefore is output order: urgent, then high, then the moderate aggregate, then the
// normal-range fallback.
package recommendation

import (
	"fmt"
	"strings"

	"github.com/joshsymonds/eyemap/internal/models"
)

// Fixed clinical text.
const (
	urgentTitleFormat       = "Immediate attention required for %s"
	urgentDescriptionFormat = "Very high risk detected with %d%% confidence."
	urgentAction            = "Refer to specialist immediately. Schedule comprehensive examination within 24-48 hours."

	highTitleFormat       = "Follow-up required for %s"
	highDescriptionFormat = "High risk detected with %d%% confidence."
	highAction            = "Schedule follow-up appointment within 1-2 weeks. Consider specialist referral."

	moderateTitle             = "Monitor conditions with moderate risk"
	moderateDescriptionFormat = "%s showing moderate risk levels."
	moderateAction            = "Schedule routine follow-up in 3-6 months. Continue regular monitoring."

	normalRangeTitle       = "All pathologies within normal range"
	normalRangeDescription = "No significant risk factors detected in current screening."
	normalRangeAction      = "Continue annual routine screening. Maintain healthy lifestyle habits."
)

// Buckets holds findings grouped by risk category, each in input order.
type Buckets struct {
	Low      []models.Finding
	Moderate []models.Finding
	High     []models.Finding
	VeryHigh []models.Finding
}

// Partition splits findings into buckets without reordering them.
// Findings with a category outside the enumeration belong to no bucket.
func Partition(findings []models.Finding) Buckets {
	var b Buckets
	for _, f := range findings {
		switch f.RiskLevel {
		case models.RiskLow:
			b.Low = append(b.Low, f)
		case models.RiskModerate:
			b.Moderate = append(b.Moderate, f)
		case models.RiskHigh:
			b.High = append(b.High, f)
		case models.RiskVeryHigh:
			b.VeryHigh = append(b.VeryHigh, f)
		}
	}
	return b
}

// Rule produces recommendations from partitioned findings.
type Rule func(b Buckets) []models.Recommendation

// pipeline is the ordered rule set applied by Generate.
var pipeline = []Rule{
	VeryHighRule,
	HighRule,
	ModerateRule,
	NormalRangeRule,
}

// Generate returns the recommendations for findings.
// It never fails; an empty finding set yields the normal-range recommendation.
func Generate(findings []models.Finding) []models.Recommendation {
	return apply(pipeline, Partition(findings))
}

func apply(rules []Rule, b Buckets) []models.Recommendation {
	var out []models.Recommendation
	for _, rule := range rules {
		out = append(out, rule(b)...)
	}
	return out
}

// VeryHighRule emits one urgent recommendation per very-high finding.
func VeryHighRule(b Buckets) []models.Recommendation {
	out := make([]models.Recommendation, 0, len(b.VeryHigh))
	for _, f := range b.VeryHigh {
		out = append(out, models.Recommendation{
			Priority:    models.PriorityUrgent,
			Title:       fmt.Sprintf(urgentTitleFormat, f.Name),
			Description: fmt.Sprintf(urgentDescriptionFormat, f.Confidence),
			Action:      urgentAction,
		})
	}
	return out
}

// HighRule emits one high-priority recommendation per high finding.
func HighRule(b Buckets) []models.Recommendation {
	out := make([]models.Recommendation, 0, len(b.High))
	for _, f := range b.High {
		out = append(out, models.Recommendation{
			Priority:    models.PriorityHigh,
			Title:       fmt.Sprintf(highTitleFormat, f.Name),
			Description: fmt.Sprintf(highDescriptionFormat, f.Confidence),
			Action:      highAction,
		})
	}
	return out
}

// ModerateRule emits a single aggregate recommendation naming every moderate finding.
func ModerateRule(b Buckets) []models.Recommendation {
	if len(b.Moderate) == 0 {
		return nil
	}

	names := make([]string, 0, len(b.Moderate))
	for _, f := range b.Moderate {
		names = append(names, f.Name)
	}

	return []models.Recommendation{{
		Priority:    models.PriorityNormal,
		Title:       moderateTitle,
		Description: fmt.Sprintf(moderateDescriptionFormat, strings.Join(names, ", ")),
		Action:      moderateAction,
	}}
}

// NormalRangeRule emits the fallback recommendation when no moderate, high or
// very-high finding exists. Low findings do not affect it.
func NormalRangeRule(b Buckets) []models.Recommendation {
	if len(b.VeryHigh) > 0 || len(b.High) > 0 || len(b.Moderate) > 0 {
		return nil
	}

	return []models.Recommendation{{
		Priority:    models.PriorityNormal,
		Title:       normalRangeTitle,
		Description: normalRangeDescription,
		Action:      normalRangeAction,
	}}
}
