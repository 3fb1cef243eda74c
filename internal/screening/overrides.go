package screening

import (
	"fmt"

	"github.com/joshsymonds/eyemap/internal/config"
	"github.com/joshsymonds/eyemap/internal/models"
	"github.com/joshsymonds/eyemap/pkg/logger"
)

// ApplyOverrides returns a copy of findings with clinician overrides applied.
// An overridden finding keeps its graded level in OriginalRiskLevel.
func ApplyOverrides(findings []models.Finding, overrides []config.RiskOverride, log logger.Logger) []models.Finding {
	modified := make([]models.Finding, len(findings))
	copy(modified, findings)

	if len(overrides) == 0 {
		return modified
	}

	overrideMap := make(map[string]config.RiskOverride, len(overrides))
	for _, o := range overrides {
		overrideMap[o.Name] = o
	}

	modCount := 0
	for i := range modified {
		override, exists := overrideMap[modified[i].Name]
		if !exists || !override.RiskLevel.IsValid() {
			continue
		}

		original := modified[i].RiskLevel
		modified[i].OriginalRiskLevel = original
		modified[i].RiskLevel = override.RiskLevel
		modified[i].ReviewNote = reviewNote(override)
		modCount++

		log.Debug("Applied risk override",
			"pathology", modified[i].Name,
			"original", original.String(),
			"new", override.RiskLevel.String(),
			"reviewed_by", override.ReviewedBy)
	}

	if modCount > 0 {
		log.Info("Applied clinician overrides",
			"total_findings", len(findings),
			"overrides", modCount)
	}

	return modified
}

func reviewNote(o config.RiskOverride) string {
	if o.ReviewedBy == "" {
		return o.Reason
	}
	return fmt.Sprintf("%s (%s)", o.Reason, o.ReviewedBy)
}
