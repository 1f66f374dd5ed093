// ABOUTME: HealthRisks runs the rule battery over a profile in a single pass.
// ABOUTME: Output order is the rule order; nothing is sorted or deduplicated.
package assess

import "github.com/harperreed/carewise/internal/models"

// HealthRisks evaluates every rule against p and returns the accumulated
// findings. A nil profile yields an empty, non-nil slice. Input ranges are
// not re-validated here.
func HealthRisks(p *models.HealthProfile) []models.RiskFinding {
	return EvaluateRules(p, rules)
}

// EvaluateRules runs the given rules in order against p. It lets callers
// evaluate a subset of the battery, e.g. one rule in isolation.
func EvaluateRules(p *models.HealthProfile, rs []Rule) []models.RiskFinding {
	risks := []models.RiskFinding{}
	if p == nil {
		return risks
	}

	facts := NewFacts(p)
	for _, r := range rs {
		risks = append(risks, r.Evaluate(facts)...)
	}
	return risks
}
