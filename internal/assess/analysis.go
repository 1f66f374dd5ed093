// ABOUTME: Analysis aggregates BMI, category, lifestyle notes, and findings.
// ABOUTME: One document for the CLI, HTTP API, and MCP display surfaces.
package assess

import (
	"fmt"

	"github.com/harperreed/carewise/internal/models"
)

// Disclaimer accompanies every analysis shown to a user.
const Disclaimer = "This analysis is based on the information you provided and should not replace " +
	"professional medical advice. Always consult with a healthcare provider for a complete " +
	"evaluation of your health status."

// topFindingCount is how many findings the dashboard summary shows.
const topFindingCount = 3

var categoryAdvice = map[models.BMICategory]string{
	models.BMIUnderweight: "You may need to gain some weight. Consider consulting a nutritionist.",
	models.BMINormal:      "Your weight is within the healthy range. Keep up the good habits!",
	models.BMIOverweight:  "You may benefit from losing some weight. Focus on a balanced diet and regular exercise.",
	models.BMIObese:       "Your BMI indicates obesity, which increases health risks. Consider consulting a healthcare provider.",
}

// Analysis is the full evaluation of one profile, ready for display.
type Analysis struct {
	HasProfile      bool                 `json:"has_profile"`
	BMI             *float64             `json:"bmi"`
	Category        models.BMICategory   `json:"category"`
	CategoryAdvice  string               `json:"category_advice,omitempty"`
	BMIGauge        float64              `json:"bmi_gauge"`
	SleepQuality    string               `json:"sleep_quality,omitempty"`
	LifestyleImpact string               `json:"lifestyle_impact,omitempty"`
	Findings        []models.RiskFinding `json:"findings"`
	TopFindings     []models.RiskFinding `json:"top_findings"`
	RiskCount       int                  `json:"risk_count"`
	Summary         string               `json:"summary"`
	Disclaimer      string               `json:"disclaimer"`
}

// Analyze evaluates p and derives the display values around the findings.
// A nil profile produces the neutral analysis: no BMI, Unknown, no findings.
func Analyze(p *models.HealthProfile) Analysis {
	findings := HealthRisks(p)
	a := Analysis{
		HasProfile: p != nil,
		Category:   BMICategory(p),
		Disclaimer: Disclaimer,
	}

	if bmi, ok := CalculateBMI(p); ok {
		a.BMI = &bmi
	}
	a.CategoryAdvice = categoryAdvice[a.Category]
	a.BMIGauge = BMIGauge(a.BMI)

	if p != nil {
		a.SleepQuality = SleepQuality(p.SleepHours)
		a.LifestyleImpact = LifestyleImpact(p.PhysicalActivity)
	}

	a.setFindings(findings)
	return a
}

// AnalyzeSnapshot rebuilds the analysis of a stored assessment. BMI,
// category and findings are the ones recorded with it.
func AnalyzeSnapshot(s *models.Assessment) Analysis {
	a := Analyze(s.Profile)
	a.BMI = s.BMI
	a.Category = s.Category
	a.CategoryAdvice = categoryAdvice[s.Category]
	a.BMIGauge = BMIGauge(s.BMI)

	findings := s.Findings
	if findings == nil {
		findings = []models.RiskFinding{}
	}
	a.setFindings(findings)
	return a
}

func (a *Analysis) setFindings(findings []models.RiskFinding) {
	a.Findings = findings
	a.RiskCount = len(findings)

	n := min(topFindingCount, len(findings))
	a.TopFindings = findings[:n:n]

	if len(findings) > 0 {
		a.Summary = fmt.Sprintf("%d potential health risks identified based on your data.", len(findings))
	} else {
		a.Summary = "No significant health risks identified based on your data."
	}
}

// BMIGauge scales a BMI between 10 and 40 onto a 10-90 gauge. Values
// outside that span are pinned; a missing or zero BMI sits at the midpoint.
func BMIGauge(bmi *float64) float64 {
	if bmi == nil || *bmi == 0 {
		return 50
	}
	switch {
	case *bmi < 10:
		return 10
	case *bmi > 40:
		return 90
	}
	return ((*bmi-10)/30)*80 + 10
}

// SleepQuality labels nightly sleep hours.
func SleepQuality(hours float64) string {
	switch {
	case hours < 6:
		return "Insufficient"
	case hours < 7:
		return "Borderline"
	case hours <= 9:
		return "Optimal"
	default:
		return "Excessive"
	}
}

// LifestyleImpact describes how the activity level affects health.
func LifestyleImpact(level models.ActivityLevel) string {
	switch level {
	case models.ActivitySedentary:
		return "Your sedentary lifestyle increases several health risks. Regular physical activity is recommended."
	case models.ActivityLight:
		return "Increasing your physical activity could provide additional health benefits."
	default:
		return "Your active lifestyle helps protect against many chronic diseases. Keep it up!"
	}
}
