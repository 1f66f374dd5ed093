// ABOUTME: RiskLevel, RiskFinding and BMICategory types produced by the evaluator.
// ABOUTME: Risk levels order low < moderate < high for display collaborators.
package models

import "strings"

// RiskLevel is the qualitative severity of a finding.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// AllRiskLevels lists the levels in ascending severity.
var AllRiskLevels = []RiskLevel{RiskLow, RiskModerate, RiskHigh}

// riskProgress maps a level to the gauge value shown next to it.
var riskProgress = map[RiskLevel]int{
	RiskLow:      25,
	RiskModerate: 60,
	RiskHigh:     90,
}

// Severity returns 1, 2 or 3 for low, moderate and high; 0 for anything else.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskLow:
		return 1
	case RiskModerate:
		return 2
	case RiskHigh:
		return 3
	}
	return 0
}

// Less reports whether r is less severe than other.
func (r RiskLevel) Less(other RiskLevel) bool {
	return r.Severity() < other.Severity()
}

// Valid reports whether r is a known level.
func (r RiskLevel) Valid() bool {
	return r.Severity() > 0
}

// Title returns the level capitalized, e.g. "Moderate".
func (r RiskLevel) Title() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// Progress returns the 0-100 gauge value for the level.
func (r RiskLevel) Progress() int {
	return riskProgress[r]
}

// RiskFinding is one identified condition with its risk level and the
// preventive measures suggested for it.
type RiskFinding struct {
	Condition          string    `json:"condition" yaml:"condition"`
	Risk               RiskLevel `json:"risk" yaml:"risk"`
	PreventiveMeasures []string  `json:"preventive_measures" yaml:"preventive_measures"`
}

// BMICategory is the label derived from a BMI value.
type BMICategory string

const (
	BMIUnknown     BMICategory = "Unknown"
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIOverweight  BMICategory = "Overweight"
	BMIObese       BMICategory = "Obese"
)

func (c BMICategory) String() string {
	return string(c)
}
