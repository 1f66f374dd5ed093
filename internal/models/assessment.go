// ABOUTME: Assessment model, a saved snapshot of a profile and its evaluation.
// ABOUTME: Created on every profile save so the history can be reviewed later.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Assessment records one profile save together with the metrics and
// findings computed for it at that moment.
type Assessment struct {
	ID         uuid.UUID      `json:"id" yaml:"id"`
	Profile    *HealthProfile `json:"profile" yaml:"profile"`
	BMI        *float64       `json:"bmi" yaml:"bmi"`
	Category   BMICategory    `json:"category" yaml:"category"`
	Findings   []RiskFinding  `json:"findings" yaml:"findings"`
	Notes      *string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	AssessedAt time.Time      `json:"assessed_at" yaml:"assessed_at"`
	CreatedAt  time.Time      `json:"created_at" yaml:"created_at"`
}

// NewAssessment creates an Assessment with a generated UUID and the current
// timestamp. The profile is copied.
func NewAssessment(p *HealthProfile) *Assessment {
	now := time.Now()
	return &Assessment{
		ID:         uuid.New(),
		Profile:    p.Clone(),
		Category:   BMIUnknown,
		Findings:   []RiskFinding{},
		AssessedAt: now,
		CreatedAt:  now,
	}
}

// WithAssessedAt sets a custom assessment timestamp.
func (a *Assessment) WithAssessedAt(t time.Time) *Assessment {
	a.AssessedAt = t
	return a
}

// WithNotes sets notes on the assessment.
func (a *Assessment) WithNotes(notes string) *Assessment {
	a.Notes = &notes
	return a
}

// HighestRisk returns the most severe level among the findings, or "" when
// there are none.
func (a *Assessment) HighestRisk() RiskLevel {
	var top RiskLevel
	for _, f := range a.Findings {
		if top.Less(f.Risk) {
			top = f.Risk
		}
	}
	return top
}
