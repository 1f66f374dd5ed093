// ABOUTME: The ordered battery of risk rules and their preventive measures.
// ABOUTME: Each rule pairs a predicate over Facts with the findings it emits.
package assess

import (
	"slices"

	"github.com/harperreed/carewise/internal/models"
)

// Facts is everything a rule may look at: the profile and its derived BMI.
type Facts struct {
	Profile  *models.HealthProfile
	BMI      float64
	Category models.BMICategory
}

// NewFacts derives the BMI facts for p. p must not be nil.
func NewFacts(p *models.HealthProfile) Facts {
	bmi, _ := CalculateBMI(p)
	return Facts{
		Profile:  p,
		BMI:      bmi,
		Category: CategoryFor(bmi),
	}
}

// Rule is one independent check. When it applies, Emit produces the
// findings it contributes, in order.
type Rule struct {
	ID   string
	When func(f Facts) bool
	Emit func(f Facts) []models.RiskFinding
}

// Evaluate returns the rule's findings, or nil when its predicate is false.
func (r Rule) Evaluate(f Facts) []models.RiskFinding {
	if !r.When(f) {
		return nil
	}
	return r.Emit(f)
}

// Condition labels emitted by the rules.
const (
	ConditionType2Diabetes         = "Type 2 Diabetes"
	ConditionCardiovascular        = "Cardiovascular Disease"
	ConditionNutritional           = "Nutritional Deficiencies"
	ConditionHypertension          = "Hypertension"
	ConditionLungCancer            = "Lung Cancer"
	ConditionCOPD                  = "COPD"
	ConditionMetabolicSyndrome     = "Metabolic Syndrome"
	ConditionMentalHealth          = "Mental Health Issues"
	ConditionDiabeticComplications = "Diabetic Complications"
	ConditionStroke                = "Stroke"
	ConditionHeartDisease          = "Heart Disease"
	ConditionCancer                = "Cancer"
)

// Literal tags the rules match on.
const (
	TagDiabetes     = "diabetes"
	TagHypertension = "hypertension"
	TagHeartDisease = "heart disease"
	TagCancer       = "cancer"
)

var (
	type2DiabetesMeasures = []string{
		"Maintain a healthy diet rich in fiber and low in processed sugars",
		"Regular physical activity (150+ minutes per week)",
		"Regular blood glucose screening",
		"Weight management through sustainable lifestyle changes",
	}
	cardiovascularMeasures = []string{
		"Maintain a heart-healthy diet low in saturated fats",
		"Regular aerobic exercise",
		"Monitor blood pressure regularly",
		"Limit sodium intake",
		"Manage stress through mindfulness and relaxation techniques",
	}
	nutritionalMeasures = []string{
		"Increase caloric intake with nutrient-dense foods",
		"Consider protein supplementation",
		"Regular health check-ups to monitor nutritional status",
		"Strength training to build muscle mass",
	}
	hypertensionMeasures = []string{
		"Regular blood pressure monitoring",
		"Limit sodium intake to less than 2,300mg per day",
		"Regular physical activity",
		"Manage stress through mindfulness practices",
		"Maintain a healthy weight",
	}
	lungCancerMeasures = []string{
		"Quit smoking - consider nicotine replacement therapy or counseling",
		"Avoid secondhand smoke exposure",
		"Regular lung function testing",
		"Diet rich in antioxidants",
	}
	copdMeasures = []string{
		"Quit smoking immediately",
		"Avoid air pollutants and irritants",
		"Regular pulmonary function tests",
		"Vaccinations for influenza and pneumonia",
	}
	metabolicMeasures = []string{
		"Increase physical activity to at least 150 minutes per week",
		"Break up sitting time with short activity breaks",
		"Strength training twice weekly",
		"Balanced diet rich in fruits, vegetables and whole grains",
	}
	mentalHealthMeasures = []string{
		"Improve sleep hygiene - consistent sleep schedule",
		"Limit screen time before bed",
		"Create a comfortable sleep environment",
		"Consider mindfulness or relaxation techniques before bed",
		"Limit caffeine consumption after noon",
	}
	diabeticComplicationMeasures = []string{
		"Strict blood glucose monitoring",
		"Regular eye examinations",
		"Foot care and regular checkups",
		"Kidney function monitoring",
		"Medication adherence",
	}
	strokeMeasures = []string{
		"Blood pressure monitoring and management",
		"Low sodium diet",
		"Regular physical activity",
		"Limit alcohol consumption",
		"Medication adherence",
	}
	heartDiseaseMeasures = []string{
		"Regular cardiovascular check-ups",
		"Heart-healthy diet low in saturated fats",
		"Regular physical activity",
		"Stress management techniques",
		"Consider preventive aspirin therapy (consult doctor)",
	}
	cancerMeasures = []string{
		"Regular cancer screenings appropriate for age and risk level",
		"Diet rich in antioxidants and low in processed foods",
		"Maintain healthy weight",
		"Limit alcohol consumption",
		"Sun protection",
	}
)

// finding builds a RiskFinding with its own copy of the measures.
func finding(condition string, risk models.RiskLevel, measures []string) models.RiskFinding {
	return models.RiskFinding{
		Condition:          condition,
		Risk:               risk,
		PreventiveMeasures: slices.Clone(measures),
	}
}

// single wraps a fixed finding as an Emit func.
func single(condition string, risk models.RiskLevel, measures []string) func(Facts) []models.RiskFinding {
	return func(Facts) []models.RiskFinding {
		return []models.RiskFinding{finding(condition, risk, measures)}
	}
}

// rules is evaluated top to bottom. Order is part of the output contract.
var rules = []Rule{
	{
		ID: "bmi-excess",
		When: func(f Facts) bool {
			return f.Category == models.BMIOverweight || f.Category == models.BMIObese
		},
		Emit: func(f Facts) []models.RiskFinding {
			risk := models.RiskModerate
			if f.Category == models.BMIObese {
				risk = models.RiskHigh
			}
			return []models.RiskFinding{
				finding(ConditionType2Diabetes, risk, type2DiabetesMeasures),
				finding(ConditionCardiovascular, risk, cardiovascularMeasures),
			}
		},
	},
	{
		ID:   "bmi-underweight",
		When: func(f Facts) bool { return f.Category == models.BMIUnderweight },
		Emit: single(ConditionNutritional, models.RiskModerate, nutritionalMeasures),
	},
	{
		ID:   "age",
		When: func(f Facts) bool { return f.Profile.Age > 45 },
		Emit: func(f Facts) []models.RiskFinding {
			risk := models.RiskModerate
			if f.Profile.Age > 60 {
				risk = models.RiskHigh
			}
			return []models.RiskFinding{finding(ConditionHypertension, risk, hypertensionMeasures)}
		},
	},
	{
		ID:   "smoking",
		When: func(f Facts) bool { return f.Profile.SmokingStatus == models.SmokingCurrent },
		Emit: func(Facts) []models.RiskFinding {
			return []models.RiskFinding{
				finding(ConditionLungCancer, models.RiskHigh, lungCancerMeasures),
				finding(ConditionCOPD, models.RiskHigh, copdMeasures),
			}
		},
	},
	{
		ID:   "sedentary",
		When: func(f Facts) bool { return f.Profile.PhysicalActivity == models.ActivitySedentary },
		Emit: single(ConditionMetabolicSyndrome, models.RiskModerate, metabolicMeasures),
	},
	{
		ID:   "short-sleep",
		When: func(f Facts) bool { return f.Profile.SleepHours < 6 },
		Emit: single(ConditionMentalHealth, models.RiskModerate, mentalHealthMeasures),
	},
	{
		ID:   "condition-diabetes",
		When: func(f Facts) bool { return f.Profile.HasCondition(TagDiabetes) },
		Emit: single(ConditionDiabeticComplications, models.RiskHigh, diabeticComplicationMeasures),
	},
	{
		ID:   "condition-hypertension",
		When: func(f Facts) bool { return f.Profile.HasCondition(TagHypertension) },
		Emit: single(ConditionStroke, models.RiskHigh, strokeMeasures),
	},
	{
		ID:   "family-heart-disease",
		When: func(f Facts) bool { return f.Profile.HasFamilyHistory(TagHeartDisease) },
		Emit: single(ConditionHeartDisease, models.RiskModerate, heartDiseaseMeasures),
	},
	{
		ID:   "family-cancer",
		When: func(f Facts) bool { return f.Profile.HasFamilyHistory(TagCancer) },
		Emit: single(ConditionCancer, models.RiskModerate, cancerMeasures),
	},
}

// Rules returns the rule battery in evaluation order.
func Rules() []Rule {
	return slices.Clone(rules)
}

// RuleByID returns the rule with the given ID.
func RuleByID(id string) (Rule, bool) {
	for _, r := range rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}
