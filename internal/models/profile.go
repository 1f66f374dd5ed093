// ABOUTME: HealthProfile model and its closed enum types.
// ABOUTME: The intake record handed to the risk evaluator by value.
package models

import "slices"

// Gender is recorded with the profile but never read by the risk rules.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ActivityLevel describes how often the person exercises.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityHigh      ActivityLevel = "high"
)

// SmokingStatus describes the person's smoking history.
type SmokingStatus string

const (
	SmokingNever   SmokingStatus = "never"
	SmokingFormer  SmokingStatus = "former"
	SmokingCurrent SmokingStatus = "current"
)

// AlcoholConsumption is the self-reported drinking frequency.
type AlcoholConsumption string

const (
	AlcoholNone       AlcoholConsumption = "none"
	AlcoholOccasional AlcoholConsumption = "occasional"
	AlcoholModerate   AlcoholConsumption = "moderate"
	AlcoholFrequent   AlcoholConsumption = "frequent"
)

// CaffeineConsumption is the self-reported daily caffeine intake.
type CaffeineConsumption string

const (
	CaffeineNone     CaffeineConsumption = "none"
	CaffeineLight    CaffeineConsumption = "light"
	CaffeineModerate CaffeineConsumption = "moderate"
	CaffeineHeavy    CaffeineConsumption = "heavy"
)

var (
	AllGenders         = []Gender{GenderMale, GenderFemale, GenderOther}
	AllActivityLevels  = []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityHigh}
	AllSmokingStatuses = []SmokingStatus{SmokingNever, SmokingFormer, SmokingCurrent}
	AllAlcoholLevels   = []AlcoholConsumption{AlcoholNone, AlcoholOccasional, AlcoholModerate, AlcoholFrequent}
	AllCaffeineLevels  = []CaffeineConsumption{CaffeineNone, CaffeineLight, CaffeineModerate, CaffeineHeavy}
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool { return slices.Contains(AllGenders, g) }

// Valid reports whether a is one of the known activity levels.
func (a ActivityLevel) Valid() bool { return slices.Contains(AllActivityLevels, a) }

// Valid reports whether s is one of the known smoking statuses.
func (s SmokingStatus) Valid() bool { return slices.Contains(AllSmokingStatuses, s) }

// Valid reports whether a is one of the known alcohol levels.
func (a AlcoholConsumption) Valid() bool { return slices.Contains(AllAlcoholLevels, a) }

// Valid reports whether c is one of the known caffeine levels.
func (c CaffeineConsumption) Valid() bool { return slices.Contains(AllCaffeineLevels, c) }

// Diet types offered by the intake form. Free text is still accepted.
var DietTypes = []string{
	"balanced", "vegetarian", "vegan", "pescatarian", "keto",
	"paleo", "low-carb", "high-protein", "other",
}

// KnownConditions lists the pre-existing condition tags offered by the intake form.
var KnownConditions = []string{
	"diabetes", "hypertension", "heart disease", "asthma",
	"cancer", "thyroid disorder", "arthritis", "depression",
	"anxiety", "obesity", "high cholesterol", "kidney disease",
}

// KnownFamilyHistory lists the family history tags offered by the intake form.
var KnownFamilyHistory = []string{
	"diabetes", "hypertension", "heart disease", "stroke",
	"cancer", "alzheimer's", "dementia", "mental illness",
	"obesity", "high cholesterol", "thyroid disorder",
}

// EatingHabits groups the diet questions of the intake form.
type EatingHabits struct {
	DietType            string              `json:"diet_type" yaml:"diet_type" validate:"required"`
	MealsPerDay         int                 `json:"meals_per_day" yaml:"meals_per_day" validate:"gte=1,lte=6"`
	SnacksPerDay        int                 `json:"snacks_per_day" yaml:"snacks_per_day" validate:"gte=0,lte=10"`
	WaterConsumption    int                 `json:"water_consumption" yaml:"water_consumption" validate:"gte=0,lte=20"`
	AlcoholConsumption  AlcoholConsumption  `json:"alcohol_consumption" yaml:"alcohol_consumption" validate:"oneof=none occasional moderate frequent"`
	CaffeineConsumption CaffeineConsumption `json:"caffeine_consumption" yaml:"caffeine_consumption" validate:"oneof=none light moderate heavy"`
}

// HealthProfile is the complete user-supplied health intake record.
// Height is in centimeters, weight in kilograms.
type HealthProfile struct {
	Age                   int           `json:"age" yaml:"age" validate:"gte=1,lte=120"`
	Height                float64       `json:"height" yaml:"height" validate:"gte=50,lte=250"`
	Weight                float64       `json:"weight" yaml:"weight" validate:"gte=1,lte=300"`
	Gender                Gender        `json:"gender" yaml:"gender" validate:"oneof=male female other"`
	PreExistingConditions []string      `json:"pre_existing_conditions" yaml:"pre_existing_conditions" validate:"dive,required"`
	EatingHabits          EatingHabits  `json:"eating_habits" yaml:"eating_habits"`
	PhysicalActivity      ActivityLevel `json:"physical_activity" yaml:"physical_activity" validate:"oneof=sedentary light moderate high"`
	SleepHours            float64       `json:"sleep_hours" yaml:"sleep_hours" validate:"gte=3,lte=12"`
	SmokingStatus         SmokingStatus `json:"smoking_status" yaml:"smoking_status" validate:"oneof=never former current"`
	FamilyHistory         []string      `json:"family_history" yaml:"family_history" validate:"dive,required"`
}

// DefaultProfile returns the values the intake form starts from.
func DefaultProfile() *HealthProfile {
	return &HealthProfile{
		Age:                   30,
		Height:                170,
		Weight:                70,
		Gender:                GenderMale,
		PreExistingConditions: []string{},
		EatingHabits: EatingHabits{
			DietType:            "balanced",
			MealsPerDay:         3,
			SnacksPerDay:        2,
			WaterConsumption:    8,
			AlcoholConsumption:  AlcoholOccasional,
			CaffeineConsumption: CaffeineModerate,
		},
		PhysicalActivity: ActivityModerate,
		SleepHours:       7,
		SmokingStatus:    SmokingNever,
		FamilyHistory:    []string{},
	}
}

// Clone returns a deep copy so callers can edit without touching the original.
func (p *HealthProfile) Clone() *HealthProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.PreExistingConditions = slices.Clone(p.PreExistingConditions)
	c.FamilyHistory = slices.Clone(p.FamilyHistory)
	return &c
}

// HasCondition reports whether tag is among the pre-existing conditions.
func (p *HealthProfile) HasCondition(tag string) bool {
	return slices.Contains(p.PreExistingConditions, tag)
}

// HasFamilyHistory reports whether tag is among the family history entries.
func (p *HealthProfile) HasFamilyHistory(tag string) bool {
	return slices.Contains(p.FamilyHistory, tag)
}

// UnknownTags returns the condition and family history tags that the intake
// form does not offer. They are stored as entered.
func (p *HealthProfile) UnknownTags() []string {
	var unknown []string
	for _, c := range p.PreExistingConditions {
		if !slices.Contains(KnownConditions, c) {
			unknown = append(unknown, c)
		}
	}
	for _, f := range p.FamilyHistory {
		if !slices.Contains(KnownFamilyHistory, f) {
			unknown = append(unknown, f)
		}
	}
	return unknown
}
