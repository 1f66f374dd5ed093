// ABOUTME: BMI computation and BMI category classification.
// ABOUTME: Pure functions over a HealthProfile; a nil profile yields neutral results.
package assess

import (
	"math"

	"github.com/harperreed/carewise/internal/models"
)

// BMI band thresholds. Each bound belongs to the higher band.
const (
	underweightBelow = 18.5
	normalBelow      = 25.0
	overweightBelow  = 30.0
)

// CalculateBMI returns weight / (height in meters)^2 rounded to one decimal.
// ok is false when no profile is supplied. A zero height is not rejected:
// the result is +Inf or NaN and is passed through unchanged.
func CalculateBMI(p *models.HealthProfile) (bmi float64, ok bool) {
	if p == nil {
		return 0, false
	}
	heightM := p.Height / 100
	return roundTenth(p.Weight / (heightM * heightM)), true
}

// BMICategory classifies the profile's BMI. Unknown when there is no profile.
func BMICategory(p *models.HealthProfile) models.BMICategory {
	bmi, ok := CalculateBMI(p)
	if !ok {
		return models.BMIUnknown
	}
	return CategoryFor(bmi)
}

// CategoryFor maps a BMI value to its band using half-open intervals.
// A zero or NaN BMI carries no information and maps to Unknown.
func CategoryFor(bmi float64) models.BMICategory {
	switch {
	case bmi == 0 || math.IsNaN(bmi):
		return models.BMIUnknown
	case bmi < underweightBelow:
		return models.BMIUnderweight
	case bmi < normalBelow:
		return models.BMINormal
	case bmi < overweightBelow:
		return models.BMIOverweight
	default:
		return models.BMIObese
	}
}

// roundTenth rounds half up to one decimal place.
func roundTenth(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
