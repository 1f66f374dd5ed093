// ABOUTME: Intake range validation for HealthProfile using validator struct tags.
// ABOUTME: Runs at the collaborator boundary; the risk evaluator never calls it.
package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// FieldError describes one field that failed validation.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
	Value any    `json:"value"`
}

func (f FieldError) String() string {
	if f.Param != "" {
		return fmt.Sprintf("%s: must satisfy %s=%s (got %v)", f.Field, f.Rule, f.Param, f.Value)
	}
	return fmt.Sprintf("%s: must satisfy %s (got %v)", f.Field, f.Rule, f.Value)
}

// ValidationError lists every failing field of a profile.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "invalid health profile: " + strings.Join(parts, "; ")
}

// Validate checks p against the intake form ranges. A nil profile is
// rejected; the evaluator handles absence, the store does not persist it.
func Validate(p *HealthProfile) error {
	if p == nil {
		return errors.New("invalid health profile: profile is nil")
	}

	err := getValidator().Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate health profile: %w", err)
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{
			Field: fieldPath(fe.Namespace()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return ve
}

// fieldPath strips the root struct name: "HealthProfile.EatingHabits.MealsPerDay"
// becomes "EatingHabits.MealsPerDay".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
