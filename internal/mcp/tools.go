// ABOUTME: MCP tool implementations for the health profile and analysis.
// ABOUTME: Provides profile CRUD, risk analysis, and assessment history.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/carewise/internal/assess"
	"github.com/harperreed/carewise/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get the saved health profile",
	}, s.handleGetProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_profile",
		Description: "Update the health profile. Omitted fields keep their saved (or default) values. Saving records an assessment snapshot.",
	}, s.handleSetProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "clear_profile",
		Description: "Remove the saved health profile. Assessment history is kept.",
	}, s.handleClearProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "analyze",
		Description: "Analyze the saved profile: BMI, category, sleep, lifestyle, and risk findings with preventive measures",
	}, s.handleAnalyze)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "evaluate_profile",
		Description: "Analyze a hypothetical profile without saving it. Omitted fields use the intake defaults.",
	}, s.handleEvaluateProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_assessments",
		Description: "List saved assessment snapshots, newest first",
	}, s.handleListAssessments)
}

// Tool input/output types

type emptyInput struct{}

type profileInput struct {
	Age                   *int     `json:"age,omitempty" jsonschema:"age in years (1-120)"`
	Height                *float64 `json:"height,omitempty" jsonschema:"height in centimeters (50-250)"`
	Weight                *float64 `json:"weight,omitempty" jsonschema:"weight in kilograms (1-300)"`
	Gender                string   `json:"gender,omitempty" jsonschema:"male, female or other"`
	PhysicalActivity      string   `json:"physical_activity,omitempty" jsonschema:"sedentary, light, moderate or high"`
	SleepHours            *float64 `json:"sleep_hours,omitempty" jsonschema:"average nightly sleep in hours (3-12)"`
	SmokingStatus         string   `json:"smoking_status,omitempty" jsonschema:"never, former or current"`
	DietType              string   `json:"diet_type,omitempty" jsonschema:"diet type, e.g. balanced or vegetarian"`
	MealsPerDay           *int     `json:"meals_per_day,omitempty" jsonschema:"meals per day (1-6)"`
	SnacksPerDay          *int     `json:"snacks_per_day,omitempty" jsonschema:"snacks per day (0-10)"`
	WaterConsumption      *int     `json:"water_consumption,omitempty" jsonschema:"glasses of water per day (0-20)"`
	AlcoholConsumption    string   `json:"alcohol_consumption,omitempty" jsonschema:"none, occasional, moderate or frequent"`
	CaffeineConsumption   string   `json:"caffeine_consumption,omitempty" jsonschema:"none, light, moderate or heavy"`
	PreExistingConditions []string `json:"pre_existing_conditions,omitempty" jsonschema:"condition tags such as diabetes or hypertension; replaces the saved list"`
	FamilyHistory         []string `json:"family_history,omitempty" jsonschema:"family history tags such as heart disease or cancer; replaces the saved list"`
}

// apply overwrites the fields of p that the input sets.
func (in profileInput) apply(p *models.HealthProfile) {
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Height != nil {
		p.Height = *in.Height
	}
	if in.Weight != nil {
		p.Weight = *in.Weight
	}
	if in.Gender != "" {
		p.Gender = models.Gender(in.Gender)
	}
	if in.PhysicalActivity != "" {
		p.PhysicalActivity = models.ActivityLevel(in.PhysicalActivity)
	}
	if in.SleepHours != nil {
		p.SleepHours = *in.SleepHours
	}
	if in.SmokingStatus != "" {
		p.SmokingStatus = models.SmokingStatus(in.SmokingStatus)
	}
	if in.DietType != "" {
		p.EatingHabits.DietType = in.DietType
	}
	if in.MealsPerDay != nil {
		p.EatingHabits.MealsPerDay = *in.MealsPerDay
	}
	if in.SnacksPerDay != nil {
		p.EatingHabits.SnacksPerDay = *in.SnacksPerDay
	}
	if in.WaterConsumption != nil {
		p.EatingHabits.WaterConsumption = *in.WaterConsumption
	}
	if in.AlcoholConsumption != "" {
		p.EatingHabits.AlcoholConsumption = models.AlcoholConsumption(in.AlcoholConsumption)
	}
	if in.CaffeineConsumption != "" {
		p.EatingHabits.CaffeineConsumption = models.CaffeineConsumption(in.CaffeineConsumption)
	}
	if in.PreExistingConditions != nil {
		p.PreExistingConditions = in.PreExistingConditions
	}
	if in.FamilyHistory != nil {
		p.FamilyHistory = in.FamilyHistory
	}
}

type savedOutput struct {
	ID        string  `json:"id"`
	BMI       float64 `json:"bmi"`
	Category  string  `json:"category"`
	RiskCount int     `json:"risk_count"`
	Message   string  `json:"message"`
}

type listAssessmentsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"max results (default 10)"`
}

type assessmentSummary struct {
	ID         string   `json:"id"`
	AssessedAt string   `json:"assessed_at"`
	BMI        *float64 `json:"bmi"`
	Category   string   `json:"category"`
	Conditions []string `json:"conditions"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	p, err := s.repo.Profile(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if p == nil {
		return nil, map[string]any{"message": "No health profile saved."}, nil
	}
	return nil, p, nil
}

func (s *Server) handleSetProfile(ctx context.Context, req *mcp.CallToolRequest, input profileInput) (*mcp.CallToolResult, savedOutput, error) {
	p, err := s.repo.Profile(ctx)
	if err != nil {
		return nil, savedOutput{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if p == nil {
		p = models.DefaultProfile()
	}
	input.apply(p)

	a, err := s.repo.SaveProfile(ctx, p)
	if err != nil {
		return nil, savedOutput{}, fmt.Errorf("failed to save profile: %w", err)
	}

	out := savedOutput{
		ID:        a.ID.String()[:8],
		Category:  string(a.Category),
		RiskCount: len(a.Findings),
	}
	if a.BMI != nil {
		out.BMI = *a.BMI
	}
	out.Message = fmt.Sprintf("Saved profile (BMI %.1f, %s, %d risks; assessment %s)", out.BMI, out.Category, out.RiskCount, out.ID)
	s.logger.Debug("profile saved via mcp", zap.String("assessment", a.ID.String()))

	return nil, out, nil
}

func (s *Server) handleClearProfile(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.ClearProfile(ctx); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to clear profile: %w", err)
	}
	return nil, simpleOutput{Message: "Cleared health profile"}, nil
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	p, err := s.repo.Profile(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return nil, assess.Analyze(p), nil
}

func (s *Server) handleEvaluateProfile(ctx context.Context, req *mcp.CallToolRequest, input profileInput) (*mcp.CallToolResult, any, error) {
	p := models.DefaultProfile()
	input.apply(p)
	if err := models.Validate(p); err != nil {
		return nil, nil, err
	}
	return nil, assess.Analyze(p), nil
}

func (s *Server) handleListAssessments(ctx context.Context, req *mcp.CallToolRequest, input listAssessmentsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 10
	}

	assessments, err := s.repo.Assessments(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	if len(assessments) == 0 {
		return nil, map[string]any{"message": "No assessments found."}, nil
	}

	out := make([]assessmentSummary, 0, len(assessments))
	for _, a := range assessments {
		conds := make([]string, 0, len(a.Findings))
		for _, f := range a.Findings {
			conds = append(conds, fmt.Sprintf("%s (%s)", f.Condition, f.Risk))
		}
		out = append(out, assessmentSummary{
			ID:         a.ID.String()[:8],
			AssessedAt: a.AssessedAt.Format("2006-01-02 15:04"),
			BMI:        a.BMI,
			Category:   string(a.Category),
			Conditions: conds,
		})
	}
	return nil, map[string]any{"assessments": out, "count": len(out)}, nil
}
