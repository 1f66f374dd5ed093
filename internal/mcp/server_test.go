// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/harperreed/carewise/internal/assess"
	"github.com/harperreed/carewise/internal/models"
	"github.com/harperreed/carewise/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupTestServer creates a server over an in-memory store.
func setupTestServer(t *testing.T) (*Server, *storage.ProfileStore) {
	t.Helper()

	repo := storage.NewProfileStore(storage.NewMemoryKV(), nil)
	t.Cleanup(func() { _ = repo.Close() })

	server, err := NewServer(repo, nil)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, repo
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
	if server.logger == nil {
		t.Error("Expected a no-op logger when none is given")
	}
}

func TestHandleGetProfileEmpty(t *testing.T) {
	server, _ := setupTestServer(t)

	_, out, err := server.handleGetProfile(context.Background(), &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("Expected message map, got %T", out)
	}
	if m["message"] != "No health profile saved." {
		t.Errorf("message = %v", m["message"])
	}
}

func TestHandleSetProfile(t *testing.T) {
	server, repo := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		input        profileInput
		wantErr      bool
		errSubstr    string
		wantCategory string
		wantRisks    int
	}{
		{
			name:         "defaults only",
			input:        profileInput{},
			wantCategory: "Normal",
			wantRisks:    0,
		},
		{
			name:         "heavier weight",
			input:        profileInput{Weight: floatPtr(100)},
			wantCategory: "Obese",
			wantRisks:    2,
		},
		{
			name:         "keeps earlier fields",
			input:        profileInput{SmokingStatus: "current"},
			wantCategory: "Obese",
			wantRisks:    4,
		},
		{
			name:      "out of range age",
			input:     profileInput{Age: intPtr(150)},
			wantErr:   true,
			errSubstr: "Age",
		},
		{
			name:      "unknown activity",
			input:     profileInput{PhysicalActivity: "extreme"},
			wantErr:   true,
			errSubstr: "PhysicalActivity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := server.handleSetProfile(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out.Category != tt.wantCategory {
				t.Errorf("Category = %s, want %s", out.Category, tt.wantCategory)
			}
			if out.RiskCount != tt.wantRisks {
				t.Errorf("RiskCount = %d, want %d", out.RiskCount, tt.wantRisks)
			}
			if len(out.ID) != 8 {
				t.Errorf("Expected 8-char ID, got %q", out.ID)
			}
		})
	}

	assessments, err := repo.Assessments(ctx, 0)
	if err != nil {
		t.Fatalf("Assessments failed: %v", err)
	}
	if len(assessments) != 3 {
		t.Errorf("Expected 3 assessments (failed saves record nothing), got %d", len(assessments))
	}

	p, _ := repo.Profile(ctx)
	if p.Weight != 100 || p.SmokingStatus != models.SmokingCurrent {
		t.Errorf("Unexpected saved profile: %+v", p)
	}
}

func TestHandleSetProfileReplacesTags(t *testing.T) {
	server, repo := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleSetProfile(ctx, &mcp.CallToolRequest{}, profileInput{
		PreExistingConditions: []string{"diabetes", "hypertension"},
		FamilyHistory:         []string{"cancer"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	_, out, err := server.handleSetProfile(ctx, &mcp.CallToolRequest{}, profileInput{
		PreExistingConditions: []string{},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.RiskCount != 1 {
		t.Errorf("RiskCount = %d, want 1 (family cancer only)", out.RiskCount)
	}

	p, _ := repo.Profile(ctx)
	if len(p.PreExistingConditions) != 0 {
		t.Errorf("Expected conditions cleared, got %v", p.PreExistingConditions)
	}
	if len(p.FamilyHistory) != 1 {
		t.Errorf("Expected family history kept, got %v", p.FamilyHistory)
	}
}

func TestHandleClearProfile(t *testing.T) {
	server, repo := setupTestServer(t)
	ctx := context.Background()

	if _, err := repo.SaveProfile(ctx, models.DefaultProfile()); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	_, out, err := server.handleClearProfile(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Message == "" {
		t.Error("Expected non-empty Message")
	}

	p, _ := repo.Profile(ctx)
	if p != nil {
		t.Error("Expected profile to be cleared")
	}
	history, _ := repo.Assessments(ctx, 0)
	if len(history) != 1 {
		t.Errorf("Expected history to survive, got %d entries", len(history))
	}
}

func TestHandleAnalyze(t *testing.T) {
	server, repo := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleAnalyze(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	a := out.(assess.Analysis)
	if a.HasProfile || a.BMI != nil || a.Category != models.BMIUnknown || len(a.Findings) != 0 {
		t.Errorf("Expected neutral analysis, got %+v", a)
	}

	p := models.DefaultProfile()
	p.Age = 70
	p.SleepHours = 5
	if _, err := repo.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	_, out, err = server.handleAnalyze(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	a = out.(assess.Analysis)
	if a.RiskCount != 2 {
		t.Errorf("RiskCount = %d, want 2", a.RiskCount)
	}
	if a.Findings[0].Condition != assess.ConditionHypertension || a.Findings[0].Risk != models.RiskHigh {
		t.Errorf("Unexpected first finding: %+v", a.Findings[0])
	}
	if a.SleepQuality != "Insufficient" {
		t.Errorf("SleepQuality = %s, want Insufficient", a.SleepQuality)
	}
}

func TestHandleEvaluateProfile(t *testing.T) {
	server, repo := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleEvaluateProfile(ctx, &mcp.CallToolRequest{}, profileInput{
		Height: floatPtr(180),
		Weight: floatPtr(50),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	a := out.(assess.Analysis)
	if a.Category != models.BMIUnderweight {
		t.Errorf("Category = %s, want Underweight", a.Category)
	}
	if len(a.Findings) != 1 || a.Findings[0].Condition != assess.ConditionNutritional {
		t.Errorf("Unexpected findings: %+v", a.Findings)
	}

	p, _ := repo.Profile(ctx)
	if p != nil {
		t.Error("evaluate_profile must not save")
	}

	_, _, err = server.handleEvaluateProfile(ctx, &mcp.CallToolRequest{}, profileInput{SleepHours: floatPtr(1)})
	if err == nil {
		t.Error("Expected validation error for 1 hour of sleep")
	}
}

func TestHandleListAssessments(t *testing.T) {
	server, repo := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleListAssessments(ctx, &mcp.CallToolRequest{}, listAssessmentsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m := out.(map[string]any); m["message"] != "No assessments found." {
		t.Errorf("Unexpected empty output: %v", m)
	}

	for i := 0; i < 3; i++ {
		if _, err := repo.SaveProfile(ctx, models.DefaultProfile()); err != nil {
			t.Fatalf("SaveProfile failed: %v", err)
		}
	}

	_, out, err = server.handleListAssessments(ctx, &mcp.CallToolRequest{}, listAssessmentsInput{Limit: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	m := out.(map[string]any)
	if m["count"] != 2 {
		t.Errorf("count = %v, want 2", m["count"])
	}
	list := m["assessments"].([]assessmentSummary)
	if list[0].Category != "Normal" || len(list[0].ID) != 8 {
		t.Errorf("Unexpected summary: %+v", list[0])
	}
}

func TestHandleProfileResource(t *testing.T) {
	server, repo := setupTestServer(t)
	ctx := context.Background()

	p := models.DefaultProfile()
	p.FamilyHistory = []string{"cancer", "gout"}
	if _, err := repo.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	result, err := server.handleProfileResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Contents[0].URI != profileURI {
		t.Errorf("URI = %s, want %s", result.Contents[0].URI, profileURI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}

	var body struct {
		HasProfile  bool     `json:"has_profile"`
		UnknownTags []string `json:"unknown_tags"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !body.HasProfile {
		t.Error("Expected has_profile true")
	}
	if len(body.UnknownTags) != 1 || body.UnknownTags[0] != "gout" {
		t.Errorf("UnknownTags = %v, want [gout]", body.UnknownTags)
	}
}

func TestHandleAnalysisResourceEmpty(t *testing.T) {
	server, _ := setupTestServer(t)

	result, err := server.handleAnalysisResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["bmi"] != nil {
		t.Errorf("bmi = %v, want null", body["bmi"])
	}
	if body["category"] != "Unknown" {
		t.Errorf("category = %v, want Unknown", body["category"])
	}
	if findings, ok := body["findings"].([]any); !ok || len(findings) != 0 {
		t.Errorf("findings = %v, want []", body["findings"])
	}
}

func TestHandleHistoryResource(t *testing.T) {
	server, repo := setupTestServer(t)
	ctx := context.Background()

	for i := 0; i < historyLimit+2; i++ {
		if _, err := repo.SaveProfile(ctx, models.DefaultProfile()); err != nil {
			t.Fatalf("SaveProfile failed: %v", err)
		}
	}

	result, err := server.handleHistoryResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body.Count != historyLimit {
		t.Errorf("count = %d, want %d", body.Count, historyLimit)
	}
}
