// ABOUTME: Export and import of the profile and its assessment history.
// ABOUTME: Supports JSON and YAML; both round-trip through ExportData.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/carewise/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	ExportVersion = "1.0"
	ExportTool    = "carewise"
)

// ExportData represents the full export format for profile data.
type ExportData struct {
	Version     string                `json:"version" yaml:"version"`
	ExportedAt  time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool        string                `json:"tool" yaml:"tool"`
	Profile     *models.HealthProfile `json:"profile" yaml:"profile"`
	Assessments []*models.Assessment  `json:"assessments" yaml:"assessments"`
}

// Export collects the current profile and every assessment.
func (s *ProfileStore) Export(ctx context.Context) (*ExportData, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}
	assessments, err := s.Assessments(ctx, 0)
	if err != nil {
		return nil, err
	}
	return &ExportData{
		Version:     ExportVersion,
		ExportedAt:  time.Now(),
		Tool:        ExportTool,
		Profile:     p,
		Assessments: assessments,
	}, nil
}

// Import restores a profile and its history. Assessments keep their IDs,
// so importing the same file twice does not duplicate history.
func (s *ProfileStore) Import(ctx context.Context, data *ExportData) error {
	if data == nil {
		return fmt.Errorf("import: no data")
	}

	if data.Profile != nil {
		if err := models.Validate(data.Profile); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
		raw, err := json.Marshal(data.Profile)
		if err != nil {
			return fmt.Errorf("marshal profile: %w", err)
		}
		if err := s.kv.Put(ctx, ProfileKey, raw); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}

	for _, a := range data.Assessments {
		if a == nil {
			continue
		}
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if a.Findings == nil {
			a.Findings = []models.RiskFinding{}
		}
		if err := s.putAssessment(ctx, a); err != nil {
			return fmt.Errorf("import assessment %s: %w", a.ID, err)
		}
	}
	return nil
}

// ExportJSON exports all data as indented JSON.
func ExportJSON(ctx context.Context, r Repository) ([]byte, error) {
	data, err := r.Export(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(ctx context.Context, r Repository) ([]byte, error) {
	data, err := r.Export(ctx)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ParseExport decodes an export file. The format is chosen by file name
// extension; anything other than .yaml or .yml is read as JSON.
func ParseExport(filename string, raw []byte) (*ExportData, error) {
	var data ExportData
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("unmarshal YAML: %w", err)
		}
	} else {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
	}
	if data.Tool != "" && data.Tool != ExportTool {
		return nil, fmt.Errorf("export was written by %q, not %s", data.Tool, ExportTool)
	}
	return &data, nil
}
