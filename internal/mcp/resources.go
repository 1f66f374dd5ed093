// ABOUTME: MCP resource implementations for the health profile.
// ABOUTME: Provides carewise://profile, carewise://analysis, and carewise://history.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/carewise/internal/assess"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	profileURI  = "carewise://profile"
	analysisURI = "carewise://analysis"
	historyURI  = "carewise://history"
)

// historyLimit is how many snapshots the history resource includes.
const historyLimit = 10

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         profileURI,
		Name:        "Health Profile",
		Description: "The saved health profile",
		MIMEType:    "application/json",
	}, s.handleProfileResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         analysisURI,
		Name:        "Health Analysis",
		Description: "BMI, category, and risk findings for the saved profile",
		MIMEType:    "application/json",
	}, s.handleAnalysisResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         historyURI,
		Name:        "Assessment History",
		Description: "The most recent assessment snapshots",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// Resource handlers

func (s *Server) handleProfileResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	p, err := s.repo.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	result := map[string]any{
		"has_profile": p != nil,
		"profile":     p,
	}
	if p != nil {
		result["unknown_tags"] = p.UnknownTags()
	}
	return jsonResource(profileURI, result)
}

func (s *Server) handleAnalysisResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	p, err := s.repo.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return jsonResource(analysisURI, assess.Analyze(p))
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	assessments, err := s.repo.Assessments(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	result := map[string]any{
		"generated_at": time.Now().Format(time.RFC3339),
		"assessments":  assessments,
		"count":        len(assessments),
	}
	return jsonResource(historyURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
