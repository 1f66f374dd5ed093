// ABOUTME: Integration tests for the carewise CLI.
// ABOUTME: Builds the binary and runs the full profile workflow against SQLite.
package test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "carewise")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/carewise")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	tmpDir := t.TempDir()
	env := append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
		"CAREWISE_BACKEND=sqlite",
		"CAREWISE_LOG_LEVEL=error",
	)

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = env
		cmd.Dir = tmpDir
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// No profile yet
	output, err := run("analysis")
	if err != nil {
		t.Fatalf("Failed to run analysis: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No health assessment found") {
		t.Errorf("Expected empty-state message, got: %s", output)
	}

	// Save a profile
	output, err = run("profile", "set", "--age", "64", "--height", "170", "--weight", "100", "--smoking", "current")
	if err != nil {
		t.Fatalf("Failed to set profile: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Saved profile") || !strings.Contains(output, "BMI 34.6 (Obese)") {
		t.Errorf("Expected save summary, got: %s", output)
	}

	// Reject out-of-range input
	output, err = run("profile", "set", "--sleep", "20")
	if err == nil {
		t.Errorf("Expected validation failure, got: %s", output)
	}

	// Text analysis
	output, err = run("analysis")
	if err != nil {
		t.Fatalf("Failed to run analysis: %v\n%s", err, output)
	}
	for _, want := range []string{"Type 2 Diabetes", "Hypertension", "Lung Cancer", "5 potential health risks"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in analysis, got: %s", want, output)
		}
	}

	// JSON analysis
	output, err = run("analysis", "--json")
	if err != nil {
		t.Fatalf("Failed to run analysis --json: %v\n%s", err, output)
	}
	var doc struct {
		Category string `json:"category"`
		Findings []struct {
			Condition string `json:"condition"`
			Risk      string `json:"risk"`
		} `json:"findings"`
	}
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("Invalid JSON analysis: %v\n%s", err, output)
	}
	if doc.Category != "Obese" || len(doc.Findings) != 5 {
		t.Errorf("Unexpected analysis: %+v", doc)
	}
	if doc.Findings[0].Condition != "Type 2 Diabetes" || doc.Findings[0].Risk != "high" {
		t.Errorf("Unexpected first finding: %+v", doc.Findings[0])
	}

	// History
	output, err = run("history")
	if err != nil {
		t.Fatalf("Failed to list history: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Obese") || !strings.Contains(output, "5 risks") {
		t.Errorf("Expected assessment in history, got: %s", output)
	}

	// Export
	backup := filepath.Join(tmpDir, "backup.json")
	output, err = run("export", "json", "-o", backup)
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if _, err := os.Stat(backup); err != nil {
		t.Errorf("Expected backup file: %v", err)
	}
}
