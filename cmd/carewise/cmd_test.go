// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Tests parseTime, truncate, padRight, parseTags, and commands over real storage.
package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/carewise/internal/models"
	"github.com/harperreed/carewise/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "date and time with space",
			input:   "2025-01-31 08:30",
			wantErr: false,
		},
		{
			name:    "date and time with T",
			input:   "2025-01-31T08:30",
			wantErr: false,
		},
		{
			name:    "date only",
			input:   "2025-01-31",
			wantErr: false,
		},
		{
			name:    "RFC3339",
			input:   "2025-01-31T08:30:00Z",
			wantErr: false,
		},
		{
			name:    "RFC3339 with offset",
			input:   "2025-01-31T08:30:00+05:00",
			wantErr: false,
		},
		{
			name:    "invalid format",
			input:   "31-01-2025",
			wantErr: true,
		},
		{
			name:    "invalid random string",
			input:   "not a date",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseTime(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("parseTime(%q) expected error, got nil", tt.input)
				}
				return
			}

			if err != nil {
				t.Errorf("parseTime(%q) unexpected error: %v", tt.input, err)
				return
			}

			if result.IsZero() {
				t.Errorf("parseTime(%q) returned zero time", tt.input)
			}
		})
	}
}

func TestParseTimeValues(t *testing.T) {
	// Test specific date value parsing
	result, err := parseTime("2025-06-15")
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}

	if result.Year() != 2025 || result.Month() != time.June || result.Day() != 15 {
		t.Errorf("parseTime returned wrong date: got %v", result)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string no truncation",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exact length",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "needs truncation",
			input:  "hello world this is a long string",
			maxLen: 10,
			want:   "hello w...",
		},
		{
			name:   "truncate at boundary",
			input:  "abcdefghij",
			maxLen: 6,
			want:   "abc...",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 10,
			want:   "",
		},
		{
			name:   "very short maxLen",
			input:  "hello",
			maxLen: 3,
			want:   "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{
			name:   "needs padding",
			input:  "hi",
			length: 5,
			want:   "hi   ",
		},
		{
			name:   "exact length",
			input:  "hello",
			length: 5,
			want:   "hello",
		},
		{
			name:   "longer than length",
			input:  "hello world",
			length: 5,
			want:   "hello world",
		},
		{
			name:   "empty string",
			input:  "",
			length: 5,
			want:   "     ",
		},
		{
			name:   "zero length",
			input:  "hello",
			length: 0,
			want:   "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padRight(tt.input, tt.length)
			if got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"none", []string{}},
		{"diabetes", []string{"diabetes"}},
		{"Diabetes, Heart Disease", []string{"diabetes", "heart disease"}},
		{" cancer ,, hypertension ,", []string{"cancer", "hypertension"}},
	}

	for _, tt := range tests {
		got := parseTags(tt.input)
		if got == nil {
			t.Errorf("parseTags(%q) returned nil", tt.input)
			continue
		}
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("parseTags(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "carewise" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "carewise")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}
	if rootCmd.PersistentFlags().Lookup("backend") == nil {
		t.Error("Expected --backend persistent flag")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"profile", "analysis", "history", "export", "import", "migrate", "serve", "mcp", "sync", "install-skill"}

	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("Expected %q command to be registered", name)
		}
	}
}

func TestAnalysisCmdAliases(t *testing.T) {
	aliases := map[string]bool{}
	for _, a := range analysisCmd.Aliases {
		aliases[a] = true
	}
	for _, want := range []string{"analyze", "a"} {
		if !aliases[want] {
			t.Errorf("Expected alias %q for analysis", want)
		}
	}
}

func TestHistoryDeleteCmdArgs(t *testing.T) {
	if err := historyDeleteCmd.Args(historyDeleteCmd, []string{}); err == nil {
		t.Error("Expected error with no args")
	}
	if err := historyDeleteCmd.Args(historyDeleteCmd, []string{"abc12345"}); err != nil {
		t.Errorf("Unexpected error with one arg: %v", err)
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	if strings.Join(exportCmd.ValidArgs, ",") != "json,yaml" {
		t.Errorf("ValidArgs = %v, want [json yaml]", exportCmd.ValidArgs)
	}
}

func TestSkipsStore(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		want bool
	}{
		{migrateCmd, true},
		{installSkillCmd, true},
		{syncStatusCmd, true},
		{syncNowCmd, true},
		{profileSetCmd, false},
		{analysisCmd, false},
		{serveCmd, false},
	}

	for _, tt := range tests {
		if got := skipsStore(tt.cmd); got != tt.want {
			t.Errorf("skipsStore(%s) = %v, want %v", tt.cmd.CommandPath(), got, tt.want)
		}
	}
}

// setupTestCLI points config and data at a temp dir and selects SQLite.
// It returns the data dir.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("CAREWISE_BACKEND", "sqlite")
	t.Setenv("CAREWISE_DATA_DIR", "")
	t.Setenv("CAREWISE_LOG_LEVEL", "error")

	t.Cleanup(func() {
		resetFlags(rootCmd)
		if repo != nil {
			_ = repo.Close()
			repo = nil
		}
	})

	return filepath.Join(tmpDir, "data", "carewise")
}

// resetFlags returns every flag to its default so runs don't leak into
// each other through the package-level flag variables.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	// A failed run skips PersistentPostRunE and leaves the store open.
	if repo != nil {
		_ = repo.Close()
		repo = nil
	}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// withStore opens the SQLite store in dataDir for inspection.
func withStore(t *testing.T, dataDir string, fn func(s *storage.ProfileStore)) {
	t.Helper()

	db, err := storage.Open(filepath.Join(dataDir, "carewise.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	s := storage.NewProfileStore(db, nil)
	defer func() { _ = s.Close() }()
	fn(s)
}

func TestProfileSetCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	ctx := context.Background()

	if err := run(t, "profile", "set", "--age", "70", "--smoking", "current"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	withStore(t, dataDir, func(s *storage.ProfileStore) {
		p, err := s.Profile(ctx)
		if err != nil || p == nil {
			t.Fatalf("Expected saved profile, got %v (err %v)", p, err)
		}
		if p.Age != 70 || p.SmokingStatus != models.SmokingCurrent {
			t.Errorf("Unexpected profile: age=%d smoking=%s", p.Age, p.SmokingStatus)
		}
		if p.Weight != 70 || p.Height != 170 {
			t.Errorf("Expected intake defaults for unset fields, got %.0f cm / %.0f kg", p.Height, p.Weight)
		}

		assessments, _ := s.Assessments(ctx, 0)
		if len(assessments) != 1 {
			t.Fatalf("Expected 1 assessment, got %d", len(assessments))
		}
		if len(assessments[0].Findings) != 3 {
			t.Errorf("Expected 3 findings (hypertension, lung cancer, COPD), got %d", len(assessments[0].Findings))
		}
	})

	// A second run only changes what it names.
	if err := run(t, "profile", "set", "--weight", "100"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	withStore(t, dataDir, func(s *storage.ProfileStore) {
		p, _ := s.Profile(ctx)
		if p.Age != 70 || p.Weight != 100 {
			t.Errorf("Expected age kept and weight updated, got age=%d weight=%.0f", p.Age, p.Weight)
		}
		assessments, _ := s.Assessments(ctx, 0)
		if len(assessments) != 2 {
			t.Errorf("Expected 2 assessments, got %d", len(assessments))
		}
	})
}

func TestProfileSetCmdTags(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := run(t, "profile", "set", "--conditions", "Diabetes, hypertension", "--family", "cancer"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}
	if err := run(t, "profile", "set", "--family", "none"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	withStore(t, dataDir, func(s *storage.ProfileStore) {
		p, _ := s.Profile(context.Background())
		if strings.Join(p.PreExistingConditions, ",") != "diabetes,hypertension" {
			t.Errorf("PreExistingConditions = %v", p.PreExistingConditions)
		}
		if len(p.FamilyHistory) != 0 {
			t.Errorf("Expected family history cleared, got %v", p.FamilyHistory)
		}
	})
}

func TestProfileSetCmdInvalid(t *testing.T) {
	dataDir := setupTestCLI(t)

	err := run(t, "profile", "set", "--age", "200")
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "Age") {
		t.Errorf("Error %q should name the Age field", err)
	}

	withStore(t, dataDir, func(s *storage.ProfileStore) {
		p, _ := s.Profile(context.Background())
		if p != nil {
			t.Error("Invalid profile must not be saved")
		}
	})
}

func TestProfileClearCmd(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := run(t, "profile", "set"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}
	if err := run(t, "profile", "clear"); err != nil {
		t.Fatalf("profile clear failed: %v", err)
	}

	withStore(t, dataDir, func(s *storage.ProfileStore) {
		ctx := context.Background()
		p, _ := s.Profile(ctx)
		if p != nil {
			t.Error("Expected profile cleared")
		}
		assessments, _ := s.Assessments(ctx, 0)
		if len(assessments) != 1 {
			t.Errorf("Expected history kept, got %d entries", len(assessments))
		}
	})
}

func TestAnalysisCmdWithoutProfile(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "analysis"); err != nil {
		t.Errorf("analysis failed: %v", err)
	}
	if err := run(t, "analyze", "--json"); err != nil {
		t.Errorf("analysis --json failed: %v", err)
	}
}

func TestHistoryDeleteCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	ctx := context.Background()

	if err := run(t, "profile", "set"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	var id string
	withStore(t, dataDir, func(s *storage.ProfileStore) {
		assessments, _ := s.Assessments(ctx, 0)
		id = assessments[0].ID.String()
	})

	if err := run(t, "history", "show", id[:8]); err != nil {
		t.Fatalf("history show failed: %v", err)
	}
	if err := run(t, "history", "delete", id[:8]); err != nil {
		t.Fatalf("history delete failed: %v", err)
	}
	if err := run(t, "history", "delete", id[:8]); err == nil {
		t.Error("Expected error deleting a missing assessment")
	}

	withStore(t, dataDir, func(s *storage.ProfileStore) {
		assessments, _ := s.Assessments(ctx, 0)
		if len(assessments) != 0 {
			t.Errorf("Expected no assessments, got %d", len(assessments))
		}
	})
}

func TestHistoryCmdSince(t *testing.T) {
	setupTestCLI(t)

	if err := run(t, "profile", "set"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}
	if err := run(t, "history", "--since", time.Now().AddDate(0, 0, -1).Format("2006-01-02")); err != nil {
		t.Errorf("history --since failed: %v", err)
	}
	if err := run(t, "history", "--since", "yesterday"); err == nil {
		t.Error("Expected error for invalid --since")
	}
}

func TestExportImportCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	backup := filepath.Join(t.TempDir(), "backup.yaml")

	if err := run(t, "profile", "set", "--age", "52", "--family", "heart disease"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}
	if err := run(t, "export", "yaml", "-o", backup); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if _, err := os.Stat(backup); err != nil {
		t.Fatalf("Expected backup file: %v", err)
	}

	// Restore into a fresh data directory.
	otherDir := filepath.Join(t.TempDir(), "restore")
	t.Setenv("CAREWISE_DATA_DIR", otherDir)

	if err := run(t, "import", backup); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if err := run(t, "import", backup); err != nil {
		t.Fatalf("second import failed: %v", err)
	}

	withStore(t, otherDir, func(s *storage.ProfileStore) {
		ctx := context.Background()
		p, _ := s.Profile(ctx)
		if p == nil || p.Age != 52 {
			t.Fatalf("Expected restored profile with age 52, got %+v", p)
		}
		assessments, _ := s.Assessments(ctx, 0)
		if len(assessments) != 1 {
			t.Errorf("Expected 1 assessment after two imports, got %d", len(assessments))
		}
	})

	// The source is untouched.
	withStore(t, dataDir, func(s *storage.ProfileStore) {
		assessments, _ := s.Assessments(context.Background(), 0)
		if len(assessments) != 1 {
			t.Errorf("Expected source history intact, got %d", len(assessments))
		}
	})
}

func TestMigrateCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	ctx := context.Background()

	if err := run(t, "profile", "set", "--weight", "90"); err != nil {
		t.Fatalf("profile set failed: %v", err)
	}

	if err := run(t, "migrate", "--to", "badger", "--dry-run"); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if nonEmpty, _ := storage.IsDirNonEmpty(filepath.Join(dataDir, "badger")); nonEmpty {
		// Opening badger creates its files; the keys are what must be absent.
		bkv, err := storage.OpenBadger(filepath.Join(dataDir, "badger"))
		if err != nil {
			t.Fatalf("OpenBadger failed: %v", err)
		}
		keys, _ := bkv.Keys(ctx, "")
		_ = bkv.Close()
		if len(keys) != 0 {
			t.Errorf("Dry run wrote %d keys", len(keys))
		}
	}

	if err := run(t, "migrate", "--from", "sqlite", "--to", "badger"); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	bkv, err := storage.OpenBadger(filepath.Join(dataDir, "badger"))
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	s := storage.NewProfileStore(bkv, nil)
	defer func() { _ = s.Close() }()

	p, err := s.Profile(ctx)
	if err != nil || p == nil || p.Weight != 90 {
		t.Fatalf("Expected migrated profile with weight 90, got %+v (err %v)", p, err)
	}
	assessments, _ := s.Assessments(ctx, 0)
	if len(assessments) != 1 {
		t.Errorf("Expected 1 migrated assessment, got %d", len(assessments))
	}
}

func TestMigrateCmdRejectsSameBackend(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "migrate", "--from", "sqlite", "--to", "sqlite")
	if err == nil || !strings.Contains(err.Error(), "both") {
		t.Errorf("Expected same-backend error, got %v", err)
	}

	err = run(t, "migrate", "--to", "floppy")
	if err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Errorf("Expected unknown backend error, got %v", err)
	}
}

func TestBackendFlagMemory(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := run(t, "--backend", "memory", "profile", "set", "--age", "40"); err != nil {
		t.Fatalf("profile set on memory failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dataDir, "carewise.db")); err == nil {
		t.Error("memory backend must not create the SQLite file")
	}
}
