// ABOUTME: CLI commands for assessment history.
// ABOUTME: Lists snapshots and shows or deletes one by ID prefix.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/carewise/internal/assess"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historySince string
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"ls", "h"},
	Short:   "List earlier assessments",
	Long: `List the assessment snapshots recorded each time the profile was saved.

OUTPUT FORMAT:

  Each line shows: ID  TIMESTAMP  BMI  CATEGORY  RISKS

  The ID is an 8-character prefix you can use with show and delete.

EXAMPLES:

  carewise history                    # Last 20 assessments
  carewise history -n 5               # Last 5
  carewise history --since 2026-01-01 # Assessments from 2026 onward
  carewise history show abc12345      # Full assessment
  carewise history delete abc12345    # Remove one`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var since time.Time
		if historySince != "" {
			t, err := parseTime(historySince)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", historySince)
			}
			since = t
		}

		limit := historyLimit
		if !since.IsZero() {
			limit = 0
		}
		assessments, err := repo.Assessments(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("failed to list assessments: %w", err)
		}

		if !since.IsZero() {
			kept := assessments[:0]
			for _, a := range assessments {
				if !a.AssessedAt.Before(since) {
					kept = append(kept, a)
				}
			}
			assessments = kept
			if historyLimit > 0 && len(assessments) > historyLimit {
				assessments = assessments[:historyLimit]
			}
		}

		if len(assessments) == 0 {
			fmt.Println("No assessments found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, a := range assessments {
			bmi := "  -  "
			if a.BMI != nil {
				bmi = fmt.Sprintf("%5.1f", *a.BMI)
			}
			risks := fmt.Sprintf("%d risks", len(a.Findings))
			if top := a.HighestRisk(); top != "" {
				risks += " " + riskColor(top).Sprintf("(highest %s)", top)
			}
			fmt.Printf("%s %s %s %s %s\n",
				faint.Sprint(a.ID.String()[:8]),
				faint.Sprint(a.AssessedAt.Format("2006-01-02 15:04")),
				bmi,
				padRight(string(a.Category), 12),
				risks)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := repo.Assessment(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("assessment not found: %w", err)
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s %s\n", faint.Sprint(a.ID.String()[:8]), a.AssessedAt.Format("2006-01-02 15:04"))
		if a.Notes != nil && *a.Notes != "" {
			faint.Printf("  %s\n", truncate(*a.Notes, 60))
		}
		fmt.Println()
		printAnalysis(assess.AnalyzeSnapshot(a))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete one assessment",
	Long: `Delete an assessment by its ID or ID prefix.

If the prefix matches more than one assessment, nothing is deleted and an
error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := repo.Assessment(ctx, args[0])
		if err != nil {
			return fmt.Errorf("assessment not found: %w", err)
		}
		if err := repo.DeleteAssessment(ctx, a.ID.String()); err != nil {
			return fmt.Errorf("failed to delete assessment: %w", err)
		}

		color.Yellow("✗ Deleted assessment")
		fmt.Printf("  %s %s %s\n",
			color.New(color.Faint).Sprint(a.ID.String()[:8]),
			a.AssessedAt.Format("2006-01-02 15:04"),
			a.Category)
		return nil
	},
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of results")
	historyCmd.Flags().StringVar(&historySince, "since", "", "only include assessments since this time (YYYY-MM-DD)")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
