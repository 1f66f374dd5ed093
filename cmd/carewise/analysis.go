// ABOUTME: CLI command for the health risk analysis.
// ABOUTME: Prints BMI, lifestyle notes, and every finding with its measures.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/carewise/internal/assess"
	"github.com/harperreed/carewise/internal/models"
	"github.com/spf13/cobra"
)

var analysisJSON bool

var analysisCmd = &cobra.Command{
	Use:     "analysis",
	Aliases: []string{"analyze", "a"},
	Short:   "Analyze the saved profile",
	Long: `Analyze the saved health profile.

OUTPUT:

  BMI and category, with advice for the category
  Sleep quality and the effect of your activity level
  Every identified risk, its level (low, moderate, high), and preventive measures

Use --json for the full analysis document, the same one 'carewise serve'
returns from GET /api/analysis.

EXAMPLES:

  carewise analysis
  carewise a --json | jq '.findings[].condition'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := repo.Profile(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		a := assess.Analyze(p)

		if analysisJSON {
			data, err := json.MarshalIndent(a, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if !a.HasProfile {
			fmt.Println("No health assessment found.")
			fmt.Println("Run 'carewise profile set' to create one.")
			return nil
		}

		printAnalysis(a)
		return nil
	},
}

func printAnalysis(a assess.Analysis) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Println("Body mass index")
	if a.BMI != nil {
		fmt.Printf("  %.1f  %s\n", *a.BMI, categoryColor(a.Category).Sprint(a.Category))
	}
	if a.CategoryAdvice != "" {
		faint.Printf("  %s\n", a.CategoryAdvice)
	}
	fmt.Println()

	bold.Println("Lifestyle")
	fmt.Printf("  Sleep: %s\n", a.SleepQuality)
	faint.Printf("  %s\n", a.LifestyleImpact)
	fmt.Println()

	bold.Println("Risks")
	fmt.Printf("  %s\n", a.Summary)
	for _, f := range a.Findings {
		fmt.Println()
		fmt.Printf("  %s  %s\n", padRight(f.Condition, 32), riskColor(f.Risk).Sprint(f.Risk.Title()))
		for _, m := range f.PreventiveMeasures {
			fmt.Printf("    • %s\n", m)
		}
	}
	fmt.Println()
	faint.Println(a.Disclaimer)
}

func riskColor(r models.RiskLevel) *color.Color {
	switch r {
	case models.RiskHigh:
		return color.New(color.FgRed, color.Bold)
	case models.RiskModerate:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func categoryColor(c models.BMICategory) *color.Color {
	switch c {
	case models.BMINormal:
		return color.New(color.FgGreen)
	case models.BMIOverweight, models.BMIUnderweight:
		return color.New(color.FgYellow)
	case models.BMIObese:
		return color.New(color.FgRed)
	default:
		return color.New(color.Faint)
	}
}

func init() {
	analysisCmd.Flags().BoolVar(&analysisJSON, "json", false, "print the analysis as JSON")
	rootCmd.AddCommand(analysisCmd)
}
