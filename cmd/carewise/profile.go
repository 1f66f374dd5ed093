// ABOUTME: CLI commands for the health profile.
// ABOUTME: Supports set (partial updates over the saved profile), show, and clear.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/carewise/internal/assess"
	"github.com/harperreed/carewise/internal/models"
	"github.com/spf13/cobra"
)

var (
	setAge        int
	setHeight     float64
	setWeight     float64
	setGender     string
	setActivity   string
	setSleep      float64
	setSmoking    string
	setDiet       string
	setMeals      int
	setSnacks     int
	setWater      int
	setAlcohol    string
	setCaffeine   string
	setConditions string
	setFamily     string
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"p"},
	Short:   "Manage your health profile",
	Long: `Manage the health profile the risk analysis is based on.

COMMANDS:

  set      Update one or more profile fields
  show     Print the saved profile
  clear    Remove the saved profile (history is kept)`,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the health profile",
	Long: `Update the health profile. Only the flags you pass change; the rest keep
their saved values, or the intake defaults when nothing is saved yet.

Every save records an assessment you can review with 'carewise history'.

RANGES:

  --age 1-120   --height 50-250 (cm)   --weight 1-300 (kg)   --sleep 3-12 (h)
  --meals 1-6   --snacks 0-10          --water 0-20 (glasses)

CHOICES:

  --gender     male, female, other
  --activity   sedentary, light, moderate, high
  --smoking    never, former, current
  --alcohol    none, occasional, moderate, frequent
  --caffeine   none, light, moderate, heavy

TAGS:

  --conditions and --family take comma-separated lists and replace the saved
  list. Pass "none" to clear it.

  Conditions: ` + strings.Join(models.KnownConditions, ", ") + `
  Family:     ` + strings.Join(models.KnownFamilyHistory, ", ") + `

EXAMPLES:

  carewise profile set --age 52 --height 178 --weight 96
  carewise profile set --smoking former --sleep 6.5
  carewise profile set --conditions "diabetes, hypertension"
  carewise profile set --family none`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p, err := repo.Profile(ctx)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		if p == nil {
			p = models.DefaultProfile()
		}
		applyProfileFlags(cmd, p)

		a, err := repo.SaveProfile(ctx, p)
		if err != nil {
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				color.Red("✗ Profile not saved")
				for _, f := range verr.Fields {
					fmt.Printf("  %s\n", f)
				}
			}
			return err
		}

		color.Green("✓ Saved profile")
		bmi := "-"
		if a.BMI != nil {
			bmi = fmt.Sprintf("%.1f", *a.BMI)
		}
		fmt.Printf("  %s BMI %s (%s), %d potential risks\n",
			color.New(color.Faint).Sprint(a.ID.String()[:8]),
			bmi, a.Category, len(a.Findings))

		for _, tag := range p.UnknownTags() {
			color.Yellow("  ⚠ %q is not a known tag; it is stored but no rule reads it", tag)
		}
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := repo.Profile(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		if p == nil {
			fmt.Println("No health assessment found.")
			fmt.Println("Run 'carewise profile set' to create one.")
			return nil
		}
		printProfile(p)
		return nil
	},
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved profile",
	Long: `Remove the saved profile. Assessment history is kept; delete entries with
'carewise history delete <id>'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.ClearProfile(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear profile: %w", err)
		}
		color.Yellow("✗ Cleared health profile")
		return nil
	},
}

// applyProfileFlags copies every flag the user passed onto p.
func applyProfileFlags(cmd *cobra.Command, p *models.HealthProfile) {
	changed := cmd.Flags().Changed

	if changed("age") {
		p.Age = setAge
	}
	if changed("height") {
		p.Height = setHeight
	}
	if changed("weight") {
		p.Weight = setWeight
	}
	if changed("gender") {
		p.Gender = models.Gender(strings.ToLower(setGender))
	}
	if changed("activity") {
		p.PhysicalActivity = models.ActivityLevel(strings.ToLower(setActivity))
	}
	if changed("sleep") {
		p.SleepHours = setSleep
	}
	if changed("smoking") {
		p.SmokingStatus = models.SmokingStatus(strings.ToLower(setSmoking))
	}
	if changed("diet") {
		p.EatingHabits.DietType = strings.ToLower(setDiet)
	}
	if changed("meals") {
		p.EatingHabits.MealsPerDay = setMeals
	}
	if changed("snacks") {
		p.EatingHabits.SnacksPerDay = setSnacks
	}
	if changed("water") {
		p.EatingHabits.WaterConsumption = setWater
	}
	if changed("alcohol") {
		p.EatingHabits.AlcoholConsumption = models.AlcoholConsumption(strings.ToLower(setAlcohol))
	}
	if changed("caffeine") {
		p.EatingHabits.CaffeineConsumption = models.CaffeineConsumption(strings.ToLower(setCaffeine))
	}
	if changed("conditions") {
		p.PreExistingConditions = parseTags(setConditions)
	}
	if changed("family") {
		p.FamilyHistory = parseTags(setFamily)
	}
}

// parseTags splits a comma-separated list into lowercase tags. "none" and
// the empty string produce an empty list.
func parseTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" || tag == "none" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func printProfile(p *models.HealthProfile) {
	faint := color.New(color.Faint)
	row := func(label string, value any) {
		fmt.Printf("  %s %v\n", faint.Sprint(padRight(label, 14)), value)
	}
	list := func(tags []string) string {
		if len(tags) == 0 {
			return "none"
		}
		return strings.Join(tags, ", ")
	}

	color.New(color.Bold).Println("Health profile")
	row("Age", p.Age)
	row("Gender", p.Gender)
	row("Height", fmt.Sprintf("%.1f cm", p.Height))
	row("Weight", fmt.Sprintf("%.1f kg", p.Weight))
	if bmi, ok := assess.CalculateBMI(p); ok {
		row("BMI", fmt.Sprintf("%.1f (%s)", bmi, assess.CategoryFor(bmi)))
	}
	row("Activity", p.PhysicalActivity)
	row("Sleep", fmt.Sprintf("%.1f h", p.SleepHours))
	row("Smoking", p.SmokingStatus)
	row("Conditions", list(p.PreExistingConditions))
	row("Family", list(p.FamilyHistory))

	fmt.Println()
	color.New(color.Bold).Println("Eating habits")
	row("Diet", p.EatingHabits.DietType)
	row("Meals", p.EatingHabits.MealsPerDay)
	row("Snacks", p.EatingHabits.SnacksPerDay)
	row("Water", fmt.Sprintf("%d glasses", p.EatingHabits.WaterConsumption))
	row("Alcohol", p.EatingHabits.AlcoholConsumption)
	row("Caffeine", p.EatingHabits.CaffeineConsumption)
}

func init() {
	f := profileSetCmd.Flags()
	f.IntVar(&setAge, "age", 0, "age in years")
	f.Float64Var(&setHeight, "height", 0, "height in centimeters")
	f.Float64Var(&setWeight, "weight", 0, "weight in kilograms")
	f.StringVar(&setGender, "gender", "", "male, female, or other")
	f.StringVar(&setActivity, "activity", "", "sedentary, light, moderate, or high")
	f.Float64Var(&setSleep, "sleep", 0, "average nightly sleep in hours")
	f.StringVar(&setSmoking, "smoking", "", "never, former, or current")
	f.StringVar(&setDiet, "diet", "", "diet type ("+strings.Join(models.DietTypes, ", ")+")")
	f.IntVar(&setMeals, "meals", 0, "meals per day")
	f.IntVar(&setSnacks, "snacks", 0, "snacks per day")
	f.IntVar(&setWater, "water", 0, "glasses of water per day")
	f.StringVar(&setAlcohol, "alcohol", "", "none, occasional, moderate, or frequent")
	f.StringVar(&setCaffeine, "caffeine", "", "none, light, moderate, or heavy")
	f.StringVar(&setConditions, "conditions", "", "comma-separated pre-existing conditions")
	f.StringVar(&setFamily, "family", "", "comma-separated family history")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileClearCmd)
	rootCmd.AddCommand(profileCmd)
}
