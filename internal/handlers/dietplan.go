package handlers

import (
	"fmt"
	"math"
	"strings"

	"github.com/gin-gonic/gin"

	"petcare-app-server/internal/utils"
)

// DietPlanHandler serves deterministic diet suggestions built from species,
// age, weight, and goal. No external model involved.
type DietPlanHandler struct{}

// NewDietPlanHandler creates a new DietPlanHandler.
func NewDietPlanHandler() *DietPlanHandler {
	return &DietPlanHandler{}
}

// DietGoal is the owner's stated objective for the plan.
type DietGoal string

const (
	GoalMaintenance      DietGoal = "maintenance"
	GoalWeightLoss       DietGoal = "weight-loss"
	GoalWeightGain       DietGoal = "weight-gain"
	GoalSensitiveStomach DietGoal = "sensitive-stomach"
)

var speciesMealTips = map[string]string{
	"dog":   "Use complete dog food + boiled lean protein + fiber-rich vegetables (pumpkin/carrot). Avoid chocolate, grapes, onion.",
	"cat":   "Prioritize high-protein wet food. Keep carbs low. Avoid milk-heavy diet, onion, garlic, chocolate.",
	"cow":   "Balanced fodder plan: green fodder + dry roughage + mineral mix + clean water. Avoid sudden feed changes.",
	"goat":  "Mix browse/forage + dry fodder + mineral mix + clean water. Introduce concentrates gradually.",
	"other": "Use species-appropriate complete feed, clean water, and gradual transitions across 5-7 days.",
}

var goalTips = map[DietGoal]string{
	GoalMaintenance:      "Maintain a stable routine and portion size based on current activity level.",
	GoalWeightLoss:       "Reduce calories by around 10-15%, increase low-calorie fiber, and avoid frequent treats.",
	GoalWeightGain:       "Increase calories gradually with nutrient-dense meals and protein support.",
	GoalSensitiveStomach: "Use easily digestible meals, smaller portions, and single-protein diet trials.",
}

// normalizeSpecies folds free-text species into the supported set.
func normalizeSpecies(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range []string{"dog", "cat", "cow", "goat"} {
		if strings.Contains(value, known) {
			return known
		}
	}
	return "other"
}

// mealFrequency picks a feeding schedule by age bracket.
func mealFrequency(ageYears *int) string {
	if ageYears == nil {
		return "2 meals/day (adjust by vet advice)."
	}
	switch {
	case *ageYears < 1:
		return "3-4 small meals/day."
	case *ageYears >= 7:
		return "2 smaller meals/day with easy digestion focus."
	default:
		return "2 meals/day."
	}
}

// calorieHint estimates a daily energy target from species and weight.
func calorieHint(speciesKey string, weightKg *float64, goal DietGoal) string {
	if weightKg == nil || *weightKg <= 0 || math.IsNaN(*weightKg) || math.IsInf(*weightKg, 0) {
		return "Weight-based calorie estimate unavailable. Share current weight for better suggestions."
	}

	var kcal float64
	if speciesKey == "cat" {
		kcal = 40 * (*weightKg)
	} else {
		kcal = 30*(*weightKg) + 70
	}

	switch goal {
	case GoalWeightLoss:
		kcal *= 0.85
	case GoalWeightGain:
		kcal *= 1.1
	}

	return fmt.Sprintf("Approx daily energy target: %d kcal/day.", int(math.Round(kcal)))
}

// DietPlanRequest represents the request body for a diet plan suggestion.
type DietPlanRequest struct {
	PetName   string   `json:"petName"`
	Species   string   `json:"species"`
	AgeYears  *int     `json:"ageYears"`
	WeightKg  *float64 `json:"weightKg"`
	Goal      DietGoal `json:"goal" binding:"omitempty,oneof=maintenance weight-loss weight-gain sensitive-stomach"`
	Allergies string   `json:"allergies"`
	Question  string   `json:"question"`
}

// DietPlanResponse carries the generated suggestion.
type DietPlanResponse struct {
	Suggestion string `json:"suggestion"`
}

// BuildDietSuggestion assembles the full suggestion text. Exposed for tests.
func BuildDietSuggestion(req DietPlanRequest) string {
	if req.Goal == "" {
		req.Goal = GoalMaintenance
	}

	speciesKey := normalizeSpecies(req.Species)
	petLabel := strings.TrimSpace(req.PetName)
	if petLabel == "" {
		petLabel = "your pet"
	}

	ageLabel := "age not provided"
	if req.AgeYears != nil {
		ageLabel = fmt.Sprintf("%d year(s)", *req.AgeYears)
	}

	hydrationTip := "Ensure fresh water is available at all times."
	questionLower := strings.ToLower(req.Question)
	if strings.Contains(questionLower, "water") || strings.Contains(questionLower, "hydrate") {
		hydrationTip = "Keep fresh water available all day and monitor urine/output."
	}

	allergyNote := "No allergy info provided; introduce new ingredients one by one."
	if allergies := strings.TrimSpace(req.Allergies); allergies != "" {
		allergyNote = fmt.Sprintf("Avoid: %s.", allergies)
	}

	lines := []string{
		fmt.Sprintf("Diet suggestion for %s (%s, %s):", petLabel, speciesKey, ageLabel),
		fmt.Sprintf("1) Goal: %s", goalTips[req.Goal]),
		fmt.Sprintf("2) Meal structure: %s", mealFrequency(req.AgeYears)),
		fmt.Sprintf("3) Food focus: %s", speciesMealTips[speciesKey]),
		fmt.Sprintf("4) %s", calorieHint(speciesKey, req.WeightKg, req.Goal)),
		fmt.Sprintf("5) Allergy note: %s", allergyNote),
		fmt.Sprintf("6) %s", hydrationTip),
		"7) Monitor stool quality, appetite, and weight weekly. If vomiting/diarrhea continues for 24h+, contact your vet.",
		"This is supportive guidance, not a medical diagnosis.",
	}
	return strings.Join(lines, "\n")
}

// SuggestDietPlan handles generating a diet plan suggestion.
func (h *DietPlanHandler) SuggestDietPlan(c *gin.Context) {
	var req DietPlanRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	utils.Success(c, "Diet plan generated successfully", DietPlanResponse{
		Suggestion: BuildDietSuggestion(req),
	})
}
