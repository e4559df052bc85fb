package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestNormalizeSpecies(t *testing.T) {
	assert.Equal(t, "dog", normalizeSpecies("Dog"))
	assert.Equal(t, "dog", normalizeSpecies("  golden retriever dog  "))
	assert.Equal(t, "cat", normalizeSpecies("CAT"))
	assert.Equal(t, "cow", normalizeSpecies("dairy cow"))
	assert.Equal(t, "goat", normalizeSpecies("goat"))
	assert.Equal(t, "other", normalizeSpecies("parrot"))
	assert.Equal(t, "other", normalizeSpecies(""))
}

func TestMealFrequency(t *testing.T) {
	assert.Equal(t, "3-4 small meals/day.", mealFrequency(intPtr(0)))
	assert.Equal(t, "2 meals/day.", mealFrequency(intPtr(3)))
	assert.Equal(t, "2 smaller meals/day with easy digestion focus.", mealFrequency(intPtr(7)))
	assert.Equal(t, "2 smaller meals/day with easy digestion focus.", mealFrequency(intPtr(12)))
	assert.Equal(t, "2 meals/day (adjust by vet advice).", mealFrequency(nil))
}

func TestCalorieHint(t *testing.T) {
	// Dog formula: 30*kg + 70.
	assert.Equal(t, "Approx daily energy target: 370 kcal/day.", calorieHint("dog", floatPtr(10), GoalMaintenance))
	// Cat formula: 40*kg.
	assert.Equal(t, "Approx daily energy target: 160 kcal/day.", calorieHint("cat", floatPtr(4), GoalMaintenance))
	// Weight-loss trims 15 percent: (30*10+70)*0.85 = 314.5, rounded half up.
	assert.Equal(t, "Approx daily energy target: 315 kcal/day.", calorieHint("dog", floatPtr(10), GoalWeightLoss))
	// Weight-gain adds 10 percent: 160*1.1 = 176.
	assert.Equal(t, "Approx daily energy target: 176 kcal/day.", calorieHint("cat", floatPtr(4), GoalWeightGain))

	assert.Equal(t,
		"Weight-based calorie estimate unavailable. Share current weight for better suggestions.",
		calorieHint("dog", nil, GoalMaintenance))
	assert.Contains(t, calorieHint("dog", floatPtr(0), GoalMaintenance), "unavailable")
	assert.Contains(t, calorieHint("dog", floatPtr(-2), GoalMaintenance), "unavailable")
}

func TestBuildDietSuggestionDefaults(t *testing.T) {
	got := BuildDietSuggestion(DietPlanRequest{})

	assert.True(t, strings.HasPrefix(got, "Diet suggestion for your pet (other, age not provided):"))
	assert.Contains(t, got, goalTips[GoalMaintenance])
	assert.Contains(t, got, "2 meals/day (adjust by vet advice).")
	assert.Contains(t, got, "No allergy info provided; introduce new ingredients one by one.")
	assert.Contains(t, got, "Ensure fresh water is available at all times.")
	assert.Contains(t, got, "not a medical diagnosis")
}

func TestBuildDietSuggestionFullInput(t *testing.T) {
	got := BuildDietSuggestion(DietPlanRequest{
		PetName:   "Bella",
		Species:   "Labrador Dog",
		AgeYears:  intPtr(8),
		WeightKg:  floatPtr(20),
		Goal:      GoalWeightLoss,
		Allergies: "chicken, wheat",
		Question:  "How much water does she need?",
	})

	assert.Contains(t, got, "Diet suggestion for Bella (dog, 8 year(s)):")
	assert.Contains(t, got, goalTips[GoalWeightLoss])
	assert.Contains(t, got, "2 smaller meals/day with easy digestion focus.")
	assert.Contains(t, got, speciesMealTips["dog"])
	// (30*20+70)*0.85 = 569.5 -> 570.
	assert.Contains(t, got, "Approx daily energy target: 570 kcal/day.")
	assert.Contains(t, got, "Avoid: chicken, wheat.")
	assert.Contains(t, got, "monitor urine/output")
}
