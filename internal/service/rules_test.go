package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateNutrientProtein(t *testing.T) {
	cases := []struct {
		name       string
		value      float64
		animalType string
		foodType   string
		want       string
	}{
		{"dry dog excellent boundary", 26, "dog", "dry", RatingExcellent},
		{"dry dog good", 18, "dog", "dry", RatingGood},
		{"dry dog adequate", 14, "dog", "dry", RatingAdequate},
		{"dry dog poor", 13.9, "dog", "dry", RatingPoor},
		{"dry cat excellent", 30, "cat", "dry", RatingExcellent},
		{"dry cat good", 26, "cat", "dry", RatingGood},
		{"dry cat adequate", 20, "cat", "dry", RatingAdequate},
		{"dry cat poor", 19, "cat", "dry", RatingPoor},
		{"wet dog good", 10, "dog", "wet", RatingGood},
		{"wet dog adequate", 7, "dog", "wet", RatingAdequate},
		{"wet dog poor", 6.9, "dog", "wet", RatingPoor},
		{"wet cat good", 12, "cat", "wet", RatingGood},
		{"unspecified animal treated as dog", 26, "", "dry", RatingExcellent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RateNutrient("protein", tc.value, tc.animalType, tc.foodType))
		})
	}
}

func TestRateNutrientProteinMonotone(t *testing.T) {
	rank := map[string]int{RatingPoor: 0, RatingAdequate: 1, RatingGood: 2, RatingExcellent: 3}
	prev := -1
	for v := 0.0; v <= 40; v += 0.5 {
		r := rank[RateNutrient("protein", v, "dog", "dry")]
		assert.GreaterOrEqual(t, r, prev, "protein rating regressed at %v", v)
		prev = r
	}
}

func TestRateNutrientFat(t *testing.T) {
	cases := []struct {
		name       string
		value      float64
		animalType string
		foodType   string
		want       string
	}{
		{"wet low end", 3, "dog", "wet", RatingGood},
		{"wet high end", 8, "cat", "wet", RatingGood},
		{"wet outside band", 9, "dog", "wet", RatingAdequate},
		{"wet below band", 2, "cat", "wet", RatingAdequate},
		{"dry dog band", 10, "dog", "dry", RatingGood},
		{"dry dog above band", 16, "dog", "dry", RatingAdequate},
		{"dry dog below band", 4, "dog", "dry", RatingPoor},
		{"dry cat band", 15, "cat", "dry", RatingGood},
		{"dry cat above band", 21, "cat", "dry", RatingAdequate},
		{"dry cat below band", 8, "cat", "dry", RatingPoor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RateNutrient("fat", tc.value, tc.animalType, tc.foodType))
		})
	}
}

func TestRateNutrientFiberAndUnknown(t *testing.T) {
	assert.Equal(t, RatingGood, RateNutrient("fiber", 2, "dog", "dry"))
	assert.Equal(t, RatingGood, RateNutrient("fiber", 5, "cat", "wet"))
	assert.Equal(t, RatingAdequate, RateNutrient("fiber", 5.5, "dog", "dry"))
	assert.Equal(t, RatingAdequate, RateNutrient("fiber", 1, "dog", "dry"))

	assert.Equal(t, RatingGood, RateNutrient("carbohydrate", 60, "dog", "dry"))
	assert.Equal(t, RatingGood, RateNutrient("ash", 7, "cat", "wet"))
}

func TestClassifyUrgencyBloodWins(t *testing.T) {
	// blood is urgent regardless of everything else
	assert.Equal(t, UrgencyUrgent, ClassifyUrgency(true, false, "갈색", 10))
	assert.Equal(t, UrgencyUrgent, ClassifyUrgency(true, true, "brown", 9))
}

func TestClassifyUrgencyColor(t *testing.T) {
	cases := []struct {
		color string
		want  string
	}{
		{"검정", UrgencyUrgent},
		{"black", UrgencyUrgent},
		{"빨간색", UrgencyUrgent},
		{"red", UrgencyUrgent},
		{"노란색", UrgencyCaution},
		{"orange", UrgencyCaution},
		{"흰색", UrgencyCaution},
		{"gray", UrgencyCaution},
		{"녹색", UrgencyMonitor},
		{"green", UrgencyMonitor},
		{"갈색", UrgencyNormal},
		{"dark-brown", UrgencyNormal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyUrgency(false, false, tc.color, 10), "color %s", tc.color)
	}
}

func TestClassifyUrgencyScoreFloor(t *testing.T) {
	assert.Equal(t, UrgencyUrgent, ClassifyUrgency(false, false, "갈색", 2))
	assert.Equal(t, UrgencyCaution, ClassifyUrgency(false, false, "갈색", 4))
	assert.Equal(t, UrgencyMonitor, ClassifyUrgency(false, false, "갈색", 6))
	assert.Equal(t, UrgencyNormal, ClassifyUrgency(false, false, "갈색", 7))

	// the floor never lowers a color-driven level
	assert.Equal(t, UrgencyCaution, ClassifyUrgency(false, false, "노란색", 8))
	// but a bad score raises a mild color
	assert.Equal(t, UrgencyUrgent, ClassifyUrgency(false, false, "녹색", 1))
}

func TestClassifyUrgencyMucus(t *testing.T) {
	assert.Equal(t, UrgencyMonitor, ClassifyUrgency(false, true, "갈색", 9))
	// mucus only sets a floor; higher levels stay
	assert.Equal(t, UrgencyCaution, ClassifyUrgency(false, true, "노란색", 9))
}

func TestClassifyUrgencyUnknownColor(t *testing.T) {
	// an unmapped color falls through to the score floor
	assert.Equal(t, UrgencyNormal, ClassifyUrgency(false, false, "무지개색", 9))
	assert.Equal(t, UrgencyCaution, ClassifyUrgency(false, false, "무지개색", 3))
}
