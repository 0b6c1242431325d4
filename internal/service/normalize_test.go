package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petmily/petmily-v2/backend/internal/types"
)

func validRawFood(t *testing.T, mutate func(m map[string]interface{})) json.RawMessage {
	t.Helper()
	m := map[string]interface{}{
		"food_type":           "사료",
		"food_name":           "로얄캐닌 인도어",
		"food_name_en":        "Royal Canin Indoor",
		"bowl_description":    "중형 밥그릇에 건사료 약 150g",
		"bowl_description_en": "About 150g of dry kibble in a medium bowl",
		"confidence":          "high",
		"nutrients": map[string]interface{}{
			"protein":      map[string]interface{}{"value": 27.0, "unit": "%"},
			"fat":          map[string]interface{}{"value": 13.0, "unit": "%"},
			"carbohydrate": map[string]interface{}{"value": 40.0, "unit": "%"},
			"fiber":        map[string]interface{}{"value": 4.5, "unit": "%"},
		},
		"ingredients":       []string{"닭고기", "쌀"},
		"ingredients_en":    []string{"Chicken", "Rice"},
		"calories_g":        375.0,
		"food_amount_g":     150.0,
		"recommendation":    "하루 두 번 나누어 급여하세요",
		"recommendation_en": "Split into two meals per day",
	}
	if mutate != nil {
		mutate(m)
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}

func TestNormalizeFoodRecomputesRatings(t *testing.T) {
	out, err := NormalizeFood(validRawFood(t, nil), types.AnalysisHints{})
	require.NoError(t, err)

	assert.Equal(t, RatingExcellent, out.Nutrients["protein"].Rating)
	assert.Equal(t, RatingGood, out.Nutrients["fat"].Rating)
	assert.Equal(t, RatingGood, out.Nutrients["fiber"].Rating)
	assert.Equal(t, RatingGood, out.Nutrients["carbohydrate"].Rating)
	assert.Equal(t, 150.0, out.FoodAmountG)
	assert.Equal(t, 375.0, out.CaloriesPer100g)
}

func TestNormalizeFoodCatWetContext(t *testing.T) {
	raw := validRawFood(t, func(m map[string]interface{}) {
		m["nutrients"] = map[string]interface{}{
			"protein": map[string]interface{}{"value": 9.0, "unit": "%"},
			"fat":     map[string]interface{}{"value": 5.0, "unit": "%"},
		}
	})
	out, err := NormalizeFood(raw, types.AnalysisHints{AnimalType: "cat", FoodType: "wet"})
	require.NoError(t, err)
	assert.Equal(t, RatingAdequate, out.Nutrients["protein"].Rating)
	assert.Equal(t, RatingGood, out.Nutrients["fat"].Rating)
}

func TestNormalizeFoodNameHintOnlyForCommercialFeed(t *testing.T) {
	hint := types.AnalysisHints{FoodName: "오리젠 오리지널"}

	out, err := NormalizeFood(validRawFood(t, nil), hint)
	require.NoError(t, err)
	assert.Equal(t, "오리젠 오리지널", out.FoodName)
	assert.Equal(t, "오리젠 오리지널", out.FoodNameEn)

	homemade := validRawFood(t, func(m map[string]interface{}) {
		m["food_type"] = "화식"
		m["food_name"] = "닭가슴살 야채죽"
		m["food_name_en"] = "Chicken and vegetable porridge"
	})
	out, err = NormalizeFood(homemade, hint)
	require.NoError(t, err)
	assert.Equal(t, "닭가슴살 야채죽", out.FoodName)
	assert.Equal(t, "Chicken and vegetable porridge", out.FoodNameEn)
}

func TestNormalizeFoodAmountPrecedence(t *testing.T) {
	out, err := NormalizeFood(validRawFood(t, nil), types.AnalysisHints{FoodAmountG: 80})
	require.NoError(t, err)
	assert.Equal(t, 80.0, out.FoodAmountG)

	zeroEstimate := validRawFood(t, func(m map[string]interface{}) {
		m["food_amount_g"] = 0.0
	})
	_, err = NormalizeFood(zeroEstimate, types.AnalysisHints{})
	assert.ErrorIs(t, err, ErrInvalidModelOutput)

	out, err = NormalizeFood(zeroEstimate, types.AnalysisHints{FoodAmountG: 95})
	require.NoError(t, err)
	assert.Equal(t, 95.0, out.FoodAmountG)
}

func TestNormalizeFoodIncompleteBilingual(t *testing.T) {
	cases := map[string]func(m map[string]interface{}){
		"missing english name":   func(m map[string]interface{}) { m["food_name_en"] = "" },
		"missing korean summary": func(m map[string]interface{}) { m["bowl_description"] = "" },
		"missing recommendation": func(m map[string]interface{}) { m["recommendation_en"] = "  " },
		"one-sided ingredients":  func(m map[string]interface{}) { m["ingredients_en"] = []string{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizeFood(validRawFood(t, mutate), types.AnalysisHints{})
			assert.ErrorIs(t, err, ErrIncompleteBilingual)
		})
	}
}

func TestNormalizeFoodNegativeNutrient(t *testing.T) {
	raw := validRawFood(t, func(m map[string]interface{}) {
		m["nutrients"] = map[string]interface{}{
			"protein": map[string]interface{}{"value": -2.0, "unit": "%"},
		}
	})
	_, err := NormalizeFood(raw, types.AnalysisHints{})
	assert.ErrorIs(t, err, ErrInvalidModelOutput)
}

func validRawStool(t *testing.T, mutate func(m map[string]interface{})) json.RawMessage {
	t.Helper()
	m := map[string]interface{}{
		"color":                     "갈색",
		"color_assessment":          "건강한 갈색입니다",
		"color_assessment_en":       "Healthy brown color",
		"consistency":               "단단함",
		"consistency_assessment":    "적절한 경도입니다",
		"consistency_assessment_en": "Appropriate firmness",
		"shape":                     "통나무형",
		"size":                      "보통",
		"has_blood":                 false,
		"has_mucus":                 false,
		"has_foreign_objects":       false,
		"abnormalities":             []string{},
		"health_score":              9,
		"health_summary":            "전반적으로 건강한 상태입니다",
		"health_summary_en":         "Overall healthy condition",
		"concerns":                  []string{},
		"concerns_en":               []string{},
		"recommendations":           []string{"현재 식단 유지"},
		"recommendations_en":        []string{"Keep the current diet"},
		"urgency_level":             "normal",
	}
	if mutate != nil {
		mutate(m)
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}

func TestNormalizeStoolHealthy(t *testing.T) {
	out, err := NormalizeStool(validRawStool(t, nil))
	require.NoError(t, err)
	assert.Equal(t, UrgencyNormal, out.UrgencyLevel)
	assert.Equal(t, 9, out.HealthScore)
	assert.NotNil(t, out.Concerns)
	assert.NotNil(t, out.Abnormalities)
}

func TestNormalizeStoolUrgencyOverridesModel(t *testing.T) {
	// model said normal but blood is present: the deterministic rule wins
	raw := validRawStool(t, func(m map[string]interface{}) {
		m["has_blood"] = true
		m["urgency_level"] = "normal"
	})
	out, err := NormalizeStool(raw)
	require.NoError(t, err)
	assert.Equal(t, UrgencyUrgent, out.UrgencyLevel)
}

func TestNormalizeStoolColorDrivesUrgency(t *testing.T) {
	raw := validRawStool(t, func(m map[string]interface{}) {
		m["color"] = "노란색"
		m["health_score"] = 8
	})
	out, err := NormalizeStool(raw)
	require.NoError(t, err)
	assert.Equal(t, UrgencyCaution, out.UrgencyLevel)
}

func TestNormalizeStoolMucusRaisesFloor(t *testing.T) {
	raw := validRawStool(t, func(m map[string]interface{}) {
		m["has_mucus"] = true
		m["health_score"] = 9
	})
	out, err := NormalizeStool(raw)
	require.NoError(t, err)
	assert.Equal(t, UrgencyMonitor, out.UrgencyLevel)
}

func TestNormalizeStoolScoreOutOfRange(t *testing.T) {
	for _, score := range []int{0, 11, -3} {
		raw := validRawStool(t, func(m map[string]interface{}) {
			m["health_score"] = score
		})
		_, err := NormalizeStool(raw)
		assert.ErrorIs(t, err, ErrInvalidModelOutput, "score %d", score)
	}
}

func TestNormalizeStoolIncompleteBilingual(t *testing.T) {
	raw := validRawStool(t, func(m map[string]interface{}) {
		m["health_summary_en"] = ""
	})
	_, err := NormalizeStool(raw)
	assert.ErrorIs(t, err, ErrIncompleteBilingual)

	raw = validRawStool(t, func(m map[string]interface{}) {
		m["recommendations_en"] = []string{}
	})
	_, err = NormalizeStool(raw)
	assert.ErrorIs(t, err, ErrIncompleteBilingual)
}

func validRawPackage(t *testing.T, mutate func(m map[string]interface{})) json.RawMessage {
	t.Helper()
	m := map[string]interface{}{
		"brand":             "로얄캐닌",
		"brand_en":          "Royal Canin",
		"manufacturer":      "로얄캐닌코리아",
		"manufacturer_en":   "Royal Canin Korea",
		"species":           "cat",
		"life_stages":       []string{"adult"},
		"diet_types":        []string{"dry"},
		"calories_per_100g": 380.0,
		"products": []map[string]interface{}{{
			"name":            "인도어 어덜트",
			"name_en":         "Indoor Adult",
			"product_species": []string{"cat"},
			"variants": []map[string]interface{}{{
				"weight": "2kg", "packaging": "bag", "form": "kibble", "barcode": "",
			}},
			"packages": []map[string]interface{}{{
				"unit": "bag", "material": "plastic", "resealable": true,
			}},
		}},
		"ingredients": []map[string]interface{}{{
			"name": "닭고기", "name_en": "Chicken", "order": 1, "percentage": nil, "label_name": "닭고기분",
		}},
		"nutrients": []map[string]interface{}{{
			"name": "조단백질", "name_en": "Crude Protein", "value": 27.0, "unit": "%", "basis": "as-fed",
		}},
		"feeding_guides": []map[string]interface{}{{
			"weight_kg_min": 3.0, "weight_kg_max": 5.0, "age_range": "adult", "daily_amount_g": "55-65",
		}},
		"age_ranges":          []string{"1-7 years"},
		"variant_suitability": map[string]interface{}{"feeding_age": "adult", "breed_size": "all", "body_condition": "normal"},
		"kibble_properties":   map[string]interface{}{"size": "small", "shape": "triangle", "hardness": "medium"},
		"claims":              []map[string]interface{}{{"name": "그레인프리", "name_en": "grain-free"}},
		"certifications":      []map[string]interface{}{},
		"recalls":             []map[string]interface{}{},
	}
	if mutate != nil {
		mutate(m)
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}

func TestNormalizePackage(t *testing.T) {
	out, err := NormalizePackage(validRawPackage(t, nil))
	require.NoError(t, err)
	assert.Equal(t, "Royal Canin", out.BrandEn)
	require.Len(t, out.Ingredients, 1)
	assert.Nil(t, out.Ingredients[0].Percentage)
	assert.Equal(t, 1, out.Ingredients[0].Order)
	assert.NotNil(t, out.Certifications)
	assert.NotNil(t, out.Recalls)
}

func TestNormalizePackageAllowsEmptyPairs(t *testing.T) {
	raw := validRawPackage(t, func(m map[string]interface{}) {
		m["manufacturer"] = ""
		m["manufacturer_en"] = ""
	})
	_, err := NormalizePackage(raw)
	assert.NoError(t, err)
}

func TestNormalizePackageHalfFilledPair(t *testing.T) {
	raw := validRawPackage(t, func(m map[string]interface{}) {
		m["brand_en"] = ""
	})
	_, err := NormalizePackage(raw)
	assert.ErrorIs(t, err, ErrIncompleteBilingual)
}
