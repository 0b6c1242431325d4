package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/petmily/petmily-v2/backend/internal/types"
)

// requireBilingual rejects a required Korean/English pair unless both halves
// are populated. The pipeline never patches a missing half with a
// translation or drops the field.
func requireBilingual(field, ko, en string) error {
	if strings.TrimSpace(ko) == "" || strings.TrimSpace(en) == "" {
		return fmt.Errorf("%w: %s", ErrIncompleteBilingual, field)
	}
	return nil
}

// requireBilingualLists rejects a list pair where one language has entries
// and the other does not.
func requireBilingualLists(field string, ko, en []string) error {
	if (len(ko) == 0) != (len(en) == 0) {
		return fmt.Errorf("%w: %s", ErrIncompleteBilingual, field)
	}
	return nil
}

func ensureList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type rawNutrient struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type rawFood struct {
	FoodType          string                 `json:"food_type"`
	FoodName          string                 `json:"food_name"`
	FoodNameEn        string                 `json:"food_name_en"`
	BowlDescription   string                 `json:"bowl_description"`
	BowlDescriptionEn string                 `json:"bowl_description_en"`
	Confidence        string                 `json:"confidence"`
	Nutrients         map[string]rawNutrient `json:"nutrients"`
	Ingredients       []string               `json:"ingredients"`
	IngredientsEn     []string               `json:"ingredients_en"`
	CaloriesG         float64                `json:"calories_g"`
	FoodAmountG       float64                `json:"food_amount_g"`
	Recommendation    string                 `json:"recommendation"`
	RecommendationEn  string                 `json:"recommendation_en"`
}

// NormalizeFood validates the raw food analysis from the model and applies
// caller hints. The food name hint only wins when the model judged the image
// to be commercial feed; a homemade meal or treat keeps the model's name. A
// positive caller amount always overrides the model estimate, and a model
// estimate of zero without a caller amount is a hard failure rather than a
// silent default.
func NormalizeFood(raw json.RawMessage, hints types.AnalysisHints) (*types.FoodAssessment, error) {
	var in rawFood
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: food analysis shape: %v", ErrInvalidModelOutput, err)
	}

	if err := requireBilingual("food_name", in.FoodName, in.FoodNameEn); err != nil {
		return nil, err
	}
	if err := requireBilingual("bowl_description", in.BowlDescription, in.BowlDescriptionEn); err != nil {
		return nil, err
	}
	if err := requireBilingual("recommendation", in.Recommendation, in.RecommendationEn); err != nil {
		return nil, err
	}
	if err := requireBilingualLists("ingredients", in.Ingredients, in.IngredientsEn); err != nil {
		return nil, err
	}

	foodName, foodNameEn := in.FoodName, in.FoodNameEn
	if hints.FoodName != "" && in.FoodType == "사료" {
		foodName, foodNameEn = hints.FoodName, hints.FoodName
	}

	amountG := in.FoodAmountG
	if hints.FoodAmountG > 0 {
		amountG = hints.FoodAmountG
	}
	if amountG <= 0 {
		return nil, fmt.Errorf("%w: food_amount_g missing or zero", ErrInvalidModelOutput)
	}
	if in.CaloriesG < 0 {
		return nil, fmt.Errorf("%w: negative calories_g", ErrInvalidModelOutput)
	}

	animalType := hints.AnimalType
	if animalType == "" {
		animalType = "dog"
	}
	foodType := hints.FoodType
	if foodType == "" {
		foodType = "dry"
	}

	nutrients := make(map[string]types.NutrientInfo, len(in.Nutrients))
	for name, n := range in.Nutrients {
		if n.Value < 0 {
			return nil, fmt.Errorf("%w: negative nutrient value for %s", ErrInvalidModelOutput, name)
		}
		unit := n.Unit
		if unit == "" {
			unit = "%"
		}
		nutrients[name] = types.NutrientInfo{
			Value:  n.Value,
			Unit:   unit,
			Rating: RateNutrient(name, n.Value, animalType, foodType),
		}
	}

	return &types.FoodAssessment{
		FoodType:          in.FoodType,
		FoodName:          foodName,
		FoodNameEn:        foodNameEn,
		FoodAmountG:       amountG,
		CaloriesPer100g:   in.CaloriesG,
		Nutrients:         nutrients,
		Ingredients:       ensureList(in.Ingredients),
		IngredientsEn:     ensureList(in.IngredientsEn),
		RatingSummary:     in.BowlDescription,
		RatingSummaryEn:   in.BowlDescriptionEn,
		Recommendations:   in.Recommendation,
		RecommendationsEn: in.RecommendationEn,
	}, nil
}

// NormalizeStool validates the raw stool analysis. The model's own
// urgency_level is kept only inside the raw audit document; the stored value
// is always recomputed from blood, mucus, color and health score.
func NormalizeStool(raw json.RawMessage) (*types.StoolAssessment, error) {
	var in types.StoolAssessment
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: stool analysis shape: %v", ErrInvalidModelOutput, err)
	}

	if in.HealthScore < 1 || in.HealthScore > 10 {
		return nil, fmt.Errorf("%w: health_score %d out of range [1,10]", ErrInvalidModelOutput, in.HealthScore)
	}
	if err := requireBilingual("color_assessment", in.ColorAssessment, in.ColorAssessmentEn); err != nil {
		return nil, err
	}
	if err := requireBilingual("consistency_assessment", in.ConsistencyAssessment, in.ConsistencyAssessEn); err != nil {
		return nil, err
	}
	if err := requireBilingual("health_summary", in.HealthSummary, in.HealthSummaryEn); err != nil {
		return nil, err
	}
	if err := requireBilingualLists("concerns", in.Concerns, in.ConcernsEn); err != nil {
		return nil, err
	}
	if err := requireBilingualLists("recommendations", in.Recommendations, in.RecommendationsEn); err != nil {
		return nil, err
	}

	in.Abnormalities = ensureList(in.Abnormalities)
	in.Concerns = ensureList(in.Concerns)
	in.ConcernsEn = ensureList(in.ConcernsEn)
	in.Recommendations = ensureList(in.Recommendations)
	in.RecommendationsEn = ensureList(in.RecommendationsEn)

	in.UrgencyLevel = ClassifyUrgency(in.HasBlood, in.HasMucus, in.Color, in.HealthScore)
	return &in, nil
}

// NormalizePackage validates the raw package extraction. Package labels are
// legitimately sparse, so empty values pass; only a half-filled bilingual
// pair is rejected.
func NormalizePackage(raw json.RawMessage) (*types.FoodPackageAssessment, error) {
	var in types.FoodPackageAssessment
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: package analysis shape: %v", ErrInvalidModelOutput, err)
	}

	if err := checkPair("brand", in.Brand, in.BrandEn); err != nil {
		return nil, err
	}
	if err := checkPair("manufacturer", in.Manufacturer, in.ManufacturerEn); err != nil {
		return nil, err
	}
	for _, p := range in.Products {
		if err := checkPair("products.name", p.Name, p.NameEn); err != nil {
			return nil, err
		}
	}
	for _, ing := range in.Ingredients {
		if err := checkPair("ingredients.name", ing.Name, ing.NameEn); err != nil {
			return nil, err
		}
	}
	for _, n := range in.Nutrients {
		if err := checkPair("nutrients.name", n.Name, n.NameEn); err != nil {
			return nil, err
		}
	}
	for _, c := range in.Claims {
		if err := checkPair("claims.name", c.Name, c.NameEn); err != nil {
			return nil, err
		}
	}
	for _, c := range in.Certifications {
		if err := checkPair("certifications.name", c.Name, c.NameEn); err != nil {
			return nil, err
		}
	}
	for _, r := range in.Recalls {
		if err := checkPair("recalls.reason", r.Reason, r.ReasonEn); err != nil {
			return nil, err
		}
	}
	if in.CaloriesPer100g < 0 {
		return nil, fmt.Errorf("%w: negative calories_per_100g", ErrInvalidModelOutput)
	}

	in.LifeStages = ensureList(in.LifeStages)
	in.DietTypes = ensureList(in.DietTypes)
	in.AgeRanges = ensureList(in.AgeRanges)
	if in.Products == nil {
		in.Products = []types.PackageProduct{}
	}
	if in.Ingredients == nil {
		in.Ingredients = []types.PackageIngredient{}
	}
	if in.Nutrients == nil {
		in.Nutrients = []types.PackageNutrient{}
	}
	if in.FeedingGuides == nil {
		in.FeedingGuides = []types.FeedingGuide{}
	}
	if in.Claims == nil {
		in.Claims = []types.BilingualName{}
	}
	if in.Certifications == nil {
		in.Certifications = []types.BilingualName{}
	}
	if in.Recalls == nil {
		in.Recalls = []types.PackageRecall{}
	}
	return &in, nil
}

// checkPair allows an all-empty pair but rejects a half-filled one.
func checkPair(field, ko, en string) error {
	koEmpty := strings.TrimSpace(ko) == ""
	enEmpty := strings.TrimSpace(en) == ""
	if koEmpty != enEmpty {
		return fmt.Errorf("%w: %s", ErrIncompleteBilingual, field)
	}
	return nil
}
