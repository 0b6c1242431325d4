package types

import "encoding/json"

// AnalysisKind identifies one of the supported photo analyses.
type AnalysisKind string

const (
	KindFood        AnalysisKind = "food"
	KindStool       AnalysisKind = "stool"
	KindFoodPackage AnalysisKind = "food_package"
)

// NutrientInfo is a single nutrient measurement on a 100g basis. Rating is
// always derived by the rule engine, never taken from the model.
type NutrientInfo struct {
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Rating string  `json:"rating"`
}

// AnalysisHints carries the optional caller-supplied context for an analysis.
type AnalysisHints struct {
	FoodName    string  `json:"food_name,omitempty"`
	FoodAmountG float64 `json:"food_amount_g,omitempty"`
	AnimalType  string  `json:"animal_type,omitempty"`
	FoodType    string  `json:"food_type,omitempty"`
}

// StoredImage is the result of archiving one uploaded photo.
type StoredImage struct {
	Path      string `json:"path"`
	PublicURL string `json:"public_url"`
}

// FoodAssessment is the normalized result of a food photo analysis.
type FoodAssessment struct {
	FoodType          string                  `json:"food_type"`
	FoodName          string                  `json:"food_name"`
	FoodNameEn        string                  `json:"food_name_en"`
	FoodAmountG       float64                 `json:"food_amount_g"`
	CaloriesPer100g   float64                 `json:"calories_g"`
	Nutrients         map[string]NutrientInfo `json:"nutrients"`
	Ingredients       []string                `json:"ingredients"`
	IngredientsEn     []string                `json:"ingredients_en"`
	RatingSummary     string                  `json:"rating_summary"`
	RatingSummaryEn   string                  `json:"rating_summary_en"`
	Recommendations   string                  `json:"recommendations"`
	RecommendationsEn string                  `json:"recommendations_en"`
}

// StoolAssessment is the normalized result of a stool photo analysis.
// UrgencyLevel is the deterministic classification, not the model's own value.
type StoolAssessment struct {
	AnimalType            string   `json:"animal_type,omitempty"`
	Color                 string   `json:"color"`
	ColorAssessment       string   `json:"color_assessment"`
	ColorAssessmentEn     string   `json:"color_assessment_en"`
	Consistency           string   `json:"consistency"`
	ConsistencyAssessment string   `json:"consistency_assessment"`
	ConsistencyAssessEn   string   `json:"consistency_assessment_en"`
	Shape                 string   `json:"shape"`
	Size                  string   `json:"size"`
	HasBlood              bool     `json:"has_blood"`
	HasMucus              bool     `json:"has_mucus"`
	HasForeignObjects     bool     `json:"has_foreign_objects"`
	Abnormalities         []string `json:"abnormalities"`
	HealthScore           int      `json:"health_score"`
	HealthSummary         string   `json:"health_summary"`
	HealthSummaryEn       string   `json:"health_summary_en"`
	Concerns              []string `json:"concerns"`
	ConcernsEn            []string `json:"concerns_en"`
	Recommendations       []string `json:"recommendations"`
	RecommendationsEn     []string `json:"recommendations_en"`
	UrgencyLevel          string   `json:"urgency_level"`
}

// PackageVariant is one SKU variation printed on a food package.
type PackageVariant struct {
	Weight    string `json:"weight"`
	Packaging string `json:"packaging"`
	Form      string `json:"form"`
	Barcode   string `json:"barcode"`
}

// PackageOption describes one packaging unit of a product.
type PackageOption struct {
	Unit       string `json:"unit"`
	Material   string `json:"material"`
	Resealable bool   `json:"resealable"`
}

// PackageProduct is one product line extracted from a package photo.
type PackageProduct struct {
	Name           string           `json:"name"`
	NameEn         string           `json:"name_en"`
	ProductSpecies []string         `json:"product_species"`
	Variants       []PackageVariant `json:"variants"`
	Packages       []PackageOption  `json:"packages"`
}

// PackageIngredient is one labelled ingredient in label order.
type PackageIngredient struct {
	Name       string   `json:"name"`
	NameEn     string   `json:"name_en"`
	Order      int      `json:"order"`
	Percentage *float64 `json:"percentage"`
	LabelName  string   `json:"label_name"`
}

// PackageNutrient is one guaranteed-analysis row from the label.
type PackageNutrient struct {
	Name   string  `json:"name"`
	NameEn string  `json:"name_en"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Basis  string  `json:"basis"`
}

// FeedingGuide is one row of the feeding table.
type FeedingGuide struct {
	WeightKgMin  float64 `json:"weight_kg_min"`
	WeightKgMax  float64 `json:"weight_kg_max"`
	AgeRange     string  `json:"age_range"`
	DailyAmountG string  `json:"daily_amount_g"`
}

// VariantSuitability describes which animals a variant suits.
type VariantSuitability struct {
	FeedingAge    string `json:"feeding_age"`
	BreedSize     string `json:"breed_size"`
	BodyCondition string `json:"body_condition"`
}

// KibbleProperties describes the physical kibble characteristics.
type KibbleProperties struct {
	Size     string `json:"size"`
	Shape    string `json:"shape"`
	Hardness string `json:"hardness"`
}

// BilingualName is a claim or certification with both language variants.
type BilingualName struct {
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
}

// PackageRecall is one recall history entry.
type PackageRecall struct {
	Date     string `json:"date"`
	Reason   string `json:"reason"`
	ReasonEn string `json:"reason_en"`
}

// FoodPackageAssessment is the normalized result of a package photo analysis.
type FoodPackageAssessment struct {
	Brand              string              `json:"brand"`
	BrandEn            string              `json:"brand_en"`
	Manufacturer       string              `json:"manufacturer"`
	ManufacturerEn     string              `json:"manufacturer_en"`
	Species            string              `json:"species"`
	LifeStages         []string            `json:"life_stages"`
	DietTypes          []string            `json:"diet_types"`
	CaloriesPer100g    float64             `json:"calories_per_100g"`
	Products           []PackageProduct    `json:"products"`
	Ingredients        []PackageIngredient `json:"ingredients"`
	Nutrients          []PackageNutrient   `json:"nutrients"`
	FeedingGuides      []FeedingGuide      `json:"feeding_guides"`
	AgeRanges          []string            `json:"age_ranges"`
	VariantSuitability VariantSuitability  `json:"variant_suitability"`
	KibbleProperties   KibbleProperties    `json:"kibble_properties"`
	Claims             []BilingualName     `json:"claims"`
	Certifications     []BilingualName     `json:"certifications"`
	Recalls            []PackageRecall     `json:"recalls"`
}

// AnalysisResult bundles one successful pipeline run: where the image went,
// the normalized assessment for the kind, and the verbatim model response
// kept for audit.
type AnalysisResult struct {
	ID          string                 `json:"id"`
	Kind        AnalysisKind           `json:"kind"`
	Image       *StoredImage           `json:"image,omitempty"`
	Food        *FoodAssessment        `json:"food,omitempty"`
	Stool       *StoolAssessment       `json:"stool,omitempty"`
	Package     *FoodPackageAssessment `json:"package,omitempty"`
	RawResponse json.RawMessage        `json:"-"`
	Persisted   bool                   `json:"persisted"`
}
