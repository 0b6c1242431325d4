package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petmily/petmily-v2/backend/internal/types"
)

// JSONBNutrientMap stores the per-nutrient measurements in a JSONB column.
type JSONBNutrientMap map[string]types.NutrientInfo

// Value implements the driver.Valuer interface
func (m JSONBNutrientMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *JSONBNutrientMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONBNutrientMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// FoodAnalysis is one persisted food photo analysis. RawResponse keeps the
// verbatim model output for audit and is never mutated after insert.
type FoodAnalysis struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	DeletedAt         gorm.DeletedAt   `gorm:"index" json:"-"`
	ImagePath         string           `gorm:"size:512" json:"image_path"`
	ImageURL          string           `gorm:"size:1024" json:"image_url"`
	FoodType          string           `gorm:"size:32" json:"food_type"`
	FoodName          string           `gorm:"size:255;not null" json:"food_name"`
	FoodNameEn        string           `gorm:"size:255;not null" json:"food_name_en"`
	FoodAmountG       float64          `json:"food_amount_g"`
	CaloriesPer100g   float64          `json:"calories_g"`
	Nutrients         JSONBNutrientMap `gorm:"type:jsonb" json:"nutrients"`
	Ingredients       JSONBStringArray `gorm:"type:jsonb" json:"ingredients"`
	IngredientsEn     JSONBStringArray `gorm:"type:jsonb" json:"ingredients_en"`
	RatingSummary     string           `gorm:"type:text" json:"rating_summary"`
	RatingSummaryEn   string           `gorm:"type:text" json:"rating_summary_en"`
	Recommendations   string           `gorm:"type:text" json:"recommendations"`
	RecommendationsEn string           `gorm:"type:text" json:"recommendations_en"`
	RawResponse       JSONBDocument    `gorm:"type:jsonb" json:"-"`
}

// TableName overrides the default table name
func (FoodAnalysis) TableName() string {
	return "food_analyses"
}

// StoolAnalysis is one persisted stool photo analysis. UrgencyLevel holds the
// deterministic classification, not whatever the model proposed.
type StoolAnalysis struct {
	ID                    uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
	DeletedAt             gorm.DeletedAt   `gorm:"index" json:"-"`
	ImagePath             string           `gorm:"size:512" json:"image_path"`
	ImageURL              string           `gorm:"size:1024" json:"image_url"`
	AnimalType            string           `gorm:"size:16" json:"animal_type"`
	Color                 string           `gorm:"size:32;not null" json:"color"`
	ColorAssessment       string           `gorm:"type:text" json:"color_assessment"`
	ColorAssessmentEn     string           `gorm:"type:text" json:"color_assessment_en"`
	Consistency           string           `gorm:"size:32" json:"consistency"`
	ConsistencyAssessment string           `gorm:"type:text" json:"consistency_assessment"`
	ConsistencyAssessEn   string           `gorm:"type:text" json:"consistency_assessment_en"`
	Shape                 string           `gorm:"size:32" json:"shape"`
	Size                  string           `gorm:"size:32" json:"size"`
	HasBlood              bool             `json:"has_blood"`
	HasMucus              bool             `json:"has_mucus"`
	HasForeignObjects     bool             `json:"has_foreign_objects"`
	Abnormalities         JSONBStringArray `gorm:"type:jsonb" json:"abnormalities"`
	HealthScore           int              `gorm:"not null" json:"health_score"`
	HealthSummary         string           `gorm:"type:text" json:"health_summary"`
	HealthSummaryEn       string           `gorm:"type:text" json:"health_summary_en"`
	Concerns              JSONBStringArray `gorm:"type:jsonb" json:"concerns"`
	ConcernsEn            JSONBStringArray `gorm:"type:jsonb" json:"concerns_en"`
	Recommendations       JSONBStringArray `gorm:"type:jsonb" json:"recommendations"`
	RecommendationsEn     JSONBStringArray `gorm:"type:jsonb" json:"recommendations_en"`
	UrgencyLevel          string           `gorm:"size:16;not null" json:"urgency_level"`
	RawResponse           JSONBDocument    `gorm:"type:jsonb" json:"-"`
}

// TableName overrides the default table name
func (StoolAnalysis) TableName() string {
	return "stool_analyses"
}

// FoodPackageScan is one persisted food package extraction. The nested
// structures (products, feeding guides, claims and so on) are stored as
// JSONB documents since the admin surface reads them whole.
type FoodPackageScan struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`
	ImagePath          string           `gorm:"size:512" json:"image_path"`
	ImageURL           string           `gorm:"size:1024" json:"image_url"`
	Brand              string           `gorm:"size:255" json:"brand"`
	BrandEn            string           `gorm:"size:255" json:"brand_en"`
	Manufacturer       string           `gorm:"size:255" json:"manufacturer"`
	ManufacturerEn     string           `gorm:"size:255" json:"manufacturer_en"`
	Species            string           `gorm:"size:16" json:"species"`
	LifeStages         JSONBStringArray `gorm:"type:jsonb" json:"life_stages"`
	DietTypes          JSONBStringArray `gorm:"type:jsonb" json:"diet_types"`
	CaloriesPer100g    float64          `json:"calories_per_100g"`
	Products           JSONBDocument    `gorm:"type:jsonb" json:"products"`
	Ingredients        JSONBDocument    `gorm:"type:jsonb" json:"ingredients"`
	Nutrients          JSONBDocument    `gorm:"type:jsonb" json:"nutrients"`
	FeedingGuides      JSONBDocument    `gorm:"type:jsonb" json:"feeding_guides"`
	AgeRanges          JSONBStringArray `gorm:"type:jsonb" json:"age_ranges"`
	VariantSuitability JSONBDocument    `gorm:"type:jsonb" json:"variant_suitability"`
	KibbleProperties   JSONBDocument    `gorm:"type:jsonb" json:"kibble_properties"`
	Claims             JSONBDocument    `gorm:"type:jsonb" json:"claims"`
	Certifications     JSONBDocument    `gorm:"type:jsonb" json:"certifications"`
	Recalls            JSONBDocument    `gorm:"type:jsonb" json:"recalls"`
	RawResponse        JSONBDocument    `gorm:"type:jsonb" json:"-"`
}

// TableName overrides the default table name
func (FoodPackageScan) TableName() string {
	return "food_package_scans"
}
