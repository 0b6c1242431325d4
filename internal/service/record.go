package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petmily/petmily-v2/backend/internal/model"
	"github.com/petmily/petmily-v2/backend/internal/types"
)

// RecordService writes completed analyses into their per-kind tables. The
// pipeline only ever inserts; edits go through the separate CRUD surface.
type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

// Save inserts the result into the table for its kind, reusing the result's
// id so a confirmed draft keeps the id the client already holds.
func (s *RecordService) Save(ctx context.Context, result *types.AnalysisResult) error {
	id, err := uuid.Parse(result.ID)
	if err != nil {
		return fmt.Errorf("%w: result id %q: %v", ErrInvalidInput, result.ID, err)
	}

	var row interface{}
	switch result.Kind {
	case types.KindFood:
		if result.Food == nil {
			return fmt.Errorf("%w: food result has no assessment", ErrInvalidInput)
		}
		row = foodRow(id, result)
	case types.KindStool:
		if result.Stool == nil {
			return fmt.Errorf("%w: stool result has no assessment", ErrInvalidInput)
		}
		row = stoolRow(id, result)
	case types.KindFoodPackage:
		if result.Package == nil {
			return fmt.Errorf("%w: package result has no assessment", ErrInvalidInput)
		}
		row = packageRow(id, result)
	default:
		return fmt.Errorf("%w: unknown analysis kind %q", ErrInvalidInput, result.Kind)
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("%w: inserting %s analysis: %v", ErrDatabase, result.Kind, err)
	}
	return nil
}

func imageFields(result *types.AnalysisResult) (path, url string) {
	if result.Image == nil {
		return "", ""
	}
	return result.Image.Path, result.Image.PublicURL
}

func foodRow(id uuid.UUID, result *types.AnalysisResult) *model.FoodAnalysis {
	a := result.Food
	path, url := imageFields(result)
	return &model.FoodAnalysis{
		ID:                id,
		ImagePath:         path,
		ImageURL:          url,
		FoodType:          a.FoodType,
		FoodName:          a.FoodName,
		FoodNameEn:        a.FoodNameEn,
		FoodAmountG:       a.FoodAmountG,
		CaloriesPer100g:   a.CaloriesPer100g,
		Nutrients:         model.JSONBNutrientMap(a.Nutrients),
		Ingredients:       model.JSONBStringArray(a.Ingredients),
		IngredientsEn:     model.JSONBStringArray(a.IngredientsEn),
		RatingSummary:     a.RatingSummary,
		RatingSummaryEn:   a.RatingSummaryEn,
		Recommendations:   a.Recommendations,
		RecommendationsEn: a.RecommendationsEn,
		RawResponse:       model.JSONBDocument(result.RawResponse),
	}
}

func stoolRow(id uuid.UUID, result *types.AnalysisResult) *model.StoolAnalysis {
	a := result.Stool
	path, url := imageFields(result)
	return &model.StoolAnalysis{
		ID:                    id,
		ImagePath:             path,
		ImageURL:              url,
		AnimalType:            a.AnimalType,
		Color:                 a.Color,
		ColorAssessment:       a.ColorAssessment,
		ColorAssessmentEn:     a.ColorAssessmentEn,
		Consistency:           a.Consistency,
		ConsistencyAssessment: a.ConsistencyAssessment,
		ConsistencyAssessEn:   a.ConsistencyAssessEn,
		Shape:                 a.Shape,
		Size:                  a.Size,
		HasBlood:              a.HasBlood,
		HasMucus:              a.HasMucus,
		HasForeignObjects:     a.HasForeignObjects,
		Abnormalities:         model.JSONBStringArray(a.Abnormalities),
		HealthScore:           a.HealthScore,
		HealthSummary:         a.HealthSummary,
		HealthSummaryEn:       a.HealthSummaryEn,
		Concerns:              model.JSONBStringArray(a.Concerns),
		ConcernsEn:            model.JSONBStringArray(a.ConcernsEn),
		Recommendations:       model.JSONBStringArray(a.Recommendations),
		RecommendationsEn:     model.JSONBStringArray(a.RecommendationsEn),
		UrgencyLevel:          a.UrgencyLevel,
		RawResponse:           model.JSONBDocument(result.RawResponse),
	}
}

func packageRow(id uuid.UUID, result *types.AnalysisResult) *model.FoodPackageScan {
	a := result.Package
	path, url := imageFields(result)
	return &model.FoodPackageScan{
		ID:                 id,
		ImagePath:          path,
		ImageURL:           url,
		Brand:              a.Brand,
		BrandEn:            a.BrandEn,
		Manufacturer:       a.Manufacturer,
		ManufacturerEn:     a.ManufacturerEn,
		Species:            a.Species,
		LifeStages:         model.JSONBStringArray(a.LifeStages),
		DietTypes:          model.JSONBStringArray(a.DietTypes),
		CaloriesPer100g:    a.CaloriesPer100g,
		Products:           mustDocument(a.Products),
		Ingredients:        mustDocument(a.Ingredients),
		Nutrients:          mustDocument(a.Nutrients),
		FeedingGuides:      mustDocument(a.FeedingGuides),
		AgeRanges:          model.JSONBStringArray(a.AgeRanges),
		VariantSuitability: mustDocument(a.VariantSuitability),
		KibbleProperties:   mustDocument(a.KibbleProperties),
		Claims:             mustDocument(a.Claims),
		Certifications:     mustDocument(a.Certifications),
		Recalls:            mustDocument(a.Recalls),
		RawResponse:        model.JSONBDocument(result.RawResponse),
	}
}

// mustDocument marshals already-validated in-memory values; these types
// cannot fail to marshal.
func mustDocument(v interface{}) model.JSONBDocument {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshaling jsonb column: %v", err))
	}
	return model.JSONBDocument(b)
}
