package service

// Response schemas sent to the model alongside each prompt. The endpoint
// enforces these directly via generationConfig.response_schema, which
// removes most markdown-wrapped-text parsing failures. One fixed schema per
// analysis kind; hints never alter the schema, only the instructions.

func schemaString() map[string]interface{} {
	return map[string]interface{}{"type": "string"}
}

func schemaNullableString() map[string]interface{} {
	return map[string]interface{}{"type": "string", "nullable": true}
}

func schemaNumber() map[string]interface{} {
	return map[string]interface{}{"type": "number"}
}

func schemaStringArray() map[string]interface{} {
	return map[string]interface{}{"type": "array", "items": schemaString()}
}

func schemaEnum(values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "enum": values}
}

func schemaObject(properties map[string]interface{}, required ...string) map[string]interface{} {
	obj := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		obj["required"] = required
	}
	return obj
}

func schemaArray(items map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"type": "array", "items": items}
}

// stoolResponseSchema constrains the stool analysis output.
func stoolResponseSchema() map[string]interface{} {
	return schemaObject(map[string]interface{}{
		"animal_type":               schemaNullableString(),
		"color":                     schemaString(),
		"color_assessment":          schemaString(),
		"color_assessment_en":       schemaString(),
		"consistency":               schemaString(),
		"consistency_assessment":    schemaString(),
		"consistency_assessment_en": schemaString(),
		"shape":                     schemaString(),
		"size":                      schemaString(),
		"has_blood":                 map[string]interface{}{"type": "boolean"},
		"has_mucus":                 map[string]interface{}{"type": "boolean"},
		"has_foreign_objects":       map[string]interface{}{"type": "boolean"},
		"abnormalities":             schemaStringArray(),
		"health_score":              map[string]interface{}{"type": "integer"},
		"health_summary":            schemaString(),
		"health_summary_en":         schemaString(),
		"concerns":                  schemaStringArray(),
		"concerns_en":               schemaStringArray(),
		"recommendations":           schemaStringArray(),
		"recommendations_en":        schemaStringArray(),
		"urgency_level":             schemaEnum("normal", "monitor", "caution", "urgent"),
	},
		"color", "color_assessment", "color_assessment_en",
		"consistency", "consistency_assessment", "consistency_assessment_en",
		"shape", "size", "has_blood", "has_mucus", "has_foreign_objects",
		"abnormalities", "health_score",
		"health_summary", "health_summary_en",
		"concerns", "concerns_en",
		"recommendations", "recommendations_en",
		"urgency_level",
	)
}

// foodResponseSchema constrains the food photo analysis output. Nutrients
// are limited to the four graded components on a 100g basis.
func foodResponseSchema() map[string]interface{} {
	nutrient := schemaObject(map[string]interface{}{
		"value": schemaNumber(),
		"unit":  schemaString(),
	}, "value", "unit")

	return schemaObject(map[string]interface{}{
		"food_type":           schemaEnum("사료", "화식", "간식"),
		"food_name":           schemaString(),
		"food_name_en":        schemaString(),
		"bowl_description":    schemaString(),
		"bowl_description_en": schemaString(),
		"confidence":          schemaEnum("high", "medium", "low"),
		"nutrients": schemaObject(map[string]interface{}{
			"carbohydrate": nutrient,
			"protein":      nutrient,
			"fat":          nutrient,
			"fiber":        nutrient,
		}, "carbohydrate", "protein", "fat", "fiber"),
		"ingredients":       schemaStringArray(),
		"ingredients_en":    schemaStringArray(),
		"calories_g":        schemaNumber(),
		"food_amount_g":     schemaNumber(),
		"recommendation":    schemaString(),
		"recommendation_en": schemaString(),
	},
		"food_type", "food_name", "food_name_en",
		"bowl_description", "bowl_description_en", "confidence",
		"nutrients", "ingredients", "ingredients_en", "calories_g", "food_amount_g",
		"recommendation", "recommendation_en",
	)
}

// packageResponseSchema constrains the food package extraction output.
func packageResponseSchema() map[string]interface{} {
	return schemaObject(map[string]interface{}{
		"brand":             schemaString(),
		"brand_en":          schemaString(),
		"manufacturer":      schemaString(),
		"manufacturer_en":   schemaString(),
		"species":           schemaEnum("dog", "cat", "bird", "fish", "reptile", "dragon", "other"),
		"life_stages":       schemaArray(schemaEnum("puppy", "kitten", "adult", "senior", "all")),
		"diet_types":        schemaArray(schemaEnum("dry", "wet", "freeze-dried", "raw", "treat")),
		"calories_per_100g": schemaNumber(),
		"products": schemaArray(schemaObject(map[string]interface{}{
			"name":            schemaString(),
			"name_en":         schemaString(),
			"product_species": schemaStringArray(),
			"variants": schemaArray(schemaObject(map[string]interface{}{
				"weight":    schemaString(),
				"packaging": schemaString(),
				"form":      schemaString(),
				"barcode":   schemaString(),
			}, "weight", "packaging", "form", "barcode")),
			"packages": schemaArray(schemaObject(map[string]interface{}{
				"unit":       schemaString(),
				"material":   schemaString(),
				"resealable": map[string]interface{}{"type": "boolean"},
			}, "unit", "material", "resealable")),
		}, "name", "name_en", "product_species", "variants", "packages")),
		"ingredients": schemaArray(schemaObject(map[string]interface{}{
			"name":       schemaString(),
			"name_en":    schemaString(),
			"order":      map[string]interface{}{"type": "integer"},
			"percentage": map[string]interface{}{"type": "number", "nullable": true},
			"label_name": schemaString(),
		}, "name", "name_en", "order", "label_name")),
		"nutrients": schemaArray(schemaObject(map[string]interface{}{
			"name":    schemaString(),
			"name_en": schemaString(),
			"value":   schemaNumber(),
			"unit":    schemaString(),
			"basis":   schemaEnum("as-fed", "dry-matter"),
		}, "name", "name_en", "value", "unit", "basis")),
		"feeding_guides": schemaArray(schemaObject(map[string]interface{}{
			"weight_kg_min":  schemaNumber(),
			"weight_kg_max":  schemaNumber(),
			"age_range":      schemaString(),
			"daily_amount_g": schemaString(),
		}, "weight_kg_min", "weight_kg_max", "age_range", "daily_amount_g")),
		"age_ranges": schemaStringArray(),
		"variant_suitability": schemaObject(map[string]interface{}{
			"feeding_age":    schemaString(),
			"breed_size":     schemaString(),
			"body_condition": schemaString(),
		}, "feeding_age", "breed_size", "body_condition"),
		"kibble_properties": schemaObject(map[string]interface{}{
			"size":     schemaString(),
			"shape":    schemaString(),
			"hardness": schemaString(),
		}, "size", "shape", "hardness"),
		"claims": schemaArray(schemaObject(map[string]interface{}{
			"name":    schemaString(),
			"name_en": schemaString(),
		}, "name", "name_en")),
		"certifications": schemaArray(schemaObject(map[string]interface{}{
			"name":    schemaString(),
			"name_en": schemaString(),
		}, "name", "name_en")),
		"recalls": schemaArray(schemaObject(map[string]interface{}{
			"date":      schemaString(),
			"reason":    schemaString(),
			"reason_en": schemaString(),
		}, "date", "reason", "reason_en")),
	},
		"brand", "brand_en", "manufacturer", "manufacturer_en", "species",
		"life_stages", "diet_types", "calories_per_100g",
		"products", "ingredients", "nutrients", "feeding_guides",
		"age_ranges", "variant_suitability", "kibble_properties",
		"claims", "certifications", "recalls",
	)
}
