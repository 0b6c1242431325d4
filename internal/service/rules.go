package service

import "strings"

// Nutrient rating bands and urgency classification. Everything in this file
// is pure and safe for unbounded concurrent use; the breakpoints are fixed
// constants of the product, so changing any of them is a behavior change,
// not a refactor.

// Nutrient rating values, ordered from worst to best.
const (
	RatingPoor      = "poor"
	RatingAdequate  = "adequate"
	RatingGood      = "good"
	RatingExcellent = "excellent"
)

// Urgency levels, ordered from least to most urgent.
const (
	UrgencyNormal  = "normal"
	UrgencyMonitor = "monitor"
	UrgencyCaution = "caution"
	UrgencyUrgent  = "urgent"
)

var urgencyRank = map[string]int{
	UrgencyNormal:  0,
	UrgencyMonitor: 1,
	UrgencyCaution: 2,
	UrgencyUrgent:  3,
}

// RateNutrient grades a 100g-basis nutrient value against the species and
// wet/dry bands. An empty or unrecognized animal type is treated as dog and
// an empty or unrecognized food type as dry, matching how analyses without
// hints were always graded.
func RateNutrient(name string, value float64, animalType, foodType string) string {
	isDog := animalType != "cat"
	isWet := foodType == "wet"

	switch name {
	case "protein":
		if isWet {
			switch {
			case value >= 10:
				return RatingGood
			case value >= 7:
				return RatingAdequate
			default:
				return RatingPoor
			}
		}
		if isDog {
			switch {
			case value >= 26:
				return RatingExcellent
			case value >= 18:
				return RatingGood
			case value >= 14:
				return RatingAdequate
			default:
				return RatingPoor
			}
		}
		switch {
		case value >= 30:
			return RatingExcellent
		case value >= 26:
			return RatingGood
		case value >= 20:
			return RatingAdequate
		default:
			return RatingPoor
		}
	case "fat":
		if isWet {
			if value >= 3 && value <= 8 {
				return RatingGood
			}
			return RatingAdequate
		}
		if isDog {
			switch {
			case value >= 5 && value <= 15:
				return RatingGood
			case value > 15:
				return RatingAdequate
			default:
				return RatingPoor
			}
		}
		switch {
		case value >= 9 && value <= 20:
			return RatingGood
		case value > 20:
			return RatingAdequate
		default:
			return RatingPoor
		}
	case "fiber":
		if value >= 2 && value <= 5 {
			return RatingGood
		}
		return RatingAdequate
	default:
		// carbohydrate and anything else the model volunteers
		return RatingGood
	}
}

// stool color categories used by ClassifyUrgency. The model reports colors
// in Korean; English names are accepted for robustness.
var colorUrgency = map[string]string{
	"갈색":         UrgencyNormal,
	"진한갈색":       UrgencyNormal,
	"brown":      UrgencyNormal,
	"dark brown": UrgencyNormal,
	"dark-brown": UrgencyNormal,
	"검정":         UrgencyUrgent,
	"검정색":        UrgencyUrgent,
	"검은색":        UrgencyUrgent,
	"black":      UrgencyUrgent,
	"빨간색":        UrgencyUrgent,
	"빨강":         UrgencyUrgent,
	"red":        UrgencyUrgent,
	"노란색":        UrgencyCaution,
	"노랑":         UrgencyCaution,
	"yellow":     UrgencyCaution,
	"주황색":        UrgencyCaution,
	"주황":         UrgencyCaution,
	"orange":     UrgencyCaution,
	"흰색":         UrgencyCaution,
	"white":      UrgencyCaution,
	"회색":         UrgencyCaution,
	"gray":       UrgencyCaution,
	"grey":       UrgencyCaution,
	"녹색":         UrgencyMonitor,
	"초록색":        UrgencyMonitor,
	"green":      UrgencyMonitor,
}

// ColorUrgency maps a reported stool color to its urgency baseline.
// Unrecognized colors contribute nothing beyond the health-score floor.
func ColorUrgency(color string) string {
	if u, ok := colorUrgency[strings.ToLower(strings.TrimSpace(color))]; ok {
		return u
	}
	return UrgencyNormal
}

// scoreUrgencyFloor is the minimum urgency a health score implies on its own.
func scoreUrgencyFloor(healthScore int) string {
	switch {
	case healthScore <= 2:
		return UrgencyUrgent
	case healthScore <= 4:
		return UrgencyCaution
	case healthScore <= 6:
		return UrgencyMonitor
	default:
		return UrgencyNormal
	}
}

// ClassifyUrgency decides how quickly a stool finding should prompt a vet
// visit. Blood forces urgent unconditionally; otherwise the color baseline
// applies, raised to at least the health-score floor (a low score can make
// the result more urgent, never less), with mucus lifting the floor to
// monitor.
func ClassifyUrgency(hasBlood, hasMucus bool, color string, healthScore int) string {
	if hasBlood {
		return UrgencyUrgent
	}

	level := ColorUrgency(color)
	if floor := scoreUrgencyFloor(healthScore); urgencyRank[floor] > urgencyRank[level] {
		level = floor
	}
	if hasMucus && urgencyRank[level] < urgencyRank[UrgencyMonitor] {
		level = UrgencyMonitor
	}
	return level
}

// MoreUrgent reports whether a is a strictly more urgent level than b.
func MoreUrgent(a, b string) bool {
	return urgencyRank[a] > urgencyRank[b]
}
