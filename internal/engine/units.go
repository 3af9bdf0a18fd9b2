package engine

import (
	"strings"

	"go.uber.org/zap"
)

// Unit conversion constants.
const (
	gramsPerKilogram = 1000.0
	gramsPerOunce    = 28.35
	gramsPerPound    = 453.592

	mlPerLiter      = 1000.0
	mlPerCup        = 236.588
	mlPerTablespoon = 14.787
	mlPerTeaspoon   = 4.929
)

// ConvertToGrams converts an amount in the given unit to grams. Weight units
// convert directly; volume units go through the ingredient's density (water
// density when unknown); count units use the ingredient's "medium" portion
// size (100g when unknown). An unrecognized unit is logged and the amount is
// taken as grams, so conversion never fails.
func (e *Engine) ConvertToGrams(amount float64, unit, ingredientKey string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	// Weight units.
	case "g", "gram", "grams":
		return amount
	case "kg", "kilogram", "kilograms":
		return amount * gramsPerKilogram
	case "oz", "ounce", "ounces":
		return amount * gramsPerOunce
	case "lb", "lbs", "pound", "pounds":
		return amount * gramsPerPound

	// Volume units need a density conversion.
	case "ml", "milliliter", "milliliters":
		return amount * e.density(ingredientKey)
	case "l", "liter", "liters":
		return amount * mlPerLiter * e.density(ingredientKey)
	case "cup", "cups":
		return amount * mlPerCup * e.density(ingredientKey)
	case "tbsp", "tablespoon", "tablespoons":
		return amount * mlPerTablespoon * e.density(ingredientKey)
	case "tsp", "teaspoon", "teaspoons":
		return amount * mlPerTeaspoon * e.density(ingredientKey)

	// Count units use portion sizes.
	case "piece", "pieces", "whole", "item", "items":
		return amount * e.mediumPortion(ingredientKey)

	default:
		e.log.Warn("unknown unit, treating amount as grams",
			zap.String("unit", unit),
			zap.String("ingredient", ingredientKey))
		return amount
	}
}

func (e *Engine) density(ingredientKey string) float64 {
	if d, ok := e.tables.Densities[ingredientKey]; ok {
		return d
	}
	return e.opts.DefaultDensity
}

func (e *Engine) mediumPortion(ingredientKey string) float64 {
	if sizes, ok := e.tables.Portions[ingredientKey]; ok {
		if g, ok := sizes["medium"]; ok {
			return g
		}
	}
	return e.opts.DefaultPortionGrams
}
