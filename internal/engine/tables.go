package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Nutrients holds a nutrient profile. Reference table entries are per 100g;
// aggregated results are per serving.
type Nutrients struct {
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fat       float64 `json:"fat"`
	Fiber     float64 `json:"fiber"`
	Sugar     float64 `json:"sugar"`
	Sodium    float64 `json:"sodium"`
	VitaminC  float64 `json:"vitamin_c"`
	Calcium   float64 `json:"calcium"`
	Iron      float64 `json:"iron"`
	Potassium float64 `json:"potassium"`
}

// addScaled accumulates another profile scaled by factor.
func (n *Nutrients) addScaled(other Nutrients, factor float64) {
	n.Calories += other.Calories * factor
	n.Protein += other.Protein * factor
	n.Carbs += other.Carbs * factor
	n.Fat += other.Fat * factor
	n.Fiber += other.Fiber * factor
	n.Sugar += other.Sugar * factor
	n.Sodium += other.Sodium * factor
	n.VitaminC += other.VitaminC * factor
	n.Calcium += other.Calcium * factor
	n.Iron += other.Iron * factor
	n.Potassium += other.Potassium * factor
}

// perServing divides every field by servings and rounds to 2 decimal places.
func (n Nutrients) perServing(servings float64) Nutrients {
	return Nutrients{
		Calories:  round2(n.Calories / servings),
		Protein:   round2(n.Protein / servings),
		Carbs:     round2(n.Carbs / servings),
		Fat:       round2(n.Fat / servings),
		Fiber:     round2(n.Fiber / servings),
		Sugar:     round2(n.Sugar / servings),
		Sodium:    round2(n.Sodium / servings),
		VitaminC:  round2(n.VitaminC / servings),
		Calcium:   round2(n.Calcium / servings),
		Iron:      round2(n.Iron / servings),
		Potassium: round2(n.Potassium / servings),
	}
}

// DietaryRule defines a dietary tag by ingredient keywords. A recipe earns the
// tag when none of the Exclude keywords appear and at least one Include
// keyword appears (an empty Include list always passes).
type DietaryRule struct {
	Exclude []string `json:"exclude"`
	Include []string `json:"include"`
}

// TagRules holds the keyword tables used for rule-based tag generation.
type TagRules struct {
	Dietary              map[string]DietaryRule `json:"dietary"`
	Cuisines             map[string][]string    `json:"cuisines"`
	CookingMethods       map[string][]string    `json:"cooking_methods"`
	MealTypes            map[string][]string    `json:"meal_types"`
	Times                map[string][]string    `json:"times"`
	Seasons              map[string][]string    `json:"seasons"`
	IngredientCategories map[string][]string    `json:"ingredient_categories"`
}

// Tables bundles the immutable reference data the engine is built on. All
// tables are loaded once at startup and never mutated, so they are safe for
// concurrent reads.
type Tables struct {
	// Nutrition maps canonical ingredient keys to per-100g profiles.
	Nutrition map[string]Nutrients `json:"nutrition"`
	// Aliases maps common synonyms to canonical nutrition keys.
	Aliases map[string]string `json:"aliases"`
	// Densities maps ingredient keys to grams per milliliter.
	Densities map[string]float64 `json:"densities"`
	// Portions maps ingredient keys to grams per discrete unit by size class.
	Portions map[string]map[string]float64 `json:"portions"`
	// PairingRules maps ingredient/cuisine/category keys to suggestions.
	PairingRules map[string][]string `json:"pairing_rules"`
	// Dietary maps restriction names to exclude-keyword blocklists.
	Dietary map[string][]string `json:"dietary_restrictions"`
	// Techniques lists complex-technique keywords for difficulty estimation.
	Techniques []string `json:"techniques"`
	// Tags holds the keyword tables for tag generation.
	Tags TagRules `json:"tag_rules"`
}

// table file names expected under the data directory.
const (
	nutritionFile = "nutrition.json"
	aliasesFile   = "aliases.json"
	densitiesFile = "densities.json"
	portionsFile  = "portions.json"
	pairingsFile  = "pairings.json"
	dietaryFile   = "dietary.json"
	tagRulesFile  = "tag_rules.json"
)

// LoadTables reads the reference tables from JSON files in dir. The tables are
// configuration data so they can be extended without code changes.
func LoadTables(dir string) (*Tables, error) {
	t := &Tables{}

	if err := readJSON(filepath.Join(dir, nutritionFile), &t.Nutrition); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, aliasesFile), &t.Aliases); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, densitiesFile), &t.Densities); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, portionsFile), &t.Portions); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, pairingsFile), &t.PairingRules); err != nil {
		return nil, err
	}
	var dietary struct {
		Restrictions map[string][]string `json:"restrictions"`
	}
	if err := readJSON(filepath.Join(dir, dietaryFile), &dietary); err != nil {
		return nil, err
	}
	t.Dietary = dietary.Restrictions
	var rules struct {
		Techniques []string `json:"techniques"`
		TagRules   TagRules `json:"tag_rules"`
	}
	if err := readJSON(filepath.Join(dir, tagRulesFile), &rules); err != nil {
		return nil, err
	}
	t.Techniques = rules.Techniques
	t.Tags = rules.TagRules

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that the loaded tables are usable.
func (t *Tables) Validate() error {
	if len(t.Nutrition) == 0 {
		return fmt.Errorf("nutrition table is empty")
	}
	for alias, target := range t.Aliases {
		if _, ok := t.Nutrition[target]; !ok {
			return fmt.Errorf("alias %q points to unknown nutrition key %q", alias, target)
		}
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read table %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse table %s: %w", filepath.Base(path), err)
	}
	return nil
}
