// Package insights derives spending categories and tips from transaction
// notes using keyword rules. It is deliberately deterministic and local.
package insights

import "strings"

var categoryKeywords = map[string][]string{
	"food":          {"pizza", "restaurant", "lunch", "dinner", "coffee", "grocer", "food", "snack", "takeout"},
	"transport":     {"uber", "taxi", "bus", "train", "fuel", "gas", "parking", "metro"},
	"housing":       {"rent", "mortgage", "lease"},
	"utilities":     {"electric", "water bill", "internet", "phone bill", "utility", "utilities"},
	"entertainment": {"movie", "cinema", "concert", "game", "netflix", "spotify", "streaming"},
	"shopping":      {"clothes", "shoes", "amazon", "mall", "shopping"},
	"health":        {"pharmacy", "doctor", "gym", "dentist", "hospital"},
}

// categoryOrder fixes the match order so a note that mentions two categories
// always resolves the same way.
var categoryOrder = []string{"food", "transport", "housing", "utilities", "entertainment", "shopping", "health"}

var categoryTips = map[string]string{
	"food":          "Cooking at home a few more nights a week can meaningfully cut food spending.",
	"transport":     "Batching trips or switching to transit passes can trim transport costs.",
	"housing":       "Housing is usually the largest fixed cost; review it when a lease renews.",
	"utilities":     "An annual plan review often lowers recurring utility bills.",
	"entertainment": "Rotating subscriptions instead of stacking them keeps entertainment cheap.",
	"shopping":      "A 48-hour wait before non-essential purchases curbs impulse shopping.",
	"health":        "Preventive care and generic options keep health spending predictable.",
}

// Categorize maps a free-text transaction note to a spending category.
// It returns the empty string when no rule matches.
func Categorize(note string) string {
	lowered := strings.ToLower(note)
	if lowered == "" {
		return ""
	}
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lowered, keyword) {
				return category
			}
		}
	}
	return ""
}

// Tip returns a one-line saving tip for a spending category.
func Tip(category string) string {
	if tip, ok := categoryTips[category]; ok {
		return tip
	}
	return "Your highest spending category is " + category + "."
}
