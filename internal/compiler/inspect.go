package compiler

import (
	"fmt"

	"github.com/roach88/gildedrose/internal/inventory"
)

// Warning codes reported by Inspect.
const (
	WarnQualityAboveMax  = "W001"
	WarnQualityBelowMin  = "W002"
	WarnUnusualLegendary = "W003"
	WarnDuplicateItem    = "W004"
)

// Warning flags data the update rules will accept but that looks wrong.
type Warning struct {
	Code     string `json:"code"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s items[%d] %q: %s", w.Code, w.Position, w.Name, w.Message)
}

// Inspect reports suspicious item data without changing it.
//
// Quality outside [MinQuality, MaxQuality] is legal input: the update rules
// never repair it, so it is only worth a warning. Legendary items are exempt
// from the bounds and only warned about when their quality differs from
// LegendaryQuality.
func Inspect(items []inventory.Item) []Warning {
	var warnings []Warning
	seen := make(map[string]int)

	for i, it := range items {
		if first, ok := seen[it.String()]; ok {
			warnings = append(warnings, Warning{
				Code:     WarnDuplicateItem,
				Position: i,
				Name:     it.Name,
				Message:  fmt.Sprintf("identical to items[%d]", first),
			})
		} else {
			seen[it.String()] = i
		}

		if it.Category() == inventory.Legendary {
			if it.Quality != inventory.LegendaryQuality {
				warnings = append(warnings, Warning{
					Code:     WarnUnusualLegendary,
					Position: i,
					Name:     it.Name,
					Message:  fmt.Sprintf("legendary quality %d (usually %d)", it.Quality, inventory.LegendaryQuality),
				})
			}
			continue
		}

		switch {
		case it.Quality > inventory.MaxQuality:
			warnings = append(warnings, Warning{
				Code:     WarnQualityAboveMax,
				Position: i,
				Name:     it.Name,
				Message:  fmt.Sprintf("quality %d above %d", it.Quality, inventory.MaxQuality),
			})
		case it.Quality < inventory.MinQuality:
			warnings = append(warnings, Warning{
				Code:     WarnQualityBelowMin,
				Position: i,
				Name:     it.Name,
				Message:  fmt.Sprintf("quality %d below %d", it.Quality, inventory.MinQuality),
			})
		}
	}

	return warnings
}
