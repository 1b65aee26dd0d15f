package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/gildedrose/internal/inventory"
)

// Scenario defines an inventory conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Days is the number of days to simulate after day 0.
	Days int `yaml:"days"`

	// Items is the starting inventory, in order.
	Items []ItemSpec `yaml:"items"`

	// Assertions validate the recorded day states.
	// Supported types: item_state, final_state, unchanged, quality_bounds
	Assertions []Assertion `yaml:"assertions"`

	// RunToken is an optional fixed run token.
	// If empty, testutil.DefaultRunToken is used.
	RunToken string `yaml:"run_token,omitempty"`
}

// ItemSpec is one starting item of a scenario.
type ItemSpec struct {
	Name    string `yaml:"name"`
	SellIn  int    `yaml:"sell_in"`
	Quality int    `yaml:"quality"`
}

// Inventory builds the scenario's starting items.
func (s *Scenario) Inventory() []inventory.Item {
	items := make([]inventory.Item, len(s.Items))
	for i, it := range s.Items {
		items[i] = inventory.NewItem(it.Name, it.SellIn, it.Quality)
	}
	return items
}

// Assertion validates recorded day states.
type Assertion struct {
	// Type specifies the assertion type:
	// - "item_state": Check one item on one day
	// - "final_state": Check one item on the last day
	// - "unchanged": Check one item never changes
	// - "quality_bounds": Check no item leaves [0, 50] once inside it
	Type string `yaml:"type"`

	// Day is the day to check (used by item_state).
	Day *int64 `yaml:"day,omitempty"`

	// Position is the item's index in the inventory
	// (used by item_state, final_state, unchanged).
	Position int `yaml:"position,omitempty"`

	// SellIn and Quality are the expected values. Unset fields are not checked.
	SellIn  *int `yaml:"sell_in,omitempty"`
	Quality *int `yaml:"quality,omitempty"`
}

// Assertion type constants.
const (
	AssertItemState     = "item_state"
	AssertFinalState    = "final_state"
	AssertUnchanged     = "unchanged"
	AssertQualityBounds = "quality_bounds"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Days < 0 {
		return fmt.Errorf("days must be non-negative, got %d", s.Days)
	}

	if len(s.Items) == 0 {
		return fmt.Errorf("items list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, item := range s.Items {
		if item.Name == "" {
			return fmt.Errorf("items[%d]: name is required", i)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i], s); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, s *Scenario) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertItemState:
		if a.Day == nil {
			return fmt.Errorf("assertions[%d]: day is required for item_state", index)
		}
		if *a.Day < 0 || *a.Day > int64(s.Days) {
			return fmt.Errorf("assertions[%d]: day %d outside simulated range 0..%d", index, *a.Day, s.Days)
		}
		if err := validatePosition(index, a, s); err != nil {
			return err
		}
		if a.SellIn == nil && a.Quality == nil {
			return fmt.Errorf("assertions[%d]: sell_in or quality is required for item_state", index)
		}
	case AssertFinalState:
		if err := validatePosition(index, a, s); err != nil {
			return err
		}
		if a.SellIn == nil && a.Quality == nil {
			return fmt.Errorf("assertions[%d]: sell_in or quality is required for final_state", index)
		}
	case AssertUnchanged:
		if err := validatePosition(index, a, s); err != nil {
			return err
		}
	case AssertQualityBounds:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func validatePosition(index int, a *Assertion, s *Scenario) error {
	if a.Position < 0 || a.Position >= len(s.Items) {
		return fmt.Errorf("assertions[%d]: position %d outside inventory of %d items", index, a.Position, len(s.Items))
	}
	return nil
}
