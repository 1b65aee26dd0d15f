package testutil

import "github.com/roach88/gildedrose/internal/inventory"

// TexttestItems returns the classic nine-item inventory used by the daily
// text fixture. Each call returns a fresh slice.
func TexttestItems() []inventory.Item {
	return []inventory.Item{
		inventory.NewItem("+5 Dexterity Vest", 10, 20),
		inventory.NewItem(inventory.NameAgedBrie, 2, 0),
		inventory.NewItem("Elixir of the Mongoose", 5, 7),
		inventory.NewItem(inventory.NameSulfuras, 0, inventory.LegendaryQuality),
		inventory.NewItem(inventory.NameSulfuras, -1, inventory.LegendaryQuality),
		inventory.NewItem(inventory.NameBackstagePass, 15, 20),
		inventory.NewItem(inventory.NameBackstagePass, 10, 49),
		inventory.NewItem(inventory.NameBackstagePass, 5, 49),
		inventory.NewItem("Conjured Mana Cake", 3, 6),
	}
}
