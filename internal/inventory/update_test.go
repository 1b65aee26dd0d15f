package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advanceSingle(t *testing.T, name string, sellIn, quality int) Item {
	t.Helper()
	items := []Item{NewItem(name, sellIn, quality)}
	AdvanceOneDay(items)
	require.Len(t, items, 1)
	return items[0]
}

func TestQualityShouldNeverBeNegative(t *testing.T) {
	got := advanceSingle(t, "Foo", 1, 0)
	assert.Equal(t, 0, got.Quality)
}

func TestSellInShouldDecreaseEachDay(t *testing.T) {
	got := advanceSingle(t, "Foo", 2, 1)
	assert.Equal(t, 1, got.SellIn)
}

func TestQualityDegradesTwiceAsFastAfterSellByDate(t *testing.T) {
	got := advanceSingle(t, "Foo", 0, 2)
	assert.Equal(t, -1, got.SellIn)
	assert.Equal(t, 0, got.Quality)
}

func TestAgedBrieIncreasesQualityBeforeSellByDate(t *testing.T) {
	got := advanceSingle(t, NameAgedBrie, 1, 2)
	assert.Equal(t, 0, got.SellIn)
	assert.Equal(t, 3, got.Quality)
}

func TestAgedBrieIncreasesTwiceAsFastAfterSellByDate(t *testing.T) {
	got := advanceSingle(t, NameAgedBrie, 0, 2)
	assert.Equal(t, -1, got.SellIn)
	assert.Equal(t, 4, got.Quality)
}

func TestQualityNeverExceedsMax(t *testing.T) {
	got := advanceSingle(t, NameAgedBrie, 2, MaxQuality)
	assert.Equal(t, MaxQuality, got.Quality)
}

func TestSulfurasNeverChanges(t *testing.T) {
	got := advanceSingle(t, NameSulfuras, 2, LegendaryQuality)
	assert.Equal(t, 2, got.SellIn)
	assert.Equal(t, LegendaryQuality, got.Quality)
}

func TestBackstagePassIncreasesByOneFarFromConcert(t *testing.T) {
	got := advanceSingle(t, NameBackstagePass, 11, 2)
	assert.Equal(t, 10, got.SellIn)
	assert.Equal(t, 3, got.Quality)
}

func TestBackstagePassIncreasesTwiceAsFastCloseToConcert(t *testing.T) {
	got := advanceSingle(t, NameBackstagePass, 10, 2)
	assert.Equal(t, 4, got.Quality)
}

func TestBackstagePassIncreasesThriceAsFastVeryCloseToConcert(t *testing.T) {
	got := advanceSingle(t, NameBackstagePass, 5, 2)
	assert.Equal(t, 5, got.Quality)
}

func TestBackstagePassHasNoQualityAfterConcert(t *testing.T) {
	got := advanceSingle(t, NameBackstagePass, 0, 0)
	assert.Equal(t, 0, got.Quality)
}

func TestAge_RuleTable(t *testing.T) {
	tests := []struct {
		name        string
		item        string
		sellIn      int
		quality     int
		wantSellIn  int
		wantQuality int
	}{
		// Ordinary
		{"ordinary well before date", "Foo", 5, 10, 4, 9},
		{"ordinary last day before date", "Foo", 1, 10, 0, 9},
		{"ordinary on sell-by day", "Foo", 0, 10, -1, 8},
		{"ordinary long past date", "Foo", -7, 10, -8, 8},
		{"ordinary floor with extra step", "Foo", 0, 1, -1, 0},
		{"ordinary at floor", "Foo", -3, 0, -4, 0},
		{"conjured is ordinary", "Conjured Mana Cake", 3, 6, 2, 5},
		{"case sensitive name is ordinary", "aged brie", 3, 6, 2, 5},

		// Aged
		{"aged before date", NameAgedBrie, 2, 0, 1, 1},
		{"aged last day before date", NameAgedBrie, 1, 10, 0, 11},
		{"aged past date", NameAgedBrie, -2, 10, -3, 12},
		{"aged ceiling with extra step", NameAgedBrie, 0, 49, -1, 50},
		{"aged at ceiling past date", NameAgedBrie, -1, 50, -2, 50},

		// Event ticket
		{"ticket far away", NameBackstagePass, 15, 20, 14, 21},
		{"ticket at eleven", NameBackstagePass, 11, 20, 10, 21},
		{"ticket at ten", NameBackstagePass, 10, 20, 9, 22},
		{"ticket at six", NameBackstagePass, 6, 20, 5, 22},
		{"ticket at five", NameBackstagePass, 5, 20, 4, 23},
		{"ticket at one", NameBackstagePass, 1, 20, 0, 23},
		{"ticket at zero resets", NameBackstagePass, 0, 49, -1, 0},
		{"ticket past date stays zero", NameBackstagePass, -4, 30, -5, 0},
		{"ticket double capped", NameBackstagePass, 10, 49, 9, 50},
		{"ticket triple capped", NameBackstagePass, 5, 49, 4, 50},
		{"ticket triple from 48", NameBackstagePass, 3, 48, 2, 50},

		// Legendary
		{"legendary positive sell-in", NameSulfuras, 0, LegendaryQuality, 0, LegendaryQuality},
		{"legendary negative sell-in", NameSulfuras, -1, LegendaryQuality, -1, LegendaryQuality},
		{"legendary unusual quality", NameSulfuras, 10, 3, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := advanceSingle(t, tt.item, tt.sellIn, tt.quality)
			assert.Equal(t, tt.wantSellIn, got.SellIn, "sellIn")
			assert.Equal(t, tt.wantQuality, got.Quality, "quality")
			assert.Equal(t, tt.item, got.Name, "name must not change")
		})
	}
}

func TestAge_OutOfRangeQualityIsNotRepaired(t *testing.T) {
	tests := []struct {
		name        string
		item        string
		sellIn      int
		quality     int
		wantQuality int
	}{
		{"aged above ceiling stays", NameAgedBrie, 5, 60, 60},
		{"ticket above ceiling stays", NameBackstagePass, 3, 70, 70},
		{"ordinary below floor stays", "Foo", 5, -3, -3},
		{"ordinary above ceiling still degrades", "Foo", 5, 60, 59},
		{"aged below floor still improves", NameAgedBrie, 5, -3, -2},
		{"ticket reset ignores prior range", NameBackstagePass, 0, 70, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := advanceSingle(t, tt.item, tt.sellIn, tt.quality)
			assert.Equal(t, tt.wantQuality, got.Quality)
		})
	}
}

func TestAdvanceOneDay_UpdatesEveryItemOnce(t *testing.T) {
	items := []Item{
		NewItem("+5 Dexterity Vest", 10, 20),
		NewItem(NameAgedBrie, 2, 0),
		NewItem(NameSulfuras, 0, LegendaryQuality),
		NewItem(NameBackstagePass, 15, 20),
	}

	AdvanceOneDay(items)

	assert.Equal(t, NewItem("+5 Dexterity Vest", 9, 19), items[0])
	assert.Equal(t, NewItem(NameAgedBrie, 1, 1), items[1])
	assert.Equal(t, NewItem(NameSulfuras, 0, LegendaryQuality), items[2])
	assert.Equal(t, NewItem(NameBackstagePass, 14, 21), items[3])
}

func TestAdvanceOneDay_EmptyAndNil(t *testing.T) {
	assert.NotPanics(t, func() { AdvanceOneDay(nil) })
	assert.NotPanics(t, func() { AdvanceOneDay([]Item{}) })
}

func TestAdvanceOneDay_DuplicateNamesAreIndependent(t *testing.T) {
	items := []Item{
		NewItem("Foo", 3, 10),
		NewItem("Foo", 3, 10),
	}

	AdvanceOneDay(items)

	assert.Equal(t, 2, items[0].SellIn)
	assert.Equal(t, 9, items[0].Quality)
	assert.Equal(t, 2, items[1].SellIn)
	assert.Equal(t, 9, items[1].Quality)
}

func TestBackstagePassResetIsStable(t *testing.T) {
	items := []Item{NewItem(NameBackstagePass, 0, 49)}

	AdvanceOneDay(items)
	assert.Equal(t, 0, items[0].Quality)

	AdvanceOneDay(items)
	assert.Equal(t, 0, items[0].Quality)
	assert.Equal(t, -2, items[0].SellIn)
}

func TestFloorAndCeilingAreIdempotent(t *testing.T) {
	floor := []Item{NewItem("Foo", 2, 0), NewItem("Foo", -2, 0)}
	ceiling := []Item{
		NewItem(NameAgedBrie, 2, MaxQuality),
		NewItem(NameAgedBrie, -2, MaxQuality),
		NewItem(NameBackstagePass, 12, MaxQuality),
		NewItem(NameBackstagePass, 8, MaxQuality),
		NewItem(NameBackstagePass, 2, MaxQuality),
	}

	for day := 0; day < 5; day++ {
		AdvanceOneDay(floor)
		AdvanceOneDay(ceiling)
		for _, it := range floor {
			assert.Equal(t, MinQuality, it.Quality, "day %d: %s", day, it)
		}
		for _, it := range ceiling {
			assert.LessOrEqual(t, it.Quality, MaxQuality, "day %d: %s", day, it)
		}
	}
}

func TestOrdinaryDegradesByOneBeforeDate(t *testing.T) {
	for sellIn := 2; sellIn <= 20; sellIn++ {
		for q := 1; q <= MaxQuality; q++ {
			got := advanceSingle(t, "Elixir of the Mongoose", sellIn, q)
			require.Equal(t, q-1, got.Quality, "sellIn=%d quality=%d", sellIn, q)
			require.Equal(t, sellIn-1, got.SellIn)
		}
	}
}

func TestLiteralItemsAreClassifiedOnFirstStep(t *testing.T) {
	items := []Item{
		{Name: NameAgedBrie, SellIn: 1, Quality: 2},
		{Name: NameSulfuras, SellIn: 2, Quality: LegendaryQuality},
	}

	AdvanceOneDay(items)

	assert.Equal(t, 3, items[0].Quality)
	assert.Equal(t, Aged, items[0].Category())
	assert.Equal(t, 2, items[1].SellIn)
	assert.Equal(t, Legendary, items[1].Category())
}
