package inventory

import "fmt"

// Quality bounds shared by every non-legendary category.
const (
	MaxQuality = 50
	MinQuality = 0

	// LegendaryQuality is the customary quality of a legendary item.
	// It is data, not a bound: the engine never enforces or restores it.
	LegendaryQuality = 80
)

// Item names with dedicated rules. Matching is exact and case-sensitive.
const (
	NameSulfuras      = "Sulfuras, Hand of Ragnaros"
	NameAgedBrie      = "Aged Brie"
	NameBackstagePass = "Backstage passes to a TAFKAL80ETC concert"
)

// Category selects the update rule for an item.
type Category int

const (
	// unclassified marks an Item built as a struct literal; the category is
	// resolved from the name on first use.
	unclassified Category = iota
	Ordinary
	Legendary
	Aged
	EventTicket
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Ordinary:
		return "ordinary"
	case Legendary:
		return "legendary"
	case Aged:
		return "aged"
	case EventTicket:
		return "event_ticket"
	default:
		return "unclassified"
	}
}

// Classify maps an item name to its category.
// Unknown names fall through to Ordinary.
func Classify(name string) Category {
	switch name {
	case NameSulfuras:
		return Legendary
	case NameAgedBrie:
		return Aged
	case NameBackstagePass:
		return EventTicket
	default:
		return Ordinary
	}
}

// Item is a single stock entry.
//
// Name is treated as an opaque category key. SellIn may go negative.
// Quality is nominally within [MinQuality, MaxQuality] except for
// legendary items.
type Item struct {
	Name    string
	SellIn  int
	Quality int

	category Category
}

// NewItem creates an item and resolves its category once.
func NewItem(name string, sellIn, quality int) Item {
	return Item{
		Name:     name,
		SellIn:   sellIn,
		Quality:  quality,
		category: Classify(name),
	}
}

// Category returns the item's update category.
func (it Item) Category() Category {
	if it.category == unclassified {
		return Classify(it.Name)
	}
	return it.category
}

// String renders the item as "name, sellIn, quality".
func (it Item) String() string {
	return fmt.Sprintf("%s, %d, %d", it.Name, it.SellIn, it.Quality)
}

func (it *Item) resolve() Category {
	if it.category == unclassified {
		it.category = Classify(it.Name)
	}
	return it.category
}
