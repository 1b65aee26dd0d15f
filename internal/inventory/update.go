package inventory

// Event ticket thresholds, compared against the sell-in at the start of the day.
const (
	ticketDoubleWindow = 10
	ticketTripleWindow = 5
)

// AdvanceOneDay applies one day of aging to every item, in slice order.
// Each element is updated exactly once.
func AdvanceOneDay(items []Item) {
	for i := range items {
		items[i].Age()
	}
}

// Age applies one day of aging to a single item.
func (it *Item) Age() {
	switch it.resolve() {
	case Legendary:
		// Frozen: no clamp, no sell-in change.
	case Aged:
		it.Quality = raise(it.Quality, 1)
		it.SellIn--
		if it.SellIn < 0 {
			it.Quality = raise(it.Quality, 1)
		}
	case EventTicket:
		before := it.SellIn
		it.SellIn--
		switch {
		case before <= 0:
			it.Quality = 0
		case before <= ticketTripleWindow:
			it.Quality = raise(it.Quality, 3)
		case before <= ticketDoubleWindow:
			it.Quality = raise(it.Quality, 2)
		default:
			it.Quality = raise(it.Quality, 1)
		}
	default:
		it.Quality = lower(it.Quality, 1)
		it.SellIn--
		if it.SellIn < 0 {
			it.Quality = lower(it.Quality, 1)
		}
	}
}

// raise adds up to n points, one at a time, while quality is below MaxQuality.
// A quality already above the ceiling is left untouched.
func raise(quality, n int) int {
	for ; n > 0 && quality < MaxQuality; n-- {
		quality++
	}
	return quality
}

// lower removes up to n points, one at a time, while quality is above MinQuality.
func lower(quality, n int) int {
	for ; n > 0 && quality > MinQuality; n-- {
		quality--
	}
	return quality
}
