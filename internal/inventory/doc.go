// Package inventory implements the daily update rules for stock items.
//
// Every item carries a sell-in (days left before its sell-by date) and a
// quality score. AdvanceOneDay moves a whole inventory forward by one day,
// mutating each item in place according to its category:
//
//   - Legendary ("Sulfuras, Hand of Ragnaros"): never changes.
//   - Aged ("Aged Brie"): gains quality, twice as fast once the date passed.
//   - EventTicket ("Backstage passes to a TAFKAL80ETC concert"): gains
//     quality faster as the concert approaches, drops to zero afterwards.
//   - Ordinary (any other name): loses quality, twice as fast once the
//     date passed.
//
// # Quality Bounds
//
// Quality stays within [MinQuality, MaxQuality] for every category except
// Legendary, whose quality is frozen (usually at LegendaryQuality). The clamps
// only stop a step from pushing quality further out of range; a value that
// is already out of range is left as it is.
//
// # Boundary Days
//
// Ordinary and Aged items decide on their extra step using the sell-in after
// today's decrement. Event tickets pick their increase using the sell-in
// before today's decrement. Both rules are observable at sell-in 0 and 1.
//
// The package does no I/O and holds no state. Calls on distinct slices are
// independent; calls on the same slice must be serialized by the caller.
package inventory
