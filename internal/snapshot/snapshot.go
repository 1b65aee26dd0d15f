// Package snapshot captures the state of an inventory at the end of a day
// and gives it a stable, content-addressed identity.
//
// Snapshots are serialized with canonical JSON (see MarshalCanonical) so the
// same inventory state always hashes to the same value, regardless of map
// iteration order or Unicode normalization form of item names.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/gildedrose/internal/inventory"
)

// DomainSnapshot is the hash domain for day snapshots.
// The version suffix leaves room for a future encoding change.
const DomainSnapshot = "gildedrose/snapshot/v1"

// ItemState is the recorded state of one item on one day.
type ItemState struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	SellIn   int    `json:"sell_in"`
	Quality  int    `json:"quality"`
}

// Snapshot is the state of every item at the end of a day.
// Day 0 is the initial state before any update.
type Snapshot struct {
	Day   int64       `json:"day"`
	Items []ItemState `json:"items"`
}

// Capture copies the state of items for the given day.
// The returned snapshot does not alias items.
func Capture(day int64, items []inventory.Item) Snapshot {
	states := make([]ItemState, len(items))
	for i, it := range items {
		states[i] = ItemState{
			Position: i,
			Name:     it.Name,
			SellIn:   it.SellIn,
			Quality:  it.Quality,
		}
	}
	return Snapshot{Day: day, Items: states}
}

// Restore rebuilds inventory items from the snapshot, in position order.
func (s Snapshot) Restore() []inventory.Item {
	items := make([]inventory.Item, len(s.Items))
	for i, st := range s.Items {
		items[i] = inventory.NewItem(st.Name, st.SellIn, st.Quality)
	}
	return items
}

// Find returns the item state at the given position.
func (s Snapshot) Find(position int) (ItemState, bool) {
	if position < 0 || position >= len(s.Items) {
		return ItemState{}, false
	}
	return s.Items[position], true
}

// toCanonicalMap converts the snapshot into plain values for MarshalCanonical.
func (s Snapshot) toCanonicalMap() map[string]any {
	items := make([]any, len(s.Items))
	for i, st := range s.Items {
		items[i] = map[string]any{
			"position": st.Position,
			"name":     st.Name,
			"sell_in":  st.SellIn,
			"quality":  st.Quality,
		}
	}
	return map[string]any{
		"day":   s.Day,
		"items": items,
	}
}

// Canonical returns the canonical JSON encoding of the snapshot.
func (s Snapshot) Canonical() ([]byte, error) {
	return MarshalCanonical(s.toCanonicalMap())
}

// Hash computes the content-addressed identity of the snapshot.
// Format: hex(SHA256(DomainSnapshot + 0x00 + canonical JSON)).
func (s Snapshot) Hash() (string, error) {
	data, err := s.Canonical()
	if err != nil {
		return "", fmt.Errorf("snapshot hash: %w", err)
	}
	return hashWithDomain(DomainSnapshot, data), nil
}

func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
