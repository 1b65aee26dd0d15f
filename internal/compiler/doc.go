// Package compiler turns inventory files into inventory items.
//
// Two formats are accepted, with the same shape:
//
// CUE (.cue):
//
//	label: "texttest"
//	items: [
//		{name: "Aged Brie", sell_in: 2, quality: 0},
//		{name: "Sulfuras, Hand of Ragnaros", sell_in: 0, quality: 80},
//	]
//
// YAML (.yaml, .yml):
//
//	label: texttest
//	items:
//	  - name: Aged Brie
//	    sell_in: 2
//	    quality: 0
//
// Every item needs name, sell_in and quality. Quality is not range-checked:
// the update rules accept any integer and loading must not normalize data.
// Use Inspect to surface suspicious values as warnings.
package compiler
