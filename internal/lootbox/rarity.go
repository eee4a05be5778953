// Package lootbox classifies works into citation-derived rarity tiers and
// assembles gamified capsule reveals.
package lootbox

import "github.com/rhettlabs/research-dashboard-service/internal/domain"

// threshold is one row of the rarity table: the minimum citation count for
// a tier.
type threshold struct {
	min   int
	code  domain.Rarity
	label string
}

// rarityTable is evaluated highest-threshold-first. The rows are closed,
// exhaustive, and mutually exclusive; the final row catches everything at
// zero or above.
var rarityTable = []threshold{
	{min: 5000, code: domain.RaritySSR, label: "Legendary"},
	{min: 1000, code: domain.RaritySR, label: "Epic"},
	{min: 200, code: domain.RarityR, label: "Rare"},
	{min: 0, code: domain.RarityN, label: "Common"},
}

// Classify maps a non-negative citation count to its rarity tier code and
// label. It is total and deterministic.
func Classify(citations int) (domain.Rarity, string) {
	for _, t := range rarityTable {
		if citations >= t.min {
			return t.code, t.label
		}
	}
	// Unreachable for non-negative input; the zero row is the floor.
	return domain.RarityN, "Common"
}
