// Package domain defines the core types shared across the research dashboard
// service: ranked topics, researcher summaries, lootbox capsules, and the
// error taxonomy for upstream failures.
package domain

// RankedTopic is a concept display name with its occurrence count across a
// page of works. Lists of RankedTopic are always sorted by Count descending,
// with first-seen order preserved on ties.
type RankedTopic struct {
	Name  string `json:"topic"`
	Count int    `json:"count"`
}

// WordCount is the word-cloud presentation of a RankedTopic.
type WordCount struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// ResearcherSummary is one unique author extracted from the authorships of a
// works page. WorksCount and CitedByCount are not retrievable at this
// granularity; nil means "unknown", which is distinct from zero.
type ResearcherSummary struct {
	Name         string `json:"name"`
	Link         string `json:"link"`
	Affiliation  string `json:"affiliation"`
	Field        string `json:"field"`
	WorksCount   *int   `json:"works_count"`
	CitedByCount *int   `json:"cited_by_count"`
}

// Researcher is a directory entry from an author-level search.
type Researcher struct {
	Name        string   `json:"name"`
	Affiliation string   `json:"affiliation"`
	Country     string   `json:"country"`
	Link        string   `json:"link"`
	Topics      []string `json:"topics"`
	Citations   int      `json:"citations"`
	WorksCount  int      `json:"works_count"`
}

// PaperSummary is a compact work reference used in chat suggestions.
type PaperSummary struct {
	Title     string `json:"title"`
	Year      int    `json:"year"`
	Citations int    `json:"citations"`
	Link      string `json:"link"`
}

// Rarity is a citation-derived tier code used for the lootbox presentation.
type Rarity string

// Rarity tier codes, from most to least rare.
const (
	RaritySSR Rarity = "SSR"
	RaritySR  Rarity = "SR"
	RarityR   Rarity = "R"
	RarityN   Rarity = "N"
)

// Capsule is a single lootbox reveal: a work plus its rarity classification.
// Authors and Concepts are truncated to at most three entries each,
// preserving source order.
type Capsule struct {
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Citations   int      `json:"citations"`
	Link        string   `json:"link"`
	Rarity      Rarity   `json:"rarity"`
	RarityLabel string   `json:"rarity_label"`
	Authors     []string `json:"authors"`
	Concepts    []string `json:"concepts"`
	Abstract    string   `json:"abstract,omitempty"`
}
