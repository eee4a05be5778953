package lootbox

import (
	"math/rand"

	"github.com/rhettlabs/research-dashboard-service/internal/domain"
	"github.com/rhettlabs/research-dashboard-service/internal/openalex"
)

// Assembly parameters.
const (
	// OversampleSize is how many works are fetched before sampling.
	OversampleSize = 20

	// PullCount is how many capsules one lootbox opening reveals.
	PullCount = 5

	// maxNames caps the authors and concepts carried on a capsule.
	maxNames = 3
)

// Build uniformly samples up to n distinct works from the page without
// replacement and converts each into a classified capsule. The rng is
// injected so tests can be deterministic.
func Build(works []openalex.Work, n int, rng *rand.Rand) []domain.Capsule {
	if n > len(works) {
		n = len(works)
	}

	idx := rng.Perm(len(works))[:n]
	capsules := make([]domain.Capsule, 0, n)
	for _, i := range idx {
		capsules = append(capsules, FromWork(works[i]))
	}
	return capsules
}

// FromWork converts a single work into a capsule, classifying its citation
// count and truncating authors and concepts to three each in source order.
func FromWork(work openalex.Work) domain.Capsule {
	code, label := Classify(work.CitedByCount)

	title := work.Title
	if title == "" {
		title = work.DisplayName
	}
	if title == "" {
		title = "Unknown Title"
	}

	authors := make([]string, 0, maxNames)
	for _, authorship := range work.Authorships {
		if len(authors) >= maxNames {
			break
		}
		if authorship.Author != nil && authorship.Author.DisplayName != "" {
			authors = append(authors, authorship.Author.DisplayName)
		}
	}

	concepts := make([]string, 0, maxNames)
	for _, concept := range work.Concepts {
		if len(concepts) >= maxNames {
			break
		}
		if concept.DisplayName != "" {
			concepts = append(concepts, concept.DisplayName)
		}
	}

	return domain.Capsule{
		Title:       title,
		Year:        work.PublicationYear,
		Citations:   work.CitedByCount,
		Link:        work.ID,
		Rarity:      code,
		RarityLabel: label,
		Authors:     authors,
		Concepts:    concepts,
		Abstract:    openalex.ReconstructAbstract(work.AbstractInvertedIndex),
	}
}
