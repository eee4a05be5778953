// Package trends aggregates concept tags across a page of works into ranked
// trending topics.
package trends

import (
	"sort"

	"github.com/rhettlabs/research-dashboard-service/internal/domain"
	"github.com/rhettlabs/research-dashboard-service/internal/openalex"
)

// Default aggregation parameters.
const (
	// DefaultMinLevel excludes overly broad top-level concepts.
	DefaultMinLevel = 2

	// DefaultTopN caps the ranked topic list.
	DefaultTopN = 30
)

// Aggregate walks every work in the page and counts concept display names,
// keeping only concepts whose level is at least minLevel. The result is
// sorted by count descending with first-seen order preserved on ties, and
// capped at topN entries. A nil or empty page yields an empty list.
func Aggregate(works []openalex.Work, minLevel, topN int) []domain.RankedTopic {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, work := range works {
		for _, concept := range work.Concepts {
			if concept.DisplayName == "" || concept.Level < minLevel {
				continue
			}
			if _, ok := counts[concept.DisplayName]; !ok {
				firstSeen[concept.DisplayName] = len(firstSeen)
			}
			counts[concept.DisplayName]++
		}
	}

	topics := make([]domain.RankedTopic, 0, len(counts))
	for name, count := range counts {
		topics = append(topics, domain.RankedTopic{Name: name, Count: count})
	}

	sort.SliceStable(topics, func(i, j int) bool {
		if topics[i].Count != topics[j].Count {
			return topics[i].Count > topics[j].Count
		}
		return firstSeen[topics[i].Name] < firstSeen[topics[j].Name]
	})

	if topN > 0 && len(topics) > topN {
		topics = topics[:topN]
	}
	return topics
}

// WordCloud converts a ranked topic list into word-cloud pairs. Both
// presentation modes derive from one aggregation pass; callers must not
// re-aggregate per mode.
func WordCloud(topics []domain.RankedTopic) []domain.WordCount {
	words := make([]domain.WordCount, len(topics))
	for i, t := range topics {
		words[i] = domain.WordCount{Text: t.Name, Value: t.Count}
	}
	return words
}

// Split converts a ranked topic list into equal-length parallel name and
// count sequences in the same sorted order.
func Split(topics []domain.RankedTopic) ([]string, []int) {
	names := make([]string, len(topics))
	counts := make([]int, len(topics))
	for i, t := range topics {
		names[i] = t.Name
		counts[i] = t.Count
	}
	return names, counts
}
