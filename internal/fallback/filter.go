package fallback

import (
	"strings"

	"github.com/rhettlabs/research-dashboard-service/internal/domain"
)

// FilterResearchers applies the same topic/institution/country predicates
// the live path would have applied upstream, locally and in-process.
// Matching is a case-insensitive substring check on each field
// independently, with AND semantics across simultaneously supplied filters.
// Empty filter values match everything. Filtering is idempotent and
// commutative across the three fields.
func FilterResearchers(list []domain.Researcher, topic, institution, country string) []domain.Researcher {
	out := make([]domain.Researcher, 0, len(list))
	for _, r := range list {
		if topic != "" && !matchesTopic(r, topic) {
			continue
		}
		if institution != "" && !containsFold(r.Affiliation, institution) {
			continue
		}
		if country != "" && !containsFold(r.Country, country) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matchesTopic reports whether any of the researcher's topics contains the
// query as a case-insensitive substring.
func matchesTopic(r domain.Researcher, topic string) bool {
	for _, t := range r.Topics {
		if containsFold(t, topic) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
