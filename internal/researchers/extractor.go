// Package researchers extracts and deduplicates researcher records from
// OpenAlex works and author pages.
package researchers

import (
	"strings"

	"github.com/rhettlabs/research-dashboard-service/internal/domain"
	"github.com/rhettlabs/research-dashboard-service/internal/openalex"
)

// DefaultField is the constant field label attached to researchers extracted
// from works, where no per-author subject data is available.
const DefaultField = "AI Research"

// unknownAffiliation is the sentinel for an authorship with no institutions.
const unknownAffiliation = "N/A"

// ExtractFromWorks walks the authorships of each work in page order and
// collects up to max unique authors, in first-encountered order. An
// authorship with no author object is skipped; an author ID already captured
// is neither re-added nor re-ordered. Both walks short-circuit once max
// unique authors are collected.
//
// WorksCount and CitedByCount are not retrievable from work authorships and
// are left nil so callers can distinguish "unknown" from zero.
func ExtractFromWorks(works []openalex.Work, max int) []domain.ResearcherSummary {
	if max <= 0 {
		return []domain.ResearcherSummary{}
	}

	seen := make(map[string]struct{}, max)
	out := make([]domain.ResearcherSummary, 0, max)

	for _, work := range works {
		for _, authorship := range work.Authorships {
			author := authorship.Author
			if author == nil || author.ID == "" {
				continue
			}
			if _, ok := seen[author.ID]; ok {
				continue
			}

			affiliation := unknownAffiliation
			if len(authorship.Institutions) > 0 && authorship.Institutions[0].DisplayName != "" {
				affiliation = authorship.Institutions[0].DisplayName
			}

			name := author.DisplayName
			if name == "" {
				name = "Unknown"
			}

			seen[author.ID] = struct{}{}
			out = append(out, domain.ResearcherSummary{
				Name:        name,
				Link:        author.ID,
				Affiliation: affiliation,
				Field:       DefaultField,
			})

			if len(out) >= max {
				return out
			}
		}
	}
	return out
}

// FromAuthor maps a full author record from an author-level search to a
// directory entry. The link prefers the author's ORCID and falls back to a
// constructed scholar search URL.
func FromAuthor(author openalex.Author) domain.Researcher {
	name := author.DisplayName
	if name == "" {
		name = "Unknown"
	}

	affiliation := "Unknown"
	country := ""
	if inst := author.LastKnownInstitution; inst != nil {
		if inst.DisplayName != "" {
			affiliation = inst.DisplayName
		}
		country = inst.CountryCode
	}

	topics := make([]string, 0, 5)
	for _, c := range author.XConcepts {
		if len(topics) >= 5 {
			break
		}
		if c.DisplayName != "" {
			topics = append(topics, c.DisplayName)
		}
	}

	link := author.Orcid
	if link == "" {
		link = "https://scholar.google.com/scholar?q=" + strings.ReplaceAll(name, " ", "+")
	}

	return domain.Researcher{
		Name:        name,
		Affiliation: affiliation,
		Country:     country,
		Link:        link,
		Topics:      topics,
		Citations:   author.CitedByCount,
		WorksCount:  author.WorksCount,
	}
}

// FromAuthors maps a page of author records to directory entries.
func FromAuthors(authors []openalex.Author) []domain.Researcher {
	out := make([]domain.Researcher, len(authors))
	for i, a := range authors {
		out[i] = FromAuthor(a)
	}
	return out
}
