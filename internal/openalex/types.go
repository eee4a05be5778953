// Package openalex provides a client for the OpenAlex API.
//
// OpenAlex is a free, open catalog of scholarly works, authors, venues,
// institutions, and concepts. The dashboard uses it as its only bibliographic
// source: trending topics, researcher directories, and lootbox capsules are
// all derived from the entity pages returned by this package.
//
// API Documentation: https://docs.openalex.org/
package openalex

// Meta contains metadata about a result page including pagination info.
type Meta struct {
	Count   int `json:"count"`
	DBTime  int `json:"db_response_time_ms"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// WorksPage is the response from the /works endpoint.
type WorksPage struct {
	Meta    Meta   `json:"meta"`
	Results []Work `json:"results"`
}

// Work represents a single publication record.
type Work struct {
	ID              string       `json:"id"`
	DOI             string       `json:"doi"`
	Title           string       `json:"title"`
	DisplayName     string       `json:"display_name"`
	PublicationYear int          `json:"publication_year"`
	PublicationDate string       `json:"publication_date"`
	Type            string       `json:"type"`
	CitedByCount    int          `json:"cited_by_count"`
	Authorships     []Authorship `json:"authorships"`
	Concepts        []Concept    `json:"concepts"`

	// AbstractInvertedIndex maps words to their positions; the abstract text
	// is reconstructed on demand.
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}

// Authorship is the join record linking a work to an author and that
// author's affiliated institutions for the work. Author may be null in
// upstream data; callers must check before dereferencing.
type Authorship struct {
	AuthorPosition string        `json:"author_position"`
	Author         *AuthorRef    `json:"author"`
	Institutions   []Institution `json:"institutions"`
}

// AuthorRef contains the author identity embedded in an authorship.
type AuthorRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Orcid       string `json:"orcid"`
}

// Institution represents an academic institution.
type Institution struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code"`
	Type        string `json:"type"`
}

// Concept is a hierarchical subject classification attached to a work.
// Level runs from 0 (most general) to 5 (most specific).
type Concept struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Level       int     `json:"level"`
	Score       float64 `json:"score"`
}

// AuthorsPage is the response from the /authors endpoint.
type AuthorsPage struct {
	Meta    Meta     `json:"meta"`
	Results []Author `json:"results"`
}

// Author is a full author record from an author-level search. Unlike the
// AuthorRef embedded in authorships, it carries aggregate counts and the
// author's last known institution.
type Author struct {
	ID                   string       `json:"id"`
	DisplayName          string       `json:"display_name"`
	Orcid                string       `json:"orcid"`
	WorksCount           int          `json:"works_count"`
	CitedByCount         int          `json:"cited_by_count"`
	LastKnownInstitution *Institution `json:"last_known_institution"`
	XConcepts            []Concept    `json:"x_concepts"`
}

// InstitutionsPage is the response from the /institutions endpoint.
type InstitutionsPage struct {
	Meta    Meta          `json:"meta"`
	Results []Institution `json:"results"`
}

// ConceptsPage is the response from the /concepts endpoint.
type ConceptsPage struct {
	Meta    Meta      `json:"meta"`
	Results []Concept `json:"results"`
}

// Source represents a publication venue (journal, repository, etc.).
type Source struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
	IsOA        bool   `json:"is_oa"`
}

// SourcesPage is the response from the /sources endpoint.
type SourcesPage struct {
	Meta    Meta     `json:"meta"`
	Results []Source `json:"results"`
}
