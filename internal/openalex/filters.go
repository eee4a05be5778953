package openalex

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter is a single key:value entry of the OpenAlex filter parameter.
type Filter struct {
	Key   string
	Value string
}

// Filters is an ordered list of filter entries. Entries are serialized in
// insertion order and joined with "," into one combined filter parameter.
// Setting a key that is already present overwrites its value in place
// (last write wins) so shortcut filters compose losslessly with explicitly
// supplied entries.
type Filters []Filter

// With returns the filters with key set to value. Boolean values are
// lower-cased, everything else is formatted with fmt.
func (f Filters) With(key string, value interface{}) Filters {
	var s string
	switch v := value.(type) {
	case bool:
		s = strconv.FormatBool(v)
	case string:
		s = v
	default:
		s = fmt.Sprintf("%v", v)
	}

	for i := range f {
		if f[i].Key == key {
			out := make(Filters, len(f))
			copy(out, f)
			out[i].Value = s
			return out
		}
	}
	return append(f, Filter{Key: key, Value: s})
}

// Encode serializes the filters into the combined filter parameter value.
// It returns "" when no filters are set.
func (f Filters) Encode() string {
	if len(f) == 0 {
		return ""
	}
	parts := make([]string, len(f))
	for i, entry := range f {
		parts[i] = entry.Key + ":" + entry.Value
	}
	return strings.Join(parts, ",")
}

// Shortcut filters. Each maps to one well-defined OpenAlex filter key.

// PublicationYear filters works published in a single year.
func (f Filters) PublicationYear(year int) Filters {
	return f.With("publication_year", strconv.Itoa(year))
}

// YearRange filters works published between from and to, inclusive.
func (f Filters) YearRange(from, to int) Filters {
	return f.With("publication_year", fmt.Sprintf("%d-%d", from, to))
}

// Years filters works published in any of the given years.
func (f Filters) Years(years []int) Filters {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = strconv.Itoa(y)
	}
	return f.With("publication_year", strings.Join(parts, "|"))
}

// CitedByCount filters by citation count. The value may be an exact count
// ("100") or a pre-formatted range (">50", "<100", "50-100").
func (f Filters) CitedByCount(value string) Filters {
	return f.With("cited_by_count", value)
}

// OpenAccess filters by open-access status.
func (f Filters) OpenAccess(oa bool) Filters {
	return f.With("is_oa", oa)
}

// WorkType filters by work type ("article", "book-chapter", ...).
func (f Filters) WorkType(t string) Filters {
	return f.With("type", t)
}

// InstitutionID filters works affiliated with the given institution.
func (f Filters) InstitutionID(id string) Filters {
	return f.With("institutions.id", id)
}

// AuthorID filters works authored by the given author.
func (f Filters) AuthorID(id string) Filters {
	return f.With("authorships.author.id", id)
}

// ConceptID filters works tagged with the given concept.
func (f Filters) ConceptID(id string) Filters {
	return f.With("concepts.id", id)
}

// FromPublicationDate filters works published on or after the given
// YYYY-MM-DD date. There is no matching "to" bound; trending windows are
// open-ended at the present.
func (f Filters) FromPublicationDate(date string) Filters {
	return f.With("from_publication_date", date)
}
