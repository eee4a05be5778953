package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/rhettlabs/research-dashboard-service/internal/domain"
)

const (
	// DefaultBaseURL is the default OpenAlex API base URL.
	DefaultBaseURL = "https://api.openalex.org"

	// DefaultMinInterval is the default minimum wall-clock interval between
	// consecutive outbound requests.
	DefaultMinInterval = 100 * time.Millisecond

	// DefaultTimeout is the default per-call request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultPerPage is the default page size for search requests.
	DefaultPerPage = 25

	// MaxPerPage is the upstream's accepted page size maximum.
	MaxPerPage = 200
)

// Config holds configuration for the OpenAlex client.
type Config struct {
	// BaseURL is the OpenAlex API base URL.
	// Defaults to https://api.openalex.org
	BaseURL string

	// Email is the contact email for the polite pool. When set it is
	// attached to every outbound request as the mailto query parameter.
	// See: https://docs.openalex.org/how-to-use-the-api/rate-limits-and-authentication
	Email string

	// Timeout is the per-call request timeout. Defaults to 10 seconds.
	Timeout time.Duration

	// MinInterval is the minimum interval between consecutive outbound
	// requests. Defaults to 100ms.
	MinInterval time.Duration

	// PerPage is the default page size when a request does not set one.
	PerPage int
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MinInterval == 0 {
		c.MinInterval = DefaultMinInterval
	}
	if c.PerPage == 0 {
		c.PerPage = DefaultPerPage
	}
}

// Params holds the query parameters for an entity search.
type Params struct {
	// Query is the free-text search query. Empty means filter-only search.
	Query string

	// Filters is the ordered list of filter entries.
	Filters Filters

	// Sort is the sort specification (e.g. "cited_by_count:desc").
	Sort string

	// PerPage is the page size, clamped to the upstream's accepted range.
	PerPage int

	// Page is the 1-indexed page number. Values below 1 mean page 1.
	Page int
}

// Client issues rate-limited requests against the OpenAlex API.
//
// The rate limit is a leaky bucket of one: a request issued sooner than
// MinInterval after the previous one suspends the calling goroutine until
// the interval has elapsed. There is no burst allowance and no retry; any
// non-success status or transport failure is returned to the caller, whose
// policy in this service is to fall back to static data.
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a new OpenAlex client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
	}
}

// SearchWorks queries the /works endpoint.
func (c *Client) SearchWorks(ctx context.Context, params Params) (*WorksPage, error) {
	var page WorksPage
	if err := c.get(ctx, "/works", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchAuthors queries the /authors endpoint.
func (c *Client) SearchAuthors(ctx context.Context, params Params) (*AuthorsPage, error) {
	var page AuthorsPage
	if err := c.get(ctx, "/authors", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchInstitutions queries the /institutions endpoint.
func (c *Client) SearchInstitutions(ctx context.Context, params Params) (*InstitutionsPage, error) {
	var page InstitutionsPage
	if err := c.get(ctx, "/institutions", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchConcepts queries the /concepts endpoint.
func (c *Client) SearchConcepts(ctx context.Context, params Params) (*ConceptsPage, error) {
	var page ConceptsPage
	if err := c.get(ctx, "/concepts", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchSources queries the /sources endpoint.
func (c *Client) SearchSources(ctx context.Context, params Params) (*SourcesPage, error) {
	var page SourcesPage
	if err := c.get(ctx, "/sources", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// WorksByInstitution returns works affiliated with the given institution.
// params.Filters is extended with the institution filter; an explicitly
// supplied institutions.id entry is overwritten.
func (c *Client) WorksByInstitution(ctx context.Context, institutionID string, params Params) (*WorksPage, error) {
	params.Filters = params.Filters.InstitutionID(institutionID)
	return c.SearchWorks(ctx, params)
}

// TrendingWorks returns works published in the trailing window of the given
// day count, sorted by citation count descending. The window is open-ended
// at the present.
func (c *Client) TrendingWorks(ctx context.Context, days, perPage int) (*WorksPage, error) {
	from := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	return c.SearchWorks(ctx, Params{
		Filters: Filters{}.FromPublicationDate(from),
		Sort:    "cited_by_count:desc",
		PerPage: perPage,
	})
}

// get builds the request URL, waits for the rate limiter, executes the
// request, and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, params Params, out interface{}) error {
	reqURL, err := c.buildURL(path, params)
	if err != nil {
		return fmt.Errorf("building request URL: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return domain.NewExternalAPIError("OpenAlex", resp.StatusCode, string(body), nil)
	}

	// Limit body to 10MB to prevent resource exhaustion.
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// buildURL constructs the entity URL with query parameters.
func (c *Client) buildURL(path string, params Params) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	baseURL.Path = path

	query := url.Values{}

	if params.Query != "" {
		query.Set("search", params.Query)
	}

	if filter := params.Filters.Encode(); filter != "" {
		query.Set("filter", filter)
	}

	perPage := params.PerPage
	if perPage == 0 {
		perPage = c.config.PerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if perPage < 1 {
		perPage = 1
	}
	query.Set("per_page", strconv.Itoa(perPage))

	page := params.Page
	if page < 1 {
		page = 1
	}
	query.Set("page", strconv.Itoa(page))

	if params.Sort != "" {
		query.Set("sort", params.Sort)
	}

	// Polite pool identification.
	if c.config.Email != "" {
		query.Set("mailto", c.config.Email)
	}

	baseURL.RawQuery = query.Encode()
	return baseURL.String(), nil
}

func (c *Client) userAgent() string {
	if c.config.Email != "" {
		return "ResearchDashboard/1.0 (mailto:" + c.config.Email + ")"
	}
	return "ResearchDashboard/1.0"
}

// ReconstructAbstract rebuilds abstract text from OpenAlex's inverted index
// format, which maps words to their positions in the text.
func ReconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	const maxAbstractWords = 100_000
	totalPairs := 0
	for _, positions := range invertedIndex {
		totalPairs += len(positions)
	}
	// Guard against malicious payloads with excessive position entries.
	if totalPairs > maxAbstractWords {
		return ""
	}
	pairs := make([]posWord, 0, totalPairs)

	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	var builder strings.Builder
	builder.Grow(totalPairs * 7)
	for i, pair := range pairs {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(pair.word)
	}

	return builder.String()
}
