// Package dashboard orchestrates the live-data views behind the API: each
// endpoint attempts its upstream sources and substitutes curated fallback
// data when an attempt fails, so every request is answered.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rhettlabs/research-dashboard-service/internal/advisor"
	"github.com/rhettlabs/research-dashboard-service/internal/domain"
	"github.com/rhettlabs/research-dashboard-service/internal/fallback"
	"github.com/rhettlabs/research-dashboard-service/internal/llm"
	"github.com/rhettlabs/research-dashboard-service/internal/lootbox"
	"github.com/rhettlabs/research-dashboard-service/internal/observability"
	"github.com/rhettlabs/research-dashboard-service/internal/openalex"
	"github.com/rhettlabs/research-dashboard-service/internal/researchers"
	"github.com/rhettlabs/research-dashboard-service/internal/trends"
)

// Default orchestration parameters.
const (
	// DefaultTrendingWindowDays bounds the publication window for
	// trending-topic aggregation.
	DefaultTrendingWindowDays = 30

	// DefaultTrendingSample is how many recent works feed one aggregation.
	DefaultTrendingSample = 200

	// DefaultAIConceptID is the OpenAlex concept for artificial intelligence,
	// the anchor of every default bibliographic query.
	DefaultAIConceptID = "C154945302"

	// DefaultResearcherLimit bounds a researcher directory page.
	DefaultResearcherLimit = 50

	// DefaultChatSuggestions is how many papers and researchers a chat reply
	// suggests.
	DefaultChatSuggestions = 3

	// DefaultLootboxQuery seeds the capsule candidate search.
	DefaultLootboxQuery = "artificial intelligence OR machine learning OR deep learning"

	// DefaultLootboxYears bounds the capsule candidate publication window.
	DefaultLootboxYears = 5

	// chatBackfillDays is the trending window used to backfill suggestions
	// when the interest query itself matches nothing.
	chatBackfillDays = 7
)

// Bibliographic is the slice of the OpenAlex client the service depends on.
type Bibliographic interface {
	SearchWorks(ctx context.Context, params openalex.Params) (*openalex.WorksPage, error)
	SearchAuthors(ctx context.Context, params openalex.Params) (*openalex.AuthorsPage, error)
	TrendingWorks(ctx context.Context, days, perPage int) (*openalex.WorksPage, error)
}

// Config tunes the orchestration knobs. Zero values take the defaults above.
type Config struct {
	TrendingWindowDays int
	TrendingSample     int
	MinConceptLevel    int
	TopN               int
	AIConceptID        string
	ResearcherLimit    int
	ChatSuggestions    int
	LootboxQuery       string
	LootboxYears       int
}

func (c *Config) applyDefaults() {
	if c.TrendingWindowDays <= 0 {
		c.TrendingWindowDays = DefaultTrendingWindowDays
	}
	if c.TrendingSample <= 0 {
		c.TrendingSample = DefaultTrendingSample
	}
	if c.MinConceptLevel <= 0 {
		c.MinConceptLevel = trends.DefaultMinLevel
	}
	if c.TopN <= 0 {
		c.TopN = trends.DefaultTopN
	}
	if c.AIConceptID == "" {
		c.AIConceptID = DefaultAIConceptID
	}
	if c.ResearcherLimit <= 0 {
		c.ResearcherLimit = DefaultResearcherLimit
	}
	if c.ChatSuggestions <= 0 {
		c.ChatSuggestions = DefaultChatSuggestions
	}
	if c.LootboxQuery == "" {
		c.LootboxQuery = DefaultLootboxQuery
	}
	if c.LootboxYears <= 0 {
		c.LootboxYears = DefaultLootboxYears
	}
}

// Service answers dashboard requests from live sources with static fallback.
type Service struct {
	bib     Bibliographic
	llm     llm.Completer
	logger  zerolog.Logger
	metrics *observability.Metrics
	cfg     Config

	// now and newRNG are swappable for tests.
	now    func() time.Time
	newRNG func() *rand.Rand
}

// New creates a dashboard service. The completer may be nil when no
// completion provider is configured; narrative endpoints then always serve
// fallback text.
func New(bib Bibliographic, completer llm.Completer, cfg Config, logger zerolog.Logger, metrics *observability.Metrics) *Service {
	cfg.applyDefaults()
	return &Service{
		bib:     bib,
		llm:     completer,
		logger:  logger,
		metrics: metrics,
		cfg:     cfg,
		now:     time.Now,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// WordCloudResult is the payload of the word-cloud view.
type WordCloudResult struct {
	Words []domain.WordCount `json:"words"`
}

// TrendingResult is the payload of the trending-topics view: parallel arrays
// ordered by descending count.
type TrendingResult struct {
	Topics []string `json:"topics"`
	Counts []int    `json:"counts"`
}

// ResearchersResult is the payload of the researcher directory view.
type ResearchersResult struct {
	Researchers []domain.Researcher `json:"researchers"`
}

// ChatResult is the payload of the chat view.
type ChatResult struct {
	Summary              string                     `json:"summary"`
	SuggestedResearchers []domain.ResearcherSummary `json:"suggested_researchers"`
	SuggestedPapers      []domain.PaperSummary      `json:"suggested_papers"`
}

// AdvisorResult is the payload of one advisor conversation round.
type AdvisorResult struct {
	Reply               string        `json:"reply"`
	ConversationHistory []llm.Message `json:"conversation_history"`
	IsFinal             bool          `json:"is_final"`
	RecommendedTopics   []string      `json:"recommended_topics"`
}

// LootboxResult is the payload of a capsule pull.
type LootboxResult struct {
	Capsules []domain.Capsule `json:"capsules"`
}

// LifePathResult is the payload of the life-path story view.
type LifePathResult struct {
	Story string `json:"story"`
}

// WordCloud aggregates recent publication concepts into word-cloud entries.
func (s *Service) WordCloud(ctx context.Context) WordCloudResult {
	topics, err := s.fetchTrendingTopics(ctx)
	if err != nil {
		s.fellBack("wordcloud", err)
		return WordCloudResult{Words: fallback.WordCloud()}
	}
	return WordCloudResult{Words: trends.WordCloud(topics)}
}

// Trending aggregates recent publication concepts into ranked parallel
// topic and count arrays.
func (s *Service) Trending(ctx context.Context) TrendingResult {
	topics, err := s.fetchTrendingTopics(ctx)
	if err != nil {
		s.fellBack("trending", err)
		topics = fallback.Trending()
	}
	names, counts := trends.Split(topics)
	return TrendingResult{Topics: names, Counts: counts}
}

// fetchTrendingTopics runs one concept aggregation over the recent
// publication window. An empty aggregation counts as a failure so callers
// never render an empty dashboard.
func (s *Service) fetchTrendingTopics(ctx context.Context) ([]domain.RankedTopic, error) {
	from := s.now().AddDate(0, 0, -s.cfg.TrendingWindowDays).Format("2006-01-02")
	start := time.Now()
	page, err := s.bib.SearchWorks(ctx, openalex.Params{
		Filters: openalex.Filters{}.
			ConceptID(s.cfg.AIConceptID).
			FromPublicationDate(from),
		PerPage: s.cfg.TrendingSample,
	})
	s.observeUpstream("works", start, err)
	if err != nil {
		return nil, err
	}
	topics := trends.Aggregate(page.Results, s.cfg.MinConceptLevel, s.cfg.TopN)
	if len(topics) == 0 {
		return nil, fmt.Errorf("trending aggregation: %w", domain.ErrNoResults)
	}
	return topics, nil
}

// Researchers serves the researcher directory, filtered by topic,
// institution, and country. Every filter is optional.
func (s *Service) Researchers(ctx context.Context, topic, institution, country string) ResearchersResult {
	list, err := s.fetchResearchers(ctx, topic, institution, country)
	if err != nil {
		s.fellBack("researchers", err)
		list = fallback.FilterResearchers(fallback.Researchers(), topic, institution, country)
	}
	return ResearchersResult{Researchers: list}
}

func (s *Service) fetchResearchers(ctx context.Context, topic, institution, country string) ([]domain.Researcher, error) {
	var filters openalex.Filters
	if topic != "" {
		filters = filters.ConceptID(s.cfg.AIConceptID)
	}
	if institution != "" {
		filters = filters.With("last_known_institution.display_name.search", institution)
	}
	if country != "" {
		filters = filters.With("last_known_institution.country_code", strings.ToUpper(country))
	}
	if len(filters) == 0 {
		filters = filters.ConceptID(s.cfg.AIConceptID)
	}

	start := time.Now()
	page, err := s.bib.SearchAuthors(ctx, openalex.Params{
		Filters: filters,
		Sort:    "cited_by_count:desc",
		PerPage: s.cfg.ResearcherLimit,
	})
	s.observeUpstream("authors", start, err)
	if err != nil {
		return nil, err
	}
	list := researchers.FromAuthors(page.Results)
	if len(list) == 0 {
		return nil, fmt.Errorf("researcher search: %w", domain.ErrNoResults)
	}
	return list, nil
}

// Chat answers an interest query with a generated summary plus suggested
// researchers and papers. A failed bibliographic lookup falls back whole;
// a failed completion keeps the live suggestions and substitutes only the
// summary text.
func (s *Service) Chat(ctx context.Context, query, userBackground string) ChatResult {
	papers, suggested, err := s.fetchChatSuggestions(ctx, query)
	if err != nil {
		s.fellBack("chat", err)
		return ChatResult{
			Summary:              fallback.ChatSummary(query),
			SuggestedResearchers: fallback.ChatResearchers(),
			SuggestedPapers:      []domain.PaperSummary{},
		}
	}

	summary, err := s.complete(ctx, "chat", llm.Request{
		Messages:  advisor.ChatMessages(query, userBackground, suggested, papers),
		WebSearch: true,
	})
	if err != nil {
		s.fellBack("chat", err)
		summary = fallback.ChatPlaceholder
	}
	return ChatResult{
		Summary:              summary,
		SuggestedResearchers: suggested,
		SuggestedPapers:      papers,
	}
}

func (s *Service) fetchChatSuggestions(ctx context.Context, query string) ([]domain.PaperSummary, []domain.ResearcherSummary, error) {
	year := s.now().Year()
	start := time.Now()
	page, err := s.bib.SearchWorks(ctx, openalex.Params{
		Query:   query,
		Filters: openalex.Filters{}.YearRange(year-1, year),
		Sort:    "cited_by_count:desc",
		PerPage: s.cfg.ChatSuggestions,
	})
	s.observeUpstream("works", start, err)
	if err != nil {
		return nil, nil, err
	}

	// An interest nobody published on last year still deserves suggestions,
	// so backfill from this week's trending works.
	if len(page.Results) == 0 {
		start = time.Now()
		trendingPage, err := s.bib.TrendingWorks(ctx, chatBackfillDays, s.cfg.ChatSuggestions)
		s.observeUpstream("works", start, err)
		if err != nil {
			return nil, nil, err
		}
		page = trendingPage
	}

	papers := make([]domain.PaperSummary, 0, len(page.Results))
	for _, work := range page.Results {
		title := work.Title
		if title == "" {
			title = work.DisplayName
		}
		link := work.DOI
		if link == "" {
			link = work.ID
		}
		papers = append(papers, domain.PaperSummary{
			Title:     title,
			Year:      work.PublicationYear,
			Citations: work.CitedByCount,
			Link:      link,
		})
	}
	suggested := researchers.ExtractFromWorks(page.Results, s.cfg.ChatSuggestions)
	return papers, suggested, nil
}

// Advise runs one round of the binary-choice research advisor conversation.
func (s *Service) Advise(ctx context.Context, rstiType, major string, history []llm.Message, choice string) AdvisorResult {
	messages := advisor.RSTIMessages(rstiType, major, history, choice)
	reply, err := s.complete(ctx, "advisor", llm.Request{Messages: messages})
	if err != nil {
		s.fellBack("advisor", err)
		return AdvisorResult{
			Reply:               fallback.AdvisorReply,
			ConversationHistory: messages,
			RecommendedTopics:   []string{},
		}
	}

	result := AdvisorResult{
		Reply:               reply,
		ConversationHistory: append(messages, llm.Message{Role: llm.RoleAssistant, Content: reply}),
		IsFinal:             advisor.IsFinal(reply),
		RecommendedTopics:   []string{},
	}
	if result.IsFinal {
		result.RecommendedTopics = advisor.RecommendedTopics(reply)
	}
	return result
}

// Lootbox pulls a fresh random hand of paper capsules from an oversampled
// set of highly cited recent works.
func (s *Service) Lootbox(ctx context.Context) LootboxResult {
	capsules, err := s.pullCapsules(ctx)
	if err != nil {
		s.fellBack("lootbox", err)
		capsules = fallback.Capsules(lootbox.PullCount, s.newRNG())
	}
	return LootboxResult{Capsules: capsules}
}

func (s *Service) pullCapsules(ctx context.Context) ([]domain.Capsule, error) {
	year := s.now().Year()
	start := time.Now()
	page, err := s.bib.SearchWorks(ctx, openalex.Params{
		Query:   s.cfg.LootboxQuery,
		Filters: openalex.Filters{}.YearRange(year-s.cfg.LootboxYears, year),
		Sort:    "cited_by_count:desc",
		PerPage: lootbox.OversampleSize,
	})
	s.observeUpstream("works", start, err)
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, fmt.Errorf("capsule candidate search: %w", domain.ErrNoResults)
	}
	return lootbox.Build(page.Results, lootbox.PullCount, s.newRNG()), nil
}

// LifePath generates an academic life-path story from a student profile.
func (s *Service) LifePath(ctx context.Context, profile advisor.LifePathProfile) LifePathResult {
	story, err := s.complete(ctx, "lifepath", llm.Request{
		Messages:  advisor.LifePathMessages(profile),
		MaxTokens: 900,
	})
	if err != nil {
		s.fellBack("lifepath", err)
		return LifePathResult{Story: fallback.LifePathStory}
	}
	return LifePathResult{Story: story}
}

// complete sends one completion request, recording request metrics. It fails
// fast when no provider is configured.
func (s *Service) complete(ctx context.Context, operation string, req llm.Request) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("completion %s: %w", operation, domain.ErrServiceUnavailable)
	}

	start := s.now()
	reply, err := s.llm.Complete(ctx, req)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordLLMRequestFailed(operation, s.llm.Model(), errorType(err))
		}
		return "", err
	}
	if s.metrics != nil {
		s.metrics.RecordLLMRequest(operation, s.llm.Model(), time.Since(start).Seconds())
	}
	return reply, nil
}

// observeUpstream records one bibliographic request outcome.
func (s *Service) observeUpstream(endpoint string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	if err != nil {
		s.metrics.RecordUpstreamRequestFailed("openalex", endpoint, upstreamErrorType(err))
		return
	}
	s.metrics.RecordUpstreamRequest("openalex", endpoint, time.Since(start).Seconds())
}

// fellBack logs and counts one fallback substitution.
func (s *Service) fellBack(endpoint string, err error) {
	s.logger.Warn().
		Err(err).
		Str("endpoint", endpoint).
		Msg("live data attempt failed, serving fallback")
	if s.metrics != nil {
		s.metrics.RecordFallbackServed(endpoint)
	}
}

func errorType(err error) string {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsTransient() {
			return "transient"
		}
		return "permanent"
	}
	return "unknown"
}

func upstreamErrorType(err error) string {
	var apiErr *domain.ExternalAPIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("http_%d", apiErr.StatusCode)
	}
	return "transport"
}
