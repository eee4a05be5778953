package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhettlabs/research-dashboard-service/internal/advisor"
	"github.com/rhettlabs/research-dashboard-service/internal/fallback"
	"github.com/rhettlabs/research-dashboard-service/internal/llm"
	"github.com/rhettlabs/research-dashboard-service/internal/lootbox"
	"github.com/rhettlabs/research-dashboard-service/internal/openalex"
)

// stubBib is a scriptable Bibliographic implementation.
type stubBib struct {
	worksPage     *openalex.WorksPage
	worksErr      error
	worksParams   []openalex.Params
	authorsPage   *openalex.AuthorsPage
	authorsErr    error
	authorsParams []openalex.Params
	trendingPage  *openalex.WorksPage
	trendingErr   error
	trendingCalls int
}

func (s *stubBib) SearchWorks(ctx context.Context, params openalex.Params) (*openalex.WorksPage, error) {
	s.worksParams = append(s.worksParams, params)
	if s.worksErr != nil {
		return nil, s.worksErr
	}
	return s.worksPage, nil
}

func (s *stubBib) SearchAuthors(ctx context.Context, params openalex.Params) (*openalex.AuthorsPage, error) {
	s.authorsParams = append(s.authorsParams, params)
	if s.authorsErr != nil {
		return nil, s.authorsErr
	}
	return s.authorsPage, nil
}

func (s *stubBib) TrendingWorks(ctx context.Context, days, perPage int) (*openalex.WorksPage, error) {
	s.trendingCalls++
	if s.trendingErr != nil {
		return nil, s.trendingErr
	}
	return s.trendingPage, nil
}

// stubCompleter is a scriptable llm.Completer.
type stubCompleter struct {
	reply  string
	err    error
	gotReq llm.Request
	calls  int
}

func (s *stubCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.calls++
	s.gotReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubCompleter) Provider() string { return "stub" }
func (s *stubCompleter) Model() string    { return "stub-model" }

func newTestService(bib Bibliographic, completer llm.Completer) *Service {
	return New(bib, completer, Config{}, zerolog.Nop(), nil)
}

func conceptWork(names ...string) openalex.Work {
	w := openalex.Work{}
	for _, n := range names {
		w.Concepts = append(w.Concepts, openalex.Concept{DisplayName: n, Level: 2})
	}
	return w
}

func TestWordCloud(t *testing.T) {
	t.Run("live aggregation feeds the word cloud", func(t *testing.T) {
		bib := &stubBib{worksPage: &openalex.WorksPage{
			Results: []openalex.Work{
				conceptWork("Deep Learning", "Transformers"),
				conceptWork("Deep Learning"),
			},
		}}

		result := newTestService(bib, nil).WordCloud(context.Background())

		require.NotEmpty(t, result.Words)
		assert.Equal(t, "Deep Learning", result.Words[0].Text)
		assert.Equal(t, 2, result.Words[0].Value)
	})

	t.Run("uses the concept and window filters", func(t *testing.T) {
		bib := &stubBib{worksPage: &openalex.WorksPage{
			Results: []openalex.Work{conceptWork("Deep Learning")},
		}}

		_ = newTestService(bib, nil).WordCloud(context.Background())

		require.Len(t, bib.worksParams, 1)
		filter := bib.worksParams[0].Filters.Encode()
		assert.Contains(t, filter, "concepts.id:"+DefaultAIConceptID)
		assert.Contains(t, filter, "from_publication_date:")
		assert.Equal(t, DefaultTrendingSample, bib.worksParams[0].PerPage)
	})

	t.Run("upstream failure serves the static cloud", func(t *testing.T) {
		bib := &stubBib{worksErr: errors.New("connection refused")}

		result := newTestService(bib, nil).WordCloud(context.Background())
		assert.Equal(t, fallback.WordCloud(), result.Words)
	})

	t.Run("empty aggregation serves the static cloud", func(t *testing.T) {
		bib := &stubBib{worksPage: &openalex.WorksPage{}}

		result := newTestService(bib, nil).WordCloud(context.Background())
		assert.Equal(t, fallback.WordCloud(), result.Words)
	})
}

func TestTrending(t *testing.T) {
	t.Run("returns parallel arrays in ranked order", func(t *testing.T) {
		bib := &stubBib{worksPage: &openalex.WorksPage{
			Results: []openalex.Work{
				conceptWork("Deep Learning", "Transformers"),
				conceptWork("Deep Learning"),
			},
		}}

		result := newTestService(bib, nil).Trending(context.Background())

		require.Len(t, result.Topics, 2)
		require.Len(t, result.Counts, 2)
		assert.Equal(t, "Deep Learning", result.Topics[0])
		assert.Equal(t, 2, result.Counts[0])
	})

	t.Run("upstream failure serves the static ranking", func(t *testing.T) {
		bib := &stubBib{worksErr: errors.New("boom")}

		result := newTestService(bib, nil).Trending(context.Background())

		wantNames := make([]string, 0)
		wantCounts := make([]int, 0)
		for _, topic := range fallback.Trending() {
			wantNames = append(wantNames, topic.Name)
			wantCounts = append(wantCounts, topic.Count)
		}
		assert.Equal(t, wantNames, result.Topics)
		assert.Equal(t, wantCounts, result.Counts)
	})
}

func TestResearchers(t *testing.T) {
	liveAuthors := &openalex.AuthorsPage{Results: []openalex.Author{
		{DisplayName: "Alice Zhang", CitedByCount: 100},
	}}

	t.Run("builds filters from the query parameters", func(t *testing.T) {
		bib := &stubBib{authorsPage: liveAuthors}

		_ = newTestService(bib, nil).Researchers(context.Background(), "nlp", "MIT", "us")

		require.Len(t, bib.authorsParams, 1)
		filter := bib.authorsParams[0].Filters.Encode()
		assert.Contains(t, filter, "concepts.id:"+DefaultAIConceptID)
		assert.Contains(t, filter, "last_known_institution.display_name.search:MIT")
		assert.Contains(t, filter, "last_known_institution.country_code:US")
		assert.Equal(t, "cited_by_count:desc", bib.authorsParams[0].Sort)
	})

	t.Run("no filters default to the anchor concept", func(t *testing.T) {
		bib := &stubBib{authorsPage: liveAuthors}

		_ = newTestService(bib, nil).Researchers(context.Background(), "", "", "")

		require.Len(t, bib.authorsParams, 1)
		assert.Equal(t, "concepts.id:"+DefaultAIConceptID, bib.authorsParams[0].Filters.Encode())
	})

	t.Run("live results map to directory entries", func(t *testing.T) {
		bib := &stubBib{authorsPage: liveAuthors}

		result := newTestService(bib, nil).Researchers(context.Background(), "", "", "")

		require.Len(t, result.Researchers, 1)
		assert.Equal(t, "Alice Zhang", result.Researchers[0].Name)
	})

	t.Run("upstream failure serves filtered fallback", func(t *testing.T) {
		bib := &stubBib{authorsErr: errors.New("boom")}

		result := newTestService(bib, nil).Researchers(context.Background(), "", "", "JP")

		require.NotEmpty(t, result.Researchers)
		for _, r := range result.Researchers {
			assert.Equal(t, "JP", r.Country)
		}
	})

	t.Run("empty live page serves fallback", func(t *testing.T) {
		bib := &stubBib{authorsPage: &openalex.AuthorsPage{}}

		result := newTestService(bib, nil).Researchers(context.Background(), "", "", "")
		assert.Equal(t, fallback.FilterResearchers(fallback.Researchers(), "", "", ""), result.Researchers)
	})
}

func TestChat(t *testing.T) {
	liveWorks := &openalex.WorksPage{Results: []openalex.Work{
		{
			ID:              "https://openalex.org/W1",
			Title:           "Scaling Laws",
			PublicationYear: 2024,
			CitedByCount:    321,
			Authorships: []openalex.Authorship{
				{Author: &openalex.AuthorRef{ID: "A1", DisplayName: "Alice Zhang"}},
			},
		},
	}}

	t.Run("live suggestions and generated summary", func(t *testing.T) {
		bib := &stubBib{worksPage: liveWorks}
		completer := &stubCompleter{reply: "Woof! Great topic."}

		result := newTestService(bib, completer).Chat(context.Background(), "scaling laws", "CS student")

		assert.Equal(t, "Woof! Great topic.", result.Summary)
		require.Len(t, result.SuggestedPapers, 1)
		assert.Equal(t, "Scaling Laws", result.SuggestedPapers[0].Title)
		require.Len(t, result.SuggestedResearchers, 1)
		assert.Equal(t, "Alice Zhang", result.SuggestedResearchers[0].Name)
		assert.True(t, completer.gotReq.WebSearch)
	})

	t.Run("completion failure keeps live suggestions", func(t *testing.T) {
		bib := &stubBib{worksPage: liveWorks}
		completer := &stubCompleter{err: errors.New("llm down")}

		result := newTestService(bib, completer).Chat(context.Background(), "scaling laws", "")

		assert.Equal(t, fallback.ChatPlaceholder, result.Summary)
		assert.Len(t, result.SuggestedPapers, 1)
		assert.Len(t, result.SuggestedResearchers, 1)
	})

	t.Run("bibliographic failure serves whole fallback", func(t *testing.T) {
		bib := &stubBib{worksErr: errors.New("boom")}
		completer := &stubCompleter{reply: "unused"}

		result := newTestService(bib, completer).Chat(context.Background(), "robotics", "")

		assert.Equal(t, fallback.ChatSummary("robotics"), result.Summary)
		assert.Equal(t, fallback.ChatResearchers(), result.SuggestedResearchers)
		assert.Empty(t, result.SuggestedPapers)
		assert.Zero(t, completer.calls)
	})

	t.Run("empty search backfills from trending works", func(t *testing.T) {
		bib := &stubBib{
			worksPage:    &openalex.WorksPage{},
			trendingPage: liveWorks,
		}
		completer := &stubCompleter{reply: "summary"}

		result := newTestService(bib, completer).Chat(context.Background(), "obscure topic", "")

		assert.Equal(t, 1, bib.trendingCalls)
		assert.Len(t, result.SuggestedPapers, 1)
	})

	t.Run("nil completer substitutes only the summary", func(t *testing.T) {
		bib := &stubBib{worksPage: liveWorks}

		result := newTestService(bib, nil).Chat(context.Background(), "scaling laws", "")

		assert.Equal(t, fallback.ChatPlaceholder, result.Summary)
		assert.Len(t, result.SuggestedPapers, 1)
	})
}

func TestAdvise(t *testing.T) {
	t.Run("mid-conversation reply is not final", func(t *testing.T) {
		completer := &stubCompleter{reply: "Question 1: theory (1) or systems (2)?"}

		result := newTestService(&stubBib{}, completer).Advise(context.Background(), "INTJ", "CS", nil, "")

		assert.False(t, result.IsFinal)
		assert.Empty(t, result.RecommendedTopics)
		require.Len(t, result.ConversationHistory, 3)
		assert.Equal(t, llm.RoleAssistant, result.ConversationHistory[2].Role)
		assert.Equal(t, result.Reply, result.ConversationHistory[2].Content)
	})

	t.Run("final reply carries recommended topics", func(t *testing.T) {
		completer := &stubCompleter{
			reply: "\U0001F3AF Final Recommendation: your direction.\n1. Federated Learning\n2. Differential Privacy\n3. Secure Aggregation",
		}

		result := newTestService(&stubBib{}, completer).Advise(context.Background(), "INTJ", "CS", nil, "")

		assert.True(t, result.IsFinal)
		assert.Equal(t, []string{"Federated Learning", "Differential Privacy", "Secure Aggregation"}, result.RecommendedTopics)
	})

	t.Run("completion failure serves the persona fallback", func(t *testing.T) {
		completer := &stubCompleter{err: errors.New("llm down")}

		result := newTestService(&stubBib{}, completer).Advise(context.Background(), "INTJ", "CS", nil, "")

		assert.Equal(t, fallback.AdvisorReply, result.Reply)
		assert.False(t, result.IsFinal)
		assert.NotNil(t, result.RecommendedTopics)
		assert.Empty(t, result.RecommendedTopics)
	})

	t.Run("history and choice are forwarded", func(t *testing.T) {
		completer := &stubCompleter{reply: "Question 2: ..."}
		history := []llm.Message{
			{Role: llm.RoleSystem, Content: "sys"},
			{Role: llm.RoleAssistant, Content: "Question 1: ..."},
		}

		_ = newTestService(&stubBib{}, completer).Advise(context.Background(), "INTJ", "CS", history, "1")

		require.Len(t, completer.gotReq.Messages, 3)
		assert.Equal(t, "I choose option 1.", completer.gotReq.Messages[2].Content)
	})
}

func TestLootbox(t *testing.T) {
	manyWorks := func() *openalex.WorksPage {
		page := &openalex.WorksPage{}
		for i := 0; i < lootbox.OversampleSize; i++ {
			page.Results = append(page.Results, openalex.Work{
				ID:           "https://openalex.org/W" + string(rune('A'+i)),
				Title:        string(rune('A' + i)),
				CitedByCount: i * 400,
			})
		}
		return page
	}

	t.Run("pulls five classified capsules from the oversample", func(t *testing.T) {
		bib := &stubBib{worksPage: manyWorks()}

		result := newTestService(bib, nil).Lootbox(context.Background())

		require.Len(t, result.Capsules, lootbox.PullCount)
		for _, c := range result.Capsules {
			assert.NotEmpty(t, c.Rarity)
			assert.NotEmpty(t, c.RarityLabel)
		}

		require.Len(t, bib.worksParams, 1)
		assert.Equal(t, lootbox.OversampleSize, bib.worksParams[0].PerPage)
		assert.Equal(t, DefaultLootboxQuery, bib.worksParams[0].Query)
		assert.Contains(t, bib.worksParams[0].Filters.Encode(), "publication_year:")
	})

	t.Run("empty candidate set serves fallback capsules", func(t *testing.T) {
		bib := &stubBib{worksPage: &openalex.WorksPage{}}

		result := newTestService(bib, nil).Lootbox(context.Background())
		assert.Len(t, result.Capsules, lootbox.PullCount)
	})

	t.Run("upstream failure serves fallback capsules", func(t *testing.T) {
		bib := &stubBib{worksErr: errors.New("boom")}

		result := newTestService(bib, nil).Lootbox(context.Background())
		assert.Len(t, result.Capsules, lootbox.PullCount)
	})
}

func TestLifePath(t *testing.T) {
	profile := advisor.LifePathProfile{
		School: "BU", Major: "CS", Degree: "BS", PathPreference: "academia",
	}

	t.Run("returns the generated story", func(t *testing.T) {
		completer := &stubCompleter{reply: "Your journey begins..."}

		result := newTestService(&stubBib{}, completer).LifePath(context.Background(), profile)

		assert.Equal(t, "Your journey begins...", result.Story)
		assert.Equal(t, 900, completer.gotReq.MaxTokens)
	})

	t.Run("completion failure serves the fallback story", func(t *testing.T) {
		completer := &stubCompleter{err: errors.New("llm down")}

		result := newTestService(&stubBib{}, completer).LifePath(context.Background(), profile)
		assert.Equal(t, fallback.LifePathStory, result.Story)
	})

	t.Run("nil completer serves the fallback story", func(t *testing.T) {
		result := newTestService(&stubBib{}, nil).LifePath(context.Background(), profile)
		assert.Equal(t, fallback.LifePathStory, result.Story)
	})
}
