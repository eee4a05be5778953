package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhettlabs/research-dashboard-service/internal/dashboard"
	"github.com/rhettlabs/research-dashboard-service/internal/fallback"
	"github.com/rhettlabs/research-dashboard-service/internal/lootbox"
	"github.com/rhettlabs/research-dashboard-service/internal/openalex"
)

// stubBib is a scriptable bibliographic backend for route tests.
type stubBib struct {
	works   *openalex.WorksPage
	authors *openalex.AuthorsPage
	err     error
}

func (s *stubBib) SearchWorks(ctx context.Context, params openalex.Params) (*openalex.WorksPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.works == nil {
		return &openalex.WorksPage{}, nil
	}
	return s.works, nil
}

func (s *stubBib) SearchAuthors(ctx context.Context, params openalex.Params) (*openalex.AuthorsPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.authors == nil {
		return &openalex.AuthorsPage{}, nil
	}
	return s.authors, nil
}

func (s *stubBib) TrendingWorks(ctx context.Context, days, perPage int) (*openalex.WorksPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.works == nil {
		return &openalex.WorksPage{}, nil
	}
	return s.works, nil
}

// newTestServer wires a server around the stub backend with no completion
// provider, so narrative text always comes from the fallback set.
func newTestServer(bib dashboard.Bibliographic) *Server {
	svc := dashboard.New(bib, nil, dashboard.Config{}, zerolog.Nop(), nil)
	return NewServer(Config{CORSAllowedOrigins: []string{"*"}}, svc, zerolog.Nop(), nil)
}

func doRequest(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doRequest(newTestServer(&stubBib{}), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestGetWordCloud(t *testing.T) {
	t.Run("live concepts render the cloud", func(t *testing.T) {
		bib := &stubBib{works: &openalex.WorksPage{Results: []openalex.Work{
			{Concepts: []openalex.Concept{{DisplayName: "Deep Learning", Level: 2}}},
		}}}

		rec := doRequest(newTestServer(bib), http.MethodGet, "/api/wordcloud", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body dashboard.WordCloudResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Words, 1)
		assert.Equal(t, "Deep Learning", body.Words[0].Text)
	})

	t.Run("upstream failure still answers 200 with fallback", func(t *testing.T) {
		bib := &stubBib{err: errors.New("boom")}

		rec := doRequest(newTestServer(bib), http.MethodGet, "/api/wordcloud", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body dashboard.WordCloudResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Words, len(fallback.WordCloud()))
	})
}

func TestGetTrending(t *testing.T) {
	bib := &stubBib{err: errors.New("boom")}

	rec := doRequest(newTestServer(bib), http.MethodGet, "/api/trending", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dashboard.TrendingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Topics)
	assert.Len(t, body.Counts, len(body.Topics))
}

func TestGetResearchers(t *testing.T) {
	t.Run("query filters narrow the fallback directory", func(t *testing.T) {
		bib := &stubBib{err: errors.New("boom")}

		rec := doRequest(newTestServer(bib), http.MethodGet, "/api/researchers?country=JP", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body dashboard.ResearchersResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotEmpty(t, body.Researchers)
		for _, r := range body.Researchers {
			assert.Equal(t, "JP", r.Country)
		}
	})

	t.Run("live authors come back as directory entries", func(t *testing.T) {
		bib := &stubBib{authors: &openalex.AuthorsPage{Results: []openalex.Author{
			{DisplayName: "Alice Zhang"},
		}}}

		rec := doRequest(newTestServer(bib), http.MethodGet, "/api/researchers", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body dashboard.ResearchersResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Researchers, 1)
		assert.Equal(t, "Alice Zhang", body.Researchers[0].Name)
	})
}

func TestPostChat(t *testing.T) {
	t.Run("answers with fallback summary and suggestions", func(t *testing.T) {
		bib := &stubBib{err: errors.New("boom")}

		rec := doRequest(newTestServer(bib), http.MethodPost, "/api/chat",
			`{"query": "graph neural networks", "user_background": "CS undergrad"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body dashboard.ChatResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Summary, "graph neural networks")
		assert.NotEmpty(t, body.SuggestedResearchers)
		assert.NotNil(t, body.SuggestedPapers)
	})

	t.Run("missing query is rejected", func(t *testing.T) {
		rec := doRequest(newTestServer(&stubBib{}), http.MethodPost, "/api/chat",
			`{"user_background": "CS undergrad"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		rec := doRequest(newTestServer(&stubBib{}), http.MethodPost, "/api/chat", `{"query": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPostRSTIAdvisor(t *testing.T) {
	t.Run("answers with the persona fallback when no provider is configured", func(t *testing.T) {
		rec := doRequest(newTestServer(&stubBib{}), http.MethodPost, "/api/rsti-advisor",
			`{"rsti_type": "INTJ", "major": "Computer Science"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body dashboard.AdvisorResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, fallback.AdvisorReply, body.Reply)
		assert.False(t, body.IsFinal)
		assert.Len(t, body.ConversationHistory, 2)
	})

	t.Run("carries conversation history and choice", func(t *testing.T) {
		rec := doRequest(newTestServer(&stubBib{}), http.MethodPost, "/api/rsti-advisor",
			`{"rsti_type": "INTJ", "conversation_history": [
				{"role": "system", "content": "sys"},
				{"role": "assistant", "content": "Question 1: ..."}
			], "choice": "2"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body dashboard.AdvisorResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.ConversationHistory, 3)
		assert.Equal(t, "I choose option 2.", body.ConversationHistory[2].Content)
	})

	t.Run("missing rsti_type is rejected", func(t *testing.T) {
		rec := doRequest(newTestServer(&stubBib{}), http.MethodPost, "/api/rsti-advisor",
			`{"major": "CS"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid history role is rejected", func(t *testing.T) {
		rec := doRequest(newTestServer(&stubBib{}), http.MethodPost, "/api/rsti-advisor",
			`{"rsti_type": "INTJ", "conversation_history": [{"role": "robot", "content": "hi"}]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetLootbox(t *testing.T) {
	bib := &stubBib{err: errors.New("boom")}

	rec := doRequest(newTestServer(bib), http.MethodGet, "/api/lootbox", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dashboard.LootboxResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Capsules, lootbox.PullCount)
	for _, c := range body.Capsules {
		assert.NotEmpty(t, c.Rarity)
	}
}

func TestPostLifePath(t *testing.T) {
	t.Run("answers with the fallback story when no provider is configured", func(t *testing.T) {
		rec := doRequest(newTestServer(&stubBib{}), http.MethodPost, "/api/lifepath",
			`{"school": "Boston University", "major": "CS", "degree": "BS", "pathPreference": "academia"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body dashboard.LifePathResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, fallback.LifePathStory, body.Story)
	})

	t.Run("missing required profile fields are rejected", func(t *testing.T) {
		rec := doRequest(newTestServer(&stubBib{}), http.MethodPost, "/api/lifepath",
			`{"major": "CS", "degree": "BS", "pathPreference": "academia"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCorrelationID(t *testing.T) {
	t.Run("echoes a supplied correlation ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Correlation-ID", "corr-123")
		rec := httptest.NewRecorder()

		newTestServer(&stubBib{}).Router().ServeHTTP(rec, req)
		assert.Equal(t, "corr-123", rec.Header().Get("X-Correlation-ID"))
	})

	t.Run("generates one when absent", func(t *testing.T) {
		rec := doRequest(newTestServer(&stubBib{}), http.MethodGet, "/healthz", "")
		assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
	})
}

func TestResponseContentType(t *testing.T) {
	rec := doRequest(newTestServer(&stubBib{}), http.MethodGet, "/api/trending", "")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
