package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhettlabs/research-dashboard-service/internal/domain"
)

func TestFilterResearchers(t *testing.T) {
	list := Researchers()

	t.Run("empty filters match everything", func(t *testing.T) {
		out := FilterResearchers(list, "", "", "")
		assert.Len(t, out, len(list))
	})

	t.Run("topic matches case-insensitive substrings", func(t *testing.T) {
		out := FilterResearchers(list, "reinforcement", "", "")
		require.NotEmpty(t, out)
		for _, r := range out {
			assert.Condition(t, func() bool {
				return matchesTopic(r, "Reinforcement")
			}, "researcher %s does not carry the topic", r.Name)
		}
	})

	t.Run("institution matches substrings of affiliation", func(t *testing.T) {
		out := FilterResearchers(list, "", "mit", "")
		require.NotEmpty(t, out)
		for _, r := range out {
			assert.True(t, containsFold(r.Affiliation, "mit"))
		}
	})

	t.Run("country matches case-insensitively", func(t *testing.T) {
		out := FilterResearchers(list, "", "", "uk")
		require.NotEmpty(t, out)
		for _, r := range out {
			assert.Equal(t, "UK", r.Country)
		}
	})

	t.Run("simultaneous filters AND together", func(t *testing.T) {
		out := FilterResearchers(list, "AI Safety", "", "UK")
		require.NotEmpty(t, out)
		for _, r := range out {
			assert.True(t, matchesTopic(r, "AI Safety"))
			assert.Equal(t, "UK", r.Country)
		}
		assert.Less(t, len(out), len(FilterResearchers(list, "AI Safety", "", "")))
	})

	t.Run("filtering is idempotent", func(t *testing.T) {
		once := FilterResearchers(list, "learning", "", "US")
		twice := FilterResearchers(once, "learning", "", "US")
		assert.Equal(t, once, twice)
	})

	t.Run("filter order does not matter", func(t *testing.T) {
		byTopicThenCountry := FilterResearchers(FilterResearchers(list, "learning", "", ""), "", "", "US")
		byCountryThenTopic := FilterResearchers(FilterResearchers(list, "", "", "US"), "learning", "", "")
		assert.Equal(t, byTopicThenCountry, byCountryThenTopic)
	})

	t.Run("no match yields empty non-nil slice", func(t *testing.T) {
		out := FilterResearchers(list, "underwater basket weaving", "", "")
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
}

func TestAccessorsReturnCopies(t *testing.T) {
	t.Run("word cloud", func(t *testing.T) {
		a := WordCloud()
		a[0].Text = "mutated"
		assert.NotEqual(t, "mutated", WordCloud()[0].Text)
	})

	t.Run("trending", func(t *testing.T) {
		a := Trending()
		a[0].Name = "mutated"
		assert.NotEqual(t, "mutated", Trending()[0].Name)
	})

	t.Run("researchers", func(t *testing.T) {
		a := Researchers()
		a[0].Name = "mutated"
		assert.NotEqual(t, "mutated", Researchers()[0].Name)
	})
}

func TestChatSummary(t *testing.T) {
	summary := ChatSummary("graph neural networks")
	assert.Contains(t, summary, `"graph neural networks"`)
}

func TestStaticDataShape(t *testing.T) {
	t.Run("capsule rarity agrees with citations", func(t *testing.T) {
		for _, c := range capsules {
			var want domain.Rarity
			switch {
			case c.Citations >= 5000:
				want = domain.RaritySSR
			case c.Citations >= 1000:
				want = domain.RaritySR
			case c.Citations >= 200:
				want = domain.RarityR
			default:
				want = domain.RarityN
			}
			assert.Equal(t, want, c.Rarity, "capsule %q", c.Title)
		}
	})

	t.Run("trending entries are sorted by count descending", func(t *testing.T) {
		list := Trending()
		for i := 1; i < len(list); i++ {
			assert.GreaterOrEqual(t, list[i-1].Count, list[i].Count)
		}
	})

	t.Run("chat researchers carry the extraction shape", func(t *testing.T) {
		for _, r := range ChatResearchers() {
			assert.NotEmpty(t, r.Name)
			assert.NotEmpty(t, r.Affiliation)
			assert.Equal(t, "AI Research", r.Field)
		}
	})
}
