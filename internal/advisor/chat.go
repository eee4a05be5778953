// Package advisor composes the prompts behind the chat, RSTI advisor, and
// life-path views, and interprets advisor replies.
package advisor

import (
	"fmt"
	"strings"

	"github.com/rhettlabs/research-dashboard-service/internal/domain"
	"github.com/rhettlabs/research-dashboard-service/internal/llm"
)

// ChatSystemPrompt identifies the assistant persona for the chat view.
const ChatSystemPrompt = "You are a helpful AI research assistant named Rhett."

// personaPreamble is the fixed style contract shared by the chat and advisor
// prompts.
const personaPreamble = "You are Mascot Rhett, Boston University's terrier mascot turned AI research guide. " +
	"Your voice is playful, curious, and supportive—think wagging tail energy, " +
	"clever canine metaphors, and light BU references."

// maxSuggestionLines caps the pre-fetched bibliographic summaries embedded in
// a chat prompt.
const maxSuggestionLines = 3

// ResearcherLines formats researcher suggestions as "- {name} ({affiliation})"
// lines, at most maxSuggestionLines of them.
func ResearcherLines(researchers []domain.ResearcherSummary) string {
	var b strings.Builder
	for i, r := range researchers {
		if i >= maxSuggestionLines {
			break
		}
		fmt.Fprintf(&b, "- %s (%s)\n", r.Name, r.Affiliation)
	}
	return strings.TrimRight(b.String(), "\n")
}

// PaperLines formats paper suggestions as "- {title} ({year})" lines, at most
// maxSuggestionLines of them.
func PaperLines(papers []domain.PaperSummary) string {
	var b strings.Builder
	for i, p := range papers {
		if i >= maxSuggestionLines {
			break
		}
		fmt.Fprintf(&b, "- %s (%d)\n", p.Title, p.Year)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ChatMessages builds the conversation for a chat request: the persona
// preamble, the user's interest, the pre-fetched suggestion lines, and
// explicit formatting and tone instructions.
func ChatMessages(query, userBackground string, researchers []domain.ResearcherSummary, papers []domain.PaperSummary) []llm.Message {
	var prompt strings.Builder
	prompt.WriteString(personaPreamble)
	prompt.WriteString("\n\n")
	fmt.Fprintf(&prompt, "User's interest: %s\n", query)
	if userBackground != "" {
		fmt.Fprintf(&prompt, "User's background: %s\n", userBackground)
	}
	prompt.WriteString("Suggested researchers and papers:\n")
	if lines := ResearcherLines(researchers); lines != "" {
		prompt.WriteString(lines)
		prompt.WriteString("\n")
	}
	if lines := PaperLines(papers); lines != "" {
		prompt.WriteString(lines)
		prompt.WriteString("\n")
	}
	prompt.WriteString("\nCompose 3-5 sentences that:\n" +
		"1. Identify the broader research trend or opportunity.\n" +
		"2. Highlight why the listed researchers or papers are exciting leads.\n" +
		"3. Include at least one spirited Rhett-style flourish (e.g., tail wags, " +
		"sniffing out insights, Terrier tenacity).\n" +
		"Stay encouraging and action-oriented while keeping things academically accurate.")

	return []llm.Message{
		{Role: llm.RoleSystem, Content: ChatSystemPrompt},
		{Role: llm.RoleUser, Content: prompt.String()},
	}
}
