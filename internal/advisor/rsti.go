package advisor

import (
	"fmt"
	"strings"

	"github.com/rhettlabs/research-dashboard-service/internal/llm"
)

// rstiSystemPrompt drives the binary-choice PhD advisor conversation.
const rstiSystemPrompt = personaPreamble + " " +
	"You are acting like an academic advisor helping a student choose a PhD research direction " +
	"through a maximum of 3 binary (1/2) choices. " +
	"Each round, ask a short question (<=3 lines) with exactly two numbered options. " +
	"At the end, summarize the most suitable PhD field in 3-5 sentences, " +
	"explicitly combining the student's academic background and their previous choices. " +
	"When you provide the final recommendation, start with '\U0001F3AF Final Recommendation:' " +
	"and provide exactly 3 specific research topics/areas."

// finalMarker prefixes the advisor's closing recommendation.
const finalMarker = "\U0001F3AF"

// maxRecommendedTopics caps the topics extracted from a final reply.
const maxRecommendedTopics = 3

// RSTIMessages returns the conversation to send to the completion API.
// With no history it opens a new advisor session from the student's RSTI
// type and major; otherwise it extends the existing history with the
// student's binary choice, if one was supplied.
func RSTIMessages(rstiType, major string, history []llm.Message, choice string) []llm.Message {
	if len(history) == 0 {
		if major == "" {
			major = "your field"
		}
		return []llm.Message{
			{Role: llm.RoleSystem, Content: rstiSystemPrompt},
			{Role: llm.RoleUser, Content: fmt.Sprintf(
				"My academic background is %s and my RSTI type is %s. Let's begin.", major, rstiType)},
		}
	}

	messages := make([]llm.Message, len(history), len(history)+1)
	copy(messages, history)
	if choice != "" {
		messages = append(messages, llm.Message{
			Role:    llm.RoleUser,
			Content: fmt.Sprintf("I choose option %s.", choice),
		})
	}
	return messages
}

// IsFinal reports whether the advisor reply is the closing recommendation.
func IsFinal(reply string) bool {
	if strings.Contains(reply, finalMarker) {
		return true
	}
	return strings.Contains(reply, "Final") && strings.Contains(reply, "Recommendation")
}

// RecommendedTopics extracts up to three topic lines from a final reply.
// Topic lines are numbered or bulleted; numbering and bullets are stripped.
func RecommendedTopics(reply string) []string {
	topics := make([]string, 0, maxRecommendedTopics)
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isTopicLine(line) {
			continue
		}
		topic := strings.TrimSpace(strings.TrimLeft(line, "0123456789.-•) "))
		if topic == "" {
			continue
		}
		topics = append(topics, topic)
		if len(topics) >= maxRecommendedTopics {
			break
		}
	}
	return topics
}

func isTopicLine(line string) bool {
	r := rune(line[0])
	if r >= '0' && r <= '9' {
		return true
	}
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•")
}
