package httpserver

import (
	"github.com/rhettlabs/research-dashboard-service/internal/advisor"
	"github.com/rhettlabs/research-dashboard-service/internal/llm"
)

// Request body types for JSON deserialization. Validation rules live on the
// struct tags and are enforced by decodeAndValidate.

type chatRequest struct {
	Query          string `json:"query" validate:"required,min=1,max=2000"`
	UserBackground string `json:"user_background,omitempty" validate:"max=2000"`
}

type messagePayload struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

type rstiAdvisorRequest struct {
	RSTIType            string           `json:"rsti_type" validate:"required,max=100"`
	Major               string           `json:"major,omitempty" validate:"max=200"`
	ConversationHistory []messagePayload `json:"conversation_history,omitempty" validate:"dive"`
	Choice              string           `json:"choice,omitempty" validate:"max=20"`
}

type lifePathRequest struct {
	School         string `json:"school" validate:"required,max=200"`
	Major          string `json:"major" validate:"required,max=200"`
	Degree         string `json:"degree" validate:"required,max=100"`
	PathPreference string `json:"pathPreference" validate:"required,max=200"`
	Personality    string `json:"personality,omitempty" validate:"max=2000"`
	Goals          string `json:"goals,omitempty" validate:"max=2000"`
	SpecialNotes   string `json:"specialNotes,omitempty" validate:"max=2000"`
}

// Converter functions

func payloadToMessages(payloads []messagePayload) []llm.Message {
	if len(payloads) == 0 {
		return nil
	}
	messages := make([]llm.Message, len(payloads))
	for i, p := range payloads {
		messages[i] = llm.Message{Role: p.Role, Content: p.Content}
	}
	return messages
}

func lifePathRequestToProfile(req lifePathRequest) advisor.LifePathProfile {
	return advisor.LifePathProfile{
		School:         req.School,
		Major:          req.Major,
		Degree:         req.Degree,
		PathPreference: req.PathPreference,
		Personality:    req.Personality,
		Goals:          req.Goals,
		SpecialNotes:   req.SpecialNotes,
	}
}
