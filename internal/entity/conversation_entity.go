package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserPrompt struct {
	UserText      string  `json:"userText"`
	DeveloperText *string `json:"developerText,omitempty"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type IncompleteDetails struct {
	Reason string `json:"reason"`
}

type AIResponse struct {
	Id                string             `json:"id"`
	CreatedAt         int64              `json:"createdAt"`
	Model             string             `json:"model"`
	Status            string             `json:"status"`
	OutputText        string             `json:"outputText"`
	Error             *ResponseError     `json:"error,omitempty"`
	IncompleteDetails *IncompleteDetails `json:"incompleteDetails,omitempty"`
}

// MessageExchange is one user-prompt/AI-response pair of a project's
// conversation log.
type MessageExchange struct {
	UserPrompt UserPrompt `json:"userPrompt"`
	AIResponse AIResponse `json:"aiResponse"`
}

// Conversation is the append-only message-exchange log of a project (1:1).
type Conversation struct {
	Id          uuid.UUID
	ProjectId   uuid.UUID
	ProjectName string
	Messages    []MessageExchange
	CreatedAt   time.Time
}
