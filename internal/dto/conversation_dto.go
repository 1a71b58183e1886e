package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConversationListItemResponse struct {
	Id          uuid.UUID `json:"id"`
	ProjectId   uuid.UUID `json:"projectId"`
	ProjectName string    `json:"projectName"`
}

type UserPromptResponse struct {
	UserText      string  `json:"userText"`
	DeveloperText *string `json:"developerText,omitempty"`
}

type AIResponseDetails struct {
	Id               string  `json:"id"`
	CreatedAt        int64   `json:"createdAt"`
	Model            string  `json:"model"`
	Status           string  `json:"status"`
	OutputText       string  `json:"outputText"`
	ErrorCode        *string `json:"errorCode,omitempty"`
	ErrorMessage     *string `json:"errorMessage,omitempty"`
	IncompleteReason *string `json:"incompleteReason,omitempty"`
}

type MessageExchangeResponse struct {
	UserPrompt UserPromptResponse `json:"userPrompt"`
	AIResponse AIResponseDetails  `json:"aiResponse"`
}

type ShowConversationResponse struct {
	Id          uuid.UUID                 `json:"id"`
	ProjectId   uuid.UUID                 `json:"projectId"`
	ProjectName string                    `json:"projectName"`
	Messages    []MessageExchangeResponse `json:"messages"`
	CreatedAt   time.Time                 `json:"createdAt"`
}
