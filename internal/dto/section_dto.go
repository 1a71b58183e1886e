package dto

import "github.com/google/uuid"

type CreateSectionRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateSectionResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateSectionRequest struct {
	Name string `json:"name" validate:"required"`
}

type SectionPromptRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// SectionPromptResponse returns the AI answer that was appended to the
// section's history.
type SectionPromptResponse struct {
	Output string `json:"output"`
}
