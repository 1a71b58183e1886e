package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name    string `json:"name" validate:"required"`
	Context string `json:"context" validate:"required"`
}

type CreateProjectResponse struct {
	Id uuid.UUID `json:"id"`
}

type ProjectListItemResponse struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type HistoryMessageResponse struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

type SectionResponse struct {
	Id        uuid.UUID                `json:"id"`
	Name      string                   `json:"name"`
	History   []HistoryMessageResponse `json:"history"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt *time.Time               `json:"updatedAt"`
}

type ShowProjectResponse struct {
	Id            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Context       string            `json:"context"`
	VectorStoreId string            `json:"vectorStoreId"`
	Sections      []SectionResponse `json:"sections"`
	SectionOrder  []uuid.UUID       `json:"sectionOrder"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     *time.Time        `json:"updatedAt"`
}

type UpdateProjectInfoRequest struct {
	Name         *string      `json:"name"`
	Context      *string      `json:"context"`
	SectionOrder *[]uuid.UUID `json:"sectionOrder"`
}
