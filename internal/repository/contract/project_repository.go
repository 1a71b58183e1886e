package contract

import (
	"context"

	"ai-docauthor-be/internal/entity"

	"github.com/google/uuid"
)

// ProjectField selects which parts of the aggregate a read loads.
type ProjectField string

const (
	ProjectFieldName           ProjectField = "name"
	ProjectFieldContext        ProjectField = "context"
	ProjectFieldVectorStoreId  ProjectField = "vector_store_id"
	ProjectFieldLastResponseId ProjectField = "last_response_id"
	ProjectFieldSectionOrder   ProjectField = "section_order"
	ProjectFieldSections       ProjectField = "sections"
)

// ProjectInfoUpdate is a field-level partial update. Nil fields are left
// untouched. SectionOrder must be a permutation of the project's current
// section ids; a non-permutation fails with an invalid-input error.
type ProjectInfoUpdate struct {
	Name         *string
	Context      *string
	SectionOrder *[]uuid.UUID
}

type ProjectListItem struct {
	Id   uuid.UUID
	Name string
}

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	List(ctx context.Context) ([]ProjectListItem, error)

	// FindByID returns nil, nil when the project does not exist. fields
	// restricts the loaded columns; an empty list loads everything.
	FindByID(ctx context.Context, id uuid.UUID, fields ...ProjectField) (*entity.Project, error)

	UpdateInfo(ctx context.Context, id uuid.UUID, update ProjectInfoUpdate) error
	UpdateLastResponseID(ctx context.Context, id uuid.UUID, responseID string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateSection inserts the section and appends its id to the project's
	// section order as one atomic operation.
	CreateSection(ctx context.Context, projectID uuid.UUID, section *entity.Section) error
	UpdateSection(ctx context.Context, projectID, sectionID uuid.UUID, name string) error
	AddSectionMessage(ctx context.Context, projectID, sectionID uuid.UUID, message entity.HistoryMessage) error

	// DeleteSection removes the section row and its order entry atomically,
	// or neither.
	DeleteSection(ctx context.Context, projectID, sectionID uuid.UUID) error
}
