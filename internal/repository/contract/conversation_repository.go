package contract

import (
	"context"

	"ai-docauthor-be/internal/entity"

	"github.com/google/uuid"
)

type ConversationListItem struct {
	Id          uuid.UUID
	ProjectId   uuid.UUID
	ProjectName string
}

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error

	// FindByProjectID returns nil, nil when no conversation exists for the
	// project.
	FindByProjectID(ctx context.Context, projectID uuid.UUID) (*entity.Conversation, error)

	List(ctx context.Context) ([]ConversationListItem, error)
	AddMessageExchange(ctx context.Context, projectID uuid.UUID, exchange entity.MessageExchange) error
	Delete(ctx context.Context, id uuid.UUID) error
}
