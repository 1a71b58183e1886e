package unitofwork

import (
	"context"

	"ai-docauthor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProjectRepository() contract.ProjectRepository
	ConversationRepository() contract.ConversationRepository
}
