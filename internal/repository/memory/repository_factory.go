package memory

import (
	"context"
	"fmt"

	"ai-docauthor-be/internal/repository/contract"
	"ai-docauthor-be/internal/repository/unitofwork"
)

// RepositoryFactory hands out units of work over the in-memory stores. Begin
// and Commit are no-ops: every repository operation is already atomic under
// its own lock.
type RepositoryFactory struct {
	Projects      *ProjectRepository
	Conversations *ConversationRepository
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{
		Projects:      NewProjectRepository(),
		Conversations: NewConversationRepository(),
	}
}

func (f *RepositoryFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{factory: f}
}

type unitOfWork struct {
	factory *RepositoryFactory
	inTx    bool
}

func (u *unitOfWork) Begin(_ context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.inTx = true
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.inTx = false
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	u.inTx = false
	return nil
}

func (u *unitOfWork) ProjectRepository() contract.ProjectRepository {
	return u.factory.Projects
}

func (u *unitOfWork) ConversationRepository() contract.ConversationRepository {
	return u.factory.Conversations
}
