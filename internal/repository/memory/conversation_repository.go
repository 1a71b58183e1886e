package memory

import (
	"context"
	"sync"
	"time"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/repository/contract"

	"github.com/google/uuid"
)

// ConversationRepository is the in-memory counterpart of the gorm
// conversation store.
type ConversationRepository struct {
	mu            sync.Mutex
	conversations map[uuid.UUID]*entity.Conversation // keyed by conversation id
}

func NewConversationRepository() *ConversationRepository {
	return &ConversationRepository{
		conversations: make(map[uuid.UUID]*entity.Conversation),
	}
}

func (r *ConversationRepository) Create(_ context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conversation.Id == uuid.Nil {
		conversation.Id = uuid.New()
	}
	conversation.CreatedAt = time.Now()
	if conversation.Messages == nil {
		conversation.Messages = []entity.MessageExchange{}
	}
	clone := *conversation
	clone.Messages = append([]entity.MessageExchange(nil), conversation.Messages...)
	r.conversations[conversation.Id] = &clone
	return nil
}

func (r *ConversationRepository) FindByProjectID(_ context.Context, projectID uuid.UUID) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.conversations {
		if c.ProjectId == projectID {
			clone := *c
			clone.Messages = append([]entity.MessageExchange(nil), c.Messages...)
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *ConversationRepository) List(_ context.Context) ([]contract.ConversationListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]contract.ConversationListItem, 0, len(r.conversations))
	for _, c := range r.conversations {
		items = append(items, contract.ConversationListItem{
			Id:          c.Id,
			ProjectId:   c.ProjectId,
			ProjectName: c.ProjectName,
		})
	}
	return items, nil
}

func (r *ConversationRepository) AddMessageExchange(_ context.Context, projectID uuid.UUID, exchange entity.MessageExchange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.conversations {
		if c.ProjectId == projectID {
			c.Messages = append(c.Messages, exchange)
			return nil
		}
	}
	return apperror.NewConversationNotFound(projectID.String())
}

func (r *ConversationRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[id]; !ok {
		return apperror.NewConversationByIDNotFound(id.String())
	}
	delete(r.conversations, id)
	return nil
}
