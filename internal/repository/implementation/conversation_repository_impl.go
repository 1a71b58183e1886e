package implementation

import (
	"context"
	"errors"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/mapper"
	"ai-docauthor-be/internal/model"
	"ai-docauthor-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, conversation *entity.Conversation) error {
	m, err := r.mapper.ToModel(conversation)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	conversation.Id = m.Id
	conversation.CreatedAt = m.CreatedAt
	return nil
}

func (r *ConversationRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) (*entity.Conversation, error) {
	var m model.Conversation
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		First(&m, "project_id = ?", projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *ConversationRepositoryImpl) List(ctx context.Context) ([]contract.ConversationListItem, error) {
	var models []*model.Conversation
	err := r.db.WithContext(ctx).
		Select("id", "project_id", "project_name").
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]contract.ConversationListItem, 0, len(models))
	for _, m := range models {
		items = append(items, contract.ConversationListItem{
			Id:          m.Id,
			ProjectId:   m.ProjectId,
			ProjectName: m.ProjectName,
		})
	}
	return items, nil
}

func (r *ConversationRepositoryImpl) AddMessageExchange(ctx context.Context, projectID uuid.UUID, exchange entity.MessageExchange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conversation model.Conversation
		if err := tx.Select("id", "project_id", "project_name").First(&conversation, "project_id = ?", projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewConversationNotFound(projectID.String())
			}
			return err
		}

		var nextSeq int64
		err := tx.Model(&model.MessageExchange{}).
			Where("conversation_id = ?", conversation.Id).
			Select("COALESCE(MAX(seq) + 1, 0)").
			Scan(&nextSeq).Error
		if err != nil {
			return err
		}

		conversationEntity := &entity.Conversation{Id: conversation.Id}
		m, err := r.mapper.ExchangeToModel(conversationEntity, nextSeq, &exchange)
		if err != nil {
			return err
		}
		return tx.Create(m).Error
	})
}

func (r *ConversationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&model.MessageExchange{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Conversation{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NewConversationByIDNotFound(id.String())
		}
		return nil
	})
}
