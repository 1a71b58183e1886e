package service

import (
	"context"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/dto"
	"ai-docauthor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IConversationService interface {
	List(ctx context.Context) ([]*dto.ConversationListItemResponse, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) (*dto.ShowConversationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory) IConversationService {
	return &conversationService{uowFactory: uowFactory}
}

func (s *conversationService) List(ctx context.Context) ([]*dto.ConversationListItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	items, err := uow.ConversationRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ConversationListItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, &dto.ConversationListItemResponse{
			Id:          item.Id,
			ProjectId:   item.ProjectId,
			ProjectName: item.ProjectName,
		})
	}
	return result, nil
}

func (s *conversationService) GetByProject(ctx context.Context, projectID uuid.UUID) (*dto.ShowConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, apperror.NewConversationNotFound(projectID.String())
	}

	messages := make([]dto.MessageExchangeResponse, 0, len(conversation.Messages))
	for _, exchange := range conversation.Messages {
		details := dto.AIResponseDetails{
			Id:         exchange.AIResponse.Id,
			CreatedAt:  exchange.AIResponse.CreatedAt,
			Model:      exchange.AIResponse.Model,
			Status:     exchange.AIResponse.Status,
			OutputText: exchange.AIResponse.OutputText,
		}
		if exchange.AIResponse.Error != nil {
			details.ErrorCode = &exchange.AIResponse.Error.Code
			details.ErrorMessage = &exchange.AIResponse.Error.Message
		}
		if exchange.AIResponse.IncompleteDetails != nil {
			details.IncompleteReason = &exchange.AIResponse.IncompleteDetails.Reason
		}
		messages = append(messages, dto.MessageExchangeResponse{
			UserPrompt: dto.UserPromptResponse{
				UserText:      exchange.UserPrompt.UserText,
				DeveloperText: exchange.UserPrompt.DeveloperText,
			},
			AIResponse: details,
		})
	}

	return &dto.ShowConversationResponse{
		Id:          conversation.Id,
		ProjectId:   conversation.ProjectId,
		ProjectName: conversation.ProjectName,
		Messages:    messages,
		CreatedAt:   conversation.CreatedAt,
	}, nil
}

func (s *conversationService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ConversationRepository().Delete(ctx, id)
}
