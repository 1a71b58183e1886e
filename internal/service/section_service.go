package service

import (
	"context"
	"time"

	"ai-docauthor-be/internal/constant"
	"ai-docauthor-be/internal/dto"
	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISectionService interface {
	Create(ctx context.Context, projectID uuid.UUID, req *dto.CreateSectionRequest) (*dto.CreateSectionResponse, error)
	Update(ctx context.Context, projectID, sectionID uuid.UUID, req *dto.UpdateSectionRequest) error
	Delete(ctx context.Context, projectID, sectionID uuid.UUID) error

	// Ask sends a section prompt through the project conversation and
	// records the request and the AI answer in the section history.
	Ask(ctx context.Context, projectID, sectionID uuid.UUID, req *dto.SectionPromptRequest) (*dto.SectionPromptResponse, error)

	// Improve asks the AI to rework its previous answer for the section and
	// records the improve request in the section history.
	Improve(ctx context.Context, projectID, sectionID uuid.UUID, req *dto.SectionPromptRequest) error
}

type sectionService struct {
	uowFactory unitofwork.RepositoryFactory
	aiService  IAIConversationService
	model      string
}

func NewSectionService(
	uowFactory unitofwork.RepositoryFactory,
	aiService IAIConversationService,
	model string,
) ISectionService {
	return &sectionService{
		uowFactory: uowFactory,
		aiService:  aiService,
		model:      model,
	}
}

func (s *sectionService) Create(ctx context.Context, projectID uuid.UUID, req *dto.CreateSectionRequest) (*dto.CreateSectionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	section := entity.Section{
		Id:        uuid.New(),
		ProjectId: projectID,
		Name:      req.Name,
		History:   []entity.HistoryMessage{},
		CreatedAt: time.Now(),
	}
	if err := uow.ProjectRepository().CreateSection(ctx, projectID, &section); err != nil {
		return nil, err
	}

	return &dto.CreateSectionResponse{Id: section.Id}, nil
}

func (s *sectionService) Update(ctx context.Context, projectID, sectionID uuid.UUID, req *dto.UpdateSectionRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ProjectRepository().UpdateSection(ctx, projectID, sectionID, req.Name)
}

func (s *sectionService) Delete(ctx context.Context, projectID, sectionID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ProjectRepository().DeleteSection(ctx, projectID, sectionID)
}

func (s *sectionService) Ask(ctx context.Context, projectID, sectionID uuid.UUID, req *dto.SectionPromptRequest) (*dto.SectionPromptResponse, error) {
	response, err := s.aiService.SendMessage(ctx, projectID, ConversationPrompt{
		Model:    s.model,
		UserText: constant.SectionPromptPrefix(sectionID.String()) + req.Prompt,
	})
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	projects := uow.ProjectRepository()

	if err := projects.AddSectionMessage(ctx, projectID, sectionID, entity.HistoryMessage{
		Content: req.Prompt,
		Type:    entity.HistoryMessageRequest,
	}); err != nil {
		return nil, err
	}
	if err := projects.AddSectionMessage(ctx, projectID, sectionID, entity.HistoryMessage{
		Content: response.OutputText,
		Type:    entity.HistoryMessageResponse,
	}); err != nil {
		return nil, err
	}

	return &dto.SectionPromptResponse{Output: response.OutputText}, nil
}

func (s *sectionService) Improve(ctx context.Context, projectID, sectionID uuid.UUID, req *dto.SectionPromptRequest) error {
	if _, err := s.aiService.SendMessage(ctx, projectID, ConversationPrompt{
		Model:    s.model,
		UserText: constant.SectionImprovePrefix(sectionID.String()) + req.Prompt,
	}); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ProjectRepository().AddSectionMessage(ctx, projectID, sectionID, entity.HistoryMessage{
		Content: req.Prompt,
		Type:    entity.HistoryMessageImprove,
	})
}
