package service

import (
	"context"
	"sort"
	"time"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/constant"
	"ai-docauthor-be/internal/dto"
	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/pkg/logger"
	"ai-docauthor-be/internal/repository/contract"
	"ai-docauthor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error)
	GetAll(ctx context.Context) ([]*dto.ProjectListItemResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowProjectResponse, error)
	UpdateInfo(ctx context.Context, id uuid.UUID, req *dto.UpdateProjectInfoRequest) error
	Delete(ctx context.Context, id uuid.UUID) error

	// GetVectorStoreID resolves the project's dedicated vector store.
	GetVectorStoreID(ctx context.Context, id uuid.UUID) (string, error)
}

type projectService struct {
	uowFactory        unitofwork.RepositoryFactory
	aiService         IAIConversationService
	fileSearchService IFileSearchService
	model             string
	logger            logger.ILogger
}

func NewProjectService(
	uowFactory unitofwork.RepositoryFactory,
	aiService IAIConversationService,
	fileSearchService IFileSearchService,
	model string,
	log logger.ILogger,
) IProjectService {
	return &projectService{
		uowFactory:        uowFactory,
		aiService:         aiService,
		fileSearchService: fileSearchService,
		model:             model,
		logger:            log,
	}
}

// Create provisions the project's dedicated vector store, stores the
// aggregate with its conversation, and primes the conversation with the
// project context so later section prompts inherit it.
func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error) {
	vectorStoreID, err := s.fileSearchService.CreateVectorStore(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	project := entity.Project{
		Id:            uuid.New(),
		Name:          req.Name,
		Context:       req.Context,
		VectorStoreId: vectorStoreID,
		SectionOrder:  []uuid.UUID{},
		CreatedAt:     time.Now(),
	}
	if err := uow.ProjectRepository().Create(ctx, &project); err != nil {
		return nil, err
	}

	conversation := entity.Conversation{
		Id:          uuid.New(),
		ProjectId:   project.Id,
		ProjectName: project.Name,
		CreatedAt:   time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}

	developerText := constant.ProjectDeveloperText
	_, err = s.aiService.SendMessage(ctx, project.Id, ConversationPrompt{
		Model:         s.model,
		UserText:      constant.ProjectContextPrefixPrompt + req.Context,
		DeveloperText: &developerText,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project", "Project created", map[string]interface{}{
		"project_id":      project.Id.String(),
		"vector_store_id": vectorStoreID,
	})

	return &dto.CreateProjectResponse{Id: project.Id}, nil
}

func (s *projectService) GetAll(ctx context.Context) ([]*dto.ProjectListItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	items, err := uow.ProjectRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ProjectListItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, &dto.ProjectListItemResponse{
			Id:   item.Id,
			Name: item.Name,
		})
	}
	return result, nil
}

func (s *projectService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewProjectNotFound(id.String())
	}

	ordered, err := OrderSections(id, project.Sections, project.SectionOrder)
	if err != nil {
		return nil, err
	}

	sections := make([]dto.SectionResponse, 0, len(ordered))
	for _, section := range ordered {
		history := make([]dto.HistoryMessageResponse, 0, len(section.History))
		for _, message := range section.History {
			history = append(history, dto.HistoryMessageResponse{
				Content: message.Content,
				Type:    string(message.Type),
			})
		}
		sections = append(sections, dto.SectionResponse{
			Id:        section.Id,
			Name:      section.Name,
			History:   history,
			CreatedAt: section.CreatedAt,
			UpdatedAt: section.UpdatedAt,
		})
	}

	return &dto.ShowProjectResponse{
		Id:            project.Id,
		Name:          project.Name,
		Context:       project.Context,
		VectorStoreId: project.VectorStoreId,
		Sections:      sections,
		SectionOrder:  project.SectionOrder,
		CreatedAt:     project.CreatedAt,
		UpdatedAt:     project.UpdatedAt,
	}, nil
}

func (s *projectService) UpdateInfo(ctx context.Context, id uuid.UUID, req *dto.UpdateProjectInfoRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	return uow.ProjectRepository().UpdateInfo(ctx, id, contract.ProjectInfoUpdate{
		Name:         req.Name,
		Context:      req.Context,
		SectionOrder: req.SectionOrder,
	})
}

// Delete removes the aggregate, its conversation, and the external vector
// store. The store deletion comes last so a failure leaves a retryable
// dangling store rather than a project pointing at nothing.
func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindByID(ctx, id, contract.ProjectFieldVectorStoreId)
	if err != nil {
		return err
	}
	if project == nil {
		return apperror.NewProjectNotFound(id.String())
	}

	conversation, err := uow.ConversationRepository().FindByProjectID(ctx, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.ProjectRepository().Delete(ctx, id); err != nil {
		uow.Rollback()
		return err
	}
	if conversation != nil {
		if err := uow.ConversationRepository().Delete(ctx, conversation.Id); err != nil {
			uow.Rollback()
			return err
		}
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if err := s.fileSearchService.DeleteVectorStore(ctx, project.VectorStoreId); err != nil {
		s.logger.Warn("project", "Failed to delete vector store, it is now orphaned", map[string]interface{}{
			"project_id":      id.String(),
			"vector_store_id": project.VectorStoreId,
			"error":           err.Error(),
		})
	}

	return nil
}

func (s *projectService) GetVectorStoreID(ctx context.Context, id uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindByID(ctx, id, contract.ProjectFieldVectorStoreId)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", apperror.NewProjectNotFound(id.String())
	}
	return project.VectorStoreId, nil
}

// OrderSections resolves the displayable section sequence: every section's id
// is looked up in the explicit order, a missing entry fails with a not-found
// error rather than silently dropping or misplacing the section.
func OrderSections(projectID uuid.UUID, sections []*entity.Section, order []uuid.UUID) ([]*entity.Section, error) {
	positions := make(map[uuid.UUID]int, len(order))
	for i, id := range order {
		positions[id] = i
	}

	for _, section := range sections {
		if _, ok := positions[section.Id]; !ok {
			return nil, apperror.NewSectionNotFound(projectID.String(), section.Id.String())
		}
	}

	ordered := make([]*entity.Section, len(sections))
	copy(ordered, sections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return positions[ordered[i].Id] < positions[ordered[j].Id]
	})

	return ordered, nil
}
