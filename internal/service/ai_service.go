package service

import (
	"context"
	"strings"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/pkg/logger"
	"ai-docauthor-be/internal/repository/contract"
	"ai-docauthor-be/internal/repository/unitofwork"
	"ai-docauthor-be/pkg/openai"

	"github.com/google/uuid"
)

// GenerationClient is the upstream collaborator that runs one conversational
// turn. Satisfied by *openai.Client.
type GenerationClient interface {
	CreateResponse(ctx context.Context, request *openai.ResponseRequest) (*openai.Response, error)
}

// ConversationPrompt is one outgoing turn. SystemText and DeveloperText are
// optional; when present they precede the user turn in that order.
type ConversationPrompt struct {
	Model         string
	UserText      string
	DeveloperText *string
	SystemText    *string
}

type IAIConversationService interface {
	// SendMessage runs exactly one upstream turn for the project and durably
	// records it, even when the upstream reports an error for the turn.
	SendMessage(ctx context.Context, projectID uuid.UUID, prompt ConversationPrompt) (*entity.AIResponse, error)
}

type aiConversationService struct {
	uowFactory          unitofwork.RepositoryFactory
	client              GenerationClient
	sharedVectorStoreID string
	logger              logger.ILogger
}

func NewAIConversationService(
	uowFactory unitofwork.RepositoryFactory,
	client GenerationClient,
	sharedVectorStoreID string,
	log logger.ILogger,
) IAIConversationService {
	return &aiConversationService{
		uowFactory:          uowFactory,
		client:              client,
		sharedVectorStoreID: sharedVectorStoreID,
		logger:              log,
	}
}

func (s *aiConversationService) SendMessage(ctx context.Context, projectID uuid.UUID, prompt ConversationPrompt) (*entity.AIResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindByID(ctx, projectID,
		contract.ProjectFieldVectorStoreId, contract.ProjectFieldLastResponseId)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewProjectNotFound(projectID.String())
	}

	// Search draws from the project's own store and the shared one at once.
	tools := []openai.Tool{{
		Type:           openai.ToolTypeFileSearch,
		VectorStoreIDs: []string{project.VectorStoreId, s.sharedVectorStoreID},
	}}

	// Turn order is fixed: system, developer, user.
	var input []openai.InputMessage
	if prompt.SystemText != nil {
		input = append(input, openai.InputMessage{Role: openai.RoleSystem, Content: *prompt.SystemText})
	}
	if prompt.DeveloperText != nil {
		input = append(input, openai.InputMessage{Role: openai.RoleDeveloper, Content: *prompt.DeveloperText})
	}
	input = append(input, openai.InputMessage{Role: openai.RoleUser, Content: prompt.UserText})

	response, err := s.client.CreateResponse(ctx, &openai.ResponseRequest{
		Model:              prompt.Model,
		Input:              input,
		Tools:              tools,
		PreviousResponseID: project.LastResponseId,
	})
	if err != nil {
		return nil, err
	}

	// The turn is consumed upstream even when it reports an error, so the
	// continuation token must advance unconditionally. Retrying with the
	// stale token would corrupt the conversation threading.
	if err := uow.ProjectRepository().UpdateLastResponseID(ctx, projectID, response.ID); err != nil {
		return nil, err
	}

	status := response.Status
	if status == "" {
		status = "incomplete"
	}

	result := &entity.AIResponse{
		Id:         response.ID,
		CreatedAt:  response.CreatedAt,
		Model:      response.Model,
		Status:     status,
		OutputText: extractOutputText(response.Output),
	}
	if response.Error != nil {
		result.Error = &entity.ResponseError{
			Code:    response.Error.Code,
			Message: response.Error.Message,
		}
	}
	if response.IncompleteDetails != nil {
		result.IncompleteDetails = &entity.IncompleteDetails{
			Reason: response.IncompleteDetails.Reason,
		}
	}

	exchange := entity.MessageExchange{
		UserPrompt: entity.UserPrompt{
			UserText:      prompt.UserText,
			DeveloperText: prompt.DeveloperText,
		},
		AIResponse: *result,
	}
	if err := uow.ConversationRepository().AddMessageExchange(ctx, projectID, exchange); err != nil {
		return nil, err
	}

	// Token and exchange are durable at this point; only now surface the
	// upstream error.
	if response.Error != nil {
		s.logger.Error("ai", "Upstream response reported an error", map[string]interface{}{
			"project_id":  projectID.String(),
			"response_id": response.ID,
			"code":        response.Error.Code,
		})
		incompleteReason := ""
		if result.IncompleteDetails != nil {
			incompleteReason = result.IncompleteDetails.Reason
		}
		return nil, apperror.NewAIResponseError(response.ID, response.Error.Code, response.Error.Message, status, incompleteReason)
	}

	s.logger.Debug("ai", "Conversation turn completed", map[string]interface{}{
		"project_id":  projectID.String(),
		"response_id": response.ID,
		"status":      status,
	})

	return result, nil
}

// extractOutputText concatenates the text of every message-typed output item,
// falling back to the refusal text for refused segments.
func extractOutputText(output []openai.OutputItem) string {
	var parts []string
	for _, item := range output {
		if item.Type != openai.OutputItemTypeMessage {
			continue
		}
		for _, content := range item.Content {
			if content.Type == openai.ContentTypeRefusal {
				parts = append(parts, content.Refusal)
			} else {
				parts = append(parts, content.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}
