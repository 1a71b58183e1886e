package service

import (
	"context"
	"testing"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestConversationGetByProject(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	project := newTestProject(t, factory, "P1", "ctx")

	ctx := context.Background()
	developer := "dev text"
	assert.NoError(t, factory.Conversations.AddMessageExchange(ctx, project.Id, entity.MessageExchange{
		UserPrompt: entity.UserPrompt{UserText: "hello", DeveloperText: &developer},
		AIResponse: entity.AIResponse{
			Id:                "resp_1",
			Status:            "incomplete",
			OutputText:        "partial",
			Error:             &entity.ResponseError{Code: "server_error", Message: "boom"},
			IncompleteDetails: &entity.IncompleteDetails{Reason: "max_output_tokens"},
		},
	}))

	svc := NewConversationService(factory)

	shown, err := svc.GetByProject(ctx, project.Id)
	assert.NoError(t, err)
	assert.Equal(t, project.Id, shown.ProjectId)
	assert.Equal(t, "P1", shown.ProjectName)
	assert.Len(t, shown.Messages, 1)

	msg := shown.Messages[0]
	assert.Equal(t, "hello", msg.UserPrompt.UserText)
	assert.Equal(t, "dev text", *msg.UserPrompt.DeveloperText)
	assert.Equal(t, "resp_1", msg.AIResponse.Id)
	assert.Equal(t, "server_error", *msg.AIResponse.ErrorCode)
	assert.Equal(t, "max_output_tokens", *msg.AIResponse.IncompleteReason)
}

func TestConversationGetByProjectNotFound(t *testing.T) {
	svc := NewConversationService(memory.NewRepositoryFactory())
	_, err := svc.GetByProject(context.Background(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindConversationNotFound))
}

func TestConversationListAndDelete(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	newTestProject(t, factory, "P1", "ctx")
	newTestProject(t, factory, "P2", "ctx")

	svc := NewConversationService(factory)
	ctx := context.Background()

	items, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	assert.NoError(t, svc.Delete(ctx, items[0].Id))

	items, err = svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	err = svc.Delete(ctx, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindConversationNotFound))
}
