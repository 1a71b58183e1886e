package service

import (
	"context"
	"testing"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/repository/memory"
	"ai-docauthor-be/pkg/openai"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeGenerationClient records the last request and replays a canned response.
type fakeGenerationClient struct {
	lastRequest *openai.ResponseRequest
	response    *openai.Response
	err         error
}

func (f *fakeGenerationClient) CreateResponse(_ context.Context, request *openai.ResponseRequest) (*openai.Response, error) {
	f.lastRequest = request
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func messageOutput(text string) []openai.OutputItem {
	return []openai.OutputItem{{
		Type:    openai.OutputItemTypeMessage,
		Content: []openai.ContentPart{{Type: openai.ContentTypeOutputText, Text: text}},
	}}
}

func TestSendMessageThreadsConversation(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	project := newTestProject(t, factory, "P1", "ctx")

	client := &fakeGenerationClient{response: &openai.Response{
		ID:     "resp_1",
		Model:  "gpt-test",
		Status: "completed",
		Output: messageOutput("Hello"),
	}}
	svc := NewAIConversationService(factory, client, "vs_shared", nopLogger{})

	developer := "dev text"
	system := "sys text"
	result, err := svc.SendMessage(context.Background(), project.Id, ConversationPrompt{
		Model:         "gpt-test",
		UserText:      "first turn",
		DeveloperText: &developer,
		SystemText:    &system,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Hello", result.OutputText)
	assert.Equal(t, "completed", result.Status)

	// First turn carries no continuation token.
	assert.Nil(t, client.lastRequest.PreviousResponseID)

	// Turn order is system, developer, user.
	roles := make([]string, 0, len(client.lastRequest.Input))
	for _, msg := range client.lastRequest.Input {
		roles = append(roles, msg.Role)
	}
	assert.Equal(t, []string{openai.RoleSystem, openai.RoleDeveloper, openai.RoleUser}, roles)
	assert.Equal(t, "first turn", client.lastRequest.Input[2].Content)

	// File search spans the project store and the shared store.
	assert.Len(t, client.lastRequest.Tools, 1)
	assert.Equal(t, openai.ToolTypeFileSearch, client.lastRequest.Tools[0].Type)
	assert.Equal(t, []string{project.VectorStoreId, "vs_shared"}, client.lastRequest.Tools[0].VectorStoreIDs)

	// The second turn threads on the first response id.
	client.response = &openai.Response{ID: "resp_2", Status: "completed", Output: messageOutput("Again")}
	_, err = svc.SendMessage(context.Background(), project.Id, ConversationPrompt{Model: "gpt-test", UserText: "second turn"})
	assert.NoError(t, err)
	assert.NotNil(t, client.lastRequest.PreviousResponseID)
	assert.Equal(t, "resp_1", *client.lastRequest.PreviousResponseID)

	conversation, err := factory.Conversations.FindByProjectID(context.Background(), project.Id)
	assert.NoError(t, err)
	assert.Len(t, conversation.Messages, 2)
	assert.Equal(t, "first turn", conversation.Messages[0].UserPrompt.UserText)
	assert.Equal(t, "Hello", conversation.Messages[0].AIResponse.OutputText)
}

func TestSendMessageRecordsFailedTurn(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	project := newTestProject(t, factory, "P1", "ctx")

	client := &fakeGenerationClient{response: &openai.Response{
		ID:                "resp_err",
		Error:             &openai.ResponseError{Code: "server_error", Message: "boom"},
		IncompleteDetails: &openai.IncompleteDetails{Reason: "max_output_tokens"},
	}}
	svc := NewAIConversationService(factory, client, "vs_shared", nopLogger{})

	_, err := svc.SendMessage(context.Background(), project.Id, ConversationPrompt{Model: "gpt-test", UserText: "turn"})
	assert.True(t, apperror.IsKind(err, apperror.KindAIResponse))

	var appErr *apperror.Error
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "resp_err", appErr.ResponseID)
	assert.Equal(t, "server_error", appErr.Code)
	assert.Equal(t, "incomplete", appErr.Status)
	assert.Equal(t, "max_output_tokens", appErr.IncompleteReason)

	// The turn was consumed upstream, so the token advances and the exchange
	// is logged even though the call failed.
	stored, findErr := factory.Projects.FindByID(context.Background(), project.Id)
	assert.NoError(t, findErr)
	assert.NotNil(t, stored.LastResponseId)
	assert.Equal(t, "resp_err", *stored.LastResponseId)

	conversation, findErr := factory.Conversations.FindByProjectID(context.Background(), project.Id)
	assert.NoError(t, findErr)
	assert.Len(t, conversation.Messages, 1)
	assert.Equal(t, "incomplete", conversation.Messages[0].AIResponse.Status)
	assert.Equal(t, "server_error", conversation.Messages[0].AIResponse.Error.Code)
}

func TestSendMessageProjectNotFound(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	client := &fakeGenerationClient{response: &openai.Response{ID: "resp_1"}}
	svc := NewAIConversationService(factory, client, "vs_shared", nopLogger{})

	_, err := svc.SendMessage(context.Background(), uuid.New(), ConversationPrompt{Model: "m", UserText: "hi"})
	assert.True(t, apperror.IsKind(err, apperror.KindProjectNotFound))
	assert.Nil(t, client.lastRequest, "no upstream call for an unknown project")
}

func TestExtractOutputText(t *testing.T) {
	tests := []struct {
		name   string
		output []openai.OutputItem
		want   string
	}{
		{
			name: "joins message parts with newlines",
			output: []openai.OutputItem{{
				Type: openai.OutputItemTypeMessage,
				Content: []openai.ContentPart{
					{Type: openai.ContentTypeOutputText, Text: "one"},
					{Type: openai.ContentTypeOutputText, Text: "two"},
				},
			}},
			want: "one\ntwo",
		},
		{
			name: "refusal parts use the refusal text",
			output: []openai.OutputItem{{
				Type: openai.OutputItemTypeMessage,
				Content: []openai.ContentPart{
					{Type: openai.ContentTypeOutputText, Text: "partial"},
					{Type: openai.ContentTypeRefusal, Refusal: "cannot help"},
				},
			}},
			want: "partial\ncannot help",
		},
		{
			name: "non-message items are skipped",
			output: []openai.OutputItem{
				{Type: "file_search_call"},
				{Type: openai.OutputItemTypeMessage, Content: []openai.ContentPart{{Type: openai.ContentTypeOutputText, Text: "answer"}}},
			},
			want: "answer",
		},
		{name: "empty output", output: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractOutputText(tt.output)
			if got != tt.want {
				t.Errorf("extractOutputText() = %q, want %q", got, tt.want)
			}
		})
	}
}
