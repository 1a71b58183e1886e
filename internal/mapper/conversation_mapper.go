package mapper

import (
	"encoding/json"
	"fmt"

	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) (*entity.Conversation, error) {
	if c == nil {
		return nil, nil
	}

	messages := make([]entity.MessageExchange, 0, len(c.Messages))
	for i := range c.Messages {
		exchange, err := m.ExchangeToEntity(&c.Messages[i])
		if err != nil {
			return nil, err
		}
		messages = append(messages, *exchange)
	}

	return &entity.Conversation{
		Id:          c.Id,
		ProjectId:   c.ProjectId,
		ProjectName: c.ProjectName,
		Messages:    messages,
		CreatedAt:   c.CreatedAt,
	}, nil
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) (*model.Conversation, error) {
	if c == nil {
		return nil, nil
	}

	messages := make([]model.MessageExchange, 0, len(c.Messages))
	for i, exchange := range c.Messages {
		em, err := m.ExchangeToModel(c, int64(i), &exchange)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *em)
	}

	return &model.Conversation{
		Id:          c.Id,
		ProjectId:   c.ProjectId,
		ProjectName: c.ProjectName,
		Messages:    messages,
		CreatedAt:   c.CreatedAt,
	}, nil
}

func (m *ConversationMapper) ExchangeToEntity(e *model.MessageExchange) (*entity.MessageExchange, error) {
	if e == nil {
		return nil, nil
	}

	var prompt entity.UserPrompt
	if err := json.Unmarshal(e.UserPrompt, &prompt); err != nil {
		return nil, fmt.Errorf("unmarshal user prompt of exchange %s: %w", e.Id, err)
	}

	var response entity.AIResponse
	if err := json.Unmarshal(e.AIResponse, &response); err != nil {
		return nil, fmt.Errorf("unmarshal ai response of exchange %s: %w", e.Id, err)
	}

	return &entity.MessageExchange{
		UserPrompt: prompt,
		AIResponse: response,
	}, nil
}

func (m *ConversationMapper) ExchangeToModel(c *entity.Conversation, seq int64, e *entity.MessageExchange) (*model.MessageExchange, error) {
	if e == nil {
		return nil, nil
	}

	prompt, err := json.Marshal(e.UserPrompt)
	if err != nil {
		return nil, fmt.Errorf("marshal user prompt: %w", err)
	}

	response, err := json.Marshal(e.AIResponse)
	if err != nil {
		return nil, fmt.Errorf("marshal ai response: %w", err)
	}

	return &model.MessageExchange{
		ConversationId: c.Id,
		Seq:            seq,
		UserPrompt:     prompt,
		AIResponse:     response,
	}, nil
}
