package openai

import (
	"context"
	"net/http"
)

const (
	RoleSystem    = "system"
	RoleDeveloper = "developer"
	RoleUser      = "user"

	ToolTypeFileSearch = "file_search"

	OutputItemTypeMessage = "message"
	ContentTypeOutputText = "output_text"
	ContentTypeRefusal    = "refusal"
)

type InputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Tool struct {
	Type           string   `json:"type"`
	VectorStoreIDs []string `json:"vector_store_ids,omitempty"`
}

// ResponseRequest is one conversational turn. PreviousResponseID threads the
// turn into an existing upstream conversation; it is forwarded verbatim.
type ResponseRequest struct {
	Model              string         `json:"model"`
	Input              []InputMessage `json:"input"`
	Tools              []Tool         `json:"tools,omitempty"`
	PreviousResponseID *string        `json:"previous_response_id,omitempty"`
}

type ContentPart struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Refusal string `json:"refusal,omitempty"`
}

type OutputItem struct {
	Type    string        `json:"type"`
	Content []ContentPart `json:"content,omitempty"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type IncompleteDetails struct {
	Reason string `json:"reason"`
}

type Response struct {
	ID                string             `json:"id"`
	CreatedAt         int64              `json:"created_at"`
	Model             string             `json:"model"`
	Status            string             `json:"status"`
	Output            []OutputItem       `json:"output"`
	Error             *ResponseError     `json:"error"`
	IncompleteDetails *IncompleteDetails `json:"incomplete_details"`
}

func (c *Client) CreateResponse(ctx context.Context, request *ResponseRequest) (*Response, error) {
	var response Response
	if err := c.doJSON(ctx, http.MethodPost, "/responses", request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
