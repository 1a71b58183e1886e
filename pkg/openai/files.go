package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

type File struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Bytes    int64  `json:"bytes"`
}

// UploadFile uploads content as an assistants-purpose file.
func (c *Client) UploadFile(ctx context.Context, filename string, content io.Reader) (*File, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("purpose", "assistants"); err != nil {
		return nil, fmt.Errorf("write purpose field: %w", err)
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/files", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var file File
	if err := c.send(req, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (c *Client) RetrieveFile(ctx context.Context, fileID string) (*File, error) {
	var file File
	if err := c.doJSON(ctx, http.MethodGet, "/files/"+fileID, nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/files/"+fileID, nil, nil)
}
