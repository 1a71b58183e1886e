package docconv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Converter talks to a document conversion service that renders markdown
// into binary document formats.
type Converter struct {
	BaseURL string
	Client  *http.Client
}

func NewConverter(baseURL string) *Converter {
	return &Converter{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type convertRequest struct {
	Markdown string `json:"markdown"`
	Filename string `json:"filename"`
}

// MarkdownToDocx renders markdown into a .docx document and returns the raw
// document bytes.
func (c *Converter) MarkdownToDocx(ctx context.Context, markdown, filename string) ([]byte, error) {
	payload, err := json.Marshal(convertRequest{Markdown: markdown, Filename: filename})
	if err != nil {
		return nil, fmt.Errorf("marshal convert request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/convert/docx", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("converter request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("converter error: status %d: %s", resp.StatusCode, string(body))
	}

	document, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read converted document: %w", err)
	}
	return document, nil
}
