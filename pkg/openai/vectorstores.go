package openai

import (
	"context"
	"fmt"
	"net/http"
)

const (
	VectorStoreFileStatusInProgress = "in_progress"
	VectorStoreFileStatusCompleted  = "completed"
	VectorStoreFileStatusFailed     = "failed"
	VectorStoreFileStatusCancelled  = "cancelled"
)

type VectorStore struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VectorStoreFile is a file-within-index association. Status transitions to
// "completed" once the file is indexed and usable for search.
type VectorStoreFile struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type listPage[T any] struct {
	Data []T `json:"data"`
}

func (c *Client) CreateVectorStore(ctx context.Context, name string) (*VectorStore, error) {
	payload := map[string]string{"name": name}
	var store VectorStore
	if err := c.doJSON(ctx, http.MethodPost, "/vector_stores", payload, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

func (c *Client) DeleteVectorStore(ctx context.Context, vectorStoreID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/vector_stores/"+vectorStoreID, nil, nil)
}

func (c *Client) ListVectorStores(ctx context.Context, limit int, order string) ([]VectorStore, error) {
	path := fmt.Sprintf("/vector_stores?limit=%d&order=%s", limit, order)
	var page listPage[VectorStore]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (c *Client) CreateVectorStoreFile(ctx context.Context, vectorStoreID, fileID string) (*VectorStoreFile, error) {
	payload := map[string]string{"file_id": fileID}
	var file VectorStoreFile
	if err := c.doJSON(ctx, http.MethodPost, "/vector_stores/"+vectorStoreID+"/files", payload, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (c *Client) RetrieveVectorStoreFile(ctx context.Context, vectorStoreID, fileID string) (*VectorStoreFile, error) {
	var file VectorStoreFile
	if err := c.doJSON(ctx, http.MethodGet, "/vector_stores/"+vectorStoreID+"/files/"+fileID, nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (c *Client) ListVectorStoreFiles(ctx context.Context, vectorStoreID string, limit int) ([]VectorStoreFile, error) {
	// TODO: supports up to `limit` files per vector store; aggregate across
	// pages with the `after` cursor if stores ever grow beyond that.
	path := fmt.Sprintf("/vector_stores/%s/files?limit=%d", vectorStoreID, limit)
	var page listPage[VectorStoreFile]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (c *Client) DeleteVectorStoreFile(ctx context.Context, vectorStoreID, fileID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/vector_stores/"+vectorStoreID+"/files/"+fileID, nil, nil)
}
