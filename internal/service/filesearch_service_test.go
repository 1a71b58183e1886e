package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"ai-docauthor-be/internal/dto"
	"ai-docauthor-be/internal/repository/memory"
	"ai-docauthor-be/pkg/openai"

	"github.com/stretchr/testify/assert"
)

// fakeVectorFileClient simulates the upstream file and vector-store API. Each
// attached file reports in_progress for pendingPolls checks before completing.
type fakeVectorFileClient struct {
	mu           sync.Mutex
	pendingPolls int
	pollCounts   map[string]int
	uploaded     []string
	attached     []string
	removedFiles []string
	failFilename string

	stores       []openai.VectorStore
	createdStore string
}

func newFakeVectorFileClient(pendingPolls int) *fakeVectorFileClient {
	return &fakeVectorFileClient{
		pendingPolls: pendingPolls,
		pollCounts:   make(map[string]int),
	}
}

func (f *fakeVectorFileClient) UploadFile(_ context.Context, filename string, content io.Reader) (*openai.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if filename == f.failFilename {
		return nil, errors.New("upstream rejected the file")
	}
	data, _ := io.ReadAll(content)
	f.uploaded = append(f.uploaded, filename)
	return &openai.File{ID: "file_" + filename, Filename: filename, Bytes: int64(len(data))}, nil
}

func (f *fakeVectorFileClient) RetrieveFile(_ context.Context, fileID string) (*openai.File, error) {
	return &openai.File{ID: fileID, Filename: strings.TrimPrefix(fileID, "file_")}, nil
}

func (f *fakeVectorFileClient) DeleteFile(_ context.Context, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removedFiles = append(f.removedFiles, fileID)
	return nil
}

func (f *fakeVectorFileClient) CreateVectorStore(_ context.Context, name string) (*openai.VectorStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdStore = name
	return &openai.VectorStore{ID: "vs_" + name, Name: name}, nil
}

func (f *fakeVectorFileClient) DeleteVectorStore(context.Context, string) error { return nil }

func (f *fakeVectorFileClient) ListVectorStores(_ context.Context, _ int, _ string) ([]openai.VectorStore, error) {
	return f.stores, nil
}

func (f *fakeVectorFileClient) CreateVectorStoreFile(_ context.Context, vectorStoreID, fileID string) (*openai.VectorStoreFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached = append(f.attached, vectorStoreID+"/"+fileID)
	return &openai.VectorStoreFile{ID: fileID, Status: openai.VectorStoreFileStatusInProgress}, nil
}

func (f *fakeVectorFileClient) RetrieveVectorStoreFile(_ context.Context, _, fileID string) (*openai.VectorStoreFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pollCounts[fileID]++
	status := openai.VectorStoreFileStatusInProgress
	if f.pollCounts[fileID] > f.pendingPolls {
		status = openai.VectorStoreFileStatusCompleted
	}
	return &openai.VectorStoreFile{ID: fileID, Status: status}, nil
}

func (f *fakeVectorFileClient) ListVectorStoreFiles(_ context.Context, _ string, _ int) ([]openai.VectorStoreFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	files := make([]openai.VectorStoreFile, 0, len(f.attached))
	for _, key := range f.attached {
		parts := strings.SplitN(key, "/", 2)
		files = append(files, openai.VectorStoreFile{ID: parts[1], Status: openai.VectorStoreFileStatusCompleted})
	}
	return files, nil
}

func (f *fakeVectorFileClient) DeleteVectorStoreFile(context.Context, string, string) error {
	return nil
}

// capturingPublisher collects every published payload.
type capturingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *capturingPublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func newTestFileSearchService(client VectorFileClient, publisher IPublisherService) *fileSearchService {
	return &fileSearchService{
		client:           client,
		fileInfoCache:    memory.NewFileInfoCache(),
		publisherService: publisher,
		pollInterval:     time.Millisecond,
		logger:           nopLogger{},
	}
}

func TestUploadAllWaitsForIndexing(t *testing.T) {
	client := newFakeVectorFileClient(2)
	publisher := &capturingPublisher{}
	svc := newTestFileSearchService(client, publisher)

	files, err := svc.UploadAll(context.Background(), "vs_1", []FileUpload{
		{Filename: "a.pdf", Content: strings.NewReader("aaa")},
		{Filename: "b.pdf", Content: strings.NewReader("bb")},
	})
	assert.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Equal(t, "file_a.pdf", files[0].ID)
	assert.Equal(t, int64(3), files[0].Bytes)
	assert.Equal(t, "file_b.pdf", files[1].ID)

	// Indexing reported in_progress twice, so each file was polled three times.
	assert.Equal(t, 3, client.pollCounts["file_a.pdf"])
	assert.Equal(t, 3, client.pollCounts["file_b.pdf"])

	// One ingestion message per file.
	assert.Len(t, publisher.payloads, 2)
	var msg dto.FileIngestedMessage
	assert.NoError(t, json.Unmarshal(publisher.payloads[0], &msg))
	assert.Equal(t, "vs_1", msg.VectorStoreId)
}

func TestUploadAllSurfacesErrorAfterBatchSettles(t *testing.T) {
	client := newFakeVectorFileClient(0)
	client.failFilename = "a.pdf"
	svc := newTestFileSearchService(client, &capturingPublisher{})

	_, err := svc.UploadAll(context.Background(), "vs_1", []FileUpload{
		{Filename: "a.pdf", Content: strings.NewReader("aaa")},
		{Filename: "b.pdf", Content: strings.NewReader("bb")},
	})
	assert.ErrorContains(t, err, "upstream rejected the file")

	// The rest of the batch is still attempted to completion.
	assert.Equal(t, []string{"b.pdf"}, client.uploaded)
	assert.Equal(t, []string{"vs_1/file_b.pdf"}, client.attached)
}

func TestUploadAllCancelledWhilePolling(t *testing.T) {
	client := newFakeVectorFileClient(1_000_000)
	svc := newTestFileSearchService(client, &capturingPublisher{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.UploadAll(ctx, "vs_1", []FileUpload{
		{Filename: "a.pdf", Content: strings.NewReader("aaa")},
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestListFilesUsesCache(t *testing.T) {
	client := newFakeVectorFileClient(0)
	svc := newTestFileSearchService(client, &capturingPublisher{})

	ctx := context.Background()
	_, err := svc.UploadAll(ctx, "vs_1", []FileUpload{
		{Filename: "a.pdf", Content: strings.NewReader("aaa")},
	})
	assert.NoError(t, err)

	files, err := svc.ListFiles(ctx, "vs_1")
	assert.NoError(t, err)
	assert.Len(t, files, 1)
	// The upload cached the metadata including its size; a re-fetch would have
	// returned zero bytes.
	assert.Equal(t, int64(3), files[0].Bytes)
}

func TestRemoveFileDetachesAndDeletes(t *testing.T) {
	client := newFakeVectorFileClient(0)
	svc := newTestFileSearchService(client, &capturingPublisher{})

	ctx := context.Background()
	_, err := svc.UploadAll(ctx, "vs_1", []FileUpload{
		{Filename: "a.pdf", Content: strings.NewReader("aaa")},
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.RemoveFile(ctx, "vs_1", "file_a.pdf"))
	assert.Equal(t, []string{"file_a.pdf"}, client.removedFiles)

	// Cache entry is gone, so a later list re-fetches the (empty) metadata.
	_, cached := svc.fileInfoCache.Get("file_a.pdf")
	assert.False(t, cached)
}

func TestEnsureSharedVectorStore(t *testing.T) {
	t.Run("finds the existing store by name", func(t *testing.T) {
		client := newFakeVectorFileClient(0)
		client.stores = []openai.VectorStore{
			{ID: "vs_other", Name: "Other"},
			{ID: "vs_shared", Name: "Shared files"},
		}
		id, err := EnsureSharedVectorStore(context.Background(), client, "Shared files")
		assert.NoError(t, err)
		assert.Equal(t, "vs_shared", id)
		assert.Empty(t, client.createdStore)
	})

	t.Run("creates the store when absent", func(t *testing.T) {
		client := newFakeVectorFileClient(0)
		id, err := EnsureSharedVectorStore(context.Background(), client, "Shared files")
		assert.NoError(t, err)
		assert.Equal(t, "vs_Shared files", id)
		assert.Equal(t, "Shared files", client.createdStore)
	})
}
