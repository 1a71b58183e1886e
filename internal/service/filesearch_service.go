package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"ai-docauthor-be/internal/dto"
	"ai-docauthor-be/internal/pkg/logger"
	"ai-docauthor-be/internal/repository/memory"
	"ai-docauthor-be/pkg/events"
	pkgNats "ai-docauthor-be/pkg/nats"
	"ai-docauthor-be/pkg/openai"

	"golang.org/x/sync/errgroup"
)

const defaultPollInterval = 2500 * time.Millisecond

// VectorFileClient is the upstream file and vector-store API. Satisfied by
// *openai.Client.
type VectorFileClient interface {
	UploadFile(ctx context.Context, filename string, content io.Reader) (*openai.File, error)
	RetrieveFile(ctx context.Context, fileID string) (*openai.File, error)
	DeleteFile(ctx context.Context, fileID string) error

	CreateVectorStore(ctx context.Context, name string) (*openai.VectorStore, error)
	DeleteVectorStore(ctx context.Context, vectorStoreID string) error
	ListVectorStores(ctx context.Context, limit int, order string) ([]openai.VectorStore, error)

	CreateVectorStoreFile(ctx context.Context, vectorStoreID, fileID string) (*openai.VectorStoreFile, error)
	RetrieveVectorStoreFile(ctx context.Context, vectorStoreID, fileID string) (*openai.VectorStoreFile, error)
	ListVectorStoreFiles(ctx context.Context, vectorStoreID string, limit int) ([]openai.VectorStoreFile, error)
	DeleteVectorStoreFile(ctx context.Context, vectorStoreID, fileID string) error
}

// FileUpload is one incoming file of a batch upload.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

type IFileSearchService interface {
	// UploadAll uploads every file and attaches it to the vector store,
	// waiting for each to finish indexing. All files are attempted; the
	// first error is returned after the whole batch settles.
	UploadAll(ctx context.Context, vectorStoreID string, uploads []FileUpload) ([]*openai.File, error)

	ListFiles(ctx context.Context, vectorStoreID string) ([]*openai.File, error)
	RemoveFile(ctx context.Context, vectorStoreID, fileID string) error

	CreateVectorStore(ctx context.Context, name string) (string, error)
	DeleteVectorStore(ctx context.Context, vectorStoreID string) error
}

type fileSearchService struct {
	client           VectorFileClient
	fileInfoCache    *memory.FileInfoCache
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	pollInterval     time.Duration
	logger           logger.ILogger
}

func NewFileSearchService(
	client VectorFileClient,
	fileInfoCache *memory.FileInfoCache,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IFileSearchService {
	return &fileSearchService{
		client:           client,
		fileInfoCache:    fileInfoCache,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		pollInterval:     defaultPollInterval,
		logger:           log,
	}
}

func (s *fileSearchService) UploadAll(ctx context.Context, vectorStoreID string, uploads []FileUpload) ([]*openai.File, error) {
	results := make([]*openai.File, len(uploads))

	// Plain group: every upload is attempted to completion and the first
	// error surfaces after the whole batch settles.
	var g errgroup.Group
	for i, upload := range uploads {
		g.Go(func() error {
			file, err := s.uploadAndAttach(ctx, vectorStoreID, upload)
			if err != nil {
				return err
			}
			results[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *fileSearchService) uploadAndAttach(ctx context.Context, vectorStoreID string, upload FileUpload) (*openai.File, error) {
	file, err := s.client.UploadFile(ctx, upload.Filename, upload.Content)
	if err != nil {
		return nil, err
	}

	if _, err := s.client.CreateVectorStoreFile(ctx, vectorStoreID, file.ID); err != nil {
		return nil, err
	}

	if err := s.waitForIndexing(ctx, vectorStoreID, file.ID); err != nil {
		return nil, err
	}

	s.fileInfoCache.Save(file)
	s.notifyIngested(ctx, vectorStoreID, file)

	return file, nil
}

// waitForIndexing polls until the file reaches the completed status. The
// first check is immediate; subsequent checks wait the poll interval. There
// is no deadline of its own, cancellation comes from ctx.
func (s *fileSearchService) waitForIndexing(ctx context.Context, vectorStoreID, fileID string) error {
	firstPoll := true
	for {
		if !firstPoll {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.pollInterval):
			}
		}
		firstPoll = false

		vsFile, err := s.client.RetrieveVectorStoreFile(ctx, vectorStoreID, fileID)
		if err != nil {
			return err
		}
		if vsFile.Status == openai.VectorStoreFileStatusCompleted {
			return nil
		}
	}
}

func (s *fileSearchService) notifyIngested(ctx context.Context, vectorStoreID string, file *openai.File) {
	msg := dto.FileIngestedMessage{
		FileId:        file.ID,
		VectorStoreId: vectorStoreID,
		Filename:      file.Filename,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("filesearch", "Failed to marshal ingestion message", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Error("filesearch", "Failed to publish ingestion message", map[string]interface{}{"error": err.Error()})
	}

	if s.eventPublisher != nil {
		evt := events.NewBaseEvent("FILE_INGESTED", map[string]interface{}{
			"file_id":         file.ID,
			"vector_store_id": vectorStoreID,
			"filename":        file.Filename,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("filesearch", "Failed to publish NATS event", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *fileSearchService) ListFiles(ctx context.Context, vectorStoreID string) ([]*openai.File, error) {
	vsFiles, err := s.client.ListVectorStoreFiles(ctx, vectorStoreID, 100)
	if err != nil {
		return nil, err
	}

	results := make([]*openai.File, len(vsFiles))
	var g errgroup.Group
	for i, vsFile := range vsFiles {
		g.Go(func() error {
			if cached, ok := s.fileInfoCache.Get(vsFile.ID); ok {
				results[i] = cached
				return nil
			}
			info, err := s.client.RetrieveFile(ctx, vsFile.ID)
			if err != nil {
				return err
			}
			s.fileInfoCache.Save(info)
			results[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *fileSearchService) RemoveFile(ctx context.Context, vectorStoreID, fileID string) error {
	if err := s.client.DeleteVectorStoreFile(ctx, vectorStoreID, fileID); err != nil {
		return err
	}
	if err := s.client.DeleteFile(ctx, fileID); err != nil {
		return err
	}
	s.fileInfoCache.Delete(fileID)
	return nil
}

func (s *fileSearchService) CreateVectorStore(ctx context.Context, name string) (string, error) {
	store, err := s.client.CreateVectorStore(ctx, name)
	if err != nil {
		return "", err
	}
	return store.ID, nil
}

func (s *fileSearchService) DeleteVectorStore(ctx context.Context, vectorStoreID string) error {
	return s.client.DeleteVectorStore(ctx, vectorStoreID)
}

// EnsureSharedVectorStore finds the process-wide shared vector store by name,
// creating it when absent. The shared store is assumed to be among the first
// ten stores ever created.
func EnsureSharedVectorStore(ctx context.Context, client VectorFileClient, name string) (string, error) {
	stores, err := client.ListVectorStores(ctx, 10, "asc")
	if err != nil {
		return "", err
	}
	for _, store := range stores {
		if store.Name == name {
			return store.ID, nil
		}
	}

	store, err := client.CreateVectorStore(ctx, name)
	if err != nil {
		return "", err
	}
	return store.ID, nil
}
