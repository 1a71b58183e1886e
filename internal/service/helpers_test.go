package service

import (
	"context"
	"time"

	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/repository/memory"

	"github.com/google/uuid"
)

// nopLogger satisfies logger.ILogger for tests.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestProject(t interface{ Fatalf(string, ...interface{}) }, factory *memory.RepositoryFactory, name, context_ string) *entity.Project {
	project := &entity.Project{
		Id:            uuid.New(),
		Name:          name,
		Context:       context_,
		VectorStoreId: "vs_" + name,
		SectionOrder:  []uuid.UUID{},
		CreatedAt:     time.Now(),
	}
	if err := factory.Projects.Create(context.Background(), project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	conversation := &entity.Conversation{
		Id:          uuid.New(),
		ProjectId:   project.Id,
		ProjectName: name,
		CreatedAt:   time.Now(),
	}
	if err := factory.Conversations.Create(context.Background(), conversation); err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	return project
}

func newTestSection(t interface{ Fatalf(string, ...interface{}) }, factory *memory.RepositoryFactory, projectID uuid.UUID, name string) *entity.Section {
	section := &entity.Section{
		Id:      uuid.New(),
		Name:    name,
		History: []entity.HistoryMessage{},
	}
	if err := factory.Projects.CreateSection(context.Background(), projectID, section); err != nil {
		t.Fatalf("create section: %v", err)
	}
	return section
}
