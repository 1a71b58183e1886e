package service

import (
	"context"
	"strings"
	"testing"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/constant"
	"ai-docauthor-be/internal/dto"
	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/repository/memory"
	"ai-docauthor-be/pkg/openai"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeAIService records prompts and replays a canned result.
type fakeAIService struct {
	prompts []ConversationPrompt
	output  string
	err     error
}

func (f *fakeAIService) SendMessage(_ context.Context, _ uuid.UUID, prompt ConversationPrompt) (*entity.AIResponse, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return &entity.AIResponse{Id: "resp_fake", Status: "completed", OutputText: f.output}, nil
}

// fakeFileSearch stubs the vector-store lifecycle.
type fakeFileSearch struct {
	created []string
	deleted []string
}

func (f *fakeFileSearch) UploadAll(context.Context, string, []FileUpload) ([]*openai.File, error) {
	return nil, nil
}
func (f *fakeFileSearch) ListFiles(context.Context, string) ([]*openai.File, error) { return nil, nil }
func (f *fakeFileSearch) RemoveFile(context.Context, string, string) error          { return nil }
func (f *fakeFileSearch) CreateVectorStore(_ context.Context, name string) (string, error) {
	f.created = append(f.created, name)
	return "vs_" + name, nil
}
func (f *fakeFileSearch) DeleteVectorStore(_ context.Context, vectorStoreID string) error {
	f.deleted = append(f.deleted, vectorStoreID)
	return nil
}

func TestProjectCreatePrimesConversation(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	ai := &fakeAIService{output: "ack"}
	files := &fakeFileSearch{}
	svc := NewProjectService(factory, ai, files, "gpt-test", nopLogger{})

	ctx := context.Background()
	resp, err := svc.Create(ctx, &dto.CreateProjectRequest{Name: "P1", Context: "a research memo"})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.Id)

	assert.Equal(t, []string{"P1"}, files.created)

	project, err := factory.Projects.FindByID(ctx, resp.Id)
	assert.NoError(t, err)
	assert.Equal(t, "vs_P1", project.VectorStoreId)
	assert.Empty(t, project.SectionOrder)

	conversation, err := factory.Conversations.FindByProjectID(ctx, resp.Id)
	assert.NoError(t, err)
	assert.NotNil(t, conversation)

	// The first turn carries the project context plus the developer briefing.
	assert.Len(t, ai.prompts, 1)
	assert.Equal(t, constant.ProjectContextPrefixPrompt+"a research memo", ai.prompts[0].UserText)
	assert.NotNil(t, ai.prompts[0].DeveloperText)
	assert.Equal(t, constant.ProjectDeveloperText, *ai.prompts[0].DeveloperText)
}

func TestProjectShowOrdersSections(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	project := newTestProject(t, factory, "P1", "ctx")
	s1 := newTestSection(t, factory, project.Id, "First")
	s2 := newTestSection(t, factory, project.Id, "Second")

	svc := NewProjectService(factory, &fakeAIService{}, &fakeFileSearch{}, "gpt-test", nopLogger{})
	ctx := context.Background()

	reversed := []uuid.UUID{s2.Id, s1.Id}
	assert.NoError(t, svc.UpdateInfo(ctx, project.Id, &dto.UpdateProjectInfoRequest{SectionOrder: &reversed}))

	shown, err := svc.Show(ctx, project.Id)
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{s2.Id, s1.Id}, shown.SectionOrder)
	assert.Len(t, shown.Sections, 2)
	assert.Equal(t, "Second", shown.Sections[0].Name)
	assert.Equal(t, "First", shown.Sections[1].Name)
}

func TestProjectUpdateInfoRejectsBadPermutation(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	project := newTestProject(t, factory, "P1", "ctx")
	s1 := newTestSection(t, factory, project.Id, "Only")

	svc := NewProjectService(factory, &fakeAIService{}, &fakeFileSearch{}, "gpt-test", nopLogger{})
	ctx := context.Background()

	tests := []struct {
		name  string
		order []uuid.UUID
	}{
		{"wrong length", []uuid.UUID{}},
		{"unknown id", []uuid.UUID{uuid.New()}},
		{"duplicated id", []uuid.UUID{s1.Id, s1.Id}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := tt.order
			err := svc.UpdateInfo(ctx, project.Id, &dto.UpdateProjectInfoRequest{SectionOrder: &order})
			assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput), "got %v", err)
		})
	}
}

func TestProjectDeleteRemovesConversationAndStore(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	project := newTestProject(t, factory, "P1", "ctx")

	files := &fakeFileSearch{}
	svc := NewProjectService(factory, &fakeAIService{}, files, "gpt-test", nopLogger{})
	ctx := context.Background()

	assert.NoError(t, svc.Delete(ctx, project.Id))

	gone, err := factory.Projects.FindByID(ctx, project.Id)
	assert.NoError(t, err)
	assert.Nil(t, gone)

	conversation, err := factory.Conversations.FindByProjectID(ctx, project.Id)
	assert.NoError(t, err)
	assert.Nil(t, conversation)

	assert.Equal(t, []string{project.VectorStoreId}, files.deleted)

	err = svc.Delete(ctx, project.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindProjectNotFound))
}

func TestProjectGetVectorStoreID(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	project := newTestProject(t, factory, "P1", "ctx")

	svc := NewProjectService(factory, &fakeAIService{}, &fakeFileSearch{}, "gpt-test", nopLogger{})

	id, err := svc.GetVectorStoreID(context.Background(), project.Id)
	assert.NoError(t, err)
	assert.Equal(t, project.VectorStoreId, id)

	_, err = svc.GetVectorStoreID(context.Background(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindProjectNotFound))
}

func TestOrderSections(t *testing.T) {
	a := &entity.Section{Id: uuid.New(), Name: "A"}
	b := &entity.Section{Id: uuid.New(), Name: "B"}
	c := &entity.Section{Id: uuid.New(), Name: "C"}
	projectID := uuid.New()

	tests := []struct {
		name     string
		sections []*entity.Section
		order    []uuid.UUID
		want     []string
		wantErr  bool
	}{
		{
			name:     "reorders by explicit positions",
			sections: []*entity.Section{a, b, c},
			order:    []uuid.UUID{c.Id, a.Id, b.Id},
			want:     []string{"C", "A", "B"},
		},
		{
			name:     "identity order",
			sections: []*entity.Section{a, b},
			order:    []uuid.UUID{a.Id, b.Id},
			want:     []string{"A", "B"},
		},
		{
			name:     "empty",
			sections: nil,
			order:    nil,
			want:     []string{},
		},
		{
			name:     "section missing from order fails",
			sections: []*entity.Section{a, b},
			order:    []uuid.UUID{a.Id},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ordered, err := OrderSections(projectID, tt.sections, tt.order)
			if tt.wantErr {
				if !apperror.IsKind(err, apperror.KindSectionNotFound) {
					t.Fatalf("expected section-not-found, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			names := make([]string, 0, len(ordered))
			for _, section := range ordered {
				names = append(names, section.Name)
			}
			if strings.Join(names, ",") != strings.Join(tt.want, ",") {
				t.Errorf("order = %v, want %v", names, tt.want)
			}
		})
	}
}
