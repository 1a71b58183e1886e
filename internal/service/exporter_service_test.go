package service

import (
	"context"
	"testing"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/repository/contract"
	"ai-docauthor-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeConverter struct {
	lastMarkdown string
	lastFilename string
}

func (f *fakeConverter) MarkdownToDocx(_ context.Context, markdown, filename string) ([]byte, error) {
	f.lastMarkdown = markdown
	f.lastFilename = filename
	return []byte("DOCX:" + markdown), nil
}

func TestExportToMarkdown(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	project := newTestProject(t, factory, "P1", "ctx")
	section := newTestSection(t, factory, project.Id, "S1")

	ctx := context.Background()
	assert.NoError(t, factory.Projects.AddSectionMessage(ctx, project.Id, section.Id, entity.HistoryMessage{Content: "Q", Type: entity.HistoryMessageRequest}))
	assert.NoError(t, factory.Projects.AddSectionMessage(ctx, project.Id, section.Id, entity.HistoryMessage{Content: "A", Type: entity.HistoryMessageResponse}))

	exporter := NewExporterService(factory, &fakeConverter{})

	markdown, err := exporter.ExportToMarkdown(ctx, project.Id)
	assert.NoError(t, err)
	assert.Equal(t, "# P1\n\n---\n\n## S1\n\nA\n", markdown)
}

func TestExportToMarkdownFollowsSectionOrder(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	project := newTestProject(t, factory, "Doc", "ctx")
	s1 := newTestSection(t, factory, project.Id, "Intro")
	s2 := newTestSection(t, factory, project.Id, "Body")

	ctx := context.Background()
	assert.NoError(t, factory.Projects.AddSectionMessage(ctx, project.Id, s1.Id, entity.HistoryMessage{Content: "intro text", Type: entity.HistoryMessageResponse}))
	assert.NoError(t, factory.Projects.AddSectionMessage(ctx, project.Id, s2.Id, entity.HistoryMessage{Content: "body text", Type: entity.HistoryMessageResponse}))

	// Reverse the display order; the export must follow it.
	reversed := []uuid.UUID{s2.Id, s1.Id}
	assert.NoError(t, factory.Projects.UpdateInfo(ctx, project.Id, contract.ProjectInfoUpdate{SectionOrder: &reversed}))

	exporter := NewExporterService(factory, &fakeConverter{})
	markdown, err := exporter.ExportToMarkdown(ctx, project.Id)
	assert.NoError(t, err)
	assert.Equal(t, "# Doc\n\n---\n\n## Body\n\nbody text\n\n## Intro\n\nintro text\n", markdown)
}

func TestExportToMarkdownUncompletedSection(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	project := newTestProject(t, factory, "P1", "ctx")
	s1 := newTestSection(t, factory, project.Id, "Done")
	newTestSection(t, factory, project.Id, "Empty")

	ctx := context.Background()
	assert.NoError(t, factory.Projects.AddSectionMessage(ctx, project.Id, s1.Id, entity.HistoryMessage{Content: "text", Type: entity.HistoryMessageResponse}))

	exporter := NewExporterService(factory, &fakeConverter{})
	_, err := exporter.ExportToMarkdown(ctx, project.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindSectionUncompleted))
}

func TestExportToMarkdownProjectNotFound(t *testing.T) {
	exporter := NewExporterService(memory.NewRepositoryFactory(), &fakeConverter{})
	_, err := exporter.ExportToMarkdown(context.Background(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindProjectNotFound))
}

func TestExportToDocument(t *testing.T) {
	factory := memory.NewRepositoryFactory()
	project := newTestProject(t, factory, "P1", "ctx")
	section := newTestSection(t, factory, project.Id, "S1")

	ctx := context.Background()
	assert.NoError(t, factory.Projects.AddSectionMessage(ctx, project.Id, section.Id, entity.HistoryMessage{Content: "A", Type: entity.HistoryMessageResponse}))

	converter := &fakeConverter{}
	exporter := NewExporterService(factory, converter)

	document, err := exporter.ExportToDocument(ctx, project.Id)
	assert.NoError(t, err)
	assert.Equal(t, "DOCX:# P1\n\n---\n\n## S1\n\nA\n", string(document))
	assert.Equal(t, project.Id.String()+".docx", converter.lastFilename)
}
