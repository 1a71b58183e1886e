package service

import (
	"context"
	"strings"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/repository/contract"
	"ai-docauthor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// DocumentConverter renders markdown into a binary document format.
// Satisfied by *docconv.Converter.
type DocumentConverter interface {
	MarkdownToDocx(ctx context.Context, markdown, filename string) ([]byte, error)
}

type IExporterService interface {
	// ExportToMarkdown renders the project as one ordered markdown document.
	// Every section must have at least one history entry; export is
	// all-or-nothing.
	ExportToMarkdown(ctx context.Context, projectID uuid.UUID) (string, error)

	ExportToDocument(ctx context.Context, projectID uuid.UUID) ([]byte, error)
}

type exporterService struct {
	uowFactory unitofwork.RepositoryFactory
	converter  DocumentConverter
}

func NewExporterService(uowFactory unitofwork.RepositoryFactory, converter DocumentConverter) IExporterService {
	return &exporterService{
		uowFactory: uowFactory,
		converter:  converter,
	}
}

func (s *exporterService) ExportToMarkdown(ctx context.Context, projectID uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindByID(ctx, projectID,
		contract.ProjectFieldName, contract.ProjectFieldSectionOrder, contract.ProjectFieldSections)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", apperror.NewProjectNotFound(projectID.String())
	}

	ordered, err := OrderSections(projectID, project.Sections, project.SectionOrder)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# " + project.Name + "\n\n---\n")
	for _, section := range ordered {
		if !section.Completed() {
			return "", apperror.NewSectionUncompleted(projectID.String(), section.Id.String())
		}
		b.WriteString("\n## " + section.Name + "\n\n" + section.CurrentContent() + "\n")
	}

	return b.String(), nil
}

func (s *exporterService) ExportToDocument(ctx context.Context, projectID uuid.UUID) ([]byte, error) {
	markdown, err := s.ExportToMarkdown(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.converter.MarkdownToDocx(ctx, markdown, projectID.String()+".docx")
}
