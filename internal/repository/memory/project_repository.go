package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/repository/contract"

	"github.com/google/uuid"
)

// ProjectRepository is an in-memory implementation of the project store with
// the same error semantics as the gorm implementation. It backs unit tests
// and local development without a database.
type ProjectRepository struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*entity.Project
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{
		projects: make(map[uuid.UUID]*entity.Project),
	}
}

func (r *ProjectRepository) Create(_ context.Context, project *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if project.Id == uuid.Nil {
		project.Id = uuid.New()
	}
	project.CreatedAt = time.Now()
	if project.SectionOrder == nil {
		project.SectionOrder = []uuid.UUID{}
	}
	r.projects[project.Id] = cloneProject(project)
	return nil
}

func (r *ProjectRepository) List(_ context.Context) ([]contract.ProjectListItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]contract.ProjectListItem, 0, len(r.projects))
	for _, p := range r.projects {
		items = append(items, contract.ProjectListItem{Id: p.Id, Name: p.Name})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (r *ProjectRepository) FindByID(_ context.Context, id uuid.UUID, _ ...contract.ProjectField) (*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	// Field projection is an optimization of the gorm implementation; the
	// fake always returns the full aggregate.
	return cloneProject(p), nil
}

func (r *ProjectRepository) UpdateInfo(_ context.Context, id uuid.UUID, update contract.ProjectInfoUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return apperror.NewProjectNotFound(id.String())
	}
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.Context != nil {
		p.Context = *update.Context
	}
	if update.SectionOrder != nil {
		if err := validateOrderPermutation(p, *update.SectionOrder); err != nil {
			return err
		}
		p.SectionOrder = append([]uuid.UUID(nil), (*update.SectionOrder)...)
	}
	return nil
}

func validateOrderPermutation(p *entity.Project, order []uuid.UUID) error {
	if len(order) != len(p.Sections) {
		return apperror.NewInvalidInput(
			fmt.Sprintf("a permutation of the %d section ids of project %s", len(p.Sections), p.Id),
			fmt.Sprintf("%d ids", len(order)),
		)
	}
	seen := make(map[uuid.UUID]bool, len(order))
	for _, id := range order {
		if seen[id] {
			return apperror.NewInvalidInput(
				fmt.Sprintf("a permutation of the section ids of project %s", p.Id),
				fmt.Sprintf("duplicated id %s", id),
			)
		}
		seen[id] = true
	}
	for _, section := range p.Sections {
		if !seen[section.Id] {
			return apperror.NewInvalidInput(
				fmt.Sprintf("a permutation of the section ids of project %s", p.Id),
				fmt.Sprintf("missing id %s", section.Id),
			)
		}
	}
	return nil
}

func (r *ProjectRepository) UpdateLastResponseID(_ context.Context, id uuid.UUID, responseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return apperror.NewProjectNotFound(id.String())
	}
	p.LastResponseId = &responseID
	return nil
}

func (r *ProjectRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return apperror.NewProjectNotFound(id.String())
	}
	delete(r.projects, id)
	return nil
}

func (r *ProjectRepository) CreateSection(_ context.Context, projectID uuid.UUID, section *entity.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	if !ok {
		return apperror.NewProjectNotFound(projectID.String())
	}
	if section.Id == uuid.Nil {
		section.Id = uuid.New()
	}
	section.ProjectId = projectID
	section.CreatedAt = time.Now()
	if section.History == nil {
		section.History = []entity.HistoryMessage{}
	}
	p.Sections = append(p.Sections, cloneSection(section))
	p.SectionOrder = append(p.SectionOrder, section.Id)
	return nil
}

func (r *ProjectRepository) UpdateSection(_ context.Context, projectID, sectionID uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	if !ok {
		return apperror.NewProjectNotFound(projectID.String())
	}
	for _, section := range p.Sections {
		if section.Id == sectionID {
			section.Name = name
			return nil
		}
	}
	return apperror.NewSectionNotFound(projectID.String(), sectionID.String())
}

func (r *ProjectRepository) AddSectionMessage(_ context.Context, projectID, sectionID uuid.UUID, message entity.HistoryMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	if !ok {
		return apperror.NewProjectNotFound(projectID.String())
	}
	for _, section := range p.Sections {
		if section.Id == sectionID {
			section.History = append(section.History, message)
			return nil
		}
	}
	return apperror.NewSectionNotFound(projectID.String(), sectionID.String())
}

func (r *ProjectRepository) DeleteSection(_ context.Context, projectID, sectionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[projectID]
	if !ok {
		return apperror.NewProjectNotFound(projectID.String())
	}

	sectionIdx := -1
	for i, section := range p.Sections {
		if section.Id == sectionID {
			sectionIdx = i
			break
		}
	}
	orderIdx := -1
	for i, id := range p.SectionOrder {
		if id == sectionID {
			orderIdx = i
			break
		}
	}
	// Both halves of the pair must exist; otherwise neither changes.
	if sectionIdx == -1 || orderIdx == -1 {
		return apperror.NewProjectNotFound(projectID.String())
	}

	p.Sections = append(p.Sections[:sectionIdx], p.Sections[sectionIdx+1:]...)
	p.SectionOrder = append(p.SectionOrder[:orderIdx], p.SectionOrder[orderIdx+1:]...)
	return nil
}

func cloneProject(p *entity.Project) *entity.Project {
	clone := *p
	clone.SectionOrder = append([]uuid.UUID(nil), p.SectionOrder...)
	clone.Sections = make([]*entity.Section, 0, len(p.Sections))
	for _, section := range p.Sections {
		clone.Sections = append(clone.Sections, cloneSection(section))
	}
	if p.LastResponseId != nil {
		id := *p.LastResponseId
		clone.LastResponseId = &id
	}
	return &clone
}

func cloneSection(s *entity.Section) *entity.Section {
	clone := *s
	clone.History = append([]entity.HistoryMessage(nil), s.History...)
	return &clone
}
