package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/model"

	"github.com/google/uuid"
)

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) ToEntity(p *model.Project) (*entity.Project, error) {
	if p == nil {
		return nil, nil
	}

	var order []uuid.UUID
	if len(p.SectionOrder) > 0 {
		if err := json.Unmarshal(p.SectionOrder, &order); err != nil {
			return nil, fmt.Errorf("unmarshal section order of project %s: %w", p.Id, err)
		}
	}

	sections := make([]*entity.Section, 0, len(p.Sections))
	for i := range p.Sections {
		section, err := m.SectionToEntity(&p.Sections[i])
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Project{
		Id:             p.Id,
		Name:           p.Name,
		Context:        p.Context,
		VectorStoreId:  p.VectorStoreId,
		LastResponseId: p.LastResponseId,
		Sections:       sections,
		SectionOrder:   order,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAt,
	}, nil
}

func (m *ProjectMapper) ToModel(p *entity.Project) (*model.Project, error) {
	if p == nil {
		return nil, nil
	}

	order, err := MarshalSectionOrder(p.SectionOrder)
	if err != nil {
		return nil, err
	}

	sections := make([]model.Section, 0, len(p.Sections))
	for _, section := range p.Sections {
		sm, err := m.SectionToModel(section)
		if err != nil {
			return nil, err
		}
		sections = append(sections, *sm)
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Project{
		Id:             p.Id,
		Name:           p.Name,
		Context:        p.Context,
		VectorStoreId:  p.VectorStoreId,
		LastResponseId: p.LastResponseId,
		SectionOrder:   order,
		Sections:       sections,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      updatedAt,
	}, nil
}

func (m *ProjectMapper) SectionToEntity(s *model.Section) (*entity.Section, error) {
	if s == nil {
		return nil, nil
	}

	var history []entity.HistoryMessage
	if len(s.History) > 0 {
		if err := json.Unmarshal(s.History, &history); err != nil {
			return nil, fmt.Errorf("unmarshal history of section %s: %w", s.Id, err)
		}
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Section{
		Id:        s.Id,
		ProjectId: s.ProjectId,
		Name:      s.Name,
		History:   history,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}, nil
}

func (m *ProjectMapper) SectionToModel(s *entity.Section) (*model.Section, error) {
	if s == nil {
		return nil, nil
	}

	history, err := MarshalHistory(s.History)
	if err != nil {
		return nil, fmt.Errorf("marshal history of section %s: %w", s.Id, err)
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Section{
		Id:        s.Id,
		ProjectId: s.ProjectId,
		Name:      s.Name,
		History:   history,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}, nil
}

func MarshalSectionOrder(order []uuid.UUID) ([]byte, error) {
	if order == nil {
		order = []uuid.UUID{}
	}
	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal section order: %w", err)
	}
	return data, nil
}

func MarshalHistory(history []entity.HistoryMessage) ([]byte, error) {
	if history == nil {
		history = []entity.HistoryMessage{}
	}
	return json.Marshal(history)
}
