package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ai-docauthor-be/internal/apperror"
	"ai-docauthor-be/internal/entity"
	"ai-docauthor-be/internal/mapper"
	"ai-docauthor-be/internal/model"
	"ai-docauthor-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProjectMapper
}

func NewProjectRepository(db *gorm.DB) contract.ProjectRepository {
	return &ProjectRepositoryImpl{
		db:     db,
		mapper: mapper.NewProjectMapper(),
	}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *entity.Project) error {
	m, err := r.mapper.ToModel(project)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	project.Id = m.Id
	project.CreatedAt = m.CreatedAt
	return nil
}

func (r *ProjectRepositoryImpl) List(ctx context.Context) ([]contract.ProjectListItem, error) {
	var models []*model.Project
	if err := r.db.WithContext(ctx).Select("id", "name").Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	items := make([]contract.ProjectListItem, 0, len(models))
	for _, m := range models {
		items = append(items, contract.ProjectListItem{Id: m.Id, Name: m.Name})
	}
	return items, nil
}

func (r *ProjectRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID, fields ...contract.ProjectField) (*entity.Project, error) {
	query := r.db.WithContext(ctx)

	withSections := len(fields) == 0
	if len(fields) > 0 {
		columns := []string{"id"}
		for _, f := range fields {
			if f == contract.ProjectFieldSections {
				withSections = true
				continue
			}
			columns = append(columns, string(f))
		}
		query = query.Select(columns)
	}
	if withSections {
		query = query.Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	}

	var m model.Project
	if err := query.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *ProjectRepositoryImpl) UpdateInfo(ctx context.Context, id uuid.UUID, update contract.ProjectInfoUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Project
		if err := tx.Select("id").First(&m, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewProjectNotFound(id.String())
			}
			return err
		}

		updates := map[string]interface{}{}
		if update.Name != nil {
			updates["name"] = *update.Name
		}
		if update.Context != nil {
			updates["context"] = *update.Context
		}
		if update.SectionOrder != nil {
			if err := validateSectionOrder(tx, id, *update.SectionOrder); err != nil {
				return err
			}
			order, err := mapper.MarshalSectionOrder(*update.SectionOrder)
			if err != nil {
				return err
			}
			updates["section_order"] = order
		}
		if len(updates) == 0 {
			return nil
		}

		return tx.Model(&model.Project{}).Where("id = ?", id).Updates(updates).Error
	})
}

// validateSectionOrder enforces that order is a permutation of the project's
// current section ids. The malformed state is rejected at write time instead
// of surfacing lazily at the next ordering resolution.
func validateSectionOrder(tx *gorm.DB, projectID uuid.UUID, order []uuid.UUID) error {
	var sections []*model.Section
	if err := tx.Select("id").Where("project_id = ?", projectID).Find(&sections).Error; err != nil {
		return err
	}

	if len(order) != len(sections) {
		return apperror.NewInvalidInput(
			fmt.Sprintf("a permutation of the %d section ids of project %s", len(sections), projectID),
			fmt.Sprintf("%d ids", len(order)),
		)
	}

	seen := make(map[uuid.UUID]bool, len(order))
	for _, sectionID := range order {
		if seen[sectionID] {
			return apperror.NewInvalidInput(
				fmt.Sprintf("a permutation of the section ids of project %s", projectID),
				fmt.Sprintf("duplicated id %s", sectionID),
			)
		}
		seen[sectionID] = true
	}
	for _, section := range sections {
		if !seen[section.Id] {
			return apperror.NewInvalidInput(
				fmt.Sprintf("a permutation of the section ids of project %s", projectID),
				fmt.Sprintf("missing id %s", section.Id),
			)
		}
	}
	return nil
}

func (r *ProjectRepositoryImpl) UpdateLastResponseID(ctx context.Context, id uuid.UUID, responseID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ?", id).
		Update("last_response_id", responseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewProjectNotFound(id.String())
	}
	return nil
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.Section{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NewProjectNotFound(id.String())
		}
		return nil
	})
}

func (r *ProjectRepositoryImpl) CreateSection(ctx context.Context, projectID uuid.UUID, section *entity.Section) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := loadProjectOrder(tx, projectID)
		if err != nil {
			return err
		}

		section.ProjectId = projectID
		m, err := r.mapper.SectionToModel(section)
		if err != nil {
			return err
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		section.Id = m.Id
		section.CreatedAt = m.CreatedAt

		var order []uuid.UUID
		if err := json.Unmarshal(project.SectionOrder, &order); err != nil {
			return fmt.Errorf("unmarshal section order of project %s: %w", projectID, err)
		}
		order = append(order, m.Id)

		return saveSectionOrder(tx, projectID, order)
	})
}

func (r *ProjectRepositoryImpl) UpdateSection(ctx context.Context, projectID, sectionID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadProjectOrder(tx, projectID); err != nil {
			return err
		}

		result := tx.Model(&model.Section{}).
			Where("id = ? AND project_id = ?", sectionID, projectID).
			Update("name", name)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NewSectionNotFound(projectID.String(), sectionID.String())
		}
		return nil
	})
}

func (r *ProjectRepositoryImpl) AddSectionMessage(ctx context.Context, projectID, sectionID uuid.UUID, message entity.HistoryMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadProjectOrder(tx, projectID); err != nil {
			return err
		}

		var section model.Section
		if err := tx.First(&section, "id = ? AND project_id = ?", sectionID, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewSectionNotFound(projectID.String(), sectionID.String())
			}
			return err
		}

		var history []entity.HistoryMessage
		if len(section.History) > 0 {
			if err := json.Unmarshal(section.History, &history); err != nil {
				return fmt.Errorf("unmarshal history of section %s: %w", sectionID, err)
			}
		}
		history = append(history, message)

		data, err := mapper.MarshalHistory(history)
		if err != nil {
			return err
		}
		return tx.Model(&model.Section{}).Where("id = ?", sectionID).Update("history", data).Error
	})
}

// DeleteSection removes the section row and its order entry, or neither. Both
// a missing project and a missing section/order entry surface as a
// project-not-found condition.
func (r *ProjectRepositoryImpl) DeleteSection(ctx context.Context, projectID, sectionID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := loadProjectOrder(tx, projectID)
		if err != nil {
			return err
		}

		result := tx.Delete(&model.Section{}, "id = ? AND project_id = ?", sectionID, projectID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NewProjectNotFound(projectID.String())
		}

		var order []uuid.UUID
		if err := json.Unmarshal(project.SectionOrder, &order); err != nil {
			return fmt.Errorf("unmarshal section order of project %s: %w", projectID, err)
		}

		kept := make([]uuid.UUID, 0, len(order))
		removed := false
		for _, id := range order {
			if id == sectionID {
				removed = true
				continue
			}
			kept = append(kept, id)
		}
		if !removed {
			return apperror.NewProjectNotFound(projectID.String())
		}

		return saveSectionOrder(tx, projectID, kept)
	})
}

func loadProjectOrder(tx *gorm.DB, projectID uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := tx.Select("id", "section_order").First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewProjectNotFound(projectID.String())
		}
		return nil, err
	}
	return &project, nil
}

func saveSectionOrder(tx *gorm.DB, projectID uuid.UUID, order []uuid.UUID) error {
	data, err := mapper.MarshalSectionOrder(order)
	if err != nil {
		return err
	}
	return tx.Model(&model.Project{}).Where("id = ?", projectID).Update("section_order", data).Error
}
