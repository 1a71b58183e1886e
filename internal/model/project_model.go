package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Project struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string         `gorm:"type:varchar(255);not null"`
	Context        string         `gorm:"type:text;not null"`
	VectorStoreId  string         `gorm:"type:varchar(64);not null"`
	LastResponseId *string        `gorm:"type:varchar(128)"`
	SectionOrder   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	Sections       []Section      `gorm:"foreignKey:ProjectId"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}
