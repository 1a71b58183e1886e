package model

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	ProjectName string            `gorm:"type:varchar(255);not null"`
	Messages    []MessageExchange `gorm:"foreignKey:ConversationId"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}
