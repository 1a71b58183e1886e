package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MessageExchange rows form the append-only conversation log. Seq preserves
// append order independently of clock resolution.
type MessageExchange struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Seq            int64          `gorm:"not null"`
	UserPrompt     datatypes.JSON `gorm:"type:jsonb;not null"`
	AIResponse     datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (MessageExchange) TableName() string {
	return "message_exchanges"
}
