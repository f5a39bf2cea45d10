package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CustomTool struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Prompt       string         `gorm:"type:text;not null"`
	TrainingDocs datatypes.JSON `gorm:"type:jsonb"`
	LogoURL      string         `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (CustomTool) TableName() string {
	return "custom_tools"
}
