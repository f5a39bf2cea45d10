package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserActivity struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Kind      string         `gorm:"type:varchar(100);not null;index"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}
