package entity

import (
	"time"

	"persona-chat-be/pkg/extract"

	"github.com/google/uuid"
)

type CustomTool struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Name         string
	Prompt       string
	TrainingDocs []extract.FileDescriptor
	LogoURL      string
	CreatedAt    time.Time
}
