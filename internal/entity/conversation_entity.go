package entity

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Messages  []Message
	Persona   string
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
