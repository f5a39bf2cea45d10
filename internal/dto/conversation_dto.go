package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConversationListItemResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Persona   string     `json:"tool"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ConversationDetailResponse struct {
	Id       uuid.UUID    `json:"id"`
	Title    string       `json:"title"`
	Persona  string       `json:"tool"`
	Messages []MessageDTO `json:"messages"`
}
