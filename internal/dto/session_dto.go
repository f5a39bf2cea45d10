package dto

import (
	"persona-chat-be/internal/entity"
	"persona-chat-be/pkg/extract"

	"github.com/google/uuid"
)

type SelectPersonaRequest struct {
	PersonaId int `json:"persona_id" validate:"required"`
}

// SendMessageRequest carries the typed text of a turn. Attachments
// arrive alongside as multipart files and are extracted server-side.
type SendMessageRequest struct {
	Text string `json:"text"`
}

type MessageDTO struct {
	Id      int64                 `json:"id"`
	Role    string                `json:"role"`
	Content entity.MessageContent `json:"content"`
	Tool    string                `json:"tool"`
	Files   []entity.FileRef      `json:"files,omitempty"`
}

type PdfRequestDTO struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

type SendMessageResponse struct {
	Sent  *MessageDTO    `json:"sent"`
	Reply *MessageDTO    `json:"reply"`
	Pdf   *PdfRequestDTO `json:"pdf,omitempty"`
}

type SessionStateResponse struct {
	ConversationId   *uuid.UUID               `json:"conversation_id"`
	PersonaId        int                      `json:"persona_id"`
	Messages         []MessageDTO             `json:"messages"`
	Attachments      []extract.FileDescriptor `json:"attachments"`
	AwaitingResponse bool                     `json:"awaiting_response"`
}
