package mapper

import (
	"encoding/json"
	"time"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) (*entity.Conversation, error) {
	if c == nil {
		return nil, nil
	}

	var messages []entity.Message
	if len(c.Messages) > 0 {
		if err := json.Unmarshal(c.Messages, &messages); err != nil {
			return nil, err
		}
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Conversation{
		Id:        c.Id,
		UserId:    c.UserId,
		Messages:  messages,
		Persona:   c.Persona,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: c.DeletedAt.Valid,
	}, nil
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) (*model.Conversation, error) {
	if c == nil {
		return nil, nil
	}

	messages := c.Messages
	if messages == nil {
		messages = []entity.Message{}
	}
	raw, err := json.Marshal(messages)
	if err != nil {
		return nil, err
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Conversation{
		Id:        c.Id,
		UserId:    c.UserId,
		Messages:  datatypes.JSON(raw),
		Persona:   c.Persona,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}, nil
}
