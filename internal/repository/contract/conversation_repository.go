package contract

import (
	"context"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
