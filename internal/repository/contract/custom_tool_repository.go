package contract

import (
	"context"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CustomToolRepository interface {
	Create(ctx context.Context, tool *entity.CustomTool) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomTool, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CustomTool, error)
}
