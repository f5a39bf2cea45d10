package contract

import (
	"context"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/repository/specification"
)

type UserActivityRepository interface {
	Create(ctx context.Context, activity *entity.UserActivity) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserActivity, error)
}
