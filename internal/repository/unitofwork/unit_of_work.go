package unitofwork

import (
	"context"

	"persona-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ConversationRepository() contract.ConversationRepository
	CustomToolRepository() contract.CustomToolRepository
	UserActivityRepository() contract.UserActivityRepository
}
