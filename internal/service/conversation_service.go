package service

import (
	"context"
	"errors"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/internal/repository/specification"
	"persona-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IConversationService interface {
	ListConversations(ctx context.Context, userId uuid.UUID) ([]dto.ConversationListItemResponse, error)
	GetConversation(ctx context.Context, userId, conversationId uuid.UUID) (*entity.Conversation, error)
	DeleteConversation(ctx context.Context, userId, conversationId uuid.UUID) error
	SaveConversation(ctx context.Context, conversation *entity.Conversation) error
}

type conversationService struct {
	uowFactory      unitofwork.RepositoryFactory
	activityService IActivityService
	logger          logger.ILogger
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	activityService IActivityService,
	sysLogger logger.ILogger,
) IConversationService {
	return &conversationService{
		uowFactory:      uowFactory,
		activityService: activityService,
		logger:          sysLogger,
	}
}

// DeriveTitle computes a conversation title from its first message:
// first 50 characters of the text, ellipsis when longer. Falls back to
// a fixed default when no usable text exists.
func DeriveTitle(conversation *entity.Conversation) string {
	if conversation.Title != "" {
		return conversation.Title
	}
	if len(conversation.Messages) == 0 {
		return constant.DefaultConversationTitle
	}
	text := conversation.Messages[0].Content.PlainText()
	if text == "" {
		return constant.DefaultConversationTitle
	}
	if r := []rune(text); len(r) > constant.ConversationTitleLimit {
		return string(r[:constant.ConversationTitleLimit]) + "..."
	}
	return text
}

func (s *conversationService) ListConversations(ctx context.Context, userId uuid.UUID) ([]dto.ConversationListItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: constant.ConversationListLimit},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ConversationListItemResponse, 0, len(conversations))
	for _, c := range conversations {
		items = append(items, dto.ConversationListItemResponse{
			Id:        c.Id,
			Title:     DeriveTitle(c),
			Persona:   c.Persona,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return items, nil
}

func (s *conversationService) GetConversation(ctx context.Context, userId, conversationId uuid.UUID) (*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, errors.New("conversation not found")
	}
	return conversation, nil
}

func (s *conversationService) DeleteConversation(ctx context.Context, userId, conversationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if conversation == nil {
		return errors.New("conversation not found")
	}

	if err := uow.ConversationRepository().Delete(ctx, conversationId); err != nil {
		return err
	}

	s.activityService.Track(userId, constant.ActivityConversationDeleted, map[string]interface{}{
		"conversation_id": conversationId.String(),
	})
	return nil
}

// SaveConversation creates the record on first save and updates it in
// place afterwards. The title is derived at save time when unset.
func (s *conversationService) SaveConversation(ctx context.Context, conversation *entity.Conversation) error {
	conversation.Title = DeriveTitle(conversation)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ConversationRepository()

	if conversation.Id == uuid.Nil {
		conversation.Id = uuid.New()
		if err := repo.Create(ctx, conversation); err != nil {
			return err
		}
	} else {
		existing, err := repo.FindOne(ctx, specification.ByID{ID: conversation.Id})
		if err != nil {
			return err
		}
		if existing == nil {
			if err := repo.Create(ctx, conversation); err != nil {
				return err
			}
		} else {
			conversation.CreatedAt = existing.CreatedAt
			if err := repo.Update(ctx, conversation); err != nil {
				return err
			}
		}
	}

	s.activityService.Track(conversation.UserId, constant.ActivityConversationSaved, map[string]interface{}{
		"conversation_id": conversation.Id.String(),
		"message_count":   len(conversation.Messages),
	})
	return nil
}
