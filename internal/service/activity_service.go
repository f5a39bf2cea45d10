package service

import (
	"context"
	"encoding/json"
	"time"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/internal/repository/unitofwork"
	"persona-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IActivityService records user activity through the in-process event
// bus. Tracking is fire-and-forget: a failed publish or a failed write
// is logged and swallowed, never surfaced to the caller.
type IActivityService interface {
	Track(userId uuid.UUID, kind string, metadata map[string]interface{})
	Consume(ctx context.Context) error
}

type activityPayload struct {
	UserId   uuid.UUID              `json:"user_id"`
	Kind     string                 `json:"kind"`
	Metadata map[string]interface{} `json:"metadata"`
}

type activityService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewActivityService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	sysLogger logger.ILogger,
) IActivityService {
	return &activityService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     sysLogger,
	}
}

func (s *activityService) Track(userId uuid.UUID, kind string, metadata map[string]interface{}) {
	event := events.BaseEvent{
		Type:       kind,
		Data:       metadata,
		OccurredAt: time.Now(),
	}

	payload, err := json.Marshal(activityPayload{
		UserId:   userId,
		Kind:     event.EventType(),
		Metadata: event.Payload(),
	})
	if err != nil {
		s.logger.Warn("activity", "Failed to marshal activity event", map[string]interface{}{"error": err.Error(), "kind": kind})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.logger.Warn("activity", "Failed to publish activity event", map[string]interface{}{"error": err.Error(), "kind": kind})
	}
}

func (s *activityService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *activityService) processMessage(ctx context.Context, msg *message.Message) {
	var payload activityPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("activity", "Failed to unmarshal activity message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payload will never become valid, do not retry
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	activity := &entity.UserActivity{
		Id:        uuid.New(),
		UserId:    payload.UserId,
		Kind:      payload.Kind,
		Metadata:  payload.Metadata,
		CreatedAt: time.Now(),
	}

	if err := uow.UserActivityRepository().Create(ctx, activity); err != nil {
		// Best-effort by contract: log and drop.
		s.logger.Warn("activity", "Failed to persist activity", map[string]interface{}{"error": err.Error(), "kind": payload.Kind})
	}
	msg.Ack()
}
