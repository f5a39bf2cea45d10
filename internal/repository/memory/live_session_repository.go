package memory

import (
	"time"

	"persona-chat-be/internal/entity"
	"persona-chat-be/pkg/extract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// LiveSession is the active per-user chat session state held in memory
// between requests: the working message list, the selected persona,
// pending attachments and the identity of the persisted conversation
// (nil until the first successful save).
type LiveSession struct {
	UserID           string
	ConversationID   *uuid.UUID
	PersonaID        int
	Messages         []entity.Message
	Attachments      []extract.FileDescriptor
	AwaitingResponse bool

	// Epoch increments on every conversation switch or reset. A stale
	// inference completion carrying an older epoch is dropped instead
	// of being appended to the wrong conversation.
	Epoch int64
}

type LiveSessionRepository struct {
	cache *cache.Cache
}

func NewLiveSessionRepository() *LiveSessionRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes. An
	// idle session simply rebuilds as new on the next request.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &LiveSessionRepository{
		cache: c,
	}
}

func (r *LiveSessionRepository) Save(session *LiveSession) {
	r.cache.Set(session.UserID, session, cache.DefaultExpiration)
}

func (r *LiveSessionRepository) Get(userID string) (*LiveSession, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*LiveSession), true
	}
	return nil, false
}

func (r *LiveSessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
