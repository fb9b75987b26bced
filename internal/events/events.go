// Package events publishes domain events after successful state changes.
package events

import (
	"context"

	"github.com/weiawesome/wes-io-blog/pkg/log"
	"github.com/weiawesome/wes-io-blog/pkg/pubsub"
)

// Event types.
const (
	UserRegistered = "user.registered"
	UserFollowed   = "user.followed"
	UserDeleted    = "user.deleted"
	PostCreated    = "post.created"
	PostUpdated    = "post.updated"
	PostDeleted    = "post.deleted"
	PostCommented  = "post.commented"
)

// UserPayload describes a user event.
type UserPayload struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
}

// FollowPayload describes a follow edge.
type FollowPayload struct {
	FollowerID  string `json:"follower_id"`
	FollowingID string `json:"following_id"`
}

// PostPayload describes a post event.
type PostPayload struct {
	PostID   string `json:"post_id"`
	AuthorID string `json:"author_id"`
	Title    string `json:"title,omitempty"`
}

// CommentPayload describes comments appended to a post.
type CommentPayload struct {
	PostID string `json:"post_id"`
	Count  int    `json:"count"`
}

// Emitter publishes events on a best-effort basis: failures are logged and
// never returned to the caller.
type Emitter struct {
	publisher pubsub.Publisher
}

// NewEmitter creates an Emitter. A nil publisher discards every event.
func NewEmitter(publisher pubsub.Publisher) *Emitter {
	if publisher == nil {
		publisher = pubsub.NopPublisher{}
	}
	return &Emitter{publisher: publisher}
}

// Emit publishes an event of eventType keyed by key.
func (e *Emitter) Emit(ctx context.Context, eventType, key string, payload interface{}) {
	l := log.Ctx(ctx)

	event, err := pubsub.NewEvent(eventType, key, payload)
	if err != nil {
		l.Warn().Err(err).Str(log.FieldEvent, eventType).Msg("failed to encode event")
		return
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		l.Warn().Err(err).Str(log.FieldEvent, eventType).Msg("failed to publish event")
		return
	}
	l.Debug().Str(log.FieldEvent, eventType).Str("key", key).Msg("event published")
}
