package events

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventType enumerates the blog mutation events the backend publishes.
type EventType string

const (
	BlogCreated      EventType = "blog.created"
	BlogUpdated      EventType = "blog.updated"
	BlogSoftDeleted  EventType = "blog.soft_deleted"
	BlogDeleted      EventType = "blog.deleted"
	BlogBulkInserted EventType = "blog.bulk_inserted"
)

// BaseEvent carries the envelope fields shared by every event.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// BlogEvent is published after a single-record mutation.
type BlogEvent struct {
	BaseEvent
	BlogID primitive.ObjectID `json:"blog_id"`
	Slug   string             `json:"slug,omitempty"`
	Actor  string             `json:"actor,omitempty"`
}

// BlogBulkEvent is published after a bulk mutation.
type BlogBulkEvent struct {
	BaseEvent
	Affected int64  `json:"affected"`
	Actor    string `json:"actor,omitempty"`
}

func newBase(t EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now(),
		Source:    "blog-admin",
		Version:   "1.0",
	}
}

// NewBlogEvent builds a single-record mutation event.
func NewBlogEvent(t EventType, blogID primitive.ObjectID, slug, actor string) BlogEvent {
	return BlogEvent{
		BaseEvent: newBase(t),
		BlogID:    blogID,
		Slug:      slug,
		Actor:     actor,
	}
}

// NewBlogBulkEvent builds a bulk mutation event.
func NewBlogBulkEvent(t EventType, affected int64, actor string) BlogBulkEvent {
	return BlogBulkEvent{
		BaseEvent: newBase(t),
		Affected:  affected,
		Actor:     actor,
	}
}
