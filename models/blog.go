package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a single blog document managed by the admin backend.
// Collection: blogs
//
// AddedBy and UpdatedBy are audit references set server-side from the
// authenticated user; clients can never supply them. IsDeleted implements
// soft deletion: the record stays in the collection with the flag raised.
type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Content     string             `bson:"content,omitempty" json:"content,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	IsDeleted   bool               `bson:"is_deleted" json:"is_deleted"`
	AddedBy     string             `bson:"added_by,omitempty" json:"added_by,omitempty"`
	UpdatedBy   string             `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
