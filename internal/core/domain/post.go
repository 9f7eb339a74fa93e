package domain

import "time"

// Post is a blog entry owned by the user who created it. UserID is immutable
// after creation; CategoryID is an optional reference, never ownership.
type Post struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Title      string    `json:"title" bson:"title"`
	Body       string    `json:"body" bson:"body"`
	UserID     string    `json:"user_id" bson:"user_id"`
	CategoryID string    `json:"category_id,omitempty" bson:"category_id,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Comment belongs to a post and optionally replies to another comment on the
// same post. Approved gates public visibility and is toggled by moderation.
type Comment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Body      string    `json:"body" bson:"body"`
	UserID    string    `json:"user_id" bson:"user_id"`
	PostID    string    `json:"post_id" bson:"post_id"`
	ParentID  string    `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Approved  bool      `json:"is_approved" bson:"is_approved"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Category labels posts. Referenced by posts, owned by nobody.
type Category struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
