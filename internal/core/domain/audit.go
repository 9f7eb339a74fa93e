package domain

import "time"

// AuditRecord is one entry in the activity trail. Written asynchronously after
// a successful mutation; never consulted on the request path.
type AuditRecord struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	ActorID    string    `json:"actor_id" bson:"actor_id"`
	Action     string    `json:"action" bson:"action"`
	Resource   string    `json:"resource" bson:"resource"`
	ResourceID string    `json:"resource_id" bson:"resource_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
