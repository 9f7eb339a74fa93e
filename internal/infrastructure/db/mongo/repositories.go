package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories bundles every Mongo-backed repository so main can build them
// once, bootstrap their indexes, and hand them to the router.
type Repositories struct {
	Users       *UserRepository
	Credentials *CredentialsRepository
	Posts       *PostRepository
	Comments    *CommentRepository
	Categories  *CategoryRepository
	Stats       *StatsRepository
	Audit       *AuditRepository
}

func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Credentials: NewCredentialsRepository(db),
		Posts:       NewPostRepository(db),
		Comments:    NewCommentRepository(db),
		Categories:  NewCategoryRepository(db),
		Stats:       NewStatsRepository(db),
		Audit:       NewAuditRepository(db),
	}
}

// EnsureIndexes bootstraps indexes for every repository that maintains them.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	return EnsureIndexes(ctx, r.Users, r.Credentials, r.Posts, r.Comments, r.Categories, r.Audit)
}
