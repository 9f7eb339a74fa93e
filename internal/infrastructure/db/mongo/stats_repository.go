package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openblog/blog-api/internal/core/ports"
)

// StatsRepository runs the aggregate queries behind the stats endpoints. It
// reads across the users, posts, and comments collections.
type StatsRepository struct {
	users    *mongo.Collection
	posts    *mongo.Collection
	comments *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		users:    db.Collection(collectionUsers),
		posts:    db.Collection(collectionPosts),
		comments: db.Collection(collectionComments),
	}
}

func (r *StatsRepository) Totals(ctx context.Context) (*ports.StatsTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	totals := &ports.StatsTotals{}
	var err error

	if totals.TotalUsers, err = r.users.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if totals.ActiveUsers, err = r.users.CountDocuments(ctx, bson.M{"is_active": true}); err != nil {
		return nil, err
	}
	if totals.TotalPosts, err = r.posts.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if totals.TotalComments, err = r.comments.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *StatsRepository) Detailed(ctx context.Context) (*ports.DetailedStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	byRole, err := r.usersByRole(ctx)
	if err != nil {
		return nil, err
	}
	avgComments, err := averagePerGroup(ctx, r.comments, "$post_id")
	if err != nil {
		return nil, err
	}
	avgPosts, err := averagePerGroup(ctx, r.posts, "$user_id")
	if err != nil {
		return nil, err
	}

	return &ports.DetailedStats{
		UsersByRole:        byRole,
		AvgCommentsPerPost: avgComments,
		AvgPostsPerUser:    avgPosts,
	}, nil
}

func (r *StatsRepository) usersByRole(ctx context.Context) (map[string]int64, error) {
	cur, err := r.users.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$role", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	byRole := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			Role  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		byRole[row.Role] = row.Count
	}
	return byRole, cur.Err()
}

// averagePerGroup computes the mean document count per distinct value of the
// grouping key, e.g. comments per post counting only posts that have comments.
func averagePerGroup(ctx context.Context, col *mongo.Collection, groupKey string) (float64, error) {
	cur, err := col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": groupKey, "count": bson.M{"$sum": 1}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "avg": bson.M{"$avg": "$count"}}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Avg float64 `bson:"avg"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		return row.Avg, nil
	}
	return 0, cur.Err()
}
