package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openblog/blog-api/internal/core/domain"
)

const collectionCredentials = "credentials"

type CredentialsRepository struct {
	col *mongo.Collection
}

func NewCredentialsRepository(db *mongo.Database) *CredentialsRepository {
	return &CredentialsRepository{col: db.Collection(collectionCredentials)}
}

func (r *CredentialsRepository) Create(ctx context.Context, creds *domain.Credentials) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, creds)
	return err
}

// FindByUserID returns ErrInvalidCredentials on a miss: a user without a
// credentials record is unauthenticatable.
func (r *CredentialsRepository) FindByUserID(ctx context.Context, userID string) (*domain.Credentials, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Credentials
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return &c, nil
}

func (r *CredentialsRepository) UpdateHash(ctx context.Context, userID, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (r *CredentialsRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{"last_login": at}})
	return err
}

func (r *CredentialsRepository) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

// EnsureIndexes enforces the one-to-one relationship with users.
func (r *CredentialsRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
