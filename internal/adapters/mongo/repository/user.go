package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rafaelleal24/inventory/internal/adapters/mongo/document"
	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/port"
)

const usersCollection = "users"

var _ port.UserPort = (*UserRepository)(nil)

type UserRepository struct {
	*BaseRepository[document.UserDocument]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository[document.UserDocument](db, usersCollection, "user"),
	}
}

// EnsureIndexes makes usernames unique.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return r.parseError(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	doc, err := r.FindOne(ctx, bson.M{"username": username})
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	doc, err := r.FindOneAndUpdate(ctx,
		bson.M{"username": user.Username},
		bson.M{
			"$set": bson.M{
				"password_hash": user.PasswordHash,
				"role":          string(user.Role),
			},
			"$setOnInsert": bson.M{
				"username":   user.Username,
				"created_at": createdAt,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	user.ID = domain.ID(doc.ID.Hex())
	user.CreatedAt = doc.CreatedAt
	return nil
}
