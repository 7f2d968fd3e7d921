package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rafaelleal24/inventory/internal/adapters/mongo/document"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

// BaseRepository holds the lookups shared by every collection and maps
// driver errors to service errors named after the entity.
type BaseRepository[T document.Document] struct {
	collection *mongo.Collection
	entity     string
}

func NewBaseRepository[T document.Document](db *mongo.Database, collectionName, entity string) *BaseRepository[T] {
	return &BaseRepository[T]{
		collection: db.Collection(collectionName),
		entity:     entity,
	}
}

func (r *BaseRepository[T]) objectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, r.parseError(err)
	}
	return objectID, nil
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	objectID, err := r.objectID(id)
	if err != nil {
		return nil, err
	}
	return r.FindOne(ctx, bson.M{"_id": objectID})
}

func (r *BaseRepository[T]) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, r.parseError(err)
	}
	defer cursor.Close(ctx)

	entities := make([]T, 0)
	if err = cursor.All(ctx, &entities); err != nil {
		return nil, r.parseError(err)
	}

	return entities, nil
}

func (r *BaseRepository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var entity T
	if err := r.collection.FindOne(ctx, filter).Decode(&entity); err != nil {
		return nil, r.parseError(err)
	}
	return &entity, nil
}

// FindOneAndUpdate applies update to the document matching filter and
// returns the post-update document.
func (r *BaseRepository[T]) FindOneAndUpdate(ctx context.Context, filter, update bson.M, opts ...*options.FindOneAndUpdateOptions) (*T, error) {
	opts = append([]*options.FindOneAndUpdateOptions{options.FindOneAndUpdate().SetReturnDocument(options.After)}, opts...)

	var entity T
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts...).Decode(&entity); err != nil {
		return nil, r.parseError(err)
	}
	return &entity, nil
}

func (r *BaseRepository[T]) DeleteByID(ctx context.Context, id string) error {
	objectID, err := r.objectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return r.parseError(err)
	}
	if result.DeletedCount == 0 {
		return r.notFound()
	}
	return nil
}

func (r *BaseRepository[T]) notFound() error {
	return serviceerrors.NewNotFoundError(fmt.Sprintf("%s not found", r.entity))
}

func (r *BaseRepository[T]) parseError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return r.notFound()
	case mongo.IsDuplicateKeyError(err):
		return serviceerrors.NewConflictError(fmt.Sprintf("%s already exists", r.entity))
	case isInvalidObjectIDError(err):
		// Ids are never reused, so a malformed id cannot name any entity.
		return r.notFound()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return serviceerrors.NewStorageError(fmt.Sprintf("%s storage failure", r.entity), err)
}

func isInvalidObjectIDError(err error) bool {
	return errors.Is(err, primitive.ErrInvalidHex) ||
		(err != nil && strings.Contains(err.Error(), "not a valid ObjectID"))
}
