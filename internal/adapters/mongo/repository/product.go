package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rafaelleal24/inventory/internal/adapters/mongo/document"
	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/port"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

const productsCollection = "products"

type ProductRepository struct {
	*BaseRepository[document.ProductDocument]
}

func NewProductRepository(db *mongo.Database) port.ProductPort {
	return &ProductRepository{
		BaseRepository: NewBaseRepository[document.ProductDocument](db, productsCollection, "product"),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	doc := document.ToProductDocument(product)
	doc.ID = primitive.NewObjectID()
	doc.Version = 1

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return r.parseError(err)
	}

	product.ID = domain.ID(doc.ID.Hex())
	product.Version = doc.Version
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

// GetAll sorts by _id; ObjectIDs grow monotonically so this is insertion order.
func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	docs, err := r.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(docs))
	for i := range docs {
		products[i] = docs[i].ToDomain()
	}
	return products, nil
}

// Update replaces the mutable fields and refreshes product with the stored
// creation time and version.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	objectID, err := r.objectID(string(product.ID))
	if err != nil {
		return err
	}

	doc, err := r.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{
		"$set": bson.M{
			"name":       product.Name,
			"category":   product.Category,
			"price":      int64(product.Price),
			"stock":      product.Stock,
			"updated_at": product.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	})
	if err != nil {
		return err
	}

	product.CreatedAt = doc.CreatedAt
	product.Version = doc.Version
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.DeleteByID(ctx, string(id))
}

// AdjustStock guards negative deltas with a stock >= -delta filter so the
// check and the write happen in one server-side step.
func (r *ProductRepository) AdjustStock(ctx context.Context, id domain.ID, delta int) (*domain.Product, error) {
	objectID, err := r.objectID(string(id))
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": objectID}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"stock": delta, "version": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	doc, err := r.FindOneAndUpdate(ctx, filter, update)
	if err == nil {
		return doc.ToDomain(), nil
	}
	if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) || delta >= 0 {
		return nil, err
	}

	// The guarded update matched nothing: either the product is gone or the
	// stock is too low.
	current, lookupErr := r.FindByID(ctx, string(id))
	if lookupErr != nil {
		return nil, lookupErr
	}
	return nil, serviceerrors.NewInsufficientStockError(string(id), current.Stock, -delta)
}
