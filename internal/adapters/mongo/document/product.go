package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rafaelleal24/inventory/internal/core/domain"
)

// ProductDocument stores price in cents.
type ProductDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Category  string             `bson:"category"`
	Price     int64              `bson:"price"`
	Stock     int                `bson:"stock"`
	Version   int64              `bson:"version"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (doc ProductDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *ProductDocument) ToDomain() *domain.Product {
	return &domain.Product{
		ID:        domain.ID(doc.ID.Hex()),
		Name:      doc.Name,
		Category:  doc.Category,
		Price:     domain.Amount(doc.Price),
		Stock:     doc.Stock,
		Version:   doc.Version,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func ToProductDocument(p *domain.Product) *ProductDocument {
	return &ProductDocument{
		Name:      p.Name,
		Category:  p.Category,
		Price:     int64(p.Price),
		Stock:     p.Stock,
		Version:   p.Version,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
