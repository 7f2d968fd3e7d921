package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("name must not be empty")
	ErrEmptyCategory = errors.New("category must not be empty")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
)

type Product struct {
	ID        ID
	Name      string
	Category  string
	Price     Amount
	Stock     int
	// Version grows by one on every stored write.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductInput carries the mutable fields of a product.
type ProductInput struct {
	Name     string
	Category string
	Price    Amount
	Stock    int
}

func (in ProductInput) normalize() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	return in
}

func (in ProductInput) Validate() error {
	in = in.normalize()
	switch {
	case in.Name == "":
		return ErrEmptyName
	case in.Category == "":
		return ErrEmptyCategory
	case in.Price.IsNegative():
		return ErrNegativePrice
	case in.Stock < 0:
		return ErrNegativeStock
	}
	return nil
}

func NewProduct(in ProductInput) (*Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.normalize()
	now := time.Now()
	return &Product{
		Name:      in.Name,
		Category:  in.Category,
		Price:     in.Price,
		Stock:     in.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply overwrites every mutable field. The product is left untouched when
// the input is invalid.
func (p *Product) Apply(in ProductInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	in = in.normalize()
	p.Name = in.Name
	p.Category = in.Category
	p.Price = in.Price
	p.Stock = in.Stock
	p.UpdatedAt = time.Now()
	return nil
}

// Value is price times stock, computed without a cent-sized bound.
func (p *Product) Value() decimal.Decimal {
	return p.Price.Decimal().Mul(decimal.NewFromInt(int64(p.Stock)))
}

func (p *Product) Level() StockLevel {
	return ClassifyStock(p.Stock)
}

type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

type ProductEvent struct {
	Type       ProductEventType `json:"type"`
	ProductID  ID               `json:"product_id"`
	Name       string           `json:"name,omitempty"`
	Category   string           `json:"category,omitempty"`
	PriceCents int64            `json:"price_cents"`
	Stock      int              `json:"stock"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func NewProductEvent(eventType ProductEventType, p *Product) *ProductEvent {
	return &ProductEvent{
		Type:       eventType,
		ProductID:  p.ID,
		Name:       p.Name,
		Category:   p.Category,
		PriceCents: int64(p.Price),
		Stock:      p.Stock,
		OccurredAt: time.Now(),
	}
}

func (e *ProductEvent) GetName() string {
	return string(e.Type)
}

func (e *ProductEvent) GetEntityName() string {
	return "product"
}
