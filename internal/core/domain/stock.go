package domain

import (
	"errors"
	"time"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

type MovementKind string

const (
	MovementIn  MovementKind = "in"
	MovementOut MovementKind = "out"
)

// StockMovement records one applied stock-in or stock-out.
type StockMovement struct {
	ProductID      ID           `json:"product_id"`
	Kind           MovementKind `json:"kind"`
	Delta          int          `json:"delta"`
	ResultingStock int          `json:"resulting_stock"`
	At             time.Time    `json:"at"`
}

func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// SignedDelta returns the stock change a movement of the given kind applies.
func SignedDelta(kind MovementKind, quantity int) int {
	if kind == MovementOut {
		return -quantity
	}
	return quantity
}

func NewStockMovement(kind MovementKind, quantity int, after *Product) *StockMovement {
	return &StockMovement{
		ProductID:      after.ID,
		Kind:           kind,
		Delta:          SignedDelta(kind, quantity),
		ResultingStock: after.Stock,
		At:             after.UpdatedAt,
	}
}

func (m *StockMovement) GetName() string {
	return "product.stock_" + string(m.Kind)
}

func (m *StockMovement) GetEntityName() string {
	return "product"
}
