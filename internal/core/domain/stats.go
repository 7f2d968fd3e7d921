package domain

import "github.com/shopspring/decimal"

const (
	LowStockThreshold  = 10
	HighStockThreshold = 50

	DefaultRecentProducts = 5
)

type StockLevel string

const (
	StockLevelLow    StockLevel = "low"
	StockLevelMedium StockLevel = "medium"
	StockLevelHigh   StockLevel = "high"
)

func ClassifyStock(stock int) StockLevel {
	switch {
	case stock < LowStockThreshold:
		return StockLevelLow
	case stock < HighStockThreshold:
		return StockLevelMedium
	default:
		return StockLevelHigh
	}
}

type Stats struct {
	TotalProducts int
	LowStockItems int
	TotalValue    decimal.Decimal
	Categories    int
}

// ComputeStats derives the dashboard figures from a catalog snapshot. The
// total value is summed as an unbounded decimal; rounding only happens when
// it is rendered.
func ComputeStats(products []*Product) Stats {
	stats := Stats{TotalProducts: len(products)}
	categories := make(map[string]struct{})
	for _, p := range products {
		if ClassifyStock(p.Stock) == StockLevelLow {
			stats.LowStockItems++
		}
		stats.TotalValue = stats.TotalValue.Add(p.Value())
		categories[p.Category] = struct{}{}
	}
	stats.Categories = len(categories)
	return stats
}

// RecentProducts returns the first n products in store order. There is no
// recency ordering: the store only guarantees insertion order.
func RecentProducts(products []*Product, n int) []*Product {
	if n < 0 {
		n = 0
	}
	if n > len(products) {
		n = len(products)
	}
	return products[:n]
}

type Dashboard struct {
	Stats  Stats
	Recent []*Product
}

func BuildDashboard(products []*Product, recent int) *Dashboard {
	return &Dashboard{
		Stats:  ComputeStats(products),
		Recent: RecentProducts(products, recent),
	}
}
