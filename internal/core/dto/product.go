package dto

type ProductRequest struct {
	Name     string   `json:"name" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Price    *float64 `json:"price" binding:"required"`
	Stock    *int     `json:"stock"`
}

type ListProductsQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Skip     int    `form:"skip" binding:"gte=0"`
	Limit    int    `form:"limit" binding:"gte=0"`
}

type StockOperationRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}
