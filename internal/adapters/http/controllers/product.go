package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafaelleal24/inventory/internal/adapters/http/handlers"
	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/dto"
	"github.com/rafaelleal24/inventory/internal/core/service"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

type ProductController struct {
	catalogService *service.CatalogService
}

type ProductResponse struct {
	ID         string    `json:"id" example:"65f1c2a9e4b0a1b2c3d4e5f6"`
	Name       string    `json:"name" example:"Widget"`
	Category   string    `json:"category" example:"Tools"`
	Price      float64   `json:"price" example:"9.99"`
	Stock      int       `json:"stock" example:"5"`
	StockLevel string    `json:"stock_level" example:"low"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type StatsResponse struct {
	TotalProducts int     `json:"total_products"`
	LowStockItems int     `json:"low_stock_items"`
	TotalValue    float64 `json:"total_value"`
	Categories    int     `json:"categories"`
}

type DashboardResponse struct {
	Stats          StatsResponse     `json:"stats"`
	RecentProducts []ProductResponse `json:"recent_products"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:         string(product.ID),
		Name:       product.Name,
		Category:   product.Category,
		Price:      product.Price.Float64(),
		Stock:      product.Stock,
		StockLevel: string(product.Level()),
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
}

func newProductResponses(products []*domain.Product) []ProductResponse {
	response := make([]ProductResponse, len(products))
	for i, product := range products {
		response[i] = NewProductResponse(product)
	}
	return response
}

func NewProductController(catalogService *service.CatalogService) *ProductController {
	return &ProductController{catalogService: catalogService}
}

// productID reads the :id path parameter. A malformed id cannot name any
// product, so it is reported as not found.
func productID(c *gin.Context) (domain.ID, bool) {
	id := c.Param("id")
	if !domain.ValidateID(id) {
		handlers.HandleError(c, serviceerrors.NewNotFoundError("product not found"))
		return "", false
	}
	return domain.ID(id), true
}

// List godoc
// @Summary     List products
// @Description Returns products in insertion order, optionally filtered by name and category
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       search   query    string false "Case-insensitive name substring"
// @Param       category query    string false "Exact category"
// @Param       skip     query    int    false "Products to skip"
// @Param       limit    query    int    false "Maximum products to return, 0 for all"
// @Success     200      {array}  ProductResponse
// @Failure     400      {object} handlers.ErrorResponse
// @Failure     401      {object} handlers.ErrorResponse
// @Failure     500      {object} handlers.ErrorResponse
// @Router      /products [get]
func (pc *ProductController) List(c *gin.Context) {
	var query dto.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	products, err := pc.catalogService.List(c.Request.Context(), &query)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductResponses(products))
}

// Get godoc
// @Summary     Get a product
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       id  path     string true "Product ID"
// @Success     200 {object} ProductResponse
// @Failure     401 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /products/{id} [get]
func (pc *ProductController) Get(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	product, err := pc.catalogService.GetByID(c.Request.Context(), id)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// Create godoc
// @Summary     Create a product
// @Description Creates a product; stock defaults to 0
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     dto.ProductRequest true "Product data"
// @Success     201     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /products [post]
func (pc *ProductController) Create(c *gin.Context) {
	var request dto.ProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := pc.catalogService.CreateProduct(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewProductResponse(product))
}

// Update godoc
// @Summary     Replace a product
// @Description Replaces name, category, price and stock of a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path     string             true "Product ID"
// @Param       request body     dto.ProductRequest true "Product data"
// @Success     200     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     500     {object} handlers.ErrorResponse
// @Router      /products/{id} [put]
func (pc *ProductController) Update(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var request dto.ProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := pc.catalogService.UpdateProduct(c.Request.Context(), id, &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// Delete godoc
// @Summary     Delete a product
// @Tags        products
// @Security    BearerAuth
// @Param       id path string true "Product ID"
// @Success     204
// @Failure     401 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /products/{id} [delete]
func (pc *ProductController) Delete(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := pc.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Categories godoc
// @Summary     List categories
// @Description Distinct categories in first-appearance order
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  string
// @Failure     401 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /categories [get]
func (pc *ProductController) Categories(c *gin.Context) {
	categories, err := pc.catalogService.Categories(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Dashboard godoc
// @Summary     Dashboard aggregates
// @Description Catalog statistics and the first products in store order
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} DashboardResponse
// @Failure     401 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /dashboard [get]
func (pc *ProductController) Dashboard(c *gin.Context) {
	dashboard, err := pc.catalogService.Dashboard(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{
		Stats: StatsResponse{
			TotalProducts: dashboard.Stats.TotalProducts,
			LowStockItems: dashboard.Stats.LowStockItems,
			TotalValue:    dashboard.Stats.TotalValue.Round(2).InexactFloat64(),
			Categories:    dashboard.Stats.Categories,
		},
		RecentProducts: newProductResponses(dashboard.Recent),
	})
}
