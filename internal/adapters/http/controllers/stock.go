package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafaelleal24/inventory/internal/adapters/http/handlers"
	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/dto"
	"github.com/rafaelleal24/inventory/internal/core/service"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type StockController struct {
	ledgerService *service.LedgerService
}

func NewStockController(ledgerService *service.LedgerService) *StockController {
	return &StockController{ledgerService: ledgerService}
}

type stockMove func(c *gin.Context, key string, id domain.ID, quantity int) (*domain.Product, error)

func (sc *StockController) handle(c *gin.Context, move stockMove) {
	id, ok := productID(c)
	if !ok {
		return
	}
	var request dto.StockOperationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := move(c, c.GetHeader(IdempotencyKeyHeader), id, request.Quantity)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// StockIn godoc
// @Summary     Receive stock
// @Description Adds quantity to the stock of a product
// @Tags        stock
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key header   string                    false "Idempotency key"
// @Param       id              path     string                    true  "Product ID"
// @Param       request         body     dto.StockOperationRequest true  "Quantity"
// @Success     200             {object} ProductResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     401             {object} handlers.ErrorResponse
// @Failure     404             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Failure     422             {object} handlers.ErrorResponse
// @Failure     500             {object} handlers.ErrorResponse
// @Router      /products/{id}/stock-in [post]
func (sc *StockController) StockIn(c *gin.Context) {
	sc.handle(c, func(c *gin.Context, key string, id domain.ID, quantity int) (*domain.Product, error) {
		return sc.ledgerService.StockIn(c.Request.Context(), key, id, quantity)
	})
}

// StockOut godoc
// @Summary     Dispatch stock
// @Description Removes quantity from the stock of a product; fails when stock is insufficient
// @Tags        stock
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key header   string                    false "Idempotency key"
// @Param       id              path     string                    true  "Product ID"
// @Param       request         body     dto.StockOperationRequest true  "Quantity"
// @Success     200             {object} ProductResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     401             {object} handlers.ErrorResponse
// @Failure     404             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Failure     422             {object} handlers.ErrorResponse
// @Failure     500             {object} handlers.ErrorResponse
// @Router      /products/{id}/stock-out [post]
func (sc *StockController) StockOut(c *gin.Context) {
	sc.handle(c, func(c *gin.Context, key string, id domain.ID, quantity int) (*domain.Product, error) {
		return sc.ledgerService.StockOut(c.Request.Context(), key, id, quantity)
	})
}
