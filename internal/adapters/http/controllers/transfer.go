package controllers

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafaelleal24/inventory/internal/adapters/http/handlers"
	"github.com/rafaelleal24/inventory/internal/core/service"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

const (
	importFormField = "file"
	exportFileName  = "products.csv"
)

type RowErrorResponse struct {
	Line   int    `json:"line" example:"6"`
	Reason string `json:"reason" example:"price must not be negative"`
}

type ImportReportResponse struct {
	Imported int                `json:"imported" example:"5"`
	Failed   int                `json:"failed" example:"1"`
	Errors   []RowErrorResponse `json:"errors"`
}

type TransferController struct {
	transferService *service.TransferService
	maxUploadBytes  int64
}

func NewTransferController(transferService *service.TransferService, maxUploadBytes int64) *TransferController {
	return &TransferController{transferService: transferService, maxUploadBytes: maxUploadBytes}
}

// Export godoc
// @Summary     Export products as CSV
// @Description Serializes the whole catalog with header name,category,price,stock
// @Tags        transfer
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {string} string "CSV document"
// @Failure     401 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /products/export/csv [get]
func (tc *TransferController) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := tc.transferService.Export(c.Request.Context(), &buf); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+exportFileName)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Import godoc
// @Summary     Import products from CSV
// @Description Creates one product per valid row and reports the rows that failed
// @Tags        transfer
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file formData file true "CSV document"
// @Success     200  {object} ImportReportResponse
// @Failure     400  {object} handlers.ErrorResponse
// @Failure     401  {object} handlers.ErrorResponse
// @Failure     413  {object} handlers.ErrorResponse
// @Failure     429  {object} handlers.ErrorResponse
// @Failure     500  {object} handlers.ErrorResponse
// @Router      /products/import/csv [post]
func (tc *TransferController) Import(c *gin.Context) {
	if c.Request.ContentLength > tc.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, handlers.ErrorResponse{Error: "file too large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, tc.maxUploadBytes)

	header, err := c.FormFile(importFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, handlers.ErrorResponse{Error: "file too large"})
			return
		}
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("a CSV file is required in the \"file\" field"))
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("file must be a CSV"))
		return
	}

	file, err := header.Open()
	if err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("could not read uploaded file"))
		return
	}
	defer file.Close()

	report, err := tc.transferService.Import(c.Request.Context(), file)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	rows := make([]RowErrorResponse, len(report.Errors))
	for i, rowErr := range report.Errors {
		rows[i] = RowErrorResponse{Line: rowErr.Line, Reason: rowErr.Reason}
	}
	c.JSON(http.StatusOK, ImportReportResponse{
		Imported: report.Imported,
		Failed:   report.Failed,
		Errors:   rows,
	})
}
