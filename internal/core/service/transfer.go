package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/rafaelleal24/inventory/internal/core/auth"
	"github.com/rafaelleal24/inventory/internal/core/csvcodec"
	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/dto"
	"github.com/rafaelleal24/inventory/internal/core/logger"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

// TransferService moves the catalog in and out of CSV documents.
type TransferService struct {
	catalog *CatalogService
}

func NewTransferService(catalog *CatalogService) *TransferService {
	return &TransferService{catalog: catalog}
}

// Import creates one product per valid row. Rows fail independently and
// rows created before a failure are kept.
func (s *TransferService) Import(ctx context.Context, r io.Reader) (*domain.ImportReport, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}

	reader, err := csvcodec.NewReader(r)
	if err != nil {
		return nil, serviceerrors.NewInvalidRequestError(err.Error())
	}

	importID := uuid.NewString()
	report := &domain.ImportReport{}
	for {
		if err := ctx.Err(); err != nil {
			logger.Warn(ctx, "import: aborted", map[string]any{
				"import_id": importID,
				"imported":  report.Imported,
				"failed":    report.Failed,
			})
			return report, err
		}

		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Error(ctx, "import: read failed", err, map[string]any{"import_id": importID})
			return nil, serviceerrors.NewInvalidRequestError("failed to read CSV document")
		}

		if row.Err != nil {
			report.Fail(row.Line, row.Err.Error())
			continue
		}

		if _, err := s.catalog.Create(ctx, row.Input); err != nil {
			report.Fail(row.Line, rowFailureReason(err))
			continue
		}
		report.Succeeded()
	}

	logger.Info(ctx, "Products imported", map[string]any{
		"import_id": importID,
		"imported":  report.Imported,
		"failed":    report.Failed,
	})
	return report, nil
}

func (s *TransferService) Export(ctx context.Context, w io.Writer) error {
	products, err := s.catalog.List(ctx, &dto.ListProductsQuery{})
	if err != nil {
		return err
	}
	return csvcodec.Write(w, products)
}

func rowFailureReason(err error) string {
	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) && svcErr.Kind != serviceerrors.KindStorage {
		return svcErr.Message
	}
	return "failed to store product"
}
