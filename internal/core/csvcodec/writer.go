package csvcodec

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rafaelleal24/inventory/internal/core/domain"
)

// Write encodes products in the export column order with prices at two
// decimal places.
func Write(w io.Writer, products []*domain.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{p.Name, p.Category, p.Price.String(), strconv.Itoa(p.Stock)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
