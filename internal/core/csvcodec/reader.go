// Package csvcodec reads and writes the product CSV document.
package csvcodec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rafaelleal24/inventory/internal/core/domain"
)

const (
	ColumnName     = "name"
	ColumnCategory = "category"
	ColumnPrice    = "price"
	ColumnStock    = "stock"
)

// Header is the column order used on export. Imports accept any order.
var Header = []string{ColumnName, ColumnCategory, ColumnPrice, ColumnStock}

var ErrEmptyDocument = errors.New("CSV document has no header row")

// Row is one data record. Line is the 1-based line in the document; Err is
// set when the record cannot become a product input.
type Row struct {
	Line  int
	Input domain.ProductInput
	Err   error
}

type Reader struct {
	csv     *csv.Reader
	columns map[string]int
}

// NewReader consumes the header row. Column names must match exactly after
// surrounding spaces and a leading byte order mark are removed; order is free
// and unknown columns are ignored.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDocument
	}
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	return &Reader{csv: cr, columns: columns}, nil
}

// Next returns the next data row, or io.EOF when the document is exhausted.
// Malformed records are reported through Row.Err so reading can continue.
func (r *Reader) Next() (Row, error) {
	record, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return Row{}, io.EOF
	}

	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return Row{Line: parseErr.StartLine, Err: fmt.Errorf("malformed record: %v", parseErr.Err)}, nil
	}
	if err != nil {
		return Row{}, err
	}

	line, _ := r.csv.FieldPos(0)
	input, err := r.parse(record)
	return Row{Line: line, Input: input, Err: err}, nil
}

func (r *Reader) field(record []string, column string) (string, error) {
	i, ok := r.columns[column]
	if !ok || i >= len(record) {
		return "", fmt.Errorf("missing column %q", column)
	}
	return strings.TrimSpace(record[i]), nil
}

func (r *Reader) parse(record []string) (domain.ProductInput, error) {
	name, err := r.field(record, ColumnName)
	if err != nil {
		return domain.ProductInput{}, err
	}
	category, err := r.field(record, ColumnCategory)
	if err != nil {
		return domain.ProductInput{}, err
	}
	rawPrice, err := r.field(record, ColumnPrice)
	if err != nil {
		return domain.ProductInput{}, err
	}
	rawStock, err := r.field(record, ColumnStock)
	if err != nil {
		return domain.ProductInput{}, err
	}

	price, err := domain.ParseAmount(rawPrice)
	switch {
	case errors.Is(err, domain.ErrNegativePrice):
		return domain.ProductInput{}, domain.ErrNegativePrice
	case errors.Is(err, domain.ErrAmountOutOfRange):
		return domain.ProductInput{}, fmt.Errorf("price %q: %w", rawPrice, domain.ErrAmountOutOfRange)
	case err != nil:
		return domain.ProductInput{}, fmt.Errorf("invalid price %q", rawPrice)
	}

	stock, err := strconv.Atoi(rawStock)
	if err != nil {
		return domain.ProductInput{}, fmt.Errorf("invalid stock %q", rawStock)
	}
	if stock < 0 {
		return domain.ProductInput{}, domain.ErrNegativeStock
	}

	return domain.ProductInput{
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
	}, nil
}
