package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kailas-cloud/stylebot/internal/domain/product"
)

// Catalog column names. "groupe" is the category group column of the shop export.
const (
	colURL         = "url"
	colName        = "name"
	colSize        = "size"
	colCategory    = "category"
	colPrice       = "price"
	colColor       = "color"
	colDescription = "description"
	colGroup       = "groupe"
	colGender      = "gender"
	colBrand       = "brand"
)

var requiredColumns = []string{colURL, colName, colPrice, colDescription}

// ReadRows parses a comma separated catalog export with a header row.
// Columns are matched by name; unknown columns are ignored.
func ReadRows(r io.Reader) ([]product.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("catalog is missing column %q", c)
		}
	}

	var rows []product.Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", len(rows)+2, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		rows = append(rows, product.Row{
			URL:         get(colURL),
			Name:        get(colName),
			Size:        get(colSize),
			Category:    get(colCategory),
			Price:       get(colPrice),
			Color:       get(colColor),
			Description: get(colDescription),
			Group:       get(colGroup),
			Gender:      get(colGender),
			Brand:       get(colBrand),
		})
	}
	return rows, nil
}
