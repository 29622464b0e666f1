package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/appsmart/inventario/backend-go/internal/domain"
)

// Catalog file formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// FormatFromName guesses the catalog format from a file name or MIME type.
func FormatFromName(name string) string {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".xlsx") || strings.Contains(lower, "spreadsheetml") {
		return FormatXLSX
	}
	return FormatCSV
}

// ReadCatalog parses a CSV or XLSX catalog from r.
func ReadCatalog(r io.Reader, format string) ([]*domain.Product, error) {
	var (
		records [][]string
		err     error
	)
	switch format {
	case FormatXLSX:
		records, err = ReadXLSXRecords(r)
	default:
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		records, err = reader.ReadAll()
		if err != nil {
			err = fmt.Errorf("failed to read csv catalog: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	return ParseProductRecords(records)
}

// ReadXLSXRecords returns every row of the first sheet of an XLSX workbook.
func ReadXLSXRecords(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx catalog: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx catalog has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	var records [][]string
	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row from sheet %s: %w", sheet, err)
		}
		records = append(records, record)
	}

	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows in sheet %s: %w", sheet, err)
	}

	return records, nil
}

// FileProductRepository loads the catalog from a local CSV or XLSX export.
type FileProductRepository struct {
	path string
}

func NewFileProductRepository(path string) *FileProductRepository {
	return &FileProductRepository{path: path}
}

func (r *FileProductRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", r.path, err)
	}
	defer f.Close()

	products, err := ReadCatalog(f, FormatFromName(filepath.Base(r.path)))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", r.path, err)
	}
	return products, nil
}
