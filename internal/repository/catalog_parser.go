package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/appsmart/inventario/backend-go/internal/domain"
	"github.com/appsmart/inventario/backend-go/pkg/logger"
)

// ErrMissingIDColumn is returned when a catalog sheet has no product id column.
var ErrMissingIDColumn = errors.New("catalog is missing the id_producto column")

// columnAliases maps accepted header spellings onto the productos columns.
var columnAliases = map[string]string{
	"id_producto":    "id_producto",
	"id":             "id_producto",
	"title":          "title",
	"titulo":         "title",
	"brand":          "brand",
	"marca":          "brand",
	"normal_price":   "normal_price",
	"precio_normal":  "normal_price",
	"low_price":      "low_price",
	"precio_bajo":    "low_price",
	"high_price":     "high_price",
	"precio_alto":    "high_price",
	"oferta":         "oferta",
	"on_sale":        "oferta",
	"sin_stock":      "sin_stock",
	"out_of_stock":   "sin_stock",
	"ahorro":         "ahorro",
	"savings":        "ahorro",
	"ahorro_percent": "ahorro_percent",
}

// ParseProductRecords turns a header row plus data rows into products.
// Unparsable numeric cells become absent values; rows without a valid id are
// skipped.
func ParseProductRecords(records [][]string) ([]*domain.Product, error) {
	if len(records) == 0 {
		return []*domain.Product{}, nil
	}

	colMap := make(map[string]int)
	for i, col := range records[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if name, ok := columnAliases[key]; ok {
			if _, seen := colMap[name]; !seen {
				colMap[name] = i
			}
		}
	}
	if _, ok := colMap["id_producto"]; !ok {
		return nil, ErrMissingIDColumn
	}

	products := make([]*domain.Product, 0, len(records)-1)
	skipped := 0
	for line, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		p, err := parseProductRow(record, colMap)
		if err != nil {
			skipped++
			logger.Log.Warn().Err(err).Int("row", line+2).Msg("skipping catalog row")
			continue
		}
		products = append(products, p)
	}

	if skipped > 0 {
		logger.Log.Info().Int("skipped", skipped).Int("loaded", len(products)).Msg("catalog parsed with skipped rows")
	}
	return products, nil
}

func parseProductRow(record []string, colMap map[string]int) (*domain.Product, error) {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	rawID := getValue("id_producto")
	id, err := parseID(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid id_producto %q: %w", rawID, err)
	}

	p := &domain.Product{
		ID:             id,
		Title:          getValue("title"),
		NormalPrice:    parseDecimal(getValue("normal_price")),
		LowPrice:       parseDecimal(getValue("low_price")),
		HighPrice:      parseDecimal(getValue("high_price")),
		OnSale:         parseBool(getValue("oferta")),
		OutOfStock:     parseBool(getValue("sin_stock")),
		Savings:        parseDecimal(getValue("ahorro")),
		SavingsPercent: parseDecimal(getValue("ahorro_percent")),
	}
	if brand := getValue("brand"); brand != "" {
		p.Brand = &brand
	}
	return p, nil
}

func parseID(val string) (int64, error) {
	if id, err := strconv.ParseInt(val, 10, 64); err == nil {
		return id, nil
	}
	// spreadsheets export integer ids as "12.0"
	d, err := decimal.NewFromString(val)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("not an integer")
	}
	return d.IntPart(), nil
}

func parseDecimal(val string) decimal.NullDecimal {
	val = strings.TrimSpace(strings.TrimPrefix(val, "$"))
	if val == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func parseBool(val string) bool {
	switch strings.ToLower(val) {
	case "1", "true", "t", "yes", "y", "si", "sí", "s":
		return true
	}
	return false
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
