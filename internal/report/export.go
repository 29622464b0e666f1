package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/appsmart/inventario/backend-go/internal/domain"
)

// Kind identifies one of the exported reports.
type Kind string

const (
	KindPurchases Kind = "reporte_compras"
	KindStock     Kind = "resumen_stock"
)

// Kinds lists every report produced by an archive run.
var Kinds = []Kind{KindPurchases, KindStock}

// ParseKind accepts either the file prefix or the route name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case string(KindPurchases), "purchases", "compras":
		return KindPurchases, nil
	case string(KindStock), "stock":
		return KindStock, nil
	}
	return "", fmt.Errorf("unknown report kind %q", s)
}

// Rows projects the payload for the given report.
func (k Kind) Rows(payload *domain.PredictionPayload) [][]string {
	if k == KindStock {
		return StockRows(payload)
	}
	return PurchaseRows(payload)
}

// Filename builds the download name from the run timestamp, e.g.
// reporte_compras_20250710_1430.csv.
func (k Kind) Filename(generatedAt time.Time) string {
	return fmt.Sprintf("%s_%s.csv", k, generatedAt.Format("20060102_1504"))
}

// WriteCSV writes rows with the default comma separator.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv report: %w", err)
	}
	return nil
}

// Render returns the CSV bytes and file name of one report.
func Render(kind Kind, payload *domain.PredictionPayload) (string, []byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, kind.Rows(payload)); err != nil {
		return "", nil, err
	}

	var generatedAt time.Time
	if payload != nil {
		generatedAt = payload.GeneratedAt
	}
	return kind.Filename(generatedAt), buf.Bytes(), nil
}
