package report

import (
	"strconv"

	"github.com/appsmart/inventario/backend-go/internal/domain"
)

// NoSuggestionsNotice fills the purchase report when nothing is worth buying.
const NoSuggestionsNotice = "Sin sugerencias de compra registradas en esta corrida."

// PurchaseHeader and StockHeader are consumed by spreadsheets downstream, keep
// them stable.
var (
	PurchaseHeader = []string{
		"id_producto",
		"titulo",
		"marca",
		"estado_stock",
		"promedio_mensual",
		"venta_ultimo_mes",
		"cantidad_sugerida",
		"probabilidad_compra_pct",
		"precio_referencia",
		"motivo",
	}
	StockHeader = []string{
		"id_producto",
		"titulo",
		"marca",
		"estado_stock",
		"stock_estimado",
		"promedio_mensual",
		"venta_ultimo_mes",
		"probabilidad_no_comprar_pct",
		"precio_referencia",
	}
)

// PurchaseRows lists the items the run recommends buying, in ranking order.
func PurchaseRows(payload *domain.PredictionPayload) [][]string {
	rows := [][]string{clone(PurchaseHeader)}
	for _, item := range items(payload) {
		if item.Action != domain.ActionBuy {
			continue
		}
		rows = append(rows, []string{
			productID(item),
			productTitle(item),
			brandCell(item),
			domain.StockStatusLabel(item.Available),
			formatDecimal(item.MonthlyAverage),
			strconv.Itoa(item.LastQuantity),
			strconv.Itoa(item.SuggestedQuantity),
			formatDecimal(item.ProbabilityPct),
			priceCell(item.ReferencePrice),
			item.Reason,
		})
	}

	if len(rows) == 1 {
		sentinel := make([]string, len(PurchaseHeader))
		sentinel[0] = "-"
		sentinel[1] = NoSuggestionsNotice
		rows = append(rows, sentinel)
	}
	return rows
}

// StockRows summarises every item, including the ones not worth buying.
func StockRows(payload *domain.PredictionPayload) [][]string {
	list := items(payload)
	rows := make([][]string, 0, len(list)+1)
	rows = append(rows, clone(StockHeader))
	for _, item := range list {
		rows = append(rows, []string{
			productID(item),
			productTitle(item),
			brandCell(item),
			domain.StockStatusLabel(item.Available),
			strconv.Itoa(item.StockEstimate),
			formatDecimal(item.MonthlyAverage),
			strconv.Itoa(item.LastQuantity),
			formatDecimal(100 - item.ProbabilityPct),
			priceCell(item.ReferencePrice),
		})
	}
	return rows
}

func items(payload *domain.PredictionPayload) []domain.PredictionItem {
	if payload == nil {
		return nil
	}
	return payload.Items
}

func clone(header []string) []string {
	return append([]string(nil), header...)
}

func productID(item domain.PredictionItem) string {
	if item.Product == nil {
		return ""
	}
	return strconv.FormatInt(item.Product.ID, 10)
}

func productTitle(item domain.PredictionItem) string {
	if item.Product == nil {
		return ""
	}
	return item.Product.Title
}

func brandCell(item domain.PredictionItem) string {
	if brand := item.Product.BrandName(); brand != "" {
		return brand
	}
	return "-"
}

func priceCell(v float64) string {
	if v == 0 {
		return "-"
	}
	return formatDecimal(v)
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
