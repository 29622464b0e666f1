package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appsmart/inventario/backend-go/internal/domain"
	"github.com/appsmart/inventario/backend-go/internal/prediction"
	"github.com/appsmart/inventario/backend-go/internal/repository"
	"github.com/appsmart/inventario/backend-go/internal/service"
	"github.com/appsmart/inventario/backend-go/internal/storage"
)

var testNow = time.Date(2025, time.July, 10, 14, 30, 0, 0, time.UTC)

func testCatalog() []*domain.Product {
	products := make([]*domain.Product, 0, 8)
	for i := 1; i <= 8; i++ {
		p := &domain.Product{ID: int64(i), Title: fmt.Sprintf("Producto %d", i), OutOfStock: i == 8}
		if i%2 == 1 {
			p.NormalPrice = decimal.NewNullDecimal(decimal.NewFromInt(int64(150 * i)))
		}
		products = append(products, p)
	}
	return products
}

func newTestRouter(t *testing.T, archive storage.ObjectStorage) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewPredictionService(
		repository.NewStaticProductRepository(testCatalog()),
		prediction.NewGenerator(prediction.DefaultConfig()),
		nil,
		archive,
		"reports/",
	).WithClock(func() time.Time { return testNow })

	return NewRouter(&Services{PredictionService: svc}, []string{"*"})
}

func do(router http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := do(NewRouter(nil, nil), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetPredictions(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(router, http.MethodGet, "/api/v1/predictions")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items       []map[string]interface{} `json:"items"`
		Suggestions int                      `json:"sugerencias"`
		Overstock   int                      `json:"sobrestock"`
		Total       int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 8)
	assert.Equal(t, 8, body.Total)
	assert.Equal(t, 8, body.Suggestions+body.Overstock)
	assert.Contains(t, body.Items[0], "probabilidad")
	assert.Contains(t, body.Items[0], "motivo")

	w = do(router, http.MethodGet, "/api/v1/predictions?limit=3")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 3)
	assert.Equal(t, 8, body.Total)

	for _, bad := range []string{"0", "-1", "abc"} {
		w = do(router, http.MethodGet, "/api/v1/predictions?limit="+bad)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}

func TestGetPredictionsByAction(t *testing.T) {
	router := newTestRouter(t, nil)

	var body struct {
		Items []struct {
			Action string `json:"accion"`
		} `json:"items"`
		Suggestions int `json:"sugerencias"`
		Overstock   int `json:"sobrestock"`
		Total       int `json:"total"`
	}

	w := do(router, http.MethodGet, "/api/v1/predictions?accion=COMPRAR")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, body.Suggestions)
	assert.Equal(t, 8, body.Total)
	for _, item := range body.Items {
		assert.Equal(t, "comprar", item.Action)
	}

	body.Items = nil
	w = do(router, http.MethodGet, "/api/v1/predictions?accion=no_comprar&limit=1")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.LessOrEqual(t, len(body.Items), 1)
	for _, item := range body.Items {
		assert.Equal(t, "no_comprar", item.Action)
	}

	w = do(router, http.MethodGet, "/api/v1/predictions?accion=vender")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshPredictions(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(router, http.MethodPost, "/api/v1/predictions/refresh")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []map[string]interface{} `json:"items"`
		Total int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 8)
	assert.Equal(t, 8, body.Total)

	w = do(router, http.MethodGet, "/api/v1/predictions/refresh")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDashboardAndSummary(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(router, http.MethodGet, "/api/v1/predictions/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	var dashboard domain.PredictionDashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	assert.Equal(t, 8, dashboard.Metrics.Total)
	assert.Len(t, dashboard.Top, service.DashboardTopItems)

	w = do(router, http.MethodGet, "/api/v1/predictions/summary")
	require.Equal(t, http.StatusOK, w.Code)
	var summary domain.ReportSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 8, summary.Total)
	assert.True(t, summary.HasStockSummary)
}

func TestInventoryRoutes(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(router, http.MethodGet, "/api/v1/inventory/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	var metrics domain.InventoryMetrics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &metrics))
	assert.Equal(t, 8, metrics.Total)
	assert.Equal(t, 4, metrics.Available)

	w = do(router, http.MethodGet, "/api/v1/inventory/products")
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Products []map[string]interface{} `json:"productos"`
		Total    int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, 8, listing.Total)
	assert.EqualValues(t, 8, listing.Products[0]["id_producto"])
	assert.Contains(t, listing.Products[0], "disponible")
}

func TestExportReports(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(router, http.MethodGet, "/api/v1/reports/stock")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=resumen_stock_20250710_1430.csv", w.Header().Get("Content-Disposition"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 9)
	assert.Equal(t, "id_producto,titulo,marca,estado_stock,stock_estimado,promedio_mensual,venta_ultimo_mes,probabilidad_no_comprar_pct,precio_referencia", lines[0])

	w = do(router, http.MethodGet, "/api/v1/reports/purchases")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=reporte_compras_20250710_1430.csv", w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "id_producto,titulo,marca,estado_stock,promedio_mensual"))
}

func TestArchiveRoutes(t *testing.T) {
	archive, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	router := newTestRouter(t, archive)

	w := do(router, http.MethodPost, "/api/v1/reports/archive")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Reports []storage.ObjectInfo `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created.Reports, 2)

	w = do(router, http.MethodGet, "/api/v1/reports/archive")
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Reports []storage.ObjectInfo `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Reports, 2)

	w = do(router, http.MethodGet, "/api/v1/reports/archive/resumen_stock_20250710_1430.csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "id_producto,"))

	w = do(router, http.MethodGet, "/api/v1/reports/archive/missing.csv")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodGet, "/api/v1/reports/archive/.hidden")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArchiveRoutesWithoutStorage(t *testing.T) {
	router := newTestRouter(t, nil)

	w := do(router, http.MethodPost, "/api/v1/reports/archive")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, all := normalizeAllowedOrigins([]string{"http://a.cl, http://b.cl", " ", "http://c.cl"})
	assert.False(t, all)
	assert.Equal(t, []string{"http://a.cl", "http://b.cl", "http://c.cl"}, origins)

	_, all = normalizeAllowedOrigins([]string{"http://a.cl,*"})
	assert.True(t, all)
}
