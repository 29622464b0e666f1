package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/appsmart/inventario/backend-go/internal/domain"
	"github.com/appsmart/inventario/backend-go/internal/report"
	"github.com/appsmart/inventario/backend-go/internal/service"
	"github.com/appsmart/inventario/backend-go/internal/storage"
)

type PredictionHandler struct {
	service *service.PredictionService
}

func NewPredictionHandler(service *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{service: service}
}

func (h *PredictionHandler) GetProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productos": products,
		"total":     len(products),
	})
}

func (h *PredictionHandler) GetInventoryMetrics(c *gin.Context) {
	metrics, err := h.service.GetInventoryMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inventory metrics", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// GetPredictions returns the ranked items. ?accion= keeps one decision and
// ?limit=N the first N of what remains; the counters always describe the
// whole run.
func (h *PredictionHandler) GetPredictions(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	var (
		action    domain.Action
		filtering bool
	)
	if raw := c.Query("accion"); raw != "" {
		parsed, ok := domain.ParseAction(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "accion must be comprar or no_comprar"})
			return
		}
		action, filtering = parsed, true
	}

	payload, err := h.service.GetPredictions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate predictions", "details": err.Error()})
		return
	}

	items := payload.Items
	if filtering {
		items = payload.WithAction(action)
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	c.JSON(http.StatusOK, predictionsBody(payload, items))
}

// RefreshPredictions discards cached payloads and returns a fresh run.
func (h *PredictionHandler) RefreshPredictions(c *gin.Context) {
	payload, err := h.service.RefreshPredictions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refresh predictions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, predictionsBody(payload, payload.Items))
}

func predictionsBody(payload *domain.PredictionPayload, items []domain.PredictionItem) gin.H {
	return gin.H{
		"items":            items,
		"sugerencias":      payload.Suggestions,
		"sobrestock":       payload.Overstock,
		"total":            len(payload.Items),
		"fecha_generacion": payload.GeneratedAt,
	}
}

func (h *PredictionHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch dashboard", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *PredictionHandler) GetReportSummary(c *gin.Context) {
	summary, err := h.service.GetReportSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch report summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportReport streams one report as a CSV attachment.
func (h *PredictionHandler) ExportReport(kind report.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, data, err := h.service.ExportReport(c.Request.Context(), kind)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export report", "details": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename="+name)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	}
}

func (h *PredictionHandler) ArchiveReports(c *gin.Context) {
	archived, err := h.service.ArchiveReports(c.Request.Context())
	if err != nil {
		c.JSON(archiveStatus(err), gin.H{"error": "failed to archive reports", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reports": archived})
}

func (h *PredictionHandler) ListArchivedReports(c *gin.Context) {
	reports, err := h.service.ListArchivedReports(c.Request.Context())
	if err != nil {
		c.JSON(archiveStatus(err), gin.H{"error": "failed to list archived reports", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *PredictionHandler) DownloadArchivedReport(c *gin.Context) {
	name := c.Param("name")
	data, err := h.service.GetArchivedReport(c.Request.Context(), name)
	if err != nil {
		c.JSON(archiveStatus(err), gin.H{"error": "failed to fetch archived report", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func archiveStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrArchiveDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrInvalidReport):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
