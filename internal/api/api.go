// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/appsmart/inventario/backend-go/internal/api/handlers"
	"github.com/appsmart/inventario/backend-go/internal/api/middleware"
	"github.com/appsmart/inventario/backend-go/internal/report"
	"github.com/appsmart/inventario/backend-go/internal/service"
)

type Services struct {
	PredictionService *service.PredictionService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.PredictionService != nil {
		h := handlers.NewPredictionHandler(services.PredictionService)

		inventoryGroup := apiGroup.Group("/inventory")
		{
			inventoryGroup.GET("/products", h.GetProducts)
			inventoryGroup.GET("/metrics", h.GetInventoryMetrics)
		}

		predictionGroup := apiGroup.Group("/predictions")
		{
			predictionGroup.GET("", h.GetPredictions)
			predictionGroup.GET("/dashboard", h.GetDashboard)
			predictionGroup.GET("/summary", h.GetReportSummary)
			predictionGroup.POST("/refresh", h.RefreshPredictions)
		}

		reportGroup := apiGroup.Group("/reports")
		{
			reportGroup.GET("/purchases", h.ExportReport(report.KindPurchases))
			reportGroup.GET("/stock", h.ExportReport(report.KindStock))

			archiveGroup := reportGroup.Group("/archive")
			{
				archiveGroup.POST("", h.ArchiveReports)
				archiveGroup.GET("", h.ListArchivedReports)
				archiveGroup.GET("/:name", h.DownloadArchivedReport)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
