package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/appsmart/inventario/backend-go/internal/analytics"
	"github.com/appsmart/inventario/backend-go/internal/cache"
	"github.com/appsmart/inventario/backend-go/internal/domain"
	"github.com/appsmart/inventario/backend-go/internal/prediction"
	"github.com/appsmart/inventario/backend-go/internal/report"
	"github.com/appsmart/inventario/backend-go/internal/repository"
	"github.com/appsmart/inventario/backend-go/internal/storage"
	"github.com/appsmart/inventario/backend-go/pkg/logger"
)

// DashboardTopItems is how many ranked items the dashboard shows.
const DashboardTopItems = 5

var (
	ErrArchiveDisabled = errors.New("report archive storage is not configured")
	ErrInvalidReport   = errors.New("invalid report name")
)

// ProductListing is a catalog entry decorated with its inventory flags.
type ProductListing struct {
	*domain.Product
	analytics.ProductFlags
}

type PredictionService struct {
	repo          repository.ProductRepository
	generator     *prediction.Generator
	cache         cache.PredictionCache
	archive       storage.ObjectStorage
	archivePrefix string
	now           func() time.Time
}

// NewPredictionService wires the service. cacheImpl and archive may be nil.
func NewPredictionService(
	repo repository.ProductRepository,
	generator *prediction.Generator,
	cacheImpl cache.PredictionCache,
	archive storage.ObjectStorage,
	archivePrefix string,
) *PredictionService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopPredictionCache()
	}
	if generator == nil {
		generator = prediction.NewGenerator(prediction.DefaultConfig())
	}
	return &PredictionService{
		repo:          repo,
		generator:     generator,
		cache:         cacheImpl,
		archive:       archive,
		archivePrefix: archivePrefix,
		now:           time.Now,
	}
}

// WithClock makes the service and its generator read time from now.
func (s *PredictionService) WithClock(now func() time.Time) *PredictionService {
	s.now = now
	s.generator = s.generator.WithClock(now)
	return s
}

func (s *PredictionService) listProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load product catalog: %w", err)
	}
	return products, nil
}

// ListProducts returns the catalog, newest ids first, with per-product flags.
func (s *PredictionService) ListProducts(ctx context.Context) ([]ProductListing, error) {
	products, err := s.listProducts(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]ProductListing, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		listings = append(listings, ProductListing{Product: p, ProductFlags: analytics.AnalyzeProduct(p)})
	}
	sort.SliceStable(listings, func(i, j int) bool { return listings[i].ID > listings[j].ID })
	return listings, nil
}

func (s *PredictionService) GetInventoryMetrics(ctx context.Context) (domain.InventoryMetrics, error) {
	products, err := s.listProducts(ctx)
	if err != nil {
		return domain.InventoryMetrics{}, err
	}
	return analytics.ComputeInventoryMetrics(products), nil
}

// GetPredictions scores the whole catalog. Payloads are cached per catalog
// snapshot and month.
func (s *PredictionService) GetPredictions(ctx context.Context) (*domain.PredictionPayload, error) {
	products, err := s.listProducts(ctx)
	if err != nil {
		return nil, err
	}
	return s.predict(ctx, products), nil
}

// RefreshPredictions drops every cached payload and scores the catalog again.
func (s *PredictionService) RefreshPredictions(ctx context.Context) (*domain.PredictionPayload, error) {
	removed, err := s.cache.InvalidateAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to invalidate prediction cache: %w", err)
	}
	logger.Log.Info().Int64("removed", removed).Msg("prediction cache invalidated")

	return s.GetPredictions(ctx)
}

func (s *PredictionService) predict(ctx context.Context, products []*domain.Product) *domain.PredictionPayload {
	key := cache.CatalogKey(products, s.now())

	if payload, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return payload
	} else if err != nil {
		logger.Log.Warn().Err(err).Msg("predictions: cache get failed")
	}

	started := time.Now()
	payload := s.generator.Generate(products)
	logger.Log.Info().
		Int("products", len(products)).
		Int("sugerencias", payload.Suggestions).
		Int("sobrestock", payload.Overstock).
		Dur("took", time.Since(started)).
		Msg("predictions generated")

	if err := s.cache.Set(ctx, key, payload); err != nil {
		logger.Log.Warn().Err(err).Msg("predictions: cache set failed")
	}
	return payload
}

func (s *PredictionService) GetDashboard(ctx context.Context) (*domain.PredictionDashboard, error) {
	products, err := s.listProducts(ctx)
	if err != nil {
		return nil, err
	}

	payload := s.predict(ctx, products)
	return &domain.PredictionDashboard{
		Metrics:     analytics.ComputeInventoryMetrics(products),
		Suggestions: payload.Suggestions,
		Overstock:   payload.Overstock,
		Top:         payload.Top(DashboardTopItems),
		GeneratedAt: payload.GeneratedAt,
	}, nil
}

func (s *PredictionService) GetReportSummary(ctx context.Context) (domain.ReportSummary, error) {
	payload, err := s.GetPredictions(ctx)
	if err != nil {
		return domain.ReportSummary{}, err
	}
	return payload.Summary(), nil
}

// ExportReport renders one report as CSV and returns its download name.
func (s *PredictionService) ExportReport(ctx context.Context, kind report.Kind) (string, []byte, error) {
	payload, err := s.GetPredictions(ctx)
	if err != nil {
		return "", nil, err
	}
	return report.Render(kind, payload)
}

// ArchiveReports renders every report from a single run and uploads them in
// parallel.
func (s *PredictionService) ArchiveReports(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}

	payload, err := s.GetPredictions(ctx)
	if err != nil {
		return nil, err
	}

	archived := make([]storage.ObjectInfo, len(report.Kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range report.Kinds {
		g.Go(func() error {
			name, data, err := report.Render(kind, payload)
			if err != nil {
				return err
			}
			key := s.archiveKey(name)
			if err := s.archive.UploadObject(gctx, key, data); err != nil {
				return fmt.Errorf("failed to archive %s: %w", name, err)
			}
			archived[i] = storage.ObjectInfo{Key: key, Size: int64(len(data)), LastModified: payload.GeneratedAt}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Log.Info().Int("reports", len(archived)).Msg("reports archived")
	return archived, nil
}

// ListArchivedReports returns archived reports, most recent first.
func (s *PredictionService) ListArchivedReports(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}

	objects, err := s.archive.ListObjects(ctx, s.archivePrefix)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(objects, func(i, j int) bool {
		if !objects[i].LastModified.Equal(objects[j].LastModified) {
			return objects[i].LastModified.After(objects[j].LastModified)
		}
		return objects[i].Key < objects[j].Key
	})
	return objects, nil
}

// GetArchivedReport fetches one archived report by file name.
func (s *PredictionService) GetArchivedReport(ctx context.Context, name string) ([]byte, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, ErrInvalidReport
	}
	return s.archive.GetObject(ctx, s.archiveKey(name))
}

func (s *PredictionService) archiveKey(name string) string {
	return s.archivePrefix + name
}
