package drive

import (
	"context"
	"fmt"
	"io"

	"github.com/appsmart/inventario/backend-go/internal/domain"
	"github.com/appsmart/inventario/backend-go/internal/repository"
	"github.com/appsmart/inventario/backend-go/pkg/logger"
)

// FileStore is the subset of the Drive API the catalog readers need.
type FileStore interface {
	ListFiles(ctx context.Context, folderID string) ([]*File, error)
	GetFile(ctx context.Context, fileID string) (*File, error)
	DownloadFile(ctx context.Context, file *File, w io.Writer) error
}

// CatalogRepository reads the product catalog from a CSV or XLSX file kept in
// Google Drive. The file is downloaded again on every call.
type CatalogRepository struct {
	store  FileStore
	fileID string
}

func NewCatalogRepository(store FileStore, fileID string) *CatalogRepository {
	return &CatalogRepository{store: store, fileID: fileID}
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	if r.fileID == "" {
		return nil, fmt.Errorf("drive catalog file id is not configured")
	}

	file, err := r.store.GetFile(ctx, r.fileID)
	if err != nil {
		return nil, err
	}

	format := repository.FormatFromName(file.Name)
	if file.MimeType != googleSheetMimeType && format == repository.FormatCSV {
		format = repository.FormatFromName(file.MimeType)
	}

	// 1. Download file from Drive
	pr, pw := io.Pipe()
	go func() {
		err := r.store.DownloadFile(ctx, file, pw)
		pw.CloseWithError(err)
	}()

	// 2. Parse catalog
	products, err := repository.ReadCatalog(pr, format)
	// unblock the writer if parsing stopped early
	pr.CloseWithError(io.ErrClosedPipe)
	if err != nil {
		return nil, fmt.Errorf("failed to read drive catalog %s: %w", file.Name, err)
	}

	logger.Log.Debug().
		Str("file", file.Name).
		Str("format", format).
		Int("products", len(products)).
		Msg("catalog loaded from drive")

	return products, nil
}
