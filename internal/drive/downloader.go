package drive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DownloadOptions controls how catalog files are pulled from Google Drive.
type DownloadOptions struct {
	FolderID    string
	DownloadDir string
}

// Downloader copies catalog exports from a Drive folder to local disk so they
// can be served by a file-backed repository.
type Downloader struct {
	store FileStore
}

// NewDownloader creates a new Downloader.
func NewDownloader(store FileStore) *Downloader {
	return &Downloader{store: store}
}

// DownloadCatalogs saves every CSV and XLSX file of the folder into
// DownloadDir and returns the local paths. Native Google Sheets are saved as
// CSV.
func (d *Downloader) DownloadCatalogs(ctx context.Context, opts DownloadOptions) ([]string, error) {
	if opts.DownloadDir == "" {
		return nil, fmt.Errorf("download dir is required")
	}
	if err := os.MkdirAll(opts.DownloadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	files, err := d.store.ListFiles(ctx, opts.FolderID)
	if err != nil {
		return nil, err
	}

	var localPaths []string
	for _, f := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		name := localName(f)
		if name == "" {
			continue
		}

		localPath := filepath.Join(opts.DownloadDir, name)
		out, err := os.Create(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create local file %s: %w", localPath, err)
		}
		if err := d.store.DownloadFile(ctx, f, out); err != nil {
			out.Close()
			os.Remove(localPath)
			return nil, fmt.Errorf("failed to download %s: %w", f.Name, err)
		}
		if err := out.Close(); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", localPath, err)
		}
		localPaths = append(localPaths, localPath)
	}

	return localPaths, nil
}

// localName returns the file name to store f under, or "" when f is not a
// catalog export.
func localName(f *File) string {
	base := filepath.Base(f.Name)
	if f.MimeType == googleSheetMimeType {
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
	}

	switch strings.ToLower(filepath.Ext(base)) {
	case ".csv", ".xlsx":
		return base
	}
	return ""
}
