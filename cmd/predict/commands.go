package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/appsmart/inventario/backend-go/internal/domain"
	"github.com/appsmart/inventario/backend-go/internal/drive"
	"github.com/appsmart/inventario/backend-go/internal/report"
	"github.com/appsmart/inventario/backend-go/pkg/logger"
)

func runGenerate(c *cli.Context) error {
	svc, err := predictionService(c)
	if err != nil {
		return err
	}

	var (
		action    domain.Action
		filtering bool
	)
	if raw := c.String("accion"); raw != "" {
		parsed, ok := domain.ParseAction(raw)
		if !ok {
			return fmt.Errorf("unknown accion %q (use comprar or no_comprar)", raw)
		}
		action, filtering = parsed, true
	}

	fetch := svc.GetPredictions
	if c.Bool("refresh") {
		fetch = svc.RefreshPredictions
	}
	payload, err := fetch(c.Context)
	if err != nil {
		return err
	}

	items := payload.Items
	if filtering {
		items = payload.WithAction(action)
	}
	if limit := c.Int("limit"); limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	if c.Bool("json") {
		out := *payload
		out.Items = items
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRODUCTO\tPROB\tACCION\tCANTIDAD\tMOTIVO")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%.2f%%\t%s\t%d\t%s\n",
			item.Product.ID,
			item.Product.Title,
			item.ProbabilityPct,
			item.Action,
			item.SuggestedQuantity,
			item.Reason,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "\nsugerencias: %d  sobrestock: %d  total: %d\n",
		payload.Suggestions, payload.Overstock, len(payload.Items))
	return nil
}

func runExport(c *cli.Context) error {
	svc, err := predictionService(c)
	if err != nil {
		return err
	}

	kinds := report.Kinds
	if names := c.StringSlice("kind"); len(names) > 0 {
		kinds = make([]report.Kind, 0, len(names))
		for _, name := range names {
			kind, err := report.ParseKind(name)
			if err != nil {
				return err
			}
			kinds = append(kinds, kind)
		}
	}

	outDir := c.String("out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", outDir, err)
	}

	// one run for every report so their contents and file names agree
	payload, err := svc.GetPredictions(c.Context)
	if err != nil {
		return err
	}

	for _, kind := range kinds {
		name, data, err := report.Render(kind, payload)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Log.Info().Str("path", path).Int("bytes", len(data)).Msg("report written")
	}
	return nil
}

func runArchive(c *cli.Context) error {
	svc, err := predictionService(c)
	if err != nil {
		return err
	}

	objects, err := svc.ArchiveReports(c.Context)
	if err != nil {
		return err
	}
	for _, obj := range objects {
		fmt.Fprintln(c.App.Writer, obj.Key)
	}
	return nil
}

func runListArchive(c *cli.Context) error {
	svc, err := predictionService(c)
	if err != nil {
		return err
	}

	objects, err := svc.ListArchivedReports(c.Context)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tSIZE\tMODIFIED")
	for _, obj := range objects {
		fmt.Fprintf(w, "%s\t%d\t%s\n", obj.Key, obj.Size, obj.LastModified.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runPullCatalog(c *cli.Context) error {
	creds := c.String("credentials")
	if creds == "" {
		return fmt.Errorf("google drive credentials are required (--credentials or GOOGLE_DRIVE_CREDENTIALS_JSON)")
	}

	svc, err := drive.NewService(c.Context, creds)
	if err != nil {
		return err
	}

	folderID := c.String("folder-id")
	if folderID == "" {
		folderPath := c.String("folder-path")
		if folderPath == "" {
			return fmt.Errorf("either --folder-id or --folder-path is required")
		}
		folderID, err = svc.FindFolderByPath(c.Context, folderPath)
		if err != nil {
			return err
		}
	}

	paths, err := drive.NewDownloader(svc).DownloadCatalogs(c.Context, drive.DownloadOptions{
		FolderID:    folderID,
		DownloadDir: c.String("out"),
	})
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Fprintln(c.App.Writer, p)
	}
	logger.Log.Info().Int("files", len(paths)).Str("folder", folderID).Msg("catalog files downloaded")
	return nil
}
