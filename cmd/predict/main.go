package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/appsmart/inventario/backend-go/internal/cache"
	"github.com/appsmart/inventario/backend-go/internal/catalog"
	"github.com/appsmart/inventario/backend-go/internal/config"
	"github.com/appsmart/inventario/backend-go/internal/prediction"
	"github.com/appsmart/inventario/backend-go/internal/service"
	"github.com/appsmart/inventario/backend-go/internal/storage"
	"github.com/appsmart/inventario/backend-go/pkg/logger"
)

type contextKey string

const (
	serviceKey contextKey = "prediction_service"
	closerKey  contextKey = "catalog_closer"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string (overrides DB_* settings)",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func catalogFlags() []cli.Flag {
	return []cli.Flag{
		newDBURLFlag(),
		&cli.StringFlag{
			Name:    "catalog",
			Usage:   "Catalog source: postgres, csv or drive",
			EnvVars: []string{"CATALOG_SOURCE"},
		},
		&cli.StringFlag{
			Name:    "catalog-path",
			Usage:   "CSV or XLSX catalog file for the csv source",
			EnvVars: []string{"CATALOG_CSV_PATH"},
		},
		&cli.StringFlag{
			Name:    "drive-file-id",
			Usage:   "Google Drive file id for the drive source",
			EnvVars: []string{"CATALOG_DRIVE_FILE_ID"},
		},
	}
}

// logToErrWriter keeps stdout for command output, so --json stays parseable.
func logToErrWriter(c *cli.Context) error {
	logger.SetOutput(logger.Console(c.App.ErrWriter))
	return nil
}

// initService opens the catalog and stores a ready PredictionService in the
// command context.
func initService(c *cli.Context) error {
	cfg := config.Load()
	logger.SetLevel(cfg.App.LogLevel)

	opts := catalog.FromConfig(cfg)
	if v := c.String("catalog"); v != "" {
		opts.Source = v
	}
	if v := c.String("catalog-path"); v != "" {
		opts.CSVPath = v
	}
	if v := c.String("drive-file-id"); v != "" {
		opts.DriveFileID = v
	}
	opts.DatabaseURL = c.String("db-url")

	repo, closer, err := catalog.Open(c.Context, opts)
	if err != nil {
		return err
	}

	predictionCache, err := cache.NewPredictionCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("prediction cache unavailable")
		predictionCache = cache.NewNoopPredictionCache()
	}

	var archive storage.ObjectStorage
	if store, err := storage.New(c.Context, cfg.Storage, cfg.App.DataDir); err != nil {
		logger.Log.Warn().Err(err).Str("driver", cfg.Storage.Driver).Msg("report archive unavailable")
	} else {
		archive = store
	}

	generator := prediction.NewGenerator(prediction.Config{
		LearningRate: cfg.Prediction.LearningRate,
		Epochs:       cfg.Prediction.Epochs,
	})
	svc := service.NewPredictionService(repo, generator, predictionCache, archive, cfg.Storage.Prefix)

	c.Context = context.WithValue(c.Context, serviceKey, svc)
	c.Context = context.WithValue(c.Context, closerKey, closer)
	return nil
}

func closeService(c *cli.Context) error {
	if closer, ok := c.Context.Value(closerKey).(io.Closer); ok && closer != nil {
		return closer.Close()
	}
	return nil
}

func predictionService(c *cli.Context) (*service.PredictionService, error) {
	svc, ok := c.Context.Value(serviceKey).(*service.PredictionService)
	if !ok || svc == nil {
		return nil, fmt.Errorf("prediction service not found in context")
	}
	return svc, nil
}

func withCatalog(cmd *cli.Command) *cli.Command {
	cmd.Flags = append(catalogFlags(), cmd.Flags...)
	cmd.Before = initService
	cmd.After = closeService
	return cmd
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "predict",
		Usage:  "Generate purchase recommendations and inventory reports",
		Before: logToErrWriter,
		Commands: []*cli.Command{
			withCatalog(&cli.Command{
				Name:  "generate",
				Usage: "Run the model and print the recommendations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Only print the first N recommendations (0 prints all)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the full payload as JSON",
					},
					&cli.StringFlag{
						Name:  "accion",
						Usage: "Only print one decision: comprar or no_comprar",
					},
					&cli.BoolFlag{
						Name:  "refresh",
						Usage: "Drop cached predictions before generating",
					},
				},
				Action: runGenerate,
			}),
			withCatalog(&cli.Command{
				Name:  "export",
				Usage: "Write the purchase and stock reports as CSV files",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "kind",
						Usage: "Report to export: compras or stock (repeatable, defaults to both)",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output directory",
						Value: "./data/reports",
					},
				},
				Action: runExport,
			}),
			withCatalog(&cli.Command{
				Name:   "archive",
				Usage:  "Upload both reports to the configured object storage",
				Action: runArchive,
			}),
			withCatalog(&cli.Command{
				Name:   "list-archive",
				Usage:  "List archived reports, most recent first",
				Action: runListArchive,
			}),
			{
				Name:  "pull-catalog",
				Usage: "Download catalog spreadsheets from a Google Drive folder",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "folder-id",
						Usage: "Drive folder id",
					},
					&cli.StringFlag{
						Name:  "folder-path",
						Usage: "Drive folder path, resolved when --folder-id is empty",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Download directory",
						Value: "./data/catalog",
					},
					&cli.StringFlag{
						Name:    "credentials",
						Usage:   "Service account credentials JSON",
						EnvVars: []string{"GOOGLE_DRIVE_CREDENTIALS_JSON"},
					},
				},
				Action: runPullCatalog,
			},
		},
	}
}
