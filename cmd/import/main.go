package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/ignite/impact-dashboard/internal/cache"
	"github.com/ignite/impact-dashboard/internal/config"
	"github.com/ignite/impact-dashboard/internal/datanorm"
	"github.com/ignite/impact-dashboard/internal/domain"
	"github.com/ignite/impact-dashboard/internal/pkg/logger"
	"github.com/ignite/impact-dashboard/internal/repository/postgres"
	"github.com/ignite/impact-dashboard/internal/service/ingest"
	"github.com/ignite/impact-dashboard/internal/storage"
)

type importOptions struct {
	configPath string
	dsn        string
	entity     string
	dryRun     bool
}

func main() {
	if err := newImportCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <file|dir|s3://bucket/prefix>",
		Short: "Load CSV exports into the dashboard database",
		Long: "Import reads one CSV file, every *.csv in a directory, or every *.csv\n" +
			"under an S3 prefix. Each file's entity comes from --entity or is\n" +
			"detected from its name and header row.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "config/config.yaml", "Config file")
	cmd.Flags().StringVar(&opts.dsn, "database-url", "", "Postgres DSN (default: DATABASE_URL)")
	cmd.Flags().StringVar(&opts.entity, "entity", "", "Entity for every file: volunteers, members, shifts, donations or activities")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Classify files without writing")

	return cmd
}

func runImport(ctx context.Context, opts importOptions, location string, out io.Writer) error {
	cfg, err := config.LoadFromEnv(opts.configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, "console", "import"); err != nil {
		return err
	}
	defer logger.Sync()

	var forced domain.EntityType
	if opts.entity != "" {
		e, ok := domain.ParseEntityType(strings.ToLower(opts.entity))
		if !ok {
			return fmt.Errorf("unknown --entity %q", opts.entity)
		}
		forced = e
	}

	var s3API storage.S3API
	if storage.IsS3(location) {
		client, err := storage.NewS3Client(ctx, cfg.AWS.Region, cfg.AWS.Profile)
		if err != nil {
			return err
		}
		s3API = client
	}
	sources := storage.NewSources(s3API)

	files, err := sources.List(ctx, location)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no CSV files found at %s", location)
	}

	var svc *ingest.Service
	if !opts.dryRun {
		dsn := opts.dsn
		if dsn == "" {
			dsn = cfg.Database.URL
		}
		if dsn == "" {
			return errors.New("DATABASE_URL is required")
		}
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping: %w", err)
		}

		var ingestOpts []ingest.Option
		if cfg.Redis.URL != "" {
			client, err := cache.NewClient(ctx, cfg.Redis.URL)
			if err != nil {
				logger.Warn("redis unavailable, dashboard cache will expire on its own", "error", err)
			} else {
				defer client.Close()
				ingestOpts = append(ingestOpts, ingest.WithInvalidator(cache.NewMetricsCache(client, cfg.Redis.MetricsTTL())))
			}
		}
		svc = ingest.NewService(postgres.NewIngestRepo(db), ingestOpts...)
	}

	imp := &importer{
		sources:    sources,
		classifier: datanorm.NewClassifier(),
		ingest:     svc,
		forced:     forced,
		out:        out,
	}
	return imp.run(ctx, files)
}

// importer loads files one at a time. A file that fails is reported and the
// remaining files still run.
type importer struct {
	sources    *storage.Sources
	classifier *datanorm.Classifier
	ingest     *ingest.Service
	forced     domain.EntityType
	out        io.Writer
}

func (im *importer) run(ctx context.Context, files []string) error {
	var failed []string
	total := 0
	for _, f := range files {
		n, entity, err := im.importFile(ctx, f)
		if err != nil {
			logger.Error("import failed", "file", f, "error", err)
			failed = append(failed, f)
			continue
		}
		total += n
		if im.ingest == nil {
			fmt.Fprintf(im.out, "%s\t%s\n", f, entity)
		} else {
			fmt.Fprintf(im.out, "%s\t%s\t%d rows\n", f, entity, n)
		}
	}
	logger.Info("import finished", "files", len(files), "failed", len(failed), "rows", total)
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed: %s", len(failed), len(files), strings.Join(failed, ", "))
	}
	return nil
}

func (im *importer) importFile(ctx context.Context, location string) (int, domain.EntityType, error) {
	rc, err := im.sources.Open(ctx, location)
	if err != nil {
		return 0, "", err
	}
	defer rc.Close()

	header, body, err := datanorm.PeekHeader(rc)
	if err != nil {
		return 0, "", err
	}

	entity := im.forced
	if entity == "" {
		e, ok := im.classifier.Classify(location, header)
		if !ok {
			return 0, "", fmt.Errorf("cannot tell which entity %s holds; pass --entity", location)
		}
		entity = e
	}
	if im.ingest == nil {
		return 0, entity, nil
	}

	res, err := im.ingest.ProcessCSV(ctx, entity, body)
	if err != nil {
		return 0, entity, err
	}
	return res.Processed, entity, nil
}
