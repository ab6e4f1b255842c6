package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"service-fxrates/internal"
	rateshttp "service-fxrates/internal/api/http/rates"
	currencyLayer "service-fxrates/internal/currency_layer"
	"service-fxrates/internal/metrics"
	"service-fxrates/internal/middleware"
	"service-fxrates/internal/postgresql"
	"service-fxrates/internal/ratefile"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

func main() {
	issueKey := flag.Bool("issue-key", false, "create an API key, print it and exit")
	revokeKey := flag.String("revoke-key", "", "revoke the given API key and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *issueKey, *revokeKey); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, issueKey bool, revokeKey string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// DB is optional
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		if pool, err = openDB(ctx, cfg.DatabaseURL); err != nil {
			return err
		}
		defer pool.Close()
	}

	if issueKey || revokeKey != "" {
		if pool == nil {
			return errors.New("managing API keys needs DATABASE_URL")
		}
		keys := postgresql.NewAPIKeyStorage(pool)
		if revokeKey != "" {
			return revokeAPIKey(ctx, keys, revokeKey, cfg.EncodingKey)
		}
		return issueAPIKey(ctx, keys, cfg.EncodingKey)
	}

	// rate tables
	historicalTable, err := ratefile.Load(cfg.RatesCSVPath, cfg.DateLayouts)
	if err != nil {
		return fmt.Errorf("load historical rates: %w", err)
	}
	seriesTable := historicalTable
	if cfg.RatesXLSXPath != "" {
		if seriesTable, err = ratefile.Load(cfg.RatesXLSXPath, cfg.DateLayouts); err != nil {
			return fmt.Errorf("load series rates: %w", err)
		}
	}
	logger.Info("rate tables loaded",
		slog.Int("historical_rows", historicalTable.Len()),
		slog.Int("series_rows", seriesTable.Len()),
	)

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// live client
	client := currencyLayer.New(cfg.APIKey, internal.LiveCurrencyCodes(), cfg.ClientTimeout).WithObserver(m)
	client.BaseURL = cfg.ProviderURL

	deps := rateshttp.Deps{
		Live:       client,
		Historical: internal.NewHistoricalRateSource(historicalTable),
		Basket:     internal.NewBasketValuator(client, logger),
		Series:     internal.NewSeriesConverter(seriesTable),
		Audit:      internal.NewSlogAuditLogger(logger),
		Skips:      m,
		Logger:     logger,
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.AccessLog(logger, m))
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})).Methods(http.MethodGet)
	api := router.NewRoute().Subrouter()

	var (
		scheduler *cron.Cron
		warmup    func(context.Context)
	)
	if pool != nil {
		snapshots := postgresql.NewSnapshotStorage(pool)
		deps.Snapshots = snapshots
		deps.Audit = internal.NewStorageAuditLogger(postgresql.NewRequestLogStorage(pool))

		validator := internal.NewAPIKeyValidator(postgresql.NewAPIKeyStorage(pool), cfg.EncodingKey)
		api.Use(middleware.APIKeyAuth(validator))

		job := snapshotJob{
			recorder: internal.NewSnapshotRecorder(client, snapshots, internal.CurrencyCode(cfg.SnapshotBase)),
			base:     cfg.SnapshotBase,
			logger:   logger,
		}
		if scheduler, err = snapshotScheduler(ctx, cfg, job); err != nil {
			return err
		}
		warmup = job.run
	} else {
		logger.Warn("DATABASE_URL is empty, API key auth, request log storage and snapshots are off")
	}

	rateshttp.New(deps).Register(api)

	g, gctx := errgroup.WithContext(ctx)
	if scheduler != nil {
		g.Go(func() error {
			return runCron(gctx, scheduler, warmup)
		})
	}
	g.Go(func() error {
		return serveHTTP(gctx, ":"+cfg.HTTPPort, router, logger)
	})

	logger.Info("running, stop with Ctrl+C / SIGTERM")
	return g.Wait()
}

func openDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(dbCtx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	if err := postgresql.NewMigrations(pool).Setup(dbCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure tables: %w", err)
	}
	return pool, nil
}

func issueAPIKey(ctx context.Context, keys *postgresql.APIKeyStorage, encodingKey string) error {
	raw := uuid.NewString()
	if err := keys.Register(ctx, internal.HashAPIKey(raw, []byte(encodingKey))); err != nil {
		return fmt.Errorf("register api key: %w", err)
	}
	fmt.Println(raw)
	return nil
}

func revokeAPIKey(ctx context.Context, keys *postgresql.APIKeyStorage, raw, encodingKey string) error {
	revoked, err := keys.Revoke(ctx, internal.HashAPIKey(raw, []byte(encodingKey)))
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	if !revoked {
		return errors.New("api key not found or already revoked")
	}
	fmt.Println("revoked")
	return nil
}

type snapshotJob struct {
	recorder *internal.SnapshotRecorder
	base     string
	logger   *slog.Logger
}

func (j snapshotJob) run(ctx context.Context) {
	n, err := j.recorder.Record(ctx)
	if err != nil {
		j.logger.Error("snapshot failed", slog.String("base", j.base), slog.Any("error", err))
		return
	}
	j.logger.Info("snapshot recorded", slog.String("base", j.base), slog.Int("rates", n))
}

// snapshotScheduler schedules job on cfg.CronSpec. It records nothing itself;
// the first snapshot is taken by runCron.
func snapshotScheduler(ctx context.Context, cfg Config, job snapshotJob) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("load location %s: %w", cfg.Location, err)
	}
	scheduler := cron.New(
		cron.WithLocation(loc),
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)),
	)

	if _, err := scheduler.AddFunc(cfg.CronSpec, func() { job.run(ctx) }); err != nil {
		return nil, fmt.Errorf("add cron func: %w", err)
	}
	return scheduler, nil
}

// runCron starts c, then runs warmup (may be nil) on this goroutine so the
// HTTP server does not wait for it.
func runCron(ctx context.Context, c *cron.Cron, warmup func(context.Context)) error {
	c.Start()
	defer func() {
		stopCtx := c.Stop()
		<-stopCtx.Done()
	}()

	if warmup != nil {
		warmup(ctx)
	}
	<-ctx.Done()
	return nil
}

func serveHTTP(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	logger.Info("HTTP listening", slog.String("addr", addr))
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
