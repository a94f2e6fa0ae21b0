package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/crawl-frontier/internal/api"
	"github.com/JakeFAU/crawl-frontier/internal/clock/system"
	"github.com/JakeFAU/crawl-frontier/internal/config"
	"github.com/JakeFAU/crawl-frontier/internal/dupefilter"
	"github.com/JakeFAU/crawl-frontier/internal/journal"
	"github.com/JakeFAU/crawl-frontier/internal/logging"
	"github.com/JakeFAU/crawl-frontier/internal/metrics"
	"github.com/JakeFAU/crawl-frontier/internal/queue"
	"github.com/JakeFAU/crawl-frontier/internal/scheduler"
	redisstore "github.com/JakeFAU/crawl-frontier/internal/store/redis"
)

const shutdownTimeout = 10 * time.Second

// newServeCmd creates and configures the 'serve' subcommand, which runs
// the HTTP frontier API over one scheduler session until interrupted.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the frontier HTTP API",
		Long: `Opens a scheduler session for the configured job and serves the
frontier over HTTP until SIGINT/SIGTERM. Workers enqueue candidate
requests with POST /v1/requests and pop work with GET /v1/requests/next.`,
		RunE: runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics.Init()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("store close failed", zap.Error(cerr))
		}
	}()

	q, err := queue.New(cfg.Job.Strategy, st, cfg.Job.QueueKey())
	if err != nil {
		return err
	}
	filter := dupefilter.New(st, cfg.Job.DupeFilterKey(), logger)
	sched := scheduler.New(cfg.Job.Name, q, filter, cfg.Job.Persist, logger)

	jnl, closeJournal, err := openJournal(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	resumed, err := sched.Len(ctx)
	if err != nil {
		return fmt.Errorf("queue length: %w", err)
	}
	if err := sched.Open(ctx); err != nil {
		return fmt.Errorf("open scheduler: %w", err)
	}
	if !cfg.Job.Persist {
		resumed = 0
	}

	clk := system.New()
	session := journal.Session{
		ID:              uuid.New(),
		Job:             cfg.Job.Name,
		Strategy:        cfg.Job.Strategy,
		Persist:         cfg.Job.Persist,
		OpenedAt:        clk.Now(),
		ResumedRequests: resumed,
	}
	if jerr := jnl.SessionOpened(ctx, session); jerr != nil {
		logger.Warn("journal session open failed", zap.Error(jerr))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewServer(sched, cfg.Job.Name, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("frontier listening",
			zap.String("addr", server.Addr),
			zap.String("job", cfg.Job.Name),
			zap.String("strategy", cfg.Job.Strategy),
			zap.Bool("persist", cfg.Job.Persist),
		)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	reason := "finished"
	select {
	case <-ctx.Done():
		reason = "shutdown"
	case err = <-errCh:
		reason = "server error"
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := server.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("server shutdown failed", zap.Error(serr))
	}

	if cerr := sched.Close(shutdownCtx, reason); cerr != nil {
		logger.Error("scheduler close failed", zap.Error(cerr))
		if err == nil {
			err = cerr
		}
	}
	if jerr := jnl.SessionClosed(shutdownCtx, session.ID, clk.Now(), reason); jerr != nil {
		logger.Warn("journal session close failed", zap.Error(jerr))
	}

	return err
}

// openJournal wires the Postgres journal when a DSN is configured and a
// no-op otherwise.
func openJournal(ctx context.Context, cfg config.Config, logger *zap.Logger) (journal.Journal, func(), error) {
	if cfg.Journal.DSN == "" {
		return journal.Noop{}, func() {}, nil
	}
	pg, err := journal.NewPostgres(ctx, cfg.Journal.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect journal: %w", err)
	}
	logger.Info("session journal enabled")
	return pg, pg.Close, nil
}
