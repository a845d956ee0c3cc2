package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ionfleet/fleetctl/internal/dispatcher"
	"github.com/ionfleet/fleetctl/internal/executor"
	"github.com/ionfleet/fleetctl/internal/queue"
	"github.com/ionfleet/fleetctl/internal/scheduler"
	"github.com/ionfleet/fleetctl/internal/store"
	"github.com/ionfleet/fleetctl/internal/warehouse"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the fleet controller loop",
		Long: `Loads configuration, hydrates the in-memory warehouse from the game API,
and runs the scheduler until interrupted (SIGINT/SIGTERM).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon()
		},
	}
}

func runDaemon() error {
	fmt.Println("fleetctl")
	fmt.Println("========")

	fmt.Println("Loading configuration...")
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := openLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	fmt.Println("Logger initialized")

	tradeLog, err := openTradeLog(cfg)
	if err != nil {
		return fmt.Errorf("open trade log: %w", err)
	}
	defer tradeLog.Close()
	fmt.Printf("Trade log: %s, %s\n", cfg.Logging.TradeLogPath, cfg.Logging.CreditsLogPath)

	fmt.Printf("Opening database: %s\n", cfg.Database.Path)
	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close(db)
	st := store.New(db, nil, cfg.Database.RetentionDays)
	fmt.Println("Database ready")

	client := newTransportClient(cfg, logger)
	fmt.Println("API client initialized")

	wh := warehouse.New(st, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Metrics.Enabled {
		if err := startMetrics(ctx, cfg.Metrics); err != nil {
			return fmt.Errorf("start metrics: %w", err)
		}
		fmt.Printf("Metrics serving on %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
	}

	fmt.Println("Hydrating warehouse from the game API...")
	if err := hydrateWarehouse(ctx, client, wh); err != nil {
		return fmt.Errorf("hydrate warehouse: %w", err)
	}
	fmt.Printf("Fleet loaded: %d ships\n", len(wh.AllShipSymbols()))

	dsp := dispatcher.New(wh, nil, dispatcher.WithMinSellPrice(cfg.Dispatch.MinSellPrice), dispatcher.WithLogger(logger))
	ex := executor.New(client, wh, st, nil, executor.WithLogger(logger), executor.WithTradeLog(tradeLog), executor.WithMinSellPrice(cfg.Dispatch.MinSellPrice))
	q := queue.New()
	sched := scheduler.New(q, dsp, ex, nil, logger)
	sched.Seed(wh.AllShipSymbols())

	fmt.Println("Scheduler starting. Press Ctrl+C to stop.")
	if err := sched.Run(ctx); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	fmt.Println("fleetctl stopped")
	return nil
}
