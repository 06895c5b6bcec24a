package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/app"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/config"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/events/kafka"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/input"
	interfaces "github.com/sheikh-saqib/transaction-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/ledger"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/logging"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/storage/memory"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is the whole CLI behind main. It returns the process exit status;
// stdout only ever receives the account table.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintf(stderr, "usage: %s <transactions.csv>\n", args[0])
		return 1
	}

	cfg, err := config.Load(os.Getenv("LEDGER_CONFIG"))
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	logger, err := logging.New(stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if err := process(ctx, cfg, args[1], stdout, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		return 1
	}
	return 0
}

func process(ctx context.Context, cfg config.Config, path string, stdout io.Writer, logger *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reader, err := input.NewCSVReader(file)
	if err != nil {
		return err
	}

	// sinks connect on first write, so a run that aborts never reaches them
	sinks, closeSinks, err := buildSinks(cfg)
	if err != nil {
		return err
	}
	defer closeSinks()

	engine := ledger.NewEngine(memory.NewAccountStore(), memory.NewAmountStore(), cfg.Engine, logger)

	_, err = app.Run(ctx, app.Params{
		RunID:     uuid.New().String(),
		Source:    reader,
		Engine:    engine,
		Malformed: cfg.MalformedRecordPolicy,
		Format:    cfg.OutputFormat,
		Out:       stdout,
		Sinks:     sinks,
		Logger:    logger,
	})
	return err
}

func buildSinks(cfg config.Config) ([]interfaces.SnapshotSink, func(), error) {
	var (
		sinks   []interfaces.SnapshotSink
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	for _, name := range cfg.Sinks {
		switch name {
		case config.SinkPostgres:
			db, err := postgres.Open(cfg.DatabaseURL)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("postgres: %w", err)
			}
			closers = append(closers, func() { db.Close() })
			sinks = append(sinks, postgres.NewSnapshotStore(db))

		case config.SinkKafka:
			publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
			closers = append(closers, func() { publisher.Close() })
			sinks = append(sinks, kafka.NewSnapshotSink(publisher))
		}
	}
	return sinks, closeAll, nil
}
