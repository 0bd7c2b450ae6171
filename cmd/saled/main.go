package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/saleledger/internal/clock"
	"github.com/goodnatureofminers/saleledger/internal/config"
	"github.com/goodnatureofminers/saleledger/internal/journal"
	"github.com/goodnatureofminers/saleledger/internal/journal/clickhouse"
	"github.com/goodnatureofminers/saleledger/internal/ledger"
	"github.com/goodnatureofminers/saleledger/internal/metrics"
	"github.com/goodnatureofminers/saleledger/internal/payment"
	"github.com/goodnatureofminers/saleledger/internal/pkg/observed"
	"github.com/goodnatureofminers/saleledger/internal/sale/engine"
	"github.com/goodnatureofminers/saleledger/internal/sale/monitor"
	"github.com/goodnatureofminers/saleledger/internal/transport"
)

type options struct {
	Addr                 string        `long:"addr" env:"SALED_ADDR" description:"gRPC listen address" default:":8000"`
	RestAddr             string        `long:"rest-addr" env:"SALED_REST_ADDR" description:"REST and metrics listen address" default:":8001"`
	SaleFile             string        `long:"sale-file" env:"SALED_SALE_FILE" description:"YAML sale definition" required:"true"`
	ClickhouseDSN        string        `long:"clickhouse-dsn" env:"SALED_CLICKHOUSE_DSN" description:"ClickHouse DSN for the event journal, events are only logged when empty"`
	MonitorInterval      time.Duration `long:"monitor-interval" env:"SALED_MONITOR_INTERVAL" description:"sale gauge refresh interval" default:"15s"`
	JournalFlushSize     int           `long:"journal-flush-size" env:"SALED_JOURNAL_FLUSH_SIZE" description:"events per journal batch" default:"500"`
	JournalFlushInterval time.Duration `long:"journal-flush-interval" env:"SALED_JOURNAL_FLUSH_INTERVAL" description:"max delay before a journal batch is written" default:"2s"`
	JournalRPS           int           `long:"journal-rps" env:"SALED_JOURNAL_RPS" description:"max journal batch writes per second" default:"10"`
}

func main() {
	cfg := options{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("saled failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg options, logger *zap.Logger) error {
	sale, err := config.LoadSaleFile(cfg.SaleFile)
	if err != nil {
		return err
	}
	name := sale.Engine.Sale
	logger = logger.With(zap.String("sale", name))

	token, err := ledger.NewToken(sale.Engine.Issuer, sale.Holder, sale.Supply, logger)
	if err != nil {
		return fmt.Errorf("init token ledger: %w", err)
	}
	channel := payment.NewChannel(logger, payment.WithOpenAccounts())
	clk := clock.System{}

	events, history, closeJournal, err := newEventSink(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	eng, err := engine.New(
		sale.Engine,
		observed.NewLedger(token, metrics.NewCollaborator("ledger")),
		observed.NewPaymentChannel(channel, metrics.NewCollaborator("payment")),
		clk,
		events,
		metrics.NewEngine(name),
		logger,
	)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	token.SetClawbackGate(eng)

	mon, err := monitor.NewService(eng, metrics.NewSaleMonitor(name), clk, logger.Named("monitor"), cfg.MonitorInterval)
	if err != nil {
		return err
	}
	go func() {
		if err := mon.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("sale monitor stopped", zap.Error(err))
		}
	}()

	handler, err := transport.NewSettlementHandler(eng, history, logger)
	if err != nil {
		return err
	}

	logger.Info("sale loaded",
		zap.String("issuer", string(eng.Issuer())),
		zap.String("wallet", string(eng.Wallet())),
		zap.String("holder", string(sale.Holder)),
		zap.String("supply", sale.Supply.Dec()),
		zap.Int("phases", len(sale.Engine.Phases)))

	if err := serveGRPC(ctx, cfg.Addr, handler, logger); err != nil {
		return err
	}
	return serveREST(ctx, cfg.Addr, cfg.RestAddr, logger)
}

// newEventSink returns the ClickHouse journal when a DSN is configured and a
// log-only sink otherwise. The returned func flushes and closes the journal.
func newEventSink(ctx context.Context, cfg options, logger *zap.Logger) (engine.EventSink, transport.History, func(), error) {
	if cfg.ClickhouseDSN == "" {
		logger.Warn("no clickhouse dsn, settlement events are only logged")
		return journal.NewLogSink(logger.Named("events")), nil, func() {}, nil
	}

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init repository: %w", err)
	}
	j, err := journal.New(repo, metrics.NewJournal(), logger.Named("journal"), cfg.JournalFlushSize, cfg.JournalFlushInterval, cfg.JournalRPS)
	if err != nil {
		_ = repo.Close()
		return nil, nil, nil, fmt.Errorf("init journal: %w", err)
	}
	// stopped by the returned func so the last batch survives shutdown
	j.Start(context.WithoutCancel(ctx))

	return j, repo, func() {
		j.Stop()
		if err := repo.Close(); err != nil {
			logger.Error("failed to close clickhouse repository", zap.Error(err))
		}
	}, nil
}
