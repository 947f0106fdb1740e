package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KotFed0t/portfolio_tracker/config"
	"github.com/KotFed0t/portfolio_tracker/data"
	"github.com/KotFed0t/portfolio_tracker/data/cache"
	"github.com/KotFed0t/portfolio_tracker/data/repository/sqlRepo"
	"github.com/KotFed0t/portfolio_tracker/internal/coinRegistry"
	"github.com/KotFed0t/portfolio_tracker/internal/externalApi/cloudStorageApi/googleDriveApi"
	"github.com/KotFed0t/portfolio_tracker/internal/externalApi/coinGeckoApi"
	"github.com/KotFed0t/portfolio_tracker/internal/externalApi/yahooApi"
	"github.com/KotFed0t/portfolio_tracker/internal/priceResolver"
	"github.com/KotFed0t/portfolio_tracker/internal/reportGenerator/xslsxGenerator"
	"github.com/KotFed0t/portfolio_tracker/internal/scheduler"
	"github.com/KotFed0t/portfolio_tracker/internal/service/portfolioService"
	"github.com/KotFed0t/portfolio_tracker/internal/tgbot"
	"github.com/KotFed0t/portfolio_tracker/internal/transport/cli"
	"github.com/KotFed0t/portfolio_tracker/internal/transport/telegram"
	"github.com/KotFed0t/portfolio_tracker/utils"
	"github.com/google/subcommands"
	"github.com/jonboulle/clockwork"
)

func main() {
	os.Exit(int(run()))
}

func run() subcommands.ExitStatus {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := data.NewDBClient(cfg)
	defer db.Close()

	repo := sqlRepo.New(db)

	var coinStore coinRegistry.Store
	if cfg.Redis.Enabled {
		redisClient := data.NewRedisClient(cfg)
		defer redisClient.Close()
		coinStore = cache.NewRedisCache(redisClient, cfg)
	}

	clock := clockwork.NewRealClock()

	yahooClient := yahooApi.New(cfg)
	coinGeckoClient := coinGeckoApi.New(cfg)

	coins := coinRegistry.New(coinGeckoClient, coinStore, clock, cfg.Resolver.CoinListTTL)

	resolver := priceResolver.New(yahooClient, coinGeckoClient, coins, clock, priceResolver.Options{
		RequestDelay:     cfg.Resolver.CryptoRequestDelay,
		RateLimitBackoff: cfg.Resolver.CryptoRateLimitBackoff,
	})

	reportGenerator := xslsxGenerator.New()

	var storage portfolioService.CloudStorage
	if cfg.GoogleDrive.CredentialsFile != "" {
		storage = googleDriveApi.New(ctx, cfg)
	}

	portfolioSrv := portfolioService.New(repo, resolver, coins, reportGenerator, storage, clock, portfolioService.Options{
		CryptoBatchDelay: cfg.Resolver.CryptoBatchDelay,
	})

	serve := func(ctx context.Context) error {
		sched := scheduler.New(clock)
		if cfg.Jobs.PriceRefreshInterval > 0 {
			sched.NewIntervalJob("refresh prices", portfolioSrv.RefreshPricesJob, cfg.Jobs.PriceRefreshInterval, true)
		}
		if storage != nil && cfg.Jobs.ReportCleanupInterval > 0 {
			sched.NewIntervalJob("cleanup reports", portfolioSrv.CleanupReports, cfg.Jobs.ReportCleanupInterval, false)
		}
		sched.Start()
		defer sched.Stop()

		if cfg.Telegram.Token != "" {
			tgController := telegram.NewController(cfg, portfolioSrv)
			tgBot := tgbot.New(cfg, tgController)
			tgBot.Start()
			defer tgBot.Stop()
		} else {
			slog.Warn("TELEGRAM_TOKEN is empty, running without bot")
		}

		// Waiting interruption signal
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-interrupt:
		case <-ctx.Done():
		}
		return nil
	}

	commander := subcommands.NewCommander(flag.CommandLine, os.Args[0])
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cli.Register(commander, portfolioSrv, serve)

	flag.Parse()
	return commander.Execute(utils.WithRequestID(ctx))
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	// stdout carries command output
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
