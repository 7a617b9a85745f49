package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"TrendSentry/internal/collector"
	"TrendSentry/internal/config"
	"TrendSentry/internal/narrative"
	"TrendSentry/internal/notifier"
	"TrendSentry/internal/pipeline"
	"TrendSentry/internal/recorder"
	"TrendSentry/internal/scheduler"
)

var cfgPath string

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// .env is optional; real environments set variables directly.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env file")
	}

	root := &cobra.Command{
		Use:   "sentry",
		Short: "Technical-analysis signal engine for US and HK equities",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "configs/config.yaml", "path to config file")

	root.AddCommand(
		buyCmd(),
		watchlistCmd(),
		scanCmd(),
		sellCmd(),
		indexBuyCmd(),
		indexSellCmd(),
		stopLossCmd(),
		daemonCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads config and wires the shared components. The returned
// cleanup closes the recorder.
func setup() (*pipeline.Runner, func(), error) {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	fetcher := collector.NewYahooFetcher(cfg.DataSource.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.New(fetcher, time.Duration(cfg.DataSource.FetchIntervalMS)*time.Millisecond)

	llm := narrative.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)
	if llm == nil {
		log.Println("[INFO] narrative rendering disabled (no LLM endpoint)")
	}

	var n notifier.Notifier
	email := notifier.NewEmailNotifier(cfg.Email.SMTPHost, cfg.Email.SMTPPort,
		cfg.Email.Username, cfg.Email.Password, cfg.Email.From, cfg.Email.To)
	if email.Configured() {
		n = email
	} else {
		log.Println("[INFO] email not configured, reports go to stdout")
		n = notifier.NoopNotifier{}
	}

	var rec recorder.Recorder
	cleanup := func() {}
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			cleanup = func() { sr.Close() }
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	return pipeline.NewRunner(cfg, col, llm, n, rec), cleanup, nil
}

func runOnce(fn func(ctx context.Context, r *pipeline.Runner) error) error {
	runner, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return fn(ctx, runner)
}

func buyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <symbol>",
		Short: "Run the 10-point buy checklist for one symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runOnce(func(ctx context.Context, r *pipeline.Runner) error {
				return r.RunSingleCheck(ctx, args[0])
			})
		},
	}
}

func watchlistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watchlist",
		Short: "Run the buy checklist for every watchlist symbol",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runOnce(func(ctx context.Context, r *pipeline.Runner) error {
				return r.RunWatchlistReport(ctx)
			})
		},
	}
}

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan the configured universe and rank candidates",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runOnce(func(ctx context.Context, r *pipeline.Runner) error {
				return r.RunScan(ctx)
			})
		},
	}
}

func sellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sell <symbol>",
		Short: "Check the MACD death-cross exit rule for one symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runOnce(func(ctx context.Context, r *pipeline.Runner) error {
				return r.RunSellCheck(ctx, args[0])
			})
		},
	}
}

func indexBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index-buy",
		Short: "Check the two-rule index entry condition",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runOnce(func(ctx context.Context, r *pipeline.Runner) error {
				return r.RunIndexBuy(ctx)
			})
		},
	}
}

func indexSellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index-sell",
		Short: "Check the index exit condition per held lot",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runOnce(func(ctx context.Context, r *pipeline.Runner) error {
				return r.RunIndexSell(ctx)
			})
		},
	}
}

func stopLossCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop-loss",
		Short: "Check every held lot against the drawdown threshold",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runOnce(func(ctx context.Context, r *pipeline.Runner) error {
				return r.RunStopLoss(ctx)
			})
		},
	}
}

func daemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run all pipelines on their cron schedules",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sched := scheduler.NewScheduler(ctx, runner)
			cfg := runner.Cfg
			if err := sched.RegisterAll(cfg.Schedule.WatchlistCron, cfg.Schedule.ScanCron,
				cfg.Schedule.IndexCron, cfg.Schedule.StopLossCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if os.Getenv("RUN_ON_START") == "true" {
				log.Println("[INFO] RUN_ON_START enabled, executing watchlist task now")
				go func() {
					if err := runner.RunWatchlistReport(ctx); err != nil {
						log.Printf("[ERROR] watchlist task: %v", err)
					}
				}()
			}

			log.Println("[INFO] TrendSentry is running. Press Ctrl+C to stop.")
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			log.Println("[INFO] shutdown signal received, stopping...")
			cancel()
			return nil
		},
	}
}
