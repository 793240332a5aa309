package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsbot/pkg/config"
	"github.com/umputun/newsbot/pkg/domain"
	"github.com/umputun/newsbot/pkg/notify"
	"github.com/umputun/newsbot/pkg/scheduler"
	"github.com/umputun/newsbot/pkg/source"
	"github.com/umputun/newsbot/pkg/store"
	"github.com/umputun/newsbot/pkg/telegram"
	"github.com/umputun/newsbot/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, built-in defaults if not set"`
	Token  string `long:"token" env:"BOT_TOKEN" description:"telegram bot token"`
	ChatID int64  `long:"chat" env:"CHAT_ID" description:"destination chat or channel id"`
	Once   bool   `long:"once" description:"run a single poll cycle and exit"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

const greeting = "Привет! Я публикую свежие новости прокуратуры, следственного комитета и МВД Якутии."

var revision = "unknown"

func main() {
	// credentials may come from .env file, real environment wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("failed to load .env: %v\n", err)
	}

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor, opts.Token)
	lgr.Printf("[INFO] starting newsbot version %s", revision)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1) //nolint:gocritic // cancel called above
	}
	lgr.Printf("[INFO] shutdown complete")
}

// run loads configuration, connects to telegram and runs the poll loop until ctx is done
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	// token may come from the config file, mask the resolved one
	setupLog(opts.Debug, opts.NoColor, cfg.Telegram.Token)

	st, err := store.New(ctx, store.Config{
		Type:            cfg.Store.Type,
		DSN:             cfg.Store.DSN,
		Path:            cfg.Store.Path,
		MaxOpenConns:    cfg.Store.MaxOpenConns,
		ConnMaxLifetime: cfg.Store.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			lgr.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	api, err := telegram.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("failed to connect to telegram: %w", err)
	}

	a, err := newApp(cfg, st, api)
	if err != nil {
		return err
	}

	if opts.Once {
		return a.runOnce(ctx)
	}
	return a.serve(ctx, opts.Debug)
}

// loadConfig reads the config file and applies credentials from the command line
func loadConfig(opts Opts) (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Token != "" {
		cfg.Telegram.Token = opts.Token
	}
	if opts.ChatID != 0 {
		cfg.Telegram.ChatID = opts.ChatID
	}
	if cfg.Telegram.Token == "" {
		return nil, errors.New("telegram token is required, set --token or BOT_TOKEN")
	}
	if cfg.Telegram.ChatID == 0 {
		return nil, errors.New("telegram chat id is required, set --chat or CHAT_ID")
	}
	return cfg, nil
}

// app holds wired components
type app struct {
	cfg         *config.Config
	store       store.Store
	api         telegram.BotAPI
	coordinator *scheduler.Coordinator
	scheduler   *scheduler.Scheduler
}

// newApp wires sources, store, dispatcher and scheduler
func newApp(cfg *config.Config, st store.Store, api telegram.BotAPI) (*app, error) {
	client := source.NewHTTPClient(cfg.Fetch.Timeout)
	images := &source.Images{Client: client, Dir: cfg.Fetch.ImagesDir, Keep: cfg.Fetch.KeepImages, UserAgent: cfg.Fetch.UserAgent}

	fetchers := make([]scheduler.SourceFetcher, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		f, err := source.New(sc.ID, source.Params{
			Client:    client,
			URL:       sc.URL,
			Headers:   sc.Headers,
			UserAgent: cfg.Fetch.UserAgent,
			Images:    images,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to make fetcher: %w", err)
		}
		fetchers = append(fetchers, source.NewRetrier(f, sc.MaxAttempts, cfg.Fetch.RetryDelay))
		lgr.Printf("[DEBUG] source %s: %s, attempts %d", sc.ID, sc.URL, sc.MaxAttempts)
	}

	dispatcher := notify.New(telegram.NewMessenger(api), notify.Params{
		ChatID:       cfg.Telegram.ChatID,
		Pacing:       cfg.Telegram.Pacing,
		ReadMoreText: cfg.Telegram.ReadMoreText,
	})
	coordinator := scheduler.NewCoordinator(scheduler.CoordinatorParams{Fetchers: fetchers, Store: st, Notifier: dispatcher})

	return &app{
		cfg:         cfg,
		store:       st,
		api:         api,
		coordinator: coordinator,
		scheduler:   scheduler.NewScheduler(coordinator, cfg.Schedule.Interval),
	}, nil
}

// runOnce runs a single cycle and logs every source outcome
func (a *app) runOnce(ctx context.Context) error {
	report, err := a.scheduler.RunNow(ctx)
	if err != nil {
		return fmt.Errorf("poll cycle failed: %w", err)
	}
	for _, o := range report.Sorted() {
		lgr.Printf("[INFO] %s: %s %s %s", o.Source, o.Status, o.Title, o.Reason)
	}
	if report.Count(domain.StatusNotified)+report.Count(domain.StatusUnchanged) == 0 && len(report.Outcomes) > 0 {
		return errors.New("all sources failed")
	}
	return nil
}

// serve runs the scheduler, the command listener and the optional status server until ctx is done
func (a *app) serve(ctx context.Context, debug bool) error {
	a.scheduler.Start(ctx)
	defer a.scheduler.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := telegram.NewListener(a.api, greeting).Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("telegram listener: %w", err)
		}
		return nil
	})

	if a.cfg.Server.Enabled {
		srv := server.New(server.Params{
			Config:    a.cfg,
			Records:   a.store,
			Reporter:  a.coordinator,
			Scheduler: a.scheduler,
			Version:   revision,
			Debug:     debug,
		})
		g.Go(func() error { return srv.Run(gctx) })
	}

	<-gctx.Done()
	lgr.Printf("[INFO] stopping newsbot")
	return g.Wait()
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	// bot token must never appear in logs
	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
