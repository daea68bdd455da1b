package main

import (
	"context"
	"math/rand/v2"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/smart-meter/internal/api"
	"github.com/Spok95/smart-meter/internal/config"
	"github.com/Spok95/smart-meter/internal/domain/billing"
	"github.com/Spok95/smart-meter/internal/domain/devices"
	"github.com/Spok95/smart-meter/internal/domain/households"
	"github.com/Spok95/smart-meter/internal/domain/notifications"
	"github.com/Spok95/smart-meter/internal/domain/thresholds"
	"github.com/Spok95/smart-meter/internal/infra/db"
	httpx "github.com/Spok95/smart-meter/internal/infra/http"
	"github.com/Spok95/smart-meter/internal/infra/logger"
	"github.com/Spok95/smart-meter/internal/infra/mailer"
	"github.com/Spok95/smart-meter/internal/infra/telegram"
	"github.com/Spok95/smart-meter/internal/sim"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	householdsRepo := households.NewRepo(pool)
	devicesRepo := devices.NewRepo(pool)
	thresholdsRepo := thresholds.NewRepo(pool)
	billsRepo := billing.NewRepo(pool)
	notificationsRepo := notifications.NewRepo(pool)

	var notifier sim.Notifier = mailer.New(
		cfg.SMTP.Host, cfg.SMTP.Port,
		cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, log)
	if cfg.Telegram.Token != "" {
		tgAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			log.Error("telegram init failed", "err", err)
		} else {
			notifier = sim.MultiNotifier{
				notifier,
				telegram.NewAdminNotifier(tgAPI, cfg.Telegram.AdminChatID, log),
			}
		}
	}

	store := sim.NewPgStore(householdsRepo, devicesRepo, thresholdsRepo, billsRepo, notificationsRepo)
	src := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	engine := sim.NewEngine(store, notifier, src, log)
	sched := sim.NewScheduler(engine, cfg.Sim.TickInterval, sim.NewClock(), log)
	go sched.Run(ctx)
	log.Info("scheduler started", "interval", cfg.Sim.TickInterval)

	apiHandler := api.NewHandler(log, householdsRepo, devicesRepo, thresholdsRepo, billsRepo, notificationsRepo)
	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, apiHandler.Routes())
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
