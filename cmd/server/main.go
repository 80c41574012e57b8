// Command server runs the table-ordering service: the Telegram bot, the
// mini-app and admin pages, and the JSON API they call.
//
// @title       Table Order API
// @version     1.0
// @description Menu, order and admin endpoints behind the restaurant mini-app.
// @BasePath    /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-table-order/internal/bot"
	"github.com/tbourn/go-table-order/internal/cart"
	"github.com/tbourn/go-table-order/internal/config"
	"github.com/tbourn/go-table-order/internal/events"
	httpapi "github.com/tbourn/go-table-order/internal/http"
	"github.com/tbourn/go-table-order/internal/media"
	"github.com/tbourn/go-table-order/internal/notify"
	"github.com/tbourn/go-table-order/internal/observability"
	"github.com/tbourn/go-table-order/internal/repo"
	"github.com/tbourn/go-table-order/internal/services"
	"github.com/tbourn/go-table-order/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("load .env")
	}
	cfg := config.MustLoad()

	log.Logger = sysutil.NewLogger(os.Stdout, cfg.LogPretty, cfg.OTEL.ServiceName)
	sysutil.SetLogLevel(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version, cfg.GinMode)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup")
	}

	// Storage
	db, err := repo.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if cfg.OTEL.Enabled {
		if err := repo.Instrument(db); err != nil {
			log.Fatal().Err(err).Msg("instrument database")
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	images, err := media.NewStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("image store")
	}

	// Telegram
	var api *tgbotapi.BotAPI
	if cfg.Bot.Token != "" {
		api, err = tgbotapi.NewBotAPI(cfg.Bot.Token)
		if err != nil {
			log.Fatal().Err(err).Msg("telegram login")
		}
		if cfg.Bot.Username == "" {
			cfg.Bot.Username = api.Self.UserName
		}
		log.Info().Str("bot", api.Self.UserName).Msg("telegram bot authorized")
	}

	var notifier notify.Notifier = notify.Nop{}
	if api != nil && cfg.Bot.AdminGroup != "" {
		notifier = &notify.Telegram{API: api, Destination: cfg.Bot.AdminGroup}
	} else {
		log.Warn().Msg("operator notifications disabled (BOT_TOKEN or ADMIN_GROUP unset)")
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.Events.QueueURL != "" {
		client, err := events.NewSQSClient(ctx, cfg.Events.AWSRegion)
		if err != nil {
			log.Fatal().Err(err).Msg("sqs client")
		}
		publisher = events.NewSQSPublisher(client, cfg.Events.QueueURL)
	}

	// Cart sessions
	var (
		carts cart.Store
		rdb   *redis.Client
	)
	switch cfg.Cart.Store {
	case config.CartStoreRedis:
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Cart.RedisAddr,
			Password: cfg.Cart.RedisPass,
			DB:       cfg.Cart.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Cart.RedisAddr).Msg("connect redis")
		}
		carts = cart.NewRedisStore(rdb, cfg.Cart.TTL)
	default:
		carts = cart.NewMemoryStore(cfg.Cart.TTL)
	}

	menuSvc := services.NewMenuService(db, images)
	orderSvc := services.NewOrderService(db, notifier, publisher)

	deps := httpapi.Deps{
		Menu:        menuSvc,
		Orders:      orderSvc,
		BotUsername: cfg.Bot.Username,
	}

	// Bot transport
	var polling sync.WaitGroup
	pollCtx, stopPolling := context.WithCancel(context.Background())
	defer stopPolling()
	if api != nil {
		b := bot.New(api, menuSvc, orderSvc, carts, cfg.Bot.AdminIDs, cfg.Bot.PublicURL, cfg.Bot.Username)
		if err := bot.RegisterCommands(api); err != nil {
			log.Warn().Err(err).Msg("register bot commands")
		}

		if cfg.Bot.WebhookURL != "" {
			if err := bot.SetWebhook(api, cfg.Bot.WebhookURL, cfg.Bot.Token); err != nil {
				log.Fatal().Err(err).Msg("set webhook")
			}
			deps.WebhookPath = bot.WebhookPath(cfg.Bot.Token)
			deps.Updates = api
			deps.Bot = b
			log.Info().Msg("bot: webhook mode")
		} else {
			if err := bot.DeleteWebhook(api); err != nil {
				log.Warn().Err(err).Msg("delete stale webhook")
			}
			polling.Add(1)
			go func() {
				defer polling.Done()
				b.Poll(pollCtx, api)
			}()
		}
	}

	// HTTP
	r := gin.New()
	httpapi.RegisterRoutes(r, cfg, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	stopPolling()
	polling.Wait()

	if api != nil && cfg.Bot.WebhookURL != "" {
		if err := bot.DeleteWebhook(api); err != nil {
			log.Warn().Err(err).Msg("delete webhook")
		}
	}

	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("otel shutdown")
	}

	closeDB(db)
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("stopped")
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("close database")
	}
}
