// Package httpapi wires the HTTP transport (Gin) to the menu and order
// services, the HTML pages and the Telegram webhook. It centralizes
// cross-cutting concerns: tracing, correlation IDs, redacted logging, panic
// recovery, metrics, compression, CORS, security headers and rate limiting.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/tbourn/go-table-order/docs" // registers the OpenAPI document

	"github.com/tbourn/go-table-order/internal/config"
	"github.com/tbourn/go-table-order/internal/http/handlers"
	"github.com/tbourn/go-table-order/internal/http/middleware"
	"github.com/tbourn/go-table-order/internal/media"
	"github.com/tbourn/go-table-order/internal/web"
)

// jsonBodyLimit caps JSON request bodies (orders, deletes, webhook updates).
const jsonBodyLimit int64 = 1 << 20

// Deps are the collaborators RegisterRoutes mounts.
type Deps struct {
	Menu   handlers.MenuService
	Orders handlers.OrderService

	// Webhook wiring; the route is mounted only when all three are set.
	WebhookPath string
	Updates     handlers.UpdateDecoder
	Bot         handlers.UpdateHandler

	// BotUsername is shown on the admin page.
	BotUsername string
}

// RegisterRoutes attaches middleware and endpoints to r.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII and token scrubbing
//  4. Recovery: capture panics after logger
//  5. Metrics
//  6. Rate limiter (per client IP, webhook exempt)
//  7. CORS and security headers
//  8. gzip
func RegisterRoutes(r *gin.Engine, cfg config.Config, d Deps) {
	r.HandleMethodNotAllowed = true
	r.SetHTMLTemplate(web.Templates())

	var secret []string
	if d.WebhookPath != "" {
		secret = append(secret, d.WebhookPath)
	}

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-Telegram-Bot-Api-Secret-Token"},
		SecretPaths: secret,
	}))
	r.Use(middleware.Recovery())

	r.Use(middleware.Metrics(secret...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP(), secret...)
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)

	// Pages are embedded in Telegram's web client, so framing by Telegram is
	// allowed everywhere.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:     cfg.Security.EnableHSTS,
		HSTSMaxAge:     cfg.Security.HSTSMaxAge,
		EnablePolicy:   true,
		FrameAncestors: middleware.TelegramFrameAncestors,
	}))

	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", media.URLPrefix})))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Uploaded images
	r.Static(media.URLPrefix, cfg.UploadDir)

	// HTML pages
	pages := handlers.Pages{BotUsername: d.BotUsername}
	r.GET("/", pages.MiniApp)
	r.GET("/admin", pages.Admin)

	// JSON API
	h := handlers.New(d.Menu, d.Orders)
	api := r.Group("/api", limitBody(jsonBodyLimit))
	{
		api.GET("/menu", h.ListMenu)
		api.POST("/order", h.PlaceOrder)
		api.POST("/admin/delete", h.DeleteMenuItem)
	}
	// Upload forms carry an image plus a few text fields.
	uploads := r.Group("/api/admin", limitBody(cfg.MaxUploadBytes+jsonBodyLimit))
	{
		uploads.POST("/add", h.AddMenuItem)
		uploads.POST("/add-file", h.AddMenuItem)
	}

	if d.WebhookPath != "" && d.Updates != nil && d.Bot != nil {
		r.POST(d.WebhookPath, limitBody(jsonBodyLimit), handlers.Webhook(d.Updates, d.Bot))
	}
}

// corsMiddleware returns the CORS posture: allow all origins when none are
// configured, otherwise echo allow-listed origins.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	methods := []string{"GET", "POST", "OPTIONS"}
	headers := []string{"Origin", "Content-Type", "Accept", "If-None-Match"}
	expose := []string{"X-Request-ID", "Content-Length", "ETag"}

	if len(origins) == 0 {
		return []gin.HandlerFunc{
			// Set ACAO even without an Origin header (simple health checks).
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins: true,
				AllowMethods:    methods,
				AllowHeaders:    headers,
				ExposeHeaders:   expose,
				MaxAge:          12 * time.Hour,
			}),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  methods,
			AllowHeaders:  headers,
			ExposeHeaders: expose,
			MaxAge:        12 * time.Hour,
		}),
	}
}

// limitBody caps the request body at maxBytes; reads beyond it fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
