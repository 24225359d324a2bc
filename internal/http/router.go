// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/astrelia/go-astro-backend/internal/chat"
	"github.com/astrelia/go-astro-backend/internal/config"
	"github.com/astrelia/go-astro-backend/internal/http/handlers"
	"github.com/astrelia/go-astro-backend/internal/http/middleware"
	"github.com/astrelia/go-astro-backend/internal/llm"
	"github.com/astrelia/go-astro-backend/internal/repo"
	"github.com/astrelia/go-astro-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter + gzip
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per user/IP, bypass on replay)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, model llm.Client, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB) and response compression
	r.Use(limitBody(1 << 20))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, conversationID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, conversationID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs (off by default)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/model
	memCap := cfg.MemoryCapacity
	if memCap < 1 {
		memCap = chat.DefaultMemoryCapacity
	}
	responder := &services.ResponderService{
		DB:              db,
		Model:           model,
		Memory:          chat.NewMemoryStore(memCap),
		MaxMessageRunes: cfg.MaxMessageRunes,
	}
	userSvc := services.NewUserService(db)
	moodSvc := services.NewMoodService(db)
	nrgSvc := services.NewEnergyService(db)
	cardSvc := services.NewCardService(db)
	convSvc := services.NewConversationService(db)
	msgSvc := &services.MessageService{
		DB:              db,
		Responder:       responder,
		MaxMessageRunes: cfg.MaxMessageRunes,
		TitleMaxLen:     60,
		TitleLocale:     language.English,
	}
	subSvc := services.NewSubscriptionService(db)
	profSvc := services.NewProfileService(db)

	h := handlers.New(userSvc, moodSvc, nrgSvc, cardSvc, convSvc, msgSvc, subSvc, profSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Users
		api.POST("/users", h.CreateUser)
		api.GET("/users/:id", h.GetUser)
		api.POST("/users/:id/mood-checkins", h.CreateMoodCheckin)
		api.GET("/users/:id/astro-profile", h.GetAstroProfile)
		api.PUT("/users/:id/astro-profile", h.RecomputeAstroProfile)
		api.GET("/users/:id/daily-context", h.GetDailyContext)
		api.GET("/users/:id/preferences", h.GetPreferences)
		api.PUT("/users/:id/preferences", h.SavePreferences)
		api.GET("/users/:id/chat-history", h.GetChatHistory)

		// Moods
		api.GET("/moods", h.ListMoods)
		api.POST("/user-moods", h.CreateUserMood)
		api.GET("/user-moods/:userID", h.ListUserMoods)

		// Companion energies
		api.GET("/companion-energies", h.ListCompanionEnergies)
		api.POST("/user-companion-energies", h.SetCompanionEnergy)
		api.GET("/user-companion-energies/:userID", h.GetActiveCompanionEnergy)

		// Cosmic energy cards
		api.GET("/cosmic-energy-types", h.ListCosmicEnergyTypes)
		api.GET("/cosmic-energy-cards", h.ListCosmicEnergyCards)
		api.POST("/user-cosmic-energy-cards", h.MarkCardRead)

		// Conversations (":id" is a user id on GET, a conversation id on PUT;
		// Gin requires one wildcard name per position)
		api.POST("/conversations", h.CreateConversation)
		api.GET("/conversations/:id", h.ListConversations)
		api.PUT("/conversations/:id/title", h.UpdateConversationTitle)

		// Messages
		api.POST("/messages", h.PostMessage)
		api.GET("/messages/:conversationID", h.ListMessages)

		// Subscriptions
		api.POST("/subscriptions", h.CreateSubscription)
		api.GET("/subscriptions/:userID", h.ListSubscriptions)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
