package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/DreamJournal_Go/internal/account"
	"github.com/osse101/DreamJournal_Go/internal/admin"
	"github.com/osse101/DreamJournal_Go/internal/handler"
	"github.com/osse101/DreamJournal_Go/internal/invite"
	"github.com/osse101/DreamJournal_Go/internal/logger"
	"github.com/osse101/DreamJournal_Go/internal/metrics"
	"github.com/osse101/DreamJournal_Go/internal/profile"
	"github.com/osse101/DreamJournal_Go/internal/progression"
	"github.com/osse101/DreamJournal_Go/internal/quest"
	"github.com/osse101/DreamJournal_Go/internal/session"
	"github.com/osse101/DreamJournal_Go/internal/shop"
	"github.com/osse101/DreamJournal_Go/internal/sse"
	"github.com/osse101/DreamJournal_Go/internal/verification"
)

// Config holds the listener and middleware settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Detector       DetectorConfig
}

// Deps are the services the routes delegate to
type Deps struct {
	DB            handler.Pinger
	Sessions      *session.Manager
	Hub           *sse.Hub
	Gatherer      prometheus.Gatherer
	Resetter      handler.DailyResetter
	Invites       invite.Service
	Accounts      account.Service
	Profiles      profile.Service
	Quests        quest.Service
	Verifications verification.Service
	Progression   progression.Service
	Shop          shop.Service
	Admin         admin.Service
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
			IdleTimeout:       IdleTimeout,
		},
	}
}

// NewRouter builds the full route tree. Exposed so tests can drive it with httptest.
func NewRouter(cfg Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	proxies := ParseTrustedProxies(cfg.TrustedProxies)
	detector := NewSuspiciousActivityDetector(cfg.Detector)

	// Outermost first
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(proxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DB))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", metricsHandler(deps.Gatherer))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	invites := handler.NewInviteHandler(deps.Invites)
	auth := handler.NewAuthHandler(deps.Accounts)
	profiles := handler.NewProfileHandler(deps.Profiles)
	quests := handler.NewQuestHandler(deps.Quests)
	verifications := handler.NewVerificationHandler(deps.Verifications)
	ascension := handler.NewProgressionHandler(deps.Progression)
	shopHandler := handler.NewShopHandler(deps.Shop)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/invite", func(r chi.Router) {
			r.Get("/resolve", invites.HandleResolve)
			r.Post("/redeem", invites.HandleRedeem)
			r.Post("/sync-credential", invites.HandleSyncCredential)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.HandleRegister)
			r.Post("/login", auth.HandleLogin)
		})

		r.Get("/levels", ascension.HandleLevels)
		r.Get("/shop/items", shopHandler.HandleListItems)

		r.Route("/me", func(r chi.Router) {
			r.Use(session.Middleware(deps.Sessions))

			r.Get("/profile", profiles.HandleProfile)
			r.Get("/snapshot", profiles.HandleSnapshot)

			r.Get("/quests", quests.HandleListQuests)
			r.Post("/quests/{id}/complete", quests.HandleComplete)
			r.Post("/quests/{id}/verification", quests.HandleStartVerification)
			r.Post("/checkin", quests.HandleCheckIn)

			r.Route("/verifications/{id}", func(r chi.Router) {
				r.Get("/", verifications.HandleGet)
				r.Get("/qr.png", verifications.HandleQR)
				r.Post("/cancel", verifications.HandleCancel)
				r.Post("/complete", quests.HandleCompleteVerified)
				r.Post("/await", quests.HandleAwait)
			})

			r.Get("/ascension", ascension.HandleStatus)
			r.Post("/ascension", ascension.HandleAscend)
			r.Post("/ascension/exam", ascension.HandleStartExam)
			r.Post("/ascension/exam/{id}/complete", ascension.HandleCompleteExam)

			r.Post("/shop/{id}/redeem", shopHandler.HandleRedeem)

			r.Get("/events", sse.Handler(deps.Hub))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.APIKey, proxies, detector))
			mountAdmin(r, deps)
		})
	})

	return r
}

func mountAdmin(r chi.Router, deps Deps) {
	h := handler.NewAdminHandler(deps.Admin)

	r.Route("/quests", func(r chi.Router) {
		r.Get("/", h.HandleListQuests)
		r.Post("/", h.HandleCreateQuest)
		r.Put("/{id}", h.HandleUpdateQuest)
		r.Delete("/{id}", h.HandleDeleteQuest)
	})
	r.Route("/shop-items", func(r chi.Router) {
		r.Get("/", h.HandleListShopItems)
		r.Post("/", h.HandleCreateShopItem)
		r.Put("/{id}", h.HandleUpdateShopItem)
		r.Delete("/{id}", h.HandleDeleteShopItem)
	})
	r.Get("/users", h.HandleListUsers)
	r.Get("/levels", h.HandleListLevels)
	r.Put("/levels/{level}", h.HandleUpdateLevel)
	r.Get("/dashboard", h.HandleDashboard)
	r.Get("/audit-log", h.HandleAuditLog)
	r.Post("/invites", h.HandleIssueInvite)
	r.Post("/verifications/scan", h.HandleScan)

	if deps.Resetter != nil {
		reset := handler.NewAdminDailyResetHandler(deps.Resetter)
		r.Get("/daily-reset", reset.HandleGetResetStatus)
		r.Post("/daily-reset", reset.HandleManualReset)
	}

	var clients handler.ClientCounter
	if deps.Hub != nil {
		clients = deps.Hub
		r.Post("/sse/broadcast", handler.NewAdminSSEHandler(deps.Hub).HandleBroadcast)
	}
	r.Get("/metrics", handler.NewAdminMetricsHandler(deps.Gatherer, clients).HandleGetMetrics)
}

func metricsHandler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps the event stream working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func quietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
			continue
		}
		out[k] = v
	}
	return out
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if quietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > 64 {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
