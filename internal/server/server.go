package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pairloom/garden-engine/internal/database"
	"github.com/pairloom/garden-engine/internal/garden"
	"github.com/pairloom/garden-engine/internal/handler"
	"github.com/pairloom/garden-engine/internal/logger"
	"github.com/pairloom/garden-engine/internal/metrics"
	"github.com/pairloom/garden-engine/internal/pairing"
	"github.com/pairloom/garden-engine/internal/profile"
	"github.com/pairloom/garden-engine/internal/sse"
)

type Server struct {
	httpServer     *http.Server
	dbPool         database.Pool
	gardenService  garden.Service
	profileService profile.Service
	pairingService pairing.Service
	sseHub         *sse.Hub
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, gardenService garden.Service, profileService profile.Service, pairingService pairing.Service, sseHub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Server-sent events stream for garden updates
	r.Get("/events", sse.Handler(sseHub))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Pair routes
		r.Post("/pair", handler.HandleEstablishPair(pairingService))

		// Profile routes
		r.Route("/profile", func(r chi.Router) {
			r.Get("/wallet", handler.HandleGetWallet(profileService))
		})

		// Garden routes
		gardenHandler := handler.NewGardenHandler(gardenService)
		r.Route("/garden/{pairID}", func(r chi.Router) {
			r.Get("/", gardenHandler.HandleGetGarden)
			r.Post("/water", gardenHandler.HandleWater)
			r.Post("/revive", gardenHandler.HandleRevive)
			r.Post("/plant", gardenHandler.HandlePlant)
			r.Post("/decor", gardenHandler.HandlePlaceDecor)
			r.Post("/landmark", gardenHandler.HandlePlaceLandmark)
			r.Post("/items/remove", gardenHandler.HandleRemoveItems)
			r.Post("/harmony/claim", gardenHandler.HandleClaimBonus)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/garden/{pairID}/punish", gardenHandler.HandlePunish)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:         dbPool,
		gardenService:  gardenService,
		profileService: profileService,
		pairingService: pairingService,
		sseHub:         sseHub,
	}
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
		statusCode:     http.StatusOK, // default status
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

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, "X-API-Key") || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{"[REDACTED]"}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
