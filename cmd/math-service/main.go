package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"log/slog"
	"math-service/internal/pkg/config"
	"math-service/internal/pkg/httpHandlers"
	"math-service/internal/pkg/mathOperations"
	"math-service/internal/pkg/metrics"
	"math-service/internal/pkg/web"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Linux configuration examples
// MATH_SERVICE_PORT=9000 ./math-service
// ./math-service --Port 9000 --MathDivisionEnabled

const applicationName = "math-service"
const serverShutdownTimeout = 5 * time.Second
const requestIdHeader = "X-Request-Id"

func main() {
	setupZerolog()

	log.Info().Msg("Parsing configuration")
	appConfig := &applicationConfig{}
	config.Parse(appConfig, applicationName)
	setLogLevel(appConfig.LogLevel)

	log.Info().
		Str("library_version", appConfig.LibraryVersion).
		Bool("addition", appConfig.MathAdditionEnabled).
		Bool("subtraction", appConfig.MathSubtractionEnabled).
		Bool("division", appConfig.MathDivisionEnabled).
		Msg("Starting up math service")

	var serviceMetrics *metrics.Metrics
	if appConfig.MetricsEnabled {
		serviceMetrics = metrics.New()
	}

	operations := mathOperations.New(appConfig.features())
	handlers := httpHandlers.New(operations, serviceMetrics, appConfig.LibraryVersion)

	listener := createNetListener(appConfig)
	server := startHttpServer(listener, newRouter(handlers, serviceMetrics))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info().Msg("Application stopping")

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer func() {
		cancel()
	}()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server.Shutdown failed")
	}

	log.Info().Msg("Application stopped")
}

func newRouter(handlers *httpHandlers.MathHandlers, serviceMetrics *metrics.Metrics) http.Handler {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	httpLogger := httplog.NewLogger(applicationName, httplog.Options{
		LogLevel: slog.LevelDebug,
		JSON:     true,
		Concise:  true,
	})

	router := chi.NewRouter()
	router.NotFound(web.NotFound)
	router.MethodNotAllowed(web.MethodNotAllowed)

	router.Use(requestId)
	router.Use(serviceMetrics.Middleware)
	router.Use(httplog.RequestLogger(httpLogger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"https://*",
			"http://*",
		},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIdHeader},
		ExposedHeaders: []string{requestIdHeader},
	}))

	handlers.Routes(router)

	if serviceMetrics != nil {
		router.Method(http.MethodGet, "/metrics", serviceMetrics.Handler())
	}

	return router
}

// requestId echoes the caller's X-Request-Id or assigns a new one.
func requestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIdHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIdHeader, id)
		}
		w.Header().Set(requestIdHeader, id)
		next.ServeHTTP(w, r)
	})
}

func startHttpServer(listener net.Listener, handler http.Handler) *http.Server {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Msg("Server is about to start")

		err := server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server.Serve failed")
		}

		log.Info().Msg("Server stopped")
	}()
	return server
}

func createNetListener(appConfig *applicationConfig) net.Listener {
	address := net.JoinHostPort(appConfig.Host, fmt.Sprintf("%d", appConfig.Port))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Fatal().Err(err).Msg("net.Listen failed")
	}

	log.Info().Str("address", listener.Addr().String()).Msg("Server listening")
	return listener
}

func setupZerolog() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = zerolog.New(os.Stderr).
		With().
		Timestamp().
		Logger()
}

func setLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		log.Warn().Err(err).Str("level", level).Msg("unknown log level, using info")
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
