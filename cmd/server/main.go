// cmd/server/main.go
package main

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jason-s-yu/pairup/internal/config"
	"github.com/jason-s-yu/pairup/internal/events"
	"github.com/jason-s-yu/pairup/internal/handlers"
	"github.com/jason-s-yu/pairup/internal/middleware"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warnf("unknown LOG_LEVEL %q, using %s", cfg.LogLevel, logger.GetLevel())
	}
	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	ms := handlers.NewMatchServer(logger)
	ms.OriginPatterns = originPatterns(cfg.AllowedOrigins)

	pub, err := events.NewPublisher(cfg)
	if err != nil {
		logger.Fatalf("match events: %v", err)
	}
	var dispatcher *events.Dispatcher
	if pub != nil {
		dispatcher = events.NewDispatcher(pub, cfg.EventBuffer, logger.WithField("component", "events"))
		ms.Events = dispatcher
		logger.Infof("publishing match events to %s", cfg.EventSink)
	}

	router := mux.NewRouter()
	router.Use(middleware.LogMiddleware(logger))
	handlers.RegisterRoutes(router, ms)

	c := middleware.NewCORS(cfg.AllowedOrigins)

	// no WriteTimeout: it would cut long-lived websocket feeds
	server := &http.Server{
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	l, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		logger.Fatalf("failed to listen: %v", err)
	}
	logger.Infof("listening on %s", l.Addr())

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(l)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errc:
		logger.Errorf("failed to serve: %v", err)
	case sig := <-sigs:
		logger.Infof("terminating: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warnf("shutdown: %v", err)
	}
	if dispatcher != nil {
		if err := dispatcher.Close(); err != nil {
			logger.Warnf("closing match events: %v", err)
		}
	}
	logger.Info("Server shutdown complete.")
}

// originPatterns turns CORS origins into host patterns for websocket.Accept.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}
