package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gramseva/census-atlas/internal/engine"
	"github.com/gramseva/census-atlas/internal/model"
)

// shutdownTimeout bounds the in-flight request drain after SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve derived views to the rendering layer",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		eng := engine.New()

		// Startup load runs in the background; until the snapshot is
		// published the API answers 503 loading. A failed load is
		// published too, so clients see "failed" instead of waiting on
		// a snapshot that will never arrive.
		go func() {
			snap, table, err := buildSnapshot(cfg)
			if err != nil {
				zap.L().Error("startup load failed", zap.Error(err))
				eng.SetLoadError(err)
				return
			}
			eng.SetSnapshot(snap)
			zap.L().Info("engine ready",
				zap.String("dataset_id", table.DatasetID),
				zap.Int("areas", len(snap.Areas)),
			)
		}()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(eng),
		}

		go gracefulShutdown(ctx, srv, shutdownTimeout)

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// gracefulShutdown drains in-flight requests once ctx is canceled. The
// drain runs on a fresh timeout context: the trigger context is already
// dead, so passing it to Shutdown would abort the drain immediately.
func gracefulShutdown(ctx context.Context, srv *http.Server, timeout time.Duration) {
	<-ctx.Done()
	zap.L().Info("shutting down server")

	drainCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		zap.L().Warn("server shutdown", zap.Error(err))
	}
}

func newRouter(eng *engine.Engine) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/areas", func(w http.ResponseWriter, req *http.Request) {
		areas, err := eng.Areas()
		if err != nil {
			writeUnavailable(w, err)
			return
		}
		writeJSON(w, http.StatusOK, areas)
	})

	r.Get("/api/view", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		metric, err := model.ParseMetric(orDefault(q.Get("metric"), "literacy"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		sel, err := parseSelection(
			orDefault(q.Get("gender"), "all"),
			orDefault(q.Get("age"), "all"),
			orDefault(q.Get("category"), "all"),
			orDefault(q.Get("class"), "all"),
		)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		view, err := eng.View(metric, sel)
		if err != nil {
			// Without a published snapshot the failure is the startup
			// load's, not this request's.
			if errors.Is(err, engine.ErrNotReady) || !eng.Ready() {
				writeUnavailable(w, err)
				return
			}
			zap.L().Error("view derivation failed",
				zap.String("metric", string(metric)),
				zap.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "view derivation failed"})
			return
		}
		writeJSON(w, http.StatusOK, view)
	})

	return r
}

// writeUnavailable answers for an engine with no snapshot: "loading"
// while the startup load is still running, "failed" once it has given up.
func writeUnavailable(w http.ResponseWriter, err error) {
	if errors.Is(err, engine.ErrNotReady) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"status": "failed",
		"error":  err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
