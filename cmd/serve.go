package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/recruiting-analytics/internal/model"
	"github.com/sells-group/recruiting-analytics/internal/ranking"
	"github.com/sells-group/recruiting-analytics/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rankings over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
		}))
		r.Use(rateLimit(rate.Limit(cfg.Server.RatePerSecond), cfg.Server.RateBurst))

		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/api/rankings", handleRankings(st))
		r.Get("/api/snapshots", handleSnapshots(st))

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("serve: listening", zap.Int("port", cfg.Server.Port))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return eris.Wrap(srv.Shutdown(shutdownCtx), "serve: shutdown")
		case err := <-errCh:
			return eris.Wrap(err, "serve: listen")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// rateLimit applies a shared token-bucket limit to every request.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// handleRankings computes a ranking run for the query's scope.
func handleRankings(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		mode := model.Mode(q.Get("mode"))
		if mode == "" {
			mode = model.ModeRecruiter
		}
		if !mode.Valid() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "mode must be recruiter, team, or profiler"})
			return
		}

		var filter model.FilterSelection
		for _, span := range []struct {
			param string
			dst   *time.Time
		}{{"from", &filter.From}, {"to", &filter.To}} {
			if v := q.Get(span.param); v != "" {
				t, err := time.Parse("2006-01-02", v)
				if err != nil {
					writeJSON(w, http.StatusBadRequest, map[string]string{"error": span.param + " must be YYYY-MM-DD"})
					return
				}
				*span.dst = t
			}
		}
		filter.Companies = q["company"]
		filter.Contracts = q["contract"]
		filter.Teams = q["team"]

		rankCtx, err := loadRankingContext(mode, filter)
		if err != nil {
			zap.L().Error("serve: load ranking context", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "configuration error"})
			return
		}

		records, err := st.ListRecords(r.Context(), filter)
		if err != nil {
			zap.L().Error("serve: list records", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage error"})
			return
		}

		ranked := ranking.New(rankCtx).Rank(records, mode)
		writeJSON(w, http.StatusOK, map[string]any{
			"mode":     mode,
			"count":    len(ranked),
			"rankings": ranked,
		})
	}
}

func handleSnapshots(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snaps, err := st.ListSnapshots(r.Context(), 20)
		if err != nil {
			zap.L().Error("serve: list snapshots", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"snapshots": snaps})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
