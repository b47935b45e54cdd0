package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skyward-group/netscout/internal/airclub"
	"github.com/skyward-group/netscout/internal/network"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for network planning runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		planner, client := buildPlanner()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(planner, client),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// runRequest is the JSON body of POST /v1/network/runs.
type runRequest struct {
	HQCode        string  `json:"hq_code"`
	MinOpenness   int     `json:"min_openness"`
	MaxDistanceKm float64 `json:"max_distance_km"`
}

func newRouter(planner *network.Planner, client *airclub.Client) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/v1/cache/stats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, client.Stats())
	})

	r.Post("/v1/network/runs", func(w http.ResponseWriter, req *http.Request) {
		var body runRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.HQCode == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "hq_code is required"})
			return
		}

		res, err := planner.Run(req.Context(), network.Params{
			HQCode:        body.HQCode,
			MinOpenness:   body.MinOpenness,
			MaxDistanceKm: body.MaxDistanceKm,
		})
		switch {
		case eris.Is(err, network.ErrAirportNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": fmt.Sprintf("airport with IATA code %q not found", airclub.NormalizeIATA(body.HQCode)),
			})
			return
		case eris.Is(err, airclub.ErrUpstream):
			zap.L().Error("upstream fetch failed", zap.Error(err))
			writeJSON(w, http.StatusBadGateway, map[string]string{
				"error": "failed to fetch data from the Airline Club API, please try again later",
			})
			return
		case err != nil:
			zap.L().Error("run failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}

		writeJSON(w, http.StatusOK, res)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
