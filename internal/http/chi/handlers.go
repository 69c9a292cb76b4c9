package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/webhook-relay/channel"
	"github.com/marcelsud/webhook-relay/hooklog"
	"github.com/marcelsud/webhook-relay/relay"
)

// Handlers sets up the relay API routes
func Handlers(ctx context.Context, channelService channel.UseCase, relayService relay.UseCase, logs hooklog.Reader, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("webhook-relay", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Usage document for humans poking at the root
	r.Get("/", getUsage().ServeHTTP)

	// Webhook intake
	r.Post("/hook/{channel_id}", postHook(relayService).ServeHTTP)
	r.Get("/hook/{channel_id}", getHookPing(channelService).ServeHTTP)

	// Channel registry
	r.Get("/channels", getChannels(channelService).ServeHTTP)
	r.Post("/channels", postChannels(channelService).ServeHTTP)
	r.Delete("/channels/{channel_id}", deleteChannel(channelService).ServeHTTP)

	// Audit log
	r.Get("/logs", getLogs(logs).ServeHTTP)

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// getUsage handles GET /
func getUsage() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"name": "Webhook Relay",
			"usage": map[string]string{
				"receive":  "POST /hook/{channel_id}",
				"channels": "GET /channels",
				"create":   "POST /channels",
				"logs":     "GET /logs",
			},
		})
	})
}
