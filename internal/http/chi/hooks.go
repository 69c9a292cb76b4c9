package chi

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/webhook-relay/channel"
	"github.com/marcelsud/webhook-relay/relay"
)

// maxBodySize caps webhook payloads at 1 MiB
const maxBodySize = 1 << 20

// hookResponse represents the acknowledgment for a received webhook
type hookResponse struct {
	OK        bool   `json:"ok"`
	Forwarded bool   `json:"forwarded"`
	Format    string `json:"format"`
}

// postHook handles POST /hook/:channel_id
func postHook(relayService relay.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		channelID := chi.URLParam(r, "channel_id")
		if channelID == "" {
			http.Error(w, "channel_id is required", http.StatusBadRequest)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		// Forward first header values only; the pipeline filters the rest
		headers := make(map[string]string)
		for key, values := range r.Header {
			if len(values) > 0 {
				headers[key] = values[0]
			}
		}

		result, err := relayService.Handle(r.Context(), channelID, headers, body)
		switch {
		case errors.Is(err, channel.ErrNotFound):
			http.Error(w, "channel not found", http.StatusNotFound)
			return
		case errors.Is(err, relay.ErrMissingSignature), errors.Is(err, relay.ErrInvalidSignature):
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, hookResponse{
			OK:        true,
			Forwarded: result.Forwarded,
			Format:    result.Format.String(),
		})
	})
}

// getHookPing handles GET /hook/:channel_id so senders can probe their endpoint
func getHookPing(channelService channel.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		channelID := chi.URLParam(r, "channel_id")
		if channelID == "" {
			http.Error(w, "channel_id is required", http.StatusBadRequest)
			return
		}

		ch, err := channelService.Get(r.Context(), channelID)
		if errors.Is(err, channel.ErrNotFound) {
			http.Error(w, "channel not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"channel": ch.Name,
			"hint":    "POST JSON payloads to this URL",
		})
	})
}
