package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/webhook-relay/channel"
)

/* HTTP layer DTOs for the channel registry
 * Separate from domain entities to avoid leaking internal structure;
 * secrets never appear in responses.
 */

// createChannelRequest represents the payload for registering a channel
type createChannelRequest struct {
	Name           string `json:"name"`
	Secret         string `json:"secret,omitempty"`
	TelegramChatID string `json:"telegram_chat_id,omitempty"`
}

// createChannelResponse represents the API response when creating a channel
type createChannelResponse struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// channelResponse represents a channel in the API
type channelResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	HasSecret bool      `json:"has_secret"`
	CreatedAt time.Time `json:"created_at"`
}

// getChannels handles GET /channels
func getChannels(channelService channel.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := channelService.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		responses := make([]channelResponse, 0, len(all))
		for _, c := range all {
			responses = append(responses, channelResponse{
				ID:        c.ID,
				Name:      c.Name,
				URL:       c.URL(),
				HasSecret: c.HasSecret(),
				CreatedAt: c.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, map[string]any{"channels": responses})
	})
}

// postChannels handles POST /channels
func postChannels(channelService channel.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cr createChannelRequest
		if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		created, err := channelService.Create(r.Context(), cr.Name, cr.Secret, cr.TelegramChatID)
		if errors.Is(err, channel.ErrEmptyName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, createChannelResponse{
			ID:   created.ID,
			URL:  created.URL(),
			Name: created.Name,
		})
	})
}

// deleteChannel handles DELETE /channels/:channel_id
func deleteChannel(channelService channel.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "channel_id")
		if id == "" {
			http.Error(w, "channel_id is required", http.StatusBadRequest)
			return
		}

		err := channelService.Delete(r.Context(), id)
		if errors.Is(err, channel.ErrNotFound) {
			http.Error(w, "channel not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
}
