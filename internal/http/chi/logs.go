package chi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/marcelsud/webhook-relay/hooklog"
)

// defaultLogLimit applies when GET /logs has no limit parameter
const defaultLogLimit = 50

// logResponse represents a delivery record in the API
type logResponse struct {
	Channel        string            `json:"channel"`
	ReceivedAt     time.Time         `json:"received_at"`
	Format         string            `json:"format"`
	Outcome        string            `json:"outcome"`
	Reason         string            `json:"reason,omitempty"`
	RenderedText   string            `json:"rendered_text,omitempty"`
	PayloadPreview string            `json:"payload_preview,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
}

// getLogs handles GET /logs
func getLogs(logs hooklog.Reader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := defaultLogLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		records, err := logs.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		responses := make([]logResponse, 0, len(records))
		for _, rec := range records {
			responses = append(responses, logResponse{
				Channel:        rec.ChannelID,
				ReceivedAt:     rec.ReceivedAt,
				Format:         rec.Format.String(),
				Outcome:        rec.Outcome.String(),
				Reason:         rec.Reason,
				RenderedText:   rec.RenderedText,
				PayloadPreview: rec.PayloadPreview,
				Headers:        rec.Headers,
			})
		}

		writeJSON(w, http.StatusOK, map[string]any{"logs": responses})
	})
}
