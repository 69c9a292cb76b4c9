package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/marcelsud/webhook-relay/channel"
	"github.com/marcelsud/webhook-relay/channel/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetChannels(t *testing.T) {
	ctx := context.Background()
	s := mocks.NewUseCase(t)
	channels := []channel.Channel{
		{
			ID:        "ch-1",
			Name:      "CI Builds",
			Secret:    "s3cret",
			CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "ch-2",
			Name:      "Payments",
			CreatedAt: time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
		},
	}
	s.On("List", mock.Anything).Return(channels, nil)
	h := Handlers(ctx, s, nil, nil, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/channels", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Channels []channelResponse `json:"channels"`
	}
	err = json.Unmarshal(w.Body.Bytes(), &result)
	assert.NoError(t, err)
	require.Len(t, result.Channels, 2)
	assert.Equal(t, "ch-1", result.Channels[0].ID)
	assert.Equal(t, "/hook/ch-1", result.Channels[0].URL)
	assert.True(t, result.Channels[0].HasSecret)
	assert.False(t, result.Channels[1].HasSecret)
	assert.NotContains(t, w.Body.String(), "s3cret")
}

func TestPostChannels(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		created := channel.Channel{
			ID:        "abc-123",
			Name:      "CI Builds",
			Secret:    "s3cret",
			CreatedAt: time.Now().UTC(),
		}
		s.On("Create", mock.Anything, "CI Builds", "s3cret", "").Return(created, nil)
		h := Handlers(ctx, s, nil, nil, nil)
		body := strings.NewReader(`{"name":"CI Builds","secret":"s3cret"}`)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/channels", body)
		assert.NoError(t, err)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
		var result createChannelResponse
		err = json.Unmarshal(w.Body.Bytes(), &result)
		assert.NoError(t, err)
		assert.Equal(t, "abc-123", result.ID)
		assert.Equal(t, "/hook/abc-123", result.URL)
		assert.NotContains(t, w.Body.String(), "s3cret")
	})
	t.Run("empty name", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Create", mock.Anything, "", "", "").Return(channel.Channel{}, channel.ErrEmptyName)
		h := Handlers(ctx, s, nil, nil, nil)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/channels", strings.NewReader(`{}`))
		assert.NoError(t, err)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
	t.Run("invalid json", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		h := Handlers(ctx, s, nil, nil, nil)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/channels", strings.NewReader(`{not json`))
		assert.NoError(t, err)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteChannel(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Delete", mock.Anything, "ch-1").Return(nil)
		h := Handlers(ctx, s, nil, nil, nil)
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, "/channels/ch-1", nil)
		assert.NoError(t, err)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})
	t.Run("not found", func(t *testing.T) {
		s := mocks.NewUseCase(t)
		s.On("Delete", mock.Anything, "nope").Return(channel.ErrNotFound)
		h := Handlers(ctx, s, nil, nil, nil)
		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, "/channels/nope", nil)
		assert.NoError(t, err)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
