package channel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcelsud/webhook-relay/channel"
	"github.com/marcelsud/webhook-relay/channel/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := channel.NewService(repo)

		// The collision check misses, then the channel is stored
		repo.On("Get", ctx, mock.AnythingOfType("string")).Return(channel.Channel{}, channel.ErrNotFound)
		repo.On("Store", ctx, channel.MatchChannel(func(ch channel.Channel) bool {
			return ch.Name == "GitHub Repo" &&
				ch.Secret == "s3cr3t" &&
				ch.TelegramChatID == "12345" &&
				ch.ID != "" &&
				!ch.CreatedAt.IsZero()
		})).Return(nil)

		ch, err := service.Create(ctx, "GitHub Repo", "s3cr3t", "12345")

		require.NoError(t, err)
		assert.NotEmpty(t, ch.ID)
		assert.Equal(t, "/hook/"+ch.ID, ch.URL())
		assert.True(t, ch.HasSecret())
		repo.AssertExpectations(t)
	})

	t.Run("success - no secret means no verification", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := channel.NewService(repo)

		repo.On("Get", ctx, mock.AnythingOfType("string")).Return(channel.Channel{}, channel.ErrNotFound)
		repo.On("Store", ctx, mock.AnythingOfType("channel.Channel")).Return(nil)

		ch, err := service.Create(ctx, "Open Channel", "", "")

		require.NoError(t, err)
		assert.False(t, ch.HasSecret())
	})

	t.Run("error - empty name", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := channel.NewService(repo)

		_, err := service.Create(ctx, "", "secret", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, channel.ErrEmptyName)
	})

	t.Run("unique ids - same name yields different ids", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := channel.NewService(repo)

		repo.On("Get", ctx, mock.AnythingOfType("string")).Return(channel.Channel{}, channel.ErrNotFound)
		repo.On("Store", ctx, mock.AnythingOfType("channel.Channel")).Return(nil)

		first, err := service.Create(ctx, "Same Name", "", "")
		require.NoError(t, err)
		second, err := service.Create(ctx, "Same Name", "", "")
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("error - store failure", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := channel.NewService(repo)

		repo.On("Get", ctx, mock.AnythingOfType("string")).Return(channel.Channel{}, channel.ErrNotFound)
		repo.On("Store", ctx, mock.AnythingOfType("channel.Channel")).Return(errors.New("disk full"))

		_, err := service.Create(ctx, "Broken", "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "storing channel")
	})
}

func TestEnsure(t *testing.T) {
	ctx := context.Background()

	t.Run("success - stores missing channel with fixed id", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := channel.NewService(repo)

		repo.On("Get", ctx, "default").Return(channel.Channel{}, channel.ErrNotFound)
		repo.On("Store", ctx, channel.MatchChannel(func(ch channel.Channel) bool {
			return ch.ID == "default" && ch.Name == "Default" && !ch.CreatedAt.IsZero()
		})).Return(nil)

		err := service.Ensure(ctx, channel.Channel{ID: "default", Name: "Default"})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("success - existing channel left untouched", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := channel.NewService(repo)

		existing := channel.Channel{ID: "default", Name: "Default", CreatedAt: time.Now()}
		repo.On("Get", ctx, "default").Return(existing, nil)

		err := service.Ensure(ctx, channel.Channel{ID: "default", Name: "Renamed"})

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
	})

	t.Run("error - empty id", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := channel.NewService(repo)

		err := service.Ensure(ctx, channel.Channel{Name: "No ID"})

		require.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := channel.NewService(repo)

		want := channel.Channel{ID: "abc", Name: "Test", CreatedAt: time.Now()}
		repo.On("Get", ctx, "abc").Return(want, nil)

		got, err := service.Get(ctx, "abc")

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("error - not found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := channel.NewService(repo)

		repo.On("Get", ctx, "missing").Return(channel.Channel{}, channel.ErrNotFound)

		_, err := service.Get(ctx, "missing")

		require.Error(t, err)
		assert.ErrorIs(t, err, channel.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := channel.NewService(repo)

		repo.On("Delete", ctx, "abc").Return(nil)

		err := service.Delete(ctx, "abc")

		require.NoError(t, err)
	})

	t.Run("error - not found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := channel.NewService(repo)

		repo.On("Delete", ctx, "missing").Return(channel.ErrNotFound)

		err := service.Delete(ctx, "missing")

		assert.ErrorIs(t, err, channel.ErrNotFound)
	})
}
