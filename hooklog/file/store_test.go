package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcelsud/webhook-relay/hooklog"
	"github.com/marcelsud/webhook-relay/relay/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(channelID string, receivedAt time.Time) hooklog.Record {
	return hooklog.Record{
		ChannelID:      channelID,
		ReceivedAt:     receivedAt,
		Format:         render.Generic,
		Outcome:        hooklog.Success,
		RenderedText:   "Webhook received",
		PayloadPreview: `{"n":1}`,
	}
}

func TestAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	day := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return day }

	t.Run("success - newest first within a day", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, store.Append(ctx, testRecord(
				fmt.Sprintf("ch-%d", i),
				day.Add(time.Duration(i)*time.Minute),
			)))
		}

		records, err := store.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "ch-2", records[0].ChannelID)
		assert.Equal(t, "ch-1", records[1].ChannelID)
		assert.Equal(t, "ch-0", records[2].ChannelID)
	})

	t.Run("success - limit is respected", func(t *testing.T) {
		records, err := store.Recent(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("success - zero limit yields nothing", func(t *testing.T) {
		records, err := store.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestRecentAcrossDayBoundary(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	yesterday := time.Date(2025, 5, 31, 23, 50, 0, 0, time.UTC)
	today := time.Date(2025, 6, 1, 0, 5, 0, 0, time.UTC)

	store.now = func() time.Time { return yesterday }
	require.NoError(t, store.Append(ctx, testRecord("old-1", yesterday)))
	require.NoError(t, store.Append(ctx, testRecord("old-2", yesterday.Add(time.Minute))))

	store.now = func() time.Time { return today }
	require.NoError(t, store.Append(ctx, testRecord("new-1", today)))

	// Fewer records exist "today" than requested, so the previous
	// segment fills the remainder, still newest first
	records, err := store.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "new-1", records[0].ChannelID)
	assert.Equal(t, "old-2", records[1].ChannelID)
	assert.Equal(t, "old-1", records[2].ChannelID)
}

func TestSegmentLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	day := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return day }
	require.NoError(t, store.Append(ctx, testRecord("ch", day)))

	// One segment per calendar day, named by date
	_, err = os.Stat(filepath.Join(dir, "logs", "2025-06-01.jsonl"))
	assert.NoError(t, err)
}

func TestRoundTripPreservesFields(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	received := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return received }

	rec := hooklog.Record{
		ChannelID:      "github",
		ReceivedAt:     received,
		Format:         render.GitHub,
		Outcome:        hooklog.Failure,
		Reason:         "bad signature",
		RenderedText:   "Push to user/repo",
		PayloadPreview: `{"ref":"refs/heads/main"}`,
		Headers:        map[string]string{"X-Github-Event": "push"},
	}
	require.NoError(t, store.Append(ctx, rec))

	records, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])
}

func TestRecentEmptyStore(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	records, err := store.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, records)
}
