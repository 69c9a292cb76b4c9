package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/marcelsud/webhook-relay/channel"
)

/* JSON file implementation of channel.Repository
 * The whole registry lives in a single channels.json document.
 * Every mutation rewrites the file atomically (temp file + rename),
 * so a crash mid-write never leaves a partial registry behind.
 */

const registryFile = "channels.json"

// record is the on-disk representation of a channel
type record struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Secret         string    `json:"secret,omitempty"`
	TelegramChatID string    `json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type Repository struct {
	path string

	mu       sync.RWMutex
	channels map[string]channel.Channel
}

// NewRepository loads (or initializes) the registry file under dataDir
func NewRepository(dataDir string) (*Repository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	r := &Repository{
		path:     filepath.Join(dataDir, registryFile),
		channels: make(map[string]channel.Channel),
	}

	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading registry file: %w", err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing registry file: %w", err)
	}

	for _, rec := range records {
		r.channels[rec.ID] = channel.Channel{
			ID:             rec.ID,
			Name:           rec.Name,
			Secret:         rec.Secret,
			TelegramChatID: rec.TelegramChatID,
			CreatedAt:      rec.CreatedAt,
		}
	}
	return nil
}

/* persist writes the full registry to disk. Callers must hold the
 * write lock. Creation order is preserved in the file so List stays
 * stable across restarts.
 */
func (r *Repository) persist() error {
	records := make([]record, 0, len(r.channels))
	for _, ch := range r.channels {
		records = append(records, record{
			ID:             ch.ID,
			Name:           ch.Name,
			Secret:         ch.Secret,
			TelegramChatID: ch.TelegramChatID,
			CreatedAt:      ch.CreatedAt,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing registry file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replacing registry file: %w", err)
	}
	return nil
}

// Get retrieves a channel by id
func (r *Repository) Get(ctx context.Context, id string) (channel.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch, ok := r.channels[id]
	if !ok {
		return channel.Channel{}, channel.ErrNotFound
	}
	return ch, nil
}

// List returns all channels in creation order
func (r *Repository) List(ctx context.Context) ([]channel.Channel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]channel.Channel, 0, len(r.channels))
	for _, ch := range r.channels {
		all = append(all, ch)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all, nil
}

/* Store persists a channel. The in-memory map is only updated after
 * the file write succeeds, so a storage failure does not corrupt
 * state for subsequent requests.
 */
func (r *Repository) Store(ctx context.Context, ch channel.Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, existed := r.channels[ch.ID]
	r.channels[ch.ID] = ch
	if err := r.persist(); err != nil {
		if existed {
			r.channels[ch.ID] = prev
		} else {
			delete(r.channels, ch.ID)
		}
		return err
	}
	return nil
}

// Delete removes a channel and persists the registry
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.channels[id]
	if !ok {
		return channel.ErrNotFound
	}

	delete(r.channels, id)
	if err := r.persist(); err != nil {
		r.channels[id] = ch
		return err
	}
	return nil
}

// Close is a no-op for the file-backed registry
func (r *Repository) Close(ctx context.Context) error {
	return nil
}
