package channel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyName is returned when a channel is created without a name
var ErrEmptyName = errors.New("channel name cannot be empty")

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// UseCase defines the business operations for channel management
type UseCase interface {
	Create(ctx context.Context, name, secret, telegramChatID string) (Channel, error)
	Ensure(ctx context.Context, ch Channel) error
	Get(ctx context.Context, id string) (Channel, error)
	List(ctx context.Context) ([]Channel, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	Repo Repository
}

// NewService creates a new channel service with dependency injection
func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

// Create registers a new channel with a fresh, collision-checked id
func (s *Service) Create(ctx context.Context, name, secret, telegramChatID string) (Channel, error) {
	if name == "" {
		return Channel{}, ErrEmptyName
	}

	id, err := s.newID(ctx)
	if err != nil {
		return Channel{}, fmt.Errorf("generating channel id: %w", err)
	}

	ch := Channel{
		ID:             id,
		Name:           name,
		Secret:         secret,
		TelegramChatID: telegramChatID,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Repo.Store(ctx, ch); err != nil {
		return Channel{}, fmt.Errorf("storing channel: %w", err)
	}
	return ch, nil
}

/* Ensure stores a channel with a caller-chosen id unless it already exists.
 * Used for provisioning fixed channels such as "default" at startup.
 */
func (s *Service) Ensure(ctx context.Context, ch Channel) error {
	if ch.ID == "" {
		return fmt.Errorf("ensuring channel: id cannot be empty")
	}
	if ch.Name == "" {
		return ErrEmptyName
	}

	_, err := s.Repo.Get(ctx, ch.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("looking up channel %s: %w", ch.ID, err)
	}

	if ch.CreatedAt.IsZero() {
		ch.CreatedAt = time.Now().UTC()
	}
	if err := s.Repo.Store(ctx, ch); err != nil {
		return fmt.Errorf("storing channel: %w", err)
	}
	return nil
}

// Get retrieves a channel by id
func (s *Service) Get(ctx context.Context, id string) (Channel, error) {
	ch, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Channel{}, err
		}
		return Channel{}, fmt.Errorf("getting channel: %w", err)
	}
	return ch, nil
}

// List returns all channels in creation order
func (s *Service) List(ctx context.Context) ([]Channel, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}
	return all, nil
}

// Delete removes a channel; log records referencing it are untouched
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("deleting channel: %w", err)
	}
	return nil
}

/* newID generates a unique channel id, re-rolling on the
 * (vanishingly unlikely) collision with an existing channel
 */
func (s *Service) newID(ctx context.Context) (string, error) {
	for range 5 {
		id := uuid.New().String()
		_, err := s.Repo.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("exhausted id generation attempts")
}
