package provision

import (
	"context"
	"fmt"
	"os"

	"github.com/marcelsud/webhook-relay/channel"
	"gopkg.in/yaml.v3"
)

/* Loader reads channels.yaml and ensures the declared channels exist
 * in the registry at startup. Provisioned channels keep fixed ids so
 * inbound URLs survive restarts and redeployments.
 */

// Config represents the structure of channels.yaml
type Config struct {
	Channels []ChannelConfig `yaml:"channels"`
}

// ChannelConfig represents a single channel in the YAML file
type ChannelConfig struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Secret         string `yaml:"secret"`
	TelegramChatID string `yaml:"telegram_chat_id"`
}

// Validate checks if the channel configuration is valid
func (c ChannelConfig) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("channel id cannot be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("name cannot be empty for channel %s", c.ID)
	}
	return nil
}

// Loader holds the loaded channel declarations
type Loader struct {
	channels []ChannelConfig
}

// NewLoader creates a new provisioning loader
func NewLoader() *Loader {
	return &Loader{}
}

/* Load reads and parses the channels.yaml file.
 * A missing file is not an error: provisioning is optional.
 */
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading channels file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing channels YAML: %w", err)
	}

	for _, cc := range config.Channels {
		if err := cc.Validate(); err != nil {
			return fmt.Errorf("validating channel: %w", err)
		}
		l.channels = append(l.channels, cc)
	}

	return nil
}

// List returns all loaded channel declarations
func (l *Loader) List() []ChannelConfig {
	return l.channels
}

// Apply ensures every declared channel exists in the registry
func (l *Loader) Apply(ctx context.Context, svc channel.UseCase) error {
	for _, cc := range l.channels {
		err := svc.Ensure(ctx, channel.Channel{
			ID:             cc.ID,
			Name:           cc.Name,
			Secret:         cc.Secret,
			TelegramChatID: cc.TelegramChatID,
		})
		if err != nil {
			return fmt.Errorf("provisioning channel %s: %w", cc.ID, err)
		}
	}
	return nil
}
