package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa */

type Config struct {
	Port             string `mapstructure:"PORT"`
	DataDir          string `mapstructure:"DATA_DIR"`
	Storage          string `mapstructure:"STORAGE"`
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisDB          int    `mapstructure:"REDIS_DB"`
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `mapstructure:"TELEGRAM_CHAT_ID"`
	ChannelsFile     string `mapstructure:"CHANNELS_FILE"`
	LogRejected      bool   `mapstructure:"LOG_REJECTED"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8082")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("STORAGE", "file")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CHANNELS_FILE", "")
	viper.SetDefault("LOG_REJECTED", true)

	// A missing .env is fine, the environment alone can configure everything
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	if config.Storage != "file" && config.Storage != "redis" {
		return nil, fmt.Errorf("invalid STORAGE value: %s (expected file or redis)", config.Storage)
	}
	return &config, nil
}
