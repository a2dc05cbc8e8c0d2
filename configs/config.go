package configs

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	config *Config
	once   sync.Once
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type CanvasConfig struct {
	// RetentionWindow is the maximum age a completed-stroke snapshot may
	// reach before the expiry scheduler evicts it.
	RetentionWindow time.Duration
	// ExpiryPollInterval is the fixed re-poll interval of the scheduler,
	// not a per-entry deadline.
	ExpiryPollInterval time.Duration
	// SpawnArea is the side length of the square region users spawn in,
	// centered on the origin.
	SpawnArea      float64
	SendBufferSize int
	MaxMessageSize int64
}

type Config struct {
	Server ServerConfig
	Canvas CanvasConfig
}

func GetConfig() *Config {
	once.Do(func() {
		config = load()
	})
	return config
}

func load() *Config {
	v := viper.New()

	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("canvas.retention_window", "15m")
	v.SetDefault("canvas.expiry_poll_interval", "1s")
	v.SetDefault("canvas.spawn_area", 320.0)
	v.SetDefault("canvas.send_buffer_size", 256)
	v.SetDefault("canvas.max_message_size", 1048576)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("canvas")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Error reading config file: %v", err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("server.port"),
			AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
		},
		Canvas: CanvasConfig{
			RetentionWindow:    v.GetDuration("canvas.retention_window"),
			ExpiryPollInterval: v.GetDuration("canvas.expiry_poll_interval"),
			SpawnArea:          v.GetFloat64("canvas.spawn_area"),
			SendBufferSize:     v.GetInt("canvas.send_buffer_size"),
			MaxMessageSize:     v.GetInt64("canvas.max_message_size"),
		},
	}
}
