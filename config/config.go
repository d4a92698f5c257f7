package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"

	"github.com/spf13/viper"
)

const (
	ProviderEcho   = "echo"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
	GinMode  string `mapstructure:"gin_mode"`

	Provider     string  `mapstructure:"provider"`
	AIEndpoint   string  `mapstructure:"ai_endpoint"`
	Model        string  `mapstructure:"model"`
	SystemPrompt string  `mapstructure:"system_prompt"`
	Temperature  float32 `mapstructure:"temperature"`
	MaxTokens    int     `mapstructure:"max_tokens"`

	OpenAIAPIKey  string   `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys []string `mapstructure:"GEMINI_API_KEYS"` // comma separated when read from env
}

// Address is the listen address of the HTTP server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown gin_mode %q", c.GinMode)
	}
	switch c.Provider {
	case ProviderEcho:
	case ProviderOpenAI:
		if c.AIEndpoint == "" {
			return errors.New("ai_endpoint is required for the openai provider")
		}
		if c.Model == "" {
			return errors.New("model is required for the openai provider")
		}
	case ProviderGemini:
		if len(c.GeminiAPIKeys) == 0 {
			return errors.New("GEMINI_API_KEYS is required for the gemini provider")
		}
		if c.Model == "" {
			return errors.New("model is required for the gemini provider")
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", "8000")
	v.SetDefault("log_level", "info")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("provider", ProviderEcho)
	v.SetDefault("ai_endpoint", "http://localhost:4000/v1")
	v.SetDefault("model", "gpt-4o-mini")
	v.SetDefault("system_prompt", "")
	v.SetDefault("temperature", 0)
	v.SetDefault("max_tokens", 0)
}

// LoadConfig reads configPath (if it exists) and overlays the environment.
// An empty path or a missing file leaves the defaults in place.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEYS")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.Provider = strings.ToLower(strings.TrimSpace(config.Provider))
	config.GeminiAPIKeys = compact(config.GeminiAPIKeys)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func compact(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
