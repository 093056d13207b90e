package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mattkeefer/sports-odds-backend/internal/models"
	"github.com/mattkeefer/sports-odds-backend/internal/sources"
)

// Config holds all configuration for sports-odds-backend
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Provider   ProviderConfig   `mapstructure:"provider"`
	Sources    []sources.Source `mapstructure:"sources"`
	Evaluation EvaluationConfig `mapstructure:"evaluation"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// ProviderConfig holds the remote pricing provider configuration
type ProviderConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIKey        string        `mapstructure:"api_key"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    int           `mapstructure:"max_retries"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	DefaultLeague string        `mapstructure:"default_league"`
	DefaultLimit  int           `mapstructure:"default_limit"`
}

// EvaluationConfig holds the default evaluation parameters applied to requests
type EvaluationConfig struct {
	MinPrice          int     `mapstructure:"min_price"`
	MaxPrice          int     `mapstructure:"max_price"`
	MinEV             float64 `mapstructure:"min_ev"`
	Bankroll          float64 `mapstructure:"bankroll"`
	KellyFraction     float64 `mapstructure:"kelly_fraction"` // 0.25 = quarter Kelly
	IncludeEqualPrice bool    `mapstructure:"include_equal_price"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"` // Topic to publish opportunities to
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// DefaultSources is the source registry used when none is configured
var DefaultSources = []sources.Source{
	{ID: "draftkings", Name: "DraftKings"},
	{ID: "fanduel", Name: "FanDuel"},
	{ID: "betmgm", Name: "BetMGM"},
	{ID: "caesars", Name: "Caesars"},
	{ID: "espnbet", Name: "ESPN BET"},
	{ID: "fanatics", Name: "Fanatics"},
	{ID: "betrivers", Name: "BetRivers"},
	{ID: "hardrockbet", Name: "Hard Rock Bet"},
	{ID: "pinnacle", Name: "Pinnacle"},
	{ID: "bovada", Name: "Bovada"},
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)

	v.SetDefault("provider.base_url", "https://api.sportsgameodds.com/v2")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.timeout", 10*time.Second)
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.retry_delay", time.Second)
	v.SetDefault("provider.default_league", "NBA")
	v.SetDefault("provider.default_limit", 50)

	defaultSources := make([]map[string]string, len(DefaultSources))
	for i, s := range DefaultSources {
		defaultSources[i] = map[string]string{"id": s.ID, "name": s.Name}
	}
	v.SetDefault("sources", defaultSources)

	v.SetDefault("evaluation.min_price", -400)
	v.SetDefault("evaluation.max_price", 300)
	v.SetDefault("evaluation.min_ev", 0.0)
	v.SetDefault("evaluation.bankroll", 1000.0)
	v.SetDefault("evaluation.kelly_fraction", 0.25)
	v.SetDefault("evaluation.include_equal_price", false)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", time.Minute)
	v.SetDefault("redis.prefix", "snapshots")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "positive_ev_opportunities")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allow_credentials", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("SPORTS_ODDS")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks values that would make every request fail
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}
	if c.Provider.DefaultLimit <= 0 {
		return fmt.Errorf("provider.default_limit must be positive")
	}
	return c.Evaluation.Validate()
}

// Validate checks the default evaluation parameters
func (c *EvaluationConfig) Validate() error {
	if c.MinPrice > c.MaxPrice {
		return fmt.Errorf("evaluation.min_price %d is greater than max_price %d", c.MinPrice, c.MaxPrice)
	}
	if c.Bankroll <= 0 {
		return fmt.Errorf("evaluation.bankroll must be positive")
	}
	if c.KellyFraction <= 0 || c.KellyFraction > 1 {
		return fmt.Errorf("evaluation.kelly_fraction must be in (0, 1]")
	}
	return nil
}

// ToEvaluationParams converts config to evaluation parameters
func (c *EvaluationConfig) ToEvaluationParams() models.EvaluationParams {
	return models.EvaluationParams{
		MinPrice:          c.MinPrice,
		MaxPrice:          c.MaxPrice,
		MinEV:             c.MinEV,
		Bankroll:          c.Bankroll,
		KellyFraction:     c.KellyFraction,
		IncludeEqualPrice: c.IncludeEqualPrice,
	}
}
