package configs

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port        string
		Env         string
		LogLevel    string
		PingMessage string
	}
	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}
	Catalog struct {
		// Source selects the backing store: "memory" or "postgres".
		Source string
		// EndingSoonThreshold flags listings as urgent inside this window.
		EndingSoonThreshold time.Duration
		// StartingSoonWindow bounds the look-ahead for upcoming listings.
		StartingSoonWindow time.Duration
		// TickInterval drives the live countdown broadcaster.
		TickInterval time.Duration
	}
	WebSocket struct {
		MaxMessageSize int
	}
	Features struct {
		EnableDashboard  bool
		AllowCrossOrigin bool
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file
	if err := godotenv.Load("./configs/.env"); err != nil {
		log.Info("No .env file found")
	}

	viper.SetConfigName("config")    // Name of the config file (without extension)
	viper.SetConfigType("yaml")      // Config file type
	viper.AddConfigPath("./configs") // Path to look for the config file
	viper.AutomaticEnv()             // Automatically map environment variables

	// Allow dots in environment variables to map to nested keys
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read the config file
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	// Manually substitute environment variables in the config
	substituteEnvVarsInConfig()

	// Unmarshal the config into a struct
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = "memory"
	}
	if cfg.Catalog.EndingSoonThreshold <= 0 {
		cfg.Catalog.EndingSoonThreshold = 2 * time.Hour
	}
	if cfg.Catalog.StartingSoonWindow <= 0 {
		cfg.Catalog.StartingSoonWindow = 24 * time.Hour
	}
	if cfg.Catalog.TickInterval <= 0 {
		cfg.Catalog.TickInterval = time.Second
	}
	if cfg.Server.PingMessage == "" {
		cfg.Server.PingMessage = "ping"
	}
}

// Helper function to manually replace environment variables in config file values
func substituteEnvVarsInConfig() {
	// Iterate over each key-value pair in viper's config
	for _, key := range viper.AllKeys() {
		// Get the current value
		value := viper.GetString(key)

		// Check if the value contains environment variable syntax (e.g., ${PORT})
		if strings.Contains(value, "${") {
			// Replace environment variables in the value (e.g., ${PORT})
			replacedValue := os.Expand(value, func(name string) string {
				// Lookup the environment variable's value
				return os.Getenv(name)
			})

			// Set the replaced value back into viper
			viper.Set(key, replacedValue)
		}
	}
}
