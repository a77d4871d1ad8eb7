package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is resolved in three layers: defaults, an optional YAML file, then
// the environment (including .env files).
type Config struct {
	APIKey            string        `yaml:"api_key"`
	Port              string        `yaml:"port"`
	LogLevel          string        `yaml:"log_level"`
	PostsModel        string        `yaml:"posts_model"`
	ImagePromptModel  string        `yaml:"image_prompt_model"`
	ImageModel        string        `yaml:"image_model"`
	GenerationTimeout time.Duration `yaml:"generation_timeout"`
}

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable is required")

func Default() Config {
	return Config{
		Port:              "8080",
		LogLevel:          "info",
		PostsModel:        "gemini-2.5-pro",
		ImagePromptModel:  "gemini-2.5-flash",
		ImageModel:        "imagen-4.0-generate-001",
		GenerationTimeout: 120 * time.Second,
	}
}

// LoadEnv loads .env style files that exist, later files overriding earlier ones.
func LoadEnv(logger *logrus.Logger, files ...string) {
	if len(files) == 0 {
		files = []string{".env", ".env.dev"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			if logger != nil {
				logger.WithError(err).Warnf("Failed to load %s", file)
			}
			continue
		}
		if logger != nil {
			logger.Debugf("Loaded env file %s", file)
		}
	}
}

// Load builds the configuration. The YAML file named by CONFIG_FILE is optional.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.APIKey = GetEnv("GEMINI_API_KEY", cfg.APIKey)
	cfg.Port = GetEnv("PORT", cfg.Port)
	cfg.LogLevel = GetEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.PostsModel = GetEnv("TEXT_MODEL", cfg.PostsModel)
	cfg.ImagePromptModel = GetEnv("IMAGE_PROMPT_MODEL", cfg.ImagePromptModel)
	cfg.ImageModel = GetEnv("IMAGE_MODEL", cfg.ImageModel)
	if secs := GetEnvInt("GENERATION_TIMEOUT", 0); secs > 0 {
		cfg.GenerationTimeout = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("generation timeout must be positive, got %s", c.GenerationTimeout)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if fileCfg.APIKey != "" {
		c.APIKey = fileCfg.APIKey
	}
	if fileCfg.Port != "" {
		c.Port = fileCfg.Port
	}
	if fileCfg.LogLevel != "" {
		c.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.PostsModel != "" {
		c.PostsModel = fileCfg.PostsModel
	}
	if fileCfg.ImagePromptModel != "" {
		c.ImagePromptModel = fileCfg.ImagePromptModel
	}
	if fileCfg.ImageModel != "" {
		c.ImageModel = fileCfg.ImageModel
	}
	if fileCfg.GenerationTimeout > 0 {
		c.GenerationTimeout = fileCfg.GenerationTimeout
	}
	return nil
}

// GetEnv gets an environment variable with a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets an integer environment variable with a default value
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
