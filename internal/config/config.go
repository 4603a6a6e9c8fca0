package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gosupply/internal/compare"
	"gosupply/internal/errors"
	"gosupply/internal/simulation"
	"gosupply/internal/solver"
)

// Intent providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	AI       AIConfig
	Server   ServerConfig
	Planning PlanningConfig
	Log      LogConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
}

// AIConfig holds intent-parser model settings
type AIConfig struct {
	Provider    string
	OpenAIKey   string
	OpenAIModel string
	BaseURL     string
	GeminiKey   string
	GeminiModel string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// PlanningConfig holds the tunable planning policy
type PlanningConfig struct {
	PolicyFile            string
	RouteTimeValuePerHour float64
	SupplierWeights       compare.SupplierWeights
	TransferServiceFactor float64
	SimulationRuns        int
	SimulationSeed        uint64
	MasterDataCacheSize   int
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables, applies the planning
// policy file when one is configured, and validates the result. DATABASE_URL
// is not required here; commands that touch the database call RequireDatabase.
func Load() (*Config, error) {
	config := &Config{
		Database: loadDatabaseConfig(),
		Server:   loadServerConfig(),
		Log:      loadLogConfig(),
	}

	aiConfig, err := loadAIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}
	config.AI = *aiConfig

	planning, err := loadPlanningConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load planning configuration")
	}
	config.Planning = *planning

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// RequireDatabase reports a config error when no database URL is set
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	return nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:          os.Getenv("DATABASE_URL"),
		MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
	}
}

func loadAIConfig() (*AIConfig, error) {
	ai := &AIConfig{
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		BaseURL:     getEnvOrDefault("LLM_BASE_URL", ""),
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel: getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		Temperature: getEnvFloatOrDefault("TEMPERATURE", 0),
		MaxTokens:   getEnvIntOrDefault("MAX_TOKENS", 1024),
		Timeout:     getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
	}

	provider := strings.ToLower(strings.TrimSpace(os.Getenv("INTENT_PROVIDER")))
	if provider == "" {
		switch {
		case ai.OpenAIKey != "":
			provider = ProviderOpenAI
		case ai.GeminiKey != "":
			provider = ProviderGemini
		default:
			provider = ProviderNone
		}
	}
	ai.Provider = provider

	switch provider {
	case ProviderOpenAI:
		if ai.OpenAIKey == "" {
			return nil, errors.ConfigInvalid("OPENAI_API_KEY is required for the openai intent provider")
		}
	case ProviderGemini:
		if ai.GeminiKey == "" {
			return nil, errors.ConfigInvalid("GEMINI_API_KEY is required for the gemini intent provider")
		}
	case ProviderNone:
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown INTENT_PROVIDER %q", provider))
	}
	return ai, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadLogConfig() LogConfig {
	return LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

func loadPlanningConfig() (*PlanningConfig, error) {
	seed, err := getEnvUint64OrDefault("SIMULATION_SEED", 42)
	if err != nil {
		return nil, err
	}
	planning := &PlanningConfig{
		PolicyFile:            getEnvOrDefault("PLANNING_POLICY_FILE", ""),
		RouteTimeValuePerHour: getEnvFloatOrDefault("ROUTE_TIME_VALUE_PER_HOUR", compare.DefaultTimeValuePerHour),
		SupplierWeights:       compare.DefaultSupplierWeights,
		TransferServiceFactor: getEnvFloatOrDefault("TRANSFER_SERVICE_FACTOR", solver.DefaultServiceFactor),
		SimulationRuns:        getEnvIntOrDefault("SIMULATION_RUNS", simulation.DefaultRuns),
		SimulationSeed:        seed,
		MasterDataCacheSize:   getEnvIntOrDefault("MASTER_DATA_CACHE_SIZE", 1024),
	}

	if planning.PolicyFile != "" {
		policy, err := LoadPolicy(planning.PolicyFile)
		if err != nil {
			return nil, err
		}
		policy.Apply(planning)
	}
	return planning, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	p := config.Planning
	if p.RouteTimeValuePerHour < 0 {
		return errors.ConfigInvalid("route time value per hour cannot be negative")
	}
	if p.TransferServiceFactor < 0 {
		return errors.ConfigInvalid("transfer service factor cannot be negative")
	}
	if p.SimulationRuns <= 0 {
		return errors.ConfigInvalid("SIMULATION_RUNS must be positive")
	}
	if p.MasterDataCacheSize <= 0 {
		return errors.ConfigInvalid("MASTER_DATA_CACHE_SIZE must be positive")
	}
	if err := p.SupplierWeights.Validate(); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	switch config.Log.Format {
	case "json", "console":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("LOG_FORMAT must be json or console, got %q", config.Log.Format))
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUint64OrDefault(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an unsigned integer", key))
	}
	return v, nil
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
