package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"content-review-tutor/internal/upload"
)

// Label numbering policies for extracted document units.
const (
	LabelNumberingPerFile   = "per_file"
	LabelNumberingCrossFile = "cross_file"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreLRU    = "lru"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Content review specifics
	Session    SessionConfig
	Upload     UploadConfig
	Extraction ExtractionConfig
	OCR        OCRConfig
	Prompt     PromptConfig

	// LLM Provider Abstraction
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	RateLimitPerMin int
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// SessionConfig bounds per-session state.
type SessionConfig struct {
	MaxMessages              int
	MaxDocuments             int
	SerializePerKey          bool
	PersistOnUpstreamFailure bool
	Store                    string        // memory | lru
	LRUSize                  int           // lru only: max live sessions
	LRUTTL                   time.Duration // lru only: idle expiry
}

// UploadConfig controls the upload gate and file storage.
type UploadConfig struct {
	MaxSizeBytes  int64
	MaxFiles      int
	AllowedTypes  []string
	VerifyContent bool
	Dir           string
	RetainFiles   bool
}

// ExtractionConfig controls document text extraction.
type ExtractionConfig struct {
	Timeout        time.Duration
	LabelNumbering string // per_file | cross_file
}

type OCRConfig struct {
	Language string
}

// PromptConfig selects where the system instruction comes from.
// An empty SystemInstructionFile uses the built-in instruction.
type PromptConfig struct {
	SystemInstructionFile string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers            []ProviderConfig `yaml:"providers"`
	FallbackEnabled      bool             `yaml:"fallback_enabled"`
	Model                string           `yaml:"model"`
	Temperature          float64          `yaml:"temperature"`
	MaxTokens            int              `yaml:"max_tokens"`
	Timeout              time.Duration    `yaml:"timeout"`
	ExposeUpstreamErrors bool             `yaml:"expose_upstream_errors"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/ unless
// path points at a specific file.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/app/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = v.GetInt("http_server.rate_limit_per_min")
	cfg.HTTPServer.ShutdownTimeout = v.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Session
	cfg.Session.MaxMessages = v.GetInt("session.max_messages")
	cfg.Session.MaxDocuments = v.GetInt("session.max_documents")
	cfg.Session.SerializePerKey = v.GetBool("session.serialize_per_key")
	cfg.Session.PersistOnUpstreamFailure = v.GetBool("session.persist_on_upstream_failure")
	cfg.Session.Store = v.GetString("session.store")
	cfg.Session.LRUSize = v.GetInt("session.lru_size")
	cfg.Session.LRUTTL = v.GetDuration("session.lru_ttl")

	// Upload
	cfg.Upload.MaxSizeBytes = v.GetInt64("upload.max_size_bytes")
	cfg.Upload.MaxFiles = v.GetInt("upload.max_files")
	cfg.Upload.AllowedTypes = splitList(v.GetStringSlice("upload.allowed_types"))
	cfg.Upload.VerifyContent = v.GetBool("upload.verify_content")
	cfg.Upload.Dir = v.GetString("upload.dir")
	cfg.Upload.RetainFiles = v.GetBool("upload.retain_files")

	// Extraction & OCR
	cfg.Extraction.Timeout = v.GetDuration("extraction.timeout")
	cfg.Extraction.LabelNumbering = v.GetString("extraction.label_numbering")
	cfg.OCR.Language = v.GetString("ocr.language")

	// Prompt
	cfg.Prompt.SystemInstructionFile = v.GetString("prompt.system_instruction_file")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.Model = v.GetString("llm.model")
	cfg.LLM.Temperature = v.GetFloat64("llm.temperature")
	cfg.LLM.MaxTokens = v.GetInt("llm.max_tokens")
	cfg.LLM.Timeout = v.GetDuration("llm.timeout")
	cfg.LLM.ExposeUpstreamErrors = v.GetBool("llm.expose_upstream_errors")

	if v.IsSet("llm.providers") {
		providersRaw := v.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(v, getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// Single-provider shortcut: OPENAI_API_KEY without a providers section.
	if len(cfg.LLM.Providers) == 0 {
		if key := v.GetString("openai_api_key"); key != "" {
			cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
				Name:     "openai",
				Enabled:  true,
				Priority: 1,
				APIKey:   key,
				Model:    cfg.LLM.Model,
			})
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.rate_limit_per_min", 60)
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("session.max_messages", 50)
	v.SetDefault("session.max_documents", 100)
	v.SetDefault("session.serialize_per_key", true)
	v.SetDefault("session.persist_on_upstream_failure", false)
	v.SetDefault("session.store", SessionStoreMemory)
	v.SetDefault("session.lru_size", 10000)
	v.SetDefault("session.lru_ttl", "24h")

	v.SetDefault("upload.max_size_bytes", 5*1024*1024)
	v.SetDefault("upload.max_files", 10)
	v.SetDefault("upload.allowed_types", append([]string(nil), upload.SupportedTypes...))
	v.SetDefault("upload.verify_content", true)
	v.SetDefault("upload.dir", "static/uploads")
	v.SetDefault("upload.retain_files", false)

	v.SetDefault("extraction.timeout", "60s")
	v.SetDefault("extraction.label_numbering", LabelNumberingCrossFile)
	v.SetDefault("ocr.language", "eng")

	// LLM defaults
	v.SetDefault("llm.fallback_enabled", false)
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.max_tokens", 4000)
	v.SetDefault("llm.timeout", "90s")
	v.SetDefault("llm.expose_upstream_errors", false)
}

// Validate checks that limits and policies hold usable values.
func (c *Config) Validate() error {
	if c.Session.MaxMessages <= 0 {
		return fmt.Errorf("session.max_messages must be positive")
	}
	if c.Session.MaxDocuments <= 0 {
		return fmt.Errorf("session.max_documents must be positive")
	}
	switch c.Session.Store {
	case SessionStoreMemory:
	case SessionStoreLRU:
		if c.Session.LRUSize <= 0 {
			return fmt.Errorf("session.lru_size must be positive")
		}
	default:
		return fmt.Errorf("unknown session.store %q", c.Session.Store)
	}

	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("upload.max_size_bytes must be positive")
	}
	if c.Upload.MaxFiles <= 0 {
		return fmt.Errorf("upload.max_files must be positive")
	}
	if len(c.Upload.AllowedTypes) == 0 {
		return fmt.Errorf("upload.allowed_types must not be empty")
	}
	for _, t := range c.Upload.AllowedTypes {
		if !upload.Supported(t) {
			return fmt.Errorf("upload.allowed_types: %q cannot be extracted, supported types are %v", t, upload.SupportedTypes)
		}
	}

	switch c.Extraction.LabelNumbering {
	case LabelNumberingPerFile, LabelNumberingCrossFile:
	default:
		return fmt.Errorf("unknown extraction.label_numbering %q", c.Extraction.LabelNumbering)
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be within [0, 2]")
	}

	return validateLLMConfig(&c.LLM)
}

// validateLLMConfig validates the provider list
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - add llm.providers to config.yaml or set OPENAI_API_KEY")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// splitList flattens comma-separated entries, which is how env vars arrive.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(v *viper.Viper, value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := v.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
