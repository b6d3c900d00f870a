package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every runtime setting of the service.
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Sentiment SentimentConfig
	Upload    UploadConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	sentiment, err := loadSentimentConfig()
	if err != nil {
		return nil, err
	}

	upload, err := loadUploadConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Sentiment: sentiment, Upload: upload}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig carries the Ark model credentials used by the LLM classifier
// backend.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds the Ark chat model from this configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials missing: provide ARK_API_KEY + ARK_MODEL, or the AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// Classifier backends.
const (
	BackendLLM     = "llm"
	BackendLexicon = "lexicon"
)

// SentimentConfig selects and tunes the classifier plus the parser hardening
// pass.
type SentimentConfig struct {
	Backend       string
	Language      string
	MaxChars      int
	Timeout       time.Duration
	Concurrency   int
	FilterSystem  bool
	MinTextLength int
}

func loadSentimentConfig() (SentimentConfig, error) {
	backend := strings.ToLower(getEnvOrDefault("SENTIMENT_BACKEND", BackendLLM))
	if backend != BackendLLM && backend != BackendLexicon {
		return SentimentConfig{}, fmt.Errorf("invalid SENTIMENT_BACKEND value %q: want %q or %q", backend, BackendLLM, BackendLexicon)
	}

	maxChars := 280
	if override, err := parseOptionalIntEnv("SENTIMENT_MAX_CHARS"); err != nil {
		return SentimentConfig{}, err
	} else if override != nil {
		maxChars = *override
	}

	timeoutSeconds := 20
	if override, err := parseOptionalIntEnv("SENTIMENT_TIMEOUT"); err != nil {
		return SentimentConfig{}, err
	} else if override != nil {
		timeoutSeconds = *override
	}

	concurrency := 4
	if override, err := parseOptionalIntEnv("SENTIMENT_CONCURRENCY"); err != nil {
		return SentimentConfig{}, err
	} else if override != nil {
		if *override < 1 {
			concurrency = 1
		} else {
			concurrency = *override
		}
	}

	filterSystem, err := parseBoolEnv("FILTER_SYSTEM_MESSAGES", true)
	if err != nil {
		return SentimentConfig{}, err
	}

	minTextLength := 3
	if override, err := parseOptionalIntEnv("MIN_MESSAGE_LENGTH"); err != nil {
		return SentimentConfig{}, err
	} else if override != nil {
		minTextLength = *override
	}

	return SentimentConfig{
		Backend:       backend,
		Language:      getEnvOrDefault("SENTIMENT_LANGUAGE", "pt"),
		MaxChars:      maxChars,
		Timeout:       time.Duration(timeoutSeconds) * time.Second,
		Concurrency:   concurrency,
		FilterSystem:  filterSystem,
		MinTextLength: minTextLength,
	}, nil
}

// UploadConfig caps transcript uploads.
type UploadConfig struct {
	MaxBytes int64
}

func loadUploadConfig() (UploadConfig, error) {
	maxBytes := int64(10 << 20)
	if override, err := parseOptionalIntEnv("UPLOAD_MAX_BYTES"); err != nil {
		return UploadConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return UploadConfig{}, fmt.Errorf("invalid UPLOAD_MAX_BYTES value %d", *override)
		}
		maxBytes = int64(*override)
	}
	return UploadConfig{MaxBytes: maxBytes}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
