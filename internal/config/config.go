package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Default models per LLM provider.
const (
	DefaultAnthropicModel = "claude-haiku-4-5-20251001"
	DefaultOpenAIModel    = "gpt-4o-mini"
)

// Config holds the full application configuration.
type Config struct {
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai" mapstructure:"openai"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	Jina       JinaConfig       `yaml:"jina" mapstructure:"jina"`
	Perplexity PerplexityConfig `yaml:"perplexity" mapstructure:"perplexity"`
	DuckDuckGo DuckDuckGoConfig `yaml:"duckduckgo" mapstructure:"duckduckgo"`
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
	Report     ReportConfig     `yaml:"report" mapstructure:"report"`
	Companies  []string         `yaml:"companies" mapstructure:"companies"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// LLMConfig selects the language model backend and sampling parameters.
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"`
	Model       string  `yaml:"model" mapstructure:"model"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	// MaxAttempts > 1 retries transient failures (429, 5xx, timeouts).
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// ResolvedModel returns Model, or the provider's default when unset.
func (c LLMConfig) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == "openai" {
		return DefaultOpenAIModel
	}
	return DefaultAnthropicModel
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key string `yaml:"key" mapstructure:"key"`
}

// OpenAIConfig holds OpenAI (or compatible gateway) settings.
type OpenAIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// SearchConfig selects the search provider and bounds query volume.
type SearchConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"`
	MaxResults        int     `yaml:"max_results" mapstructure:"max_results"`
	DatasetMaxResults int     `yaml:"dataset_max_results" mapstructure:"dataset_max_results"`
	RatePerSec        float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
	ParallelFanout    bool    `yaml:"parallel_fanout" mapstructure:"parallel_fanout"`
	// BreakerThreshold consecutive failures short-circuit the provider for
	// BreakerCooldownSecs. Zero disables the breaker.
	BreakerThreshold    int `yaml:"breaker_threshold" mapstructure:"breaker_threshold"`
	BreakerCooldownSecs int `yaml:"breaker_cooldown_secs" mapstructure:"breaker_cooldown_secs"`
	TimeoutSecs         int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// JinaConfig holds Jina AI Search settings.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// PerplexityConfig holds Perplexity API settings.
type PerplexityConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// DuckDuckGoConfig holds DuckDuckGo HTML endpoint settings.
type DuckDuckGoConfig struct {
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// PipelineConfig tunes the report stages.
type PipelineConfig struct {
	MaxResourceUseCases int  `yaml:"max_resource_use_cases" mapstructure:"max_resource_use_cases"`
	TrendYear           int  `yaml:"trend_year" mapstructure:"trend_year"`
	LenientJSON         bool `yaml:"lenient_json" mapstructure:"lenient_json"`
}

// ReportConfig controls where report files are written.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	Prefix    string `yaml:"prefix" mapstructure:"prefix"`
	Suffix    string `yaml:"suffix" mapstructure:"suffix"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from an optional ./config.yaml and environment.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from path, which must exist, and the
// environment. An empty path falls back to the optional ./config.yaml.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	v.SetConfigType("yaml")

	// Environment
	v.SetEnvPrefix("OPPORTUNITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Secrets and optional overrides have empty defaults so env vars are
	// picked up by Unmarshal.
	for _, key := range []string{
		"llm.model", "anthropic.key", "openai.key", "openai.base_url",
		"jina.key", "perplexity.key", "duckduckgo.user_agent",
	} {
		v.SetDefault(key, "")
	}

	// Defaults
	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.max_attempts", 1)
	v.SetDefault("search.provider", "duckduckgo")
	v.SetDefault("search.max_results", 5)
	v.SetDefault("search.dataset_max_results", 3)
	v.SetDefault("search.rate_per_sec", 1.0)
	v.SetDefault("search.burst", 2)
	v.SetDefault("search.parallel_fanout", false)
	v.SetDefault("search.breaker_threshold", 5)
	v.SetDefault("search.breaker_cooldown_secs", 30)
	v.SetDefault("search.timeout_secs", 30)
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("perplexity.base_url", "https://api.perplexity.ai")
	v.SetDefault("duckduckgo.base_url", "https://html.duckduckgo.com")
	v.SetDefault("pipeline.max_resource_use_cases", 3)
	v.SetDefault("pipeline.trend_year", 0)
	v.SetDefault("pipeline.lenient_json", false)
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("report.prefix", "consultation_report_")
	v.SetDefault("report.suffix", ".md")
	v.SetDefault("companies", []string{"Nike", "Tesla", "Amazon"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the selected providers are known and have the
// credentials they need.
func (c *Config) Validate() error {
	var problems []string

	switch c.LLM.Provider {
	case "anthropic":
		if c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required for llm.provider=anthropic")
		}
	case "openai":
		if c.OpenAI.Key == "" {
			problems = append(problems, "openai.key is required for llm.provider=openai")
		}
	default:
		problems = append(problems, "llm.provider must be anthropic or openai, got "+quote(c.LLM.Provider))
	}

	switch c.Search.Provider {
	case "duckduckgo":
	case "jina":
		if c.Jina.Key == "" {
			problems = append(problems, "jina.key is required for search.provider=jina")
		}
	case "perplexity":
		if c.Perplexity.Key == "" {
			problems = append(problems, "perplexity.key is required for search.provider=perplexity")
		}
	default:
		problems = append(problems, "search.provider must be duckduckgo, jina or perplexity, got "+quote(c.Search.Provider))
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		problems = append(problems, "llm.temperature must be between 0 and 2")
	}
	if c.LLM.MaxTokens <= 0 {
		problems = append(problems, "llm.max_tokens must be positive")
	}
	if c.Search.MaxResults <= 0 {
		problems = append(problems, "search.max_results must be positive")
	}
	if c.Search.DatasetMaxResults <= 0 {
		problems = append(problems, "search.dataset_max_results must be positive")
	}
	if c.Pipeline.MaxResourceUseCases <= 0 {
		problems = append(problems, "pipeline.max_resource_use_cases must be positive")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func quote(s string) string {
	return `"` + s + `"`
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
