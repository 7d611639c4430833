package model

import "time"

// Config is the complete MemoWeave configuration. It is assembled once at
// startup (defaults, config file, environment, flags) and passed into
// components by value; nothing reads ambient process state at call time.
type Config struct {
	Pipeline    PipelineConfig    `yaml:"pipeline" mapstructure:"pipeline"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// PipelineConfig controls the extraction stages.
type PipelineConfig struct {
	// AnnotationWorkers is the fan-out for per-sentence annotation.
	// Annotation is a pure per-sentence function, so parallelism here is
	// safe; results are re-ordered by sentence ID before frame construction.
	AnnotationWorkers int `yaml:"annotation_workers" mapstructure:"annotation_workers"`
}

// LLMConfig configures the reasoning client.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "openai", "openrouter", "ollama"
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"-" mapstructure:"-"` // From environment only, never persisted
	BaseURL  string `yaml:"base_url,omitempty" mapstructure:"base_url"`

	Timeout   int `yaml:"timeout" mapstructure:"timeout"` // Seconds
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`

	// RequestsPerMinute caps outbound reasoning calls per provider endpoint.
	RequestsPerMinute float64 `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// CacheConfig controls the event-memory cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ServerConfig configures the HTTP progress-stream server.
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	UploadDir      string   `yaml:"upload_dir" mapstructure:"upload_dir"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls artifact rendering.
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	WriteCSV bool   `yaml:"write_csv" mapstructure:"write_csv"`
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			AnnotationWorkers: 4,
		},
		LLM: LLMConfig{
			Provider:          "openrouter",
			Model:             "gpt-oss-120b",
			Timeout:           60,
			MaxTokens:         1500,
			RequestsPerMinute: 30,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		Server: ServerConfig{
			Addr:           ":8077",
			UploadDir:      "data",
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:3001"},
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Dir:      "output",
			WriteCSV: false,
		},
	}
}
