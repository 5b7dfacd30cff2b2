package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"artifact-chat/internal/models"
)

const (
	defaultBaseURL   = "https://openrouter.ai/api/v1"
	defaultModel     = "google/gemini-2.0-flash-001"
	defaultTimeout   = 120 * time.Second
	defaultOutputDir = "./out"
	defaultLogLevel  = "debug"
)

type Config struct {
	LLM       LLMConfig            `yaml:"llm"`
	Markdown  MarkdownConfig       `yaml:"markdown"`
	Image     models.ImageSettings `yaml:"image"`
	OutputDir string               `yaml:"output_dir"`
	LogLevel  string               `yaml:"log_level"`
}

type LLMConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Key      string        `yaml:"key"`
	Model    string        `yaml:"model"`
	JSONMode bool          `yaml:"json_mode"`
	Timeout  time.Duration `yaml:"timeout"`
}

// MarkdownConfig tunes the Markdown to HTML converter used for documents.
type MarkdownConfig struct {
	GFM       *bool `yaml:"gfm"`
	HardWraps bool  `yaml:"hard_wraps"`
	XHTML     bool  `yaml:"xhtml"`
	Unsafe    *bool `yaml:"unsafe"`
}

func (m MarkdownConfig) GFMEnabled() bool {
	return m.GFM == nil || *m.GFM
}

func (m MarkdownConfig) UnsafeEnabled() bool {
	return m.Unsafe == nil || *m.Unsafe
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a config built only from defaults and the environment,
// for runs without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyEnvOverrides()
	cfg.ApplyDefaults()
	return cfg
}

// ApplyEnvOverrides lets the environment supply secrets and the model name.
// OPENROUTER_API_KEY takes precedence over the generic API_KEY.
func (c *Config) ApplyEnvOverrides() {
	if c.LLM.Key == "" {
		for _, name := range []string{"OPENROUTER_API_KEY", "API_KEY"} {
			if v := strings.TrimSpace(os.Getenv(name)); v != "" {
				c.LLM.Key = v
				break
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv("ARTIFACT_CHAT_MODEL")); v != "" {
		c.LLM.Model = v
	}
}

func (c *Config) ApplyDefaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModel
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = defaultTimeout
	}
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Image.Style == "" {
		c.Image.Style = "None"
	}
}
