// Package config loads cuesheet settings from an optional YAML file, a .env
// file and CUESHEET_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/llm"
)

const (
	configName = "cuesheet"
	envPrefix  = "CUESHEET"
)

// Config is the full application configuration.
type Config struct {
	LLM       LLMSection       `mapstructure:"llm"`
	Story     StorySection     `mapstructure:"story"`
	Server    ServerSection    `mapstructure:"server"`
	Templates TemplatesSection `mapstructure:"templates"`
	Output    OutputSection    `mapstructure:"output"`
	Log       LogSection       `mapstructure:"log"`
}

type LLMSection struct {
	Provider          string `mapstructure:"provider" validate:"oneof=openai ollama"`
	Model             string `mapstructure:"model" validate:"required"`
	APIKey            string `mapstructure:"api_key"`
	Endpoint          string `mapstructure:"endpoint" validate:"omitempty,url"`
	TimeoutMs         int    `mapstructure:"timeout_ms" validate:"gte=1000"`
	ScenarioTimeoutMs int    `mapstructure:"scenario_timeout_ms" validate:"gte=0"`
	StoryTimeoutMs    int    `mapstructure:"story_timeout_ms" validate:"gte=0"`
	LogCalls          bool   `mapstructure:"log_calls"`
}

type StorySection struct {
	Concurrency int `mapstructure:"concurrency" validate:"gte=1,lte=8"`
}

type ServerSection struct {
	Addr         string        `mapstructure:"addr" validate:"required"`
	AllowOrigins []string      `mapstructure:"allow_origins"`
	SessionTTL   time.Duration `mapstructure:"session_ttl" validate:"gte=0"`
}

type TemplatesSection struct {
	Dir string `mapstructure:"dir"`
}

type OutputSection struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

type LogSection struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

var validate = validator.New()

// flagKeys maps command-line flags onto config keys. A flag only wins
// when it was set explicitly.
var flagKeys = map[string]string{
	"log-level": "log.level",
}

// Load reads configuration. path names an explicit config file; when empty
// ./cuesheet.yaml and ~/.cuesheet/cuesheet.yaml are tried and a missing
// file is not an error. A .env file in the working directory is loaded
// into the environment first. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	v := viper.New()
	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}
	return load(v, path)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

func load(v *viper.Viper, path string) (*Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	// Bare OPENAI_API_KEY and API_KEY are accepted as fallbacks.
	cfg.LLM.APIKey = domain.CoalesceStr(cfg.LLM.APIKey, os.Getenv("OPENAI_API_KEY"), os.Getenv("API_KEY"))
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", string(d.Provider))
	v.SetDefault("llm.model", d.Model)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.timeout_ms", d.TimeoutMs)
	v.SetDefault("llm.scenario_timeout_ms", d.Tasks[llm.TaskScenario].TimeoutMs)
	v.SetDefault("llm.story_timeout_ms", d.Tasks[llm.TaskStory].TimeoutMs)
	v.SetDefault("llm.log_calls", false)

	v.SetDefault("story.concurrency", 1)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("server.session_ttl", 30*time.Minute)

	v.SetDefault("templates.dir", "")
	v.SetDefault("output.dir", ".")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// LLMConfig converts the llm section into the client configuration.
func (c *Config) LLMConfig() llm.LLMConfig {
	cfg := llm.DefaultConfig()
	cfg.Provider = llm.Provider(c.LLM.Provider)
	cfg.Model = c.LLM.Model
	cfg.APIKey = c.LLM.APIKey
	cfg.Endpoint = c.LLM.Endpoint
	cfg.TimeoutMs = c.LLM.TimeoutMs
	cfg.LogCalls = c.LLM.LogCalls

	setTaskTimeout(&cfg, llm.TaskScenario, c.LLM.ScenarioTimeoutMs)
	setTaskTimeout(&cfg, llm.TaskStory, c.LLM.StoryTimeoutMs)
	return cfg
}

func setTaskTimeout(cfg *llm.LLMConfig, task llm.TaskType, ms int) {
	tc := cfg.Tasks[task]
	tc.TimeoutMs = ms
	cfg.Tasks[task] = tc
}
