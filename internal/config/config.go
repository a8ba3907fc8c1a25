// Package config loads wsdlfetch settings from defaults, an optional
// YAML file, WSDLFETCH_* environment variables and command-line flags.
package config // import "github.com/CognitoIQ/wsdlfetch/internal/config"

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/CognitoIQ/wsdlfetch/resolver"
	"github.com/CognitoIQ/wsdlfetch/source"
)

// EnvPrefix is prepended to setting names to form the environment
// variables that override them. Nested keys use an underscore, as in
// WSDLFETCH_LOG_DEBUG.
const EnvPrefix = "WSDLFETCH"

// A Config holds the settings of one wsdlfetch run. Keys in the
// config file and environment follow the mapstructure tags.
type Config struct {
	Indent      int           `mapstructure:"indent"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
	UserAgent   string        `mapstructure:"user_agent"`
	Log         struct {
		Debug bool `mapstructure:"debug"`
		JSON  bool `mapstructure:"json"`
	} `mapstructure:"log"`
}

// SetDefaults registers the default value of every setting with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("indent", resolver.DefaultIndentWidth)
	v.SetDefault("timeout", source.DefaultTimeout)
	v.SetDefault("concurrency", resolver.DefaultConcurrency)
	v.SetDefault("user_agent", source.DefaultUserAgent)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.json", false)
}

// Load reads settings into a Config. If file is empty, wsdlfetch.yaml is
// looked for in the working directory and in $HOME/.config/wsdlfetch,
// and it is not an error if neither exists. A file named explicitly
// must exist. Flags bound to v take precedence over the environment,
// which takes precedence over the file.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("wsdlfetch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "wsdlfetch"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	switch {
	case cfg.Indent < 0:
		return fmt.Errorf("indent must not be negative, got %d", cfg.Indent)
	case cfg.Concurrency < 1:
		return fmt.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency)
	case cfg.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return nil
}

// Options returns the resolver options corresponding to cfg.
func (cfg *Config) Options() []resolver.Option {
	return []resolver.Option{
		resolver.IndentWidth(cfg.Indent),
		resolver.Concurrency(cfg.Concurrency),
		resolver.FetchFrom(source.NewHTTP(cfg.Timeout, cfg.UserAgent)),
	}
}
