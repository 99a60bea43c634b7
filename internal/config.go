package internal

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type SqlriteConfig struct {
	AppName string `mapstructure:"app_name"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	REPL struct {
		Prompt       string `mapstructure:"prompt"`
		HistoryFile  string `mapstructure:"history_file"`
		HistoryLimit int    `mapstructure:"history_limit"`
	} `mapstructure:"repl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "sqlrite")
	v.SetDefault("log.level", "warn")
	v.SetDefault("repl.prompt", "sqlrite> ")
	v.SetDefault("repl.history_file", "")
	v.SetDefault("repl.history_limit", 1000)
}

// LoadConfig reads a YAML config file. An empty path yields the defaults.
// SQLRITE_* environment variables override both, e.g. SQLRITE_LOG_LEVEL.
func LoadConfig(path string) (*SqlriteConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("sqlrite")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg SqlriteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.REPL.HistoryLimit < 0 {
		return nil, fmt.Errorf("config: repl.history_limit must be >= 0, got %d", cfg.REPL.HistoryLimit)
	}

	return &cfg, nil
}
