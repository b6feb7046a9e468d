// Package config loads the server's runtime configuration the way the
// teacher's common/config package does: a single mapstructure-tagged struct
// populated by viper, with optional fsnotify-driven reload that hands the
// re-read Configuration to a caller-supplied callback.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Configuration is the full set of tunables for a single server process.
// There is no DatabaseConf/EtcdConf/NatsConfig block here — this server owns
// no persistence or service-discovery concerns (spec.md §1 out-of-scope).
type Configuration struct {
	BaseConf   `mapstructure:",squash"`
	LogConf    `mapstructure:"log"`
	RoomConf   `mapstructure:"room"`
	ReconnConf `mapstructure:"reconnect"`
}

type BaseConf struct {
	ID         string `mapstructure:"id"`
	ListenAddr string `mapstructure:"listenAddr"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

// RoomConf holds the pacing constants referenced throughout §4.6.
type RoomConf struct {
	ClaimWindowTimeout time.Duration `mapstructure:"claimWindowTimeout"`
	BotActionDelay     time.Duration `mapstructure:"botActionDelay"`
	DisconnectGrace    time.Duration `mapstructure:"disconnectGrace"`
}

type ReconnConf struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// Default returns the configuration used when no file/env override is
// present — matches the timings named in spec.md §4.6 and §5.
func Default() Configuration {
	return Configuration{
		BaseConf: BaseConf{ID: "mahjong-0", ListenAddr: ":8080"},
		LogConf:  LogConf{Level: "info"},
		RoomConf: RoomConf{
			ClaimWindowTimeout: 15 * time.Second,
			BotActionDelay:     800 * time.Millisecond,
			DisconnectGrace:    60 * time.Second,
		},
		ReconnConf: ReconnConf{Secret: "dev-secret-change-me", TTL: 2 * time.Hour},
	}
}

// Load reads configPath (if non-empty) merged over Default(), with MJ_
// prefixed environment variables taking precedence. onChange, if non-nil, is
// invoked whenever the file changes on disk.
func Load(configPath string, onChange func(Configuration)) (Configuration, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("MJ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal: %w", err)
	}

	if configPath != "" && onChange != nil {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			reloaded := cfg
			if err := v.Unmarshal(&reloaded); err != nil {
				return
			}
			onChange(reloaded)
		})
	}

	return cfg, nil
}
