// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads settings from a config file and the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ErrConfig indicates the configuration could not be loaded.
var ErrConfig = errors.New("config")

// EnvPrefix is the prefix of environment variables overriding config values.
const EnvPrefix = "JISHO"

// Config is the command configuration.
type Config struct {
	// Color is one of "auto", "never" or "always".
	Color string `mapstructure:"color"`

	// Reverse prints results top to bottom.
	Reverse bool `mapstructure:"reverse"`

	// Format is the output format.
	Format string `mapstructure:"format"`

	// BaseURL is the dictionary site URL.
	BaseURL string `mapstructure:"base_url"`

	// Timeout is the timeout for each lookup.
	Timeout time.Duration `mapstructure:"timeout"`

	// Cache is the path to the page cache database. The cache is disabled
	// if empty.
	Cache string `mapstructure:"cache"`

	// CacheTTL is how long cached pages are used.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// UserAgent overrides the HTTP User-Agent.
	UserAgent string `mapstructure:"user_agent"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Color:    "auto",
		Format:   "text",
		BaseURL:  "https://jisho.org",
		Timeout:  30 * time.Second,
		CacheTTL: 24 * time.Hour,
	}
}

// Load reads the config file at path and applies environment overrides. If
// path is empty, a config.yaml file is searched for in Locations and a
// missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("color", def.Color)
	v.SetDefault("reverse", def.Reverse)
	v.SetDefault("format", def.Format)
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("cache", def.Cache)
	v.SetDefault("cache_ttl", def.CacheTTL)
	v.SetDefault("user_agent", def.UserAgent)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, loc := range Locations() {
			v.AddConfigPath(loc)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: reading config: %w", ErrConfig, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return &cfg, nil
}
