/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads the errcatalog daemon configuration from .env files,
// a per-environment YAML file and ERRCATALOG_* environment variables, and
// turns it into mapper options and registry entries.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ERRCATALOG_APP_HTTP_ADDR.
const EnvPrefix = "ERRCATALOG"

// LoadOptions controls where Load looks.
type LoadOptions struct {
	ConfigPath    string // directory of config_<env>.yaml, default "./configs"
	EnvFile       string // .env file, default $ENV_FILE or ".env"
	AllowNoConfig bool   // accept a missing YAML file
}

// Load reads the configuration. The YAML file is config_<APP_ENV>.yaml
// (APP_ENV defaults to "dev"). Values missing everywhere get defaults and
// the result is validated.
func Load(opts LoadOptions) (*Config, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = "./configs"
	}
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config_" + Env())
	v.SetConfigType("yaml")
	v.AddConfigPath(opts.ConfigPath)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || !opts.AllowNoConfig {
			return nil, fmt.Errorf("config: read config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		path = os.Getenv("ENV_FILE")
	}
	var err error
	if path != "" {
		err = godotenv.Load(path)
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config: load env file: %w", err)
	}
	return nil
}

// Env returns APP_ENV, defaulting to "dev".
func Env() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "dev"
}

// setDefaults registers every scalar key so that AutomaticEnv can override it
// even when the YAML file does not mention it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", DefaultAppName)
	v.SetDefault("app.http_addr", DefaultHTTPAddr)
	v.SetDefault("app.grpc_addr", "")
	v.SetDefault("app.include_cause", false)
	v.SetDefault("app.include_stack_trace", false)
	v.SetDefault("app.trust_proxy_headers", false)

	v.SetDefault("log.format", "json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.report_caller", false)
	v.SetDefault("log.file.enabled", false)

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.role_prefix", "ROLE_")
	v.SetDefault("auth.roles_claim_path", "$.realm_access.roles")
	v.SetDefault("auth.roles_value_list", true)
	v.SetDefault("auth.roles_value_separator", " ")
	v.SetDefault("auth.name_claim_path", "$.preferred_username")
	v.SetDefault("auth.any_access_mode", "authenticated")
	v.SetDefault("auth.cors", false)

	v.SetDefault("mapping.fallback_http", 0)
	v.SetDefault("mapping.fallback_grpc", "")
}
