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

package config

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/errcatalog/internal/logging"
	"dirpx.dev/errcatalog/kind"
	"dirpx.dev/errcatalog/pathmatch"
)

// Defaults.
const (
	DefaultAppName  = "errcatalogd"
	DefaultHTTPAddr = ":8080"
)

// ErrInvalidConfig wraps every problem reported by Config.Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the daemon configuration.
type Config struct {
	App     AppConfig      `yaml:"app" mapstructure:"app"`
	Log     logging.Config `yaml:"log" mapstructure:"log"`
	Auth    AuthConfig     `yaml:"auth" mapstructure:"auth"`
	Mapping MappingConfig  `yaml:"mapping" mapstructure:"mapping"`
	Kinds   []KindConfig   `yaml:"kinds" mapstructure:"kinds"`
}

// AppConfig holds listener addresses and response options.
type AppConfig struct {
	Name     string `yaml:"name" mapstructure:"name"`
	HTTPAddr string `yaml:"http_addr" mapstructure:"http_addr"`
	// GRPCAddr enables the gRPC listener when set.
	GRPCAddr          string `yaml:"grpc_addr" mapstructure:"grpc_addr"`
	IncludeCause      bool   `yaml:"include_cause" mapstructure:"include_cause"`
	IncludeStackTrace bool   `yaml:"include_stack_trace" mapstructure:"include_stack_trace"`
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Only enable it behind a proxy that overwrites them.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers" mapstructure:"trust_proxy_headers"`
}

// AuthConfig enables bearer token checks on the HTTP API.
type AuthConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`

	pathmatch.Properties `yaml:",inline" mapstructure:",squash"`
}

// MappingConfig adjusts transport statuses.
type MappingConfig struct {
	Exceptions []ExceptionMapping `yaml:"exceptions" mapstructure:"exceptions"`
	// FallbackHTTP and FallbackGRPC replace 500 / INTERNAL when set.
	FallbackHTTP int    `yaml:"fallback_http" mapstructure:"fallback_http"`
	FallbackGRPC string `yaml:"fallback_grpc" mapstructure:"fallback_grpc"`
}

// ExceptionMapping maps one kind (exact) or a kind family (prefix, "*" for
// one segment) to statuses. Exactly one of Kind and Prefix is set; zero or
// empty statuses are left to the catalog.
type ExceptionMapping struct {
	Kind       string `yaml:"kind" mapstructure:"kind"`
	Prefix     string `yaml:"prefix" mapstructure:"prefix"`
	HTTPStatus int    `yaml:"http_status" mapstructure:"http_status"`
	// GRPCCode is a name such as "NOT_FOUND" or a number.
	GRPCCode string `yaml:"grpc_code" mapstructure:"grpc_code"`
}

// KindConfig registers an additional error kind.
type KindConfig struct {
	Kind       string `yaml:"kind" mapstructure:"kind"`
	Parent     string `yaml:"parent" mapstructure:"parent"`
	Message    string `yaml:"message" mapstructure:"message"`
	CustomCode int    `yaml:"custom_code" mapstructure:"custom_code"`
	HTTPStatus int    `yaml:"http_status" mapstructure:"http_status"`
	Replace    bool   `yaml:"replace" mapstructure:"replace"`
}

// ApplyDefaults fills unset values.
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = DefaultAppName
	}
	if c.App.HTTPAddr == "" {
		c.App.HTTPAddr = DefaultHTTPAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File.Filename == "" {
		c.Log.File.Filename = c.App.Name
	}
	c.Auth.ApplyDefaults()
}

// Validate reports every problem of c joined into one error wrapping
// ErrInvalidConfig, or nil.
func (c Config) Validate() error {
	var errs []error
	if c.Auth.Enabled {
		if c.Auth.JWTSecret == "" {
			errs = append(errs, errors.New("auth.jwt_secret is required when auth is enabled"))
		}
		if err := c.Auth.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for i, m := range c.Mapping.Exceptions {
		if (m.Kind == "") == (m.Prefix == "") {
			errs = append(errs, fmt.Errorf("mapping.exceptions[%d]: exactly one of kind and prefix must be set", i))
		}
		if m.Kind != "" {
			if _, err := kind.Parse(m.Kind); err != nil {
				errs = append(errs, fmt.Errorf("mapping.exceptions[%d]: %w", i, err))
			}
		}
		if m.GRPCCode != "" {
			if _, err := parseGRPCCode(m.GRPCCode); err != nil {
				errs = append(errs, fmt.Errorf("mapping.exceptions[%d]: %w", i, err))
			}
		}
	}
	if c.Mapping.FallbackGRPC != "" {
		if _, err := parseGRPCCode(c.Mapping.FallbackGRPC); err != nil {
			errs = append(errs, fmt.Errorf("mapping.fallback_grpc: %w", err))
		}
	}
	for i, k := range c.Kinds {
		if _, err := kind.Parse(k.Kind); err != nil {
			errs = append(errs, fmt.Errorf("kinds[%d]: %w", i, err))
		}
		if strings.TrimSpace(k.Parent) != "" {
			if _, err := kind.Parse(k.Parent); err != nil {
				errs = append(errs, fmt.Errorf("kinds[%d].parent: %w", i, err))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
