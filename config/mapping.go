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
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/kind"
	"dirpx.dev/errcatalog/mapper"
	"dirpx.dev/errcatalog/registry"
)

// MapperOptions turns the mapping section into mapper options. Exact kinds
// become overrides, prefixes become prefix rules.
func (c Config) MapperOptions() ([]mapper.Option, error) {
	var opts []mapper.Option
	for i, m := range c.Mapping.Exceptions {
		var grpc codes.Code
		hasGRPC := m.GRPCCode != ""
		if hasGRPC {
			g, err := parseGRPCCode(m.GRPCCode)
			if err != nil {
				return nil, fmt.Errorf("config: mapping.exceptions[%d]: %w", i, err)
			}
			grpc = g
		}

		if m.Kind != "" {
			k, err := kind.Parse(m.Kind)
			if err != nil {
				return nil, fmt.Errorf("config: mapping.exceptions[%d]: %w", i, err)
			}
			if m.HTTPStatus != 0 {
				opts = append(opts, mapper.WithHTTPOverride(k, m.HTTPStatus))
			}
			if hasGRPC {
				opts = append(opts, mapper.WithGRPCOverride(k, int(grpc)))
			}
			continue
		}
		if m.HTTPStatus != 0 {
			opts = append(opts, mapper.WithHTTPPrefix(m.Prefix, m.HTTPStatus))
		}
		if hasGRPC {
			opts = append(opts, mapper.WithGRPCPrefix(m.Prefix, int(grpc)))
		}
	}

	if c.Mapping.FallbackHTTP != 0 || c.Mapping.FallbackGRPC != "" {
		fh, fg := http.StatusInternalServerError, codes.Internal
		if c.Mapping.FallbackHTTP != 0 {
			fh = c.Mapping.FallbackHTTP
		}
		if c.Mapping.FallbackGRPC != "" {
			g, err := parseGRPCCode(c.Mapping.FallbackGRPC)
			if err != nil {
				return nil, fmt.Errorf("config: mapping.fallback_grpc: %w", err)
			}
			fg = g
		}
		opts = append(opts, mapper.WithFallback(fh, int(fg)))
	}
	return opts, nil
}

// RegisterKinds registers the configured kinds with r. Each kind builds
// *errcatalog.Error values carrying its codes.
func (c Config) RegisterKinds(r *registry.Registry) error {
	for i, kc := range c.Kinds {
		k, err := kind.Parse(kc.Kind)
		if err != nil {
			return fmt.Errorf("config: kinds[%d]: %w", i, err)
		}
		d := registry.Description{
			Kind:           k,
			DefaultMessage: kc.Message,
			CustomCode:     kc.CustomCode,
			HTTPStatus:     kc.HTTPStatus,
			Factory:        errcatalog.Factory(k, kc.CustomCode, kc.HTTPStatus),
		}
		if p := strings.TrimSpace(kc.Parent); p != "" {
			if d.Parent, err = kind.Parse(p); err != nil {
				return fmt.Errorf("config: kinds[%d].parent: %w", i, err)
			}
		}
		if err := r.Register(d, kc.Replace); err != nil {
			return fmt.Errorf("config: kinds[%d]: %w", i, err)
		}
	}
	return nil
}

// parseGRPCCode accepts numbers and the upper snake case names of
// google.golang.org/grpc/codes ("NOT_FOUND").
func parseGRPCCode(s string) (codes.Code, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > int(codes.Unauthenticated) {
			return 0, fmt.Errorf("grpc code %d out of range", n)
		}
		return codes.Code(n), nil
	}
	var c codes.Code
	if err := c.UnmarshalJSON([]byte(strconv.Quote(strings.ToUpper(s)))); err != nil {
		return 0, fmt.Errorf("unknown grpc code %q", s)
	}
	return c, nil
}
