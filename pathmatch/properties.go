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

package pathmatch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProperties wraps every problem reported by Properties.Validate.
var ErrInvalidProperties = errors.New("pathmatch: invalid properties")

// Defaults of Properties.
const (
	DefaultRolePrefix          = "ROLE_"
	DefaultRolesClaimPath      = "$.realm_access.roles"
	DefaultRolesValueSeparator = " "
	DefaultNameClaimPath       = "$.preferred_username"
)

// Properties configures token claims and access rules.
type Properties struct {
	// RolePrefix is put in front of every role that lacks it.
	RolePrefix string `yaml:"role_prefix" mapstructure:"role_prefix"`

	// RolesClaimPath is the "$.a.b" path of the roles inside the token claims.
	RolesClaimPath string `yaml:"roles_claim_path" mapstructure:"roles_claim_path"`

	// RolesValueList says the roles claim is a list. Otherwise it is a string
	// split by RolesValueSeparator.
	RolesValueList      bool   `yaml:"roles_value_list" mapstructure:"roles_value_list"`
	RolesValueSeparator string `yaml:"roles_value_separator" mapstructure:"roles_value_separator"`

	// NameClaimPath is the path of the user name inside the token claims.
	NameClaimPath string `yaml:"name_claim_path" mapstructure:"name_claim_path"`

	PathMatchers []Matcher `yaml:"path_matchers" mapstructure:"path_matchers"`

	// AnyAccessMode is the mode of the rule appended for all other requests.
	AnyAccessMode AccessMode `yaml:"any_access_mode" mapstructure:"any_access_mode"`

	// Cors adds a permit-all rule for OPTIONS requests.
	Cors bool `yaml:"cors" mapstructure:"cors"`
}

// DefaultProperties returns properties with every default applied.
func DefaultProperties() Properties {
	p := Properties{RolesValueList: true}
	p.ApplyDefaults()
	return p
}

// ApplyDefaults fills blank string fields and the access mode. RolePrefix is
// only defaulted when it is empty; a blank string of spaces disables it.
func (p *Properties) ApplyDefaults() {
	if p.RolePrefix == "" {
		p.RolePrefix = DefaultRolePrefix
	}
	if strings.TrimSpace(p.RolesClaimPath) == "" {
		p.RolesClaimPath = DefaultRolesClaimPath
	}
	if p.RolesValueSeparator == "" {
		p.RolesValueSeparator = DefaultRolesValueSeparator
	}
	if strings.TrimSpace(p.NameClaimPath) == "" {
		p.NameClaimPath = DefaultNameClaimPath
	}
	if p.AnyAccessMode == "" {
		p.AnyAccessMode = Authenticated
	}
}

// EnsureRolePrefix returns role with RolePrefix in front, unless it already
// starts with it or the prefix is blank.
func (p Properties) EnsureRolePrefix(role string) string {
	prefix := strings.TrimSpace(p.RolePrefix)
	if prefix == "" || strings.HasPrefix(role, prefix) {
		return role
	}
	return prefix + role
}

// PrepareMatchers returns the rules in evaluation order.
//
// With Cors an OPTIONS rule for AnyPath is added as permit-all unless one
// exists, and a rule for all requests with AnyAccessMode is added unless one
// exists. The result is sorted with Sort and its roles carry RolePrefix.
// PathMatchers itself is not modified.
func (p Properties) PrepareMatchers() []Matcher {
	out := make([]Matcher, 0, len(p.PathMatchers)+2)
	for _, m := range p.PathMatchers {
		m.Roles = prefixed(m.Roles, p.EnsureRolePrefix)
		m.IPAddresses = append([]string(nil), m.IPAddresses...)
		out = append(out, m)
	}

	contains := func(probe Matcher) bool {
		for _, m := range out {
			if m.Same(probe) {
				return true
			}
		}
		return false
	}

	cors := Matcher{HTTPMethod: "OPTIONS", AntPattern: AnyPath, AccessMode: PermitAll}
	if p.Cors && !contains(cors) {
		out = append([]Matcher{cors}, out...)
	}
	anyRequest := Matcher{HTTPMethod: AllMethods, AntPattern: AnyPath, AccessMode: p.AnyAccessMode.Normalize()}
	if !contains(anyRequest) {
		out = append(out, anyRequest)
	}

	Sort(out)
	return out
}

func prefixed(roles []string, ensure func(string) string) []string {
	if len(roles) == 0 {
		return nil
	}
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, ensure(r))
		}
	}
	return out
}

// Validate reports every problem of p joined into one error wrapping
// ErrInvalidProperties, or nil.
func (p Properties) Validate() error {
	var errs []error
	if !strings.HasPrefix(strings.TrimSpace(p.RolesClaimPath), "$.") {
		errs = append(errs, fmt.Errorf("roles claim path %q must start with \"$.\"", p.RolesClaimPath))
	}
	if !strings.HasPrefix(strings.TrimSpace(p.NameClaimPath), "$.") {
		errs = append(errs, fmt.Errorf("name claim path %q must start with \"$.\"", p.NameClaimPath))
	}
	if !p.RolesValueList && p.RolesValueSeparator == "" {
		errs = append(errs, errors.New("roles value separator must not be empty"))
	}
	if _, err := ParseAccessMode(string(p.AnyAccessMode)); err != nil {
		errs = append(errs, err)
	}
	for i, m := range p.PathMatchers {
		if m.HTTPMethod != "" && m.HTTPMethod != AllMethods && m.Method() == AllMethods {
			errs = append(errs, fmt.Errorf("path matcher %d: unknown http method %q", i, m.HTTPMethod))
		}
		if !strings.HasPrefix(m.Pattern(), "/") {
			errs = append(errs, fmt.Errorf("path matcher %d: pattern %q must start with \"/\"", i, m.AntPattern))
		}
		if _, err := ParseAccessMode(string(m.AccessMode)); err != nil {
			errs = append(errs, fmt.Errorf("path matcher %d: %w", i, err))
		}
		for _, ip := range m.ips() {
			if !validIP(ip) {
				errs = append(errs, fmt.Errorf("path matcher %d: invalid ip address %q", i, ip))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidProperties, errors.Join(errs...))
}
