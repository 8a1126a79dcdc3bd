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
	"cmp"
	"fmt"
	"net"
	"net/netip"
	"slices"
	"strings"
)

const (
	// AllMethods matches every HTTP method.
	AllMethods = "*"
	// AnyPath matches every path.
	AnyPath = "/**"
)

var httpMethods = map[string]bool{
	"GET": true, "HEAD": true, "POST": true, "PUT": true,
	"PATCH": true, "DELETE": true, "OPTIONS": true, "TRACE": true,
}

// Matcher is one access rule.
type Matcher struct {
	HTTPMethod  string     `yaml:"http_method" mapstructure:"http_method"`
	AntPattern  string     `yaml:"ant_pattern" mapstructure:"ant_pattern"`
	AccessMode  AccessMode `yaml:"access_mode" mapstructure:"access_mode"`
	Roles       []string   `yaml:"roles" mapstructure:"roles"`
	IPAddresses []string   `yaml:"ip_addresses" mapstructure:"ip_addresses"`
}

// Method returns the upper-cased HTTP method, or AllMethods when it is blank
// or not a known method.
func (m Matcher) Method() string {
	v := strings.ToUpper(strings.TrimSpace(m.HTTPMethod))
	if httpMethods[v] {
		return v
	}
	return AllMethods
}

// Pattern returns the ant pattern, or AnyPath when it is blank.
func (m Matcher) Pattern() string {
	if p := strings.TrimSpace(m.AntPattern); p != "" {
		return p
	}
	return AnyPath
}

// Mode returns the normalized access mode.
func (m Matcher) Mode() AccessMode { return m.AccessMode.Normalize() }

// Same reports whether m and o address the same requests (method and
// pattern); mode, roles and addresses are not compared.
func (m Matcher) Same(o Matcher) bool {
	return m.Method() == o.Method() && m.Pattern() == o.Pattern()
}

// String renders "METHOD: pattern with access = expr".
func (m Matcher) String() string {
	path := m.Pattern()
	if m.Method() != AllMethods {
		path = m.Method() + ": " + path
	}
	return path + " with access = " + m.AccessExpression(nil)
}

// Matches reports whether the rule applies to a request.
func (m Matcher) Matches(method, path string) bool {
	if mm := m.Method(); mm != AllMethods && mm != strings.ToUpper(method) {
		return false
	}
	return Match(m.Pattern(), path)
}

// AccessExpression renders the rule as an access expression.
//
// Permit-all and deny-all rules render as their mode. Authenticated rules
// render hasAuthority / hasAnyAuthority for their roles (prefixed with
// ensurePrefix when given, sorted and de-duplicated) followed by one
// hasIpAddress per address, joined with " or ". Without roles
// isAuthenticated() is appended.
func (m Matcher) AccessExpression(ensurePrefix func(string) string) string {
	if m.Mode() != Authenticated {
		return m.Mode().Expression()
	}
	var parts []string
	roles := m.roles(ensurePrefix)
	switch len(roles) {
	case 0:
	case 1:
		parts = append(parts, fmt.Sprintf("hasAuthority('%s')", roles[0]))
	default:
		quoted := make([]string, len(roles))
		for i, r := range roles {
			quoted[i] = "'" + r + "'"
		}
		parts = append(parts, fmt.Sprintf("hasAnyAuthority(%s)", strings.Join(quoted, ",")))
	}
	for _, ip := range m.ips() {
		parts = append(parts, fmt.Sprintf("hasIpAddress('%s')", ip))
	}
	if len(roles) == 0 {
		parts = append(parts, exprIsAuthenticated)
	}
	return strings.Join(parts, " or ")
}

// roles returns the non-blank roles, prefixed, sorted and unique.
func (m Matcher) roles(ensurePrefix func(string) string) []string {
	out := make([]string, 0, len(m.Roles))
	for _, r := range m.Roles {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if ensurePrefix != nil {
			r = ensurePrefix(r)
		}
		out = append(out, r)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// ips returns the non-blank addresses in order, without repeats.
func (m Matcher) ips() []string {
	out := make([]string, 0, len(m.IPAddresses))
	for _, ip := range m.IPAddresses {
		ip = strings.TrimSpace(ip)
		if ip != "" && !slices.Contains(out, ip) {
			out = append(out, ip)
		}
	}
	return out
}

// Allows reports whether the principal, calling from remoteIP, passes the
// rule. remoteIP may carry a port. Roles are compared as they are stored;
// Properties.PrepareMatchers prefixes them.
func (m Matcher) Allows(p Principal, remoteIP string) bool {
	switch m.Mode() {
	case PermitAll:
		return true
	case DenyAll:
		return false
	}
	if ipAllowed(m.ips(), remoteIP) {
		return true
	}
	if !p.Authenticated {
		return false
	}
	roles := m.roles(nil)
	if len(roles) == 0 {
		return true
	}
	for _, r := range p.Roles {
		if _, ok := slices.BinarySearch(roles, r); ok {
			return true
		}
	}
	return false
}

func ipAllowed(allowed []string, remote string) bool {
	if len(allowed) == 0 || remote == "" {
		return false
	}
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}
	addr, err := netip.ParseAddr(remote)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, a := range allowed {
		if pfx, err := netip.ParsePrefix(a); err == nil {
			if pfx.Contains(addr) {
				return true
			}
			continue
		}
		if other, err := netip.ParseAddr(a); err == nil && other.Unmap() == addr {
			return true
		}
	}
	return false
}

func validIP(s string) bool {
	if _, err := netip.ParsePrefix(s); err == nil {
		return true
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}

// Compare orders matchers by precedence:
//
//  1. more path segments first;
//  2. ant patterns compared lexically (ignoring case), AnyPath always last;
//  3. a specific HTTP method before AllMethods.
func Compare(a, b Matcher) int {
	pa, pb := a.Pattern(), b.Pattern()
	if c := cmp.Compare(segments(pb), segments(pa)); c != 0 {
		return c
	}
	switch {
	case pa == AnyPath && pb != AnyPath:
		return 1
	case pb == AnyPath && pa != AnyPath:
		return -1
	}
	if c := strings.Compare(strings.ToLower(pa), strings.ToLower(pb)); c != 0 {
		return c
	}
	ma, mb := a.Method(), b.Method()
	switch {
	case ma == mb:
		return 0
	case ma == AllMethods:
		return 1
	case mb == AllMethods:
		return -1
	}
	return strings.Compare(ma, mb)
}

// Sort orders ms in place by Compare. Equal matchers keep their order.
func Sort(ms []Matcher) {
	slices.SortStableFunc(ms, Compare)
}

func segments(pattern string) int {
	n := 0
	for _, s := range strings.Split(pattern, "/") {
		if s != "" {
			n++
		}
	}
	return n
}
