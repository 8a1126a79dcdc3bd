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
	"fmt"
	"strings"
)

// AccessMode is the coarse decision of a Matcher.
type AccessMode string

const (
	PermitAll     AccessMode = "permit_all"
	DenyAll       AccessMode = "deny_all"
	Authenticated AccessMode = "authenticated"
)

// Access expression atoms.
const (
	exprPermitAll       = "permitAll"
	exprDenyAll         = "denyAll"
	exprIsAuthenticated = "isAuthenticated()"
)

// ParseAccessMode accepts the canonical names as well as upper case, dashed
// and expression spellings ("PERMIT_ALL", "permit-all", "permitAll").
func ParseAccessMode(s string) (AccessMode, error) {
	switch norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")); norm {
	case "", "authenticated", "isauthenticated()":
		return Authenticated, nil
	case "permit_all", "permitall":
		return PermitAll, nil
	case "deny_all", "denyall":
		return DenyAll, nil
	default:
		return "", fmt.Errorf("pathmatch: unknown access mode %q", s)
	}
}

// Normalize returns the canonical mode; unknown values become Authenticated.
func (m AccessMode) Normalize() AccessMode {
	n, err := ParseAccessMode(string(m))
	if err != nil {
		return Authenticated
	}
	return n
}

// Expression is the access expression of the bare mode.
func (m AccessMode) Expression() string {
	switch m.Normalize() {
	case PermitAll:
		return exprPermitAll
	case DenyAll:
		return exprDenyAll
	default:
		return exprIsAuthenticated
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *AccessMode) UnmarshalText(b []byte) error {
	v, err := ParseAccessMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
