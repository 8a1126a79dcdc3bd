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

	"github.com/golang-jwt/jwt/v5"
)

// RolesFromClaims reads the roles at RolesClaimPath. List values and
// separator-split strings are both accepted regardless of RolesValueList;
// the flag only decides how a single string is read. Roles carry RolePrefix.
func (p Properties) RolesFromClaims(claims jwt.MapClaims) []string {
	v, ok := lookup(claims, p.RolesClaimPath)
	if !ok {
		return nil
	}
	var raw []string
	switch t := v.(type) {
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok {
				raw = append(raw, s)
			}
		}
	case []string:
		raw = t
	case string:
		if p.RolesValueList || p.RolesValueSeparator == "" {
			raw = []string{t}
		} else {
			raw = strings.Split(t, p.RolesValueSeparator)
		}
	default:
		raw = []string{fmt.Sprint(t)}
	}
	return prefixed(raw, p.EnsureRolePrefix)
}

// NameFromClaims reads the user name at NameClaimPath and falls back to the
// subject.
func (p Properties) NameFromClaims(claims jwt.MapClaims) string {
	if v, ok := lookup(claims, p.NameClaimPath); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	sub, _ := claims.GetSubject()
	return sub
}

// lookup evaluates a "$.a.b" path over nested claim maps.
func lookup(claims map[string]any, path string) (any, bool) {
	path = strings.TrimPrefix(strings.TrimSpace(path), "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return nil, false
	}
	var cur any = claims
	for _, seg := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case jwt.MapClaims:
		return m, true
	}
	return nil, false
}
