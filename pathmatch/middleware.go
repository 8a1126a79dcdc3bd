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
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"dirpx.dev/errcatalog/catalog"
	"dirpx.dev/errcatalog/httpx"
)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middleware)

type middleware struct {
	writer     httpx.Writer
	parserOpts []jwt.ParserOption
}

// WithWriter sets the writer used for 401 and 403 responses.
func WithWriter(w httpx.Writer) MiddlewareOption {
	return func(m *middleware) { m.writer = w }
}

// WithParserOptions passes options to the JWT parser, e.g.
// jwt.WithValidMethods or jwt.WithAudience.
func WithParserOptions(opts ...jwt.ParserOption) MiddlewareOption {
	return func(m *middleware) { m.parserOpts = append(m.parserOpts, opts...) }
}

// Middleware enforces the prepared rules of props.
//
// A bearer token in the Authorization header is verified with keyfunc; a
// token that fails verification is answered with 401 even on permit-all
// paths. The first matching rule decides: when it denies, anonymous callers
// get 401 and authenticated ones 403. Allowed requests carry the principal,
// see PrincipalFrom.
func Middleware(props Properties, keyfunc jwt.Keyfunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	mw := &middleware{}
	for _, o := range opts {
		o(mw)
	}
	matchers := props.PrepareMatchers()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := mw.principal(props, keyfunc, r)
			if !ok {
				mw.writer.Write(w, r, catalog.Unauthorized.Error("Invalid bearer token"))
				return
			}
			for _, m := range matchers {
				if !m.Matches(r.Method, r.URL.Path) {
					continue
				}
				if m.Allows(p, r.RemoteAddr) {
					next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
					return
				}
				break
			}
			if !p.Authenticated {
				mw.writer.Write(w, r, catalog.Unauthorized.Error(""))
				return
			}
			mw.writer.Write(w, r, catalog.Forbidden.Error(""))
		})
	}
}

// principal returns Anonymous without credentials and false for a token
// that does not verify.
func (mw *middleware) principal(props Properties, keyfunc jwt.Keyfunc, r *http.Request) (Principal, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return Anonymous, true
	}
	scheme, raw, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
		return Anonymous, false
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, keyfunc, mw.parserOpts...); err != nil {
		return Anonymous, false
	}
	return Principal{
		Name:          props.NameFromClaims(claims),
		Roles:         props.RolesFromClaims(claims),
		Authenticated: true,
	}, true
}
