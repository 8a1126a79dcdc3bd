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

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/errcatalog/apis"
	"dirpx.dev/errcatalog/config"
	"dirpx.dev/errcatalog/dto"
	"dirpx.dev/errcatalog/pathmatch"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testApp(t *testing.T, mutate func(*config.Config)) *app {
	t.Helper()
	cfg := &config.Config{
		Kinds: []config.KindConfig{{
			Kind:       "billing.quota_exceeded",
			Parent:     "http.error",
			Message:    "Quota exceeded",
			CustomCode: 42901,
			HTTPStatus: 429,
		}},
	}
	if mutate != nil {
		mutate(cfg)
	}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	a, err := newApp(cfg)
	require.NoError(t, err)
	a.log.SetOutput(io.Discard)
	return a
}

func do(t *testing.T, h http.Handler, method, path, auth string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if auth != "" {
		req.Header.Set("Authorization", "Bearer "+auth)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func throwableOf(t *testing.T, rec *httptest.ResponseRecorder) dto.Throwable {
	t.Helper()
	var got dto.Throwable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), rec.Body.String())
	return got
}

func TestRoutes_ListKinds(t *testing.T) {
	h := testApp(t, nil).routes()

	rec := do(t, h, http.MethodGet, "/api/kinds", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ds []apis.ErrorDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ds))
	byKind := map[string]apis.ErrorDescriptor{}
	for _, d := range ds {
		byKind[d.Kind] = d
	}

	nf := byKind["http.not_found"]
	assert.Equal(t, 40404, nf.CustomCode)
	assert.Equal(t, 404, nf.HTTPStatus)
	assert.Equal(t, 5, nf.GRPCCode) // NOT_FOUND

	q := byKind["billing.quota_exceeded"]
	assert.Equal(t, 42901, q.CustomCode)
	assert.Equal(t, 429, q.HTTPStatus)
	assert.Equal(t, 8, q.GRPCCode) // RESOURCE_EXHAUSTED
}

func TestRoutes_GetKind(t *testing.T) {
	h := testApp(t, nil).routes()

	rec := do(t, h, http.MethodGet, "/api/kinds/http.conflict", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var v struct {
		Kind    string `json:"kind"`
		Explain string `json:"explain"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "http.conflict", v.Kind)
	assert.Contains(t, v.Explain, `kind="http.conflict"`)

	rec = do(t, h, http.MethodGet, "/api/kinds/ledger.missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "http.not_found", throwableOf(t, rec).ClassName)

	rec = do(t, h, http.MethodGet, "/api/kinds/9bad", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutes_Fail(t *testing.T) {
	h := testApp(t, nil).routes()

	rec := do(t, h, http.MethodGet, "/api/fail/http.conflict?message=taken", "", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	got := throwableOf(t, rec)
	assert.Equal(t, "http.conflict", got.ClassName)
	assert.Equal(t, "taken", got.Message)
	assert.Equal(t, 40409, got.StatusCode)
	assert.NotEmpty(t, rec.Header().Get("X-Error-Id"))

	rec = do(t, h, http.MethodGet, "/api/fail/billing.quota_exceeded", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Quota exceeded", throwableOf(t, rec).Message)
}

func TestRoutes_Rebuild(t *testing.T) {
	h := testApp(t, nil).routes()

	body := `{"className":"http.not_found","message":"no such user","cause":{"className":"com.example.Legacy","message":"boom"}}`
	rec := do(t, h, http.MethodPost, "/api/rebuild", "", strings.NewReader(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := throwableOf(t, rec)
	assert.Equal(t, "http.not_found", got.ClassName)
	assert.Equal(t, "no such user", got.Message)
	assert.Equal(t, 40404, got.StatusCode)
	require.NotNil(t, got.Cause)
	assert.Equal(t, "runtime", got.Cause.ClassName)

	rec = do(t, h, http.MethodPost, "/api/rebuild", "", strings.NewReader("{"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "http.bad_request", throwableOf(t, rec).ClassName)
}

func TestRoutes_NotFoundRoute(t *testing.T) {
	h := testApp(t, nil).routes()
	rec := do(t, h, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "http.not_found", throwableOf(t, rec).ClassName)

	rec = do(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func signed(t *testing.T, roles ...string) string {
	t.Helper()
	rs := make([]any, len(roles))
	for i, r := range roles {
		rs[i] = r
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                "42",
		"preferred_username": "alice",
		"realm_access":       map[string]any{"roles": rs},
		"exp":                time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestRoutes_Auth(t *testing.T) {
	h := testApp(t, func(c *config.Config) {
		c.Auth.Enabled = true
		c.Auth.JWTSecret = testSecret
		c.Auth.RolesValueList = true
		c.Auth.PathMatchers = []pathmatch.Matcher{
			{HTTPMethod: "GET", AntPattern: "/api/kinds/**", AccessMode: pathmatch.PermitAll},
			{HTTPMethod: "POST", AntPattern: "/api/rebuild", Roles: []string{"ADMIN"}},
		}
	}).routes()

	rec := do(t, h, http.MethodGet, "/api/kinds/http.conflict", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := func() io.Reader { return bytes.NewBufferString(`{"className":"http.gone"}`) }

	rec = do(t, h, http.MethodPost, "/api/rebuild", "", body())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "http.unauthorized", throwableOf(t, rec).ClassName)

	rec = do(t, h, http.MethodPost, "/api/rebuild", signed(t, "USER"), body())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/rebuild", signed(t, "ADMIN"), body())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http.gone", throwableOf(t, rec).ClassName)

	rec = do(t, h, http.MethodGet, "/api/fail/http.gone", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "any other request needs a token")

	rec = do(t, h, http.MethodGet, "/api/kinds/http.gone", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoutes_IPRuleIgnoresForwardedHeaders(t *testing.T) {
	build := func(trust bool) http.Handler {
		return testApp(t, func(c *config.Config) {
			c.App.TrustProxyHeaders = trust
			c.Auth.Enabled = true
			c.Auth.JWTSecret = testSecret
			c.Auth.PathMatchers = []pathmatch.Matcher{
				{HTTPMethod: "GET", AntPattern: "/api/kinds", Roles: []string{"ADMIN"}, IPAddresses: []string{"10.0.0.1"}},
			}
		}).routes()
	}
	get := func(h http.Handler, header, value string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/kinds", nil)
		req.RemoteAddr = "203.0.113.9:4711"
		if header != "" {
			req.Header.Set(header, value)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	h := build(false)
	assert.Equal(t, http.StatusUnauthorized, get(h, "", ""))
	assert.Equal(t, http.StatusUnauthorized, get(h, "X-Real-IP", "10.0.0.1"))
	assert.Equal(t, http.StatusUnauthorized, get(h, "X-Forwarded-For", "10.0.0.1"))

	// Behind a trusted proxy the forwarded address is the client address.
	assert.Equal(t, http.StatusOK, get(build(true), "X-Real-IP", "10.0.0.1"))
}
