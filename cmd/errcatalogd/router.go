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
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	"dirpx.dev/errcatalog/apis"
	"dirpx.dev/errcatalog/catalog"
	"dirpx.dev/errcatalog/dto"
	"dirpx.dev/errcatalog/httpx"
	"dirpx.dev/errcatalog/kind"
	"dirpx.dev/errcatalog/pathmatch"
)

const maxRequestBody = 1 << 20

// kindView is the GET /api/kinds/{kind} body.
type kindView struct {
	apis.ErrorDescriptor `yaml:",inline"`
	Explain              string `json:"explain" yaml:"explain"`
}

func (a *app) writer() httpx.Writer {
	return httpx.Writer{
		Mapper:            a.mapper,
		Logger:            a.log,
		IncludeCause:      a.cfg.App.IncludeCause,
		IncludeStackTrace: a.cfg.App.IncludeStackTrace,
	}
}

func (a *app) routes() http.Handler {
	w := a.writer()

	r := chi.NewRouter()
	if a.cfg.App.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.RequestID)

	r.Get("/healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(rw, "ok")
	})

	r.Route("/api", func(r chi.Router) {
		if a.cfg.Auth.Enabled {
			secret := []byte(a.cfg.Auth.JWTSecret)
			keyfunc := func(*jwt.Token) (any, error) { return secret, nil }
			r.Use(pathmatch.Middleware(a.cfg.Auth.Properties, keyfunc,
				pathmatch.WithWriter(w),
				pathmatch.WithParserOptions(jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})),
			))
		}
		r.Method(http.MethodGet, "/kinds", w.Handler(a.listKinds))
		r.Method(http.MethodGet, "/kinds/{kind}", w.Handler(a.getKind))
		r.Method(http.MethodPost, "/rebuild", w.Handler(a.rebuild))
		r.Method(http.MethodGet, "/fail/{kind}", w.Handler(a.fail))
	})

	r.NotFound(func(rw http.ResponseWriter, req *http.Request) {
		w.Write(rw, req, catalog.NotFound.Error("No route for "+req.URL.Path))
	})
	r.MethodNotAllowed(func(rw http.ResponseWriter, req *http.Request) {
		w.Write(rw, req, catalog.MethodNotAllowed.Error(""))
	})
	return r
}

func (a *app) listKinds(rw http.ResponseWriter, _ *http.Request) error {
	return writeJSON(rw, http.StatusOK, a.descriptors())
}

func (a *app) getKind(rw http.ResponseWriter, r *http.Request) error {
	k, err := kind.Parse(chi.URLParam(r, "kind"))
	if err != nil {
		return catalog.BadRequest.Error(err.Error())
	}
	d, ok := a.reg.Lookup(k)
	if !ok {
		return catalog.NotFound.Error("Unknown error kind " + string(k))
	}
	return writeJSON(rw, http.StatusOK, kindView{
		ErrorDescriptor: a.descriptor(d),
		Explain:         a.mapper.Explain(k),
	})
}

// rebuild turns a posted wire record into an error and answers with the
// record of the rebuilt error, so callers see how the catalog reads it.
func (a *app) rebuild(rw http.ResponseWriter, r *http.Request) error {
	t, err := decodeThrowable(r)
	if err != nil {
		return catalog.BadRequest.Error("Malformed error record: " + err.Error())
	}
	rebuilt := a.reg.FromDTO(t)
	if rebuilt == nil {
		return catalog.BadRequest.Error("Empty error record")
	}
	return writeJSON(rw, http.StatusOK, dto.FromError(rebuilt))
}

// fail answers with the error registered for the kind, e.g.
// GET /api/fail/user.not_found?message=gone.
func (a *app) fail(_ http.ResponseWriter, r *http.Request) error {
	return a.reg.ByKindName(chi.URLParam(r, "kind"), r.URL.Query().Get("message"))
}

func decodeThrowable(r *http.Request) (*dto.Throwable, error) {
	body := io.LimitReader(r.Body, maxRequestBody)
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/xml" || mt == "text/xml" {
		return dto.DecodeXML(body)
	}
	var t dto.Throwable
	if err := json.NewDecoder(body).Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty body")
		}
		return nil, err
	}
	return &t, nil
}

func writeJSON(rw http.ResponseWriter, status int, v any) error {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	return json.NewEncoder(rw).Encode(v)
}
