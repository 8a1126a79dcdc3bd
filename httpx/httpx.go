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

// Package httpx writes catalog errors as HTTP responses and reads them back
// on the client side.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/apis"
	"dirpx.dev/errcatalog/dto"
	"dirpx.dev/errcatalog/internal/logging"
	"dirpx.dev/errcatalog/mapper"
)

// HeaderErrorID carries the id under which the error was logged.
const HeaderErrorID = "X-Error-Id"

const (
	contentTypeJSON = "application/json"
	contentTypeXML  = "application/xml"
)

var defaultMapper = sync.OnceValue(func() apis.Mapper {
	m, err := mapper.New()
	if err != nil {
		panic(err)
	}
	return m
})

// Writer is a thin adapter that turns an error into an HTTP response. The
// status is resolved with mapper.StatusOf and the body is the dto.Throwable
// of the error.
type Writer struct {
	// Mapper resolves statuses. Nil selects a mapper over the built-in catalog.
	Mapper apis.Mapper

	// Logger receives one entry per written error. Nil selects the logrus
	// standard logger.
	Logger logrus.FieldLogger

	// IncludeCause keeps the cause chain in the body.
	IncludeCause bool

	// IncludeStackTrace adds the stack of the Write call site.
	IncludeStackTrace bool
}

// Write serializes err into rw. The body is XML when the request accepts
// application/xml (or text/xml) and JSON otherwise. A nil err writes
// nothing.
func (w Writer) Write(rw http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	m := w.Mapper
	if m == nil {
		m = defaultMapper()
	}
	st := mapper.StatusOf(m, err)

	var opts []dto.Option
	if w.IncludeStackTrace {
		opts = append(opts, dto.WithStackTrace(1))
	}
	if !w.IncludeCause {
		opts = append(opts, dto.WithMaxDepth(1))
	}
	body := dto.FromError(err, opts...)

	id := uuid.NewString()
	w.log(r, id, st.HTTP, err)

	rw.Header().Set(HeaderErrorID, id)
	if acceptsXML(r) {
		rw.Header().Set("Content-Type", contentTypeXML+"; charset=utf-8")
		rw.WriteHeader(st.HTTP)
		_ = dto.EncodeXML(rw, body)
		return
	}
	rw.Header().Set("Content-Type", contentTypeJSON)
	rw.WriteHeader(st.HTTP)
	_ = json.NewEncoder(rw).Encode(body)
}

func (w Writer) log(r *http.Request, id string, status int, err error) {
	l := w.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}
	fields := logrus.Fields{
		"error_id":    id,
		"kind":        errcatalog.KindOf(err),
		"http_status": status,
	}
	var e *logrus.Entry
	if r != nil {
		fields["method"] = r.Method
		fields["path"] = r.URL.Path
		e = logging.FromContext(r.Context(), l)
	} else {
		e = l.WithFields(nil)
	}
	e = e.WithFields(fields).WithError(err)
	if status >= http.StatusInternalServerError {
		e.Error("request failed")
		return
	}
	e.Info("request rejected")
}

func acceptsXML(r *http.Request) bool {
	if r == nil {
		return false
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, contentTypeXML) || strings.Contains(accept, "text/xml")
}

// HandlerFunc is an http.HandlerFunc that reports failure through its
// return value.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Handler adapts fn into an http.Handler. Returned errors are written with w.
// A panic inside fn is recovered and written as a kind.Internal error;
// http.ErrAbortHandler is re-raised.
func (w Writer) Handler(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if err, ok := p.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(p)
			}
			w.Write(rw, r, panicError(p))
		}()
		if err := fn(rw, r); err != nil {
			w.Write(rw, r, err)
		}
	})
}
