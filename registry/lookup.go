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

package registry

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/kind"
)

// ByKind builds the error registered for k. An empty msg selects the default
// message. Unregistered kinds yield a kind.Generic error carrying msg.
func (r *Registry) ByKind(k kind.Kind, msg string) error {
	chain := r.chain(k)
	if len(chain) == 0 {
		r.log.WithField("kind", k).Warn("error kind not registered, returning generic error")
		return errcatalog.New(kind.Generic, msg, nil)
	}
	if msg == "" {
		msg = chain[0].DefaultMessage
	}
	return r.build(chain, msg, nil)
}

// ByKindName is ByKind for a kind given by name. Unparsable names yield a
// kind.Generic error carrying msg.
func (r *Registry) ByKindName(name, msg string) error {
	k, err := kind.Parse(name)
	if err != nil {
		r.log.WithField("kind", name).WithError(err).Warn("invalid error kind, returning generic error")
		return errcatalog.New(kind.Generic, msg, nil)
	}
	return r.ByKind(k, msg)
}

// ByCustomCode builds the error that owns the custom status code. Unknown
// codes yield a kind.HTTPError error carrying the code and msg.
func (r *Registry) ByCustomCode(code int, msg string) error {
	r.mu.RLock()
	k, ok := r.byCustom[code]
	r.mu.RUnlock()
	if !ok {
		r.log.WithField("custom_code", code).Warn("custom status code not registered, returning plain http error")
		return errcatalog.New(kind.HTTPError, msg, nil).WithCodes(code, 0)
	}
	return r.ByKind(k, msg)
}

// ByHTTPStatus builds the error registered for status. When several kinds
// share the status the one with the lowest custom code wins. Unknown statuses
// yield a kind.HTTPError error carrying the status and msg.
func (r *Registry) ByHTTPStatus(status int, msg string) error {
	r.mu.RLock()
	bucket := r.byHTTP[status]
	var k kind.Kind
	if len(bucket) > 0 {
		k = bucket[0].Kind
	}
	r.mu.RUnlock()
	if k == kind.Empty {
		r.log.WithField("http_status", status).Warn("http status not registered, returning plain http error")
		return errcatalog.New(kind.HTTPError, msg, nil).WithCodes(0, status)
	}
	return r.ByKind(k, msg)
}

// chain returns the description of k followed by its registered ancestors.
// It returns nil when k is not registered.
func (r *Registry) chain(k kind.Kind) []Description {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byKind[k]
	if !ok {
		return nil
	}
	out := []Description{d}
	seen := map[kind.Kind]bool{k: true}
	for d.Parent != kind.Empty && !seen[d.Parent] {
		d, ok = r.byKind[d.Parent]
		if !ok {
			break
		}
		seen[d.Kind] = true
		out = append(out, d)
	}
	return out
}

// build calls the first factory along chain that produces an error. Factories
// run outside the lock, so they may use the registry themselves.
//
// A chain without a working factory is a configuration defect; the result is
// a kind.Internal error and the defect is logged.
func (r *Registry) build(chain []Description, msg string, cause error) error {
	want := chain[0]
	for _, d := range chain {
		if d.Factory == nil {
			continue
		}
		if err := d.Factory(msg, cause); err != nil {
			return withDefaultCodes(err, want)
		}
		r.log.WithField("kind", d.Kind).Debug("factory declined, trying parent kind")
	}

	r.log.WithFields(logrus.Fields{
		"kind":        want.Kind,
		"custom_code": want.CustomCode,
		"http_status": want.HTTPStatus,
	}).Error("no factory could build error")
	return errcatalog.New(kind.Internal, fmt.Sprintf("cannot build error of kind %q", want.Kind), cause).
		WithCodes(50500, http.StatusInternalServerError)
}

// withDefaultCodes puts the codes of d onto catalog errors that came out of a
// factory without any.
func withDefaultCodes(err error, d Description) error {
	e, ok := err.(*errcatalog.Error)
	if !ok || e.CustomCode != 0 || e.HTTPStatus != 0 {
		return err
	}
	if d.CustomCode == 0 && d.HTTPStatus == 0 {
		return err
	}
	return e.WithCodes(d.CustomCode, d.HTTPStatus)
}
