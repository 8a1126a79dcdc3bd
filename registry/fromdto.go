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
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/dto"
	"dirpx.dev/errcatalog/kind"
)

// customCodeFloor separates the two meanings of dto.Throwable.StatusCode:
// values from here on are custom status codes, smaller ones HTTP statuses.
const customCodeFloor = 1000

// FromDTO rebuilds the error chain described by t. The nested cause is
// rebuilt first and handed to the factory of the outer record.
//
// A blank class name stands for kind.HTTPError. Class names that are not
// registered kinds yield kind.Generic errors that keep the original name in
// the "class_name" detail. A non-zero StatusCode is put back onto catalog
// errors.
func (r *Registry) FromDTO(t *dto.Throwable) error {
	if t == nil {
		return nil
	}
	cause := r.FromDTO(t.Cause)

	name := strings.TrimSpace(t.ClassName)
	if name == "" {
		name = string(kind.HTTPError)
	}
	log := r.log.WithField("class_name", name)
	log.Debug("rebuilding error from dto")

	var err error
	k, perr := kind.Parse(name)
	var chain []Description
	if perr == nil {
		chain = r.chain(k)
	}
	if len(chain) == 0 {
		log.Warn("dto class name is not a registered kind, returning generic error")
		err = errcatalog.New(kind.Generic, t.Message, cause).WithDetail("class_name", name)
	} else {
		err = r.build(chain, t.Message, cause)
	}
	err = withStatusCode(err, t.StatusCode)

	log.WithField("result", dto.ClassName(err)).Debug("rebuilding error from dto done")
	return err
}

// FromMessageDTO rebuilds the error described by the flat record m.
func (r *Registry) FromMessageDTO(m *dto.ThrowableMessage) error {
	if m == nil {
		return nil
	}
	return r.FromDTO(&dto.Throwable{ClassName: m.ClassName, Message: m.Message})
}

// ErrorFromDTO is FromDTO for callers that need an *errcatalog.Error. Errors
// of other types are wrapped into a kind.Generic error.
func (r *Registry) ErrorFromDTO(t *dto.Throwable) *errcatalog.Error {
	err := r.FromDTO(t)
	if err == nil {
		return nil
	}
	if e, ok := err.(*errcatalog.Error); ok {
		return e
	}
	r.log.WithFields(logrus.Fields{
		"class_name": t.ClassName,
		"type":       dto.ClassName(err),
	}).Warn("rebuilt error is not a catalog error, wrapping it")
	return errcatalog.New(kind.Generic, err.Error(), err).WithCodes(0, http.StatusInternalServerError)
}

func withStatusCode(err error, code int) error {
	e, ok := err.(*errcatalog.Error)
	if !ok || code == 0 {
		return err
	}
	if code >= customCodeFloor {
		if e.CustomCode == code {
			return err
		}
		return e.WithCodes(code, e.HTTPStatus)
	}
	if e.HTTPStatus == code {
		return err
	}
	return e.WithCodes(e.CustomCode, code)
}
