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

package errcatalog

import (
	"errors"
	"net/http"

	"dirpx.dev/errcatalog/apis"
	"dirpx.dev/errcatalog/kind"
)

// New builds an Error of kind k. It has the shape registries expect from a
// factory once the kind is bound, see Factory.
func New(k kind.Kind, msg string, cause error) *Error {
	return &Error{Kind: k, Message: msg, Cause: cause}
}

// Factory returns a constructor for errors of kind k that carry the given
// codes. The result is directly usable as a registry factory.
func Factory(k kind.Kind, customCode, httpStatus int) func(msg string, cause error) error {
	return func(msg string, cause error) error {
		return &Error{
			Kind:       k,
			Message:    msg,
			CustomCode: customCode,
			HTTPStatus: httpStatus,
			Cause:      cause,
		}
	}
}

// Ensure returns the first *Error in err's chain. Any other non-nil error is
// wrapped into a kind.Generic error with HTTP 500 whose message is the
// original error text.
func Ensure(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Kind:       kind.Generic,
		Message:    err.Error(),
		HTTPStatus: http.StatusInternalServerError,
		Cause:      err,
	}
}

// KindOf returns the kind of the first error in err's chain that reports
// one. It returns kind.Empty when there is none or when the reported kind is
// not canonical.
func KindOf(err error) kind.Kind {
	var ke apis.KindedError
	if !errors.As(err, &ke) {
		return kind.Empty
	}
	k, perr := kind.Parse(ke.ErrorKind())
	if perr != nil {
		return kind.Empty
	}
	return k
}

// CustomCodeOf returns the custom status code of the first error in err's
// chain that reports one, or zero.
func CustomCodeOf(err error) int {
	var ce apis.CustomStatusCoder
	if errors.As(err, &ce) {
		return ce.CustomStatusCode()
	}
	return 0
}

// HTTPStatusOf returns the HTTP status of the first error in err's chain that
// reports one, or zero.
func HTTPStatusOf(err error) int {
	var he apis.HTTPStatusCoder
	if errors.As(err, &he) {
		return he.HTTPStatusCode()
	}
	return 0
}
