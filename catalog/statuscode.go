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

package catalog

import (
	"errors"
	"fmt"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/kind"
)

// StatusCode is the legacy single-number error table. Numbers 204..417 are
// HTTP statuses; 495..499 are the historic user management codes.
type StatusCode int

// Legacy status codes.
const (
	NoContent                    StatusCode = 204
	BadRequest                   StatusCode = 400
	Unauthorized                 StatusCode = 401
	PaymentRequired              StatusCode = 402
	Forbidden                    StatusCode = 403
	NotFound                     StatusCode = 404
	MethodNotAllowed             StatusCode = 405
	NotAcceptable                StatusCode = 406
	ProxyAuthenticationRequired  StatusCode = 407
	RequestTimedOut              StatusCode = 408
	Conflict                     StatusCode = 409
	Gone                         StatusCode = 410
	LengthRequired               StatusCode = 411
	PreconditionFailed           StatusCode = 412
	RequestEntityTooLarge        StatusCode = 413
	RequestURLTooLong            StatusCode = 414
	UnsupportedMediaType         StatusCode = 415
	RequestedRangeNotSatisfiable StatusCode = 416
	ExpectationFailed            StatusCode = 417
	PasswordAlreadyUsed          StatusCode = 495
	PasswordTooWeak              StatusCode = 496
	PasswordsNotMatch            StatusCode = 497
	BadUserName                  StatusCode = 498
	AlreadyExists                StatusCode = 499
)

// ErrUnknownStatusCode is returned by FindByStatusCode for numbers outside
// the legacy table.
var ErrUnknownStatusCode = errors.New("catalog: unknown status code")

type statusInfo struct {
	name           string
	kind           kind.Kind
	defaultMessage string
}

var statusCodes = []StatusCode{
	NoContent, BadRequest, Unauthorized, PaymentRequired, Forbidden, NotFound,
	MethodNotAllowed, NotAcceptable, ProxyAuthenticationRequired, RequestTimedOut,
	Conflict, Gone, LengthRequired, PreconditionFailed, RequestEntityTooLarge,
	RequestURLTooLong, UnsupportedMediaType, RequestedRangeNotSatisfiable,
	ExpectationFailed, PasswordAlreadyUsed, PasswordTooWeak, PasswordsNotMatch,
	BadUserName, AlreadyExists,
}

var statusTable = map[StatusCode]statusInfo{
	NoContent:                    {"NO_CONTENT", kind.NoContent, "No Content"},
	BadRequest:                   {"BAD_REQUEST", kind.BadRequest, "Bad Request"},
	Unauthorized:                 {"UNAUTHORIZED", kind.Unauthorized, "Unauthorized"},
	PaymentRequired:              {"PAYMENT_REQUIRED", kind.PaymentRequired, "Payment Required"},
	Forbidden:                    {"FORBIDDEN", kind.Forbidden, "Forbidden"},
	NotFound:                     {"NOT_FOUND", kind.NotFound, "Not Found."},
	MethodNotAllowed:             {"METHOD_NOT_ALLOWED", kind.MethodNotAllowed, "Method Not Allowed"},
	NotAcceptable:                {"NOT_ACCEPTABLE", kind.NotAcceptable, "Not Acceptable"},
	ProxyAuthenticationRequired:  {"PROXY_AUTHENTICATION_REQUIRED", kind.ProxyAuthenticationRequired, "Proxy Authentication Required"},
	RequestTimedOut:              {"REQUEST_TIMED_OUT", kind.RequestTimeout, "Request Timeout"},
	Conflict:                     {"CONFLICT", kind.Conflict, "Conflict"},
	Gone:                         {"GONE", kind.Gone, "Gone"},
	LengthRequired:               {"LENGTH_REQUIRED", kind.LengthRequired, "Length Required"},
	PreconditionFailed:           {"PRECONDITION_FAILED", kind.PreconditionFailed, "Precondition Failed"},
	RequestEntityTooLarge:        {"REQUEST_ENTITY_TOO_LARGE", kind.RequestEntityTooLarge, "Request Entity Too Large"},
	RequestURLTooLong:            {"REQUEST_URL_TOO_LONG", kind.URITooLong, "Request-URI Too Long"},
	UnsupportedMediaType:         {"UNSUPPORTED_MEDIA_TYPE", kind.UnsupportedMediaType, "Unsupported Media Type"},
	RequestedRangeNotSatisfiable: {"REQUESTED_RANGE_NOT_SATISFIABLE", kind.RequestedRangeNotSatisfiable, "Requested Range Not Satisfiable"},
	ExpectationFailed:            {"EXPECTATION_FAILED", kind.ExpectationFailed, "Expectation Failed"},
	PasswordAlreadyUsed:          {"PASSWORD_ALREADY_USED", kind.PasswordAlreadyUsed, "Password was already used."},
	PasswordTooWeak:              {"PASSWORD_TOO_WEAK", kind.PasswordTooWeak, "Password is too weak."},
	PasswordsNotMatch:            {"PASSWORDS_NOT_MATCH", kind.PasswordsNotMatch, "Passwords not match."},
	BadUserName:                  {"BAD_USER_NAME", kind.BadUserName, "Illegal user name."},
	AlreadyExists:                {"ALREADY_EXISTS", kind.AlreadyExists, "Object already exists."},
}

// StatusCodes returns all legacy status codes in ascending order.
func StatusCodes() []StatusCode {
	return append([]StatusCode(nil), statusCodes...)
}

// FindByStatusCode returns the legacy entry for n, or ErrUnknownStatusCode.
func FindByStatusCode(n int) (StatusCode, error) {
	if _, ok := statusTable[StatusCode(n)]; !ok {
		return 0, fmt.Errorf("%w [%d]", ErrUnknownStatusCode, n)
	}
	return StatusCode(n), nil
}

// CreateError returns the error for the legacy status n. Unknown numbers
// yield a kind.Generic error carrying msg; it never fails.
func CreateError(n int, msg string) error {
	s, err := FindByStatusCode(n)
	if err != nil {
		return errcatalog.New(kind.Generic, msg, nil)
	}
	return s.Error(msg)
}

// Int returns the numeric status code.
func (s StatusCode) Int() int { return int(s) }

// Name returns the upper-case enum name, e.g. "NOT_FOUND".
func (s StatusCode) Name() string { return statusTable[s].name }

// Kind returns the error kind the status code stands for.
func (s StatusCode) Kind() kind.Kind { return statusTable[s].kind }

// DefaultMessage returns the message used when Error is called without one.
func (s StatusCode) DefaultMessage() string { return statusTable[s].defaultMessage }

// String implements fmt.Stringer.
func (s StatusCode) String() string {
	if n := s.Name(); n != "" {
		return n
	}
	return fmt.Sprintf("StatusCode(%d)", int(s))
}

// Error builds the error of this status code. An empty msg selects the
// default message. Custom code and HTTP status come from the catalog entry of
// the kind.
func (s StatusCode) Error(msg string) error {
	info, ok := statusTable[s]
	if !ok {
		return errcatalog.New(kind.Generic, msg, nil)
	}
	if msg == "" {
		msg = info.defaultMessage
	}
	e := errcatalog.New(info.kind, msg, nil)
	if entry, ok := Find(info.kind); ok {
		e = e.WithCodes(entry.CustomCode, entry.HTTPStatus)
	}
	return e
}
