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

// Package errcatalog provides the catalog error value shared by every other
// package of this module.
//
// An Error is identified by its Kind (see package kind) and optionally
// carries the application specific custom status code and the HTTP status it
// travels with. Registries rebuild Error values from wire DTOs, mappers turn
// their kinds into transport statuses.
package errcatalog

import (
	"fmt"

	"dirpx.dev/errcatalog/apis"
	"dirpx.dev/errcatalog/kind"
)

var (
	_ apis.KindedError       = (*Error)(nil)
	_ apis.CustomStatusCoder = (*Error)(nil)
	_ apis.HTTPStatusCoder   = (*Error)(nil)
	_ apis.DetailedError     = (*Error)(nil)
)

// Error is the canonical catalog error.
//
// All mutation helpers (WithX) return a shallow copy, so Error instances
// can be safely shared and modified in a functional style.
type Error struct {
	// Kind names the error variant, e.g. "http.not_found". Required.
	Kind kind.Kind

	// Message is the human readable explanation. It becomes the "message"
	// property of the wire DTO.
	Message string

	// CustomCode is the application specific status code, e.g. 40496 for
	// "password too weak". Zero means not set.
	CustomCode int

	// HTTPStatus is the HTTP status this error travels with. Zero means not
	// set; mappers decide in that case.
	HTTPStatus int

	// Details is an optional, shallow map of extra fields for logs. It is
	// not part of the wire DTO. The map is treated as immutable.
	Details map[string]any

	// Cause holds the wrapped underlying error (if any).
	Cause error
}

// E is a convenience constructor for Error.
//
// Usage:
//
//	return errcatalog.E(kind.NotFound, "user 42 not found",
//	    errcatalog.Codes(40404, 404),
//	    errcatalog.Detail("user_id", 42),
//	)
func E(k kind.Kind, msg string, opts ...Option) *Error {
	e := &Error{Kind: k, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the built-in error interface.
//
// The format is "<kind>: <message>", or just "<kind>" when the message is
// empty.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same kind. Messages, codes
// and causes are ignored, so
//
//	errors.Is(err, errcatalog.E(kind.NotFound, ""))
//
// matches any not-found error in the chain.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// ErrorKind implements apis.KindedError.
func (e *Error) ErrorKind() string { return string(e.Kind) }

// CustomStatusCode implements apis.CustomStatusCoder.
func (e *Error) CustomStatusCode() int { return e.CustomCode }

// HTTPStatusCode implements apis.HTTPStatusCoder.
func (e *Error) HTTPStatusCode() int { return e.HTTPStatus }

// ErrorDetails implements apis.DetailedError.
func (e *Error) ErrorDetails() map[string]any { return e.Details }

// WithMessage returns a shallow copy of e with a replaced message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithCodes returns a shallow copy of e with the custom status code and the
// HTTP status replaced. Pass zero to clear either of them.
func (e *Error) WithCodes(customCode, httpStatus int) *Error {
	cp := *e
	cp.CustomCode = customCode
	cp.HTTPStatus = httpStatus
	return &cp
}

// WithDetail returns a shallow copy of e with one extra key/value in Details.
// The map is always copied.
func (e *Error) WithDetail(k string, v any) *Error {
	cp := *e
	if len(cp.Details) == 0 {
		cp.Details = map[string]any{k: v}
		return &cp
	}
	m := make(map[string]any, len(cp.Details)+1)
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	m[k] = v
	cp.Details = m
	return &cp
}

// WithDetails returns a shallow copy of e with all provided kv merged into
// Details, kv taking precedence on key conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.Details)+len(kv))
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithCause returns a shallow copy of e with the given cause attached.
// If err is nil, the original error is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
