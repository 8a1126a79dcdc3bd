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
	"net/http"

	"dirpx.dev/errcatalog/kind"
)

// Entry describes one well-known error kind.
type Entry struct {
	// Kind is the identity of the entry.
	Kind kind.Kind

	// Parent is the kind a registry falls back to when this one cannot be
	// built. Empty for roots.
	Parent kind.Kind

	// CustomCode is the application specific status code. Zero for bases.
	CustomCode int

	// HTTPStatus is the HTTP status the kind travels with. Zero for bases.
	HTTPStatus int

	// DefaultMessage is used when a lookup does not provide a message.
	DefaultMessage string
}

var bases = []Entry{
	{Kind: kind.Generic, DefaultMessage: "Runtime error"},
	{Kind: kind.HTTPError, Parent: kind.Generic, DefaultMessage: "HTTP error"},
	{Kind: kind.InvalidArgument, Parent: kind.Generic, DefaultMessage: "Invalid argument"},
}

var exceptions = []Entry{
	{kind.NoContent, kind.HTTPError, 20204, http.StatusNoContent, "No Content"},

	{kind.BadRequest, kind.InvalidArgument, 40400, http.StatusBadRequest, "Bad Request"},
	{kind.Unauthorized, kind.HTTPError, 40401, http.StatusUnauthorized, "Unauthorized"},
	{kind.PaymentRequired, kind.HTTPError, 40402, http.StatusPaymentRequired, "Payment Required"},
	{kind.Forbidden, kind.HTTPError, 40403, http.StatusForbidden, "Forbidden"},
	{kind.NotFound, kind.HTTPError, 40404, http.StatusNotFound, "Not Found."},
	{kind.MethodNotAllowed, kind.HTTPError, 40405, http.StatusMethodNotAllowed, "Method Not Allowed"},
	{kind.NotAcceptable, kind.HTTPError, 40406, http.StatusNotAcceptable, "Not Acceptable"},
	{kind.ProxyAuthenticationRequired, kind.HTTPError, 40407, http.StatusProxyAuthRequired, "Proxy Authentication Required"},
	{kind.RequestTimeout, kind.HTTPError, 40408, http.StatusRequestTimeout, "Request Timeout"},
	{kind.Conflict, kind.HTTPError, 40409, http.StatusConflict, "Conflict"},
	{kind.Gone, kind.HTTPError, 40410, http.StatusGone, "Gone"},
	{kind.LengthRequired, kind.HTTPError, 40411, http.StatusLengthRequired, "Length Required"},
	{kind.PreconditionFailed, kind.HTTPError, 40412, http.StatusPreconditionFailed, "Precondition Failed"},
	{kind.RequestEntityTooLarge, kind.HTTPError, 40413, http.StatusRequestEntityTooLarge, "Request Entity Too Large"},
	{kind.URITooLong, kind.HTTPError, 40414, http.StatusRequestURITooLong, "URI Too Long"},
	{kind.UnsupportedMediaType, kind.HTTPError, 40415, http.StatusUnsupportedMediaType, "Unsupported Media Type"},
	{kind.RequestedRangeNotSatisfiable, kind.HTTPError, 40416, http.StatusRequestedRangeNotSatisfiable, "Requested Range Not Satisfiable"},
	{kind.ExpectationFailed, kind.HTTPError, 40417, http.StatusExpectationFailed, "Expectation Failed"},
	{kind.Teapot, kind.HTTPError, 40418, http.StatusTeapot, "I'm a teapot"},

	// User management errors share HTTP 400.
	{kind.PasswordAlreadyUsed, kind.BadRequest, 40495, http.StatusBadRequest, "Password was already used."},
	{kind.PasswordTooWeak, kind.BadRequest, 40496, http.StatusBadRequest, "Password is too weak."},
	{kind.PasswordsNotMatch, kind.BadRequest, 40497, http.StatusBadRequest, "Passwords not match."},
	{kind.BadUserName, kind.BadRequest, 40600, http.StatusBadRequest, "Illegal user name."},
	{kind.BadEmailAddress, kind.BadRequest, 40610, http.StatusBadRequest, "Illegal email address."},
	{kind.BadPhoneNumber, kind.BadRequest, 40620, http.StatusBadRequest, "Illegal phone number."},
	{kind.AlreadyExists, kind.BadRequest, 40630, http.StatusBadRequest, "Object already exists."},
	{kind.UserAlreadyExists, kind.AlreadyExists, 40631, http.StatusBadRequest, "User already exists."},
	{kind.EmailAlreadyExists, kind.AlreadyExists, 40632, http.StatusBadRequest, "Email already exists."},

	{kind.Internal, kind.HTTPError, 50500, http.StatusInternalServerError, "Internal Server Error"},
	{kind.NotImplemented, kind.HTTPError, 50501, http.StatusNotImplemented, "Not Implemented"},
	{kind.BadGateway, kind.HTTPError, 50502, http.StatusBadGateway, "Bad Gateway"},
	{kind.ServiceUnavailable, kind.HTTPError, 50503, http.StatusServiceUnavailable, "Service Unavailable"},
	{kind.GatewayTimeout, kind.HTTPError, 50504, http.StatusGatewayTimeout, "Gateway Timeout"},
	{kind.HTTPVersionNotSupported, kind.HTTPError, 50505, http.StatusHTTPVersionNotSupported, "HTTP Version not supported"},
}

// Bases returns the root kinds of the catalog in registration order: every
// parent appears before its children.
func Bases() []Entry {
	return append([]Entry(nil), bases...)
}

// Exceptions returns the catalog entries in declaration order. The returned
// slice is a copy.
func Exceptions() []Entry {
	return append([]Entry(nil), exceptions...)
}

// Find returns the base or catalog entry of kind k.
func Find(k kind.Kind) (Entry, bool) {
	for _, e := range bases {
		if e.Kind == k {
			return e, true
		}
	}
	for _, e := range exceptions {
		if e.Kind == k {
			return e, true
		}
	}
	return Entry{}, false
}
