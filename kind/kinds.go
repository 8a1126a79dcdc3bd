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

package kind

// Base kinds.
//
// These are not catalog entries of their own; they are the roots the catalog
// hangs from and the results of never-fail lookups.
const (
	// Generic is the plain runtime error. Lookups for kinds nobody registered
	// fall back to it.
	Generic Kind = "runtime"

	// HTTPError is a plain HTTP error carrying only a status. Lookups for
	// unknown custom or HTTP status codes fall back to it, and so do DTOs
	// without a class name.
	HTTPError Kind = "http.error"

	// InvalidArgument is the parent of every "bad request" style kind.
	InvalidArgument Kind = "invalid_argument"
)

// HTTP status kinds (2xx / 4xx).
const (
	NoContent                    Kind = "http.no_content"
	BadRequest                   Kind = "http.bad_request"
	Unauthorized                 Kind = "http.unauthorized"
	PaymentRequired              Kind = "http.payment_required"
	Forbidden                    Kind = "http.forbidden"
	NotFound                     Kind = "http.not_found"
	MethodNotAllowed             Kind = "http.method_not_allowed"
	NotAcceptable                Kind = "http.not_acceptable"
	ProxyAuthenticationRequired  Kind = "http.proxy_authentication_required"
	RequestTimeout               Kind = "http.request_timeout"
	Conflict                     Kind = "http.conflict"
	Gone                         Kind = "http.gone"
	LengthRequired               Kind = "http.length_required"
	PreconditionFailed           Kind = "http.precondition_failed"
	RequestEntityTooLarge        Kind = "http.request_entity_too_large"
	URITooLong                   Kind = "http.uri_too_long"
	UnsupportedMediaType         Kind = "http.unsupported_media_type"
	RequestedRangeNotSatisfiable Kind = "http.requested_range_not_satisfiable"
	ExpectationFailed            Kind = "http.expectation_failed"
	Teapot                       Kind = "http.teapot"
)

// User management kinds. They all travel as HTTP 400 and are told apart by
// their custom status codes.
const (
	PasswordAlreadyUsed Kind = "user.password_already_used"
	PasswordTooWeak     Kind = "user.password_too_weak"
	PasswordsNotMatch   Kind = "user.passwords_not_match"
	BadUserName         Kind = "user.bad_user_name"
	BadEmailAddress     Kind = "user.bad_email_address"
	BadPhoneNumber      Kind = "user.bad_phone_number"

	// AlreadyExists is the generic "object already exists" kind; the user
	// and email variants below descend from it.
	AlreadyExists      Kind = "already_exists"
	UserAlreadyExists  Kind = "user.already_exists"
	EmailAlreadyExists Kind = "user.email_already_exists"
)

// Server side kinds (5xx).
const (
	Internal                Kind = "internal"
	NotImplemented          Kind = "http.not_implemented"
	BadGateway              Kind = "http.bad_gateway"
	ServiceUnavailable      Kind = "http.service_unavailable"
	GatewayTimeout          Kind = "http.gateway_timeout"
	HTTPVersionNotSupported Kind = "http.version_not_supported"
)
