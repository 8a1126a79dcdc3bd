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

package apis

// KindedError represents an error that names its variant.
//
// The kind is the stable, machine-readable identity of the error, e.g.
// "http.not_found" or "user.password_too_weak". It is what crosses process
// boundaries as the DTO class name and what registries use to rebuild the
// error on the other side.
//
// Implementations are expected to return a canonical kind as enforced by the
// errcatalog/kind package. Adapters treat unknown or non-canonical kinds as
// plain runtime errors.
type KindedError interface {
	error

	// ErrorKind returns the canonical kind name. It MUST be non-empty.
	ErrorKind() string
}

// CustomStatusCoder represents an error that carries an application specific
// status code. Custom codes refine HTTP statuses: several kinds may travel as
// HTTP 400 while keeping distinct custom codes (40495, 40496, ...).
//
// Zero means "not set".
type CustomStatusCoder interface {
	error

	// CustomStatusCode returns the custom status code or zero.
	CustomStatusCode() int
}

// HTTPStatusCoder represents an error that knows the HTTP status it should
// travel with. Adapters prefer this value over mapper rules.
//
// Zero means "not set".
type HTTPStatusCoder interface {
	error

	// HTTPStatusCode returns the HTTP status or zero.
	HTTPStatusCode() int
}

// DetailedError represents an error that exposes structured key/value details
// for logs. Returning nil is allowed and simply means "no extra details".
//
// Details never travel inside the wire DTO.
type DetailedError interface {
	error

	// ErrorDetails returns structured details of the error. May return nil.
	ErrorDetails() map[string]any
}
