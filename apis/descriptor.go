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

// ErrorDescriptor is a flat, transport-friendly description of a registered
// error kind.
//
// This type intentionally uses strings and integers (not the kind value type)
// so that it can live in the public "apis" layer and be served by listing
// endpoints or printed by tools without depending on the registry.
type ErrorDescriptor struct {
	// Kind is the canonical kind, e.g. "http.not_found".
	Kind string `json:"kind" yaml:"kind"`

	// Parent is the kind this one falls back to when it cannot be built.
	// Empty for root kinds.
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`

	// CustomCode is the application specific status code. Zero means "not
	// specified".
	CustomCode int `json:"custom_code,omitempty" yaml:"custom_code,omitempty"`

	// HTTPStatus is the HTTP status registered for the kind. Zero means "not
	// specified".
	HTTPStatus int `json:"http_status,omitempty" yaml:"http_status,omitempty"`

	// GRPCCode is the gRPC status code (as integer) the kind resolves to, if
	// a mapper was consulted. Zero means "not specified".
	GRPCCode int `json:"grpc_code,omitempty" yaml:"grpc_code,omitempty"`

	// Message is the default message used when a lookup does not provide one.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}
