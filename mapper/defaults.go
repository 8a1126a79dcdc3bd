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

package mapper

import (
	"net/http"

	"dirpx.dev/errcatalog/catalog"
	"dirpx.dev/errcatalog/kind"
	"google.golang.org/grpc/codes"
)

// httpToGRPC is the canonical translation of HTTP statuses into gRPC codes.
// gRPC defaults for catalog kinds are derived from their HTTP status with it.
var httpToGRPC = map[int]codes.Code{
	http.StatusOK:        codes.OK,
	http.StatusNoContent: codes.OK,

	http.StatusBadRequest:                   codes.InvalidArgument,
	http.StatusUnauthorized:                 codes.Unauthenticated,
	http.StatusPaymentRequired:              codes.FailedPrecondition,
	http.StatusForbidden:                    codes.PermissionDenied,
	http.StatusNotFound:                     codes.NotFound,
	http.StatusMethodNotAllowed:             codes.Unimplemented,
	http.StatusNotAcceptable:                codes.InvalidArgument,
	http.StatusProxyAuthRequired:            codes.Unauthenticated,
	http.StatusRequestTimeout:               codes.DeadlineExceeded,
	http.StatusConflict:                     codes.Aborted,
	http.StatusGone:                         codes.NotFound, // gRPC has no 410.
	http.StatusLengthRequired:               codes.InvalidArgument,
	http.StatusPreconditionFailed:           codes.FailedPrecondition,
	http.StatusRequestEntityTooLarge:        codes.ResourceExhausted,
	http.StatusRequestURITooLong:            codes.InvalidArgument,
	http.StatusUnsupportedMediaType:         codes.InvalidArgument,
	http.StatusRequestedRangeNotSatisfiable: codes.OutOfRange,
	http.StatusExpectationFailed:            codes.FailedPrecondition,
	http.StatusTeapot:                       codes.Unknown,
	http.StatusTooManyRequests:              codes.ResourceExhausted,
	499:                                     codes.Canceled, // nginx "client closed request".

	http.StatusInternalServerError:     codes.Internal,
	http.StatusNotImplemented:          codes.Unimplemented,
	http.StatusBadGateway:              codes.Unavailable,
	http.StatusServiceUnavailable:      codes.Unavailable,
	http.StatusGatewayTimeout:          codes.DeadlineExceeded,
	http.StatusHTTPVersionNotSupported: codes.Unimplemented,
}

// grpcToHTTP is the reverse direction, used by clients that only see a gRPC
// status.
var grpcToHTTP = map[codes.Code]int{
	codes.OK:                 http.StatusOK,
	codes.Canceled:           499,
	codes.Unknown:            http.StatusInternalServerError,
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.FailedPrecondition: http.StatusPreconditionFailed,
	codes.Aborted:            http.StatusConflict,
	codes.OutOfRange:         http.StatusRequestedRangeNotSatisfiable,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Internal:           http.StatusInternalServerError,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.DataLoss:           http.StatusInternalServerError,
	codes.Unauthenticated:    http.StatusUnauthorized,
}

// grpcKindDefaults refine the derived gRPC defaults where the HTTP status is
// too coarse: the "already exists" family travels as HTTP 400 but has its own
// gRPC code.
var grpcKindDefaults = map[kind.Kind]codes.Code{
	kind.AlreadyExists:      codes.AlreadyExists,
	kind.UserAlreadyExists:  codes.AlreadyExists,
	kind.EmailAlreadyExists: codes.AlreadyExists,
	kind.InvalidArgument:    codes.InvalidArgument,
}

// GRPCFromHTTP translates an HTTP status into a gRPC code. Unlisted statuses
// map by class: 2xx to OK, 4xx to FailedPrecondition, anything else to
// Unknown.
func GRPCFromHTTP(status int) codes.Code {
	if c, ok := httpToGRPC[status]; ok {
		return c
	}
	switch {
	case status >= 200 && status < 300:
		return codes.OK
	case status >= 400 && status < 500:
		return codes.FailedPrecondition
	default:
		return codes.Unknown
	}
}

// HTTPFromGRPC translates a gRPC code into an HTTP status. Unknown codes map
// to 500.
func HTTPFromGRPC(c codes.Code) int {
	if s, ok := grpcToHTTP[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// seedCatalog fills the builder with the statuses of the built-in catalog.
func seedCatalog(b *builder) {
	for _, e := range catalog.Bases() {
		b.seed(e.Kind, e.Parent, e.HTTPStatus)
	}
	for _, e := range catalog.Exceptions() {
		b.seed(e.Kind, e.Parent, e.HTTPStatus)
	}
	// Bases carry no status of their own; invalid_argument is still a 400.
	b.httpDefaults[kind.InvalidArgument] = http.StatusBadRequest
	for k, c := range grpcKindDefaults {
		b.grpcDefaults[k] = int(c)
	}
}
