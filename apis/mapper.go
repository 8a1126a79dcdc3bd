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

import (
	"google.golang.org/grpc/codes"

	"dirpx.dev/errcatalog/kind"
)

// Mapper resolves an error kind into its transport statuses. Implementations
// are immutable once built and safe for concurrent use.
type Mapper interface {
	// HTTPStatus returns the HTTP status for k.
	HTTPStatus(k kind.Kind) int

	// GRPCStatus returns the gRPC code for k.
	GRPCStatus(k kind.Kind) codes.Code

	// Status returns both statuses of k, resolved by the same rules.
	Status(k kind.Kind) Status

	// Explain reports, for operators, which rule produced each status.
	Explain(k kind.Kind) string
}

// Status is the pair of statuses an error is answered with.
type Status struct {
	// HTTP is a net/http status code.
	HTTP int
	GRPC codes.Code
}
