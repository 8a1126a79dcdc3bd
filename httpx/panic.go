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

package httpx

import (
	"fmt"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/catalog"
	"dirpx.dev/errcatalog/kind"
)

// panicError turns a recovered value into an internal catalog error. Error
// values become the cause.
func panicError(p any) *errcatalog.Error {
	e := errcatalog.New(kind.Internal, fmt.Sprintf("panic: %v", p), nil)
	if cause, ok := p.(error); ok {
		e = e.WithCause(cause)
	}
	if entry, ok := catalog.Find(kind.Internal); ok {
		e = e.WithCodes(entry.CustomCode, entry.HTTPStatus)
	}
	return e
}
