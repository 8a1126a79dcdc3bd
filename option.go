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

import "fmt"

// Option transforms the Error built by E. Options run in order and may
// return a new value.
type Option func(*Error) *Error

// Codes sets the custom status code and the HTTP status.
func Codes(customCode, httpStatus int) Option {
	return func(e *Error) *Error { return e.WithCodes(customCode, httpStatus) }
}

// Detail adds one detail entry.
func Detail(key string, value any) Option {
	return func(e *Error) *Error { return e.WithDetail(key, value) }
}

// Details merges kv into the details.
func Details(kv map[string]any) Option {
	return func(e *Error) *Error { return e.WithDetails(kv) }
}

// CausedBy sets the cause.
func CausedBy(err error) Option {
	return func(e *Error) *Error { return e.WithCause(err) }
}

// Messagef replaces the message with a formatted one.
func Messagef(format string, args ...any) Option {
	return func(e *Error) *Error { return e.WithMessage(fmt.Sprintf(format, args...)) }
}
