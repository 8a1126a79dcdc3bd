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

// Package kind defines the identity of an error variant.
//
// A Kind replaces the notion of an exception class: it names the variant,
// it is what crosses process boundaries as the DTO "className", and its
// dotted segments let mappers and loggers match whole families of errors by
// prefix, e.g.:
//
//   - "http.not_found"
//   - "user.password_too_weak"
//   - "internal"
//
// The well-known kinds of the built-in catalog are declared as constants in
// this package. Services add their own kinds by parsing them once at package
// level with MustParse and registering them with a registry.
package kind
