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

// Package registry rebuilds live errors from kinds, status codes and wire
// DTOs.
//
// A Registry owns three lookup tables: descriptions by kind, by custom status
// code, and by HTTP status. Every lookup is "never fail": asking for something
// nobody registered yields a generic error instead of a failure, so callers on
// an error path never have to handle a second error.
//
// Errors are built by factories, plain functions of (message, cause). A
// description without a factory borrows the one of its parent kind; the same
// walk is taken when a factory declines by returning nil.
//
// A Registry is safe for concurrent use. NewDefault returns one preloaded
// with the built-in catalog.
package registry
