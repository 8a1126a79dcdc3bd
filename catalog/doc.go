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

// Package catalog holds the static tables of well-known error kinds.
//
// Exceptions lists every catalog entry together with its custom status code,
// HTTP status and default message. Bases lists the root kinds the entries
// descend from; they carry no codes of their own. StatusCode is the older,
// single-number table kept for clients that still speak it.
//
// The tables are plain data. Registries (see package registry) turn them into
// lookup tables.
package catalog
