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

// Package mapper provides deterministic, immutable mappings from error kinds
// (dirpx.dev/errcatalog/kind) to transport-level statuses for HTTP and gRPC.
//
// # Overview
//
// Every catalog error carries an HTTP status, but transports need more than
// that: gRPC servers need a codes.Code, gateways want to remap whole families
// of kinds, and kinds registered at runtime may carry no status at all.
// A Mapper resolves a kind into both statuses with one set of rules:
//
//   - immutable: a Mapper is a snapshot, safe for concurrent reuse;
//   - overridable: callers can change defaults per kind;
//   - prefix-aware: rules can target families such as "user" or "billing.*.exceeded".
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. exact override for the kind;
//  2. longest-prefix-match (LPM) on the kind;
//  3. per-kind default (catalog, registry or user adjusted);
//  4. override or default of the nearest ancestor;
//  5. global fallback (500 / codes.Internal).
//
// Prefix rules are segment-aware: kinds are "."-separated segments and "*"
// matches exactly one segment. The more specific prefix wins, and a literal
// segment beats "*" at the same depth.
//
// Ancestors come from explicit parents (the catalog and WithRegistry) and,
// for kinds without one, from the dotted name: "user.profile.locked" walks to
// "user.profile" and then "user".
//
// # Building a mapper
//
//	m, err := mapper.New(
//	    mapper.WithRegistry(reg),
//	    mapper.WithHTTPPrefix("billing.*.exceeded", http.StatusTooManyRequests),
//	    mapper.WithGRPCOverride(kind.Conflict, int(codes.AlreadyExists)),
//	)
//	if err != nil {
//	    // invalid prefix
//	}
//	st := m.Status(kind.PasswordTooWeak) // {HTTP: 400, GRPC: InvalidArgument}
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of which tier matched and,
// for prefixes and ancestors, which pattern or kind was used.
package mapper
