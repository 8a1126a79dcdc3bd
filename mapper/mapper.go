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
	"fmt"
	"strings"

	"dirpx.dev/errcatalog/apis"
	"dirpx.dev/errcatalog/kind"
	"dirpx.dev/errcatalog/mapper/internal/segmenttrie"
	"google.golang.org/grpc/codes"
)

// maxParentHops bounds the parent walk so that a cyclic parent table built
// from user input cannot loop forever.
const maxParentHops = 16

// New constructs an immutable apis.Mapper snapshot.
//
// Build process overview:
//
//  1. Seed the builder with the catalog statuses (HTTP & gRPC) and parents.
//  2. Apply user-provided options (defaults, overrides, prefix rules, registry).
//  3. Normalize and validate all kind prefixes and build the HTTP trie.
//  4. Build the gRPC trie.
//  5. Freeze all maps and tries into immutable copies (fresh allocations).
//
// Errors returned from this function indicate invalid prefixes.
func New(opts ...Option) (apis.Mapper, error) {
	// (0) Start with an empty builder.
	b := newBuilder()

	// (1) Seed the builder with the catalog.
	seedCatalog(b)

	// (2) Apply user-supplied options.
	for _, opt := range opts {
		opt(b)
	}

	// (3) HTTP prefix trie.
	httpTrie := segmenttrie.New[int]()
	for _, r := range b.httpPrefixes {
		if err := httpTrie.Insert(kind.Normalize(r.prefix), r.val); err != nil {
			return nil, fmt.Errorf("mapper: invalid HTTP kind prefix %q: %w", r.prefix, err)
		}
	}

	// (4) gRPC prefix trie; values become codes.Code here.
	grpcTrie := segmenttrie.New[codes.Code]()
	for _, r := range b.grpcPrefixes {
		if err := grpcTrie.Insert(kind.Normalize(r.prefix), codesOf(r.val)); err != nil {
			return nil, fmt.Errorf("mapper: invalid gRPC kind prefix %q: %w", r.prefix, err)
		}
	}

	// (5) Freeze everything into a read-only snapshot.
	m := &mapper{
		httpDefault:  freeze(b.httpDefaults, identity),
		grpcDefault:  freeze(b.grpcDefaults, codesOf),
		httpOverride: freeze(b.httpOverride, identity),
		grpcOverride: freeze(b.grpcOverride, codesOf),
		parents:      freeze(b.parents, func(k kind.Kind) kind.Kind { return k }),

		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}
	if len(b.httpPrefixes) > 0 {
		m.httpTrie = httpTrie
	}
	if len(b.grpcPrefixes) > 0 {
		m.grpcTrie = grpcTrie
	}
	return m, nil
}

// mapper combines per-kind defaults, exact overrides and segment-aware
// prefix tries over kinds. Lookups are O(depth) and safe for concurrent use
// once constructed.
type mapper struct {
	httpDefault map[kind.Kind]int
	grpcDefault map[kind.Kind]codes.Code

	// Overrides win over everything else, including prefix rules.
	httpOverride map[kind.Kind]int
	grpcOverride map[kind.Kind]codes.Code

	// nil when no prefix rule was configured.
	httpTrie *segmenttrie.Trie[int]
	grpcTrie *segmenttrie.Trie[codes.Code]

	parents map[kind.Kind]kind.Kind

	fallbackHTTP int
	fallbackGRPC codes.Code
}

// resolution is the outcome of a single lookup, kept for Explain.
type resolution[T any] struct {
	val     T
	source  string
	pattern string
	via     kind.Kind
}

// HTTPStatus resolves an HTTP status for the given kind.
//
// Resolution order (highest to lowest):
//  1. exact override;
//  2. longest-prefix-match rule on the kind;
//  3. per-kind default (catalog, registry or user adjusted);
//  4. override or default of the nearest ancestor;
//  5. fallback (500 unless configured).
func (m *mapper) HTTPStatus(k kind.Kind) int {
	return m.resolveHTTP(k).val
}

// GRPCStatus resolves a gRPC status for the given kind with the same
// precedence as HTTPStatus.
func (m *mapper) GRPCStatus(k kind.Kind) codes.Code {
	return m.resolveGRPC(k).val
}

// Status resolves both HTTP and gRPC for a single kind.
func (m *mapper) Status(k kind.Kind) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(k),
		GRPC: m.GRPCStatus(k),
	}
}

// Explain produces a textual trace of how the mapper resolved HTTP and gRPC
// statuses for a kind.
//
// Example output:
//
//	kind="billing.quota.exceeded"
//	http: source=prefix pattern="billing.*.exceeded" -> 429
//	grpc: source=parent via="billing" -> RESOURCEEXHAUSTED(8)
//
// source is one of override, prefix, default, parent or fallback. The output
// is meant for humans and golden tests, not for machine parsing.
func (m *mapper) Explain(k kind.Kind) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "kind=%q\n", k)

	h := m.resolveHTTP(k)
	_, _ = fmt.Fprintf(&b, "http: %s -> %d\n", describe(h.source, h.pattern, h.via), h.val)

	g := m.resolveGRPC(k)
	_, _ = fmt.Fprintf(&b, "grpc: %s -> %s(%d)", describe(g.source, g.pattern, g.via), strings.ToUpper(g.val.String()), int(g.val))

	return b.String()
}

func (m *mapper) resolveHTTP(k kind.Kind) resolution[int] {
	return resolve(k, m.httpOverride, m.httpTrie, m.httpDefault, m.parents, m.fallbackHTTP)
}

func (m *mapper) resolveGRPC(k kind.Kind) resolution[codes.Code] {
	return resolve(k, m.grpcOverride, m.grpcTrie, m.grpcDefault, m.parents, m.fallbackGRPC)
}

// resolve implements the shared precedence for both transports.
func resolve[T any](k kind.Kind, override map[kind.Kind]T, trie *segmenttrie.Trie[T], defaults map[kind.Kind]T, parents map[kind.Kind]kind.Kind, fallback T) resolution[T] {
	// 1) exact override
	if v, ok := override[k]; ok {
		return resolution[T]{val: v, source: "override"}
	}

	// 2) longest prefix over the kind's segments
	if trie != nil && k != kind.Empty {
		if v, ok, pat := trie.MatchWithPattern(string(k)); ok {
			return resolution[T]{val: v, source: "prefix", pattern: pat}
		}
	}

	// 3) per-kind default
	if v, ok := defaults[k]; ok {
		return resolution[T]{val: v, source: "default"}
	}

	// 4) ancestors: explicit parent first, dotted name parent otherwise
	cur := k
	for i := 0; i < maxParentHops; i++ {
		p, ok := parents[cur]
		if !ok {
			p = cur.Parent()
		}
		if p == kind.Empty || p == cur {
			break
		}
		if v, ok := override[p]; ok {
			return resolution[T]{val: v, source: "parent", via: p}
		}
		if v, ok := defaults[p]; ok {
			return resolution[T]{val: v, source: "parent", via: p}
		}
		cur = p
	}

	// 5) fallback
	return resolution[T]{val: fallback, source: "fallback"}
}

func describe(source, pattern string, via kind.Kind) string {
	switch {
	case pattern != "":
		return fmt.Sprintf("source=%s pattern=%q", source, pattern)
	case via != kind.Empty:
		return fmt.Sprintf("source=%s via=%q", source, via)
	default:
		return "source=" + source
	}
}
