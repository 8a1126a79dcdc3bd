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

	"dirpx.dev/errcatalog/kind"
	"google.golang.org/grpc/codes"
)

type prefixRule struct {
	// prefix is the raw, dot-separated kind prefix (may contain "*").
	// It is normalized and validated when the trie is built.
	prefix string
	// val is the transport status; gRPC codes are kept as int until New.
	val int
}

type builder struct {
	// httpDefaults / grpcDefaults hold per-kind defaults (catalog seeded,
	// user adjusted). gRPC values are ints until New converts them.
	httpDefaults map[kind.Kind]int
	grpcDefaults map[kind.Kind]int

	// httpOverride / grpcOverride hold exact per-kind overrides.
	httpOverride map[kind.Kind]int
	grpcOverride map[kind.Kind]int

	// httpPrefixes / grpcPrefixes are the longest-prefix rules over kinds.
	httpPrefixes []prefixRule
	grpcPrefixes []prefixRule

	// parents records explicit parent kinds (catalog or registry). Kinds
	// without an entry fall back to their name parent.
	parents map[kind.Kind]kind.Kind

	// global fallbacks used when nothing else matches.
	fallbackHTTP int
	fallbackGRPC codes.Code
}

// newBuilder creates an empty builder.
func newBuilder() *builder {
	return &builder{
		httpDefaults: make(map[kind.Kind]int, len(httpToGRPC)),
		grpcDefaults: make(map[kind.Kind]int, len(httpToGRPC)),

		httpOverride: make(map[kind.Kind]int),
		grpcOverride: make(map[kind.Kind]int),
		parents:      make(map[kind.Kind]kind.Kind),

		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}

// seed records the parent of k and, when status is set, derives both
// defaults from it.
func (b *builder) seed(k, parent kind.Kind, status int) {
	if parent != kind.Empty {
		b.parents[k] = parent
	}
	if status == 0 {
		return
	}
	b.httpDefaults[k] = status
	b.grpcDefaults[k] = int(GRPCFromHTTP(status))
}
