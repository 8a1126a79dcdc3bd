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
	"dirpx.dev/errcatalog/kind"
	"google.golang.org/grpc/codes"
)

// freeze makes an immutable copy of a builder map, converting values on the
// way. Empty maps become nil.
func freeze[V, W any](src map[kind.Kind]V, conv func(V) W) map[kind.Kind]W {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[kind.Kind]W, len(src))
	for k, v := range src {
		dst[k] = conv(v)
	}
	return dst
}

func identity(v int) int { return v }

// codesOf converts a builder int into a gRPC code. Values outside the uint32
// range become codes.Unknown.
func codesOf(v int) codes.Code {
	if v < 0 || int64(v) > int64(^uint32(0)) {
		return codes.Unknown
	}
	return codes.Code(v)
}
