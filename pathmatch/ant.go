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

package pathmatch

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// globMeta are doublestar operators that ant patterns treat as literals.
var globMeta = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`)

// Match reports whether path matches the ant-style pattern.
//
//	?   one character within a segment
//	*   any characters within a segment
//	**  any number of segments, including none
//
// Empty segments are ignored on both sides, so "/api/" and "/api" are the
// same path. Brackets and braces are matched literally.
func Match(pattern, path string) bool {
	ok, err := doublestar.Match(globMeta.Replace(clean(pattern)), clean(path))
	return err == nil && ok
}

// clean drops empty segments and the leading slash.
func clean(s string) string {
	parts := strings.Split(s, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}
