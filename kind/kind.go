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

package kind

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Kind is the canonical, validated name of an error variant.
//
// Kinds are dot-separated hierarchical identifiers with at most four segments.
// The kind travels on the wire as the DTO class name, so it must be stable
// across releases of every service that shares a registry.
//
// Example valid kinds:
//
//   - "runtime"
//   - "http.not_found"
//   - "user.password_too_weak"
//   - "billing.quota.exceeded"
type Kind string

const (
	// MinLength is the minimum length of a kind.
	MinLength = 3

	// MaxLength is the maximum length of a kind. 128 characters leave room for
	// four descriptive segments.
	MaxLength = 128

	// MaxSegments is the maximum number of dot-separated segments.
	MaxSegments = 4
)

const (
	// kindFmt accepts 1 to 4 segments. Each segment starts with [a-z] and
	// continues with [a-z0-9_]*.
	kindFmt = `^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*){0,3}$`
)

var kindRe = regexp.MustCompile(kindFmt)

var (
	// ErrKindInvalidFormat is returned when a kind does not match the
	// canonical format.
	ErrKindInvalidFormat = errors.New("errcatalog: invalid kind format")
	// ErrKindInvalidLength is returned when a kind is too short or too long.
	ErrKindInvalidLength = errors.New("errcatalog: invalid kind length")
)

var (
	_ encoding.TextMarshaler   = (*Kind)(nil)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

// Empty is the zero-value kind. Unlike other identifiers in this module it is
// never valid: every error variant has a name.
var Empty Kind = ""

// Normalize brings an arbitrary string closer to the canonical kind form.
//
// The transformations are conservative:
//
//   - trim spaces and lower-case
//   - "/" and "$" become "." (path-like and nested-type names)
//   - "-" becomes "_"
//
// It does NOT guarantee validity; callers should still call Parse/Validate.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.NewReplacer("/", ".", "$", ".", "-", "_").Replace(s)
	return s
}

// Parse normalizes and validates s and returns the canonical Kind.
func Parse(s string) (Kind, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Kind(s), nil
}

// MustParse is like Parse but panics on error. It is meant for package-level
// declarations of well-known kinds.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Validate checks whether k is in canonical form.
func Validate(k Kind) error {
	return validate(string(k))
}

// String returns the canonical string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Segments returns the dot-separated parts of the kind.
func (k Kind) Segments() []string {
	if k == Empty {
		return nil
	}
	return strings.Split(string(k), ".")
}

// Parent returns the kind with its last segment removed, or Empty when k has
// a single segment.
func (k Kind) Parent() Kind {
	i := strings.LastIndexByte(string(k), '.')
	if i < 0 {
		return Empty
	}
	return k[:i]
}

// HasPrefix reports whether p is k itself or one of its segment-wise
// ancestors. "http.bad" is not a prefix of "http.bad_request".
func (k Kind) HasPrefix(p Kind) bool {
	if p == Empty {
		return true
	}
	if !strings.HasPrefix(string(k), string(p)) {
		return false
	}
	return len(k) == len(p) || k[len(p)] == '.'
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if err := Validate(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// It normalizes and validates the provided text before assigning.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func validate(s string) error {
	if l := len(s); l < MinLength || l > MaxLength {
		return ErrKindInvalidLength
	}
	if !kindRe.MatchString(s) {
		return ErrKindInvalidFormat
	}
	return nil
}
