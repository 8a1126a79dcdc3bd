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

// Package segmenttrie is a longest-prefix index over dot-separated keys such
// as error kinds ("http.not_found", "user.password_too_weak").
package segmenttrie

import (
	"errors"
	"strings"
)

// Trie indexes dotted prefixes. Each node is one segment; the child "*"
// matches exactly one arbitrary segment. Lookups return the value of the
// deepest matching prefix; at equal depth a literal segment beats "*".
type Trie[T any] struct {
	children map[string]*Trie[T]
	hasVal   bool
	val      T
	// pattern is the prefix as inserted, kept for MatchWithPattern.
	pattern string
}

// ErrInvalidPrefix is returned when inserting a prefix that is empty, has
// empty or malformed segments, or consists only of wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// New creates an empty trie ready for inserts.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates val with a dotted prefix such as "http", "user.*" or
// "billing.*.exceeded". Re-inserting a prefix replaces its value.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, ".")
	literal := false
	for _, s := range segs {
		if s == "*" {
			continue
		}
		if !validSegment(s) {
			return ErrInvalidPrefix
		}
		literal = true
	}
	if !literal {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		child, ok := cur.children[s]
		if !ok {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match returns the value of the deepest prefix of key, if any. Malformed
// keys only match up to their first malformed segment.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(key)
	return v, ok
}

// MatchWithPattern is Match that also reports the matching prefix as it was
// inserted.
func (t *Trie[T]) MatchWithPattern(key string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	best, _ := t.walk(key, 0, 0, nil, -1)
	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

// walk explores the literal and the wildcard branch for the segment of key
// starting at off and returns the deepest node with a value.
func (t *Trie[T]) walk(key string, off, depth int, best *Trie[T], bestDepth int) (*Trie[T], int) {
	if t.hasVal && depth > bestDepth {
		best, bestDepth = t, depth
	}
	if off >= len(key) {
		return best, bestDepth
	}
	end := strings.IndexByte(key[off:], '.')
	next := len(key)
	if end < 0 {
		end = len(key)
	} else {
		end += off
		next = end + 1
	}
	seg := key[off:end]
	if !validSegment(seg) {
		return best, bestDepth
	}
	if child, ok := t.children[seg]; ok {
		best, bestDepth = child.walk(key, next, depth+1, best, bestDepth)
	}
	if child, ok := t.children["*"]; ok {
		best, bestDepth = child.walk(key, next, depth+1, best, bestDepth)
	}
	return best, bestDepth
}

// validSegment reports whether seg matches [a-z][a-z0-9_]*.
func validSegment(seg string) bool {
	if seg == "" || seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
