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

// Package segmenttrie indexes dot-separated reason prefixes for
// longest-prefix matching on segment boundaries.
package segmenttrie

import (
	"errors"
	"strings"

	"dirpx.dev/errboundary/reason"
)

// Wildcard matches exactly one segment.
const Wildcard = "*"

// ErrInvalidPrefix is returned by Insert for an empty prefix, an empty or
// malformed segment, or a prefix made only of wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

// Trie maps reason prefixes such as "calendar.storage_io" or
// "calendar.*.encoding" to values. A deeper match wins; at equal depth an
// exact segment wins over the wildcard.
//
// A Trie is not safe for concurrent Insert. Once populated it can be
// matched from any number of goroutines.
type Trie[T any] struct {
	root node[T]
	size int
}

type node[T any] struct {
	children map[string]*node[T]
	hasVal   bool
	val      T
	pattern  string
}

// New creates an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{}
}

// Len returns the number of stored prefixes.
func (t *Trie[T]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Insert associates prefix with val, replacing any previous value for the
// same prefix.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, ".")
	concrete := false
	for _, s := range segs {
		if s == Wildcard {
			continue
		}
		if !reason.ValidSegment(s) {
			return ErrInvalidPrefix
		}
		concrete = true
	}
	if !concrete {
		return ErrInvalidPrefix
	}

	cur := &t.root
	for _, s := range segs {
		if cur.children == nil {
			cur.children = make(map[string]*node[T])
		}
		next, ok := cur.children[s]
		if !ok {
			next = &node[T]{}
			cur.children[s] = next
		}
		cur = next
	}
	if !cur.hasVal {
		t.size++
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match returns the value of the longest prefix of reason.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(key)
	return v, ok
}

// MatchWithPattern is Match that also returns the matching prefix as it
// was inserted, for diagnostics.
func (t *Trie[T]) MatchWithPattern(key string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	best, depth := (*node[T])(nil), -1
	t.root.walk(key, 0, 0, &best, &depth)
	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

// walk consumes key from off, recording the deepest valued node. An
// invalid segment ends the path without a match past it.
func (n *node[T]) walk(key string, off, depth int, best **node[T], bestDepth *int) {
	if n.hasVal && depth > *bestDepth {
		*best, *bestDepth = n, depth
	}
	if off >= len(key) || len(n.children) == 0 {
		return
	}
	end := strings.IndexByte(key[off:], '.')
	if end < 0 {
		end = len(key)
	} else {
		end += off
	}
	seg := key[off:end]
	if !reason.ValidSegment(seg) {
		return
	}
	next := end + 1
	if c, ok := n.children[seg]; ok {
		c.walk(key, next, depth+1, best, bestDepth)
	}
	if c, ok := n.children[Wildcard]; ok {
		c.walk(key, next, depth+1, best, bestDepth)
	}
}
