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
	"maps"

	"dirpx.dev/errboundary/code"
	"dirpx.dev/errboundary/mapper/internal/segmenttrie"
)

// prefixRule maps a reason pattern to a transport value.
type prefixRule[V any] struct {
	pattern string
	val     V
}

// rules is what the options of one transport accumulate. compile turns it
// into the immutable table the mapper reads.
type rules[V any] struct {
	name      string
	defaults  map[code.Code]V
	overrides map[code.Code]V
	prefixes  map[code.Code][]prefixRule[V]
	fallback  V
	opaque    V
}

func newRules[V any](name string, defaults map[code.Code]V, fallback V) *rules[V] {
	return &rules[V]{
		name:      name,
		defaults:  maps.Clone(defaults),
		overrides: make(map[code.Code]V),
		prefixes:  make(map[code.Code][]prefixRule[V]),
		fallback:  fallback,
		opaque:    fallback,
	}
}

func (r *rules[V]) addPrefix(c code.Code, pattern string, v V) {
	r.prefixes[c] = append(r.prefixes[c], prefixRule[V]{pattern: pattern, val: v})
}

// compile validates every prefix and copies the rules into a table that
// shares no maps with r.
func (r *rules[V]) compile() (table[V], error) {
	tries := make(map[code.Code]*segmenttrie.Trie[V], len(r.prefixes))
	for c, list := range r.prefixes {
		if len(list) == 0 {
			continue
		}
		t := segmenttrie.New[V]()
		for _, rule := range list {
			p, err := normalizeAndValidatePrefix(rule.pattern)
			if err != nil {
				return table[V]{}, fmt.Errorf("mapper: invalid %s reason-prefix %q for code %q: %w", r.name, rule.pattern, c, err)
			}
			if err := t.Insert(p, rule.val); err != nil {
				return table[V]{}, fmt.Errorf("mapper: cannot insert %s prefix %q for code %q: %w", r.name, p, c, err)
			}
		}
		tries[c] = t
	}
	return table[V]{
		override: freeze(r.overrides),
		prefix:   freeze(tries),
		def:      freeze(r.defaults),
		fallback: r.fallback,
	}, nil
}
