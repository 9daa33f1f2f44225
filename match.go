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

package errboundary

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Case is one branch of a Matcher. Build cases with On and Otherwise.
type Case[R any] struct {
	def       *variantDef
	otherwise bool
	fn        func(*Named) R
}

// On handles the variant v. fn receives the typed payload.
func On[P, R any](v *Variant[P], fn func(P) R) Case[R] {
	return Case[R]{
		def: v.spec(),
		fn: func(n *Named) R {
			p, _ := n.payload.(P)
			return fn(p)
		},
	}
}

// Otherwise is an explicit catch-all for the variants without their own
// case. A Matcher that has one never reports a MatchGap, so use it only
// where "every other kind" really gets the same treatment.
func Otherwise[R any](fn func(*Named) R) Case[R] {
	return Case[R]{otherwise: true, fn: fn}
}

// MatchGap reports the variants a Matcher does not handle.
type MatchGap struct {
	Taxonomy string
	Missing  []string
}

// Error implements the error interface.
func (g *MatchGap) Error() string {
	return fmt.Sprintf("errboundary: match over %q does not handle %s",
		g.Taxonomy, strings.Join(g.Missing, ", "))
}

// Is makes errors.Is(err, ErrMatchGap) true for every MatchGap.
func (g *MatchGap) Is(target error) bool { return target == ErrMatchGap }

// Matcher dispatches a NamedError of one taxonomy to the case of its
// variant. It is immutable and safe for concurrent use.
type Matcher[R any] struct {
	taxonomy  *Taxonomy
	cases     map[*variantDef]func(*Named) R
	otherwise func(*Named) R
}

// NewMatcher builds a Matcher over t.
//
// It fails with a *MatchGap when a variant of t has no case and no
// Otherwise is given, with ErrForeignCase when a case belongs to another
// taxonomy, and with ErrDuplicateCase when a variant or Otherwise appears
// twice.
func NewMatcher[R any](t *Taxonomy, cases ...Case[R]) (*Matcher[R], error) {
	m := &Matcher[R]{
		taxonomy: t,
		cases:    make(map[*variantDef]func(*Named) R, len(cases)),
	}
	for _, c := range cases {
		if c.otherwise {
			if m.otherwise != nil {
				return nil, fmt.Errorf("%w: Otherwise given twice for %q", ErrDuplicateCase, t.name)
			}
			m.otherwise = c.fn
			continue
		}
		if c.def == nil || c.def.taxonomy != t {
			name := "<nil>"
			if c.def != nil {
				name = c.def.rawName
			}
			return nil, fmt.Errorf("%w: %q is not a variant of %q", ErrForeignCase, name, t.name)
		}
		if _, dup := m.cases[c.def]; dup {
			return nil, fmt.Errorf("%w: %q in %q", ErrDuplicateCase, c.def.name, t.name)
		}
		m.cases[c.def] = c.fn
	}

	if m.otherwise == nil {
		missing := lo.Filter(t.order, func(d *variantDef, _ int) bool {
			_, ok := m.cases[d]
			return !ok
		})
		if len(missing) > 0 {
			return nil, &MatchGap{
				Taxonomy: t.name,
				Missing:  lo.Map(missing, func(d *variantDef, _ int) string { return string(d.name) }),
			}
		}
	}
	return m, nil
}

// MustMatcher is like NewMatcher but panics on error. Assigning its result
// to a package-level var turns a MatchGap into a failure at program and
// test start.
func MustMatcher[R any](t *Taxonomy, cases ...Case[R]) *Matcher[R] {
	m, err := NewMatcher(t, cases...)
	if err != nil {
		panic(err)
	}
	return m
}

// Handles reports whether the variant has its own case, ignoring
// Otherwise.
func (m *Matcher[R]) Handles(variant string) bool {
	d, ok := m.taxonomy.byName[codeOf(variant)]
	if !ok {
		return false
	}
	_, ok = m.cases[d]
	return ok
}

// Match runs the case for n's variant. It fails with ErrForeignVariant
// when n belongs to another taxonomy.
func (m *Matcher[R]) Match(n *Named) (R, error) {
	var zero R
	if !m.taxonomy.Owns(n) {
		return zero, fmt.Errorf("%w: %v", ErrForeignVariant, n)
	}
	if fn, ok := m.cases[n.def]; ok {
		return fn(n), nil
	}
	// NewMatcher guarantees otherwise is set when a case is missing.
	return m.otherwise(n), nil
}

// MatchError finds the first NamedError of the matcher's taxonomy in
// err's tree, joined errors included, and runs its case. ok is false
// when there is none, which is always the case for erased errors.
func (m *Matcher[R]) MatchError(err error) (res R, ok bool) {
	n := findNamed(err, m.taxonomy.Owns)
	if n == nil {
		return res, false
	}
	res, _ = m.Match(n)
	return res, true
}
