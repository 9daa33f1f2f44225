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
	"reflect"
	"sync"

	"github.com/samber/lo"

	"dirpx.dev/errboundary/code"
	"dirpx.dev/errboundary/reason"
)

// Taxonomy is a closed set of variants belonging to one module. The set is
// fixed by Define and never changes afterwards.
type Taxonomy struct {
	name   string
	order  []*variantDef
	byName map[code.Code]*variantDef
}

// bindMu serializes the "already bound" check and the binding itself.
var bindMu sync.Mutex

// Define declares the taxonomy name with the given variants.
//
// name is a reason of at most three segments ("calendar",
// "billing.invoice"); each variant's reason becomes "<name>.<variant>".
// Define fails without binding anything when the name is malformed, the
// set is empty, a variant name or class is invalid, two variants share a
// name, or a variant is already bound to a taxonomy.
func Define(name string, variants ...Spec) (*Taxonomy, error) {
	r, err := reason.Parse(name)
	if err != nil || r == reason.Empty || len(r.Segments()) >= reason.MaxSegments {
		return nil, fmt.Errorf("%w: name %q", ErrInvalidTaxonomy, name)
	}
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: %q declares no variants", ErrInvalidTaxonomy, r)
	}

	t := &Taxonomy{
		name:   string(r),
		order:  make([]*variantDef, 0, len(variants)),
		byName: make(map[code.Code]*variantDef, len(variants)),
	}
	reasons := make([]reason.Reason, 0, len(variants))
	names := make([]code.Code, 0, len(variants))

	bindMu.Lock()
	defer bindMu.Unlock()

	for _, v := range variants {
		if v == nil || v.spec() == nil {
			return nil, fmt.Errorf("%w: nil variant in %q", ErrInvalidTaxonomy, r)
		}
		d := v.spec()
		if d.taxonomy != nil {
			return nil, fmt.Errorf("%w: %q belongs to %q", ErrVariantBound, d.rawName, d.taxonomy.name)
		}
		vn, err := code.Parse(d.rawName)
		if err != nil {
			return nil, fmt.Errorf("%w: variant name %q: %w", ErrInvalidTaxonomy, d.rawName, err)
		}
		if err := code.Validate(d.class); err != nil {
			return nil, fmt.Errorf("%w: variant %q class %q: %w", ErrInvalidTaxonomy, vn, d.class, err)
		}
		if _, dup := t.byName[vn]; dup {
			return nil, fmt.Errorf("%w: %q in %q", ErrDuplicateVariant, vn, r)
		}
		vr, err := r.Child(string(vn))
		if err != nil {
			return nil, fmt.Errorf("%w: reason for %q: %w", ErrInvalidTaxonomy, vn, err)
		}
		t.byName[vn] = d
		t.order = append(t.order, d)
		names = append(names, vn)
		reasons = append(reasons, vr)
	}

	for i, d := range t.order {
		d.name = names[i]
		d.reason = reasons[i]
		d.taxonomy = t
	}
	return t, nil
}

// MustDefine is like Define but panics on error. Use it for package-level
// declarations so a malformed taxonomy stops the program at start.
func MustDefine(name string, variants ...Spec) *Taxonomy {
	t, err := Define(name, variants...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the canonical taxonomy name.
func (t *Taxonomy) Name() string { return t.name }

// Variants returns the variant names in declaration order.
func (t *Taxonomy) Variants() []string {
	return lo.Map(t.order, func(d *variantDef, _ int) string { return string(d.name) })
}

// Has reports whether the taxonomy declares a variant with that name.
func (t *Taxonomy) Has(name string) bool {
	_, ok := t.byName[codeOf(name)]
	return ok
}

// Owns reports whether n was raised from one of t's variants.
func (t *Taxonomy) Owns(n *Named) bool {
	return n != nil && n.def != nil && n.def.taxonomy == t
}

// Raise constructs a NamedError for a variant chosen at run time.
//
// It fails with ErrUnknownVariant when the name is not declared and with
// ErrPayloadMismatch when payload's type is not assignable to the
// variant's payload type. A nil payload is accepted for NoPayload and
// interface-typed variants. Prefer Variant.Raise, which checks the payload
// at compile time.
func (t *Taxonomy) Raise(name string, payload any) (*Named, error) {
	d, ok := t.byName[codeOf(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %q", ErrUnknownVariant, name, t.name)
	}
	if payload == nil {
		switch {
		case d.payload == reflect.TypeFor[NoPayload]():
			payload = NoPayload{}
		case d.payload.Kind() == reflect.Interface:
		default:
			return nil, fmt.Errorf("%w: %s.%s wants %s, got nil", ErrPayloadMismatch, t.name, d.name, d.payload)
		}
	} else if !reflect.TypeOf(payload).AssignableTo(d.payload) {
		return nil, fmt.Errorf("%w: %s.%s wants %s, got %T", ErrPayloadMismatch, t.name, d.name, d.payload, payload)
	} else if d.payload.Kind() != reflect.Interface {
		// Store the declared type so typed accessors see it.
		payload = reflect.ValueOf(payload).Convert(d.payload).Interface()
	}
	return &Named{def: d, message: d.describe(payload), payload: payload}, nil
}

func codeOf(s string) code.Code { return code.Code(code.Normalize(s)) }

// Find returns the first NamedError of t in err's tree, joined errors
// included.
func (t *Taxonomy) Find(err error) (*Named, bool) {
	n := findNamed(err, t.Owns)
	return n, n != nil
}
