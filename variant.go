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

	"dirpx.dev/errboundary/code"
	"dirpx.dev/errboundary/reason"
)

// NoPayload is the payload of variants that carry no data.
type NoPayload struct{}

// Spec is a variant declaration accepted by Define. It is implemented only
// by *Variant[P].
type Spec interface {
	spec() *variantDef
}

// variantDef is the shared, immutable-after-Define description of one
// variant. Named values point at it.
type variantDef struct {
	rawName  string
	name     code.Code
	class    code.Code
	payload  reflect.Type
	describe func(any) string

	// set by Define
	taxonomy *Taxonomy
	reason   reason.Reason
}

// Variant is one member of a closed taxonomy whose payload has type P.
//
// Variants are declared with NewVariant, usually as package-level vars,
// and become usable once passed to Define.
type Variant[P any] struct {
	d *variantDef
}

// NewVariant declares a variant. name must be a canonical code such as
// "not_found"; class is the classification used by transport mappers.
// describe renders the human message for a payload and may be nil.
//
// Invalid names or classes are reported by Define.
func NewVariant[P any](name string, class code.Code, describe func(P) string) *Variant[P] {
	d := &variantDef{
		rawName: name,
		class:   class,
		payload: reflect.TypeFor[P](),
	}
	d.describe = func(a any) string {
		p, _ := a.(P)
		if describe != nil {
			return describe(p)
		}
		if d.payload == reflect.TypeFor[NoPayload]() {
			return d.rawName
		}
		return fmt.Sprintf("%s: %+v", d.rawName, p)
	}
	return &Variant[P]{d: d}
}

func (v *Variant[P]) spec() *variantDef {
	if v == nil {
		return nil
	}
	return v.d
}

// Name returns the variant name as declared.
func (v *Variant[P]) Name() string {
	if v.d.name != code.Empty {
		return string(v.d.name)
	}
	return v.d.rawName
}

// Class returns the variant's classification.
func (v *Variant[P]) Class() code.Code { return v.d.class }

// Raise constructs a NamedError of this variant.
func (v *Variant[P]) Raise(p P) *Named {
	return &Named{def: v.d, message: v.d.describe(p), payload: p}
}

// Wrap is Raise with cause attached.
func (v *Variant[P]) Wrap(cause error, p P) *Named {
	n := v.Raise(p)
	n.cause = cause
	return n
}

// Is reports whether err's chain contains a NamedError of this variant.
func (v *Variant[P]) Is(err error) bool {
	_, ok := v.Payload(err)
	return ok
}

// Payload returns the payload of the first NamedError of this variant in
// err's chain.
func (v *Variant[P]) Payload(err error) (P, bool) {
	n := findNamed(err, func(n *Named) bool { return n.def == v.d })
	if n == nil {
		var zero P
		return zero, false
	}
	p, _ := n.payload.(P)
	return p, true
}
