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
	"io"
	"slices"
	"strings"

	crdb "github.com/cockroachdb/errors"

	"dirpx.dev/errboundary/apis"
)

// FallbackDescription is what an Opaque describes itself as when the
// erased failure had no text.
const FallbackDescription = "unknown failure"

// maxChain bounds the copied diagnostic chain.
const maxChain = 32

// Opaque is an erased failure.
//
// It keeps a description and, for diagnostics only, a copy of the text of
// every error in the erased chain plus the stack of the erase site. It
// deliberately has no Unwrap, Is or As method and implements none of the
// coded interfaces in apis: once erased, a failure can be displayed,
// logged and propagated, but not matched.
type Opaque struct {
	desc     string
	chain    []string
	verbose  string
	redacted string
}

var _ apis.Describer = (*Opaque)(nil)

// Erase converts err into an Opaque. It never fails:
//   - a nil err yields an Opaque describing FallbackDescription;
//   - an *Opaque is returned unchanged, so erasure happens once;
//   - anything else, NamedError or not, is described by its Error text.
func Erase(err error) *Opaque {
	if err == nil {
		return &Opaque{desc: FallbackDescription}
	}
	if op, ok := err.(*Opaque); ok {
		return op
	}
	return capture(crdb.WithStackDepth(err, 1))
}

// Seal is Erase for return statements: a nil err stays nil.
func Seal(err error) error {
	if err == nil {
		return nil
	}
	if op, ok := err.(*Opaque); ok {
		return op
	}
	return capture(crdb.WithStackDepth(err, 1))
}

// New returns an Opaque with the given description.
func New(msg string) *Opaque {
	return capture(crdb.NewWithDepth(1, msg))
}

// Errorf formats a description. A %w verb records the wrapped error in the
// diagnostic chain; it is not reachable through the result.
func Errorf(format string, args ...any) *Opaque {
	return capture(crdb.NewWithDepthf(1, format, args...))
}

// Wrap erases err behind a context message. The description is
// "<msg>: <err>". A nil err behaves like New(msg).
func Wrap(err error, msg string) *Opaque {
	if err == nil {
		return capture(crdb.NewWithDepth(1, msg))
	}
	return capture(crdb.WrapWithDepth(1, err, msg))
}

// Describe returns the description of err after erasure. It is the one
// function log sinks and presentation layers need.
func Describe(err error) string {
	if err == nil {
		return FallbackDescription
	}
	if op, ok := err.(*Opaque); ok {
		return op.Describe()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackDescription
}

func capture(err error) *Opaque {
	desc := err.Error()
	if desc == "" {
		desc = FallbackDescription
	}
	return &Opaque{
		desc:     desc,
		chain:    chainOf(err),
		verbose:  fmt.Sprintf("%+v", err),
		redacted: crdb.Redact(err),
	}
}

// chainOf copies the text of every error reachable from err, outermost
// first, collapsing adjacent duplicates produced by stack wrappers.
func chainOf(err error) []string {
	var out []string
	add := func(s string) {
		if len(out) < maxChain && (len(out) == 0 || out[len(out)-1] != s) {
			out = append(out, s)
		}
	}
	var walk func(e error)
	walk = func(e error) {
		for e != nil && len(out) < maxChain {
			if op, ok := e.(*Opaque); ok {
				for _, s := range op.Chain() {
					add(s)
				}
				return
			}
			add(e.Error())
			if multi, ok := e.(interface{ Unwrap() []error }); ok {
				for _, c := range multi.Unwrap() {
					walk(c)
				}
				return
			}
			e = crdb.UnwrapOnce(e)
		}
	}
	walk(err)
	return out
}

// Error implements the error interface and returns Describe().
func (o *Opaque) Error() string { return o.Describe() }

// Describe returns the non-empty, stable description.
func (o *Opaque) Describe() string {
	if o == nil || o.desc == "" {
		return FallbackDescription
	}
	return o.desc
}

// Chain returns a copy of the diagnostic chain, outermost first. It is
// meant for display; its entries are plain text.
func (o *Opaque) Chain() []string {
	if o == nil || len(o.chain) == 0 {
		return []string{o.Describe()}
	}
	return slices.Clone(o.chain)
}

// Verbose returns the chain together with the stack captured at the erase
// site.
func (o *Opaque) Verbose() string {
	if o == nil || o.verbose == "" {
		return o.Describe()
	}
	return o.verbose
}

// Redacted returns the description with user-supplied values masked, for
// reporting sinks that must not receive PII.
func (o *Opaque) Redacted() string {
	if o == nil || o.redacted == "" {
		return o.Describe()
	}
	return o.redacted
}

// Format implements fmt.Formatter.
//
//	%s, %v  the description
//	%q      the quoted description
//	%+v     the description followed by one "caused by:" line per
//	        deeper chain entry
func (o *Opaque) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			var b strings.Builder
			b.WriteString(o.Describe())
			chain := o.Chain()
			for _, c := range chain[1:] {
				b.WriteString("\n  caused by: ")
				b.WriteString(c)
			}
			_, _ = io.WriteString(s, b.String())
			return
		}
		_, _ = io.WriteString(s, o.Describe())
	case 's':
		_, _ = io.WriteString(s, o.Describe())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", o.Describe())
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(errboundary.Opaque=%s)", verb, o.Describe())
	}
}
