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

package reason

import (
	"encoding"
	"errors"
	"fmt"
	"strings"
)

// Reason is a canonical, dot-separated identifier of 1 to 4 segments.
//
// Every NamedError variant carries the reason "<taxonomy>.<variant>", e.g.
// "calendar.not_found". Transport mappers match on reason prefixes, so a
// rule for "calendar" applies to every variant of that taxonomy.
type Reason string

// Length bounds of a non-empty reason.
const (
	MinLength = 3
	MaxLength = 128
)

// MaxSegments is the deepest reason accepted by the grammar.
const MaxSegments = 4

var (
	// ErrReasonInvalidFormat is returned when a reason does not follow the
	// segment grammar: [a-z][a-z0-9_]* separated by single dots.
	ErrReasonInvalidFormat = errors.New("errboundary: invalid reason format")
	// ErrReasonInvalidLength is returned when a reason is too short or too long.
	ErrReasonInvalidLength = errors.New("errboundary: invalid reason length")
)

var (
	_ encoding.TextMarshaler   = Reason("")
	_ encoding.TextUnmarshaler = (*Reason)(nil)
)

// Empty means "no reason". It is valid everywhere except MustParse.
const Empty Reason = ""

// Normalize trims, lowercases, turns '/' into '.' and '-' into '_'. The
// result may still be invalid.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("/", ".", "-", "_").Replace(s)
}

// Parse normalizes and validates s. The empty string yields Empty.
func Parse(s string) (Reason, error) {
	r := Reason(Normalize(s))
	if err := Validate(r); err != nil {
		return Empty, err
	}
	return r, nil
}

// MustParse is like Parse but panics on invalid or empty input.
func MustParse(s string) Reason {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if r == Empty {
		panic("errboundary: empty reason in MustParse")
	}
	return r
}

// Join builds a reason from individual segments, e.g.
// Join("calendar", "not_found"). Each segment is normalized; empty
// segments, dotted segments and more than MaxSegments segments are
// rejected.
func Join(segments ...string) (Reason, error) {
	if len(segments) == 0 || len(segments) > MaxSegments {
		return Empty, fmt.Errorf("%w: %d segments", ErrReasonInvalidFormat, len(segments))
	}
	norm := make([]string, len(segments))
	for i, s := range segments {
		s = Normalize(s)
		if s == "" || strings.Contains(s, ".") {
			return Empty, fmt.Errorf("%w: segment %d is %q", ErrReasonInvalidFormat, i, s)
		}
		norm[i] = s
	}
	return Parse(strings.Join(norm, "."))
}

// Validate reports whether r is canonical. Empty is valid.
func Validate(r Reason) error {
	if r == Empty {
		return nil
	}
	if n := len(r); n < MinLength || n > MaxLength {
		return fmt.Errorf("%w: %d bytes", ErrReasonInvalidLength, n)
	}
	segs := strings.Split(string(r), ".")
	if len(segs) > MaxSegments {
		return fmt.Errorf("%w: %q has more than %d segments", ErrReasonInvalidFormat, string(r), MaxSegments)
	}
	for _, seg := range segs {
		if !ValidSegment(seg) {
			return fmt.Errorf("%w: bad segment %q in %q", ErrReasonInvalidFormat, seg, string(r))
		}
	}
	return nil
}

// ValidSegment reports whether seg is one canonical reason segment.
func ValidSegment(seg string) bool {
	if seg == "" || seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		b := seg[i]
		if (b < 'a' || b > 'z') && (b < '0' || b > '9') && b != '_' {
			return false
		}
	}
	return true
}

// Segments splits r into its dot-separated parts. Empty yields nil.
func (r Reason) Segments() []string {
	if r == Empty {
		return nil
	}
	return strings.Split(string(r), ".")
}

// Child appends one segment to r.
func (r Reason) Child(segment string) (Reason, error) {
	return Join(append(r.Segments(), segment)...)
}

// Parent drops the last segment. A single-segment reason has no parent.
func (r Reason) Parent() Reason {
	i := strings.LastIndexByte(string(r), '.')
	if i < 0 {
		return Empty
	}
	return r[:i]
}

// HasPrefix reports whether r equals prefix or lies below it; partial
// segments never match.
func (r Reason) HasPrefix(prefix Reason) bool {
	if prefix == Empty {
		return true
	}
	s, p := string(r), string(prefix)
	return s == p || strings.HasPrefix(s, p+".")
}

func (r Reason) String() string { return string(r) }

// MarshalText refuses non-canonical reasons. Empty marshals to an empty
// slice.
func (r Reason) MarshalText() ([]byte, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	return []byte(r), nil
}

// UnmarshalText parses text. Whitespace-only input yields Empty.
func (r *Reason) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
