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

package code

import (
	"encoding"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Code names a failure class ("not_found") or a variant within a
// taxonomy ("storage_io"). Raw input becomes a Code through Parse.
type Code string

// Length bounds of a canonical code.
const (
	MinLength = 3
	MaxLength = 64
)

// ErrCodeInvalid wraps every Parse and Validate failure.
var ErrCodeInvalid = errors.New("errboundary: invalid code")

var (
	_ encoding.TextMarshaler   = Code("")
	_ encoding.TextUnmarshaler = (*Code)(nil)
	_ slog.LogValuer           = Code("")
)

// Empty is the zero code. It never validates.
const Empty Code = ""

// Parse normalizes s and validates the result. On failure it returns
// Empty and an error wrapping ErrCodeInvalid that says what is wrong.
func Parse(s string) (Code, error) {
	c := Code(Normalize(s))
	if err := Validate(c); err != nil {
		return Empty, err
	}
	return c, nil
}

// MustParse is Parse for package-level declarations; it panics on
// invalid input.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize folds s toward canonical form: surrounding space is dropped,
// letters are lowercased and '-' becomes '_'. The result may still be
// invalid.
func Normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}

// Validate reports whether c is canonical: a lowercase ASCII letter
// followed by letters, digits or '_', MinLength to MaxLength bytes long.
func Validate(c Code) error {
	switch n := len(c); {
	case n == 0:
		return fmt.Errorf("%w: empty", ErrCodeInvalid)
	case n < MinLength:
		return fmt.Errorf("%w: %q is shorter than %d", ErrCodeInvalid, string(c), MinLength)
	case n > MaxLength:
		return fmt.Errorf("%w: longer than %d", ErrCodeInvalid, MaxLength)
	}
	if !isLower(c[0]) {
		return fmt.Errorf("%w: %q must start with a-z", ErrCodeInvalid, string(c))
	}
	for i := 1; i < len(c); i++ {
		if b := c[i]; !isLower(b) && !isDigit(b) && b != '_' {
			return fmt.Errorf("%w: %q has %q at %d", ErrCodeInvalid, string(c), b, i)
		}
	}
	return nil
}

func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Known reports whether c is one of the classes in Catalog.
func Known(c Code) bool {
	_, ok := catalogIndex[c]
	return ok
}

// Retryable reports whether a failure of class c may succeed when the
// same request is sent again unchanged.
func Retryable(c Code) bool {
	switch c {
	case Unavailable, Timeout, RateLimited:
		return true
	}
	return false
}

func (c Code) String() string { return string(c) }

// LogValue logs the code as a plain string.
func (c Code) LogValue() slog.Value { return slog.StringValue(string(c)) }

// MarshalText refuses non-canonical codes.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText parses text, normalizing it first.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
