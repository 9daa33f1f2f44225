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
	"errors"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim+lower", "  Calendar.Not_Found  ", "calendar.not_found"},
		{"slash to dot", "calendar/storage_io", "calendar.storage_io"},
		{"dash to underscore", "calendar.invalid-range", "calendar.invalid_range"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Reason
	}{
		{"two segments", "calendar.not_found", "calendar.not_found"},
		{"four segments", "billing.invoice.line.overdue", "billing.invoice.line.overdue"},
		{"slash and dash", "calendar/invalid-range", "calendar.invalid_range"},
		{"empty is ok", "", Empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"calendar..not_found", ErrReasonInvalidFormat},
		{"1calendar.not_found", ErrReasonInvalidFormat},
		{"calendar.", ErrReasonInvalidFormat},
		{".calendar", ErrReasonInvalidFormat},
		{"a.b.c.d.e", ErrReasonInvalidFormat},
		{"ab", ErrReasonInvalidLength},
		{"calendar" + strings.Repeat(".segment", 20), ErrReasonInvalidLength},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
			}
			if got != Empty {
				t.Fatalf("Parse(%q) on error must return Empty, got %q", tt.in, got)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	got, err := Join("Calendar", "not-found")
	if err != nil {
		t.Fatalf("Join unexpected error: %v", err)
	}
	if got != "calendar.not_found" {
		t.Fatalf("Join = %q, want calendar.not_found", got)
	}
	if segs := got.Segments(); len(segs) != 2 || segs[0] != "calendar" || segs[1] != "not_found" {
		t.Fatalf("Segments = %v", segs)
	}

	bad := [][]string{
		nil,
		{"calendar", ""},
		{"calendar.sub", "not_found"},
		{"a", "b", "c", "d", "e"},
	}
	for _, segs := range bad {
		if r, err := Join(segs...); err == nil {
			t.Fatalf("Join(%q) = %q, want error", segs, r)
		}
	}
}

func TestMustParse(t *testing.T) {
	if r := MustParse("calendar.conflict"); r != "calendar.conflict" {
		t.Fatalf("MustParse = %q", r)
	}
	for _, in := range []string{"", "calendar..conflict"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("MustParse(%q) must panic", in)
				}
			}()
			_ = MustParse(in)
		}()
	}
}

func TestReason_Text(t *testing.T) {
	text, err := Reason("calendar.not_found").MarshalText()
	if err != nil || string(text) != "calendar.not_found" {
		t.Fatalf("MarshalText = %q, %v", text, err)
	}
	text, err = Empty.MarshalText()
	if err != nil || len(text) != 0 {
		t.Fatalf("MarshalText(Empty) = %q, %v", text, err)
	}
	if _, err := Reason("Bad.Reason").MarshalText(); err == nil {
		t.Fatal("MarshalText on invalid reason must fail")
	}

	var r Reason
	if err := r.UnmarshalText([]byte("  CALENDAR/STORAGE-IO  ")); err != nil {
		t.Fatalf("UnmarshalText unexpected error: %v", err)
	}
	if r != "calendar.storage_io" {
		t.Fatalf("UnmarshalText = %q", r)
	}
	var blank Reason
	if err := blank.UnmarshalText([]byte("   ")); err != nil || blank != Empty {
		t.Fatalf("UnmarshalText(blank) = %q, %v", blank, err)
	}
}

func TestReason_Hierarchy(t *testing.T) {
	r := MustParse("calendar.api.bad_id")
	if got := r.Parent(); got != "calendar.api" {
		t.Fatalf("Parent() = %q", got)
	}
	if got := MustParse("calendar").Parent(); got != Empty {
		t.Fatalf("Parent of a root = %q, want Empty", got)
	}
	child, err := MustParse("calendar").Child("Not-Found")
	if err != nil || child != "calendar.not_found" {
		t.Fatalf("Child() = %q, %v", child, err)
	}
	if _, err := MustParse("a1.b1.c1.d1").Child("e1"); !errors.Is(err, ErrReasonInvalidFormat) {
		t.Fatalf("Child past MaxSegments err = %v", err)
	}

	for _, tt := range []struct {
		prefix Reason
		want   bool
	}{
		{"calendar", true},
		{"calendar.api", true},
		{"calendar.api.bad_id", true},
		{"calendar.ap", false},
		{"billing", false},
		{Empty, true},
	} {
		if got := r.HasPrefix(tt.prefix); got != tt.want {
			t.Fatalf("HasPrefix(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}
