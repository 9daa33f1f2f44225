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

// Package logging builds the process logger: the slog API on top of a
// charmbracelet/log handler.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	// ErrInvalidLevel is returned for a level name charmbracelet/log does
	// not know.
	ErrInvalidLevel = errors.New("logging: invalid level")

	// ErrInvalidFormat is returned for a format other than text, json or
	// logfmt.
	ErrInvalidFormat = errors.New("logging: invalid format")
)

// Formats accepted by New.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// New returns a logger writing to w. An empty level means info and an
// empty format means text.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl := log.InfoLevel
	if strings.TrimSpace(level) != "" {
		var err error
		if lvl, err = log.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
		}
	}

	var f log.Formatter
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		f = log.TextFormatter
	case FormatJSON:
		f = log.JSONFormatter
	case FormatLogfmt:
		f = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:     lvl,
		Formatter: f,
	})
	return slog.New(handler), nil
}
