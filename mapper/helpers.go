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
	"strings"

	"dirpx.dev/errboundary/mapper/internal/segmenttrie"
	"dirpx.dev/errboundary/reason"
)

// freeze copies src into a fresh map; an empty src yields nil.
func freeze[K comparable, V any](src map[K]V) map[K]V {
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}

// normalizeAndValidatePrefix canonicalizes a rule prefix. Prefixes follow
// reason syntax except that "*" may stand for a segment.
func normalizeAndValidatePrefix(raw string) (string, error) {
	p := reason.Normalize(raw)
	if p == "" {
		return "", fmt.Errorf("empty prefix")
	}
	allWild := true
	for _, seg := range strings.Split(p, ".") {
		if seg == segmenttrie.Wildcard {
			continue
		}
		if !reason.ValidSegment(seg) {
			return "", fmt.Errorf("invalid segment %q", seg)
		}
		allWild = false
	}
	if allWild {
		return "", fmt.Errorf("prefix cannot consist of '*' only")
	}
	return p, nil
}

// grpcName renders a gRPC code the way Explain prints it: NOT_FOUND(5).
func grpcName(v fmt.Stringer, n int) string {
	return fmt.Sprintf("%s(%d)", strings.ToUpper(toSnake(v.String())), n)
}

// toSnake turns "NotFound" into "not_found".
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
