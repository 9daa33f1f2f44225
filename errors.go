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

import "errors"

var (
	// ErrInvalidTaxonomy is returned by Define for a malformed taxonomy
	// name, an empty variant set, or a variant with an invalid name or
	// class.
	ErrInvalidTaxonomy = errors.New("errboundary: invalid taxonomy")

	// ErrDuplicateVariant is returned by Define when two variants share a
	// name.
	ErrDuplicateVariant = errors.New("errboundary: duplicate variant")

	// ErrVariantBound is returned by Define when a variant already belongs
	// to a taxonomy.
	ErrVariantBound = errors.New("errboundary: variant already bound")

	// ErrUnknownVariant is returned by Taxonomy.Raise for a name outside
	// the taxonomy.
	ErrUnknownVariant = errors.New("errboundary: unknown variant")

	// ErrPayloadMismatch is returned by Taxonomy.Raise when the payload
	// does not have the variant's declared type.
	ErrPayloadMismatch = errors.New("errboundary: payload does not match variant")

	// ErrMatchGap matches every *MatchGap through errors.Is.
	ErrMatchGap = errors.New("errboundary: match does not cover every variant")

	// ErrForeignCase is returned by NewMatcher for a case whose variant
	// belongs to another taxonomy or to none.
	ErrForeignCase = errors.New("errboundary: case variant outside taxonomy")

	// ErrDuplicateCase is returned by NewMatcher when a variant has two
	// cases or Otherwise is given twice.
	ErrDuplicateCase = errors.New("errboundary: duplicate case")

	// ErrForeignVariant is returned by Matcher.Match for a NamedError of
	// another taxonomy.
	ErrForeignVariant = errors.New("errboundary: variant outside taxonomy")
)
