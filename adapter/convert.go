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

// Package adapter projects failures onto the wire and log shapes in apis.
package adapter

import (
	"errors"

	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/apis"
	"dirpx.dev/errboundary/code"
)

// namedOf finds the NamedError a client may see. Erased failures have
// none.
func namedOf(err error) (*errboundary.Named, bool) {
	var n *errboundary.Named
	if err == nil || !errors.As(err, &n) || n == nil {
		return nil, false
	}
	return n, true
}

// ToView converts err into what a client is allowed to see.
//
// A NamedError exposes its class, reason, message and details. Anything
// else exposes the class "internal" and its description, and nothing more.
// A nil err yields the zero view.
func ToView(err error) apis.ErrorView {
	if err == nil {
		return apis.ErrorView{}
	}
	n, ok := namedOf(err)
	if !ok {
		return apis.ErrorView{
			Code:    string(code.Internal),
			Message: errboundary.Describe(err),
		}
	}
	return apis.ErrorView{
		Code:    string(n.Code()),
		Reason:  string(n.Reason()),
		Message: n.Message(),
		Details: n.ErrorDetails(),
	}
}

// ToDescriptor is ToView's flat counterpart for logs and traces. It also
// records the statuses resolved for err.
func ToDescriptor(err error, st apis.Status) apis.ErrorDescriptor {
	if err == nil {
		return apis.ErrorDescriptor{}
	}
	v := ToView(err)
	return apis.ErrorDescriptor{
		Code:       v.Code,
		Reason:     v.Reason,
		Message:    v.Message,
		HTTPStatus: st.HTTP,
		GRPCCode:   int(st.GRPC),
	}
}
