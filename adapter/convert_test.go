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

package adapter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"

	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/apis"
	"dirpx.dev/errboundary/code"
)

type quota struct {
	Used, Limit int
}

var (
	quotaHit = errboundary.NewVariant("quota_hit", code.RateLimited, func(q quota) string {
		return fmt.Sprintf("used %d of %d", q.Used, q.Limit)
	})
	quotaErrors = errboundary.MustDefine("billing.quota", quotaHit)
)

func TestToView(t *testing.T) {
	named := quotaHit.Raise(quota{Used: 12, Limit: 10}).WithDetail("tenant", "acme")

	tests := []struct {
		name string
		err  error
		want apis.ErrorView
	}{
		{"nil", nil, apis.ErrorView{}},
		{
			name: "named",
			err:  named,
			want: apis.ErrorView{
				Code:    "rate_limited",
				Reason:  "billing.quota.quota_hit",
				Message: "used 12 of 10",
				Details: []apis.Detail{{Key: "tenant", Value: "acme"}},
			},
		},
		{
			name: "named behind wrapper",
			err:  fmt.Errorf("charge: %w", named),
			want: apis.ErrorView{
				Code:    "rate_limited",
				Reason:  "billing.quota.quota_hit",
				Message: "used 12 of 10",
				Details: []apis.Detail{{Key: "tenant", Value: "acme"}},
			},
		},
		{
			name: "erased",
			err:  errboundary.Erase(named),
			want: apis.ErrorView{Code: "internal", Message: "billing.quota.quota_hit: used 12 of 10"},
		},
		{
			name: "plain",
			err:  errors.New("connection refused"),
			want: apis.ErrorView{Code: "internal", Message: "connection refused"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToView(tt.err))
		})
	}
	assert.Equal(t, "billing.quota", quotaErrors.Name())
}

func TestToDescriptor(t *testing.T) {
	st := apis.Status{HTTP: 429, GRPC: codes.ResourceExhausted}
	d := ToDescriptor(quotaHit.Raise(quota{Used: 1, Limit: 1}), st)

	assert.Equal(t, apis.ErrorDescriptor{
		Code:       "rate_limited",
		Reason:     "billing.quota.quota_hit",
		Message:    "used 1 of 1",
		HTTPStatus: 429,
		GRPCCode:   int(codes.ResourceExhausted),
	}, d)
	assert.Equal(t, apis.ErrorDescriptor{}, ToDescriptor(nil, st))

	d = ToDescriptor(errboundary.New("disk full"), apis.Status{HTTP: 500, GRPC: codes.Internal})
	assert.Equal(t, "internal", d.Code)
	assert.Empty(t, d.Reason)
	assert.Equal(t, "disk full", d.Message)
}
