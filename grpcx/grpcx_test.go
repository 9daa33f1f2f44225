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

package grpcx

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/errboundary"
	"dirpx.dev/errboundary/code"
	"dirpx.dev/errboundary/mapper"
)

var (
	jobMissing = errboundary.NewVariant("job_missing", code.NotFound, func(id string) string {
		return "no job " + id
	})
	_ = errboundary.MustDefine("jobs", jobMissing)
)

// probe fails in the way its "mode" field asks for.
func probe(_ any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	handler := func(ctx context.Context, req any) (any, error) {
		switch req.(*structpb.Struct).GetFields()["mode"].GetStringValue() {
		case "named":
			return nil, jobMissing.Raise("j-7").WithDetail("queue", "high")
		case "plain":
			return nil, errors.New("connection refused")
		case "status":
			return nil, gstatus.Error(codes.Unimplemented, "later")
		case "panic":
			panic("boom")
		}
		return req, nil
	}
	if interceptor == nil {
		return handler(ctx, in)
	}
	return interceptor(ctx, in, &grpc.UnaryServerInfo{FullMethod: "/test.Probe/Do"}, handler)
}

var probeDesc = grpc.ServiceDesc{
	ServiceName: "test.Probe",
	HandlerType: (*any)(nil),
	Methods:     []grpc.MethodDesc{{MethodName: "Do", Handler: probe}},
}

func dial(t *testing.T, logs *bytes.Buffer) *grpc.ClientConn {
	t.Helper()
	m, err := mapper.New()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(ServerOptions(m, logger, func(context.Context, *errboundary.Named) map[string]string {
		return map[string]string{"request_id": "r-1"}
	})...)
	srv.RegisterService(&probeDesc, struct{}{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func call(t *testing.T, conn *grpc.ClientConn, mode string) error {
	t.Helper()
	in, err := structpb.NewStruct(map[string]any{"mode": mode})
	require.NoError(t, err)
	return conn.Invoke(context.Background(), "/test.Probe/Do", in, new(structpb.Struct))
}

func TestInterceptor_Named(t *testing.T) {
	var logs bytes.Buffer
	conn := dial(t, &logs)

	err := call(t, conn, "named")
	st, ok := gstatus.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "no job j-7", st.Message())

	info, ok := ExtractInfo(err)
	require.True(t, ok)
	assert.Equal(t, "jobs.job_missing", info.GetReason())
	assert.Equal(t, "jobs", info.GetDomain())
	assert.Equal(t, map[string]string{
		MetaCode:     "not_found",
		MetaVariant:  "job_missing",
		"queue":      "high",
		"request_id": "r-1",
	}, info.GetMetadata())
}

func TestInterceptor_ErasesForeignErrors(t *testing.T) {
	var logs bytes.Buffer
	conn := dial(t, &logs)

	err := call(t, conn, "plain")
	st, _ := gstatus.FromError(err)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "connection refused", st.Message())
	_, ok := ExtractInfo(err)
	assert.False(t, ok)
}

func TestInterceptor_StatusPassesThrough(t *testing.T) {
	var logs bytes.Buffer
	conn := dial(t, &logs)

	st, _ := gstatus.FromError(call(t, conn, "status"))
	assert.Equal(t, codes.Unimplemented, st.Code())
	assert.Equal(t, "later", st.Message())
}

func TestInterceptor_PanicIsErased(t *testing.T) {
	var logs bytes.Buffer
	conn := dial(t, &logs)

	st, _ := gstatus.FromError(call(t, conn, "panic"))
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "panic: boom", st.Message())
	assert.Contains(t, logs.String(), "grpc handler panic")
}

func TestInterceptor_Success(t *testing.T) {
	var logs bytes.Buffer
	conn := dial(t, &logs)

	require.NoError(t, call(t, conn, "ok"))
	assert.Contains(t, logs.String(), "finished call")
}

func TestExtractInfo_NoStatus(t *testing.T) {
	_, ok := ExtractInfo(nil)
	assert.False(t, ok)
	_, ok = ExtractInfo(errors.New("plain"))
	assert.False(t, ok)
}
