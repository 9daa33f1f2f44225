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

package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/errboundary/internal/calendar"
)

// ServiceName is the full gRPC service name.
const ServiceName = "errboundary.calendar.v1.Calendar"

// CalendarServer is the gRPC surface. Messages are structpb values with
// the same fields as the HTTP bodies.
type CalendarServer interface {
	List(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Add(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Delete(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

// RegisterCalendarServer registers srv on s.
func RegisterCalendarServer(s grpc.ServiceRegistrar, srv CalendarServer) {
	s.RegisterService(&calendarServiceDesc, srv)
}

type grpcCalendar struct {
	svc *calendar.Service
}

// NewCalendarServer returns a CalendarServer over svc. Its errors are
// left for the grpcx interceptor to convert.
func NewCalendarServer(svc *calendar.Service) CalendarServer {
	return &grpcCalendar{svc: svc}
}

func (g *grpcCalendar) List(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	schedules, err := g.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return listStruct(schedules), nil
}

func (g *grpcCalendar) Add(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := parseAdd(in)
	if err != nil {
		return nil, err
	}
	added, err := g.svc.Add(ctx, req.Subject, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	return scheduleStruct(added), nil
}

func (g *grpcCalendar) Delete(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	id, err := idFromStruct(in)
	if err != nil {
		return nil, err
	}
	if err := g.svc.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func listHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServer).List(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/List"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServer).List(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func addHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServer).Add(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Add"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServer).Add(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func deleteHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServer).Delete(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Delete"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServer).Delete(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var calendarServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalendarServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: listHandler},
		{MethodName: "Add", Handler: addHandler},
		{MethodName: "Delete", Handler: deleteHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "errboundary/calendar/v1/calendar.proto",
}
