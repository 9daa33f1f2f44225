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
	"strconv"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/errboundary/internal/calendar"
)

// addRequest is the input of Add on both transports.
type addRequest struct {
	Subject string
	Start   time.Time
	End     time.Time
}

// parseAdd reads subject, start and end from a struct.
func parseAdd(s *structpb.Struct) (addRequest, error) {
	if s == nil {
		return addRequest{}, MalformedBody.Raise(BadField{})
	}
	str := func(k string) (string, error) {
		v, ok := s.GetFields()[k]
		if !ok {
			return "", MalformedBody.Raise(BadField{Field: k})
		}
		sv, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return "", MalformedBody.Raise(BadField{Field: k})
		}
		return sv.StringValue, nil
	}

	subject, err := str("subject")
	if err != nil {
		return addRequest{}, err
	}
	rawStart, err := str("start")
	if err != nil {
		return addRequest{}, err
	}
	rawEnd, err := str("end")
	if err != nil {
		return addRequest{}, err
	}
	start, err := calendar.ParseTime(rawStart)
	if err != nil {
		return addRequest{}, err
	}
	end, err := calendar.ParseTime(rawEnd)
	if err != nil {
		return addRequest{}, err
	}
	return addRequest{Subject: subject, Start: start, End: end}, nil
}

// parseID reads a schedule id from text.
func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, BadID.Wrap(err, BadField{Field: "id", Value: raw})
	}
	return id, nil
}

// idFromStruct reads the id field, which may be a number or a string.
func idFromStruct(s *structpb.Struct) (uint64, error) {
	v, ok := s.GetFields()["id"]
	if !ok {
		return 0, MalformedBody.Raise(BadField{Field: "id"})
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return parseID(k.StringValue)
	case *structpb.Value_NumberValue:
		n := k.NumberValue
		if n < 0 || n != float64(uint64(n)) {
			return 0, BadID.Raise(BadField{Field: "id", Value: strconv.FormatFloat(n, 'f', -1, 64)})
		}
		return uint64(n), nil
	}
	return 0, MalformedBody.Raise(BadField{Field: "id"})
}

func scheduleValue(s calendar.Schedule) *structpb.Value {
	return structpb.NewStructValue(scheduleStruct(s))
}

func scheduleStruct(s calendar.Schedule) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":      structpb.NewNumberValue(float64(s.ID)),
		"subject": structpb.NewStringValue(s.Subject),
		"start":   structpb.NewStringValue(s.Start.Format(calendar.Layout)),
		"end":     structpb.NewStringValue(s.End.Format(calendar.Layout)),
	}}
}

func listStruct(list []calendar.Schedule) *structpb.Struct {
	values := make([]*structpb.Value, 0, len(list))
	for _, s := range list {
		values = append(values, scheduleValue(s))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"schedules": structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}
}
