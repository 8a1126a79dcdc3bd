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
	"context"
	"encoding/json"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/errcatalog/dto"
	"dirpx.dev/errcatalog/mapper"
	"dirpx.dev/errcatalog/registry"
)

// FromError rebuilds the catalog error carried by a gRPC status error.
//
// The DTO detail is preferred. Without it an ErrorInfo of this Domain selects
// the kind by name, and anything else yields the error registered for the
// HTTP equivalent of the status code, carrying the status message. Errors
// that are not gRPC statuses are returned unchanged.
func FromError(r *registry.Registry, err error) error {
	if err == nil {
		return nil
	}
	s, ok := status.FromError(err)
	if !ok {
		return err
	}
	if s.Code() == codes.OK {
		return nil
	}

	var info *errdetails.ErrorInfo
	for _, d := range s.Details() {
		switch v := d.(type) {
		case *structpb.Struct:
			if t, ok := throwableFromStruct(v); ok {
				return r.FromDTO(t)
			}
		case *errdetails.ErrorInfo:
			if v.GetDomain() == Domain {
				info = v
			}
		}
	}
	if info != nil && info.GetReason() != "" {
		return r.ByKindName(info.GetReason(), s.Message())
	}
	return r.ByHTTPStatus(mapper.HTTPFromGRPC(s.Code()), s.Message())
}

// ExtractThrowable pulls the DTO detail out of a gRPC error, if present.
func ExtractThrowable(err error) (*dto.Throwable, bool) {
	if err == nil {
		return nil, false
	}
	s, ok := status.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range s.Details() {
		if v, ok := d.(*structpb.Struct); ok {
			if t, ok := throwableFromStruct(v); ok {
				return t, true
			}
		}
	}
	return nil, false
}

func throwableFromStruct(s *structpb.Struct) (*dto.Throwable, bool) {
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return nil, false
	}
	var t dto.Throwable
	if err := json.Unmarshal(raw, &t); err != nil || t.ClassName == "" {
		return nil, false
	}
	return &t, true
}

// UnaryClientInterceptor applies FromError to the result of every call.
func UnaryClientInterceptor(r *registry.Registry) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return FromError(r, invoker(ctx, method, req, reply, cc, opts...))
	}
}
