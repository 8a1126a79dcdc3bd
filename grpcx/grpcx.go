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

// Package grpcx carries catalog errors across gRPC.
//
// On the server, interceptors turn returned errors into gRPC statuses whose
// code comes from an apis.Mapper. Two details are attached: an
// errdetails.ErrorInfo naming the kind and a structpb.Struct holding the
// dto.Throwable tree. On the client, FromError reverses that through a
// registry.
package grpcx

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/apis"
	"dirpx.dev/errcatalog/dto"
	"dirpx.dev/errcatalog/internal/logging"
	"dirpx.dev/errcatalog/mapper"
)

// Domain is the ErrorInfo domain of errors produced by this package.
const Domain = "errcatalog"

// ErrorInfo metadata keys.
const (
	MetaCustomCode = "custom_code"
	MetaHTTPStatus = "http_status"
)

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// handler errors into gRPC statuses.
//
// Errors that already are gRPC statuses pass through unchanged, context
// cancellation and deadline errors become their gRPC equivalents. A nil
// logger selects the logrus standard logger.
func UnaryServerInterceptor(m apis.Mapper, log logrus.FieldLogger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, toStatus(ctx, m, log, info.FullMethod, err)
	}
}

// StreamServerInterceptor is UnaryServerInterceptor for streaming RPCs.
func StreamServerInterceptor(m apis.Mapper, log logrus.FieldLogger) grpc.StreamServerInterceptor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return toStatus(ss.Context(), m, log, info.FullMethod, err)
	}
}

func toStatus(ctx context.Context, m apis.Mapper, log logrus.FieldLogger, method string, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}

	s := Status(m, err)
	e := logging.FromContext(ctx, log).WithFields(logrus.Fields{
		"method":    method,
		"kind":      errcatalog.KindOf(err),
		"grpc_code": s.Code().String(),
	}).WithError(err)
	switch s.Code() {
	case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
		e.Error("rpc failed")
	default:
		e.Info("rpc rejected")
	}
	return s.Err()
}

// Status converts err into a gRPC status with ErrorInfo and DTO details. A
// mapped code of OK is replaced by Unknown so that the error is not lost.
func Status(m apis.Mapper, err error) *status.Status {
	st := mapper.StatusOf(m, err)
	code := st.GRPC
	if code == codes.OK {
		code = codes.Unknown
	}
	base := status.New(code, err.Error())

	t := dto.FromError(err)
	info := &errdetails.ErrorInfo{
		Reason: t.ClassName,
		Domain: Domain,
		Metadata: map[string]string{
			MetaCustomCode: strconv.Itoa(errcatalog.CustomCodeOf(err)),
			MetaHTTPStatus: strconv.Itoa(st.HTTP),
		},
	}
	body, perr := throwableStruct(t)
	if perr != nil {
		if with, derr := base.WithDetails(info); derr == nil {
			return with
		}
		return base
	}
	with, derr := base.WithDetails(info, body)
	if derr != nil {
		return base
	}
	return with
}

func throwableStruct(t *dto.Throwable) (*structpb.Struct, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}
