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
	"errors"
	"fmt"
	"net"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/apis"
	"dirpx.dev/errcatalog/kind"
	"dirpx.dev/errcatalog/mapper"
	"dirpx.dev/errcatalog/registry"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	l, _ := logtest.NewNullLogger()
	r, err := registry.NewDefault(registry.WithLogger(l))
	require.NoError(t, err)
	return r
}

func newMapper(t *testing.T, opts ...mapper.Option) apis.Mapper {
	t.Helper()
	m, err := mapper.New(opts...)
	require.NoError(t, err)
	return m
}

// healthServer fails every Check with the configured error.
type healthServer struct {
	healthpb.UnimplementedHealthServer
	err error
}

func (h *healthServer) Check(context.Context, *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	return nil, h.err
}

func dial(t *testing.T, srvErr error, reg *registry.Registry) healthpb.HealthClient {
	t.Helper()
	l, _ := logtest.NewNullLogger()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(UnaryServerInterceptor(newMapper(t), l)))
	healthpb.RegisterHealthServer(srv, &healthServer{err: srvErr})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(UnaryClientInterceptor(reg)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func TestRoundTrip_Bufconn(t *testing.T) {
	reg := newRegistry(t)
	cause := reg.ByKind(kind.BadEmailAddress, "not an address")
	srvErr := errcatalog.New(kind.UserAlreadyExists, "alice", cause).WithCodes(40631, 400)

	client := dial(t, srvErr, reg)
	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.Error(t, err)

	assert.Equal(t, kind.UserAlreadyExists, errcatalog.KindOf(err))
	assert.Equal(t, 40631, errcatalog.CustomCodeOf(err))

	var e *errcatalog.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "alice", e.Message)
	assert.Equal(t, kind.BadEmailAddress, errcatalog.KindOf(e.Cause))
}

func TestRoundTrip_WrappedError(t *testing.T) {
	reg := newRegistry(t)
	srvErr := fmt.Errorf("check: %w", reg.ByKind(kind.NotFound, "user 42"))

	s := Status(newMapper(t), srvErr)
	assert.Equal(t, codes.NotFound, s.Code())
	var info *errdetails.ErrorInfo
	for _, d := range s.Details() {
		if v, ok := d.(*errdetails.ErrorInfo); ok {
			info = v
		}
	}
	require.NotNil(t, info)
	assert.Equal(t, "http.not_found", info.GetReason())

	client := dial(t, srvErr, reg)
	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.Error(t, err)
	assert.Equal(t, kind.NotFound, errcatalog.KindOf(err))
	assert.Equal(t, 40404, errcatalog.CustomCodeOf(err))

	var e *errcatalog.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "check: user 42", e.Message)
}

func TestServerInterceptor_StatusDetails(t *testing.T) {
	reg := newRegistry(t)
	l, hook := logtest.NewNullLogger()
	icpt := UnaryServerInterceptor(newMapper(t), l)

	_, err := icpt(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Do"},
		func(context.Context, any) (any, error) { return nil, reg.ByKind(kind.UserAlreadyExists, "") })

	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.AlreadyExists, s.Code())

	var info *errdetails.ErrorInfo
	for _, d := range s.Details() {
		if v, ok := d.(*errdetails.ErrorInfo); ok {
			info = v
		}
	}
	require.NotNil(t, info)
	assert.Equal(t, "user.already_exists", info.GetReason())
	assert.Equal(t, Domain, info.GetDomain())
	assert.Equal(t, "40631", info.GetMetadata()[MetaCustomCode])
	assert.Equal(t, "400", info.GetMetadata()[MetaHTTPStatus])

	tb, ok := ExtractThrowable(err)
	require.True(t, ok)
	assert.Equal(t, "user.already_exists", tb.ClassName)
	assert.Equal(t, 40631, tb.StatusCode)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "/svc/Do", hook.LastEntry().Data["method"])
}

func TestServerInterceptor_PassThrough(t *testing.T) {
	icpt := UnaryServerInterceptor(newMapper(t), nil)
	call := func(err error) error {
		_, got := icpt(context.Background(), nil, &grpc.UnaryServerInfo{},
			func(context.Context, any) (any, error) { return nil, err })
		return got
	}

	native := status.Error(codes.NotFound, "nope")
	assert.Same(t, native, call(native))
	assert.Equal(t, codes.Canceled, status.Code(call(context.Canceled)))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(call(context.DeadlineExceeded)))
	assert.Equal(t, codes.Internal, status.Code(call(errors.New("boom"))))
}

func TestStatus_OKBecomesUnknown(t *testing.T) {
	s := Status(newMapper(t), errcatalog.E(kind.NoContent, "empty"))
	assert.Equal(t, codes.Unknown, s.Code())
}

func TestFromError_Fallbacks(t *testing.T) {
	reg := newRegistry(t)

	assert.NoError(t, FromError(reg, nil))

	plain := errors.New("not a status")
	assert.Same(t, plain, FromError(reg, plain))

	// No details: the HTTP equivalent of the code selects the kind.
	got := FromError(reg, status.Error(codes.PermissionDenied, "go away"))
	assert.Equal(t, kind.Forbidden, errcatalog.KindOf(got))

	// ErrorInfo only: the reason selects the kind.
	s, err := status.New(codes.InvalidArgument, "weak").WithDetails(&errdetails.ErrorInfo{
		Reason: string(kind.PasswordTooWeak),
		Domain: Domain,
	})
	require.NoError(t, err)
	got = FromError(reg, s.Err())
	assert.Equal(t, kind.PasswordTooWeak, errcatalog.KindOf(got))

	var e *errcatalog.Error
	require.True(t, errors.As(got, &e))
	assert.Equal(t, "weak", e.Message)
}
