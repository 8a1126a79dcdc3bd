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

package registry

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/dto"
	"dirpx.dev/errcatalog/kind"
)

func TestFromDTO_Nil(t *testing.T) {
	r, _ := newDefault(t)
	assert.NoError(t, r.FromDTO(nil))
	assert.NoError(t, r.FromMessageDTO(nil))
	assert.Nil(t, r.ErrorFromDTO(nil))
}

func TestFromDTO_NestedCause(t *testing.T) {
	r, _ := newDefault(t)

	err := r.FromDTO(&dto.Throwable{
		ClassName: "http.bad_gateway",
		Message:   "payment provider down",
		Cause: &dto.Throwable{
			ClassName: "http.gateway_timeout",
			Message:   "timeout after 5s",
		},
	})

	outer := asCatalog(t, err)
	assert.Equal(t, kind.BadGateway, outer.Kind)
	assert.Equal(t, "payment provider down", outer.Message)
	assert.Equal(t, 502, outer.HTTPStatus)

	require.NotNil(t, outer.Cause)
	inner := asCatalog(t, outer.Cause)
	assert.Equal(t, kind.GatewayTimeout, inner.Kind)
	assert.Equal(t, "timeout after 5s", inner.Message)
	assert.True(t, errors.Is(err, errcatalog.E(kind.GatewayTimeout, "")))
}

func TestFromDTO_BlankClassNameIsHTTPError(t *testing.T) {
	r, _ := newDefault(t)

	e := asCatalog(t, r.FromDTO(&dto.Throwable{Message: "upstream said no", StatusCode: 418}))
	assert.Equal(t, kind.HTTPError, e.Kind)
	assert.Equal(t, "upstream said no", e.Message)
	assert.Equal(t, 418, e.HTTPStatus)
}

func TestFromDTO_UnknownClassName(t *testing.T) {
	r, hook := newDefault(t)

	e := asCatalog(t, r.FromDTO(&dto.Throwable{
		ClassName:  "java.lang.IllegalStateException",
		Message:    "boom",
		StatusCode: 40999,
	}))
	assert.Equal(t, kind.Generic, e.Kind)
	assert.Equal(t, "boom", e.Message)
	assert.Equal(t, "java.lang.IllegalStateException", e.Details["class_name"])
	assert.Equal(t, 40999, e.CustomCode)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestFromDTO_StatusCodeReapplied(t *testing.T) {
	r, _ := newDefault(t)

	e := asCatalog(t, r.FromDTO(&dto.Throwable{ClassName: "http.not_found", Message: "x", StatusCode: 40499}))
	assert.Equal(t, 40499, e.CustomCode)
	assert.Equal(t, 404, e.HTTPStatus)

	e = asCatalog(t, r.FromDTO(&dto.Throwable{ClassName: "http.not_found", Message: "x", StatusCode: 410}))
	assert.Equal(t, 40404, e.CustomCode)
	assert.Equal(t, 410, e.HTTPStatus)
}

func TestFromDTO_RoundTrip(t *testing.T) {
	r, _ := newDefault(t)

	live := errcatalog.E(kind.PasswordTooWeak, "needs 12 characters",
		errcatalog.Codes(40496, 400),
		errcatalog.CausedBy(errcatalog.E(kind.BadRequest, "validation").WithCodes(40400, 400)),
	)
	back := asCatalog(t, r.FromDTO(dto.FromError(live)))

	assert.Equal(t, live.Kind, back.Kind)
	assert.Equal(t, live.Message, back.Message)
	assert.Equal(t, live.CustomCode, back.CustomCode)
	assert.Equal(t, live.HTTPStatus, back.HTTPStatus)
	assert.Equal(t, kind.BadRequest, errcatalog.KindOf(back.Cause))
}

func TestFromMessageDTO(t *testing.T) {
	r, _ := newDefault(t)
	e := asCatalog(t, r.FromMessageDTO(&dto.ThrowableMessage{ClassName: "user.already_exists", Message: "anna"}))
	assert.Equal(t, kind.UserAlreadyExists, e.Kind)
	assert.Equal(t, 40631, e.CustomCode)
	assert.Nil(t, e.Cause)
}

type remoteError struct{ msg string }

func (e *remoteError) Error() string { return e.msg }

func TestErrorFromDTO_WrapsForeignErrors(t *testing.T) {
	r, _ := newDefault(t)
	require.NoError(t, r.Register(Description{
		Kind:    "remote.failure",
		Factory: MessageOnly(func(msg string) error { return &remoteError{msg: msg} }),
	}, false))

	e := r.ErrorFromDTO(&dto.Throwable{ClassName: "remote.failure", Message: "lost"})
	require.NotNil(t, e)
	assert.Equal(t, kind.Generic, e.Kind)
	assert.Equal(t, "lost", e.Message)
	assert.Equal(t, 500, e.HTTPStatus)
	var re *remoteError
	assert.True(t, errors.As(e, &re))

	same := r.ErrorFromDTO(&dto.Throwable{ClassName: "http.conflict", Message: "v2"})
	assert.Equal(t, kind.Conflict, same.Kind)
}
