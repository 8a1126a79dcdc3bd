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
	"fmt"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/catalog"
	"dirpx.dev/errcatalog/kind"
)

func newDefault(t *testing.T) (*Registry, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	r, err := NewDefault(WithLogger(logger))
	require.NoError(t, err)
	return r, hook
}

func asCatalog(t *testing.T, err error) *errcatalog.Error {
	t.Helper()
	var e *errcatalog.Error
	require.True(t, errors.As(err, &e), "got %T", err)
	return e
}

func TestNewDefault_EveryEntryResolves(t *testing.T) {
	r, _ := newDefault(t)

	for _, entry := range catalog.Exceptions() {
		byKind := asCatalog(t, r.ByKind(entry.Kind, ""))
		assert.Equal(t, entry.Kind, byKind.Kind)
		assert.Equal(t, entry.DefaultMessage, byKind.Message)
		assert.Equal(t, entry.CustomCode, byKind.CustomCode)
		assert.Equal(t, entry.HTTPStatus, byKind.HTTPStatus)

		byCode := asCatalog(t, r.ByCustomCode(entry.CustomCode, "custom"))
		assert.Equal(t, entry.Kind, byCode.Kind)
		assert.Equal(t, "custom", byCode.Message)

		// HTTP lookups resolve to a kind of the same status.
		byStatus := asCatalog(t, r.ByHTTPStatus(entry.HTTPStatus, ""))
		assert.Equal(t, entry.HTTPStatus, byStatus.HTTPStatus)
	}
	for _, base := range catalog.Bases() {
		assert.True(t, r.ExistsByKind(base.Kind), base.Kind)
	}
}

func TestByHTTPStatus_LowestCustomCodeWins(t *testing.T) {
	r, _ := newDefault(t)

	// 400 is shared by bad_request (40400) and the user management kinds.
	e := asCatalog(t, r.ByHTTPStatus(400, ""))
	assert.Equal(t, kind.BadRequest, e.Kind)
	assert.Equal(t, "Bad Request", e.Message)

	require.NoError(t, r.RegisterName("quota.high", "high", 42902, 429, false))
	require.NoError(t, r.RegisterName("quota.low", "low", 42901, 429, false))
	assert.Equal(t, kind.Kind("quota.low"), errcatalog.KindOf(r.ByHTTPStatus(429, "")))
}

func TestByHTTPStatus_UnsetCodesSortFirstAndStable(t *testing.T) {
	r := New(WithLogger(logrus.New()))
	require.NoError(t, r.RegisterName("teapot.coded", "", 41801, 418, false))
	require.NoError(t, r.RegisterName("teapot.first", "", 0, 418, false))
	require.NoError(t, r.RegisterName("teapot.second", "", 0, 418, false))

	assert.Equal(t, kind.Kind("teapot.first"), errcatalog.KindOf(r.ByHTTPStatus(418, "")))
}

func TestRegister_Duplicates(t *testing.T) {
	r, _ := newDefault(t)

	err := r.RegisterName("http.not_found", "again", 0, 404, false)
	assert.ErrorIs(t, err, ErrDuplicateKind)

	err = r.RegisterName("billing.quota", "quota", 40404, 429, false)
	assert.ErrorIs(t, err, ErrDuplicateCustomCode)
	assert.False(t, r.ExistsByKind(kind.Kind("billing.quota")))
}

func TestRegister_ReplaceRemovesOldAssociations(t *testing.T) {
	r, _ := newDefault(t)

	require.NoError(t, r.RegisterName("http.teapot", "Short and stout", 41899, 503, true))

	assert.False(t, r.ExistsByCustomCode(40418))
	assert.False(t, r.ExistsByHTTPStatus(418))
	assert.True(t, r.ExistsByCustomCode(41899))

	e := asCatalog(t, r.ByCustomCode(41899, ""))
	assert.Equal(t, kind.Teapot, e.Kind)
	assert.Equal(t, "Short and stout", e.Message)
	assert.Equal(t, 503, e.HTTPStatus)

	// Within 503 the teapot now sorts before service_unavailable.
	assert.Equal(t, kind.Teapot, errcatalog.KindOf(r.ByHTTPStatus(503, "")))

	// Unknown 418 falls back to a plain HTTP error.
	plain := asCatalog(t, r.ByHTTPStatus(418, "brew"))
	assert.Equal(t, kind.HTTPError, plain.Kind)
	assert.Equal(t, 418, plain.HTTPStatus)
}

func TestRegister_ReplaceTakesOverCustomCode(t *testing.T) {
	r, _ := newDefault(t)

	require.NoError(t, r.RegisterName("billing.quota", "quota", 40404, 429, true))
	assert.Equal(t, kind.Kind("billing.quota"), errcatalog.KindOf(r.ByCustomCode(40404, "")))

	// Replacing not_found must not drop the code now owned by billing.quota.
	require.NoError(t, r.RegisterName("http.not_found", "gone", 0, 404, true))
	assert.Equal(t, kind.Kind("billing.quota"), errcatalog.KindOf(r.ByCustomCode(40404, "")))
}

func TestRegister_TakeoverClearsPreviousOwner(t *testing.T) {
	r, hook := newDefault(t)

	require.NoError(t, r.RegisterName("billing.quota", "quota", 40404, 404, true))

	prev, ok := r.Lookup(kind.NotFound)
	require.True(t, ok)
	assert.Zero(t, prev.CustomCode)

	owners := 0
	for _, d := range r.Descriptions() {
		if d.CustomCode == 40404 {
			owners++
			assert.Equal(t, kind.Kind("billing.quota"), d.Kind)
		}
	}
	assert.Equal(t, 1, owners)

	built := asCatalog(t, r.ByKind(kind.NotFound, "user 42"))
	assert.Zero(t, built.CustomCode)
	assert.Equal(t, 404, built.HTTPStatus)

	// The 404 bucket now sorts not_found (no code) ahead of billing.quota.
	assert.Equal(t, kind.NotFound, errcatalog.KindOf(r.ByHTTPStatus(404, "")))

	moved := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "custom code moved to another kind" {
			moved = true
			assert.Equal(t, kind.NotFound, e.Data["kind"])
		}
	}
	assert.True(t, moved)
}

func TestRegister_Invalid(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	r := New(WithLogger(logger))

	err := r.RegisterName("Not A Kind!", "", 0, 0, false)
	assert.ErrorIs(t, err, ErrInvalidDescription)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	err = r.Register(Description{Kind: "billing.quota", Parent: "billing.quota", Factory: MessageOnly(errors.New)}, false)
	assert.ErrorIs(t, err, ErrInvalidDescription)

	err = r.Register(Description{Kind: "billing.quota", CustomCode: -1, Factory: MessageOnly(errors.New)}, false)
	assert.ErrorIs(t, err, ErrInvalidDescription)
}

func TestRegister_NoFactory(t *testing.T) {
	r := New(WithLogger(logrus.New()))

	err := r.Register(Description{Kind: "billing.quota", Parent: "billing"}, false)
	assert.ErrorIs(t, err, ErrNoFactory)

	require.NoError(t, r.Register(Description{Kind: "billing", Factory: errcatalog.Factory("billing", 0, 402)}, false))
	require.NoError(t, r.Register(Description{Kind: "billing.quota", Parent: "billing", DefaultMessage: "over quota"}, false))

	// A replacement that would point back at its own child has no factory.
	err = r.Register(Description{Kind: "billing", Parent: "billing.quota"}, true)
	assert.ErrorIs(t, err, ErrNoFactory)
}

func TestByKind_InheritsParentFactory(t *testing.T) {
	r := New(WithLogger(logrus.New()))
	require.NoError(t, r.Register(Description{Kind: "billing", Factory: errcatalog.Factory("billing", 0, 402)}, false))
	require.NoError(t, r.Register(Description{
		Kind: "billing.quota", Parent: "billing", DefaultMessage: "over quota", CustomCode: 40290,
	}, false))

	e := asCatalog(t, r.ByKind("billing.quota", ""))
	assert.Equal(t, kind.Kind("billing"), e.Kind)
	assert.Equal(t, "over quota", e.Message)
	assert.Equal(t, 402, e.HTTPStatus)
}

func TestByKind_DecliningFactoryFallsBackToParent(t *testing.T) {
	r := New(WithLogger(logrus.New()))
	require.NoError(t, r.Register(Description{Kind: "billing", Factory: errcatalog.Factory("billing", 0, 402)}, false))
	require.NoError(t, r.Register(Description{
		Kind:       "billing.quota",
		Parent:     "billing",
		CustomCode: 40290,
		Factory:    func(string, error) error { return nil },
	}, false))

	e := asCatalog(t, r.ByKind("billing.quota", "nope"))
	assert.Equal(t, kind.Kind("billing"), e.Kind)
	assert.Equal(t, "nope", e.Message)
}

func TestByKind_NoWorkingFactoryIsInternal(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	r := New(WithLogger(logger))
	require.NoError(t, r.Register(Description{
		Kind:    "billing",
		Factory: func(string, error) error { return nil },
	}, false))

	e := asCatalog(t, r.ByKind("billing", "x"))
	assert.Equal(t, kind.Internal, e.Kind)
	assert.Equal(t, 500, e.HTTPStatus)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestLookups_NeverFail(t *testing.T) {
	r, hook := newDefault(t)

	e := asCatalog(t, r.ByKind("billing.quota", "over quota"))
	assert.Equal(t, kind.Generic, e.Kind)
	assert.Equal(t, "over quota", e.Message)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	e = asCatalog(t, r.ByKindName("!!", ""))
	assert.Equal(t, kind.Generic, e.Kind)
	assert.Empty(t, e.Message)

	e = asCatalog(t, r.ByKindName("HTTP/Not-Found", ""))
	assert.Equal(t, kind.NotFound, e.Kind)

	e = asCatalog(t, r.ByCustomCode(99999, "odd"))
	assert.Equal(t, kind.HTTPError, e.Kind)
	assert.Equal(t, 99999, e.CustomCode)
	assert.Equal(t, "odd", e.Message)

	e = asCatalog(t, r.ByHTTPStatus(599, ""))
	assert.Equal(t, kind.HTTPError, e.Kind)
	assert.Equal(t, 599, e.HTTPStatus)
}

type quotaError struct {
	msg   string
	cause error
}

func (e *quotaError) Error() string { return e.msg }
func (e *quotaError) Unwrap() error { return e.cause }
func (e *quotaError) ErrorKind() string { return "billing.quota" }

func TestRegister_CustomErrorType(t *testing.T) {
	r, _ := newDefault(t)
	require.NoError(t, r.Register(Description{
		Kind:           "billing.quota",
		Parent:         kind.Generic,
		DefaultMessage: "quota exceeded",
		CustomCode:     42900,
		HTTPStatus:     429,
		Factory: func(msg string, cause error) error {
			return &quotaError{msg: msg, cause: cause}
		},
	}, false))

	err := r.ByCustomCode(42900, "")
	var q *quotaError
	require.True(t, errors.As(err, &q))
	assert.Equal(t, "quota exceeded", q.msg)
	assert.Equal(t, kind.Kind("billing.quota"), errcatalog.KindOf(r.ByHTTPStatus(429, "")))
}

type plainError struct{ msg string }

func (e *plainError) Error() string { return e.msg }

func TestMessageOnly_AttachesCause(t *testing.T) {
	cause := errors.New("io")
	f := MessageOnly(func(msg string) error { return &plainError{msg: msg} })

	err := f("quota", cause)
	assert.Equal(t, "quota", err.Error())
	assert.ErrorIs(t, err, cause)
	var p *plainError
	require.True(t, errors.As(err, &p))
	assert.Equal(t, "quota", p.msg)

	_, ok := f("quota", nil).(*plainError)
	assert.True(t, ok, "without a cause the error is returned as built")
}

func TestCauseOnly_AttachesMessage(t *testing.T) {
	cause := errors.New("io")
	f := CauseOnly(func(c error) error {
		return errcatalog.New(kind.BadGateway, "upstream", c).WithCodes(50502, 502)
	})

	err := f("payment provider down", cause)
	assert.Equal(t, "payment provider down", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, errcatalog.E(kind.BadGateway, ""))
	assert.Equal(t, kind.BadGateway, errcatalog.KindOf(err))
	assert.Equal(t, 50502, errcatalog.CustomCodeOf(err))
	assert.Equal(t, 502, errcatalog.HTTPStatusOf(err))

	assert.Equal(t, "http.bad_gateway: upstream", f("", cause).Error())
}

func TestRegisterError(t *testing.T) {
	r := New(WithLogger(logrus.New()))
	require.NoError(t, r.Register(Description{Kind: kind.Generic, Factory: MessageOnly(errors.New)}, false))

	live := errcatalog.E("billing.quota", "quota exceeded", errcatalog.Codes(42900, 429))
	require.NoError(t, r.RegisterError(live, false))

	d, ok := r.Lookup("billing.quota")
	require.True(t, ok)
	assert.Equal(t, "quota exceeded", d.DefaultMessage)
	assert.Equal(t, 42900, d.CustomCode)
	assert.Equal(t, 429, d.HTTPStatus)

	assert.ErrorIs(t, r.RegisterError(live, false), ErrDuplicateKind)
	assert.ErrorIs(t, r.RegisterError(errors.New("plain"), false), ErrInvalidDescription)
	assert.ErrorIs(t, r.RegisterError(nil, false), ErrInvalidDescription)
}

func TestDescriptions_Sorted(t *testing.T) {
	r, _ := newDefault(t)
	all := r.Descriptions()
	require.Len(t, all, len(catalog.Exceptions())+len(catalog.Bases()))
	for i := 1; i < len(all); i++ {
		assert.Less(t, string(all[i-1].Kind), string(all[i].Kind))
	}

	d, ok := r.Lookup(kind.PasswordTooWeak)
	require.True(t, ok)
	v := d.Descriptor()
	assert.Equal(t, "user.password_too_weak", v.Kind)
	assert.Equal(t, "http.bad_request", v.Parent)
	assert.Equal(t, 40496, v.CustomCode)
	assert.Equal(t, 400, v.HTTPStatus)
	assert.Equal(t, "Password is too weak.", v.Message)
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	r, _ := newDefault(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				name := fmt.Sprintf("load.w%d.k%d", i, j)
				assert.NoError(t, r.RegisterName(name, "x", 60000+i*100+j, 400, false))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, kind.BadRequest, errcatalog.KindOf(r.ByHTTPStatus(400, "")))
				_ = r.Descriptions()
			}
		}()
	}
	wg.Wait()
	assert.True(t, r.ExistsByCustomCode(60749))
}
