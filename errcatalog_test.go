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

package errcatalog

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"dirpx.dev/errcatalog/kind"
)

func TestError_Basics(t *testing.T) {
	e := E(kind.PasswordTooWeak, "too short",
		Codes(40496, 400),
		Detail("min_length", 12),
	)

	if e.Kind != kind.PasswordTooWeak {
		t.Fatal("kind mismatch")
	}
	if e.CustomStatusCode() != 40496 || e.HTTPStatusCode() != 400 {
		t.Fatalf("codes = %d/%d", e.CustomStatusCode(), e.HTTPStatusCode())
	}
	if e.Details["min_length"] != 12 {
		t.Fatal("detail missing")
	}

	s := e.Error()
	for _, sub := range []string{"user.password_too_weak", "too short"} {
		if !strings.Contains(s, sub) {
			t.Fatalf("Error() missing %q in %q", sub, s)
		}
	}
	if got := E(kind.NotFound, "").Error(); got != "http.not_found" {
		t.Fatalf("Error() without message = %q", got)
	}
}

func TestError_Immutability_CopyOnWrite(t *testing.T) {
	e1 := E(kind.BadRequest, "bad").WithDetail("k1", 1)
	e2 := e1.WithDetail("k2", 2)
	e3 := e2.WithCodes(40400, 400).WithMessage("worse")

	if len(e1.Details) != 1 || len(e2.Details) != 2 {
		t.Fatal("details size mismatch")
	}
	if _, ok := e1.Details["k2"]; ok {
		t.Fatal("original mutated")
	}
	if e2.CustomCode != 0 || e2.Message != "bad" {
		t.Fatal("WithCodes/WithMessage mutated the receiver")
	}
	if e3.CustomCode != 40400 || e3.Message != "worse" {
		t.Fatal("WithCodes/WithMessage did not apply")
	}
}

func TestError_WithCause_Unwrap(t *testing.T) {
	root := errors.New("root")
	e := E(kind.Internal, "x").WithCause(root)
	if !errors.Is(e, root) {
		t.Fatal("errors.Is failed")
	}
	if errors.Unwrap(e) != root {
		t.Fatal("Unwrap failed")
	}
	if e.WithCause(nil) != e {
		t.Fatal("WithCause(nil) must return the receiver")
	}
}

func TestError_WithDetails_Merge(t *testing.T) {
	e := E(kind.BadRequest, "x").WithDetails(map[string]any{"a": 1})
	e2 := e.WithDetails(map[string]any{"b": 2, "a": 3})
	if e.Details["a"] != 1 {
		t.Fatal("original mutated")
	}
	if e2.Details["a"] != 3 || e2.Details["b"] != 2 {
		t.Fatal("merge failed")
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("load user: %w", E(kind.NotFound, "user 42").WithCodes(40404, 404))

	if !errors.Is(err, E(kind.NotFound, "")) {
		t.Fatal("errors.Is must match on kind")
	}
	if errors.Is(err, E(kind.Gone, "")) {
		t.Fatal("errors.Is must not match a different kind")
	}
}

func TestFactory(t *testing.T) {
	cause := errors.New("io")
	err := Factory(kind.ServiceUnavailable, 50503, 503)("try later", cause)

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("Factory result is %T", err)
	}
	if e.Kind != kind.ServiceUnavailable || e.CustomCode != 50503 || e.HTTPStatus != 503 {
		t.Fatalf("unexpected error %+v", e)
	}
	if e.Message != "try later" || !errors.Is(err, cause) {
		t.Fatal("message or cause lost")
	}
}

func TestEnsure(t *testing.T) {
	if Ensure(nil) != nil {
		t.Fatal("Ensure(nil) must be nil")
	}

	inner := E(kind.Conflict, "version mismatch")
	if got := Ensure(fmt.Errorf("wrap: %w", inner)); got != inner {
		t.Fatalf("Ensure must return the *Error in the chain, got %v", got)
	}

	plain := errors.New("disk full")
	got := Ensure(plain)
	if got.Kind != kind.Generic || got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected wrap %+v", got)
	}
	if got.Message != "disk full" || !errors.Is(got, plain) {
		t.Fatal("wrapped error lost message or cause")
	}
}

type quotaError struct{}

func (quotaError) Error() string { return "quota exceeded" }
func (quotaError) ErrorKind() string { return "Billing/Quota" }
func (quotaError) CustomStatusCode() int { return 42900 }
func (quotaError) HTTPStatusCode() int { return 429 }

func TestAccessorsWalkTheChain(t *testing.T) {
	err := fmt.Errorf("charge: %w", quotaError{})

	if got := KindOf(err); got != kind.Kind("billing.quota") {
		t.Fatalf("KindOf = %q", got)
	}
	if got := CustomCodeOf(err); got != 42900 {
		t.Fatalf("CustomCodeOf = %d", got)
	}
	if got := HTTPStatusOf(err); got != 429 {
		t.Fatalf("HTTPStatusOf = %d", got)
	}

	plain := errors.New("plain")
	if KindOf(plain) != kind.Empty || CustomCodeOf(plain) != 0 || HTTPStatusOf(plain) != 0 {
		t.Fatal("plain errors must report zero values")
	}
}

func TestOptions_RunInOrder(t *testing.T) {
	root := errors.New("disk full")
	e := E(kind.Internal, "ignored",
		Messagef("write %s failed", "ledger"),
		Details(map[string]any{"file": "ledger.db", "attempt": 1}),
		Detail("attempt", 2),
		CausedBy(root),
	)
	if e.Message != "write ledger failed" {
		t.Fatalf("Message = %q", e.Message)
	}
	if e.Details["attempt"] != 2 || e.Details["file"] != "ledger.db" {
		t.Fatalf("Details = %v", e.Details)
	}
	if !errors.Is(e, root) {
		t.Fatalf("cause not reachable")
	}
}
