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

	"dirpx.dev/errcatalog/apis"
	"dirpx.dev/errcatalog/kind"
)

// Factory builds an error from a message and an optional cause. Returning nil
// means the factory cannot build the error; the registry then tries the
// parent kind.
type Factory func(message string, cause error) error

// Description is one registry entry.
type Description struct {
	// Kind identifies the entry. Required.
	Kind kind.Kind

	// Parent is consulted when Factory is nil or declines. Optional.
	Parent kind.Kind

	// DefaultMessage is used by lookups that are not given a message.
	DefaultMessage string

	// CustomCode is the application specific status code; zero means not set.
	CustomCode int

	// HTTPStatus is the HTTP status; zero means not set.
	HTTPStatus int

	// Factory builds the error. Optional when Parent leads to a factory.
	Factory Factory
}

// Descriptor returns the transport-friendly view of d.
func (d Description) Descriptor() apis.ErrorDescriptor {
	return apis.ErrorDescriptor{
		Kind:       string(d.Kind),
		Parent:     string(d.Parent),
		CustomCode: d.CustomCode,
		HTTPStatus: d.HTTPStatus,
		Message:    d.DefaultMessage,
	}
}

func (d Description) validate() error {
	if err := kind.Validate(d.Kind); err != nil {
		return fmt.Errorf("%w: kind %q: %v", ErrInvalidDescription, d.Kind, err)
	}
	if d.CustomCode < 0 || d.HTTPStatus < 0 {
		return fmt.Errorf("%w: negative status code for %q", ErrInvalidDescription, d.Kind)
	}
	if d.Parent == kind.Empty {
		return nil
	}
	if err := kind.Validate(d.Parent); err != nil {
		return fmt.Errorf("%w: parent %q: %v", ErrInvalidDescription, d.Parent, err)
	}
	if d.Parent == d.Kind {
		return fmt.Errorf("%w: kind %q is its own parent", ErrInvalidDescription, d.Kind)
	}
	return nil
}

// MessageOnly adapts a constructor that only takes a message. The cause, if
// any, is attached so that errors.Is and errors.As reach both the built error
// and the cause.
func MessageOnly(fn func(message string) error) Factory {
	return func(message string, cause error) error {
		err := fn(message)
		if err == nil || cause == nil {
			return err
		}
		return &attached{err: err, cause: cause}
	}
}

// CauseOnly adapts a constructor that only takes a cause. A non-empty message
// replaces the text of the built error.
func CauseOnly(fn func(cause error) error) Factory {
	return func(message string, cause error) error {
		err := fn(cause)
		if err == nil || message == "" {
			return err
		}
		return &attached{err: err, msg: message, cause: cause}
	}
}

// attached decorates an error built by an adapted constructor with the part
// the constructor could not take. Identity (Is, As, kind, codes) is the one
// of err; Unwrap continues with cause.
type attached struct {
	err   error
	msg   string
	cause error
}

func (a *attached) Error() string {
	if a.msg != "" {
		return a.msg
	}
	return a.err.Error()
}

func (a *attached) Unwrap() error { return a.cause }

func (a *attached) Is(target error) bool { return errors.Is(a.err, target) }

func (a *attached) As(target any) bool { return errors.As(a.err, target) }

func (a *attached) ErrorKind() string {
	if ke, ok := a.err.(apis.KindedError); ok {
		return ke.ErrorKind()
	}
	return ""
}

func (a *attached) CustomStatusCode() int {
	if c, ok := a.err.(apis.CustomStatusCoder); ok {
		return c.CustomStatusCode()
	}
	return 0
}

func (a *attached) HTTPStatusCode() int {
	if h, ok := a.err.(apis.HTTPStatusCoder); ok {
		return h.HTTPStatusCode()
	}
	return 0
}
