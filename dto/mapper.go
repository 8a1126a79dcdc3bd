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

package dto

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/apis"
)

// DefaultMaxDepth caps the cause nesting of FromError.
const DefaultMaxDepth = 32

// Option configures FromError.
type Option func(*options)

type options struct {
	stack    bool
	skip     int
	maxDepth int
}

// WithStackTrace records the stack of the caller of FromError on the
// outermost record. skip drops that many additional frames.
func WithStackTrace(skip int) Option {
	return func(o *options) {
		o.stack = true
		o.skip = skip
	}
}

// WithMaxDepth caps the number of records in the cause chain. Values below
// one are ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// FromError maps a live error chain into a Throwable. It returns nil for a
// nil error.
//
// Each level of the Unwrap chain becomes one record. For errors that unwrap
// into several errors (errors.Join) the first one is followed. Wrappers
// without a kind in front of the first kinded error (fmt.Errorf with %w, for
// instance) do not get records of their own: the outermost record is the
// kinded error and its message keeps the wrapper text.
func FromError(err error, opts ...Option) *Throwable {
	if err == nil {
		return nil
	}
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	head := firstKinded(err)
	root := headRecord(err, head)
	if o.stack {
		root.StackTrace = callers(o.skip + 3)
	}

	cur, depth := root, 1
	for next := unwrapFirst(head); next != nil && depth < o.maxDepth; next = unwrapFirst(next) {
		cur.Cause = record(next)
		cur = cur.Cause
		depth++
	}
	return root
}

// MessageFromError maps err into the flat record, or nil for a nil error.
func MessageFromError(err error) *ThrowableMessage {
	if err == nil {
		return nil
	}
	r := headRecord(err, firstKinded(err))
	return &ThrowableMessage{ClassName: r.ClassName, Message: r.Message}
}

// firstKinded returns the first error of the chain that carries a kind, or
// err itself when none does.
func firstKinded(err error) error {
	for cur := err; cur != nil; cur = unwrapFirst(cur) {
		if ke, ok := cur.(apis.KindedError); ok && ke.ErrorKind() != "" {
			return cur
		}
	}
	return err
}

// headRecord is the record of head with the text of the wrappers between
// err and head folded into its message.
func headRecord(err, head error) *Throwable {
	t := record(head)
	if head == err {
		return t
	}
	text := err.Error()
	if inner := head.Error(); t.Message != "" && inner != t.Message && strings.Contains(text, inner) {
		text = strings.Replace(text, inner, t.Message, 1)
	}
	t.Message = text
	return t
}

// ClassName returns the wire class name of err itself (its chain is not
// consulted): the kind for kinded errors, the Go type otherwise.
func ClassName(err error) string {
	if ke, ok := err.(apis.KindedError); ok && ke.ErrorKind() != "" {
		return ke.ErrorKind()
	}
	return fmt.Sprintf("%T", err)
}

func record(err error) *Throwable {
	t := &Throwable{ClassName: ClassName(err)}

	if e, ok := err.(*errcatalog.Error); ok {
		t.Message = e.Message
	} else {
		t.Message = err.Error()
	}

	if c, ok := err.(apis.CustomStatusCoder); ok && c.CustomStatusCode() != 0 {
		t.StatusCode = c.CustomStatusCode()
	} else if h, ok := err.(apis.HTTPStatusCoder); ok {
		t.StatusCode = h.HTTPStatusCode()
	}
	return t
}

func unwrapFirst(err error) error {
	if next := errors.Unwrap(err); next != nil {
		return next
	}
	if m, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range m.Unwrap() {
			if e != nil {
				return e
			}
		}
	}
	return nil
}

func callers(skip int) []StackFrame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs[:n])
	var out []StackFrame
	for {
		f, more := frames.Next()
		class, method := splitFunction(f.Function)
		out = append(out, StackFrame{
			ClassName:  class,
			MethodName: method,
			FileName:   f.File,
			LineNumber: f.Line,
		})
		if !more {
			break
		}
	}
	return out
}

// splitFunction splits "path/pkg.(*T).Method" into "path/pkg.(*T)" and
// "Method".
func splitFunction(fn string) (string, string) {
	slash := strings.LastIndexByte(fn, '/')
	dot := strings.LastIndexByte(fn[slash+1:], '.')
	if dot < 0 {
		return "", fn
	}
	dot += slash + 1
	return fn[:dot], fn[dot+1:]
}
