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
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"dirpx.dev/errcatalog"
	"dirpx.dev/errcatalog/catalog"
	"dirpx.dev/errcatalog/kind"
)

var (
	// ErrDuplicateKind is returned by Register when the kind is already
	// registered and replacing was not requested.
	ErrDuplicateKind = errors.New("registry: duplicate kind")
	// ErrDuplicateCustomCode is returned by Register when the custom status
	// code is already taken and replacing was not requested.
	ErrDuplicateCustomCode = errors.New("registry: duplicate custom status code")
	// ErrInvalidDescription is returned for descriptions with a malformed
	// kind, parent or status code.
	ErrInvalidDescription = errors.New("registry: invalid description")
	// ErrNoFactory is returned when neither the description nor any of its
	// registered ancestors has a factory.
	ErrNoFactory = errors.New("registry: no factory in parent chain")
)

// Registry maps kinds, custom status codes and HTTP statuses to error
// descriptions. The zero value is not usable; call New or NewDefault.
type Registry struct {
	log logrus.FieldLogger

	// mu guards the three tables below. They are always updated together.
	mu       sync.RWMutex
	byKind   map[kind.Kind]Description
	byCustom map[int]kind.Kind
	// byHTTP buckets are sorted ascending by custom code (unset counts as
	// zero) and stable for equal codes.
	byHTTP map[int][]Description
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for fallbacks and registration events.
// The default is logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		log:      logrus.StandardLogger(),
		byKind:   make(map[kind.Kind]Description),
		byCustom: make(map[int]kind.Kind),
		byHTTP:   make(map[int][]Description),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefault returns a registry preloaded with catalog.Bases and
// catalog.Exceptions. Every entry is built by errcatalog.Factory.
func NewDefault(opts ...Option) (*Registry, error) {
	r := New(opts...)
	entries := append(catalog.Bases(), catalog.Exceptions()...)
	for _, e := range entries {
		d := Description{
			Kind:           e.Kind,
			Parent:         e.Parent,
			DefaultMessage: e.DefaultMessage,
			CustomCode:     e.CustomCode,
			HTTPStatus:     e.HTTPStatus,
			Factory:        errcatalog.Factory(e.Kind, e.CustomCode, e.HTTPStatus),
		}
		if err := r.Register(d, false); err != nil {
			return nil, fmt.Errorf("registry: load catalog: %w", err)
		}
	}
	return r, nil
}

// Register inserts d, or replaces the description of the same kind when
// replaceDuplicates is set. Without replaceDuplicates an already registered
// kind or custom status code is an error.
//
// Replacing removes the old custom code and HTTP bucket associations first.
// A custom code taken over from another kind is moved to d.
func (r *Registry) Register(d Description, replaceDuplicates bool) error {
	if err := d.validate(); err != nil {
		r.log.WithField("kind", d.Kind).WithError(err).Error("registering error kind failed")
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !replaceDuplicates {
		if _, ok := r.byKind[d.Kind]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateKind, d.Kind)
		}
		if _, ok := r.byCustom[d.CustomCode]; ok && d.CustomCode != 0 {
			return fmt.Errorf("%w: %d", ErrDuplicateCustomCode, d.CustomCode)
		}
	}
	if !r.hasFactoryLocked(d) {
		return fmt.Errorf("%w: %q", ErrNoFactory, d.Kind)
	}

	if old, ok := r.byKind[d.Kind]; ok {
		r.unlinkLocked(old)
	}
	if owner, ok := r.byCustom[d.CustomCode]; ok && d.CustomCode != 0 && owner != d.Kind {
		r.releaseCodeLocked(r.byKind[owner])
	}
	r.linkLocked(d)

	r.log.WithFields(logrus.Fields{
		"kind":        d.Kind,
		"custom_code": d.CustomCode,
		"http_status": d.HTTPStatus,
	}).Debug("error kind registered")
	return nil
}

// RegisterError registers the kind of err, taking the default message and
// the status codes from err itself. The factory builds *errcatalog.Error
// values of that kind.
func (r *Registry) RegisterError(err error, replaceDuplicates bool) error {
	if err == nil {
		return fmt.Errorf("%w: nil error", ErrInvalidDescription)
	}
	k := errcatalog.KindOf(err)
	if k == kind.Empty {
		return fmt.Errorf("%w: %T has no kind", ErrInvalidDescription, err)
	}
	d := Description{Kind: k, DefaultMessage: err.Error()}
	if e, ok := err.(*errcatalog.Error); ok {
		d.DefaultMessage = e.Message
	}
	d.CustomCode = errcatalog.CustomCodeOf(err)
	d.HTTPStatus = errcatalog.HTTPStatusOf(err)
	d.Factory = errcatalog.Factory(k, d.CustomCode, d.HTTPStatus)
	return r.Register(d, replaceDuplicates)
}

// RegisterName registers a kind given by name. The name is normalized; an
// unparsable name is logged and returned as ErrInvalidDescription.
func (r *Registry) RegisterName(name, defaultMessage string, customCode, httpStatus int, replaceDuplicates bool) error {
	k, err := kind.Parse(name)
	if err != nil {
		err = fmt.Errorf("%w: %q: %v", ErrInvalidDescription, name, err)
		r.log.WithField("kind", name).WithError(err).Error("registering error kind failed")
		return err
	}
	return r.Register(Description{
		Kind:           k,
		DefaultMessage: defaultMessage,
		CustomCode:     customCode,
		HTTPStatus:     httpStatus,
		Factory:        errcatalog.Factory(k, customCode, httpStatus),
	}, replaceDuplicates)
}

// ExistsByKind reports whether k is registered.
func (r *Registry) ExistsByKind(k kind.Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byKind[k]
	return ok
}

// ExistsByCustomCode reports whether a description owns code. Zero is never
// registered.
func (r *Registry) ExistsByCustomCode(code int) bool {
	if code == 0 {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byCustom[code]
	return ok
}

// ExistsByHTTPStatus reports whether at least one description travels with
// status.
func (r *Registry) ExistsByHTTPStatus(status int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byHTTP[status]) > 0
}

// Lookup returns the description of k.
func (r *Registry) Lookup(k kind.Kind) (Description, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byKind[k]
	return d, ok
}

// Descriptions returns a snapshot of all descriptions sorted by kind.
func (r *Registry) Descriptions() []Description {
	r.mu.RLock()
	out := make([]Description, 0, len(r.byKind))
	for _, d := range r.byKind {
		out = append(out, d)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b Description) int {
		return cmp.Compare(a.Kind, b.Kind)
	})
	return out
}

// hasFactoryLocked reports whether d, placed into the table, reaches a
// factory through its parent chain.
func (r *Registry) hasFactoryLocked(d Description) bool {
	seen := map[kind.Kind]bool{d.Kind: true}
	cur := d
	for cur.Factory == nil {
		if cur.Parent == kind.Empty || seen[cur.Parent] {
			return false
		}
		next, ok := r.byKind[cur.Parent]
		if !ok {
			return false
		}
		seen[next.Kind] = true
		cur = next
	}
	return true
}

// linkLocked stores d in all three tables.
func (r *Registry) linkLocked(d Description) {
	r.byKind[d.Kind] = d
	if d.CustomCode != 0 {
		r.byCustom[d.CustomCode] = d.Kind
	}
	if d.HTTPStatus != 0 {
		bucket := append(r.byHTTP[d.HTTPStatus], d)
		slices.SortStableFunc(bucket, func(a, b Description) int {
			return cmp.Compare(a.CustomCode, b.CustomCode)
		})
		r.byHTTP[d.HTTPStatus] = bucket
	}
}

// releaseCodeLocked drops the custom code of prev, which is moving to
// another kind. Errors built for prev no longer carry the code.
func (r *Registry) releaseCodeLocked(prev Description) {
	r.unlinkLocked(prev)
	code := prev.CustomCode
	prev.CustomCode = 0
	if f := prev.Factory; f != nil {
		prev.Factory = func(msg string, cause error) error {
			err := f(msg, cause)
			if e, ok := err.(*errcatalog.Error); ok && e.CustomCode == code {
				return e.WithCodes(0, e.HTTPStatus)
			}
			return err
		}
	}
	r.linkLocked(prev)
	r.log.WithFields(logrus.Fields{
		"kind":        prev.Kind,
		"custom_code": code,
	}).Warn("custom code moved to another kind")
}

// unlinkLocked removes the custom code and HTTP bucket entries of old.
func (r *Registry) unlinkLocked(old Description) {
	if old.CustomCode != 0 && r.byCustom[old.CustomCode] == old.Kind {
		delete(r.byCustom, old.CustomCode)
	}
	if old.HTTPStatus == 0 {
		return
	}
	bucket := slices.DeleteFunc(r.byHTTP[old.HTTPStatus], func(d Description) bool {
		return d.Kind == old.Kind
	})
	if len(bucket) == 0 {
		delete(r.byHTTP, old.HTTPStatus)
		return
	}
	r.byHTTP[old.HTTPStatus] = bucket
}
