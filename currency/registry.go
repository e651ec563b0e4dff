// currency/registry.go
package currency

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	apperrors "github.com/dalemusser/amountwords/pantry/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Registry is a concurrency-safe catalog of currencies.
//
// Readers load an immutable snapshot and never block. Writers are
// serialized, build a new snapshot and publish it with one atomic store, so
// a reader observes either the state before a write or the state after it.
type Registry struct {
	mu     sync.Mutex // serializes writers
	snap   atomic.Pointer[[]Currency]
	logger *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry mutations.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	empty := []Currency{}
	r.snap.Store(&empty)
	return r
}

// NewDefaultRegistry returns a registry holding the built-in currencies.
func NewDefaultRegistry(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	if err := r.RegisterAll(Builtins()...); err != nil {
		// Built-ins are complete and distinct.
		panic(err)
	}
	return r
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that every word form and gender of c is set.
// It returns a validation *errors.Error listing the missing fields.
func Validate(c Currency) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !apperrors.As(err, &fieldErrs) {
		return apperrors.Validation("currency definition is invalid").Wrap(err)
	}

	ve := apperrors.NewValidationErrors()
	for _, fe := range fieldErrs {
		ve.AddWithCode(fieldPath(fe.Namespace()), fieldMessage(fe), fe.Tag())
	}
	return ve.ToError(fmt.Sprintf("currency %s is incomplete", c))
}

// fieldPath drops the leading struct name: "Currency.integer.one" → "integer.one".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

func (r *Registry) load() []Currency {
	return *r.snap.Load()
}

// Register validates c and stores a copy of it.
//
// It fails with a validation error when a word form or gender is unset and
// with a conflict error when the code or name is already registered. A
// failed call leaves the registry unchanged.
func (r *Registry) Register(c Currency) error {
	return r.RegisterAll(c)
}

// RegisterAll registers a batch of currencies atomically: either every
// currency is added or none is.
func (r *Registry) RegisterAll(cs ...Currency) error {
	for _, c := range cs {
		if err := Validate(c); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.load()
	next := make([]Currency, len(cur), len(cur)+len(cs))
	copy(next, cur)

	for _, c := range cs {
		if err := conflictIn(next, c); err != nil {
			return err
		}
		next = append(next, c)
	}

	r.snap.Store(&next)
	for _, c := range cs {
		r.logger.Info("currency registered",
			zap.Int("code", c.Code),
			zap.String("name", c.Name))
	}
	return nil
}

func conflictIn(list []Currency, c Currency) error {
	for _, e := range list {
		if e.Code == c.Code {
			return apperrors.Conflict(fmt.Sprintf("currency code %d is already registered as %s", c.Code, e.Name)).
				WithDetail("code", c.Code)
		}
		if sameName(e.Name, c.Name) {
			return apperrors.Conflict(fmt.Sprintf("currency name %q is already registered with code %d", c.Name, e.Code)).
				WithDetail("name", c.Name)
		}
	}
	return nil
}

// Unregister removes the currency with c's code. It reports whether one was
// removed.
func (r *Registry) Unregister(c Currency) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.load()
	idx := -1
	for i, e := range cur {
		if e.Equal(c) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	next := make([]Currency, 0, len(cur)-1)
	next = append(next, cur[:idx]...)
	next = append(next, cur[idx+1:]...)
	r.snap.Store(&next)

	r.logger.Info("currency unregistered",
		zap.Int("code", cur[idx].Code),
		zap.String("name", cur[idx].Name))
	return true
}

// ByCode returns the currency registered under code.
func (r *Registry) ByCode(code int) (Currency, bool) {
	for _, c := range r.load() {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// ByName returns the currency registered under name. Names compare
// case-insensitively.
func (r *Registry) ByName(name string) (Currency, bool) {
	for _, c := range r.load() {
		if sameName(c.Name, name) {
			return c, true
		}
	}
	return Currency{}, false
}

// List returns a copy of the registered currencies in registration order.
func (r *Registry) List() []Currency {
	cur := r.load()
	out := make([]Currency, len(cur))
	copy(out, cur)
	return out
}

// Len returns the number of registered currencies.
func (r *Registry) Len() int {
	return len(r.load())
}
