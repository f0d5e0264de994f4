package taskutil

import (
	"errors"
	"time"

	"github.com/primetalk/goio/io"
)

// SyncTask runs a fallible function synchronously with an optional
// timeout and recover hook. Panics inside the function surface as errors.
type SyncTask[T any] struct {
	fn      func() (*T, error)
	timeout *time.Duration
	recover func(error) T
}

func New[T any](fn func() (*T, error)) *SyncTask[T] {
	return &SyncTask[T]{
		fn: fn,
	}
}

func NewErr(fn func() error) *SyncTask[any] {
	return &SyncTask[any]{
		fn: func() (*any, error) {
			var none any
			if err := fn(); err != nil {
				return nil, err
			}
			return &none, nil
		},
	}
}

func (t *SyncTask[T]) WithTimeout(timeout time.Duration) *SyncTask[T] {
	t.timeout = &timeout
	return t
}

func (t *SyncTask[T]) Recover(fn func(error) T) *SyncTask[T] {
	t.recover = fn
	return t
}

func (t *SyncTask[T]) Run() (T, error) {
	bgFn := io.Eval(t.fn)
	bg := io.Map(bgFn, func(a *T) T {
		if a != nil {
			return *a
		}
		panic(errors.New("result is nil"))
	})
	if t.timeout != nil {
		bg = io.WithTimeout[T](*t.timeout)(bg)
	}
	result := io.RunSync(bg)
	if result.Error != nil {
		if t.recover != nil {
			return t.recover(result.Error), nil
		}
		var zero T
		return zero, result.Error
	}
	return result.Value, nil
}
