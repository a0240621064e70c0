// Package iterator provides the lazy, cursor-driven sequence abstraction
// the SDK uses for paged query results and hierarchy traversals.
//
// A Seq is the restartable definition of a sequence: every call to
// Iterate, Collect or ForEach starts a fresh pass that fetches pages on
// demand. A single Iterator is forward-only and buffers at most one page.
package iterator

import (
	"context"
	"errors"
)

// ErrDone is returned by Iterator.Next when the sequence is exhausted.
var ErrDone = errors.New("iterator done")

// PageFunc fetches one page for the given cursor. An empty cursor means
// "start". The returned cursor is only consulted when hasMore is true.
type PageFunc[T any] func(ctx context.Context, cursor string) (items []T, next string, hasMore bool, err error)

// NextFunc yields one item at a time and returns ErrDone when exhausted.
type NextFunc[T any] func(ctx context.Context) (T, error)

// Seq is a restartable sequence definition.
type Seq[T any] struct {
	source func() NextFunc[T]
	limit  int // <0 means unbounded
}

// New builds a Seq over a cursor-paged fetch function.
func New[T any](fetch PageFunc[T]) *Seq[T] {
	return &Seq[T]{
		limit: -1,
		source: func() NextFunc[T] {
			p := &pager[T]{fetch: fetch, hasMore: true}
			return p.next
		},
	}
}

// FromNext builds a Seq from a factory of pull functions, for sources that
// are not page-shaped, such as tree traversals. The factory is invoked once
// per iteration so the definition stays restartable.
func FromNext[T any](factory func() NextFunc[T]) *Seq[T] {
	return &Seq[T]{source: factory, limit: -1}
}

// FromSlice builds a Seq over a fixed slice.
func FromSlice[T any](items []T) *Seq[T] {
	return FromNext(func() NextFunc[T] {
		i := 0
		return func(ctx context.Context) (T, error) {
			var zero T
			if err := ctx.Err(); err != nil {
				return zero, err
			}
			if i >= len(items) {
				return zero, ErrDone
			}
			item := items[i]
			i++
			return item, nil
		}
	})
}

// Limit returns a derived definition that stops after n items. The
// receiver is unchanged.
func (s *Seq[T]) Limit(n int) *Seq[T] {
	return &Seq[T]{source: s.source, limit: n}
}

// Iterate starts a fresh forward-only iteration.
func (s *Seq[T]) Iterate() *Iterator[T] {
	return &Iterator[T]{next: s.source(), remaining: s.limit}
}

// Collect materializes every remaining item. The caller is responsible for
// bounding the result, typically via Limit.
func (s *Seq[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	err := s.ForEach(ctx, func(item T) error {
		out = append(out, item)
		return nil
	})
	return out, err
}

// ForEach pulls items one at a time until exhaustion, an error, or fn
// returning an error.
func (s *Seq[T]) ForEach(ctx context.Context, fn func(T) error) error {
	it := s.Iterate()
	defer it.Stop()
	for {
		item, err := it.Next(ctx)
		if errors.Is(err, ErrDone) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
	}
}

// Batches returns a derived sequence of fixed-size chunks. The final chunk
// may be short. size must be positive.
//
// It is a free function rather than a method because a method would
// instantiate Seq[[]T] from Seq[T], which the compiler rejects as an
// instantiation cycle.
func Batches[T any](s *Seq[T], size int) *Seq[[]T] {
	return FromNext(func() NextFunc[[]T] {
		it := s.Iterate()
		done := false
		return func(ctx context.Context) ([]T, error) {
			if done {
				return nil, ErrDone
			}
			chunk := make([]T, 0, size)
			for len(chunk) < size {
				item, err := it.Next(ctx)
				if errors.Is(err, ErrDone) {
					done = true
					break
				}
				if err != nil {
					return nil, err
				}
				chunk = append(chunk, item)
			}
			if len(chunk) == 0 {
				return nil, ErrDone
			}
			return chunk, nil
		}
	})
}

// Iterator is one in-progress pass over a Seq.
type Iterator[T any] struct {
	next      NextFunc[T]
	remaining int // <0 means unbounded
	stopped   bool
}

// Next returns the next item, ErrDone at the end of the sequence, or the
// first error the underlying source produced. After an error the iterator
// stays terminated; items yielded before the error remain valid.
func (it *Iterator[T]) Next(ctx context.Context) (T, error) {
	var zero T
	if it.stopped {
		return zero, ErrDone
	}
	if it.remaining == 0 {
		it.Stop()
		return zero, ErrDone
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	item, err := it.next(ctx)
	if err != nil {
		it.stopped = true
		return zero, err
	}
	if it.remaining > 0 {
		it.remaining--
	}
	return item, nil
}

// Stop terminates the iteration. Further Next calls return ErrDone.
func (it *Iterator[T]) Stop() {
	it.stopped = true
}

// pager buffers one page at a time. Fetching the next page is the only
// point where the sequence suspends.
type pager[T any] struct {
	fetch   PageFunc[T]
	buf     []T
	cursor  string
	hasMore bool
}

func (p *pager[T]) next(ctx context.Context) (T, error) {
	var zero T
	for len(p.buf) == 0 {
		if !p.hasMore {
			return zero, ErrDone
		}
		items, next, more, err := p.fetch(ctx, p.cursor)
		if err != nil {
			return zero, err
		}
		p.buf = items
		p.cursor = next
		p.hasMore = more
	}
	item := p.buf[0]
	p.buf = p.buf[1:]
	return item, nil
}
