package iterator

import (
	"context"
	"errors"
)

// Concat chains sequences end to end. The combined definition is
// restartable whenever every input is.
func Concat[T any](seqs ...*Seq[T]) *Seq[T] {
	return FromNext(func() NextFunc[T] {
		idx := 0
		var cur *Iterator[T]
		return func(ctx context.Context) (T, error) {
			var zero T
			for {
				if cur == nil {
					if idx >= len(seqs) {
						return zero, ErrDone
					}
					cur = seqs[idx].Iterate()
					idx++
				}
				item, err := cur.Next(ctx)
				if errors.Is(err, ErrDone) {
					cur = nil
					continue
				}
				if err != nil {
					return zero, err
				}
				return item, nil
			}
		}
	})
}
