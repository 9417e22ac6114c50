// Package seq implements a pull-based, fallible-stream iterator idiom:
// each Next performs bounded work and propagates the first error in-band,
// then the stream is done.
package seq

// Seq is a single-consumer stream of (T, error) pairs. Next returns
// ok == false once the stream is exhausted. Once Next returns a non-nil
// error, the stream is considered terminated: callers must not call Next
// again.
type Seq[T any] interface {
	Next() (item T, ok bool, err error)
}

// Func adapts a plain closure into a Seq.
type Func[T any] func() (T, bool, error)

func (f Func[T]) Next() (T, bool, error) { return f() }

// Of builds a Seq that yields the given items in order and then ends.
func Of[T any](items ...T) Seq[T] {
	i := 0
	return Func[T](func() (T, bool, error) {
		var zero T
		if i >= len(items) {
			return zero, false, nil
		}
		v := items[i]
		i++
		return v, true, nil
	})
}

// Empty returns a Seq that yields nothing.
func Empty[T any]() Seq[T] {
	return Func[T](func() (T, bool, error) {
		var zero T
		return zero, false, nil
	})
}

// Chain concatenates seqs in order, advancing to the next once the current
// one is exhausted.
func Chain[T any](seqs ...Seq[T]) Seq[T] {
	i := 0
	return Func[T](func() (T, bool, error) {
		var zero T
		for i < len(seqs) {
			v, ok, err := seqs[i].Next()
			if err != nil {
				return zero, false, err
			}
			if ok {
				return v, true, nil
			}
			i++
		}
		return zero, false, nil
	})
}

// FlatMap maps each item of s to a child Seq and flattens the results,
// stopping at the first error encountered in either level.
func FlatMap[T, U any](s Seq[T], f func(T) (Seq[U], error)) Seq[U] {
	var cur Seq[U]
	return Func[U](func() (U, bool, error) {
		var zero U
		for {
			if cur != nil {
				v, ok, err := cur.Next()
				if err != nil {
					return zero, false, err
				}
				if ok {
					return v, true, nil
				}
				cur = nil
			}
			item, ok, err := s.Next()
			if err != nil {
				return zero, false, err
			}
			if !ok {
				return zero, false, nil
			}
			next, err := f(item)
			if err != nil {
				return zero, false, err
			}
			cur = next
		}
	})
}

// Filter keeps only items for which pred returns true. pred's own error is
// propagated and terminates the stream.
func Filter[T any](s Seq[T], pred func(T) (bool, error)) Seq[T] {
	return Func[T](func() (T, bool, error) {
		var zero T
		for {
			v, ok, err := s.Next()
			if err != nil || !ok {
				return zero, ok, err
			}
			keep, err := pred(v)
			if err != nil {
				return zero, false, err
			}
			if keep {
				return v, true, nil
			}
		}
	})
}

// Map transforms every item of s with f. f's error propagates and
// terminates the stream.
func Map[T, U any](s Seq[T], f func(T) (U, error)) Seq[U] {
	return Func[U](func() (U, bool, error) {
		var zero U
		v, ok, err := s.Next()
		if err != nil || !ok {
			return zero, ok, err
		}
		u, err := f(v)
		if err != nil {
			return zero, false, err
		}
		return u, true, nil
	})
}

// Collect drains s into a slice, stopping at the first error.
func Collect[T any](s Seq[T]) ([]T, error) {
	var out []T
	for {
		v, ok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

// Count drains s, discarding items, returning how many were produced.
func Count[T any](s Seq[T]) (int, error) {
	n := 0
	for {
		_, ok, err := s.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// First returns the first item of s, if any.
func First[T any](s Seq[T]) (T, bool, error) {
	return s.Next()
}
