package async

import (
	"context"
	"sync"
	"time"
)

// Future holds the eventual result of a computation started with Async.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await blocks until the computation finishes and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout blocks until the computation finishes or the timeout
// elapses, in which case it returns ErrTimeout.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the computation has finished without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn in a new goroutine and returns a Future for its result.
// A pre-canceled context short-circuits with ctx.Err() before fn runs.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		res, err := fn(ctx, param)

		f.once.Do(func() {
			f.result = res
			f.err = err
		})
	}()

	return f
}

// Result pairs a future's value with the error it settled with.
type Result[U any] struct {
	Value U
	Err   error
}

// SettleAll waits for every future to settle and returns one Result per
// future, in input order. Unlike WaitAll it never short-circuits: a failed
// future does not prevent the remaining results from being collected, so
// callers always observe the outcome of every concurrent task.
func SettleAll[U any](futures ...*Future[U]) []Result[U] {
	results := make([]Result[U], len(futures))
	for i, future := range futures {
		results[i].Value, results[i].Err = future.Await()
	}
	return results
}

// WaitAll waits for all futures to complete and returns their results
// along with the first error encountered, if any. All futures are awaited
// even when an earlier one fails.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var firstErr error

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}
