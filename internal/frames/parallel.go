package frames

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrNoFrames indicates an empty time sequence.
var ErrNoFrames = errors.New("frames: time sequence is empty")

// SampleParallel computes the frames across a bounded pool of workers
// and reassembles them in time order. Frames share no mutable state, so
// the result matches Sample exactly: each frame is computed whole by a
// single goroutine along the same code path.
func (s *Sampler) SampleParallel(ctx context.Context, workers int) (*Result, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	out := make([]Frame, len(s.times))
	errs := make([]error, len(s.times))
	idx := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				out[i], errs[i] = s.frame(i)
			}
		}()
	}

	var ctxErr error
feed:
	for i := range s.times {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case idx <- i:
		}
	}
	close(idx)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return s.finish(out)
}
