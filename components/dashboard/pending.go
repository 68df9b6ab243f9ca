package dashboard

import "context"

// Pending tracks the asynchronous persist started by a layout mutation. Callers
// may wait on it or ignore it; the local state is already updated either way.
type Pending struct {
	done    chan struct{}
	err     error
	skipped bool
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// completedPending returns a Pending that is already resolved with err.
func completedPending(err error) *Pending {
	p := newPending()
	p.resolve(err)
	return p
}

// skippedPending marks a mutation that changed nothing and scheduled no write.
func skippedPending() *Pending {
	p := completedPending(nil)
	p.skipped = true
	return p
}

func (p *Pending) resolve(err error) {
	p.err = err
	close(p.done)
}

// Done is closed once the persist finished.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Skipped reports whether the mutation was a no-op that persisted nothing.
func (p *Pending) Skipped() bool {
	return p.skipped
}

// Err returns the persist error. It is only meaningful after Done is closed.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the persist finishes or ctx is done.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
