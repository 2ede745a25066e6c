package statements

import "sync"

// ResultBoard holds the latest accepted statement result, keyed by a
// monotonically increasing request token. Period or tab switches can leave
// an older computation in flight; a late result for a superseded token is
// discarded instead of overwriting the newest one.
type ResultBoard struct {
	mu     sync.Mutex
	issued uint64

	accepted uint64
	latest   *Result
}

// Begin issues the next request token. Issuing invalidates every earlier
// in-flight token.
func (b *ResultBoard) Begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.issued++
	return b.issued
}

// Accept publishes a result if its token is still the most recent issued.
// Returns false when the result arrived too late and was dropped.
func (b *ResultBoard) Accept(token uint64, res Result) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if token != b.issued {
		return false
	}
	b.accepted = token
	b.latest = &res
	return true
}

// Latest returns the newest accepted result, if any.
func (b *ResultBoard) Latest() (Result, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latest == nil {
		return Result{}, false
	}
	return *b.latest, true
}
