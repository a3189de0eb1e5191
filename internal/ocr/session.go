package ocr

import "sync/atomic"

// Session is the process-wide single-flight guard around OCR. Recognition is
// CPU-bound; a concurrent request that finds the session busy is refused
// immediately instead of queueing.
type Session struct {
	inUse atomic.Bool
}

// TryAcquire claims the session. It returns false without blocking when
// another OCR run holds it.
func (s *Session) TryAcquire() bool {
	return s.inUse.CompareAndSwap(false, true)
}

// Release frees the session. Callers must release on every exit path,
// typically via defer right after a successful TryAcquire.
func (s *Session) Release() {
	s.inUse.Store(false)
}
