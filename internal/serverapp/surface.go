package serverapp

import (
	"sync"
	"sync/atomic"

	"simplerquests/internal/editor"
)

// requestSurface captures what the editor asked the host to do during one request.
type requestSurface struct {
	mu     sync.Mutex
	last   editor.Data
	closed bool
}

func (s *requestSurface) Render(d editor.Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = d
	return nil
}

func (s *requestSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *requestSurface) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// TrackerFeed counts tracker re-renders so polling clients know when to refresh.
type TrackerFeed struct {
	rev atomic.Int64
}

func (f *TrackerFeed) Render() error {
	f.rev.Add(1)
	return nil
}

func (f *TrackerFeed) Revision() int64 {
	return f.rev.Load()
}
