package testutil

import (
	"context"
	"net/http"
	"sync"
)

// StubHTTPServer stands in for the server's httpServer. ListenAndServe returns
// ListenErr; Shutdown waits on Block (when set) or the context before returning ShutdownErr.
type StubHTTPServer struct {
	Address     string
	Mux         http.Handler
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}

	mu        sync.Mutex
	listens   int
	shutdowns int
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listens++
	s.mu.Unlock()
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdowns++
	s.mu.Unlock()
	if s.Block != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Block:
		}
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.Address == "" {
		return ":0"
	}
	return s.Address
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.Mux == nil {
		return http.NotFoundHandler()
	}
	return s.Mux
}

// Calls reports how many times ListenAndServe and Shutdown ran.
func (s *StubHTTPServer) Calls() (listens, shutdowns int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listens, s.shutdowns
}
