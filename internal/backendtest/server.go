package backendtest

import (
	"context"
	"net/http/httptest"
)

// Server is a Backend listening on a local httptest server.
type Server struct {
	*Backend
	HTTP *httptest.Server
}

// NewServer starts a backend on a random local port. Close it when done.
func NewServer(opts ...Option) (*Server, error) {
	b := New(opts...)
	hs := httptest.NewServer(b.Handler())
	if err := b.SetBaseURL(context.Background(), hs.URL); err != nil {
		hs.Close()
		return nil, err
	}
	return &Server{Backend: b, HTTP: hs}, nil
}

// URL is the base URL the client should be pointed at.
func (s *Server) URL() string { return s.HTTP.URL + "/" }

// Version is the API path prefix.
func (s *Server) Version() string { return s.version }

func (s *Server) Close() { s.HTTP.Close() }
