package testkit

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
)

// Server runs a handler on a loopback address that survives Stop/Restart
type Server struct {
	URL     string
	addr    string
	handler http.Handler
	mux     sync.Mutex
	server  *http.Server
	done    chan error
}

// Running returns true when the server accepts connections
func (s *Server) Running() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.server != nil
}

// Stop closes the listener and all connections, like killing the process owning the port.
// It returns the close error joined with any error that ended serving early.
func (s *Server) Stop() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.server == nil {
		return nil
	}
	err := s.server.Close()
	serveErr := <-s.done
	s.server = nil
	return errors.Join(err, serveErr)
}

// Restart starts serving again on the original port
func (s *Server) Restart() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.server != nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %v: %w", s.addr, err)
	}
	s.serve(listener)
	return nil
}

func (s *Server) serve(listener net.Listener) {
	s.server = &http.Server{Handler: s.handler}
	s.done = make(chan error, 1)
	go func(server *http.Server, done chan error) {
		err := server.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			err = fmt.Errorf("failed to serve %v: %w", s.addr, err)
		}
		done <- err
	}(s.server, s.done)
}

// reserve binds a loopback port so the URL is known before the handler is built
func reserve() (net.Listener, string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, "", fmt.Errorf("failed to listen: %w", err)
	}
	return listener, "http://" + listener.Addr().String(), nil
}

func newServer(listener net.Listener, URL string, handler http.Handler) *Server {
	ret := &Server{URL: URL, addr: listener.Addr().String(), handler: handler}
	ret.serve(listener)
	return ret
}
