package authority

import "net/http/httptest"

// HTTPTestServer runs an authority on an httptest server
type HTTPTestServer struct {
	*Service
	Server *httptest.Server
	Issuer string
}

// NewHTTPTestServer starts an authority whose issuer is the test server URL
func NewHTTPTestServer(options ...Option) (*HTTPTestServer, error) {
	service, err := New(options...)
	if err != nil {
		return nil, err
	}
	ret := &HTTPTestServer{Service: service}
	ret.Server = httptest.NewServer(service.Handler())
	service.Issuer = ret.Server.URL
	ret.Issuer = ret.Server.URL
	return ret, nil
}

// Close stops the test server
func (s *HTTPTestServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.Server = nil
}
