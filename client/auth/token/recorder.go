package token

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// maxBodySize matches the token response limit applied by golang.org/x/oauth2
const maxBodySize = 1 << 20

// recorder keeps the last response body seen by a single token request
type recorder struct {
	transport http.RoundTripper
	base      *http.Client
	mux       sync.Mutex
	data      []byte
}

func (r *recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}
	r.mux.Lock()
	r.data = data
	r.mux.Unlock()
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return resp, nil
}

func (r *recorder) body() []byte {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.data
}

// client returns a copy of the base client routed through the recorder
func (r *recorder) client() *http.Client {
	ret := *r.base
	ret.Transport = r
	return &ret
}

func newRecorder(base *http.Client) *recorder {
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &recorder{transport: transport, base: base}
}
