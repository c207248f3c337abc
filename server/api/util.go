package api

import (
	"net/http"
	"strings"
)

// baseURL returns the scheme and host the caller used, a reverse proxy may
// report them with X-Forwarded-Proto and X-Forwarded-Host.
func baseURL(r *http.Request) string {
	proto := firstValue(r.Header.Get("X-Forwarded-Proto"))
	if proto == "" {
		proto = "http"
		if r.TLS != nil {
			proto = "https"
		}
	}
	host := firstValue(r.Header.Get("X-Forwarded-Host"))
	if host == "" {
		host = r.Host
	}
	return strings.ToLower(proto) + "://" + host
}

func firstValue(header string) string {
	if idx := strings.IndexByte(header, ','); idx >= 0 {
		header = header[:idx]
	}
	return strings.TrimSpace(header)
}
