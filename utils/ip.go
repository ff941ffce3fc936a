package utils

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP prefers the first hop of X-Forwarded-For so access logs show
// the caller rather than the load balancer.
func RealClientIP(r *http.Request) string {
	if xfwd := r.Header.Get("X-Forwarded-For"); xfwd != "" {
		if idx := strings.IndexByte(xfwd, ','); idx >= 0 {
			return strings.TrimSpace(xfwd[:idx])
		}
		return xfwd
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
