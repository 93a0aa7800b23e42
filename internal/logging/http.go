package logging

import (
	"net/http"
	"strings"
	"time"
)

// statusRecorder captures the status code and size written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Middleware logs every request served by next at debug level, and failed
// requests (status >= 500) at warn level.
func Middleware(logger *Logger, component string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, req)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		fields := Fields{
			"component": component,
			"method":    req.Method,
			"path":      req.URL.Path,
			"status":    rec.status,
			"bytes":     rec.bytes,
			"duration":  time.Since(start).String(),
		}

		headers := make(map[string]string)
		for k, v := range req.Header {
			if isSensitiveHeader(k) {
				headers[k] = "[REDACTED]"
			} else if len(v) > 0 {
				headers[k] = v[0]
			}
		}
		if len(headers) > 0 {
			fields["headers"] = headers
		}

		if rec.status >= http.StatusInternalServerError {
			logger.Warn("HTTP request failed", fields)
			return
		}
		logger.Debug("HTTP request", fields)
	})
}

// isSensitiveHeader checks if a header contains credentials
func isSensitiveHeader(name string) bool {
	lower := strings.ToLower(name)
	sensitive := []string{
		"authorization",
		"cookie",
		"set-cookie",
		"x-api-key",
		"api-key",
		"proxy-authorization",
	}
	for _, s := range sensitive {
		if lower == s {
			return true
		}
	}
	return false
}
