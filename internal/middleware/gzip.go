package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// compressibleTypes lists content types worth compressing on the way out.
var compressibleTypes = []string{
	"application/json",
	"text/html",
	"text/plain",
}

// GzipMiddleware compresses eligible responses with gzip when the client
// accepts it. The response is buffered so the Content-Type set by the
// handler decides whether compression applies.
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		buffered := &bufferedResponse{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(buffered, r)

		// The wrapper shares the underlying header map, so headers set by
		// the handler are already in place; only the body is deferred.
		if !compressible(buffered.Header().Get("Content-Type")) {
			w.WriteHeader(buffered.statusCode)
			w.Write(buffered.body)
			return
		}

		gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
		if err != nil {
			w.WriteHeader(buffered.statusCode)
			w.Write(buffered.body)
			return
		}
		defer gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(buffered.statusCode)
		gz.Write(buffered.body)
	})
}

func compressible(contentType string) bool {
	for _, t := range compressibleTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

type bufferedResponse struct {
	http.ResponseWriter
	statusCode int
	body       []byte
}

// WriteHeader captures the status code without immediately writing it.
func (w *bufferedResponse) WriteHeader(statusCode int) {
	w.statusCode = statusCode
}

// Write appends the byte slice to the body buffer.
func (w *bufferedResponse) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return len(b), nil
}

// GzipReader transparently decompresses gzipped request bodies.
func GzipReader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Encoding") != "gzip" {
			next.ServeHTTP(w, r)
			return
		}

		gzReader, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, "Failed to read gzipped request", http.StatusBadRequest)
			return
		}
		defer gzReader.Close()

		r.Body = io.NopCloser(gzReader)
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}
