package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGzipMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"forwarded"}`))
	})

	gzipHandler := GzipMiddleware(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/submit", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rec := httptest.NewRecorder()

	gzipHandler.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Errorf("Expected Content-Encoding to be gzip, got %s", rec.Header().Get("Content-Encoding"))
	}

	reader, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("Failed to create gzip reader: %v", err)
	}
	defer reader.Close()

	body, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read gzipped response: %v", err)
	}

	expected := `{"message":"forwarded"}`
	if string(body) != expected {
		t.Errorf("Expected response body to be %s, got %s", expected, string(body))
	}
}

func TestGzipMiddleware_NoAcceptEncoding(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"forwarded"}`))
	})

	gzipHandler := GzipMiddleware(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/submit", nil)

	rec := httptest.NewRecorder()

	gzipHandler.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") == "gzip" {
		t.Errorf("Expected Content-Encoding not to be gzip")
	}

	body := rec.Body.String()
	expected := `{"message":"forwarded"}`
	if body != expected {
		t.Errorf("Expected response body to be %s, got %s", expected, body)
	}
}

func TestGzipMiddleware_NonCompressibleType(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("binary"))
	})

	gzipHandler := GzipMiddleware(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rec := httptest.NewRecorder()

	gzipHandler.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") == "gzip" {
		t.Errorf("Expected binary content not to be compressed")
	}

	if rec.Body.String() != "binary" {
		t.Errorf("Expected response body to be binary, got %s", rec.Body.String())
	}
}

func TestGzipReader(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})

	gzipHandler := GzipReader(handler)

	var buf bytes.Buffer
	gzWriter := gzip.NewWriter(&buf)
	_, err := gzWriter.Write([]byte(`{"urls":["https://a.com"]}`))
	if err != nil {
		t.Fatalf("Failed to write to gzip writer: %v", err)
	}
	gzWriter.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/submit", &buf)
	req.Header.Set("Content-Encoding", "gzip")

	rec := httptest.NewRecorder()

	gzipHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, rec.Code)
	}

	body := strings.TrimSpace(rec.Body.String())
	expected := `{"urls":["https://a.com"]}`
	if body != expected {
		t.Errorf("Expected response body to be %s, got %s", expected, body)
	}
}

func TestGzipReader_NotGzipped(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})

	gzipHandler := GzipReader(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader("plain body"))

	rec := httptest.NewRecorder()

	gzipHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, rec.Code)
	}

	if rec.Body.String() != "plain body" {
		t.Errorf("Expected response body to be plain body, got %s", rec.Body.String())
	}
}

func TestGzipReader_CorruptBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	gzipHandler := GzipReader(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader("not gzip at all"))
	req.Header.Set("Content-Encoding", "gzip")

	rec := httptest.NewRecorder()

	gzipHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
