/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package load

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPFetcher_Success(t *testing.T) {
	body := `{"color": {"$value": "#fff", "$type": "color"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(DefaultMaxSize)
	content, err := f.Fetch(context.Background(), srv.URL+"/tokens.json")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(content) != body {
		t.Errorf("Fetch() = %q, want %q", string(content), body)
	}
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("too late"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(DefaultMaxSize)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, srv.URL+"/tokens.json")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") && !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("expected timeout error, got: %v", err)
	}
}

func TestHTTPFetcher_MaxSizeExceeded(t *testing.T) {
	// Response is 100 bytes, limit to 50
	body := strings.Repeat("x", 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(50)
	_, err := f.Fetch(context.Background(), srv.URL+"/tokens.json")
	if err == nil {
		t.Fatal("expected max size error")
	}
	if !strings.Contains(err.Error(), "exceeds maximum size") {
		t.Errorf("expected max size error, got: %v", err)
	}
}

func TestHTTPFetcher_Non200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(DefaultMaxSize)
	_, err := f.Fetch(context.Background(), srv.URL+"/tokens.json")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected 404 in error, got: %v", err)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"tokens.json", false},
		{"/abs/tokens.json", false},
		{"https://example.com/tokens.json", true},
		{"http://localhost:8080/tokens.json", true},
		{"httpdocs/tokens.json", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.input); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHTTPFetcher_UserAgent(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	if _, err := NewHTTPFetcher(DefaultMaxSize).Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.HasPrefix(agent, "tincture/") {
		t.Errorf("User-Agent = %q, want tincture/ prefix", agent)
	}
}

func TestHTTPFetcher_AuthToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	if _, err := NewHTTPFetcher(DefaultMaxSize, WithAuthToken("s3cret")).Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if auth != "Bearer s3cret" {
		t.Errorf("Authorization = %q, want %q", auth, "Bearer s3cret")
	}

	if _, err := NewHTTPFetcher(DefaultMaxSize, WithAuthToken("")).Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if auth != "" {
		t.Errorf("expected no Authorization header, got %q", auth)
	}
}

func TestHTTPFetcher_Unauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "denied", status)
		}))

		_, err := NewHTTPFetcher(DefaultMaxSize).Fetch(context.Background(), srv.URL)
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("status %d: expected ErrUnauthorized, got %v", status, err)
		} else if !strings.Contains(err.Error(), "set TINCTURE_AUTH_TOKEN") {
			t.Errorf("status %d: expected a hint, got %v", status, err)
		}

		_, err = NewHTTPFetcher(DefaultMaxSize, WithAuthToken("stale")).Fetch(context.Background(), srv.URL)
		if err == nil || !strings.Contains(err.Error(), "check TINCTURE_AUTH_TOKEN") {
			t.Errorf("status %d: expected a hint to check the token, got %v", status, err)
		}
		srv.Close()
	}
}

func TestHTTPFetcher_RejectsHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<!DOCTYPE html><title>Sign in</title>"))
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(DefaultMaxSize).Fetch(context.Background(), srv.URL+"/blob/main/tokens.json")
	if !errors.Is(err, ErrNotExport) {
		t.Fatalf("expected ErrNotExport, got %v", err)
	}
	if !strings.Contains(err.Error(), "raw file URL") {
		t.Errorf("expected a hint, got %v", err)
	}
}

func TestHTTPFetcher_YAMLExport(t *testing.T) {
	body := "Primitives/Mode 1:\n  White:\n    value: '#ffffff'\n    type: color\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	content, err := NewHTTPFetcher(DefaultMaxSize).Fetch(context.Background(), srv.URL+"/tokens.yaml")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(content) != body {
		t.Errorf("Fetch() = %q, want %q", string(content), body)
	}
}
