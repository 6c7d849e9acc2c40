package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/argwheel/pkg/errors"
)

func testClient() *Client {
	c := NewClient()
	c.Delay = time.Millisecond
	return c
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.org/a.json", true},
		{"http://localhost:8080/", true},
		{"debate.json", false},
		{"/data/debate.json", false},
		{"file:///data/debate.json", false},
		{"https://", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolveURL(t *testing.T) {
	for _, base := range []string{"https://h/debates", "https://h/debates/"} {
		if got := ResolveURL(base, "a b.json"); got != "https://h/debates/a%20b.json" {
			t.Errorf("ResolveURL(%q) = %q", base, got)
		}
	}
}

func TestGetRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"new_nodes": []}`))
	}))
	defer srv.Close()

	data, err := testClient().Get(context.Background(), srv.URL+"/a.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != `{"new_nodes": []}` {
		t.Errorf("body = %q", data)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestGetErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/missing.json":
			http.NotFound(w, r)
		case "/forbidden.json":
			w.WriteHeader(http.StatusForbidden)
		case "/down.json":
			w.WriteHeader(http.StatusBadGateway)
		case "/big.json":
			w.Write([]byte(strings.Repeat("x", 64)))
		}
	}))
	defer srv.Close()

	tests := []struct {
		path  string
		code  errors.Code
		calls int32
	}{
		{"/missing.json", errors.ErrCodeDatasetNotFound, 1},
		{"/forbidden.json", errors.ErrCodeInvalidInput, 1},
		{"/down.json", errors.ErrCodeInternal, DefaultAttempts},
		{"/big.json", errors.ErrCodeInvalidInput, 1},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			calls.Store(0)
			c := testClient()
			c.MaxBytes = 16
			_, err := c.Get(context.Background(), srv.URL+tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
			if calls.Load() != tt.calls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.calls)
			}
		})
	}

	t.Run("not a url", func(t *testing.T) {
		if _, err := testClient().Get(context.Background(), "debate.json"); !errors.Is(err, errors.ErrCodeInvalidPath) {
			t.Errorf("err = %v, want INVALID_PATH", err)
		}
	})
}

func TestGetCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := testClient().Get(ctx, srv.URL+"/a.json"); !errors.Is(err, errors.ErrCodeCanceled) {
		t.Errorf("err = %v, want CANCELED", err)
	}
}

func TestManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/debates/manifest.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"files": ["b.json", "a.json", "b.json"]}`))
	}))
	defer srv.Close()

	names, err := testClient().Manifest(context.Background(), srv.URL+"/debates")
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}
	if want := []string{"b.json", "a.json"}; !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestRetry(t *testing.T) {
	transient := &RetryableError{Err: errors.New(errors.ErrCodeInternal, "flaky")}

	var n int
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		n++
		if n < 2 {
			return transient
		}
		return nil
	})
	if err != nil || n != 2 {
		t.Errorf("Retry = %v after %d calls, want nil after 2", err, n)
	}

	n = 0
	permanent := errors.New(errors.ErrCodeInvalidInput, "bad")
	if err := Retry(context.Background(), 5, time.Millisecond, func() error { n++; return permanent }); err != permanent || n != 1 {
		t.Errorf("Retry = %v after %d calls, want permanent error after 1", err, n)
	}
}
