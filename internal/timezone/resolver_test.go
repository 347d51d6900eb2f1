package timezone

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/flighttime-data/internal/common/logger"
)

func testLogger() logger.Logger {
	return logger.New(zerolog.Disabled)
}

func TestResolveNumericOffsets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","rawOffset":3600,"dstOffset":3600}`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, "test-key", testLogger())
	offset, err := resolver.Resolve(context.Background(), 48.35, 11.78, 1750000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offset != 2.0 {
		t.Errorf("expected offset 2.0, got %v", offset)
	}
}

func TestResolveStringOffsets(t *testing.T) {
	// Some deployments return the offset fields as numeric strings
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","rawOffset":"19800","dstOffset":"0"}`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, "test-key", testLogger())
	offset, err := resolver.Resolve(context.Background(), 28.55, 77.1, 1750000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offset != 5.5 {
		t.Errorf("expected offset 5.5, got %v", offset)
	}
}

func TestResolveNegativeOffset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","rawOffset":-18000,"dstOffset":3600}`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, "test-key", testLogger())
	offset, err := resolver.Resolve(context.Background(), 40.64, -73.78, 1750000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offset != -4.0 {
		t.Errorf("expected offset -4.0, got %v", offset)
	}
}

func TestResolveSendsQueryParameters(t *testing.T) {
	var gotLocation, gotTimestamp, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocation = r.URL.Query().Get("location")
		gotTimestamp = r.URL.Query().Get("timestamp")
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`{"status":"OK","rawOffset":0,"dstOffset":0}`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, "secret", testLogger())
	if _, err := resolver.Resolve(context.Background(), 12.5, -33.25, 1700000042); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotLocation != "12.5,-33.25" {
		t.Errorf("expected location 12.5,-33.25, got %q", gotLocation)
	}
	if gotTimestamp != "1700000042" {
		t.Errorf("expected timestamp 1700000042, got %q", gotTimestamp)
	}
	if gotKey != "secret" {
		t.Errorf("expected key secret, got %q", gotKey)
	}
}

func TestResolveNonOKStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, "test-key", testLogger())
	_, err := resolver.Resolve(context.Background(), 1, 2, 1750000000)

	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected a LookupError, got %v", err)
	}
}

func TestResolveAPIErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"REQUEST_DENIED"}`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, "bad-key", testLogger())
	_, err := resolver.Resolve(context.Background(), 1, 2, 1750000000)

	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected a LookupError, got %v", err)
	}
}

func TestResolveMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, "test-key", testLogger())
	_, err := resolver.Resolve(context.Background(), 1, 2, 1750000000)

	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected a LookupError, got %v", err)
	}
}

func TestResolveUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	resolver := NewHTTPResolver(server.URL, "test-key", testLogger())
	_, err := resolver.Resolve(context.Background(), 1, 2, 1750000000)

	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected a LookupError, got %v", err)
	}
}
