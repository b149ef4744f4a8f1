// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/corpsite/internal/testutil"
)

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, testutil.TestLoggerSilent())
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	for i := range 2 {
		if rr := send("10.0.0.1:1234"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rr.Code)
		}
	}

	rr := send("10.0.0.1:5678")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "rate_limit_exceeded") {
		t.Errorf("body = %q, want rate_limit_exceeded code", rr.Body.String())
	}

	if rr := send("10.0.0.2:1234"); rr.Code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", rr.Code)
	}
}

func TestLimiterCacheReuse(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	if lc.get("a") != lc.get("a") {
		t.Error("expected the same limiter for the same key")
	}
	if lc.get("a") == lc.get("b") {
		t.Error("expected distinct limiters for distinct keys")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.168.1.1:8080", "192.168.1.1"},
		{"[::1]:8080", "::1"},
		{"192.168.1.1", "192.168.1.1"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		if got := clientIP(req); got != tt.want {
			t.Errorf("clientIP(%q) = %q, want %q", tt.remote, got, tt.want)
		}
	}
}
