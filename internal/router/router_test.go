// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"inkwell/internal/auth"
	"inkwell/internal/handlers"
	"inkwell/internal/models"
)

// mintToken issues a token for a throwaway user.
func mintToken(t *testing.T, tokens *auth.Tokens) string {
	t.Helper()
	token, err := tokens.Generate(&models.User{ID: uuid.New(), Role: models.RoleUser})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// testRouter builds the full route tree with handler groups whose stores
// are nil. Requests stopped by middleware never reach a handler, so these
// are safe for testing the auth gates.
func testRouter() http.Handler {
	tokens := auth.NewTokens("test-secret")
	return New(tokens,
		handlers.NewAuth(nil, tokens),
		handlers.NewCategories(nil),
		handlers.NewPosts(nil, nil, nil),
		handlers.NewUploads(nil),
	)
}

func TestMutationsRequireAuth(t *testing.T) {
	r := testRouter()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/posts"},
		{http.MethodPut, "/api/posts/some-id"},
		{http.MethodDelete, "/api/posts/some-id"},
		{http.MethodPost, "/api/posts/some-id/comments"},
		{http.MethodPost, "/api/categories"},
		{http.MethodPost, "/api/uploads"},
		{http.MethodGet, "/api/auth/me"},
	}

	for _, tt := range routes {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", rec.Code)
			}
		})
	}
}

func TestUploadsDisabledWithoutStorage(t *testing.T) {
	tokens := auth.NewTokens("test-secret")
	r := New(tokens,
		handlers.NewAuth(nil, tokens),
		handlers.NewCategories(nil),
		handlers.NewPosts(nil, nil, nil),
		handlers.NewUploads(nil),
	)

	// An authenticated request still cannot upload when storage is off.
	token := mintToken(t, tokens)
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", rec.Code)
	}
}
