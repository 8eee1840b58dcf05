// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecovererTurnsPanicsInto500(t *testing.T) {
	// A panicking handler must never take the process down, whatever the
	// panic value is.
	for _, tt := range []struct {
		name  string
		value any
	}{
		{"string", "post store exploded"},
		{"error", errors.New("nil pointer dereference")},
		{"integer", 42},
		{"arbitrary value", map[string]int(nil)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.value)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/broken", nil))

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status: got %d, want 500", rec.Code)
			}

			var body struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode 500 body %q: %v", rec.Body.String(), err)
			}
			if body.Success {
				t.Error("panic response claims success")
			}
			if body.Error != "Server Error" {
				t.Errorf("panic response leaks detail: %q", body.Error)
			}
		})
	}
}

func TestRecovererLeavesHealthyHandlersAlone(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/posts", nil))

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
	if rec.Body.String() != "created" {
		t.Errorf("body: got %q, want %q", rec.Body.String(), "created")
	}
	if got := rec.Header().Get("ETag"); got != `"abc"` {
		t.Errorf("ETag header: got %q, want %q", got, `"abc"`)
	}
}
