// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API endpoints. Every response uses
// the same envelope: {"success":true,"data":...} on success (lists add a
// "pagination" object), {"success":false,"error":"..."} for single errors,
// and {"success":false,"errors":[...]} for field validation failures.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"inkwell/internal/apperr"
	"inkwell/internal/query"
)

type envelope struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Message    string            `json:"message,omitempty"`
	Error      string            `json:"error,omitempty"`
	Errors     []string          `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// respondData writes a success envelope around data.
func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// respondList writes a success envelope with pagination metadata.
func respondList(w http.ResponseWriter, data any, p query.Pagination) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Pagination: &p})
}

// respondMessage writes a success envelope carrying only a message.
func respondMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: msg})
}

// respondError maps a classified error to its HTTP status. Unclassified
// errors are logged and reported generically.
func respondError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, envelope{Success: false, Error: apperr.Message(err)})
}

// respondFieldErrors writes the validation-failure envelope with one
// message per failed field check.
func respondFieldErrors(w http.ResponseWriter, msgs []string) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Errors: msgs})
}

// decodeBody parses a JSON request body into dst. A malformed body is a
// validation failure, not a server error.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}
