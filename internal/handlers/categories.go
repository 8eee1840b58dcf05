// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"inkwell/internal/store"
)

// Categories groups the category endpoints.
type Categories struct {
	categories *store.CategoryStore
}

// NewCategories creates a new Categories handler group.
func NewCategories(categories *store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

// List returns all categories sorted by name, with post counts.
func (c *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.categories.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, items)
}

// Create adds a category. Admin-only; the router enforces the role gate.
func (c *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	if msgs := validateCategory(body.Name, body.Description); len(msgs) > 0 {
		respondFieldErrors(w, msgs)
		return
	}

	category, err := c.categories.Create(body.Name, body.Description)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, category)
}
