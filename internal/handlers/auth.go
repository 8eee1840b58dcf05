// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"inkwell/internal/apperr"
	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// Auth groups the account and token endpoints.
type Auth struct {
	users  *store.UserStore
	tokens *auth.Tokens
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, tokens *auth.Tokens) *Auth {
	return &Auth{users: users, tokens: tokens}
}

// userView is the wire shape of a user. The password hash never leaves
// the store layer.
type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func viewUser(u *models.User) userView {
	return userView{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}

// Register creates an account and returns the user with a fresh token.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	if msgs := validateRegister(body.Username, body.Email, body.Password); len(msgs) > 0 {
		respondFieldErrors(w, msgs)
		return
	}

	user, err := a.users.Create(body.Username, body.Email, body.Password, models.RoleUser)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := a.tokens.Generate(user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, map[string]any{
		"user":  viewUser(user),
		"token": token,
	})
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	if msgs := validateLogin(body.Email, body.Password); len(msgs) > 0 {
		respondFieldErrors(w, msgs)
		return
	}

	user, err := a.users.FindByEmail(body.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, body.Password) {
		respondError(w, apperr.Unauthenticated("Invalid credentials"))
		return
	}

	token, err := a.tokens.Generate(user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"user":  viewUser(user),
		"token": token,
	})
}

// Me returns the authenticated caller's account.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())
	if principal == nil {
		respondError(w, apperr.Unauthenticated("Not authorized, no token"))
		return
	}

	user, err := a.users.FindByID(principal.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		// Token outlived the account.
		respondError(w, apperr.Unauthenticated("Invalid token"))
		return
	}

	respondData(w, http.StatusOK, map[string]any{"user": viewUser(user)})
}
