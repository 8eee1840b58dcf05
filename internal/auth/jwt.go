// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth mints and verifies the bearer tokens that identify API
// callers. A token carries the principal (user id + role); everything
// else about the user stays in the database.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// Principal is the authenticated actor attached to a request.
type Principal struct {
	ID   uuid.UUID
	Role models.Role
}

// Claims is the JWT payload for API tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 JWTs with a shared secret.
type Tokens struct {
	secret []byte
}

// NewTokens creates a token signer/verifier with the given secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// Generate issues a signed token for the user.
func (t *Tokens) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses a token string and returns the principal it identifies.
// Any parse, signature, or expiry failure comes back as Unauthenticated.
func (t *Tokens) Verify(tokenString string) (Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Principal{}, apperr.Unauthenticated("Invalid token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Principal{}, apperr.Unauthenticated("Invalid token")
	}

	role := models.Role(claims.Role)
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	return Principal{ID: id, Role: role}, nil
}
