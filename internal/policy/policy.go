// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package policy decides whether a principal may mutate a post. This is a
// capability check with exactly two outcomes: the post's owner and admins
// may, everyone else may not.
package policy

import (
	"github.com/google/uuid"

	"inkwell/internal/models"
)

// CanMutate reports whether the requester may update or delete the post.
// Pure function; no store access.
func CanMutate(requesterID uuid.UUID, role models.Role, post *models.Post) bool {
	if post == nil {
		return false
	}
	return requesterID == post.AuthorID || role == models.RoleAdmin
}
