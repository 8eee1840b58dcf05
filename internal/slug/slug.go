// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL-safe identifiers for posts and categories.
package slug

import (
	"regexp"
	"strings"
)

var (
	// disallowed matches anything that can't appear in a slug or be
	// turned into a hyphen: everything outside lowercase letters,
	// digits, whitespace, and existing hyphens.
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]+`)
	// hyphenRuns collapses consecutive hyphens left over after
	// whitespace replacement.
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Make converts an arbitrary title or name into its slug: lowercase,
// alphanumerics and hyphens only, with whitespace runs collapsed to a
// single hyphen. Applying Make to its own output is a no-op, so slugs
// stored in the database never drift on re-save.
// Example: "How to Deploy Go Apps (2026)" becomes "how-to-deploy-go-apps-2026".
func Make(s string) string {
	out := disallowed.ReplaceAllString(strings.ToLower(s), "")
	out = strings.Join(strings.Fields(out), "-")
	out = hyphenRuns.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
