package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validation limits for user and content fields.
const (
	minUsernameLen  = 3
	maxUsernameLen  = 30
	minPasswordLen  = 6
	maxTitleLen     = 100
	maxCategoryName = 50
	maxCategoryDesc = 200
	maxExcerptLen   = 200
)

// validateRegister checks registration inputs and returns one message per
// failed field.
func validateRegister(username, email, password string) []string {
	var msgs []string
	username = strings.TrimSpace(username)
	if username == "" {
		msgs = append(msgs, "Username is required")
	} else if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		msgs = append(msgs, "Username must be between 3 and 30 characters")
	}
	if !validEmail(email) {
		msgs = append(msgs, "Please provide a valid email")
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		msgs = append(msgs, "Password must be at least 6 characters")
	}
	return msgs
}

// validateLogin checks login inputs.
func validateLogin(email, password string) []string {
	var msgs []string
	if !validEmail(email) {
		msgs = append(msgs, "Please provide a valid email")
	}
	if password == "" {
		msgs = append(msgs, "Password is required")
	}
	return msgs
}

// validateTitle checks the post title on its own, for patch requests that
// touch only the title.
func validateTitle(title string) []string {
	if strings.TrimSpace(title) == "" {
		return []string{"Title is required"}
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return []string{"Title cannot be more than 100 characters"}
	}
	return nil
}

// validatePost checks post creation inputs. The category field is the raw
// string from the request so a missing value can be distinguished from a
// malformed one.
func validatePost(title, content, category string) []string {
	msgs := validateTitle(title)
	if strings.TrimSpace(content) == "" {
		msgs = append(msgs, "Content is required")
	}
	if strings.TrimSpace(category) == "" {
		msgs = append(msgs, "Category is required")
	}
	return msgs
}

// validateExcerpt checks the optional excerpt field.
func validateExcerpt(excerpt string) []string {
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return []string{"Excerpt cannot be more than 200 characters"}
	}
	return nil
}

// validateCategory checks category creation inputs.
func validateCategory(name, description string) []string {
	var msgs []string
	if strings.TrimSpace(name) == "" {
		msgs = append(msgs, "Category name is required")
	} else if utf8.RuneCountInString(name) > maxCategoryName {
		msgs = append(msgs, "Category name cannot be more than 50 characters")
	}
	if utf8.RuneCountInString(description) > maxCategoryDesc {
		msgs = append(msgs, "Description cannot be more than 200 characters")
	}
	return msgs
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
