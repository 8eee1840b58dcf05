// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package query implements the shared pagination window used by every
// listing and search operation: 1-based pages over a createdAt-descending
// result set, with totals reported alongside the items.
package query

// Page describes a normalized pagination window.
type Page struct {
	Number int // 1-based page number
	Size   int // items per page
}

// NewPage clamps page and size to at least 1. Malformed pagination input
// (zero, negative) degrades to the first page rather than failing.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = 1
	}
	return Page{Number: number, Size: size}
}

// Offset returns the number of rows to skip for this window.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Pagination is the wire-format metadata returned with list results.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Paginate builds the response metadata for a window over total rows.
// Pages is the ceiling of total/size; zero rows means zero pages.
func Paginate(p Page, total int) Pagination {
	return Pagination{
		Page:  p.Number,
		Limit: p.Size,
		Total: total,
		Pages: (total + p.Size - 1) / p.Size,
	}
}
