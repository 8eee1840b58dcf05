// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/query"
	"inkwell/internal/slug"
)

// PostStore handles all post-related database operations, including the
// comments owned by each post.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postColumns are the post row columns plus the author/category reference
// fields joined in for display.
const postColumns = `
	p.id, p.title, p.slug, p.content, p.excerpt, p.category_id, p.author_id,
	p.featured_image, p.tags, p.is_published, p.view_count,
	p.created_at, p.updated_at,
	u.username, c.name, c.slug`

const postJoins = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	JOIN categories c ON c.id = p.category_id`

// scanPost scans a joined post row, decoding the jsonb tags column.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var rawTags []byte
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.CategoryID, &p.AuthorID,
		&p.FeaturedImage, &rawTags, &p.IsPublished, &p.ViewCount,
		&p.CreatedAt, &p.UpdatedAt,
		&p.AuthorName, &p.CategoryName, &p.CategorySlug,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawTags, &p.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return &p, nil
}

// NewPost carries the caller-supplied fields for post creation. A nil
// IsPublished means published; drafts are opt-in.
type NewPost struct {
	Title         string
	Content       string
	Excerpt       string
	CategoryID    uuid.UUID
	Tags          []string
	FeaturedImage string
	IsPublished   *bool
}

// PostPatch carries the mutable fields for an update; nil means "leave
// unchanged". Author, view count, comments, and id are not patchable.
type PostPatch struct {
	Title         *string
	Content       *string
	Excerpt       *string
	CategoryID    *uuid.UUID
	Tags          *[]string
	FeaturedImage *string
	IsPublished   *bool
}

// List returns a page of published posts, newest first. When categorySlug
// is set and resolves to a known category the listing is restricted to it;
// an unknown slug yields an empty page rather than an error.
func (s *PostStore) List(pageNum, pageSize int, categorySlug string) ([]models.Post, query.Pagination, error) {
	page := query.NewPage(pageNum, pageSize)

	where := `WHERE p.is_published`
	args := []any{}
	if categorySlug != "" {
		var categoryID uuid.UUID
		err := s.db.QueryRow(`SELECT id FROM categories WHERE slug = $1`, categorySlug).Scan(&categoryID)
		if err == sql.ErrNoRows {
			return []models.Post{}, query.Paginate(page, 0), nil
		}
		if err != nil {
			return nil, query.Pagination{}, fmt.Errorf("resolve category slug: %w", err)
		}
		where += ` AND p.category_id = $1`
		args = append(args, categoryID)
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts p `+where, args...).Scan(&total); err != nil {
		return nil, query.Pagination{}, fmt.Errorf("count posts: %w", err)
	}

	limitArgs := append(args, page.Size, page.Offset())
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT %s %s %s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d`,
		postColumns, postJoins, where, len(args)+1, len(args)+2),
		limitArgs...)
	if err != nil {
		return nil, query.Pagination{}, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	items, err := collectPosts(rows)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return items, query.Paginate(page, total), nil
}

// Find resolves a post by canonical id or slug (id-shaped lookup first)
// and returns it with author, category, and comments populated. Every
// successful fetch bumps the view counter; the bump happens inside a
// single UPDATE so concurrent reads never lose an increment.
func (s *PostStore) Find(idOrSlug string) (*models.Post, error) {
	var id uuid.UUID
	resolved := false

	if parsed, err := uuid.Parse(idOrSlug); err == nil {
		err := s.db.QueryRow(`
			UPDATE posts SET view_count = view_count + 1
			WHERE id = $1 RETURNING id`, parsed).Scan(&id)
		if err == nil {
			resolved = true
		} else if err != sql.ErrNoRows {
			return nil, fmt.Errorf("increment view count: %w", err)
		}
	}

	if !resolved {
		err := s.db.QueryRow(`
			UPDATE posts SET view_count = view_count + 1
			WHERE slug = $1 RETURNING id`, idOrSlug).Scan(&id)
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("Post not found")
		}
		if err != nil {
			return nil, fmt.Errorf("increment view count: %w", err)
		}
	}

	return s.fetchByID(id)
}

// Create inserts a new post for the author. The slug is derived from the
// title before persistence; its unique constraint is the duplicate guard.
func (s *PostStore) Create(authorID uuid.UUID, p NewPost) (*models.Post, error) {
	if p.FeaturedImage == "" {
		p.FeaturedImage = models.DefaultFeaturedImage
	}
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return nil, err
	}
	published := true
	if p.IsPublished != nil {
		published = *p.IsPublished
	}

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO posts (title, slug, content, excerpt, category_id, author_id, featured_image, tags, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		p.Title, slug.Make(p.Title), p.Content, p.Excerpt,
		p.CategoryID, authorID, p.FeaturedImage, tags, published,
	).Scan(&id)
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("Post with this title already exists")
	}
	if isForeignKeyViolation(err, "posts_category_id_fkey") {
		return nil, apperr.Validation("Category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.fetchByID(id)
}

// Update applies a patch to the post after the ownership gate. Resolution
// order per the API contract: a missing post is NotFound even for callers
// who would have been denied; a present post mutated by a non-owner
// non-admin is Forbidden. The slug is re-derived only when the title
// actually changes.
func (s *PostStore) Update(requesterID uuid.UUID, role models.Role, postID uuid.UUID, patch PostPatch) (*models.Post, error) {
	current, err := s.fetchByID(postID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperr.NotFound("Post not found")
	}
	if !policy.CanMutate(requesterID, role, current) {
		return nil, apperr.Forbidden("Not authorized to update this post")
	}

	next := *current
	if patch.Title != nil && *patch.Title != current.Title {
		next.Title = *patch.Title
		next.Slug = slug.Make(*patch.Title)
	}
	if patch.Content != nil {
		next.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		next.Excerpt = *patch.Excerpt
	}
	if patch.CategoryID != nil {
		next.CategoryID = *patch.CategoryID
	}
	if patch.Tags != nil {
		next.Tags = *patch.Tags
	}
	if patch.FeaturedImage != nil {
		next.FeaturedImage = *patch.FeaturedImage
	}
	if patch.IsPublished != nil {
		next.IsPublished = *patch.IsPublished
	}

	tags, err := encodeTags(next.Tags)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`
		UPDATE posts SET
			title = $1, slug = $2, content = $3, excerpt = $4, category_id = $5,
			featured_image = $6, tags = $7, is_published = $8, updated_at = NOW()
		WHERE id = $9`,
		next.Title, next.Slug, next.Content, next.Excerpt, next.CategoryID,
		next.FeaturedImage, tags, next.IsPublished, postID,
	)
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("Post with this title already exists")
	}
	if isForeignKeyViolation(err, "posts_category_id_fkey") {
		return nil, apperr.Validation("Category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	return s.fetchByID(postID)
}

// Delete removes the post and its comments in one transaction after the
// same ownership gate as Update. There is no state where the post is gone
// but comments remain, or the reverse. Returns the post as it was so the
// caller can release resources attached to it, such as a stored featured
// image.
func (s *PostStore) Delete(requesterID uuid.UUID, role models.Role, postID uuid.UUID) (*models.Post, error) {
	current, err := s.fetchByID(postID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperr.NotFound("Post not found")
	}
	if !policy.CanMutate(requesterID, role, current) {
		return nil, apperr.Forbidden("Not authorized to delete this post")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return nil, fmt.Errorf("delete post comments: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM posts WHERE id = $1`, postID); err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return current, nil
}

// AddComment appends a comment to the post and returns the post with its
// updated comment list. Comments are append-only; the bigserial key
// preserves insertion order. Adding a comment does not count as a view.
func (s *PostStore) AddComment(postID, userID uuid.UUID, content string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("Comment content is required")
	}

	_, err := s.db.Exec(`
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)`,
		postID, userID, content,
	)
	if isForeignKeyViolation(err, "comments_post_id_fkey") {
		return nil, apperr.NotFound("Post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	post, err := s.fetchByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		// Post deleted between insert and re-read; its comments went with it.
		return nil, apperr.NotFound("Post not found")
	}
	return post, nil
}

// Search returns published posts where q is a case-insensitive substring
// of the title, content, excerpt, or any single tag element. Matching is
// per tag element, never across tag boundaries.
func (s *PostStore) Search(q string, pageNum, pageSize int) ([]models.Post, query.Pagination, error) {
	if strings.TrimSpace(q) == "" {
		return nil, query.Pagination{}, apperr.Validation("Search query is required")
	}
	page := query.NewPage(pageNum, pageSize)
	pattern := "%" + escapeLike(q) + "%"

	const where = `
		WHERE p.is_published AND (
			p.title ILIKE $1 OR p.content ILIKE $1 OR p.excerpt ILIKE $1
			OR EXISTS (
				SELECT 1 FROM jsonb_array_elements_text(p.tags) AS tag
				WHERE tag ILIKE $1
			)
		)`

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts p `+where, pattern).Scan(&total); err != nil {
		return nil, query.Pagination{}, fmt.Errorf("count search results: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT `+postColumns+postJoins+where+`
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`,
		pattern, page.Size, page.Offset(),
	)
	if err != nil {
		return nil, query.Pagination{}, fmt.Errorf("search posts: %w", err)
	}
	defer rows.Close()

	items, err := collectPosts(rows)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	return items, query.Paginate(page, total), nil
}

// fetchByID loads a post with refs and comments, without touching the
// view counter. Returns nil if the post does not exist.
func (s *PostStore) fetchByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+postJoins+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}

	comments, err := s.listComments(id)
	if err != nil {
		return nil, err
	}
	p.Comments = comments
	return p, nil
}

// listComments returns the post's comments in insertion order.
func (s *PostStore) listComments(postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT cm.id, cm.post_id, cm.user_id, cm.content, cm.created_at, u.username
		FROM comments cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.post_id = $1
		ORDER BY cm.id ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.Username); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// collectPosts drains a joined post result set.
func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	items := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// encodeTags serializes tags for the jsonb column; nil becomes an empty array.
func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	out, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return out, nil
}

// escapeLike neutralizes LIKE/ILIKE metacharacters in user-supplied
// search text so "50%" matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
