// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/apperr"
	"inkwell/internal/storage"
)

const (
	// maxUploadSize is the maximum allowed image upload size (10 MB).
	maxUploadSize = 10 << 20

	// uploadKeyPrefix namespaces every object key this API hands out.
	uploadKeyPrefix = "posts/"
)

// allowedImageTypes defines MIME types accepted for featured images.
// The file contents are never interpreted beyond type sniffing.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Uploads groups the asset upload endpoints.
type Uploads struct {
	storage *storage.Client // nil when object storage is unconfigured
}

// NewUploads creates a new Uploads handler group. storage may be nil;
// uploads are then disabled.
func NewUploads(storage *storage.Client) *Uploads {
	return &Uploads{storage: storage}
}

// Upload stores a featured image and returns its opaque key and URL. The
// key is what callers put on a post's featured_image field.
func (u *Uploads) Upload(w http.ResponseWriter, r *http.Request) {
	if u.storage == nil {
		writeJSON(w, http.StatusServiceUnavailable, envelope{
			Success: false,
			Error:   "Object storage is not configured",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, envelope{
			Success: false,
			Error:   "File too large. Maximum size is 10 MB",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, apperr.Validation("No file provided"))
		return
	}
	defer file.Close()

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		respondError(w, fmt.Errorf("read upload: %w", err))
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	ext, ok := allowedImageTypes[contentType]
	if !ok {
		respondError(w, apperr.Validation(fmt.Sprintf("File type %q is not allowed", contentType)))
		return
	}
	if fileExt := filepath.Ext(header.Filename); fileExt != "" {
		ext = fileExt
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respondError(w, fmt.Errorf("rewind upload: %w", err))
		return
	}

	now := time.Now()
	key := fmt.Sprintf("%s%d/%02d/%s%s", uploadKeyPrefix, now.Year(), now.Month(), uuid.New().String(), ext)

	if err := u.storage.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", key)
		respondError(w, fmt.Errorf("store upload: %w", err))
		return
	}

	respondData(w, http.StatusCreated, map[string]any{
		"key": key,
		"url": u.storage.FileURL(key),
	})
}
