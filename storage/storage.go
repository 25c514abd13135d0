package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"
	"time"
)

// ObjectStore is the binary blob store behind image uploads. Put returns the
// public URL that gets stored verbatim in the owning document.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// GalleryKey namespaces gallery uploads under the owning faction, prefixing
// the filename with epoch millis to avoid collisions.
func GalleryKey(factionID, filename string) string {
	return fmt.Sprintf("gallery/%s/%d_%s", factionID, time.Now().UnixMilli(), sanitizeFilename(filename))
}

// UploadKey is the flat path used by inline markdown image uploads.
func UploadKey(filename string) string {
	return fmt.Sprintf("uploads/%d_%s", time.Now().UnixMilli(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = path.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

// ContentTypeForKey guesses a content type from the file extension.
func ContentTypeForKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	}
	return "application/octet-stream"
}

// FromEnv picks the configured store: GCS when MEDIA_GCS_BUCKET is set,
// local disk otherwise. Returns nil when neither is usable; upload endpoints
// treat a nil store as "storage not configured".
func FromEnv() ObjectStore {
	if bucket := os.Getenv("MEDIA_GCS_BUCKET"); bucket != "" {
		store, err := NewGCSStore(bucket, os.Getenv("MEDIA_CDN_DOMAIN"))
		if err != nil {
			log.Printf("Error creating GCS store: %v", err)
			return nil
		}
		log.Println("media uploads backed by GCS bucket:", bucket)
		return store
	}

	dir := os.Getenv("media_dir")
	if dir == "" {
		log.Println("media_dir not set - uploads will be disabled")
		return nil
	}
	log.Println("media uploads backed by local dir:", dir)
	return NewLocalStore(dir, "/media")
}
