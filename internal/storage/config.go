package storage

import (
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const ProofPrefix = "proofs"

// Config holds storage configuration
type Config struct {
	UploadDir    string   // Local directory for uploads (e.g., "./uploads")
	BaseURL      string   // Path prefix files are served under (e.g., "/uploads")
	MaxFileSize  int64    // bytes
	AllowedTypes []string // MIME types accepted for proof images
}

// Upload is a file received with a request, not yet stored.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Check validates size and content type against the config.
func (c Config) Check(u *Upload) error {
	if u == nil {
		return nil
	}
	if c.MaxFileSize > 0 && u.Size > c.MaxFileSize {
		return fmt.Errorf("file %q exceeds the maximum size of %d bytes", u.Filename, c.MaxFileSize)
	}
	if len(c.AllowedTypes) == 0 {
		return nil
	}
	ct := contentType(u)
	for _, allowed := range c.AllowedTypes {
		if strings.EqualFold(ct, allowed) {
			return nil
		}
	}
	return fmt.Errorf("file type %q is not allowed", ct)
}

// NewProofKey returns a unique key for a proof image, keeping the extension
// of the uploaded file name.
func NewProofKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s%s", ProofPrefix, uuid.New().String(), ext)
}

func contentType(u *Upload) string {
	ct := u.ContentType
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(ct)
	if ct == "" || ct == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(u.Filename))); byExt != "" {
			ct = byExt
			if i := strings.Index(ct, ";"); i >= 0 {
				ct = ct[:i]
			}
		}
	}
	return ct
}

// ContentTypeForKey is used when serving a stored file.
func ContentTypeForKey(key string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(key))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
