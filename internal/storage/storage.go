// Package storage keeps product images on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("storage: unsupported image type")

type PutInput struct {
	// Filename supplies the extension; only image types are accepted.
	Filename    string
	ContentType string
	// Hint is a readable key prefix such as the product slug.
	Hint string
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

var imageExts = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".avif": "image/avif",
}

// objectName builds "<hint>-<random><ext>" and the content type to store.
func objectName(in PutInput) (name, contentType string, err error) {
	ext := strings.ToLower(filepath.Ext(in.Filename))
	ct, ok := imageExts[ext]
	if !ok {
		return "", "", ErrUnsupportedType
	}
	if in.ContentType != "" {
		if mt, _, perr := mime.ParseMediaType(in.ContentType); perr == nil && strings.HasPrefix(mt, "image/") {
			ct = mt
		}
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	name = id + ext
	if hint := cleanHint(in.Hint); hint != "" {
		name = hint + "-" + name
	}
	return name, ct, nil
}

func cleanHint(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
		if b.Len() >= 48 {
			break
		}
	}
	return strings.Trim(b.String(), "-")
}
