package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local writes files under BaseDir, served by the web app at URLPrefix.
type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: "/" + strings.Trim(urlPrefix, "/")}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	if err := ctx.Err(); err != nil {
		return PutResult{}, err
	}
	key, _, err := objectName(in)
	if err != nil {
		return PutResult{}, err
	}
	if err := os.MkdirAll(l.BaseDir, 0o755); err != nil {
		return PutResult{}, err
	}

	dst := filepath.Join(l.BaseDir, key)
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return PutResult{}, err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return PutResult{}, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return PutResult{}, err
	}

	return PutResult{Key: key, URL: l.URLPrefix + "/" + key}, nil
}

// Delete removes key. Missing files are not an error.
func (l *Local) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(l.BaseDir, filepath.Base(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
