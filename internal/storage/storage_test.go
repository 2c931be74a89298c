package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunor.shop/app/internal/config"
)

func TestLocalPutDelete(t *testing.T) {
	dir := t.TempDir()
	st, err := New(context.Background(), config.Storage{Driver: "local", LocalDir: dir, LocalURLPrefix: "uploads/"})
	require.NoError(t, err)

	res, err := st.Put(context.Background(), strings.NewReader("png-bytes"), PutInput{Filename: "Rose.PNG", Hint: "Rose Mist!"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Key, "rosemist-"), res.Key)
	assert.True(t, strings.HasSuffix(res.Key, ".png"))
	assert.Equal(t, "/uploads/"+res.Key, res.URL)

	b, err := os.ReadFile(filepath.Join(dir, res.Key))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	require.NoError(t, st.Delete(context.Background(), res.Key))
	_, err = os.Stat(filepath.Join(dir, res.Key))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, st.Delete(context.Background(), res.Key))
}

func TestLocalRejectsNonImages(t *testing.T) {
	st := NewLocal(t.TempDir(), "/uploads")
	_, err := st.Put(context.Background(), strings.NewReader("x"), PutInput{Filename: "evil.sh"})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLocalDeleteStaysInBaseDir(t *testing.T) {
	outer := t.TempDir()
	victim := filepath.Join(outer, "keep.png")
	require.NoError(t, os.WriteFile(victim, []byte("x"), 0o644))

	st := NewLocal(filepath.Join(outer, "uploads"), "/uploads")
	require.NoError(t, st.Delete(context.Background(), "../keep.png"))
	_, err := os.Stat(victim)
	assert.NoError(t, err)
}

func TestObjectNameContentType(t *testing.T) {
	_, ct, err := objectName(PutInput{Filename: "a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)

	_, ct, err = objectName(PutInput{Filename: "a.jpg", ContentType: "text/html"})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)
}

func TestFactoryS3RequiresSettings(t *testing.T) {
	_, err := New(context.Background(), config.Storage{Driver: "s3", S3Region: "eu-west-1"})
	assert.Error(t, err)
	_, err = New(context.Background(), config.Storage{Driver: "ftp"})
	assert.Error(t, err)
}
