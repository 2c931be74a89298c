package promo

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTickerSchedulerFiresUntilCancelled(t *testing.T) {
	var n atomic.Int32
	task := NewTickerScheduler().Every(5*time.Millisecond, func() { n.Add(1) })

	require.Eventually(t, func() bool { return n.Load() >= 2 }, time.Second, time.Millisecond)
	task.Cancel()
	task.Cancel()

	after := n.Load()
	time.Sleep(30 * time.Millisecond)
	assert.LessOrEqual(t, n.Load(), after+1)
}

func TestTickerSchedulerCancelFromCallback(t *testing.T) {
	var task Task
	fired := make(chan struct{})
	ready := make(chan struct{})
	task = NewTickerScheduler().Every(time.Millisecond, func() {
		<-ready
		task.Cancel()
		select {
		case <-fired:
		default:
			close(fired)
		}
	})
	close(ready)

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
	}
}

func TestControllerWithRealScheduler(t *testing.T) {
	store := &FrameStore{}
	c, err := NewController(slidesN(3), WithInterval(5*time.Millisecond), WithRenderer(store))
	require.NoError(t, err)

	c.Start()
	require.Eventually(t, func() bool {
		f, _ := store.Last()
		return f.Index != 0
	}, time.Second, time.Millisecond)
	c.Stop()
}

func TestLoadSlides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slides.yaml")
	content := `slides:
  - id: spring
    title: Spring edit
    link_url: /products?sort=new
  - id: gifts
    title: Gifts under 25
    image_url: /uploads/gifts.webp
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	slides, err := LoadSlides(path)
	require.NoError(t, err)
	require.Len(t, slides, 2)
	assert.Equal(t, Slide{ID: "spring", Title: "Spring edit", LinkURL: "/products?sort=new"}, slides[0])
	assert.Equal(t, "/uploads/gifts.webp", slides[1].ImageURL)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("slides: []\n"), 0o644))
	_, err = LoadSlides(empty)
	assert.ErrorIs(t, err, ErrNoSlides)

	_, err = LoadSlides(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
