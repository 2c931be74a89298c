// Package promo drives the home page promotional slider.
package promo

import (
	"log/slog"
	"slices"
	"sync"
	"time"
)

// DefaultInterval is the autoplay period.
const DefaultInterval = 5 * time.Second

type Option func(*Controller)

func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller owns the current slide index and the autoplay task of one
// slider. All navigation funnels through GoTo.
type Controller struct {
	mu       sync.Mutex
	slides   []Slide
	current  int
	interval time.Duration
	sched    Scheduler
	renderer Renderer
	log      *slog.Logger

	task Task
	gen  uint64 // bumped on every arm/cancel; stale ticks compare against it
}

// NewController renders the first slide but does not start autoplay.
func NewController(slides []Slide, opts ...Option) (*Controller, error) {
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}
	c := &Controller{
		slides:   slices.Clone(slides),
		interval: DefaultInterval,
		sched:    NewTickerScheduler(),
		renderer: RendererFunc(func(Frame) {}),
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	c.renderer.Render(buildFrame(c.slides, 0))
	return c, nil
}

// GoTo shows slide index (wrapping out-of-range values) and restarts the
// autoplay countdown.
func (c *Controller) GoTo(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goTo(index)
}

func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goTo(c.current + 1)
}

func (c *Controller) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.goTo(c.current - 1)
}

// Start arms autoplay, replacing any armed task.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.restart()
}

// Stop cancels autoplay. Safe to call when nothing is armed.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stop()
}

func (c *Controller) Restart() { c.Start() }

// HoverEnter suspends autoplay while the pointer is over the slider.
func (c *Controller) HoverEnter() { c.Stop() }

// HoverLeave resumes autoplay with a full period.
func (c *Controller) HoverLeave() { c.Start() }

func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return buildFrame(c.slides, c.current)
}

// Playing reports whether an autoplay task is armed.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.task != nil
}

func (c *Controller) Len() int { return len(c.slides) }

// Slides returns a copy of the slide set; it never changes after construction.
func (c *Controller) Slides() []Slide { return slices.Clone(c.slides) }

func (c *Controller) goTo(index int) {
	c.current = wrap(index, len(c.slides))
	c.renderer.Render(buildFrame(c.slides, c.current))
	c.restart()
}

func (c *Controller) restart() {
	c.stop()
	gen := c.gen
	c.task = c.sched.Every(c.interval, func() { c.tick(gen) })
}

func (c *Controller) stop() {
	c.gen++
	if c.task != nil {
		c.task.Cancel()
		c.task = nil
	}
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.log.Debug("promo_autoplay_tick", slog.Int("from", c.current))
	c.goTo(c.current + 1)
}

// wrap maps any integer onto [0, n): -1 is the last slide, n is the first.
func wrap(index, n int) int {
	return ((index % n) + n) % n
}
