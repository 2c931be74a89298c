package promo

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrHubFull  = errors.New("promo: too many open carousels")
	ErrNotFound = errors.New("promo: carousel not found")
)

// Carousel is one page's slider: its own controller plus the frames the
// controller renders, newest first. It lives until the page closes it.
type Carousel struct {
	*Controller
	ID     string
	frames chan Frame
}

// Frames delivers rendered frames. Only the latest unread frame is kept.
func (c *Carousel) Frames() <-chan Frame { return c.frames }

func (c *Carousel) push(f Frame) {
	for {
		select {
		case c.frames <- f:
			return
		default:
		}
		select {
		case <-c.frames:
		default:
		}
	}
}

// Hub hands out independent carousels over one slide set. Nothing is shared
// between carousels except the immutable slides.
type Hub struct {
	slides []Slide
	opts   []Option
	max    int

	mu     sync.Mutex
	open   map[string]*Carousel
	closed bool
}

// NewHub validates the slide set once. max caps concurrently open carousels;
// zero or less means 1000.
func NewHub(slides []Slide, max int, opts ...Option) (*Hub, error) {
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}
	if max <= 0 {
		max = 1000
	}
	return &Hub{
		slides: slices.Clone(slides),
		opts:   slices.Clone(opts),
		max:    max,
		open:   make(map[string]*Carousel),
	}, nil
}

func (h *Hub) Slides() []Slide { return slices.Clone(h.slides) }

// Open creates a carousel with autoplay armed.
func (h *Hub) Open() (*Carousel, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || len(h.open) >= h.max {
		return nil, ErrHubFull
	}

	car := &Carousel{ID: uuid.NewString(), frames: make(chan Frame, 1)}
	opts := append(slices.Clone(h.opts), WithRenderer(RendererFunc(car.push)))
	ctl, err := NewController(h.slides, opts...)
	if err != nil {
		return nil, err
	}
	car.Controller = ctl
	ctl.Start()
	h.open[car.ID] = car
	return car, nil
}

func (h *Hub) Get(id string) (*Carousel, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	car, ok := h.open[id]
	if !ok {
		return nil, ErrNotFound
	}
	return car, nil
}

// Close stops the carousel's autoplay and forgets it. Unknown ids are ignored.
func (h *Hub) Close(id string) {
	h.mu.Lock()
	car, ok := h.open[id]
	delete(h.open, id)
	h.mu.Unlock()
	if ok {
		car.Stop()
	}
}

// Len is the number of open carousels.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.open)
}

// Shutdown closes every carousel and refuses new ones.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	open := h.open
	h.open = make(map[string]*Carousel)
	h.closed = true
	h.mu.Unlock()
	for _, car := range open {
		car.Stop()
	}
}
