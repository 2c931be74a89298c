package promo

import "sync"

// Frame is what the slider shows after a navigation.
type Frame struct {
	Index         int    `json:"index"`
	OffsetPercent int    `json:"offset_percent"` // horizontal track translation
	Active        []bool `json:"active"`         // one entry per indicator
	Slide         Slide  `json:"slide"`
	Total         int    `json:"total"`
}

func buildFrame(slides []Slide, index int) Frame {
	active := make([]bool, len(slides))
	active[index] = true
	return Frame{
		Index:         index,
		OffsetPercent: -index * 100,
		Active:        active,
		Slide:         slides[index],
		Total:         len(slides),
	}
}

// Renderer receives a frame on every change.
type Renderer interface {
	Render(Frame)
}

type RendererFunc func(Frame)

func (f RendererFunc) Render(fr Frame) { f(fr) }

// FrameStore keeps the most recent frame for concurrent readers.
type FrameStore struct {
	mu    sync.RWMutex
	frame Frame
	seen  bool
}

func (s *FrameStore) Render(f Frame) {
	s.mu.Lock()
	s.frame = f
	s.seen = true
	s.mu.Unlock()
}

// Last returns the most recent frame and whether one was rendered yet.
func (s *FrameStore) Last() (Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame, s.seen
}
