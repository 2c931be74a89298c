package promo

import (
	"sync"
	"time"
)

// Task is an armed repeating callback. Cancel may be called any number of
// times, from any goroutine, including from inside the callback.
type Task interface {
	Cancel()
}

// Scheduler arms repeating callbacks.
type Scheduler interface {
	Every(period time.Duration, fn func()) Task
}

// TickerScheduler runs each task on its own goroutine driven by a time.Ticker.
type TickerScheduler struct{}

func NewTickerScheduler() TickerScheduler { return TickerScheduler{} }

func (TickerScheduler) Every(period time.Duration, fn func()) Task {
	t := &tickerTask{done: make(chan struct{})}
	go t.run(period, fn)
	return t
}

type tickerTask struct {
	done chan struct{}
	once sync.Once
}

func (t *tickerTask) run(period time.Duration, fn func()) {
	tk := time.NewTicker(period)
	defer tk.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-tk.C:
			select {
			case <-t.done:
				return
			default:
			}
			fn()
		}
	}
}

// Cancel never waits for a running callback.
func (t *tickerTask) Cancel() {
	t.once.Do(func() { close(t.done) })
}
