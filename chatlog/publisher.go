package chatlog

import (
	"fmt"
	"sync"
	"sync/atomic"
)

const defaultBufferSize = 64

// Publisher is a [Chat] that fans out chat lines to subscribers.
//
// Each line is delivered to every active [Subscription] through a buffered
// channel. When a subscriber falls behind, its oldest line is dropped so
// that writing never blocks the logging goroutine. Safe for concurrent use.
//
// Create instances with [NewPublisher].
type Publisher struct {
	subscribers []*Subscription
	bufSize     int
	mu          sync.Mutex
	closed      bool
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// WithBufferSize sets the number of lines buffered per subscription.
// Values less than 1 are clamped to 1.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		p.bufSize = max(n, 1)
	}
}

// NewPublisher creates a [Publisher] buffering 64 lines per subscription
// unless configured otherwise.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{
		bufSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WriteChatf formats one chat line and publishes it.
func (p *Publisher) WriteChatf(format string, args ...any) {
	p.Publish(fmt.Sprintf(format, args...))
}

// Publish delivers line to every subscription, dropping closed
// subscriptions along the way. Publishing after [Publisher.Close] does
// nothing.
func (p *Publisher) Publish(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	alive := p.subscribers[:0]
	for _, sub := range p.subscribers {
		if sub.closed.Load() {
			close(sub.ch)
			continue
		}

		select {
		case sub.ch <- line:
		default:
			// Full. The reader may drain it concurrently, so neither
			// step may block while p.mu is held.
			select {
			case <-sub.ch:
			default:
			}

			select {
			case sub.ch <- line:
			default:
			}
		}

		alive = append(alive, sub)
	}

	clear(p.subscribers[len(alive):])
	p.subscribers = alive
}

// Subscribe registers a new [Subscription]. On a closed Publisher the
// subscription's channel is already closed.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := &Subscription{
		ch: make(chan string, p.bufSize),
	}

	if p.closed {
		close(sub.ch)
		return sub
	}

	p.subscribers = append(p.subscribers, sub)

	return sub
}

// Close closes every subscription channel. Idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	for _, sub := range p.subscribers {
		close(sub.ch)
	}

	p.subscribers = nil

	return nil
}

// Subscription receives chat lines from a [Publisher].
type Subscription struct {
	ch     chan string
	closed atomic.Bool
}

// C returns the channel that delivers chat lines.
func (s *Subscription) C() <-chan string {
	return s.ch
}

// Close detaches the subscription. Its channel is closed by the next
// [Publisher.Publish] or [Publisher.Close]. Idempotent.
func (s *Subscription) Close() {
	s.closed.Store(true)
}
