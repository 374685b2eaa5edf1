package services

import (
	"sync"
	"time"
)

// EventKind names a board change.
type EventKind string

const (
	EventPostCreated  EventKind = "post.created"
	EventPostDeleted  EventKind = "post.deleted"
	EventRatingAdded  EventKind = "rating.added"
	EventCommentAdded EventKind = "comment.added"
)

// Event tells subscribers that the board changed and which post was affected.
type Event struct {
	Kind   EventKind `json:"kind"`
	PostID int       `json:"postId"`
	At     time.Time `json:"at"`
}

type subscriber struct {
	id int
	fn func(Event)
}

// broadcaster delivers events to subscribers in subscription order. Events are queued with
// enqueue and handed out by flush one at a time, in the order they were queued.
type broadcaster struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscriber

	qmu        sync.Mutex
	queue      []Event
	delivering bool
}

func (b *broadcaster) subscribe(fn func(Event)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (b *broadcaster) enqueue(e Event) {
	b.qmu.Lock()
	b.queue = append(b.queue, e)
	b.qmu.Unlock()
}

// flush delivers queued events. If another goroutine is already delivering, it picks up
// whatever was queued before it finishes, so flush returns at once.
func (b *broadcaster) flush() {
	b.qmu.Lock()
	if b.delivering {
		b.qmu.Unlock()
		return
	}
	b.delivering = true
	for len(b.queue) > 0 {
		e := b.queue[0]
		b.queue = b.queue[1:]
		b.qmu.Unlock()
		b.publish(e)
		b.qmu.Lock()
	}
	b.queue = nil
	b.delivering = false
	b.qmu.Unlock()
}

func (b *broadcaster) publish(e Event) {
	b.mu.RLock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(e)
	}
}

func (b *broadcaster) count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
