package seismod

import "sync"

// inbox is an unbounded, FIFO, single-producer/single-consumer queue of
// records backing one fan-out subscriber. Publish appends under lock and
// signals; a single relay goroutine drains the queue in order onto the
// subscriber's output channel, so a slow consumer grows memory instead of
// blocking the publisher or reordering records.
type inbox struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Record
	closed  bool
	out     chan Record
}

func newInbox() *inbox {
	ib := &inbox{out: make(chan Record)}
	ib.cond = sync.NewCond(&ib.mu)
	go ib.relay()
	return ib
}

func (ib *inbox) push(rec Record) {
	ib.mu.Lock()
	ib.queue = append(ib.queue, rec)
	ib.mu.Unlock()
	ib.cond.Signal()
}

func (ib *inbox) relay() {
	for {
		ib.mu.Lock()
		for len(ib.queue) == 0 && !ib.closed {
			ib.cond.Wait()
		}
		if len(ib.queue) == 0 && ib.closed {
			ib.mu.Unlock()
			close(ib.out)
			return
		}
		rec := ib.queue[0]
		ib.queue = ib.queue[1:]
		ib.mu.Unlock()
		ib.out <- rec
	}
}

func (ib *inbox) close() {
	ib.mu.Lock()
	ib.closed = true
	ib.mu.Unlock()
	ib.cond.Signal()
}

// Fanout is a one-to-many publisher: every registered subscriber receives
// an independent copy of each published record, in publication order.
// Subscriber inboxes are unbounded and FIFO. Registration must complete
// before the source begins publishing; the subscriber set is append-only
// and is guarded only at registration and at publish time, since
// registration always stops before streaming begins.
type Fanout struct {
	mu          sync.Mutex
	subscribers []*inbox
}

// NewFanout returns an empty Fanout ready to accept subscribers.
func NewFanout() *Fanout {
	return &Fanout{}
}

// Subscribe registers a new consumer and returns its inbox channel.
func (f *Fanout) Subscribe() <-chan Record {
	ib := newInbox()
	f.mu.Lock()
	f.subscribers = append(f.subscribers, ib)
	f.mu.Unlock()
	return ib.out
}

// Publish sends a clone of rec to every registered subscriber, in
// registration order and in publication order within each subscriber's
// inbox. It never blocks on a slow consumer.
func (f *Fanout) Publish(rec Record) {
	f.mu.Lock()
	subs := f.subscribers
	f.mu.Unlock()
	for _, ib := range subs {
		ib.push(rec.Clone())
	}
}

// Close shuts down every subscriber's relay goroutine and closes its
// output channel once its queue has drained. Call once the source's read
// loop has stopped for good.
func (f *Fanout) Close() {
	f.mu.Lock()
	subs := f.subscribers
	f.mu.Unlock()
	for _, ib := range subs {
		ib.close()
	}
}
