package dispatch

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/messages"
)

// Any subscribes to every message regardless of name.
const Any = "*"

// DefaultQueueSize is the queue capacity of an asynchronous subscriber.
const DefaultQueueSize = 64

// Handler consumes a dispatched message.
type Handler func(messages.Variant)

// PanicHandler is called when a subscriber panics. It receives the message
// name being delivered and the recovered value.
type PanicHandler func(name string, recovered any)

// Subscription is one subscriber's attachment to a named signal.
type Subscription struct {
	// ID uniquely identifies the subscription.
	ID uuid.UUID

	// Name is the message name subscribed to, or Any.
	Name string

	handler Handler

	// Asynchronous delivery state. Nil for synchronous subscribers.
	queue chan messages.Variant
	done  chan struct{}

	mu      sync.Mutex
	dropped int
}

// Dropped returns how many messages were discarded because the subscriber's
// queue was full. Always zero for synchronous subscribers.
func (s *Subscription) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// SubscribeOption customizes a subscription.
type SubscribeOption func(*subscribeOptions)

type subscribeOptions struct {
	async     bool
	queueSize int
}

// Async delivers messages on a dedicated goroutine with a bounded queue of
// DefaultQueueSize. Per-subscriber ordering is preserved; when the queue is
// full the newest message is dropped and counted.
func Async() SubscribeOption {
	return func(o *subscribeOptions) {
		o.async = true
		o.queueSize = DefaultQueueSize
	}
}

// AsyncQueue is Async with an explicit queue capacity.
func AsyncQueue(size int) SubscribeOption {
	return func(o *subscribeOptions) {
		o.async = true
		o.queueSize = size
	}
}

// Dispatcher routes messages to subscribers by name.
type Dispatcher struct {
	mu sync.RWMutex

	// Subscriptions per name, in subscription order.
	signals map[string][]*Subscription

	onPanic PanicHandler

	closed bool
}

// New creates an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{
		signals: make(map[string][]*Subscription),
	}
}

// SetPanicHandler installs the callback invoked when a subscriber panics.
// Without one, panics are swallowed after recovery.
func (d *Dispatcher) SetPanicHandler(fn PanicHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onPanic = fn
}

// Connect attaches a handler to the named signal and returns the
// subscription. Connecting to Any receives every message.
func (d *Dispatcher) Connect(name string, fn Handler, opts ...SubscribeOption) *Subscription {
	var o subscribeOptions
	for _, opt := range opts {
		opt(&o)
	}

	sub := &Subscription{
		ID:      uuid.New(),
		Name:    name,
		handler: fn,
	}

	if o.async {
		if o.queueSize <= 0 {
			o.queueSize = DefaultQueueSize
		}
		sub.queue = make(chan messages.Variant, o.queueSize)
		sub.done = make(chan struct{})
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return sub
	}
	d.signals[name] = append(d.signals[name], sub)
	d.mu.Unlock()

	if sub.queue != nil {
		go d.deliverLoop(sub)
	}

	return sub
}

// Disconnect detaches a subscription. It is safe to call more than once and
// with subscriptions the dispatcher does not hold.
func (d *Dispatcher) Disconnect(sub *Subscription) {
	if sub == nil {
		return
	}

	d.mu.Lock()
	subs := d.signals[sub.Name]
	for i, s := range subs {
		if s.ID == sub.ID {
			d.signals[sub.Name] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(d.signals[sub.Name]) == 0 {
		delete(d.signals, sub.Name)
	}
	d.mu.Unlock()

	if sub.queue != nil {
		sub.mu.Lock()
		select {
		case <-sub.done:
		default:
			close(sub.done)
		}
		sub.mu.Unlock()
	}
}

// Send delivers a message to every subscriber of its name, then to
// subscribers of Any. Synchronous handlers run inline on the caller's
// goroutine; delivery to the remaining subscribers continues even if one
// panics.
func (d *Dispatcher) Send(v messages.Variant) {
	name := v.Name()

	// Snapshot under the read lock so handlers may Connect or Disconnect
	// without deadlocking, and so a concurrent Disconnect cannot perturb
	// this delivery round.
	d.mu.RLock()
	subs := make([]*Subscription, 0, len(d.signals[name])+len(d.signals[Any]))
	subs = append(subs, d.signals[name]...)
	if name != Any {
		subs = append(subs, d.signals[Any]...)
	}
	onPanic := d.onPanic
	d.mu.RUnlock()

	for _, sub := range subs {
		if sub.queue != nil {
			select {
			case sub.queue <- v:
			default:
				sub.mu.Lock()
				sub.dropped++
				sub.mu.Unlock()
			}
			continue
		}
		d.call(sub, v, onPanic)
	}
}

// SubscriberCount returns the number of subscribers for a name, not counting
// Any subscribers.
func (d *Dispatcher) SubscriberCount(name string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.signals[name])
}

// Close detaches every subscription and stops asynchronous delivery
// goroutines. A closed dispatcher drops all further messages.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	signals := d.signals
	d.signals = make(map[string][]*Subscription)
	d.closed = true
	d.mu.Unlock()

	for _, subs := range signals {
		for _, sub := range subs {
			if sub.queue != nil {
				sub.mu.Lock()
				select {
				case <-sub.done:
				default:
					close(sub.done)
				}
				sub.mu.Unlock()
			}
		}
	}
}

func (d *Dispatcher) call(sub *Subscription, v messages.Variant, onPanic PanicHandler) {
	defer func() {
		if r := recover(); r != nil && onPanic != nil {
			onPanic(v.Name(), r)
		}
	}()
	sub.handler(v)
}

func (d *Dispatcher) deliverLoop(sub *Subscription) {
	for {
		select {
		case <-sub.done:
			return
		case v := <-sub.queue:
			d.mu.RLock()
			onPanic := d.onPanic
			d.mu.RUnlock()
			d.call(sub, v, onPanic)
		}
	}
}
