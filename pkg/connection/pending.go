package connection

import (
	"sync"
	"time"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/wire"
)

// drainingTTL is how long a timed-out sequence number stays reserved. The
// device may still answer it, and that late reply must be discarded rather
// than handed to a newer request reusing the number.
const drainingTTL = 30 * time.Second

// waiterCap bounds buffered replies per sequence. Grouped replies such as
// CONTENT_DETAILS arrive as a burst on one sequence number.
const waiterCap = 64

// pendingTable correlates in-flight requests with replies by sequence
// number. A sequence stays registered until the requester releases it, so
// requests that produce several replies receive all of them.
type pendingTable struct {
	mu sync.Mutex

	// Reply channels for live requests, keyed by sequence.
	waiters map[int]chan *wire.Message

	// Sequences whose request timed out but whose reply may still arrive.
	draining map[int]time.Time

	// Next sequence candidate.
	nextSeq int
}

func newPendingTable() *pendingTable {
	return &pendingTable{
		waiters:  make(map[int]chan *wire.Message),
		draining: make(map[int]time.Time),
		nextSeq:  1,
	}
}

// acquire reserves the next free sequence number and registers a reply
// channel for it. Sequence 0 is never handed out; it marks unsolicited
// events on the wire.
func (p *pendingTable) acquire() (int, chan *wire.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sweepLocked(time.Now())

	for i := 0; i < wire.SeqModulus-1; i++ {
		seq := p.nextSeq
		p.nextSeq++
		if p.nextSeq >= wire.SeqModulus {
			p.nextSeq = 1
		}

		if _, live := p.waiters[seq]; live {
			continue
		}
		if _, parked := p.draining[seq]; parked {
			continue
		}

		ch := make(chan *wire.Message, waiterCap)
		p.waiters[seq] = ch
		return seq, ch, nil
	}

	return 0, nil, ErrSeqExhausted
}

// resolve delivers a reply to the waiter for its sequence. It reports
// whether the reply found a home. Late replies to drained sequences are
// consumed and the reservation released once the drain window closes
// naturally; they never reach a waiter.
func (p *pendingTable) resolve(msg *wire.Message) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ch, ok := p.waiters[msg.Seq]; ok {
		select {
		case ch <- msg:
		default:
			// Burst overran the buffer; drop rather than block the
			// read loop.
		}
		return true
	}
	if _, parked := p.draining[msg.Seq]; parked {
		return true
	}
	return false
}

// park moves a timed-out sequence into the draining set so its number is
// not reused until the device has had time to answer or forget it.
func (p *pendingTable) park(seq int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.waiters[seq]; ok {
		delete(p.waiters, seq)
		p.draining[seq] = time.Now().Add(drainingTTL)
	}
}

// release frees a sequence once its request has collected every reply.
func (p *pendingTable) release(seq int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.waiters, seq)
}

// failAll closes every waiter channel, waking blocked requests with a
// closed-channel read. Called on disconnect; draining reservations are
// dropped too since sequence numbering restarts with the next connection.
func (p *pendingTable) failAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for seq, ch := range p.waiters {
		close(ch)
		delete(p.waiters, seq)
	}
	p.draining = make(map[int]time.Time)
	p.nextSeq = 1
}

// inflight returns the number of live waiters.
func (p *pendingTable) inflight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiters)
}

func (p *pendingTable) sweepLocked(now time.Time) {
	for seq, deadline := range p.draining {
		if now.After(deadline) {
			delete(p.draining, seq)
		}
	}
}
