package connection

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/dispatch"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/log"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/messages"
	"github.com/kaleidescape-community/kaleidescape-go/pkg/wire"
)

// State represents the connection state.
type State uint8

const (
	// StateDisconnected indicates no active connection.
	StateDisconnected State = iota

	// StateConnecting indicates a connection attempt is in progress.
	StateConnecting

	// StateConnected indicates an active connection.
	StateConnected

	// StateReconnecting indicates automatic reconnection is in progress.
	StateReconnecting
)

// Dispatcher signal names for connection-state transitions, published on
// the same dispatcher as decoded protocol messages.
const (
	EventConnected    = "CONNECTION_CONNECTED"
	EventDisconnected = "CONNECTION_DISCONNECTED"
)

// StateEvent is the dispatcher payload for gaining or losing the device.
// It satisfies messages.Variant so state changes ride the same dispatch
// path subscribers already use for protocol messages.
type StateEvent struct {
	// Old and New are the states around the transition.
	Old State
	New State

	msg *wire.Message
}

func newStateEvent(name string, oldState, newState State) *StateEvent {
	return &StateEvent{
		Old: oldState,
		New: newState,
		msg: &wire.Message{Seq: wire.EventSeq, Name: name},
	}
}

// Name returns EventConnected or EventDisconnected.
func (e *StateEvent) Name() string { return e.msg.Name }

// Message returns a synthetic wire message carrying the signal name.
func (e *StateEvent) Message() *wire.Message { return e.msg }

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateReconnecting:
		return "RECONNECTING"
	default:
		return "UNKNOWN"
	}
}

// Connection is a persistent control connection to a Kaleidescape device.
type Connection struct {
	cfg        Config
	id         string
	dispatcher *dispatch.Dispatcher
	logger     log.Logger

	state atomic.Int32

	// stateMu serializes state transitions and their notifications.
	stateMu sync.Mutex

	// mu guards conn and ip.
	mu   sync.RWMutex
	conn net.Conn
	ip   string

	// writeMu serializes writes so concurrent requests never interleave
	// bytes on the wire.
	writeMu sync.Mutex

	pending *pendingTable
	backoff *Backoff

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	reconnectCh chan struct{}

	onStateChange func(oldState, newState State)
}

// New creates a connection for the configured device. The dispatcher
// receives every decoded reply and event; pass nil to have the connection
// create its own.
func New(cfg Config, dispatcher *dispatch.Dispatcher) *Connection {
	if dispatcher == nil {
		dispatcher = dispatch.New()
	}
	cfg = cfg.withDefaults()

	return &Connection{
		cfg:        cfg,
		id:         uuid.NewString(),
		dispatcher: dispatcher,
		logger:     cfg.Logger,
		pending:    newPendingTable(),
		backoff: NewBackoff(BackoffConfig{
			Initial: cfg.ReconnectDelay,
		}),
		reconnectCh: make(chan struct{}, 1),
	}
}

// ID returns the connection's unique identifier, used to correlate protocol
// capture events.
func (c *Connection) ID() string { return c.id }

// Dispatcher returns the dispatcher fed by this connection.
func (c *Connection) Dispatcher() *dispatch.Dispatcher { return c.dispatcher }

// State returns the current connection state.
func (c *Connection) State() State {
	return State(c.state.Load())
}

// IsConnected reports whether the connection is usable for requests.
func (c *Connection) IsConnected() bool {
	return c.State() == StateConnected
}

// IP returns the resolved device address, empty before the first connect.
func (c *Connection) IP() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ip
}

// OnStateChange sets a callback invoked on every state transition. Must be
// set before Connect.
func (c *Connection) OnStateChange(fn func(oldState, newState State)) {
	c.onStateChange = fn
}

// Connect resolves the configured host and establishes the control
// connection. When reconnection is enabled, a background loop re-dials
// after connection loss until Disconnect is called.
func (c *Connection) Connect(ctx context.Context) error {
	c.stateMu.Lock()
	if c.State() != StateDisconnected {
		c.stateMu.Unlock()
		return ErrAlreadyConnected
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.setStateLocked(StateConnecting, "connect requested")
	c.stateMu.Unlock()

	if err := c.dial(ctx); err != nil {
		c.stateMu.Lock()
		c.setStateLocked(StateDisconnected, err.Error())
		c.stateMu.Unlock()
		c.cancel()
		return err
	}

	c.stateMu.Lock()
	c.setStateLocked(StateConnected, "")
	c.stateMu.Unlock()

	if c.cfg.Reconnect {
		c.wg.Add(1)
		go c.reconnectLoop()
	}

	return nil
}

// Disconnect closes the connection and stops the reconnect loop. It is
// idempotent and always leaves the connection DISCONNECTED.
func (c *Connection) Disconnect() {
	c.stateMu.Lock()
	if c.State() == StateDisconnected {
		c.stateMu.Unlock()
		return
	}

	if c.cancel != nil {
		c.cancel()
	}
	c.closeConn()
	c.pending.failAll()
	c.setStateLocked(StateDisconnected, "disconnect requested")
	c.stateMu.Unlock()

	c.wg.Wait()
}

// Send sends a command to a device and waits for its reply. A reply with an
// error status is returned along with a wire.StatusError. Fields are
// escaped on the wire; pass them raw.
func (c *Connection) Send(ctx context.Context, deviceID, name string, fields ...string) (messages.Variant, error) {
	return c.SendToZone(ctx, deviceID, 0, name, fields...)
}

// SendToZone is Send addressed to a specific zone of the device.
func (c *Connection) SendToZone(ctx context.Context, deviceID string, zone int, name string, fields ...string) (messages.Variant, error) {
	seq, ch, err := c.submit(deviceID, zone, name, fields)
	if err != nil {
		return nil, err
	}
	defer c.pending.release(seq)

	start := time.Now()
	timer := time.NewTimer(c.cfg.RequestTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		c.pending.park(seq)
		return nil, ctx.Err()
	case <-timer.C:
		c.pending.park(seq)
		return nil, fmt.Errorf("%w: %s seq %d", ErrRequestTimeout, name, seq)
	case msg, ok := <-ch:
		if !ok {
			return nil, ErrConnectionClosed
		}
		rtt := time.Since(start)
		c.logReply(msg, rtt)
		v := messages.New(msg)
		if msg.Status.IsError() {
			return v, &wire.StatusError{Status: msg.Status, Command: name}
		}
		return v, nil
	}
}

// SendGrouped sends a command whose answer spans several replies on one
// sequence number, such as GET_CONTENT_DETAILS. The first reply must be a
// group header announcing how many follow-up replies to collect; the header
// and the follow-ups are returned in arrival order.
func (c *Connection) SendGrouped(ctx context.Context, deviceID, name string, fields ...string) ([]messages.Variant, error) {
	seq, ch, err := c.submit(deviceID, 0, name, fields)
	if err != nil {
		return nil, err
	}
	defer c.pending.release(seq)

	start := time.Now()
	timer := time.NewTimer(c.cfg.RequestTimeout)
	defer timer.Stop()

	var out []messages.Variant
	remaining := 1
	for remaining > 0 {
		select {
		case <-ctx.Done():
			c.pending.park(seq)
			return out, ctx.Err()
		case <-timer.C:
			c.pending.park(seq)
			return out, fmt.Errorf("%w: %s seq %d", ErrRequestTimeout, name, seq)
		case msg, ok := <-ch:
			if !ok {
				return out, ErrConnectionClosed
			}
			c.logReply(msg, time.Since(start))
			v := messages.New(msg)
			if msg.Status.IsError() {
				return out, &wire.StatusError{Status: msg.Status, Command: name}
			}
			if len(out) == 0 {
				header, ok := v.(messages.Grouped)
				if !ok {
					return []messages.Variant{v}, nil
				}
				remaining = header.GroupCount()
			} else {
				remaining--
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// submit reserves a sequence and puts the command on the wire. The caller
// owns the returned sequence and must release or park it.
func (c *Connection) submit(deviceID string, zone int, name string, fields []string) (int, chan *wire.Message, error) {
	if c.State() != StateConnected {
		return 0, nil, ErrNotConnected
	}

	seq, ch, err := c.pending.acquire()
	if err != nil {
		return 0, nil, err
	}

	line := wire.EncodeRequest(deviceID, zone, seq, name, fields)
	if err := c.writeLine(line); err != nil {
		c.pending.release(seq)
		return 0, nil, err
	}
	c.logMessage(log.DirectionOut, log.MessageTypeRequest, seq, name, fields, nil)
	return seq, ch, nil
}

// dial resolves the host, opens the socket and starts the read loop.
func (c *Connection) dial(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()

	ip, err := Resolve(dialCtx, c.cfg.Host)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(ip, fmt.Sprintf("%d", c.cfg.Port))
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.ip = ip
	c.mu.Unlock()

	c.wg.Add(1)
	go c.readLoop(conn)

	return nil
}

func (c *Connection) writeLine(line string) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(c.cfg.RequestTimeout))
	defer conn.SetWriteDeadline(time.Time{})

	_, err := conn.Write([]byte(line + "\r\n"))
	if err == nil {
		c.logLine(log.DirectionOut, line)
	}
	return err
}

// readLoop decodes incoming lines until the socket fails or is closed.
// Malformed lines are logged and skipped; they never terminate the loop.
func (c *Connection) readLoop(conn net.Conn) {
	defer c.wg.Done()

	scanner := bufio.NewScanner(conn)
	scanner.Split(scanLines)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		c.logLine(log.DirectionIn, line)

		msg, err := wire.Decode(line)
		if err != nil {
			c.logError(log.LayerWire, err, "decode")
			continue
		}

		c.handleMessage(msg)
	}

	err := scanner.Err()
	if err == nil {
		err = errors.New("connection closed by device")
	}
	c.connectionLost(conn, err)
}

// handleMessage routes a decoded message. Replies wake their waiting
// request; everything with a name is also published so observers track
// device state from replies and events alike. A reply whose sequence has no
// waiter is treated as an event rather than dropped, including bare acks
// that carry no name (the registry turns those into Ack variants).
func (c *Connection) handleMessage(msg *wire.Message) {
	delivered := false
	if !msg.IsEvent() {
		delivered = c.pending.resolve(msg)
	}

	if msg.IsEvent() || !delivered {
		c.logMessage(log.DirectionIn, log.MessageTypeEvent, msg.Seq, msg.Name, msg.Fields, &msg.Status)
	}

	if msg.Name != "" || (!msg.IsEvent() && !delivered) {
		c.dispatcher.Send(messages.New(msg))
	}
}

// connectionLost handles a failed socket. Stale read loops from an earlier
// socket are ignored.
func (c *Connection) connectionLost(conn net.Conn, err error) {
	c.stateMu.Lock()

	c.mu.RLock()
	current := c.conn
	c.mu.RUnlock()
	if current != conn || c.State() != StateConnected {
		c.stateMu.Unlock()
		return
	}

	c.logError(log.LayerService, err, "connection lost")
	c.closeConn()
	c.pending.failAll()

	if c.cfg.Reconnect && c.ctx.Err() == nil {
		c.setStateLocked(StateReconnecting, err.Error())
		c.stateMu.Unlock()
		c.triggerReconnect()
		return
	}

	c.setStateLocked(StateDisconnected, err.Error())
	c.stateMu.Unlock()
}

func (c *Connection) triggerReconnect() {
	select {
	case c.reconnectCh <- struct{}{}:
	default:
		// Already pending
	}
}

func (c *Connection) reconnectLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.reconnectCh:
			c.attemptReconnect()
		}
	}
}

// attemptReconnect re-dials with exponential backoff until connected,
// disconnected, or the connection's lifetime context ends.
func (c *Connection) attemptReconnect() {
	for {
		if c.State() != StateReconnecting {
			return
		}

		delay := c.backoff.Next()
		select {
		case <-c.ctx.Done():
			return
		case <-time.After(delay):
		}

		if c.State() != StateReconnecting {
			return
		}

		if err := c.dial(c.ctx); err != nil {
			c.logError(log.LayerService, err, "reconnect attempt")
			continue
		}

		c.stateMu.Lock()
		if c.State() != StateReconnecting {
			// Disconnect raced the successful dial.
			c.closeConn()
			c.stateMu.Unlock()
			return
		}
		c.backoff.Reset()
		c.setStateLocked(StateConnected, "reconnected")
		c.stateMu.Unlock()
		return
	}
}

// closeConn closes and clears the socket. Callers hold stateMu.
func (c *Connection) closeConn() {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()
}

// setStateLocked transitions the state, logs it and notifies the callback.
// Callers hold stateMu.
func (c *Connection) setStateLocked(newState State, reason string) {
	oldState := State(c.state.Swap(int32(newState)))
	if oldState == newState {
		return
	}

	c.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.id,
		Layer:        log.LayerService,
		Category:     log.CategoryState,
		RemoteAddr:   c.remoteAddr(),
		StateChange: &log.StateChangeEvent{
			OldState: oldState.String(),
			NewState: newState.String(),
			Reason:   reason,
		},
	})

	if c.onStateChange != nil {
		c.onStateChange(oldState, newState)
	}

	// Subscribers learn about gaining and losing the device on the same
	// dispatcher that carries protocol messages. Only the CONNECTED edge
	// matters to them; intermediate CONNECTING/RECONNECTING hops do not.
	switch {
	case newState == StateConnected:
		c.dispatcher.Send(newStateEvent(EventConnected, oldState, newState))
	case oldState == StateConnected:
		c.dispatcher.Send(newStateEvent(EventDisconnected, oldState, newState))
	}
}

func (c *Connection) remoteAddr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conn != nil {
		return c.conn.RemoteAddr().String()
	}
	return ""
}

func (c *Connection) logLine(dir log.Direction, line string) {
	c.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.id,
		Direction:    dir,
		Layer:        log.LayerTransport,
		Category:     log.CategoryMessage,
		RemoteAddr:   c.remoteAddr(),
		Line:         &log.LineEvent{Size: len(line) + 2, Data: line},
	})
}

func (c *Connection) logMessage(dir log.Direction, typ log.MessageType, seq int, name string, fields []string, status *wire.Status) {
	c.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.id,
		Direction:    dir,
		Layer:        log.LayerWire,
		Category:     log.CategoryMessage,
		RemoteAddr:   c.remoteAddr(),
		Message: &log.MessageEvent{
			Type:   typ,
			Seq:    seq,
			Name:   name,
			Fields: fields,
			Status: status,
		},
	})
}

func (c *Connection) logReply(msg *wire.Message, rtt time.Duration) {
	status := msg.Status
	c.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.id,
		Direction:    log.DirectionIn,
		Layer:        log.LayerWire,
		Category:     log.CategoryMessage,
		RemoteAddr:   c.remoteAddr(),
		DeviceID:     msg.DeviceID,
		Message: &log.MessageEvent{
			Type:      log.MessageTypeReply,
			Seq:       msg.Seq,
			Name:      msg.Name,
			Fields:    msg.Fields,
			Status:    &status,
			RoundTrip: &rtt,
		},
	})
}

func (c *Connection) logError(layer log.Layer, err error, context string) {
	event := log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.id,
		Direction:    log.DirectionIn,
		Layer:        log.LayerService,
		Category:     log.CategoryError,
		RemoteAddr:   c.remoteAddr(),
		Error: &log.ErrorEventData{
			Layer:   layer,
			Message: err.Error(),
			Context: context,
		},
	}
	var malformed *wire.MalformedError
	if errors.As(err, &malformed) {
		code := int(malformed.Code)
		event.Error.Code = &code
	}
	c.logger.Log(event)
}

// scanLines splits on CR, LF or CRLF. Device firmware terminates lines with
// CRLF but some older models emit bare CR.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance = i + 1
		if data[i] == '\r' && advance < len(data) && data[advance] == '\n' {
			advance++
		} else if data[i] == '\r' && advance == len(data) && !atEOF {
			// Wait for a possible LF to avoid emitting a phantom empty line.
			return 0, nil, nil
		}
		return advance, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
