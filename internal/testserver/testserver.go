// Package testserver provides a scriptable fake Kaleidescape device for
// exercising connections against a real TCP socket.
package testserver

import (
	"bufio"
	"net"
	"strings"
	"sync"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/wire"
)

// Handler produces the reply messages for one received command.
type Handler func(req *wire.Request) []*wire.Message

// Server is a fake device listening on a loopback TCP port. Commands are
// answered by registered handlers; unscripted commands get a plain OK ack.
// Unsolicited events can be injected at any time.
type Server struct {
	ln net.Listener

	mu       sync.Mutex
	conns    map[net.Conn]*sync.Mutex
	handlers map[string]Handler
	received []*wire.Request
	silent   map[string]struct{}
	closed   bool

	wg sync.WaitGroup
}

// Start creates a server listening on an ephemeral loopback port.
func Start() (*Server, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	s := &Server{
		ln:       ln,
		conns:    make(map[net.Conn]*sync.Mutex),
		handlers: make(map[string]Handler),
		silent:   make(map[string]struct{}),
	}

	s.wg.Add(1)
	go s.acceptLoop()

	return s, nil
}

// Host returns the listen address without the port.
func (s *Server) Host() string {
	host, _, _ := net.SplitHostPort(s.ln.Addr().String())
	return host
}

// Port returns the listen port.
func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Handle registers a handler for a command name.
func (s *Server) Handle(name string, fn Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[name] = fn
}

// Stub registers a canned single-reply handler: the command is answered
// with an OK reply of the given name and fields, echoing the request's
// sequence and device.
func (s *Server) Stub(name, replyName string, fields ...string) {
	s.Handle(name, func(req *wire.Request) []*wire.Message {
		return []*wire.Message{{
			DeviceID: req.DeviceID,
			Zone:     req.Zone,
			Seq:      req.Seq,
			Status:   wire.StatusOK,
			Name:     replyName,
			Fields:   fields,
		}}
	})
}

// Fail registers a handler answering the command with an error status.
func (s *Server) Fail(name string, status wire.Status) {
	s.Handle(name, func(req *wire.Request) []*wire.Message {
		return []*wire.Message{{
			DeviceID: req.DeviceID,
			Zone:     req.Zone,
			Seq:      req.Seq,
			Status:   status,
		}}
	})
}

// Mute suppresses all replies to a command, for driving request timeouts.
func (s *Server) Mute(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.silent[name] = struct{}{}
}

// SendEvent broadcasts an unsolicited event to every connected client.
func (s *Server) SendEvent(deviceID, name string, fields ...string) {
	s.Broadcast(&wire.Message{
		DeviceID: deviceID,
		Seq:      wire.EventSeq,
		Status:   wire.StatusOK,
		Name:     name,
		Fields:   fields,
	})
}

// Broadcast writes a message to every connected client.
func (s *Server) Broadcast(msg *wire.Message) {
	line := wire.Encode(msg) + "\r\n"

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn, wmu := range s.conns {
		wmu.Lock()
		conn.Write([]byte(line))
		wmu.Unlock()
	}
}

// SendRaw writes an arbitrary line to every connected client, for testing
// malformed input handling.
func (s *Server) SendRaw(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn, wmu := range s.conns {
		wmu.Lock()
		conn.Write([]byte(line + "\r\n"))
		wmu.Unlock()
	}
}

// Received returns a snapshot of the decoded commands seen so far.
func (s *Server) Received() []*wire.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*wire.Request, len(s.received))
	copy(out, s.received)
	return out
}

// ReceivedNames returns the names of the decoded commands seen so far.
func (s *Server) ReceivedNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.received))
	for i, req := range s.received {
		names[i] = req.Name
	}
	return names
}

// ConnCount returns the number of live client connections.
func (s *Server) ConnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// DropConnections severs every client connection while keeping the
// listener open, simulating a device reboot for reconnect tests.
func (s *Server) DropConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.Close()
	}
	s.conns = make(map[net.Conn]*sync.Mutex)
}

// Close shuts the server down and severs all connections.
func (s *Server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.ln.Close()
	s.DropConnections()
	s.wg.Wait()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = &sync.Mutex{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	s.mu.Lock()
	wmu := s.conns[conn]
	s.mu.Unlock()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		req, err := wire.DecodeRequest(line)
		if err != nil {
			continue
		}

		s.mu.Lock()
		s.received = append(s.received, req)
		handler := s.handlers[req.Name]
		_, muted := s.silent[req.Name]
		s.mu.Unlock()

		if muted {
			continue
		}

		// Handle each request on its own goroutine so a slow handler
		// cannot block replies to later requests on the same connection.
		s.wg.Add(1)
		go func(req *wire.Request) {
			defer s.wg.Done()

			var replies []*wire.Message
			if handler != nil {
				replies = handler(req)
			} else {
				replies = []*wire.Message{{
					DeviceID: req.DeviceID,
					Zone:     req.Zone,
					Seq:      req.Seq,
					Status:   wire.StatusOK,
				}}
			}

			wmu.Lock()
			defer wmu.Unlock()
			for _, msg := range replies {
				conn.Write([]byte(wire.Encode(msg) + "\r\n"))
			}
		}(req)
	}
}
