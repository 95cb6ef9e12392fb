package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"
)

// ErrClosed is returned by calls made after Close.
var ErrClosed = errors.New("bridge: client closed")

// reconnect backoff bounds.
const (
	backoffInitial = 250 * time.Millisecond
	backoffMax     = 8 * time.Second
)

// frame is the single wire envelope. Exactly one of Cmd, Emit, Sub, Unsub
// is set on outbound frames; inbound frames carry either a reply (ID set)
// or an event (Event set).
type frame struct {
	ID    uint64          `json:"id,omitempty"`
	Cmd   string          `json:"cmd,omitempty"`
	Args  json.RawMessage `json:"args,omitempty"`
	OK    *bool           `json:"ok,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`

	Emit   string          `json:"emit,omitempty"`
	Target string          `json:"target,omitempty"`
	Sub    string          `json:"sub,omitempty"`
	Unsub  string          `json:"unsub,omitempty"`
	Event  string          `json:"event,omitempty"`
}

// ClientConfig configures a bridge Client.
type ClientConfig struct {
	// SocketPath is the backend's Unix domain socket.
	SocketPath string

	// Registry receives push events. Required for Subscribe traffic; a nil
	// registry drops inbound events.
	Registry *Registry

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// DialTimeout bounds each (re)connection attempt. Default 3s.
	DialTimeout time.Duration
}

// Client is a connection to the hyprspace backend. It multiplexes typed
// commands and push events over one socket and reconnects with capped
// backoff when the backend restarts.
type Client struct {
	cfg ClientConfig
	log *slog.Logger
	reg *Registry

	mu      sync.Mutex
	conn    net.Conn
	pending map[uint64]chan frame
	nextID  uint64
	label   string // cached current-window label
	closed  bool

	done chan struct{}
	wg   sync.WaitGroup
}

// Dial connects to the backend socket and starts the read loop.
func Dial(cfg ClientConfig) (*Client, error) {
	c := newClient(cfg)

	conn, err := c.dialOnce()
	if err != nil {
		return nil, fmt.Errorf("bridge: dial %s: %w", cfg.SocketPath, err)
	}
	c.conn = conn

	if c.reg != nil {
		c.reg.bind(c)
	}

	c.wg.Add(1)
	go c.readLoop(conn, true)
	return c, nil
}

// NewClientConn wraps an existing connection, with no reconnection. Used by
// tests and by in-process backends.
func NewClientConn(conn net.Conn, cfg ClientConfig) *Client {
	c := newClient(cfg)
	c.conn = conn
	if c.reg != nil {
		c.reg.bind(c)
	}
	c.wg.Add(1)
	go c.readLoop(conn, false)
	return c
}

func newClient(cfg ClientConfig) *Client {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 3 * time.Second
	}
	return &Client{
		cfg:     cfg,
		log:     cfg.Logger.With("component", "bridge"),
		reg:     cfg.Registry,
		pending: make(map[uint64]chan frame),
		done:    make(chan struct{}),
	}
}

func (c *Client) dialOnce() (net.Conn, error) {
	d := net.Dialer{Timeout: c.cfg.DialTimeout}
	return d.Dial("unix", c.cfg.SocketPath)
}

// Close tears down the connection and fails all in-flight calls.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	c.wg.Wait()
	return nil
}

// Emit sends a push event without an explicit target. The current window's
// label is resolved (and cached) before emitting.
func (c *Client) Emit(ctx context.Context, name EventName, payload any) error {
	label, err := c.currentLabel(ctx)
	if err != nil {
		return fmt.Errorf("bridge: resolve window label: %w", err)
	}
	return c.emitTo(label, name, payload)
}

// EmitTo sends a push event to an explicitly named target window. The
// current window's label is never queried.
func (c *Client) EmitTo(_ context.Context, target string, name EventName, payload any) error {
	return c.emitTo(target, name, payload)
}

func (c *Client) emitTo(target string, name EventName, payload any) error {
	if !KnownEvent(name) {
		return fmt.Errorf("bridge: emit unknown event %q", name)
	}
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("bridge: marshal payload for %s: %w", name, err)
		}
		data = b
	}
	return c.send(frame{Emit: string(name), Target: target, Data: data})
}

// currentLabel returns the cached window label, querying the backend once.
func (c *Client) currentLabel(ctx context.Context) (string, error) {
	c.mu.Lock()
	label := c.label
	c.mu.Unlock()
	if label != "" {
		return label, nil
	}

	label, err := c.windowLabel(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.label = label
	c.mu.Unlock()
	return label, nil
}

// call sends one command frame and decodes the reply data into T.
func call[T any](ctx context.Context, c *Client, cmd string, args any) (T, error) {
	var zero T

	var rawArgs json.RawMessage
	if args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return zero, fmt.Errorf("bridge: marshal args for %s: %w", cmd, err)
		}
		rawArgs = b
	}

	reply := make(chan frame, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	c.nextID++
	id := c.nextID
	c.pending[id] = reply
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if err := c.send(frame{ID: id, Cmd: cmd, Args: rawArgs}); err != nil {
		return zero, err
	}

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-c.done:
		return zero, ErrClosed
	case f := <-reply:
		if f.OK == nil || !*f.OK {
			if f.Error == "" {
				f.Error = "backend error"
			}
			return zero, fmt.Errorf("bridge: %s: %s", cmd, f.Error)
		}
		if len(f.Data) == 0 {
			return zero, nil
		}
		var v T
		if err := json.Unmarshal(f.Data, &v); err != nil {
			return zero, fmt.Errorf("bridge: decode %s reply: %w", cmd, err)
		}
		return v, nil
	}
}

// send writes one frame as a JSON line.
func (c *Client) send(f frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("bridge: marshal frame: %w", err)
	}
	b = append(b, '\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.conn == nil {
		return errors.New("bridge: not connected")
	}
	_, err = c.conn.Write(b)
	return err
}

// sendSubscribe registers interest in a push event with the backend.
// Called by the Registry when the first subscriber for an event arrives.
func (c *Client) sendSubscribe(name EventName) error {
	return c.send(frame{Sub: string(name)})
}

// sendUnsubscribe withdraws interest. Called by the Registry when the last
// subscriber for an event leaves.
func (c *Client) sendUnsubscribe(name EventName) error {
	return c.send(frame{Unsub: string(name)})
}

// readLoop consumes frames from conn until it fails, then (when reconnect
// is enabled) redials with capped backoff and replays active subscriptions.
func (c *Client) readLoop(conn net.Conn, reconnect bool) {
	defer c.wg.Done()

	for {
		c.consume(conn)

		c.failPending()

		if !reconnect {
			return
		}
		select {
		case <-c.done:
			return
		default:
		}

		next, ok := c.redial()
		if !ok {
			return
		}
		conn = next

		if c.reg != nil {
			for _, name := range c.reg.activeNames() {
				if err := c.sendSubscribe(name); err != nil {
					c.log.Warn("resubscribe failed", "event", name, "error", err)
				}
			}
		}
	}
}

// consume reads and dispatches frames until the connection errors.
func (c *Client) consume(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var f frame
		if err := json.Unmarshal(line, &f); err != nil {
			c.log.Warn("malformed frame from backend", "error", err)
			continue
		}

		switch {
		case f.ID != 0:
			c.mu.Lock()
			reply, ok := c.pending[f.ID]
			c.mu.Unlock()
			if ok {
				reply <- f
			}
		case f.Event != "":
			name := EventName(f.Event)
			if !KnownEvent(name) {
				c.log.Debug("ignoring unknown event", "event", f.Event)
				continue
			}
			if c.reg != nil {
				c.reg.dispatch(Event{Name: name, Target: f.Target, Payload: f.Data})
			}
		}
	}
}

// failPending unblocks every in-flight call with a closed-connection error.
func (c *Client) failPending() {
	no := false
	c.mu.Lock()
	for id, reply := range c.pending {
		select {
		case reply <- frame{ID: id, OK: &no, Error: "connection lost"}:
		default:
		}
		delete(c.pending, id)
	}
	c.mu.Unlock()
}

// redial reconnects with exponential backoff capped at backoffMax. Returns
// false when the client is closed first.
func (c *Client) redial() (net.Conn, bool) {
	delay := backoffInitial
	for {
		select {
		case <-c.done:
			return nil, false
		case <-time.After(delay):
		}

		conn, err := c.dialOnce()
		if err == nil {
			c.mu.Lock()
			if c.closed {
				c.mu.Unlock()
				conn.Close()
				return nil, false
			}
			c.conn = conn
			c.mu.Unlock()
			c.log.Info("reconnected to backend", "socket", c.cfg.SocketPath)
			return conn, true
		}

		c.log.Debug("backend unavailable", "error", err, "retry_in", delay)
		delay *= 2
		if delay > backoffMax {
			delay = backoffMax
		}
	}
}
