package daemon

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"
)

// ControlHandler dispatches control commands to the daemon.
type ControlHandler interface {
	HandleCommand(cmd string, args []string) (string, error)
}

// ControlServer listens on a Unix domain socket for line-based text
// commands and replies with one JSON line per command.
//
// Protocol:
//   - Client sends a single line: COMMAND [arg] ...
//   - Server responds with a JSON line followed by a newline.
//   - Commands: HEALTH, STATUS [collector], REFRESH [collector], QUIT
//
// Connections from other users are rejected at accept time via the
// socket's peer credentials.
type ControlServer struct {
	socketPath string
	handler    ControlHandler
	log        *slog.Logger
	listener   net.Listener
	wg         sync.WaitGroup
	done       chan struct{}
}

// NewControlServer creates a control server; Start binds the socket.
func NewControlServer(socketPath string, handler ControlHandler, log *slog.Logger) *ControlServer {
	if log == nil {
		log = slog.Default()
	}
	return &ControlServer{
		socketPath: socketPath,
		handler:    handler,
		log:        log,
		done:       make(chan struct{}),
	}
}

// Start binds the socket with owner-only permissions, removing any stale
// socket file first.
func (s *ControlServer) Start() error {
	os.Remove(s.socketPath)

	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("daemon: listen on %s: %w", s.socketPath, err)
	}
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		ln.Close()
		return fmt.Errorf("daemon: chmod socket: %w", err)
	}
	s.listener = ln

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Stop closes the listener, waits for in-flight connections, and removes
// the socket file. Safe to call more than once.
func (s *ControlServer) Stop() {
	select {
	case <-s.done:
		return
	default:
	}
	close(s.done)
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}

func (s *ControlServer) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				continue
			}
		}
		if err := checkPeerOwner(conn); err != nil {
			s.log.Warn("rejected control connection", "error", err)
			conn.Close()
			continue
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// handleConn serves one command per connection.
func (s *ControlServer) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		return
	}
	line := strings.TrimSpace(scanner.Text())
	if line == "" {
		return
	}

	parts := strings.Fields(line)
	cmd := strings.ToUpper(parts[0])
	args := parts[1:]

	response, err := s.handler.HandleCommand(cmd, args)
	if err != nil {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintf(conn, "%s\n", data)
		return
	}
	fmt.Fprintf(conn, "%s\n", response)
}

// ControlClient connects to a running daemon's control socket.
type ControlClient struct {
	socketPath string
}

// NewControlClient creates a client for the daemon at socketPath.
func NewControlClient(socketPath string) *ControlClient {
	return &ControlClient{socketPath: socketPath}
}

// Send opens a connection, sends one command line, and returns the
// response line.
func (c *ControlClient) Send(cmd string) (string, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return "", fmt.Errorf("daemon: connect: %w", err)
	}
	defer conn.Close()

	fmt.Fprintf(conn, "%s\n", cmd)

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("daemon: read response: %w", err)
		}
		return "", fmt.Errorf("daemon: empty response")
	}
	return scanner.Text(), nil
}
