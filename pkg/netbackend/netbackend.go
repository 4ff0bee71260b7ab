// Package netbackend implements the PSK-authenticated remote terminal
// server (spec §4.7): a listener that accepts connections, performs a
// constant-time challenge-response handshake, then runs a
// line-oriented shell session against a per-connection Environment on
// the shared command Registry. Grounded line-for-line on
// oasis-net/src/listener.rs (AuthState machine, failure-rate limiting,
// idle timeout, MAX_LINE_LEN).
package netbackend

import (
	"bufio"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/oasis-os/oasis/pkg/backend"
	oerrors "github.com/oasis-os/oasis/pkg/errors"
	"github.com/oasis-os/oasis/pkg/terminal"
)

// Constants carried verbatim from oasis-net/src/listener.rs (SPEC_FULL §C).
const (
	MaxAuthFailures       = 3
	AuthRateLimitSecs     = 60
	IdleTimeoutSecs       = 300
	DefaultMaxConnections = 4
	MaxLineLen            = 1024
	challengeLen          = 32
)

// Limits bundles the per-server connection-count and idle-timeout
// policy (spec §4.7, SPEC_FULL §C's DEFAULT_MAX_CONNECTIONS /
// IDLE_TIMEOUT_SECS).
type Limits struct {
	MaxConnections int
	IdleTimeout    time.Duration
}

// DefaultLimits returns the values carried verbatim from
// oasis-net/src/listener.rs.
func DefaultLimits() Limits {
	return Limits{MaxConnections: DefaultMaxConnections, IdleTimeout: IdleTimeoutSecs * time.Second}
}

// SessionFactory returns the interpreter and environment for one
// accepted, authenticated connection. The factory cmd/oasis supplies
// returns the coordinator's shared Interpreter with a fresh
// Environment, so each remote session has its own Environment while
// sharing one command Registry and VFS.
type SessionFactory func() (*terminal.Interpreter, *terminal.Environment)

// Server owns the PSK, a set of auth rate limiters keyed by address,
// and the connection-count / idle-timeout limits. Serve keys the
// limiter by the listener's own Addr(), not the peer's address, so all
// connections on one listener share a limiter; each accepted
// connection takes one token before authentication, whether or not it
// then fails.
type Server struct {
	psk        []byte
	newSession SessionFactory
	limits     Limits

	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	activeConns int
}

// NewServer creates a Server that authenticates connections against
// psk before handing them to newSession. A zero Limits{} falls back
// to DefaultLimits().
func NewServer(psk []byte, newSession SessionFactory, limits Limits) *Server {
	if limits.MaxConnections <= 0 {
		limits.MaxConnections = DefaultMaxConnections
	}
	if limits.IdleTimeout <= 0 {
		limits.IdleTimeout = IdleTimeoutSecs * time.Second
	}
	return &Server{psk: psk, newSession: newSession, limits: limits, limiters: make(map[string]*rate.Limiter)}
}

// Serve accepts connections from l until it returns an error (spec
// §4.7, §5 "disconnects during command execution cancel only the
// output stream").
func (s *Server) Serve(l backend.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			return err
		}
		go s.handle(conn, l.Addr())
	}
}

func (s *Server) handle(conn backend.Stream, sourceAddr string) {
	defer conn.Close()

	if !s.limiterFor(sourceAddr).Allow() {
		return // authentication failure closes without a diagnostic (spec §4.7)
	}

	if !s.acquireSlot() {
		return // at DefaultMaxConnections already; reject silently (spec §4.7)
	}
	defer s.releaseSlot()

	authenticated, err := s.authenticate(conn)
	if err != nil || !authenticated {
		return
	}

	interp, env := s.newSession()
	s.runSession(conn, interp, env)
}

// acquireSlot reserves one of s.limits.MaxConnections concurrent
// session slots, grounded on listener.rs's connections.len() <
// max_connections accept guard.
func (s *Server) acquireSlot() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeConns >= s.limits.MaxConnections {
		return false
	}
	s.activeConns++
	return true
}

func (s *Server) releaseSlot() {
	s.mu.Lock()
	s.activeConns--
	s.mu.Unlock()
}

func (s *Server) limiterFor(addr string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	lim, ok := s.limiters[addr]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(MaxAuthFailures)/AuthRateLimitSecs, MaxAuthFailures)
		s.limiters[addr] = lim
	}
	return lim
}

// authenticate sends a random challenge, then reads len(psk) bytes and
// compares them to the PSK itself in constant time. The expected
// response does not depend on the challenge.
func (s *Server) authenticate(conn backend.Stream) (bool, error) {
	challenge := make([]byte, challengeLen)
	if _, err := rand.Read(challenge); err != nil {
		return false, oerrors.Wrap(oerrors.KindAuth, err, "failed to generate challenge")
	}
	if _, err := conn.Write(challenge); err != nil {
		return false, oerrors.Wrap(oerrors.KindNetwork, err, "failed to send challenge")
	}

	response := make([]byte, len(s.psk))
	if _, err := readFull(conn, response); err != nil {
		return false, oerrors.Wrap(oerrors.KindNetwork, err, "failed to read response")
	}

	ok := subtle.ConstantTimeCompare(response, s.psk) == 1
	return ok, nil
}

func readFull(conn backend.Stream, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

// runSession runs the line-oriented shell loop until disconnect or
// idle timeout, writing each command's text output back to the
// connection. backend.Stream has no deadline method in the trait
// (spec §4.8 keeps the contract to read/write/close), so the idle
// timeout is enforced here with a timer that closes conn if no line
// arrives within s.limits.IdleTimeout, mirroring listener.rs's
// last_activity/elapsed() check.
func (s *Server) runSession(conn backend.Stream, interp *terminal.Interpreter, env *terminal.Environment) {
	reader := bufio.NewReaderSize(conn, MaxLineLen*2)

	idle := time.AfterFunc(s.limits.IdleTimeout, func() { conn.Close() })
	defer idle.Stop()

	for {
		line, overlong, err := readLine(reader, MaxLineLen)
		if err != nil {
			return
		}
		idle.Reset(s.limits.IdleTimeout)
		if overlong {
			// listener.rs:265-269 clears the buffer and replies with an
			// error instead of executing the (truncated) line.
			conn.Write([]byte("error: line too long\n> "))
			continue
		}
		out, _ := interp.Execute(line, env)
		writeOutput(conn, out)
		if out.Kind == terminal.OutputExit {
			return
		}
	}
}

// readLine reads one newline-terminated line, enforcing maxLen the
// way listener.rs guards read_buf: a line whose length exceeds maxLen
// before its terminating '\n' is discarded in full (overlong=true,
// line=="") rather than truncated and returned for execution.
func readLine(r *bufio.Reader, maxLen int) (line string, overlong bool, err error) {
	var buf []byte
	for {
		b, readErr := r.ReadByte()
		if readErr != nil {
			return "", false, readErr
		}
		if b == '\n' {
			return strings.TrimRight(string(buf), "\r"), false, nil
		}
		buf = append(buf, b)
		if len(buf) > maxLen {
			for {
				b, readErr = r.ReadByte()
				if readErr != nil {
					return "", false, readErr
				}
				if b == '\n' {
					return "", true, nil
				}
			}
		}
	}
}

func writeOutput(conn backend.Stream, out terminal.CommandOutput) {
	text, ok := out.Pipeable()
	if !ok {
		text = fmt.Sprintf("<%v>", out.Kind)
	}
	conn.Write([]byte(text + "\n"))
}
