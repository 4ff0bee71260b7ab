// Package wsbackend implements backend.Network over WebSocket
// connections, for host environments (e.g. a desktop web-embed
// target) that expose a WebSocket transport instead of raw TCP (spec
// §4.8 Network trait; SPEC_FULL §B).
package wsbackend

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/oasis-os/oasis/pkg/backend"
	oerrors "github.com/oasis-os/oasis/pkg/errors"
)

// Stream adapts a *websocket.Conn to the backend.Stream byte
// read/write/close contract by buffering frame boundaries.
type Stream struct {
	conn *websocket.Conn
	buf  []byte
}

// NewStream wraps an established WebSocket connection.
func NewStream(conn *websocket.Conn) *Stream {
	return &Stream{conn: conn}
}

func (s *Stream) Read(p []byte) (int, error) {
	for len(s.buf) == 0 {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		s.buf = data
	}
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}

func (s *Stream) Write(p []byte) (int, error) {
	if err := s.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *Stream) Close() error {
	return s.conn.Close()
}

// Listener wraps an http.Server accepting WebSocket upgrade requests
// on a single path, presenting accepted connections through a
// buffered channel so Accept() matches backend.Listener's blocking
// contract.
type Listener struct {
	addr     string
	upgrader websocket.Upgrader
	incoming chan backend.Stream
	server   *http.Server
}

// NewListener starts an HTTP server on addr that upgrades every
// request on path to a WebSocket and hands the resulting Stream to
// Accept.
func NewListener(addr, path string) *Listener {
	l := &Listener{
		addr:     addr,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		incoming: make(chan backend.Stream, 8),
	}
	mux := http.NewServeMux()
	mux.HandleFunc(path, l.handleUpgrade)
	l.server = &http.Server{Addr: addr, Handler: mux}
	go l.server.ListenAndServe()
	return l
}

func (l *Listener) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	l.incoming <- NewStream(conn)
}

func (l *Listener) Accept() (backend.Stream, error) {
	s, ok := <-l.incoming
	if !ok {
		return nil, oerrors.New(oerrors.KindNetwork, "listener closed")
	}
	return s, nil
}

func (l *Listener) Close() error {
	close(l.incoming)
	return l.server.Close()
}

func (l *Listener) Addr() string { return l.addr }

// Network implements backend.Network over WebSocket connect/listen.
// It has no TLS provider of its own — wss:// termination is assumed
// to happen at the host's WebSocket layer, not inside this backend.
type Network struct{}

func (Network) Listen(addr string) (backend.Listener, error) {
	return NewListener(addr, "/oasis"), nil
}

func (Network) Connect(addr string) (backend.Stream, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, oerrors.Wrap(oerrors.KindNetwork, err, "websocket dial failed")
	}
	return NewStream(conn), nil
}

func (Network) TLSProvider() (backend.TLSProvider, bool) { return nil, false }
