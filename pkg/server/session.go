package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vdiff/pkg/host"
	"github.com/vango-dev/vdiff/pkg/protocol"
	"github.com/vango-dev/vdiff/pkg/vdom"
	"github.com/vango-dev/vdiff/pkg/view"
)

// Session is one live connection. The client pushes trees; the session
// keeps the last one mounted and answers with the operations that
// patched it.
type Session struct {
	ID        string
	CreatedAt time.Time

	server *Server
	conn   *websocket.Conn
	view   *view.View[*vdom.Node]
	mount  *host.Node
	logger *slog.Logger

	seq     atomic.Uint64
	renders atomic.Int64
	closed  atomic.Bool
	done    chan struct{}

	// mu serializes writes to conn.
	mu sync.Mutex
}

// generateSessionID generates a cryptographically random session ID.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// passthrough renders the tree the client sent.
func passthrough(_ context.Context, tree *vdom.Node) ([]*vdom.Node, error) {
	return []*vdom.Node{tree}, nil
}

func newSession(s *Server, conn *websocket.Conn) *Session {
	id := generateSessionID()
	logger := s.config.Logger.With("session_id", id)

	sess := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		server:    s,
		conn:      conn,
		mount:     host.NewElement("body"),
		logger:    logger,
		done:      make(chan struct{}),
	}
	sess.view = view.New("live", passthrough,
		view.WithMatcher(s.config.Matcher),
		view.WithLogger(logger),
		view.WithMetrics(s.views),
		view.WithVerify(s.config.Verify),
	)
	return sess
}

// Mount returns the element the session's tree is mounted in.
func (s *Session) Mount() *host.Node {
	return s.mount
}

// render mounts tree, or clears the mount when tree is nil, and sends
// the resulting operations.
func (s *Session) render(ctx context.Context, tree *vdom.Node) error {
	var (
		update *view.Update
		err    error
	)
	if tree == nil {
		update, err = s.view.Clear(ctx)
	} else {
		update, err = s.view.Render(ctx, s.mount, tree)
	}
	if err != nil {
		return err
	}
	s.renders.Add(1)
	if update == nil {
		return nil
	}

	frame, err := (&protocol.OperationsFrame{
		Seq:    s.seq.Add(1),
		Resync: update.Resync,
		Ops:    update.Ops,
	}).Frame()
	if err != nil {
		return err
	}
	return s.send(frame)
}

// sendError reports a non-fatal error to the client.
func (s *Session) sendError(err error) {
	if sendErr := s.send(protocol.ErrorMessageFrom(err, false).Frame()); sendErr != nil {
		s.logger.Debug("error frame not sent", "error", sendErr)
	}
}

func (s *Session) send(frame *protocol.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrSessionClosed
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.server.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
		s.server.metrics.wsErrors.WithLabelValues("write").Inc()
		return err
	}
	s.server.metrics.framesSent.WithLabelValues(frame.Type.String()).Inc()
	return nil
}

// Close gracefully closes the session.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	s.mu.Lock()
	s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.conn.Close()
	s.mu.Unlock()

	s.server.removeSession(s)
	s.logger.Info("session closed",
		"renders", s.renders.Load(),
		"frames", s.seq.Load(),
		"duration", time.Since(s.CreatedAt))
}

// IsClosed returns whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
