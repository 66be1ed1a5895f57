package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/protocol"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// handleLive upgrades the connection and runs a session until the client
// goes away.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.wsErrors.WithLabelValues("upgrade").Inc()
		s.logger.Warn("upgrade failed", "error", err)
		return
	}

	sess := newSession(s, conn)
	s.addSession(sess)
	sess.logger.Info("session opened", "remote", r.RemoteAddr)

	sess.ReadLoop(context.Background())
}

// ReadLoop reads trees from the client until the connection closes.
//
// Binary messages carry a tree frame. Text messages carry a JSON tree;
// JSON null clears the mount.
func (s *Session) ReadLoop(ctx context.Context) {
	defer s.Close()

	s.conn.SetReadLimit(s.server.config.MaxMessageSize)
	for {
		s.conn.SetReadDeadline(time.Now().Add(s.server.config.ReadTimeout))

		kind, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.server.metrics.wsErrors.WithLabelValues("read").Inc()
				s.logger.Error("read error", "error", err)
			}
			return
		}

		tree, err := s.decode(kind, msg)
		if err != nil {
			s.logger.Warn("message rejected", "error", err)
			s.sendError(err)
			continue
		}

		if err := s.render(ctx, tree); err != nil {
			if stderrors.Is(err, ErrSessionClosed) {
				return
			}
			s.logger.Error("render failed", "error", err)
			s.sendError(err)
		}
	}
}

func (s *Session) decode(kind int, msg []byte) (*vdom.Node, error) {
	switch kind {
	case websocket.TextMessage:
		s.server.metrics.framesReceived.WithLabelValues("json").Inc()
		if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			return nil, nil
		}
		var tree vdom.Node
		if err := json.Unmarshal(msg, &tree); err != nil {
			return nil, errors.New("E005").WithDetail("invalid JSON tree").Wrap(err)
		}
		return &tree, nil

	default:
		s.server.metrics.framesReceived.WithLabelValues("binary").Inc()
		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			return nil, errors.New("E005").WithDetail("invalid frame").Wrap(err)
		}
		if frame.Type != protocol.FrameTree {
			return nil, errors.New("E005").WithDetailf("frame type %s", frame.Type).Wrap(ErrUnexpectedFrame)
		}
		return protocol.DecodeTree(frame.Payload)
	}
}
