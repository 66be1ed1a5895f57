package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/host"
	"github.com/vango-dev/vdiff/pkg/render"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// treePair is the request body of the API endpoints.
type treePair struct {
	Prev *vdom.Node `json:"prev"`
	Next *vdom.Node `json:"next"`
}

type diffResponse struct {
	Operations []vdom.Operation `json:"operations"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.SessionCount(),
	})
}

// handleDiff answers with the operations turning prev into next.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	pair, ok := s.decodePair(w, r, "diff")
	if !ok {
		return
	}
	ops := s.config.Matcher.Diff(pair.Prev, pair.Next)
	if ops == nil {
		ops = []vdom.Operation{}
	}
	s.metrics.requests.WithLabelValues("diff", "ok").Inc()
	s.writeJSON(w, http.StatusOK, diffResponse{Operations: ops})
}

// handleRender builds prev, patches it to next and answers with the HTML.
// With ?page=1 the result is streamed as a complete document.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	pair, ok := s.decodePair(w, r, "render")
	if !ok {
		return
	}

	root, err := s.patch(pair.Prev, pair.Next)
	if err != nil {
		s.fail(w, "render", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	sr := render.NewStreamingRenderer(w, s.config.Render)
	if page, _ := strconv.ParseBool(r.URL.Query().Get("page")); page {
		err = sr.RenderPage(render.PageData{
			Body:  root,
			Title: r.URL.Query().Get("title"),
			Lang:  r.URL.Query().Get("lang"),
		})
	} else {
		err = sr.Render(root)
	}
	if err != nil {
		s.logger.Error("render write failed", "error", err)
		return
	}
	s.metrics.requests.WithLabelValues("render", "ok").Inc()
}

// patch materializes prev and applies the diff to next. With Verify set the
// result is checked against a fresh build of next and replaced on mismatch.
func (s *Server) patch(prev, next *vdom.Node) (*host.Node, error) {
	root, err := s.reconciler.Apply(nil, s.config.Matcher.Diff(nil, prev))
	if err != nil {
		return nil, err
	}
	ops := s.config.Matcher.Diff(prev, next)
	if !s.config.Verify {
		return s.reconciler.Apply(root, ops)
	}
	root, rebuilt, err := s.reconciler.ApplyVerified(root, ops, next)
	if err != nil {
		return nil, err
	}
	if rebuilt {
		s.logger.Warn("patched tree differs from next, rebuilt", "operations", len(ops))
		s.metrics.requests.WithLabelValues("render", "rebuilt").Inc()
	}
	return root, nil
}

func (s *Server) decodePair(w http.ResponseWriter, r *http.Request, endpoint string) (*treePair, bool) {
	var pair treePair
	body := http.MaxBytesReader(w, r.Body, s.config.MaxMessageSize)
	if err := json.NewDecoder(body).Decode(&pair); err != nil {
		s.fail(w, endpoint, errors.FromError(err, "E005"))
		return nil, false
	}
	return &pair, true
}

func (s *Server) fail(w http.ResponseWriter, endpoint string, err error) {
	status := statusFor(err)
	s.metrics.requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	s.logger.Warn("request failed", "endpoint", endpoint, "status", status, "error", err)
	s.writeError(w, status, err)
}
