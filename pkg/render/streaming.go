package render

import (
	"io"
	"net/http"

	"github.com/vango-dev/vdiff/pkg/host"
)

// StreamingRenderer writes to an http.ResponseWriter and flushes between
// document stages so the head reaches the client before the body.
type StreamingRenderer struct {
	*Renderer
	w http.ResponseWriter
}

func NewStreamingRenderer(w http.ResponseWriter, config Config) *StreamingRenderer {
	return &StreamingRenderer{Renderer: NewRenderer(config), w: w}
}

// RenderPage writes a full document, flushing after the head and the body.
func (s *StreamingRenderer) RenderPage(page PageData) error {
	return s.stages(
		func(w io.Writer) error {
			if err := s.renderDocumentStart(w, page); err != nil {
				return err
			}
			return s.renderHead(w, page)
		},
		func(w io.Writer) error { return s.renderBody(w, page) },
	)
}

// Render writes node alone and flushes once.
func (s *StreamingRenderer) Render(node *host.Node) error {
	return s.stages(func(w io.Writer) error { return s.RenderToWriter(w, node) })
}

func (s *StreamingRenderer) stages(fns ...func(io.Writer) error) error {
	rc := http.NewResponseController(s.w)
	for _, fn := range fns {
		if err := fn(s.w); err != nil {
			return err
		}
		// Writers without flush support return ErrNotSupported.
		_ = rc.Flush()
	}
	return nil
}
