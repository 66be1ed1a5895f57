package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/vdiff/pkg/host"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the tree rendered inside <body>
	Body *host.Node

	// Title is the page title
	Title string

	// Styles contains inline CSS, one <style> element each
	Styles []string

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	if err := r.renderDocumentStart(w, page); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	if err := r.renderBody(w, page); err != nil {
		return err
	}
	return nil
}

func (r *Renderer) renderDocumentStart(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang))
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n  <meta charset=\"utf-8\">\n"); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}

	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

func (r *Renderer) renderBody(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n</body>\n</html>\n")
	return err
}
