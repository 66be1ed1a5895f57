// Package render serializes host trees to HTML.
//
// The renderer writes what a browser would hold after the same patches:
// elements with their attributes in host order, escaped text, and no
// closing tag for void elements. Fragment elements render only their
// children.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.Config{})
//	html, err := renderer.RenderToString(root)
//
// To stream into a writer:
//
//	err := renderer.RenderToWriter(w, root)
//
// # Documents
//
// RenderPage wraps a tree in a complete HTML document with a title and
// inline styles. StreamingRenderer does the same for an
// http.ResponseWriter and flushes after the head and after the body.
//
// # Security
//
// Text and attribute values are always escaped. The content of style and
// script elements is written as-is, as HTML parsers read it raw.
package render
