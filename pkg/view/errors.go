package view

import (
	"context"
	"fmt"

	"github.com/vango-dev/vdiff/internal/errors"
)

// Template identifiers reported in TemplateError.
const (
	TemplateMain     = "main"
	TemplateFallback = "fallback"
)

// TemplateError reports a failed template run.
type TemplateError struct {
	View     string // Name of the view
	Template string // TemplateMain or TemplateFallback
	Args     any    // Arguments the template was called with
	Err      error  // *errors.Error with code E010 or E011
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("view %s: %s template: %v", e.View, e.Template, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives template failures. It runs synchronously inside
// Render and must not call back into the view.
type ErrorHandler func(ctx context.Context, err *TemplateError)

func newTemplateError(view, template string, args any, cause error) *TemplateError {
	code := "E010"
	if template == TemplateFallback {
		code = "E011"
	}
	return &TemplateError{
		View:     view,
		Template: template,
		Args:     args,
		Err:      errors.New(code).WithDetailf("view %q", view).Wrap(cause),
	}
}

// panicError is a recovered template panic.
type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprintf("template panicked: %v", p.value)
}
