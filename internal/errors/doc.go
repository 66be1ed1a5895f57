// Package errors provides structured, coded errors for vdiff.
//
// Every failure that crosses a package boundary (a stale operation path, a
// node the host cannot materialize, a malformed wire frame, a broken config
// file) is reported as an *Error carrying:
//   - a unique code (e.g. "E001") that maps to a registered template
//   - a category (reconcile, materialize, protocol, view, config, cli)
//   - a short message and an optional longer detail
//   - an optional suggestion on how to fix the problem
//   - the wrapped cause, reachable through errors.Is / errors.As
//
// # Usage
//
//	err := errors.New("E001").
//	    WithDetail("path /children#4 addresses child 4 of 2").
//	    Wrap(reconcile.ErrPathNotFound)
//
// Format renders an error for terminal output; FormatCompact and
// FormatJSON are intended for logs and HTTP responses.
package errors
