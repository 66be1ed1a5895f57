// Package vtest provides testing helpers for trees and their diffs.
//
// # Round Trips
//
// The central property of the engine is that applying Diff(prev, next) to
// a built prev yields a tree equal to a fresh build of next:
//
//	func TestToggleSection(t *testing.T) {
//	    prev := vdom.Div(vdom.P("intro"))
//	    next := vdom.Div(vdom.P("intro"), vdom.P("details"))
//	    vtest.ExpectRoundTrip(t, prev, next)
//	}
//
// # Operation Assertions
//
// ExpectOps compares operations by their string form, which names the
// operation type, the path and the payload:
//
//	vtest.ExpectOps(t, vdom.Diff(prev, next), "modify .class active")
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, tree, "Welcome")
//	vtest.ExpectAttribute(t, tree, "class", "btn-primary")
package vtest
