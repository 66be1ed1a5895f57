// Package server exposes the diff engine over HTTP and WebSocket.
//
// # Endpoints
//
//   - GET /healthz reports liveness and the number of open sessions.
//   - POST /api/diff takes {"prev": tree, "next": tree} and answers with
//     {"operations": [...]}.
//   - POST /api/render takes the same body, builds prev, patches it to
//     next and answers with the resulting HTML. With ?page=1 the HTML is
//     streamed as a complete document titled by ?title=.
//   - GET /live opens a live session.
//   - The metrics path serves Prometheus metrics.
//
// # Live Sessions
//
// A live session owns a mounted tree. The client sends trees either as
// binary tree frames or as JSON text messages; JSON null clears the mount.
// For every tree the session renders it through a view and answers with a
// sequenced operations frame. A frame flagged resync rebuilds the tree from
// nothing. Failures are reported with non-fatal error frames and the
// session keeps running.
//
// # Usage
//
//	srv := server.New(&server.Config{Address: ":8080"})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
