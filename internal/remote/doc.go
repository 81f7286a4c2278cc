// Package remote is the network remote-control bridge.
//
// It serves a small HTTP API next to the display:
//
//	GET  /remote   WebSocket; pushes frames, accepts {"key":"up"} messages
//	GET  /frame    the latest frame as JSON
//	POST /input    {"key":"enter"} for clients without WebSocket
//	GET  /metrics  Prometheus metrics, when a handler is set
//	GET  /healthz  liveness
//
// Keys use the same names as the keyboard remote (up, down, left, right,
// enter, back, 0-9). Inputs are handed to the host loop through the deliver
// function passed to New; the server never touches the engine directly.
//
// Every connected socket gets a uuid client id in its hello message. Frames
// are broadcast to all sockets; a socket that cannot keep up is dropped.
package remote
