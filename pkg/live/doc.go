// Package live runs applications headlessly on the server and streams the
// result to a browser over a WebSocket.
//
// Each connection gets a Session: an in-memory document and window, an
// event loop, a router and a reconciler. The client reports events by the
// child-index path of their target; the session dispatches them, drains
// the loop, and answers with the new body markup and the mutation records
// the patch produced.
//
// Messages are JSON. Client to server:
//
//	{"type":"event","event":"click","path":[0,2]}
//	{"type":"event","event":"input","path":[1],"value":"abc"}
//	{"type":"navigate","url":"/about"}
//	{"type":"back"}
//
// Server to client:
//
//	{"type":"render","url":"/about","html":"...","records":[...]}
//	{"type":"error","error":"..."}
package live
