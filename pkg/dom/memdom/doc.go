// Package memdom is an in-memory implementation of the dom interfaces.
//
// Every mutation applied through the interfaces is appended to the
// document's record log, which tests use to count DOM writes and live
// sessions stream to observers. Window keeps a session history with
// back/forward support and can be told to refuse structured popstate
// events.
package memdom
