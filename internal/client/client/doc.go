// Package client contains the transport to the PlanPlant REST backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): upload
//     target and signed upload, register, login, profile changes, settings,
//     account deletion and home membership.
//  2. A concrete HTTP implementation (see HTTPClient) that POSTs JSON to
//     <base><version>/<path>, attaches the session token header on
//     authenticated calls and probes responses with gjson.
//
// # Error Handling
//
// Every operation returns a payload or an *Error, never both. Error()
// yields the user-visible text:
//   - a backend {"error": "..."} payload is passed through verbatim and
//     marked Domain;
//   - network, status and parse failures become the operation's generic
//     text (e.g. "Login Error") with the cause available through Unwrap.
//
// Use Relabel to give a transport failure a different user-visible text,
// as the upload chains do.
//
// # Concurrency & Contexts
//
// HTTPClient holds no per-call state and is safe for concurrent use.
// Operations honor context cancellation. No timeout is applied unless one
// is configured with WithTimeout.
package client
