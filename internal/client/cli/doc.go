// Package cli provides the interactive PlanPlant command-line client.
//
// It wires configuration, the cookie jar, the API gateway services and the
// page router, then runs a REPL whose commands drive the mounted page.
// Typical flow: land, log in or sign up, create or join a home, tweak
// settings.
//
// Which commands are available depends on the current route; type "help"
// for the list. Backend errors are printed as the message the web client
// would show inline.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
