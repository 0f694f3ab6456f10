// Package migrations embeds the goose migrations for the client's sqlite
// cookie jar.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
