// Package migrations embeds the client's goose SQL migrations for the
// local sqlite state database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
