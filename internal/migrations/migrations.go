// Package migrations embeds the goose SQL migrations for the local client
// database (credential store and user profile cache).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
