// Package migrations embeds the versioned SQL schema applied by
// golang-migrate. Files follow the NNNNNN_name.{up,down}.sql convention.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
