// Package migrations embeds the SQL schema migrations so the server and
// migrate binaries do not depend on files next to the executable.
package migrations

import "embed"

// FS holds every *.sql migration in this directory
//
//go:embed *.sql
var FS embed.FS
