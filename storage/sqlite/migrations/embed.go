package migrations

import "embed"

// FS contains the embedded profile store migrations.
//
//go:embed *.sql
var FS embed.FS
