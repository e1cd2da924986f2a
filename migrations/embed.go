package migrations

import "embed"

// FS встроенные SQL-миграции схемы
//
//go:embed *.sql
var FS embed.FS
