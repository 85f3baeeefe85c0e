// Package migrations embeds the SQL schema for every supported database driver.
//
// Each driver directory holds golang-migrate style files named
// <version>_<name>.up.sql and <version>_<name>.down.sql.
package migrations

import "embed"

// FS holds the postgresql, mysql and sqlite migration directories.
//
//go:embed postgresql/*.sql mysql/*.sql sqlite/*.sql
var FS embed.FS
