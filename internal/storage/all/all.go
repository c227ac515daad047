// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a
// blank import) causes the init functions of each concrete storage backend
// to run, which registers their factories with the storage package.
//
// Importing this package makes the following storage kinds available:
//
//   - "sqlite"   (crimeflow/internal/storage/sqlite)
//   - "postgres" (crimeflow/internal/storage/postgres)
//   - "mysql"    (crimeflow/internal/storage/mysql)
package all

import (
	_ "crimeflow/internal/storage/mysql"
	_ "crimeflow/internal/storage/postgres"
	_ "crimeflow/internal/storage/sqlite"
)
