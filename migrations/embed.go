// Package migrations holds the goose SQL migrations for trips, subtrips and
// itinerary items. cmd/api applies them at boot when MIGRATE_ON_START is set;
// integration tests apply them in TestMain.
package migrations

import "embed"

// FS is the embedded set of *.sql migrations, in version order by file name.
//
//go:embed *.sql
var FS embed.FS
