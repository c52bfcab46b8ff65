package db

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RunMigrations applies the SQL migration files unconditionally, ignoring
// the MIGRATIONS env var. It backs the -migrate-only one-shot; the serving
// path goes through ConnectAndMigrate, which may fall back to AutoMigrate.
func RunMigrations(log zerolog.Logger) error {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return fmt.Errorf("DATABASE_DSN is empty, check the environment")
	}
	log.Info().Msg("running sql migrations")
	return runSQLMigrations(dsn)
}
