package main

// Helper: go run ./cmd/server -backfill-variant-keys
// Assigns stable keys to variants created before the key column existed.
// Position-index identity stays in the historic order rows, so the index is
// kept for ordering; new code addresses variants by this key.

import (
	"flag"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/siamlux/siamlux-api/internal/db"
	"github.com/siamlux/siamlux-api/internal/models"
)

func runBackfillVariantKeys(log zerolog.Logger) {
	conn, err := db.ConnectAndMigrate()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	var variants []models.Variant
	if err := conn.Where("variant_key = '' OR variant_key IS NULL").Find(&variants).Error; err != nil {
		log.Fatal().Err(err).Msg("list variants")
	}
	updated := 0
	for _, v := range variants {
		if err := conn.Model(&models.Variant{}).Where("id = ?", v.ID).
			Update("variant_key", uuid.NewString()).Error; err == nil {
			updated++
		}
	}
	log.Info().Int("updated", updated).Msg("backfill done")
}

var backfillFlag = flag.Bool("backfill-variant-keys", false, "Backfill missing variant keys and exit")
