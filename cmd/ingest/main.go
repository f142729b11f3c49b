// Command ingest bulk-loads the ingredient catalog from a CSV file.
//
// Each record is "name,measurement_unit". Rows whose (name, unit) pair
// already exists are skipped, so the import is safe to re-run.
//
// Usage:
//
//	ingest -file ingredients.csv
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/infrastructure/config"
	mongodb "github.com/platefull/recipe-api/internal/infrastructure/db/mongo"
	"github.com/platefull/recipe-api/pkg/logger"
)

func main() {
	file := flag.String("file", "ingredients.csv", "path to the ingredient CSV file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("opening CSV failed")
	}
	ingredients, invalid, err := readIngredients(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("reading CSV failed")
	}
	if invalid > 0 {
		log.Warn().Int("rows", invalid).Msg("rows with a blank field or unknown unit skipped")
	}
	if len(ingredients) == 0 {
		log.Warn().Str("file", *file).Msg("no ingredients found")
		return
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	repo := mongodb.NewIngredientRepository(db)
	inserted, err := repo.CreateMany(ctx, ingredients)
	if err != nil {
		log.Fatal().Err(err).Msg("bulk insert failed")
	}

	log.Info().
		Int("read", len(ingredients)).
		Int("inserted", inserted).
		Int("duplicates", len(ingredients)-inserted).
		Int("invalid", invalid).
		Msg("ingredient import done")
}

// readIngredients parses "name,measurement_unit" records. Rows with a blank
// field or a unit outside the g/kg/pcs catalog are counted and skipped, so
// the loader admits exactly the units the API accepts.
func readIngredients(src io.Reader) ([]domain.Ingredient, int, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = 2

	var ingredients []domain.Ingredient
	invalid := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, invalid, err
		}

		name := strings.TrimSpace(record[0])
		unit := domain.MeasurementUnit(strings.TrimSpace(record[1]))
		if name == "" || !domain.ValidUnit(unit) {
			invalid++
			continue
		}
		ingredients = append(ingredients, domain.Ingredient{
			Name:            name,
			MeasurementUnit: unit,
		})
	}
	return ingredients, invalid, nil
}
