package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/osse101/Tycoon_Go/internal/config"
	"github.com/osse101/Tycoon_Go/internal/engine"
	"github.com/osse101/Tycoon_Go/internal/progression"
	"github.com/osse101/Tycoon_Go/internal/validation"
)

// CheckCatalogCommand validates the catalog and tuning files offline and
// builds a game from them, so broken unlock chains surface before deploy
type CheckCatalogCommand struct {
	ui *UI
}

func (c *CheckCatalogCommand) Name() string {
	return "check-catalog"
}

func (c *CheckCatalogCommand) Description() string {
	return "Validate catalog and tuning files (-catalog, -schema, -tuning)"
}

func (c *CheckCatalogCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	catalogPath := fs.String("catalog", config.ConfigPathCatalog, "catalog JSON file")
	schemaPath := fs.String("schema", config.ConfigPathCatalogSchema, "catalog JSON schema")
	tuningPath := fs.String("tuning", config.ConfigPathTuning, "tuning YAML file (empty for defaults)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.ui == nil {
		c.ui = stdoutUI
	}
	c.ui.Header("Catalog Check")

	ctx := context.Background()
	catalog, err := progression.LoadCatalog(ctx, *catalogPath, validation.NewSchemaValidator(), *schemaPath)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	c.ui.Success("catalog %s: version %s, %d nodes, %d roots", *catalogPath, catalog.Version, len(catalog.Nodes), len(catalog.Roots()))

	tuning, err := config.LoadTuning(*tuningPath)
	if err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	c.ui.Success("tuning: %d Hz, passive income %d every %v",
		tuning.TickRateHz, tuning.Economy.PassiveIncomeAmount, tuning.Economy.PassiveIncomeInterval)

	game, err := engine.New(tuning, catalog)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	snap := game.Snapshot()
	for _, node := range snap.Nodes {
		c.ui.Plain("  %-24s %-8s cost %d", node.ID, node.Kind, node.Cost)
	}
	c.ui.Success("game builds with %d purchasable nodes", len(snap.Nodes))
	return nil
}
