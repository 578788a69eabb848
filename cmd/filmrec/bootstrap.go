package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/filmrec/internal/config"
	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/repository/catalog"
	"github.com/kailas-cloud/filmrec/internal/repository/rawtable"
	"github.com/kailas-cloud/filmrec/internal/usecase/ingest"
)

// loadCatalog restores the persisted catalog when present, otherwise builds it from
// the raw tables and persists it. rebuild forces the slow path.
// Cancellation is checked between stages; a cancelled build persists nothing.
func loadCatalog(
	ctx context.Context, cfg config.DataConfig, p *ingest.Pipeline, rebuild bool, logger *zap.Logger,
) (*movie.Catalog, error) {
	store, err := catalog.New(catalog.Format(cfg.CatalogFormat), cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("catalog store: %w", err)
	}

	if store.Exists() && !rebuild {
		rows, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		res, err := p.Restore(rows)
		if err != nil {
			return nil, fmt.Errorf("restore catalog: %w", err)
		}
		logger.Info("Catalog loaded", zap.String("path", cfg.Catalog), zap.Int("movies", res.Catalog.Len()))
		return res.Catalog, nil
	}

	tables, err := rawtable.ReadAll(rawtable.Paths{
		Metadata: cfg.Metadata,
		Keywords: cfg.Keywords,
		Credits:  cfg.Credits,
	})
	if err != nil {
		return nil, fmt.Errorf("read raw tables: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	res, err := p.Normalize(tables.Metadata, tables.Keywords, tables.Credits)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	if err := store.Save(res.Catalog); err != nil {
		return nil, fmt.Errorf("save catalog: %w", err)
	}
	logger.Info("Catalog built",
		zap.String("path", cfg.Catalog),
		zap.Int("movies", res.Catalog.Len()),
		zap.Int("excluded", len(res.Excluded)),
	)
	return res.Catalog, nil
}
