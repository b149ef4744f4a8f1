// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olegiv/corpsite/internal/model"
	"github.com/olegiv/corpsite/internal/util"
)

// seedName is a translated display name used by the demo catalog.
type seedName struct {
	lang string
	name string
}

type seedGroup struct {
	names    []seedName
	products [][]seedName
}

var demoGroups = []seedGroup{
	{
		names: []seedName{{"en", "Industrial Valves"}, {"tr", "Endüstriyel Vanalar"}, {"de", "Industrieventile"}},
		products: [][]seedName{
			{{"en", "Ball Valve"}, {"tr", "Küresel Vana"}},
			{{"en", "Gate Valve"}, {"de", "Absperrschieber"}},
		},
	},
	{
		names: []seedName{{"en", "Pumps"}, {"tr", "Pompalar"}},
		products: [][]seedName{
			{{"en", "Centrifugal Pump"}},
		},
	},
}

var demoSolutions = [][]seedName{
	{{"en", "Water Treatment"}, {"tr", "Su Arıtma"}},
	{{"en", "Oil and Gas"}, {"de", "Öl und Gas"}},
}

// Seed fills an empty database with a small demo catalog and one market.
// It is a no-op when disabled or when a market already exists.
func Seed(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		return nil
	}

	var markets int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM markets").Scan(&markets); err != nil {
		return fmt.Errorf("counting markets: %w", err)
	}
	if markets > 0 {
		slog.Info("catalog already seeded, skipping")
		return nil
	}

	return InTx(ctx, db, func(q *Queries) error {
		for pos, g := range demoGroups {
			groupID, err := q.CreateProductGroup(ctx, CreateProductGroupParams{
				Slug:     util.Slugify(g.names[0].name),
				Position: pos + 1,
			})
			if err != nil {
				return fmt.Errorf("creating product group: %w", err)
			}
			if err := seedTranslations(ctx, q, model.EntityTypeProductGroup, groupID, g.names); err != nil {
				return err
			}
			for _, names := range g.products {
				productID, err := q.CreateProduct(ctx, CreateProductParams{
					ProductGroupID: groupID,
					Slug:           util.Slugify(names[0].name),
				})
				if err != nil {
					return fmt.Errorf("creating product: %w", err)
				}
				if err := seedTranslations(ctx, q, model.EntityTypeProduct, productID, names); err != nil {
					return err
				}
			}
		}

		for _, names := range demoSolutions {
			solutionID, err := q.CreateSolution(ctx, util.Slugify(names[0].name))
			if err != nil {
				return fmt.Errorf("creating solution: %w", err)
			}
			if err := seedTranslations(ctx, q, model.EntityTypeSolution, solutionID, names); err != nil {
				return err
			}
		}

		marketID, err := q.CreateMarket(ctx, CreateMarketParams{
			Slug:            "europe",
			HasCertificates: true,
			HasProducts:     true,
			HasSolutions:    true,
		})
		if err != nil {
			return fmt.Errorf("creating market: %w", err)
		}
		if err := seedTranslations(ctx, q, model.EntityTypeMarket, marketID,
			[]seedName{{"en", "Europe"}, {"tr", "Avrupa"}, {"de", "Europa"}}); err != nil {
			return err
		}

		aboutID, err := q.CreateAboutPage(ctx, "company")
		if err != nil {
			return fmt.Errorf("creating about page: %w", err)
		}
		if err := seedTranslations(ctx, q, model.EntityTypeAboutPage, aboutID,
			[]seedName{{"en", "About Us"}, {"tr", "Hakkımızda"}}); err != nil {
			return err
		}

		slog.Info("seeded demo catalog", "market_id", marketID, "about_id", aboutID)
		return nil
	})
}

func seedTranslations(ctx context.Context, q *Queries, entityType string, entityID int64, names []seedName) error {
	for _, n := range names {
		if err := q.UpsertTranslation(ctx, UpsertTranslationParams{
			EntityType: entityType,
			EntityID:   entityID,
			Language:   n.lang,
			Name:       n.name,
		}); err != nil {
			return fmt.Errorf("creating %s translation: %w", entityType, err)
		}
	}
	return nil
}
